// Diagnostic program printing every MPRIS seek with the gap since the
// previous one, to help pick a double-tap window for a given pair of earbuds.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/budskip/internal/config"
	"github.com/llehouerou/budskip/internal/mpris"
	"github.com/llehouerou/budskip/internal/players"
	"github.com/llehouerou/budskip/internal/tap"
)

// chanSender forwards gateway events to a channel.
type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) {
	c <- msg
}

// loadTiming returns the thresholds budskip itself would use.
func loadTiming() tap.Timing {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		return tap.DefaultTiming()
	}
	return cfg.Timing()
}

// describeGap formats the gap between two seeks, flagging gaps short enough
// to complete a double-tap.
func describeGap(gap, window time.Duration) string {
	s := gap.Round(time.Millisecond).String()
	if gap < window {
		s += " (inside window)"
	}
	return s
}

func main() {
	window := loadTiming().Window

	gw, err := mpris.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to session bus: %v", err)
	}
	defer gw.Close()

	if err := gw.WatchPresence(); err != nil {
		log.Fatalf("Failed to watch players: %v", err)
	}

	reg := players.New(gw)
	defer reg.Close()

	names, err := gw.ListPlayers()
	if err != nil {
		log.Printf("Failed to list players: %v", err)
	}
	for _, name := range names {
		if _, err := reg.Watch(name); err != nil {
			log.Printf("  skip %s: %v", mpris.ShortName(name), err)
			continue
		}
		log.Printf("  watching %s", mpris.ShortName(name))
	}
	log.Printf("Tap your earbuds. Window is %v; Ctrl+C to stop.", window)

	events := make(chanSender, 64)
	gw.Start(events)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var last time.Time
	for {
		select {
		case <-sig:
			return
		case msg := <-events:
			switch e := msg.(type) {
			case mpris.Seeked:
				if !reg.Watching(e.Player) {
					continue
				}
				gap := "first"
				if !last.IsZero() {
					gap = describeGap(e.At.Sub(last), window)
				}
				last = e.At
				log.Printf("seek %-20s pos=%-10v gap=%s", mpris.ShortName(e.Player), e.Position.Round(time.Millisecond), gap)
			case mpris.PresenceChanged:
				if e.Present {
					if added, err := reg.Watch(e.Player); err != nil {
						log.Printf("  skip %s: %v", mpris.ShortName(e.Player), err)
					} else if added {
						log.Printf("  watching %s", mpris.ShortName(e.Player))
					}
				} else if removed, _ := reg.Unwatch(e.Player); removed {
					log.Printf("  %s closed", mpris.ShortName(e.Player))
				}
			}
		}
	}
}
