// Package status prints the human-readable status lines of budskip.
package status

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/budskip/internal/errmsg"
	"github.com/llehouerou/budskip/internal/mpris"
	"github.com/llehouerou/budskip/internal/tap"
)

const (
	clockLayout = "15:04:05"
	listRule    = "-----------------------------"
)

// Reporter writes status lines. Colors are only emitted when the writer is
// a terminal.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	title lipgloss.Style
	dim   lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		out:   w,
		title: r.NewStyle().Bold(true),
		dim:   r.NewStyle().Foreground(lipgloss.Color("245")),
		good:  r.NewStyle().Foreground(lipgloss.Color("42")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// Banner announces startup and the thresholds in use.
func (r *Reporter) Banner(t tap.Timing) {
	r.println(r.title.Render("budskip: earbud double-tap skip initialized."))
	r.println(fmt.Sprintf("Double-tap window: %dms, Skip Cooldown: %dms",
		t.Window.Milliseconds(), t.Cooldown.Milliseconds()))
}

// InitialPlayers lists the players found at startup. Nothing is printed when
// there are none.
func (r *Reporter) InitialPlayers(players []string) {
	if len(players) == 0 {
		return
	}
	r.println(r.dim.Render("--- Initial Player Status ---"))
	for _, p := range players {
		r.println("Listening to: " + mpris.ShortName(p))
	}
	r.println(r.dim.Render(listRule))
}

// Ready announces that the event loop is running.
func (r *Reporter) Ready() {
	r.println("Listening for taps...")
}

// PlayerStarted reports a player that appeared after startup.
func (r *Reporter) PlayerStarted(player string) {
	r.println("Player started: " + mpris.ShortName(player))
}

// PlayerClosed reports a player that left the bus.
func (r *Reporter) PlayerClosed(player string) {
	r.println("Player closed: " + mpris.ShortName(player))
}

// Skipped reports a successful skip.
func (r *Reporter) Skipped(at time.Time, player string) {
	r.println(fmt.Sprintf("[%s] %s", at.Format(clockLayout),
		r.good.Render("Skipped to next track on "+mpris.ShortName(player))))
}

// SkipFailed reports a skip command the player rejected.
func (r *Reporter) SkipFailed(at time.Time, player string, err error) {
	r.println(fmt.Sprintf("[%s] %s", at.Format(clockLayout),
		r.bad.Render(errmsg.FormatWith(errmsg.OpSkip, mpris.ShortName(player), err))))
}

// Failure reports a recoverable error. context may be empty.
func (r *Reporter) Failure(op errmsg.Op, context string, err error) {
	if err == nil {
		return
	}
	r.println(r.bad.Render(errmsg.FormatWith(op, context, err)))
}

// Warning reports a condition that does not stop the program.
func (r *Reporter) Warning(msg string) {
	r.println(r.bad.Render("WARNING: " + msg))
}

// Fatal reports an error that ends the program.
func (r *Reporter) Fatal(op errmsg.Op, err error) {
	r.println(r.bad.Render("FATAL: " + errmsg.Format(op, err)))
}

// Exiting reports a clean shutdown on interrupt.
func (r *Reporter) Exiting() {
	r.println("\nExiting...")
}

func (r *Reporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, line)
}
