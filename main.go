package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/budskip/internal/app"
	"github.com/llehouerou/budskip/internal/config"
	"github.com/llehouerou/budskip/internal/errmsg"
	"github.com/llehouerou/budskip/internal/mpris"
	"github.com/llehouerou/budskip/internal/status"
	"github.com/llehouerou/budskip/internal/tap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("budskip", version)
		return
	}

	os.Exit(run())
}

func run() int {
	report := status.New(os.Stdout)

	// The session bus belongs to the invoking user; root would talk to the
	// wrong bus or none at all.
	if os.Geteuid() == 0 {
		report.Warning("budskip should NOT be run as root or with sudo.")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		report.Failure(errmsg.OpLoadConfig, "", err)
		cfg = &config.Config{}
	}
	timing := cfg.Timing()
	report.Banner(timing)

	gw, err := mpris.Connect()
	if err != nil {
		report.Fatal(errmsg.OpConnectBus, err)
		return 1
	}
	defer gw.Close()

	if err := gw.WatchPresence(); err != nil {
		report.Fatal(errmsg.OpWatchPresence, err)
		return 1
	}

	m := app.New(gw, tap.New(timing), report)
	p := tea.NewProgram(m, app.ProgramOptions()...)
	gw.Start(p)

	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		_ = fm.Players.Close()
	}

	switch {
	case errors.Is(err, tea.ErrInterrupted):
		report.Exiting()
	case err != nil:
		report.Fatal(errmsg.OpRunLoop, err)
		return 1
	}
	return 0
}
