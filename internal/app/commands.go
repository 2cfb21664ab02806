// internal/app/commands.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/budskip/internal/skip"
)

// ListPlayersCmd returns a command that lists the players on the bus.
func ListPlayersCmd(gw Gateway) tea.Cmd {
	return func() tea.Msg {
		names, err := gw.ListPlayers()
		return PlayersListedMsg{Players: names, Err: err}
	}
}

// TapTimeoutCmd returns a command that sends TapTimeoutMsg after window.
func TapTimeoutCmd(window time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(window, func(_ time.Time) tea.Msg {
		return TapTimeoutMsg{Generation: generation}
	})
}

// SkipCmd returns a command that dispatches a skip to player off the event
// loop and reports the outcome as SkipDoneMsg.
func SkipCmd(d *skip.Dispatcher, player string) tea.Cmd {
	return func() tea.Msg {
		return SkipDoneMsg(d.Dispatch(player))
	}
}
