// internal/app/update.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/budskip/internal/errmsg"
	"github.com/llehouerou/budskip/internal/mpris"
	"github.com/llehouerou/budskip/internal/skip"
	"github.com/llehouerou/budskip/internal/tap"
)

// Update handles messages and returns updated model and commands.
// No handler returns tea.Quit: per-event failures become status lines.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PlayersListedMsg:
		return m.handlePlayersListed(msg)

	case mpris.PresenceChanged:
		return m.handlePresenceChanged(msg)

	case mpris.Seeked:
		return m.handleSeeked(msg)

	case TapTimeoutMsg:
		m.Detector.Expire(msg.Generation)
		return m, nil

	case SkipDoneMsg:
		return m.handleSkipDone(msg)
	}
	return m, nil
}

// handlePlayersListed watches every player present at startup. A failed
// listing counts as no players.
func (m Model) handlePlayersListed(msg PlayersListedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Report.Failure(errmsg.OpListPlayers, "", msg.Err)
	}

	var listening []string
	for _, name := range msg.Players {
		added, err := m.Players.Watch(name)
		if err != nil {
			m.Report.Failure(errmsg.OpSubscribe, mpris.ShortName(name), err)
			continue
		}
		if added {
			listening = append(listening, name)
		}
	}

	m.Report.InitialPlayers(listening)
	m.Report.Ready()
	return m, nil
}

func (m Model) handlePresenceChanged(msg mpris.PresenceChanged) (tea.Model, tea.Cmd) {
	if !msg.Present {
		// The sender is gone, so a failed unsubscribe changes nothing.
		_, _ = m.Players.Unwatch(msg.Player)
		m.Report.PlayerClosed(msg.Player)
		return m, nil
	}

	added, err := m.Players.Watch(msg.Player)
	if err != nil {
		m.Report.Failure(errmsg.OpSubscribe, mpris.ShortName(msg.Player), err)
		return m, nil
	}
	if added {
		m.Report.PlayerStarted(msg.Player)
	}
	return m, nil
}

func (m Model) handleSeeked(msg mpris.Seeked) (tea.Model, tea.Cmd) {
	// Seeks already queued when a player was dropped are stale.
	if !m.Players.Watching(msg.Player) {
		return m, nil
	}

	dec := m.Detector.Seek(msg.Player, msg.At)
	switch dec.Kind {
	case tap.Armed:
		return m, TapTimeoutCmd(m.Detector.Timing().Window, dec.Generation)
	case tap.Skip:
		return m, SkipCmd(m.Dispatcher, dec.Player)
	case tap.Dropped, tap.Counted:
	}
	return m, nil
}

func (m Model) handleSkipDone(msg SkipDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.Outcome {
	case skip.Skipped:
		m.Detector.SkipSucceeded(msg.At)
		m.Report.Skipped(msg.At, msg.Player)
	case skip.Failed:
		m.Detector.SkipAborted()
		m.Report.SkipFailed(msg.At, msg.Player, msg.Err)
	case skip.Unresolved:
		// The player vanished between the taps and the skip; the gesture is lost.
		m.Detector.SkipAborted()
	}
	return m, nil
}
