// internal/app/app.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/budskip/internal/players"
	"github.com/llehouerou/budskip/internal/skip"
	"github.com/llehouerou/budskip/internal/status"
	"github.com/llehouerou/budskip/internal/tap"
)

// Gateway is the bus access the event loop needs.
type Gateway interface {
	players.Subscriber
	skip.Resolver
	ListPlayers() ([]string, error)
}

// Model is the event loop state. Every field is only touched from Update,
// so none of it needs locking.
type Model struct {
	Detector   *tap.Detector
	Players    *players.Registry
	Dispatcher *skip.Dispatcher
	Report     *status.Reporter

	gateway Gateway
}

// New creates the model driving detector from gw's events.
func New(gw Gateway, detector *tap.Detector, report *status.Reporter) Model {
	return Model{
		Detector:   detector,
		Players:    players.New(gw),
		Dispatcher: skip.New(gw),
		Report:     report,
		gateway:    gw,
	}
}

// ProgramOptions returns the options for running the model headless: no
// renderer and no keyboard input.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithoutRenderer(),
		tea.WithInput(nil),
	}
}

// Init starts the initial player enumeration.
func (m Model) Init() tea.Cmd {
	return ListPlayersCmd(m.gateway)
}

// View is empty: budskip prints status lines instead of rendering.
func (m Model) View() string {
	return ""
}
