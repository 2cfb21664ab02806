// Package app runs the budskip event loop as a headless bubbletea program.
package app

import "github.com/llehouerou/budskip/internal/skip"

// PlayersListedMsg carries the players found on the bus at startup.
type PlayersListedMsg struct {
	Players []string
	Err     error
}

// TapTimeoutMsg is sent when a tap window ends.
// The Generation field is used to ignore timeouts of windows that already
// closed or were re-armed.
type TapTimeoutMsg struct {
	Generation uint64
}

// SkipDoneMsg wraps the outcome of a skip dispatch.
type SkipDoneMsg skip.Result
