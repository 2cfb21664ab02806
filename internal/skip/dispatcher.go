// Package skip sends the "next track" command to a media player.
package skip

import (
	"fmt"
	"time"
)

// Handle controls one media player.
type Handle interface {
	// Next advances the player to the next track.
	Next() error
}

// Resolver finds a Handle for a player identity.
type Resolver interface {
	ResolvePlayer(player string) (Handle, error)
}

// Outcome classifies a dispatch.
type Outcome int

const (
	// Skipped means the player accepted the Next command.
	Skipped Outcome = iota
	// Unresolved means no handle could be obtained; nothing was sent.
	Unresolved
	// Failed means the Next command returned an error.
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "Skipped"
	case Unresolved:
		return "Unresolved"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result describes one dispatch.
type Result struct {
	Player  string
	Outcome Outcome
	At      time.Time // when the dispatch finished
	Err     error
}

// Dispatcher issues skips. There is no retry: the user repeating the
// gesture is the retry.
type Dispatcher struct {
	resolver Resolver
	now      func() time.Time
}

// New creates a Dispatcher resolving players through r.
func New(r Resolver) *Dispatcher {
	return &Dispatcher{resolver: r, now: time.Now}
}

// Dispatch resolves player and sends it Next. It blocks for the duration of
// the bus round trips.
func (d *Dispatcher) Dispatch(player string) Result {
	h, err := d.resolver.ResolvePlayer(player)
	if err != nil {
		return Result{
			Player:  player,
			Outcome: Unresolved,
			At:      d.now(),
			Err:     fmt.Errorf("resolve %s: %w", player, err),
		}
	}

	if err := h.Next(); err != nil {
		return Result{Player: player, Outcome: Failed, At: d.now(), Err: err}
	}
	return Result{Player: player, Outcome: Skipped, At: d.now()}
}
