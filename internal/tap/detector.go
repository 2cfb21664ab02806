// Package tap turns a stream of MPRIS seek notifications into skip decisions.
//
// A double-tap on wireless earbuds reaches the desktop as two Seeked signals
// in quick succession. The Detector counts seeks inside a short window and
// asks for a skip on the second one, then ignores seeks for a cooldown period
// so the seek caused by the skip itself is not mistaken for a new gesture.
//
// The Detector does no I/O and owns no timers. Callers feed it timestamps,
// schedule the timeout it asks for and report back the outcome of each skip.
// It is not safe for concurrent use; it is meant to be driven from a single
// event loop.
package tap

import "time"

const (
	// DoubleTapWindow is the maximum gap between the two taps of a gesture.
	DoubleTapWindow = 1000 * time.Millisecond

	// CooldownAfterSkip is how long seeks are ignored after a successful skip.
	// It covers the seek the player emits when it changes track.
	CooldownAfterSkip = 1500 * time.Millisecond

	tapsPerGesture = 2
)

// Timing holds the two thresholds driving the detector.
type Timing struct {
	Window   time.Duration
	Cooldown time.Duration
}

// DefaultTiming returns DoubleTapWindow and CooldownAfterSkip.
func DefaultTiming() Timing {
	return Timing{Window: DoubleTapWindow, Cooldown: CooldownAfterSkip}
}

// State is the detection state.
type State int

const (
	StateIdle State = iota
	StateArmed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmed:
		return "Armed"
	default:
		return "Unknown"
	}
}

// DecisionKind tells the caller what to do after a seek.
type DecisionKind int

const (
	// Dropped means the seek was ignored (cooldown or a skip in flight).
	Dropped DecisionKind = iota
	// Counted means the seek was counted but the gesture is not complete.
	Counted
	// Armed means a new window opened; the caller must schedule a timeout
	// of Timing().Window tagged with Decision.Generation.
	Armed
	// Skip means a gesture completed; the caller must dispatch a skip to
	// Decision.Player and report the outcome.
	Skip
)

// String returns the decision name.
func (k DecisionKind) String() string {
	switch k {
	case Dropped:
		return "Dropped"
	case Counted:
		return "Counted"
	case Armed:
		return "Armed"
	case Skip:
		return "Skip"
	default:
		return "Unknown"
	}
}

// Decision is the result of feeding a seek to the detector.
type Decision struct {
	Kind       DecisionKind
	Generation uint64 // set for Armed
	Player     string // set for Skip
}

// Detector is the tap state machine shared by every watched player.
//
// All players feed the same state: one pair of earbuds produces the taps, so
// a gesture is not tied to a particular player.
type Detector struct {
	timing Timing

	firstTapAt    time.Time // zero when no tap is pending
	taps          int
	cooldownUntil time.Time
	generation    uint64
	skipping      bool
}

// New creates an idle detector. Non-positive durations in timing are
// replaced by the defaults.
func New(timing Timing) *Detector {
	if timing.Window <= 0 {
		timing.Window = DoubleTapWindow
	}
	if timing.Cooldown <= 0 {
		timing.Cooldown = CooldownAfterSkip
	}
	return &Detector{timing: timing}
}

// Timing returns the thresholds in use.
func (d *Detector) Timing() Timing {
	return d.timing
}

// Seek records a seek from player observed at the given time.
func (d *Detector) Seek(player string, at time.Time) Decision {
	if d.skipping || d.CoolingDown(at) {
		return Decision{Kind: Dropped}
	}

	if d.taps == 0 {
		return d.arm(at)
	}

	if at.Sub(d.firstTapAt) >= d.timing.Window {
		// The window is over but its timeout has not been delivered yet.
		return d.arm(at)
	}

	d.taps++
	if d.taps < tapsPerGesture {
		return Decision{Kind: Counted}
	}

	d.reset()
	d.skipping = true
	return Decision{Kind: Skip, Player: player}
}

// Expire handles the timeout scheduled for an Armed decision. It returns true
// if the window was closed, false if the timeout is stale.
func (d *Detector) Expire(generation uint64) bool {
	if d.taps == 0 || generation != d.generation {
		return false
	}
	d.reset()
	return true
}

// SkipSucceeded closes the in-flight skip and starts the cooldown at the
// given time.
func (d *Detector) SkipSucceeded(at time.Time) {
	d.skipping = false
	d.cooldownUntil = at.Add(d.timing.Cooldown)
}

// SkipAborted closes the in-flight skip without starting a cooldown.
func (d *Detector) SkipAborted() {
	d.skipping = false
}

// CoolingDown reports whether seeks observed at the given time are ignored
// because of a recent skip.
func (d *Detector) CoolingDown(at time.Time) bool {
	return at.Before(d.cooldownUntil)
}

// Skipping reports whether a skip decision is waiting for its outcome.
func (d *Detector) Skipping() bool {
	return d.skipping
}

// State returns the current detection state.
func (d *Detector) State() State {
	if d.taps == 0 {
		return StateIdle
	}
	return StateArmed
}

// Taps returns the number of taps counted in the open window.
func (d *Detector) Taps() int {
	return d.taps
}

// FirstTapAt returns the time the open window started, and false when idle.
func (d *Detector) FirstTapAt() (time.Time, bool) {
	return d.firstTapAt, d.taps > 0
}

// CooldownUntil returns the end of the current cooldown. The zero time means
// no skip has happened yet.
func (d *Detector) CooldownUntil() time.Time {
	return d.cooldownUntil
}

func (d *Detector) arm(at time.Time) Decision {
	d.generation++
	d.firstTapAt = at
	d.taps = 1
	return Decision{Kind: Armed, Generation: d.generation}
}

func (d *Detector) reset() {
	d.firstTapAt = time.Time{}
	d.taps = 0
}
