// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConnectBus    Op = "connect to the D-Bus session bus"
	OpWatchPresence Op = "watch media player presence"
	OpLoadConfig    Op = "load configuration"
	OpRunLoop       Op = "run event loop"

	// Player operations
	OpListPlayers Op = "list media players"
	OpSubscribe   Op = "listen to player"

	// Skip
	OpSkip Op = "skip track"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
