// Package mpris talks to media players over the D-Bus session bus using the
// MPRIS interface. It lists players, watches their Seeked signals and
// presence, and sends them Next.
package mpris

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MPRIS and D-Bus names.
const (
	NamePrefix      = "org.mpris.MediaPlayer2"
	ObjectPath      = "/org/mpris/MediaPlayer2"
	PlayerInterface = "org.mpris.MediaPlayer2.Player"

	dbusName      = "org.freedesktop.DBus"
	dbusPath      = "/org/freedesktop/DBus"
	dbusInterface = "org.freedesktop.DBus"

	seekedMember           = "Seeked"
	seekedSignal           = PlayerInterface + "." + seekedMember
	nameOwnerChangedMember = "NameOwnerChanged"
	nameOwnerChangedSignal = dbusInterface + "." + nameOwnerChangedMember
	listNamesMethod        = dbusInterface + ".ListNames"
	getNameOwnerMethod     = dbusInterface + ".GetNameOwner"
	nextMethod             = PlayerInterface + ".Next"
)

var (
	// ErrNoOwner is returned when a player name is not owned by any process.
	ErrNoOwner = errors.New("player is not running")
	// ErrUnsupported is returned on platforms without a D-Bus session bus.
	ErrUnsupported = errors.New("MPRIS is only supported on Linux")
)

// Seeked is delivered when a watched player reports a seek.
type Seeked struct {
	Player   string
	Position time.Duration
	At       time.Time
}

// PresenceChanged is delivered when an MPRIS name gains or loses its owner.
type PresenceChanged struct {
	Player     string
	WasPresent bool
	Present    bool
}

// Sender receives the events produced by the gateway, typically a
// *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// IsPlayerName reports whether name is an MPRIS player bus name.
func IsPlayerName(name string) bool {
	return strings.HasPrefix(name, NamePrefix+".") && len(name) > len(NamePrefix)+1
}

// ShortName strips the MPRIS prefix: "org.mpris.MediaPlayer2.vlc" -> "vlc".
func ShortName(name string) string {
	return strings.TrimPrefix(name, NamePrefix+".")
}
