//go:build linux

package mpris

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/budskip/internal/skip"
)

const (
	signalBufferSize = 64
	callTimeout      = 2 * time.Second
)

// Gateway is a private connection to the session bus.
type Gateway struct {
	conn    *dbus.Conn
	bus     dbus.BusObject
	signals chan *dbus.Signal

	mu     sync.Mutex
	owners map[string][]string // unique name -> watched players, sorted
	seeks  map[string]string // watched player -> unique name

	startOnce sync.Once
}

// Connect opens a private connection to the session bus.
func Connect() (*Gateway, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return newGateway(conn), nil
}

func newGateway(conn *dbus.Conn) *Gateway {
	g := &Gateway{
		conn:    conn,
		signals: make(chan *dbus.Signal, signalBufferSize),
		owners:  make(map[string][]string),
		seeks:   make(map[string]string),
	}
	if conn != nil {
		g.bus = conn.Object(dbusName, dbusPath)
	}
	return g
}

// ListPlayers returns the MPRIS players currently on the bus, sorted.
func (g *Gateway) ListPlayers() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	var names []string
	if err := g.bus.CallWithContext(ctx, listNamesMethod, 0).Store(&names); err != nil {
		return nil, err
	}
	players := slices.DeleteFunc(names, func(n string) bool { return !IsPlayerName(n) })
	slices.Sort(players)
	return players, nil
}

// SubscribeSeek starts delivering Seeked events for player.
func (g *Gateway) SubscribeSeek(player string) (io.Closer, error) {
	owner, err := g.nameOwner(player)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.bind(owner, player)
	g.seeks[player] = owner
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if err := g.conn.AddMatchSignalContext(ctx, seekMatch(player)...); err != nil {
		g.forget(player)
		return nil, fmt.Errorf("add match for %s: %w", player, err)
	}
	return &subscription{g: g, player: player}, nil
}

// WatchPresence starts delivering PresenceChanged events for MPRIS names.
func (g *Gateway) WatchPresence() error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return g.conn.AddMatchSignalContext(ctx,
		dbus.WithMatchSender(dbusName),
		dbus.WithMatchInterface(dbusInterface),
		dbus.WithMatchMember(nameOwnerChangedMember),
		dbus.WithMatchArg0Namespace(NamePrefix),
	)
}

// ResolvePlayer returns a handle on player, or ErrNoOwner if it is gone.
func (g *Gateway) ResolvePlayer(player string) (skip.Handle, error) {
	if _, err := g.nameOwner(player); err != nil {
		return nil, err
	}
	return &playerHandle{obj: g.conn.Object(player, ObjectPath)}, nil
}

// Start delivers events to s until the connection is closed.
func (g *Gateway) Start(s Sender) {
	g.startOnce.Do(func() {
		g.conn.Signal(g.signals)
		go g.pump(s)
	})
}

// Close closes the bus connection, which also stops the event pump.
func (g *Gateway) Close() error {
	return g.conn.Close()
}

func (g *Gateway) pump(s Sender) {
	for sig := range g.signals {
		if msg := g.translate(sig, time.Now()); msg != nil {
			s.Send(msg)
		}
	}
}

// translate turns a bus signal into a Seeked or PresenceChanged event.
// Returns nil for signals that are not of interest.
func (g *Gateway) translate(sig *dbus.Signal, at time.Time) any {
	switch sig.Name {
	case seekedSignal:
		// One connection may own several watched names. The bus delivers
		// its signal once, so it is attributed to the first name only.
		g.mu.Lock()
		var player string
		if names := g.owners[sig.Sender]; len(names) > 0 {
			player = names[0]
		}
		g.mu.Unlock()
		if player == "" || sig.Path != ObjectPath {
			return nil
		}
		var pos int64
		if len(sig.Body) > 0 {
			pos, _ = sig.Body[0].(int64)
		}
		return Seeked{Player: player, Position: time.Duration(pos) * time.Microsecond, At: at}

	case nameOwnerChangedSignal:
		if len(sig.Body) != 3 {
			return nil
		}
		name, _ := sig.Body[0].(string)
		oldOwner, _ := sig.Body[1].(string)
		newOwner, _ := sig.Body[2].(string)
		if !IsPlayerName(name) {
			return nil
		}
		g.rebind(name, oldOwner, newOwner)
		return PresenceChanged{Player: name, WasPresent: oldOwner != "", Present: newOwner != ""}
	}
	return nil
}

// rebind follows a watched name to its new owner.
func (g *Gateway) rebind(player, oldOwner, newOwner string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seeks[player]; !ok {
		return
	}
	g.unbind(oldOwner, player)
	if newOwner != "" {
		g.bind(newOwner, player)
	}
	g.seeks[player] = newOwner
}

func (g *Gateway) forget(player string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if owner, ok := g.seeks[player]; ok {
		g.unbind(owner, player)
		delete(g.seeks, player)
	}
}

// bind and unbind expect g.mu to be held.
func (g *Gateway) bind(owner, player string) {
	names := g.owners[owner]
	i, found := slices.BinarySearch(names, player)
	if !found {
		g.owners[owner] = slices.Insert(names, i, player)
	}
}

func (g *Gateway) unbind(owner, player string) {
	names := slices.DeleteFunc(g.owners[owner], func(n string) bool { return n == player })
	if len(names) == 0 {
		delete(g.owners, owner)
		return
	}
	g.owners[owner] = names
}

func (g *Gateway) nameOwner(name string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	var owner string
	if err := g.bus.CallWithContext(ctx, getNameOwnerMethod, 0, name).Store(&owner); err != nil {
		return "", fmt.Errorf("%s: %w: %w", name, ErrNoOwner, err)
	}
	return owner, nil
}

func seekMatch(player string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchSender(player),
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(PlayerInterface),
		dbus.WithMatchMember(seekedMember),
	}
}

type subscription struct {
	g      *Gateway
	player string
	once   sync.Once
	err    error
}

// Close removes the match rule. The player may already be gone, so errors
// are informational.
func (s *subscription) Close() error {
	s.once.Do(func() {
		s.g.forget(s.player)
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		s.err = s.g.conn.RemoveMatchSignalContext(ctx, seekMatch(s.player)...)
	})
	return s.err
}

type playerHandle struct {
	obj dbus.BusObject
}

func (p *playerHandle) Next() error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return p.obj.CallWithContext(ctx, nextMethod, 0).Err
}
