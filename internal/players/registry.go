// Package players keeps track of the media players whose seeks are watched.
package players

import (
	"io"
	"slices"
)

// Subscriber starts delivering seek notifications for a player.
// Closing the returned subscription stops them.
type Subscriber interface {
	SubscribeSeek(player string) (io.Closer, error)
}

// Registry is the set of watched players. It is not safe for concurrent use.
type Registry struct {
	sub     Subscriber
	watched map[string]io.Closer
}

// New creates an empty registry subscribing through sub.
func New(sub Subscriber) *Registry {
	return &Registry{
		sub:     sub,
		watched: make(map[string]io.Closer),
	}
}

// Watch subscribes to player unless it is already watched.
// Returns true if a new subscription was made.
func (r *Registry) Watch(player string) (bool, error) {
	if _, ok := r.watched[player]; ok {
		return false, nil
	}
	s, err := r.sub.SubscribeSeek(player)
	if err != nil {
		return false, err
	}
	r.watched[player] = s
	return true, nil
}

// Unwatch forgets player and closes its subscription. Returns true if the
// player was watched. The close error is informational: the player is
// removed either way.
func (r *Registry) Unwatch(player string) (bool, error) {
	s, ok := r.watched[player]
	if !ok {
		return false, nil
	}
	delete(r.watched, player)
	if s == nil {
		return true, nil
	}
	return true, s.Close()
}

// Watching reports whether player is watched.
func (r *Registry) Watching(player string) bool {
	_, ok := r.watched[player]
	return ok
}

// Len returns the number of watched players.
func (r *Registry) Len() int {
	return len(r.watched)
}

// Players returns the watched players in sorted order.
func (r *Registry) Players() []string {
	names := make([]string, 0, len(r.watched))
	for name := range r.watched {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Close unsubscribes from every player and empties the registry.
// It returns the first close error.
func (r *Registry) Close() error {
	var first error
	for name, s := range r.watched {
		delete(r.watched, name)
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
