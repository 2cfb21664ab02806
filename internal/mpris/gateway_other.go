//go:build !linux

package mpris

import (
	"io"

	"github.com/llehouerou/budskip/internal/skip"
)

// Gateway is unavailable on non-Linux platforms.
type Gateway struct{}

// Connect always fails on non-Linux platforms.
func Connect() (*Gateway, error) {
	return nil, ErrUnsupported
}

func (g *Gateway) ListPlayers() ([]string, error) {
	return nil, ErrUnsupported
}

func (g *Gateway) SubscribeSeek(_ string) (io.Closer, error) {
	return nil, ErrUnsupported
}

func (g *Gateway) WatchPresence() error {
	return ErrUnsupported
}

func (g *Gateway) ResolvePlayer(_ string) (skip.Handle, error) {
	return nil, ErrUnsupported
}

func (g *Gateway) Start(_ Sender) {}

func (g *Gateway) Close() error {
	return nil
}
