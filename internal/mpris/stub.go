//go:build !linux

package mpris

import "github.com/llehouerou/saavn/internal/player"

// Player is the part of the engine driven over MPRIS.
type Player interface {
	State() player.State
	Snapshot() player.Session
	Play()
	Pause()
	Toggle()
	Seek(seconds float64)
	SeekBy(delta float64)
	SetVolume(level float64)
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Player) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
