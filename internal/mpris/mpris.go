//go:build linux

// Package mpris exposes the playback engine on the session bus so desktop
// media keys and applets can control it.
package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/saavn/internal/player"
)

const busName = "saavn"

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

var _ Player = (*player.Engine)(nil)

// Adapter serves one Player on D-Bus.
type Adapter struct {
	server *server.Server
}

// New registers p on the session bus and serves it in the background.
func New(p Player) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{p: p}),
	}
	go func() {
		_ = a.server.Listen()
	}()
	return a, nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

// Quit is refused: the TUI owns its lifecycle.
func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error) { return "Saavn", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. There is
// only ever one track, so Next and Previous do nothing.
type playerAdapter struct {
	p Player
}

func (a *playerAdapter) Next() error { return nil }
func (a *playerAdapter) Previous() error { return nil }

func (a *playerAdapter) Pause() error {
	a.p.Pause()
	return nil
}

func (a *playerAdapter) PlayPause() error {
	a.p.Toggle()
	return nil
}

// Stop pauses. Closing the player is left to the user in the TUI, since
// it also discards the resume point.
func (a *playerAdapter) Stop() error {
	a.p.Pause()
	return nil
}

func (a *playerAdapter) Play() error {
	a.p.Play()
	return nil
}

func (a *playerAdapter) Seek(offset types.Microseconds) error {
	a.p.SeekBy(float64(offset) / 1e6)
	return nil
}

func (a *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	a.p.Seek(float64(position) / 1e6)
	return nil
}

//nolint:revive // Method name required by interface.
func (a *playerAdapter) OpenUri(_ string) error { return nil }

func (a *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(a.p.State()), nil
}

func playbackStatus(s player.State) types.PlaybackStatus {
	switch s {
	case player.ReadyPlaying:
		return types.PlaybackStatusPlaying
	case player.Loading, player.ReadyPaused:
		return types.PlaybackStatusPaused
	case player.Empty, player.Ended:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func (a *playerAdapter) Rate() (float64, error) { return 1.0, nil }
func (a *playerAdapter) SetRate(_ float64) error { return nil }

func (a *playerAdapter) Metadata() (types.Metadata, error) {
	s := a.p.Snapshot()
	t := s.Track
	if t == nil {
		return types.Metadata{}, nil
	}
	length := s.Duration
	if length <= 0 {
		length = t.Duration
	}
	return types.Metadata{
		TrackId: dbus.ObjectPath(trackPath(t.Identity())),
		Length:  types.Microseconds(length * 1e6),
		Title:   t.Name,
		Artist:  t.ArtistNames(),
		Album:   t.Album.Name,
		ArtUrl:  t.ImageURL(),
	}, nil
}

func (a *playerAdapter) Volume() (float64, error) {
	return a.p.Snapshot().Volume, nil
}

func (a *playerAdapter) SetVolume(level float64) error {
	a.p.SetVolume(level)
	return nil
}

func (a *playerAdapter) Position() (int64, error) {
	return int64(a.p.Snapshot().Position * 1e6), nil
}

func (a *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (a *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (a *playerAdapter) CanGoNext() (bool, error) { return false, nil }
func (a *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }
func (a *playerAdapter) CanPause() (bool, error) { return true, nil }
func (a *playerAdapter) CanControl() (bool, error) { return true, nil }

func (a *playerAdapter) CanPlay() (bool, error) {
	return a.p.State().IsMounted(), nil
}

func (a *playerAdapter) CanSeek() (bool, error) {
	return a.p.State().IsReady(), nil
}

// trackPath builds a valid D-Bus object path from a track identity.
func trackPath(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
