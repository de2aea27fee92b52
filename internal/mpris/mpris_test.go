//go:build linux

package mpris

import (
	"testing"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/player"
)

type fakePlayer struct {
	state   player.State
	session player.Session
	calls   []string
	seek    float64
	seekBy  float64
	volume  float64
}

func (f *fakePlayer) State() player.State { return f.state }
func (f *fakePlayer) Snapshot() player.Session { return f.session }
func (f *fakePlayer) Play() { f.calls = append(f.calls, "play") }
func (f *fakePlayer) Pause() { f.calls = append(f.calls, "pause") }
func (f *fakePlayer) Toggle() { f.calls = append(f.calls, "toggle") }
func (f *fakePlayer) Seek(s float64) { f.seek = s }
func (f *fakePlayer) SeekBy(d float64) { f.seekBy = d }
func (f *fakePlayer) SetVolume(l float64) { f.volume = l }

func TestPlaybackStatus(t *testing.T) {
	tests := []struct {
		state player.State
		want  types.PlaybackStatus
	}{
		{player.Empty, types.PlaybackStatusStopped},
		{player.Loading, types.PlaybackStatusPaused},
		{player.ReadyPaused, types.PlaybackStatusPaused},
		{player.ReadyPlaying, types.PlaybackStatusPlaying},
		{player.Ended, types.PlaybackStatusStopped},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, playbackStatus(tt.state))
		})
	}
}

func TestControls(t *testing.T) {
	f := &fakePlayer{}
	a := &playerAdapter{p: f}

	require.NoError(t, a.Play())
	require.NoError(t, a.PlayPause())
	require.NoError(t, a.Pause())
	require.NoError(t, a.Stop())
	require.NoError(t, a.Seek(types.Microseconds(-5_000_000)))
	require.NoError(t, a.SetPosition("", types.Microseconds(90_500_000)))
	require.NoError(t, a.SetVolume(0.4))

	assert.Equal(t, []string{"play", "toggle", "pause", "pause"}, f.calls)
	assert.InDelta(t, -5, f.seekBy, 1e-9)
	assert.InDelta(t, 90.5, f.seek, 1e-9)
	assert.InDelta(t, 0.4, f.volume, 1e-9)
}

func TestMetadata(t *testing.T) {
	track := catalog.Track{
		ID:       "abc",
		Name:     "Kesariya",
		Duration: 268,
		Album:    catalog.Album{Name: "Brahmastra"},
		Artists:  catalog.Artists{Primary: []catalog.Artist{{Name: "Pritam"}, {Name: "Arijit Singh"}}},
		Image:    []catalog.Variant{{Quality: "500x500", URL: "https://img.example/abc.jpg"}},
	}
	f := &fakePlayer{state: player.ReadyPlaying, session: player.Session{Track: &track, Position: 12.5, Volume: 0.7}}
	a := &playerAdapter{p: f}

	meta, err := a.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "Kesariya", meta.Title)
	assert.Equal(t, []string{"Pritam", "Arijit Singh"}, meta.Artist)
	assert.Equal(t, "Brahmastra", meta.Album)
	assert.Equal(t, types.Microseconds(268_000_000), meta.Length)
	assert.Equal(t, "https://img.example/abc.jpg", meta.ArtUrl)
	assert.True(t, meta.TrackId.IsValid())

	pos, err := a.Position()
	require.NoError(t, err)
	assert.Equal(t, int64(12_500_000), pos)

	vol, err := a.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.7, vol, 1e-9)
}

func TestMetadata_NoTrack(t *testing.T) {
	a := &playerAdapter{p: &fakePlayer{}}

	meta, err := a.Metadata()

	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)
	canPlay, _ := a.CanPlay()
	assert.False(t, canPlay)
}

func TestTrackPath_Stable(t *testing.T) {
	assert.Equal(t, trackPath("abc"), trackPath("abc"))
	assert.NotEqual(t, trackPath("abc"), trackPath("abd"))
}
