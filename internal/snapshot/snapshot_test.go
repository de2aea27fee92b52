package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/saavn/internal/catalog"
)

func testTrack() catalog.Track {
	return catalog.Track{
		ID:   "t1",
		Name: "Kesariya",
		Artists: catalog.Artists{
			Primary: []catalog.Artist{{Name: "Arijit Singh"}},
		},
		DownloadURL: []catalog.Variant{{Quality: "320kbps", URL: "https://aac/320.mp4"}},
	}
}

func TestEncodeDecode(t *testing.T) {
	saved := time.UnixMilli(1_700_000_000_123)
	in := Snapshot{
		Track:           testTrack(),
		PositionSeconds: 42.5,
		ClosedByUser:    true,
		SavedAt:         saved,
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, ok := Decode(data)
	require.True(t, ok)
	assert.Equal(t, "t1", out.Track.Identity())
	assert.Equal(t, "Kesariya", out.Track.Name)
	assert.InDelta(t, 42.5, out.PositionSeconds, 1e-9)
	assert.True(t, out.ClosedByUser)
	assert.True(t, saved.Equal(out.SavedAt))
}

func TestEncode_WireFields(t *testing.T) {
	data, err := Encode(Snapshot{Track: testTrack(), PositionSeconds: 3, SavedAt: time.UnixMilli(10)})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"track", "playbackTime", "wasClosedByUser", "timestamp"} {
		assert.Contains(t, raw, key)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "{{{"},
		{"json null", "null"},
		{"wrong type", `[1,2,3]`},
		{"missing track", `{"playbackTime":3}`},
		{"anonymous track", `{"track":{"name":"x"},"playbackTime":3}`},
		{"negative position", `{"track":{"id":"a"},"playbackTime":-1}`},
		{"position as string", `{"track":{"id":"a"},"playbackTime":"3"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Decode([]byte(tt.data))
			assert.False(t, ok)
		})
	}
}

func TestDecode_LegacyID(t *testing.T) {
	s, ok := Decode([]byte(`{"track":{"song_id":"old"},"playbackTime":0,"wasClosedByUser":false}`))
	require.True(t, ok)
	assert.Equal(t, "old", s.Track.Identity())
	assert.True(t, s.SavedAt.IsZero())
	assert.True(t, s.ShouldResume())
}

func TestShouldResume(t *testing.T) {
	assert.True(t, Snapshot{}.ShouldResume())
	assert.False(t, Snapshot{ClosedByUser: true}.ShouldResume())
}
