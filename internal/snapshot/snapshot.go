// Package snapshot defines the persisted "what was last playing and where"
// record and its encoding. Decoding never fails loudly: anything that is
// not a usable snapshot decodes as absent.
package snapshot

import (
	"encoding/json"
	"math"
	"time"

	"github.com/llehouerou/saavn/internal/catalog"
)

// Snapshot is the single record the session persists.
type Snapshot struct {
	Track           catalog.Track
	PositionSeconds float64
	ClosedByUser    bool
	SavedAt         time.Time
}

// record is the stored JSON form.
type record struct {
	Track           *catalog.Track `json:"track"`
	PlaybackTime    float64        `json:"playbackTime"`
	WasClosedByUser bool           `json:"wasClosedByUser"`
	Timestamp       int64          `json:"timestamp"` // epoch milliseconds
}

// Encode serializes s for storage.
func Encode(s Snapshot) ([]byte, error) {
	track := s.Track
	return json.Marshal(record{
		Track:           &track,
		PlaybackTime:    s.PositionSeconds,
		WasClosedByUser: s.ClosedByUser,
		Timestamp:       s.SavedAt.UnixMilli(),
	})
}

// Decode parses stored bytes. It reports false for empty input, invalid
// JSON, a missing or anonymous track, or an invalid position.
func Decode(data []byte) (Snapshot, bool) {
	if len(data) == 0 {
		return Snapshot{}, false
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Snapshot{}, false
	}
	if r.Track == nil || r.Track.Identity() == "" {
		return Snapshot{}, false
	}
	if math.IsNaN(r.PlaybackTime) || math.IsInf(r.PlaybackTime, 0) || r.PlaybackTime < 0 {
		return Snapshot{}, false
	}
	s := Snapshot{
		Track:           *r.Track,
		PositionSeconds: r.PlaybackTime,
		ClosedByUser:    r.WasClosedByUser,
	}
	if r.Timestamp > 0 {
		s.SavedAt = time.UnixMilli(r.Timestamp)
	}
	return s, true
}

// ShouldResume reports whether a startup should pick this snapshot up again.
func (s Snapshot) ShouldResume() bool {
	return !s.ClosedByUser
}
