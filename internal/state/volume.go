package state

import (
	"context"
	"encoding/json"
	"errors"
)

const volumeKey = "volume"

// VolumeState represents the saved volume preference.
type VolumeState struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// GetVolume returns the saved volume, or full volume when none was saved
// or the saved value is unreadable.
func GetVolume(ctx context.Context, s Store) (VolumeState, error) {
	return LoadVolume(ctx, s, 1.0)
}

// LoadVolume is GetVolume with fallback as the unmuted default level.
func LoadVolume(ctx context.Context, s Store, fallback float64) (VolumeState, error) {
	def := VolumeState{Volume: fallback}

	data, err := s.Get(ctx, volumeKey)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	var v VolumeState
	if err := json.Unmarshal(data, &v); err != nil || v.Volume < 0 || v.Volume > 1 {
		return def, nil //nolint:nilerr // corrupt preference falls back to default
	}
	return v, nil
}

// SaveVolume persists the volume preference.
func SaveVolume(ctx context.Context, s Store, v VolumeState) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, volumeKey, data)
}
