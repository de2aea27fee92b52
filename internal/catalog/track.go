// Package catalog models JioSaavn song records and talks to the search API.
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

const unknownArtist = "Unknown Artist"

// Track is a song record as returned by the search API.
// Tracks are never mutated after decoding; callers only select from them.
type Track struct {
	ID          string    `json:"id,omitempty"`
	SongID      string    `json:"song_id,omitempty"` // legacy identifier
	Name        string    `json:"name"`
	Year        Year      `json:"year,omitempty"`
	Duration    float64   `json:"duration,omitempty"` // seconds
	Language    string    `json:"language,omitempty"`
	Album       Album     `json:"album"`
	Artists     Artists   `json:"artists"`
	Image       []Variant `json:"image,omitempty"`       // ascending resolution
	DownloadURL []Variant `json:"downloadUrl,omitempty"` // ascending quality
	URL         string    `json:"url,omitempty"`
}

type Album struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Artists struct {
	Primary  []Artist `json:"primary"`
	Featured []Artist `json:"featured,omitempty"`
	All      []Artist `json:"all,omitempty"`
}

type Artist struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Variant is one quality tier of an image or audio asset.
type Variant struct {
	Quality string `json:"quality"`
	URL     string `json:"url"`
}

// Year is a release year. The API sends it either as a string or a number.
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			// Non-numeric years are treated as unknown rather than failing the whole record.
			*y = 0
			return nil //nolint:nilerr // unknown year is valid
		}
		*y = Year(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year(n)
	return nil
}

// Identity returns the track ID, falling back to the legacy song_id field.
func (t *Track) Identity() string {
	if t == nil {
		return ""
	}
	if t.ID != "" {
		return t.ID
	}
	return t.SongID
}

// SameAs reports whether both tracks have the same non-empty identity.
func (t *Track) SameAs(other *Track) bool {
	id := t.Identity()
	return id != "" && id == other.Identity()
}

// ArtistNames returns the primary artist names in order.
func (t *Track) ArtistNames() []string {
	names := make([]string, 0, len(t.Artists.Primary))
	for _, a := range t.Artists.Primary {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// ArtistLine returns the primary artists joined for display.
func (t *Track) ArtistLine() string {
	names := t.ArtistNames()
	if len(names) == 0 {
		return unknownArtist
	}
	return strings.Join(names, ", ")
}

// AudioURL returns the best available audio source, or "" if there is none.
func (t *Track) AudioURL() string {
	return pickBest(t.DownloadURL)
}

// ImageURL returns the highest resolution image, or "" if there is none.
func (t *Track) ImageURL() string {
	return pickBest(t.Image)
}

// FileName returns the name a downloaded copy of the track is saved under.
func (t *Track) FileName() string {
	name := cleanFileComponent(t.Name)
	if name == "" {
		name = "Unknown Track"
	}
	artists := cleanFileComponent(strings.Join(t.ArtistNames(), ", "))
	return name + " - " + artists + ".mp3"
}

// pickBest prefers the last variant, falling back to the first.
func pickBest(variants []Variant) string {
	if len(variants) == 0 {
		return ""
	}
	if u := variants[len(variants)-1].URL; u != "" {
		return u
	}
	return variants[0].URL
}

func cleanFileComponent(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '-'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
