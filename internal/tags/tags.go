// Package tags writes and reads the metadata embedded in downloaded songs.
package tags

import (
	"errors"
	"html"
	"io"
	"os"
	"strings"

	"github.com/llehouerou/saavn/internal/catalog"
)

// ErrUnsupportedFormat is returned for content that is neither MP3 nor MP4.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Format is the container of an audio file, detected from its content.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatMP4
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatMP4:
		return "mp4"
	case FormatUnknown:
	}
	return "unknown"
}

// Tag is the metadata written into a downloaded file.
type Tag struct {
	Title    string
	Artist   string
	Album    string
	Year     int
	Language string
	Cover    []byte // JPEG or PNG
}

// FromTrack builds the tag for a catalog track. Catalog strings arrive
// HTML-escaped.
func FromTrack(t *catalog.Track) Tag {
	return Tag{
		Title:    clean(t.Name),
		Artist:   clean(strings.Join(t.ArtistNames(), ", ")),
		Album:    clean(t.Album.Name),
		Year:     int(t.Year),
		Language: clean(t.Language),
	}
}

func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// Sniff detects the container from the first bytes of a file.
func Sniff(header []byte) Format {
	switch {
	case len(header) >= 8 && string(header[4:8]) == "ftyp":
		return FormatMP4
	case len(header) >= 3 && string(header[:3]) == "ID3":
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return FormatMP3
	}
	return FormatUnknown
}

// SniffFile detects the container of the file at path.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}
	return Sniff(header[:n]), nil
}

// detectMimeType returns the MIME type of cover data.
func detectMimeType(data []byte) string {
	if len(data) >= 8 && string(data[1:4]) == "PNG" {
		return "image/png"
	}
	return "image/jpeg"
}
