package tags

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Read returns the metadata embedded in the file at path.
func Read(path string) (Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tag{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tag{}, fmt.Errorf("read tags: %w", err)
	}
	t := Tag{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Year:   m.Year(),
	}
	if pic := m.Picture(); pic != nil {
		t.Cover = pic.Data
	}
	return t, nil
}
