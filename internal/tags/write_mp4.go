package tags

import (
	"fmt"
	"strconv"

	"github.com/Sorrow446/go-mp4tag"
)

// writeMP4Tags writes iTunes-style atoms into an MP4/M4A file.
func writeMP4Tags(path string, t Tag) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{
		Title:  t.Title,
		Artist: t.Artist,
		Album:  t.Album,
	}
	if t.Year > 0 {
		tags.Date = strconv.Itoa(t.Year)
	}
	if t.Language != "" {
		tags.Custom = map[string]string{"LANGUAGE": t.Language}
	}
	if len(t.Cover) > 0 {
		tags.Pictures = []*mp4tag.MP4Picture{{Data: t.Cover}}
	}

	if err := mp4.Write(tags, nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
