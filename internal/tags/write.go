package tags

import "fmt"

// Write embeds t into the file at path. The container is detected from
// the content, not the file name, since songs are saved as ".mp3"
// whatever their encoding.
func Write(path string, t Tag) error {
	format, err := SniffFile(path)
	if err != nil {
		return fmt.Errorf("detect format: %w", err)
	}
	switch format {
	case FormatMP3:
		return writeMP3Tags(path, t)
	case FormatMP4:
		return writeMP4Tags(path, t)
	case FormatUnknown:
	}
	return ErrUnsupportedFormat
}
