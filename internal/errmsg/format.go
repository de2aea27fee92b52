// Package errmsg builds the one-line error messages shown in the status bar.
package errmsg

import "fmt"

// Op names a user-facing operation that can fail.
type Op string

const (
	OpSearch       Op = "search songs"
	OpPlay         Op = "start playback"
	OpLoadAudio    Op = "load audio"
	OpDownload     Op = "download song"
	OpLoadSnapshot Op = "restore last track"
	OpSaveVolume   Op = "save volume"
	OpInitialize   Op = "initialize application"
)

// SearchFailed is the message shown when a search request fails.
const SearchFailed = "Failed to fetch songs. Please try again."

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the subject of the operation.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
