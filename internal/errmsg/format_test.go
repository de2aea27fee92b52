//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpDownload,
			err:      nil,
			expected: "",
		},
		{
			name:     "download operation",
			op:       OpDownload,
			err:      errors.New("unexpected status: 403 Forbidden"),
			expected: "Failed to download song: unexpected status: 403 Forbidden",
		},
		{
			name:     "playback operation",
			op:       OpPlay,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "audio load operation",
			op:       OpLoadAudio,
			err:      errors.New("unrecognized audio format"),
			expected: "Failed to load audio: unrecognized audio format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		subject  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpDownload,
			subject:  "Kesariya",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with subject",
			op:       OpDownload,
			subject:  "Kesariya",
			err:      errors.New("disk full"),
			expected: "Failed to download song 'Kesariya': disk full",
		},
		{
			name:     "empty subject falls back to Format",
			op:       OpLoadAudio,
			subject:  "",
			err:      errors.New("timeout"),
			expected: "Failed to load audio: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.subject, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.subject, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpSearch, OpPlay, OpLoadAudio, OpDownload,
		OpLoadSnapshot, OpSaveVolume, OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}

func TestSearchFailed(t *testing.T) {
	if SearchFailed != "Failed to fetch songs. Please try again." {
		t.Errorf("SearchFailed = %q", SearchFailed)
	}
}
