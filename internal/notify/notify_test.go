package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgencyValues(t *testing.T) {
	// Values are fixed by the freedesktop notification protocol.
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

func TestDownloaded(t *testing.T) {
	n := Downloaded("Kesariya - Arijit Singh.mp3", 8_400_000)

	assert.Equal(t, "Download complete", n.Title)
	assert.Equal(t, "Kesariya - Arijit Singh.mp3 (8.4 MB)", n.Body)
	assert.Equal(t, UrgencyNormal, n.Urgency)
}

func TestDownloadFailed(t *testing.T) {
	n := DownloadFailed("x.mp3", errors.New("unexpected status: 403 Forbidden"))

	assert.Equal(t, "Download failed", n.Title)
	assert.Contains(t, n.Body, "403 Forbidden")
	assert.Contains(t, n.Body, "browser")
}

func TestRecorder(t *testing.T) {
	var r Recorder

	require.NoError(t, r.Notify(Notification{Title: "a"}))
	require.NoError(t, r.Notify(Notification{Title: "b"}))

	sent := r.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "b", sent[1].Title)
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Notify(Downloaded("x.mp3", 1)))
}
