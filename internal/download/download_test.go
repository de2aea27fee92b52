package download

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/notify"
	"github.com/llehouerou/saavn/internal/tags"
)

type opener struct {
	urls []string
	err  error
}

func (o *opener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

func trackFor(url string) catalog.Track {
	return catalog.Track{
		ID:          "abc123",
		Name:        "Kesariya",
		Artists:     catalog.Artists{Primary: []catalog.Artist{{Name: "Arijit Singh"}}},
		DownloadURL: []catalog.Variant{{Quality: "96kbps", URL: url + "/low"}, {Quality: "320kbps", URL: url + "/high"}},
	}
}

func setup(t *testing.T, handler http.HandlerFunc) (*Downloader, *httptest.Server, *notify.Recorder, *opener) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &notify.Recorder{}
	op := &opener{}
	d := New(filepath.Join(t.TempDir(), "music"),
		WithHTTPClient(srv.Client()),
		WithNotifier(rec),
		WithOpener(op.Open))
	return d, srv, rec, op
}

func TestDownload_WritesBestVariant(t *testing.T) {
	d, srv, rec, op := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/high" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("audio-bytes"))
	})

	res, err := d.Download(context.Background(), trackFor(srv.URL))
	require.NoError(t, err)

	assert.False(t, res.Fallback)
	assert.Equal(t, filepath.Join(d.Dir(), "Kesariya - Arijit Singh.mp3"), res.Path)
	assert.Equal(t, int64(11), res.Size)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(data))

	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Download complete", sent[0].Title)
	assert.Contains(t, sent[0].Body, "11 B")
	assert.Empty(t, op.urls)

	entries, err := os.ReadDir(d.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestDownload_HTTPFailureFallsBackToBrowser(t *testing.T) {
	d, srv, rec, op := setup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	res, err := d.Download(context.Background(), trackFor(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")

	assert.True(t, res.Fallback)
	assert.Empty(t, res.Path)
	assert.Equal(t, []string{srv.URL + "/high"}, op.urls)
	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Download failed", sent[0].Title)

	_, statErr := os.Stat(filepath.Join(d.Dir(), "Kesariya - Arijit Singh.mp3"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownload_BrowserFailureIsJoined(t *testing.T) {
	d, srv, _, op := setup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	op.err = errors.New("no browser")

	res, err := d.Download(context.Background(), trackFor(srv.URL))

	assert.True(t, res.Fallback)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no browser")
	assert.Contains(t, err.Error(), "502")
}

func TestDownload_NoSource(t *testing.T) {
	d, _, rec, op := setup(t, func(http.ResponseWriter, *http.Request) {})

	_, err := d.Download(context.Background(), catalog.Track{ID: "x", Name: "Silent"})

	assert.ErrorIs(t, err, ErrNoSource)
	assert.Empty(t, rec.Sent())
	assert.Empty(t, op.urls)
}

func TestDownload_Overwrites(t *testing.T) {
	var calls atomic.Int32
	d, srv, _, _ := setup(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte("first"))
			return
		}
		_, _ = w.Write([]byte("second"))
	})

	_, err := d.Download(context.Background(), trackFor(srv.URL))
	require.NoError(t, err)
	res, err := d.Download(context.Background(), trackFor(srv.URL))
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDownload_TagsMP3WithCover(t *testing.T) {
	frame := append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)
	audio := bytes.Repeat(frame, 3)
	var cover bytes.Buffer
	require.NoError(t, jpeg.Encode(&cover, image.NewRGBA(image.Rect(0, 0, 50, 50)), nil))

	d, srv, _, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/high":
			_, _ = w.Write(audio)
		case "/cover.jpg":
			_, _ = w.Write(cover.Bytes())
		default:
			http.NotFound(w, r)
		}
	})
	track := trackFor(srv.URL)
	track.Album = catalog.Album{Name: "Brahmastra"}
	track.Year = 2022
	track.Image = []catalog.Variant{{Quality: "500x500", URL: srv.URL + "/cover.jpg"}}

	res, err := d.Download(context.Background(), track)
	require.NoError(t, err)

	got, err := tags.Read(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Kesariya", got.Title)
	assert.Equal(t, "Arijit Singh", got.Artist)
	assert.Equal(t, "Brahmastra", got.Album)
	assert.Equal(t, 2022, got.Year)
	assert.Equal(t, cover.Bytes(), got.Cover)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Size, "size reflects the tagged file")
}

func TestDownload_CoverFailureStillTags(t *testing.T) {
	frame := append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)
	d, srv, _, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/high" {
			_, _ = w.Write(bytes.Repeat(frame, 3))
			return
		}
		http.NotFound(w, r)
	})
	track := trackFor(srv.URL)
	track.Image = []catalog.Variant{{Quality: "500x500", URL: srv.URL + "/missing.jpg"}}

	res, err := d.Download(context.Background(), track)
	require.NoError(t, err)

	got, err := tags.Read(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Kesariya", got.Title)
	assert.Empty(t, got.Cover)
}

func TestNew_DefaultsToSilentNotifier(t *testing.T) {
	d := New(t.TempDir())

	assert.Equal(t, notify.Nop{}, d.notifier)
}
