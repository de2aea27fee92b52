// Package download saves a track's audio to disk. When saving fails the
// audio URL is handed to the system browser so the user can still get it.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/logging"
	"github.com/llehouerou/saavn/internal/notify"
	"github.com/llehouerou/saavn/internal/tags"
)

const maxCoverBytes = 10 << 20

// ErrNoSource is returned for a track without any download variant.
var ErrNoSource = errors.New("track has no download source")

// Result describes a finished download attempt.
type Result struct {
	Path     string // written file, empty on fallback
	Size     int64
	Fallback bool // the URL was opened in the browser instead
}

// Downloader writes tracks into a directory.
type Downloader struct {
	dir      string
	client   *http.Client
	notifier notify.Notifier
	open     func(url string) error
	log      *zap.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the client used to fetch audio.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) { d.client = c }
}

// WithNotifier sets where completion and failure notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(d *Downloader) { d.notifier = n }
}

// WithOpener replaces the browser fallback.
func WithOpener(open func(url string) error) Option {
	return func(d *Downloader) { d.open = open }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Downloader) { d.log = logging.OrNop(l) }
}

// New creates a downloader writing into dir.
func New(dir string, opts ...Option) *Downloader {
	d := &Downloader{
		dir:      dir,
		client:   &http.Client{Timeout: 5 * time.Minute},
		notifier: notify.Nop{},
		open:     browser.OpenURL,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dir returns the target directory.
func (d *Downloader) Dir() string { return d.dir }

// Download saves the best variant of track as track.FileName() in the
// target directory. On failure it notifies once, opens the URL in the
// browser and returns a fallback Result along with the error.
func (d *Downloader) Download(ctx context.Context, track catalog.Track) (Result, error) {
	url := track.AudioURL()
	if url == "" {
		return Result{}, ErrNoSource
	}
	name := track.FileName()

	path, size, err := d.save(ctx, &track, url, name)
	if err == nil {
		d.log.Info("track downloaded",
			zap.String("track", track.Identity()),
			zap.String("path", path),
			zap.Int64("bytes", size))
		d.notifyQuietly(notify.Downloaded(name, size))
		return Result{Path: path, Size: size}, nil
	}

	d.log.Warn("download failed, opening in browser",
		zap.String("track", track.Identity()),
		zap.String("url", url),
		zap.Error(err))
	d.notifyQuietly(notify.DownloadFailed(name, err))
	if openErr := d.open(url); openErr != nil {
		d.log.Warn("open download url", zap.Error(openErr))
		return Result{Fallback: true}, errors.Join(err, fmt.Errorf("open browser: %w", openErr))
	}
	return Result{Fallback: true}, err
}

func (d *Downloader) save(ctx context.Context, track *catalog.Track, url, name string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create download dir: %w", err)
	}

	// Write to a temp file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(d.dir, ".saavn-*.part")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("write file: %w", err)
	}
	d.tag(ctx, tmpPath, track)
	if info, err := os.Stat(tmpPath); err == nil {
		size = info.Size()
	}

	path := filepath.Join(d.dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", 0, fmt.Errorf("move file: %w", err)
	}
	return path, size, nil
}

// tag embeds the track metadata and cover. Failures leave the file as
// downloaded.
func (d *Downloader) tag(ctx context.Context, path string, track *catalog.Track) {
	t := tags.FromTrack(track)
	if u := track.ImageURL(); u != "" {
		cover, err := d.fetchCover(ctx, u)
		if err != nil {
			d.log.Debug("fetch cover art", zap.String("url", u), zap.Error(err))
		} else {
			t.Cover = cover
		}
	}

	err := tags.Write(path, t)
	switch {
	case err == nil:
	case errors.Is(err, tags.ErrUnsupportedFormat):
		d.log.Debug("skip tagging", zap.String("track", track.Identity()))
	default:
		d.log.Warn("tag download", zap.String("track", track.Identity()), zap.Error(err))
	}
}

func (d *Downloader) fetchCover(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, err
	}
	return tags.NormalizeCover(data, tags.MaxCoverSize)
}

func (d *Downloader) notifyQuietly(n notify.Notification) {
	if err := d.notifier.Notify(n); err != nil {
		d.log.Debug("desktop notification", zap.Error(err))
	}
}
