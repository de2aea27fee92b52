package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/logging"
)

// ErrNotLoaded is returned by Play when no source is loaded.
var ErrNotLoaded = errors.New("no source loaded")

const maxSourceBytes = 64 << 20

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Speaker is the beep-backed Output. Sources are downloaded whole, decoded
// in memory and mixed into the process-wide speaker.
type Speaker struct {
	mu       sync.Mutex
	client   *http.Client
	log      *zap.Logger
	streamer beep.StreamSeekCloser
	format   beep.Format
	watch    *endWatch
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
}

// NewSpeaker creates an output fetching sources with client (nil means a
// client with a one minute timeout).
func NewSpeaker(client *http.Client, log *zap.Logger) *Speaker {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	return &Speaker{client: client, log: logging.OrNop(log), level: 1}
}

// Load fetches and decodes url, replacing any loaded source. The new
// source starts paused.
func (s *Speaker) Load(ctx context.Context, url string, onEnded func()) error {
	data, err := s.fetch(ctx, url)
	if err != nil {
		return err
	}

	streamer, format, err := decode(url, data)
	if err != nil {
		return err
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer mount cancelled this load while it was decoding.
	if err := ctx.Err(); err != nil {
		streamer.Close()
		return err
	}
	s.clearLocked()

	s.streamer = streamer
	s.format = format
	s.watch = &endWatch{onEnd: onEnded}
	s.watch.src = s.sourceLocked()
	s.ctrl = &beep.Ctrl{Streamer: s.watch, Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	s.applyVolumeLocked()

	speaker.Play(s.volume)

	s.log.Debug("source loaded",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Int("sample_rate", int(format.SampleRate)))
	return nil
}

func (s *Speaker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch source: unexpected status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}

// sourceLocked returns the loaded stream converted to the speaker rate.
func (s *Speaker) sourceLocked() beep.Streamer {
	if s.format.SampleRate == speakerSampleRate {
		return s.streamer
	}
	return beep.Resample(4, s.format.SampleRate, speakerSampleRate, s.streamer)
}

func (s *Speaker) Play(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return ErrNotLoaded
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// SetPosition seeks the loaded source. Seeking re-arms the end watcher so a
// finished track can be played again.
func (s *Speaker) SetPosition(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return
	}
	target := s.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	target = min(max(target, 0), s.streamer.Len())

	speaker.Lock()
	defer speaker.Unlock()
	if err := s.streamer.Seek(target); err != nil {
		s.log.Warn("seek", zap.Float64("seconds", seconds), zap.Error(err))
		return
	}
	// The resampler buffers ahead, so it is rebuilt after every seek.
	s.watch.src = s.sourceLocked()
	s.watch.fired = false
}

func (s *Speaker) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Position()).Seconds()
}

func (s *Speaker) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len()).Seconds()
}

// SetVolume sets the level (0.0 to 1.0). The level is kept across loads.
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.applyVolumeLocked()
	speaker.Unlock()
}

func (s *Speaker) applyVolumeLocked() {
	s.volume.Silent = s.level <= 0
	s.volume.Volume = levelToVolume(s.level)
}

func (s *Speaker) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Speaker) clearLocked() {
	if s.streamer == nil {
		return
	}
	speaker.Clear()
	if err := s.streamer.Close(); err != nil {
		s.log.Debug("close source", zap.Error(err))
	}
	s.streamer = nil
	s.watch = nil
	s.ctrl = nil
	s.volume = nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}

// endWatch keeps the mixer fed with silence once its source is exhausted
// and fires onEnd once per pass through the source.
type endWatch struct {
	src   beep.Streamer
	onEnd func()
	fired bool
}

func (w *endWatch) Stream(samples [][2]float64) (int, bool) {
	if !w.fired {
		n, ok := w.src.Stream(samples)
		if ok && n > 0 {
			return n, true
		}
		w.fired = true
		if w.onEnd != nil {
			// Called from the speaker goroutine with the speaker lock held.
			go w.onEnd()
		}
	}
	clear(samples)
	return len(samples), true
}

func (w *endWatch) Err() error { return nil }
