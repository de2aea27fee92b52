// Package player implements the playback engine: a state machine over a
// single audio output that auto-starts newly mounted tracks once, restores
// a saved position once, and reports progress upward on a throttled cadence.
package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/logging"
)

const (
	// DefaultReportInterval bounds how often progress is reported upward.
	DefaultReportInterval = 2 * time.Second
	// DefaultSampleInterval is the local display refresh cadence while playing.
	DefaultSampleInterval = 50 * time.Millisecond
)

// ErrNoSource is reported when a mounted track has no audio URL.
var ErrNoSource = errors.New("track has no audio source")

// Session is the transient playback state of the mounted track.
type Session struct {
	Track               *catalog.Track
	Playing             bool
	Position            float64 // seconds
	Duration            float64 // seconds, 0 until the source is loaded
	Volume              float64 // 0..1
	Muted               bool
	VolumeBeforeMute    float64
	HasAutoStarted      bool
	HasRestoredPosition bool
}

// Engine drives one Output. All methods are safe to call from any
// goroutine; every transition happens under a single lock.
type Engine struct {
	mu       sync.Mutex
	out      Output
	reporter Reporter
	log      *zap.Logger
	run      func(func())
	now      func() time.Time

	sampleInterval time.Duration
	throttle       *Throttle

	state         State
	session       Session
	savedPosition float64

	// gen identifies the current mount. Async completions carrying an
	// older generation are dropped.
	gen        uint64
	loadCancel context.CancelFunc
	// playToken identifies the pending playback start; bumping it turns a
	// late confirmation into a no-op.
	playToken   uint64
	playPending bool
	// loopToken identifies the running progress loop and changes on every
	// start and stop.
	loopToken  uint64
	loopCancel context.CancelFunc

	subs   []*Subscription
	subsMu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for swallowed failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = logging.OrNop(l) }
}

// WithClock overrides the wall clock used by the report throttle.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRunner overrides how asynchronous work (load, playback start) is
// launched. The default runs each job on its own goroutine.
func WithRunner(run func(func())) Option {
	return func(e *Engine) { e.run = run }
}

// WithSampleInterval sets the progress sampling cadence.
func WithSampleInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.sampleInterval = d
		}
	}
}

// WithVolume sets the initial volume and mute state.
func WithVolume(level float64, muted bool) Option {
	return func(e *Engine) {
		level = clampLevel(level)
		e.session.Volume = level
		if level > 0 {
			e.session.VolumeBeforeMute = level
		}
		if muted || level == 0 {
			e.session.Muted = true
			e.session.Volume = 0
		}
	}
}

// NewEngine creates an engine driving out and reporting to reporter.
func NewEngine(out Output, reporter Reporter, opts ...Option) *Engine {
	e := &Engine{
		out:            out,
		reporter:       reporter,
		log:            zap.NewNop(),
		run:            func(f func()) { go f() },
		now:            time.Now,
		sampleInterval: DefaultSampleInterval,
		session:        Session{Volume: 1, VolumeBeforeMute: 1},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.throttle = NewThrottle(DefaultReportInterval, e.now)
	out.SetVolume(e.session.Volume)
	return e
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns a copy of the playback session.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	if s.Track != nil {
		t := *s.Track
		s.Track = &t
	}
	return s
}

// Subscribe returns a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	sub := newSubscription()
	e.subsMu.Lock()
	e.subs = append(e.subs, sub)
	e.subsMu.Unlock()
	return sub
}

// Mount attaches track to the output. Mounting the track that is already
// mounted (same identity) changes nothing. Any other track replaces the
// current mount: the progress loop stops, the session resets and the new
// source loads in the background. savedPosition is applied once the source
// is ready.
func (e *Engine) Mount(track catalog.Track, savedPosition float64) {
	e.mu.Lock()
	if e.session.Track != nil && e.session.Track.SameAs(&track) {
		e.mu.Unlock()
		return
	}

	e.detachLocked()
	e.gen++
	gen := e.gen

	t := track
	e.session.Track = &t
	e.session.Playing = false
	e.session.Position = 0
	e.session.Duration = 0
	e.session.HasAutoStarted = false
	e.session.HasRestoredPosition = false
	e.savedPosition = max(savedPosition, 0)
	e.throttle.Reset()
	// Always announce a mount, even when replacing a track still loading.
	e.transitionLocked(Loading, true)

	url := t.AudioURL()
	if url == "" {
		e.log.Warn("mounted track has no audio source", zap.String("track", t.Identity()))
		e.publishError(ErrorEvent{Operation: "load", TrackID: t.Identity(), Err: ErrNoSource})
		e.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.loadCancel = cancel
	e.mu.Unlock()

	e.run(func() {
		err := e.out.Load(ctx, url, func() { e.ended(gen) })
		e.loaded(gen, err)
	})
}

// OnReady handles the source becoming playable for the current mount.
// Repeated calls are harmless: the saved position is restored at most once
// and auto-start is attempted at most once per mount.
func (e *Engine) OnReady() {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()
	e.ready(gen)
}

// OnEnded handles the current source reaching its end.
func (e *Engine) OnEnded() {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()
	e.ended(gen)
}

// Play starts playback of a ready, paused track.
func (e *Engine) Play() {
	e.mu.Lock()
	if !e.state.CanPlay() || e.playPending {
		e.mu.Unlock()
		return
	}
	gen, token := e.beginPlayLocked()
	e.mu.Unlock()

	e.startPlayback(gen, token)
}

// Pause pauses playback and immediately reports the position upward.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.CanPause() && !e.playPending {
		return
	}
	e.pauseLocked()
	if e.state == ReadyPlaying {
		e.setStateLocked(ReadyPaused)
	}
	if e.session.Position > 0 {
		e.reporter.ReportPosition(e.session.Position)
	}
}

// Toggle switches between playing and paused.
func (e *Engine) Toggle() {
	e.mu.Lock()
	playing := e.state == ReadyPlaying || e.playPending
	e.mu.Unlock()

	if playing {
		e.Pause()
	} else {
		e.Play()
	}
}

// Seek moves the playback position. It does not report upward by itself.
func (e *Engine) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seekLocked(seconds)
}

// SeekBy moves the playback position by delta seconds.
func (e *Engine) SeekBy(delta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.IsReady() {
		e.session.Position = e.out.Position()
	}
	e.seekLocked(e.session.Position + delta)
}

func (e *Engine) seekLocked(seconds float64) {
	if !e.state.IsMounted() {
		return
	}
	seconds = max(seconds, 0)
	if e.session.Duration > 0 {
		seconds = min(seconds, e.session.Duration)
	}
	e.out.SetPosition(seconds)
	e.session.Position = seconds
}

// SetVolume sets the output level. Zero mutes; a positive level unmutes and
// is remembered as the level to restore only if the output was not muted.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	level = clampLevel(level)
	e.out.SetVolume(level)
	if level == 0 {
		e.session.Volume = 0
		e.session.Muted = true
		return
	}
	if !e.session.Muted {
		e.session.VolumeBeforeMute = level
	}
	e.session.Volume = level
	e.session.Muted = false
}

// ToggleMute mutes, remembering the current level, or unmutes, restoring it.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Muted {
		e.unmuteLocked()
	} else {
		e.muteLocked()
	}
}

// Mute silences the output. Muting while muted changes nothing.
func (e *Engine) Mute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.session.Muted {
		e.muteLocked()
	}
}

// Unmute restores the level from before muting (1 if none was remembered).
func (e *Engine) Unmute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.Muted {
		e.unmuteLocked()
	}
}

func (e *Engine) muteLocked() {
	e.session.VolumeBeforeMute = e.session.Volume
	e.session.Volume = 0
	e.session.Muted = true
	e.out.SetVolume(0)
}

func (e *Engine) unmuteLocked() {
	restore := e.session.VolumeBeforeMute
	if restore <= 0 {
		restore = 1
	}
	e.session.Volume = restore
	e.session.Muted = false
	e.out.SetVolume(restore)
}

// Close is the user closing the player: the position is flushed, playback
// stops and the reporter is told to persist a terminal snapshot.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Track == nil {
		return
	}
	e.flushLocked()
	e.detachLocked()
	e.reporter.Close()
	e.clearLocked()
}

// Unmount detaches the current track without user intent (for example on
// exit). A non-zero position is flushed upward and the loop stops.
func (e *Engine) Unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Track == nil {
		return
	}
	e.flushLocked()
	e.detachLocked()
	e.clearLocked()
}

// Shutdown unmounts and closes all subscriptions.
func (e *Engine) Shutdown() {
	e.Unmount()

	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
}

// loaded completes an asynchronous Load for generation gen.
func (e *Engine) loaded(gen uint64, err error) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	if err != nil {
		id := e.session.Track.Identity()
		if !errors.Is(err, context.Canceled) {
			e.log.Warn("load audio source", zap.String("track", id), zap.Error(err))
			e.publishError(ErrorEvent{Operation: "load", TrackID: id, Err: err})
		}
		e.mu.Unlock()
		return
	}
	e.session.Duration = e.out.Duration()
	e.out.SetVolume(e.session.Volume)
	e.mu.Unlock()

	e.ready(gen)
}

func (e *Engine) ready(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || e.session.Track == nil {
		e.mu.Unlock()
		return
	}
	if e.state == Loading {
		e.session.Duration = e.out.Duration()
		e.setStateLocked(ReadyPaused)
	}

	if !e.session.HasRestoredPosition && e.savedPosition > 0 {
		e.out.SetPosition(e.savedPosition)
		e.session.Position = e.savedPosition
		e.session.HasRestoredPosition = true
	}

	if e.session.HasAutoStarted {
		e.mu.Unlock()
		return
	}
	e.session.HasAutoStarted = true
	_, token := e.beginPlayLocked()
	e.mu.Unlock()

	e.startPlayback(gen, token)
}

func (e *Engine) beginPlayLocked() (uint64, uint64) {
	e.playToken++
	e.playPending = true
	return e.gen, e.playToken
}

// startPlayback asks the output to play. The engine only enters
// ReadyPlaying once the output confirms.
func (e *Engine) startPlayback(gen, token uint64) {
	e.run(func() {
		err := e.out.Play(context.Background())
		e.playResolved(gen, token, err)
	})
}

func (e *Engine) playResolved(gen, token uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || token != e.playToken {
		// Superseded by a pause, close or remount. Make sure a late
		// success does not leave the output running.
		if err == nil && gen == e.gen && e.state != ReadyPlaying {
			e.out.Pause()
		}
		return
	}
	e.playPending = false

	if err != nil {
		e.log.Warn("playback start rejected",
			zap.String("track", e.session.Track.Identity()), zap.Error(err))
		e.session.Playing = false
		if e.state != ReadyPaused {
			e.setStateLocked(ReadyPaused)
		}
		e.publishError(ErrorEvent{Operation: "play", TrackID: e.session.Track.Identity(), Err: err})
		return
	}

	e.session.Playing = true
	e.setStateLocked(ReadyPlaying)
	e.startLoopLocked()
}

func (e *Engine) ended(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen || !e.state.IsReady() {
		return
	}
	e.stopLoopLocked()
	e.playToken++
	e.playPending = false
	e.session.Playing = false
	e.out.Pause()
	e.out.SetPosition(0)
	e.session.Position = 0
	e.reporter.ReportPosition(0)
	e.setStateLocked(Ended)
}

// pauseLocked stops output and the loop and samples the final position.
func (e *Engine) pauseLocked() {
	e.playToken++
	e.playPending = false
	e.out.Pause()
	e.session.Playing = false
	e.stopLoopLocked()
	if e.state.IsReady() {
		e.session.Position = e.out.Position()
	}
}

func (e *Engine) flushLocked() {
	if e.state.IsReady() {
		e.session.Position = e.out.Position()
	}
	if e.session.Position > 0 {
		e.reporter.ReportPosition(e.session.Position)
	}
}

// detachLocked stops everything tied to the current mount and releases
// the output.
func (e *Engine) detachLocked() {
	if e.session.Track == nil {
		return
	}
	e.pauseLocked()
	if e.loadCancel != nil {
		e.loadCancel()
		e.loadCancel = nil
	}
	e.out.Unload()
}

func (e *Engine) clearLocked() {
	e.gen++
	e.session.Track = nil
	e.session.Playing = false
	e.session.Position = 0
	e.session.Duration = 0
	e.session.HasAutoStarted = false
	e.session.HasRestoredPosition = false
	e.savedPosition = 0
	e.setStateLocked(Empty)
}

// startLoopLocked starts the progress loop bound to the playing state.
func (e *Engine) startLoopLocked() {
	e.stopLoopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	e.loopToken++
	token := e.loopToken
	e.loopCancel = cancel
	interval := e.sampleInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.tick(token)
			}
		}
	}()
}

// stopLoopLocked cancels the progress loop. Once it returns no tick of the
// cancelled loop can touch engine state.
func (e *Engine) stopLoopLocked() {
	if e.loopCancel != nil {
		e.loopCancel()
		e.loopCancel = nil
	}
	e.loopToken++
}

// tick samples the output for display and reports upward when the
// throttle allows it.
func (e *Engine) tick(token uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if token != e.loopToken || e.loopCancel == nil || !e.session.Playing {
		return
	}
	pos := e.out.Position()
	e.session.Position = pos
	e.session.Duration = e.out.Duration()
	e.publishPosition(PositionChange{Position: pos, Duration: e.session.Duration})

	if e.throttle.Allow() {
		e.reporter.ReportPosition(pos)
	}
}

func (e *Engine) setStateLocked(s State) {
	e.transitionLocked(s, false)
}

func (e *Engine) transitionLocked(s State, force bool) {
	if e.state == s && !force {
		return
	}
	prev := e.state
	e.state = s
	var track *catalog.Track
	if e.session.Track != nil {
		t := *e.session.Track
		track = &t
	}
	e.log.Debug("playback state", zap.Stringer("from", prev), zap.Stringer("to", s))

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.sendState(StateChange{Previous: prev, Current: s, Track: track})
	}
	e.subsMu.Unlock()
}

func (e *Engine) publishPosition(p PositionChange) {
	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.sendPosition(p)
	}
	e.subsMu.Unlock()
}

func (e *Engine) publishError(ev ErrorEvent) {
	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.sendError(ev)
	}
	e.subsMu.Unlock()
}

func clampLevel(level float64) float64 {
	if !(level > 0) {
		return 0
	}
	return min(level, 1)
}
