// Package session owns the single "current track" and brokers its
// persistence. It decides on startup whether the last track is resumed.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saavn/internal/catalog"
	"github.com/llehouerou/saavn/internal/logging"
	"github.com/llehouerou/saavn/internal/snapshot"
	"github.com/llehouerou/saavn/internal/state"
)

const writeTimeout = 2 * time.Second

// Controller is the source of truth for the current track.
// Storage failures are logged and never returned: playback must go on
// even when the store is unavailable.
type Controller struct {
	mu       sync.Mutex
	store    state.Store
	log      *zap.Logger
	now      func() time.Time
	current  *catalog.Track
	position float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for swallowed storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = logging.OrNop(l) }
}

// WithClock overrides the time source used for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller persisting through store.
func New(store state.Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectTrack makes track current, forgets any remembered position and
// persists a fresh snapshot at position 0.
func (c *Controller) SelectTrack(track catalog.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := track
	c.current = &t
	c.position = 0
	c.persistLocked(false)
}

// ReportPosition records the playback position of the current track.
// It is ignored when nothing is current or seconds is not positive.
func (c *Controller) ReportPosition(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || !(seconds > 0) {
		return
	}
	c.position = seconds
	c.persistLocked(false)
}

// Close writes a terminal snapshot marked as closed by the user and clears
// the current track. The next startup will not resume it.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}
	c.persistLocked(true)
	c.current = nil
	c.position = 0
}

// LoadOnStartup reads the persisted snapshot and, unless the user closed
// the player, makes its track current with its saved position. A missing
// or unreadable snapshot leaves the controller empty. It reports whether a
// track was resumed.
func (c *Controller) LoadOnStartup(ctx context.Context) bool {
	data, err := c.store.Get(ctx, state.SnapshotKey)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			c.log.Warn("read playback snapshot", zap.Error(err))
		}
		return false
	}

	snap, ok := snapshot.Decode(data)
	if !ok {
		c.log.Warn("discard unreadable playback snapshot", zap.Int("bytes", len(data)))
		return false
	}
	if !snap.ShouldResume() {
		c.log.Debug("last track was closed by user, not resuming",
			zap.String("track", snap.Track.Identity()))
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	t := snap.Track
	c.current = &t
	c.position = snap.PositionSeconds
	c.log.Info("resuming last track",
		zap.String("track", t.Identity()),
		zap.Float64("position", snap.PositionSeconds))
	return true
}

// Current returns a copy of the current track (nil if none) and the
// remembered position for it.
func (c *Controller) Current() (*catalog.Track, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil, 0
	}
	t := *c.current
	return &t, c.position
}

func (c *Controller) persistLocked(closed bool) {
	snap := snapshot.Snapshot{
		Track:           *c.current,
		PositionSeconds: c.position,
		ClosedByUser:    closed,
		SavedAt:         c.now(),
	}
	data, err := snapshot.Encode(snap)
	if err != nil {
		c.log.Warn("encode playback snapshot", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.store.Put(ctx, state.SnapshotKey, data); err != nil {
		c.log.Warn("write playback snapshot",
			zap.String("track", snap.Track.Identity()),
			zap.Bool("closed", closed),
			zap.Error(err))
	}
}
