package player

import "github.com/llehouerou/saavn/internal/catalog"

const eventBufferSize = 16

// StateChange is emitted on every engine state transition.
type StateChange struct {
	Previous State
	Current  State
	Track    *catalog.Track
}

// PositionChange is emitted on every progress sample while playing.
type PositionChange struct {
	Position float64
	Duration float64
}

// ErrorEvent is emitted when a recoverable failure happens. The engine
// never surfaces these as returned errors.
type ErrorEvent struct {
	Operation string // "load", "play"
	TrackID   string
	Err       error
}

// Subscription provides event channels for a subscriber.
// Sends never block: when a subscriber falls behind, events are dropped.
type Subscription struct {
	StateChanged    <-chan StateChange
	PositionChanged <-chan PositionChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	stateCh    chan StateChange
	positionCh chan PositionChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e PositionChange) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
