// internal/player/state.go
package player

// State represents the playback state machine.
//
//	┌───────┐  mount   ┌─────────┐  ready   ┌─────────────┐
//	│ Empty │ ───────▶ │ Loading │ ───────▶ │ ReadyPaused │◀─┐
//	└───────┘          └─────────┘          └─────────────┘  │
//	    ▲                   ▲                 play │  ▲ pause │
//	    │ close/unmount     │ mount (new id)       ▼  │       │ play failed
//	    │                   │               ┌──────────────┐  │
//	    └───────────────────┴────────────── │ ReadyPlaying │ ─┘
//	                                        └──────────────┘
//	                                              │ end of source
//	                                              ▼
//	                                          ┌───────┐
//	                                          │ Ended │ (paused at 0)
//	                                          └───────┘
//
// Valid transitions:
//   - Empty        → Loading      (Mount)
//   - Loading      → ReadyPaused  (source ready; auto-start then runs)
//   - ReadyPaused  → ReadyPlaying (playback start confirmed)
//   - ReadyPlaying → ReadyPaused  (Pause)
//   - ReadyPlaying → Ended        (end of source)
//   - Ended        → ReadyPlaying (Play)
//   - any          → Loading      (Mount of a different track)
//   - any          → Empty        (Close, Unmount)
//
// Toggle() cycles ReadyPlaying ↔ ReadyPaused/Ended (no-op if Empty or Loading).
type State int

const (
	Empty State = iota
	Loading
	ReadyPaused
	ReadyPlaying
	Ended
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Loading:
		return "Loading"
	case ReadyPaused:
		return "ReadyPaused"
	case ReadyPlaying:
		return "ReadyPlaying"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsMounted returns true if a track is attached to the output.
func (s State) IsMounted() bool {
	return s != Empty
}

// IsReady returns true if the source is playable.
func (s State) IsReady() bool {
	return s == ReadyPaused || s == ReadyPlaying || s == Ended
}

// CanPlay returns true if the state allows starting playback.
func (s State) CanPlay() bool {
	return s == ReadyPaused || s == Ended
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == ReadyPlaying
}
