// internal/player/interface.go
package player

import "context"

// Output is the single audio resource the engine drives: it fetches and
// decodes a source, then plays it through the sound device.
type Output interface {
	// Load fetches and decodes url. The source is playable once Load
	// returns nil. onEnded is called, from another goroutine, each time
	// playback reaches the end of the source.
	Load(ctx context.Context, url string, onEnded func()) error
	// Play starts output. It either confirms that playback started or
	// reports why it could not.
	Play(ctx context.Context) error
	Pause()
	SetPosition(seconds float64)
	Position() float64
	Duration() float64
	SetVolume(level float64)
	// Unload stops output and releases the current source.
	Unload()
}

// Reporter receives position reports from the engine. It never reads
// engine state back.
type Reporter interface {
	ReportPosition(seconds float64)
	// Close is called when the user explicitly closes the player.
	Close()
}

// Verify implementations at compile time.
var (
	_ Output = (*Speaker)(nil)
	_ Output = (*MockOutput)(nil)
)
