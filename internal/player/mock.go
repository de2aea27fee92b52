// internal/player/mock.go
package player

import (
	"context"
	"sync"
)

// MockOutput is a test double for Output. Load and Play resolve
// immediately with the configured errors.
type MockOutput struct {
	mu       sync.Mutex
	loadErr  error
	playErr  error
	playing  bool
	loaded   bool
	position float64
	duration float64
	volume   float64
	onEnded  func()

	loadCalls   []string
	playCalls   int
	pauseCalls  int
	unloadCalls int
	seeks       []float64
}

// NewMockOutput creates a mock output reporting duration once loaded.
func NewMockOutput(duration float64) *MockOutput {
	return &MockOutput{duration: duration, volume: 1}
}

func (m *MockOutput) Load(_ context.Context, url string, onEnded func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, url)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.loaded = true
	m.position = 0
	m.onEnded = onEnded
	return nil
}

func (m *MockOutput) Play(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *MockOutput) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
}

func (m *MockOutput) SetPosition(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, seconds)
	m.position = seconds
}

func (m *MockOutput) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MockOutput) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return 0
	}
	return m.duration
}

func (m *MockOutput) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *MockOutput) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unloadCalls++
	m.loaded = false
	m.playing = false
	m.onEnded = nil
}

// Test helpers

func (m *MockOutput) SetLoadError(err error) {
	m.mu.Lock()
	m.loadErr = err
	m.mu.Unlock()
}

func (m *MockOutput) SetPlayError(err error) {
	m.mu.Lock()
	m.playErr = err
	m.mu.Unlock()
}

// Advance moves the playhead as if audio had played for seconds.
func (m *MockOutput) Advance(seconds float64) {
	m.mu.Lock()
	m.position += seconds
	m.mu.Unlock()
}

// Finish simulates the source reaching its end.
func (m *MockOutput) Finish() {
	m.mu.Lock()
	fn := m.onEnded
	m.position = m.duration
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *MockOutput) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *MockOutput) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *MockOutput) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *MockOutput) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *MockOutput) UnloadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unloadCalls
}

func (m *MockOutput) Seeks() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.seeks...)
}
