package tts

import "sync"

// MockTTSEngine records what it was asked to say instead of playing audio.
type MockTTSEngine struct {
	mu      sync.Mutex
	config  Config
	spoken  []string
	stopped bool
}

func NewMockTTSEngine(c Config) *MockTTSEngine {
	return &MockTTSEngine{config: c}
}

func (m *MockTTSEngine) Speak(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = append(m.spoken, text)
	m.stopped = false
	return nil
}

// Spoken returns every text passed to Speak, oldest first.
func (m *MockTTSEngine) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}

func (m *MockTTSEngine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

func (m *MockTTSEngine) Close() error {
	return m.Stop()
}
