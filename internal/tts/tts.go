// Package tts reads quotes aloud.
package tts

// Config selects and tunes a speech engine.
type Config struct {
	Type      string
	Voice     string
	Speed     float64
	Volume    float64
	CachePath string
}

// Engine interface for text-to-speech functionality. Speak blocks until the
// text has been read.
type Engine interface {
	Speak(text string) error
	Stop() error
	Close() error
}
