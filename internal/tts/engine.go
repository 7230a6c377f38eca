package tts

import (
	"context"
	"fmt"
	"os"
)

type EngineType string

const (
	EngineTypeNone          EngineType = "none"
	EngineTypeMock          EngineType = "mock"
	EngineTypeESpeak        EngineType = "espeak"
	EngineTypeGoogleClassic EngineType = "googleclassic"
	EngineTypeAuto          EngineType = "auto" // Google when credentials exist, else eSpeak
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a new TTS engine based on the provided config
func NewEngine(ctx context.Context, config Config) (Engine, error) {
	if config.Type == EngineTypeAuto.String() {
		config.Type = bestEngine().String()
	}

	switch config.Type {
	case EngineTypeNone.String(), "":
		return silentEngine{}, nil

	case EngineTypeMock.String():
		return NewMockTTSEngine(config), nil

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	case EngineTypeGoogleClassic.String():
		return newGoogleClassicTTSEngine(ctx, config)

	default:
		return nil, fmt.Errorf("unsupported TTS engine type: %s", config.Type)
	}
}

func bestEngine() EngineType {
	if hasGoogleCredentials() {
		return EngineTypeGoogleClassic
	}
	return EngineTypeESpeak
}

// hasGoogleCredentials checks if Google Cloud credentials are available
func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}

type silentEngine struct{}

func (silentEngine) Speak(string) error { return nil }
func (silentEngine) Stop() error        { return nil }
func (silentEngine) Close() error       { return nil }
