package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Mock(t *testing.T) {
	engine, err := NewEngine(context.Background(), Config{Type: "mock"})
	require.NoError(t, err)

	require.NoError(t, engine.Speak("“Hello”"))
	require.NoError(t, engine.Speak("again"))

	mock, ok := engine.(*MockTTSEngine)
	require.True(t, ok)
	assert.Equal(t, []string{"“Hello”", "again"}, mock.Spoken())
	assert.NoError(t, engine.Close())
}

func TestNewEngine_None(t *testing.T) {
	for _, typ := range []string{"none", ""} {
		engine, err := NewEngine(context.Background(), Config{Type: typ})
		require.NoError(t, err)
		assert.NoError(t, engine.Speak("nothing happens"))
		assert.NoError(t, engine.Stop())
	}
}

func TestNewEngine_Unsupported(t *testing.T) {
	_, err := NewEngine(context.Background(), Config{Type: "sapi"})
	assert.EqualError(t, err, "unsupported TTS engine type: sapi")
}

func TestBestEngine(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	assert.Equal(t, EngineTypeGoogleClassic, bestEngine())
}

func TestESpeakArgs(t *testing.T) {
	e := &ESpeakEngine{config: Config{Voice: "en-gb", Speed: 1.2, Volume: 0.5}}
	assert.Equal(t, []string{"-v", "en-gb", "-s", "210", "-a", "50", "--", "-dash first"}, e.args("-dash first"))

	e = &ESpeakEngine{config: Config{Voice: "default", Speed: 1, Volume: 1}}
	assert.Equal(t, []string{"-s", "175", "-a", "100", "--", "hi"}, e.args("hi"))
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en-GB", languageCode("en-GB-Chirp3-HD-Umbriel"))
	assert.Equal(t, "de-DE", languageCode("de-DE-Standard-A"))
	assert.Equal(t, "en-US", languageCode("custom"))
}

func TestVolumeGainDb(t *testing.T) {
	assert.InDelta(t, 0, volumeGainDb(1), 1e-9)
	assert.InDelta(t, -6.0206, volumeGainDb(0.5), 1e-3)
	assert.Equal(t, -96.0, volumeGainDb(0))
	assert.Equal(t, 16.0, volumeGainDb(100))
}

func TestAudioFileName_DependsOnVoice(t *testing.T) {
	a := audioFileName("quote", "en-GB-Chirp3-HD-Umbriel")
	b := audioFileName("quote", "en-US-Standard-C")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, audioFileName("quote", "en-GB-Chirp3-HD-Umbriel"))
	assert.Regexp(t, `^[0-9a-f]{32}\.mp3$`, a)
}
