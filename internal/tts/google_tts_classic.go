package tts

import (
	"context"
	"crypto/md5"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const defaultGoogleVoice = "en-GB-Chirp3-HD-Umbriel"

// GoogleClassicTTSEngine synthesizes speech with Google Cloud Text-to-Speech.
// Audio is cached as MP3 per text and voice, so a quote is synthesized once.
type GoogleClassicTTSEngine struct {
	client   *texttospeech.Client
	ctx      context.Context
	config   Config
	cacheDir string

	mu          sync.Mutex
	speakerRate beep.SampleRate
	ctrl        *beep.Ctrl
	stop        chan struct{}
}

func newGoogleClassicTTSEngine(ctx context.Context, config Config) (*GoogleClassicTTSEngine, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	if config.Voice == "" || config.Voice == "default" {
		config.Voice = defaultGoogleVoice
	}

	cacheDir := config.CachePath
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "quotenest-tts")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	return &GoogleClassicTTSEngine{
		client:   client,
		ctx:      ctx,
		config:   config,
		cacheDir: cacheDir,
	}, nil
}

func (g *GoogleClassicTTSEngine) Speak(text string) error {
	path, err := g.synthesize(text)
	if err != nil {
		return err
	}
	return g.play(path)
}

// synthesize returns the path of an MP3 for text, calling the API only when
// it is not cached yet.
func (g *GoogleClassicTTSEngine) synthesize(text string) (string, error) {
	path := filepath.Join(g.cacheDir, audioFileName(text, g.config.Voice))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	audioCfg := &texttospeechpb.AudioConfig{
		AudioEncoding: texttospeechpb.AudioEncoding_MP3,
	}
	// Chirp voices reject speaking rate and gain
	if !strings.Contains(strings.ToLower(g.config.Voice), "chirp") {
		audioCfg.SpeakingRate = g.config.Speed
		audioCfg.VolumeGainDb = volumeGainDb(g.config.Volume)
	}

	resp, err := g.client.SynthesizeSpeech(g.ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(g.config.Voice),
			Name:         g.config.Voice,
		},
		AudioConfig: audioCfg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if err := os.WriteFile(path, resp.AudioContent, 0644); err != nil {
		return "", fmt.Errorf("failed to write MP3 to %s: %w", path, err)
	}
	return path, nil
}

func (g *GoogleClassicTTSEngine) play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cached MP3 %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode MP3 %s: %w", path, err)
	}
	defer streamer.Close()

	g.mu.Lock()
	if g.speakerRate == 0 {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			g.mu.Unlock()
			return fmt.Errorf("failed to initialise speaker: %w", err)
		}
		g.speakerRate = format.SampleRate
	}

	var source beep.Streamer = streamer
	if format.SampleRate != g.speakerRate {
		source = beep.Resample(4, format.SampleRate, g.speakerRate, streamer)
	}

	done := make(chan struct{})
	stop := make(chan struct{})
	g.ctrl = &beep.Ctrl{Streamer: beep.Seq(source, beep.Callback(func() { close(done) }))}
	g.stop = stop
	speaker.Play(g.ctrl)
	g.mu.Unlock()

	select {
	case <-done:
	case <-stop:
	}
	return nil
}

// Stop silences the current quote and releases the blocked Speak call.
func (g *GoogleClassicTTSEngine) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctrl != nil {
		speaker.Lock()
		g.ctrl.Streamer = nil
		speaker.Unlock()
		g.ctrl = nil
	}
	if g.stop != nil {
		close(g.stop)
		g.stop = nil
	}
	return nil
}

func (g *GoogleClassicTTSEngine) Close() error {
	if err := g.Stop(); err != nil {
		return err
	}
	return g.client.Close()
}

func audioFileName(text, voice string) string {
	return fmt.Sprintf("%x.mp3", md5.Sum([]byte(voice+"\x00"+text)))
}

// languageCode takes the locale prefix of a voice name, e.g. en-GB from
// en-GB-Chirp3-HD-Umbriel.
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}

// volumeGainDb maps a linear volume (1 = unchanged) onto the API's gain range.
func volumeGainDb(volume float64) float64 {
	if volume <= 0 {
		return -96
	}
	return math.Max(-96, math.Min(16, 20*math.Log10(volume)))
}
