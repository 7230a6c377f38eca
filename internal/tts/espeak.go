package tts

import (
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"sync"
)

// ESpeakEngine implements TTS using eSpeak/eSpeak-NG
type ESpeakEngine struct {
	path   string
	config Config
	cmd    *exec.Cmd
	mutex  sync.Mutex
}

func newESpeakEngine(config Config) (*ESpeakEngine, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}
	return &ESpeakEngine{path: path, config: config}, nil
}

func findESpeakExecutable() (string, error) {
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

// args builds the command line. Speed scales the default 175 words per
// minute, volume scales the default amplitude of 100.
func (e *ESpeakEngine) args(text string) []string {
	var args []string
	if e.config.Voice != "" && e.config.Voice != "default" {
		args = append(args, "-v", e.config.Voice)
	}
	args = append(args,
		"-s", strconv.Itoa(int(math.Round(175*e.config.Speed))),
		"-a", strconv.Itoa(int(math.Round(100*e.config.Volume))),
		"--", text,
	)
	return args
}

func (e *ESpeakEngine) Speak(text string) error {
	e.mutex.Lock()
	if e.cmd != nil {
		e.mutex.Unlock()
		return fmt.Errorf("already speaking")
	}
	cmd := exec.Command(e.path, e.args(text)...)
	if err := cmd.Start(); err != nil {
		e.mutex.Unlock()
		return fmt.Errorf("failed to start eSpeak: %w", err)
	}
	e.cmd = cmd
	e.mutex.Unlock()

	err := cmd.Wait()

	e.mutex.Lock()
	e.cmd = nil
	e.mutex.Unlock()

	if err != nil {
		return fmt.Errorf("eSpeak failed: %w", err)
	}
	return nil
}

func (e *ESpeakEngine) Stop() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	return e.cmd.Process.Kill()
}

func (e *ESpeakEngine) Close() error {
	return e.Stop()
}
