package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"quotenest/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_TextToFallback(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer

	closer, err := Configure(logger, config.LogConfig{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.WithField("page", 3).Info("scraped")

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "scraped")
	assert.Contains(t, buf.String(), "page=3")
}

func TestConfigure_JSON(t *testing.T) {
	logger := logrus.New()
	var buf bytes.Buffer

	_, err := Configure(logger, config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.WithField("quotes", 10).Debug("page parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "page parsed", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 10, entry["quotes"])
}

func TestConfigure_File(t *testing.T) {
	logger := logrus.New()
	path := filepath.Join(t.TempDir(), "quotenest.log")
	var buf bytes.Buffer

	closer, err := Configure(logger, config.LogConfig{
		Level:      "warn",
		Format:     "text",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, &buf)
	require.NoError(t, err)

	logger.Warn("cache missing")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cache missing")
	assert.Empty(t, buf.String())
}

func TestConfigure_BadLevel(t *testing.T) {
	_, err := Configure(logrus.New(), config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
