// Package config loads quotenest settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Source SourceConfig `mapstructure:"source" validate:"required"`
	Cache  CacheConfig  `mapstructure:"cache"  validate:"required"`
	Log    LogConfig    `mapstructure:"log"    validate:"required"`
	Speech SpeechConfig `mapstructure:"speech" validate:"required"`
}

// SourceConfig describes the quote site and how it is fetched.
type SourceConfig struct {
	Origin    string        `mapstructure:"origin"     validate:"required,url"`
	UserAgent string        `mapstructure:"user_agent" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"required,min=1s"`
}

// CacheConfig locates the cached dataset.
type CacheConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// LogConfig contains logging settings. An empty File logs to stderr.
type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"required,oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"required,oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0,max=100"`
}

// SpeechConfig controls reading quotes aloud.
type SpeechConfig struct {
	Engine    string  `mapstructure:"engine"     validate:"required,oneof=none mock espeak googleclassic auto"`
	Voice     string  `mapstructure:"voice"`
	Speed     float64 `mapstructure:"speed"      validate:"min=0.1,max=4"`
	Volume    float64 `mapstructure:"volume"     validate:"min=0,max=2"`
	CachePath string  `mapstructure:"cache_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.origin", "http://quotes.toscrape.com")
	v.SetDefault("source.user_agent", "quotenest/1.0 (+https://quotes.toscrape.com)")
	v.SetDefault("source.timeout", "30s")

	v.SetDefault("cache.dir", DefaultCacheDir())

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("speech.engine", "none")
	v.SetDefault("speech.voice", "default")
	v.SetDefault("speech.speed", 1.0)
	v.SetDefault("speech.volume", 1.0)
	v.SetDefault("speech.cache_path", filepath.Join(DefaultCacheDir(), "tts"))
}

// Load reads configuration from defaults, an optional quotenest.yaml and
// QUOTENEST_* environment variables, in increasing precedence. An explicit
// path must exist; otherwise a missing file is ignored.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUOTENEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quotenest")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.quotenest")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultCacheDir returns the appropriate cache directory
func DefaultCacheDir() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "quotenest")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".quotenest", "cache")
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "cache")
	}

	return "cache"
}
