package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akyairhashvil/spiritualpath/internal/util"
	"gopkg.in/yaml.v3"
)

// Config holds the user-editable settings.
type Config struct {
	// UserID attributes recorded sessions.
	UserID string `yaml:"user_id"`

	DatabasePath string `yaml:"database_path"`
	LogPath      string `yaml:"log_path"`
	LogLevel     string `yaml:"log_level"`
	Theme        string `yaml:"theme"`

	Timer TimerConfig `yaml:"timer"`
	Audio AudioConfig `yaml:"audio"`
}

// TimerConfig bounds the countdown. All values are seconds.
type TimerConfig struct {
	DefaultSeconds int   `yaml:"default_seconds"`
	MinSeconds     int   `yaml:"min_seconds"`
	MaxSeconds     int   `yaml:"max_seconds"`
	StepSeconds    int   `yaml:"step_seconds"`
	PresetMinutes  []int `yaml:"preset_minutes"`
}

// AudioConfig configures the completion bell.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DefaultConfig returns the default configuration rooted in the XDG data dir.
func DefaultConfig() *Config {
	dataDir := util.DataDir(AppName)
	presets := make([]int, len(DefaultPresetMinutes))
	copy(presets, DefaultPresetMinutes)
	return &Config{
		UserID:       defaultUserID(),
		DatabasePath: filepath.Join(dataDir, DBFileName),
		LogPath:      filepath.Join(dataDir, LogFileName),
		LogLevel:     "info",
		Theme:        DefaultTheme,
		Timer: TimerConfig{
			DefaultSeconds: DefaultDurationSeconds,
			MinSeconds:     MinDurationSeconds,
			MaxSeconds:     MaxDurationSeconds,
			StepSeconds:    DurationStepSeconds,
			PresetMinutes:  presets,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     DefaultVolume,
			SampleRate: DefaultSampleRate,
		},
	}
}

// DefaultPath is where the config file lives when --config is not given.
func DefaultPath() string {
	return filepath.Join(util.ConfigDir(AppName), ConfigFileName)
}

func defaultUserID() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return DefaultUserID
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if user := strings.TrimSpace(os.Getenv(EnvUser)); user != "" {
		c.UserID = user
	}
	if path := strings.TrimSpace(os.Getenv(EnvDB)); path != "" {
		c.DatabasePath = path
	}
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}
	// Volume is given as 0-100.
	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.Volume = float64(util.Clamp(val, 0, 100)) / 100.0
		}
	}
}

// Validate checks the timer bounds and audio settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	t := c.Timer
	if t.MinSeconds <= 0 {
		return fmt.Errorf("timer.min_seconds must be positive, got %d", t.MinSeconds)
	}
	if t.MaxSeconds < t.MinSeconds {
		return fmt.Errorf("timer.max_seconds (%d) is below min_seconds (%d)", t.MaxSeconds, t.MinSeconds)
	}
	if t.DefaultSeconds < t.MinSeconds || t.DefaultSeconds > t.MaxSeconds {
		return fmt.Errorf("timer.default_seconds %d outside [%d, %d]", t.DefaultSeconds, t.MinSeconds, t.MaxSeconds)
	}
	if t.StepSeconds <= 0 {
		return fmt.Errorf("timer.step_seconds must be positive, got %d", t.StepSeconds)
	}
	for _, m := range t.PresetMinutes {
		if s := m * 60; s < t.MinSeconds || s > t.MaxSeconds {
			return fmt.Errorf("timer preset %dm outside [%d, %d] seconds", m, t.MinSeconds, t.MaxSeconds)
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	return nil
}

// PresetSeconds returns the quick-select durations in seconds.
func (t TimerConfig) PresetSeconds() []int {
	out := make([]int, 0, len(t.PresetMinutes))
	for _, m := range t.PresetMinutes {
		out = append(out, m*60)
	}
	return out
}
