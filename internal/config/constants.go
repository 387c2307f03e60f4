package config

import "time"

// Timer bounds and defaults, in seconds.
const (
	DefaultDurationSeconds = 300
	MinDurationSeconds     = 60
	MaxDurationSeconds     = 3600
	DurationStepSeconds    = 60
)

// TickInterval is the granularity of the countdown.
const TickInterval = time.Second

// DefaultPresetMinutes are the quick-select durations.
var DefaultPresetMinutes = []int{5, 10, 15, 20}

// Audio defaults.
const (
	DefaultVolume     = 0.5
	DefaultSampleRate = 44100
)

// Completion bell shape.
const (
	BellSoundDuration           = 3 * time.Second
	BellSoundAttack             = 8 * time.Millisecond
	BellSoundFundamentalRelease = 2800 * time.Millisecond
	BellSoundOvertoneRelease    = 1400 * time.Millisecond
	BellFundamentalHz           = 528.0
	AudioBufferDuration         = 100 * time.Millisecond
)

// Application settings.
const (
	AppName        = "spiritualpath"
	DBFileName     = "sessions.db"
	ConfigFileName = "config.yaml"
	LogFileName    = "spiritualpath.log"
	DefaultUserID  = "local"
	DefaultTheme   = "lavender"
)

// Settings keys.
const (
	SettingLastDuration = "last_duration"
	SettingTheme        = "theme"
)

// Env overrides.
const (
	EnvUser         = "SPIRITUALPATH_USER"
	EnvDB           = "SPIRITUALPATH_DB"
	EnvAudioEnabled = "SPIRITUALPATH_AUDIO_ENABLED"
	EnvVolume       = "SPIRITUALPATH_VOLUME"
)
