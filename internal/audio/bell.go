// Package audio rings the completion bell through the system speaker.
package audio

import (
	"errors"
	"sync"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// ErrUnavailable is returned by Alert when sound is enabled but no output
// device could be opened.
var ErrUnavailable = errors.New("audio output unavailable")

// Bell plays the completion sound. A disabled Bell is silent and never fails.
type Bell struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	logger      *zap.Logger
	mixer       *beep.Mixer
	initialized bool
	initErr     error

	// swapped in tests
	initSpeaker func(beep.SampleRate, int) error
	play        func(...beep.Streamer)
	lock        func()
	unlock      func()
}

var _ timer.Alerter = (*Bell)(nil)

// NewBell creates a bell for cfg. Call Initialize before the first Alert.
func NewBell(cfg config.AudioConfig, logger *zap.Logger) *Bell {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = config.DefaultSampleRate
	}
	return &Bell{
		cfg:         cfg,
		logger:      logger,
		mixer:       &beep.Mixer{},
		initSpeaker: speaker.Init,
		play:        speaker.Play,
		lock:        speaker.Lock,
		unlock:      speaker.Unlock,
	}
}

// Enabled reports whether the bell will try to make sound.
func (b *Bell) Enabled() bool {
	return b.cfg.Enabled
}

// Initialize opens the speaker. A failure is returned for logging but leaves
// the bell usable: later Alerts report ErrUnavailable.
func (b *Bell) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.Enabled || b.initialized {
		return nil
	}
	rate := beep.SampleRate(b.cfg.SampleRate)
	if err := b.initSpeaker(rate, rate.N(config.AudioBufferDuration)); err != nil {
		b.initErr = err
		b.logger.Warn("audio init failed", zap.Error(err))
		return err
	}
	b.play(b.mixer)
	b.initialized = true
	b.initErr = nil
	b.logger.Debug("audio initialized", zap.Int("sample_rate", b.cfg.SampleRate))
	return nil
}

// Alert queues one bell strike and returns without waiting for playback.
func (b *Bell) Alert() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.cfg.Enabled {
		return nil
	}
	if !b.initialized {
		if b.initErr != nil {
			return errors.Join(ErrUnavailable, b.initErr)
		}
		return ErrUnavailable
	}
	sound := BellSound(b.cfg.Volume, beep.SampleRate(b.cfg.SampleRate))
	b.lock()
	b.mixer.Add(sound)
	b.unlock()
	return nil
}

// Close silences anything still ringing.
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.lock()
	b.mixer.Clear()
	b.unlock()
	b.initialized = false
}
