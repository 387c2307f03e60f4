package audio

import (
	"errors"
	"testing"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpeaker struct {
	initErr  error
	inits    int
	played   []beep.Streamer
	bufSize  int
	initRate beep.SampleRate
}

func newTestBell(cfg config.AudioConfig, fs *fakeSpeaker) *Bell {
	b := NewBell(cfg, nil)
	b.initSpeaker = func(rate beep.SampleRate, buf int) error {
		fs.inits++
		fs.initRate = rate
		fs.bufSize = buf
		return fs.initErr
	}
	b.play = func(s ...beep.Streamer) { fs.played = append(fs.played, s...) }
	b.lock = func() {}
	b.unlock = func() {}
	return b
}

func TestDisabledBellIsSilent(t *testing.T) {
	fs := &fakeSpeaker{}
	b := newTestBell(config.AudioConfig{Enabled: false, Volume: 0.5}, fs)

	require.NoError(t, b.Initialize())
	assert.NoError(t, b.Alert())
	assert.Zero(t, fs.inits)
	assert.Zero(t, b.mixer.Len())
	assert.False(t, b.Enabled())
}

func TestInitializeOpensSpeakerOnce(t *testing.T) {
	fs := &fakeSpeaker{}
	b := newTestBell(config.AudioConfig{Enabled: true, Volume: 0.5, SampleRate: 48000}, fs)

	require.NoError(t, b.Initialize())
	require.NoError(t, b.Initialize())
	assert.Equal(t, 1, fs.inits)
	assert.Equal(t, beep.SampleRate(48000), fs.initRate)
	assert.Equal(t, 4800, fs.bufSize)
	require.Len(t, fs.played, 1)
}

func TestAlertQueuesBell(t *testing.T) {
	fs := &fakeSpeaker{}
	b := newTestBell(config.AudioConfig{Enabled: true, Volume: 0.5}, fs)
	require.NoError(t, b.Initialize())

	require.NoError(t, b.Alert())
	require.NoError(t, b.Alert())
	assert.Equal(t, 2, b.mixer.Len())

	b.Close()
	assert.Zero(t, b.mixer.Len())
}

func TestAlertAfterFailedInitReportsUnavailable(t *testing.T) {
	deviceErr := errors.New("no audio device")
	fs := &fakeSpeaker{initErr: deviceErr}
	b := newTestBell(config.AudioConfig{Enabled: true, Volume: 0.5}, fs)

	err := b.Initialize()
	require.ErrorIs(t, err, deviceErr)

	err = b.Alert()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, deviceErr)
}

func TestAlertBeforeInitialize(t *testing.T) {
	b := newTestBell(config.AudioConfig{Enabled: true, Volume: 0.5}, &fakeSpeaker{})
	assert.ErrorIs(t, b.Alert(), ErrUnavailable)
}

func TestNewBellDefaultsSampleRate(t *testing.T) {
	b := NewBell(config.AudioConfig{Enabled: true}, nil)
	assert.Equal(t, config.DefaultSampleRate, b.cfg.SampleRate)
}
