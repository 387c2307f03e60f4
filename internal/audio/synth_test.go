package audio

import (
	"math"
	"testing"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to exhaustion and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never drained")
	return nil
}

func TestSineLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, newSine(440, 250*time.Millisecond, rate))
	require.Len(t, samples, rate.N(250*time.Millisecond))
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d out of range or not mono: %v", i, s)
		}
	}
}

func TestSineDrainedReportsNotOK(t *testing.T) {
	osc := newSine(440, 10*time.Millisecond, beep.SampleRate(8000))
	drain(t, osc)
	n, ok := osc.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, osc.Err())
}

type constant struct{ left int }

func (c *constant) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := len(samples)
	if n > c.left {
		n = c.left
	}
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{1, 1}
	}
	c.left -= n
	return n, true
}

func (c *constant) Err() error { return nil }

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := newEnvelope(&constant{left: 1000}, time.Second, 100*time.Millisecond, 400*time.Millisecond, rate)
	samples := drain(t, env)
	require.Len(t, samples, 1000)

	assert.Equal(t, 0.0, samples[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, samples[50][0], 1e-9)
	assert.Equal(t, 1.0, samples[300][0], "sustain is full scale")
	assert.InDelta(t, 0.5, samples[800][0], 1e-9)
	assert.InDelta(t, 1.0/400, samples[999][0], 1e-9)
}

func TestNewVolumeZeroIsSilent(t *testing.T) {
	samples := drain(t, newVolume(&constant{left: 64}, 0))
	for _, s := range samples {
		assert.Equal(t, [2]float64{0, 0}, s)
	}
}

func TestNewVolumeScalesLinearly(t *testing.T) {
	samples := drain(t, newVolume(&constant{left: 8}, 0.25))
	require.NotEmpty(t, samples)
	assert.InDelta(t, 0.25, samples[0][0], 1e-9)
}

func TestBellSoundStaysUnderVolume(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, BellSound(config.DefaultVolume, rate))
	assert.Len(t, samples, rate.N(config.BellSoundDuration))

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Greater(t, peak, 0.1)
	assert.LessOrEqual(t, peak, config.DefaultVolume+1e-9)
}
