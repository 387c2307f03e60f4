package audio

import (
	"math"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// sine is a fixed-length sine oscillator.
type sine struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{freq: freq, duration: rate.N(duration), rate: rate}
}

func (o *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sine) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. effects.Volume works in powers of
// Base, and log2(0) is -Inf, so zero maps to Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// BellSound is a singing-bowl strike: a fundamental with a faster-decaying
// octave, scaled to volume (0..1).
func BellSound(volume float64, rate beep.SampleRate) beep.Streamer {
	fund := newSine(config.BellFundamentalHz, config.BellSoundDuration, rate)
	fundShaped := newEnvelope(fund, config.BellSoundDuration, config.BellSoundAttack, config.BellSoundFundamentalRelease, rate)

	over := newSine(config.BellFundamentalHz*2, config.BellSoundDuration, rate)
	overShaped := newEnvelope(over, config.BellSoundDuration, config.BellSoundAttack, config.BellSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, volume)
}
