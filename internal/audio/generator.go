package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine wave with a short fade in and out.
type tone struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	n    int
}

func newTone(sr beep.SampleRate, freq float64, d time.Duration) *tone {
	return &tone{sr: sr, freq: freq, n: sr.N(d)}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.n {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		sample := 0.3 * envelope(g.pos, g.n, g.sr) * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error { return nil }

// sweep glides linearly from one frequency to another.
type sweep struct {
	sr       beep.SampleRate
	from, to float64
	phase    float64
	pos      int
	n        int
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{sr: sr, from: from, to: to, n: sr.N(d)}
}

func (g *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.n {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.n)
		freq := g.from + (g.to-g.from)*progress

		sample := 0.25 * envelope(g.pos, g.n, g.sr) * math.Sin(2*math.Pi*g.phase)
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

// buzz is a low tone with harmonics.
type buzz struct {
	sr   beep.SampleRate
	freq float64
	pos  int
	n    int
}

func newBuzz(sr beep.SampleRate, freq float64, d time.Duration) *buzz {
	return &buzz{sr: sr, freq: freq, n: sr.N(d)}
}

func (g *buzz) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.n {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= envelope(g.pos, g.n, g.sr)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzz) Err() error { return nil }

// noiseBurst is decaying white noise over a low thump. Endless; wrap it in
// beep.Take.
type noiseBurst struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func newNoiseBurst(sr beep.SampleRate, seed int64) *noiseBurst {
	return &noiseBurst{sr: sr, seed: seed}
}

func (g *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		decay := math.Exp(-t * 30)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		thump := math.Sin(2 * math.Pi * 70 * t)

		sample := decay * (0.35*noise + 0.3*thump)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurst) Err() error { return nil }

// envelope ramps the first and last 5ms of a sound of n samples.
func envelope(pos, n int, sr beep.SampleRate) float64 {
	ramp := float64(sr.N(5 * time.Millisecond))
	if ramp <= 0 {
		return 1
	}
	in := float64(pos) / ramp
	out := float64(n-pos) / ramp
	return math.Min(1, math.Min(in, out))
}
