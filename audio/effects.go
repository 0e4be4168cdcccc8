package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// sample evaluates one wave at phase in [0, 1); noise draws from rng
func (w WaveType) sample(phase float64, rng *vmath.FastRand) float64 {
	switch w {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	}
	return 0
}

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := o.wave.sample(o.phase, o.rng)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates a linear attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

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
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// onePole is a first-order low-pass filter
type onePole struct {
	y float64
}

func (f *onePole) lowpass(x, cutoff float64, rate beep.SampleRate) float64 {
	a := 1 - math.Exp(-2*math.Pi*cutoff/float64(rate))
	f.y += a * (x - f.y)
	return f.y
}

// expRamp moves from a to b exponentially over progress p in [0, 1]
func expRamp(a, b, p float64) float64 {
	if p <= 0 {
		return a
	}
	if p >= 1 {
		return b
	}
	return a * math.Pow(b/a, p)
}

// smoothing returns the per-sample coefficient for a first-order approach with time constant tau
func smoothing(tau time.Duration, rate beep.SampleRate) float64 {
	if tau <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/(tau.Seconds()*float64(rate)))
}

// sweep is a one-shot voice: exponential pitch glide, linear attack, exponential decay
// A non-zero cutoff pair runs the output through a gliding low-pass
type sweep struct {
	wave             WaveType
	freqStart        float64
	freqEnd          float64
	glide            int // samples over which pitch glides
	peak             float64
	attack           int
	total            int
	cutStart, cutEnd float64

	rate   beep.SampleRate
	rng    *vmath.FastRand
	filter onePole
	phase  float64
	pos    int
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		freq := s.freqEnd
		if s.glide > 0 {
			freq = expRamp(s.freqStart, s.freqEnd, float64(s.pos)/float64(s.glide))
		}

		var gain float64
		if s.pos < s.attack {
			gain = s.peak * float64(s.pos) / float64(s.attack)
		} else {
			p := float64(s.pos-s.attack) / float64(max(1, s.total-s.attack))
			gain = expRamp(s.peak, parameter.AudioSilenceFloor, p)
		}

		v := s.wave.sample(s.phase, s.rng)
		if s.cutStart > 0 {
			cut := expRamp(s.cutStart, s.cutEnd, float64(s.pos)/float64(s.total))
			v = s.filter.lowpass(v, cut, s.rate)
		}
		v *= gain

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// Sound effect generators

// CreateExplosionSound is a falling chime over a sub-bass boom
func CreateExplosionSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	chime := &sweep{
		wave: WaveSine, freqStart: parameter.ExplosionChimeStart, freqEnd: parameter.ExplosionChimeEnd,
		glide: rate.N(parameter.ExplosionChimeSweep), peak: parameter.ExplosionChimePeak,
		attack: rate.N(2 * time.Millisecond), total: rate.N(parameter.ExplosionChimeLength), rate: rate,
	}
	boom := &sweep{
		wave: WaveTriangle, freqStart: parameter.ExplosionBoomStart, freqEnd: parameter.ExplosionBoomEnd,
		glide: rate.N(parameter.ExplosionBoomLength), peak: parameter.ExplosionBoomPeak,
		attack: rate.N(2 * time.Millisecond), total: rate.N(parameter.ExplosionBoomLength), rate: rate,
	}

	return newVolume(beep.Mix(chime, boom), cfg.EffectVolume(SoundExplosion))
}

// CreateHowlSound is a descending saw growl with a filtered noise shriek
func CreateHowlSound(cfg *AudioConfig, seed uint64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	growl := &sweep{
		wave: WaveSaw, freqStart: parameter.HowlGrowlStart, freqEnd: parameter.HowlGrowlEnd,
		glide: rate.N(parameter.HowlDuration), peak: parameter.HowlGrowlPeak,
		attack: rate.N(parameter.HowlGrowlAttack), total: rate.N(parameter.HowlDuration),
		cutStart: 1000, cutEnd: 100, rate: rate,
	}
	shriek := &sweep{
		wave: WaveNoise, peak: parameter.HowlShriekPeak,
		attack: rate.N(parameter.HowlShriekAttack), total: rate.N(parameter.HowlShriekLength),
		cutStart: parameter.HowlShriekCutoff, cutEnd: parameter.HowlShriekCutoffE,
		rate: rate, rng: vmath.NewFastRand(seed),
	}

	return newVolume(beep.Mix(growl, shriek), cfg.EffectVolume(SoundHowl))
}

// CreateCompleteSound is a two-note chime
func CreateCompleteSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	note := func(freq float64) beep.Streamer {
		osc := NewOscillator(freq, parameter.CompleteNoteLength, WaveSine, rate)
		return NewEnvelope(osc, parameter.CompleteNoteLength, 5*time.Millisecond, parameter.CompleteRelease, rate)
	}

	seq := beep.Seq(
		note(parameter.CompleteNote1),
		beep.Silence(rate.N(parameter.CompleteGap)),
		note(parameter.CompleteNote2),
	)
	return newVolume(seq, cfg.EffectVolume(SoundComplete))
}

// CreateDeniedSound is a short low saw buzz
func CreateDeniedSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.DeniedFreq, parameter.DeniedDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.DeniedDuration, parameter.DeniedAttack, parameter.DeniedRelease, rate)
	return newVolume(shaped, cfg.EffectVolume(SoundDenied))
}

// GetSoundEffect returns a fresh one-shot streamer; the rain roar is built by the SoundManager
func GetSoundEffect(soundType SoundType, cfg *AudioConfig, seed uint64) beep.Streamer {
	switch soundType {
	case SoundExplosion:
		return CreateExplosionSound(cfg)
	case SoundHowl:
		return CreateHowlSound(cfg, seed)
	case SoundComplete:
		return CreateCompleteSound(cfg)
	case SoundDenied:
		return CreateDeniedSound(cfg)
	default:
		return nil
	}
}
