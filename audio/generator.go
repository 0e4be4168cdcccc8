package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/status"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Continuous generators never drain; targets are written from the engine goroutine
// and approached per sample on the audio goroutine

// HumGenerator is the sword hum: a vibrato triangle whose pitch and level follow speed
type HumGenerator struct {
	rate beep.SampleRate

	targetFreq status.AtomicFloat
	targetVib  status.AtomicFloat
	targetGain status.AtomicFloat

	freq, vib, gain float64
	phase, vibPhase float64
	alphaFreq       float64
	alphaGain       float64
}

// NewHumGenerator creates a silent hum at rest pitch
func NewHumGenerator(rate beep.SampleRate) *HumGenerator {
	g := &HumGenerator{
		rate:      rate,
		freq:      parameter.HumBaseFreq,
		vib:       parameter.HumVibratoBase,
		alphaFreq: smoothing(parameter.HumFreqTau, rate),
		alphaGain: smoothing(parameter.HumGainTau, rate),
	}
	g.targetFreq.Set(parameter.HumBaseFreq)
	g.targetVib.Set(parameter.HumVibratoBase)
	return g
}

// HumTargets maps speed and per-frame normalized tip travel to pitch, vibrato rate and gain
func HumTargets(speed, distance float64) (freq, vibrato, gain float64) {
	capped := vmath.Clamp(speed, 0, parameter.HumSpeedCap)
	freq = parameter.HumBaseFreq + capped*parameter.HumFreqPerSpeed
	vibrato = parameter.HumVibratoBase + max(0, speed)*parameter.HumVibratoPerSpeed
	gain = min(parameter.HumGainMax, max(0, speed)*parameter.HumGainPerSpeed)
	if distance > parameter.HumMotionThreshold {
		gain += parameter.HumMotionGain
	}
	return freq, vibrato, gain
}

// Set updates targets from the current sword motion
func (g *HumGenerator) Set(speed, distance, volume float64) {
	f, v, a := HumTargets(speed, distance)
	g.targetFreq.Set(f)
	g.targetVib.Set(v)
	g.targetGain.Set(a * volume)
}

// Silence fades the hum out
func (g *HumGenerator) Silence() {
	g.targetGain.Set(0)
}

// Level returns the current smoothed gain
func (g *HumGenerator) Level() float64 { return g.gain }

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	tf, tv, tg := g.targetFreq.Get(), g.targetVib.Get(), g.targetGain.Get()
	sr := float64(g.rate)
	for i := range samples {
		g.freq += g.alphaFreq * (tf - g.freq)
		g.vib += g.alphaFreq * (tv - g.vib)
		g.gain += g.alphaGain * (tg - g.gain)

		f := g.freq + math.Sin(2*math.Pi*g.vibPhase)*parameter.HumVibratoDepth
		v := WaveTriangle.sample(g.phase, nil) * g.gain

		samples[i][0] = v
		samples[i][1] = v

		g.phase += max(0, f) / sr
		g.phase -= math.Floor(g.phase)
		g.vibPhase += g.vib / sr
		g.vibPhase -= math.Floor(g.vibPhase)
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error { return nil }

// ChargeGenerator is the array charge drone: LFO-wobbled saw and sine through a rising low-pass
type ChargeGenerator struct {
	rate beep.SampleRate

	targetBase   status.AtomicFloat
	targetHarm   status.AtomicFloat
	targetLFO    status.AtomicFloat
	targetCutoff status.AtomicFloat
	targetGain   status.AtomicFloat
	gainAlpha    status.AtomicFloat

	base, harm, lfo, cutoff, gain float64
	basePhase, harmPhase, lfoPhase float64
	filter                         onePole
	alpha                          float64
}

// NewChargeGenerator creates a silent drone
func NewChargeGenerator(rate beep.SampleRate) *ChargeGenerator {
	g := &ChargeGenerator{
		rate:   rate,
		base:   parameter.ChargeBaseFreq,
		harm:   parameter.ChargeHarmonicFreq,
		lfo:    parameter.ChargeLFOBase,
		cutoff: parameter.ChargeCutoffBase,
		alpha:  smoothing(parameter.ChargeTau, rate),
	}
	g.targetBase.Set(g.base)
	g.targetHarm.Set(g.harm)
	g.targetLFO.Set(g.lfo)
	g.targetCutoff.Set(g.cutoff)
	g.gainAlpha.Set(g.alpha)
	return g
}

// ChargeTargets maps charge progress (0-100) to drone parameters
func ChargeTargets(progress float64) (base, harmonic, lfo, cutoff, gain float64) {
	p := vmath.Clamp(progress/parameter.MeterMax, 0, 1)
	return parameter.ChargeBaseFreq + p*parameter.ChargeBaseSpan,
		parameter.ChargeHarmonicFreq + p*parameter.ChargeHarmonicSpan,
		parameter.ChargeLFOBase + p*parameter.ChargeLFOSpan,
		parameter.ChargeCutoffBase + p*parameter.ChargeCutoffSpan,
		p * parameter.ChargeGainMax
}

// Set drives the drone from charge progress; inactive releases it slowly
func (g *ChargeGenerator) Set(progress float64, active bool, volume float64) {
	if !active {
		g.release(parameter.ChargeReleaseTau)
		return
	}
	b, h, l, c, a := ChargeTargets(progress)
	g.targetBase.Set(b)
	g.targetHarm.Set(h)
	g.targetLFO.Set(l)
	g.targetCutoff.Set(c)
	g.targetGain.Set(a * volume)
	g.gainAlpha.Set(g.alpha)
}

// Stop cuts the drone with the faster stop release
func (g *ChargeGenerator) Stop() {
	g.release(parameter.ChargeStopTau)
}

func (g *ChargeGenerator) release(tau time.Duration) {
	g.targetGain.Set(0)
	g.gainAlpha.Set(smoothing(tau, g.rate))
}

// Level returns the current smoothed gain
func (g *ChargeGenerator) Level() float64 { return g.gain }

func (g *ChargeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	tb, th, tl, tc, tg := g.targetBase.Get(), g.targetHarm.Get(), g.targetLFO.Get(), g.targetCutoff.Get(), g.targetGain.Get()
	ga := g.gainAlpha.Get()
	sr := float64(g.rate)
	for i := range samples {
		g.base += g.alpha * (tb - g.base)
		g.harm += g.alpha * (th - g.harm)
		g.lfo += g.alpha * (tl - g.lfo)
		g.cutoff += g.alpha * (tc - g.cutoff)
		g.gain += ga * (tg - g.gain)

		wobble := math.Sin(2*math.Pi*g.lfoPhase) * parameter.ChargeLFODepth
		raw := WaveSaw.sample(g.basePhase, nil) + WaveSine.sample(g.harmPhase, nil)
		v := g.filter.lowpass(raw*0.5, g.cutoff, g.rate) * g.gain

		samples[i][0] = v
		samples[i][1] = v

		g.basePhase += max(0, g.base+wobble) / sr
		g.basePhase -= math.Floor(g.basePhase)
		g.harmPhase += max(0, g.harm+wobble) / sr
		g.harmPhase -= math.Floor(g.harmPhase)
		g.lfoPhase += g.lfo / sr
		g.lfoPhase -= math.Floor(g.lfoPhase)
	}
	return len(samples), true
}

func (g *ChargeGenerator) Err() error { return nil }

type ping struct {
	start int
	pitch float64
	phase float64
}

// RainGenerator is the finisher roar: high-passed noise, a sub rumble and scattered blade pings
// It drains after release or RainMaxLength
type RainGenerator struct {
	rate     beep.SampleRate
	rng      *vmath.FastRand
	lowpass  onePole
	pings    []ping
	pingLen  int
	noiseAtt int
	rumbAtt  int
	maxLen   int

	rumblePhase float64
	pos         int

	releasing   atomic.Bool
	release     float64
	releaseStep float64
}

// NewRainGenerator schedules the pings from seed
func NewRainGenerator(rate beep.SampleRate, seed uint64) *RainGenerator {
	rng := vmath.NewFastRand(seed)
	g := &RainGenerator{
		rate:        rate,
		rng:         rng,
		pingLen:     rate.N(parameter.RainPingLength),
		noiseAtt:    rate.N(parameter.RainNoiseAttack),
		rumbAtt:     rate.N(parameter.RainRumbleAttack),
		maxLen:      rate.N(parameter.RainMaxLength),
		release:     1,
		releaseStep: 1 - smoothing(parameter.RainReleaseTau, rate),
		pings:       make([]ping, parameter.RainPingCount),
	}
	window := rate.N(parameter.RainPingWindow)
	for i := range g.pings {
		g.pings[i] = ping{
			start: rng.Intn(window),
			pitch: rng.Range(parameter.RainPingPitchMin, parameter.RainPingPitchMax),
		}
	}
	return g
}

// Release starts the fade out; the stream drains once inaudible
func (g *RainGenerator) Release() {
	g.releasing.Store(true)
}

func (g *RainGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	sr := float64(g.rate)
	releasing := g.releasing.Load()
	for i := range samples {
		if g.pos >= g.maxLen || g.release < parameter.AudioSilenceFloor {
			return i, i > 0
		}

		noise := g.rng.Float64()*2 - 1
		high := noise - g.lowpass.lowpass(noise, parameter.RainNoiseCutoff, g.rate)
		noiseGain := parameter.RainNoisePeak * min(1, float64(g.pos)/float64(g.noiseAtt))

		rumble := math.Sin(2 * math.Pi * g.rumblePhase)
		rumbleGain := parameter.RainRumblePeak * min(1, float64(g.pos)/float64(g.rumbAtt))
		g.rumblePhase += parameter.RainRumbleFreq / sr
		g.rumblePhase -= math.Floor(g.rumblePhase)

		v := high*noiseGain + rumble*rumbleGain
		for j := range g.pings {
			v += g.pingSample(&g.pings[j], sr)
		}

		if releasing {
			g.release *= g.releaseStep
		}
		v *= g.release

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *RainGenerator) pingSample(p *ping, sr float64) float64 {
	k := g.pos - p.start
	if k < 0 || k >= g.pingLen {
		return 0
	}
	prog := float64(k) / float64(g.pingLen)
	attack := g.rate.N(20 * time.Millisecond)

	var gain float64
	if k < attack {
		gain = parameter.RainPingPeak * float64(k) / float64(attack)
	} else {
		gain = expRamp(parameter.RainPingPeak, parameter.AudioSilenceFloor, float64(k-attack)/float64(g.pingLen-attack))
	}

	v := math.Sin(2*math.Pi*p.phase) * gain
	p.phase += expRamp(p.pitch, p.pitch*0.1, prog) / sr
	p.phase -= math.Floor(p.phase)
	return v
}

func (g *RainGenerator) Err() error { return nil }
