package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes

	// AudioBufferDuration determines latency and pipe write rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioSpeakerBuffer is the beep speaker buffer length
	AudioSpeakerBuffer = 100 * time.Millisecond
)

// Sword Hum (continuous, single mode)
const (
	HumBaseFreq        = 1100.0 // Hz at rest
	HumFreqPerSpeed    = 45.0   // Hz per unit of capped speed
	HumSpeedCap        = 40.0
	HumVibratoBase     = 60.0 // Hz
	HumVibratoPerSpeed = 5.0
	HumVibratoDepth    = 400.0 // Hz of frequency modulation
	HumGainPerSpeed    = 0.04
	HumGainMax         = 0.3
	HumMotionGain      = 0.04 // Added while the tip moves
	HumMotionThreshold = 0.06 // Normalized per-frame tip travel
	HumFreqTau         = 100 * time.Millisecond
	HumGainTau         = 150 * time.Millisecond
)

// Array Charge Drone (continuous, forming phase)
const (
	ChargeBaseFreq     = 55.0
	ChargeBaseSpan     = 165.0
	ChargeHarmonicFreq = 220.0
	ChargeHarmonicSpan = 880.0
	ChargeGainMax      = 0.4
	ChargeLFOBase      = 3.0 // Hz
	ChargeLFOSpan      = 20.0
	ChargeLFODepth     = 20.0 // Hz of frequency modulation
	ChargeCutoffBase   = 200.0
	ChargeCutoffSpan   = 4000.0
	ChargeTau          = 100 * time.Millisecond
	ChargeReleaseTau   = 300 * time.Millisecond
	ChargeStopTau      = 200 * time.Millisecond
)

// Monster Howl (spawn)
const (
	HowlDuration      = 1200 * time.Millisecond
	HowlGrowlStart    = 120.0 // Hz
	HowlGrowlEnd      = 40.0
	HowlGrowlPeak     = 0.5
	HowlGrowlAttack   = 100 * time.Millisecond
	HowlShriekLength  = 800 * time.Millisecond
	HowlShriekPeak    = 0.3
	HowlShriekAttack  = 50 * time.Millisecond
	HowlShriekCutoff  = 3000.0
	HowlShriekCutoffE = 800.0
)

// Explosion (kill)
const (
	ExplosionChimeLength = 1500 * time.Millisecond
	ExplosionChimeSweep  = 600 * time.Millisecond
	ExplosionChimeStart  = 3000.0
	ExplosionChimeEnd    = 800.0
	ExplosionChimePeak   = 0.6
	ExplosionBoomLength  = 800 * time.Millisecond
	ExplosionBoomStart   = 100.0
	ExplosionBoomEnd     = 20.0
	ExplosionBoomPeak    = 1.2
)

// Sword Rain Roar (launch)
const (
	RainNoisePeak    = 0.35
	RainNoiseAttack  = 300 * time.Millisecond
	RainNoiseCutoff  = 3500.0 // High-pass corner
	RainRumbleFreq   = 45.0
	RainRumblePeak   = 0.5
	RainRumbleAttack = 800 * time.Millisecond
	RainPingCount    = 60
	RainPingWindow   = 6 * time.Second
	RainPingLength   = 200 * time.Millisecond
	RainPingPitchMin = 1500.0
	RainPingPitchMax = 4500.0
	RainPingPeak     = 0.12
	RainReleaseTau   = 400 * time.Millisecond
	RainMaxLength    = 8 * time.Second
)

// Completion chime and denied buzz
const (
	CompleteNote1      = 987.77 // B5
	CompleteNote2      = 1318.51
	CompleteNoteLength = 160 * time.Millisecond
	CompleteGap        = 40 * time.Millisecond
	CompleteRelease    = 120 * time.Millisecond

	DeniedFreq     = 100.0
	DeniedDuration = 150 * time.Millisecond
	DeniedAttack   = 5 * time.Millisecond
	DeniedRelease  = 60 * time.Millisecond
)

// Envelope floor for exponential decays
const AudioSilenceFloor = 0.001
