package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/sword-rain/parameter"
)

// speakerLocker serializes mixer edits with the speaker's streaming goroutine
type speakerLocker struct{}

func (speakerLocker) Lock()   { speaker.Lock() }
func (speakerLocker) Unlock() { speaker.Unlock() }

// SoundManager owns the mixer graph: two continuous generators plus one-shot effects
type SoundManager struct {
	mu     sync.Mutex
	config *AudioConfig
	rate   beep.SampleRate

	mixer  *beep.Mixer
	master *effects.Volume
	hum    *HumGenerator
	charge *ChargeGenerator
	rain   *RainGenerator

	lock    sync.Locker
	pipe    *pipeOutput
	speaker bool
	backend string

	initialized bool
	muted       atomic.Bool
	played      atomic.Uint64
	seed        uint64
}

// NewSoundManager creates a sound manager; nil config uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	sm := &SoundManager{
		config: cfg,
		rate:   rate,
		mixer:  &beep.Mixer{},
		hum:    NewHumGenerator(rate),
		charge: NewChargeGenerator(rate),
		lock:   &sync.Mutex{},
		seed:   1,
	}
	sm.master = &effects.Volume{Streamer: sm.mixer, Base: 2}
	sm.muted.Store(!cfg.Enabled)
	sm.applyMaster()
	return sm
}

// Initialize opens the native speaker, falling back to a CLI pipe backend
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioSpeakerBuffer))
	if err == nil {
		sm.lock = speakerLocker{}
		sm.speaker = true
		sm.backend = "speaker"
		sm.wire()
		speaker.Play(sm.master)
		sm.initialized = true
		return nil
	}

	backend, derr := DetectBackend(sm.config.SampleRate)
	if derr != nil {
		return fmt.Errorf("speaker: %v: %w", err, derr)
	}
	p, perr := startPipeBackend(backend, sm.master, sm.lock, sm.rate)
	if perr != nil {
		return fmt.Errorf("speaker: %v: %w", err, perr)
	}
	sm.wire()
	sm.pipe = p
	sm.backend = backend.Name
	p.start()
	sm.initialized = true
	return nil
}

// wire adds the continuous generators to the mixer, called once before output starts
func (sm *SoundManager) wire() {
	sm.mixer.Add(sm.hum, sm.charge)
}

// Cleanup stops all sounds and closes the output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.speaker {
		speaker.Clear()
	}
	if sm.pipe != nil {
		sm.pipe.stop()
		sm.pipe = nil
	}

	sm.lock.Lock()
	sm.mixer.Clear()
	sm.lock.Unlock()

	sm.rain = nil
	sm.initialized = false
}

// Backend names the active output
func (sm *SoundManager) Backend() string {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.backend
}

// Initialized reports whether an output is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play starts a one-shot effect; the rain roar goes through PlaySwordRain
func (sm *SoundManager) Play(st SoundType) bool {
	if st == SoundRainRoar {
		return sm.PlaySwordRain()
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() {
		return false
	}

	sm.seed++
	s := GetSoundEffect(st, sm.config, sm.seed)
	if s == nil {
		return false
	}
	sm.add(s)
	return true
}

// PlaySwordRain stops the array sounds and starts the finisher roar
func (sm *SoundManager) PlaySwordRain() bool {
	sm.StopArraySounds()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted.Load() {
		return false
	}

	sm.seed++
	sm.rain = NewRainGenerator(sm.rate, sm.seed)
	sm.add(newVolume(sm.rain, sm.config.EffectVolume(SoundRainRoar)))
	return true
}

func (sm *SoundManager) add(s beep.Streamer) {
	sm.lock.Lock()
	sm.mixer.Add(s)
	sm.lock.Unlock()
	sm.played.Add(1)
}

// UpdateSwordSFX drives the hum from sword speed and per-frame normalized travel
func (sm *SoundManager) UpdateSwordSFX(speed, distance float64) {
	sm.hum.Set(speed, distance, sm.config.HumVolume)
}

// UpdateArrayCharge drives the drone from charge progress (0-100)
func (sm *SoundManager) UpdateArrayCharge(progress float64, active bool) {
	sm.charge.Set(progress, active, sm.config.ChargeVolume)
}

// StopArraySounds fades the drone and any running rain roar
func (sm *SoundManager) StopArraySounds() {
	sm.charge.Stop()

	sm.mu.Lock()
	rain := sm.rain
	sm.rain = nil
	sm.mu.Unlock()
	if rain != nil {
		rain.Release()
	}
}

// SilenceHum fades the sword hum out
func (sm *SoundManager) SilenceHum() {
	sm.hum.Silence()
}

// ToggleMute toggles mute state, returns true if now audible
func (sm *SoundManager) ToggleMute() bool {
	sm.SetMuted(!sm.muted.Load())
	return !sm.muted.Load()
}

// SetMuted silences the master bus without tearing down the output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
	sm.lock.Lock()
	sm.master.Silent = muted || sm.config.MasterVolume <= 0
	sm.lock.Unlock()
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	return sm.muted.Load()
}

// SetVolume updates master volume (0.0-1.0)
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	sm.config.MasterVolume = clampUnit(vol)
	sm.mu.Unlock()

	sm.lock.Lock()
	sm.applyMaster()
	sm.lock.Unlock()
}

// applyMaster maps the linear master volume onto the log2 volume effect
func (sm *SoundManager) applyMaster() {
	v := sm.config.MasterVolume
	if v <= 0 {
		sm.master.Silent = true
		return
	}
	sm.master.Volume = math.Log2(v)
	sm.master.Silent = sm.muted.Load()
}

// Played returns the number of effects started
func (sm *SoundManager) Played() uint64 {
	return sm.played.Load()
}
