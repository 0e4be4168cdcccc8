package audio

import (
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/status"
	"github.com/lixenwraith/sword-rain/vmath"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	config   *AudioConfig
	sm       *SoundManager
	disabled atomic.Bool
	logger   *slog.Logger

	statEnabled *atomic.Bool
}

// NewService creates a new audio service; reg and logger may be nil
func NewService(reg *status.Registry, logger *slog.Logger) *AudioService {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioService{
		logger:      logger.With("service", "audio"),
		statEnabled: reg.Bools.Get(status.AudioEnabled),
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: *AudioConfig (nil uses defaults); args[1]: bool - initial mute state
func (s *AudioService) Init(args ...any) error {
	cfg := DefaultAudioConfig()
	if len(args) > 0 {
		if c, ok := args[0].(*AudioConfig); ok && c != nil {
			cfg = c
		}
	}
	if len(args) > 1 {
		if muted, ok := args[1].(bool); ok {
			cfg.Enabled = !muted
		}
	}
	s.config = cfg
	s.sm = NewSoundManager(cfg)
	return nil
}

// Start implements Service
// Opens the output; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.sm == nil {
		s.disabled.Store(true)
		return nil
	}

	if err := s.sm.Initialize(); err != nil {
		s.disabled.Store(true)
		s.logger.Warn("continuing without audio", "error", err)
		return nil
	}
	s.statEnabled.Store(true)
	s.logger.Info("audio started", "backend", s.sm.Backend(), "rate", s.config.SampleRate)
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.sm != nil {
		s.sm.Cleanup()
	}
	s.statEnabled.Store(false)
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the underlying SoundManager (nil before Init or when disabled)
func (s *AudioService) Manager() *SoundManager {
	if s.disabled.Load() {
		return nil
	}
	return s.sm
}

// ToggleMute flips mute, returns true if now audible
func (s *AudioService) ToggleMute() bool {
	if sm := s.Manager(); sm != nil {
		return sm.ToggleMute()
	}
	return false
}

// SoundFor maps a game event to its one-shot effect
func SoundFor(ev event.GameEvent) (SoundType, bool) {
	switch ev.Type {
	case event.EventKill:
		return SoundExplosion, true
	case event.EventSpawn:
		return SoundHowl, true
	case event.EventSequenceLaunched:
		return SoundRainRoar, true
	case event.EventSequenceCompleted:
		return SoundComplete, true
	case event.EventInsufficientCharge:
		return SoundDenied, true
	}
	return 0, false
}

// OnEvent plays the effect for a discrete event; registered as an engine event listener
func (s *AudioService) OnEvent(ev event.GameEvent) {
	sm := s.Manager()
	if sm == nil {
		return
	}

	if ev.Type == event.EventSequenceCompleted {
		sm.StopArraySounds()
	}
	if st, ok := SoundFor(ev); ok {
		sm.Play(st)
	}
}

// OnFrame updates the continuous generators; registered as an engine frame listener
func (s *AudioService) OnFrame(snap *engine.Snapshot) {
	sm := s.Manager()
	if sm == nil || snap == nil {
		return
	}

	if snap.Mode == mode.ModeSingle && !snap.Transitioning {
		sm.UpdateSwordSFX(snap.Speed, tipTravel(snap.Trail))
	} else {
		sm.SilenceHum()
	}
	sm.UpdateArrayCharge(snap.Meter, snap.ChargeActive())
}

// tipTravel is the last trail step in normalized view units
func tipTravel(trail []vmath.Vec3F) float64 {
	n := len(trail)
	if n < 2 {
		return 0
	}
	return vmath.V3FDist(trail[n-1], trail[n-2]) / parameter.ViewWidth
}
