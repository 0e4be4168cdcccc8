package audio

import (
	"bytes"
	"testing"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/service"
	"github.com/lixenwraith/sword-rain/status"
	"github.com/lixenwraith/sword-rain/vmath"
)

var _ service.Service = (*AudioService)(nil)

func TestSoundFor(t *testing.T) {
	cases := map[event.EventType]SoundType{
		event.EventKill:               SoundExplosion,
		event.EventSpawn:              SoundHowl,
		event.EventSequenceLaunched:   SoundRainRoar,
		event.EventSequenceCompleted:  SoundComplete,
		event.EventInsufficientCharge: SoundDenied,
	}
	for et, want := range cases {
		got, ok := SoundFor(event.GameEvent{Type: et})
		if !ok || got != want {
			t.Errorf("%s: Expected %s, got %s (ok=%v)", et, want, got, ok)
		}
	}
	if _, ok := SoundFor(event.GameEvent{Type: event.EventModeChanged}); ok {
		t.Error("Expected no sound for mode change")
	}
}

func TestServiceWithoutStartIsDisabled(t *testing.T) {
	reg := status.NewRegistry()
	s := NewService(reg, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if !s.IsDisabled() || s.Manager() != nil {
		t.Error("Expected disabled service when Init was skipped")
	}

	// Listeners stay safe on a disabled service
	s.OnEvent(event.GameEvent{Type: event.EventKill})
	s.OnFrame(&engine.Snapshot{})
	if reg.Bools.Get(status.AudioEnabled).Load() {
		t.Error("Expected audio.enabled false")
	}
}

func TestServiceRoutesEventsAndFrames(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000
	s := NewService(nil, nil)
	if err := s.Init(cfg, false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	var out bytes.Buffer
	openTestOutput(s.sm, &out)

	s.OnEvent(event.GameEvent{Type: event.EventKill})
	s.OnEvent(event.GameEvent{Type: event.EventModeChanged})
	if s.sm.Played() != 1 {
		t.Errorf("Expected 1 effect, got %d", s.sm.Played())
	}

	s.OnFrame(&engine.Snapshot{
		Mode:  mode.ModeSingle,
		Speed: 5,
		Trail: []vmath.Vec3F{{X: 0}, {X: 2.4}},
	})
	if got := s.sm.hum.targetGain.Get(); got < 0.2 {
		t.Errorf("Expected hum target raised by motion, got %f", got)
	}

	s.OnFrame(&engine.Snapshot{Mode: mode.ModeArray, Phase: finisher.PhaseForming, Meter: 100})
	if got := s.sm.hum.targetGain.Get(); got != 0 {
		t.Errorf("Expected hum silenced in array mode, got %f", got)
	}
	if got := s.sm.charge.targetGain.Get(); got != 0.4 {
		t.Errorf("Expected charge target 0.4, got %f", got)
	}

	s.OnEvent(event.GameEvent{Type: event.EventSequenceCompleted})
	if got := s.sm.charge.targetGain.Get(); got != 0 {
		t.Errorf("Expected drone stopped on completion, got %f", got)
	}
	_ = s.Stop()
}

func TestTipTravel(t *testing.T) {
	if tipTravel(nil) != 0 {
		t.Error("Expected 0 for empty trail")
	}
	got := tipTravel([]vmath.Vec3F{{}, {X: 12}})
	if got != 0.5 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}
