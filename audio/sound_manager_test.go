package audio

import (
	"bytes"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// openTestOutput wires the manager to an in-memory pipe without a device
func openTestOutput(sm *SoundManager, out *bytes.Buffer) *pipeOutput {
	sm.wire()
	p := newPipeOutput(sm.master, sm.lock, out, sm.rate)
	sm.pipe = p
	sm.backend = "test"
	sm.initialized = true
	return p
}

func pumpFor(t *testing.T, p *pipeOutput, d time.Duration, rate beep.SampleRate) {
	t.Helper()
	buf := make([][2]float64, p.frames)
	raw := make([]byte, p.frames*4)
	for done := 0; done < rate.N(d); done += p.frames {
		if err := p.pump(buf, raw); err != nil {
			t.Fatalf("pump failed: %v", err)
		}
	}
}

func nonZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}

// TestSoundManagerGracefulDegradation verifies operations are safe before initialization
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if sm.Play(SoundExplosion) {
		t.Error("Expected Play to report false before initialization")
	}
	if sm.PlaySwordRain() {
		t.Error("Expected PlaySwordRain to report false before initialization")
	}
	sm.UpdateSwordSFX(10, 0.1)
	sm.UpdateArrayCharge(50, true)
	sm.StopArraySounds()
	sm.Cleanup()
}

func TestSoundManagerMixesEffects(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000
	sm := NewSoundManager(cfg)
	var out bytes.Buffer
	p := openTestOutput(sm, &out)

	pumpFor(t, p, 100*time.Millisecond, sm.rate)
	if nonZero(out.Bytes()) {
		t.Error("Expected silence with idle generators")
	}

	out.Reset()
	if !sm.Play(SoundExplosion) {
		t.Fatal("Expected explosion to play")
	}
	pumpFor(t, p, 100*time.Millisecond, sm.rate)
	if !nonZero(out.Bytes()) {
		t.Error("Expected explosion in the output")
	}
	if sm.Played() != 1 {
		t.Errorf("Expected 1 played, got %d", sm.Played())
	}
	sm.Cleanup()
}

func TestSoundManagerMute(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000
	sm := NewSoundManager(cfg)
	var out bytes.Buffer
	p := openTestOutput(sm, &out)

	sm.UpdateSwordSFX(10, 0.1)
	if sm.ToggleMute() {
		t.Fatal("Expected ToggleMute to report muted")
	}
	pumpFor(t, p, 200*time.Millisecond, sm.rate)
	if nonZero(out.Bytes()) {
		t.Error("Expected muted bus to be silent")
	}
	if sm.Play(SoundDenied) {
		t.Error("Expected Play to be skipped while muted")
	}

	out.Reset()
	sm.SetMuted(false)
	pumpFor(t, p, 200*time.Millisecond, sm.rate)
	if !nonZero(out.Bytes()) {
		t.Error("Expected hum audible after unmute")
	}
}

func TestSwordRainStopsArraySounds(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000
	sm := NewSoundManager(cfg)
	var out bytes.Buffer
	p := openTestOutput(sm, &out)

	sm.UpdateArrayCharge(100, true)
	pumpFor(t, p, 500*time.Millisecond, sm.rate)
	if sm.charge.Level() < 0.3 {
		t.Fatalf("Expected drone charged, got %f", sm.charge.Level())
	}

	if !sm.PlaySwordRain() {
		t.Fatal("Expected rain to start")
	}
	rain := sm.rain
	pumpFor(t, p, 1500*time.Millisecond, sm.rate)
	if sm.charge.Level() > 0.01 {
		t.Errorf("Expected drone stopped by the roar, got %f", sm.charge.Level())
	}

	sm.StopArraySounds()
	if sm.rain != nil {
		t.Error("Expected rain handle cleared")
	}
	if !rain.releasing.Load() {
		t.Error("Expected rain released")
	}
}
