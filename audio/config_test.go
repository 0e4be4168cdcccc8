package audio

import (
	"testing"

	"github.com/lixenwraith/sword-rain/parameter"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != parameter.AudioSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", parameter.AudioSampleRate, cfg.SampleRate)
	}
	for st := SoundType(0); st < soundTypeCount; st++ {
		if _, ok := cfg.EffectVolumes[st]; !ok {
			t.Errorf("Expected volume for %s to be set", st)
		}
	}
}

func TestLoadAudioConfig(t *testing.T) {
	env := map[string]string{
		"SWORDRAIN_SFX_VOLUMES": `{"explosion":0.25,"hum":2,"charge":0.5,"bogus":1}`,
		"SWORDRAIN_SAMPLE_RATE": "48000",
	}
	cfg := LoadAudioConfig(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if cfg.EffectVolume(SoundExplosion) != 0.25 {
		t.Errorf("Expected explosion 0.25, got %f", cfg.EffectVolume(SoundExplosion))
	}
	if cfg.HumVolume != 1 {
		t.Errorf("Expected hum clamped to 1, got %f", cfg.HumVolume)
	}
	if cfg.ChargeVolume != 0.5 {
		t.Errorf("Expected charge 0.5, got %f", cfg.ChargeVolume)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected 48000, got %d", cfg.SampleRate)
	}
}

func TestLoadAudioConfigMalformed(t *testing.T) {
	env := map[string]string{
		"SWORDRAIN_SFX_VOLUMES": `{not json`,
		"SWORDRAIN_SAMPLE_RATE": "-5",
	}
	cfg := LoadAudioConfig(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	def := DefaultAudioConfig()
	if cfg.SampleRate != def.SampleRate || cfg.EffectVolume(SoundHowl) != def.EffectVolume(SoundHowl) {
		t.Error("Expected malformed values to be ignored")
	}
	if LoadAudioConfig(nil).SampleRate != def.SampleRate {
		t.Error("Expected nil lookup to return defaults")
	}
}
