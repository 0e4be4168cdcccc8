package audio

import (
	"encoding/json"
	"strconv"

	"github.com/lixenwraith/sword-rain/parameter"
)

// AudioConfig holds mixer volumes and output format
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
	HumVolume     float64
	ChargeVolume  float64
}

// DefaultAudioConfig returns the built-in mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundExplosion: 0.8,
			SoundHowl:      0.7,
			SoundRainRoar:  1.0,
			SoundComplete:  0.6,
			SoundDenied:    0.5,
		},
		HumVolume:    1.0,
		ChargeVolume: 1.0,
	}
}

// EffectVolume returns the per-effect gain; master volume is applied on the output bus
func (c *AudioConfig) EffectVolume(st SoundType) float64 {
	v, ok := c.EffectVolumes[st]
	if !ok {
		return 1
	}
	return v
}

// LoadAudioConfig overlays SWORDRAIN_SFX_VOLUMES (JSON name->volume) and
// SWORDRAIN_SAMPLE_RATE from lookup onto the defaults
// Malformed values are ignored
func LoadAudioConfig(lookup func(string) (string, bool)) *AudioConfig {
	cfg := DefaultAudioConfig()
	if lookup == nil {
		return cfg
	}

	if raw, ok := lookup("SWORDRAIN_SFX_VOLUMES"); ok && raw != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(raw), &volumes); err == nil {
			for name, v := range volumes {
				switch name {
				case "hum":
					cfg.HumVolume = clampUnit(v)
				case "charge":
					cfg.ChargeVolume = clampUnit(v)
				default:
					if st, ok := ParseSoundType(name); ok {
						cfg.EffectVolumes[st] = clampUnit(v)
					}
				}
			}
		}
	}

	if raw, ok := lookup("SWORDRAIN_SAMPLE_RATE"); ok && raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}
