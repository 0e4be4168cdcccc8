package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundExplosion SoundType = iota // Enemy killed
	SoundHowl                       // Enemy spawned
	SoundRainRoar                   // Finisher launched
	SoundComplete                   // Finisher completed
	SoundDenied                     // Two hands without enough charge
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundExplosion: "explosion",
	SoundHowl:      "howl",
	SoundRainRoar:  "rain",
	SoundComplete:  "complete",
	SoundDenied:    "denied",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a sound name back to its type
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendSpeaker BackendType = iota // beep speaker (native device)
	BackendPulse
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
	BackendSilent
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
)
