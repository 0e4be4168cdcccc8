package parameter

import "time"

// Encounter spawning
const (
	// SpawnCooldown is the minimum time between spawns while no live enemy exists
	SpawnCooldown = 1200 * time.Millisecond

	// SpawnAreaX and SpawnAreaY are the fractions of the view enemies spawn within
	SpawnAreaX = 0.8
	SpawnAreaY = 0.7

	// SpawnDriftSpan is the full range of initial drift per axis (±half)
	SpawnDriftSpan = 0.03

	EnemyScaleMin = 1.0
	EnemyScaleMax = 1.4

	// EnemySeedMax bounds the per-enemy animation seed
	EnemySeedMax = 100.0
)

// Encounter motion & collision
const (
	// DriftPerturbation is the per-60Hz-frame velocity perturbation amplitude
	DriftPerturbation = 0.0005

	// DriftFrequency is the time multiplier of the perturbation wave
	DriftFrequency = 2.0

	// CollisionRadius is the default hit radius around an enemy's eye point
	CollisionRadius = 2.0

	// EyeForwardOffset is the z offset of the hit point in front of the body
	EyeForwardOffset = 0.4

	// BladeLength is the y extent of the sword tip before rotation
	BladeLength = 1.3

	// DeathDuration is how long dead enemies remain for the collapse animation
	DeathDuration = 800 * time.Millisecond

	// DeathProgressRate converts seconds since death into collapse progress
	DeathProgressRate = 1.6
)

// Enemy kind heights (eye offset before scale)
const (
	WolfEyeHeight  = 0.2
	EagleEyeHeight = 0.4
)
