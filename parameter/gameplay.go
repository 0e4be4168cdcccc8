package parameter

import "time"

// Gesture classification
const (
	// GestureDebounce is the accumulated time a raw hand count must persist before confirmation
	GestureDebounce = 200 * time.Millisecond

	// HandMergeDistSq merges two hands whose wrists are closer than this (squared, normalized units)
	HandMergeDistSq = 0.0225

	// MaxHands is the most hands a frame may carry
	MaxHands = 2
)

// Mode transitions
const (
	// MonstersToKill is the kill count that fills the meter
	MonstersToKill = 8

	// MeterMax caps the charge meter
	MeterMax = 100.0

	// ArrayEnterThreshold is the meter needed to enter array mode
	ArrayEnterThreshold = 99.0

	// LaunchThreshold is the meter needed to launch the finisher when hands drop
	LaunchThreshold = 98.0

	// PostCompletionLock blocks new transitions after a finisher completes
	PostCompletionLock = 1 * time.Second
)

// Formation scale from inter-hand distance
const (
	HandDistanceMin   = 0.15
	HandDistanceMax   = 0.6
	FormationScaleMin = 0.6
	FormationScaleMax = 1.4

	// FormationScaleLerp is the per-tick smoothing toward the target scale
	FormationScaleLerp = 0.1
)
