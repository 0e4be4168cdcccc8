package parameter

import "time"

// Loop & Engine Timing
const (
	// FrameUpdateInterval is the render/game frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GesturePollInterval is the landmark polling interval, independent of frame pacing
	GesturePollInterval = 10 * time.Millisecond

	// MaxFrameDelta clamps any per-tick delta to prevent corrective jumps after stalls
	MaxFrameDelta = 50 * time.Millisecond

	// SmoothingReferenceHz is the frame rate at which per-frame lerp factors were tuned
	SmoothingReferenceHz = 120.0

	// DriftReferenceHz is the frame rate at which per-frame drift increments were tuned
	DriftReferenceHz = 60.0
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256
)

// ClampDelta limits dt to [0, MaxFrameDelta]
func ClampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}
