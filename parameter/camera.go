package parameter

import "time"

// World view extents the fingertip is mapped into
const (
	ViewWidth  = 24.0
	ViewHeight = 14.0
)

// Landmark indices (21-point hand layout)
const (
	LandmarkCount     = 21
	LandmarkWrist     = 0
	LandmarkIndexMCP  = 5
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9
)

// Pose estimation
const (
	// PalmSizeMin and PalmSizeMax bound the expected wrist to index MCP distance
	PalmSizeMin = 0.05
	PalmSizeMax = 0.25

	// DepthMin and DepthMax are the z range the palm size maps onto
	// Larger palm (closer hand) maps toward DepthMax, nearer the camera
	DepthMin = -2.0
	DepthMax = 2.0

	// VelocitySmoothing is the weight of the new velocity sample
	VelocitySmoothing = 0.6

	// PredictionLead compensates detection-to-render latency
	PredictionLead = 25 * time.Millisecond

	// PositionLerp is the per-frame position lerp factor at SmoothingReferenceHz
	PositionLerp = 0.95

	// OrientationLerp is the per-frame orientation lerp factor at SmoothingReferenceHz
	OrientationLerp = 0.85

	// HeadingMoveBlend pulls heading toward the movement direction when moving
	HeadingMoveBlend = 0.6

	// HeadingMoveMinSpeed is the speed above which movement steers the heading
	HeadingMoveMinSpeed = 0.5

	// BankFromVelocity scales x velocity into bank angle
	BankFromVelocity = 0.05

	// BankMax limits bank angle in radians
	BankMax = 0.8

	// BankVisualScale multiplies bank for the rendered tilt
	BankVisualScale = 1.5

	// TrailLength is the number of past stabilized positions kept
	TrailLength = 20
)

// Shockwave intensity derived from speed
const (
	ShockwaveSpeedOffset = 0.1
	ShockwaveSpeedGain   = 2.0
)
