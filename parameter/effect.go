package parameter

import "time"

// Finisher formation charge effects
const (
	// ShakeChargeStart is the charge above which members start to jitter
	ShakeChargeStart = 60.0

	// ShakeChargeSpan normalizes charge above ShakeChargeStart
	ShakeChargeSpan = 40.0

	// ShakeMaxAmplitude is the jitter amplitude at full charge
	ShakeMaxAmplitude = 0.15

	// InwardShakeCharge is the charge at which radius shakes inward
	InwardShakeCharge = 95.0

	// InwardShakeFrequency is the angular frequency of the inward shake
	InwardShakeFrequency = 60.0

	// ChargedPaletteCharge selects the charged palette
	ChargedPaletteCharge = 98.0

	// BreathingBase, BreathingAmplitude and BreathingFrequency drive the ring overlay scale
	BreathingBase      = 0.95
	BreathingAmplitude = 0.03
	BreathingFrequency = 1.5

	// RingCount is the number of counter-rotating overlay rings
	RingCount = 6
)

// Finisher expansion
const (
	ExpandDuration = 500 * time.Millisecond

	// ExpandShrinkTime is the length of the initial shrink pulse in seconds
	ExpandShrinkTime = 0.06

	// ExpandShrinkRate is the scale loss per second during the pulse
	ExpandShrinkRate = 6.0

	// ExpandPushSpeed is the radial push per second after the pulse
	ExpandPushSpeed = 450.0

	ExpandStretchBase = 0.6
	ExpandStretchRate = 30.0
	ExpandSquashBase  = 0.2
	ExpandSquashRate  = 10.0
)

// Finisher rain
const (
	RainCount = 2500

	// RainImmediate is the number of drops with zero start delay
	RainImmediate = 800

	// RainDuration is the total raining time before completion
	RainDuration = 6 * time.Second

	// RainCycle is the per-drop repeat period
	RainCycle = 1200 * time.Millisecond

	// RainFade is the final window during which global opacity fades out
	RainFade = 1 * time.Second

	RainSpeedMin = 130.0
	RainSpeedMax = 330.0
	RainScaleMin = 0.15
	RainScaleMax = 0.7

	// RainDriftX and RainFallY scale speed into per-cycle travel
	RainDriftX = 0.55
	RainFallY  = 2.8

	// RainOriginSpanX scales the horizontal origin band, biased left by RainOriginBiasX
	RainOriginSpanX = ViewWidth * 5.0
	RainOriginBiasX = 0.7

	// RainOriginBaseY and RainOriginSpanY place the origin band above the view
	RainOriginBaseY = ViewHeight * 3.0
	RainOriginSpanY = 100.0

	// RainRotationJitter is the full span of per-drop rotation offset
	RainRotationJitter = 0.1

	// RainDepth is the z plane drops fall in
	RainDepth = -1.8
)

// RingSpeeds are the overlay ring angular speeds in rad/s, alternating direction
var RingSpeeds = [RingCount]float64{0.45, -0.65, 0.3, -0.4, 0.2, -0.25}
