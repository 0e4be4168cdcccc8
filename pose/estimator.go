// Package pose converts one hand's landmarks into a smoothed, latency-compensated sword pose
package pose

import (
	"math"
	"time"

	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// TargetPose is the published sword pose
// Rotation.X is bank (roll about X), Rotation.Y is heading (about Z, 0 = pointing up)
type TargetPose struct {
	Position vmath.Vec3F
	Rotation vmath.Vec2F
}

// Heading returns the heading angle in radians
func (p TargetPose) Heading() float64 { return p.Rotation.Y }

// Bank returns the bank angle in radians
func (p TargetPose) Bank() float64 { return p.Rotation.X }

// Estimator is the single writer of TargetPose
// Not safe for concurrent use
type Estimator struct {
	pose TargetPose

	raw      vmath.Vec3F
	velocity vmath.Vec3F
	primed   bool
	speed    float64

	trail Trail
}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate folds one hand sample into the pose and returns the stabilized result
// Degenerate input keeps the previous heading; the pose never becomes non-finite
func (e *Estimator) Estimate(h landmark.Hand, dt time.Duration) TargetPose {
	dtS := parameter.ClampDelta(dt).Seconds()

	raw := MapHand(h)
	if !vmath.V3FFinite(raw) {
		return e.pose
	}

	// The first sample after a gap has no history: it starts from rest
	fresh := !e.primed
	if fresh {
		e.raw = raw
		e.velocity = vmath.Vec3F{}
		e.primed = true
	}

	if dtS > 0 && !fresh {
		inst := vmath.V3FScale(vmath.V3FSub(raw, e.raw), 1/dtS)
		e.velocity = vmath.V3FLerp(e.velocity, inst, parameter.VelocitySmoothing)
	}
	e.raw = raw

	predicted := vmath.V3FAdd(raw, vmath.V3FScale(e.velocity, parameter.PredictionLead.Seconds()))

	prev := e.pose.Position
	posT := vmath.DampFactor(parameter.PositionLerp, dtS, parameter.SmoothingReferenceHz)
	next := vmath.V3FLerp(prev, predicted, posT)
	if !vmath.V3FFinite(next) {
		return e.pose
	}
	e.pose.Position = next

	moved := vmath.V3FSub(next, prev)
	switch {
	case fresh:
		// Catching up to a reappeared hand is not sword motion
		moved = vmath.Vec3F{}
		e.speed = 0
	case dtS > 0:
		e.speed = vmath.V3FMag(moved) / dtS
	}

	rotT := vmath.DampFactor(parameter.OrientationLerp, dtS, parameter.SmoothingReferenceHz)

	if heading, ok := e.targetHeading(h, moved); ok {
		e.pose.Rotation.Y = vmath.WrapAngle(vmath.LerpAngle(e.pose.Rotation.Y, heading, rotT))
	}

	bank := vmath.Clamp(e.velocity.X*parameter.BankFromVelocity, -parameter.BankMax, parameter.BankMax)
	e.pose.Rotation.X = vmath.Lerp(e.pose.Rotation.X, bank, rotT)

	e.trail.Push(e.pose.Position)
	return e.pose
}

// targetHeading blends the finger direction with the movement direction while moving fast
func (e *Estimator) targetHeading(h landmark.Hand, moved vmath.Vec3F) (float64, bool) {
	mcp, tip := h.IndexMCP(), h.IndexTip()
	// Image space is mirrored on X and inverted on Y relative to world
	dx := -(tip.X - mcp.X)
	dy := -(tip.Y - mcp.Y)
	if dx*dx+dy*dy < 1e-12 {
		return 0, false
	}
	finger := math.Atan2(dy, dx) - math.Pi/2

	if e.speed < parameter.HeadingMoveMinSpeed || moved.X*moved.X+moved.Y*moved.Y < 1e-12 {
		return finger, true
	}
	move := math.Atan2(moved.Y, moved.X) - math.Pi/2
	return vmath.LerpAngle(move, finger, parameter.HeadingMoveBlend), true
}

// MapPoint maps a normalized image point onto the z=0 world plane, mirrored on X
func MapPoint(p landmark.Point3D) vmath.Vec3F {
	return vmath.Vec3F{
		X: (0.5 - p.X) * parameter.ViewWidth,
		Y: (0.5 - p.Y) * parameter.ViewHeight,
	}
}

// MapHand maps the fingertip into world coordinates with palm-size depth
func MapHand(h landmark.Hand) vmath.Vec3F {
	p := MapPoint(h.IndexTip())
	p.Z = vmath.MapRange(h.PalmSize(),
		parameter.PalmSizeMin, parameter.PalmSizeMax,
		parameter.DepthMin, parameter.DepthMax)
	return p
}

// Pose returns the current stabilized pose
func (e *Estimator) Pose() TargetPose { return e.pose }

// Speed returns the stabilized speed in world units per second
func (e *Estimator) Speed() float64 { return e.speed }

// Shockwave returns the speed-driven shockwave intensity in [0,1]
func (e *Estimator) Shockwave() float64 {
	return vmath.Clamp((e.speed-parameter.ShockwaveSpeedOffset)*parameter.ShockwaveSpeedGain, 0, 1)
}

// Trail returns past stabilized positions, oldest first
func (e *Estimator) Trail() []vmath.Vec3F { return e.trail.Points() }

// Idle handles a tick without a hand: motion stops and the next sample re-primes
func (e *Estimator) Idle() {
	e.Reprime()
}

// Reprime drops velocity history so the next sample is treated as a fresh start
// The published pose is kept and eases toward the new hand position
func (e *Estimator) Reprime() {
	e.primed = false
	e.speed = 0
	e.velocity = vmath.Vec3F{}
}

// Reset returns the estimator to the origin
func (e *Estimator) Reset() {
	*e = Estimator{}
}

// Sweep is the sword's instantaneous blade segment from hilt to rotated tip
func Sweep(p TargetPose) vmath.Segment {
	tip := vmath.Vec3F{Y: parameter.BladeLength}
	tip = vmath.V3FRotateZ(tip, p.Rotation.Y)
	tip = vmath.V3FRotateX(tip, p.Rotation.X*parameter.BankVisualScale)
	return vmath.Segment{A: p.Position, B: vmath.V3FAdd(p.Position, tip)}
}
