package finisher

import (
	"math"
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Drop is an immutable rain instance generated once per seed
type Drop struct {
	Origin         vmath.Vec2F
	Speed          float64
	Scale          float64
	Delay          float64 // seconds
	RotationOffset float64
}

// DropPose is a drop's derived state; invisible drops have zero scale
type DropPose struct {
	Position vmath.Vec3F
	Angle    float64
	Scale    vmath.Vec3F
	Visible  bool
}

// rainBaseAngle points drops along the fall direction
var rainBaseAngle = math.Atan2(-1.0, 0.42) - math.Pi/2

// GenerateDrops builds the rain pool; deterministic for a seed
// The first RainImmediate drops start at once, the rest stagger across the non-final cycle window
func GenerateDrops(seed uint64) []Drop {
	rng := vmath.NewFastRand(seed)
	stagger := (parameter.RainDuration - parameter.RainCycle).Seconds()

	drops := make([]Drop, parameter.RainCount)
	for i := range drops {
		d := Drop{
			Origin: vmath.Vec2F{
				X: (rng.Float64() - parameter.RainOriginBiasX) * parameter.RainOriginSpanX,
				Y: parameter.RainOriginBaseY + rng.Float64()*parameter.RainOriginSpanY,
			},
			Speed:          rng.Range(parameter.RainSpeedMin, parameter.RainSpeedMax),
			Scale:          rng.Range(parameter.RainScaleMin, parameter.RainScaleMax),
			RotationOffset: rng.Centered(parameter.RainRotationJitter),
		}
		if i >= parameter.RainImmediate {
			d.Delay = rng.Float64() * stagger
		}
		drops[i] = d
	}
	return drops
}

// PoseAt animates a drop; elapsed is seconds since raining began, negative while expanding
func (d Drop) PoseAt(elapsed float64) DropPose {
	active := elapsed - d.Delay
	if active <= 0 {
		return DropPose{}
	}
	cycle := math.Mod(active, parameter.RainCycle.Seconds())
	return DropPose{
		Position: vmath.Vec3F{
			X: d.Origin.X + d.Speed*parameter.RainDriftX*cycle,
			Y: d.Origin.Y - d.Speed*parameter.RainFallY*cycle,
			Z: parameter.RainDepth,
		},
		Angle:   rainBaseAngle + d.RotationOffset,
		Scale:   vmath.Vec3F{X: d.Scale * 0.65, Y: d.Scale * 5.0, Z: d.Scale},
		Visible: true,
	}
}

// RainOpacity fades linearly to zero across the final window
func RainOpacity(elapsed time.Duration) float64 {
	fadeStart := parameter.RainDuration - parameter.RainFade
	if elapsed <= fadeStart {
		return 1
	}
	return vmath.Clamp(1-float64(elapsed-fadeStart)/float64(parameter.RainFade), 0, 1)
}
