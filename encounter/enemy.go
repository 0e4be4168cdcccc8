// Package encounter spawns enemies and resolves sword collisions against them
package encounter

import (
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Kind is the enemy type tag
type Kind int

const (
	KindWolf Kind = iota
	KindEagle
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindWolf:
		return "wolf"
	case KindEagle:
		return "eagle"
	default:
		return "unknown"
	}
}

// EyeHeight is the unscaled vertical offset of the hit point
func (k Kind) EyeHeight() float64 {
	if k == KindWolf {
		return parameter.WolfEyeHeight
	}
	return parameter.EagleEyeHeight
}

// Enemy is one spawned entity; Seed only drives animation phase
type Enemy struct {
	ID        uint64
	Kind      Kind
	Position  vmath.Vec3F
	Velocity  vmath.Vec3F
	Scale     float64
	Dead      bool
	DeathTime time.Duration
	Seed      float64
}

// HitPoint is the eye center tested against the sweep
func (e *Enemy) HitPoint() vmath.Vec3F {
	return vmath.V3FAdd(e.Position, vmath.Vec3F{
		Y: e.Kind.EyeHeight() * e.Scale,
		Z: parameter.EyeForwardOffset,
	})
}

// DeathProgress is 0 while alive and ramps to 1 after death
func (e *Enemy) DeathProgress(now time.Duration) float64 {
	if !e.Dead {
		return 0
	}
	return min(1, (now - e.DeathTime).Seconds()*parameter.DeathProgressRate)
}

// Hit reports whether point lies within radius of the segment in the XY plane
// Depth is ignored so hand distance from the camera never changes the hit radius
func Hit(seg vmath.Segment, point vmath.Vec3F, radius float64) bool {
	flat := vmath.Segment{A: flatten(seg.A), B: flatten(seg.B)}
	return flat.Distance(flatten(point)) < radius
}

func flatten(p vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{X: p.X, Y: p.Y}
}
