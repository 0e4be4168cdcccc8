package finisher

import (
	"math"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Layer describes one ring of the rotating formation
type Layer struct {
	Count    int
	Radius   float64
	RotSpeed float64
	Dir      float64
	Z        float64
}

// Layers is the fixed five-ring formation, innermost first
var Layers = [...]Layer{
	{Count: 12, Radius: 1.4, RotSpeed: 12.0, Dir: 1, Z: 1.0},
	{Count: 24, Radius: 2.8, RotSpeed: 9.0, Dir: -1, Z: 0.5},
	{Count: 36, Radius: 4.5, RotSpeed: 6.5, Dir: 1, Z: 0.0},
	{Count: 48, Radius: 6.8, RotSpeed: 4.5, Dir: -1, Z: -0.5},
	{Count: 60, Radius: 9.5, RotSpeed: 3.0, Dir: 1, Z: -1.2},
}

// MemberCount is the total number of formation slots
var MemberCount = func() int {
	n := 0
	for _, l := range Layers {
		n += l.Count
	}
	return n
}()

// Member is an immutable formation slot
type Member struct {
	Index      int
	Layer      int
	BaseAngle  float64
	BaseRadius float64
	RotSpeed   float64
	Dir        float64
	BaseZ      float64
}

// MemberPose is a member's derived state for one frame
// Position is in world space; Stretch is the (x, y) aspect scale
type MemberPose struct {
	Position vmath.Vec3F
	Angle    float64
	Stretch  vmath.Vec2F
	Visible  bool
}

// Palette is the charge-driven material selection
type Palette struct {
	Charged   bool
	Intensity float64
}

// BuildMembers expands Layers into slots with evenly spaced base angles
func BuildMembers() []Member {
	members := make([]Member, 0, MemberCount)
	for li, l := range Layers {
		for i := 0; i < l.Count; i++ {
			members = append(members, Member{
				Index:      len(members),
				Layer:      li,
				BaseAngle:  float64(i) / float64(l.Count) * 2 * math.Pi,
				BaseRadius: l.Radius,
				RotSpeed:   l.RotSpeed,
				Dir:        l.Dir,
				BaseZ:      l.Z,
			})
		}
	}
	return members
}

// ShakeAmplitude grows linearly with charge above the shake threshold
func ShakeAmplitude(charge float64) float64 {
	if charge <= parameter.ShakeChargeStart {
		return 0
	}
	return (charge - parameter.ShakeChargeStart) / parameter.ShakeChargeSpan * parameter.ShakeMaxAmplitude
}

// InwardShake is the radius offset applied near full charge
func InwardShake(charge, t float64) float64 {
	if charge < parameter.InwardShakeCharge {
		return 0
	}
	return math.Sin(t*parameter.InwardShakeFrequency) * ShakeAmplitude(charge)
}

// PaletteFor selects the charged palette at high charge
func PaletteFor(charge, t float64) Palette {
	if charge >= parameter.ChargedPaletteCharge {
		return Palette{Charged: true, Intensity: 12.0 + math.Sin(t*20)*6}
	}
	return Palette{Intensity: 4.5 + math.Sin(t*20)*1.5}
}

// FormationPose places one member at time t; pure function of charge, time and scale
func FormationPose(m Member, center vmath.Vec3F, charge, t, scale float64) MemberPose {
	angle := m.BaseAngle + t*m.RotSpeed*m.Dir
	radius := m.BaseRadius*scale + InwardShake(charge, t)

	s, c := math.Sincos(angle)
	pos := vmath.Vec3F{
		X: center.X + c*radius,
		Y: center.Y + s*radius,
		Z: center.Z + m.BaseZ + math.Sin(t*3+float64(m.Layer))*0.2,
	}

	size := (0.55 - float64(m.Layer)*0.06) *
		(1 + math.Sin(t*2+float64(m.Index))*0.02) *
		(0.85 + scale*0.15)

	return MemberPose{
		Position: pos,
		Angle:    angle - math.Pi/2 + math.Sin(t*8)*0.04,
		Stretch:  vmath.Vec2F{X: size, Y: size},
		Visible:  true,
	}
}

// ExpansionPose bursts a member outward from its launch snapshot
// t is seconds since launch; zero radial direction falls back to +Y
func ExpansionPose(start, center vmath.Vec3F, t float64) MemberPose {
	dir := vmath.V3FNormalize(vmath.V3FSub(start, center))
	if dir == (vmath.Vec3F{}) {
		dir = vmath.Vec3F{Y: 1}
	}

	shrink := 1.0
	if t < parameter.ExpandShrinkTime {
		shrink = 1 - t*parameter.ExpandShrinkRate
	}
	push := math.Max(0, t-parameter.ExpandShrinkTime) * parameter.ExpandPushSpeed

	rel := vmath.V3FScale(vmath.V3FSub(start, center), shrink)
	pos := vmath.V3FAdd(vmath.V3FAdd(center, rel), vmath.V3FScale(dir, push))

	return MemberPose{
		Position: pos,
		Angle:    math.Atan2(dir.Y, dir.X) - math.Pi/2,
		Stretch: vmath.Vec2F{
			X: parameter.ExpandSquashBase / (1 + t*parameter.ExpandSquashRate),
			Y: parameter.ExpandStretchBase * (1 + t*parameter.ExpandStretchRate),
		},
		Visible: true,
	}
}

// RingAngles returns the overlay ring rotations at time t
func RingAngles(t float64) [parameter.RingCount]float64 {
	var out [parameter.RingCount]float64
	for i, speed := range parameter.RingSpeeds {
		out[i] = t * speed
	}
	return out
}

// RingScale is the breathing overlay scale
func RingScale(t, scale float64) float64 {
	return (parameter.BreathingBase + math.Sin(t*parameter.BreathingFrequency)*parameter.BreathingAmplitude) * scale
}
