// Package landmark defines the per-frame hand keypoint model and the sources that produce it
package landmark

import (
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Point3D is a normalized keypoint; X and Y in [0,1] image space, Z relative depth
type Point3D struct {
	X, Y, Z float64
}

// XY drops depth
func (p Point3D) XY() vmath.Vec2F {
	return vmath.Vec2F{X: p.X, Y: p.Y}
}

// Hand is one detected hand in the 21-point layout
type Hand [parameter.LandmarkCount]Point3D

func (h *Hand) Wrist() Point3D    { return h[parameter.LandmarkWrist] }
func (h *Hand) IndexMCP() Point3D { return h[parameter.LandmarkIndexMCP] }
func (h *Hand) IndexTip() Point3D { return h[parameter.LandmarkIndexTip] }

// PalmSize is the 2D wrist to index MCP distance
func (h *Hand) PalmSize() float64 {
	return vmath.V2FMag(vmath.V2FSub(h.IndexMCP().XY(), h.Wrist().XY()))
}

// HandFrame is one detection result; immutable once produced
// Timestamp is the capture time relative to source start
type HandFrame struct {
	Hands     []Hand
	Timestamp time.Duration
}

// Count returns the raw number of hands, capped at MaxHands
func (f *HandFrame) Count() int {
	if f == nil {
		return 0
	}
	if len(f.Hands) > parameter.MaxHands {
		return parameter.MaxHands
	}
	return len(f.Hands)
}

// Primary returns the first hand, or false when the frame is empty
func (f *HandFrame) Primary() (Hand, bool) {
	if f == nil || len(f.Hands) == 0 {
		return Hand{}, false
	}
	return f.Hands[0], true
}

// NewHand builds a synthetic hand with the wrist at wrist and the index finger pointing
// along (dx, dy) with the given palm size; remaining joints sit on the wrist
// Used by pointer input and tests
func NewHand(wrist vmath.Vec2F, dx, dy, palm float64) Hand {
	var h Hand
	for i := range h {
		h[i] = Point3D{X: wrist.X, Y: wrist.Y}
	}
	mag := vmath.V2FMag(vmath.Vec2F{X: dx, Y: dy})
	if mag == 0 {
		dx, dy, mag = 0, -1, 1
	}
	ux, uy := dx/mag, dy/mag
	h[parameter.LandmarkIndexMCP] = Point3D{X: wrist.X + ux*palm, Y: wrist.Y + uy*palm}
	h[parameter.LandmarkMiddleMCP] = h[parameter.LandmarkIndexMCP]
	h[parameter.LandmarkIndexTip] = Point3D{X: wrist.X + ux*palm*2, Y: wrist.Y + uy*palm*2}
	return h
}
