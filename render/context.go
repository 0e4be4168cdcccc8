package render

import (
	"math"

	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// HUD rows reserved at the bottom of the screen
const StatusRows = 2

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snap *engine.Snapshot

	// Seconds of simulation time, for animation phase
	Time float64

	Paused  bool
	Muted   bool
	Backend string // audio backend name, empty when disabled
	Bridge  string // bridge address, empty when disabled

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Play field rows above the status bar
	FieldHeight int
}

// NewRenderContext derives screen geometry for one frame
func NewRenderContext(snap *engine.Snapshot, width, height int) RenderContext {
	ctx := RenderContext{
		Snap:         snap,
		ScreenWidth:  width,
		ScreenHeight: height,
		FieldHeight:  max(height-StatusRows, 0),
	}
	if snap != nil {
		ctx.Time = snap.Elapsed.Seconds()
	}
	return ctx
}

// ProjectF maps a world point to fractional cell coordinates
// World X spans ViewWidth, Y spans ViewHeight with +Y up; depth pulls points toward the center
func (ctx RenderContext) ProjectF(p vmath.Vec3F) (float64, float64) {
	persp := 1.0 / (1.0 + math.Max(-p.Z, -0.9)*0.15)
	nx := p.X*persp/parameter.ViewWidth + 0.5
	ny := 0.5 - p.Y*persp/parameter.ViewHeight
	return nx * float64(ctx.ScreenWidth), ny * float64(ctx.FieldHeight)
}

// Project maps a world point to a screen cell; ok is false outside the play field
func (ctx RenderContext) Project(p vmath.Vec3F) (x, y int, ok bool) {
	if ctx.ScreenWidth <= 0 || ctx.FieldHeight <= 0 {
		return 0, 0, false
	}
	fx, fy := ctx.ProjectF(p)
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	ok = x >= 0 && x < ctx.ScreenWidth && y >= 0 && y < ctx.FieldHeight
	return x, y, ok
}

// InField reports whether a cell lies in the play field
func (ctx RenderContext) InField(x, y int) bool {
	return x >= 0 && x < ctx.ScreenWidth && y >= 0 && y < ctx.FieldHeight
}

// DrawLine strokes a world segment with one glyph, clipped to the play field
func DrawLine(ctx RenderContext, buf *RenderBuffer, a, b vmath.Vec3F, r rune, fg RGB, mode BlendMode, alpha float64) {
	if ctx.ScreenWidth <= 0 || ctx.FieldHeight <= 0 {
		return
	}
	x1, y1 := ctx.ProjectF(a)
	x2, y2 := ctx.ProjectF(b)
	limit := ctx.ScreenWidth + ctx.FieldHeight
	steps := 0
	vmath.Traverse(x1, y1, x2, y2, func(x, y int) bool {
		if ctx.InField(x, y) {
			buf.Set(x, y, r, fg, mode, alpha, 0)
		}
		steps++
		return steps < limit*2
	})
}

// LineGlyph picks a box glyph for a direction in screen space (y down)
func LineGlyph(dx, dy float64) rune {
	a := math.Atan2(dy, dx)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '─'
	case a < 3*math.Pi/8:
		return '╲'
	case a < 5*math.Pi/8:
		return '│'
	default:
		return '╱'
	}
}

// CellsPerUnit returns the horizontal and vertical cell density of one world unit
func (ctx RenderContext) CellsPerUnit() (float64, float64) {
	return float64(ctx.ScreenWidth) / parameter.ViewWidth, float64(ctx.FieldHeight) / parameter.ViewHeight
}
