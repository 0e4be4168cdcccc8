package renderers

import (
	"math"

	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/pose"
	"github.com/lixenwraith/sword-rain/render"
	"github.com/lixenwraith/sword-rain/vmath"
)

// SwordRenderer draws the single sword blade, hilt and speed shockwave
// Hidden while the array formation is shown
type SwordRenderer struct{}

func NewSwordRenderer() *SwordRenderer { return &SwordRenderer{} }

// Render implements SystemRenderer
func (r *SwordRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	snap := ctx.Snap
	if snap == nil || snap.Mode != mode.ModeSingle {
		return
	}
	seg := pose.Sweep(snap.Pose)

	x1, y1 := ctx.ProjectF(seg.A)
	x2, y2 := ctx.ProjectF(seg.B)
	glyph := render.LineGlyph(x2-x1, y2-y1)

	// Glow grows with speed
	glow := vmath.Clamp(0.15+snap.Speed*0.02, 0.15, 0.6)
	vmath.Traverse(x1, y1, x2, y2, func(x, y int) bool {
		if ctx.InField(x, y) {
			buf.SetBg(x, y, render.RgbBladeGlow, render.BlendAlpha, glow)
		}
		return true
	})
	render.DrawLine(ctx, buf, seg.A, seg.B, glyph, render.RgbBlade, render.BlendReplace, 1)

	if tx, ty, ok := ctx.Project(seg.B); ok {
		buf.Set(tx, ty, '✦', render.RgbShockwave, render.BlendReplace, 1, 0)
	}
	if hx, hy, ok := ctx.Project(seg.A); ok {
		buf.Set(hx, hy, '◆', render.RgbHilt, render.BlendReplace, 1, 0)
	}

	if snap.Shockwave > 0 {
		r.renderShockwave(ctx, buf, seg.B, snap.Shockwave)
	}
}

// renderShockwave rings the tip; intensity in (0,1] sets radius and brightness
func (r *SwordRenderer) renderShockwave(ctx render.RenderContext, buf *render.RenderBuffer, tip vmath.Vec3F, intensity float64) {
	radius := 0.3 + intensity*0.9
	const points = 16
	for i := 0; i < points; i++ {
		s, c := math.Sincos(float64(i)*2*math.Pi/points + ctx.Time*6)
		p := vmath.Vec3F{X: tip.X + c*radius, Y: tip.Y + s*radius, Z: tip.Z}
		if x, y, ok := ctx.Project(p); ok {
			buf.Set(x, y, '·', render.RgbShockwave, render.BlendAdd, intensity, 0)
		}
	}
}

// TrailRenderer draws fading dots along recent hilt positions
type TrailRenderer struct{}

func NewTrailRenderer() *TrailRenderer { return &TrailRenderer{} }

// Render implements SystemRenderer
func (r *TrailRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	snap := ctx.Snap
	if snap == nil || snap.Mode != mode.ModeSingle || len(snap.Trail) < 2 {
		return
	}
	n := len(snap.Trail)
	for i := 1; i < n; i++ {
		alpha := float64(i) / float64(n)
		color := render.Scale(render.RgbTrail, 0.3+0.7*alpha)
		render.DrawLine(ctx, buf, snap.Trail[i-1], snap.Trail[i], '•', color, render.BlendMax, 1)
	}
}
