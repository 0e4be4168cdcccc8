package renderers

import (
	"math"

	"github.com/lixenwraith/sword-rain/render"
	"github.com/lixenwraith/sword-rain/vmath"
)

// RainRenderer draws the falling swords of the finisher
type RainRenderer struct{}

func NewRainRenderer() *RainRenderer { return &RainRenderer{} }

// Render implements SystemRenderer
func (r *RainRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snap == nil {
		return
	}
	fs := &ctx.Snap.Finisher
	if len(fs.Drops) == 0 || fs.Opacity <= 0 {
		return
	}
	color := paletteColor(fs.Palette, render.RgbRain, render.RgbRainCharged)

	for i := range fs.Drops {
		d := &fs.Drops[i]
		if !d.Visible {
			continue
		}
		hx, hy, ok := ctx.Project(d.Position)
		if !ok {
			continue
		}
		length := 1.2 * d.Scale.Y
		s, c := math.Sincos(d.Angle + math.Pi/2)
		tail := vmath.Vec3F{X: d.Position.X - c*length, Y: d.Position.Y - s*length, Z: d.Position.Z}
		tx, ty := ctx.ProjectF(tail)

		render.DrawLine(ctx, buf, tail, d.Position, render.LineGlyph(float64(hx)-tx, float64(hy)-ty), color, render.BlendAlpha, fs.Opacity*0.8)
		buf.Set(hx, hy, '▾', render.RgbShockwave, render.BlendAlpha, fs.Opacity, 0)
	}
}
