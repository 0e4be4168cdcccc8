package renderers

import (
	"math"

	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/render"
	"github.com/lixenwraith/sword-rain/vmath"
)

// memberLength is the drawn blade length of a formation sword at Stretch 1
const memberLength = 0.7

// RingRenderer draws the rotating rune rings behind the formation
type RingRenderer struct{}

func NewRingRenderer() *RingRenderer { return &RingRenderer{} }

// Render implements SystemRenderer
func (r *RingRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snap == nil {
		return
	}
	fs := &ctx.Snap.Finisher
	if !fs.RingVisible {
		return
	}
	center := fs.Centroid()
	if len(fs.Members) == 0 {
		center = ctx.Snap.Pose.Position
	}
	color := render.RgbRing
	if fs.Palette.Charged {
		color = render.RgbRingCharged
	}

	for i := 0; i < parameter.RingCount; i++ {
		radius := (1.2 + float64(i)*0.55) * fs.RingScale
		// Dash density scales with circumference
		segments := 12 + i*6
		for k := 0; k < segments; k++ {
			// Every third dash is a gap so rotation is visible
			if k%3 == 2 {
				continue
			}
			s, c := math.Sincos(fs.RingAngles[i] + float64(k)*2*math.Pi/float64(segments))
			p := vmath.Vec3F{X: center.X + c*radius, Y: center.Y + s*radius, Z: center.Z}
			if x, y, ok := ctx.Project(p); ok {
				buf.Set(x, y, '∙', color, render.BlendMax, 1, 0)
			}
		}
	}
}

// FormationRenderer draws the array swords while forming and expanding
type FormationRenderer struct{}

func NewFormationRenderer() *FormationRenderer { return &FormationRenderer{} }

// Render implements SystemRenderer
func (r *FormationRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snap == nil {
		return
	}
	fs := &ctx.Snap.Finisher
	if len(fs.Members) == 0 {
		return
	}
	color := paletteColor(fs.Palette, render.RgbFormationCalm, render.RgbFormationCharged)

	for _, m := range fs.Members {
		if !m.Visible {
			continue
		}
		length := memberLength * m.Stretch.Y
		s, c := math.Sincos(m.Angle + math.Pi/2)
		tip := vmath.Vec3F{X: m.Position.X + c*length, Y: m.Position.Y + s*length, Z: m.Position.Z}

		x1, y1 := ctx.ProjectF(m.Position)
		x2, y2 := ctx.ProjectF(tip)
		render.DrawLine(ctx, buf, m.Position, tip, render.LineGlyph(x2-x1, y2-y1), color, render.BlendReplace, 1)
		if x, y, ok := ctx.Project(tip); ok {
			buf.SetBg(x, y, color, render.BlendAlpha, 0.2)
		}
	}
}

// paletteColor maps charge intensity onto a color; charged intensity runs roughly 6-18, calm 3-6
func paletteColor(p finisher.Palette, calm, charged render.RGB) render.RGB {
	if p.Charged {
		return render.Scale(charged, 0.75+p.Intensity/72)
	}
	return render.Scale(calm, 0.7+p.Intensity/20)
}
