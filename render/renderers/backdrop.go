package renderers

import (
	"math"

	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/render"
)

// BackdropRenderer draws the sky gradient and a ground plane that shakes with array charge
type BackdropRenderer struct{}

func NewBackdropRenderer() *BackdropRenderer { return &BackdropRenderer{} }

// Render implements SystemRenderer
func (r *BackdropRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	h := ctx.FieldHeight
	if h <= 0 {
		return
	}
	horizon := h * 2 / 3

	shake := 0
	if snap := ctx.Snap; snap != nil && snap.Mode == mode.ModeArray {
		amp := finisher.ShakeAmplitude(snap.Meter)
		// Amplitude is in world units; a few cells at most
		shake = int(math.Round(math.Sin(ctx.Time*47) * amp * 20))
	}

	for y := 0; y < h; y++ {
		var bg render.RGB
		if y < horizon {
			bg = render.Lerp(render.RgbBackground, render.RgbHorizon, float64(y)/float64(max(horizon, 1)))
		} else {
			bg = render.Lerp(render.RgbGround, render.RgbBackground, float64(y-horizon)/float64(max(h-horizon, 1)))
		}
		for x := 0; x < ctx.ScreenWidth; x++ {
			buf.SetBg(x, y, bg, render.BlendReplace, 1)
		}
	}

	// Ground texture scrolls with the shake
	for y := horizon + 1; y < h; y += 2 {
		step := 4 + (y-horizon)*2
		for x := (y + shake) % step; x < ctx.ScreenWidth; x += step {
			if x >= 0 {
				buf.Set(x, y, '·', render.RgbTextDim, render.BlendReplace, 1, 0)
			}
		}
	}
}
