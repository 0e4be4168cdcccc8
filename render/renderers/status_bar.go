package renderers

import (
	"fmt"

	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/render"
)

// StatusBarRenderer draws the charge meter and the mode/status line below the play field
type StatusBarRenderer struct{}

func NewStatusBarRenderer() *StatusBarRenderer { return &StatusBarRenderer{} }

// Render implements SystemRenderer
func (r *StatusBarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	meterRow := ctx.FieldHeight
	statusRow := ctx.FieldHeight + 1
	if statusRow >= ctx.ScreenHeight || ctx.ScreenWidth <= 0 {
		return
	}
	snap := ctx.Snap

	meter := 0.0
	if snap != nil {
		meter = snap.Meter
	}
	r.renderMeter(ctx, buf, meterRow, meter)

	x := 0
	badge, badgeBg := " SINGLE ", render.RgbModeSingleBg
	if snap != nil && snap.Mode == mode.ModeArray {
		badge, badgeBg = " ARRAY ", render.RgbModeArrayBg
	}
	x = buf.SetString(x, statusRow, badge, render.RgbStatusText, badgeBg)

	if snap != nil && snap.Locked {
		x = buf.SetString(x, statusRow, " LOCKED ", render.RgbStatusText, render.RgbLockedBg)
	}
	if ctx.Paused {
		x = buf.SetString(x, statusRow, " PAUSED ", render.RgbStatusText, render.RgbPausedBg)
	}

	var info string
	if snap != nil {
		info = fmt.Sprintf(" %s  kills %d  hands %d  speed %4.1f ",
			snap.PhaseName, snap.Kills, snap.Confirmed, snap.Speed)
	}
	x = buf.SetString(x, statusRow, info, render.RgbText, render.RgbBackground)

	audio := "audio off"
	switch {
	case ctx.Backend == "":
	case ctx.Muted:
		audio = "muted"
	default:
		audio = "audio " + ctx.Backend
	}
	right := audio
	if ctx.Bridge != "" {
		right = "ws " + ctx.Bridge + "  " + right
	}
	right += " "
	if start := ctx.ScreenWidth - len([]rune(right)); start > x {
		buf.SetString(start, statusRow, right, render.RgbTextDim, render.RgbBackground)
	}
}

// renderMeter draws a gradient bar across the full width with the percentage centered
func (r *StatusBarRenderer) renderMeter(ctx render.RenderContext, buf *render.RenderBuffer, row int, meter float64) {
	w := ctx.ScreenWidth
	frac := meter / parameter.MeterMax
	filled := int(frac * float64(w))
	for x := 0; x < w; x++ {
		if x < filled {
			c := render.MeterColor(float64(x+1) / float64(w))
			buf.SetWithBg(x, row, '█', c, render.RgbBackground)
		} else {
			buf.SetWithBg(x, row, '░', render.RgbTextDim, render.RgbBackground)
		}
	}

	label := fmt.Sprintf(" %3.0f%% ", meter)
	start := (w - len(label)) / 2
	if start < 0 {
		return
	}
	fg := render.RgbText
	if meter >= parameter.ArrayEnterThreshold {
		fg = render.RgbFormationCharged
	}
	buf.SetString(start, row, label, fg, render.RgbBackground)
}

// Register adds the standard layers to an orchestrator
func Register(o *render.RenderOrchestrator) {
	o.Register(NewBackdropRenderer(), render.PriorityBackground)
	o.Register(NewEnemyRenderer(), render.PriorityEnemies)
	o.Register(NewRingRenderer(), render.PriorityRing)
	o.Register(NewFormationRenderer(), render.PriorityFormation)
	o.Register(NewRainRenderer(), render.PriorityRain)
	o.Register(NewTrailRenderer(), render.PriorityTrail)
	o.Register(NewSwordRenderer(), render.PrioritySword)
	o.Register(NewStatusBarRenderer(), render.PriorityUI)
}
