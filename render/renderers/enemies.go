package renderers

import (
	"github.com/lixenwraith/sword-rain/encounter"
	"github.com/lixenwraith/sword-rain/engine"
	"github.com/lixenwraith/sword-rain/render"
)

// Enemy sprites, centered on the body cell
var (
	wolfSprite  = []string{`/\_/\`, `(o.o)`, ` > ^ `}
	eagleSprite = []string{`\\ //`, ` >v< `, `  "  `}
)

// EnemyRenderer draws live enemies and their collapse after death
type EnemyRenderer struct{}

func NewEnemyRenderer() *EnemyRenderer { return &EnemyRenderer{} }

// Render implements SystemRenderer
func (r *EnemyRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snap == nil {
		return
	}
	for i := range ctx.Snap.Enemies {
		e := &ctx.Snap.Enemies[i]
		if e.Dead {
			r.renderDeath(ctx, buf, e)
			continue
		}
		r.renderLive(ctx, buf, e)
	}
}

func (r *EnemyRenderer) renderLive(ctx render.RenderContext, buf *render.RenderBuffer, e *engine.EnemyView) {
	cx, cy, ok := ctx.Project(e.Position)
	if !ok {
		return
	}
	sprite, color := wolfSprite, render.RgbWolf
	if e.Kind == encounter.KindEagle {
		sprite, color = eagleSprite, render.RgbEagle
	}
	top := cy - len(sprite) + 1
	for row, line := range sprite {
		x := cx - len(line)/2
		for _, ch := range line {
			if ch != ' ' && ctx.InField(x, top+row) {
				buf.Set(x, top+row, ch, color, render.BlendReplace, 1, 0)
			}
			x++
		}
	}

	// Eyes are the hit target
	if ex, ey, ok := ctx.Project(e.Eye); ok {
		buf.Set(ex, ey, '◉', render.RgbEnemyEye, render.BlendReplace, 1, 0)
		buf.SetBg(ex, ey, render.RgbEnemyEye, render.BlendAlpha, 0.25)
	}
}

// renderDeath fades the body into an expanding spark ring
func (r *EnemyRenderer) renderDeath(ctx render.RenderContext, buf *render.RenderBuffer, e *engine.EnemyView) {
	p := e.DeathProgress
	if p >= 1 {
		return
	}
	cx, cy, ok := ctx.Project(e.Position)
	if !ok {
		return
	}
	alpha := 1 - p
	buf.Set(cx, cy, '✶', render.RgbEnemyDead, render.BlendAlpha, alpha, 0)

	radius := 1 + int(p*4)
	offsets := [][2]int{{-2, 0}, {2, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	for _, o := range offsets {
		x, y := cx+o[0]*radius, cy+o[1]*radius/2
		if ctx.InField(x, y) {
			buf.Set(x, y, '*', render.RgbEnemyDead, render.BlendAdd, alpha, 0)
		}
	}
}
