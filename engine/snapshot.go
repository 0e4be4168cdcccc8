package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/sword-rain/encounter"
	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/pose"
	"github.com/lixenwraith/sword-rain/vmath"
)

// EnemyView is the render view of one enemy
type EnemyView struct {
	ID            uint64         `json:"id"`
	Kind          encounter.Kind `json:"-"`
	KindName      string         `json:"kind"`
	Position      vmath.Vec3F    `json:"position"`
	Eye           vmath.Vec3F    `json:"eye"`
	Scale         float64        `json:"scale"`
	Seed          float64        `json:"seed"`
	Dead          bool           `json:"dead"`
	DeathProgress float64        `json:"death_progress"`
	Heading       float64        `json:"heading"`
}

// Snapshot is an immutable per-frame view for renderers, audio and the network bridge
// Published once per tick; readers must not mutate it
type Snapshot struct {
	Frame   uint64        `json:"frame"`
	Elapsed time.Duration `json:"elapsed"`

	Mode          mode.Mode       `json:"-"`
	ModeName      string          `json:"mode"`
	Phase         finisher.Phase  `json:"-"`
	PhaseName     string          `json:"phase"`
	Pose          pose.TargetPose `json:"pose"`
	Trail         []vmath.Vec3F   `json:"-"`
	Speed         float64         `json:"speed"`
	Shockwave     float64         `json:"shockwave"`
	Meter         float64         `json:"meter"`
	Kills         int             `json:"kills"`
	Confirmed     int             `json:"confirmed_hands"`
	Transitioning bool            `json:"transitioning"`
	Locked        bool            `json:"locked"`
	Scale         float64         `json:"formation_scale"`

	Enemies  []EnemyView       `json:"enemies"`
	Finisher finisher.Snapshot `json:"-"`
}

// ChargeActive reports whether the array charge drone should play
func (s *Snapshot) ChargeActive() bool {
	return s.Mode == mode.ModeArray && s.Phase == finisher.PhaseForming
}

func enemyViews(enemies []encounter.Enemy, now time.Duration) []EnemyView {
	out := make([]EnemyView, len(enemies))
	for i := range enemies {
		e := &enemies[i]
		out[i] = EnemyView{
			ID:            e.ID,
			Kind:          e.Kind,
			KindName:      e.Kind.String(),
			Position:      e.Position,
			Eye:           e.HitPoint(),
			Scale:         e.Scale,
			Seed:          e.Seed,
			Dead:          e.Dead,
			DeathProgress: e.DeathProgress(now),
			Heading:       math.Atan2(e.Velocity.Y, e.Velocity.X),
		}
	}
	return out
}
