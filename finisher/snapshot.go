package finisher

import (
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Snapshot is an immutable view of the sequence for renderers
type Snapshot struct {
	Phase   Phase
	Elapsed time.Duration
	Palette Palette

	Members []MemberPose // empty outside forming and expanding
	Drops   []DropPose   // empty outside expanding and raining
	Opacity float64

	RingVisible bool
	RingAngles  [parameter.RingCount]float64
	RingScale   float64
}

// Snapshot derives the current frame
func (s *Sequencer) Snapshot() Snapshot {
	t := s.clock.Seconds()
	phase := s.Phase()
	elapsed := s.machine.TimeInState()

	snap := Snapshot{
		Phase:       phase,
		Elapsed:     elapsed,
		Palette:     PaletteFor(s.charge, t),
		Opacity:     1,
		RingVisible: phase == PhaseForming || phase == PhaseExpanding,
		RingAngles:  RingAngles(t),
		RingScale:   RingScale(t, s.scale),
	}

	switch phase {
	case PhaseForming:
		snap.Members = make([]MemberPose, len(s.members))
		for i, m := range s.members {
			snap.Members[i] = FormationPose(m, s.center, s.charge, t, s.scale)
		}

	case PhaseExpanding:
		et := elapsed.Seconds()
		snap.Members = make([]MemberPose, len(s.members))
		for i := range s.members {
			snap.Members[i] = ExpansionPose(s.launchPoses[i], s.launchCenter, et)
		}
		// Rain pool is staged but held invisible until raining begins
		snap.Drops = s.dropPoses(-0.1)

	case PhaseRaining:
		snap.Drops = s.dropPoses(elapsed.Seconds())
		snap.Opacity = RainOpacity(elapsed)

	case PhaseCompleted:
		snap.Opacity = 0
	}

	return snap
}

func (s *Sequencer) dropPoses(elapsed float64) []DropPose {
	out := make([]DropPose, len(s.drops))
	for i, d := range s.drops {
		out[i] = d.PoseAt(elapsed)
	}
	return out
}

// VisibleDrops counts drops currently shown
func (sn Snapshot) VisibleDrops() int {
	n := 0
	for _, d := range sn.Drops {
		if d.Visible {
			n++
		}
	}
	return n
}

// Centroid averages visible member positions; used by renderers to frame the formation
func (sn Snapshot) Centroid() vmath.Vec3F {
	var sum vmath.Vec3F
	n := 0
	for _, m := range sn.Members {
		if m.Visible {
			sum = vmath.V3FAdd(sum, m.Position)
			n++
		}
	}
	if n == 0 {
		return vmath.Vec3F{}
	}
	return vmath.V3FScale(sum, 1/float64(n))
}
