// Package finisher runs the formation, expansion, rain and completion sequence
package finisher

import (
	"time"

	"github.com/lixenwraith/sword-rain/engine/fsm"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Phase is the finisher sub-state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseForming
	PhaseExpanding
	PhaseRaining
	PhaseCompleted
)

var phaseNames = [...]string{"idle", "forming", "expanding", "raining", "completed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// State IDs follow Phase order after the reserved Root
const (
	stateIdle fsm.StateID = iota + 2
	stateForming
	stateExpanding
	stateRaining
	stateCompleted
)

const (
	triggerArm fsm.Trigger = iota + 1
	triggerLaunch
	triggerAbort
)

// Sequencer owns the finisher timeline
// Not safe for concurrent use; driven by the engine tick
type Sequencer struct {
	machine *fsm.Machine[*Sequencer]

	members []Member
	drops   []Drop

	clock  time.Duration // total time, drives formation rotation
	charge float64
	center vmath.Vec3F
	scale  float64

	launchCenter vmath.Vec3F
	launchPoses  []vmath.Vec3F

	completeFired   bool
	completePending bool
	onComplete      func()
	completions     int
}

// NewSequencer builds the machine and the seeded rain pool
func NewSequencer(seed uint64) *Sequencer {
	s := &Sequencer{
		members:     BuildMembers(),
		drops:       GenerateDrops(seed),
		scale:       1,
		launchPoses: make([]vmath.Vec3F, MemberCount),
	}

	m := fsm.NewMachine[*Sequencer]()
	m.AddState(stateIdle, PhaseIdle.String(), fsm.StateRoot)
	m.AddState(stateForming, PhaseForming.String(), fsm.StateRoot)
	m.AddState(stateExpanding, PhaseExpanding.String(), fsm.StateRoot)
	m.AddState(stateRaining, PhaseRaining.String(), fsm.StateRoot)
	m.AddState(stateCompleted, PhaseCompleted.String(), fsm.StateRoot)

	m.AddTransition(stateIdle, fsm.Transition[*Sequencer]{TargetID: stateForming, Trigger: triggerArm})
	m.AddTransition(stateForming, fsm.Transition[*Sequencer]{TargetID: stateExpanding, Trigger: triggerLaunch})
	m.AddTransition(stateForming, fsm.Transition[*Sequencer]{TargetID: stateIdle, Trigger: triggerAbort})
	m.AddTransition(stateExpanding, fsm.Transition[*Sequencer]{
		TargetID: stateRaining,
		Guard:    func(s *Sequencer) bool { return s.machine.TimeInState() >= parameter.ExpandDuration },
	})
	m.AddTransition(stateRaining, fsm.Transition[*Sequencer]{
		TargetID: stateCompleted,
		Guard:    func(s *Sequencer) bool { return s.machine.TimeInState() > parameter.RainDuration },
	})

	m.OnEnter(stateForming, (*Sequencer).enterForming, nil)
	m.OnEnter(stateExpanding, (*Sequencer).enterExpanding, nil)
	m.OnEnter(stateCompleted, (*Sequencer).enterCompleted, nil)

	// Static graph; CompilePaths and Init cannot fail
	_ = m.CompilePaths()
	m.InitialStateID = stateIdle
	s.machine = m
	_ = m.Init(s)
	return s
}

// OnComplete registers the completion callback, invoked once per launch
func (s *Sequencer) OnComplete(fn func()) {
	s.onComplete = fn
}

func (s *Sequencer) enterForming(_ any) {
	s.completeFired = false
	s.completePending = false
}

// enterExpanding snapshots every member's world position at the launch instant
func (s *Sequencer) enterExpanding(_ any) {
	t := s.clock.Seconds()
	s.launchCenter = s.center
	for i, m := range s.members {
		s.launchPoses[i] = FormationPose(m, s.center, s.charge, t, s.scale).Position
	}
}

func (s *Sequencer) enterCompleted(_ any) {
	s.completePending = true
}

// Arm starts forming from idle
func (s *Sequencer) Arm() bool {
	return s.machine.HandleEvent(s, triggerArm)
}

// Launch moves forming to expanding; only valid once per arm
func (s *Sequencer) Launch() bool {
	return s.machine.HandleEvent(s, triggerLaunch)
}

// Abort dissolves the formation; ignored outside forming
func (s *Sequencer) Abort() bool {
	return s.machine.HandleEvent(s, triggerAbort)
}

// Reset returns to idle from any phase without completing
func (s *Sequencer) Reset() {
	s.machine.Force(s, stateIdle)
	s.completePending = false
}

// Update advances the timeline; charge, center and scale feed the formation
// The completion callback runs after the machine settles, at most once per launch
func (s *Sequencer) Update(dt time.Duration, charge float64, center vmath.Vec3F, scale float64) {
	dt = parameter.ClampDelta(dt)
	s.clock += dt
	s.charge = charge
	s.center = center
	if scale > 0 {
		s.scale = scale
	}

	s.machine.Update(s, dt)

	if s.completePending && !s.completeFired {
		s.completePending = false
		s.completeFired = true
		s.completions++
		if s.onComplete != nil {
			s.onComplete()
		}
	}
}

// Phase returns the current sub-state
func (s *Sequencer) Phase() Phase {
	return Phase(s.machine.Current() - stateIdle)
}

// Active reports whether the sequence is past forming and not yet idle
func (s *Sequencer) Active() bool {
	p := s.Phase()
	return p == PhaseExpanding || p == PhaseRaining || p == PhaseCompleted
}

// Elapsed returns time spent in the current phase
func (s *Sequencer) Elapsed() time.Duration {
	return s.machine.TimeInState()
}

// Completions returns the number of completion callbacks fired
func (s *Sequencer) Completions() int {
	return s.completions
}

// Members returns the immutable slot configuration
func (s *Sequencer) Members() []Member {
	return s.members
}

// Drops returns the immutable rain pool
func (s *Sequencer) Drops() []Drop {
	return s.drops
}

// LaunchPositions returns a copy of the positions captured at launch
func (s *Sequencer) LaunchPositions() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(s.launchPoses))
	copy(out, s.launchPoses)
	return out
}
