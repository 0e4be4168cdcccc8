package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sword-rain/encounter"
	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/gesture"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/pose"
	"github.com/lixenwraith/sword-rain/status"
)

// GameConfig seeds and tunes one game instance
type GameConfig struct {
	Seed            uint64
	CollisionRadius float64 // <= 0 uses parameter.CollisionRadius
	KillsToCharge   int     // <= 0 uses parameter.MonstersToKill
}

// EventListener receives drained events on the engine goroutine; must not block
type EventListener func(event.GameEvent)

// FrameListener receives each published snapshot on the engine goroutine; must not block
type FrameListener func(*Snapshot)

// Game owns the core simulation and is its single writer
// Poll and Tick must be called from one goroutine (see Scheduler)
type Game struct {
	clock  TimeProvider
	source landmark.Source
	events *event.EventQueue

	classifier *gesture.Classifier
	estimator  *pose.Estimator
	sequencer  *finisher.Sequencer
	controller *mode.Controller
	encounters *encounter.Manager

	started     bool
	start       time.Time
	lastTick    time.Time
	lastObserve time.Time
	frame       uint64

	snapshot atomic.Pointer[Snapshot]

	mu             sync.RWMutex
	eventListeners []EventListener
	frameListeners []FrameListener

	statTicks       *atomic.Int64
	statPolls       *atomic.Int64
	statKills       *atomic.Int64
	statSpawns      *atomic.Int64
	statConfirmed   *atomic.Int64
	statCompletions *atomic.Int64
	statMeter       *status.AtomicFloat
	statMode        *status.AtomicString
	statPhase       *status.AtomicString
}

// NewGame wires the core components; source and reg may be nil
func NewGame(cfg GameConfig, clock TimeProvider, source landmark.Source, reg *status.Registry) *Game {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if source == nil {
		source = landmark.NullSource{}
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	radius := cfg.CollisionRadius
	if radius <= 0 {
		radius = parameter.CollisionRadius
	}

	g := &Game{
		clock:      clock,
		source:     source,
		events:     event.NewEventQueue(),
		classifier: gesture.NewClassifier(),
		estimator:  pose.NewEstimator(),
		sequencer:  finisher.NewSequencer(cfg.Seed),
		encounters: encounter.NewManager(cfg.Seed^0x9e3779b97f4a7c15, radius),

		statTicks:       reg.Ints.Get(status.EngineTicks),
		statPolls:       reg.Ints.Get(status.EnginePolls),
		statKills:       reg.Ints.Get(status.EncounterKills),
		statSpawns:      reg.Ints.Get(status.EncounterSpawns),
		statConfirmed:   reg.Ints.Get(status.GestureConfirmed),
		statCompletions: reg.Ints.Get(status.FinisherCompletions),
		statMeter:       reg.Floats.Get(status.EngineMeter),
		statMode:        reg.Strings.Get(status.EngineMode),
		statPhase:       reg.Strings.Get(status.EnginePhase),
	}
	g.controller = mode.NewController(g.classifier, g.estimator, g.sequencer, g.events, cfg.KillsToCharge)

	g.encounters.OnKill(g.handleKill)
	g.encounters.OnSpawn(g.handleSpawn)

	g.publish(0)
	return g
}

// OnEvent registers a listener for drained discrete events
func (g *Game) OnEvent(fn EventListener) {
	g.mu.Lock()
	g.eventListeners = append(g.eventListeners, fn)
	g.mu.Unlock()
}

// OnFrame registers a listener for published snapshots
func (g *Game) OnFrame(fn FrameListener) {
	g.mu.Lock()
	g.frameListeners = append(g.frameListeners, fn)
	g.mu.Unlock()
}

// SetSource swaps the landmark source; call only from the engine goroutine or before start
func (g *Game) SetSource(src landmark.Source) {
	if src == nil {
		src = landmark.NullSource{}
	}
	g.source = src
}

// Poll runs one detection step: classification, pose, then mode evaluation
// A nil detection result is skipped
func (g *Game) Poll() {
	now := g.clock.Now()
	g.prime(now)

	f := g.source.Detect()
	if f == nil {
		return
	}
	dt := parameter.ClampDelta(now.Sub(g.lastObserve))
	g.lastObserve = now

	g.controller.Observe(f, dt)
	g.statPolls.Add(1)
}

// Tick advances the frame: controller timers and finisher, then encounters against the current sweep
func (g *Game) Tick() {
	now := g.clock.Now()
	g.prime(now)

	dt := parameter.ClampDelta(now.Sub(g.lastTick))
	g.lastTick = now

	g.controller.Update(dt)

	g.encounters.SetActive(g.controller.EncounterActive())
	g.encounters.Tick(dt, pose.Sweep(g.controller.Pose()))

	g.dispatch()
	g.frame++
	g.statTicks.Add(1)
	g.publish(now.Sub(g.start))
}

// Step is the deterministic form used by replay and tests: one poll then one tick after advancing a mock clock
func (g *Game) Step(mock *MockTimeProvider, dt time.Duration) {
	mock.Advance(dt)
	g.Poll()
	g.Tick()
}

func (g *Game) prime(now time.Time) {
	if g.started {
		return
	}
	g.started = true
	g.start = now
	g.lastTick = now
	g.lastObserve = now
}

func (g *Game) handleKill(e encounter.Enemy) {
	meter := g.controller.OnKill()
	g.statKills.Add(1)
	g.events.Emit(event.EventKill, &event.KillPayload{
		EnemyID:  e.ID,
		Kind:     e.Kind.String(),
		Position: e.Position,
		Meter:    meter,
		Kills:    g.controller.Kills(),
	}, g.encounters.Now())
}

func (g *Game) handleSpawn(e encounter.Enemy) {
	g.statSpawns.Add(1)
	g.events.Emit(event.EventSpawn, &event.SpawnPayload{
		EnemyID:  e.ID,
		Kind:     e.Kind.String(),
		Position: e.Position,
	}, g.encounters.Now())
}

// dispatch drains the queue to listeners and keeps the derived counters current
func (g *Game) dispatch() {
	evs := g.events.Consume()
	if len(evs) == 0 {
		return
	}

	g.mu.RLock()
	listeners := g.eventListeners
	g.mu.RUnlock()

	for _, ev := range evs {
		switch ev.Type {
		case event.EventGestureConfirmed:
			if n, ok := ev.Payload.(int); ok {
				g.statConfirmed.Store(int64(n))
			}
		case event.EventSequenceCompleted:
			g.statCompletions.Add(1)
		}
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

func (g *Game) publish(elapsed time.Duration) {
	st := g.controller.State()
	phase := g.sequencer.Phase()

	snap := &Snapshot{
		Frame:         g.frame,
		Elapsed:       elapsed,
		Mode:          st.Mode,
		ModeName:      st.Mode.String(),
		Phase:         phase,
		PhaseName:     phase.String(),
		Pose:          st.Pose,
		Trail:         g.estimator.Trail(),
		Speed:         st.Speed,
		Shockwave:     st.Shockwave,
		Meter:         st.Meter,
		Kills:         st.Kills,
		Confirmed:     st.Confirmed,
		Transitioning: st.Transitioning,
		Locked:        g.classifier.Locked(),
		Scale:         st.Scale,
		Enemies:       enemyViews(g.encounters.Enemies(), g.encounters.Now()),
		Finisher:      g.sequencer.Snapshot(),
	}
	g.snapshot.Store(snap)

	g.statMeter.Set(st.Meter)
	g.statMode.Store(snap.ModeName)
	g.statPhase.Store(snap.PhaseName)

	g.mu.RLock()
	listeners := g.frameListeners
	g.mu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// Snapshot returns the latest published frame; safe from any goroutine
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

// Controller exposes the mode controller for inspection
func (g *Game) Controller() *mode.Controller { return g.controller }

// Encounters exposes the encounter manager for inspection
func (g *Game) Encounters() *encounter.Manager { return g.encounters }

// Sequencer exposes the finisher for inspection
func (g *Game) Sequencer() *finisher.Sequencer { return g.sequencer }
