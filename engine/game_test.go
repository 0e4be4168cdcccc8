package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/mode"
	"github.com/lixenwraith/sword-rain/status"
	"github.com/lixenwraith/sword-rain/vmath"
)

const step = 10 * time.Millisecond

type harness struct {
	clock  *MockTimeProvider
	box    *landmark.Mailbox
	reg    *status.Registry
	game   *Game
	counts map[event.EventType]int
}

func newHarness(t *testing.T, seed uint64) *harness {
	t.Helper()
	h := &harness{
		clock:  NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		box:    landmark.NewMailbox(),
		reg:    status.NewRegistry(),
		counts: make(map[event.EventType]int),
	}
	h.game = NewGame(GameConfig{Seed: seed}, h.clock, h.box, h.reg)
	h.game.OnEvent(func(ev event.GameEvent) { h.counts[ev.Type]++ })
	return h
}

// aimedHand places the fingertip over the first live enemy's eye, or the view center
func (h *harness) aimedHand() landmark.Hand {
	target := vmath.Vec3F{}
	for _, e := range h.game.Encounters().Enemies() {
		if !e.Dead {
			target = e.HitPoint()
			break
		}
	}
	tipX := 0.5 - target.X/24
	tipY := 0.5 - target.Y/14
	const palm = 0.15
	return landmark.NewHand(vmath.Vec2F{X: tipX, Y: tipY + 2*palm}, 0, -1, palm)
}

func (h *harness) stepHands(hands ...landmark.Hand) {
	h.box.Publish(&landmark.HandFrame{Hands: hands, Timestamp: 0})
	h.game.Step(h.clock, step)
}

func twoHands() []landmark.Hand {
	return []landmark.Hand{
		landmark.NewHand(vmath.Vec2F{X: 0.3, Y: 0.6}, 0, -1, 0.15),
		landmark.NewHand(vmath.Vec2F{X: 0.7, Y: 0.6}, 0, -1, 0.15),
	}
}

func (h *harness) chargeMeter(t *testing.T) {
	t.Helper()
	for i := 0; i < 6000 && h.game.Controller().Kills() < 8; i++ {
		h.stepHands(h.aimedHand())
	}
	if h.game.Controller().Kills() != 8 {
		t.Fatalf("Expected 8 kills, got %d", h.game.Controller().Kills())
	}
}

func TestNilDetectionIsNoop(t *testing.T) {
	h := newHarness(t, 1)
	before := h.game.Controller().State()

	for i := 0; i < 50; i++ {
		h.game.Step(h.clock, step)
	}

	after := h.game.Controller().State()
	if after.Pose != before.Pose {
		t.Errorf("Expected pose unchanged without detections, got %+v", after.Pose)
	}
	if h.reg.Ints.Get(status.EnginePolls).Load() != 0 {
		t.Errorf("Expected 0 polls counted, got %d", h.reg.Ints.Get(status.EnginePolls).Load())
	}
	if h.reg.Ints.Get(status.EngineTicks).Load() != 50 {
		t.Errorf("Expected 50 ticks, got %d", h.reg.Ints.Get(status.EngineTicks).Load())
	}
}

func TestSpawnPublishedInSnapshot(t *testing.T) {
	h := newHarness(t, 2)

	// Cooldown is 1.2s from start
	for i := 0; i < 119; i++ {
		h.game.Step(h.clock, step)
	}
	if n := len(h.game.Snapshot().Enemies); n != 0 {
		t.Fatalf("Expected no enemy before cooldown, got %d", n)
	}
	for i := 0; i < 3; i++ {
		h.game.Step(h.clock, step)
	}

	snap := h.game.Snapshot()
	if len(snap.Enemies) != 1 {
		t.Fatalf("Expected 1 enemy after cooldown, got %d", len(snap.Enemies))
	}
	if h.counts[event.EventSpawn] != 1 {
		t.Errorf("Expected 1 spawn event, got %d", h.counts[event.EventSpawn])
	}
	if snap.ModeName != "single" || snap.PhaseName != "idle" {
		t.Errorf("Expected single/idle, got %s/%s", snap.ModeName, snap.PhaseName)
	}
	t.Logf("✓ Enemy %s spawned at %+v", snap.Enemies[0].KindName, snap.Enemies[0].Position)
}

func TestFullCycle(t *testing.T) {
	h := newHarness(t, 42)

	h.chargeMeter(t)
	if m := h.game.Controller().Meter(); m != 100 {
		t.Fatalf("Expected meter 100 after 8 kills, got %v", m)
	}
	if h.counts[event.EventKill] != 8 {
		t.Errorf("Expected 8 kill events, got %d", h.counts[event.EventKill])
	}
	t.Logf("✓ Meter charged in %v", h.game.Snapshot().Elapsed)

	// Two hands held past the debounce enter array mode
	for i := 0; i < 30; i++ {
		h.stepHands(twoHands()...)
	}
	snap := h.game.Snapshot()
	if snap.Mode != mode.ModeArray {
		t.Fatalf("Expected array mode, got %s", snap.ModeName)
	}
	if snap.Phase != finisher.PhaseForming {
		t.Fatalf("Expected forming phase, got %s", snap.PhaseName)
	}
	if len(snap.Enemies) != 0 {
		t.Errorf("Expected encounters cleared in array mode, got %d", len(snap.Enemies))
	}
	if !snap.ChargeActive() {
		t.Error("Expected charge drone active while forming")
	}
	t.Log("✓ Array mode entered")

	// Releasing both hands launches
	launchedAt := time.Duration(0)
	for i := 0; i < 30; i++ {
		h.stepHands()
		if launchedAt == 0 && h.game.Controller().Transitioning() {
			launchedAt = h.game.Snapshot().Elapsed
		}
	}
	if h.counts[event.EventSequenceLaunched] != 1 {
		t.Fatalf("Expected 1 launch event, got %d", h.counts[event.EventSequenceLaunched])
	}
	if !h.game.Snapshot().Locked {
		t.Error("Expected classifier locked during the sequence")
	}

	// Gestures during the sequence are ignored
	for i := 0; i < 100; i++ {
		h.stepHands(twoHands()...)
	}
	if h.counts[event.EventSequenceCompleted] != 0 {
		t.Fatal("Expected no completion before rain finishes")
	}

	completedAt := time.Duration(0)
	for i := 0; i < 800 && completedAt == 0; i++ {
		h.stepHands()
		if h.counts[event.EventSequenceCompleted] > 0 {
			completedAt = h.game.Snapshot().Elapsed
		}
	}
	if completedAt == 0 {
		t.Fatal("Expected sequence completion")
	}
	// Launch lands mid-step, so allow one step of accounting slack
	if d := completedAt - launchedAt; d < 6500*time.Millisecond-step {
		t.Errorf("Expected completion at least 6.5s after launch, got %v", d)
	}

	snap = h.game.Snapshot()
	if snap.Meter != 0 || snap.Kills != 0 {
		t.Errorf("Expected meter 0 and kills 0, got %v and %d", snap.Meter, snap.Kills)
	}
	if snap.Mode != mode.ModeSingle {
		t.Errorf("Expected single mode after completion, got %s", snap.ModeName)
	}
	if snap.Phase != finisher.PhaseIdle {
		t.Errorf("Expected idle phase after completion, got %s", snap.PhaseName)
	}

	// Completion fires once even as the game keeps running
	for i := 0; i < 200; i++ {
		h.stepHands(h.aimedHand())
	}
	if h.counts[event.EventSequenceCompleted] != 1 {
		t.Errorf("Expected exactly 1 completion, got %d", h.counts[event.EventSequenceCompleted])
	}
	if got := h.reg.Ints.Get(status.FinisherCompletions).Load(); got != 1 {
		t.Errorf("Expected completions metric 1, got %d", got)
	}
	t.Logf("✓ Sequence completed %v after launch", completedAt-launchedAt)
}

func TestFrameListenerReceivesEverySnapshot(t *testing.T) {
	h := newHarness(t, 3)
	var frames []uint64
	h.game.OnFrame(func(s *Snapshot) { frames = append(frames, s.Frame) })

	for i := 0; i < 5; i++ {
		h.game.Step(h.clock, step)
	}
	if len(frames) != 5 {
		t.Fatalf("Expected 5 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f != uint64(i+1) {
			t.Errorf("Expected frame %d, got %d", i+1, f)
		}
	}
}

func TestLargeGapClamped(t *testing.T) {
	h := newHarness(t, 4)
	h.game.Step(h.clock, step)

	// A stalled loop must not fast-forward the spawn cooldown
	h.game.Step(h.clock, 5*time.Second)
	if n := len(h.game.Snapshot().Enemies); n != 0 {
		t.Errorf("Expected clamped delta to keep cooldown running, got %d enemies", n)
	}
	if now := h.game.Encounters().Now(); now > 100*time.Millisecond {
		t.Errorf("Expected encounter time <= 100ms, got %v", now)
	}
}
