package finisher

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/sword-rain/vmath"
)

const tick = 16 * time.Millisecond

func run(s *Sequencer, d time.Duration, charge float64) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		s.Update(tick, charge, vmath.Vec3F{}, 1)
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	s := NewSequencer(42)
	calls := 0
	s.OnComplete(func() { calls++ })

	if !s.Arm() {
		t.Fatal("Expected Arm to succeed from idle")
	}
	run(s, time.Second, 100)
	if s.Phase() != PhaseForming {
		t.Fatalf("Expected forming, got %s", s.Phase())
	}

	if !s.Launch() {
		t.Fatal("Expected Launch to succeed from forming")
	}
	if s.Launch() {
		t.Error("Expected second Launch to be ignored")
	}

	run(s, 480*time.Millisecond, 100)
	if s.Phase() != PhaseExpanding {
		t.Fatalf("Expected expanding before 0.5s, got %s", s.Phase())
	}
	run(s, 48*time.Millisecond, 100)
	if s.Phase() != PhaseRaining {
		t.Fatalf("Expected raining after 0.5s, got %s", s.Phase())
	}

	run(s, 5900*time.Millisecond, 100)
	if calls != 0 {
		t.Fatalf("Completion fired early at %v into rain", s.Elapsed())
	}

	// Many ticks past the threshold
	run(s, 10*time.Second, 100)
	if calls != 1 {
		t.Errorf("Expected exactly 1 completion, got %d", calls)
	}
	if s.Completions() != 1 {
		t.Errorf("Expected Completions()=1, got %d", s.Completions())
	}
	if s.Phase() != PhaseCompleted {
		t.Errorf("Expected completed to be terminal, got %s", s.Phase())
	}
	t.Logf("✓ Completion fired once after %d callbacks checked", calls)
}

func TestAbortOnlyFromForming(t *testing.T) {
	s := NewSequencer(1)
	calls := 0
	s.OnComplete(func() { calls++ })

	if s.Abort() {
		t.Error("Expected Abort ignored in idle")
	}

	s.Arm()
	run(s, 200*time.Millisecond, 50)
	if !s.Abort() {
		t.Fatal("Expected Abort from forming")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("Expected idle after abort, got %s", s.Phase())
	}

	s.Arm()
	s.Launch()
	run(s, 100*time.Millisecond, 100)
	if s.Abort() {
		t.Error("Expected Abort ignored while expanding")
	}
	run(s, time.Second, 100)
	if s.Abort() {
		t.Error("Expected Abort ignored while raining")
	}
	if calls != 0 {
		t.Errorf("Expected no completion, got %d", calls)
	}
}

func TestLaunchRequiresForming(t *testing.T) {
	s := NewSequencer(1)
	if s.Launch() {
		t.Error("Expected Launch ignored from idle")
	}
	if s.Active() {
		t.Error("Expected inactive in idle")
	}
}

func TestResetAllowsSecondRun(t *testing.T) {
	s := NewSequencer(7)
	calls := 0
	s.OnComplete(func() { calls++ })

	for i := 0; i < 2; i++ {
		s.Arm()
		s.Launch()
		run(s, 7*time.Second, 100)
		s.Reset()
	}
	if calls != 2 {
		t.Errorf("Expected one completion per launch, got %d", calls)
	}

	// Reset mid-rain discards the run
	s.Arm()
	s.Launch()
	run(s, 2*time.Second, 100)
	s.Reset()
	run(s, 10*time.Second, 100)
	if calls != 2 {
		t.Errorf("Expected reset to cancel completion, got %d", calls)
	}
}

func TestLaunchSnapshotsFormation(t *testing.T) {
	s := NewSequencer(3)
	s.Arm()
	run(s, 333*time.Millisecond, 97)

	before := s.Snapshot()
	s.Launch()
	launch := s.LaunchPositions()

	if len(launch) != MemberCount || len(before.Members) != MemberCount {
		t.Fatalf("Expected %d members, got %d/%d", MemberCount, len(launch), len(before.Members))
	}
	for i := range launch {
		if vmath.V3FDist(launch[i], before.Members[i].Position) > 1e-9 {
			t.Fatalf("Member %d: launch %+v differs from last formation %+v", i, launch[i], before.Members[i].Position)
		}
	}

	// Expansion starts from the snapshot
	snap := s.Snapshot()
	if snap.Phase != PhaseExpanding || snap.VisibleDrops() != 0 {
		t.Errorf("Expected expanding with hidden rain, got %s with %d drops", snap.Phase, snap.VisibleDrops())
	}
	if vmath.V3FDist(snap.Members[0].Position, launch[0]) > 1e-9 {
		t.Errorf("Expected expansion to start at snapshot")
	}
}

func TestSnapshotPerPhase(t *testing.T) {
	s := NewSequencer(9)
	if sn := s.Snapshot(); len(sn.Members) != 0 || sn.RingVisible {
		t.Error("Expected empty idle snapshot")
	}

	s.Arm()
	run(s, 100*time.Millisecond, 99)
	sn := s.Snapshot()
	if !sn.RingVisible || !sn.Palette.Charged {
		t.Errorf("Expected visible rings and charged palette, got %+v", sn.Palette)
	}
	if c := sn.Centroid(); vmath.V3FMag(c) > 1.5 {
		t.Errorf("Expected formation centered near origin, got %+v", c)
	}

	s.Launch()
	run(s, 600*time.Millisecond, 99)
	run(s, 5500*time.Millisecond, 99)
	sn = s.Snapshot()
	if sn.Phase != PhaseRaining || sn.RingVisible {
		t.Fatalf("Expected raining without rings, got %s", sn.Phase)
	}
	if sn.Opacity >= 1 || sn.Opacity <= 0 {
		t.Errorf("Expected fading opacity in final second, got %f", sn.Opacity)
	}
	if sn.VisibleDrops() < 800 {
		t.Errorf("Expected at least the immediate drops visible, got %d", sn.VisibleDrops())
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRaining.String() != "raining" || Phase(42).String() != "unknown" {
		t.Error("Unexpected phase names")
	}
	if math.IsNaN(RingScale(1, 1)) {
		t.Error("Ring scale NaN")
	}
}
