package encounter

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/sword-rain/vmath"
)

const tick = 16 * time.Millisecond

var farSweep = vmath.Segment{A: vmath.Vec3F{X: 1000, Y: 1000}, B: vmath.Vec3F{X: 1000, Y: 1001}}

func TestHitExample(t *testing.T) {
	seg := vmath.Segment{A: vmath.Vec3F{}, B: vmath.Vec3F{Y: 2}}
	if !Hit(seg, vmath.Vec3F{Y: 1}, 0.1) {
		t.Error("Expected hit at (0,1)")
	}
	if Hit(seg, vmath.Vec3F{X: 5, Y: 1}, 0.1) {
		t.Error("Expected miss at (5,1)")
	}
}

func TestHitIgnoresDepth(t *testing.T) {
	// Far hand: palm 0.06 maps the sword to z -1.8 while the eye sits forward of the body
	seg := vmath.Segment{A: vmath.Vec3F{Z: -1.8}, B: vmath.Vec3F{Y: 1.3, Z: -1.8}}
	eye := vmath.Vec3F{Y: 0.5, Z: 0.4}
	if !Hit(seg, eye, 0.5) {
		t.Error("Expected hit with the eye on the blade in the XY plane")
	}

	// Same depth gap near the camera
	near := vmath.Segment{A: vmath.Vec3F{Z: 2}, B: vmath.Vec3F{Y: 1.3, Z: 2}}
	if !Hit(near, eye, 0.5) {
		t.Error("Expected hit regardless of hand depth")
	}
	if Hit(seg, vmath.Vec3F{X: 0.6, Y: 0.5, Z: -1.8}, 0.5) {
		t.Error("Expected miss outside the radius at equal depth")
	}
}

func TestSpawnCooldownAndSingleLive(t *testing.T) {
	m := NewManager(11, 0)
	m.SetActive(true)

	for elapsed := time.Duration(0); elapsed < 1100*time.Millisecond; elapsed += tick {
		m.Tick(tick, farSweep)
	}
	if len(m.Enemies()) != 0 {
		t.Fatalf("Expected no spawn before cooldown, got %d", len(m.Enemies()))
	}

	for elapsed := time.Duration(0); elapsed < 10*time.Second; elapsed += tick {
		m.Tick(tick, farSweep)
		if m.LiveCount() > 1 {
			t.Fatalf("Live enemy invariant violated: %d", m.LiveCount())
		}
	}
	if len(m.Enemies()) != 1 {
		t.Errorf("Expected one surviving enemy, got %d", len(m.Enemies()))
	}
}

func TestKillOnceThenPurgeAndRespawn(t *testing.T) {
	m := NewManager(5, 0)
	m.SetActive(true)
	kills := 0
	m.OnKill(func(Enemy) { kills++ })

	for m.LiveCount() == 0 {
		m.Tick(tick, farSweep)
	}
	e := m.Enemies()[0]
	hp := e.HitPoint()
	sweep := vmath.Segment{A: hp, B: vmath.V3FAdd(hp, vmath.Vec3F{Y: 1.3})}

	for i := 0; i < 10; i++ {
		m.Tick(tick, sweep)
	}
	if kills != 1 {
		t.Fatalf("Expected exactly 1 kill, got %d", kills)
	}
	dead := m.Enemies()
	if len(dead) != 1 || !dead[0].Dead {
		t.Fatalf("Expected dead enemy retained for animation, got %+v", dead)
	}
	if p := dead[0].DeathProgress(m.Now()); p <= 0 || p > 1 {
		t.Errorf("Expected death progress in (0,1], got %f", p)
	}

	// Purged after the death animation; no double kill
	for elapsed := time.Duration(0); elapsed < 900*time.Millisecond; elapsed += tick {
		m.Tick(tick, sweep)
		for _, en := range m.Enemies() {
			if en.ID == e.ID && !en.Dead {
				t.Fatal("Dead enemy revived")
			}
		}
	}
	for _, en := range m.Enemies() {
		if en.ID == e.ID {
			t.Errorf("Expected enemy %d purged", e.ID)
		}
	}
	if kills > 2 {
		t.Errorf("Expected at most one more kill from a respawn, got %d", kills)
	}
}

func TestDeactivateClears(t *testing.T) {
	m := NewManager(3, 0)
	m.SetActive(true)
	for m.LiveCount() == 0 {
		m.Tick(tick, farSweep)
	}

	m.SetActive(false)
	if len(m.Enemies()) != 0 {
		t.Fatalf("Expected enemies cleared, got %d", len(m.Enemies()))
	}
	for i := 0; i < 200; i++ {
		m.Tick(tick, farSweep)
	}
	if len(m.Enemies()) != 0 {
		t.Errorf("Expected no spawns while inactive, got %d", len(m.Enemies()))
	}
}

func TestSpawnDeterministicAndBounded(t *testing.T) {
	first := func(seed uint64) Enemy {
		m := NewManager(seed, 0)
		m.SetActive(true)
		for m.LiveCount() == 0 {
			m.Tick(tick, farSweep)
		}
		return m.Enemies()[0]
	}

	a, b := first(99), first(99)
	if a != b {
		t.Errorf("Expected identical spawn for same seed: %+v vs %+v", a, b)
	}

	for seed := uint64(1); seed < 200; seed++ {
		e := first(seed)
		if math.Abs(e.Position.X) > 9.7 || math.Abs(e.Position.Y) > 5.0 {
			t.Fatalf("Seed %d: spawn out of bounds %+v", seed, e.Position)
		}
		if e.Scale < 1.0 || e.Scale >= 1.4 {
			t.Fatalf("Seed %d: scale out of range %f", seed, e.Scale)
		}
		if e.Seed < 0 || e.Seed >= 100 {
			t.Fatalf("Seed %d: animation seed out of range %f", seed, e.Seed)
		}
	}
}

func TestKindHeights(t *testing.T) {
	e := Enemy{Kind: KindEagle, Scale: 1.2}
	hp := e.HitPoint()
	if math.Abs(hp.Y-0.48) > 1e-9 || hp.Z != 0.4 {
		t.Errorf("Expected eagle eye (0,0.48,0.4), got %+v", hp)
	}
	if KindWolf.String() != "wolf" {
		t.Errorf("Expected wolf, got %s", KindWolf.String())
	}
}
