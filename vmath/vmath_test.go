package vmath

import (
	"math"
	"testing"
)

func TestSegmentClosestPoint(t *testing.T) {
	seg := Segment{A: Vec3F{0, 0, 0}, B: Vec3F{0, 2, 0}}

	tests := []struct {
		name string
		p    Vec3F
		want Vec3F
	}{
		{"interior", Vec3F{1, 1, 0}, Vec3F{0, 1, 0}},
		{"before A", Vec3F{0, -3, 0}, Vec3F{0, 0, 0}},
		{"past B", Vec3F{0.5, 5, 0}, Vec3F{0, 2, 0}},
		{"on segment", Vec3F{0, 1.5, 0}, Vec3F{0, 1.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.ClosestPoint(tt.p)
			if V3FDist(got, tt.want) > 1e-9 {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestSegmentDegenerate(t *testing.T) {
	seg := Segment{A: Vec3F{1, 1, 0}, B: Vec3F{1, 1, 0}}
	got := seg.ClosestPoint(Vec3F{4, 5, 0})
	if got != seg.A {
		t.Errorf("Expected degenerate segment to return A, got %+v", got)
	}
	if d := seg.Distance(Vec3F{4, 5, 0}); math.Abs(d-5) > 1e-9 {
		t.Errorf("Expected distance 5, got %f", d)
	}
}

func TestV3FNormalizeZero(t *testing.T) {
	n := V3FNormalize(Vec3F{})
	if n != (Vec3F{}) {
		t.Errorf("Expected zero vector, got %+v", n)
	}
	if !V3FFinite(n) {
		t.Error("Expected finite result for zero input")
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(0.15, 0.05, 0.25, -2, 2); math.Abs(got) > 1e-9 {
		t.Errorf("Expected midpoint to map to 0, got %f", got)
	}
	if got := MapRange(1.0, 0.05, 0.25, -2, 2); got != 2 {
		t.Errorf("Expected clamp to 2, got %f", got)
	}
	if got := MapRange(0.3, 0.2, 0.2, 5, 9); got != 5 {
		t.Errorf("Expected degenerate range to return outMin, got %f", got)
	}
}

func TestDampFactor(t *testing.T) {
	// One reference frame reproduces the raw factor
	if got := DampFactor(0.95, 1.0/120, 120); math.Abs(got-0.95) > 1e-9 {
		t.Errorf("Expected 0.95, got %f", got)
	}
	if got := DampFactor(0.95, 0, 120); got != 0 {
		t.Errorf("Expected 0 for zero dt, got %f", got)
	}
}

func TestWrapAngle(t *testing.T) {
	if got := WrapAngle(3 * math.Pi); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("Expected π, got %f", got)
	}
	if got := LerpAngle(math.Pi-0.1, -math.Pi+0.1, 0.5); math.Abs(math.Abs(got)-math.Pi) > 1e-9 {
		t.Errorf("Expected shortest-arc midpoint at ±π, got %f", got)
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("Expected identical sequences at %d, got %f vs %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("Float64 out of range: %f", va)
		}
	}

	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("Expected zero seed to be remapped to non-zero state")
	}
}

func TestTraverseDiagonalNoGaps(t *testing.T) {
	var cells [][2]int
	Traverse(0.5, 0.5, 3.5, 2.5, func(x, y int) bool {
		cells = append(cells, [2]int{x, y})
		return true
	})
	if cells[0] != [2]int{0, 0} {
		t.Errorf("Expected start (0,0), got %v", cells[0])
	}
	if last := cells[len(cells)-1]; last != [2]int{3, 2} {
		t.Errorf("Expected end (3,2), got %v", last)
	}
	for i := 1; i < len(cells); i++ {
		dx := cells[i][0] - cells[i-1][0]
		dy := cells[i][1] - cells[i-1][1]
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("Gap or repeat between %v and %v", cells[i-1], cells[i])
		}
	}
}

func TestTraverseReverseAndStop(t *testing.T) {
	n := 0
	Traverse(5.2, 1.1, 0.2, 1.1, func(x, y int) bool {
		n++
		if y != 1 {
			t.Errorf("Expected row 1, got %d", y)
		}
		return n < 3
	})
	if n != 3 {
		t.Errorf("Expected early stop after 3 cells, got %d", n)
	}

	n = 0
	Traverse(2, 2, 2, 2, func(x, y int) bool { n++; return true })
	if n != 1 {
		t.Errorf("Expected single cell for point segment, got %d", n)
	}
}
