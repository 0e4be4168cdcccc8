package pose

import (
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// Trail is a fixed ring of recent positions
type Trail struct {
	points [parameter.TrailLength]vmath.Vec3F
	head   int
	n      int
}

func (t *Trail) Push(p vmath.Vec3F) {
	t.points[t.head] = p
	t.head = (t.head + 1) % parameter.TrailLength
	if t.n < parameter.TrailLength {
		t.n++
	}
}

// Points returns a copy, oldest first
func (t *Trail) Points() []vmath.Vec3F {
	out := make([]vmath.Vec3F, t.n)
	start := (t.head - t.n + parameter.TrailLength) % parameter.TrailLength
	for i := 0; i < t.n; i++ {
		out[i] = t.points[(start+i)%parameter.TrailLength]
	}
	return out
}

func (t *Trail) Len() int { return t.n }
