package vmath

// Segment is a closed line segment between A and B
type Segment struct {
	A, B Vec3F
}

// ClosestPoint returns the point on the segment nearest to p
// Degenerate segments (A == B) return A
func (s Segment) ClosestPoint(p Vec3F) Vec3F {
	ab := V3FSub(s.B, s.A)
	lenSq := V3FMagSq(ab)
	if lenSq == 0 {
		return s.A
	}
	t := Clamp(V3FDot(V3FSub(p, s.A), ab)/lenSq, 0, 1)
	return V3FAdd(s.A, V3FScale(ab, t))
}

// Distance returns the distance from p to the closest point on the segment
func (s Segment) Distance(p Vec3F) float64 {
	return V3FDist(p, s.ClosestPoint(p))
}
