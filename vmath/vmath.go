package vmath

import "math"

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t (unclamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MapRange linearly maps v from [inMin, inMax] to [outMin, outMax], clamped to the output range
// Degenerate input range returns outMin
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if span == 0 {
		return outMin
	}
	t := Clamp((v-inMin)/span, 0, 1)
	return outMin + (outMax-outMin)*t
}

// DampFactor converts a per-frame lerp factor tuned at refHz into a frame-rate independent factor for dt seconds
// 1 - (1-factor)^(dt*refHz)
func DampFactor(factor, dtSeconds, refHz float64) float64 {
	if dtSeconds <= 0 {
		return 0
	}
	return 1 - math.Pow(1-factor, dtSeconds*refHz)
}

// Finite reports whether v is neither NaN nor infinite
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WrapAngle normalizes an angle to (-π, π]
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates along the shortest arc between two angles
func LerpAngle(a, b, t float64) float64 {
	return a + WrapAngle(b-a)*t
}

// --- Randomness ---

// FastRand is a seeded xorshift64 generator
// Deterministic for a given seed; not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Centered returns a value in [-span/2, span/2)
func (r *FastRand) Centered(span float64) float64 {
	return (r.Float64() - 0.5) * span
}
