// Package gesture turns noisy per-frame hand counts into a debounced confirmed count
package gesture

import (
	"time"

	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/vmath"
)

// State is the classifier's persistent state
// Confirmed changes only after Pending has been stable for the debounce window
type State struct {
	Confirmed    int
	Pending      int
	ConfirmTimer time.Duration
}

// Classifier debounces raw hand counts
// Not safe for concurrent use; owned by the engine tick
type Classifier struct {
	state       State
	locked      bool
	debounce    time.Duration
	mergeDistSq float64
}

func NewClassifier() *Classifier {
	return &Classifier{
		debounce:    parameter.GestureDebounce,
		mergeDistSq: parameter.HandMergeDistSq,
	}
}

// Classify feeds one raw count and returns the confirmed count
// A changed candidate restarts the timer; the candidate is accepted once the timer reaches the debounce window
// Ignored entirely while locked
func (c *Classifier) Classify(raw int, dt time.Duration) int {
	if c.locked {
		return c.state.Confirmed
	}
	raw = int(vmath.Clamp(float64(raw), 0, parameter.MaxHands))

	if raw != c.state.Pending {
		c.state.Pending = raw
		c.state.ConfirmTimer = 0
		return c.state.Confirmed
	}

	c.state.ConfirmTimer += parameter.ClampDelta(dt)
	if c.state.Pending != c.state.Confirmed && c.state.ConfirmTimer >= c.debounce {
		c.state.Confirmed = c.state.Pending
	}
	return c.state.Confirmed
}

// Observe classifies a frame after merging overlapping hands
func (c *Classifier) Observe(f *landmark.HandFrame, dt time.Duration) int {
	return c.Classify(c.MergedCount(f), dt)
}

// MergedCount returns the hand count with near-coincident wrists counted once
func (c *Classifier) MergedCount(f *landmark.HandFrame) int {
	n := f.Count()
	if n < 2 {
		return n
	}
	a, b := f.Hands[0].Wrist().XY(), f.Hands[1].Wrist().XY()
	if vmath.V2FDistSq(a, b) < c.mergeDistSq {
		return 1
	}
	return 2
}

// Lock suspends classification until Unlock
func (c *Classifier) Lock()   { c.locked = true }
func (c *Classifier) Unlock() { c.locked = false }

func (c *Classifier) Locked() bool { return c.locked }

// State returns a copy of the current state
func (c *Classifier) State() State { return c.state }

func (c *Classifier) Confirmed() int { return c.state.Confirmed }

// Reset clears all counts and timers; lock state is kept
func (c *Classifier) Reset() {
	c.state = State{}
}

// HandDistance returns the normalized wrist-to-wrist distance of the first two hands
func HandDistance(f *landmark.HandFrame) (float64, bool) {
	if f.Count() < 2 {
		return 0, false
	}
	return vmath.V2FMag(vmath.V2FSub(f.Hands[0].Wrist().XY(), f.Hands[1].Wrist().XY())), true
}
