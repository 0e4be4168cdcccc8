package mode

import (
	"time"

	"github.com/lixenwraith/sword-rain/event"
	"github.com/lixenwraith/sword-rain/finisher"
	"github.com/lixenwraith/sword-rain/gesture"
	"github.com/lixenwraith/sword-rain/landmark"
	"github.com/lixenwraith/sword-rain/parameter"
	"github.com/lixenwraith/sword-rain/pose"
	"github.com/lixenwraith/sword-rain/vmath"
)

// State is a copy of the controller's externally visible state
type State struct {
	Mode          Mode
	Meter         float64
	Kills         int
	Confirmed     int
	Transitioning bool
	PostLock      time.Duration
	Scale         float64
	Center        vmath.Vec3F
	Pose          pose.TargetPose
	Speed         float64
	Shockwave     float64
}

// Controller owns mode, meter, kill count and the sword pose
// Single writer: every method is called from the engine goroutine
type Controller struct {
	classifier *gesture.Classifier
	estimator  *pose.Estimator
	sequencer  *finisher.Sequencer
	events     *event.EventQueue

	mode          Mode
	meter         float64
	kills         int
	killsToCharge int
	transitioning bool
	postLock      time.Duration

	confirmed   int
	scale       float64
	targetScale float64
	center      vmath.Vec3F
	now         time.Duration
}

// NewController wires the collaborators; killsToCharge <= 0 uses MonstersToKill
func NewController(c *gesture.Classifier, e *pose.Estimator, s *finisher.Sequencer, q *event.EventQueue, killsToCharge int) *Controller {
	if killsToCharge <= 0 {
		killsToCharge = parameter.MonstersToKill
	}
	ctrl := &Controller{
		classifier:    c,
		estimator:     e,
		sequencer:     s,
		events:        q,
		killsToCharge: killsToCharge,
		scale:         1,
		targetScale:   1,
	}
	s.OnComplete(ctrl.complete)
	return ctrl
}

// Observe processes one detection result
// Classification resolves first, then pose, then mode transitions; nil frames are skipped by the caller
func (c *Controller) Observe(f *landmark.HandFrame, dt time.Duration) {
	prev := c.confirmed
	c.confirmed = c.classifier.Observe(f, dt)
	if c.confirmed != prev {
		c.emit(event.EventGestureConfirmed, c.confirmed)
	}

	if c.mode == ModeSingle && !c.transitioning {
		if h, ok := f.Primary(); ok {
			c.estimator.Estimate(h, dt)
		} else {
			c.estimator.Idle()
		}
	}

	c.evaluate(f, prev)
}

// evaluate applies the mode transition table for the confirmed count
func (c *Controller) evaluate(f *landmark.HandFrame, prev int) {
	if c.transitioning || c.postLock > 0 {
		return
	}

	switch c.mode {
	case ModeSingle:
		if c.confirmed != 2 {
			return
		}
		if c.meter >= parameter.ArrayEnterThreshold {
			c.setMode(ModeArray)
			c.sequencer.Arm()
			c.trackHands(f)
			return
		}
		if prev != 2 {
			c.emit(event.EventInsufficientCharge, &event.ChargePayload{Meter: c.meter})
		}

	case ModeArray:
		switch c.confirmed {
		case 0:
			if c.meter >= parameter.LaunchThreshold {
				if c.sequencer.Launch() {
					c.transitioning = true
					c.classifier.Lock()
					c.emit(event.EventSequenceLaunched, &event.ChargePayload{Meter: c.meter})
				}
				return
			}
			c.softExit()
		case 1:
			c.softExit()
		case 2:
			c.trackHands(f)
		}
	}
}

// softExit returns to single without completing the finisher
func (c *Controller) softExit() {
	c.sequencer.Abort()
	c.setMode(ModeSingle)
	c.estimator.Reprime()
	c.targetScale = 1
	c.emit(event.EventSequenceAborted, nil)
}

// trackHands maps inter-hand distance to formation scale and the wrist midpoint to the center
func (c *Controller) trackHands(f *landmark.HandFrame) {
	d, ok := gesture.HandDistance(f)
	if !ok {
		return
	}
	c.targetScale = vmath.MapRange(d,
		parameter.HandDistanceMin, parameter.HandDistanceMax,
		parameter.FormationScaleMin, parameter.FormationScaleMax)

	a, b := pose.MapPoint(f.Hands[0].Wrist()), pose.MapPoint(f.Hands[1].Wrist())
	c.center = vmath.V3FScale(vmath.V3FAdd(a, b), 0.5)
}

func (c *Controller) setMode(to Mode) bool {
	if !CanTransition(c.mode, to) {
		return false
	}
	from := c.mode
	c.mode = to
	c.emit(event.EventModeChanged, &event.ModeChangedPayload{From: from.String(), To: to.String()})
	return true
}

// Update advances timers and the finisher by one frame
func (c *Controller) Update(dt time.Duration) {
	dt = parameter.ClampDelta(dt)
	c.now += dt

	if c.postLock > 0 {
		c.postLock = max(0, c.postLock-dt)
		// Hands held through the lock never produce a fresh two-hand edge
		if c.postLock == 0 && c.mode == ModeSingle && c.confirmed == 2 && c.meter < parameter.ArrayEnterThreshold {
			c.emit(event.EventInsufficientCharge, &event.ChargePayload{Meter: c.meter})
		}
	}

	k := vmath.DampFactor(parameter.FormationScaleLerp, dt.Seconds(), parameter.DriftReferenceHz)
	c.scale = vmath.Lerp(c.scale, c.targetScale, k)

	c.sequencer.Update(dt, c.meter, c.center, c.scale)
}

// OnKill applies one kill to the meter; returns the new meter
func (c *Controller) OnKill() float64 {
	c.kills++
	c.meter = vmath.Clamp(c.meter+parameter.MeterMax/float64(c.killsToCharge), 0, parameter.MeterMax)
	return c.meter
}

// complete is the finisher completion callback
func (c *Controller) complete() {
	c.meter = 0
	c.kills = 0
	c.setMode(ModeSingle)
	c.estimator.Reprime()
	c.sequencer.Reset()
	c.transitioning = false
	c.classifier.Unlock()
	c.postLock = parameter.PostCompletionLock
	c.targetScale = 1
	c.emit(event.EventSequenceCompleted, nil)
}

// EncounterActive reports whether enemies may spawn and collide
func (c *Controller) EncounterActive() bool {
	return c.mode == ModeSingle && !c.transitioning
}

// Pose returns the current sword pose
func (c *Controller) Pose() pose.TargetPose { return c.estimator.Pose() }

func (c *Controller) Mode() Mode          { return c.mode }
func (c *Controller) Meter() float64      { return c.meter }
func (c *Controller) Kills() int          { return c.kills }
func (c *Controller) Transitioning() bool { return c.transitioning }

// State returns a consistent copy for readers
func (c *Controller) State() State {
	return State{
		Mode:          c.mode,
		Meter:         c.meter,
		Kills:         c.kills,
		Confirmed:     c.confirmed,
		Transitioning: c.transitioning,
		PostLock:      c.postLock,
		Scale:         c.scale,
		Center:        c.center,
		Pose:          c.estimator.Pose(),
		Speed:         c.estimator.Speed(),
		Shockwave:     c.estimator.Shockwave(),
	}
}

func (c *Controller) emit(t event.EventType, payload any) {
	if c.events != nil {
		c.events.Emit(t, payload, c.now)
	}
}
