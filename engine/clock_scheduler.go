package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sword-rain/core"
	"github.com/lixenwraith/sword-rain/parameter"
)

// ClockScheduler drives a Game from one goroutine
// Frame ticks and gesture polls run on separate tickers but never concurrently,
// which keeps the Game single-writer
type ClockScheduler struct {
	game *Game

	frameInterval time.Duration
	pollInterval  time.Duration
	paused        func() bool

	// Work queued by other goroutines, executed between ticks
	control chan func(*Game)

	tickCount atomic.Uint64
	pollCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler; non-positive intervals use parameter defaults
func NewClockScheduler(game *Game, frameInterval, pollInterval time.Duration) *ClockScheduler {
	if frameInterval <= 0 {
		frameInterval = parameter.FrameUpdateInterval
	}
	if pollInterval <= 0 {
		pollInterval = parameter.GesturePollInterval
	}
	return &ClockScheduler{
		game:          game,
		frameInterval: frameInterval,
		pollInterval:  pollInterval,
		control:       make(chan func(*Game), 64),
		stopChan:      make(chan struct{}),
	}
}

// SetPauseCheck installs a predicate that suspends polls and ticks while true, must be called before Start()
func (cs *ClockScheduler) SetPauseCheck(fn func() bool) {
	cs.paused = fn
}

// Do queues fn to run on the engine goroutine; returns false if the queue is full or stopped
func (cs *ClockScheduler) Do(fn func(*Game)) bool {
	if !cs.running.Load() {
		return false
	}
	select {
	case cs.control <- fn:
		return true
	default:
		return false
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(func() {
			defer cs.wg.Done()
			cs.loop(cs.stopChan)
		})
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// Run blocks until ctx is cancelled, driving the game on the calling goroutine
func (cs *ClockScheduler) Run(ctx context.Context) {
	if !cs.running.CompareAndSwap(false, true) {
		return
	}
	defer cs.running.Store(false)
	cs.loop(ctx.Done())
}

func (cs *ClockScheduler) loop(done <-chan struct{}) {
	frame := time.NewTicker(cs.frameInterval)
	defer frame.Stop()
	poll := time.NewTicker(cs.pollInterval)
	defer poll.Stop()

	for {
		select {
		case <-done:
			return

		case fn := <-cs.control:
			fn(cs.game)

		case <-poll.C:
			if cs.isPaused() {
				continue
			}
			cs.game.Poll()
			cs.pollCount.Add(1)

		case <-frame.C:
			if cs.isPaused() {
				continue
			}
			cs.game.Tick()
			cs.tickCount.Add(1)
		}
	}
}

func (cs *ClockScheduler) isPaused() bool {
	return cs.paused != nil && cs.paused()
}

// TickCount returns frame ticks executed since start
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

// PollCount returns gesture polls executed since start
func (cs *ClockScheduler) PollCount() uint64 { return cs.pollCount.Load() }

// Running reports whether the loop is active
func (cs *ClockScheduler) Running() bool { return cs.running.Load() }
