package event

import (
	"sync"
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
)

// EventQueue is a bounded FIFO of game events drained once per tick
// Producers may be any goroutine; the engine goroutine is the only consumer
// When full, the oldest pending event is discarded and counted
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	start   int // index of the oldest pending event
	n       int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Emit pushes an event stamped with simulation time
func (eq *EventQueue) Emit(t EventType, payload any, now time.Duration) {
	eq.Push(GameEvent{Type: t, Payload: payload, Time: now})
}

func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.n == len(eq.ring) {
		eq.ring[eq.start] = GameEvent{}
		eq.start = (eq.start + 1) % len(eq.ring)
		eq.n--
		eq.dropped++
	}
	eq.ring[(eq.start+eq.n)%len(eq.ring)] = ev
	eq.n++
}

// Consume returns pending events oldest first and empties the queue; nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.n == 0 {
		return nil
	}
	out := make([]GameEvent, eq.n)
	for i := range out {
		idx := (eq.start + i) % len(eq.ring)
		out[i] = eq.ring[idx]
		eq.ring[idx] = GameEvent{}
	}
	eq.start, eq.n = 0, 0
	return out
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.n
}

// Dropped returns how many events were discarded by overflow
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}
