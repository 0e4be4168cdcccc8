package event

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/sword-rain/parameter"
)

// TestEventQueueBasic tests basic push and consume operations
func TestEventQueueBasic(t *testing.T) {
	eq := NewEventQueue()

	eq.Emit(EventSpawn, "test1", 1*time.Millisecond)
	eq.Emit(EventKill, "test2", 2*time.Millisecond)
	eq.Emit(EventSequenceCompleted, "test3", 3*time.Millisecond)

	events := eq.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	// FIFO order
	if events[0].Type != EventSpawn || events[0].Payload != "test1" {
		t.Errorf("Event 1 mismatch: got type=%v, payload=%v", events[0].Type, events[0].Payload)
	}
	if events[1].Type != EventKill || events[1].Payload != "test2" {
		t.Errorf("Event 2 mismatch: got type=%v, payload=%v", events[1].Type, events[1].Payload)
	}
	if events[2].Type != EventSequenceCompleted || events[2].Time != 3*time.Millisecond {
		t.Errorf("Event 3 mismatch: got type=%v, time=%v", events[2].Type, events[2].Time)
	}

	if events2 := eq.Consume(); len(events2) != 0 {
		t.Errorf("Expected 0 events on second consume, got %d", len(events2))
	}
}

// TestEventQueueConcurrent tests concurrent push operations from multiple goroutines
func TestEventQueueConcurrent(t *testing.T) {
	eq := NewEventQueue()
	numGoroutines := 10
	eventsPerGoroutine := 10
	totalEvents := numGoroutines * eventsPerGoroutine

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(goroutineID int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				eq.Push(GameEvent{Type: EventKill, Payload: goroutineID*100 + j})
			}
		}(i)
	}

	wg.Wait()

	events := eq.Consume()
	if len(events) != totalEvents {
		t.Errorf("Expected %d events, got %d", totalEvents, len(events))
	}

	seen := make(map[int]bool)
	for _, ev := range events {
		payload := ev.Payload.(int)
		if seen[payload] {
			t.Errorf("Duplicate payload found: %d", payload)
		}
		seen[payload] = true
	}

	if eq.Len() != 0 {
		t.Errorf("Expected queue to be empty, got length %d", eq.Len())
	}
}

// TestEventQueueOverflow tests that the oldest events are discarded when full
func TestEventQueueOverflow(t *testing.T) {
	eq := NewEventQueue()
	total := parameter.EventQueueSize + 44

	for i := 0; i < total; i++ {
		eq.Push(GameEvent{Type: EventKill, Payload: i})
	}

	events := eq.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}

	if eq.Dropped() != 44 {
		t.Errorf("Expected 44 dropped, got %d", eq.Dropped())
	}
	if first := events[0].Payload.(int); first != 44 {
		t.Errorf("Expected first payload 44, got %d", first)
	}
	if last := events[len(events)-1].Payload.(int); last != total-1 {
		t.Errorf("Expected last payload %d, got %d", total-1, last)
	}

	for i := 1; i < len(events); i++ {
		prev := events[i-1].Payload.(int)
		curr := events[i].Payload.(int)
		if curr != prev+1 {
			t.Errorf("Events not sequential: events[%d]=%d, events[%d]=%d", i-1, prev, i, curr)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventSequenceCompleted.String() != "sequence_completed" {
		t.Errorf("Expected sequence_completed, got %s", EventSequenceCompleted.String())
	}
	if EventType(999).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", EventType(999).String())
	}
}
