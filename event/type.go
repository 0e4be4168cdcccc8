package event

import "time"

// EventType represents the type of game event
type EventType int

const (
	// EventKill reports an enemy destroyed by the sword sweep
	// Trigger: EncounterManager collision | Payload: *KillPayload
	EventKill EventType = iota

	// EventSpawn reports a new enemy entering the field
	// Trigger: EncounterManager spawn | Payload: *SpawnPayload
	EventSpawn

	// EventInsufficientCharge reports a two-hand gesture below the array threshold
	// Trigger: ModePhaseController | Payload: *ChargePayload
	EventInsufficientCharge

	// EventModeChanged reports single/array mode transitions
	// Trigger: ModePhaseController | Payload: *ModeChangedPayload
	EventModeChanged

	// EventSequenceLaunched reports the finisher leaving the formation phase
	// Trigger: ModePhaseController launch | Payload: *ChargePayload
	EventSequenceLaunched

	// EventSequenceAborted reports the formation dissolving without launch
	// Trigger: ModePhaseController soft exit | Payload: nil
	EventSequenceAborted

	// EventSequenceCompleted reports finisher completion, fired once per launch
	// Trigger: FinisherSequencer completion | Payload: nil
	EventSequenceCompleted

	// EventGestureConfirmed reports a new confirmed hand count
	// Trigger: GestureClassifier | Payload: int
	EventGestureConfirmed

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventKill:               "kill",
	EventSpawn:              "spawn",
	EventInsufficientCharge: "insufficient_charge",
	EventModeChanged:        "mode_changed",
	EventSequenceLaunched:   "sequence_launched",
	EventSequenceAborted:    "sequence_aborted",
	EventSequenceCompleted:  "sequence_completed",
	EventGestureConfirmed:   "gesture_confirmed",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventTypeNames[t]
}

// GameEvent is a single queued occurrence
// Time is the simulation time at emission
type GameEvent struct {
	Type    EventType
	Payload any
	Time    time.Duration
}
