package event

import "github.com/lixenwraith/sword-rain/vmath"

// KillPayload identifies the destroyed enemy
type KillPayload struct {
	EnemyID  uint64
	Kind     string
	Position vmath.Vec3F
	Meter    float64 // Meter after the kill was applied
	Kills    int
}

// SpawnPayload identifies the spawned enemy
type SpawnPayload struct {
	EnemyID  uint64
	Kind     string
	Position vmath.Vec3F
}

// ChargePayload carries the meter at the time of the event
type ChargePayload struct {
	Meter float64
}

// ModeChangedPayload carries both sides of a mode transition
type ModeChangedPayload struct {
	From string
	To   string
}
