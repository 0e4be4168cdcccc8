package render

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityEnemies
	PriorityRing
	PriorityFormation
	PriorityRain
	PriorityTrail
	PrioritySword
	PriorityPostProcess
	PriorityUI
	PriorityOverlay
)
