// Package mode is the top-level single/array controller
package mode

// Mode is the control mode
type Mode int

const (
	ModeSingle Mode = iota
	ModeArray
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeArray:
		return "array"
	default:
		return "unknown"
	}
}

// CanTransition checks if a mode transition is valid
func CanTransition(from, to Mode) bool {
	validTransitions := map[Mode][]Mode{
		ModeSingle: {ModeArray},
		ModeArray:  {ModeSingle},
	}

	for _, m := range validTransitions[from] {
		if m == to {
			return true
		}
	}
	return false
}
