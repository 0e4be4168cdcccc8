package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit
	IntentTogglePause
	IntentToggleMute
	IntentResize

	// Synthetic hands
	IntentToggleSecondHand // two hands raised, the array gesture
	IntentToggleHands      // all hands dropped, releases the formation
	IntentSpreadIn         // move the second hand closer
	IntentSpreadOut        // move the second hand away
	IntentMove             // keyboard nudge of the primary hand
	IntentPointer          // mouse position
)

// Intent is the parsed result of one terminal event
type Intent struct {
	Type IntentType

	// Cell position for IntentPointer, cell delta for IntentMove
	X, Y int
}
