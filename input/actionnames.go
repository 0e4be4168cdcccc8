package input

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve action strings to bindings
var actionRegistry = map[string]IntentType{
	// Unbind sentinel
	"none": IntentNone,

	"quit":               IntentQuit,
	"toggle_pause":       IntentTogglePause,
	"toggle_mute":        IntentToggleMute,
	"toggle_second_hand": IntentToggleSecondHand,
	"toggle_hands":       IntentToggleHands,
	"spread_in":          IntentSpreadIn,
	"spread_out":         IntentSpreadOut,
}

// ActionIntent resolves an action name
func ActionIntent(name string) (IntentType, bool) {
	it, ok := actionRegistry[name]
	return it, ok
}

// ActionName returns the canonical name for an intent, empty if it has none
func ActionName(it IntentType) string {
	for name, v := range actionRegistry {
		if v == it && name != "none" {
			return name
		}
	}
	return ""
}
