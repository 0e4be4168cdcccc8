package input

import "github.com/gdamore/tcell/v2"

// KeyEntry binds a key to an intent; moves also carry a cell delta
type KeyEntry struct {
	Intent IntentType
	DX, DY int
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyCtrlQ:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyTab:    {Intent: IntentToggleSecondHand},
			tcell.KeyEnter:  {Intent: IntentToggleHands},
			tcell.KeyUp:     {Intent: IntentMove, DY: -1},
			tcell.KeyDown:   {Intent: IntentMove, DY: 1},
			tcell.KeyLeft:   {Intent: IntentMove, DX: -2},
			tcell.KeyRight:  {Intent: IntentMove, DX: 2},
		},
		Runes: map[rune]KeyEntry{
			'q': {Intent: IntentQuit},
			' ': {Intent: IntentTogglePause},
			'p': {Intent: IntentTogglePause},
			'm': {Intent: IntentToggleMute},
			'2': {Intent: IntentToggleSecondHand},
			'h': {Intent: IntentToggleHands},
			'-': {Intent: IntentSpreadIn},
			'+': {Intent: IntentSpreadOut},
			'=': {Intent: IntentSpreadOut},
			// Fast moves
			'W': {Intent: IntentMove, DY: -3},
			'S': {Intent: IntentMove, DY: 3},
			'A': {Intent: IntentMove, DX: -6},
			'D': {Intent: IntentMove, DX: 6},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(kt.SpecialKeys)),
		Runes:       make(map[rune]KeyEntry, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}
