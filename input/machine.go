package input

import "github.com/gdamore/tcell/v2"

// Machine parses tcell events into intents
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine; nil uses DefaultKeyTable
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Process maps one event; unbound keys and other events return IntentNone
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		return Intent{Type: IntentPointer, X: x, Y: y}
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

func (m *Machine) processKey(ev *tcell.EventKey) Intent {
	var (
		entry KeyEntry
		ok    bool
	)
	if ev.Key() == tcell.KeyRune {
		entry, ok = m.keyTable.Runes[ev.Rune()]
	} else {
		entry, ok = m.keyTable.SpecialKeys[ev.Key()]
	}
	if !ok {
		return Intent{}
	}
	return Intent{Type: entry.Intent, X: entry.DX, Y: entry.DY}
}
