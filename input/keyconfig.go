package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that collide with the keymap syntax
var runeAliases = map[string]rune{
	"space":  ' ',
	"comma":  ',',
	"equals": '=',
	"plus":   '+',
	"minus":  '-',
}

// specialKeyNames is the lowercased reverse of tcell.KeyNames
var specialKeyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyConfig parses a sparse override keymap of the form "key=action, key=action"
// Keys are single characters, rune aliases, or tcell key names ("Tab", "Ctrl-C", "Up")
// Action "none" unbinds the key
func LoadKeyConfig(spec string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry),
		Runes:       make(map[rune]KeyEntry),
	}
	fields := strings.FieldsFunc(spec, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		keyStr, action, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("keymap entry %q: expected key=action", field)
		}
		keyStr = strings.TrimSpace(keyStr)

		it, ok := ActionIntent(strings.ToLower(strings.TrimSpace(action)))
		if !ok {
			return nil, fmt.Errorf("keymap entry %q: unknown action %q", field, strings.TrimSpace(action))
		}
		entry := KeyEntry{Intent: it}

		if r, ok := resolveRune(keyStr); ok {
			kt.Runes[r] = entry
			continue
		}
		k, ok := specialKeyNames[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("keymap entry %q: unknown key %q", field, keyStr)
		}
		kt.SpecialKeys[k] = entry
	}
	return kt, nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// MergeKeyTable returns base overridden by override
// Override entries with IntentNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	for k, v := range override.Runes {
		if v.Intent == IntentNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	for k, v := range override.SpecialKeys {
		if v.Intent == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	return result
}
