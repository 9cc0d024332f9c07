// Package hotkeys parses global shortcut bindings and owns the single
// currently-registered OS hotkey.
package hotkeys

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Modifier is a bitmask of shortcut modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// modifierNames maps every accepted modifier token, including synonyms, to
// its canonical bit.
var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"meta":    ModSuper,
	"cmd":     ModSuper,
}

// Binding is a parsed global shortcut. Construct only via ParseBinding so
// every Binding carries a known key and canonical form.
type Binding struct {
	mods    Modifier
	keyName string
	key     hotkey.Key
}

// Mods returns the modifier bitmask.
func (b Binding) Mods() Modifier { return b.mods }

// Key returns the OS key code the binding resolves to.
func (b Binding) Key() hotkey.Key { return b.key }

// String returns the canonical form, e.g. "ctrl+shift+t". Parsing the
// canonical form yields an identical Binding.
func (b Binding) String() string {
	var parts []string
	if b.mods&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if b.mods&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if b.mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if b.mods&ModSuper != 0 {
		parts = append(parts, "super")
	}
	parts = append(parts, b.keyName)

	return strings.Join(parts, "+")
}

// ParseError reports a shortcut string that could not be parsed, naming the
// token that failed.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("hotkeys: %s", e.Reason)
	}

	return fmt.Sprintf("hotkeys: %s: %q", e.Reason, e.Token)
}

// ParseBinding parses a "MOD+MOD+KEY" shortcut string. Tokens are
// case-insensitive; every token except the last must be a modifier name and
// the last must be a key from the fixed key table. At least one modifier is
// required for a global shortcut.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Binding{}, &ParseError{Reason: "empty binding"}
	}

	parts := strings.Split(s, "+")
	if len(parts) < 2 {
		return Binding{}, &ParseError{Token: s, Reason: "binding needs at least one modifier and a key"}
	}

	var mods Modifier
	for _, raw := range parts[:len(parts)-1] {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			return Binding{}, &ParseError{Token: raw, Reason: "empty modifier token"}
		}

		mod, ok := modifierNames[token]
		if !ok {
			return Binding{}, &ParseError{Token: raw, Reason: "unknown modifier"}
		}

		mods |= mod
	}

	rawKey := parts[len(parts)-1]
	keyName, key, err := lookupKey(rawKey)
	if err != nil {
		return Binding{}, err
	}

	return Binding{mods: mods, keyName: keyName, key: key}, nil
}
