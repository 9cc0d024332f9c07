package hotkeys

import (
	"strings"

	"golang.design/x/hotkey"
)

// keyTable is the fixed lookup of accepted key tokens. golang.design/x/hotkey
// defines these constants with the matching native code on every supported
// platform, so the table itself is platform-neutral.
var keyTable = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"return": hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"delete": hotkey.KeyDelete,
	"del":    hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
}

// keyAliases normalizes synonym tokens to the canonical key name stored in a
// Binding, so String() round-trips through ParseBinding.
var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
}

func lookupKey(raw string) (string, hotkey.Key, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", 0, &ParseError{Token: raw, Reason: "empty key token"}
	}

	key, ok := keyTable[token]
	if !ok {
		return "", 0, &ParseError{Token: raw, Reason: "unknown key"}
	}

	if canonical, ok := keyAliases[token]; ok {
		token = canonical
	}

	return token, key, nil
}
