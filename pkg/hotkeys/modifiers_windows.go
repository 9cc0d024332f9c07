//go:build windows

package hotkeys

import "golang.design/x/hotkey"

// modifierMap maps Modifier bits to the Win32 hotkey modifier flags.
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModAlt,
	ModSuper: hotkey.ModWin,
}
