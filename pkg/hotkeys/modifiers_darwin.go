//go:build darwin

package hotkeys

import "golang.design/x/hotkey"

// modifierMap maps Modifier bits to the Carbon hotkey modifier flags.
// Alt is Option and Super is Command on macOS.
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModOption,
	ModSuper: hotkey.ModCmd,
}
