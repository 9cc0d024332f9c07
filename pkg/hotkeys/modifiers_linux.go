//go:build linux

package hotkeys

import "golang.design/x/hotkey"

// modifierMap maps Modifier bits to the X11 modifier masks.
// Alt is Mod1 and Super/Win is Mod4 under X11.
var modifierMap = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.Mod1,
	ModSuper: hotkey.Mod4,
}
