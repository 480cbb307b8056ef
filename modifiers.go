package winhotkey

import "strings"

// RegisterHotKey fsModifiers bit flags.
//
// See: https://learn.microsoft.com/en-us/windows/win32/api/winuser/nf-winuser-registerhotkey
const (
	MOD_ALT      uint32 = 0x0001
	MOD_CONTROL  uint32 = 0x0002
	MOD_SHIFT    uint32 = 0x0004
	MOD_WIN      uint32 = 0x0008
	MOD_NOREPEAT uint32 = 0x4000
)

// ModKey is a modifier key that participates in a hotkey chord.
//
// ModNoRepeat is a pseudo modifier: it carries the MOD_NOREPEAT registration
// flag that suppresses repeated chord-fire notifications while the chord is
// held down, and maps to no physical key.
type ModKey uint8

const (
	ModNone ModKey = iota
	ModAlt
	ModCtrl
	ModShift
	ModWin
	ModNoRepeat
)

// ModKeyFromName interprets a string as a modifier key name. Accepted values
// (case-insensitive): ALT/OPTION, CTRL/CONTROL, SHIFT,
// WIN/WINDOWS/SUPER/CMD/COMMAND, NOREPEAT/NO_REPEAT.
//
// Parameters:
//   - name: Modifier name to resolve.
//
// Returns:
//   - ModKey: The resolved modifier.
//   - error: *UnsupportedKeyError if the name is not a modifier name.
func ModKeyFromName(name string) (ModKey, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ALT", "OPTION":
		return ModAlt, nil
	case "CTRL", "CONTROL":
		return ModCtrl, nil
	case "SHIFT":
		return ModShift, nil
	case "WIN", "WINDOWS", "SUPER", "CMD", "COMMAND":
		return ModWin, nil
	case "NOREPEAT", "NO_REPEAT":
		return ModNoRepeat, nil
	}
	return ModNone, &UnsupportedKeyError{Token: name}
}

// ModKeyFromVKey classifies a virtual-key code as a modifier. Left/right
// variants collapse to the plain modifier.
func ModKeyFromVKey(k VKey) (ModKey, bool) {
	switch k {
	case VK_MENU, VK_LMENU, VK_RMENU:
		return ModAlt, true
	case VK_CONTROL, VK_LCONTROL, VK_RCONTROL:
		return ModCtrl, true
	case VK_SHIFT, VK_LSHIFT, VK_RSHIFT:
		return ModShift, true
	case VK_LWIN, VK_RWIN:
		return ModWin, true
	}
	return ModNone, false
}

// Code returns the RegisterHotKey bit flag for the modifier.
func (m ModKey) Code() uint32 {
	switch m {
	case ModAlt:
		return MOD_ALT
	case ModCtrl:
		return MOD_CONTROL
	case ModShift:
		return MOD_SHIFT
	case ModWin:
		return MOD_WIN
	case ModNoRepeat:
		return MOD_NOREPEAT
	}
	return 0
}

// VKey returns the virtual-key code polled for the modifier. ModNoRepeat and
// ModNone have no physical key and return 0.
func (m ModKey) VKey() VKey {
	switch m {
	case ModAlt:
		return VK_MENU
	case ModCtrl:
		return VK_CONTROL
	case ModShift:
		return VK_SHIFT
	case ModWin:
		return VK_LWIN
	}
	return 0
}

func (m ModKey) String() string {
	switch m {
	case ModAlt:
		return "ALT"
	case ModCtrl:
		return "CONTROL"
	case ModShift:
		return "SHIFT"
	case ModWin:
		return "WIN"
	case ModNoRepeat:
		return "NO_REPEAT"
	}
	return "NONE"
}

// CombineMods ORs the bit flags of all given modifiers. Duplicates collapse,
// order is irrelevant.
func CombineMods(mods []ModKey) uint32 {
	var bits uint32
	for _, m := range mods {
		bits |= m.Code()
	}
	return bits
}
