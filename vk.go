// Package winhotkey registers global keyboard shortcuts with Windows and
// dispatches callbacks when they fire.
//
// The Windows hotkey API binds registrations and their event queue to the
// thread and window that created them. This package hides that constraint
// behind three layers: a single-threaded Manager that owns a hidden
// message-only window, a ThreadSafeManager that proxies calls from any
// goroutine to a dedicated worker thread, and a GlobalManager that keeps a
// table of named hotkeys with a start/stop lifecycle.
package winhotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// VKey is a Windows virtual-key code.
//
// See: https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
type VKey uint16

// Virtual-key codes. Letter and digit keys use their ASCII code and have no
// named constant; create them with VKeyFromChar or VKeyFromName.
const (
	VK_BACK                VKey = 0x08
	VK_TAB                 VKey = 0x09
	VK_CLEAR               VKey = 0x0C
	VK_RETURN              VKey = 0x0D
	VK_SHIFT               VKey = 0x10
	VK_CONTROL             VKey = 0x11
	VK_MENU                VKey = 0x12
	VK_PAUSE               VKey = 0x13
	VK_CAPITAL             VKey = 0x14
	VK_ESCAPE              VKey = 0x1B
	VK_SPACE               VKey = 0x20
	VK_PRIOR               VKey = 0x21
	VK_NEXT                VKey = 0x22
	VK_END                 VKey = 0x23
	VK_HOME                VKey = 0x24
	VK_LEFT                VKey = 0x25
	VK_UP                  VKey = 0x26
	VK_RIGHT               VKey = 0x27
	VK_DOWN                VKey = 0x28
	VK_SELECT              VKey = 0x29
	VK_PRINT               VKey = 0x2A
	VK_EXECUTE             VKey = 0x2B
	VK_SNAPSHOT            VKey = 0x2C
	VK_INSERT              VKey = 0x2D
	VK_DELETE              VKey = 0x2E
	VK_HELP                VKey = 0x2F
	VK_LWIN                VKey = 0x5B
	VK_RWIN                VKey = 0x5C
	VK_APPS                VKey = 0x5D
	VK_SLEEP               VKey = 0x5F
	VK_NUMPAD0             VKey = 0x60
	VK_NUMPAD1             VKey = 0x61
	VK_NUMPAD2             VKey = 0x62
	VK_NUMPAD3             VKey = 0x63
	VK_NUMPAD4             VKey = 0x64
	VK_NUMPAD5             VKey = 0x65
	VK_NUMPAD6             VKey = 0x66
	VK_NUMPAD7             VKey = 0x67
	VK_NUMPAD8             VKey = 0x68
	VK_NUMPAD9             VKey = 0x69
	VK_MULTIPLY            VKey = 0x6A
	VK_ADD                 VKey = 0x6B
	VK_SEPARATOR           VKey = 0x6C
	VK_SUBTRACT            VKey = 0x6D
	VK_DECIMAL             VKey = 0x6E
	VK_DIVIDE              VKey = 0x6F
	VK_F1                  VKey = 0x70
	VK_F2                  VKey = 0x71
	VK_F3                  VKey = 0x72
	VK_F4                  VKey = 0x73
	VK_F5                  VKey = 0x74
	VK_F6                  VKey = 0x75
	VK_F7                  VKey = 0x76
	VK_F8                  VKey = 0x77
	VK_F9                  VKey = 0x78
	VK_F10                 VKey = 0x79
	VK_F11                 VKey = 0x7A
	VK_F12                 VKey = 0x7B
	VK_F13                 VKey = 0x7C
	VK_F14                 VKey = 0x7D
	VK_F15                 VKey = 0x7E
	VK_F16                 VKey = 0x7F
	VK_F17                 VKey = 0x80
	VK_F18                 VKey = 0x81
	VK_F19                 VKey = 0x82
	VK_F20                 VKey = 0x83
	VK_F21                 VKey = 0x84
	VK_F22                 VKey = 0x85
	VK_F23                 VKey = 0x86
	VK_F24                 VKey = 0x87
	VK_NUMLOCK             VKey = 0x90
	VK_SCROLL              VKey = 0x91
	VK_LSHIFT              VKey = 0xA0
	VK_RSHIFT              VKey = 0xA1
	VK_LCONTROL            VKey = 0xA2
	VK_RCONTROL            VKey = 0xA3
	VK_LMENU               VKey = 0xA4
	VK_RMENU               VKey = 0xA5
	VK_BROWSER_BACK        VKey = 0xA6
	VK_BROWSER_FORWARD     VKey = 0xA7
	VK_BROWSER_REFRESH     VKey = 0xA8
	VK_BROWSER_STOP        VKey = 0xA9
	VK_BROWSER_SEARCH      VKey = 0xAA
	VK_BROWSER_FAVORITES   VKey = 0xAB
	VK_BROWSER_HOME        VKey = 0xAC
	VK_VOLUME_MUTE         VKey = 0xAD
	VK_VOLUME_DOWN         VKey = 0xAE
	VK_VOLUME_UP           VKey = 0xAF
	VK_MEDIA_NEXT_TRACK    VKey = 0xB0
	VK_MEDIA_PREV_TRACK    VKey = 0xB1
	VK_MEDIA_STOP          VKey = 0xB2
	VK_MEDIA_PLAY_PAUSE    VKey = 0xB3
	VK_LAUNCH_MAIL         VKey = 0xB4
	VK_LAUNCH_MEDIA_SELECT VKey = 0xB5
	VK_LAUNCH_APP1         VKey = 0xB6
	VK_LAUNCH_APP2         VKey = 0xB7
	VK_OEM_1               VKey = 0xBA
	VK_OEM_PLUS            VKey = 0xBB
	VK_OEM_COMMA           VKey = 0xBC
	VK_OEM_MINUS           VKey = 0xBD
	VK_OEM_PERIOD          VKey = 0xBE
	VK_OEM_2               VKey = 0xBF
	VK_OEM_3               VKey = 0xC0
	VK_OEM_4               VKey = 0xDB
	VK_OEM_5               VKey = 0xDC
	VK_OEM_6               VKey = 0xDD
	VK_OEM_7               VKey = 0xDE
	VK_OEM_8               VKey = 0xDF
	VK_OEM_102             VKey = 0xE2
	VK_ATTN                VKey = 0xF6
	VK_CRSEL               VKey = 0xF7
	VK_EXSEL               VKey = 0xF8
	VK_PLAY                VKey = 0xFA
	VK_ZOOM                VKey = 0xFB
	VK_PA1                 VKey = 0xFD
	VK_OEM_CLEAR           VKey = 0xFE
)

// vkTable maps canonical key names to key codes. The first name for a code is
// the canonical one used by VKey.String.
var vkTable = []struct {
	name string
	key  VKey
}{
	{"BACK", VK_BACK},
	{"TAB", VK_TAB},
	{"CLEAR", VK_CLEAR},
	{"RETURN", VK_RETURN},
	{"SHIFT", VK_SHIFT},
	{"CONTROL", VK_CONTROL},
	{"MENU", VK_MENU},
	{"PAUSE", VK_PAUSE},
	{"CAPITAL", VK_CAPITAL},
	{"ESCAPE", VK_ESCAPE},
	{"SPACE", VK_SPACE},
	{"PRIOR", VK_PRIOR},
	{"NEXT", VK_NEXT},
	{"END", VK_END},
	{"HOME", VK_HOME},
	{"LEFT", VK_LEFT},
	{"UP", VK_UP},
	{"RIGHT", VK_RIGHT},
	{"DOWN", VK_DOWN},
	{"SELECT", VK_SELECT},
	{"PRINT", VK_PRINT},
	{"EXECUTE", VK_EXECUTE},
	{"SNAPSHOT", VK_SNAPSHOT},
	{"INSERT", VK_INSERT},
	{"DELETE", VK_DELETE},
	{"HELP", VK_HELP},
	{"LWIN", VK_LWIN},
	{"RWIN", VK_RWIN},
	{"APPS", VK_APPS},
	{"SLEEP", VK_SLEEP},
	{"NUMPAD0", VK_NUMPAD0},
	{"NUMPAD1", VK_NUMPAD1},
	{"NUMPAD2", VK_NUMPAD2},
	{"NUMPAD3", VK_NUMPAD3},
	{"NUMPAD4", VK_NUMPAD4},
	{"NUMPAD5", VK_NUMPAD5},
	{"NUMPAD6", VK_NUMPAD6},
	{"NUMPAD7", VK_NUMPAD7},
	{"NUMPAD8", VK_NUMPAD8},
	{"NUMPAD9", VK_NUMPAD9},
	{"MULTIPLY", VK_MULTIPLY},
	{"ADD", VK_ADD},
	{"SEPARATOR", VK_SEPARATOR},
	{"SUBTRACT", VK_SUBTRACT},
	{"DECIMAL", VK_DECIMAL},
	{"DIVIDE", VK_DIVIDE},
	{"F1", VK_F1},
	{"F2", VK_F2},
	{"F3", VK_F3},
	{"F4", VK_F4},
	{"F5", VK_F5},
	{"F6", VK_F6},
	{"F7", VK_F7},
	{"F8", VK_F8},
	{"F9", VK_F9},
	{"F10", VK_F10},
	{"F11", VK_F11},
	{"F12", VK_F12},
	{"F13", VK_F13},
	{"F14", VK_F14},
	{"F15", VK_F15},
	{"F16", VK_F16},
	{"F17", VK_F17},
	{"F18", VK_F18},
	{"F19", VK_F19},
	{"F20", VK_F20},
	{"F21", VK_F21},
	{"F22", VK_F22},
	{"F23", VK_F23},
	{"F24", VK_F24},
	{"NUMLOCK", VK_NUMLOCK},
	{"SCROLL", VK_SCROLL},
	{"LSHIFT", VK_LSHIFT},
	{"RSHIFT", VK_RSHIFT},
	{"LCONTROL", VK_LCONTROL},
	{"RCONTROL", VK_RCONTROL},
	{"LMENU", VK_LMENU},
	{"RMENU", VK_RMENU},
	{"BROWSER_BACK", VK_BROWSER_BACK},
	{"BROWSER_FORWARD", VK_BROWSER_FORWARD},
	{"BROWSER_REFRESH", VK_BROWSER_REFRESH},
	{"BROWSER_STOP", VK_BROWSER_STOP},
	{"BROWSER_SEARCH", VK_BROWSER_SEARCH},
	{"BROWSER_FAVORITES", VK_BROWSER_FAVORITES},
	{"BROWSER_HOME", VK_BROWSER_HOME},
	{"VOLUME_MUTE", VK_VOLUME_MUTE},
	{"VOLUME_DOWN", VK_VOLUME_DOWN},
	{"VOLUME_UP", VK_VOLUME_UP},
	{"MEDIA_NEXT_TRACK", VK_MEDIA_NEXT_TRACK},
	{"MEDIA_PREV_TRACK", VK_MEDIA_PREV_TRACK},
	{"MEDIA_STOP", VK_MEDIA_STOP},
	{"MEDIA_PLAY_PAUSE", VK_MEDIA_PLAY_PAUSE},
	{"LAUNCH_MAIL", VK_LAUNCH_MAIL},
	{"LAUNCH_MEDIA_SELECT", VK_LAUNCH_MEDIA_SELECT},
	{"LAUNCH_APP1", VK_LAUNCH_APP1},
	{"LAUNCH_APP2", VK_LAUNCH_APP2},
	{"OEM_1", VK_OEM_1},
	{"OEM_PLUS", VK_OEM_PLUS},
	{"OEM_COMMA", VK_OEM_COMMA},
	{"OEM_MINUS", VK_OEM_MINUS},
	{"OEM_PERIOD", VK_OEM_PERIOD},
	{"OEM_2", VK_OEM_2},
	{"OEM_3", VK_OEM_3},
	{"OEM_4", VK_OEM_4},
	{"OEM_5", VK_OEM_5},
	{"OEM_6", VK_OEM_6},
	{"OEM_7", VK_OEM_7},
	{"OEM_8", VK_OEM_8},
	{"OEM_102", VK_OEM_102},
	{"ATTN", VK_ATTN},
	{"CRSEL", VK_CRSEL},
	{"EXSEL", VK_EXSEL},
	{"PLAY", VK_PLAY},
	{"ZOOM", VK_ZOOM},
	{"PA1", VK_PA1},
	{"OEM_CLEAR", VK_OEM_CLEAR},
}

// vkAliases maps accepted alternative spellings to key codes. Modifier names
// are included so that chord parsing classifies tokens identically whether it
// matches modifier names or resolves key codes first.
var vkAliases = map[string]VKey{
	"BACKSPACE":   VK_BACK,
	"ENTER":       VK_RETURN,
	"ESC":         VK_ESCAPE,
	"SPACEBAR":    VK_SPACE,
	"PAGEUP":      VK_PRIOR,
	"PAGEDOWN":    VK_NEXT,
	"CAPSLOCK":    VK_CAPITAL,
	"PRINTSCREEN": VK_SNAPSHOT,
	"INS":         VK_INSERT,
	"DEL":         VK_DELETE,
	"ALT":         VK_MENU,
	"OPTION":      VK_MENU,
	"CTRL":        VK_CONTROL,
	"WIN":         VK_LWIN,
	"WINDOWS":     VK_LWIN,
	"SUPER":       VK_LWIN,
	"CMD":         VK_LWIN,
	"COMMAND":     VK_LWIN,
}

var (
	vkByName = make(map[string]VKey, len(vkTable)+len(vkAliases))
	vkName   = make(map[VKey]string, len(vkTable))
)

func init() {
	for _, e := range vkTable {
		vkByName[e.name] = e.key
		if _, ok := vkName[e.key]; !ok {
			vkName[e.key] = e.name
		}
	}
	for name, key := range vkAliases {
		vkByName[name] = key
	}
}

// VKeyFromName resolves a symbolic key name to a virtual-key code. Accepted
// forms are a single alphanumeric character, a hex literal like "0x70", and
// the Windows key names with or without the "VK_" prefix. Names are
// case-insensitive.
//
// Parameters:
//   - name: Key name to resolve.
//
// Returns:
//   - VKey: The resolved virtual-key code.
//   - error: *UnsupportedKeyError if the name is not recognized.
func VKeyFromName(name string) (VKey, error) {
	val := strings.ToUpper(strings.TrimSpace(name))

	// Single letter or digit: the keycode is the ASCII code.
	if len(val) == 1 {
		c := val[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return VKey(c), nil
		}
	}

	// Raw keycode as hex literal.
	if strings.HasPrefix(val, "0X") && len(val) >= 3 && len(val) <= 6 {
		n, err := strconv.ParseUint(val[2:], 16, 16)
		if err != nil {
			return 0, &UnsupportedKeyError{Token: name}
		}
		return VKey(n), nil
	}

	if k, ok := vkByName[strings.TrimPrefix(val, "VK_")]; ok {
		return k, nil
	}
	return 0, &UnsupportedKeyError{Token: name}
}

// VKeyFromChar resolves a letter or digit character to its virtual-key code.
// Letters may be upper or lower case.
func VKeyFromChar(ch rune) (VKey, error) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return VKey(ch - 'a' + 'A'), nil
	case (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'):
		return VKey(ch), nil
	}
	return 0, &InvalidKeyCharError{Char: ch}
}

// String returns the canonical name for the key: the character for letter and
// digit keys, the winuser.h name without the VK_ prefix otherwise. Codes
// without a name are formatted as a hex literal.
func (k VKey) String() string {
	if (k >= 'A' && k <= 'Z') || (k >= '0' && k <= '9') {
		return string(rune(k))
	}
	if name, ok := vkName[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// IsModifier reports whether the key code is a modifier key (Shift, Control,
// Alt or a Windows key, including the left/right variants).
func (k VKey) IsModifier() bool {
	switch k {
	case VK_SHIFT, VK_LSHIFT, VK_RSHIFT,
		VK_CONTROL, VK_LCONTROL, VK_RCONTROL,
		VK_MENU, VK_LMENU, VK_RMENU,
		VK_LWIN, VK_RWIN:
		return true
	}
	return false
}
