package winhotkey

import (
	"errors"
	"testing"
)

func TestModKeyFromName(t *testing.T) {
	t.Parallel()

	cases := map[string]ModKey{
		"alt":       ModAlt,
		"OPTION":    ModAlt,
		"ctrl":      ModCtrl,
		"Control":   ModCtrl,
		"shift":     ModShift,
		"win":       ModWin,
		"windows":   ModWin,
		"super":     ModWin,
		"cmd":       ModWin,
		"command":   ModWin,
		"norepeat":  ModNoRepeat,
		"NO_REPEAT": ModNoRepeat,
	}
	for name, want := range cases {
		got, err := ModKeyFromName(name)
		if err != nil {
			t.Fatalf("ModKeyFromName(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ModKeyFromName(%q) = %v, want %v", name, got, want)
		}
	}

	var keyErr *UnsupportedKeyError
	if _, err := ModKeyFromName("hyper"); !errors.As(err, &keyErr) {
		t.Fatalf("expected UnsupportedKeyError, got %v", err)
	}
}

func TestCombineMods(t *testing.T) {
	t.Parallel()

	if got := CombineMods(nil); got != 0 {
		t.Fatalf("expected 0 for no modifiers, got %#x", got)
	}

	got := CombineMods([]ModKey{ModCtrl, ModAlt})
	if got != MOD_CONTROL|MOD_ALT {
		t.Fatalf("expected %#x, got %#x", MOD_CONTROL|MOD_ALT, got)
	}

	// Duplicates collapse, order is irrelevant.
	if CombineMods([]ModKey{ModAlt, ModCtrl, ModAlt}) != got {
		t.Fatalf("expected duplicates to collapse")
	}
}

func TestModKeyVKeyMapping(t *testing.T) {
	t.Parallel()

	for _, m := range []ModKey{ModAlt, ModCtrl, ModShift, ModWin} {
		k := m.VKey()
		if k == 0 {
			t.Fatalf("expected a key code for %v", m)
		}
		back, ok := ModKeyFromVKey(k)
		if !ok || back != m {
			t.Fatalf("round trip for %v: got (%v, %v)", m, back, ok)
		}
	}

	if ModNoRepeat.VKey() != 0 {
		t.Fatalf("NO_REPEAT maps to no physical key")
	}

	// Left/right variants collapse to the plain modifier.
	for _, c := range []struct {
		key  VKey
		want ModKey
	}{
		{VK_LSHIFT, ModShift},
		{VK_RSHIFT, ModShift},
		{VK_LCONTROL, ModCtrl},
		{VK_RMENU, ModAlt},
		{VK_RWIN, ModWin},
	} {
		got, ok := ModKeyFromVKey(c.key)
		if !ok || got != c.want {
			t.Fatalf("ModKeyFromVKey(%v) = (%v, %v), want %v", c.key, got, ok, c.want)
		}
	}

	if _, ok := ModKeyFromVKey(VK_F8); ok {
		t.Fatalf("VK_F8 is not a modifier")
	}
}
