package winhotkey

import (
	"slices"
	"strings"
)

// Hotkey is a parsed hotkey descriptor: a set of modifiers, one primary key,
// optional extra keys that must be held when the chord fires, and an optional
// display name.
//
// The primary key is never itself a modifier key. Extra keys are not part of
// the OS chord; they are checked by polling the live key state when the chord
// fires (see Manager.RegisterExtraKeys).
type Hotkey struct {
	Mods   []ModKey
	Key    VKey
	Extras []VKey
	Name   string
}

// ModBits returns the combined RegisterHotKey bit flags of the modifier set.
func (h *Hotkey) ModBits() uint32 {
	return CombineMods(h.Mods)
}

// ID derives the stable numeric identifier for the descriptor:
//
//	id = modifierBits<<16 | keyCode
//
// Re-parsing the same textual descriptor always yields the same id. Two
// descriptors with equal modifiers and primary key collide by design; at the
// OS level the last registration wins.
func (h *Hotkey) ID() uint32 {
	return h.ModBits()<<16 | uint32(h.Key)
}

// Equal reports whether both descriptors have the same modifier set, primary
// key, extra key sequence and name.
func (h *Hotkey) Equal(o *Hotkey) bool {
	return h.ModBits() == o.ModBits() && h.Key == o.Key &&
		slices.Equal(h.Extras, o.Extras) && h.Name == o.Name
}

// String encodes the descriptor back into its textual form: modifiers in the
// fixed order shift, ctrl, alt, super, then the primary key, then any extra
// keys, joined by "+". A named descriptor is wrapped as "name<...>".
//
// The encoding normalizes case and modifier order, so it need not equal the
// string the descriptor was parsed from, but re-parsing it reproduces an
// equal descriptor.
func (h *Hotkey) String() string {
	var b strings.Builder
	if h.Name != "" {
		b.WriteString(h.Name)
		b.WriteByte('<')
	}
	bits := h.ModBits()
	if bits&MOD_SHIFT != 0 {
		b.WriteString("shift+")
	}
	if bits&MOD_CONTROL != 0 {
		b.WriteString("ctrl+")
	}
	if bits&MOD_ALT != 0 {
		b.WriteString("alt+")
	}
	if bits&MOD_WIN != 0 {
		b.WriteString("super+")
	}
	b.WriteString(strings.ToLower(h.Key.String()))
	for _, k := range h.Extras {
		b.WriteByte('+')
		b.WriteString(strings.ToLower(k.String()))
	}
	if h.Name != "" {
		b.WriteByte('>')
	}
	return b.String()
}

// Parse converts a hotkey string into a descriptor. The chord consists of
// "+"-separated, case-insensitive tokens: zero or more modifier names
// (ALT/OPTION, CTRL/CONTROL, SHIFT, WIN/WINDOWS/SUPER/CMD/COMMAND) followed
// by exactly one key name. An optional display name may prefix the chord in
// angle brackets:
//
//	Parse("ctrl+alt+b")
//	Parse("reload<ctrl+r>")
//
// Failure modes: *EmptyTokenError for a blank segment, *InvalidFormatError
// for zero or more than one primary key, *UnsupportedKeyError for a token
// that is neither a modifier nor a key name.
//
// Parameters:
//   - text: Hotkey string, optionally of the form "name<chord>".
//
// Returns:
//   - *Hotkey: The parsed descriptor.
//   - error: Non-nil if the string does not describe a valid chord.
func Parse(text string) (*Hotkey, error) {
	return parseChord(text, false)
}

// ParseBinding converts a hotkey string into a descriptor, additionally
// accepting extra keys after the primary key:
//
//	ParseBinding("ctrl+f8+lshift")
//
// registers CTRL+F8 and requires the left shift key to be held when the chord
// fires. Unlike Parse, every token is first resolved to a key code and
// classified as a modifier if that code is a modifier key code; the result is
// identical for all supported modifier spellings.
func ParseBinding(text string) (*Hotkey, error) {
	return parseChord(text, true)
}

func parseChord(text string, extras bool) (*Hotkey, error) {
	hk := &Hotkey{}
	chord := text

	// Optional "name<chord>" form.
	if before, after, found := strings.Cut(text, "<"); found {
		hk.Name = strings.TrimSpace(before)
		chord = strings.TrimSuffix(strings.TrimSpace(after), ">")
	}

	tokens := strings.Split(chord, "+")
	if len(tokens) == 1 {
		key, err := VKeyFromName(tokens[0])
		if err != nil {
			return nil, err
		}
		if key.IsModifier() {
			// A modifier alone is not a chord.
			return nil, &InvalidFormatError{Chord: chord}
		}
		hk.Key = key
		return hk, nil
	}

	found := false
	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		if token == "" {
			return nil, &EmptyTokenError{Chord: chord}
		}

		if found {
			// Tokens after the primary key are extra keys in the binding
			// grammar and a format error in the strict grammar.
			if !extras {
				return nil, &InvalidFormatError{Chord: chord}
			}
			key, err := VKeyFromName(token)
			if err != nil {
				return nil, err
			}
			hk.Extras = append(hk.Extras, key)
			continue
		}

		if extras {
			// Resolve the token to a key code first, then classify.
			key, err := VKeyFromName(token)
			if err != nil {
				return nil, err
			}
			if mod, ok := ModKeyFromVKey(key); ok {
				hk.Mods = append(hk.Mods, mod)
				continue
			}
			hk.Key = key
			found = true
			continue
		}

		if mod, err := ModKeyFromName(token); err == nil && mod != ModNoRepeat {
			hk.Mods = append(hk.Mods, mod)
			continue
		}
		key, err := VKeyFromName(token)
		if err != nil {
			return nil, err
		}
		if key.IsModifier() {
			// The primary key is never itself a modifier key.
			return nil, &InvalidFormatError{Chord: chord}
		}
		hk.Key = key
		found = true
	}

	if !found {
		return nil, &InvalidFormatError{Chord: chord}
	}
	return hk, nil
}
