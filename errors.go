package winhotkey

import (
	"errors"
	"fmt"
)

// Errors reported by OS-facing operations. The OS rejects a registration
// when the chord or id is already claimed, typically by another application;
// retrying with the same chord will fail again.
var (
	ErrRegistrationFailed   = errors.New("hotkey registration failed: hotkey or id may already be in use")
	ErrUnregistrationFailed = errors.New("hotkey unregistration failed")
)

// UnsupportedKeyError reports a chord token that is neither a modifier name
// nor a resolvable key name.
type UnsupportedKeyError struct {
	Token string
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("unsupported key name %q", e.Token)
}

// EmptyTokenError reports a chord that contains a blank segment between
// separators, e.g. "ctrl++b".
type EmptyTokenError struct {
	Chord string
}

func (e *EmptyTokenError) Error() string {
	return fmt.Sprintf("empty token while parsing hotkey %q", e.Chord)
}

// InvalidFormatError reports a chord with zero or more than one primary key.
type InvalidFormatError struct {
	Chord string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid hotkey format %q: modifiers first, then exactly one key, e.g. \"shift+alt+k\"", e.Chord)
}

// InvalidKeyCharError reports a character that does not name a letter or
// digit key.
type InvalidKeyCharError struct {
	Char rune
}

func (e *InvalidKeyCharError) Error() string {
	return fmt.Sprintf("invalid key char %q", e.Char)
}
