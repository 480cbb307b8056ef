//go:build windows

package winhotkey

import (
	"fmt"
	"math"
	"slices"
)

// HotkeyID identifies a hotkey registered with a Manager. Ids are allocated
// sequentially per manager and never reused within a manager's lifetime, not
// even for failed registration attempts.
type HotkeyID uint16

type registeredHotkey[T any] struct {
	// Callback to execute when the chord and extra keys match. May be nil,
	// in which case the fired event is consumed without producing a value.
	callback func() T
	// Additional keys that must be held down when the chord fires.
	extraKeys []VKey
}

// Manager registers global hotkeys against one hidden message-only window
// and pumps that window's message queue.
//
// A Manager is bound to the OS thread it was created on: every method except
// InterruptHandle must be called from that same thread, which must be locked
// with runtime.LockOSThread. ThreadSafeManager removes this restriction by
// owning a Manager on a dedicated worker thread.
//
// All hotkeys on one manager share the callback result type T.
type Manager[T any] struct {
	hwnd     uintptr
	nextID   uint16
	handlers map[HotkeyID]*registeredHotkey[T]
	noRepeat bool
}

// NewManager creates a manager with a fresh hidden window. Window creation is
// not retried; on failure the caller may retry by creating a new manager.
func NewManager[T any]() (*Manager[T], error) {
	hwnd, err := createMessageWindow()
	if err != nil {
		return nil, err
	}
	return &Manager[T]{
		hwnd:     hwnd,
		handlers: make(map[HotkeyID]*registeredHotkey[T]),
		noRepeat: true,
	}, nil
}

// SetNoRepeat enables or disables the automatically applied MOD_NOREPEAT
// registration flag. It defaults to true, which suppresses automatic
// retriggers while the chord is held down. Changing the flag only affects
// registrations performed afterwards.
func (m *Manager[T]) SetNoRepeat(noRepeat bool) {
	m.noRepeat = noRepeat
}

// Register registers a global hotkey for the given key and modifiers. The
// callback runs on the manager thread when the chord fires during HandleOne
// or EventLoop; it may be nil to claim the chord without an action.
//
// Registration is not retried on failure; the OS rejects chords already
// claimed by any application, including this one.
func (m *Manager[T]) Register(key VKey, mods []ModKey, callback func() T) (HotkeyID, error) {
	return m.RegisterExtraKeys(key, mods, nil, callback)
}

// RegisterExtraKeys is Register with additional required keys: when the chord
// fires, every extra key must currently be held down for the callback to run,
// otherwise the event is dropped. Extra keys are polled, not part of the OS
// chord, so they must be pressed before the primary key.
func (m *Manager[T]) RegisterExtraKeys(key VKey, mods []ModKey, extraKeys []VKey, callback func() T) (HotkeyID, error) {
	if m.nextID == math.MaxUint16 {
		panic("winhotkey: hotkey id space exhausted")
	}
	id := HotkeyID(m.nextID)
	m.nextID++

	bits := CombineMods(mods)
	if m.noRepeat {
		bits |= MOD_NOREPEAT
	}

	r, _, callErr := procRegisterHotKey.Call(m.hwnd, uintptr(id), uintptr(bits), uintptr(key))
	if r == 0 {
		// The id stays consumed.
		return 0, fmt.Errorf("%w: %v", ErrRegistrationFailed, callErr)
	}

	m.handlers[id] = &registeredHotkey[T]{
		callback:  callback,
		extraKeys: slices.Clone(extraKeys),
	}
	return id, nil
}

// Unregister removes a hotkey registration. On failure the registry entry is
// left in place so the caller may retry.
func (m *Manager[T]) Unregister(id HotkeyID) error {
	r, _, callErr := procUnregisterHotKey.Call(m.hwnd, uintptr(id))
	if r == 0 {
		return fmt.Errorf("%w: %v", ErrUnregistrationFailed, callErr)
	}
	delete(m.handlers, id)
	return nil
}

// UnregisterAll unregisters every registered hotkey, in undefined order. The
// first failure aborts the remaining unregistrations and is returned, so a
// partial success is possible.
func (m *Manager[T]) UnregisterAll() error {
	for id := range m.handlers {
		if err := m.Unregister(id); err != nil {
			return err
		}
	}
	return nil
}

// HandleOne blocks until one registered hotkey fires and executes its
// callback, returning the callback result and true. It returns the zero
// value and false when interrupted via InterruptHandle or when the window is
// gone.
//
// A fired chord whose extra keys are not all held is dropped silently and
// the wait continues. Messages other than hotkey fires and the wakeup
// sentinel are handed to default processing.
func (m *Manager[T]) HandleOne() (T, bool) {
	var zero T
	for {
		var msg MSG
		// Filtered to the WM_NULL..WM_HOTKEY range on the manager window.
		switch r := getMessage(&msg, m.hwnd, WM_NULL, WM_HOTKEY); {
		case r == -1: // window handle invalid
			return zero, false
		case r == 0: // WM_QUIT
			return zero, false
		}

		switch msg.Message {
		case WM_HOTKEY:
			handler, ok := m.handlers[HotkeyID(msg.WParam)]
			if !ok {
				continue
			}
			if !allKeysPressed(handler.extraKeys) {
				continue
			}
			if handler.callback == nil {
				continue
			}
			return handler.callback(), true

		case WM_NULL:
			// Wakeup sentinel posted by an InterruptHandle.
			return zero, false

		default:
			dispatchMessage(&msg)
		}
	}
}

// EventLoop handles hotkeys until interrupted via InterruptHandle.
func (m *Manager[T]) EventLoop() {
	for {
		if _, ok := m.HandleOne(); !ok {
			return
		}
	}
}

// InterruptHandle returns a handle that unblocks HandleOne and EventLoop.
// Unlike all other methods it is safe to hand the result to other threads.
func (m *Manager[T]) InterruptHandle() InterruptHandle {
	return InterruptHandle{hwnd: m.hwnd}
}

// Close unregisters all hotkeys and destroys the window. Cleanup is best
// effort: the window is destroyed even if unregistration partially failed,
// and the first unregistration failure is returned. Must be called on the
// manager's thread.
func (m *Manager[T]) Close() error {
	err := m.UnregisterAll()
	if m.hwnd != 0 {
		procDestroyWindow.Call(m.hwnd) //nolint:errcheck
		m.hwnd = 0
	}
	return err
}

func allKeysPressed(keys []VKey) bool {
	for _, k := range keys {
		if !GlobalKeyState(k) {
			return false
		}
	}
	return true
}

// InterruptHandle posts the wakeup sentinel to the originating manager's
// window, forcing a blocked HandleOne or EventLoop to return. It is a cheap
// copyable value, safe to use from any thread, any number of times. It stays
// technically valid after the manager is gone, in which case interrupting is
// a no-op.
type InterruptHandle struct {
	hwnd uintptr
}

// Interrupt posts the wakeup message. Idempotent.
func (h InterruptHandle) Interrupt() {
	procPostMessageW.Call(h.hwnd, WM_NULL, 0, 0) //nolint:errcheck
}
