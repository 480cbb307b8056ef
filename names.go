package winhotkey

import "sync"

// Process-wide side table mapping derived descriptor ids (Hotkey.ID) to
// display names. It is not scoped to one manager instance: if several
// managers coexist in a process they share it, and a later registration for
// the same id overwrites the name. Entries are inserted on every successful
// registration of a named hotkey and removed on unregistration.
var (
	namesMu     sync.RWMutex
	hotkeyNames = make(map[uint32]string)
)

func setHotkeyName(id uint32, name string) {
	namesMu.Lock()
	hotkeyNames[id] = name
	namesMu.Unlock()
}

func clearHotkeyName(id uint32) {
	namesMu.Lock()
	delete(hotkeyNames, id)
	namesMu.Unlock()
}

// NameOf resolves a derived descriptor id to the display name of the named
// hotkey registered under it, if any. Safe to call from any goroutine.
func NameOf(id uint32) (string, bool) {
	namesMu.RLock()
	name, ok := hotkeyNames[id]
	namesMu.RUnlock()
	return name, ok
}
