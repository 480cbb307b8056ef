//go:build windows

package winhotkey

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// GlobalHotkey is one entry in a GlobalManager table: a descriptor plus an
// optional action to run when it fires.
type GlobalHotkey[T any] struct {
	Hotkey
	action func() T
}

// NewGlobalHotkey builds a table entry from a descriptor. The action may be
// nil; the chord is then claimed without running anything.
func NewGlobalHotkey[T any](hk Hotkey, action func() T) *GlobalHotkey[T] {
	return &GlobalHotkey[T]{Hotkey: hk, action: action}
}

// SetAction replaces the hotkey's action. Takes effect on the next Start.
func (g *GlobalHotkey[T]) SetAction(action func() T) {
	g.action = action
}

// GlobalManager is a convenience layer over ThreadSafeManager: a table of
// named hotkeys with an idle/listening lifecycle.
//
// Start and Stop are serialized against each other, and Stop performs its
// cleanup before returning, so stop-then-start sequences are safe from any
// goroutine.
type GlobalManager[T any] struct {
	manager *ThreadSafeManager[T]

	mu      sync.Mutex // guards hotkeys
	hotkeys map[string]*GlobalHotkey[T]

	lifecycle sync.Mutex // serializes Start/Stop/Close
	listening atomic.Bool
	regIDs    []HotkeyID
	nameIDs   []uint32
	interrupt InterruptHandle
	loopDone  chan struct{}

	logger *log.Logger
}

// NewGlobalManager creates an idle manager with an empty hotkey table.
func NewGlobalManager[T any]() (*GlobalManager[T], error) {
	tsm, err := NewThreadSafeManager[T]()
	if err != nil {
		return nil, err
	}
	// Repeat suppression is left to the individual hotkeys here; a table
	// entry can opt in with ModNoRepeat.
	tsm.SetNoRepeat(false)
	return &GlobalManager[T]{
		manager: tsm,
		hotkeys: make(map[string]*GlobalHotkey[T]),
		logger:  log.Default(),
	}, nil
}

// SetLogger redirects the warnings logged by the best-effort batch
// operations (Start, Stop).
func (g *GlobalManager[T]) SetLogger(l *log.Logger) {
	g.logger = l
}

// Add inserts or replaces a named hotkey. Takes effect on the next Start.
func (g *GlobalManager[T]) Add(name string, hk *GlobalHotkey[T]) {
	g.mu.Lock()
	g.hotkeys[name] = hk
	g.mu.Unlock()
}

// AddBinding parses spec with ParseBinding and inserts the result under
// name.
//
// Parameters:
//   - name: Table name for the hotkey, also resolvable via NameOf once
//     registered.
//   - spec: Hotkey string, e.g. "ctrl+alt+b" or "ctrl+f8+lshift".
//   - action: Action to run when the hotkey fires; may be nil.
//
// Returns:
//   - error: Non-nil if spec does not parse.
func (g *GlobalManager[T]) AddBinding(name, spec string, action func() T) error {
	hk, err := ParseBinding(spec)
	if err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	hk.Name = name
	g.Add(name, NewGlobalHotkey(*hk, action))
	return nil
}

// Remove deletes a named hotkey from the table and returns it, or nil if
// absent. A registration from a previous Start stays active until Stop.
func (g *GlobalManager[T]) Remove(name string) *GlobalHotkey[T] {
	g.mu.Lock()
	hk := g.hotkeys[name]
	delete(g.hotkeys, name)
	g.mu.Unlock()
	return hk
}

// Start registers every hotkey currently in the table and begins listening
// on a background goroutine. Registration failures are logged per hotkey and
// do not abort the batch. Calling Start while already listening logs a
// warning and does nothing.
func (g *GlobalManager[T]) Start() {
	g.lifecycle.Lock()
	defer g.lifecycle.Unlock()

	if g.listening.Load() {
		g.logger.Println("winhotkey: already listening for hotkeys")
		return
	}

	g.mu.Lock()
	entries := make([]*GlobalHotkey[T], 0, len(g.hotkeys))
	for _, hk := range g.hotkeys {
		entries = append(entries, hk)
	}
	g.mu.Unlock()

	for _, hk := range entries {
		id, err := g.manager.RegisterExtraKeys(hk.Key, hk.Mods, hk.Extras, hk.action)
		if err != nil {
			g.logger.Printf("winhotkey: register %s: %v", &hk.Hotkey, err)
			continue
		}
		g.regIDs = append(g.regIDs, id)
		if hk.Name != "" {
			nameID := hk.ID()
			setHotkeyName(nameID, hk.Name)
			g.nameIDs = append(g.nameIDs, nameID)
		}
	}

	// Obtained before the loop starts; once the loop request is in flight
	// the worker queue would not answer until interrupted.
	g.interrupt = g.manager.InterruptHandle()
	g.listening.Store(true)
	g.loopDone = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		for g.listening.Load() {
			g.manager.EventLoop()
		}
	}(g.loopDone)
}

// Stop ends listening, unregisters every hotkey the matching Start
// registered and clears the registration bookkeeping (the hotkey table
// itself is kept for a later Start). It returns false without side effects
// when not listening. Unregistration failures are logged per hotkey, not
// returned.
func (g *GlobalManager[T]) Stop() bool {
	g.lifecycle.Lock()
	defer g.lifecycle.Unlock()
	return g.stopLocked()
}

func (g *GlobalManager[T]) stopLocked() bool {
	if !g.listening.Load() {
		return false
	}

	g.listening.Store(false)
	g.interrupt.Interrupt()
	<-g.loopDone

	for _, id := range g.regIDs {
		if err := g.manager.Unregister(id); err != nil {
			g.logger.Printf("winhotkey: unregister %d: %v", id, err)
		}
	}
	for _, id := range g.nameIDs {
		clearHotkeyName(id)
	}
	g.regIDs = nil
	g.nameIDs = nil
	return true
}

// Close stops listening if necessary and releases the underlying worker
// thread and window. The manager cannot be started again afterwards.
func (g *GlobalManager[T]) Close() {
	g.lifecycle.Lock()
	defer g.lifecycle.Unlock()
	g.stopLocked()
	g.manager.Close()
}
