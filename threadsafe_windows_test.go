//go:build windows

package winhotkey

import (
	"sync"
	"testing"
	"time"
)

func TestThreadSafeManagerRegisterFromManyGoroutines(t *testing.T) {
	m, err := NewThreadSafeManager[int]()
	if err != nil {
		t.Fatalf("NewThreadSafeManager: %v", err)
	}
	defer m.Close()

	keys := []VKey{VK_F13, VK_F14, VK_F15, VK_F16, VK_F17, VK_F18}

	var wg sync.WaitGroup
	ids := make(chan HotkeyID, len(keys))
	for _, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := m.Register(key, []ModKey{ModCtrl, ModAlt, ModShift}, nil)
			if err != nil {
				t.Errorf("Register(%v): %v", key, err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[HotkeyID]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != len(keys) {
		t.Fatalf("expected %d registrations, got %d", len(keys), len(seen))
	}

	if err := m.UnregisterAll(); err != nil {
		t.Fatalf("UnregisterAll: %v", err)
	}
}

func TestThreadSafeManagerInterruptFromOtherGoroutine(t *testing.T) {
	m, err := NewThreadSafeManager[struct{}]()
	if err != nil {
		t.Fatalf("NewThreadSafeManager: %v", err)
	}
	defer m.Close()

	// Obtained before the loop request; afterwards the worker queue is
	// blocked until the loop returns.
	handle := m.InterruptHandle()

	returned := make(chan struct{})
	go func() {
		m.EventLoop()
		close(returned)
	}()

	time.Sleep(50 * time.Millisecond)
	handle.Interrupt()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatalf("event loop did not return after interrupt")
	}
}

func TestThreadSafeManagerRequestOrdering(t *testing.T) {
	m, err := NewThreadSafeManager[int]()
	if err != nil {
		t.Fatalf("NewThreadSafeManager: %v", err)
	}
	defer m.Close()

	// Requests from one goroutine are served in submission order: the
	// sequential ids mirror the call order.
	for want := HotkeyID(0); want < 3; want++ {
		id, err := m.Register(VK_F13+VKey(want), []ModKey{ModCtrl, ModAlt, ModShift}, nil)
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if id != want {
			t.Fatalf("expected id %d, got %d", want, id)
		}
	}

	if err := m.UnregisterAll(); err != nil {
		t.Fatalf("UnregisterAll: %v", err)
	}
}

func TestThreadSafeManagerClose(t *testing.T) {
	m, err := NewThreadSafeManager[struct{}]()
	if err != nil {
		t.Fatalf("NewThreadSafeManager: %v", err)
	}

	m.Close()
	m.Close() // closing twice is a no-op

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when using a closed manager")
		}
	}()
	m.UnregisterAll() //nolint:errcheck
}
