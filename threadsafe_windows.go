//go:build windows

package winhotkey

import (
	"runtime"
	"sync"
)

// ThreadSafeManager presents the Manager contract to arbitrary goroutines.
// It owns a Manager on a private worker goroutine whose OS thread is locked;
// every call packages its arguments and a reply channel into a request,
// enqueues it, and blocks until the worker answers.
//
// Requests are served strictly in FIFO order, one at a time. A caller that
// invokes the blocking EventLoop therefore starves all later requests until
// the loop is interrupted: obtain the InterruptHandle before starting the
// loop.
//
// Close releases the worker and its window. If a ThreadSafeManager becomes
// unreachable without Close having been called, a runtime cleanup performs
// the same shutdown, so the thread and window are never leaked.
type ThreadSafeManager[T any] struct {
	core *proxy[T]
}

// proxy carries the shutdown state separately from the public handle so the
// runtime cleanup can run it after the handle is collected.
type proxy[T any] struct {
	// requests holds closures executed on the worker thread in FIFO order.
	// A closure returning false stops the worker.
	requests chan func(*Manager[T]) bool
	// done is closed after the worker destroyed its manager and returned.
	done     chan struct{}
	exitOnce sync.Once
}

// NewThreadSafeManager starts the worker thread and creates the managed
// window on it. A window creation failure is propagated and the worker is
// torn down again.
func NewThreadSafeManager[T any]() (*ThreadSafeManager[T], error) {
	p := &proxy[T]{
		requests: make(chan func(*Manager[T]) bool),
		done:     make(chan struct{}),
	}
	initErr := make(chan error)

	go func() {
		// The window and its message queue are bound to this thread.
		runtime.LockOSThread()
		defer close(p.done)

		mgr, err := NewManager[T]()
		initErr <- err
		if err != nil {
			return
		}
		defer mgr.Close() //nolint:errcheck

		for fn := range p.requests {
			if !fn(mgr) {
				return
			}
		}
	}()

	if err := <-initErr; err != nil {
		return nil, err
	}

	m := &ThreadSafeManager[T]{core: p}
	runtime.AddCleanup(m, func(c *proxy[T]) { c.shutdown() }, p)
	return m, nil
}

// do runs fn on the worker thread and blocks until it has been executed.
// Using the manager after Close, or after the worker died, is a programming
// error and panics rather than deadlocking the caller.
func (p *proxy[T]) do(fn func(*Manager[T])) {
	executed := make(chan struct{})
	select {
	case p.requests <- func(mgr *Manager[T]) bool {
		fn(mgr)
		close(executed)
		return true
	}:
	case <-p.done:
		panic("winhotkey: thread-safe manager used after Close")
	}
	select {
	case <-executed:
	case <-p.done:
		panic("winhotkey: hotkey worker exited while a request was pending")
	}
}

func (p *proxy[T]) shutdown() {
	p.exitOnce.Do(func() {
		select {
		case p.requests <- func(*Manager[T]) bool { return false }:
		case <-p.done:
			return
		}
	})
	<-p.done
}

// SetNoRepeat enables or disables the automatically applied MOD_NOREPEAT
// flag for subsequent registrations. See Manager.SetNoRepeat.
func (m *ThreadSafeManager[T]) SetNoRepeat(noRepeat bool) {
	m.core.do(func(mgr *Manager[T]) { mgr.SetNoRepeat(noRepeat) })
}

// Register registers a global hotkey. See Manager.Register.
func (m *ThreadSafeManager[T]) Register(key VKey, mods []ModKey, callback func() T) (HotkeyID, error) {
	return m.RegisterExtraKeys(key, mods, nil, callback)
}

// RegisterExtraKeys registers a global hotkey with additional required keys.
// See Manager.RegisterExtraKeys.
func (m *ThreadSafeManager[T]) RegisterExtraKeys(key VKey, mods []ModKey, extraKeys []VKey, callback func() T) (HotkeyID, error) {
	var (
		id  HotkeyID
		err error
	)
	m.core.do(func(mgr *Manager[T]) {
		id, err = mgr.RegisterExtraKeys(key, mods, extraKeys, callback)
	})
	return id, err
}

// Unregister removes a hotkey registration. See Manager.Unregister.
func (m *ThreadSafeManager[T]) Unregister(id HotkeyID) error {
	var err error
	m.core.do(func(mgr *Manager[T]) { err = mgr.Unregister(id) })
	return err
}

// UnregisterAll unregisters every registered hotkey. See
// Manager.UnregisterAll.
func (m *ThreadSafeManager[T]) UnregisterAll() error {
	var err error
	m.core.do(func(mgr *Manager[T]) { err = mgr.UnregisterAll() })
	return err
}

// HandleOne blocks until one hotkey fires or the loop is interrupted. See
// Manager.HandleOne. While it blocks, all other calls on this manager queue
// up behind it.
func (m *ThreadSafeManager[T]) HandleOne() (T, bool) {
	var (
		result T
		ok     bool
	)
	m.core.do(func(mgr *Manager[T]) { result, ok = mgr.HandleOne() })
	return result, ok
}

// EventLoop handles hotkeys until interrupted. See Manager.EventLoop. The
// interrupt handle must be obtained before calling EventLoop; an
// InterruptHandle request enqueued afterwards would only be served once the
// loop has already returned.
func (m *ThreadSafeManager[T]) EventLoop() {
	m.core.do(func(mgr *Manager[T]) { mgr.EventLoop() })
}

// InterruptHandle returns a handle that unblocks HandleOne and EventLoop
// from any goroutine. See Manager.InterruptHandle.
func (m *ThreadSafeManager[T]) InterruptHandle() InterruptHandle {
	var h InterruptHandle
	m.core.do(func(mgr *Manager[T]) { h = mgr.InterruptHandle() })
	return h
}

// Close stops the worker after all previously enqueued requests, which
// unregisters everything and destroys the window on the owning thread, and
// waits for the worker to exit. Closing twice is a no-op. If an EventLoop
// request is still in flight, Close blocks until the loop is interrupted.
func (m *ThreadSafeManager[T]) Close() {
	m.core.shutdown()
}
