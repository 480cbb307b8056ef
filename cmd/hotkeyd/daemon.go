//go:build windows

package main

import (
	"github.com/tischda/winhotkey"
)

// daemon owns the hotkey manager and maps config bindings onto it. Actions
// report the pid of the process they spawned (0 when spawning failed).
type daemon struct {
	configPath string
	mgr        *winhotkey.GlobalManager[int]
	names      []string
	reload     chan struct{}
}

func newDaemon(configPath string) (*daemon, error) {
	mgr, err := winhotkey.NewGlobalManager[int]()
	if err != nil {
		return nil, err
	}
	mgr.SetLogger(logger)
	return &daemon{
		configPath: configPath,
		mgr:        mgr,
		reload:     make(chan struct{}, 1),
	}, nil
}

// RequestReload signals the main loop to reload the config. Coalesces with a
// reload already pending.
func (d *daemon) RequestReload() {
	select {
	case d.reload <- struct{}{}:
	default:
	}
}

// Reload reads the config and rebinds all hotkeys. The config is loaded
// before the running bindings are touched, so a broken config leaves the
// previous bindings active.
//
// Returns:
//   - error: Non-nil if the config cannot be loaded.
func (d *daemon) Reload() error {
	bindings, err := loadBindings(d.configPath)
	if err != nil {
		return err
	}

	d.mgr.Stop()
	for _, name := range d.names {
		d.mgr.Remove(name)
	}
	d.names = d.names[:0]

	for _, b := range bindings {
		action := b.Action
		display := b.Name
		err := d.mgr.AddBinding(b.Name, b.Hotkey, func() int {
			pid, err := runDetached(action)
			if err != nil {
				logger.Printf("Action %s failed: %v", display, err)
				ipcSendf("action %s failed: %v", display, err)
				return 0
			}
			logger.Printf("Action %s started %s (pid %d)", display, action[0], pid)
			return pid
		})
		if err != nil {
			// Already validated by loadBindings; only reachable via races
			// with the config file.
			logger.Printf("Skipping binding %s: %v", b.Name, err)
			continue
		}
		d.names = append(d.names, b.Name)
	}

	d.mgr.Start()
	logger.Printf("Loaded and registered %d bindings from %s", len(d.names), d.configPath)
	ipcSendf("registered %d bindings from %s", len(d.names), d.configPath)
	return nil
}

// Close stops listening and releases the manager's window and worker thread.
func (d *daemon) Close() {
	d.mgr.Close()
}
