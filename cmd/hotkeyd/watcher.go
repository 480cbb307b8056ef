//go:build windows

package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// shouldReloadConfig reports whether an fsnotify event warrants a config reload.
//
// Parameters:
//   - configPath: Cleaned absolute path to the config file.
//   - configBase: Base filename of the config file.
//   - event: Filesystem event to evaluate.
//
// Returns:
//   - bool: True if the event should trigger a reload.
func shouldReloadConfig(configPath, configBase string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == configPath {
		return true
	}
	// Some editors write via temp + rename, resulting in partial paths.
	if filepath.Base(name) == configBase {
		return true
	}
	return false
}

// startConfigWatcher watches configPath for changes and calls notify on each
// relevant, debounced event.
//
// Parameters:
//   - configPath: Full path to the config file.
//   - notify: Called from the watcher goroutine; must not block.
//
// Returns:
//   - *fsnotify.Watcher: A watcher the caller should close when done.
//   - error: Non-nil if the watcher cannot be created or the directory cannot
//     be watched.
func startConfigWatcher(configPath string, notify func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watching a directory is more reliable on Windows than watching a single file.
	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, err
	}
	configPath = filepath.Clean(configPath) // full path normalization
	configBase := filepath.Base(configPath) // file name only

	go func() {
		var last time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !shouldReloadConfig(configPath, configBase, event) {
					continue
				}
				// Debounce noisy editor save patterns.
				if time.Since(last) < 200*time.Millisecond {
					continue
				}
				last = time.Now()
				logger.Println("Config reload signalled")
				notify()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Printf("Config watcher error: %v", err)
			}
		}
	}()
	return watcher, nil
}
