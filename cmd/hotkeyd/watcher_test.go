//go:build windows

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestShouldReloadConfig(t *testing.T) {
	t.Parallel()

	configPath := filepath.Clean(filepath.Join("conf", "hotkeyd.toml"))
	configBase := "hotkeyd.toml"

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to config", fsnotify.Event{Name: configPath, Op: fsnotify.Write}, true},
		{"create config", fsnotify.Event{Name: configPath, Op: fsnotify.Create}, true},
		{"rename config", fsnotify.Event{Name: configPath, Op: fsnotify.Rename}, true},
		{"chmod ignored", fsnotify.Event{Name: configPath, Op: fsnotify.Chmod}, false},
		{"remove ignored", fsnotify.Event{Name: configPath, Op: fsnotify.Remove}, false},
		{"other file ignored", fsnotify.Event{Name: filepath.Join("conf", "other.toml"), Op: fsnotify.Write}, false},
		// Editors that save via temp + rename report the base name elsewhere.
		{"base name match", fsnotify.Event{Name: filepath.Join("elsewhere", "hotkeyd.toml"), Op: fsnotify.Write}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := shouldReloadConfig(configPath, configBase, c.event); got != c.want {
				t.Fatalf("shouldReloadConfig(%v) = %v, want %v", c.event, got, c.want)
			}
		})
	}
}

func TestStartConfigWatcher(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hotkeyd.toml")
	if err := os.WriteFile(configPath, []byte("# empty\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	notified := make(chan struct{}, 10)
	watcher, err := startConfigWatcher(configPath, func() {
		select {
		case notified <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("startConfigWatcher: %v", err)
	}
	t.Cleanup(func() {
		_ = watcher.Close()
	})

	// Give fsnotify a moment to attach.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(configPath, []byte("# changed\n"), 0o644); err != nil {
		t.Fatalf("write config changed: %v", err)
	}

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected notify after config write")
	}
}
