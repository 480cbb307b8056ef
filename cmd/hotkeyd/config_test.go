//go:build windows

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "hotkeyd.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadBindings(t *testing.T) {
	t.Run("parses bindings", func(t *testing.T) {
		path := writeTempConfig(t, `
[[bindings]]
name = "editor"
hotkey = "ctrl+alt+a"
action = ["notepad.exe", "/A"]
`)

		bindings, err := loadBindings(path)
		if err != nil {
			t.Fatalf("loadBindings: %v", err)
		}
		if len(bindings) != 1 {
			t.Fatalf("expected 1 binding, got %d", len(bindings))
		}

		b := bindings[0]
		if b.Name != "editor" {
			t.Fatalf("expected Name=%q, got %q", "editor", b.Name)
		}
		if b.Hotkey != "ctrl+alt+a" {
			t.Fatalf("expected Hotkey=%q, got %q", "ctrl+alt+a", b.Hotkey)
		}
		if len(b.Action) != 2 || b.Action[0] != "notepad.exe" || b.Action[1] != "/A" {
			t.Fatalf("unexpected Action: %#v", b.Action)
		}
	})

	t.Run("defaults name to normalized hotkey", func(t *testing.T) {
		path := writeTempConfig(t, `
[[bindings]]
hotkey = "alt+ctrl+A"
action = ["noop"]
`)

		bindings, err := loadBindings(path)
		if err != nil {
			t.Fatalf("loadBindings: %v", err)
		}
		if len(bindings) != 1 {
			t.Fatalf("expected 1 binding, got %d", len(bindings))
		}
		if bindings[0].Name != "ctrl+alt+a" {
			t.Fatalf("expected normalized name, got %q", bindings[0].Name)
		}
	})

	t.Run("skips invalid bindings", func(t *testing.T) {
		path := writeTempConfig(t, `
[[bindings]]
hotkey = "ctrl+definitely-not-a-key"
action = ["noop"]

[[bindings]]
hotkey = "shift+f1"
action = ["ok"]

[[bindings]]
hotkey = "ctrl+b"
action = []
`)

		bindings, err := loadBindings(path)
		if err != nil {
			t.Fatalf("loadBindings: %v", err)
		}
		if len(bindings) != 1 {
			t.Fatalf("expected 1 binding, got %d", len(bindings))
		}
		if bindings[0].Hotkey != "shift+f1" {
			t.Fatalf("expected the valid binding to survive, got %q", bindings[0].Hotkey)
		}
	})

	t.Run("returns error on missing file", func(t *testing.T) {
		_, err := loadBindings(filepath.Join(t.TempDir(), "missing.toml"))
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("wraps decode errors", func(t *testing.T) {
		path := writeTempConfig(t, `
[[bindings]]
hotkey =
`)

		_, err := loadBindings(path)
		if err == nil {
			t.Fatalf("expected error")
		}
		if !strings.Contains(err.Error(), "decode toml:") {
			t.Fatalf("expected wrapped decode error prefix, got %q", err.Error())
		}
	})
}

func TestExpandVariable(t *testing.T) {
	t.Setenv("HOTKEYD_TEST_HOME", `C:\Users\test`)

	if got := expandVariable(`%HOTKEYD_TEST_HOME%\.config\hotkeyd.toml`); got != `C:\Users\test\.config\hotkeyd.toml` {
		t.Fatalf("unexpected expansion: %q", got)
	}

	// Unknown variables stay as-is.
	if got := expandVariable("%HOTKEYD_TEST_UNDEFINED%"); got != "%HOTKEYD_TEST_UNDEFINED%" {
		t.Fatalf("expected unknown variable untouched, got %q", got)
	}

	if got := expandVariable("no variables here"); got != "no variables here" {
		t.Fatalf("expected input unchanged, got %q", got)
	}
}
