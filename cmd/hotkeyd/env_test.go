//go:build windows

package main

import (
	"slices"
	"testing"
)

func TestEnvToMap(t *testing.T) {
	t.Parallel()

	m := envToMap([]string{
		"USERPROFILE=C:\\Users\\test",
		"=C:=C:\\",
		"EMPTY=",
		"novalue",
	})
	if m["USERPROFILE"] != "C:\\Users\\test" {
		t.Fatalf("unexpected USERPROFILE: %q", m["USERPROFILE"])
	}
	if v, ok := m["EMPTY"]; !ok || v != "" {
		t.Fatalf("expected empty value kept, got (%q, %v)", v, ok)
	}
	if len(m) != 2 {
		t.Fatalf("expected hidden and malformed entries dropped, got %v", m)
	}
}

func TestOverlayEnv(t *testing.T) {
	t.Parallel()

	t.Run("registry overrides inherited values", func(t *testing.T) {
		t.Parallel()

		dst := map[string]string{"TEMP": `C:\old`, "KEEP": "x"}
		overlayEnv(dst, map[string]string{"TEMP": `C:\new`}, nil)
		if dst["TEMP"] != `C:\new` {
			t.Fatalf("expected override, got %q", dst["TEMP"])
		}
		if dst["KEEP"] != "x" {
			t.Fatalf("expected untouched key to survive, got %q", dst["KEEP"])
		}
	})

	t.Run("append keys accumulate system then user", func(t *testing.T) {
		t.Parallel()

		dst := map[string]string{"Path": `C:\sys`}
		overlayEnv(dst, map[string]string{"Path": `C:\user`}, envAppendKeys)
		if dst["Path"] != `C:\sys;C:\user` {
			t.Fatalf("expected merged Path, got %q", dst["Path"])
		}
	})

	t.Run("append key with no existing value sets it", func(t *testing.T) {
		t.Parallel()

		dst := map[string]string{}
		overlayEnv(dst, map[string]string{"Path": `C:\user`}, envAppendKeys)
		if dst["Path"] != `C:\user` {
			t.Fatalf("expected plain set without leading separator, got %q", dst["Path"])
		}
	})
}

func TestFlattenEnv(t *testing.T) {
	t.Setenv("HOTKEYD_TEST_ROOT", `C:\root`)

	env := flattenEnv(map[string]string{
		"PLAIN":    "value",
		"EXPANDED": `%HOTKEYD_TEST_ROOT%\bin`,
	})
	slices.Sort(env)

	want := []string{`EXPANDED=C:\root\bin`, "PLAIN=value"}
	if !slices.Equal(env, want) {
		t.Fatalf("expected %v, got %v", want, env)
	}
}
