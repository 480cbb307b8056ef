//go:build windows

package main

import "strings"

// Keys whose registry USER value is appended to the SYSTEM value instead of
// replacing it (the standard Windows composition for search paths).
var envAppendKeys = map[string]bool{
	"Path":         true,
	"PsModulePath": true,
}

// envToMap converts "key=value" entries to a map. Entries without a "=" or
// starting with one (hidden cmd.exe drive entries) are dropped.
func envToMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, e := range env {
		if strings.HasPrefix(e, "=") {
			continue
		}
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// overlayEnv merges src into dst, overriding existing values. Keys listed in
// appendKeys accumulate "existing;new" instead.
func overlayEnv(dst, src map[string]string, appendKeys map[string]bool) {
	for k, v := range src {
		if appendKeys[k] && dst[k] != "" {
			dst[k] = dst[k] + ";" + v
			continue
		}
		dst[k] = v
	}
}

// flattenEnv converts the map back to "key=value" entries, expanding %VAR%
// references in the values.
func flattenEnv(envMap map[string]string) []string {
	env := make([]string, 0, len(envMap))
	for k, v := range envMap {
		env = append(env, k+"="+expandVariable(v))
	}
	return env
}
