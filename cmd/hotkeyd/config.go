//go:build windows

package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/tischda/winhotkey"
)

type ConfigFile struct {
	Bindings []Binding `toml:"bindings"`
}

// Binding maps one hotkey descriptor to the command it launches.
type Binding struct {
	Name   string   `toml:"name"`
	Hotkey string   `toml:"hotkey"`
	Action []string `toml:"action"`
}

// loadBindings reads a TOML config file and validates its bindings.
//
// Parameters:
//   - path: Path to the TOML config file.
//
// Returns:
//   - []Binding: Valid bindings in file order; invalid ones are logged and
//     skipped.
//   - error: Non-nil if the file cannot be decoded.
func loadBindings(path string) ([]Binding, error) {
	var config ConfigFile
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	var bindings []Binding
	for _, b := range config.Bindings {
		hk, err := winhotkey.ParseBinding(b.Hotkey)
		if err != nil {
			logger.Printf("Skipping invalid hotkey %q: %v", b.Hotkey, err)
			continue
		}
		if len(b.Action) == 0 {
			logger.Printf("Skipping hotkey %q: no action", b.Hotkey)
			continue
		}
		if b.Name == "" {
			b.Name = hk.String()
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

var envVarPattern = regexp.MustCompile(`%[^%]+%`)

// expandVariable substitutes %NAME% references with values from the
// environment. Unknown variables are left untouched.
func expandVariable(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
}
