//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows/registry"
)

// userAndSystemEnv builds the environment for spawned actions: the current
// process environment (COMPUTERNAME, SYSTEMDRIVE, USERPROFILE, ...), with
// possibly stale values overridden by SYSTEM and then USER variables from the
// Windows registry. Path-like variables are merged, SYSTEM first, as is
// standard on Windows.
//
// Returns a slice of strings in "key=value" format, values expanded.
func userAndSystemEnv() ([]string, error) {
	envMap := envToMap(os.Environ())

	sys := registryEnv(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`)
	overlayEnv(envMap, sys, nil)

	user := registryEnv(registry.CURRENT_USER, `Environment`)
	overlayEnv(envMap, user, envAppendKeys)

	return flattenEnv(envMap), nil
}

// registryEnv reads all string values of one registry environment key. A key
// that cannot be opened yields an empty map; the inherited environment is
// then used as-is.
func registryEnv(root registry.Key, path string) map[string]string {
	env := make(map[string]string)

	k, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return env
	}
	defer k.Close() //nolint:errcheck

	names, _ := k.ReadValueNames(0)
	for _, name := range names {
		val, _, err := k.GetStringValue(name)
		if err != nil {
			continue
		}
		env[name] = val
	}
	return env
}
