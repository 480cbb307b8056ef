//go:build windows

package main

import (
	"errors"
	"fmt"
	"os/exec"

	"golang.org/x/sys/windows"
)

// runDetached starts the process specified by cmd in a detached state. The new
// process is not attached to the current console and runs independently.
//
// The process inherits a fresh set of user and system environment variables.
//
// Parameters:
//   - cmd: The executable to run and its arguments as a slice of strings.
//
// Returns:
//   - int: The process ID of the started process.
//   - error: Non-nil if process creation or startup fails.
func runDetached(cmd []string) (int, error) {
	if len(cmd) == 0 {
		return 0, errors.New("command array is empty")
	}
	c := exec.Command(cmd[0], cmd[1:]...)

	c.SysProcAttr = &windows.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS,
	}

	env, err := userAndSystemEnv()
	if err != nil {
		return 0, fmt.Errorf("failed to get environment: %w", err)
	}
	c.Env = env

	err = c.Start()
	if err != nil {
		return 0, fmt.Errorf("failed to start command %v : %w", cmd, err)
	}
	return c.Process.Pid, nil
}
