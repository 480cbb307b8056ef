//go:build windows

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var logger = log.New(os.Stdout, "", 0)

// setupLogging directs logging to a file, or stdout when path is empty. File
// logging works in both service and console mode.
//
// Parameters:
//   - path: Log file path, created along with its directory if needed.
//
// Returns:
//   - *os.File: The open log file the caller must close, nil for stdout.
//   - error: Non-nil if the file cannot be opened.
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	logger = log.New(f, "", log.LstdFlags)
	return f, nil
}
