//go:build windows

package main

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/windows"
)

const (
	pipeBufferSize = 16 * 1024
)

// startIPCServer creates a best-effort named pipe server for receiving
// messages from the agent. The pipe name is randomized so concurrent service
// instances never collide.
//
// Parameters:
//   - onMessage: Called from the pipe goroutine with each received message,
//     trailing newline stripped.
//
// Returns:
//   - string: The full pipe path (e.g. \\.\pipe\hotkeyd-123) to pass to the agent.
//   - func(): A stop function that closes the pipe.
//   - error: Non-nil if the pipe cannot be created.
func startIPCServer(onMessage func(string)) (string, func(), error) {
	name := fmt.Sprintf("hotkeyd-%d-%d", time.Now().UnixNano(), rand.Uint32())
	pipePath := `\\.\pipe\` + name

	p, err := syscall.UTF16PtrFromString(pipePath)
	if err != nil {
		return "", nil, err
	}

	h, err := windows.CreateNamedPipe(
		p,
		windows.PIPE_ACCESS_INBOUND,
		windows.PIPE_TYPE_MESSAGE|windows.PIPE_READMODE_MESSAGE|windows.PIPE_WAIT,
		1,
		pipeBufferSize,
		pipeBufferSize,
		0,
		nil,
	)
	if err != nil {
		return "", nil, err
	}

	// Closed by whichever side finishes first, the relay goroutine or the
	// caller's stop.
	var closeOnce sync.Once
	stop := func() {
		closeOnce.Do(func() {
			_ = windows.CloseHandle(h)
		})
	}

	go serveAgentPipe(h, stop, onMessage)

	return pipePath, stop, nil
}

// serveAgentPipe waits for the single agent connection and relays its
// messages until the pipe breaks or is closed.
func serveAgentPipe(h windows.Handle, stop func(), onMessage func(string)) {
	defer stop()

	if err := windows.ConnectNamedPipe(h, nil); err != nil {
		// The client may connect between CreateNamedPipe and ConnectNamedPipe.
		if err != windows.ERROR_PIPE_CONNECTED {
			logger.Printf("ipc: connect: %v", err)
			return
		}
	}

	buf := make([]byte, pipeBufferSize)
	for {
		var n uint32
		if err := windows.ReadFile(h, buf, &n, nil); err != nil {
			return
		}
		if n == 0 {
			continue
		}
		// Message-mode pipe: one read is one ipcSendf message.
		onMessage(strings.TrimRight(string(buf[:n]), "\r\n"))
	}
}
