//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/debug"
	"golang.org/x/sys/windows/svc/mgr"
)

const (
	SERVICE_NAME        = "hotkeyd"
	SERVICE_DISPLAYNAME = "Hotkey Daemon"
	SERVICE_DESCRIPTION = "Runs configured actions on global hotkeys"
)

// service struct implementing svc.Handler
type hotkeydService struct {
	config string
	log    string
}

// Execute is called by the Windows service manager. Services cannot register
// hotkeys themselves (error 1459, no interactive window station), so the
// service launches an agent instance of this binary in the active user
// session and relays its log lines through a named pipe.
func (m *hotkeydService) Execute(args []string, r <-chan svc.ChangeRequest, s chan<- svc.Status) (bool, uint32) {
	const cmdsAccepted = svc.AcceptStop | svc.AcceptShutdown

	s <- svc.Status{State: svc.StartPending}

	logger.Printf("Execute with config=%s, log=%s", m.config, m.log)

	pipePath, stopPipe, err := startIPCServer(func(msg string) {
		logger.Printf("agent: %s", msg)
	})
	if err != nil {
		logger.Printf("Agent log relay disabled: %v", err)
		pipePath = ""
		stopPipe = func() {}
	}

	pi, err := launchAgentInActiveSession(m.config, m.log, pipePath)
	if err != nil {
		logger.Printf("Failed to launch agent: %v", err)
		stopPipe()
		s <- svc.Status{State: svc.Stopped}
		return true, 1
	}
	logger.Printf("Agent started in user session (pid %d)", pi.ProcessId)

	s <- svc.Status{State: svc.Running, Accepts: cmdsAccepted}

loop:
	for c := range r {
		switch c.Cmd {
		case svc.Interrogate:
			s <- c.CurrentStatus
		case svc.Stop, svc.Shutdown:
			logger.Println("Service received stop signal")
			break loop
		default:
		}
	}

	s <- svc.Status{State: svc.StopPending}

	// The agent has no console to signal, terminate it outright.
	if err := windows.TerminateProcess(pi.Process, 0); err != nil {
		logger.Printf("Failed to terminate agent: %v", err)
	}
	windows.CloseHandle(pi.Process) //nolint:errcheck
	windows.CloseHandle(pi.Thread)  //nolint:errcheck
	stopPipe()

	s <- svc.Status{State: svc.Stopped}
	logger.Println("Service stopped")
	return false, 0
}

// maybeRunService runs the service handler when launched by the service
// manager and reports whether it did.
func maybeRunService(configPath, logPath string) bool {
	isService, err := svc.IsWindowsService()
	if err != nil || !isService {
		return false
	}
	runService(configPath, logPath)
	return true
}

// installService installs the current executable as a Windows service
// and sets the config/log arguments into the service configuration.
func installService(cfg, logf string) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot get executable path: %w", err)
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("cannot get absolute path: %w", err)
	}

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("cannot connect to service manager: %w", err)
	}
	defer m.Disconnect()

	// Check if service already exists
	if s, err := m.OpenService(SERVICE_NAME); err == nil {
		s.Close()
		return fmt.Errorf("service %s already exists", SERVICE_NAME)
	}

	config := mgr.Config{
		DisplayName: SERVICE_DISPLAYNAME,
		Description: SERVICE_DESCRIPTION,
		StartType:   mgr.StartAutomatic,
	}

	// args here become part of the service command line when started:
	// hotkeyd.exe --file cfg --log logf
	s, err := m.CreateService(SERVICE_NAME, exePath, config,
		"--file", cfg,
		"--log", logf,
	)
	if err != nil {
		return fmt.Errorf("cannot create service: %w", err)
	}
	defer s.Close()
	return nil
}

// removeService removes the Windows service.
func removeService() error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("cannot connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(SERVICE_NAME)
	if err != nil {
		return fmt.Errorf("service %s is not installed: %w", SERVICE_NAME, err)
	}
	defer s.Close()

	if err := s.Delete(); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// runService starts the Windows service handler.
func runService(configPath, logPath string) {
	elog := debug.New(SERVICE_NAME)
	elog.Info(1, "Starting service")

	ms := &hotkeydService{
		config: configPath,
		log:    logPath,
	}

	if err := svc.Run(SERVICE_NAME, ms); err != nil {
		elog.Error(1, fmt.Sprintf("svc.Run failed: %v", err))
		logger.Printf("svc.Run failed: %v", err)
		return
	}
	elog.Info(1, "Service stopped")
	logger.Println("Service stopped normally")
}
