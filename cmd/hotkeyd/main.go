//go:build windows

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
)

// https://goreleaser.com/cookbooks/using-main.version/
var (
	name    string
	version string
	date    string
	commit  string
)

// flags
type Config struct {
	help    bool
	version bool
	path    string
	logPath string
}

// default config file path containing the hotkey bindings
const DEFAULT_CONFIG_PATH = "%USERPROFILE%\\.config\\hotkeyd.toml"

// takes precedence over DEFAULT_CONFIG_PATH above
const HOTKEYD_CONFIG_HOME_VAR = "HOTKEYD_CONFIG_HOME"

func initFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.path, "f", DEFAULT_CONFIG_PATH, "")
	flag.StringVar(&cfg.path, "file", DEFAULT_CONFIG_PATH, "specify config file path")
	flag.StringVar(&cfg.logPath, "l", "", "")
	flag.StringVar(&cfg.logPath, "log", "", "log to file instead of stdout")
	flag.BoolVar(&cfg.help, "?", false, "")
	flag.BoolVar(&cfg.help, "help", false, "displays this help message")
	flag.BoolVar(&cfg.version, "v", false, "")
	flag.BoolVar(&cfg.version, "version", false, "print version and exit")
	return cfg
}

// main starts the hotkey daemon: console mode by default, service handler
// when launched by the service manager, install/remove via subcommands.
func main() {
	cfg := initFlags()
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: "+name+` [OPTIONS] [COMMAND]

Starts a hotkey daemon that binds hotkeys such as CTRL+A to an action. The bindings
are defined in a TOML config file (hot-reload supported).

The processes executed by the daemon will inherit the current environment and update
USER and SYSTEM environment variables from the Windows registry.

COMMANDS:

  install
        install as a Windows service (launches an agent in the user session)
  remove
        remove the Windows service
  version
        print version and exit

OPTIONS:

  -f, --file path
        specify config file path (default '%USERPROFILE%\.config\hotkeyd.toml')
  -l, --log path
        log to file instead of stdout
  -?, --help
        display this help message
  -v, --version
        print version and exit`)
	}
	flag.Parse()

	if flag.Arg(0) == "version" || cfg.version {
		fmt.Printf("%s %s, built on %s (commit: %s)\n", name, version, date, commit)
		return
	}

	if cfg.help {
		flag.Usage()
		return
	}

	logFile, err := setupLogging(cfg.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close() //nolint:errcheck
	}

	configPath := os.Getenv(HOTKEYD_CONFIG_HOME_VAR)
	if configPath == "" {
		configPath = expandVariable(cfg.path)
	}

	switch flag.Arg(0) {
	case "":
		// fall through to console or service mode below
	case "install":
		if err := installService(configPath, cfg.logPath); err != nil {
			logger.Fatalf("Install failed: %v", err)
		}
		logger.Printf("Service %s installed", SERVICE_NAME)
		return
	case "remove":
		if err := removeService(); err != nil {
			logger.Fatalf("Remove failed: %v", err)
		}
		logger.Printf("Service %s removed", SERVICE_NAME)
		return
	default:
		flag.Usage()
		os.Exit(1)
	}

	if maybeRunService(configPath, cfg.logPath) {
		return
	}

	// Console or agent mode. An agent relays its log lines to the service
	// over the pipe named in the environment.
	ipcInitFromEnv()
	defer ipcClose()

	logger.Println("Starting hotkey daemon...")

	d, err := newDaemon(configPath)
	if err != nil {
		logger.Fatalf("Failed to initialize hotkeys: %v", err)
	}
	defer d.Close()

	if err := d.Reload(); err != nil {
		logger.Fatalf("Failed to load config %s: %v", configPath, err)
	}

	watcher, err := startConfigWatcher(configPath, d.RequestReload)
	if err != nil {
		logger.Printf("Config watcher disabled: %v", err)
	}
	if watcher != nil {
		defer watcher.Close() //nolint:errcheck
	}

	// Handle graceful shutdown on Ctrl+C
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case <-interrupt:
			logger.Println("Exiting...")
			return
		case <-d.reload:
			if err := d.Reload(); err != nil {
				logger.Printf("Reload failed, keeping previous bindings: %v", err)
			}
		}
	}
}
