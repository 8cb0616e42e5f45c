package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/toshy/toshyd/internal/config"
	"github.com/toshy/toshyd/internal/daemon"
	"github.com/toshy/toshyd/internal/gate"
	"github.com/toshy/toshyd/internal/kwin"
	"github.com/toshy/toshyd/internal/relay"
	"github.com/toshy/toshyd/pkg/environ"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runForeground()
	case "start":
		startDaemon()
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "version":
		fmt.Printf("toshyd version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`toshyd - KDE/KWin active-window D-Bus relay

Waits for a Wayland+KDE session, then serves org.toshy.Toshy on the
session bus, relaying active-window changes pushed by the Toshy KWin
script.

Usage:
  toshyd <command>

Commands:
  run                Run the relay in the foreground
  start              Start the relay as a background daemon
  stop               Stop the background daemon
  status             Show daemon status and the current window state
  version            Show version information
  help               Show this help message

Environment Variables:
  TOSHYD_GATE_INITIAL_DELAY   First gate retry delay in seconds
  TOSHYD_GATE_STEP_DELAY      Delay increment per failed attempt in seconds
  TOSHYD_GATE_MAX_DELAY       Retry ceiling in seconds
  TOSHYD_PID_FILE             PID file path
  TOSHYD_KWIN_SCRIPT_NAME     Name of the companion KWin script
  TOSHYD_KICKSTART_SCRIPT     Kickstart helper script path
  TOSHYD_QDBUS_CMD            qdbus binary to use for KWin queries

Version: %s
`, version)
}

// checkPreconditions rejects environments the relay must never run in,
// before any state is created.
func checkPreconditions() error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("this is only meant to run on Linux (GOOS=%s)", runtime.GOOS)
	}
	if os.Geteuid() == 0 {
		return fmt.Errorf("this app should not be run as root/superuser")
	}
	return nil
}

func runForeground() {
	if err := checkPreconditions(); err != nil {
		log.Fatalf("Precondition failed: %v", err)
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	runService(cfg, dm)
}

func startDaemon() {
	if err := checkPreconditions(); err != nil {
		log.Fatalf("Precondition failed: %v", err)
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if os.Getenv("TOSHYD_DAEMON_CHILD") != "1" {
		daemonize()
		return
	}

	logPath := fmt.Sprintf("/tmp/toshyd-%d.log", os.Getuid())
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	runService(cfg, dm)
}

// runService is the relay's whole life: gate on the environment, kick the
// KWin companion, serve until a signal arrives. Returns normally (exit 0)
// on gate exhaustion or a signal; registration failures are fatal.
func runService(cfg *config.Config, dm *daemon.Daemon) {
	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Println("Starting toshyd...")
	log.Printf("Configuration:\n%s", cfg.String())

	prober := environ.NewHostProber()
	rule := gate.Rule{
		SessionType: environ.SessionType(cfg.Gate.SessionType),
		DesktopEnvs: cfg.Gate.DesktopEnvs,
	}
	gateSvc := gate.New(prober, rule, cfg.Gate.InitialDelay, cfg.Gate.StepDelay, cfg.Gate.MaxDelay)

	snap, err := gateSvc.Wait(ctx)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrExhausted):
			log.Printf("Not a %s+%s environment. Exiting.",
				cfg.Gate.SessionType, strings.Join(cfg.Gate.DesktopEnvs, "/"))
		case errors.Is(err, context.Canceled):
			log.Println("Cancelled while waiting for environment. Exiting.")
		default:
			log.Printf("Environment gate failed: %v", err)
		}
		return
	}
	log.Printf("Environment: distro=%s %s session=%s desktop=%s",
		snap.DistroName, snap.DistroVer, snap.SessionType, snap.DesktopEnv)

	// Informational only: does not affect whether the relay starts.
	if tool, err := kwin.ResolveQueryTool(cfg.KWin.QueryTool); err != nil {
		log.Printf("Cannot check KWin script status: %v", err)
	} else if loaded, err := tool.IsScriptLoaded(cfg.KWin.ScriptName); err != nil {
		log.Printf("Error checking if KWin script is loaded: %v", err)
	} else {
		log.Printf("KWin script %q loaded: %v", cfg.KWin.ScriptName, loaded)
	}

	r := relay.New()
	srv := relay.NewServer(r)
	if err := srv.Start(); err != nil {
		log.Fatalf("Error creating D-Bus service: %v", err)
	}
	defer srv.Close()
	log.Printf("Serving %s at %s", relay.BusName, relay.ObjectPath)

	// Fire-and-forget; the relay serves regardless of the outcome.
	if err := kwin.Kickstart(cfg.KWin.KickstartScript); err != nil {
		log.Printf("Kickstart helper not launched: %v", err)
	}

	<-ctx.Done()
	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}

	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	st, err := relay.QueryActiveWindow(ctx)
	if err != nil {
		fmt.Printf("\nCould not query %s: %v\n", relay.BusName, err)
		return
	}
	fmt.Printf("\nActive Window:\n")
	fmt.Printf("  Caption:        %s\n", st.Caption)
	fmt.Printf("  Resource Class: %s\n", st.ResourceClass)
	fmt.Printf("  Resource Name:  %s\n", st.ResourceName)
}

// resolveExecutable turns a bare command name into a runnable path.
// os.StartProcess does no PATH lookup of its own.
func resolveExecutable(arg0 string) string {
	path, err := exec.LookPath(arg0)
	if err != nil {
		return arg0
	}
	return path
}

func daemonize() {
	env := os.Environ()
	env = append(env, "TOSHYD_DAEMON_CHILD=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}

	process, err := os.StartProcess(resolveExecutable(os.Args[0]), os.Args, procAttr)
	if err != nil {
		log.Fatalf("Failed to start daemon process: %v", err)
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", process.Pid)
	fmt.Printf("Logs: /tmp/toshyd-%d.log\n", os.Getuid())
}
