package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Gate configuration
	Gate GateConfig

	// Daemon configuration
	Daemon DaemonConfig

	// KWin companion configuration
	KWin KWinConfig
}

// GateConfig holds the environment gate retry schedule and the required
// session/desktop combination
type GateConfig struct {
	InitialDelay time.Duration // First retry delay
	StepDelay    time.Duration // Added to the delay after each failed attempt
	MaxDelay     time.Duration // Ceiling; exceeding it is terminal
	SessionType  string        // Required session type ("wayland")
	DesktopEnvs  []string      // Accepted normalized desktop keys
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// KWinConfig holds the companion KWin script glue configuration
type KWinConfig struct {
	ScriptName      string // Name the companion script is loaded under in KWin
	KickstartScript string // Helper launched once on entering service
	QueryTool       string // Explicit qdbus binary; empty means auto-resolve
}

// Default returns a Config with sensible default values
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Gate: GateConfig{
			InitialDelay: 2 * time.Second,
			StepDelay:    2 * time.Second,
			MaxDelay:     8 * time.Second,
			SessionType:  "wayland",
			DesktopEnvs:  []string{"kde", "plasma"},
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/toshyd-%d.pid", os.Getuid()),
		},
		KWin: KWinConfig{
			ScriptName:      "toshy-dbus-notifyactivewindow",
			KickstartScript: filepath.Join(home, ".config", "toshy", "scripts", "toshy-kwin-script-kickstart.sh"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gate.InitialDelay <= 0 {
		return fmt.Errorf("gate initial delay must be positive, got %v", c.Gate.InitialDelay)
	}
	if c.Gate.StepDelay <= 0 {
		return fmt.Errorf("gate step delay must be positive, got %v", c.Gate.StepDelay)
	}
	if c.Gate.MaxDelay < c.Gate.InitialDelay {
		return fmt.Errorf("gate max delay (%v) cannot be less than initial delay (%v)",
			c.Gate.MaxDelay, c.Gate.InitialDelay)
	}
	if c.Gate.SessionType != "wayland" && c.Gate.SessionType != "x11" {
		return fmt.Errorf("gate session type must be wayland or x11, got %q", c.Gate.SessionType)
	}
	if len(c.Gate.DesktopEnvs) == 0 {
		return fmt.Errorf("gate desktop environment list cannot be empty")
	}
	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}
	if c.KWin.ScriptName == "" {
		return fmt.Errorf("KWin script name cannot be empty")
	}
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Gate:
    Initial Delay: %v
    Step Delay: %v
    Max Delay: %v
    Session Type: %s
    Desktop Envs: %s
  Daemon:
    PID File: %s
  KWin:
    Script Name: %s
    Kickstart Script: %s
    Query Tool: %s`,
		c.Gate.InitialDelay,
		c.Gate.StepDelay,
		c.Gate.MaxDelay,
		c.Gate.SessionType,
		strings.Join(c.Gate.DesktopEnvs, ", "),
		c.Daemon.PIDFile,
		c.KWin.ScriptName,
		c.KWin.KickstartScript,
		c.KWin.QueryTool,
	)
}
