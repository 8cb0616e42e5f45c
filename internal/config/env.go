package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Gate configuration
	if v := os.Getenv("TOSHYD_GATE_INITIAL_DELAY"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Gate.InitialDelay = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("TOSHYD_GATE_STEP_DELAY"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Gate.StepDelay = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("TOSHYD_GATE_MAX_DELAY"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Gate.MaxDelay = time.Duration(seconds) * time.Second
		}
	}

	// Daemon configuration
	if v := os.Getenv("TOSHYD_PID_FILE"); v != "" {
		cfg.Daemon.PIDFile = v
	}

	// KWin configuration
	if v := os.Getenv("TOSHYD_KWIN_SCRIPT_NAME"); v != "" {
		cfg.KWin.ScriptName = v
	}
	if v := os.Getenv("TOSHYD_KICKSTART_SCRIPT"); v != "" {
		cfg.KWin.KickstartScript = v
	}
	if v := os.Getenv("TOSHYD_QDBUS_CMD"); v != "" {
		cfg.KWin.QueryTool = v
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
