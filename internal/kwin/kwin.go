package kwin

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// KWin scripting endpoint queried through qdbus.
const (
	scriptingService   = "org.kde.KWin"
	scriptingPath      = "/Scripting"
	scriptingInterface = "org.kde.kwin.Scripting"
)

// ErrNoQueryTool means no qdbus flavor was found in PATH.
var ErrNoQueryTool = errors.New("no qdbus command found in PATH")

// QueryTool is the qdbus flavor to shell out to. It is resolved once at
// startup; there is no runtime re-branching between flavors.
type QueryTool struct {
	cmd string
}

// ResolveQueryTool picks the qdbus binary to use, preferring qdbus-qt5.
// A non-empty override skips the search and is required to exist.
func ResolveQueryTool(override string) (*QueryTool, error) {
	candidates := []string{"qdbus-qt5", "qdbus"}
	if override != "" {
		candidates = []string{override}
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return &QueryTool{cmd: c}, nil
		}
	}
	return nil, ErrNoQueryTool
}

// Command returns the resolved binary name.
func (t *QueryTool) Command() string {
	return t.cmd
}

// IsScriptLoaded asks KWin whether the named script is loaded. Purely
// informational; callers log the answer and move on either way.
func (t *QueryTool) IsScriptLoaded(name string) (bool, error) {
	out, err := exec.Command(t.cmd, scriptingService, scriptingPath,
		scriptingInterface+".isScriptLoaded", name).Output()
	if err != nil {
		return false, fmt.Errorf("query kwin script status: %w", err)
	}
	return parseBoolReply(string(out)), nil
}

func parseBoolReply(out string) bool {
	return strings.TrimSpace(out) == "true"
}

// Kickstart launches the helper script that (re)loads the KWin companion
// script, fire-and-forget. Output is discarded and the exit status is
// never consulted.
func Kickstart(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch kickstart script %s: %w", path, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
