package environ

import (
	"log"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// SessionType classifies the graphical session reported by the host.
type SessionType string

const (
	SessionX11     SessionType = "x11"
	SessionWayland SessionType = "wayland"
	SessionUnknown SessionType = "unknown"
)

// Snapshot is a point-in-time classification of the desktop session.
// It is produced fresh on every probe and never retained between calls.
type Snapshot struct {
	DistroName  string
	DistroVer   string
	SessionType SessionType
	DesktopEnv  string
}

// Prober produces environment snapshots.
type Prober interface {
	Probe() Snapshot
}

// HostProber reads live host state: os-release files, XDG session
// variables and the running process list. It never mutates anything.
type HostProber struct {
	processNames func() []string
}

// NewHostProber creates a prober backed by the real host.
func NewHostProber() *HostProber {
	return &HostProber{processNames: runningProcessNames}
}

// Probe samples the host and returns a normalized snapshot.
func (p *HostProber) Probe() Snapshot {
	name, ver := detectDistro()
	snap := Snapshot{
		DistroName:  name,
		DistroVer:   ver,
		SessionType: detectSessionType(),
	}

	raw := os.Getenv("XDG_SESSION_DESKTOP")
	if raw == "" {
		raw = os.Getenv("XDG_CURRENT_DESKTOP")
	}
	if raw == "" {
		log.Println("environ: desktop environment not found in XDG_SESSION_DESKTOP or XDG_CURRENT_DESKTOP")
	}

	guess := NormalizeDesktop(raw)
	snap.DesktopEnv = corroborateDesktop(guess, p.processNames())
	return snap
}

// runningProcessNames lists the names of all visible processes. An empty
// slice means the process check is bypassed.
func runningProcessNames() []string {
	procs, err := process.Processes()
	if err != nil {
		log.Printf("environ: process list unavailable, desktop doublecheck bypassed: %v", err)
		return nil
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names
}
