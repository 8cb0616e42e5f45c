package daemon

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPIDRoundTrip(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "toshyd.pid"))

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error = %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}

	if err := d.RemovePID(); err != nil {
		t.Fatalf("RemovePID() error = %v", err)
	}
	pid, err = d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() after remove error = %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() after remove = %d, want 0", pid)
	}
}

func TestReadPIDMissingFile(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing.pid"))

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error = %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() = %d, want 0", pid)
	}
}

func TestIsRunningOwnProcess(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "toshyd.pid"))

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error = %v", err)
	}
	defer d.RemovePID()

	running, pid, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error = %v", err)
	}
	if !running {
		t.Error("IsRunning() = false for our own PID")
	}
	if pid != os.Getpid() {
		t.Errorf("IsRunning() pid = %d, want %d", pid, os.Getpid())
	}
}

func TestReadPIDTrimsWhitespace(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "toshyd.pid")
	if err := os.WriteFile(pidFile, []byte("1234\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(pidFile)
	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error = %v", err)
	}
	if pid != 1234 {
		t.Errorf("ReadPID() = %d, want 1234", pid)
	}
}

func TestStopTerminatesProcess(t *testing.T) {
	sleepBin, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available on this host")
	}

	cmd := exec.Command(sleepBin, "60")
	if err := cmd.Start(); err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	defer cmd.Process.Kill()

	pidFile := filepath.Join(t.TempDir(), "toshyd.pid")
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(pidFile)
	if err := d.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("PID file was not removed by Stop()")
	}
	// SIGTERM should have ended the child; Wait reports the signal.
	if err := cmd.Wait(); err == nil {
		t.Error("sleep exited normally, expected SIGTERM")
	}
}

func TestIsRunningStalePID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "stale.pid")
	// PID values this large are above the default kernel pid_max.
	if err := os.WriteFile(pidFile, []byte("4999999"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(pidFile)
	running, _, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error = %v", err)
	}
	if running {
		t.Error("IsRunning() = true for a stale PID")
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("stale PID file was not cleaned up")
	}
}
