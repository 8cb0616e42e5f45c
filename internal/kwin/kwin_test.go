package kwin

import (
	"errors"
	"os"
	"testing"
)

func TestResolveQueryToolOverride(t *testing.T) {
	tool, err := ResolveQueryTool("sh")
	if err != nil {
		t.Fatalf("ResolveQueryTool(sh) error = %v", err)
	}
	if tool.Command() != "sh" {
		t.Errorf("Command() = %q, want %q", tool.Command(), "sh")
	}
}

func TestResolveQueryToolMissingOverride(t *testing.T) {
	_, err := ResolveQueryTool("definitely-not-a-real-command-xyz")
	if !errors.Is(err, ErrNoQueryTool) {
		t.Fatalf("ResolveQueryTool() error = %v, want ErrNoQueryTool", err)
	}
}

func TestResolveQueryToolDefault(t *testing.T) {
	tool, err := ResolveQueryTool("")
	if err != nil {
		t.Logf("no qdbus flavor on this host: %v", err)
		return
	}
	t.Logf("resolved query tool: %s", tool.Command())
	if tool.Command() != "qdbus-qt5" && tool.Command() != "qdbus" {
		t.Errorf("Command() = %q, want qdbus-qt5 or qdbus", tool.Command())
	}
}

func TestParseBoolReply(t *testing.T) {
	tests := []struct {
		out  string
		want bool
	}{
		{"true\n", true},
		{"true", true},
		{"false\n", false},
		{"", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := parseBoolReply(tt.out); got != tt.want {
			t.Errorf("parseBoolReply(%q) = %v, want %v", tt.out, got, tt.want)
		}
	}
}

func TestKickstartMissingScript(t *testing.T) {
	if err := Kickstart("/nonexistent/toshy/kickstart.sh"); err == nil {
		t.Error("Kickstart() with missing script should return an error")
	}
}

func TestKickstartLaunches(t *testing.T) {
	script := "/bin/true"
	if _, err := os.Stat(script); err != nil {
		t.Skipf("%s not present on this host", script)
	}
	if err := Kickstart(script); err != nil {
		t.Errorf("Kickstart(%s) error = %v", script, err)
	}
}
