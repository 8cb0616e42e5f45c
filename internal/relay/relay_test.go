package relay

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func variantString(t *testing.T, m map[string]dbus.Variant, key string) string {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Fatalf("key %q missing from reply", key)
	}
	s, ok := v.Value().(string)
	if !ok {
		t.Fatalf("key %q is not a string variant: %v", key, v)
	}
	return s
}

func TestGetActiveWindowSentinel(t *testing.T) {
	r := New()

	m, derr := r.GetActiveWindow()
	if derr != nil {
		t.Fatalf("GetActiveWindow() error = %v", derr)
	}

	for _, key := range []string{"caption", "resource_class", "resource_name"} {
		if got := variantString(t, m, key); got != NoData {
			t.Errorf("%s = %q, want %q", key, got, NoData)
		}
	}
}

func TestNotifyThenGet(t *testing.T) {
	r := New()

	if derr := r.NotifyActiveWindow("Firefox", "firefox", "Firefox"); derr != nil {
		t.Fatalf("NotifyActiveWindow() error = %v", derr)
	}

	m, derr := r.GetActiveWindow()
	if derr != nil {
		t.Fatalf("GetActiveWindow() error = %v", derr)
	}
	if got := variantString(t, m, "caption"); got != "Firefox" {
		t.Errorf("caption = %q, want %q", got, "Firefox")
	}
	if got := variantString(t, m, "resource_class"); got != "firefox" {
		t.Errorf("resource_class = %q, want %q", got, "firefox")
	}
	if got := variantString(t, m, "resource_name"); got != "Firefox" {
		t.Errorf("resource_name = %q, want %q", got, "Firefox")
	}
}

func TestLastWriteWins(t *testing.T) {
	r := New()

	notifications := []WindowState{
		{"Firefox", "firefox", "Firefox"},
		{"Konsole - ~/src", "konsole", "konsole"},
		{"", "", ""}, // empty strings are stored as given, no validation
		{"Dolphin", "dolphin", "org.kde.dolphin"},
	}

	for _, n := range notifications {
		if derr := r.NotifyActiveWindow(n.Caption, n.ResourceClass, n.ResourceName); derr != nil {
			t.Fatalf("NotifyActiveWindow(%+v) error = %v", n, derr)
		}
		// Interleaved reads always see the most recent write.
		if got := r.State(); got != n {
			t.Errorf("State() = %+v, want %+v", got, n)
		}
	}

	last := notifications[len(notifications)-1]
	m, derr := r.GetActiveWindow()
	if derr != nil {
		t.Fatalf("GetActiveWindow() error = %v", derr)
	}
	if got := variantString(t, m, "caption"); got != last.Caption {
		t.Errorf("caption = %q, want %q", got, last.Caption)
	}
}

func TestQueriesHaveNoSideEffects(t *testing.T) {
	r := New()
	r.NotifyActiveWindow("Firefox", "firefox", "Firefox")

	for i := 0; i < 3; i++ {
		if _, derr := r.GetActiveWindow(); derr != nil {
			t.Fatalf("GetActiveWindow() error = %v", derr)
		}
	}

	want := WindowState{"Firefox", "firefox", "Firefox"}
	if got := r.State(); got != want {
		t.Errorf("State() after repeated queries = %+v, want %+v", got, want)
	}
}

func TestWindowStateFromMap(t *testing.T) {
	m := map[string]dbus.Variant{
		"caption":        dbus.MakeVariant("Firefox"),
		"resource_class": dbus.MakeVariant("firefox"),
	}

	st := windowStateFromMap(m)
	if st.Caption != "Firefox" || st.ResourceClass != "firefox" {
		t.Errorf("windowStateFromMap() = %+v", st)
	}
	if st.ResourceName != "" {
		t.Errorf("missing key should yield empty string, got %q", st.ResourceName)
	}
}
