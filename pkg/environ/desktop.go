package environ

import (
	"log"
	"strings"
)

// desktopNames maps raw session-manager-reported names to normalized short
// keys. Matching is a case-insensitive substring test in table order, so
// "ubuntu:GNOME" resolves to gnome before the Ubuntu entry is reached.
var desktopNames = []struct {
	pattern string
	key     string
}{
	{"Budgie", "budgie"},
	{"Cinnamon", "cinnamon"},
	{"Deepin", "deepin"},
	{"Enlightenment", "enlightenment"},
	{"GNOME", "gnome"},
	{"Hyprland", "hypr"},
	{"IceWM", "icewm"},
	{"KDE", "kde"},
	{"LXDE", "lxde"},
	{"LXQt", "lxqt"},
	{"MATE", "mate"},
	{"Pantheon", "pantheon"},
	{"Plasma", "kde"},
	{"SwayWM", "sway"},
	{"Ubuntu", "gnome"}, // "Ubuntu" in XDG_CURRENT_DESKTOP, but the DE is GNOME
	{"Unity", "unity"},
	{"Xfce", "xfce"},
}

// NormalizeDesktop maps a raw desktop environment name to its normalized
// short key. Unrecognized names pass through unchanged with a diagnostic;
// the gate simply will not match them.
func NormalizeDesktop(raw string) string {
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, entry := range desktopNames {
		if strings.Contains(lower, strings.ToLower(entry.pattern)) {
			return entry.key
		}
	}
	log.Printf("environ: desktop environment %q not in known names, passing through", raw)
	return raw
}

// shellProcesses maps well-known desktop-shell process names to the
// desktop environment they belong to.
var shellProcesses = []struct {
	process string
	desktop string
}{
	{"plasmashell", "kde"},
	{"kwin_wayland", "kde"},
	{"kwin_ft", "kde"},
	{"kwin_x11", "kde"},
	{"gnome-shell", "gnome"},
	{"sway", "sway"},
}

// corroborateDesktop cross-checks the declared desktop environment against
// the running process list. The first recognized shell process wins; if it
// disagrees with the guess, the guess is overridden with a diagnostic.
// This is best-effort: XDG variables are sometimes wrong or absent on some
// distributions.
func corroborateDesktop(guess string, procNames []string) string {
	for _, entry := range shellProcesses {
		for _, name := range procNames {
			if name != entry.process {
				continue
			}
			if guess != entry.desktop {
				log.Printf("environ: desktop may have been misidentified as %q, %s detected", guess, entry.process)
			}
			return entry.desktop
		}
	}
	return guess
}
