package environ

import (
	"os"
	"strings"
)

// distroNames maps distributions whose os-release names need simplifying.
var distroNames = []struct {
	pattern string
	key     string
}{
	{"elementary", "eos"},
	{"Fedora", "fedora"},
	{"Manjaro", "manjaro"},
	{"KDE Neon", "neon"},
	{"Pop!_OS", "popos"},
	{"Ubuntu", "ubuntu"},
}

// detectDistro reads the distribution identifier and version from the
// standard release files. Missing files yield empty strings, not errors.
func detectDistro() (name, version string) {
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		name, version = parseOSRelease(string(data))
	} else if data, err := os.ReadFile("/etc/lsb-release"); err == nil {
		name, version = parseLSBRelease(string(data))
	} else if _, err := os.Stat("/etc/arch-release"); err == nil {
		name = "arch"
	}
	return normalizeDistro(name), version
}

func normalizeDistro(raw string) string {
	lower := strings.ToLower(raw)
	for _, entry := range distroNames {
		if strings.Contains(lower, strings.ToLower(entry.pattern)) {
			return entry.key
		}
	}
	return raw
}

func parseOSRelease(data string) (name, version string) {
	for _, line := range strings.Split(data, "\n") {
		switch {
		case strings.HasPrefix(line, "NAME="):
			if name == "" {
				name = unquote(strings.TrimPrefix(line, "NAME="))
			}
		case strings.HasPrefix(line, "PRETTY_NAME="):
			if name == "" {
				name = unquote(strings.TrimPrefix(line, "PRETTY_NAME="))
			}
		case strings.HasPrefix(line, "VERSION_ID="):
			version = unquote(strings.TrimPrefix(line, "VERSION_ID="))
		}
	}
	return name, version
}

func parseLSBRelease(data string) (name, version string) {
	for _, line := range strings.Split(data, "\n") {
		switch {
		case strings.HasPrefix(line, "DISTRIB_ID="):
			if name == "" {
				name = unquote(strings.TrimPrefix(line, "DISTRIB_ID="))
			}
		case strings.HasPrefix(line, "DISTRIB_DESCRIPTION="):
			if name == "" {
				name = unquote(strings.TrimPrefix(line, "DISTRIB_DESCRIPTION="))
			}
		case strings.HasPrefix(line, "DISTRIB_RELEASE="):
			version = unquote(strings.TrimPrefix(line, "DISTRIB_RELEASE="))
		}
	}
	return name, version
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
