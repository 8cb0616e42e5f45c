package environ

import (
	"log"
	"os"
	"strings"

	"github.com/jezek/xgb"
)

// detectSessionType classifies the session from XDG_SESSION_TYPE. When the
// variable is absent (it really should be set in a graphical session) a
// wayland socket or a successful X server handshake is accepted instead.
func detectSessionType() SessionType {
	raw := strings.ToLower(os.Getenv("XDG_SESSION_TYPE"))
	switch raw {
	case "x11", "xorg":
		return SessionX11
	case "wayland":
		return SessionWayland
	case "":
		log.Println("environ: XDG_SESSION_TYPE is not set, falling back to display probes")
	default:
		log.Printf("environ: unknown session type %q", raw)
		return SessionUnknown
	}

	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return SessionWayland
	}
	if os.Getenv("DISPLAY") != "" {
		if conn, err := xgb.NewConn(); err == nil {
			conn.Close()
			return SessionX11
		}
	}
	return SessionUnknown
}
