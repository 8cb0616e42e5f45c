package relay

import (
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
)

// D-Bus identity of the relay. The cooperating KWin script calls
// NotifyActiveWindow on this exact name and path, so none of these may
// change.
const (
	BusName    = "org.toshy.Toshy"
	ObjectPath = "/org/toshy/Toshy"
	Interface  = "org.toshy.Toshy"
)

// NoData is the sentinel value served before the first notification.
const NoData = "NO_DATA"

// WindowState is the identity of the most recently focused window.
type WindowState struct {
	Caption       string
	ResourceClass string
	ResourceName  string
}

// Relay holds the last active-window identity pushed by the KWin script
// and serves it back on demand. State is memory-only, last-write-wins,
// and discarded on exit.
type Relay struct {
	mu    sync.RWMutex
	state WindowState
}

// New returns a relay serving the sentinel triple until the first notify.
func New() *Relay {
	return &Relay{state: WindowState{
		Caption:       NoData,
		ResourceClass: NoData,
		ResourceName:  NoData,
	}}
}

// NotifyActiveWindow overwrites the stored window state. It never fails;
// there is nothing to validate, the three values are stored as given.
func (r *Relay) NotifyActiveWindow(caption, resourceClass, resourceName string) *dbus.Error {
	r.mu.Lock()
	r.state = WindowState{
		Caption:       caption,
		ResourceClass: resourceClass,
		ResourceName:  resourceName,
	}
	r.mu.Unlock()

	log.Printf("NotifyActiveWindow: caption=%q resource_class=%q resource_name=%q",
		caption, resourceClass, resourceName)
	return nil
}

// GetActiveWindow returns the current window state as an a{sv} mapping.
func (r *Relay) GetActiveWindow() (map[string]dbus.Variant, *dbus.Error) {
	st := r.State()
	return map[string]dbus.Variant{
		"caption":        dbus.MakeVariant(st.Caption),
		"resource_class": dbus.MakeVariant(st.ResourceClass),
		"resource_name":  dbus.MakeVariant(st.ResourceName),
	}, nil
}

// State returns a copy of the current window state.
func (r *Relay) State() WindowState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
