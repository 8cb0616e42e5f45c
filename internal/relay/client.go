package relay

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

// QueryActiveWindow asks a running relay for its current window state over
// the session bus. Used by the status subcommand.
func QueryActiveWindow(ctx context.Context) (WindowState, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return WindowState{}, errors.Wrap(err, "connect to session bus")
	}
	defer conn.Close()

	obj := conn.Object(BusName, ObjectPath)
	var result map[string]dbus.Variant
	if err := obj.CallWithContext(ctx, Interface+".GetActiveWindow", 0).Store(&result); err != nil {
		return WindowState{}, errors.Wrap(err, "call GetActiveWindow")
	}

	return windowStateFromMap(result), nil
}

func windowStateFromMap(m map[string]dbus.Variant) WindowState {
	st := WindowState{}
	if v, ok := m["caption"].Value().(string); ok {
		st.Caption = v
	}
	if v, ok := m["resource_class"].Value().(string); ok {
		st.ResourceClass = v
	}
	if v, ok := m["resource_name"].Value().(string); ok {
		st.ResourceName = v
	}
	return st
}
