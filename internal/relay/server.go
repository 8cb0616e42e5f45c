package relay

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/pkg/errors"
)

// Server owns the session-bus connection the relay is exported on.
type Server struct {
	conn  *dbus.Conn
	relay *Relay
}

// NewServer wraps a relay for export on the session bus.
func NewServer(r *Relay) *Server {
	return &Server{relay: r}
}

// Start connects to the session bus, exports the relay at ObjectPath and
// claims BusName. Registration is a one-time step: any failure here is
// fatal to the caller, there is no retry.
func (s *Server) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return errors.Wrap(err, "connect to session bus")
	}

	if err := conn.Export(s.relay, ObjectPath, Interface); err != nil {
		conn.Close()
		return errors.Wrap(err, "export relay object")
	}
	if err := conn.Export(introspect.NewIntrospectable(introspectNode()), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return errors.Wrap(err, "export introspection")
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return errors.Wrapf(err, "request bus name %s", BusName)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return errors.Errorf("bus name %s is already owned", BusName)
	}

	s.conn = conn
	return nil
}

// Close releases the bus name and drops the connection. Safe to call when
// Start never succeeded.
func (s *Server) Close() {
	if s.conn == nil {
		return
	}
	_, _ = s.conn.ReleaseName(BusName)
	_ = s.conn.Close()
	s.conn = nil
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: ObjectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: Interface,
				Methods: []introspect.Method{
					{
						Name: "NotifyActiveWindow",
						Args: []introspect.Arg{
							{Name: "caption", Type: "s", Direction: "in"},
							{Name: "resource_class", Type: "s", Direction: "in"},
							{Name: "resource_name", Type: "s", Direction: "in"},
						},
					},
					{
						Name: "GetActiveWindow",
						Args: []introspect.Arg{
							{Name: "window", Type: "a{sv}", Direction: "out"},
						},
					},
				},
			},
		},
	}
}
