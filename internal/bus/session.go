package bus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/errors"
)

// Session is the godbus-backed Client used against the real session bus.
// Calls are synchronous and block until the remote peer replies.
type Session struct {
	conn *dbus.Conn
}

var _ Client = (*Session)(nil)

// ConnectSession opens a private connection to the D-Bus session bus.
func ConnectSession() (*Session, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBusUnavailable, err)
	}
	return &Session{conn: conn}, nil
}

// Close tears down the bus connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// ListNames enumerates every name currently known to the bus.
func (s *Session) ListNames() ([]string, error) {
	var names []string
	call := s.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0)
	if call.Err != nil {
		return nil, fmt.Errorf("list names: %w", call.Err)
	}
	if err := call.Store(&names); err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	return names, nil
}

// NameOwner resolves a well-known name to its current unique owner id.
func (s *Session) NameOwner(name string) (string, error) {
	var owner string
	call := s.conn.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name)
	if call.Err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrOwnerUnknown, name, call.Err)
	}
	if err := call.Store(&owner); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrOwnerUnknown, name, err)
	}
	return owner, nil
}

// GetProperty performs a synchronous Get on the player object of dest.
func (s *Session) GetProperty(dest, iface, prop string) (dbus.Variant, error) {
	obj := s.conn.Object(dest, ObjectPath)
	call := obj.Call(PropertiesInterface+".Get", 0, iface, prop)
	if call.Err != nil {
		return dbus.Variant{}, errors.NewRemoteError("Get "+prop, call.Err).WithPlayer(dest)
	}
	var v dbus.Variant
	if err := call.Store(&v); err != nil {
		return dbus.Variant{}, errors.NewRemoteError("Get "+prop, err).WithPlayer(dest)
	}
	return v, nil
}

// Call invokes a zero-argument method on the player control interface of dest.
func (s *Session) Call(dest, method string) error {
	obj := s.conn.Object(dest, ObjectPath)
	if call := obj.Call(PlayerInterface+"."+method, 0); call.Err != nil {
		return errors.NewRemoteError(method, call.Err).WithPlayer(dest)
	}
	return nil
}

// Subscribe installs a PropertiesChanged match for signals sent by owner.
func (s *Session) Subscribe(owner string) error {
	return s.addMatch(ownerPropertiesRule(owner))
}

// Unsubscribe removes the PropertiesChanged match for owner.
func (s *Session) Unsubscribe(owner string) error {
	call := s.conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, ownerPropertiesRule(owner))
	if call.Err != nil {
		return fmt.Errorf("remove match: %w", call.Err)
	}
	return nil
}

// Watch registers ch for signal delivery and installs the bus-wide matches
// the dispatch loop needs: NameOwnerChanged for topology, and
// PropertiesChanged under the MPRIS path namespace so playback changes on
// any player reach the loop, not only the subscribed primary's.
func (s *Session) Watch(ch chan<- *dbus.Signal) error {
	rules := []string{
		"type='signal',interface='org.freedesktop.DBus',member='NameOwnerChanged'",
		"type='signal',interface='" + PropertiesInterface + "',member='PropertiesChanged',path_namespace='" + ObjectPath + "'",
	}
	for _, rule := range rules {
		if err := s.addMatch(rule); err != nil {
			return err
		}
	}
	s.conn.Signal(ch)
	return nil
}

// Unwatch stops signal delivery to ch.
func (s *Session) Unwatch(ch chan<- *dbus.Signal) {
	s.conn.RemoveSignal(ch)
}

func (s *Session) addMatch(rule string) error {
	call := s.conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule)
	if call.Err != nil {
		return fmt.Errorf("add match: %w", call.Err)
	}
	return nil
}

func ownerPropertiesRule(owner string) string {
	return "type='signal',interface='" + PropertiesInterface +
		"',member='PropertiesChanged',sender='" + owner +
		"',path='" + ObjectPath + "'"
}
