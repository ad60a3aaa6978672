package bus

import "github.com/godbus/dbus/v5"

// Signal member names as delivered by godbus.
const (
	nameOwnerChangedName  = "org.freedesktop.DBus.NameOwnerChanged"
	propertiesChangedName = PropertiesInterface + ".PropertiesChanged"
)

// NameOwnerChange is a decoded NameOwnerChanged signal. An empty OldOwner
// means arrival, an empty NewOwner means departure, both present means the
// name moved to a new owner.
type NameOwnerChange struct {
	Name     string
	OldOwner string
	NewOwner string
}

// ParseNameOwnerChanged decodes a NameOwnerChanged signal.
// The second return value is false for any other signal or a malformed body.
func ParseNameOwnerChanged(sig *dbus.Signal) (NameOwnerChange, bool) {
	if sig == nil || sig.Name != nameOwnerChangedName || len(sig.Body) < 3 {
		return NameOwnerChange{}, false
	}

	name, ok1 := sig.Body[0].(string)
	oldOwner, ok2 := sig.Body[1].(string)
	newOwner, ok3 := sig.Body[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return NameOwnerChange{}, false
	}

	return NameOwnerChange{Name: name, OldOwner: oldOwner, NewOwner: newOwner}, true
}

// PropertyChange is a decoded PropertiesChanged signal.
type PropertyChange struct {
	// Sender is the unique owner id of the emitting player.
	Sender string
	// Interface the changed properties belong to.
	Interface string
	// Changed maps property names to their new values.
	Changed map[string]dbus.Variant
	// Invalidated lists properties whose values changed without being sent.
	Invalidated []string
}

// ParsePropertiesChanged decodes a PropertiesChanged signal.
// The second return value is false for any other signal or a malformed body.
func ParsePropertiesChanged(sig *dbus.Signal) (PropertyChange, bool) {
	if sig == nil || sig.Name != propertiesChangedName || len(sig.Body) < 3 {
		return PropertyChange{}, false
	}

	iface, ok1 := sig.Body[0].(string)
	changed, ok2 := sig.Body[1].(map[string]dbus.Variant)
	invalidated, ok3 := sig.Body[2].([]string)
	if !ok1 || !ok2 || !ok3 {
		return PropertyChange{}, false
	}

	return PropertyChange{
		Sender:      sig.Sender,
		Interface:   iface,
		Changed:     changed,
		Invalidated: invalidated,
	}, true
}

// AsString coerces a variant to a string, unwrapping object paths.
// Non-string variants coerce to "".
func AsString(v dbus.Variant) string {
	if s, ok := v.Value().(string); ok {
		return s
	}
	if p, ok := v.Value().(dbus.ObjectPath); ok {
		return string(p)
	}
	return ""
}

// AsStringList coerces a variant holding a list of strings.
// Single-string variants coerce to a one-element list.
func AsStringList(v dbus.Variant) []string {
	switch val := v.Value().(type) {
	case []string:
		return val
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{val}
	default:
		return nil
	}
}
