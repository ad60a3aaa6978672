// Package bus wraps the D-Bus session bus behind the narrow surface the
// player registry needs: name enumeration, owner resolution, property reads,
// zero-argument control calls, and match-rule subscriptions for change
// notifications.
package bus

import (
	"strings"

	"github.com/godbus/dbus/v5"
)

// MPRIS namespace constants.
const (
	// NamePrefix is the namespace all MPRIS player bus names share.
	NamePrefix = "org.mpris.MediaPlayer2"
	// ObjectPath is the object every MPRIS player exports.
	ObjectPath = "/org/mpris/MediaPlayer2"
	// PlayerInterface is the MPRIS player control interface.
	PlayerInterface = "org.mpris.MediaPlayer2.Player"
	// PropertiesInterface is the generic property-access interface.
	PropertiesInterface = "org.freedesktop.DBus.Properties"
)

// Player control interface properties.
const (
	PropMetadata       = "Metadata"
	PropPlaybackStatus = "PlaybackStatus"
	PropPosition       = "Position"
)

// Client is the session-bus surface consumed by the registry. The production
// implementation is [Session]; tests substitute a recording fake.
type Client interface {
	// ListNames enumerates every name currently known to the bus.
	ListNames() ([]string, error)

	// NameOwner resolves a well-known name to its current unique owner id.
	NameOwner(name string) (string, error)

	// GetProperty performs a synchronous property read against the player
	// object of the named destination.
	GetProperty(dest, iface, prop string) (dbus.Variant, error)

	// Call invokes a zero-argument method on the player control interface
	// of the named destination.
	Call(dest, method string) error

	// Subscribe installs a change-notification match for signals sent by
	// the given owner. At most one owner is subscribed at a time; the
	// registry enforces this.
	Subscribe(owner string) error

	// Unsubscribe removes the change-notification match for the given owner.
	Unsubscribe(owner string) error
}

// IsPlayerName reports whether a bus name belongs to the MPRIS namespace.
func IsPlayerName(name string) bool {
	return strings.HasPrefix(name, NamePrefix)
}

// PlayerSuffix returns the portion of an MPRIS bus name after the namespace
// prefix, without the leading dot: "org.mpris.MediaPlayer2.vlc" -> "vlc".
// Returns "" for names without a suffix.
func PlayerSuffix(name string) string {
	if !IsPlayerName(name) {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(name, NamePrefix), ".")
}
