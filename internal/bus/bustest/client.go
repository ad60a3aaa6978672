// Package bustest provides an in-memory bus.Client for tests. It serves
// canned names and properties and records control calls and subscription
// transitions so tests can assert on the exact bus traffic.
package bustest

import (
	"fmt"
	"sort"

	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/errors"
)

// Client is a recording fake for bus.Client. The zero value is not usable;
// create instances with New.
type Client struct {
	// Owners maps well-known names to their current owner ids.
	Owners map[string]string
	// Properties maps owner id -> property name -> value.
	Properties map[string]map[string]dbus.Variant
	// FailProperties marks owners whose property reads fail.
	FailProperties map[string]bool
	// FailCalls marks owners whose control calls fail.
	FailCalls map[string]bool
	// ExtraNames are non-player names included in ListNames output.
	ExtraNames []string

	// Calls records "owner/method" for every control call, in order.
	Calls []string
	// Subscriptions is the set of currently subscribed owners.
	Subscriptions map[string]bool
	// SubscribeLog records "+owner" / "-owner" transitions, in order.
	SubscribeLog []string
}

var _ bus.Client = (*Client)(nil)

// New creates an empty fake client.
func New() *Client {
	return &Client{
		Owners:         make(map[string]string),
		Properties:     make(map[string]map[string]dbus.Variant),
		FailProperties: make(map[string]bool),
		FailCalls:      make(map[string]bool),
		Subscriptions:  make(map[string]bool),
	}
}

// AddPlayer registers a player with the given status and metadata fields.
func (c *Client) AddPlayer(name, owner, status, title, artist, album string) {
	c.Owners[name] = owner
	c.Properties[owner] = map[string]dbus.Variant{
		bus.PropPlaybackStatus: dbus.MakeVariant(status),
		bus.PropMetadata:       MetadataVariant(title, artist, album),
	}
}

// MetadataVariant builds an MPRIS Metadata property value. Empty fields are
// omitted from the map, matching players that never set them.
func MetadataVariant(title, artist, album string) dbus.Variant {
	raw := make(map[string]dbus.Variant)
	if title != "" {
		raw["xesam:title"] = dbus.MakeVariant(title)
	}
	if artist != "" {
		raw["xesam:artist"] = dbus.MakeVariant([]string{artist})
	}
	if album != "" {
		raw["xesam:album"] = dbus.MakeVariant(album)
	}
	return dbus.MakeVariant(raw)
}

// ListNames returns the registered player names plus any extra names,
// sorted for deterministic enumeration.
func (c *Client) ListNames() ([]string, error) {
	names := make([]string, 0, len(c.Owners)+len(c.ExtraNames))
	for name := range c.Owners {
		names = append(names, name)
	}
	names = append(names, c.ExtraNames...)
	sort.Strings(names)
	return names, nil
}

// NameOwner resolves a registered name to its owner.
func (c *Client) NameOwner(name string) (string, error) {
	owner, ok := c.Owners[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errors.ErrOwnerUnknown, name)
	}
	return owner, nil
}

// GetProperty serves a canned property value for the owner.
func (c *Client) GetProperty(dest, iface, prop string) (dbus.Variant, error) {
	if c.FailProperties[dest] {
		return dbus.Variant{}, errors.NewRemoteError("Get "+prop, nil).WithPlayer(dest)
	}
	props, ok := c.Properties[dest]
	if !ok {
		return dbus.Variant{}, errors.NewRemoteError("Get "+prop, nil).WithPlayer(dest)
	}
	v, ok := props[prop]
	if !ok {
		return dbus.Variant{}, errors.NewRemoteError("Get "+prop, nil).WithPlayer(dest)
	}
	return v, nil
}

// Call records a control call against the owner.
func (c *Client) Call(dest, method string) error {
	if c.FailCalls[dest] {
		return errors.NewRemoteError(method, nil).WithPlayer(dest)
	}
	c.Calls = append(c.Calls, dest+"/"+method)
	return nil
}

// Subscribe records a subscription for the owner.
func (c *Client) Subscribe(owner string) error {
	c.Subscriptions[owner] = true
	c.SubscribeLog = append(c.SubscribeLog, "+"+owner)
	return nil
}

// Unsubscribe removes the subscription for the owner.
func (c *Client) Unsubscribe(owner string) error {
	delete(c.Subscriptions, owner)
	c.SubscribeLog = append(c.SubscribeLog, "-"+owner)
	return nil
}

// SubscribedOwners returns the currently subscribed owners, sorted.
func (c *Client) SubscribedOwners() []string {
	owners := make([]string, 0, len(c.Subscriptions))
	for owner := range c.Subscriptions {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}
