// Package player implements the handle for one MPRIS player on the session
// bus: cached metadata and playback state, transport controls, and the
// change-application rules that decide whether an update is worth rendering.
package player

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/bus"
	"github.com/aldenhart/mprisctl/internal/errors"
)

// Player is the cached handle for one remote MPRIS player. All mutation
// happens on the registry's dispatch goroutine; Player itself is not
// synchronized.
type Player struct {
	busName string
	owner   string
	client  bus.Client

	meta       Metadata
	state      PlaybackState
	subscribed bool
}

// New creates a handle for the player owning busName. The handle starts
// with empty cached state; call Refresh to populate it.
func New(busName, owner string, client bus.Client) *Player {
	return &Player{
		busName: busName,
		owner:   owner,
		client:  client,
	}
}

// BusName returns the player's well-known MPRIS bus name.
func (p *Player) BusName() string { return p.busName }

// Owner returns the unique owner id currently backing the bus name.
func (p *Player) Owner() string { return p.owner }

// SetOwner records a new owner id after a NameOwnerChanged rename.
// Cached state is untouched.
func (p *Player) SetOwner(owner string) { p.owner = owner }

// Metadata returns the cached track metadata.
func (p *Player) Metadata() Metadata { return p.meta }

// State returns the cached playback state.
func (p *Player) State() PlaybackState { return p.state }

// Subscribed reports whether this handle holds the active change
// subscription. At most one handle in a registry does.
func (p *Player) Subscribed() bool { return p.subscribed }

// Transport controls. Each is a synchronous zero-argument call against the
// remote player; failures are non-fatal and simply leave the player as-is.

func (p *Player) Play() error      { return p.control("Play") }
func (p *Player) Pause() error     { return p.control("Pause") }
func (p *Player) PlayPause() error { return p.control("PlayPause") }
func (p *Player) Stop() error      { return p.control("Stop") }
func (p *Player) Previous() error  { return p.control("Previous") }
func (p *Player) Next() error      { return p.control("Next") }

func (p *Player) control(method string) error {
	return p.client.Call(p.owner, method)
}

// Property performs a synchronous property read against the player.
func (p *Player) Property(iface, name string) (dbus.Variant, error) {
	return p.client.GetProperty(p.owner, iface, name)
}

// Refresh resynchronizes the cached metadata and playback state from the
// remote player. On any fetch failure the cache is left exactly as it was
// and the returned error wraps ErrMetadataUnavailable; the bool reports
// whether an update occurred.
func (p *Player) Refresh() (bool, error) {
	metaVariant, err := p.Property(bus.PlayerInterface, bus.PropMetadata)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", errors.ErrMetadataUnavailable, p.busName, err)
	}
	raw, ok := rawMetadata(metaVariant)
	if !ok {
		return false, fmt.Errorf("%w: %s: metadata is not a map", errors.ErrMetadataUnavailable, p.busName)
	}

	statusVariant, err := p.Property(bus.PlayerInterface, bus.PropPlaybackStatus)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", errors.ErrMetadataUnavailable, p.busName, err)
	}

	p.meta = metadataFromRaw(raw)
	p.state = StateFromStatus(bus.AsString(statusVariant))
	return true, nil
}

// ApplyChange folds a PropertiesChanged changed-set into the cached state
// and reports whether the change is worth rendering.
//
// Rules:
//   - A changed set consisting solely of Position is frequent seek noise:
//     nothing is updated and nothing rendered.
//   - A Metadata change applies every recognized sub-field present in the
//     new value; it is render-worthy iff at least one differed.
//   - A PlaybackStatus change is always render-worthy, even when the mapped
//     state equals the cached one.
func (p *Player) ApplyChange(changed map[string]dbus.Variant) bool {
	if len(changed) == 1 {
		if _, ok := changed[bus.PropPosition]; ok {
			return false
		}
	}

	worthy := false

	if v, ok := changed[bus.PropMetadata]; ok {
		if raw, ok := rawMetadata(v); ok && p.applyMetadata(raw) {
			worthy = true
		}
	}

	if v, ok := changed[bus.PropPlaybackStatus]; ok {
		p.state = StateFromStatus(bus.AsString(v))
		worthy = true
	}

	return worthy
}

// applyMetadata updates cached fields from the sub-fields present in raw
// and reports whether any differed. Sub-fields absent from raw keep their
// cached values.
func (p *Player) applyMetadata(raw map[string]dbus.Variant) bool {
	changed := false

	if v, ok := raw[keyTitle]; ok {
		if title := bus.AsString(v); title != p.meta.Title {
			p.meta.Title = title
			changed = true
		}
	}
	if v, ok := raw[keyArtist]; ok {
		if artist := bus.AsStringList(v); !equalStrings(artist, p.meta.Artist) {
			p.meta.Artist = artist
			changed = true
		}
	}
	if v, ok := raw[keyAlbum]; ok {
		if album := bus.AsString(v); album != p.meta.Album {
			p.meta.Album = album
			changed = true
		}
	}

	return changed
}

// Subscribe installs the change-notification subscription for this player.
func (p *Player) Subscribe() error {
	if p.subscribed {
		return nil
	}
	if err := p.client.Subscribe(p.owner); err != nil {
		return err
	}
	p.subscribed = true
	return nil
}

// Unsubscribe removes the change-notification subscription.
func (p *Player) Unsubscribe() error {
	if !p.subscribed {
		return nil
	}
	if err := p.client.Unsubscribe(p.owner); err != nil {
		return err
	}
	p.subscribed = false
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
