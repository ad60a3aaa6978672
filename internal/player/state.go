package player

import (
	"github.com/godbus/dbus/v5"

	"github.com/aldenhart/mprisctl/internal/bus"
)

// PlaybackState is the cached playback state of a player.
type PlaybackState int

const (
	// StateUnknown covers stopped players and every status string this
	// tool does not recognize.
	StateUnknown PlaybackState = iota
	// StatePlaying means the player reported "Playing".
	StatePlaying
	// StatePaused means the player reported "Paused".
	StatePaused
)

// String returns the lower-case name of the state.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Active reports whether the state qualifies a player for primary selection.
func (s PlaybackState) Active() bool {
	return s == StatePlaying || s == StatePaused
}

// StateFromStatus maps an MPRIS PlaybackStatus string to a PlaybackState.
// "Playing" and "Paused" map to their states; anything else, including
// "Stopped", maps to StateUnknown.
func StateFromStatus(status string) PlaybackState {
	switch status {
	case "Playing":
		return StatePlaying
	case "Paused":
		return StatePaused
	default:
		return StateUnknown
	}
}

// Metadata holds the displayed subset of a player's track metadata.
// Unset fields are zero values.
type Metadata struct {
	Title  string
	Artist []string
	Album  string
}

// DisplayArtist returns the first artist, or "" when none is set.
// MPRIS models the artist field as a list; only the first entry is shown.
func (m Metadata) DisplayArtist() string {
	if len(m.Artist) == 0 {
		return ""
	}
	return m.Artist[0]
}

// Recognized metadata keys, as namespaced in the MPRIS Metadata map.
const (
	keyTitle  = "xesam:title"
	keyArtist = "xesam:artist"
	keyAlbum  = "xesam:album"
)

// metadataFromRaw builds a Metadata from a raw MPRIS metadata map.
// Keys absent from the map yield zero-valued fields.
func metadataFromRaw(raw map[string]dbus.Variant) Metadata {
	var m Metadata
	if v, ok := raw[keyTitle]; ok {
		m.Title = bus.AsString(v)
	}
	if v, ok := raw[keyArtist]; ok {
		m.Artist = bus.AsStringList(v)
	}
	if v, ok := raw[keyAlbum]; ok {
		m.Album = bus.AsString(v)
	}
	return m
}

// rawMetadata unwraps a Metadata property variant into its underlying map.
func rawMetadata(v dbus.Variant) (map[string]dbus.Variant, bool) {
	raw, ok := v.Value().(map[string]dbus.Variant)
	return raw, ok
}
