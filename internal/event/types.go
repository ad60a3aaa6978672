package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "player.added", "status.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Player Topology Events
// -----------------------------------------------------------------------------

// PlayerAddedEvent is emitted when a player appears on the session bus.
type PlayerAddedEvent struct {
	baseEvent
	BusName string // Well-known MPRIS bus name
	Owner   string // Unique owner id backing the name
}

// NewPlayerAddedEvent creates a PlayerAddedEvent.
func NewPlayerAddedEvent(busName, owner string) PlayerAddedEvent {
	return PlayerAddedEvent{
		baseEvent: newBaseEvent("player.added"),
		BusName:   busName,
		Owner:     owner,
	}
}

// PlayerRemovedEvent is emitted when a player leaves the session bus.
type PlayerRemovedEvent struct {
	baseEvent
	BusName string
	Owner   string
}

// NewPlayerRemovedEvent creates a PlayerRemovedEvent.
func NewPlayerRemovedEvent(busName, owner string) PlayerRemovedEvent {
	return PlayerRemovedEvent{
		baseEvent: newBaseEvent("player.removed"),
		BusName:   busName,
		Owner:     owner,
	}
}

// PlayerRenamedEvent is emitted when a player's owner id changes while the
// well-known name stays the same.
type PlayerRenamedEvent struct {
	baseEvent
	BusName  string
	OldOwner string
	NewOwner string
}

// NewPlayerRenamedEvent creates a PlayerRenamedEvent.
func NewPlayerRenamedEvent(busName, oldOwner, newOwner string) PlayerRenamedEvent {
	return PlayerRenamedEvent{
		baseEvent: newBaseEvent("player.renamed"),
		BusName:   busName,
		OldOwner:  oldOwner,
		NewOwner:  newOwner,
	}
}

// -----------------------------------------------------------------------------
// Selection and Status Events
// -----------------------------------------------------------------------------

// PrimaryChangedEvent is emitted when a different player becomes primary.
type PrimaryChangedEvent struct {
	baseEvent
	BusName string // New primary's bus name
	Owner   string // New primary's owner id
}

// NewPrimaryChangedEvent creates a PrimaryChangedEvent.
func NewPrimaryChangedEvent(busName, owner string) PrimaryChangedEvent {
	return PrimaryChangedEvent{
		baseEvent: newBaseEvent("primary.changed"),
		BusName:   busName,
		Owner:     owner,
	}
}

// NoActivePlayersEvent is emitted when selection finds no playing or paused
// player. It is observational, not an error.
type NoActivePlayersEvent struct {
	baseEvent
}

// NewNoActivePlayersEvent creates a NoActivePlayersEvent.
func NewNoActivePlayersEvent() NoActivePlayersEvent {
	return NoActivePlayersEvent{
		baseEvent: newBaseEvent("players.none"),
	}
}

// StatusChangedEvent is emitted with each newly rendered status line.
// Duplicate output is suppressed before this event fires, so subscribers
// may print the line unconditionally.
type StatusChangedEvent struct {
	baseEvent
	Line string // Fully rendered status line
}

// NewStatusChangedEvent creates a StatusChangedEvent.
func NewStatusChangedEvent(line string) StatusChangedEvent {
	return StatusChangedEvent{
		baseEvent: newBaseEvent("status.changed"),
		Line:      line,
	}
}
