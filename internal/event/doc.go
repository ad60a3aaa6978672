// Package event provides a pub-sub event bus for decoupled inter-component
// communication in mprisctl.
//
// The registry publishes events as it reacts to bus topology and playback
// changes; output sinks (the tail printer, the interactive view) subscribe
// without the registry knowing who consumes its output.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Player topology:
//   - [PlayerAddedEvent]: Emitted when a player appears on the session bus
//   - [PlayerRemovedEvent]: Emitted when a player leaves the session bus
//   - [PlayerRenamedEvent]: Emitted when a player's owner id changes
//
// Selection and status:
//   - [PrimaryChangedEvent]: Emitted when a different player becomes primary
//   - [NoActivePlayersEvent]: Emitted when selection finds no playing or paused player
//   - [StatusChangedEvent]: Emitted with each newly rendered status line
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously on the publisher's goroutine and protected against panics -
// a panicking handler will not prevent other handlers from being called.
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - player.added, player.removed, player.renamed
//   - primary.changed
//   - players.none
//   - status.changed
package event
