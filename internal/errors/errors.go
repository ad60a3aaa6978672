// Package errors provides centralized error definitions and error handling
// utilities for mprisctl. It defines domain-specific errors for the bus and
// player layers, constructors with context wrapping, and classification
// helpers.
//
// # Error Types
//
// Sentinel errors represent common failure conditions:
//   - ErrRemoteUnavailable: a control or property call against a player failed
//   - ErrMetadataUnavailable: a full state refresh against a player failed
//   - ErrBusUnavailable: the session bus could not be reached
//
// RemoteError is the semantic type carrying the player identity and the
// operation that failed.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewRemoteError("Play", baseErr).WithPlayer(busName)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRemoteUnavailable) { ... }
//
//	var remoteErr *errors.RemoteError
//	if errors.As(err, &remoteErr) { ... }
//
// No error defined here is fatal to a running process: callers degrade to a
// dropped operation or a stale cache.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrRemoteUnavailable indicates that a control or property call failed
	// against a live-seeming player. The operation is simply dropped.
	ErrRemoteUnavailable = New("remote player unavailable")
	// ErrMetadataUnavailable indicates that a full refresh of a player's
	// cached state failed. The cache is left stale.
	ErrMetadataUnavailable = New("metadata unavailable")
	// ErrBusUnavailable indicates that the session bus connection failed.
	ErrBusUnavailable = New("session bus unavailable")
	// ErrOwnerUnknown indicates that a bus name did not resolve to an owner.
	ErrOwnerUnknown = New("bus name has no owner")
)

// -----------------------------------------------------------------------------
// Remote Errors
// -----------------------------------------------------------------------------

// RemoteError represents a failed call against a remote player.
//
// Example:
//
//	err := errors.NewRemoteError("PlayPause", cause).WithPlayer("org.mpris.MediaPlayer2.vlc")
//	fmt.Println(err) // "remote error [player=org.mpris.MediaPlayer2.vlc]: PlayPause: ..."
type RemoteError struct {
	// Op is the remote operation that failed, e.g. "Play" or "Get".
	Op string
	// Player is the bus name of the player the call was addressed to.
	Player string

	cause error
}

// NewRemoteError creates a RemoteError wrapping cause. The wrapped chain
// always matches ErrRemoteUnavailable.
func NewRemoteError(op string, cause error) *RemoteError {
	return &RemoteError{Op: op, cause: cause}
}

// WithPlayer adds the player's bus name to the error context.
func (e *RemoteError) WithPlayer(busName string) *RemoteError {
	e.Player = busName
	return e
}

// Error returns the formatted error message.
func (e *RemoteError) Error() string {
	var parts []string
	if e.Player != "" {
		parts = append(parts, fmt.Sprintf("player=%s", e.Player))
	}

	prefix := "remote error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("remote error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Op, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Op)
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target. Every RemoteError
// matches ErrRemoteUnavailable so callers can classify without the type.
func (e *RemoteError) Is(target error) bool {
	if target == ErrRemoteUnavailable {
		return true
	}
	if _, ok := target.(*RemoteError); ok {
		return true
	}
	return errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsRemoteUnavailable reports whether err stems from an unreachable player.
func IsRemoteUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsMetadataUnavailable reports whether err stems from a failed refresh.
func IsMetadataUnavailable(err error) bool {
	return errors.Is(err, ErrMetadataUnavailable)
}
