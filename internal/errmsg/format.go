// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackLoad  Op = "load track"
	OpPlaybackStart Op = "start playback"

	// Likes
	OpLikeToggle Op = "update liked songs"
	OpLikeLoad   Op = "load liked songs"

	// Share
	OpShare     Op = "share song"
	OpShareLink Op = "open shared link"

	// Catalog operations
	OpCatalogRecent  Op = "load recent songs"
	OpCatalogMine    Op = "load my songs"
	OpCatalogResolve Op = "find song"

	// Local state
	OpRequestAdd Op = "add song request"
	OpStateLoad  Op = "restore last song"
	OpVolumeSave Op = "save volume"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// ForPlayback maps the operation name carried by a playback error event.
func ForPlayback(op string) Op {
	if op == "load" {
		return OpPlaybackLoad
	}
	return OpPlaybackStart
}
