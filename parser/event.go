/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package parser

import (
	"errors"
	"fmt"
)

// EventKind represents a parse event kind.
type EventKind int

const (
	// TagStartEvent represents an element start.
	TagStartEvent EventKind = iota + 1

	// TextEvent represents element character data.
	TextEvent

	// TagEndEvent represents an element end.
	TagEndEvent

	// ConnectionClosedEvent is the sentinel pushed once the underlying transport is gone.
	ConnectionClosedEvent
)

// String returns EventKind string representation.
func (k EventKind) String() string {
	switch k {
	case TagStartEvent:
		return "tag_start"
	case TextEvent:
		return "text"
	case TagEndEvent:
		return "tag_end"
	case ConnectionClosedEvent:
		return "connection_closed"
	}
	return "unknown"
}

// Event represents a single parse event.
// Name and Attributes are only set for tag events, Content only for text events.
type Event struct {
	Kind       EventKind
	Name       string
	Attributes map[string]string
	Content    string
}

// String returns a string representation of the event.
func (e Event) String() string {
	switch e.Kind {
	case TagStartEvent:
		return fmt.Sprintf("<%s>", e.Name)
	case TagEndEvent:
		return fmt.Sprintf("</%s>", e.Name)
	case TextEvent:
		return fmt.Sprintf("text(%q)", e.Content)
	}
	return e.Kind.String()
}

// ErrConnectionClosed is returned by the cursor once the connection closed sentinel is reached.
var ErrConnectionClosed = errors.New("parser: connection closed")

// ProtocolFault represents a structural violation of the expected element stream.
type ProtocolFault struct {
	reason string
}

// Faultf returns a new protocol fault described by the given format.
func Faultf(format string, args ...interface{}) error {
	return &ProtocolFault{reason: fmt.Sprintf(format, args...)}
}

// Error satisfies error interface.
func (f *ProtocolFault) Error() string {
	return "parser: protocol fault: " + f.reason
}
