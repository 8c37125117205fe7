// Package relay bridges live chat from the upstream streaming platform to
// browser clients. Each connected browser gets its own Session, which owns
// one upstream Connector and reconnects on a fixed backoff ladder.
package relay

import (
	"context"
	"time"
)

// EventKind is the closed set of events a connector can emit.
type EventKind int

const (
	EventChat EventKind = iota
	EventStatus
	EventStreamEnd
	EventDisconnected
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventChat:
		return "chat"
	case EventStatus:
		return "status"
	case EventStreamEnd:
		return "streamEnd"
	case EventDisconnected:
		return "disconnected"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is one occurrence on the upstream chat stream. Chat events carry
// User/Nickname/Text; Error events carry Err; Status events carry Text.
type Event struct {
	Kind     EventKind
	User     string
	Nickname string
	Text     string
	At       time.Time
	Err      error
}

// Connector is the opaque upstream capability: given a room identifier it
// yields a stream of chat/status/disconnect events.
//
// Connect returns once the room is joined (or fails). Events is valid after
// construction and is closed when the connector is finished. Disconnect is
// idempotent and safe to call even if Connect was never called or failed.
type Connector interface {
	Connect(ctx context.Context, room string) error
	Events() <-chan Event
	Disconnect()
}

// ConnectorFactory produces a fresh Connector per connection attempt, so a
// failed attempt never leaks state into the next one.
type ConnectorFactory func() Connector
