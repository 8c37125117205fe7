package relay

import (
	"context"
	"fmt"
	"sync"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
)

// eventBuffer bounds the per-connector event queue. IRC callbacks must never
// block, so events are dropped (and counted by the session) when a slow
// browser client falls this far behind.
const eventBuffer = 256

// TwitchConnector adapts the IRC client to the Connector contract. Chat is
// read anonymously; joining a room needs no credentials.
type TwitchConnector struct {
	client  *twitch.Client
	events  chan Event
	dropped int64
	mu      sync.Mutex
}

// NewTwitchConnector returns an unconnected connector.
func NewTwitchConnector() *TwitchConnector {
	return &TwitchConnector{events: make(chan Event, eventBuffer)}
}

// Connect joins room and returns once the IRC connection is established.
// The connection is then serviced by a background goroutine; its end is
// reported as a Disconnected (or Error) event followed by channel close.
func (t *TwitchConnector) Connect(ctx context.Context, room string) error {
	client := twitch.NewAnonymousClient()

	ready := make(chan struct{})
	client.OnConnect(func() {
		close(ready)
	})
	client.OnPrivateMessage(func(m twitch.PrivateMessage) {
		t.emit(Event{
			Kind:     EventChat,
			User:     m.User.Name,
			Nickname: m.User.DisplayName,
			Text:     m.Message,
			At:       m.Time,
		})
	})

	client.Join(room)

	t.mu.Lock()
	t.client = client
	t.mu.Unlock()

	connErr := make(chan error, 1)
	go func() {
		connErr <- client.Connect()
	}()

	select {
	case <-ready:
		t.emit(Event{Kind: EventStatus, Text: "connected", At: time.Now().UTC()})
		go t.watch(connErr)
		return nil
	case err := <-connErr:
		t.Disconnect()
		if err == nil {
			err = fmt.Errorf("relay: connection closed before join completed")
		}
		return err
	case <-ctx.Done():
		t.Disconnect()
		return ctx.Err()
	}
}

// watch waits for the blocking IRC loop to return and converts its exit into
// a terminal event, then closes the event channel.
func (t *TwitchConnector) watch(connErr <-chan error) {
	err := <-connErr
	if err != nil && err != twitch.ErrClientDisconnected {
		t.emit(Event{Kind: EventError, Err: err, At: time.Now().UTC()})
	}
	t.emit(Event{Kind: EventDisconnected, At: time.Now().UTC()})
	close(t.events)
}

// Events returns the connector's event stream. Closed once the underlying
// connection has fully terminated.
func (t *TwitchConnector) Events() <-chan Event { return t.events }

// Disconnect tears down the IRC connection. Idempotent; safe before Connect.
func (t *TwitchConnector) Disconnect() {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()
	if client == nil {
		return
	}
	// ErrConnectionIsNotOpen just means we disconnected twice (or never
	// connected); both are fine here.
	_ = client.Disconnect()
}

func (t *TwitchConnector) emit(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.mu.Lock()
		t.dropped++
		t.mu.Unlock()
	}
}

// Dropped reports how many events were discarded because the buffer was
// full.
func (t *TwitchConnector) Dropped() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}
