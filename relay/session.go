package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/onnwee/byline-relay/telemetry"
)

// backoffLadder is the fixed reconnect schedule. The last rung repeats until
// a connection succeeds; any successful connection resets to the start.
var backoffLadder = []time.Duration{
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	20 * time.Second,
	30 * time.Second,
	60 * time.Second,
}

// Session bridges one browser client to one upstream chat room. It owns the
// reconnect loop: every connection attempt that fails or ends schedules
// exactly one retry or terminates, never both and never neither.
type Session struct {
	room    string
	factory ConnectorFactory
	out     chan Event

	stop      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// NewSession prepares a session for room. Run must be called to start it.
func NewSession(room string, factory ConnectorFactory) *Session {
	return &Session{
		room:    room,
		factory: factory,
		out:     make(chan Event, eventBuffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Events is the stream delivered to the browser client. It is closed when
// the session terminates (Close called, context cancelled, or stream end).
func (s *Session) Events() <-chan Event { return s.out }

// Run drives the connect/forward/backoff loop until ctx is cancelled, Close
// is called, or the upstream stream ends.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()
	defer close(s.out)
	defer close(s.done)

	telemetry.RelaySessionsActive.Inc()
	defer telemetry.RelaySessionsActive.Dec()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		conn := s.factory()
		err := conn.Connect(ctx, s.room)
		if err == nil {
			attempt = 0
			ended := s.forward(ctx, conn)
			conn.Disconnect()
			if ended || ctx.Err() != nil {
				return
			}
		} else {
			conn.Disconnect()
			if ctx.Err() != nil {
				return
			}
			slog.Warn("relay connect failed", slog.String("room", s.room), slog.Any("err", err))
		}

		delay := backoffLadder[min(attempt, len(backoffLadder)-1)]
		attempt++
		telemetry.RelayReconnects.Inc()
		s.emit(Event{
			Kind: EventStatus,
			Text: fmt.Sprintf("reconnecting in %s", delay),
			At:   time.Now().UTC(),
		})
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// forward copies connector events to the client until the connection ends.
// It reports true when the session should terminate instead of reconnecting
// (stream end), false when a reconnect should be scheduled.
func (s *Session) forward(ctx context.Context, conn Connector) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case ev, ok := <-conn.Events():
			if !ok {
				return false
			}
			switch ev.Kind {
			case EventChat:
				telemetry.RelayMessages.Inc()
				s.emit(ev)
			case EventStreamEnd:
				s.emit(ev)
				return true
			case EventDisconnected:
				s.emit(ev)
				return false
			case EventError:
				slog.Warn("relay upstream error", slog.String("room", s.room), slog.Any("err", ev.Err))
				s.emit(ev)
			default:
				s.emit(ev)
			}
		}
	}
}

func (s *Session) emit(ev Event) {
	select {
	case s.out <- ev:
	default:
		telemetry.RelayDropped.Inc()
	}
}

// Close terminates the session and releases the upstream connection. Safe to
// call more than once, and safe to call if Run never started.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
}

// Done is closed when Run has fully unwound.
func (s *Session) Done() <-chan struct{} { return s.done }
