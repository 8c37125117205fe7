package relay

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// Recorder persists chat events into the chat_messages table. It is
// optional: when no database is configured the relay runs live-only. Inserts
// happen on a dedicated goroutine so the relay never blocks on the store;
// messages are dropped (with a warning) if the queue backs up.
type Recorder struct {
	db    *sql.DB
	room  string
	queue chan Event
}

const recorderQueueSize = 512

// NewRecorder returns a Recorder for room, or nil when db is nil. A nil
// Recorder is safe to use; Enqueue becomes a no-op.
func NewRecorder(db *sql.DB, room string) *Recorder {
	if db == nil {
		return nil
	}
	return &Recorder{
		db:    db,
		room:  room,
		queue: make(chan Event, recorderQueueSize),
	}
}

// Start consumes the queue until ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	if r == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-r.queue:
				r.insert(ctx, ev)
			}
		}
	}()
}

// Enqueue offers a chat event for persistence. Non-chat events are ignored.
func (r *Recorder) Enqueue(ev Event) {
	if r == nil || ev.Kind != EventChat {
		return
	}
	select {
	case r.queue <- ev:
	default:
		slog.Warn("transcript queue full; dropping message", slog.String("room", r.room))
	}
}

func (r *Recorder) insert(ctx context.Context, ev Event) {
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (room, username, nickname, message, sent_at) VALUES ($1, $2, $3, $4, $5)`,
		r.room, ev.User, ev.Nickname, ev.Text, at); err != nil {
		slog.Error("failed to insert chat message", slog.Any("err", err), slog.String("room", r.room))
	}
}
