package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/onnwee/byline-relay/relay"
	"github.com/onnwee/byline-relay/telemetry"
)

// roomPattern matches upstream channel logins. Overly long or exotic names
// are rejected before any connection attempt.
var roomPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,25}$`)

const heartbeatInterval = 15 * time.Second

// HandleChatDispatcher routes /chat/{room}/sse and /chat/{room}/ws.
func (h *Handlers) HandleChatDispatcher(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/chat/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || !roomPattern.MatchString(parts[0]) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	room := strings.ToLower(parts[0])
	switch parts[1] {
	case "sse":
		h.handleChatSSE(w, r, room)
	case "ws":
		h.handleChatWS(w, r, room)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// chatWireEvent is the JSON shape pushed to browser clients.
type chatWireEvent struct {
	Type     string `json:"type"`
	User     string `json:"userId,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Text     string `json:"comment,omitempty"`
	At       string `json:"at,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

func toWire(ev relay.Event) chatWireEvent {
	out := chatWireEvent{Type: ev.Kind.String()}
	switch ev.Kind {
	case relay.EventChat:
		out.User = ev.User
		out.Nickname = ev.Nickname
		out.Text = ev.Text
		if !ev.At.IsZero() {
			out.At = ev.At.UTC().Format(time.RFC3339)
		}
	case relay.EventStatus:
		out.Detail = ev.Text
	case relay.EventError:
		if ev.Err != nil {
			out.Detail = ev.Err.Error()
		}
	}
	return out
}

// handleChatSSE bridges one browser client to the upstream chat room over
// Server-Sent Events. The session (and its upstream connection) lives
// exactly as long as the request: client disconnect tears it down.
func (h *Handlers) handleChatSSE(w http.ResponseWriter, r *http.Request, room string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session := relay.NewSession(room, h.connector)
	defer session.Close()
	go session.Run(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-session.Events():
			if !open {
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				slog.Warn("failed to write SSE data prefix", slog.Any("err", err))
				return
			}
			if err := enc.Encode(toWire(ev)); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n")); err != nil {
				slog.Warn("failed to write SSE newline", slog.Any("err", err))
				return
			}
			flusher.Flush()
		}
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin policy is enforced by the CORS layer configuration; overlays
	// are embedded from arbitrary dev origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleChatWS is the WebSocket flavor of the chat push stream, for clients
// that prefer it over SSE.
func (h *Handlers) handleChatWS(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("websocket close", slog.Any("err", err))
		}
	}()

	ctx := r.Context()
	session := relay.NewSession(room, h.connector)
	defer session.Close()
	go session.Run(ctx)

	// Reader goroutine: we never expect client frames, but reading is how
	// close frames and pongs are processed.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-clientGone:
			return
		case <-heartbeat.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case ev, open := <-session.Events():
			if !open {
				return
			}
			if err := conn.WriteJSON(toWire(ev)); err != nil {
				telemetry.RelayDropped.Inc()
				return
			}
		}
	}
}
