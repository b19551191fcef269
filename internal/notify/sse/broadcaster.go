package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/jfraser/whosaid/internal/model"
)

// Broadcaster delivers session events to SSE clients as JSON. Events for
// sessions with no open hub are discarded; a hub only exists while at
// least one client has subscribed to the session's event stream.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish broadcasts an event to all clients subscribed to the session.
// The SSE event name is the event type; the data is the payload as JSON.
func (b *Broadcaster) Publish(code model.SessionCode, eventType model.EventType, payload any) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal event payload",
			slog.String("session", string(code)),
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(eventType), string(data))
}

// CloseSession broadcasts a final event and shuts down the session's hub
func (b *Broadcaster) CloseSession(code model.SessionCode, payload any) {
	b.Publish(code, model.EventSessionEnded, payload)
	b.hubManager.RemoveHub(code)
}
