package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Event kinds pushed by the pipeline's websocket feed. The set is closed:
// Apply dispatches on it exhaustively and anything else is dropped.
const (
	EventAdded   = "session-added"
	EventUpdated = "session-updated"
	EventRemoved = "session-removed"
)

// Event is one feed message.
type Event struct {
	Type    string  `json:"type"`
	Session Session `json:"session"`
}

// Apply folds the event into a session list, returning the updated list and
// whether the event kind was recognized.
func (e Event) Apply(sessions []Session) ([]Session, bool) {
	switch e.Type {
	case EventAdded:
		for _, s := range sessions {
			if s.ID == e.Session.ID {
				return sessions, true // duplicate add, feed replayed
			}
		}
		return append(sessions, e.Session), true
	case EventUpdated:
		for i, s := range sessions {
			if s.ID == e.Session.ID {
				sessions[i] = e.Session
				return sessions, true
			}
		}
		// Update for a session we never saw; treat as an add so the list
		// converges with the backend.
		return append(sessions, e.Session), true
	case EventRemoved:
		for i, s := range sessions {
			if s.ID == e.Session.ID {
				return append(sessions[:i], sessions[i+1:]...), true
			}
		}
		return sessions, true
	default:
		return sessions, false
	}
}

const reconnectDelay = 3 * time.Second

// Feed maintains a websocket connection to the pipeline and forwards decoded
// events on a channel. Connection drops reconnect after a fixed delay until
// the context is cancelled.
type Feed struct {
	url    string
	log    *slog.Logger
	events chan Event
}

// NewFeed creates a Feed for the given websocket URL.
func NewFeed(url string, log *slog.Logger) *Feed {
	return &Feed{
		url:    url,
		log:    log,
		events: make(chan Event, 16),
	}
}

// Events returns the channel feed messages arrive on.
func (f *Feed) Events() <-chan Event {
	return f.events
}

// Run connects and reads until the context is cancelled. Meant to be run in
// its own goroutine.
func (f *Feed) Run(ctx context.Context) {
	for {
		if err := f.consume(ctx); err != nil {
			f.log.Warn("session feed disconnected", "url", f.url, "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *Feed) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	f.log.Info("session feed connected", "url", f.url)

	// Unblock ReadJSON when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		select {
		case f.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
