// Package session models the recordings moving through the studio pipeline
// and the read-only surfaces the dashboard consumes them from: the HTTP API
// for listings and peak envelopes, and the websocket feed for live updates.
package session

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is a session's position in the pipeline.
type Status int

const (
	StatusRecording Status = iota
	StatusProcessing
	StatusReady
	StatusFailed
)

var statusNames = map[Status]string{
	StatusRecording:  "recording",
	StatusProcessing: "processing",
	StatusReady:      "ready",
	StatusFailed:     "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStatus maps a wire status string to a Status.
func ParseStatus(name string) (Status, error) {
	for st, n := range statusNames {
		if n == name {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown session status %q", name)
}

// MarshalJSON encodes the status as its wire name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire status name.
func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	st, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Session is one recording tracked by the pipeline.
type Session struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Status     Status    `json:"status"`
	RecordedAt time.Time `json:"recorded_at"`
	Duration   float64   `json:"duration"` // seconds
	Media      string    `json:"media"`    // proxy audio path, empty until processed
}

// DisplayName returns the session's list label.
func (s Session) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Playable reports whether the session has proxy audio the player can open.
func (s Session) Playable() bool {
	return s.Media != "" && (s.Status == StatusReady || s.Status == StatusProcessing)
}

// SortMode orders the session list.
type SortMode int

const (
	SortByDate SortMode = iota // newest first
	SortByTitle
	SortByDuration // longest first
)

func (m SortMode) String() string {
	switch m {
	case SortByTitle:
		return "title"
	case SortByDuration:
		return "duration"
	default:
		return "date"
	}
}

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// Sort orders sessions by the given mode, stable so equal keys keep their
// feed order.
func Sort(sessions []Session, mode SortMode) {
	slices.SortStableFunc(sessions, func(a, b Session) int {
		switch mode {
		case SortByTitle:
			return strings.Compare(
				strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
		case SortByDuration:
			switch {
			case a.Duration > b.Duration:
				return -1
			case a.Duration < b.Duration:
				return 1
			}
			return 0
		default:
			return b.RecordedAt.Compare(a.RecordedAt)
		}
	})
}

// Filter selects sessions for the list view.
type Filter struct {
	Status *Status // nil matches every status
	Query  string  // case-insensitive title substring
}

// Apply returns the sessions matching the filter, preserving order.
func (f Filter) Apply(sessions []Session) []Session {
	query := strings.ToLower(f.Query)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if f.Status != nil && s.Status != *f.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(s.DisplayName()), query) {
			continue
		}
		out = append(out, s)
	}
	return out
}
