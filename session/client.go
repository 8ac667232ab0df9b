package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/waveform"
)

// Client talks to the pipeline's HTTP API. It implements
// waveform.PeakFetcher for the waveform store.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// NewClient creates a Client for the given API base URL.
func NewClient(base string, log *slog.Logger) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
		log:  log,
	}
}

// Sessions fetches the full session listing.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/sessions", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list sessions: unexpected status %s", resp.Status)
	}
	var sessions []Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("list sessions: decode: %w", err)
	}
	return sessions, nil
}

// Peaks fetches the amplitude envelope for a session. A 202 means the
// pipeline has not finished computing peaks yet and maps to
// waveform.ErrGenerating so the store keeps waiting; anything else
// non-success is a plain error counted against the transient retry budget.
func (c *Client) Peaks(ctx context.Context, id string) (waveform.Envelope, error) {
	u := c.base + "/api/sessions/" + url.PathEscape(id) + "/peaks"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return waveform.Envelope{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return waveform.Envelope{}, fmt.Errorf("peaks %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusAccepted:
		return waveform.Envelope{}, waveform.ErrGenerating
	default:
		return waveform.Envelope{}, fmt.Errorf("peaks %s: unexpected status %s", id, resp.Status)
	}

	var env waveform.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return waveform.Envelope{}, fmt.Errorf("peaks %s: decode: %w", id, err)
	}
	c.log.Debug("peaks fetched", "session", id, "samples", len(env.Peaks), "duration", env.Duration)
	return env, nil
}
