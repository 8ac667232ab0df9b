package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mitchschoolvic/Studio-Pipeline-sub001/waveform"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, slog.New(slog.DiscardHandler))
}

func TestClientSessions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"s1","title":"Take one","status":"ready","duration":90,"media":"/proxy/s1.mp3"},
			{"id":"s2","title":"Take two","status":"processing","duration":0}
		]`))
	})

	sessions, err := c.Sessions(context.Background())
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "s1" || sessions[1].Status != StatusProcessing {
		t.Errorf("decoded %+v", sessions)
	}
	if !sessions[0].Playable() || sessions[1].Playable() {
		t.Errorf("playability: %+v", sessions)
	}
}

func TestClientSessionsError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	if _, err := c.Sessions(context.Background()); err == nil {
		t.Error("server error surfaced no error")
	}
}

func TestClientPeaks(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/s1/peaks" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"peaks":[0,0.5,1,0.5],"duration":8.5}`))
	})

	env, err := c.Peaks(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Peaks: %v", err)
	}
	if len(env.Peaks) != 4 || env.Duration != 8.5 {
		t.Errorf("decoded %+v", env)
	}
}

func TestClientPeaksGenerating(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	_, err := c.Peaks(context.Background(), "s1")
	if !errors.Is(err, waveform.ErrGenerating) {
		t.Errorf("202: got %v, want ErrGenerating", err)
	}
}

func TestClientPeaksNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := c.Peaks(context.Background(), "missing")
	if err == nil || errors.Is(err, waveform.ErrGenerating) {
		t.Errorf("404: got %v, want terminal error", err)
	}
}
