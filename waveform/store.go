package waveform

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrGenerating is returned by a PeakFetcher when the backend has accepted
// the request but has not finished computing the envelope yet. It is a
// transient condition, not a failure: the pipeline generates peaks
// asynchronously after a recording lands.
var ErrGenerating = errors.New("peaks not generated yet")

// PeakFetcher retrieves the envelope for a session identifier.
type PeakFetcher interface {
	Peaks(ctx context.Context, id string) (Envelope, error)
}

// Status describes the store's lifecycle for the active session.
type Status int

const (
	StatusNone        Status = iota // no session selected
	StatusLoading                   // fetch or retry in progress
	StatusReady                     // envelope available
	StatusUnavailable               // retries exhausted; manual Retry only
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "none"
	}
}

const (
	// generatingAttempts bounds how long we wait for the pipeline to finish
	// computing peaks: 60 attempts at the default 1s interval, roughly the
	// generation budget. Fixed interval, no backoff.
	generatingAttempts = 60
	// transientAttempts bounds retries for ordinary fetch failures.
	transientAttempts = 3

	defaultRetryInterval = time.Second
)

// State is a point-in-time snapshot of the store. The render loop polls it
// once per frame instead of subscribing to change notifications.
type State struct {
	ID       string
	Status   Status
	Envelope Envelope
	Err      string // user-facing message when Status is StatusUnavailable
}

// Store fetches and caches one envelope per session identifier. Fetches run
// in the background; the UI keeps drawing while a fetch is in flight. A
// result for an identifier that is no longer active is cached but never
// committed to the visible state.
type Store struct {
	fetch PeakFetcher
	log   *slog.Logger

	// Interval between retry attempts. Set before the first Load; tests
	// shrink it so retry budgets run in milliseconds.
	Interval time.Duration

	mu    sync.Mutex
	id    string
	gen   uint64 // bumped on every Load/Retry; stale fetchers miss the commit
	state State
	cache map[string]Envelope
}

// NewStore creates a Store using the given fetcher.
func NewStore(fetch PeakFetcher, log *slog.Logger) *Store {
	return &Store{
		fetch:    fetch,
		log:      log,
		Interval: defaultRetryInterval,
		cache:    map[string]Envelope{},
	}
}

// Load makes id the active session and starts fetching its envelope unless
// it is already cached. An empty id clears the store (nothing selected is a
// legitimate state, not an error).
func (s *Store) Load(id string) {
	s.mu.Lock()
	if id == s.id && s.state.Status != StatusNone {
		s.mu.Unlock()
		return
	}
	s.id = id
	s.gen++
	gen := s.gen

	if id == "" {
		s.state = State{}
		s.mu.Unlock()
		return
	}
	if env, ok := s.cache[id]; ok {
		s.state = State{ID: id, Status: StatusReady, Envelope: env}
		s.mu.Unlock()
		return
	}
	s.state = State{ID: id, Status: StatusLoading}
	s.mu.Unlock()

	go s.run(id, gen)
}

// Retry re-issues the fetch for the active session immediately, with fresh
// attempt counters. No-op when nothing is selected or the envelope is
// already in.
func (s *Store) Retry() {
	s.mu.Lock()
	if s.id == "" || s.state.Status == StatusReady {
		s.mu.Unlock()
		return
	}
	s.gen++
	gen := s.gen
	id := s.id
	s.state = State{ID: id, Status: StatusLoading}
	s.mu.Unlock()

	go s.run(id, gen)
}

// Snapshot returns the current state. Cheap; called once per rendered frame.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// run is the fetch-and-retry loop for one (id, generation) pair. It never
// touches visible state directly; commit and fail re-check the generation
// under the lock so a superseded fetch silently drops out.
func (s *Store) run(id string, gen uint64) {
	var generating, failed int
	for {
		env, err := s.fetch.Peaks(context.Background(), id)
		switch {
		case err == nil:
			s.commit(id, gen, env)
			return
		case errors.Is(err, ErrGenerating):
			generating++
			if generating >= generatingAttempts {
				s.fail(id, gen, "waveform unavailable: peaks were never generated")
				return
			}
		default:
			failed++
			s.log.Warn("peak fetch failed", "session", id, "attempt", failed, "error", err)
			if failed >= transientAttempts {
				s.fail(id, gen, "waveform unavailable: "+err.Error())
				return
			}
		}

		if !s.wanted(gen) {
			return
		}
		time.Sleep(s.Interval)
		if !s.wanted(gen) {
			return
		}
	}
}

func (s *Store) wanted(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

func (s *Store) commit(id string, gen uint64, env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Envelopes are immutable per id, so even a stale fetch is worth caching
	// for the next time the session is selected.
	s.cache[id] = env
	if gen != s.gen {
		return // a newer Load or Retry superseded this fetch
	}
	s.state = State{ID: id, Status: StatusReady, Envelope: env}
}

func (s *Store) fail(id string, gen uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.log.Warn("peaks unavailable", "session", id, "reason", msg)
	s.state = State{ID: id, Status: StatusUnavailable, Err: msg}
}
