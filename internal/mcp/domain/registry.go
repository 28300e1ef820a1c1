package domain

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
	"github.com/OtherAytay/IFR/internal/platform/id"
)

// ErrNotFound matches unknown sessions, events and variables with errors.Is.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "not found")

// Registry holds the play sessions of one scenario. Calls on different
// sessions run concurrently; calls on one session are serialized.
//
// With an idle TTL set, sessions unused for longer than the TTL are dropped
// whenever a new session starts.
type Registry struct {
	scenario *scenario.Scenario
	options  []play.Option
	now      func() time.Time

	mu       sync.RWMutex
	idleTTL  time.Duration
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	session  *play.Session
	lastUsed atomic.Int64
}

// NewRegistry creates an empty registry over scn. Every session is built
// with opts.
func NewRegistry(scn *scenario.Scenario, opts ...play.Option) *Registry {
	return &Registry{
		scenario: scn,
		options:  opts,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// SetIdleTTL sets how long a session may sit unused. Zero keeps sessions
// until they are ended.
func (r *Registry) SetIdleTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idleTTL = ttl
}

// Scenario returns the scenario sessions are started from.
func (r *Registry) Scenario() *scenario.Scenario { return r.scenario }

// Start creates a session and returns its id. A non-nil seed makes the
// session's rolls reproducible.
func (r *Registry) Start(seed *int64) (string, error) {
	opts := append([]play.Option(nil), r.options...)
	if seed != nil {
		opts = append(opts, play.WithSeed(*seed))
	}
	session, err := play.NewSession(r.scenario, opts...)
	if err != nil {
		return "", err
	}
	sessionID, err := id.NewID()
	if err != nil {
		return "", err
	}

	now := r.now()
	e := &entry{session: session}
	e.lastUsed.Store(now.UnixNano())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictIdleLocked(now)
	r.sessions[sessionID] = e
	return sessionID, nil
}

// End drops session sessionID.
func (r *Registry) End(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return notFound("session", sessionID)
	}
	delete(r.sessions, sessionID)
	return nil
}

func (r *Registry) evictIdleLocked(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	cutoff := now.Add(-r.idleTTL).UnixNano()
	for sessionID, e := range r.sessions {
		if e.lastUsed.Load() < cutoff {
			delete(r.sessions, sessionID)
		}
	}
}

// With runs fn while holding the lock of session sessionID.
func (r *Registry) With(sessionID string, fn func(*play.Session) error) error {
	r.mu.RLock()
	e, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return notFound("session", sessionID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed.Store(r.now().UnixNano())
	return fn(e.session)
}

func notFound(kind, name string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, fmt.Sprintf("%s %q not found", kind, name), map[string]string{
		"Kind": kind,
		"Name": name,
	})
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
