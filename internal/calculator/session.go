package calculator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-calculator/internal/basic"
)

var errSessionNotFound = errors.New("session not found")

// DefaultSessionIdleTTL is how long an untouched session survives.
const DefaultSessionIdleTTL = 30 * time.Minute

// Sessions owns one basic.Engine per client session. Each engine is used by
// one request at a time.
//
// Sessions idle for longer than the TTL are dropped when a new one is
// created. If the registry is still full after that, the least recently used
// session is evicted, so Create always succeeds.
type Sessions struct {
	limit int
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	engines map[string]*session
}

type session struct {
	mu     sync.Mutex
	engine *basic.Engine

	// lastUsed is guarded by Sessions.mu.
	lastUsed time.Time
}

type SessionOption func(*Sessions)

// WithIdleTTL sets the idle lifetime. Zero disables expiry.
func WithIdleTTL(d time.Duration) SessionOption {
	return func(s *Sessions) { s.ttl = d }
}

// WithSessionClock overrides the time source.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Sessions) { s.now = now }
}

func NewSessions(limit int, opts ...SessionOption) *Sessions {
	s := &Sessions{
		limit:   limit,
		ttl:     DefaultSessionIdleTTL,
		now:     time.Now,
		engines: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a session with a fresh engine and returns its id.
func (s *Sessions) Create() (string, basic.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.expire(now)
	if s.limit > 0 && len(s.engines) >= s.limit {
		s.evictOldest()
	}

	id := uuid.NewString()
	e := basic.NewEngine()
	s.engines[id] = &session{engine: e, lastUsed: now}
	return id, e.State()
}

// With runs fn against the session's engine while holding its lock.
func (s *Sessions) With(id string, fn func(e *basic.Engine) error) error {
	s.mu.Lock()
	sess, ok := s.engines[id]
	if ok {
		sess.lastUsed = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return errSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.engine)
}

func (s *Sessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.engines[id]
	delete(s.engines, id)
	return ok
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engines)
}

// expire must be called with mu held.
func (s *Sessions) expire(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.engines {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.engines, id)
		}
	}
}

// evictOldest must be called with mu held.
func (s *Sessions) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.engines {
		if oldestID == "" || sess.lastUsed.Before(oldest) {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.engines, oldestID)
}
