package server

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/resume"
	"golang.org/x/sync/semaphore"
)

// Session is one open builder view. The model lives only as long as the session.
type Session struct {
	ID        string
	Builder   *resume.Builder
	CreatedAt time.Time

	exporting  *semaphore.Weighted
	mu         sync.Mutex
	lastAccess time.Time
}

// TryBeginExport claims the session's single export slot.
func (s *Session) TryBeginExport() bool {
	return s.exporting.TryAcquire(1)
}

// EndExport releases the export slot.
func (s *Session) EndExport() {
	s.exporting.Release(1)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess.Before(cutoff)
}

// SessionStore holds open builder sessions in memory and expires idle ones.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	policy   resume.RemovalPolicy
	ids      resume.IDGenerator
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates a store. A positive idleTTL starts a sweeper that
// closes sessions nobody touched for that long.
func NewSessionStore(idleTTL time.Duration, policy resume.RemovalPolicy) *SessionStore {
	st := &SessionStore{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		policy:   policy,
		ids:      resume.UUIDGenerator{},
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if idleTTL > 0 {
		go st.sweeper(max(min(idleTTL/2, time.Minute), time.Second))
	}
	return st
}

// Create opens a session with a fresh default model.
func (st *SessionStore) Create(templateID string) *Session {
	now := st.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Builder:    resume.NewBuilder(resume.New(st.ids, templateID), st.ids, st.policy),
		CreatedAt:  now,
		exporting:  semaphore.NewWeighted(1),
		lastAccess: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	log.Printf("[session] opened %s (template=%q)", sess.ID, templateID)
	return sess
}

// Get returns an open session and marks it as used.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	sess.touch(st.now())
	return sess, nil
}

// Delete closes a session and discards its model.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return &ErrSessionNotFound{ID: id}
	}
	delete(st.sessions, id)
	log.Printf("[session] closed %s", id)
	return nil
}

// Len returns the number of open sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep closes sessions idle since before cutoff and returns how many it closed.
// A session with an export in flight is kept.
func (st *SessionStore) Sweep(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	closed := 0
	for id, sess := range st.sessions {
		if !sess.idleSince(cutoff) {
			continue
		}
		if !sess.TryBeginExport() {
			continue
		}
		sess.EndExport()
		delete(st.sessions, id)
		closed++
	}
	if closed > 0 {
		log.Printf("[session] expired %d idle sessions", closed)
	}
	return closed
}

func (st *SessionStore) sweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			st.Sweep(st.now().Add(-st.idleTTL))
		case <-st.stop:
			return
		}
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (st *SessionStore) Stop() {
	st.stopOnce.Do(func() { close(st.stop) })
}
