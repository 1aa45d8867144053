package video

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StatusScheduler tracks one-shot delayed actions per video so that pending
// transitions can be cancelled on shutdown instead of firing against a
// closed store.
type StatusScheduler struct {
	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
	closed bool
}

// NewStatusScheduler creates an empty scheduler.
func NewStatusScheduler() *StatusScheduler {
	return &StatusScheduler{timers: make(map[uuid.UUID]*time.Timer)}
}

// Schedule runs fn once after delay. Scheduling again for the same id
// replaces the pending action.
func (s *StatusScheduler) Schedule(id uuid.UUID, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}

	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending action and reports whether one was pending.
func (s *StatusScheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return t.Stop()
}

// Pending returns the number of scheduled actions.
func (s *StatusScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Shutdown cancels all pending actions; subsequent Schedule calls are no-ops.
func (s *StatusScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
