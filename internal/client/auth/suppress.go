package auth

import (
	"sync"
	"time"
)

// Suppressor is the unauthorized-suppression window: a single mutable
// deadline. While the deadline is in the future, 401 responses are not
// treated as session-ending. SuppressFor overwrites any prior deadline
// (last-writer-wins, not additive) and the window expires on its own.
type Suppressor struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

// NewSuppressor creates an open (non-suppressing) window.
func NewSuppressor() *Suppressor {
	return &Suppressor{now: time.Now}
}

// SuppressFor silences unauthorized handling for the given duration from
// now.
func (s *Suppressor) SuppressFor(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = s.now().Add(d)
}

// Suppressed reports whether the window is currently closed to
// unauthorized handling.
func (s *Suppressor) Suppressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.until)
}
