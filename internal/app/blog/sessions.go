package blog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type threadKey struct {
	session string
	post    string
}

type entry struct {
	thread   *Thread
	lastSeen time.Time
}

// Sessions keeps each visitor's comment threads in memory. A thread lives as
// long as its session keeps being used and is never persisted.
type Sessions struct {
	mu      sync.Mutex
	threads map[threadKey]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// NewSessions creates a registry that forgets threads idle for longer than ttl.
func NewSessions(ttl time.Duration, logger zerolog.Logger) *Sessions {
	return &Sessions{
		threads: make(map[threadKey]*entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// Thread returns the thread for post within session, creating an empty one
// on first use.
func (s *Sessions) Thread(session, post string) *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := threadKey{session: session, post: post}
	e, ok := s.threads[key]
	if !ok {
		e = &entry{thread: NewThread()}
		s.threads[key] = e
	}
	e.lastSeen = s.now()
	return e.thread
}

// Len reports the number of live threads.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads)
}

// Sweep drops threads idle past the ttl and reports how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, e := range s.threads {
		if e.lastSeen.Before(cutoff) {
			delete(s.threads, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug().Int("threads", n).Int("active", s.Len()).Msg("expired comment threads")
			}
		}
	}
}
