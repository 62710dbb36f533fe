package blog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestSessionsIsolateThreads(t *testing.T) {
	s := NewSessions(time.Hour, zerolog.Nop())

	a := s.Thread("alice", "1")
	assert.Same(t, a, s.Thread("alice", "1"))
	assert.NotSame(t, a, s.Thread("bob", "1"))
	assert.NotSame(t, a, s.Thread("alice", "2"))
	assert.Equal(t, 3, s.Len())
}

func TestSessionsSweep(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	s := NewSessions(30*time.Minute, zerolog.Nop())
	s.now = func() time.Time { return now }

	s.Thread("idle", "1")
	now = now.Add(20 * time.Minute)
	s.Thread("active", "1")

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	// a swept session starts over with an empty thread
	assert.Empty(t, s.Thread("idle", "1").Comments())
}

func TestSessionsRunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewSessions(time.Nanosecond, zerolog.Nop())
	s.Thread("x", "1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
