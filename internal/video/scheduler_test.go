package video

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresAfterDelay(t *testing.T) {
	s := NewStatusScheduler()
	defer s.Shutdown()

	var fired atomic.Bool
	s.Schedule(uuid.New(), 10*time.Millisecond, func() { fired.Store(true) })

	assert.Equal(t, 1, s.Pending())
	assert.Eventually(t, fired.Load, time.Second, 2*time.Millisecond)
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 2*time.Millisecond)
}

func TestSchedulerCancelStopsCallback(t *testing.T) {
	s := NewStatusScheduler()
	defer s.Shutdown()

	var fired atomic.Bool
	id := uuid.New()
	s.Schedule(id, 20*time.Millisecond, func() { fired.Store(true) })

	assert.True(t, s.Cancel(id))
	assert.Equal(t, 0, s.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestSchedulerReplaceExisting(t *testing.T) {
	s := NewStatusScheduler()
	defer s.Shutdown()

	var first, second atomic.Bool
	id := uuid.New()
	s.Schedule(id, 10*time.Millisecond, func() { first.Store(true) })
	s.Schedule(id, 10*time.Millisecond, func() { second.Store(true) })

	assert.Equal(t, 1, s.Pending())
	assert.Eventually(t, second.Load, time.Second, 2*time.Millisecond)
	assert.False(t, first.Load(), "replaced timer must not fire")
}

func TestSchedulerShutdownCancelsAll(t *testing.T) {
	s := NewStatusScheduler()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		s.Schedule(uuid.New(), 20*time.Millisecond, func() { fired.Add(1) })
	}
	s.Shutdown()

	assert.Equal(t, 0, s.Pending())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Scheduling after shutdown is a no-op.
	s.Schedule(uuid.New(), time.Millisecond, func() { fired.Add(1) })
	assert.Equal(t, 0, s.Pending())
}
