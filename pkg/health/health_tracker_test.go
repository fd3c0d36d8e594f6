package health_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"riceguard/pkg/health"
)

func TestTrackerStartsUnknown(t *testing.T) {
	tracker := health.NewTracker()

	assert.Equal(t, health.StatusUnknown, tracker.InferenceStatus())
	assert.Equal(t, health.StatusUnknown, tracker.StorageStatus())
	assert.True(t, tracker.CheckedAt().IsZero())
}

func TestTrackerTransitions(t *testing.T) {
	tracker := health.NewTracker()

	tracker.MarkInference(true)
	assert.Equal(t, health.StatusReachable, tracker.InferenceStatus())

	tracker.MarkInference(false)
	assert.Equal(t, health.StatusUnreachable, tracker.InferenceStatus())

	// No manual reset: the next success heals the flag.
	tracker.MarkInference(true)
	assert.Equal(t, health.StatusReachable, tracker.InferenceStatus())

	assert.False(t, tracker.CheckedAt().IsZero())
}

func TestTrackerFlagsAreIndependent(t *testing.T) {
	tracker := health.NewTracker()

	tracker.MarkInference(false)
	tracker.MarkStorage(true)

	assert.Equal(t, health.StatusUnreachable, tracker.InferenceStatus())
	assert.Equal(t, health.StatusReachable, tracker.StorageStatus())
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tracker := health.NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.MarkInference(i%2 == 0)
			tracker.MarkStorage(i%2 == 1)
			_ = tracker.InferenceStatus()
			_ = tracker.StorageStatus()
		}(i)
	}
	wg.Wait()

	assert.NotEqual(t, health.StatusUnknown, tracker.InferenceStatus())
	assert.NotEqual(t, health.StatusUnknown, tracker.StorageStatus())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "unknown", health.StatusUnknown.String())
	assert.Equal(t, "reachable", health.StatusReachable.String())
	assert.Equal(t, "unreachable", health.StatusUnreachable.String())
}
