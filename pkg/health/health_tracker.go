package health

import (
	"sync/atomic"
	"time"
)

// Status of one backend as last observed. Unknown until the first real call
// or probe; there is no terminal state, an Unreachable backend heals back to
// Reachable on the next success.
type Status int32

const (
	StatusUnknown Status = iota
	StatusReachable
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusReachable:
		return "reachable"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

type (
	// Tracker holds process-wide reachability flags for the inference backend
	// and the persistence/storage backend. Reads and writes are lock-free;
	// briefly stale values are fine, the tracker only steers real-vs-fallback
	// decisions.
	Tracker interface {
		InferenceStatus() Status
		StorageStatus() Status
		MarkInference(ok bool)
		MarkStorage(ok bool)
		CheckedAt() time.Time
	}

	tracker struct {
		inference atomic.Int32
		storage   atomic.Int32
		checkedAt atomic.Int64 // unix nanos of the last transition
	}
)

func NewTracker() Tracker {
	return &tracker{}
}

func (t *tracker) InferenceStatus() Status {
	return Status(t.inference.Load())
}

func (t *tracker) StorageStatus() Status {
	return Status(t.storage.Load())
}

func (t *tracker) MarkInference(ok bool) {
	t.inference.Store(int32(statusFor(ok)))
	t.checkedAt.Store(time.Now().UnixNano())
}

func (t *tracker) MarkStorage(ok bool) {
	t.storage.Store(int32(statusFor(ok)))
	t.checkedAt.Store(time.Now().UnixNano())
}

func (t *tracker) CheckedAt() time.Time {
	nanos := t.checkedAt.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

func statusFor(ok bool) Status {
	if ok {
		return StatusReachable
	}
	return StatusUnreachable
}
