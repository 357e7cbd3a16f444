package pipeline

import "sync"

// Tracker accumulates results and progress counters for a run. Record is the
// sole mutation entry point and is internally serialized; callers need no
// external locking. Result order is completion order, not enumeration order.
type Tracker struct {
	mu       sync.Mutex
	results  []Result
	total    int
	success  int
	skipped  int
	errors   int
	current  string
	callback func(Snapshot)
}

// NewTracker constructs a tracker. callback, when non-nil, is invoked with a
// fresh snapshot after every recorded result.
func NewTracker(callback func(Snapshot)) *Tracker {
	return &Tracker{callback: callback}
}

// AddDiscovered raises the advisory total while enumeration is streaming.
func (t *Tracker) AddDiscovered(n int) {
	t.mu.Lock()
	t.total += n
	t.mu.Unlock()
}

// Record atomically folds one finalized result into the counters and ordered
// result list, then emits a progress snapshot. Safe for concurrent use by
// in-flight tasks.
func (t *Tracker) Record(result Result) {
	t.mu.Lock()
	switch result.Status {
	case StatusSkipped:
		t.skipped++
	case StatusError:
		t.errors++
	default:
		t.success++
	}
	t.results = append(t.results, result)
	t.current = result.Path
	snapshot := t.snapshotLocked()
	callback := t.callback
	t.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// Snapshot returns a read-only copy of current progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Results returns the accumulated results in completion order.
func (t *Tracker) Results() []Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		Processed:   t.success + t.skipped + t.errors,
		Total:       t.total,
		Success:     t.success,
		Skipped:     t.skipped,
		Errors:      t.errors,
		CurrentFile: t.current,
	}
}
