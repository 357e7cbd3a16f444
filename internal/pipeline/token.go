package pipeline

import "sync/atomic"

// CancelToken is the shared cancellation flag for a single run. Only the run
// owner sets it; every long-running loop reads it at its checkpoints. Once
// set it is never unset within a run.
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken returns an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the token. It is idempotent and safe to call from any
// goroutine.
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Cancelled reports whether cancellation has been requested. The read is
// cheap and non-blocking.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}
