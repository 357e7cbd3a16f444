package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"retain/internal/logging"
)

// Scheduler consumes the enumerator's task stream in bounded chunks and
// dispatches each chunk with concurrency capped at maxConcurrency. The
// cancellation token is observed before each new chunk; an in-flight chunk
// always drains fully rather than aborting tasks mid-extraction.
type Scheduler struct {
	chunkSize      int
	maxConcurrency int
	token          *CancelToken
	logger         *slog.Logger
}

// NewScheduler constructs a chunk scheduler.
func NewScheduler(chunkSize, maxConcurrency int, token *CancelToken, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		chunkSize:      chunkSize,
		maxConcurrency: maxConcurrency,
		token:          token,
		logger:         logging.WithComponent(logger, "scheduler"),
	}
}

// Run drains tasks until the stream closes or cancellation is observed at a
// chunk boundary. process is invoked for each task; the semaphore guarantees
// at most maxConcurrency concurrent invocations at any instant. Run reports
// whether the stream was fully consumed (false means cancelled).
func (s *Scheduler) Run(ctx context.Context, tasks <-chan FileTask, process func(context.Context, FileTask)) bool {
	semaphore := make(chan struct{}, s.maxConcurrency)
	chunk := make([]FileTask, 0, s.chunkSize)
	chunkIndex := 0

	dispatch := func() {
		var wg sync.WaitGroup
		for _, task := range chunk {
			wg.Add(1)
			semaphore <- struct{}{}
			go func(task FileTask) {
				defer wg.Done()
				defer func() { <-semaphore }()
				process(ctx, task)
			}(task)
		}
		wg.Wait()
		chunkIndex++
		chunk = chunk[:0]
		// Brief cooperative yield between chunks so a caller-owned event loop
		// stays responsive.
		runtime.Gosched()
	}

	for task := range tasks {
		chunk = append(chunk, task)
		if len(chunk) < s.chunkSize {
			continue
		}
		if s.cancelled(ctx) {
			s.logger.Info("dispatch stopped on cancellation",
				logging.String(logging.FieldEventType, "scheduler_cancelled"),
				logging.Int("chunks_dispatched", chunkIndex),
			)
			go drain(tasks)
			return false
		}
		dispatch()
	}

	if len(chunk) > 0 {
		if s.cancelled(ctx) {
			return false
		}
		dispatch()
	}
	s.logger.Debug("task stream drained",
		logging.Int("chunks_dispatched", chunkIndex),
	)
	return true
}

func (s *Scheduler) cancelled(ctx context.Context) bool {
	return s.token.Cancelled() || ctx.Err() != nil
}

// drain unblocks the enumerator goroutine after an early stop.
func drain(tasks <-chan FileTask) {
	for range tasks {
	}
}
