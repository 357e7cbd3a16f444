package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"retain/internal/logging"
	"retain/internal/services"
)

// Pipeline builds runs over a fixed set of collaborators. A Pipeline holds no
// state that survives past a single run; each run is fully parameterized by
// its config.
type Pipeline struct {
	cfg        Config
	extractor  Extractor
	classifier Classifier
	logger     *slog.Logger
}

// New constructs a pipeline over the supplied collaborators.
func New(cfg Config, extractor Extractor, classifier Classifier, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, extractor: extractor, classifier: classifier, logger: logger}
}

// Run is the handle for one in-flight or finished classification run.
type Run struct {
	id      string
	token   *CancelToken
	tracker *Tracker
	started time.Time

	mu    sync.Mutex
	state State
	done  chan struct{}
}

// Start validates the configuration, verifies the root is an enumerable
// directory, and launches the run. Configuration problems are the only
// failures surfaced here; once the run is started, per-file errors become
// result rows and never abort it. progress may be nil.
func (p *Pipeline) Start(ctx context.Context, folder string, progress func(Snapshot)) (*Run, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if p.extractor == nil && p.cfg.mode() != ModeAgeOnly {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", "extractor is required", nil)
	}
	if p.classifier == nil && p.cfg.mode() != ModeAgeOnly {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", "classifier is required", nil)
	}
	// A root that cannot be listed at all is fatal before the run starts;
	// per-entry failures deeper in the tree become skipped rows instead.
	dir, err := os.Open(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", fmt.Sprintf("folder %s is not readable", folder), err)
	}
	info, err := dir.Stat()
	if err != nil {
		_ = dir.Close()
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", fmt.Sprintf("folder %s is not readable", folder), err)
	}
	if !info.IsDir() {
		_ = dir.Close()
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", fmt.Sprintf("%s is not a directory", folder), nil)
	}
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		_ = dir.Close()
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "start", fmt.Sprintf("folder %s is not readable", folder), err)
	}
	_ = dir.Close()

	run := &Run{
		id:      uuid.NewString(),
		token:   NewCancelToken(),
		tracker: NewTracker(progress),
		started: time.Now(),
		state:   StateRunning,
		done:    make(chan struct{}),
	}

	runCtx := services.WithRunID(ctx, run.id)
	logger := logging.WithContext(runCtx, p.logger)
	tracker := run.tracker

	// Walk failures arrive on the enumerator's side channel and are folded in
	// as skipped entries so partial progress stays observable.
	onSkip := func(entry SkippedEntry) {
		tracker.AddDiscovered(1)
		tracker.Record(Result{
			Path:    entry.Path,
			Label:   LabelNA,
			Insight: "Unreadable entry: " + entry.Reason,
			Status:  StatusSkipped,
		})
	}
	enumerator := NewEnumerator(folder, run.token, logger, onSkip)
	scheduler := NewScheduler(p.cfg.ChunkSize, p.cfg.MaxConcurrency, run.token, logger)
	processor := NewProcessor(p.cfg, p.extractor, p.classifier, logger)

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("folder", folder),
		logging.Int("chunk_size", p.cfg.ChunkSize),
		logging.Int("max_concurrency", p.cfg.MaxConcurrency),
		logging.Int("retention_years", p.cfg.RetentionYears),
		logging.String("mode", string(p.cfg.mode())),
	)

	go func() {
		defer close(run.done)

		tasks := enumerator.Tasks(runCtx)
		counted := make(chan FileTask)
		go func() {
			defer close(counted)
			for task := range tasks {
				tracker.AddDiscovered(1)
				counted <- task
			}
		}()

		completed := scheduler.Run(runCtx, counted, func(taskCtx context.Context, task FileTask) {
			tracker.Record(processor.Process(taskCtx, task))
		})

		// A run is completed when the stream was exhausted and every dispatched
		// chunk drained, even if a cancel request raced the final chunk.
		final := StateCompleted
		if !completed {
			final = StateCancelled
		}
		run.setState(final)

		snapshot := tracker.Snapshot()
		logger.Info("run finished",
			logging.String(logging.FieldEventType, "run_finish"),
			logging.String("state", string(final)),
			logging.Int("processed", snapshot.Processed),
			logging.Int("success", snapshot.Success),
			logging.Int("skipped", snapshot.Skipped),
			logging.Int("errors", snapshot.Errors),
			logging.Duration("elapsed", time.Since(run.started)),
		)
	}()

	return run, nil
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Cancel requests cooperative cancellation: no new chunk is dispatched after
// this returns, and the in-flight chunk drains fully. Idempotent.
func (r *Run) Cancel() {
	r.token.Cancel()
}

// Snapshot returns current progress.
func (r *Run) Snapshot() Snapshot {
	return r.tracker.Snapshot()
}

// State returns the run's lifecycle state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until the run reaches a terminal state and returns the
// accumulated results in completion order. Partial results are always
// available, including after cancellation.
func (r *Run) Wait() ([]Result, State) {
	<-r.done
	return r.tracker.Results(), r.State()
}

func (r *Run) setState(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
}
