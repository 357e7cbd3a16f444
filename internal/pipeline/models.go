package pipeline

import (
	"time"

	"retain/internal/services"
)

// Label is a retention category assigned to a file.
type Label string

const (
	LabelKeep       Label = "KEEP"
	LabelDestroy    Label = "DESTROY"
	LabelTransitory Label = "TRANSITORY"
	LabelNA         Label = "NA"
)

// Valid reports whether the label is one of the four allowed categories.
func (l Label) Valid() bool {
	switch l {
	case LabelKeep, LabelDestroy, LabelTransitory, LabelNA:
		return true
	}
	return false
}

// Status describes how processing of a single file concluded.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Mode selects how much work the processor performs per file.
type Mode string

const (
	// ModeClassify runs the full extraction and inference pipeline.
	ModeClassify Mode = "classify"
	// ModeAgeOnly applies only the retention bypass rule; files inside the
	// retention window are skipped without extraction or inference.
	ModeAgeOnly Mode = "age-only"
)

// State is the lifecycle phase of a pipeline run. Created and failed cover
// the window before Start returns: a run that fails validation surfaces as an
// error from Start instead of a handle, so Run.State only ever reports
// running, completed, or cancelled.
type State string

const (
	StateCreated   State = "created"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// FileTask identifies one file discovered by the enumerator. Tasks are
// immutable and consumed exactly once by the processor.
type FileTask struct {
	Path         string
	DiscoveredAt time.Time
}

// Result is the classification outcome for a single file. Results are
// append-only; once recorded they are never mutated.
type Result struct {
	Path        string
	Label       Label
	Confidence  *float64
	Insight     string
	Status      Status
	ErrorDetail string
	ModifiedAt  time.Time
	SizeBytes   int64
	Duration    time.Duration
}

// Snapshot is a read-only copy of run progress. Total is advisory while
// enumeration is still streaming.
type Snapshot struct {
	Processed   int
	Total       int
	Success     int
	Skipped     int
	Errors      int
	CurrentFile string
}

// Config parameterizes a single pipeline run. It is immutable for the run's
// duration.
type Config struct {
	ChunkSize       int
	MaxConcurrency  int
	RetentionYears  int
	MaxContextLines int
	MaxContextChars int
	Mode            Mode
}

// Validate rejects configurations that would make a run unsafe to start.
func (c Config) Validate() error {
	if c.ChunkSize < 1 {
		return services.Wrap(services.ErrConfiguration, "pipeline", "validate", "chunk size must be at least 1", nil)
	}
	if c.MaxConcurrency < 1 {
		return services.Wrap(services.ErrConfiguration, "pipeline", "validate", "max concurrency must be at least 1", nil)
	}
	if c.RetentionYears < 1 {
		return services.Wrap(services.ErrConfiguration, "pipeline", "validate", "retention years must be positive", nil)
	}
	if c.MaxContextLines < 1 || c.MaxContextChars < 1 {
		return services.Wrap(services.ErrConfiguration, "pipeline", "validate", "context bounds must be at least 1", nil)
	}
	switch c.Mode {
	case ModeClassify, ModeAgeOnly:
	case "":
	default:
		return services.Wrap(services.ErrConfiguration, "pipeline", "validate", "unknown run mode "+string(c.Mode), nil)
	}
	return nil
}

// mode returns the effective run mode.
func (c Config) mode() Mode {
	if c.Mode == "" {
		return ModeClassify
	}
	return c.Mode
}
