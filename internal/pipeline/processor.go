package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"retain/internal/logging"
	"retain/internal/services"
)

// Extractor is the content-extraction collaborator. Unsupported formats are
// reported via the unsupported flag, not an error.
type Extractor interface {
	Extract(ctx context.Context, path string) (text string, unsupported bool, err error)
}

// Classification is the payload returned by an inference backend.
type Classification struct {
	Label      Label
	Confidence *float64
	Insight    string
}

// Classifier is the inference collaborator backed by the local model server
// or the keyword heuristic.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Processor runs the per-file pipeline: bypass check, extraction, inference,
// validation. It always returns a Result; internal failures are captured and
// converted to error results, never propagated.
type Processor struct {
	cfg        Config
	extractor  Extractor
	classifier Classifier
	logger     *slog.Logger

	now  func() time.Time
	stat func(string) (fs.FileInfo, error)
}

// NewProcessor wires the per-file pipeline with its collaborators.
func NewProcessor(cfg Config, extractor Extractor, classifier Classifier, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classifier,
		logger:     logging.WithComponent(logger, "processor"),
		now:        time.Now,
		stat:       os.Stat,
	}
}

// Process classifies one file. It never returns an error: every failure mode
// becomes a Result with status error or skipped.
func (p *Processor) Process(ctx context.Context, task FileTask) (result Result) {
	started := p.now()
	defer func() {
		if r := recover(); r != nil {
			result = p.errorResult(task, result, fmt.Errorf("panic: %v", r))
		}
		result.Duration = p.now().Sub(started)
	}()

	ctx = services.WithFile(ctx, task.Path)

	info, err := p.stat(task.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// The file disappeared mid-run; treated as skipped, not fatal.
			return p.skippedResult(Result{Path: task.Path}, "file no longer exists")
		}
		return p.errorResult(task, Result{}, services.Wrap(services.ErrExtraction, "processor", "stat", task.Path, err))
	}
	modified := info.ModTime()
	result = Result{Path: task.Path, ModifiedAt: modified, SizeBytes: info.Size()}

	age := AgeYears(modified, p.now())
	expired := Expired(age, p.cfg.RetentionYears)
	if expired {
		result.Label = LabelDestroy
		result.Confidence = confidence(1.0)
		result.Insight = ExpiredInsight(p.cfg.RetentionYears)
		result.Status = StatusOK
		return result
	}

	if p.cfg.mode() == ModeAgeOnly {
		result.Label = LabelNA
		result.Insight = fmt.Sprintf("File newer than %d years", p.cfg.RetentionYears)
		result.Status = StatusSkipped
		return result
	}

	text, unsupported, err := p.extractor.Extract(ctx, task.Path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return p.skippedResult(result, "file no longer exists")
		}
		return p.errorResult(task, result, services.Wrap(services.ErrExtraction, "processor", "extract", task.Path, err))
	}
	if unsupported {
		result.Label = LabelNA
		result.Insight = "Unsupported file type: " + extensionOf(task.Path)
		result.Status = StatusSkipped
		return result
	}
	text = BoundContext(text, p.cfg.MaxContextLines, p.cfg.MaxContextChars)
	if strings.TrimSpace(text) == "" {
		result.Label = LabelNA
		result.Insight = "No usable content extracted"
		result.Status = StatusSkipped
		return result
	}

	classification, err := p.classifier.Classify(ctx, text)
	if err != nil {
		return p.errorResult(task, result, services.Wrap(services.ErrInference, "processor", "classify", task.Path, err))
	}

	if err := validateClassification(classification); err != nil {
		return p.errorResult(task, result, err)
	}

	result.Label = classification.Label
	result.Confidence = adjustConfidence(classification.Label, classification.Confidence, expired)
	result.Insight = classification.Insight
	result.Status = StatusOK
	return result
}

// validateClassification enforces the inference contract: one of the four
// labels and, when present, a confidence inside [0,1].
func validateClassification(c Classification) error {
	if !c.Label.Valid() {
		return services.Wrap(services.ErrValidation, "processor", "validate", fmt.Sprintf("label %q is not a retention category", c.Label), nil)
	}
	if c.Confidence != nil && (*c.Confidence < 0 || *c.Confidence > 1) {
		return services.Wrap(services.ErrValidation, "processor", "validate", fmt.Sprintf("confidence %.3f outside [0,1]", *c.Confidence), nil)
	}
	return nil
}

// adjustConfidence applies the hybrid scoring rule: a model-reported DESTROY
// on a file still inside the retention window is capped at 0.8.
func adjustConfidence(label Label, conf *float64, expired bool) *float64 {
	if conf == nil {
		return nil
	}
	value := *conf
	if label == LabelDestroy && !expired && value > 0.8 {
		value = 0.8
	}
	return confidence(value)
}

// BoundContext limits extracted text to the configured number of lines and
// characters before it is sent to the classifier.
func BoundContext(text string, maxLines, maxChars int) string {
	if maxLines > 0 {
		lines := strings.SplitN(text, "\n", maxLines+1)
		if len(lines) > maxLines {
			text = strings.Join(lines[:maxLines], "\n")
		}
	}
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

// skippedResult and errorResult finalize a partially-built result so the
// ModifiedAt/SizeBytes gathered before the failure stay on the row.
func (p *Processor) skippedResult(result Result, insight string) Result {
	result.Label = LabelNA
	result.Confidence = nil
	result.Insight = insight
	result.Status = StatusSkipped
	return result
}

func (p *Processor) errorResult(task FileTask, result Result, err error) Result {
	detail := "processing failure"
	if err != nil {
		detail = err.Error()
	}
	p.logger.Warn("file processing failed",
		logging.String(logging.FieldFile, task.Path),
		logging.Error(err),
	)
	result.Path = task.Path
	result.Label = LabelNA
	result.Confidence = nil
	result.Insight = "Processing error: " + truncate(detail, 200)
	result.Status = StatusError
	result.ErrorDetail = detail
	return result
}

func confidence(v float64) *float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return &v
}

func extensionOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return "(none)"
	}
	slash := strings.LastIndexAny(path, `/\`)
	if idx < slash {
		return "(none)"
	}
	return strings.ToLower(path[idx:])
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
