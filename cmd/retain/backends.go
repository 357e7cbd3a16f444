package main

import (
	"context"
	"fmt"

	"retain/internal/config"
	"retain/internal/extraction"
	"retain/internal/heuristic"
	"retain/internal/pipeline"
	"retain/internal/services/ollama"
)

// modelBackend adapts the Ollama client to the pipeline's classifier
// interface.
type modelBackend struct {
	client *ollama.Client
}

func (b *modelBackend) Classify(ctx context.Context, text string) (pipeline.Classification, error) {
	out, err := b.client.Classify(ctx, text)
	if err != nil {
		return pipeline.Classification{}, err
	}
	confidence := out.Confidence
	return pipeline.Classification{
		Label:      pipeline.Label(out.Determination),
		Confidence: &confidence,
		Insight:    out.Insight,
	}, nil
}

func (b *modelBackend) HealthCheck(ctx context.Context) error {
	return b.client.HealthCheck(ctx)
}

// keywordBackend adapts the offline keyword classifier.
type keywordBackend struct {
	classifier *heuristic.Classifier
}

func (b *keywordBackend) Classify(ctx context.Context, text string) (pipeline.Classification, error) {
	out, err := b.classifier.Classify(ctx, text)
	if err != nil {
		return pipeline.Classification{}, err
	}
	confidence := out.Confidence
	return pipeline.Classification{
		Label:      pipeline.Label(out.Label),
		Confidence: &confidence,
		Insight:    out.Insight,
	}, nil
}

func (b *keywordBackend) HealthCheck(context.Context) error { return nil }

type backend interface {
	pipeline.Classifier
	HealthCheck(ctx context.Context) error
}

// newBackend selects the inference backend from configuration; offline forces
// the keyword heuristic regardless of the configured backend.
func newBackend(cfg *config.Config, offline bool) (backend, string, error) {
	name := cfg.Classifier.Backend
	if offline {
		name = "heuristic"
	}
	switch name {
	case "", "ollama":
		client := ollama.NewClient(ollama.Config{
			BaseURL:        cfg.Classifier.BaseURL,
			Model:          cfg.Classifier.Model,
			Temperature:    cfg.Classifier.Temperature,
			TimeoutSeconds: cfg.Classifier.TimeoutSeconds,
		})
		return &modelBackend{client: client}, "ollama", nil
	case "heuristic":
		return &keywordBackend{classifier: heuristic.New()}, "heuristic", nil
	default:
		return nil, "", fmt.Errorf("unknown classifier backend %q", name)
	}
}

// newRegistry builds the extraction registry from the configured include and
// exclude lists. An empty include list admits every extension the adapters
// support.
func newRegistry(cfg *config.Config) *extraction.Registry {
	registry := extraction.NewRegistry(cfg.Scan.ExcludeExt)

	include := map[string]struct{}{}
	for _, ext := range cfg.Scan.IncludeExt {
		include[ext] = struct{}{}
	}
	plaintext := extraction.NewPlaintext(cfg.Scan.MaxContextLines, cfg.Scan.MaxContextChars)
	for _, ext := range extraction.TextExtensions() {
		if len(include) > 0 {
			if _, ok := include[ext]; !ok {
				continue
			}
		}
		registry.Register(plaintext, ext)
	}
	return registry
}
