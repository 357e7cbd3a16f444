package main

import (
	"context"
	"testing"

	"retain/internal/config"
	"retain/internal/pipeline"
)

func TestNewRegistryHonorsIncludeList(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.IncludeExt = []string{".txt", ".docx"}

	supported := newRegistry(&cfg).Supported()
	if len(supported) != 1 || supported[0] != ".txt" {
		t.Fatalf("supported = %v, want only .txt", supported)
	}
}

func TestNewRegistryEmptyIncludeAdmitsAllTextExtensions(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.IncludeExt = nil

	if got := len(newRegistry(&cfg).Supported()); got < 10 {
		t.Fatalf("supported extensions = %d, want the full text set", got)
	}
}

func TestKeywordBackendMapsToClassification(t *testing.T) {
	selected, name, err := newBackend(&config.Config{
		Classifier: config.Classifier{Backend: "heuristic"},
	}, false)
	if err != nil {
		t.Fatalf("newBackend: %v", err)
	}
	if name != "heuristic" {
		t.Fatalf("name = %q", name)
	}

	out, err := selected.Classify(context.Background(), "an official permanent record")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if out.Label != pipeline.LabelKeep {
		t.Fatalf("label = %q", out.Label)
	}
	if out.Confidence == nil {
		t.Fatal("confidence must be set")
	}
}

func TestOfflineForcesHeuristic(t *testing.T) {
	cfg := config.Default()
	_, name, err := newBackend(&cfg, true)
	if err != nil {
		t.Fatalf("newBackend: %v", err)
	}
	if name != "heuristic" {
		t.Fatalf("offline must select heuristic, got %q", name)
	}
}

func TestNewBackendRejectsUnknown(t *testing.T) {
	if _, _, err := newBackend(&config.Config{
		Classifier: config.Classifier{Backend: "watson"},
	}, false); err == nil {
		t.Fatal("unknown backend must error")
	}
}
