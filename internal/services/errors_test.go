package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := Wrap(ErrInference, "classifier", "classify", "backend unavailable", base)
	if !errors.Is(err, ErrInference) {
		t.Fatalf("expected error to match ErrInference, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to retain cause, got %v", err)
	}
	want := "inference error: classifier: classify: backend unavailable: connection refused"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "extractor", "read", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFileScoped(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		scoped bool
	}{
		{"extraction", Wrap(ErrExtraction, "extractor", "read", "", nil), true},
		{"inference", Wrap(ErrInference, "classifier", "classify", "", nil), true},
		{"validation", Wrap(ErrValidation, "processor", "validate", "", nil), true},
		{"not found", Wrap(ErrNotFound, "processor", "stat", "", nil), true},
		{"configuration", Wrap(ErrConfiguration, "pipeline", "start", "", nil), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsFileScoped(tc.err); got != tc.scoped {
			t.Errorf("%s: IsFileScoped = %v, want %v", tc.name, got, tc.scoped)
		}
	}
}
