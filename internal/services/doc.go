// Package services defines shared utilities consumed by the classification
// pipeline and its external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and file paths for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification uniform: configuration errors abort a run before it
//     starts, while extraction/inference/validation/not-found errors are
//     always absorbed into per-file results.
//
// Use these helpers when wiring new collaborators so error handling and
// observability stay consistent across the pipeline.
package services
