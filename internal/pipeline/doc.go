// Package pipeline implements the asynchronous chunked classification run:
// lazy enumeration, the retention bypass rule, per-file processing with full
// failure isolation, bounded-concurrency chunk scheduling, progress
// aggregation, and cooperative cancellation.
//
// A run moves through created -> running -> {completed | cancelled | failed}.
// Failed is only reachable from configuration errors before the run starts;
// once running, per-file failures are recorded as error results and never
// abort the run. Cancellation is observed at chunk boundaries and between
// enumeration yields, so quiescence is bounded by roughly one chunk's
// processing time and in-flight extractions are never force-aborted.
//
// Invariants maintained at every observation point:
//   - success + skipped + errors == processed
//   - concurrent file operations never exceed the configured maximum
//   - result paths are unique within a run
//   - label is NA exactly when a file was skipped, failed, or had no usable
//     content
//
// The package depends only on the Extractor and Classifier capabilities;
// format adapters and inference backends live elsewhere.
package pipeline
