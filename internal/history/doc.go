// Package history persists completed classification runs to SQLite.
//
// The pipeline itself never writes here; the CLI saves a run's summary and
// results after Wait returns, and the history commands read them back. A
// flock next to the database keeps concurrent retain processes apart, and an
// embedded schema with a version row guards against incompatible databases.
package history
