// Package export renders classification results to files for downstream
// review. CSV is the only format today; the column layout mirrors the
// spreadsheet records staff use to action dispositions.
package export
