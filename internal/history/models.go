package history

import "time"

// RunRecord summarizes one completed pipeline run.
type RunRecord struct {
	ID         string
	Folder     string
	Mode       string
	State      string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int
	Total      int
	Success    int
	Skipped    int
	Errors     int
}

// ResultRecord is one file outcome within a run, in completion order.
type ResultRecord struct {
	Path        string
	Label       string
	Confidence  *float64
	Insight     string
	Status      string
	ErrorDetail string
	ModifiedAt  time.Time
	SizeBytes   int64
	Duration    time.Duration
}
