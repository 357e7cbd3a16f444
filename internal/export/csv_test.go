package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"retain/internal/pipeline"
)

func sampleResults() []pipeline.Result {
	confidence := 1.0
	return []pipeline.Result{
		{
			Path:       "/data/records/budget 2018.txt",
			Label:      pipeline.LabelDestroy,
			Confidence: &confidence,
			Insight:    "Older than 6 years - automatic destroy",
			Status:     pipeline.StatusOK,
			ModifiedAt: time.Date(2018, 5, 2, 14, 30, 0, 0, time.UTC),
			SizeBytes:  3072,
		},
		{
			Path:        "/data/records/broken.txt",
			Label:       pipeline.LabelNA,
			Status:      pipeline.StatusError,
			ErrorDetail: "inference timeout",
		},
	}
}

func TestWriteCSVLayout(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, sampleResults()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "FileName" || rows[0][8] != "Status" {
		t.Fatalf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "budget 2018.txt" || first[1] != ".txt" {
		t.Fatalf("name/extension = %q/%q", first[0], first[1])
	}
	if first[3] != "2018-05-02 14:30:00" {
		t.Fatalf("last modified = %q", first[3])
	}
	if first[4] != "3.0" {
		t.Fatalf("size kb = %q", first[4])
	}
	if first[5] != "DESTROY" || first[6] != "1.00" {
		t.Fatalf("determination/confidence = %q/%q", first[5], first[6])
	}

	second := rows[2]
	if second[6] != "" {
		t.Fatalf("error result must leave confidence blank, got %q", second[6])
	}
	if second[7] != "inference timeout" {
		t.Fatalf("error detail should fill insights, got %q", second[7])
	}
	if second[8] != "error" {
		t.Fatalf("status = %q", second[8])
	}
}

func TestWriteCSVFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "run.csv")
	if err := WriteCSVFile(path, sampleResults()); err != nil {
		t.Fatalf("WriteCSVFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "FileName,") {
		t.Fatalf("unexpected file content: %q", string(data)[:40])
	}
}
