package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"retain/internal/pipeline"
)

// csvHeader matches the spreadsheet layout records staff already work with.
var csvHeader = []string{
	"FileName",
	"Extension",
	"FullPath",
	"LastModified",
	"SizeKB",
	"ModelDetermination",
	"ConfidenceScore",
	"ContextualInsights",
	"Status",
}

// WriteCSV streams results to w in completion order.
func WriteCSV(w io.Writer, results []pipeline.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write(csvRow(result)); err != nil {
			return fmt.Errorf("write row for %s: %w", result.Path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes results to path, creating parent directories as needed.
func WriteCSVFile(path string, results []pipeline.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(file, results); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func csvRow(result pipeline.Result) []string {
	modified := ""
	if !result.ModifiedAt.IsZero() {
		modified = result.ModifiedAt.Format("2006-01-02 15:04:05")
	}
	confidence := ""
	if result.Confidence != nil {
		confidence = fmt.Sprintf("%.2f", *result.Confidence)
	}
	insight := result.Insight
	if result.Status == pipeline.StatusError && result.ErrorDetail != "" && insight == "" {
		insight = result.ErrorDetail
	}
	return []string{
		filepath.Base(result.Path),
		strings.ToLower(filepath.Ext(result.Path)),
		result.Path,
		modified,
		fmt.Sprintf("%.1f", float64(result.SizeBytes)/1024.0),
		string(result.Label),
		confidence,
		insight,
		string(result.Status),
	}
}
