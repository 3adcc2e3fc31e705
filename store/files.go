// Package store persists scraped records: CSV/JSON output files per run and
// a SQLite run-history database.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aviguptakonda/yc-demoday-batch/company"
)

// Writer lays out one run's output directory:
// <base>/output_<timestamp>/scraper/data/yc_companies_<timestamp>.{csv,json}
type Writer struct {
	baseDir   string
	timestamp string
}

// NewWriter creates a writer stamped with the current run time.
func NewWriter(baseDir string) *Writer {
	return &Writer{
		baseDir:   baseDir,
		timestamp: time.Now().Format("20060102_150405"),
	}
}

// OutputDir returns this run's output directory.
func (w *Writer) OutputDir() string {
	return filepath.Join(w.baseDir, "output_"+w.timestamp)
}

func (w *Writer) dataDir() (string, error) {
	dir := filepath.Join(w.OutputDir(), "scraper", "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %v", err)
	}
	return dir, nil
}

// WriteCSV writes the records as rows; list columns are JSON-encoded cells
// so the analyzer can parse them back.
func (w *Writer) WriteCSV(records []company.Company) (string, error) {
	dir, err := w.dataDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("yc_companies_%s.csv", w.timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"name", "description", "url", "categories", "founders", "batch", "scraped_at"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %v", err)
	}
	for _, r := range records {
		founders, err := json.Marshal(r.Founders)
		if err != nil {
			return "", fmt.Errorf("failed to encode founders for %s: %v", r.Name, err)
		}
		row := []string{
			r.Name,
			r.Description,
			r.URL,
			strings.Join(r.Categories, ", "),
			string(founders),
			r.Batch,
			r.ScrapedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %v", err)
	}
	return path, nil
}

// WriteJSON writes the records as an indented JSON document.
func (w *Writer) WriteJSON(records []company.Company) (string, error) {
	dir, err := w.dataDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("yc_companies_%s.json", w.timestamp))

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %v", err)
	}
	return path, nil
}

// ReadJSON loads records back from a JSON output file.
func ReadJSON(path string) ([]company.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %v", err)
	}
	var records []company.Company
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %v", err)
	}
	return records, nil
}
