package utils

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/indicators"
)

func buildSeries(t *testing.T, closes []float64) *domain.Series {
	t.Helper()
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{Timestamp: base.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 10}
	}
	s, err := domain.NewSeries("CSV", bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()
	f, err := os.Open(filename)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return records
}

func TestWriteBarsToCSV(t *testing.T) {
	series := buildSeries(t, []float64{10, 11, 12})
	filename := filepath.Join(t.TempDir(), "bars.csv")

	if err := WriteBarsToCSV(series.Bars(), filename); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := readCSV(t, filename)
	if len(records) != 4 {
		t.Fatalf("row count = %d, want header + 3", len(records))
	}
	if records[0][0] != "date" || records[0][4] != "close" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "2024-04-01" {
		t.Errorf("first data row date = %q, want 2024-04-01", records[1][0])
	}
}

func TestWriteAnalysisToCSV(t *testing.T) {
	series := buildSeries(t, []float64{1, 2, 3, 4, 5})
	results := indicators.Run(series, indicators.Config{MovingAveragePeriods: []int{3}})
	filename := filepath.Join(t.TempDir(), "analysis.csv")

	if err := WriteAnalysisToCSV(series, results, filename); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := readCSV(t, filename)
	if len(records) != 6 {
		t.Fatalf("row count = %d, want header + 5", len(records))
	}
	header := records[0]
	if header[len(header)-1] != "sma_3" {
		t.Errorf("last header column = %q, want sma_3", header[len(header)-1])
	}

	// Most recent first: top data row is the last bar, with a defined SMA.
	if records[1][0] != "2024-04-05" {
		t.Errorf("top row date = %q, want 2024-04-05", records[1][0])
	}
	if records[1][len(header)-1] != "4.0000" {
		t.Errorf("top row sma = %q, want 4.0000", records[1][len(header)-1])
	}
	// Oldest row sits in the warm-up region: empty cell, not a zero.
	if records[5][len(header)-1] != "" {
		t.Errorf("warm-up cell = %q, want empty", records[5][len(header)-1])
	}
}
