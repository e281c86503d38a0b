package utils

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"time"

	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/indicators"
)

// WriteBarsToCSV dumps raw bars to a CSV file, oldest first.
func WriteBarsToCSV(bars []domain.Bar, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"date", "open", "high", "low", "close", "volume"})
	for _, b := range bars {
		writer.Write([]string{
			b.Timestamp.Format(time.DateOnly),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// WriteAnalysisToCSV dumps the series plus every indicator component to a CSV
// file, most recent row first. Indicator columns are positionally aligned
// with the bars; undefined points become empty cells.
func WriteAnalysisToCSV(series *domain.Series, results map[string]indicators.Result, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Deterministic column order: indicators by name, components in their
	// declared order.
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	header := []string{"date", "open", "high", "low", "close", "volume"}
	var columns []indicators.Series
	for _, name := range names {
		for _, comp := range results[name].Components {
			header = append(header, comp.Name)
			columns = append(columns, comp.Values)
		}
	}
	writer.Write(header)

	for i := series.Len() - 1; i >= 0; i-- {
		b := series.At(i)
		row := []string{
			b.Timestamp.Format(time.DateOnly),
			strconv.FormatFloat(b.Open, 'f', 2, 64),
			strconv.FormatFloat(b.High, 'f', 2, 64),
			strconv.FormatFloat(b.Low, 'f', 2, 64),
			strconv.FormatFloat(b.Close, 'f', 2, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		for _, col := range columns {
			if col[i].Defined {
				row = append(row, strconv.FormatFloat(col[i].V, 'f', 4, 64))
			} else {
				row = append(row, "")
			}
		}
		writer.Write(row)
	}
	return writer.Error()
}
