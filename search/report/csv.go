package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/buildsearch/buildsearch/search"
)

// CSV column headers for the convergence history.
var historyColumns = []string{
	"generation", "best_fitness", "total_price", "total_performance",
	"mean_fitness", "fitness_stddev", "feasible",
}

// WriteHistoryCSV writes one row per generation. Floats use the shortest
// representation that round-trips.
func WriteHistoryCSV(w io.Writer, history []search.HistoryRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(historyColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, h := range history {
		row := []string{
			strconv.Itoa(h.Generation),
			strconv.FormatFloat(h.BestFitness, 'g', -1, 64),
			strconv.FormatFloat(h.TotalPrice, 'f', -1, 64),
			strconv.FormatFloat(h.TotalPerformance, 'f', -1, 64),
			strconv.FormatFloat(h.MeanFitness, 'g', -1, 64),
			strconv.FormatFloat(h.FitnessStdDev, 'g', -1, 64),
			strconv.Itoa(h.Feasible),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", h.Generation, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportHistoryCSV writes the history to a file at path.
func ExportHistoryCSV(path string, history []search.HistoryRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	if err := WriteHistoryCSV(file, history); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing history file: %w", err)
	}
	return nil
}
