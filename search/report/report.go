// Package report renders search results for people and for other tools:
// console tables, a JSON result document and a CSV convergence history.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/buildsearch/buildsearch/search"
)

// SlotSummary describes one filled slot of the recommended build.
type SlotSummary struct {
	Category    search.Category `json:"category"`
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
	Performance float64         `json:"performance"`
	Socket      string          `json:"socket,omitempty"`
}

// Summary is the JSON document written for a finished (or interrupted) run.
type Summary struct {
	RunID            string                 `json:"run_id"`
	Seed             int64                  `json:"seed"`
	PopSize          int                    `json:"pop_size"`
	Generations      int                    `json:"generations"`
	Budget           float64                `json:"budget"`
	CrossoverRate    float64                `json:"crossover_rate"`
	MutationRate     float64                `json:"mutation_rate"`
	BestGeneration   int                    `json:"best_generation"`
	BestFitness      float64                `json:"best_fitness"`
	TotalPrice       float64                `json:"total_price"`
	TotalPerformance float64                `json:"total_performance"`
	Compatible       bool                   `json:"compatible"`
	Build            []SlotSummary          `json:"build"`
	Unfilled         []search.Category      `json:"unfilled,omitempty"`
	History          []search.HistoryRecord `json:"history"`
}

// NewSummary flattens a result into a Summary with a fresh run id.
func NewSummary(res *search.Result, cfg search.Config, seed int64) *Summary {
	s := &Summary{
		RunID:            uuid.NewString(),
		Seed:             seed,
		PopSize:          cfg.PopSize,
		Generations:      cfg.Generations,
		Budget:           cfg.Budget,
		CrossoverRate:    cfg.CrossoverRate,
		MutationRate:     cfg.MutationRate,
		BestGeneration:   res.BestGeneration,
		BestFitness:      res.BestFitness,
		TotalPrice:       res.Best.TotalPrice(),
		TotalPerformance: res.Best.TotalPerformance(),
		Compatible:       res.Best.Compatible(),
		Build:            make([]SlotSummary, 0, search.NumCategories),
		History:          res.History,
	}
	for _, c := range search.Categories() {
		slot := res.Best.Slot(c)
		if !slot.Filled {
			s.Unfilled = append(s.Unfilled, c)
			continue
		}
		s.Build = append(s.Build, SlotSummary{
			Category:    c,
			ID:          slot.Component.ID,
			Name:        slot.Component.Name,
			Price:       slot.Component.Price,
			Performance: slot.Component.Performance,
			Socket:      slot.Component.Socket,
		})
	}
	return s
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return nil
}

// PrintHistory writes the best fitness of every generation as a table.
func PrintHistory(w io.Writer, history []search.HistoryRecord) {
	fmt.Fprintln(w, "=== Best Fitness per Generation ===")
	fmt.Fprintf(w, "%10s  %14s  %14s  %12s  %14s  %8s\n",
		"Generation", "Fitness", "Price", "Performance", "Mean Fitness", "Feasible")
	for _, h := range history {
		fmt.Fprintf(w, "%10d  %14.6e  %14.2f  %12.2f  %14.6e  %8d\n",
			h.Generation, h.BestFitness, h.TotalPrice, h.TotalPerformance, h.MeanFitness, h.Feasible)
	}
}

// PrintBuild writes the recommended build and its totals.
// Unfilled slots are omitted from the component list.
func PrintBuild(w io.Writer, res *search.Result) {
	fmt.Fprintln(w, "=== Recommended Build ===")
	fmt.Fprintf(w, "Best Generation      : %d\n", res.BestGeneration)
	for _, c := range search.Categories() {
		slot := res.Best.Slot(c)
		if !slot.Filled {
			continue
		}
		fmt.Fprintf(w, "%-13s: %s (Price: %.2f, Performance: %.2f)\n",
			c, slot.Component.Name, slot.Component.Price, slot.Component.Performance)
	}
	fmt.Fprintf(w, "Total Price          : %.2f\n", res.Best.TotalPrice())
	fmt.Fprintf(w, "Total Performance    : %.2f\n", res.Best.TotalPerformance())
	fmt.Fprintf(w, "Fitness Score        : %.6e\n", res.BestFitness)
	if !res.Best.Compatible() {
		fmt.Fprintln(w, "Warning              : CPU and Motherboard are not compatible")
	}
}

// PrintCatalog lists a catalog grouped by category.
func PrintCatalog(w io.Writer, catalog *search.Catalog) {
	fmt.Fprintf(w, "=== Catalog (%d components) ===\n", catalog.Len())
	for _, c := range search.Categories() {
		comps := catalog.InCategory(c)
		fmt.Fprintf(w, "%s (%d)\n", c, len(comps))
		for _, comp := range comps {
			socket := ""
			if comp.Socket != "" {
				socket = " [" + comp.Socket + "]"
			}
			fmt.Fprintf(w, "  %6d  %-40s %14.2f %10.2f%s\n", comp.ID, comp.Name, comp.Price, comp.Performance, socket)
		}
	}
}
