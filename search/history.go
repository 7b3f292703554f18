package search

import "gonum.org/v1/gonum/stat"

// HistoryRecord captures one generation of a search.
type HistoryRecord struct {
	Generation       int     `json:"generation"`        // 1-based
	BestFitness      float64 `json:"best_fitness"`      // fitness of the generation's best build
	TotalPrice       float64 `json:"total_price"`       // of the generation's best build
	TotalPerformance float64 `json:"total_performance"` // of the generation's best build
	MeanFitness      float64 `json:"mean_fitness"`      // over the whole population
	FitnessStdDev    float64 `json:"fitness_stddev"`    // sample standard deviation over the population
	Feasible         int     `json:"feasible"`          // individuals with fitness > 0
}

// newHistoryRecord summarizes a generation whose population is sorted by
// descending fitness; scores is index-aligned with the sorted population.
func newHistoryRecord(generation int, best Build, scores []float64) HistoryRecord {
	mean, std := stat.MeanStdDev(scores, nil)
	feasible := 0
	for _, s := range scores {
		if s > 0 {
			feasible++
		}
	}
	return HistoryRecord{
		Generation:       generation,
		BestFitness:      scores[0],
		TotalPrice:       best.TotalPrice(),
		TotalPerformance: best.TotalPerformance(),
		MeanFitness:      mean,
		FitnessStdDev:    std,
		Feasible:         feasible,
	}
}

// BestSoFar returns the running maximum of BestFitness, one value per record.
// Because the incumbent is always carried over, it equals BestFitness for a
// completed run; it is useful for partial or externally built histories.
func BestSoFar(history []HistoryRecord) []float64 {
	out := make([]float64, len(history))
	best := 0.0
	for i, h := range history {
		if i == 0 || h.BestFitness > best {
			best = h.BestFitness
		}
		out[i] = best
	}
	return out
}
