package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of a search run.
type Result struct {
	Best           Build           // best build seen in any generation
	BestFitness    float64         // fitness of Best
	BestGeneration int             // 1-based generation where BestFitness was first reached
	History        []HistoryRecord // one record per completed generation
}

// Run executes the generational search over catalog.
//
// Each generation is scored, stably sorted by descending fitness and recorded.
// The top half survives as the parent pool; the next generation is the current
// best followed by children bred from two distinct survivors via Crossover and
// Mutate.
//
// The context is checked between generations. If it is cancelled, Run returns
// the result accumulated so far together with the context error.
func Run(ctx context.Context, catalog *Catalog, cfg Config, rng *PartitionedRNG) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is nil", ErrInvalidConfig)
	}

	sampler := NewSampler(catalog, rng.ForSubsystem(SubsystemSampler))
	selectRNG := rng.ForSubsystem(SubsystemSelection)
	crossRNG := rng.ForSubsystem(SubsystemCrossover)
	mutateRNG := rng.ForSubsystem(SubsystemMutation)

	if empty := catalog.EmptyCategories(); len(empty) > 0 {
		logrus.Warnf("catalog has no components for %v; those slots stay unfilled", empty)
	}
	logrus.Infof("Starting search: pop_size=%d generations=%d budget=%.2f crossover=%.2f mutation=%.2f seed=%d",
		cfg.PopSize, cfg.Generations, cfg.Budget, cfg.CrossoverRate, cfg.MutationRate, int64(rng.Key()))

	population := make([]Build, cfg.PopSize)
	for i := range population {
		population[i] = sampler.NewBuild()
	}

	result := &Result{History: make([]HistoryRecord, 0, cfg.Generations)}
	hasBest := false
	survivorCount := cfg.PopSize / 2

	for gen := 1; gen <= cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			logrus.Warnf("Search stopped before generation %d: %v", gen, err)
			return result, err
		}

		scores, err := EvaluatePopulation(ctx, population, cfg.Budget, cfg.Workers)
		if err != nil {
			return result, err
		}
		population, scores = sortByFitness(population, scores)

		best := population[0]
		record := newHistoryRecord(gen, best, scores)
		result.History = append(result.History, record)

		if !hasBest || record.BestFitness > result.BestFitness {
			hasBest = true
			result.Best = best
			result.BestFitness = record.BestFitness
			result.BestGeneration = gen
			logrus.Debugf("[gen %04d] new best fitness %.6g (price=%.2f performance=%.2f)",
				gen, record.BestFitness, record.TotalPrice, record.TotalPerformance)
		}
		logrus.Debugf("[gen %04d] best=%.6g mean=%.6g feasible=%d/%d",
			gen, record.BestFitness, record.MeanFitness, record.Feasible, cfg.PopSize)

		survivors := population[:survivorCount]
		next := make([]Build, 0, cfg.PopSize)
		next = append(next, best)
		for len(next) < cfg.PopSize {
			i, j := pickParents(len(survivors), selectRNG)
			child := Crossover(survivors[i], survivors[j], cfg.CrossoverRate, crossRNG)
			child = Mutate(child, cfg.MutationRate, mutateRNG, sampler)
			next = append(next, child)
		}
		population = next
	}

	logrus.Infof("Search complete: best fitness %.6g in generation %d", result.BestFitness, result.BestGeneration)
	return result, nil
}

// sortByFitness returns pop and scores reordered by descending score.
// The sort is stable: equal scores keep their previous relative order.
func sortByFitness(pop []Build, scores []float64) ([]Build, []float64) {
	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	sortedPop := make([]Build, len(pop))
	sortedScores := make([]float64, len(scores))
	for dst, src := range order {
		sortedPop[dst] = pop[src]
		sortedScores[dst] = scores[src]
	}
	return sortedPop, sortedScores
}
