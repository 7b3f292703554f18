package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fitness scores a build against a budget.
//
// Over-budget builds score 0. Otherwise the score is total performance,
// zeroed when CPU and Motherboard are incompatible, divided by the unused
// budget plus one, so among equal builds the one spending closer to the
// budget ranks higher.
func Fitness(b Build, budget float64) float64 {
	price := b.TotalPrice()
	if price > budget {
		return 0
	}
	flag := 0.0
	if b.Compatible() {
		flag = 1.0
	}
	return (b.TotalPerformance() * flag) / (budget - price + 1)
}

// EvaluatePopulation returns Fitness for every build, index-aligned with pop.
// With workers > 1 the population is split into contiguous chunks scored on
// separate goroutines; the result does not depend on the worker count.
func EvaluatePopulation(ctx context.Context, pop []Build, budget float64, workers int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scores := make([]float64, len(pop))
	if workers <= 1 || len(pop) < 2 {
		for i := range pop {
			scores[i] = Fitness(pop[i], budget)
		}
		return scores, nil
	}
	if workers > len(pop) {
		workers = len(pop)
	}

	g, gCtx := errgroup.WithContext(ctx)
	chunk := (len(pop) + workers - 1) / workers
	for start := 0; start < len(pop); start += chunk {
		start := start
		end := min(start+chunk, len(pop))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%64 == 0 {
					if err := gCtx.Err(); err != nil {
						return err
					}
				}
				scores[i] = Fitness(pop[i], budget)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
