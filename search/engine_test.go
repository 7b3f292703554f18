package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSearch(t *testing.T, cat *Catalog, cfg Config, seed int64) *Result {
	t.Helper()
	res, err := Run(context.Background(), cat, cfg, NewPartitionedRNG(NewSearchKey(seed)))
	require.NoError(t, err)
	return res
}

func TestRun_SingleCompatiblePair(t *testing.T) {
	// GIVEN one AM5 CPU and one AM5 motherboard and nothing else
	cat, err := NewCatalog([]Component{
		cpu("AM5", 2_000_000, 80),
		motherboard("AM5", 1_500_000, 20),
	})
	require.NoError(t, err)
	cfg := Config{PopSize: 4, Generations: 1, Budget: 5_000_000, CrossoverRate: 0.4, MutationRate: 0.5}

	// WHEN one generation runs
	res := runSearch(t, cat, cfg, 42)

	// THEN every individual is the same pair and the fitness matches the formula
	want := 100.0 / 1_500_001.0
	assert.InDelta(t, want, res.BestFitness, 1e-15)
	assert.Equal(t, 1, res.BestGeneration)
	assert.Equal(t, "cpu-AM5", res.Best[CategoryCPU].Component.Name)
	assert.Equal(t, "mb-AM5", res.Best[CategoryMotherboard].Component.Name)
	require.Len(t, res.History, 1)
	h := res.History[0]
	assert.Equal(t, 1, h.Generation)
	assert.Equal(t, res.BestFitness, h.BestFitness)
	assert.Equal(t, 3_500_000.0, h.TotalPrice)
	assert.Equal(t, 100.0, h.TotalPerformance)
	assert.InDelta(t, want, h.MeanFitness, 1e-15)
	assert.InDelta(t, 0, h.FitnessStdDev, 1e-15)
	assert.Equal(t, 4, h.Feasible)
}

func TestRun_MismatchedSocketsNeverScore(t *testing.T) {
	cat, err := NewCatalog([]Component{
		cpu("AM5", 2_000_000, 80),
		motherboard("AM4", 1_500_000, 20),
	})
	require.NoError(t, err)
	cfg := Config{PopSize: 6, Generations: 25, Budget: 5_000_000, CrossoverRate: 0.4, MutationRate: 0.5}

	res := runSearch(t, cat, cfg, 42)

	assert.Equal(t, 0.0, res.BestFitness)
	for _, h := range res.History {
		assert.Equal(t, 0.0, h.BestFitness)
		assert.Equal(t, 0, h.Feasible)
	}
	// The first generation seeds the incumbent; ties never move it.
	assert.Equal(t, 1, res.BestGeneration)
	assert.True(t, res.Best[CategoryCPU].Filled)
}

func TestRun_EmptyCategoryStaysUnfilled(t *testing.T) {
	// GIVEN a catalog without any Fan CPU
	var comps []Component
	for _, c := range newTestCatalog(t, 4).Components() {
		if c.Category != CategoryFanCPU {
			comps = append(comps, c)
		}
	}
	cat, err := NewCatalog(comps)
	require.NoError(t, err)
	cfg := Config{PopSize: 20, Generations: 30, Budget: 1_500_000, CrossoverRate: 0.4, MutationRate: 0.5}

	// WHEN the search runs to completion
	res := runSearch(t, cat, cfg, 7)

	// THEN the slot is unfilled and totals only cover filled slots
	assert.False(t, res.Best[CategoryFanCPU].Filled)
	assert.Len(t, res.History, cfg.Generations)
	best := res.History[res.BestGeneration-1]
	assert.Equal(t, res.Best.TotalPrice(), best.TotalPrice)
	assert.Equal(t, res.Best.TotalPerformance(), best.TotalPerformance)
}

func TestRun_BestFitnessNeverDecreases(t *testing.T) {
	cat := newTestCatalog(t, 8)
	cfg := Config{PopSize: 30, Generations: 60, Budget: 2_000_000, CrossoverRate: 0.4, MutationRate: 0.5}

	for _, seed := range []int64{1, 2, 3, 99} {
		res := runSearch(t, cat, cfg, seed)
		require.Len(t, res.History, cfg.Generations)
		for g := 1; g < len(res.History); g++ {
			assert.GreaterOrEqual(t, res.History[g].BestFitness, res.History[g-1].BestFitness,
				"seed=%d generation=%d", seed, g+1)
		}
		last := res.History[len(res.History)-1]
		assert.Equal(t, last.BestFitness, res.BestFitness)
		assert.Equal(t, res.BestFitness, res.History[res.BestGeneration-1].BestFitness)
		for g := 0; g < res.BestGeneration-1; g++ {
			assert.Less(t, res.History[g].BestFitness, res.BestFitness, "first-found generation must win")
		}
	}
}

func TestRun_HistoryGenerationsAreOneBased(t *testing.T) {
	cat := newTestCatalog(t, 3)
	cfg := Config{PopSize: 8, Generations: 5, Budget: 1_000_000, CrossoverRate: 0.4, MutationRate: 0.5}

	res := runSearch(t, cat, cfg, 11)

	for i, h := range res.History {
		assert.Equal(t, i+1, h.Generation)
	}
}

func TestRun_SameSeedSameResult(t *testing.T) {
	cat := newTestCatalog(t, 6)
	cfg := Config{PopSize: 24, Generations: 40, Budget: 1_800_000, CrossoverRate: 0.4, MutationRate: 0.5}

	a := runSearch(t, cat, cfg, 1234)
	b := runSearch(t, cat, cfg, 1234)

	assert.Equal(t, a, b)
}

func TestRun_WorkersDoNotAffectResult(t *testing.T) {
	cat := newTestCatalog(t, 6)
	cfg := Config{PopSize: 40, Generations: 30, Budget: 1_800_000, CrossoverRate: 0.4, MutationRate: 0.5}

	sequential := runSearch(t, cat, cfg, 77)
	cfg.Workers = 4
	parallel := runSearch(t, cat, cfg, 77)

	assert.Equal(t, sequential, parallel)
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	cat := newTestCatalog(t, 10)
	cfg := Config{PopSize: 10, Generations: 5, Budget: 2_500_000, CrossoverRate: 0.4, MutationRate: 0.5}

	a := runSearch(t, cat, cfg, 1)
	b := runSearch(t, cat, cfg, 2)

	assert.NotEqual(t, a.History, b.History)
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	cat := newTestCatalog(t, 2)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"pop_size below 4", func(c *Config) { c.PopSize = 3 }},
		{"zero generations", func(c *Config) { c.Generations = 0 }},
		{"negative budget", func(c *Config) { c.Budget = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			res, err := Run(context.Background(), cat, cfg, NewPartitionedRNG(NewSearchKey(1)))
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, res)
		})
	}
}

func TestRun_CancelledContextReturnsPartialResult(t *testing.T) {
	cat := newTestCatalog(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, cat, DefaultConfig(), NewPartitionedRNG(NewSearchKey(1)))

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.History)
}

func TestSortByFitness_StableForTies(t *testing.T) {
	pop := make([]Build, 4)
	for i := range pop {
		pop[i][CategoryCPU] = Filled(Component{ID: int64(i), Category: CategoryCPU})
	}
	scores := []float64{1, 5, 1, 5}

	sorted, sortedScores := sortByFitness(pop, scores)

	assert.Equal(t, []float64{5, 5, 1, 1}, sortedScores)
	var ids []int64
	for _, b := range sorted {
		ids = append(ids, b[CategoryCPU].Component.ID)
	}
	assert.Equal(t, []int64{1, 3, 0, 2}, ids)
}
