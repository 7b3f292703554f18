package search

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by Config.Validate and Run for rejected
// configurations. Values are never clamped.
var ErrInvalidConfig = errors.New("invalid search config")

// MinPopSize is the smallest population that still leaves two survivors to
// pair after truncation.
const MinPopSize = 4

// Config groups the parameters of one search run.
type Config struct {
	PopSize       int     // individuals per generation (≥ MinPopSize)
	Generations   int     // number of generations to run (≥ 1)
	Budget        float64 // price ceiling; builds above it score 0 (≥ 0)
	CrossoverRate float64 // per-gene probability of inheriting from the second parent, in [0,1]
	MutationRate  float64 // probability that a child has one slot resampled, in [0,1]
	Workers       int     // fitness evaluation goroutines; 0 or 1 = sequential
}

// DefaultConfig returns the parameters the recommender has always shipped with.
func DefaultConfig() Config {
	return Config{
		PopSize:       200,
		Generations:   1000,
		Budget:        5_000_000,
		CrossoverRate: 0.4,
		MutationRate:  0.5,
		Workers:       0,
	}
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if c.PopSize < MinPopSize {
		return fmt.Errorf("%w: pop_size must be >= %d, got %d", ErrInvalidConfig, MinPopSize, c.PopSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("%w: generations must be >= 1, got %d", ErrInvalidConfig, c.Generations)
	}
	if math.IsNaN(c.Budget) || math.IsInf(c.Budget, 0) || c.Budget < 0 {
		return fmt.Errorf("%w: budget must be a finite non-negative number, got %f", ErrInvalidConfig, c.Budget)
	}
	if err := validateRate("crossover_rate", c.CrossoverRate); err != nil {
		return err
	}
	if err := validateRate("mutation_rate", c.MutationRate); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

func validateRate(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0, 1], got %f", ErrInvalidConfig, name, v)
	}
	return nil
}
