package search

import "math/rand"

// Crossover builds a child gene by gene: for each category, in category
// order, one draw from rng decides the parent. A draw below rate takes the
// slot from b, otherwise from a.
func Crossover(a, b Build, rate float64, rng *rand.Rand) Build {
	var child Build
	for _, c := range Categories() {
		if rng.Float64() < rate {
			child[c] = b[c]
		} else {
			child[c] = a[c]
		}
	}
	return child
}

// Mutate resamples at most one slot. With probability rate a category is
// chosen uniformly and replaced by a fresh draw from sampler, whatever the
// slot held before. The input build is never modified.
func Mutate(b Build, rate float64, rng *rand.Rand, sampler *Sampler) Build {
	if rng.Float64() >= rate {
		return b
	}
	c := Category(rng.Intn(NumCategories))
	b[c] = sampler.Sample(c)
	return b
}

// pickParents draws two distinct indices in [0, n) uniformly without
// replacement. n must be at least 2.
func pickParents(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
