package search

import (
	"hash/fnv"
	"math/rand"
)

// SearchKey is the seed of one reproducible run. The same key, catalog and
// Config always give the same history and best build.
type SearchKey int64

// NewSearchKey wraps a CLI or config seed.
func NewSearchKey(seed int64) SearchKey {
	return SearchKey(seed)
}

// Stream names handed to PartitionedRNG.ForSubsystem.
const (
	SubsystemSampler   = "sampler"   // initial population and mutation resamples
	SubsystemSelection = "selection" // parent pairs drawn from the survivors
	SubsystemCrossover = "crossover" // per-category parent choice
	SubsystemMutation  = "mutation"  // mutation trigger and target category
)

// PartitionedRNG hands each operator its own *rand.Rand, so extra draws in
// one operator leave the others' sequences untouched. The sampler stream is
// seeded with the key itself; every other stream with key ^ fnv1a64(name).
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SearchKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG returns an RNG set with no streams created yet.
func NewPartitionedRNG(key SearchKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls with the same name share one *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key)
	if name != SubsystemSampler {
		seed ^= fnv1a64(name)
	}
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

// Key returns the seed the streams derive from.
func (p *PartitionedRNG) Key() SearchKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
