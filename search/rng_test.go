package search

import (
	"math"
	"testing"
)

func TestSearchKey_Creation(t *testing.T) {
	for _, seed := range []int64{42, 0, -1, math.MaxInt64, math.MinInt64} {
		if key := NewSearchKey(seed); int64(key) != seed {
			t.Errorf("NewSearchKey(%d) = %d, want %d", seed, key, seed)
		}
	}
}

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSearchKey(42))
	rng2 := NewPartitionedRNG(NewSearchKey(42))

	for i := 0; i < 5; i++ {
		a := rng1.ForSubsystem(SubsystemCrossover).Float64()
		b := rng2.ForSubsystem(SubsystemCrossover).Float64()
		if a != b {
			t.Errorf("value %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from the sampler stream doesn't shift the mutation stream
	rngA := NewPartitionedRNG(NewSearchKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemSampler).Float64()
	}
	got := rngA.ForSubsystem(SubsystemMutation).Float64()

	fresh := NewPartitionedRNG(NewSearchKey(42))
	want := fresh.ForSubsystem(SubsystemMutation).Float64()

	if got != want {
		t.Errorf("mutation first value = %v, want %v (isolation broken)", got, want)
	}
}

func TestPartitionedRNG_SamplerUsesMasterSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSearchKey(7)).ForSubsystem(SubsystemSampler)
	direct := newTestRand(7)

	for i := 0; i < 10; i++ {
		if got, want := rng.Int63(), direct.Int63(); got != want {
			t.Errorf("value %d: sampler = %d, direct = %d", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSearchKey(42))
	if rng.ForSubsystem(SubsystemSelection) != rng.ForSubsystem(SubsystemSelection) {
		t.Error("ForSubsystem returned different instances for the same name")
	}
	if rng.Key() != NewSearchKey(42) {
		t.Errorf("Key() = %d, want 42", rng.Key())
	}
}

func TestPartitionedRNG_SubsystemsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSearchKey(42))
	names := []string{SubsystemSampler, SubsystemSelection, SubsystemCrossover, SubsystemMutation}
	firsts := make(map[int64]string)
	for _, n := range names {
		v := rng.ForSubsystem(n).Int63()
		if prev, dup := firsts[v]; dup {
			t.Errorf("subsystems %q and %q share their first value", prev, n)
		}
		firsts[v] = n
	}
}
