package search

import "math/rand"

// Slot holds the component chosen for one category, or nothing when the
// catalog has no component of that category.
type Slot struct {
	Component Component
	Filled    bool
}

// Unfilled is the empty slot.
var Unfilled = Slot{}

// Filled wraps a component in a slot.
func Filled(c Component) Slot {
	return Slot{Component: c, Filled: true}
}

// Build is one candidate assignment of components to every category.
// It is a value: assigning or passing a Build copies all slots.
type Build [NumCategories]Slot

// Slot returns the slot for a category.
func (b Build) Slot(c Category) Slot {
	return b[c]
}

// TotalPrice sums the price of every filled slot.
func (b Build) TotalPrice() float64 {
	total := 0.0
	for _, s := range b {
		if s.Filled {
			total += s.Component.Price
		}
	}
	return total
}

// TotalPerformance sums the performance of every filled slot.
func (b Build) TotalPerformance() float64 {
	total := 0.0
	for _, s := range b {
		if s.Filled {
			total += s.Component.Performance
		}
	}
	return total
}

// Compatible is true only when both CPU and Motherboard are filled and
// their sockets are equal.
func (b Build) Compatible() bool {
	cpu, mb := b[CategoryCPU], b[CategoryMotherboard]
	if !cpu.Filled || !mb.Filled {
		return false
	}
	return cpu.Component.Socket == mb.Component.Socket
}

// Sampler draws random components from a catalog.
// Thread-safety: NOT thread-safe; it owns its RNG stream.
type Sampler struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewSampler creates a Sampler over catalog using rng.
func NewSampler(catalog *Catalog, rng *rand.Rand) *Sampler {
	return &Sampler{catalog: catalog, rng: rng}
}

// Sample picks a component of category c uniformly at random.
// Returns Unfilled without consuming randomness when the category is empty.
func (s *Sampler) Sample(c Category) Slot {
	candidates := s.catalog.InCategory(c)
	if len(candidates) == 0 {
		return Unfilled
	}
	return Filled(candidates[s.rng.Intn(len(candidates))])
}

// NewBuild samples every category once, in category order.
func (s *Sampler) NewBuild() Build {
	var b Build
	for _, c := range Categories() {
		b[c] = s.Sample(c)
	}
	return b
}
