package search

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidComponent is wrapped by NewCatalog when an entry cannot be used.
var ErrInvalidComponent = errors.New("invalid component")

// Component is one purchasable part. Socket is only compared for CPU and
// Motherboard; other categories usually leave it empty.
type Component struct {
	ID          int64    `yaml:"id" json:"id"`
	Category    Category `yaml:"category" json:"category"`
	Name        string   `yaml:"name" json:"name"`
	Price       float64  `yaml:"price" json:"price"`
	Performance float64  `yaml:"performance" json:"performance"`
	Socket      string   `yaml:"socket,omitempty" json:"socket,omitempty"`
}

// Catalog is the read-only set of components a search draws from.
// It is never mutated after NewCatalog returns, so it may be shared freely
// between goroutines.
type Catalog struct {
	components []Component
	byCategory [NumCategories][]Component
}

// NewCatalog indexes components by category.
// Categories with no entries are allowed and stay permanently Unfilled.
// Non-zero IDs must be unique; zero means "not assigned yet".
func NewCatalog(components []Component) (*Catalog, error) {
	c := &Catalog{components: make([]Component, 0, len(components))}
	seen := make(map[int64]int, len(components))
	for i, comp := range components {
		if err := validateComponent(comp); err != nil {
			return nil, fmt.Errorf("component[%d] (id=%d): %w", i, comp.ID, err)
		}
		if comp.ID != 0 {
			if first, dup := seen[comp.ID]; dup {
				return nil, fmt.Errorf("component[%d] (id=%d): %w: id already used by component[%d]",
					i, comp.ID, ErrInvalidComponent, first)
			}
			seen[comp.ID] = i
		}
		c.components = append(c.components, comp)
		c.byCategory[comp.Category] = append(c.byCategory[comp.Category], comp)
	}
	return c, nil
}

func validateComponent(comp Component) error {
	if !comp.Category.Valid() {
		return fmt.Errorf("%w: unknown category %d", ErrInvalidComponent, int(comp.Category))
	}
	if math.IsNaN(comp.Price) || math.IsInf(comp.Price, 0) || comp.Price < 0 {
		return fmt.Errorf("%w: price must be a finite non-negative number, got %f", ErrInvalidComponent, comp.Price)
	}
	if math.IsNaN(comp.Performance) || math.IsInf(comp.Performance, 0) || comp.Performance < 0 {
		return fmt.Errorf("%w: performance must be a finite non-negative number, got %f", ErrInvalidComponent, comp.Performance)
	}
	return nil
}

// Len returns the total number of components.
func (c *Catalog) Len() int {
	return len(c.components)
}

// Components returns every component in insertion order. Callers must not
// modify the returned slice.
func (c *Catalog) Components() []Component {
	return c.components
}

// InCategory returns the components of one category in insertion order.
// Callers must not modify the returned slice.
func (c *Catalog) InCategory(cat Category) []Component {
	if !cat.Valid() {
		return nil
	}
	return c.byCategory[cat]
}

// EmptyCategories lists the categories with no components.
func (c *Catalog) EmptyCategories() []Category {
	var out []Category
	for _, cat := range Categories() {
		if len(c.byCategory[cat]) == 0 {
			out = append(out, cat)
		}
	}
	return out
}
