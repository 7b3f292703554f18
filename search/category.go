package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Category identifies one slot of a build. The order of the constants is the
// order in which slots are sampled, crossed over and reported.
type Category int

const (
	CategoryCPU Category = iota
	CategoryMotherboard
	CategoryGPU
	CategoryRAM
	CategoryStorage
	CategoryPowerSupply
	CategoryCasing
	CategoryFanCPU

	// NumCategories is the number of slots in every Build.
	NumCategories = int(CategoryFanCPU) + 1
)

var categoryNames = [NumCategories]string{
	"CPU", "Motherboard", "GPU", "RAM", "Storage", "Power Supply", "Casing", "Fan CPU",
}

// Categories returns every category in slot order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

// String returns the display name used in reports ("Power Supply", "Fan CPU").
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ID returns the relational category id (1-based, kategori.id_kategori).
func (c Category) ID() int {
	return int(c) + 1
}

// CategoryFromID maps a relational category id back to a Category.
func CategoryFromID(id int) (Category, bool) {
	c := Category(id - 1)
	return c, c.Valid()
}

// ParseCategory accepts a display name ("Power Supply"), a compact name
// ("powersupply", "fan_cpu"), the Go identifier ("CategoryPowerSupply")
// or a relational id ("6"). Names are case-insensitive.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if id, err := strconv.Atoi(trimmed); err == nil {
		if c, ok := CategoryFromID(id); ok {
			return c, nil
		}
		return 0, fmt.Errorf("unknown category id %d; valid: 1..%d", id, NumCategories)
	}
	key := strings.TrimPrefix(compactName(trimmed), "category")
	for i, name := range categoryNames {
		if compactName(name) == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q; valid: %s", s, strings.Join(categoryNames[:], ", "))
}

func compactName(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// MarshalText writes the display name, so YAML and JSON documents carry
// "Power Supply" rather than an ordinal.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything ParseCategory accepts.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
