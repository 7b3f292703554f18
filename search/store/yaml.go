// Package store loads component catalogs for the search engine from YAML
// files and from relational databases (SQLite, MySQL).
package store

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/buildsearch/buildsearch/search"
)

// CatalogFile is the on-disk YAML layout of a catalog.
type CatalogFile struct {
	Version    string           `yaml:"version"`
	Components []ComponentEntry `yaml:"components"`
}

// ComponentEntry is one component as written in a catalog file. Category is
// a pointer so a missing key can be told apart from CPU.
type ComponentEntry struct {
	ID          int64            `yaml:"id"`
	Category    *search.Category `yaml:"category"`
	Name        string           `yaml:"name"`
	Price       float64          `yaml:"price"`
	Performance float64          `yaml:"performance"`
	Socket      string           `yaml:"socket,omitempty"`
}

// LoadYAML reads a catalog YAML file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadYAML(path string) (*search.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes catalog YAML already in memory. Every entry must name
// its category.
func ParseYAML(data []byte) (*search.Catalog, error) {
	var file CatalogFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	components := make([]search.Component, 0, len(file.Components))
	for i, e := range file.Components {
		if e.Category == nil {
			return nil, fmt.Errorf("component[%d] (id=%d, name=%q): %w: missing category",
				i, e.ID, e.Name, search.ErrInvalidComponent)
		}
		components = append(components, search.Component{
			ID:          e.ID,
			Category:    *e.Category,
			Name:        e.Name,
			Price:       e.Price,
			Performance: e.Performance,
			Socket:      e.Socket,
		})
	}
	catalog, err := search.NewCatalog(components)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return catalog, nil
}

// WriteYAML writes catalog to path in the layout LoadYAML reads.
func WriteYAML(path string, catalog *search.Catalog) error {
	file := CatalogFile{Version: "1"}
	for _, comp := range catalog.Components() {
		cat := comp.Category
		file.Components = append(file.Components, ComponentEntry{
			ID:          comp.ID,
			Category:    &cat,
			Name:        comp.Name,
			Price:       comp.Price,
			Performance: comp.Performance,
			Socket:      comp.Socket,
		})
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}
