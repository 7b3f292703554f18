package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/buildsearch/buildsearch/search"
)

// catalogQuery reads every component joined with its category row.
// Table and column names follow the recommender's existing database.
const catalogQuery = `
SELECT k.id_komponen, k.id_kategori, c.nama_kategori, k.nama_komponen,
       k.harga_komponen, k.performa_komponen, k.soket_komponen
FROM komponen_komputer k
JOIN kategori c ON k.id_kategori = c.id_kategori
ORDER BY k.id_komponen`

// LoadSQL reads the component catalog from an open database.
// Rows whose id_kategori is not one of the eight known categories are
// skipped with a warning. A NULL socket is read as an empty socket.
func LoadSQL(ctx context.Context, db *sql.DB) (*search.Catalog, error) {
	rows, err := db.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var components []search.Component
	skipped := 0
	for rows.Next() {
		var (
			comp         search.Component
			categoryID   int
			categoryName string
			socket       sql.NullString
		)
		if err := rows.Scan(&comp.ID, &categoryID, &categoryName, &comp.Name,
			&comp.Price, &comp.Performance, &socket); err != nil {
			return nil, fmt.Errorf("scanning component row: %w", err)
		}
		category, ok := search.CategoryFromID(categoryID)
		if !ok {
			logrus.Warnf("skipping component %d (%s): unknown category id %d (%q)",
				comp.ID, comp.Name, categoryID, categoryName)
			skipped++
			continue
		}
		comp.Category = category
		comp.Socket = socket.String
		components = append(components, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating component rows: %w", err)
	}

	catalog, err := search.NewCatalog(components)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	logrus.Infof("Loaded %d components from database (%d skipped)", catalog.Len(), skipped)
	return catalog, nil
}
