package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/buildsearch/buildsearch/search"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS kategori (
		id_kategori   INTEGER PRIMARY KEY,
		nama_kategori TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS komponen_komputer (
		id_komponen       INTEGER PRIMARY KEY AUTOINCREMENT,
		id_kategori       INTEGER NOT NULL REFERENCES kategori(id_kategori),
		nama_komponen     TEXT NOT NULL,
		harga_komponen    REAL NOT NULL CHECK (harga_komponen >= 0),
		performa_komponen REAL NOT NULL CHECK (performa_komponen >= 0),
		soket_komponen    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_komponen_kategori ON komponen_komputer(id_kategori)`,
}

// OpenSQLite opens (creating if needed) a SQLite catalog database.
// Paths starting with "file:" are passed through unchanged, which allows
// in-memory databases such as "file::memory:".
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if !strings.HasPrefix(path, "file:") {
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// A single connection keeps in-memory databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}
	return db, nil
}

// CreateSchema creates the kategori and komponen_komputer tables and fills
// kategori with the eight known categories.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, c := range search.Categories() {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO kategori (id_kategori, nama_kategori) VALUES (?, ?)
			 ON CONFLICT(id_kategori) DO UPDATE SET nama_kategori = excluded.nama_kategori`,
			c.ID(), c.String()); err != nil {
			return fmt.Errorf("seeding category %s: %w", c, err)
		}
	}
	return nil
}

// ImportCatalog inserts every component of catalog in one transaction.
// Components with a zero ID receive a generated id; others replace any row
// with the same id.
func ImportCatalog(ctx context.Context, db *sql.DB, catalog *search.Catalog) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO komponen_komputer
		(id_komponen, id_kategori, nama_komponen, harga_komponen, performa_komponen, soket_komponen)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, comp := range catalog.Components() {
		id := sql.NullInt64{Int64: comp.ID, Valid: comp.ID != 0}
		socket := sql.NullString{String: comp.Socket, Valid: comp.Socket != ""}
		if _, err := stmt.ExecContext(ctx, id, comp.Category.ID(), comp.Name,
			comp.Price, comp.Performance, socket); err != nil {
			return 0, fmt.Errorf("importing component %q: %w", comp.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return catalog.Len(), nil
}
