package fatura

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// LayoutStore persists per-table grid layouts in a local sqlite database
// keyed by table name. Missing or unreadable entries fall back to the
// built-in defaults so a corrupt row can never block the UI.
type LayoutStore struct {
	db *sql.DB
}

// OpenLayoutStore opens (creating if needed) the layout database at path.
func OpenLayoutStore(path string) (*LayoutStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open layout db: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS grid_layouts (
		table_name TEXT PRIMARY KEY,
		columns    TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init layout db: %w", err)
	}
	return &LayoutStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LayoutStore) Close() error {
	return s.db.Close()
}

// Load returns the saved columns for a table, or nil if none were saved.
// A row that fails to decode is treated the same as a missing row.
func (s *LayoutStore) Load(table string) ([]Column, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT columns FROM grid_layouts WHERE table_name = ?`, table,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: %w", table, err)
	}
	var cols []Column
	if json.Unmarshal([]byte(raw), &cols) != nil {
		return nil, nil
	}
	return cols, nil
}

// Save stores the columns for a table, replacing any previous entry.
func (s *LayoutStore) Save(table string, cols []Column) error {
	raw, err := json.Marshal(cols)
	if err != nil {
		return fmt.Errorf("encode layout %q: %w", table, err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO grid_layouts (table_name, columns) VALUES (?, ?)`,
		table, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save layout %q: %w", table, err)
	}
	return nil
}
