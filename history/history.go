// Package history persists width preferences in SQLite so they survive
// between runs of the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"japanesevariants/charform"
	"japanesevariants/script"

	_ "modernc.org/sqlite"
)

// Layer names a preference layer of a charform.Manager.
type Layer string

const (
	// Learned is the layer filled by AddConversionRule.
	Learned Layer = "learned"
	// Explicit is the layer filled by SetCharacterForm.
	Explicit Layer = "explicit"
)

const schema = `
CREATE TABLE IF NOT EXISTS form_rules (
	layer      TEXT NOT NULL,
	category   TEXT NOT NULL,
	form       TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (layer, category)
);
`

// Store is a SQLite-backed copy of a Manager's explicit and learned layers.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load replaces both stored layers of m. Rows naming unknown layers,
// categories or forms are skipped.
func (s *Store) Load(ctx context.Context, m *charform.Manager) error {
	rows, err := s.db.QueryContext(ctx, `SELECT layer, category, form FROM form_rules`)
	if err != nil {
		return fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	layers := map[Layer]charform.Forms{Learned: {}, Explicit: {}}
	for rows.Next() {
		var layer, catName, formName string
		if err := rows.Scan(&layer, &catName, &formName); err != nil {
			return fmt.Errorf("scan rules: %w", err)
		}
		forms, ok := layers[Layer(layer)]
		if !ok {
			continue
		}
		cat, err := script.ParseCategory(catName)
		if err != nil {
			continue
		}
		form, err := script.ParseForm(formName)
		if err != nil {
			continue
		}
		forms[cat] = form
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read rules: %w", err)
	}
	m.RestoreRules(layers[Explicit])
	m.RestoreHistory(layers[Learned])
	return nil
}

// Save overwrites the stored layers with the current state of m.
func (s *Store) Save(ctx context.Context, m *charform.Manager) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM form_rules`); err != nil {
		return fmt.Errorf("clear rules: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for layer, forms := range map[Layer]charform.Forms{Learned: m.History(), Explicit: m.Rules()} {
		for cat, form := range forms {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO form_rules (layer, category, form, updated_at) VALUES (?, ?, ?, ?)`,
				string(layer), cat.String(), form.String(), now); err != nil {
				return fmt.Errorf("insert %s %s: %w", layer, cat, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Clear deletes the stored learned layer. Explicit rules are kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM form_rules WHERE layer = ?`, string(Learned)); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Reset deletes every stored rule.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM form_rules`); err != nil {
		return fmt.Errorf("reset rules: %w", err)
	}
	return nil
}
