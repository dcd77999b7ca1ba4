// Package store provides a SQLite-backed library of saved plans.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/planwise/planwise/internal/model"
	"github.com/planwise/planwise/internal/profile"
	"github.com/planwise/planwise/internal/tax"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound reports a name with no saved plan behind it.
var ErrNotFound = errors.New("profile not found")

// Store keeps named plans in a SQLite database. Each row carries the
// full YAML document plus a few display columns so List never decodes.
type Store struct {
	db     *sql.DB
	tables *tax.Tables
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "planwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "planwise")
}

// DefaultPath returns the full path to the plan database.
func DefaultPath() string {
	return filepath.Join(CacheDir(), "profiles.db")
}

// Open opens or creates the plan database at the given path.
func Open(dbPath string, tables *tax.Tables) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, tables: tables}, nil
}

// Close closes the plan database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Entry summarises a saved plan without decoding its document.
type Entry struct {
	Name          string
	Age           int
	RetirementAge int
	Salary        float64
	Scotland      bool
	Year          int
	SavedAt       time.Time
}

// Save stores a plan under its name, replacing any previous version.
func (s *Store) Save(p model.Profile) error {
	if p.Name == "" {
		return errors.New("profile has no name")
	}
	doc, err := profile.Encode(p)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	scotland := 0
	if p.Scotland {
		scotland = 1
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO profiles
		(name, age, retirement_age, salary, scotland, tax_year, document, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Age, p.RetirementAge, p.Salary, scotland, p.Year, string(doc), now,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Load reads the named plan back out of the store.
func (s *Store) Load(name string) (model.Profile, error) {
	var doc string
	err := s.db.QueryRow("SELECT document FROM profiles WHERE name = ?", name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return model.Profile{}, err
	}

	p, err := profile.Decode([]byte(doc), s.tables)
	if err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile %s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// List returns all saved plans, most recently saved first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, age, retirement_age, salary, scotland, tax_year, saved_at
		FROM profiles ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var scotland int
		var savedAt string
		if err := rows.Scan(&e.Name, &e.Age, &e.RetirementAge, &e.Salary, &scotland, &e.Year, &savedAt); err != nil {
			return nil, err
		}
		e.Scotland = scotland != 0
		if savedAt != "" {
			e.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the named plan.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Count returns the number of saved plans.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}
