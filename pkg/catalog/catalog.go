package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/richard-senior/dxfshapes/internal/logger"
	_ "modernc.org/sqlite"
)

const table = "drawings"

// ErrNotFound is returned by Get for unknown ids
var ErrNotFound = errors.New("drawing not found")

// Entry records one saved drawing
type Entry struct {
	ID       string `json:"id" dbtype:"TEXT NOT NULL" primary:"true"`
	Path     string `json:"path" dbtype:"TEXT NOT NULL" index:"unique"`
	Version  string `json:"version" dbtype:"TEXT NOT NULL"`
	Units    string `json:"units" dbtype:"TEXT NOT NULL"`
	Layers   int    `json:"layers" dbtype:"INTEGER NOT NULL"`
	Entities int    `json:"entities" dbtype:"INTEGER NOT NULL"`
	// SavedAt is stored as unix milliseconds
	SavedAt time.Time `json:"savedAt"`
	Saved   int64     `json:"-" column:"saved_at" dbtype:"INTEGER NOT NULL" index:"true"`
}

// Catalog is a sqlite table of drawings written by the tools
type Catalog struct {
	db   *sql.DB
	path string
}

// Open opens or creates the catalog database at path and its table
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping catalog: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL(&Entry{}, table)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	for _, q := range indexSQL(&Entry{}, table) {
		logger.Debug("Creating index with SQL", q)
		if _, err := db.Exec(q); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	logger.Info("Catalog opened", path)
	return &Catalog{db: db, path: path}, nil
}

func (c *Catalog) Path() string { return c.path }

// Close closes the database
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Record stores e, replacing any earlier entry for the same path. A new id is
// generated for unseen paths and SavedAt defaults to now. Returns the stored entry.
func (c *Catalog) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Path == "" {
		return Entry{}, fmt.Errorf("catalog entry has no path")
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now()
	}
	e.SavedAt = e.SavedAt.Truncate(time.Millisecond)
	e.Saved = e.SavedAt.UnixMilli()

	var existing string
	err := c.db.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE path = ?", e.Path).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		q, args := insertSQL(&e, table)
		logger.Debug("Insert SQL", q)
		if _, err := c.db.ExecContext(ctx, q, args...); err != nil {
			return Entry{}, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	case err != nil:
		return Entry{}, fmt.Errorf("failed to check existence in %s: %w", table, err)
	default:
		e.ID = existing
		q, args := updateSQL(&e, table)
		logger.Debug("Update SQL", q)
		if _, err := c.db.ExecContext(ctx, q, args...); err != nil {
			return Entry{}, fmt.Errorf("failed to update %s: %w", table, err)
		}
	}
	return e, nil
}

// Get returns the entry with the given id
func (c *Catalog) Get(ctx context.Context, id string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, "SELECT "+selectColumns(&Entry{})+" FROM "+table+" WHERE id = ?", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// List returns all entries, most recently saved first
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT "+selectColumns(&Entry{})+" FROM "+table+" ORDER BY saved_at DESC, path")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads the columns in selectColumns order
func scanEntry(s scanner) (Entry, error) {
	var e Entry
	if err := s.Scan(&e.ID, &e.Path, &e.Version, &e.Units, &e.Layers, &e.Entities, &e.Saved); err != nil {
		return Entry{}, err
	}
	e.SavedAt = time.UnixMilli(e.Saved)
	return e, nil
}
