package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetable/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite is an embedded collection store. It stands in for the hosted
// backend in standalone mode; rowid order preserves insertion order.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the store database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ensure verifies the database connection is alive.
func (s *SQLite) Ensure(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// List returns all rows in insertion order.
func (s *SQLite) List(ctx context.Context) ([]model.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, price, link, note, status FROM budgetable ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make([]model.Row, 0)
	for rows.Next() {
		var r model.Row
		if err := rows.Scan(&r.ID, &r.Title, &r.Price, &r.Link, &r.Note, &r.Status); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Get returns a single row by id.
func (s *SQLite) Get(ctx context.Context, id string) (model.Row, error) {
	var r model.Row
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, price, link, note, status FROM budgetable WHERE id = ?", id).
		Scan(&r.ID, &r.Title, &r.Price, &r.Link, &r.Note, &r.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Row{}, ErrNotFound
	}
	if err != nil {
		return model.Row{}, err
	}
	return r, nil
}

// Create persists a new row and assigns its id.
func (s *SQLite) Create(ctx context.Context, row model.Row) (model.Row, error) {
	row.ID = uuid.NewString()
	if row.Status == "" {
		row.Status = model.StatusUnpaid
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgetable (id, title, price, link, note, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Title, row.Price, row.Link, row.Note, string(row.Status), now, now)
	if err != nil {
		return model.Row{}, err
	}
	return row, nil
}

// Update merges the given fields into an existing row and returns it.
func (s *SQLite) Update(ctx context.Context, id string, row model.Row) (model.Row, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(ctx,
		`UPDATE budgetable SET title = ?, price = ?, link = ?, note = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		row.Title, row.Price, row.Link, row.Note, string(row.Status), now, id)
	if err != nil {
		return model.Row{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Row{}, err
	}
	if n == 0 {
		return model.Row{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the row with the given id.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgetable WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
