package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS groups (
	id         TEXT PRIMARY KEY,
	definition TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps records in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path.
// If path is empty, defaults to ~/.config/permgroup/groups.db
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "permgroup", "groups.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, definition, created_at, updated_at FROM groups WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, storageErr(err, "get %s", id)
	}
	return rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec *Record) error {
	stamp(rec)
	def, err := json.Marshal(rec.Definition)
	if err != nil {
		return storageErr(err, "marshal definition")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO groups (id, definition, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET definition = excluded.definition, updated_at = excluded.updated_at`,
		rec.ID, string(def), rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
	if err != nil {
		return storageErr(err, "put %s", rec.ID)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return storageErr(err, "delete %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, definition, created_at, updated_at FROM groups ORDER BY created_at, id`)
	if err != nil {
		return nil, storageErr(err, "list")
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storageErr(err, "list")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err, "list")
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec              Record
		def              string
		created, updated int64
	)
	if err := row.Scan(&rec.ID, &def, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(def), &rec.Definition); err != nil {
		return nil, storageErr(err, "parse definition of %s", rec.ID)
	}
	rec.CreatedAt = time.Unix(0, created).UTC()
	rec.UpdatedAt = time.Unix(0, updated).UTC()
	return &rec, nil
}

var _ Store = (*SQLiteStore)(nil)
