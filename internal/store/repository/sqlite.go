package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// SQLite Blob Repository
// ============================================================

var ErrNotFound = errors.New("blob not found")

type Blob struct {
	Pathname   string
	Scope      string
	Body       []byte
	Size       int64
	UploadedAt string
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the blob store schema.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, pathname string) (*Blob, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT pathname, scope, body, size, uploaded_at
        FROM blobs
        WHERE pathname = ?
    `, pathname)

	var b Blob
	if err := row.Scan(&b.Pathname, &b.Scope, &b.Body, &b.Size, &b.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListScope lists blob metadata (no bodies) for one scope, newest
// first.
func (r *Repository) ListScope(ctx context.Context, scope string, limit int) ([]Blob, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT pathname, scope, size, uploaded_at
        FROM blobs
        WHERE scope = ?
        ORDER BY uploaded_at DESC
        LIMIT ?
    `, scope, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Blob
	for rows.Next() {
		var b Blob
		if err := rows.Scan(&b.Pathname, &b.Scope, &b.Size, &b.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Put stores or replaces one blob.
func (r *Repository) Put(ctx context.Context, b *Blob) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO blobs (pathname, scope, body, size, uploaded_at)
        VALUES (?, ?, ?, ?, ?)
    `, b.Pathname, b.Scope, b.Body, b.Size, b.UploadedAt)
	if err != nil {
		return fmt.Errorf("put blob: %w", err)
	}
	return nil
}

// OpenSQLite opens the blob database, creating its directory first.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
