package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"weddash/internal/store"
)

var _ store.Documents = (*DB)(nil)

func validPath(p string) bool {
	if p == "" {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			return false
		}
	}
	return true
}

// Get returns the document stored at path.
func (d *DB) Get(ctx context.Context, path string) ([]byte, error) {
	if !validPath(path) {
		return nil, ErrInvalidPath
	}

	var data []byte
	err := d.Pool.QueryRow(ctx, `SELECT data FROM documents WHERE path = $1`, path).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// List returns the direct children of path keyed by their last segment.
func (d *DB) List(ctx context.Context, path string) (map[string][]byte, error) {
	if !validPath(path) {
		return nil, ErrInvalidPath
	}

	rows, err := d.Pool.Query(ctx, `SELECT path, data FROM documents WHERE parent = $1`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make(map[string][]byte)
	for rows.Next() {
		var p string
		var data []byte
		if err := rows.Scan(&p, &data); err != nil {
			return nil, err
		}
		children[store.Key(p)] = data
	}

	return children, rows.Err()
}

// Put upserts the document at path.
func (d *DB) Put(ctx context.Context, path string, value []byte) error {
	if !validPath(path) {
		return ErrInvalidPath
	}

	query := `
		INSERT INTO documents (path, parent, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (path) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	_, err := d.Pool.Exec(ctx, query, path, store.Parent(path), value)
	return err
}

// Delete removes the document at path and its subtree.
func (d *DB) Delete(ctx context.Context, path string) error {
	if !validPath(path) {
		return ErrInvalidPath
	}

	_, err := d.Pool.Exec(ctx,
		`DELETE FROM documents WHERE path = $1 OR path LIKE $2`,
		path, escapeLike(path)+"/%",
	)
	return err
}

// Subscribe registers fn for changes at or below prefix. Notifications are
// only delivered while Listen is running.
func (d *DB) Subscribe(_ context.Context, prefix string, fn func(path string)) (func(), error) {
	if !validPath(prefix) {
		return nil, ErrInvalidPath
	}
	return d.hub.Subscribe(prefix, fn), nil
}

// CountChildren returns how many documents sit directly under path.
func (d *DB) CountChildren(ctx context.Context, path string) (int, error) {
	var n int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE parent = $1`, path).Scan(&n)
	return n, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
