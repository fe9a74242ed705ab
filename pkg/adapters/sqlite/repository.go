package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/storedesk/pkg/domain"
	"github.com/aretw0/storedesk/pkg/ports"
)

// Repository implements ports.Repository on top of the documents table.
type Repository[T domain.Entity] struct {
	db    *DB
	kind  string
	newFn func() T
}

// NewRepository creates a repository for one entity kind.
func NewRepository[T domain.Entity](db *DB, kind string, newFn func() T) *Repository[T] {
	return &Repository[T]{db: db, kind: kind, newFn: newFn}
}

// NewRepositories creates the four entity repositories sharing one database.
func NewRepositories(db *DB) ports.Repositories {
	return ports.Repositories{
		Clients:    NewRepository(db, "client", func() *domain.Client { return new(domain.Client) }),
		Categories: NewRepository(db, "category", func() *domain.Category { return new(domain.Category) }),
		Products:   NewRepository(db, "product", func() *domain.Product { return new(domain.Product) }),
		Orders:     NewRepository(db, "order", func() *domain.Order { return new(domain.Order) }),
	}
}

// Get loads one document.
func (r *Repository[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	var data string
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE kind = ? AND id = ?`, r.kind, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("failed to query %s %d: %w", r.kind, id, err)
	}
	return r.decode(data)
}

// List loads all documents of the kind ordered by id.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT data FROM documents WHERE kind = ? ORDER BY id`, r.kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.kind, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.kind, err)
		}
		v, err := r.decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Insert allocates the next id from the sequences table and stores the document
// in the same transaction.
func (r *Repository[T]) Insert(ctx context.Context, v T) (int, error) {
	tx, err := r.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO sequences (kind, last) VALUES (?, 1)
		ON CONFLICT (kind) DO UPDATE SET last = last + 1
		RETURNING last`, r.kind).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", r.kind, err)
	}

	v.SetID(id)
	data, err := json.Marshal(v)
	if err != nil {
		v.SetID(0)
		return 0, fmt.Errorf("failed to marshal %s: %w", r.kind, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (kind, id, data) VALUES (?, ?, ?)`, r.kind, id, string(data)); err != nil {
		v.SetID(0)
		return 0, fmt.Errorf("failed to insert %s: %w", r.kind, err)
	}

	if err := tx.Commit(); err != nil {
		v.SetID(0)
		return 0, fmt.Errorf("failed to commit %s: %w", r.kind, err)
	}
	return id, nil
}

// Put overwrites an existing document.
func (r *Repository[T]) Put(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.kind, err)
	}
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE kind = ? AND id = ?`, string(data), r.kind, v.GetID())
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", r.kind, v.GetID(), err)
	}
	return expectOneRow(res)
}

// Delete removes a document.
func (r *Repository[T]) Delete(ctx context.Context, id int) error {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM documents WHERE kind = ? AND id = ?`, r.kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.kind, id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository[T]) decode(data string) (T, error) {
	v := r.newFn()
	if err := json.Unmarshal([]byte(data), v); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal %s: %w", r.kind, err)
	}
	return v, nil
}
