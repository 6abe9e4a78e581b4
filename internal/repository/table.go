// Package repository contains data access logic separated from HTTP handlers.
// Every operation is a single parameterized statement; the database owns all
// state and this layer holds none between calls.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors distinguishes sql.ErrNoRows
	"fmt"          // fmt builds the SQL text once at construction
	"strings"      // strings joins column lists
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// TableSpec describes how an entity maps onto its table.
//
// Columns are the writable columns in the order Args returns their values.
// Projection is the column list returned by reads and by RETURNING; Scan
// must read exactly those columns.  Parent, when set, is the column that
// scopes the table under another entity (imagenes.id_avistamiento).
type TableSpec[T any] struct {
	Name       string
	Columns    []string
	Projection []string
	Parent     string
	Scan       func(rowScanner, *T) error
	Args       func(*T) []any
}

// Table runs the generic CRUD statements for one entity.
type Table[T any] struct {
	db   *sql.DB
	spec TableSpec[T]

	qList, qListByParent  string
	qInsert, qInsertUnder string
	qUpdate               string
	qDelete, qDeleteUnder string
}

// NewTable precomputes the SQL text for spec.
func NewTable[T any](db *sql.DB, spec TableSpec[T]) *Table[T] {
	proj := strings.Join(spec.Projection, ", ")
	t := &Table[T]{db: db, spec: spec}

	t.qList = fmt.Sprintf("SELECT %s FROM %s", proj, spec.Name)
	t.qInsert = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		spec.Name, strings.Join(spec.Columns, ", "), placeholders(1, len(spec.Columns)), proj)

	sets := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	t.qUpdate = fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		spec.Name, strings.Join(sets, ", "), len(spec.Columns)+1, proj)
	t.qDelete = fmt.Sprintf("DELETE FROM %s WHERE id = $1", spec.Name)

	if spec.Parent != "" {
		t.qListByParent = fmt.Sprintf("%s WHERE %s = $1", t.qList, spec.Parent)
		t.qInsertUnder = fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s) RETURNING %s",
			spec.Name, spec.Parent, strings.Join(spec.Columns, ", "), placeholders(1, len(spec.Columns)+1), proj)
		t.qDeleteUnder = fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND %s = $2", spec.Name, spec.Parent)
	}
	return t
}

func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.spec.Name }

// List returns every row in storage order.  The result is never nil.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.query(ctx, t.qList)
}

// ListByParent returns the rows whose parent column equals parentID.
func (t *Table[T]) ListByParent(ctx context.Context, parentID string) ([]T, error) {
	if t.spec.Parent == "" {
		return nil, fmt.Errorf("%s: %w", t.spec.Name, ErrNoParent)
	}
	return t.query(ctx, t.qListByParent, parentID)
}

func (t *Table[T]) query(ctx context.Context, q string, args ...any) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := t.spec.Scan(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts v and returns the stored row, including the generated id.
func (t *Table[T]) Create(ctx context.Context, v T) (T, error) {
	return t.queryRow(ctx, t.qInsert, t.spec.Args(&v)...)
}

// CreateUnder inserts v with its parent column set to parentID.
func (t *Table[T]) CreateUnder(ctx context.Context, parentID string, v T) (T, error) {
	if t.spec.Parent == "" {
		var zero T
		return zero, fmt.Errorf("%s: %w", t.spec.Name, ErrNoParent)
	}
	args := append([]any{parentID}, t.spec.Args(&v)...)
	return t.queryRow(ctx, t.qInsertUnder, args...)
}

// Update overwrites every writable column of row id.  It returns nil and
// no error when no row has that id.
func (t *Table[T]) Update(ctx context.Context, id string, v T) (*T, error) {
	args := append(t.spec.Args(&v), id)
	out, err := t.queryRow(ctx, t.qUpdate, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes row id.  Deleting an absent id is not an error.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	_, err := t.db.ExecContext(ctx, t.qDelete, id)
	return err
}

// DeleteUnder removes row id only if it belongs to parentID.
func (t *Table[T]) DeleteUnder(ctx context.Context, id, parentID string) error {
	if t.spec.Parent == "" {
		return fmt.Errorf("%s: %w", t.spec.Name, ErrNoParent)
	}
	_, err := t.db.ExecContext(ctx, t.qDeleteUnder, id, parentID)
	return err
}

func (t *Table[T]) queryRow(ctx context.Context, q string, args ...any) (T, error) {
	var out T
	if err := t.spec.Scan(t.db.QueryRowContext(ctx, q, args...), &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
