package repository

import (
	"context"
	"fmt"
	"strings"

	"libraryapi/internal/db"
)

// CRUD implements the five standard operations for one table. The entity
// repositories are thin wrappers that supply a table schema and add their
// entity-specific queries on top.
//
// Column names come from the static schema below, never from request data;
// every request-supplied value is bound as a typed parameter.
type CRUD[T any] struct {
	gw     *db.Gateway
	entity string

	selectAll  string
	selectByID string
	insertStmt string
	updateStmt string
	deleteStmt string
}

// Schema describes the table behind a CRUD repository.
type Schema struct {
	Table    string
	IDColumn string
	// Columns are the selected columns, including the id column.
	Columns []string
	// Writable are the columns set on insert and update, in the order the
	// repository's callers pass values.
	Writable []string
}

func NewCRUD[T any](gw *db.Gateway, entity string, s Schema) *CRUD[T] {
	cols := strings.Join(s.Columns, ", ")
	sets := make([]string, len(s.Writable))
	for i, c := range s.Writable {
		sets[i] = c + " = ?"
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.Writable)), ", ")

	return &CRUD[T]{
		gw:         gw,
		entity:     entity,
		selectAll:  fmt.Sprintf("SELECT %s FROM %s", cols, s.Table),
		selectByID: fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", cols, s.Table, s.IDColumn),
		insertStmt: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.Table, strings.Join(s.Writable, ", "), placeholders),
		updateStmt: fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.Table, strings.Join(sets, ", "), s.IDColumn),
		deleteStmt: fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.Table, s.IDColumn),
	}
}

// List returns every row in the store's natural order.
func (r *CRUD[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.gw.Select(ctx, &out, r.entity+".list", r.selectAll); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the row with the given id. Absence is reported as
// found=false, not as an error.
func (r *CRUD[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var out T
	found, err := r.gw.Get(ctx, &out, r.entity+".get", r.selectByID, id)
	return out, found, err
}

// Create inserts a row, reads back the store-generated id and re-reads the
// row so callers get the canonical persisted form, defaults included.
func (r *CRUD[T]) Create(ctx context.Context, values ...any) (T, error) {
	var zero T

	res, err := r.gw.Exec(ctx, r.entity+".create", r.insertStmt, values...)
	if err != nil {
		return zero, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("%s.create: %w", r.entity, err)
	}

	created, found, err := r.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, fmt.Errorf("%s.create: inserted row %d not found on re-read", r.entity, id)
	}
	return created, nil
}

// Update rewrites the writable columns of one row. Zero matched rows means
// the id does not exist; an update that changes nothing still matches.
func (r *CRUD[T]) Update(ctx context.Context, id int64, values ...any) (T, bool, error) {
	var zero T

	args := append(append([]any{}, values...), id)
	res, err := r.gw.Exec(ctx, r.entity+".update", r.updateStmt, args...)
	if err != nil {
		return zero, false, err
	}
	matched, err := res.RowsAffected()
	if err != nil {
		return zero, false, fmt.Errorf("%s.update: %w", r.entity, err)
	}
	if matched == 0 {
		return zero, false, nil
	}

	return r.GetByID(ctx, id)
}

// Delete removes one row, reporting whether it existed.
func (r *CRUD[T]) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.gw.Exec(ctx, r.entity+".delete", r.deleteStmt, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s.delete: %w", r.entity, err)
	}
	return affected > 0, nil
}
