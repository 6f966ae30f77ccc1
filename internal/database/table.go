package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trentd187/ticklist/internal/models"
)

// Table is the storage side of a table-backed resource: one instance per entity,
// each holding the shared pool plus the SQL it runs, built once from the entity's
// table name and column list.
type Table[T models.Entity] struct {
	db        *gorm.DB
	selectSQL string
	insertSQL string
}

// NewTable builds the Table for entity type T.
func NewTable[T models.Entity](db *gorm.DB) *Table[T] {
	var zero T
	return &Table[T]{
		db:        db,
		selectSQL: SelectAllSQL(zero),
		insertSQL: InsertSQL(zero),
	}
}

// SelectAllSQL returns the full-table read for e's table. No ORDER BY: rows come
// back in whatever order the database chooses.
func SelectAllSQL(e models.Entity) string {
	return "SELECT * FROM " + e.TableName()
}

// InsertSQL returns a positional insert for every column of e, id first.
// Placeholders use GORM's "?" form; the postgres dialector rewrites them to $n.
func InsertSQL(e models.Entity) string {
	cols := e.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + e.TableName() +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"
}

// List returns every row of the table. An empty table yields an empty, non-nil slice.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := t.db.WithContext(ctx).Raw(t.selectSQL).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, t.selectSQL)
	}
	return rows, nil
}

// Insert writes one row, binding id followed by the entity's own values in
// declaration order. Any id already on entity is not used.
func (t *Table[T]) Insert(ctx context.Context, id uuid.UUID, entity T) error {
	args := append([]any{id}, entity.Values()...)
	if err := t.db.WithContext(ctx).Exec(t.insertSQL, args...).Error; err != nil {
		return errors.Wrap(err, t.insertSQL)
	}
	return nil
}
