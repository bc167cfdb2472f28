package sqlaccess

import (
	"context"

	"github.com/nlimpid/sqlaccess/fieldmap"
	"github.com/nlimpid/sqlaccess/query"
)

// InsertObject inserts obj as one row of table.
func InsertObject[T any](ctx context.Context, db *DB, e *fieldmap.Entity[T], table string, obj *T) (int64, error) {
	return db.Insert(ctx, table, e.FieldPairs(obj))
}

// UpdateObject writes obj over the row sharing its primary key.
func UpdateObject[T any](ctx context.Context, db *DB, e *fieldmap.Entity[T], table string, obj *T) (int64, error) {
	return db.Update(ctx, table, e.FieldPairs(obj))
}

// DeleteObject removes the row sharing the primary key of obj.
func DeleteObject[T any](ctx context.Context, db *DB, e *fieldmap.Entity[T], table string, obj *T) (int64, error) {
	return db.Delete(ctx, table, e.FieldPairs(obj))
}

// GetObject reads the row whose primary key equals key into a new T. ok is
// false when no row matches.
func GetObject[T any](ctx context.Context, db *DB, e *fieldmap.Entity[T], table string, key any) (obj *T, ok bool, err error) {
	pk, err := e.PrimaryKey(new(T))
	if err != nil {
		return nil, false, err
	}
	columns := e.Columns()
	row, err := db.GetRow(ctx, table, columns, pk.Column, key)
	if err != nil || row == nil {
		return nil, false, err
	}
	obj = new(T)
	if err := e.Populate(obj, columns, row); err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

// GetObjects reads the rows of table satisfying set, or every row when set
// is nil, into new values of T.
func GetObjects[T any](ctx context.Context, db *DB, e *fieldmap.Entity[T], table string, set *query.ConditionSet, order ...query.Order) ([]T, error) {
	columns := e.Columns()
	q, err := query.Select{Table: table, Columns: columns, Where: set, OrderBy: order}.Build()
	if err != nil {
		return nil, err
	}
	rows, err := db.fetch(ctx, "get objects", q, columns, false)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(rows))
	for i, row := range rows {
		if err := e.Populate(&out[i], columns, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}
