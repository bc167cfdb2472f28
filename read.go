package sqlaccess

import (
	"context"

	"github.com/nlimpid/sqlaccess/query"
	"github.com/nlimpid/sqlaccess/scanner"
)

// GetOneColumn reads column from the first row whose keyColumn equals
// keyValue. ok is false when no row matches; a matching NULL cell returns
// (nil, true, nil).
func (db *DB) GetOneColumn(ctx context.Context, table, column, keyColumn string, keyValue any, order ...query.Order) (value any, ok bool, err error) {
	columns := []string{column}
	q, err := query.Select{
		Table:   table,
		Columns: columns,
		Key:     &query.Condition{Column: keyColumn, Value: keyValue},
		OrderBy: order,
	}.Build()
	if err != nil {
		return nil, false, err
	}
	rows, err := db.fetch(ctx, "get one column", q, columns, true)
	if err != nil || len(rows) == 0 {
		return nil, false, err
	}
	return rows[0][0], true, nil
}

// GetRow reads the first row whose keyColumn equals keyValue. It returns a
// nil Row when none matches.
func (db *DB) GetRow(ctx context.Context, table string, columns []string, keyColumn string, keyValue any, order ...query.Order) (scanner.Row, error) {
	q, err := query.Select{
		Table:   table,
		Columns: columns,
		Key:     &query.Condition{Column: keyColumn, Value: keyValue},
		OrderBy: order,
	}.Build()
	if err != nil {
		return nil, err
	}
	rows, err := db.fetch(ctx, "get row", q, columns, true)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// GetRows reads every row whose keyColumn equals keyValue.
func (db *DB) GetRows(ctx context.Context, table string, columns []string, keyColumn string, keyValue any, order ...query.Order) ([]scanner.Row, error) {
	q, err := query.Select{
		Table:   table,
		Columns: columns,
		Key:     &query.Condition{Column: keyColumn, Value: keyValue},
		OrderBy: order,
	}.Build()
	if err != nil {
		return nil, err
	}
	return db.fetch(ctx, "get rows", q, columns, false)
}

// GetAllRows reads every row of table.
func (db *DB) GetAllRows(ctx context.Context, table string, columns []string, order ...query.Order) ([]scanner.Row, error) {
	q, err := query.Select{Table: table, Columns: columns, OrderBy: order}.Build()
	if err != nil {
		return nil, err
	}
	return db.fetch(ctx, "get all rows", q, columns, false)
}

// GetRowsMatching reads the rows of table satisfying set.
func (db *DB) GetRowsMatching(ctx context.Context, table string, columns []string, set query.ConditionSet, order ...query.Order) ([]scanner.Row, error) {
	q, err := query.Select{Table: table, Columns: columns, Where: &set, OrderBy: order}.Build()
	if err != nil {
		return nil, err
	}
	return db.fetch(ctx, "get rows matching", q, columns, false)
}

// GetRowsWhere is GetRowsMatching with the combinator given as text, "and"
// or "or".
func (db *DB) GetRowsWhere(ctx context.Context, table string, columns []string, conditions []query.Condition, combinator string, order ...query.Order) ([]scanner.Row, error) {
	c, err := query.ParseCombinator(combinator)
	if err != nil {
		return nil, err
	}
	return db.GetRowsMatching(ctx, table, columns, query.ConditionSet{Conditions: conditions, Combinator: c}, order...)
}

// GetJoinedRows reads table joined to otherTable on leftKey = rightKey. A
// nil set selects every joined row; otherwise only rows satisfying it.
// Columns should be table-qualified where names collide.
func (db *DB) GetJoinedRows(ctx context.Context, table, leftKey, otherTable, rightKey string, columns []string, kind query.JoinKind, set *query.ConditionSet, order ...query.Order) ([]scanner.Row, error) {
	q, err := query.Select{
		Table:   table,
		Columns: columns,
		Where:   set,
		Join: &query.Join{
			Kind:       kind,
			LeftKey:    leftKey,
			RightTable: otherTable,
			RightKey:   rightKey,
		},
		OrderBy: order,
	}.Build()
	if err != nil {
		return nil, err
	}
	return db.fetch(ctx, "get joined rows", q, columns, false)
}
