package sqlaccess

import (
	"context"

	"github.com/nlimpid/sqlaccess/dberr"
	"github.com/nlimpid/sqlaccess/fieldmap"
	"github.com/nlimpid/sqlaccess/query"
)

// Insert writes one row built from pairs. Pairs without a column name are
// not mapped and are left out.
func (db *DB) Insert(ctx context.Context, table string, pairs []fieldmap.FieldPair) (int64, error) {
	var ins query.Insert
	ins.Table = table
	for _, p := range pairs {
		if p.Column == "" {
			continue
		}
		ins.Columns = append(ins.Columns, p.Column)
		ins.Values = append(ins.Values, p.Value)
	}
	q, err := ins.Build()
	if err != nil {
		return 0, err
	}
	return db.exec(ctx, "insert", q)
}

// Update sets every mapped non-key column of the row identified by the
// single primary-key pair.
func (db *DB) Update(ctx context.Context, table string, pairs []fieldmap.FieldPair) (int64, error) {
	pk, err := fieldmap.PrimaryKeyOf(pairs)
	if err != nil {
		return 0, err
	}
	if pk.Value == nil {
		return 0, dberr.Argumentf("update", "primary key %s is nil", pk.Column)
	}
	upd := query.Update{Table: table, Key: query.Eq(pk.Column, pk.Value)}
	for _, p := range pairs {
		if p.PrimaryKey || p.Column == "" {
			continue
		}
		upd.Set = append(upd.Set, query.Eq(p.Column, p.Value))
	}
	q, err := upd.Build()
	if err != nil {
		return 0, err
	}
	return db.exec(ctx, "update", q)
}

// Delete removes the row identified by the single primary-key pair.
func (db *DB) Delete(ctx context.Context, table string, pairs []fieldmap.FieldPair) (int64, error) {
	pk, err := fieldmap.PrimaryKeyOf(pairs)
	if err != nil {
		return 0, err
	}
	if pk.Value == nil {
		return 0, dberr.Argumentf("delete", "primary key %s is nil", pk.Column)
	}
	q, err := query.Delete{Table: table, Key: query.Eq(pk.Column, pk.Value)}.Build()
	if err != nil {
		return 0, err
	}
	return db.exec(ctx, "delete", q)
}
