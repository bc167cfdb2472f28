package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/nlimpid/sqlaccess"
	"github.com/nlimpid/sqlaccess/dberr"
	"github.com/nlimpid/sqlaccess/query"
	"github.com/nlimpid/sqlaccess/scanner"
)

// request is one read parsed from the command line.
type request struct {
	table   string
	columns []string
	key     *query.Condition
	where   []query.Condition
	comb    string
	join    *query.Join
	order   []query.Order
}

func newRequest(table string, columns []string, key, value string, where []string, comb, join string, order []string) (*request, error) {
	req := &request{table: table, columns: columns, comb: comb}

	if key != "" {
		req.key = &query.Condition{Column: key, Value: parseValue(value)}
	}
	for _, w := range where {
		col, val, ok := strings.Cut(w, "=")
		if !ok {
			return nil, dberr.Argumentf("where", "want col=value, got %q", w)
		}
		req.where = append(req.where, query.Eq(strings.TrimSpace(col), parseValue(val)))
	}
	if req.key != nil && len(req.where) > 0 {
		return nil, dberr.Argumentf("where", "--key and --where are mutually exclusive")
	}

	if join != "" {
		parts := strings.Split(join, ":")
		if len(parts) != 4 {
			return nil, dberr.Argumentf("join", "want kind:left_key:other_table:right_key, got %q", join)
		}
		kind, err := query.ParseJoinKind(parts[0])
		if err != nil {
			return nil, err
		}
		req.join = &query.Join{Kind: kind, LeftKey: parts[1], RightTable: parts[2], RightKey: parts[3]}
	}

	for _, o := range order {
		col, dir, _ := strings.Cut(o, ":")
		d := query.Asc
		if dir != "" {
			var err error
			if d, err = query.ParseDirection(dir); err != nil {
				return nil, err
			}
		}
		req.order = append(req.order, query.OrderBy(col, d))
	}
	return req, nil
}

// parseValue reads integers as int64 and NULL as nil; anything else stays
// text.
func parseValue(s string) any {
	if strings.EqualFold(s, "null") {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}

func (r *request) conditions() (*query.ConditionSet, error) {
	var conds []query.Condition
	switch {
	case r.key != nil:
		conds = []query.Condition{*r.key}
	case len(r.where) > 0:
		conds = r.where
	default:
		return nil, nil
	}
	c, err := query.ParseCombinator(r.comb)
	if err != nil {
		return nil, err
	}
	return &query.ConditionSet{Conditions: conds, Combinator: c}, nil
}

func (r *request) run(ctx context.Context, db *sqlaccess.DB) ([]scanner.Row, error) {
	if r.join != nil {
		set, err := r.conditions()
		if err != nil {
			return nil, err
		}
		return db.GetJoinedRows(ctx, r.table, r.join.LeftKey, r.join.RightTable, r.join.RightKey,
			r.columns, r.join.Kind, set, r.order...)
	}
	switch {
	case r.key != nil:
		return db.GetRows(ctx, r.table, r.columns, r.key.Column, r.key.Value, r.order...)
	case len(r.where) > 0:
		return db.GetRowsWhere(ctx, r.table, r.columns, r.where, r.comb, r.order...)
	}
	return db.GetAllRows(ctx, r.table, r.columns, r.order...)
}
