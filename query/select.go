// Package query renders parameterized SQL from structured inputs.
//
// Table and column names are inlined after identifier validation; every
// value is carried as a "?" placeholder and returned in Query.Args, in the
// order the placeholders appear. Use Rebind to convert the placeholders for
// drivers that number them.
package query

import (
	"strconv"
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// Query is rendered SQL text together with its ordered parameter values.
type Query struct {
	SQL  string
	Args []any
}

// JoinKind selects the join operator.
type JoinKind string

const (
	InnerJoin JoinKind = "inner"
	LeftJoin  JoinKind = "left"
)

// ParseJoinKind accepts exactly "inner" or "left".
func ParseJoinKind(s string) (JoinKind, error) {
	switch k := JoinKind(s); k {
	case InnerJoin, LeftJoin:
		return k, nil
	}
	return "", dberr.Argumentf("join", "unrecognized join kind %q, want \"inner\" or \"left\"", s)
}

// Join describes a two-table join on LeftKey = RightKey. Columns of the
// enclosing Select must be qualified by the caller wherever they are
// ambiguous across the two tables.
type Join struct {
	Kind       JoinKind
	LeftKey    string
	RightTable string
	RightKey   string
}

func (j Join) validate() error {
	const op = "join"
	if _, err := ParseJoinKind(string(j.Kind)); err != nil {
		return err
	}
	if err := CheckIdent(op, "left key", j.LeftKey); err != nil {
		return err
	}
	if err := CheckIdent(op, "right table", j.RightTable); err != nil {
		return err
	}
	return CheckIdent(op, "right key", j.RightKey)
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case Asc, Desc:
		return d, nil
	}
	return "", dberr.Argumentf("order", "unrecognized direction %q, want \"asc\" or \"desc\"", s)
}

// Order is one ORDER BY term. An empty Direction sorts ascending.
type Order struct {
	Column    string
	Direction Direction
}

// OrderBy returns an ascending or descending ordering on column.
func OrderBy(column string, dir Direction) Order {
	return Order{Column: column, Direction: dir}
}

// Select describes a SELECT statement. At most one of Key and Where may be
// set; with neither the whole table (or join) is selected.
type Select struct {
	Table   string
	Columns []string
	Key     *Condition
	Where   *ConditionSet
	Join    *Join
	OrderBy []Order
	Limit   int
}

// Build validates s and renders it.
func (s Select) Build() (Query, error) {
	const op = "select"
	if err := CheckIdent(op, "table", s.Table); err != nil {
		return Query{}, err
	}
	if err := CheckColumns(op, s.Columns); err != nil {
		return Query{}, err
	}
	if s.Key != nil && s.Where != nil {
		return Query{}, dberr.Argumentf(op, "key and condition set are mutually exclusive")
	}
	if s.Key != nil {
		if err := CheckIdent(op, "key column", s.Key.Column); err != nil {
			return Query{}, err
		}
	}
	if s.Where != nil {
		if err := s.Where.Validate(); err != nil {
			return Query{}, err
		}
	}
	if s.Join != nil {
		if err := s.Join.validate(); err != nil {
			return Query{}, err
		}
	}
	for _, o := range s.OrderBy {
		if err := CheckIdent(op, "order column", o.Column); err != nil {
			return Query{}, err
		}
		if o.Direction != "" {
			if _, err := ParseDirection(string(o.Direction)); err != nil {
				return Query{}, err
			}
		}
	}
	if s.Limit < 0 {
		return Query{}, dberr.Argumentf(op, "negative limit %d", s.Limit)
	}

	var b strings.Builder
	var args []any
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.Table)

	if j := s.Join; j != nil {
		b.WriteByte(' ')
		b.WriteString(strings.ToUpper(string(j.Kind)))
		b.WriteString(" JOIN ")
		b.WriteString(j.RightTable)
		b.WriteString(" ON ")
		b.WriteString(j.LeftKey)
		b.WriteString(" = ")
		b.WriteString(j.RightKey)
	}

	switch {
	case s.Key != nil:
		b.WriteString(" WHERE ")
		args = s.Key.render(&b, args)
	case s.Where != nil:
		b.WriteString(" WHERE ")
		args = s.Where.render(&b, args)
	}

	for i, o := range s.OrderBy {
		if i == 0 {
			b.WriteString(" ORDER BY ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(o.Column)
		if strings.EqualFold(string(o.Direction), string(Desc)) {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}

	if s.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.Limit))
	}
	return Query{SQL: b.String(), Args: args}, nil
}
