package query

import (
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// Insert describes a single-row INSERT. A nil value is written as a NULL
// literal instead of a placeholder.
type Insert struct {
	Table   string
	Columns []string
	Values  []any
}

// Build validates s and renders it.
func (s Insert) Build() (Query, error) {
	const op = "insert"
	if err := CheckIdent(op, "table", s.Table); err != nil {
		return Query{}, err
	}
	if err := CheckColumns(op, s.Columns); err != nil {
		return Query{}, err
	}
	if len(s.Values) != len(s.Columns) {
		return Query{}, dberr.Argumentf(op, "%d columns but %d values", len(s.Columns), len(s.Values))
	}

	var b strings.Builder
	args := make([]any, 0, len(s.Values))
	b.WriteString("INSERT INTO ")
	b.WriteString(s.Table)
	b.WriteString(" (")
	b.WriteString(strings.Join(s.Columns, ", "))
	b.WriteString(") VALUES (")
	for i, v := range s.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		if v == nil {
			b.WriteString("NULL")
			continue
		}
		b.WriteByte('?')
		args = append(args, v)
	}
	b.WriteByte(')')
	return Query{SQL: b.String(), Args: args}, nil
}

// Update describes an UPDATE of the row(s) matching Key.
type Update struct {
	Table string
	Set   []Condition
	Key   Condition
}

// Build validates s and renders it. Nil Set values become NULL literals.
func (s Update) Build() (Query, error) {
	const op = "update"
	if err := CheckIdent(op, "table", s.Table); err != nil {
		return Query{}, err
	}
	if len(s.Set) == 0 {
		return Query{}, dberr.Argumentf(op, "no columns to set")
	}
	for _, c := range s.Set {
		if err := CheckIdent(op, "column", c.Column); err != nil {
			return Query{}, err
		}
	}
	if err := CheckIdent(op, "key column", s.Key.Column); err != nil {
		return Query{}, err
	}

	var b strings.Builder
	args := make([]any, 0, len(s.Set)+1)
	b.WriteString("UPDATE ")
	b.WriteString(s.Table)
	b.WriteString(" SET ")
	for i, c := range s.Set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Column)
		if c.Value == nil {
			b.WriteString(" = NULL")
			continue
		}
		b.WriteString(" = ?")
		args = append(args, c.Value)
	}
	b.WriteString(" WHERE ")
	args = s.Key.render(&b, args)
	return Query{SQL: b.String(), Args: args}, nil
}

// Delete describes a DELETE of the row(s) matching Key.
type Delete struct {
	Table string
	Key   Condition
}

// Build validates s and renders it.
func (s Delete) Build() (Query, error) {
	const op = "delete"
	if err := CheckIdent(op, "table", s.Table); err != nil {
		return Query{}, err
	}
	if err := CheckIdent(op, "key column", s.Key.Column); err != nil {
		return Query{}, err
	}

	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(s.Table)
	b.WriteString(" WHERE ")
	args := s.Key.render(&b, nil)
	return Query{SQL: b.String(), Args: args}, nil
}
