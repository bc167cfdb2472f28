package query

import (
	"strconv"
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// Condition is a single equality predicate. A nil Value renders as
// "column IS NULL" and consumes no parameter.
type Condition struct {
	Column string
	Value  any
}

// Eq returns the predicate column = value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// render appends the predicate to b and its parameter, if any, to args.
func (c Condition) render(b *strings.Builder, args []any) []any {
	b.WriteString(c.Column)
	if c.Value == nil {
		b.WriteString(" IS NULL")
		return args
	}
	b.WriteString(" = ?")
	return append(args, c.Value)
}

// Combinator joins the predicates of a ConditionSet.
type Combinator string

const (
	And Combinator = "and"
	Or  Combinator = "or"
)

// ParseCombinator accepts exactly "and" or "or".
func ParseCombinator(s string) (Combinator, error) {
	switch c := Combinator(s); c {
	case And, Or:
		return c, nil
	}
	return "", dberr.Argumentf("combinator", "unrecognized combinator %q, want \"and\" or \"or\"", s)
}

func (c Combinator) keyword() string {
	return " " + strings.ToUpper(string(c)) + " "
}

// ConditionSet is a non-empty list of predicates joined by one combinator.
// Nesting and mixed combinators are not representable.
type ConditionSet struct {
	Conditions []Condition
	Combinator Combinator
}

// All joins conds with AND.
func All(conds ...Condition) ConditionSet {
	return ConditionSet{Conditions: conds, Combinator: And}
}

// Any joins conds with OR.
func Any(conds ...Condition) ConditionSet {
	return ConditionSet{Conditions: conds, Combinator: Or}
}

// Validate checks the set is non-empty, its combinator is known and every
// column is a well-formed identifier.
func (s ConditionSet) Validate() error {
	const op = "conditions"
	if len(s.Conditions) == 0 {
		return dberr.Argumentf(op, "empty condition set")
	}
	if _, err := ParseCombinator(string(s.Combinator)); err != nil {
		return err
	}
	for i, c := range s.Conditions {
		if err := CheckIdent(op, "condition "+strconv.Itoa(i+1)+" column", c.Column); err != nil {
			return err
		}
	}
	return nil
}

func (s ConditionSet) render(b *strings.Builder, args []any) []any {
	sep := s.Combinator.keyword()
	for i, c := range s.Conditions {
		if i > 0 {
			b.WriteString(sep)
		}
		args = c.render(b, args)
	}
	return args
}
