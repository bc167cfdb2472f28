package query

import (
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// CheckIdent reports whether name is a plain or dot-qualified SQL
// identifier. Identifiers are inlined into the statement text, so anything
// else is rejected.
func CheckIdent(op, what, name string) error {
	if name == "" {
		return dberr.Argumentf(op, "empty %s", what)
	}
	for _, part := range strings.Split(name, ".") {
		if !isIdentPart(part) {
			return dberr.Argumentf(op, "malformed %s %q", what, name)
		}
	}
	return nil
}

func isIdentPart(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '$'):
		default:
			return false
		}
	}
	return true
}

// CheckColumns validates a non-empty column list.
func CheckColumns(op string, columns []string) error {
	if len(columns) == 0 {
		return dberr.Argumentf(op, "empty column list")
	}
	for _, c := range columns {
		if err := CheckIdent(op, "column", c); err != nil {
			return err
		}
	}
	return nil
}
