// Package dberr defines the error taxonomy shared by the sqlaccess packages.
//
// Every failure surfaced by the builder, the binder registry, the field mapper
// or the facade is one of the four types below. Match them with errors.As, or
// with errors.Is against the corresponding sentinel:
//
//	if errors.Is(err, dberr.ErrArgumentFormat) {
//	    // caller input was rejected before any statement was issued
//	}
package dberr

import (
	"errors"
	"fmt"
)

var (
	// ErrArgumentFormat matches any *ArgumentFormatError.
	ErrArgumentFormat = errors.New("sqlaccess: argument format")
	// ErrUnsupportedValueKind matches any *UnsupportedValueKindError.
	ErrUnsupportedValueKind = errors.New("sqlaccess: unsupported value kind")
	// ErrUnsupportedFieldType matches any *UnsupportedFieldTypeError.
	ErrUnsupportedFieldType = errors.New("sqlaccess: unsupported field type")
	// ErrExecution matches any *ExecutionError.
	ErrExecution = errors.New("sqlaccess: execution failed")
)

// ArgumentFormatError reports malformed caller input: an empty column list,
// an empty condition set, an unknown combinator and the like. It is always
// returned before any statement is prepared.
type ArgumentFormatError struct {
	Op     string
	Reason string
}

func (e *ArgumentFormatError) Error() string {
	if e.Op == "" {
		return "sqlaccess: " + e.Reason
	}
	return "sqlaccess: " + e.Op + ": " + e.Reason
}

func (e *ArgumentFormatError) Is(target error) bool { return target == ErrArgumentFormat }

// Argumentf builds an *ArgumentFormatError with a formatted reason.
func Argumentf(op, format string, args ...any) error {
	return &ArgumentFormatError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedValueKindError reports a parameter value whose runtime type is
// outside the closed set of bindable scalar kinds.
type UnsupportedValueKindError struct {
	Ordinal int    // 1-based parameter position
	Type    string // Go type of the rejected value, "<nil>" for nil
}

func (e *UnsupportedValueKindError) Error() string {
	return fmt.Sprintf("sqlaccess: parameter %d: unsupported value kind %s", e.Ordinal, e.Type)
}

func (e *UnsupportedValueKindError) Is(target error) bool { return target == ErrUnsupportedValueKind }

// UnsupportedFieldTypeError reports a struct field whose declared type cannot
// be produced from a textual cell value.
type UnsupportedFieldTypeError struct {
	Field string
	Type  string
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("sqlaccess: field %s: unsupported field type %s", e.Field, e.Type)
}

func (e *UnsupportedFieldTypeError) Is(target error) bool { return target == ErrUnsupportedFieldType }

// ExecutionError wraps a failure reported by the execution handle while
// preparing, running or reading a statement.
type ExecutionError struct {
	Op    string
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("sqlaccess: %s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }
