package dberr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{
			name:     "argument format",
			err:      Argumentf("GetRows", "empty column list"),
			sentinel: ErrArgumentFormat,
			msg:      "sqlaccess: GetRows: empty column list",
		},
		{
			name:     "argument format without op",
			err:      &ArgumentFormatError{Reason: "bad"},
			sentinel: ErrArgumentFormat,
			msg:      "sqlaccess: bad",
		},
		{
			name:     "unsupported value kind",
			err:      &UnsupportedValueKindError{Ordinal: 2, Type: "uint64"},
			sentinel: ErrUnsupportedValueKind,
			msg:      "sqlaccess: parameter 2: unsupported value kind uint64",
		},
		{
			name:     "unsupported field type",
			err:      &UnsupportedFieldTypeError{Field: "Hook", Type: "func()"},
			sentinel: ErrUnsupportedFieldType,
			msg:      "sqlaccess: field Hook: unsupported field type func()",
		},
		{
			name:     "execution",
			err:      &ExecutionError{Op: "query", Query: "SELECT 1", Err: sql.ErrConnDone},
			sentinel: ErrExecution,
			msg:      "sqlaccess: query: sql: connection is already closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestExecutionErrorUnwrap(t *testing.T) {
	err := error(&ExecutionError{Op: "prepare", Err: sql.ErrTxDone})
	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.False(t, errors.Is(err, ErrArgumentFormat))

	var ee *ExecutionError
	assert.True(t, errors.As(err, &ee))
	assert.Equal(t, "prepare", ee.Op)
}
