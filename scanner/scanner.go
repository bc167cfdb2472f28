package scanner

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// Row is one extracted result row. Entry i holds the value of the i-th
// requested column as canonical text (a string), or nil for SQL NULL.
type Row []any

// String returns entry i as text; NULL and out-of-range entries yield "".
func (r Row) String(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	s, _ := r[i].(string)
	return s
}

// IsNull reports whether entry i is SQL NULL.
func (r Row) IsNull(i int) bool {
	return i >= 0 && i < len(r) && r[i] == nil
}

// QueryOption configures extraction behavior.
type QueryOption func(*queryConfig)

type queryConfig struct {
	expectedSize int
}

// WithExpectedSize pre-allocates slice capacity for ExtractAll when the
// approximate row count is known ahead of time.
func WithExpectedSize(size int) QueryOption {
	return func(c *queryConfig) {
		c.expectedSize = size
	}
}

// ExtractOne reads the first row of rows. It returns a nil Row and a nil
// error when the result set is empty.
func ExtractOne(rows *sql.Rows, columns []string) (Row, error) {
	p, err := newPlan(rows, columns)
	if err != nil {
		return nil, err
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		return nil, nil
	}
	return p.read(rows)
}

// ExtractAll consumes rows and returns one Row per result row in the order
// the driver produces them. The result is fully materialized.
func ExtractAll(rows *sql.Rows, columns []string, opts ...QueryOption) ([]Row, error) {
	cfg := &queryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p, err := newPlan(rows, columns)
	if err != nil {
		return nil, err
	}

	results := make([]Row, 0, cfg.expectedSize)
	for rows.Next() {
		row, err := p.read(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, nil
}

// plan maps requested columns onto result columns.
type plan struct {
	width   int      // number of result columns
	index   []int    // result position of each requested column
	dbTypes []string // database type name per result column, may be empty
}

func newPlan(rows *sql.Rows, columns []string) (*plan, error) {
	if len(columns) == 0 {
		return nil, dberr.Argumentf("extract", "empty column list")
	}

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	p := &plan{
		width:   len(names),
		index:   make([]int, len(columns)),
		dbTypes: make([]string, len(names)),
	}
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			p.dbTypes[i] = ct.DatabaseTypeName()
		}
	}

	used := make([]bool, len(names))
	for i, want := range columns {
		pos := -1
		// Statements built by the query package list columns in request
		// order, so the same position is tried before a name search.
		if i < len(names) && !used[i] && columnMatches(names[i], want) {
			pos = i
		} else {
			for j, name := range names {
				if !used[j] && columnMatches(name, want) {
					pos = j
					break
				}
			}
		}
		if pos < 0 {
			return nil, dberr.Argumentf("extract", "column %q not in result", want)
		}
		used[pos] = true
		p.index[i] = pos
	}
	return p, nil
}

// columnMatches compares a result column name with a requested column,
// which may be table-qualified.
func columnMatches(result, requested string) bool {
	if strings.EqualFold(result, requested) {
		return true
	}
	if dot := strings.LastIndexByte(requested, '.'); dot >= 0 {
		return strings.EqualFold(result, requested[dot+1:])
	}
	return false
}

func (p *plan) read(rows *sql.Rows) (Row, error) {
	raw := make([]any, p.width)
	targets := make([]any, p.width)
	for i := range raw {
		targets[i] = &raw[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	row := make(Row, len(p.index))
	for i, pos := range p.index {
		row[i] = Normalize(raw[pos], p.dbTypes[pos])
	}
	return row, nil
}
