package bind

import (
	"github.com/nlimpid/sqlaccess/dberr"
)

// Params holds the driver arguments of one prepared statement, addressed by
// 1-based ordinal in the order the placeholders appear in the SQL text.
type Params struct {
	args []any
	set  []bool
}

// NewParams returns n empty parameter slots.
func NewParams(n int) *Params {
	return &Params{args: make([]any, n), set: make([]bool, n)}
}

// Set stores the driver value v in slot ordinal.
func (p *Params) Set(ordinal int, v any) error {
	if ordinal < 1 || ordinal > len(p.args) {
		return dberr.Argumentf("bind", "ordinal %d out of range [1,%d]", ordinal, len(p.args))
	}
	p.args[ordinal-1] = v
	p.set[ordinal-1] = true
	return nil
}

// Len returns the number of slots.
func (p *Params) Len() int { return len(p.args) }

// Args returns the bound values in ordinal order. It fails if a slot was
// never bound.
func (p *Params) Args() ([]any, error) {
	for i, ok := range p.set {
		if !ok {
			return nil, dberr.Argumentf("bind", "parameter %d was not bound", i+1)
		}
	}
	return p.args, nil
}
