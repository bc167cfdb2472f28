// Package bind maps parameter values to prepared-statement arguments.
//
// Dispatch is by the runtime kind of each value over a closed set of scalar
// kinds (see Kind). A Registry holds one Binder per kind; values outside the
// set are rejected with *dberr.UnsupportedValueKindError and are never
// coerced to text.
package bind

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nlimpid/sqlaccess/dberr"
)

// Binder writes v into slot ordinal of p. The registry only calls a binder
// with values whose KindOf matches the kind it is registered for.
type Binder func(p *Params, ordinal int, v any) error

// Registry maps each scalar kind to its Binder. Register must not be called
// concurrently with Bind.
type Registry struct {
	binders [numKinds]Binder
}

// Default is the registry used when none is configured.
var Default = NewRegistry()

// NewRegistry returns a registry populated with the default binders.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, k := range Kinds() {
		r.binders[k] = convertBinder(k)
	}
	return r
}

// Register replaces the binder for kind k.
func (r *Registry) Register(k Kind, b Binder) error {
	if k == KindInvalid || k >= numKinds {
		return dberr.Argumentf("register", "kind %d is not a scalar kind", k)
	}
	if b == nil {
		return dberr.Argumentf("register", "nil binder for kind %s", k)
	}
	r.binders[k] = b
	return nil
}

// Bind resolves the kind of v and binds it into slot ordinal of p.
func (r *Registry) Bind(p *Params, ordinal int, v any) error {
	k, ok := KindOf(v)
	if !ok {
		return &dberr.UnsupportedValueKindError{Ordinal: ordinal, Type: fmt.Sprintf("%T", v)}
	}
	return r.binders[k](p, ordinal, v)
}

// BindAll binds values to ordinals 1..len(values) and returns the filled
// parameter set.
func (r *Registry) BindAll(values []any) (*Params, error) {
	p := NewParams(len(values))
	for i, v := range values {
		if err := r.Bind(p, i+1, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func convertBinder(k Kind) Binder {
	return func(p *Params, ordinal int, v any) error {
		dv, err := driverValue(k, v)
		if err != nil {
			return fmt.Errorf("bind parameter %d (%s): %w", ordinal, k, err)
		}
		return p.Set(ordinal, dv)
	}
}

// driverValue converts a value of kind k into the form handed to
// database/sql.
func driverValue(k Kind, v any) (any, error) {
	switch k {
	case KindInt64:
		if i, ok := v.(int); ok {
			return int64(i), nil
		}
		return v, nil
	case KindDecimal:
		return decimalValue(v)
	case KindDate:
		return v.(Date).Time(), nil
	case KindClob:
		return string(v.(Clob)), nil
	case KindUUID:
		return v.(uuid.UUID).String(), nil
	case KindArray:
		return arrayValue(v)
	}
	return v, nil
}

func arrayValue(v any) (any, error) {
	switch x := v.(type) {
	case []uuid.UUID:
		out := make([]string, len(x))
		for i, u := range x {
			out[i] = u.String()
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			k, _ := KindOf(e)
			dv, err := driverValue(k, e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = dv
		}
		return out, nil
	}
	return v, nil
}

// maxRatScale bounds the digits searched for an exact decimal expansion of
// a *big.Rat.
const maxRatScale = 64

func decimalValue(v any) (any, error) {
	switch x := v.(type) {
	case pgtype.Numeric:
		return numericText(x), nil
	case *big.Rat:
		if x == nil {
			return nil, nil
		}
		return ratText(x), nil
	}
	return nil, fmt.Errorf("not a decimal: %T", v)
}

// numericText renders n as plain decimal text. Invalid numerics bind as
// NULL.
func numericText(n pgtype.Numeric) any {
	switch {
	case !n.Valid:
		return nil
	case n.NaN:
		return "NaN"
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity"
	case n.Int == nil:
		return "0"
	}
	r := new(big.Rat).SetInt(n.Int)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(n.Exp))), nil)
	if n.Exp < 0 {
		r.Quo(r, new(big.Rat).SetInt(scale))
	} else {
		r.Mul(r, new(big.Rat).SetInt(scale))
	}
	return ratText(r)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// ratText renders r as the shortest exact decimal, or rounded to
// maxRatScale digits when its expansion does not terminate.
func ratText(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	for scale := 1; scale < maxRatScale; scale++ {
		s := r.FloatString(scale)
		if back, ok := new(big.Rat).SetString(s); ok && back.Cmp(r) == 0 {
			return s
		}
	}
	return r.FloatString(maxRatScale)
}
