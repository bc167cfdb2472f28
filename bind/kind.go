package bind

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Kind is the closed set of scalar kinds a parameter value may have.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDecimal
	KindString
	KindDate
	KindTimestamp
	KindBlob
	KindClob
	KindArray
	KindUUID

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindDecimal:   "decimal",
	KindString:    "string",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindBlob:      "blob",
	KindClob:      "clob",
	KindArray:     "array",
	KindUUID:      "uuid",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Kinds returns every member kind, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := KindBool; k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// KindOf reports the scalar kind of v. The second result is false when v is
// outside the closed set: nil, unsigned integers, pointers other than
// *big.Rat, maps, structs other than the temporal and decimal types, and
// slices of unsupported elements.
func KindOf(v any) (Kind, bool) {
	switch x := v.(type) {
	case bool:
		return KindBool, true
	case int8:
		return KindInt8, true
	case int16:
		return KindInt16, true
	case int32:
		return KindInt32, true
	case int, int64:
		return KindInt64, true
	case float32:
		return KindFloat32, true
	case float64:
		return KindFloat64, true
	case *big.Rat, pgtype.Numeric:
		return KindDecimal, true
	case string:
		return KindString, true
	case Date:
		return KindDate, true
	case time.Time:
		return KindTimestamp, true
	case []byte:
		return KindBlob, true
	case Clob:
		return KindClob, true
	case uuid.UUID:
		return KindUUID, true
	case []bool, []int, []int16, []int32, []int64, []float32, []float64,
		[]string, []time.Time, [][]byte, []uuid.UUID:
		return KindArray, true
	case []any:
		for _, e := range x {
			if k, ok := KindOf(e); !ok || k == KindArray {
				return KindInvalid, false
			}
		}
		return KindArray, true
	}
	return KindInvalid, false
}
