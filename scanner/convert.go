package scanner

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/nlimpid/sqlaccess/bind"
)

// ErrNull is returned by the conversion helpers for a NULL cell.
var ErrNull = errors.New("scanner: value is NULL")

func text(v any) (string, error) {
	if v == nil {
		return "", ErrNull
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return Normalize(v, "").(string), nil
}

// Int converts an extracted cell into an integer of type T, failing when the
// text does not parse or does not fit T.
func Int[T constraints.Integer](v any) (T, error) {
	s, err := text(v)
	if err != nil {
		return 0, err
	}
	var zero T
	if zero-1 < 0 { // signed
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("convert %q: %w", s, err)
		}
		if int64(T(i)) != i {
			return 0, fmt.Errorf("convert %q: %w", s, strconv.ErrRange)
		}
		return T(i), nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("convert %q: %w", s, err)
	}
	if uint64(T(u)) != u {
		return 0, fmt.Errorf("convert %q: %w", s, strconv.ErrRange)
	}
	return T(u), nil
}

// Float converts an extracted cell into a floating point value of type T.
func Float[T constraints.Float](v any) (T, error) {
	s, err := text(v)
	if err != nil {
		return 0, err
	}
	var zero T
	bits := 64
	if _, ok := any(zero).(float32); ok {
		bits = 32
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		return 0, fmt.Errorf("convert %q: %w", s, err)
	}
	return T(f), nil
}

// Bool converts an extracted cell into a bool.
func Bool(v any) (bool, error) {
	s, err := text(v)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("convert %q: %w", s, err)
	}
	return b, nil
}

var timeLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	DateLayout,
}

// Time converts an extracted timestamp or date cell into a time.Time in UTC.
func Time(v any) (time.Time, error) {
	s, err := text(v)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("convert %q: not a recognized time", s)
}

// Date converts an extracted date cell into a bind.Date.
func Date(v any) (bind.Date, error) {
	t, err := Time(v)
	if err != nil {
		return bind.Date{}, err
	}
	return bind.DateOf(t), nil
}
