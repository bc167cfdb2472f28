package fieldmap

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nlimpid/sqlaccess/bind"
	"github.com/nlimpid/sqlaccess/dberr"
	"github.com/nlimpid/sqlaccess/scanner"
)

// converter turns cell text into a value assignable to one field type.
type converter func(text string) (reflect.Value, error)

var errUnsupported = errors.New("unsupported field type")

var (
	dateType  = reflect.TypeOf(bind.Date{})
	timeType  = reflect.TypeOf(time.Time{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
	ratType   = reflect.TypeOf((*big.Rat)(nil))
	bytesType = reflect.TypeOf([]byte(nil))
)

// converterFor resolves the text conversion of type t once, at Describe
// time. Types with no conversion get a converter that fails with
// errUnsupported, so the error surfaces when a value is populated.
func converterFor(t reflect.Type, char bool) (converter, error) {
	if char {
		if t.Kind() != reflect.Int32 {
			return nil, dberr.Argumentf("describe", "char option on %s, want rune", t)
		}
		return func(s string) (reflect.Value, error) {
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 || r == utf8.RuneError {
				return reflect.Value{}, fmt.Errorf("no character in %q", s)
			}
			return reflect.ValueOf(r).Convert(t), nil
		}, nil
	}

	switch t {
	case dateType:
		return func(s string) (reflect.Value, error) {
			d, err := bind.ParseDate(s)
			if err != nil {
				// timestamps truncate to their date
				d, err = scanner.Date(s)
			}
			return reflect.ValueOf(d), err
		}, nil
	case timeType:
		return func(s string) (reflect.Value, error) {
			ts, err := scanner.Time(s)
			return reflect.ValueOf(ts), err
		}, nil
	case uuidType:
		return func(s string) (reflect.Value, error) {
			u, err := uuid.Parse(s)
			return reflect.ValueOf(u), err
		}, nil
	case ratType:
		return func(s string) (reflect.Value, error) {
			r, ok := new(big.Rat).SetString(s)
			if !ok {
				return reflect.Value{}, fmt.Errorf("invalid decimal %q", s)
			}
			return reflect.ValueOf(r), nil
		}, nil
	case bytesType:
		return func(s string) (reflect.Value, error) {
			return reflect.ValueOf([]byte(s)), nil
		}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return func(s string) (reflect.Value, error) {
			return reflect.ValueOf(s).Convert(t), nil
		}, nil
	case reflect.Bool:
		return func(s string) (reflect.Value, error) {
			b, err := strconv.ParseBool(s)
			return reflect.ValueOf(b).Convert(t), err
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		return func(s string) (reflect.Value, error) {
			i, err := strconv.ParseInt(s, 10, bits)
			return reflect.ValueOf(i).Convert(t), err
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := t.Bits()
		return func(s string) (reflect.Value, error) {
			u, err := strconv.ParseUint(s, 10, bits)
			return reflect.ValueOf(u).Convert(t), err
		}, nil
	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		return func(s string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(s, bits)
			return reflect.ValueOf(f).Convert(t), err
		}, nil
	case reflect.Pointer:
		elem, err := converterFor(t.Elem(), false)
		if err != nil {
			return nil, err
		}
		return func(s string) (reflect.Value, error) {
			v, err := elem(s)
			if err != nil {
				return reflect.Value{}, err
			}
			p := reflect.New(t.Elem())
			p.Elem().Set(v)
			return p, nil
		}, nil
	case reflect.Struct, reflect.Array:
		// no textual form: fall back to the zero value
		return func(string) (reflect.Value, error) {
			return reflect.Zero(t), nil
		}, nil
	case reflect.Map:
		return func(string) (reflect.Value, error) {
			return reflect.MakeMap(t), nil
		}, nil
	case reflect.Slice:
		return func(string) (reflect.Value, error) {
			return reflect.MakeSlice(t, 0, 0), nil
		}, nil
	}
	return func(string) (reflect.Value, error) {
		return reflect.Value{}, errUnsupported
	}, nil
}

func wrapConvert(field string, t reflect.Type, err error) error {
	if errors.Is(err, errUnsupported) {
		return &dberr.UnsupportedFieldTypeError{Field: field, Type: t.String()}
	}
	return fmt.Errorf("field %s: %w", field, &dberr.ArgumentFormatError{Op: "populate", Reason: err.Error()})
}
