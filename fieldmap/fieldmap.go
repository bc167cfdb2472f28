// Package fieldmap maps application structs to table columns.
//
// An Entity is a descriptor table for one struct type: one Field per mapped
// struct field, each with its column name, primary-key flag and accessor
// closures. Describe builds it once from struct tags; all per-object work
// afterwards goes through the stored accessors.
//
//	type User struct {
//	    ID       int64  `db:"user_id,pk"`
//	    Username string `db:"username"`
//	    Password string `db:"user_password"`
//	    Initial  rune   `db:"initial,char"`
//	    Cache    []int  `db:"-"`
//	}
//
//	users, err := fieldmap.Describe[User]()
//	pairs := users.FieldPairs(&u)
package fieldmap

import (
	"reflect"
	"strings"

	"github.com/nlimpid/sqlaccess/dberr"
)

// FieldPair is the column-level projection of one object field.
type FieldPair struct {
	Column     string
	Value      any
	PrimaryKey bool
}

// Field describes one mapped struct field of T.
type Field[T any] struct {
	Name       string
	Column     string
	PrimaryKey bool

	// Get reads the field value as a bindable parameter. Nil pointers read
	// as nil, *big.Rat stays a pointer and bytes widen to int16.
	Get func(obj *T) any
	// Set converts text into the field's declared type and stores it.
	Set func(obj *T, text string) error
	// Clear stores the field's zero value. Optional; without it a NULL
	// cell cannot be populated into the field.
	Clear func(obj *T)
}

// UntaggedPolicy decides what Describe does with exported fields that carry
// no column name.
type UntaggedPolicy int

const (
	// KeepUntagged maps the field with an empty column name.
	KeepUntagged UntaggedPolicy = iota
	// SkipUntagged leaves the field out of the entity.
	SkipUntagged
	// RejectUntagged makes Describe fail.
	RejectUntagged
)

type config struct {
	tag      string
	untagged UntaggedPolicy
}

// Option configures Describe.
type Option func(*config)

// WithTag reads column metadata from the named struct tag instead of "db".
func WithTag(name string) Option {
	return func(c *config) { c.tag = name }
}

// WithUntagged sets the policy for fields without a column name.
func WithUntagged(p UntaggedPolicy) Option {
	return func(c *config) { c.untagged = p }
}

// Entity is the descriptor table of struct type T.
type Entity[T any] struct {
	fields   []Field[T]
	byName   map[string]int
	byColumn map[string]int
}

// NewEntity builds an entity from hand-written field descriptors.
func NewEntity[T any](fields ...Field[T]) (*Entity[T], error) {
	e := &Entity[T]{
		fields:   fields,
		byName:   make(map[string]int, len(fields)),
		byColumn: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, dberr.Argumentf("entity", "field %d has no name", i)
		}
		if f.Get == nil || f.Set == nil {
			return nil, dberr.Argumentf("entity", "field %s has no accessors", f.Name)
		}
		if _, dup := e.byName[f.Name]; dup {
			return nil, dberr.Argumentf("entity", "duplicate field %s", f.Name)
		}
		e.byName[f.Name] = i
		if f.Column == "" {
			continue
		}
		key := strings.ToLower(f.Column)
		if _, dup := e.byColumn[key]; dup {
			return nil, dberr.Argumentf("entity", "duplicate column %s", f.Column)
		}
		e.byColumn[key] = i
	}
	return e, nil
}

// Fields returns the field descriptors in declaration order.
func (e *Entity[T]) Fields() []Field[T] { return e.fields }

// Columns returns the non-empty column names in declaration order.
func (e *Entity[T]) Columns() []string {
	cols := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		if f.Column != "" {
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// FieldPairs projects obj onto one FieldPair per field, reading the live
// field values.
func (e *Entity[T]) FieldPairs(obj *T) []FieldPair {
	pairs := make([]FieldPair, len(e.fields))
	for i, f := range e.fields {
		pairs[i] = FieldPair{Column: f.Column, Value: f.Get(obj), PrimaryKey: f.PrimaryKey}
	}
	return pairs
}

// PrimaryKey returns the pair of the single primary-key field of obj.
func (e *Entity[T]) PrimaryKey(obj *T) (FieldPair, error) {
	return PrimaryKeyOf(e.FieldPairs(obj))
}

// PrimaryKeyOf finds the single pair marked as primary key.
func PrimaryKeyOf(pairs []FieldPair) (FieldPair, error) {
	var (
		pk    FieldPair
		found int
	)
	for _, p := range pairs {
		if p.PrimaryKey {
			pk = p
			found++
		}
	}
	switch {
	case found == 0:
		return FieldPair{}, dberr.Argumentf("primary key", "no field is marked as primary key")
	case found > 1:
		return FieldPair{}, dberr.Argumentf("primary key", "%d fields are marked as primary key", found)
	case pk.Column == "":
		return FieldPair{}, dberr.Argumentf("primary key", "primary key field has no column name")
	}
	return pk, nil
}

// Field looks up a descriptor by struct field name.
func (e *Entity[T]) Field(name string) (Field[T], bool) {
	i, ok := e.byName[name]
	if !ok {
		return Field[T]{}, false
	}
	return e.fields[i], true
}

// PopulateField converts text into the declared type of the named field and
// stores it in obj.
func (e *Entity[T]) PopulateField(obj *T, name, text string) error {
	f, ok := e.Field(name)
	if !ok {
		return dberr.Argumentf("populate", "unknown field %s", name)
	}
	return f.Set(obj, text)
}

// Populate stores an extracted row into obj. columns and values are aligned;
// a nil value clears the field. Columns with no mapped field are rejected.
func (e *Entity[T]) Populate(obj *T, columns []string, values []any) error {
	if len(columns) != len(values) {
		return dberr.Argumentf("populate", "%d columns but %d values", len(columns), len(values))
	}
	for i, col := range columns {
		idx, ok := e.byColumn[strings.ToLower(col)]
		if !ok {
			return dberr.Argumentf("populate", "no field for column %s", col)
		}
		f := e.fields[idx]
		switch v := values[i].(type) {
		case nil:
			if f.Clear == nil {
				return dberr.Argumentf("populate", "column %s is NULL and field %s cannot be cleared", col, f.Name)
			}
			f.Clear(obj)
		case string:
			if err := f.Set(obj, v); err != nil {
				return err
			}
		default:
			return dberr.Argumentf("populate", "column %s: expected text value, got %T", col, v)
		}
	}
	return nil
}

// Describe builds the entity of T from struct tags. The tag value is
// "column" optionally followed by ",pk" and, for rune fields, ",char";
// "-" excludes the field. Exported fields only; anonymous struct fields are
// flattened.
func Describe[T any](opts ...Option) (*Entity[T], error) {
	cfg := config{tag: "db"}
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, dberr.Argumentf("describe", "%s is not a struct", rt)
	}

	var fields []Field[T]
	var walk func(t reflect.Type, base []int) error
	walk = func(t reflect.Type, base []int) error {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			path := append(append([]int(nil), base...), i)
			tag, omit := parseTag(sf.Tag.Get(cfg.tag))
			if omit {
				continue
			}
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag.column == "" {
				if err := walk(sf.Type, path); err != nil {
					return err
				}
				continue
			}
			if !sf.IsExported() {
				continue
			}
			if tag.column == "" {
				switch cfg.untagged {
				case SkipUntagged:
					continue
				case RejectUntagged:
					return dberr.Argumentf("describe", "field %s has no column name", sf.Name)
				}
			}
			conv, err := converterFor(sf.Type, tag.char)
			if err != nil {
				return err
			}
			fields = append(fields, newField[T](sf, path, tag, conv))
		}
		return nil
	}
	if err := walk(rt, nil); err != nil {
		return nil, err
	}
	return NewEntity(fields...)
}

type fieldTag struct {
	column string
	pk     bool
	char   bool
}

// parseTag supports "-", "col", "col,pk", ",pk", "col,char" in any option
// order.
func parseTag(tag string) (fieldTag, bool) {
	if tag == "-" {
		return fieldTag{}, true
	}
	var ft fieldTag
	for i, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case i == 0:
			ft.column = part
		case part == "pk":
			ft.pk = true
		case part == "char":
			ft.char = true
		}
	}
	return ft, false
}

func newField[T any](sf reflect.StructField, path []int, tag fieldTag, conv converter) Field[T] {
	name := sf.Name
	typ := sf.Type
	return Field[T]{
		Name:       name,
		Column:     tag.column,
		PrimaryKey: tag.pk,
		Get: func(obj *T) any {
			fv := reflect.ValueOf(obj).Elem().FieldByIndex(path)
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					return nil
				}
				// *big.Rat is itself a decimal value
				if fv.Type() != ratType {
					fv = fv.Elem()
				}
			}
			// bytes widen to the smallest signed kind holding them
			if fv.Kind() == reflect.Uint8 {
				return int16(fv.Uint())
			}
			return fv.Interface()
		},
		Set: func(obj *T, text string) error {
			v, err := conv(text)
			if err != nil {
				return wrapConvert(name, typ, err)
			}
			reflect.ValueOf(obj).Elem().FieldByIndex(path).Set(v)
			return nil
		},
		Clear: func(obj *T) {
			fv := reflect.ValueOf(obj).Elem().FieldByIndex(path)
			fv.Set(reflect.Zero(typ))
		},
	}
}
