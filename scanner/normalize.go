package scanner

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05.999999999"
)

// Normalize converts a driver value into its canonical text form. dbType is
// the database type name of the source column when known; it only affects
// how time values are rendered. nil stays nil.
func Normalize(v any, dbType string) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if isDateType(dbType, x) {
			return x.Format(DateLayout)
		}
		return x.Format(TimestampLayout)
	case fmt.Stringer:
		return x.String()
	}

	// Driver types such as decimals often implement String on the pointer.
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		if s, ok := pv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	return fmt.Sprint(v)
}

func isDateType(dbType string, t time.Time) bool {
	upper := strings.ToUpper(dbType)
	if upper != "" {
		return strings.Contains(upper, "DATE") && !strings.Contains(upper, "TIME")
	}
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}
