package audit

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// Stringify renders a property value the way it is stored in the log.
// Nil values stay nil. A value that panics while rendering is written as
// its type name.
func Stringify(v any) (s *string) {
	if isNil(v) {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			fallback := fmt.Sprintf("<%T>", v)
			s = &fallback
		}
	}()
	out := render(v)
	return &out
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		// keep the scale: 12.50 stays "12.50"
		if t.Exponent() < 0 {
			return t.StringFixed(-t.Exponent())
		}
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return render(rv.Elem().Interface())
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// IsDefaultValue reports whether v holds its type's zero value: nil, "",
// 0, the zero time, a zero decimal, uuid.Nil or an empty struct.
func IsDefaultValue(v any) bool {
	if isNil(v) {
		return true
	}
	if z, ok := v.(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if z, ok := rv.Interface().(interface{ IsZero() bool }); ok {
		return z.IsZero()
	}
	return rv.IsZero()
}

// Equal compares two property values by value. Types with an Equal method
// (time.Time, decimal.Decimal) are compared through it.
func Equal(a, b any) (eq bool) {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	defer func() {
		if r := recover(); r != nil {
			eq = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return true
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return rv.IsNil()
		default:
			return false
		}
	}
}
