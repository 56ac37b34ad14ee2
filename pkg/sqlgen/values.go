package sqlgen

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// formatValue renders a condition value as a SQL literal. Strings are
// single-quoted with embedded quotes doubled, booleans become 1/0, numbers
// emit literally, slices become a parenthesized comma list (the IN form)
// and nil renders as NULL. Unknown types fall back to their quoted string
// representation.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	switch val := v.(type) {
	case string:
		return quoteString(val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}

	// Slices of any element type render as a value list. JSON decoding hands
	// us []any, but callers constructing ASTs in Go pass typed slices too.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return formatValueList(rv)
	}

	return quoteString(fmt.Sprintf("%v", v))
}

func formatValueList(rv reflect.Value) string {
	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts[i] = formatValue(rv.Index(i).Interface())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// valuePair splits a two-element value for BETWEEN. Missing elements render
// as NULL so malformed input still yields inspectable SQL.
func valuePair(v any) (string, string) {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return formatValue(v), "NULL"
	}
	lo, hi := "NULL", "NULL"
	if rv.Len() > 0 {
		lo = formatValue(rv.Index(0).Interface())
	}
	if rv.Len() > 1 {
		hi = formatValue(rv.Index(1).Interface())
	}
	return lo, hi
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
