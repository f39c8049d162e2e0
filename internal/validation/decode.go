package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// decode copies raw into out (a pointer to a struct with `mapstructure` tags).
//
// Decoding is strict: keys match field tags exactly, and no weak typing is
// applied, so a string never becomes an int (or the reverse). Keys without a
// matching field are ignored.
func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(strictScalarHook),
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		Result: out,
	})
	if err != nil {
		return err
	}

	return dec.Decode(raw)
}

// strictScalarHook rejects the conversions mapstructure allows even without
// weak typing: fractional or out-of-range numbers into ints, and JSON numbers
// copied into strings.
//
// Integer targets get their value normalized to int64 or uint64 here, after a
// range check, so mapstructure never truncates or wraps. JSON numbers follow
// the same rules as float64 values, so 12.0 decodes as 12 on both paths.
func strictScalarHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toSigned(to, data)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return toUnsigned(to, data)

	case reflect.String:
		if n, ok := data.(json.Number); ok {
			return nil, fmt.Errorf("expected a string, got number %s", n)
		}
	}

	return data, nil
}

func toSigned(to reflect.Type, data any) (any, error) {
	target := reflect.Zero(to)

	switch v := numericValue(data); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if target.OverflowInt(v.Int()) {
			return nil, outOfRange(data, to)
		}
		return v.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := v.Uint(); u > math.MaxInt64 || target.OverflowInt(int64(u)) {
			return nil, outOfRange(data, to)
		}
		return int64(v.Uint()), nil

	case reflect.Float32, reflect.Float64:
		f, err := wholeFloat(data, v.Float())
		if err != nil {
			return nil, err
		}
		if f < math.MinInt64 || f >= 1<<63 || target.OverflowInt(int64(f)) {
			return nil, outOfRange(data, to)
		}
		return int64(f), nil

	case reflect.Invalid:
		return nil, fmt.Errorf("expected an integer, got number %v", data)
	}

	// Anything else (strings, bools) is left to mapstructure, which rejects it.
	return data, nil
}

func toUnsigned(to reflect.Type, data any) (any, error) {
	target := reflect.Zero(to)

	switch v := numericValue(data); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := v.Int(); i < 0 || target.OverflowUint(uint64(i)) {
			return nil, outOfRange(data, to)
		}
		return uint64(v.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if target.OverflowUint(v.Uint()) {
			return nil, outOfRange(data, to)
		}
		return v.Uint(), nil

	case reflect.Float32, reflect.Float64:
		f, err := wholeFloat(data, v.Float())
		if err != nil {
			return nil, err
		}
		if f < 0 || f >= 1<<64 || target.OverflowUint(uint64(f)) {
			return nil, outOfRange(data, to)
		}
		return uint64(f), nil

	case reflect.Invalid:
		return nil, fmt.Errorf("expected an integer, got number %v", data)
	}

	return data, nil
}

// numericValue returns data as a reflect.Value, parsing json.Number into an
// int64 or float64. An unparseable json.Number yields the zero Value.
func numericValue(data any) reflect.Value {
	n, ok := data.(json.Number)
	if !ok {
		return reflect.ValueOf(data)
	}

	if i, err := n.Int64(); err == nil {
		return reflect.ValueOf(i)
	}
	if f, err := n.Float64(); err == nil {
		return reflect.ValueOf(f)
	}

	return reflect.Value{}
}

func wholeFloat(data any, f float64) (float64, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected an integer, got %v", data)
	}

	return f, nil
}

func outOfRange(data any, to reflect.Type) error {
	return fmt.Errorf("%v is out of range for %s", data, to)
}
