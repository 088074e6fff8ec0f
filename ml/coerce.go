package ml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ToFloat converts a JSON value to a float the way a lenient numeric cast
// would: numbers pass through, numeric strings are parsed, booleans become
// 1 or 0. Anything else is rejected.
func ToFloat(v gjson.Result) (float64, error) {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, v.Str)
		}
		f = parsed
	case gjson.True:
		f = 1
	case gjson.False:
		f = 0
	case gjson.Null:
		return 0, fmt.Errorf("%w: null", ErrNotNumeric)
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, v.Raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNonFinite
	}
	return f, nil
}

// objectFields indexes the members of a JSON object. A repeated key keeps
// its last value.
func objectFields(obj gjson.Result) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

// ParsePatient reads the six API fields from a JSON object body and
// assembles them into a vector in training order.
func ParsePatient(body []byte) (Vector, error) {
	if !gjson.ValidBytes(body) {
		return Vector{}, fmt.Errorf("%w: malformed JSON", ErrInvalidBody)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Vector{}, ErrInvalidBody
	}
	fields := objectFields(doc)

	var vec Vector
	for i, f := range features {
		raw, ok := fields[f.Field]
		if !ok {
			return Vector{}, fmt.Errorf("%w: %s", ErrMissingField, f.Field)
		}
		value, err := ToFloat(raw)
		if err != nil {
			return Vector{}, fmt.Errorf("%s: %w", f.Field, err)
		}
		vec[i] = value
	}
	return vec, nil
}
