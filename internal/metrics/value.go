package metrics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a metric sample that is either a number or text
type Value struct {
	num    float64
	text   string
	isText bool
}

// Number wraps a numeric sample
func Number(f float64) Value {
	return Value{num: f}
}

// Text wraps a textual sample
func Text(s string) Value {
	return Value{text: s, isText: true}
}

// IsText reports whether the sample is textual
func (v Value) IsText() bool {
	return v.isText
}

// Float coerces the sample to a number. Text that does not parse and NaN
// both give 0.
func (v Value) Float() float64 {
	f := v.num
	if v.isText {
		s := strings.TrimSpace(v.text)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = n
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// String renders the sample the way it is shown on labels
func (v Value) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// MarshalJSON writes numbers as numbers and text as strings
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return []byte("0"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a number or a string
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, ok := toValue(raw)
	if !ok {
		parsed = Number(0)
	}
	*v = parsed
	return nil
}

// toValue converts a decoded sample; nil reports false
func toValue(raw any) (Value, bool) {
	switch x := raw.(type) {
	case nil:
		return Value{}, false
	case float64:
		return Number(x), true
	case float32:
		return Number(float64(x)), true
	case int:
		return Number(float64(x)), true
	case int64:
		return Number(float64(x)), true
	case int32:
		return Number(float64(x)), true
	case uint64:
		return Number(float64(x)), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Text(x.String()), true
		}
		return Number(f), true
	case string:
		return Text(x), true
	case bool:
		if x {
			return Number(1), true
		}
		return Number(0), true
	default:
		return Value{}, false
	}
}
