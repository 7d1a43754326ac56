package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnexpectedParameters matches errors about unknown parameter names
	ErrUnexpectedParameters = errors.New("unexpected input processor parameters")
	// ErrInvalidParameter matches errors about invalid parameter values
	ErrInvalidParameter = errors.New("invalid input processor parameter")
)

// UnexpectedParametersError lists supplied parameters no spec recognized
type UnexpectedParametersError struct {
	Params map[string]interface{}
}

func (e *UnexpectedParametersError) Error() string {
	return "got unexpected input processor parameters " + formatMapping(e.Params)
}

// Is matches ErrUnexpectedParameters
func (e *UnexpectedParametersError) Is(target error) bool {
	return target == ErrUnexpectedParameters
}

// InvalidParameterError reports an unacceptable value for a known parameter
type InvalidParameterError struct {
	Name   string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("input processor parameter '%s' %s", e.Name, e.Reason)
}

// Is matches ErrInvalidParameter
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// Params holds the applied parameter values of a processor; absent means unset
type Params map[string]interface{}

// Int returns an integer parameter
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name].(int)
	return v, ok
}

// ParamSpec declares a named parameter and how its values are checked
type ParamSpec struct {
	Name string
	// Check validates a non-nil value and returns its normalized form
	Check func(name string, value interface{}) (interface{}, error)
}

// PositiveIntParam declares an optional integer parameter greater than zero
func PositiveIntParam(name string) ParamSpec {
	return ParamSpec{Name: name, Check: checkPositiveInt}
}

// ApplyParams validates supplied values against specs and returns the new state.
//
// Unknown names are rejected as a group before any value is checked; values
// are then checked in spec order. A nil value unsets the parameter. current
// is never modified.
func ApplyParams(current Params, supplied map[string]interface{}, specs []ParamSpec) (Params, error) {
	known := make(map[string]bool, len(specs))
	for _, spec := range specs {
		known[spec.Name] = true
	}

	leftover := make(map[string]interface{})
	for name, value := range supplied {
		if !known[name] {
			leftover[name] = value
		}
	}
	if len(leftover) > 0 {
		return nil, &UnexpectedParametersError{Params: leftover}
	}

	next := make(Params, len(current))
	for k, v := range current {
		next[k] = v
	}
	for _, spec := range specs {
		value, ok := supplied[spec.Name]
		if !ok {
			continue
		}
		if isNil(value) {
			delete(next, spec.Name)
			continue
		}
		normalized, err := spec.Check(spec.Name, value)
		if err != nil {
			return nil, err
		}
		next[spec.Name] = normalized
	}
	return next, nil
}

func checkPositiveInt(name string, value interface{}) (interface{}, error) {
	n, ok := toInt(value)
	if !ok {
		return nil, &InvalidParameterError{Name: name, Reason: "must be an integer number"}
	}
	if n <= 0 {
		return nil, &InvalidParameterError{Name: name, Reason: "must be greater than zero"}
	}
	return n, nil
}

// toInt accepts Go integer kinds and integral JSON numbers only
func toInt(value interface{}) (int, bool) {
	if num, ok := value.(json.Number); ok {
		i, err := num.Int64()
		if err != nil || i > math.MaxInt || i < math.MinInt {
			return 0, false
		}
		return int(i), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i > math.MaxInt || i < math.MinInt {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// formatMapping renders a mapping the way users write it in Python: {'a': 1}
func formatMapping(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatValue(k))
		b.WriteString(": ")
		b.WriteString(formatValue(m[k]))
	}
	b.WriteString("}")
	return b.String()
}

func formatValue(v interface{}) string {
	if isNil(v) {
		return "None"
	}
	switch x := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(strings.ReplaceAll(x, `\`, `\\`), "'", `\'`) + "'"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case json.Number:
		return x.String()
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	case map[string]interface{}:
		return formatMapping(x)
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if n, ok := toInt(v); ok {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%v", v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
