package definition

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/guenzelsen/querydsl"
)

// sortedKeys returns the keys of m in a stable order.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toObject(v interface{}, what string) (map[string]interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		return val, nil
	case nil:
		return map[string]interface{}{}, nil
	default:
		return nil, fmt.Errorf("%s must be an object", what)
	}
}

func toString(v interface{}, what string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", what)
	}
	return s, nil
}

// toText accepts strings and integers, for settings such as fuzziness
// and minimum_should_match that take either.
func toText(v interface{}, what string) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("%s must be a string or an integer", what)
	}
}

func toBool(v interface{}, what string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean", what)
	}
	return b, nil
}

func toInt(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case uint64:
		if val > math.MaxInt64 {
			return 0, false
		}
		return int(val), true
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		return int(val), true
	default:
		return 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// toStrings accepts a single string or a list of strings.
func toStrings(v interface{}, what string) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", what, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or an array of strings", what)
	}
}

// toFieldValue maps a decoded scalar onto a typed value. The scalar's YAML
// type decides: quoted "10" stays a string, bare 10 is an integer.
func toFieldValue(v interface{}, what string) (querydsl.FieldValue, error) {
	switch val := v.(type) {
	case string:
		return querydsl.StringValue(val), nil
	case bool:
		return querydsl.BoolValue(val), nil
	case int:
		return querydsl.IntValue(int64(val)), nil
	case int64:
		return querydsl.IntValue(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return querydsl.FieldValue{}, fmt.Errorf("%s is out of range", what)
		}
		return querydsl.IntValue(int64(val)), nil
	case nil:
		return querydsl.FieldValue{}, fmt.Errorf("%s cannot be null", what)
	default:
		return querydsl.FieldValue{}, fmt.Errorf("%s has unsupported type %T", what, v)
	}
}

// applyCommon handles the boost and _name keys every query accepts.
func applyCommon(key string, v interface{}, c *querydsl.Common, what string) (bool, error) {
	switch key {
	case "boost":
		f, ok := toFloat64(v)
		if !ok {
			return true, fmt.Errorf("%s.boost must be a number", what)
		}
		c.Boost = &f
		return true, nil
	case "_name":
		s, err := toString(v, what+"._name")
		if err != nil {
			return true, err
		}
		c.Name = s
		return true, nil
	}
	return false, nil
}
