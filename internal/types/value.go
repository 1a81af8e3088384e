package types

import "strconv"

// ValueType identifies the scalar held by a FieldValue.
type ValueType int

const (
	ValueString ValueType = iota
	ValueInt
	ValueBool
)

// FieldValue is a typed scalar used by match and term queries.
type FieldValue struct {
	str  string
	num  int64
	flag bool
	typ  ValueType
}

// String creates a string value.
func String(s string) FieldValue {
	return FieldValue{typ: ValueString, str: s}
}

// Int creates an integer value.
func Int(i int64) FieldValue {
	return FieldValue{typ: ValueInt, num: i}
}

// Bool creates a boolean value.
func Bool(b bool) FieldValue {
	return FieldValue{typ: ValueBool, flag: b}
}

// Type returns the scalar type.
func (v FieldValue) Type() ValueType {
	return v.typ
}

// StringValue returns the string and whether the value holds one.
func (v FieldValue) StringValue() (string, bool) {
	return v.str, v.typ == ValueString
}

// IntValue returns the integer and whether the value holds one.
func (v FieldValue) IntValue() (int64, bool) {
	return v.num, v.typ == ValueInt
}

// BoolValue returns the boolean and whether the value holds one.
func (v FieldValue) BoolValue() (bool, bool) {
	return v.flag, v.typ == ValueBool
}

// Interface returns the value as string, int64 or bool.
func (v FieldValue) Interface() any {
	switch v.typ {
	case ValueInt:
		return v.num
	case ValueBool:
		return v.flag
	default:
		return v.str
	}
}

// String formats the value the way it appears in query text.
func (v FieldValue) String() string {
	switch v.typ {
	case ValueInt:
		return strconv.FormatInt(v.num, 10)
	case ValueBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}
