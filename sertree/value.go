package sertree

import (
	"cmp"
	"strconv"
	"strings"
)

// Value is a tagged scalar. The zero Value is Undefined with empty text.
//
// Every getter is total: a value stored in one state is coerced to the
// requested one, degrading to a default instead of failing.
type Value struct {
	typ ValueType
	b   bool
	s   string
	i   int
	d   float64
}

func FromBool(v bool) Value {
	return Value{typ: BooleanType, b: v}
}

func FromString(v string) Value {
	return Value{typ: StringType, s: v}
}

func FromInt(v int) Value {
	return Value{typ: IntType, i: v}
}

func FromDouble(v float64) Value {
	return Value{typ: DoubleType, d: v}
}

// FromOpaque returns an Undefined value holding raw text whose type is
// only decided when it is read.
func FromOpaque(v string) Value {
	return Value{typ: UndefinedType, s: v}
}

func (v *Value) SetBool(b bool) { *v = FromBool(b) }

func (v *Value) SetString(s string) { *v = FromString(s) }

func (v *Value) SetInt(i int) { *v = FromInt(i) }

func (v *Value) SetDouble(d float64) { *v = FromDouble(d) }

func (v *Value) SetOpaque(s string) { *v = FromOpaque(s) }

func (v Value) Type() ValueType { return v.typ }

func (v Value) IsBoolean() bool { return v.typ == BooleanType }

func (v Value) IsString() bool { return v.typ == StringType }

func (v Value) IsInt() bool { return v.typ == IntType }

func (v Value) IsDouble() bool { return v.typ == DoubleType }

func (v Value) IsUndefined() bool { return v.typ == UndefinedType }

// Bool returns the value as a boolean. Text is true unless it is exactly
// "false", so the empty string is true.
func (v Value) Bool() bool {
	switch v.typ {
	case BooleanType:
		return v.b
	case IntType:
		return v.i != 0
	case DoubleType:
		return v.d != 0
	default:
		return v.s != "false"
	}
}

func (v Value) String() string {
	switch v.typ {
	case BooleanType:
		if v.b {
			return "true"
		}
		return "false"
	case IntType:
		return strconv.Itoa(v.i)
	case DoubleType:
		return FormatDouble(v.d)
	default:
		return v.s
	}
}

func (v Value) Int() int {
	switch v.typ {
	case BooleanType:
		if v.b {
			return 1
		}
		return 0
	case IntType:
		return v.i
	case DoubleType:
		return doubleToInt(v.d)
	default:
		return LenientInt(v.s)
	}
}

func (v Value) Double() float64 {
	switch v.typ {
	case BooleanType:
		if v.b {
			return 1
		}
		return 0
	case IntType:
		return float64(v.i)
	case DoubleType:
		return v.d
	default:
		return LenientFloat(v.s)
	}
}

// Equal reports whether two values hold the same payload. Undefined and
// String values compare by text.
func (v Value) Equal(o Value) bool {
	return compareValues(v, o) == 0
}

func compareValues(a, b Value) int {
	ra, rb := valueRank(a.typ), valueRank(b.typ)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.typ {
	case BooleanType:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case IntType:
		return cmp.Compare(a.i, b.i)
	case DoubleType:
		return cmp.Compare(a.d, b.d)
	default:
		return strings.Compare(a.s, b.s)
	}
}

// valueRank orders value types: Boolean < Int < Double < text.
func valueRank(t ValueType) int {
	switch t {
	case BooleanType:
		return 0
	case IntType:
		return 1
	case DoubleType:
		return 2
	default:
		return 3
	}
}
