package sertree

import "fmt"

// ValueType is the state a Value is stored in.
type ValueType int

const (
	UndefinedType ValueType = iota
	BooleanType
	StringType
	IntType
	DoubleType
)

func (t ValueType) String() string {
	s, ok := map[ValueType]string{
		UndefinedType: "Undefined",
		BooleanType:   "Boolean",
		StringType:    "String",
		IntType:       "Int",
		DoubleType:    "Double",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ValueType) UnmarshalText(d []byte) error {
	tt, ok := map[string]ValueType{
		"Undefined": UndefinedType,
		"Boolean":   BooleanType,
		"String":    StringType,
		"Int":       IntType,
		"Double":    DoubleType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized value type %q", d)
	}
	*t = tt
	return nil
}

func ValueTypes() []ValueType {
	return []ValueType{
		UndefinedType,
		BooleanType,
		StringType,
		IntType,
		DoubleType,
	}
}

// IsText reports whether values of this type store their payload as text.
func (t ValueType) IsText() bool {
	return t == StringType || t == UndefinedType
}
