package widget

import (
	"fmt"
	"strings"
)

// ValueType is the declared type of a project variable.
type ValueType string

const (
	TypeString  ValueType = "String"
	TypeInteger ValueType = "Integer"
	TypeFloat   ValueType = "Float"
	TypeBoolean ValueType = "Boolean"
)

// ValueTypes lists the variable types in display order.
var ValueTypes = []ValueType{TypeString, TypeInteger, TypeFloat, TypeBoolean}

// ParseValueType accepts a type name case-insensitively.
func ParseValueType(s string) (ValueType, error) {
	for _, t := range ValueTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown variable type %q", ErrInvalidValue, s)
}

// IsNumeric reports whether t is Integer or Float.
func (t ValueType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// TypeClass is the set of variable types a bindable property accepts.
type TypeClass int

const (
	ClassText TypeClass = iota
	ClassNumber
	ClassBool
	ClassAny
)

// Accepts reports whether a variable of type t may be bound to a property
// of this class.
func (c TypeClass) Accepts(t ValueType) bool {
	switch c {
	case ClassText:
		return t == TypeString
	case ClassNumber:
		return t.IsNumeric()
	case ClassBool:
		return t == TypeBoolean
	case ClassAny:
		return true
	}
	return false
}

func (c TypeClass) String() string {
	switch c {
	case ClassText:
		return "String"
	case ClassNumber:
		return "Integer or Float"
	case ClassBool:
		return "Boolean"
	default:
		return "any type"
	}
}
