package database

import (
	"github.com/go-errors/errors"
)

// ErrUnknownEnumValue is matched by every EnumValueError.
var ErrUnknownEnumValue = errors.New("unknown enum value")

// EnumValueError reports a name that matches no variant of an enum.
type EnumValueError struct {
	Enum  string
	Value string
}

func (e *EnumValueError) Error() string {
	return "unknown enum value " + e.Enum + "." + e.Value
}

func (e *EnumValueError) Is(target error) bool {
	return target == ErrUnknownEnumValue
}
