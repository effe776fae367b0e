package chrono

import (
	"errors"
	"fmt"
)

// ErrFieldRange is matched by every *FieldError.
var ErrFieldRange = errors.New("field value out of range")

// FieldError reports a constructor argument outside its valid range.
type FieldError struct {
	// Field names the offending argument, for example "day" or "minutes".
	Field string
	// Value is the rejected value.
	Value int64
	// Min and Max bound the valid range, both inclusive.
	Min, Max int64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %d: valid range %s", e.Field, e.Value, e.Range())
}

// Range formats the valid range as "min...max".
func (e *FieldError) Range() string {
	return fmt.Sprintf("%d...%d", e.Min, e.Max)
}

// Is makes errors.Is(err, ErrFieldRange) succeed.
func (e *FieldError) Is(target error) bool { return target == ErrFieldRange }

func checkField(field string, v, min, max int64) error {
	if v < min || v > max {
		return &FieldError{Field: field, Value: v, Min: min, Max: max}
	}
	return nil
}
