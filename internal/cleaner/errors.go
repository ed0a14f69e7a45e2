package cleaner

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuredParse marks a nested-object cell that could not be parsed.
	// It is fatal for the load.
	ErrStructuredParse = errors.New("structured parse failure")
	// ErrValidation marks a failed validation step.
	ErrValidation = errors.New("validation failed")
	// ErrStepOrder marks a pipeline whose steps violate the ordering contract.
	ErrStepOrder = errors.New("invalid step order")
)

// StructuredParseError carries the location of a malformed structured cell.
type StructuredParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *StructuredParseError) Error() string {
	return fmt.Sprintf("parse %s at row %d: %v (value %q)", e.Column, e.Row, e.Err, truncate(e.Value, 60))
}

func (e *StructuredParseError) Unwrap() error { return e.Err }

func (e *StructuredParseError) Is(target error) bool { return target == ErrStructuredParse }

// ValidationError reports the first row that broke a validation rule.
type ValidationError struct {
	Column string
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s at row %d: %s", e.Column, e.Row, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
