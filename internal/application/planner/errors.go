package planner

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a request rejected before reaching the engine
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid request: %v", e.Err)
	}
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Fields, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Err: err}
	}

	fields := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		if e.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s failed %s=%s (value: '%v')", e.Namespace(), e.Tag(), e.Param(), e.Value()))
		} else {
			fields = append(fields, fmt.Sprintf("%s failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
		}
	}
	return &ValidationError{Fields: fields, Err: err}
}

// NoRepositoryError is returned by storage operations when the service has
// no repository
type NoRepositoryError struct{}

func (e *NoRepositoryError) Error() string { return "no complex repository configured" }
