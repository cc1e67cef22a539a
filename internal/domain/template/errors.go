package template

import "fmt"

// InvalidCodeError indicates a template code that cannot be decoded
type InvalidCodeError struct {
	Reason string
	Err    error
}

func (e *InvalidCodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid template code: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid template code: %s", e.Reason)
}

func (e *InvalidCodeError) Unwrap() error {
	return e.Err
}

func invalid(reason string, err error) *InvalidCodeError {
	return &InvalidCodeError{Reason: reason, Err: err}
}
