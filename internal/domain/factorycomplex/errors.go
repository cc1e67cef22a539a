package factorycomplex

import "fmt"

// IndexError indicates an instance index outside the list bounds
type IndexError struct {
	List  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (have %d)", e.List, e.Index, e.Len)
}

// BuildingKindError indicates an operation that does not apply to the kind of
// building (extraction vs. production)
type BuildingKindError struct {
	Building   string
	Extraction bool
	Operation  string
}

func (e *BuildingKindError) Error() string {
	kind := "production"
	if e.Extraction {
		kind = "extraction"
	}
	return fmt.Sprintf("cannot %s: %s is a %s building", e.Operation, e.Building, kind)
}

// InvalidValueError indicates a quantity or yield list the engine cannot hold
type InvalidValueError struct {
	Field   string
	Message string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError indicates a stored complex that does not exist
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("complex not found: %s", e.Key)
}
