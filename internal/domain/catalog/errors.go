package catalog

import "fmt"

// NotFoundError indicates a catalog lookup that matched nothing
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func notFound(kind string, key interface{}) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: fmt.Sprint(key)}
}

// DefinitionError indicates inconsistent reference data
type DefinitionError struct {
	Game    string
	Message string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid catalog %s: %s", e.Game, e.Message)
}
