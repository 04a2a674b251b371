package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNotStruct indicates a source or target type is not a struct.
	ErrNotStruct = errors.New("not a struct type")

	// ErrNilSource indicates the source value is a nil pointer or nil interface.
	ErrNilSource = errors.New("nil source")

	// ErrAmbiguousField indicates a source field matched more than one target field.
	ErrAmbiguousField = errors.New("ambiguous field match")
)

// TypeError reports a type that cannot take part in a mapping.
type TypeError struct {
	Err  error        // Underlying sentinel error (ErrNotStruct, ErrNilSource)
	Type reflect.Type // Offending type, nil when unknown
	Role string       // "source" or "target"
}

func (e *TypeError) Error() string {
	if e.Type != nil && e.Role != "" {
		return fmt.Sprintf("%s: %s type %s", e.Err.Error(), e.Role, e.Type)
	}
	if e.Role != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Role)
	}
	if e.Type != nil {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Type)
	}
	return e.Err.Error()
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// FieldError reports a field that could not be copied.
type FieldError struct {
	Err    error        // Underlying sentinel error (ErrAmbiguousField)
	Field  string       // Source field name
	Source reflect.Type // Source struct type
	Target reflect.Type // Target struct type
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %s (%s -> %s)", e.Err.Error(), e.Field, e.Source, e.Target)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ElementError annotates a collection failure with the element index.
// It unwraps to the error returned for that element.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// newTypeError creates a TypeError for the given role.
func newTypeError(sentinel error, rt reflect.Type, role string) error {
	return &TypeError{
		Err:  sentinel,
		Type: rt,
		Role: role,
	}
}

// newFieldError creates a FieldError for a source field.
func newFieldError(sentinel error, field string, src, dst reflect.Type) error {
	return &FieldError{
		Err:    sentinel,
		Field:  field,
		Source: src,
		Target: dst,
	}
}
