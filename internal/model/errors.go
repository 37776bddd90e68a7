package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnclassifiableType is wrapped by UnclassifiableTypeError.
	ErrUnclassifiableType = errors.New("model: unclassifiable type")
	// ErrIncompleteMap signals a map type missing its key or value type.
	ErrIncompleteMap = errors.New("model: map type requires key and value types")
	// ErrCyclicSchema is wrapped by CycleError.
	ErrCyclicSchema = errors.New("model: cyclic schema")
	// ErrDepthExceeded signals nesting beyond the configured maximum depth.
	ErrDepthExceeded = errors.New("model: maximum nesting depth exceeded")
)

// UnclassifiableTypeError reports a type that matches no category.
type UnclassifiableTypeError struct {
	Field    string
	TypeName string
}

func (e *UnclassifiableTypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("model: unclassifiable type %q", e.TypeName)
	}
	return fmt.Sprintf("model: unclassifiable type %q for field %q", e.TypeName, e.Field)
}

func (e *UnclassifiableTypeError) Unwrap() error {
	return ErrUnclassifiableType
}

// CycleError reports a record that re-enters itself while being expanded.
type CycleError struct {
	Path   string
	Record string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("model: record %q contains itself at %q", e.Record, e.Path)
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicSchema
}

// withField attaches the qualified field name to classifier errors.
func withField(err error, qualified string) error {
	var typed *UnclassifiableTypeError
	if errors.As(err, &typed) && typed.Field == "" {
		clone := *typed
		clone.Field = qualified
		return &clone
	}
	return err
}
