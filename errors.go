package restsharp

import (
	"fmt"
	"reflect"

	"github.com/bujawang/RestSharp/simplejson"
)

// ParseError reports malformed JSON text.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError reports a source value whose kind cannot satisfy the
// destination shape.
type ShapeMismatchError struct {
	Target reflect.Type
	Got    simplejson.Kind
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("cannot map %v value to %s", e.Got, e.Target)
}

// ConversionError reports a leaf value that cannot be coerced to its
// destination kind.
type ConversionError struct {
	Value  string
	Target reflect.Type
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %q to %s", e.Value, e.Target)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ConstructionError reports a destination that cannot be populated.
type ConstructionError struct {
	Target reflect.Type
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Target == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Target, e.Reason)
}
