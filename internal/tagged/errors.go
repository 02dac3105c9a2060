package tagged

import "fmt"

// TypeMismatchError reports a wire value of the wrong JSON kind, most
// notably a non-object where a family member was expected.
type TypeMismatchError struct {
	Family   string // empty for plain field values
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	if e.Family != "" {
		return fmt.Sprintf("decoding %s: expected %s, got %s", e.Family, e.Expected, e.Actual)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// MissingFieldError reports a required field absent from a matched shape.
type MissingFieldError struct {
	Family string
	Shape  string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("decoding %s %q: missing field %q", e.Family, e.Shape, e.Field)
}

// FieldTypeError reports a field whose value could not be converted to the
// declared type.
type FieldTypeError struct {
	Family string
	Shape  string
	Field  string
	Err    error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("decoding %s %q: field %q: %v", e.Family, e.Shape, e.Field, e.Err)
}

func (e *FieldTypeError) Unwrap() error {
	return e.Err
}

// DiscriminatorMismatchError is returned by Narrow when the envelope's class
// is not the one registered for the requested shape.
type DiscriminatorMismatchError struct {
	Expected string
	Found    Discriminator
}

func (e *DiscriminatorMismatchError) Error() string {
	return fmt.Sprintf("invalid _class %s, expected %q", e.Found, e.Expected)
}
