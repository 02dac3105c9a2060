package tagged

import (
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// Decode turns a wire object into a member of the catalog's family.
//
// The root must be an object. A missing or unregistered _class yields the
// catalog's unknown case and never fails. A registered class is decoded
// with DecodeShape, whose errors are returned as-is.
func Decode[T Shape](v any, c *Catalog[T]) (T, error) {
	var zero T
	obj, ok := v.(*wire.Object)
	if !ok || obj == nil {
		return zero, &TypeMismatchError{Family: c.family, Expected: "object", Actual: wire.Kind(v)}
	}
	class, present := obj.Class()
	newShape, known := c.variants[class]
	if !present || !known {
		return c.unknown(Discriminator{Value: class, Present: present}), nil
	}
	s := newShape()
	if err := decodeObject(obj, c.family, class, s.Fields(), nil); err != nil {
		return zero, err
	}
	return s, nil
}

// DecodeShape fills s from a wire object. It is the per-shape half of
// Decode and ignores the object's _class.
func DecodeShape(v any, family, shape string, s Shape) error {
	obj, ok := v.(*wire.Object)
	if !ok {
		return &TypeMismatchError{Family: family, Expected: "object", Actual: wire.Kind(v)}
	}
	return decodeObject(obj, family, shape, s.Fields(), nil)
}

// decodeObject matches members against fields. Members are collapsed per
// normalized name first, so a repeated key (or two spellings of the same
// field) resolves to the last occurrence. Keys without a field go to the
// catch-all bucket, when declared, and to other, when non-nil.
func decodeObject(obj *wire.Object, family, shape string, fields Fields, other map[string]any) error {
	index := make(map[string]int, len(fields))
	var extra *map[string]any
	for i, f := range fields {
		if f.extra != nil {
			extra = f.extra
			continue
		}
		index[f.Name] = i
	}

	values := make([]any, len(fields))
	seen := make([]bool, len(fields))
	for _, m := range obj.Members() {
		if m.Key == wire.ClassKey {
			continue
		}
		if i, ok := index[Normalize(m.Key)]; ok {
			values[i] = m.Value
			seen[i] = true
			continue
		}
		if extra != nil {
			if *extra == nil {
				*extra = make(map[string]any)
			}
			(*extra)[m.Key] = m.Value
		}
		if other != nil {
			other[m.Key] = m.Value
		}
	}

	for i, f := range fields {
		if f.extra != nil {
			continue
		}
		if !seen[i] {
			if f.Required {
				return &MissingFieldError{Family: family, Shape: shape, Field: f.Name}
			}
			continue
		}
		if err := f.Decode(values[i]); err != nil {
			return &FieldTypeError{Family: family, Shape: shape, Field: f.Name, Err: err}
		}
	}
	return nil
}
