package tagged

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// A Decoder converts one wire value into the destination it was built for.
type Decoder func(v any) error

// Field binds a canonical (snake_case) field name to a destination.
type Field struct {
	Name     string
	Required bool
	Decode   Decoder

	extra *map[string]any
}

// Fields is the declaration list returned by a Shape.
type Fields []Field

// Shape is a concrete record that can be decoded from a wire object.
// Fields returns bindings into the receiver, so it must be called on a
// pointer to the value being filled.
type Shape interface {
	Fields() Fields
}

// Unmarshaler is implemented by values with their own decoding routine, such
// as envelope types.
type Unmarshaler interface {
	UnmarshalWire(v any) error
}

// Required declares a field that must be present once the shape matched.
func Required(name string, d Decoder) Field {
	return Field{Name: name, Required: true, Decode: d}
}

// Optional declares a field that may be absent; the destination then keeps
// its zero value.
func Optional(name string, d Decoder) Field {
	return Field{Name: name, Decode: d}
}

// Extra declares the catch-all bucket. Keys that match no declared field are
// stored verbatim, with their original spelling.
func Extra(dst *map[string]any) Field {
	return Field{extra: dst}
}

func mismatch(expected string, v any) error {
	return &TypeMismatchError{Expected: expected, Actual: wire.Kind(v)}
}

// String decodes a JSON string.
func String(dst *string) Decoder {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return mismatch("string", v)
		}
		*dst = s
		return nil
	}
}

// Bool decodes a JSON boolean.
func Bool(dst *bool) Decoder {
	return func(v any) error {
		b, ok := v.(bool)
		if !ok {
			return mismatch("bool", v)
		}
		*dst = b
		return nil
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int decodes a JSON number into a signed integer, rejecting fractions and
// values that overflow T.
func Int[T signed](dst *T) Decoder {
	return func(v any) error {
		text, ok := numberText(v)
		if !ok {
			return mismatch("number", v)
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %s", text)
		}
		if int64(T(i)) != i {
			return fmt.Errorf("integer %s overflows %T", text, *dst)
		}
		*dst = T(i)
		return nil
	}
}

// Uint decodes a JSON number into an unsigned integer.
func Uint[T unsigned](dst *T) Decoder {
	return func(v any) error {
		text, ok := numberText(v)
		if !ok {
			return mismatch("number", v)
		}
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %s", text)
		}
		if uint64(T(u)) != u {
			return fmt.Errorf("integer %s overflows %T", text, *dst)
		}
		*dst = T(u)
		return nil
	}
}

// Float decodes any JSON number.
func Float(dst *float64) Decoder {
	return func(v any) error {
		text, ok := numberText(v)
		if !ok {
			return mismatch("number", v)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("invalid number %s", text)
		}
		*dst = f
		return nil
	}
}

func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// Nullable accepts null as well as whatever inner accepts.
func Nullable[T any](dst **T, inner func(*T) Decoder) Decoder {
	return func(v any) error {
		if v == nil {
			*dst = nil
			return nil
		}
		x := new(T)
		if err := inner(x)(v); err != nil {
			return err
		}
		*dst = x
		return nil
	}
}

// List decodes a JSON array element by element. Null yields a nil slice.
func List[T any](dst *[]T, elem func(*T) Decoder) Decoder {
	return func(v any) error {
		var items []any
		switch a := v.(type) {
		case nil:
			*dst = nil
			return nil
		case wire.Array:
			items = a
		case []any:
			items = a
		default:
			return mismatch("array", v)
		}
		out := make([]T, len(items))
		for i, item := range items {
			if err := elem(&out[i])(item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		*dst = out
		return nil
	}
}

// Map decodes a JSON object with free-form keys. Keys are kept verbatim.
func Map[T any](dst *map[string]T, elem func(*T) Decoder) Decoder {
	return func(v any) error {
		if v == nil {
			*dst = nil
			return nil
		}
		obj, ok := v.(*wire.Object)
		if !ok {
			return mismatch("object", v)
		}
		out := make(map[string]T, obj.Len())
		for _, m := range obj.Members() {
			var x T
			if err := elem(&x)(m.Value); err != nil {
				return fmt.Errorf("%s: %w", m.Key, err)
			}
			out[m.Key] = x
		}
		*dst = out
		return nil
	}
}

// Record decodes a nested, non-polymorphic shape.
func Record[T any, PT interface {
	*T
	Shape
}](dst *T) Decoder {
	return func(v any) error {
		return DecodeShape(v, "record", fmt.Sprintf("%T", *dst), PT(dst))
	}
}

// Into hands the value to the destination's own UnmarshalWire.
func Into[T any, PT interface {
	*T
	Unmarshaler
}](dst *T) Decoder {
	return PT(dst).UnmarshalWire
}

// Raw keeps the wire value untouched.
func Raw(dst *any) Decoder {
	return func(v any) error {
		*dst = v
		return nil
	}
}
