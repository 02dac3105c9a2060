// Package tagged decodes _class-tagged JSON objects into statically typed
// values.
//
// Each family (Job, Build, Cause, ...) is a Go interface with one concrete
// type per known shape plus an Unknown case. A Catalog maps discriminator
// strings to shape constructors; decoding an object whose class is missing
// or not in the catalog yields the Unknown case instead of an error, so that
// a plugin-provided sub-object the client has never seen cannot invalidate
// the rest of a response.
//
// When only the fields shared by a family are needed, DecodeEnvelope keeps
// the class and the leftover fields, and Envelope.Narrow re-decodes the same
// tree into one specific shape later on.
package tagged

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Discriminator is the optional _class of an object.
type Discriminator struct {
	Value   string
	Present bool
}

// Class returns a present discriminator.
func Class(value string) Discriminator {
	return Discriminator{Value: value, Present: true}
}

func (d Discriminator) String() string {
	if !d.Present {
		return "<none>"
	}
	return strconv.Quote(d.Value)
}

// MarshalJSON writes the class string, or null when absent.
func (d Discriminator) MarshalJSON() ([]byte, error) {
	if !d.Present {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// Registered is a shape reachable through narrowing: it knows the class
// string it is registered under.
type Registered interface {
	Shape
	Class() string
}

// Catalog is the closed set of shapes a family can take. It is built once,
// at package initialisation, and only read afterwards.
type Catalog[T Shape] struct {
	family   string
	variants map[string]func() T
	unknown  func(Discriminator) T
}

// NewCatalog creates an empty catalog. unknown builds the fallback value for
// missing or unrecognised discriminators.
func NewCatalog[T Shape](family string, unknown func(Discriminator) T) *Catalog[T] {
	return &Catalog[T]{
		family:   family,
		variants: make(map[string]func() T),
		unknown:  unknown,
	}
}

// Register adds a shape. Registering a class twice is a programming error
// and panics.
func (c *Catalog[T]) Register(class string, newShape func() T) *Catalog[T] {
	if _, dup := c.variants[class]; dup {
		panic(fmt.Sprintf("tagged: class %q registered twice in family %s", class, c.family))
	}
	c.variants[class] = newShape
	return c
}

// Family returns the family name used in errors.
func (c *Catalog[T]) Family() string {
	return c.family
}

// Has reports whether class is registered.
func (c *Catalog[T]) Has(class string) bool {
	_, ok := c.variants[class]
	return ok
}

// Classes returns the registered classes, sorted.
func (c *Catalog[T]) Classes() []string {
	out := make([]string, 0, len(c.variants))
	for class := range c.variants {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// New returns an empty value of the shape registered for class.
func (c *Catalog[T]) New(class string) (T, bool) {
	newShape, ok := c.variants[class]
	if !ok {
		var zero T
		return zero, false
	}
	return newShape(), true
}

// Decode is shorthand for Decode(v, c).
func (c *Catalog[T]) Decode(v any) (T, error) {
	return Decode(v, c)
}

// Decoder returns a field decoder storing a family member into dst.
func (c *Catalog[T]) Decoder(dst *T) Decoder {
	return func(v any) error {
		x, err := Decode(v, c)
		if err != nil {
			return err
		}
		*dst = x
		return nil
	}
}

// NullableDecoder is Decoder, except that null leaves dst at its zero value.
func (c *Catalog[T]) NullableDecoder(dst *T) Decoder {
	decode := c.Decoder(dst)
	return func(v any) error {
		if v == nil {
			var zero T
			*dst = zero
			return nil
		}
		return decode(v)
	}
}
