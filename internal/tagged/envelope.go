package tagged

import (
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// Envelope is the wide view of a family member: its class, the fields the
// caller decoded as common, and every other field verbatim. It keeps the
// original tree so it can later be narrowed to a concrete shape.
type Envelope struct {
	Class Discriminator  `json:"_class"`
	Other map[string]any `json:"other,omitempty"`

	family string
	tree   *wire.Object
}

// DecodeEnvelope decodes the fields declared by common and collects the
// rest. It fails only when the root is not an object or a common field is
// missing or malformed; the class itself is never checked.
func DecodeEnvelope(v any, family string, common Shape) (Envelope, error) {
	obj, ok := v.(*wire.Object)
	if !ok || obj == nil {
		return Envelope{}, &TypeMismatchError{Family: family, Expected: "object", Actual: wire.Kind(v)}
	}
	class, present := obj.Class()
	env := Envelope{
		Class:  Discriminator{Value: class, Present: present},
		Other:  make(map[string]any),
		family: family,
		tree:   obj,
	}
	if err := decodeObject(obj, family, env.Class.String(), common.Fields(), env.Other); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Family returns the family the envelope was decoded for.
func (e Envelope) Family() string {
	return e.family
}

// Tree returns the original object.
func (e Envelope) Tree() *wire.Object {
	return e.tree
}

// Is reports whether the envelope carries class.
func (e Envelope) Is(class string) bool {
	return e.Class.Present && e.Class.Value == class
}

// Narrow decodes the original tree into into, provided the envelope's class
// is the one into is registered under. Otherwise into is left untouched and
// a *DiscriminatorMismatchError is returned.
func (e Envelope) Narrow(into Registered) error {
	want := into.Class()
	if !e.Is(want) {
		return &DiscriminatorMismatchError{Expected: want, Found: e.Class}
	}
	return decodeObject(e.tree, e.family, want, into.Fields(), nil)
}
