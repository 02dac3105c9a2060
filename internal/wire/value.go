// Package wire holds the JSON trees handed over by the HTTP layer before any
// typed decoding happens.
//
// A tree is built from *Object, Array, string, json.Number, bool and nil.
// Objects keep their members in input order, duplicates included, so that
// decoders can resolve repeated keys deterministically (last write wins).
package wire

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ClassKey is the reserved key carrying an object's discriminator.
const ClassKey = "_class"

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object with its members in input order.
type Object struct {
	members []Member
}

// Array is a JSON array.
type Array []any

// NewObject builds an Object from members, keeping their order.
func NewObject(members ...Member) *Object {
	o := &Object{members: make([]Member, len(members))}
	copy(o.members, members)
	return o
}

// Len returns the number of members, duplicates included.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns a copy of the members in input order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	out := make([]Member, len(o.members))
	copy(out, o.members)
	return out
}

// Get returns the last value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for i := len(o.members) - 1; i >= 0; i-- {
		if o.members[i].Key == key {
			return o.members[i].Value, true
		}
	}
	return nil, false
}

// Class returns the discriminator of the object. A _class member that is not
// a string is treated as absent.
func (o *Object) Class() (string, bool) {
	v, ok := o.Get(ClassKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON writes the members in order. Duplicate keys are written as-is.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.Members() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Kind names the JSON kind of a wire value.
func Kind(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case *Object:
		if t == nil {
			return "null"
		}
		return "object"
	case Array, []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case bool:
		return "bool"
	}
	return "unknown"
}

// FromInterface converts a tree produced by encoding/json (maps, slices,
// float64 numbers) into wire values. Map keys are visited in sorted order.
// Values that already are wire values are returned unchanged.
func FromInterface(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := &Object{members: make([]Member, 0, len(keys))}
		for _, k := range keys {
			o.members = append(o.members, Member{Key: k, Value: FromInterface(t[k])})
		}
		return o
	case []any:
		arr := make(Array, len(t))
		for i, e := range t {
			arr[i] = FromInterface(e)
		}
		return arr
	case Array:
		return t
	case float64:
		n, err := json.Marshal(t)
		if err != nil {
			return t
		}
		return json.Number(n)
	}
	return v
}
