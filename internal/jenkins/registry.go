package jenkins

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rflorenc/jenkins-workbench/internal/tagged"
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// ErrUnknownFamily is returned for family or record names nothing is
// registered under.
var ErrUnknownFamily = errors.New("unknown family")

type familyEntry struct {
	classes  func() []string
	decode   func(v any) (tagged.Shape, error)
	newShape func(class string) (tagged.Shape, bool)
}

var (
	families   = make(map[string]familyEntry)
	classIndex = make(map[string]string)
)

// newCatalog builds a family catalog from shape constructors, each shape
// being registered under its own Class, and adds the family to the package
// registry.
func newCatalog[T tagged.Shape](family string, unknown func(tagged.Discriminator) T, shapes ...func() T) *tagged.Catalog[T] {
	c := tagged.NewCatalog(family, unknown)
	for _, newShape := range shapes {
		class := any(newShape()).(tagged.Registered).Class()
		c.Register(class, newShape)
		if owner, dup := classIndex[class]; dup {
			panic(fmt.Sprintf("jenkins: class %q registered in both %s and %s", class, owner, family))
		}
		classIndex[class] = family
	}
	families[family] = familyEntry{
		classes: c.Classes,
		decode: func(v any) (tagged.Shape, error) {
			x, err := c.Decode(v)
			if err != nil {
				return nil, err
			}
			return x, nil
		},
		newShape: func(class string) (tagged.Shape, bool) {
			x, ok := c.New(class)
			if !ok {
				return nil, false
			}
			return x, true
		},
	}
	return c
}

// Families returns the names of the registered families, sorted.
func Families() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Classes returns the classes registered in family, sorted.
func Classes(family string) ([]string, error) {
	f, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	return f.classes(), nil
}

// FamilyOf returns the family class is registered in.
func FamilyOf(class string) (string, bool) {
	family, ok := classIndex[class]
	return family, ok
}

// Decoded is the outcome of decoding a value by family name.
type Decoded struct {
	Family string               `json:"family"`
	Class  tagged.Discriminator `json:"class"`
	Known  bool                 `json:"known"`
	Value  tagged.Shape         `json:"value"`
}

// Decode decodes v as a member of family, or as the plain record of that
// name (Home, Queue, ...).
func Decode(family string, v any) (*Decoded, error) {
	if newRecord, ok := records[family]; ok {
		r := newRecord()
		if err := tagged.DecodeShape(v, "record", family, r); err != nil {
			return nil, err
		}
		return &Decoded{Family: family, Known: true, Value: r}, nil
	}
	f, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	x, err := f.decode(v)
	if err != nil {
		return nil, err
	}
	class, present := v.(*wire.Object).Class()
	_, known := x.(tagged.Registered)
	return &Decoded{
		Family: family,
		Class:  tagged.Discriminator{Value: class, Present: present},
		Known:  known,
		Value:  x,
	}, nil
}

// Narrowed is a value decoded in two steps: the family-wide envelope, then
// the shape registered for its class. Shape is nil when the class is
// missing or unregistered.
type Narrowed struct {
	Family   string          `json:"family"`
	Envelope tagged.Envelope `json:"envelope"`
	Common   tagged.Shape    `json:"common,omitempty"`
	Shape    tagged.Shape    `json:"shape,omitempty"`
}

type noFields struct{}

func (*noFields) Fields() tagged.Fields { return nil }

// commonFields lists the families whose envelope decodes shared fields.
var commonFields = map[string]func() tagged.Shape{
	"Job":           func() tagged.Shape { return new(JobFields) },
	"Build":         func() tagged.Shape { return new(BuildFields) },
	"View":          func() tagged.Shape { return new(ViewFields) },
	"Computer":      func() tagged.Shape { return new(ComputerFields) },
	"ChangeSetList": func() tagged.Shape { return new(ChangeSetListFields) },
}

// Narrow decodes v as an envelope of family and narrows it to the shape
// registered for the envelope's class.
func Narrow(family string, v any) (*Narrowed, error) {
	f, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, family)
	}
	var common tagged.Shape = new(noFields)
	if newCommon, ok := commonFields[family]; ok {
		common = newCommon()
	}
	env, err := tagged.DecodeEnvelope(v, family, common)
	if err != nil {
		return nil, err
	}
	n := &Narrowed{Family: family, Envelope: env}
	if _, empty := common.(*noFields); !empty {
		n.Common = common
	}
	if !env.Class.Present {
		return n, nil
	}
	s, ok := f.newShape(env.Class.Value)
	if !ok {
		return n, nil
	}
	if err := env.Narrow(s.(tagged.Registered)); err != nil {
		return nil, err
	}
	n.Shape = s
	return n, nil
}

// records are the plain, untagged responses that Decode accepts by name.
var records = map[string]func() tagged.Shape{
	"Home":                func() tagged.Shape { return new(Home) },
	"Queue":               func() tagged.Shape { return new(Queue) },
	"QueueItem":           func() tagged.Shape { return new(QueueItem) },
	"Crumb":               func() tagged.Shape { return new(Crumb) },
	"ComputerSet":         func() tagged.Shape { return new(ComputerSet) },
	"MavenArtifactRecord": func() tagged.Shape { return new(MavenArtifactRecord) },
}

// Records returns the names of the plain records, sorted.
func Records() []string {
	out := make([]string, 0, len(records))
	for name := range records {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
