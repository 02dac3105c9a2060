package tagged

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// A small family used to exercise the engine independently of the Jenkins
// catalog.

type event interface {
	Shape
	isEvent()
}

type pushEvent struct {
	Ref     string
	Commits []string
	Size    *int64
}

func (e *pushEvent) Fields() Fields {
	return Fields{
		Required("ref", String(&e.Ref)),
		Optional("commits", List(&e.Commits, String)),
		Optional("size", Nullable(&e.Size, Int[int64])),
	}
}
func (*pushEvent) isEvent()      {}
func (*pushEvent) Class() string { return "push" }

type tagEvent struct {
	Tag   string
	Extra map[string]any
}

func (e *tagEvent) Fields() Fields {
	return Fields{
		Required("tag_name", String(&e.Tag)),
		Extra(&e.Extra),
	}
}
func (*tagEvent) isEvent() {}

type batchEvent struct {
	Events []event
	Labels map[string]string
}

func (e *batchEvent) Fields() Fields {
	return Fields{
		Required("events", List(&e.Events, events.Decoder)),
		Optional("labels", Map(&e.Labels, String)),
	}
}
func (*batchEvent) isEvent() {}

type unknownEvent struct {
	Class Discriminator
}

func (*unknownEvent) Fields() Fields { return nil }
func (*unknownEvent) isEvent()       {}

var events *Catalog[event]

func init() {
	events = NewCatalog[event]("Event", func(d Discriminator) event { return &unknownEvent{Class: d} })
	events.
		Register("push", func() event { return new(pushEvent) }).
		Register("tag", func() event { return new(tagEvent) }).
		Register("batch", func() event { return new(batchEvent) })
}

func parse(t *testing.T, s string) any {
	t.Helper()
	v, err := wire.Parse([]byte(s))
	if err != nil {
		t.Fatalf("wire.Parse(%s): %v", s, err)
	}
	return v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"fullDisplayName", "full_display_name"},
		{"full_display_name", "full_display_name"},
		{"url", "url"},
		{"SHA1", "s_h_a1"},
		{"ID", "i_d"},
		{"Ref", "ref"},
		{"lastBuiltRevision", "last_built_revision"},
		{"_class", "_class"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := Normalize(tc.input)
			if got != tc.expect {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expect)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent on %q: got %q", got, again)
			}
		})
	}
}

func TestDecode_EveryRegisteredShape(t *testing.T) {
	size := int64(3)
	tests := []struct {
		name   string
		input  string
		expect event
	}{
		{"push", `{"_class":"push","ref":"main","commits":["a","b"],"size":3}`,
			&pushEvent{Ref: "main", Commits: []string{"a", "b"}, Size: &size}},
		{"tag", `{"_class":"tag","tagName":"v1"}`,
			&tagEvent{Tag: "v1"}},
		{"batch", `{"_class":"batch","events":[]}`,
			&batchEvent{Events: []event{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(parse(t, tc.input), events)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_UnknownNeverFails(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect Discriminator
	}{
		{"unregistered", `{"_class":"org.example.Plugin$Thing","whatever":[1,2]}`, Class("org.example.Plugin$Thing")},
		{"missing", `{"ref":"main"}`, Discriminator{}},
		{"non-string class", `{"_class":42,"ref":"main"}`, Discriminator{}},
		{"case differs", `{"_class":"Push","ref":"main"}`, Class("Push")},
		{"empty object", `{}`, Discriminator{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(parse(t, tc.input), events)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			u, ok := got.(*unknownEvent)
			if !ok {
				t.Fatalf("Decode returned %T, want *unknownEvent", got)
			}
			if u.Class != tc.expect {
				t.Errorf("Class = %v, want %v", u.Class, tc.expect)
			}
		})
	}
}

func TestDecode_NonObjectRoot(t *testing.T) {
	for _, input := range []string{`[]`, `"push"`, `1`, `null`, `true`} {
		_, err := Decode(parse(t, input), events)
		var tm *TypeMismatchError
		if !errors.As(err, &tm) {
			t.Errorf("Decode(%s) error = %v, want *TypeMismatchError", input, err)
			continue
		}
		if tm.Family != "Event" || tm.Expected != "object" {
			t.Errorf("Decode(%s) = %+v", input, tm)
		}
	}
}

func TestDecode_MissingField(t *testing.T) {
	_, err := Decode(parse(t, `{"_class":"push","commits":[]}`), events)
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("error = %v, want *MissingFieldError", err)
	}
	want := MissingFieldError{Family: "Event", Shape: "push", Field: "ref"}
	if *mf != want {
		t.Errorf("error = %+v, want %+v", *mf, want)
	}
}

func TestDecode_FieldTypeError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"string as number", `{"_class":"push","ref":1}`, "ref"},
		{"fraction as int", `{"_class":"push","ref":"x","size":1.5}`, "size"},
		{"list element", `{"_class":"push","ref":"x","commits":["a",2]}`, "commits"},
		{"null for required string", `{"_class":"push","ref":null}`, "ref"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(parse(t, tc.input), events)
			var ft *FieldTypeError
			if !errors.As(err, &ft) {
				t.Fatalf("error = %v, want *FieldTypeError", err)
			}
			if ft.Field != tc.field || ft.Shape != "push" || ft.Family != "Event" {
				t.Errorf("error = %+v", ft)
			}
		})
	}
}

func TestDecode_NestedErrorsUnwrap(t *testing.T) {
	_, err := Decode(parse(t, `{"_class":"batch","events":[{"_class":"tag"}]}`), events)
	var mf *MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("error = %v, want a wrapped *MissingFieldError", err)
	}
	if mf.Shape != "tag" || mf.Field != "tag_name" {
		t.Errorf("inner error = %+v", mf)
	}
	var ft *FieldTypeError
	if !errors.As(err, &ft) || ft.Field != "events" {
		t.Errorf("outer error = %v, want FieldTypeError on events", err)
	}
}

func TestDecode_NestedUnknownDoesNotFailParent(t *testing.T) {
	got, err := Decode(parse(t, `{"_class":"batch","events":[{"_class":"push","ref":"r"},{"_class":"plugin.New"},{}]}`), events)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	b := got.(*batchEvent)
	if len(b.Events) != 3 {
		t.Fatalf("len(Events) = %d, want 3", len(b.Events))
	}
	if _, ok := b.Events[0].(*pushEvent); !ok {
		t.Errorf("Events[0] = %T", b.Events[0])
	}
	if u, ok := b.Events[1].(*unknownEvent); !ok || u.Class != Class("plugin.New") {
		t.Errorf("Events[1] = %#v", b.Events[1])
	}
	if u, ok := b.Events[2].(*unknownEvent); !ok || u.Class.Present {
		t.Errorf("Events[2] = %#v", b.Events[2])
	}
}

func TestDecode_DuplicateKeysLastWriteWins(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"same key", `{"_class":"push","ref":"first","ref":"second"}`, "second"},
		{"invalid then valid", `{"_class":"push","ref":1,"ref":"ok"}`, "ok"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(parse(t, tc.input), events)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if ref := got.(*pushEvent).Ref; ref != tc.expect {
				t.Errorf("Ref = %q, want %q", ref, tc.expect)
			}
		})
	}

	// Both spellings normalize to tag_name.
	tag, err := Decode(parse(t, `{"_class":"tag","tagName":"a","tag_name":"b","tagName":"c"}`), events)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if name := tag.(*tagEvent).Tag; name != "c" {
		t.Errorf("Tag = %q, want c", name)
	}

	// "Ref" and "ref" collide; the later key wins whichever spelling it uses.
	for input, want := range map[string]string{
		`{"_class":"push","ref":"a","Ref":"b"}`: "b",
		`{"_class":"push","Ref":"a","ref":"b"}`: "b",
	} {
		got, err := Decode(parse(t, input), events)
		if err != nil {
			t.Fatalf("Decode(%s) returned error: %v", input, err)
		}
		if ref := got.(*pushEvent).Ref; ref != want {
			t.Errorf("Decode(%s): Ref = %q, want %q", input, ref, want)
		}
	}
}

func TestDecode_DuplicateClassLastWins(t *testing.T) {
	got, err := Decode(parse(t, `{"_class":"tag","_class":"push","ref":"x"}`), events)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if _, ok := got.(*pushEvent); !ok {
		t.Errorf("Decode returned %T, want *pushEvent", got)
	}
}

func TestDecode_CatchAll(t *testing.T) {
	got, err := Decode(parse(t, `{"_class":"tag","tagName":"v2","annotatedBy":"ci","count":2}`), events)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	tag := got.(*tagEvent)
	want := map[string]any{"annotatedBy": "ci", "count": parse(t, "2")}
	if diff := cmp.Diff(want, tag.Extra); diff != "" {
		t.Errorf("Extra mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_IgnoresUndeclaredWithoutCatchAll(t *testing.T) {
	got, err := Decode(parse(t, `{"_class":"push","ref":"x","unrelated":{"deep":[1]}}`), events)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if got.(*pushEvent).Ref != "x" {
		t.Errorf("Ref = %q", got.(*pushEvent).Ref)
	}
}

type checksum struct {
	SHA1 string
}

func (c *checksum) Fields() Fields {
	return Fields{Required("sha1", String(&c.SHA1))}
}

type normalizedChecksum struct {
	SHA1 string
}

func (c *normalizedChecksum) Fields() Fields {
	return Fields{Required("s_h_a1", String(&c.SHA1))}
}

func TestDecodeShape_UpperCaseRunKey(t *testing.T) {
	v := parse(t, `{"SHA1":"abc"}`)

	var plain checksum
	err := DecodeShape(v, "record", "checksum", &plain)
	var mf *MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "sha1" {
		t.Errorf("field declared sha1: error = %v, want missing sha1", err)
	}

	var normalized normalizedChecksum
	if err := DecodeShape(v, "record", "checksum", &normalized); err != nil {
		t.Fatalf("field declared s_h_a1: %v", err)
	}
	if normalized.SHA1 != "abc" {
		t.Errorf("SHA1 = %q, want abc", normalized.SHA1)
	}
}

type eventCommon struct {
	Ref string
}

func (c *eventCommon) Fields() Fields {
	return Fields{Optional("ref", String(&c.Ref))}
}

func TestEnvelope_Narrow(t *testing.T) {
	v := parse(t, `{"_class":"push","ref":"main","commits":["c1"],"size":null}`)
	var common eventCommon
	env, err := DecodeEnvelope(v, "Event", &common)
	if err != nil {
		t.Fatalf("DecodeEnvelope returned error: %v", err)
	}
	if common.Ref != "main" {
		t.Errorf("common.Ref = %q", common.Ref)
	}
	if env.Class != Class("push") || env.Family() != "Event" {
		t.Errorf("envelope = %+v", env)
	}
	if diff := cmp.Diff(map[string]any{"commits": wire.Array{"c1"}, "size": nil}, env.Other); diff != "" {
		t.Errorf("Other mismatch (-want +got):\n%s", diff)
	}

	var push pushEvent
	if err := env.Narrow(&push); err != nil {
		t.Fatalf("Narrow returned error: %v", err)
	}
	want := pushEvent{Ref: "main", Commits: []string{"c1"}}
	if diff := cmp.Diff(want, push); diff != "" {
		t.Errorf("Narrow mismatch (-want +got):\n%s", diff)
	}
}

type tagRegistered struct{ tagEvent }

func (*tagRegistered) Class() string { return "tag" }

func TestEnvelope_NarrowMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		found Discriminator
	}{
		{"other class", `{"_class":"push","ref":"main"}`, Class("push")},
		{"no class", `{"ref":"main"}`, Discriminator{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var common eventCommon
			env, err := DecodeEnvelope(parse(t, tc.input), "Event", &common)
			if err != nil {
				t.Fatalf("DecodeEnvelope returned error: %v", err)
			}
			var tag tagRegistered
			err = env.Narrow(&tag)
			var dm *DiscriminatorMismatchError
			if !errors.As(err, &dm) {
				t.Fatalf("Narrow error = %v, want *DiscriminatorMismatchError", err)
			}
			if dm.Expected != "tag" || dm.Found != tc.found {
				t.Errorf("error = %+v", dm)
			}
			if tag.Tag != "" || tag.Extra != nil {
				t.Errorf("target modified on mismatch: %+v", tag)
			}
		})
	}
}

func TestEnvelope_ZeroValueNarrow(t *testing.T) {
	var env Envelope
	var push pushEvent
	var dm *DiscriminatorMismatchError
	if err := env.Narrow(&push); !errors.As(err, &dm) {
		t.Errorf("zero envelope Narrow = %v, want mismatch", err)
	}
}

func TestEnvelope_NonObject(t *testing.T) {
	var common eventCommon
	_, err := DecodeEnvelope(parse(t, `[1]`), "Event", &common)
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Errorf("error = %v, want *TypeMismatchError", err)
	}
}

func TestCatalog_RegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register should panic on a duplicate class")
		}
	}()
	c := NewCatalog[event]("Event", func(d Discriminator) event { return &unknownEvent{Class: d} })
	c.Register("push", func() event { return new(pushEvent) })
	c.Register("push", func() event { return new(pushEvent) })
}

func TestCatalog_Classes(t *testing.T) {
	if diff := cmp.Diff([]string{"batch", "push", "tag"}, events.Classes()); diff != "" {
		t.Errorf("Classes mismatch (-want +got):\n%s", diff)
	}
	if !events.Has("push") || events.Has("Push") {
		t.Error("Has is not exact")
	}
}

func TestUintOverflow(t *testing.T) {
	var small uint8
	if err := Uint(&small)(parse(t, "300")); err == nil {
		t.Error("Uint[uint8](300) should fail")
	}
	if err := Uint(&small)(parse(t, "-1")); err == nil {
		t.Error("Uint[uint8](-1) should fail")
	}
	if err := Uint(&small)(parse(t, "200")); err != nil || small != 200 {
		t.Errorf("Uint[uint8](200) = %d, %v", small, err)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte(`{"_class":"push","ref":"x"}`))
	f.Add([]byte(`{"_class":"batch","events":[{"_class":"tag","tagName":"t"},{}]}`))
	f.Add([]byte(`{"_class":"unknown"}`))
	f.Add([]byte(`[{"_class":"push"}]`))
	f.Fuzz(func(t *testing.T, data []byte) {
		v, err := wire.Parse(data)
		if err != nil {
			return
		}
		got, err := Decode(v, events)
		obj, isObject := v.(*wire.Object)
		if !isObject {
			if err == nil {
				t.Fatalf("non-object root decoded to %T", got)
			}
			return
		}
		if class, ok := obj.Class(); !ok || !events.Has(class) {
			if err != nil {
				t.Fatalf("unknown class must not fail: %v", err)
			}
			if _, ok := got.(*unknownEvent); !ok {
				t.Fatalf("unknown class decoded to %T", got)
			}
		}
	})
}

func TestConcurrentDecodeAndNarrow(t *testing.T) {
	// Parsed values and the catalog are shared by every goroutine.
	batch := parse(t, `{"_class":"batch","events":[{"_class":"push","ref":"a"},{"_class":"tag","tagName":"v1","x":1},{"_class":"gone"}]}`)
	push := parse(t, `{"_class":"push","ref":"main","commits":["c1"]}`)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := Decode(batch, events)
				if err != nil {
					t.Errorf("Decode returned error: %v", err)
					return
				}
				if n := len(got.(*batchEvent).Events); n != 3 {
					t.Errorf("len(Events) = %d, want 3", n)
					return
				}

				var common eventCommon
				env, err := DecodeEnvelope(push, "Event", &common)
				if err != nil {
					t.Errorf("DecodeEnvelope returned error: %v", err)
					return
				}
				var p pushEvent
				if err := env.Narrow(&p); err != nil {
					t.Errorf("Narrow returned error: %v", err)
					return
				}
				if p.Ref != "main" || common.Ref != "main" {
					t.Errorf("Ref = %q / %q, want main", p.Ref, common.Ref)
					return
				}
			}
		}()
	}
	wg.Wait()
}
