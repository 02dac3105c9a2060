package jenkins

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rflorenc/jenkins-workbench/internal/tagged"
)

func TestFamilies(t *testing.T) {
	want := []string{
		"Action", "BranchBuild", "Browser", "Build", "Cause", "ChangeSet", "ChangeSetList",
		"Computer", "Job", "MonitorData", "Parameter", "PipelineNode", "Property", "SCM", "View",
	}
	if diff := cmp.Diff(want, Families()); diff != "" {
		t.Errorf("families mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ComputerSet", "Crumb", "Home", "MavenArtifactRecord", "Queue", "QueueItem"}, Records()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

// Every registered class must construct a shape reporting that same class,
// so that narrowing and catalog lookups agree.
func TestRegistry_ClassesRoundTrip(t *testing.T) {
	for _, family := range Families() {
		classes, err := Classes(family)
		if err != nil {
			t.Fatalf("Classes(%s): %v", family, err)
		}
		if len(classes) == 0 {
			t.Errorf("family %s has no classes", family)
		}
		for _, class := range classes {
			got, ok := FamilyOf(class)
			if !ok || got != family {
				t.Errorf("FamilyOf(%q) = %q %v, want %q", class, got, ok, family)
			}
			s, ok := families[family].newShape(class)
			if !ok {
				t.Fatalf("no constructor for %q", class)
			}
			if r, ok := s.(tagged.Registered); !ok || r.Class() != class {
				t.Errorf("shape for %q reports %#v", class, s)
			}
		}
	}
}

func TestRegistry_Decode(t *testing.T) {
	t.Run("known class", func(t *testing.T) {
		d, err := Decode("Cause", parse(t, `{"_class": "hudson.triggers.SCMTrigger$SCMTriggerCause", "shortDescription": "Started by an SCM change"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := &Decoded{
			Family: "Cause",
			Class:  tagged.Class("hudson.triggers.SCMTrigger$SCMTriggerCause"),
			Known:  true,
			Value:  &SCMTriggerCause{ShortDescription: "Started by an SCM change"},
		}
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		d, err := Decode("Cause", parse(t, `{"_class": "com.example.CustomCause"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Known || d.Class != tagged.Class("com.example.CustomCause") {
			t.Errorf("decoded = %+v", d)
		}
	})

	t.Run("record", func(t *testing.T) {
		d, err := Decode("Crumb", parse(t, `{"crumb": "c", "crumbRequestField": "Jenkins-Crumb"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(tagged.Shape(&Crumb{Crumb: "c", CrumbRequestField: "Jenkins-Crumb"}), d.Value); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown family", func(t *testing.T) {
		_, err := Decode("Widget", parse(t, `{}`))
		if !errors.Is(err, ErrUnknownFamily) {
			t.Errorf("expected ErrUnknownFamily, got %v", err)
		}
	})
}

func TestRegistry_Narrow(t *testing.T) {
	n, err := Narrow("Job", load(t, "freestyle_job.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if common, ok := n.Common.(*JobFields); !ok || common.Name != "api" {
		t.Errorf("common = %#v", n.Common)
	}
	if fs, ok := n.Shape.(*FreeStyleProject); !ok || fs.LabelExpression == nil {
		t.Errorf("shape = %#v", n.Shape)
	}

	n, err = Narrow("Job", parse(t, `{"_class": "com.example.Pipeline", "name": "x", "url": "http://ci/job/x/", "stages": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Shape != nil {
		t.Errorf("unregistered classes are not narrowed, got %#v", n.Shape)
	}
	if _, ok := n.Envelope.Other["stages"]; !ok {
		t.Errorf("other = %v", n.Envelope.Other)
	}

	n, err = Narrow("PipelineNode", parse(t, `{"_class": "org.jenkinsci.plugins.workflow.graph.FlowStartNode", "id": "2"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Common != nil {
		t.Errorf("families without common fields report none, got %#v", n.Common)
	}
	if _, ok := n.Shape.(*FlowStartNode); !ok {
		t.Errorf("shape = %#v", n.Shape)
	}
	out, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back struct {
		Envelope struct {
			Class string         `json:"_class"`
			Other map[string]any `json:"other"`
		} `json:"envelope"`
	}
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Envelope.Class != "org.jenkinsci.plugins.workflow.graph.FlowStartNode" || back.Envelope.Other["id"] != "2" {
		t.Errorf("json = %s", out)
	}

	if _, err := Narrow("Widget", parse(t, `{}`)); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
}
