package scan

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

func discard(string) {}

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := wire.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func TestDir(t *testing.T) {
	var logs []string
	r, err := Dir(context.Background(), "testdata/captures", func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if r.Files != 3 {
		t.Errorf("Files = %d, want 3", r.Files)
	}
	if r.Objects != 4 {
		t.Errorf("Objects = %d, want 4", r.Objects)
	}

	want := []ClassStat{
		{Class: "com.example.jenkins.CustomJob", Count: 1},
		{Class: "hudson.model.AllView", Family: "View", Known: true, Count: 1},
		{Class: "hudson.model.FreeStyleProject", Family: "Job", Known: true, Count: 1},
		{Class: "hudson.model.ListView", Family: "View", Known: true, Count: 1, Failed: 1},
	}
	if diff := cmp.Diff(want, r.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"com.example.jenkins.CustomJob"}, r.Unknown()); diff != "" {
		t.Errorf("Unknown() mismatch (-want +got):\n%s", diff)
	}

	if len(r.Findings) != 2 {
		t.Fatalf("Findings = %+v, want 2", r.Findings)
	}
	drift, truncated := r.Findings[0], r.Findings[1]
	if drift.File != "drift.jsonc" || drift.Class != "hudson.model.ListView" || !strings.Contains(drift.Error, "url") {
		t.Errorf("drift finding = %+v", drift)
	}
	if truncated.File != "truncated.json" || truncated.Class != "" {
		t.Errorf("truncated finding = %+v", truncated)
	}

	if len(logs) == 0 || !strings.HasPrefix(logs[0], "Scanning 3 files") {
		t.Errorf("first log line = %q", logs)
	}
	if last := logs[len(logs)-1]; !strings.Contains(last, "truncated.json") {
		t.Errorf("last log line = %q, want the truncated finding", last)
	}
}

func TestDir_Errors(t *testing.T) {
	if _, err := Dir(context.Background(), filepath.Join(t.TempDir(), "missing"), discard); err == nil {
		t.Error("Dir(missing) should fail")
	}
	if _, err := Dir(context.Background(), t.TempDir(), discard); err == nil {
		t.Error("Dir(empty) should fail")
	}
}

func TestDir_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := Dir(ctx, "testdata/captures", discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Dir error = %v, want context.Canceled", err)
	}
	if r == nil || r.Files != 0 {
		t.Errorf("report after cancel = %+v, want no files scanned", r)
	}
}

func TestFile_Pointers(t *testing.T) {
	r, err := File("testdata/captures/all_view.json", discard)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if r.Objects != 3 || len(r.Findings) != 0 {
		t.Errorf("report = %+v", r)
	}

	r = newReport()
	r.walk("x.json", "", mustParse(t, `{"a/b":{"~":[{"_class":"hudson.model.ListView","name":"v"}]}}`))
	if len(r.Findings) != 1 {
		t.Fatalf("Findings = %+v", r.Findings)
	}
	if got, want := r.Findings[0].Pointer, "/a~1b/~0/0"; got != want {
		t.Errorf("Pointer = %q, want %q", got, want)
	}
	if got := r.Findings[0].String(); !strings.HasPrefix(got, "x.json#/a~1b/~0/0 [hudson.model.ListView]: ") {
		t.Errorf("String() = %q", got)
	}
}

func TestSummary(t *testing.T) {
	r := newReport()
	r.Files = 1
	r.walk("x.json", "", mustParse(t, `[{"_class":"a.B"},{"_class":"a.B"},{"_class":"hudson.model.AllView","name":"all","url":"/"}]`))
	want := []string{
		"Scan complete: 1 files, 3 objects, 2 classes (1 known, 1 unknown), 0 findings",
		"Unknown classes:",
		"  a.B (2)",
	}
	if diff := cmp.Diff(want, r.Summary()); diff != "" {
		t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
	}
}
