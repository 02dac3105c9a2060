package resource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTreeString(t *testing.T) {
	tests := []struct {
		name   string
		tree   Tree
		expect string
	}{
		{"empty", Tree{}, ""},
		{"leaf", Field("name"), "name"},
		{"object", Object("builds", Field("url"), Field("result")), "builds[url,result]"},
		{"nested", Fields(Field("name"), Object("builds", Field("url"), Object("actions", Field("causes")))), "name,builds[url,actions[causes]]"},
		{"with", Object("builds").With(Field("number")), "builds[number]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tree.String(); got != tc.expect {
				t.Errorf("String() = %q, want %q", got, tc.expect)
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		input   string
		expect  Tree
		wantErr bool
	}{
		{input: "", expect: Tree{}},
		{input: "name", expect: Fields(Field("name"))},
		{input: "name,builds[url,result]", expect: Fields(Field("name"), Object("builds", Field("url"), Field("result")))},
		{input: "jobs[name,builds[number]],url", expect: Fields(Object("jobs", Field("name"), Object("builds", Field("number"))), Field("url"))},
		{input: "builds[url", wantErr: true},
		{input: "a]", wantErr: true},
		{input: ",a", wantErr: true},
		{input: "a[,b]", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTree(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseTree(%q) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTree(%q): %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.expect, got); diff != "" {
				t.Errorf("ParseTree mismatch (-want +got):\n%s", diff)
			}
			if s := got.String(); s != tc.input {
				t.Errorf("String() = %q, want %q", s, tc.input)
			}
		})
	}
}

func TestAPIURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		path   Path
		tree   Tree
		expect string
	}{
		{"home", instance, Home{}, Tree{}, instance + "/api/json"},
		{"base slash", instance + "/", Job{Name: PlainName("j")}, Tree{}, instance + "/job/j/api/json"},
		{"tree", instance, Job{Name: PlainName("j")}, Fields(Object("builds", Field("url"), Field("result"))),
			instance + "/job/j/api/json?tree=builds%5Burl%2Cresult%5D"},
		{"already api", instance, Computers{}, Tree{}, instance + "/computer/api/json"},
		{"query", instance, AddJobToView{JobName: PlainName("j"), ViewName: PlainName("v")}, Fields(Field("name")),
			instance + "/view/v/addJobToView/api/json?name=j&tree=name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := APIURL(tc.base, tc.path, tc.tree); got != tc.expect {
				t.Errorf("APIURL = %q, want %q", got, tc.expect)
			}
		})
	}
}
