// Package scan walks captured Jenkins API responses and reports which
// discriminators they carry and whether the record catalog still decodes
// them. It is meant for spotting plugin classes the catalog does not know
// about yet, and for catching shapes that drifted since a class was added.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rflorenc/jenkins-workbench/internal/jenkins"
	"github.com/rflorenc/jenkins-workbench/internal/wire"
)

// ClassStat counts the occurrences of one discriminator.
type ClassStat struct {
	Class  string `json:"class"`
	Family string `json:"family,omitempty"`
	Known  bool   `json:"known"`
	Count  int    `json:"count"`
	Failed int    `json:"failed"`
}

// Finding is a capture that could not be read, or an object of a known class
// that did not decode.
type Finding struct {
	File    string `json:"file"`
	Pointer string `json:"pointer,omitempty"`
	Class   string `json:"class,omitempty"`
	Error   string `json:"error"`
}

// Report is the outcome of a scan.
type Report struct {
	Files    int                   `json:"files"`
	Objects  int                   `json:"objects"`
	Classes  map[string]*ClassStat `json:"classes"`
	Findings []Finding             `json:"findings"`
}

func newReport() *Report {
	return &Report{Classes: make(map[string]*ClassStat), Findings: []Finding{}}
}

// Dir scans every .json and .jsonc file under dir. A file that fails to
// parse is reported as a finding and the scan goes on; the scan stops when
// ctx is done.
func Dir(ctx context.Context, dir string, logger func(string)) (*Report, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCapture(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .json or .jsonc files in %s", dir)
	}

	logger(fmt.Sprintf("Scanning %d files in %s", len(files), dir))
	r := newReport()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		name, err := filepath.Rel(dir, path)
		if err != nil {
			name = path
		}
		r.file(path, name, logger)
	}

	logger("")
	for _, line := range r.Summary() {
		logger(line)
	}
	return r, nil
}

// File scans a single capture.
func File(path string, logger func(string)) (*Report, error) {
	v, err := wire.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := newReport()
	r.Files = 1
	r.walk(filepath.Base(path), "", v)
	logger(fmt.Sprintf("%s: %d objects, %d classes", filepath.Base(path), r.Objects, len(r.Classes)))
	return r, nil
}

func isCapture(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

func (r *Report) file(path, name string, logger func(string)) {
	r.Files++
	v, err := wire.ReadFile(path)
	if err != nil {
		logger("  ERROR: " + err.Error())
		r.Findings = append(r.Findings, Finding{File: name, Error: err.Error()})
		return
	}
	objects, findings := r.Objects, len(r.Findings)
	r.walk(name, "", v)
	msg := fmt.Sprintf("  %s: %d objects", name, r.Objects-objects)
	if n := len(r.Findings) - findings; n > 0 {
		msg += fmt.Sprintf(", %d failed", n)
	}
	logger(msg)
}

// walk visits every object below v. Objects of a registered class are decoded
// with their family. Nested objects are visited on their own too, so a bad
// nested action shows up both at the action and at its enclosing record.
func (r *Report) walk(file, pointer string, v any) {
	switch t := v.(type) {
	case *wire.Object:
		r.Objects++
		if class, ok := t.Class(); ok {
			r.class(file, pointer, class, t)
		}
		for _, m := range t.Members() {
			r.walk(file, pointer+"/"+escapePointer(m.Key), m.Value)
		}
	case wire.Array:
		for i, item := range t {
			r.walk(file, pointer+"/"+strconv.Itoa(i), item)
		}
	}
}

func (r *Report) class(file, pointer, class string, obj *wire.Object) {
	st, ok := r.Classes[class]
	if !ok {
		st = &ClassStat{Class: class}
		st.Family, st.Known = jenkins.FamilyOf(class)
		r.Classes[class] = st
	}
	st.Count++
	if !st.Known {
		return
	}
	if _, err := jenkins.Decode(st.Family, obj); err != nil {
		st.Failed++
		r.Findings = append(r.Findings, Finding{File: file, Pointer: pointer, Class: class, Error: err.Error()})
	}
}

// escapePointer escapes a key for use in a JSON pointer (RFC 6901).
func escapePointer(key string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}

// Stats returns the class counts, most frequent first.
func (r *Report) Stats() []ClassStat {
	out := make([]ClassStat, 0, len(r.Classes))
	for _, st := range r.Classes {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Class < out[j].Class
	})
	return out
}

// Unknown returns the classes no family registers, sorted.
func (r *Report) Unknown() []string {
	var out []string
	for class, st := range r.Classes {
		if !st.Known {
			out = append(out, class)
		}
	}
	sort.Strings(out)
	return out
}

// Summary renders the report as log lines.
func (r *Report) Summary() []string {
	known := 0
	for _, st := range r.Classes {
		if st.Known {
			known++
		}
	}
	lines := []string{
		fmt.Sprintf("Scan complete: %d files, %d objects, %d classes (%d known, %d unknown), %d findings",
			r.Files, r.Objects, len(r.Classes), known, len(r.Classes)-known, len(r.Findings)),
	}
	if unknown := r.Unknown(); len(unknown) > 0 {
		lines = append(lines, "Unknown classes:")
		for _, class := range unknown {
			lines = append(lines, fmt.Sprintf("  %s (%d)", class, r.Classes[class].Count))
		}
	}
	if len(r.Findings) > 0 {
		lines = append(lines, "Findings:")
		for _, f := range r.Findings {
			lines = append(lines, "  "+f.String())
		}
	}
	return lines
}

func (f Finding) String() string {
	loc := f.File
	if f.Pointer != "" {
		loc += "#" + f.Pointer
	}
	if f.Class != "" {
		return fmt.Sprintf("%s [%s]: %s", loc, f.Class, f.Error)
	}
	return loc + ": " + f.Error
}
