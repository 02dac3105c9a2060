package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// output writes command results. On a terminal results are rendered as
// colored text; otherwise they are written as JSON for scripts.
type output struct {
	w   io.Writer
	tty bool

	key  func(string, ...interface{}) string
	good func(string, ...interface{}) string
	warn func(string, ...interface{}) string
	bad  func(string, ...interface{}) string
}

func newOutput(w io.Writer) *output {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	o := &output{w: w, tty: tty}
	o.key = o.color(color.FgCyan, color.Bold)
	o.good = o.color(color.FgGreen)
	o.warn = o.color(color.FgYellow)
	o.bad = o.color(color.FgRed, color.Bold)
	return o
}

func (o *output) color(attrs ...color.Attribute) func(string, ...interface{}) string {
	c := color.New(attrs...)
	if o.tty {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintfFunc()
}

func (o *output) printf(format string, args ...interface{}) {
	fmt.Fprintf(o.w, format, args...)
}

// field prints an aligned "name: value" line.
func (o *output) field(name, value string) {
	o.printf("%s %s\n", o.key("%-12s", name+":"), value)
}

func (o *output) json(v interface{}) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
