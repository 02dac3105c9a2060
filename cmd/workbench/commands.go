package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rflorenc/jenkins-workbench/internal/jenkins"
	"github.com/rflorenc/jenkins-workbench/internal/resource"
	"github.com/rflorenc/jenkins-workbench/internal/scan"
	"github.com/rflorenc/jenkins-workbench/internal/wire"
	"github.com/spf13/pflag"
)

var (
	// errFindings makes scan exit with 1 without printing an error.
	errFindings = errors.New("scan has findings")
	errUsage    = errors.New("usage")
)

func parseFlags(fs *pflag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return errHelp
	}
	if err != nil {
		return errUsage
	}
	return nil
}

// errHelp stops a command after --help without failing it.
var errHelp = errors.New("help")

// readInput parses the file named by args, or stdin when there is none or
// it is "-".
func readInput(args []string, stdin io.Reader) (any, error) {
	switch {
	case len(args) > 1:
		return nil, fmt.Errorf("expected one input file, got %d", len(args))
	case len(args) == 1 && args[0] != "-":
		return wire.ReadFile(args[0])
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return wire.ParseJSONC(data)
}

type linkOut struct {
	Rel     string         `json:"rel"`
	Path    *resource.Spec `json:"path,omitempty"`
	Encoded string         `json:"encoded,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func describeLinks(links []jenkins.Link) []linkOut {
	out := make([]linkOut, 0, len(links))
	for _, l := range links {
		lo := linkOut{Rel: l.Rel}
		if l.Err != nil {
			lo.Error = l.Err.Error()
		} else {
			spec := resource.Describe(l.Path)
			lo.Path = &spec
			lo.Encoded = resource.Encode(l.Path)
		}
		out = append(out, lo)
	}
	return out
}

func runDecode(args []string, stdin io.Reader, o *output) error {
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	fs.SetOutput(o.w)
	family := fs.StringP("family", "f", "Job", "Family or record to decode as (see --list)")
	narrow := fs.Bool("narrow", false, "Decode the family envelope, then narrow it to its class")
	base := fs.String("base", "", "Instance URL; also resolve the links the record carries")
	list := fs.Bool("list", false, "List families, their classes and the plain records")
	fs.Usage = func() {
		o.printf("Usage: workbench decode [flags] [FILE|-]\n\n")
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return helpOK(err)
	}

	if *list {
		return listFamilies(o)
	}

	v, err := readInput(fs.Args(), stdin)
	if err != nil {
		return err
	}

	if *narrow {
		n, err := jenkins.Narrow(*family, v)
		if err != nil {
			return err
		}
		if o.tty {
			o.field("family", n.Family)
			o.field("class", classText(o, n.Envelope.Class, n.Shape != nil))
		}
		return o.json(n)
	}

	d, err := jenkins.Decode(*family, v)
	if err != nil {
		return err
	}
	var links []linkOut
	if *base != "" {
		links = describeLinks(jenkins.Links(*base, d.Value))
	}
	if !o.tty {
		if *base == "" {
			return o.json(d)
		}
		return o.json(struct {
			*jenkins.Decoded
			Links []linkOut `json:"links"`
		}{d, links})
	}

	o.field("family", d.Family)
	if d.Class.Present || d.Known {
		o.field("class", classText(o, d.Class, d.Known))
	}
	for _, l := range links {
		if l.Error != "" {
			o.field(l.Rel, o.bad("%s", l.Error))
		} else {
			o.field(l.Rel, l.Encoded)
		}
	}
	return o.json(d.Value)
}

func classText(o *output, class fmt.Stringer, known bool) string {
	if known {
		return o.good("%s", class)
	}
	return o.warn("%s (not registered)", class)
}

func listFamilies(o *output) error {
	type family struct {
		Name    string   `json:"name"`
		Classes []string `json:"classes"`
	}
	var families []family
	for _, name := range jenkins.Families() {
		classes, err := jenkins.Classes(name)
		if err != nil {
			return err
		}
		families = append(families, family{name, classes})
	}
	if !o.tty {
		return o.json(map[string]interface{}{"families": families, "records": jenkins.Records()})
	}
	for _, f := range families {
		o.printf("%s\n", o.key("%s", f.Name))
		for _, c := range f.Classes {
			o.printf("  %s\n", c)
		}
	}
	o.printf("%s\n  %s\n", o.key("records"), strings.Join(jenkins.Records(), "\n  "))
	return nil
}

type pathOut struct {
	Path    resource.Spec `json:"path"`
	Encoded string        `json:"encoded"`
	URL     string        `json:"url,omitempty"`
	APIURL  string        `json:"api_url"`
}

func runPath(args []string, o *output) error {
	fs := pflag.NewFlagSet("path", pflag.ContinueOnError)
	fs.SetOutput(o.w)
	base := fs.StringP("base", "b", "", "Instance URL the path is relative to")
	treeFlag := fs.StringP("tree", "t", "", "Tree query for the API URL, e.g. \"builds[number,url]\"")
	encode := fs.StringP("encode", "e", "", "Encode a path given as JSON instead of decoding a URL")
	fs.Usage = func() {
		o.printf("Usage: workbench path [flags] URL\n       workbench path [flags] --encode '{\"kind\":\"job\",\"name\":\"api\"}'\n\n")
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return helpOK(err)
	}
	tree, err := resource.ParseTree(*treeFlag)
	if err != nil {
		return err
	}

	var p resource.Path
	switch {
	case *encode != "" && fs.NArg() == 0:
		var spec resource.Spec
		if err := json.Unmarshal([]byte(*encode), &spec); err != nil {
			return fmt.Errorf("--encode: %w", err)
		}
		if p, err = spec.Path(); err != nil {
			return err
		}
	case *encode == "" && fs.NArg() == 1:
		p = resource.Decode(fs.Arg(0), *base)
	default:
		fs.Usage()
		return errUsage
	}

	out := pathOut{
		Path:    resource.Describe(p),
		Encoded: resource.Encode(p),
		APIURL:  resource.APIURL(*base, p, tree),
	}
	if *base != "" {
		out.URL = strings.TrimSuffix(*base, "/") + out.Encoded
	}
	if !o.tty {
		return o.json(out)
	}

	kind := out.Path.Kind
	if kind == resource.KindRaw {
		kind = o.warn("%s (outside the path grammar)", kind)
	} else {
		kind = o.good("%s", kind)
	}
	o.field("kind", kind)
	if len(resource.Folders(p)) > 0 {
		names := make([]string, 0, len(resource.Folders(p)))
		for _, f := range resource.Folders(p) {
			names = append(names, f.Value)
		}
		o.field("folders", strings.Join(names, " / "))
	}
	o.field("encoded", out.Encoded)
	if out.URL != "" {
		o.field("url", out.URL)
	}
	o.field("api", out.APIURL)
	spec, err := json.Marshal(resource.Describe(resource.Innermost(p)))
	if err != nil {
		return err
	}
	o.field("path", string(spec))
	return nil
}

func runScan(args []string, o, logs *output) error {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	fs.SetOutput(logs.w)
	asJSON := fs.Bool("json", false, "Print the report as JSON")
	fs.Usage = func() {
		logs.printf("Usage: workbench scan [flags] DIR\n\n")
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return helpOK(err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := func(line string) {
		if strings.Contains(line, "ERROR") {
			line = logs.bad("%s", line)
		}
		logs.printf("%s\n", line)
	}
	report, err := scan.Dir(ctx, fs.Arg(0), logger)
	if err != nil {
		return err
	}

	if *asJSON || !o.tty {
		if err := o.json(report); err != nil {
			return err
		}
	} else {
		for _, st := range report.Stats() {
			name := o.warn("%s", st.Class)
			if st.Known {
				name = o.good("%s", st.Class)
			}
			line := fmt.Sprintf("%6d  %s", st.Count, name)
			if st.Family != "" {
				line += "  " + o.key("%s", st.Family)
			}
			if st.Failed > 0 {
				line += "  " + o.bad("%d failed", st.Failed)
			}
			o.printf("%s\n", line)
		}
	}
	if len(report.Findings) > 0 {
		return errFindings
	}
	return nil
}

func helpOK(err error) error {
	if err == errHelp {
		return nil
	}
	return err
}
