package main

import (
	"fmt"
	"io"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "serve":
		err = runServe(rest, stderr)
	case "decode":
		err = runDecode(rest, stdin, newOutput(stdout))
	case "path":
		err = runPath(rest, newOutput(stdout))
	case "scan":
		err = runScan(rest, newOutput(stdout), newOutput(stderr))
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "workbench %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		printUsage(stderr)
		return 2
	}

	switch err {
	case nil:
		return 0
	case errFindings:
		return 1
	case errUsage:
		return 2
	}
	fmt.Fprintf(stderr, "workbench %s: %v\n", cmd, err)
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: workbench <command> [flags]

Commands:
  serve    Run the workbench HTTP API
  decode   Decode a captured Jenkins API response
  path     Decode a Jenkins URL into a resource path, or encode one
  scan     Report the classes found in a directory of captures
  version  Print version information

Run "workbench <command> --help" for the flags of a command.
`)
}
