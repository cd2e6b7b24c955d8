// Command sphero-log prints and summarizes sphero-link event logs.
//
// Event logs are written by sphero-link when started with -event-log.
//
// Usage:
//
//	sphero-log <command> [flags] <file.slog>
//
// Commands:
//
//	view     Print events in human-readable form
//	export   Export events as JSON lines or CSV
//	stats    Summarize attempts and binds per supervisor
//
// Examples:
//
//	# Show every bind and rejection
//	sphero-log view -category bind link.slog
//	sphero-log view -category reject link.slog
//
//	# Low-energy events of the last run, as CSV
//	sphero-log export -format csv -transport le link.slog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unforgiven-development/coding-with-chrome/cmd/sphero-log/commands"
	"github.com/unforgiven-development/coding-with-chrome/pkg/log"
)

const usage = `sphero-log - Sphero link event log viewer

Usage:
  sphero-log <command> [flags] <file.slog>

Commands:
  view     Print events in human-readable form
  export   Export events as JSON lines or CSV
  stats    Summarize attempts and binds per supervisor

Use "sphero-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags holds the filter flags shared by view and export.
type filterFlags struct {
	supervisor *string
	category   *string
	transport  *string
	device     *string
	timeStart  *string
	timeEnd    *string
}

func addFilterFlags(fs *flag.FlagSet) *filterFlags {
	return &filterFlags{
		supervisor: fs.String("supervisor", "", "Filter by supervisor ID"),
		category:   fs.String("category", "", "Filter by category (attempt, bind, reject, miss, state, command, error)"),
		transport:  fs.String("transport", "", "Filter by transport (classic, le)"),
		device:     fs.String("device", "", "Filter by device name prefix"),
		timeStart:  fs.String("time-start", "", "Filter by start time (RFC3339)"),
		timeEnd:    fs.String("time-end", "", "Filter by end time (RFC3339)"),
	}
}

func (f *filterFlags) build() (log.Filter, error) {
	filter := log.Filter{
		SupervisorID: *f.supervisor,
		Device:       *f.device,
	}
	if *f.category != "" {
		c, err := commands.ParseCategoryFlag(*f.category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if *f.transport != "" {
		k, err := commands.ParseTransportFlag(*f.transport)
		if err != nil {
			return filter, err
		}
		filter.Transport = &k
	}
	if *f.timeStart != "" {
		t, err := commands.ParseTimeFlag(*f.timeStart)
		if err != nil {
			return filter, err
		}
		filter.TimeStart = &t
	}
	if *f.timeEnd != "" {
		t, err := commands.ParseTimeFlag(*f.timeEnd)
		if err != nil {
			return filter, err
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

func parsePath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `sphero-log view - Print events in human-readable form

Usage:
  sphero-log view [flags] <file.slog>

Flags:
`)
		fs.PrintDefaults()
	}
	ff := addFilterFlags(fs)
	path := parsePath(fs, args)

	filter, err := ff.build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `sphero-log export - Export events as JSON lines or CSV

Usage:
  sphero-log export [flags] <file.slog>

Flags:
`)
		fs.PrintDefaults()
	}
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	ff := addFilterFlags(fs)
	path := parsePath(fs, args)

	filter, err := ff.build()
	if err != nil {
		fail(err)
	}
	if err := commands.RunExport(path, *format, *output, filter); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `sphero-log stats - Summarize attempts and binds per supervisor

Usage:
  sphero-log stats <file.slog>

`)
	}
	path := parsePath(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
