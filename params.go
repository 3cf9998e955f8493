package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/harnesskit/lifecycle-harness/framework"
	"github.com/harnesskit/lifecycle-harness/selftests"

	"github.com/alessio/shellescape"
)

const defaultQueueSize = 1000

type commandParams struct {
	filters   framework.RegexFilters
	reportURL string
	queueSize int
	ci        bool
	debug     bool
	debugAll  bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.reportURL, "report-url", "", "URL of a collector to POST lifecycle messages to")
	fs.IntVar(&c.queueSize, "queue-size", defaultQueueSize, "capacity of the in-process message queue")
	fs.BoolVar(&c.ci, "ci", selftests.DetectEnvironment().IsCI, "treat this run as a CI run for skip conditions")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.queueSize <= 0 {
		fmt.Fprintln(os.Stderr, "-queue-size must be positive")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the specified tests again.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.ci {
		b.add("-ci")
	}
	if c.reportURL != "" {
		b.add("-report-url", c.reportURL)
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
