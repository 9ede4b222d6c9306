package executor

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
	skipLabel = color.New(color.FgYellow)
	slugLabel = color.New(color.FgCyan)
	dimLabel  = color.New(color.FgHiWhite, color.Faint)
)

// LastCleanLine returns the last line of s that is not blank once trailing
// carriage returns and ANSI escape sequences are removed.
func LastCleanLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := ansi.Strip(strings.TrimRight(lines[i], "\r"))
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// displayOutput prefers stdout and falls back to stderr.
func displayOutput(stdout, stderr string) string {
	if line := LastCleanLine(stdout); line != "" {
		return line
	}
	return LastCleanLine(stderr)
}

// failureHint prefers stderr and falls back to stdout.
func failureHint(stdout, stderr string) string {
	if line := LastCleanLine(stderr); line != "" {
		return line
	}
	return LastCleanLine(stdout)
}

func printOutcome(w io.Writer, o Outcome) {
	switch o.Status {
	case StatusPass:
		passLabel.Fprint(w, "PASS ")
		slugLabel.Fprintf(w, " %s", o.Slug)
		if o.Output != "" {
			fmt.Fprintf(w, "  %s", o.Output)
		}
	case StatusFail:
		failLabel.Fprint(w, "FAIL ")
		slugLabel.Fprintf(w, " %s", o.Slug)
		fmt.Fprintf(w, "  exit %d", o.ExitCode)
		if o.Hint != "" {
			fmt.Fprintf(w, ": %s", o.Hint)
		}
	case StatusSkip:
		skipLabel.Fprint(w, "SKIP ")
		slugLabel.Fprintf(w, " %s", o.Slug)
		dimLabel.Fprintf(w, "  %s", o.Reason)
	}
	fmt.Fprintln(w)
}

// PrintSummary writes the three-way classification with counts and members.
func PrintSummary(w io.Writer, s *Summary) {
	fmt.Fprintln(w)
	printGroup(w, passLabel, "Passed", s.Passed)
	printGroup(w, failLabel, "Failed", s.Failed)
	printGroup(w, skipLabel, "Skipped", s.Skipped)
}

func printGroup(w io.Writer, label *color.Color, name string, slugs []string) {
	label.Fprintf(w, "%-8s", name)
	fmt.Fprintf(w, "(%d)", len(slugs))
	if len(slugs) > 0 {
		fmt.Fprintf(w, ": %s", strings.Join(slugs, " "))
	}
	fmt.Fprintln(w)
}
