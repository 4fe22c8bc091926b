package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
)

// DiagnosticReporter renders failures and summaries for humans
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stdout and stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: os.Stdout, errOut: os.Stderr}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// ReportError prints every failure carried by err, one block per failure
func (r *DiagnosticReporter) ReportError(err error) {
	failures := flatten(err)
	title := "thinobj: generation failed"
	if len(failures) > 1 {
		title = fmt.Sprintf("thinobj: generation failed with %d errors", len(failures))
	}
	color.New(color.FgRed, color.Bold).Fprintf(r.errOut, "\n%s\n\n", title)

	for _, ge := range failures {
		r.reportGeneratorError(ge)
	}
	if !r.verbose {
		fmt.Fprintf(r.errOut, "Run with --verbose for more detailed output\n")
	}
}

// flatten turns err into one GeneratorError per underlying failure
func flatten(err error) []*models.GeneratorError {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		out := make([]*models.GeneratorError, 0, len(multi.Errors))
		for _, e := range multi.Errors {
			out = append(out, models.NewGeneratorError("", e))
		}
		return out
	}
	return []*models.GeneratorError{models.NewGeneratorError("", err)}
}

func (r *DiagnosticReporter) reportGeneratorError(ge *models.GeneratorError) {
	loc := errors.SourceLocation{File: ge.File, Line: ge.Line, Column: ge.Column}
	if !loc.IsEmpty() {
		color.New(color.Bold).Fprintf(r.errOut, "%s: ", loc)
	}
	color.New(color.FgRed).Fprintf(r.errOut, "%s", ge.Type.Category())
	if ge.Type != errors.UnknownErrorCode {
		fmt.Fprintf(r.errOut, " [%s]", ge.Type)
	}
	fmt.Fprintf(r.errOut, ": %s\n", ge.Message)

	if ge.Interface != "" {
		fmt.Fprintf(r.errOut, "   Interface: %s\n", ge.Interface)
	}
	if len(ge.Context) > 0 {
		r.printContext(ge.Context)
	}
	if len(ge.Suggestions) > 0 {
		r.printSuggestions(ge.Suggestions)
	}
	if r.verbose && ge.Cause != nil {
		r.printErrorChain(ge.Cause)
	}
	fmt.Fprintln(r.errOut)
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(r.errOut, "   %s: %v\n", formatContextKey(k), context[k])
	}
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	hint := color.New(color.FgCyan)
	for _, s := range suggestions {
		lines := strings.Split(s, "\n")
		hint.Fprintf(r.errOut, "   hint: ")
		fmt.Fprintln(r.errOut, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "         %s\n", line)
			}
		}
	}
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.errOut, "   Error chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.errOut, "     %d. %s\n", level, err)
		err = stderrors.Unwrap(err)
	}
}

// ReportSuccess prints the summary of a successful run
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	color.New(color.FgGreen, color.Bold).Fprintf(r.out, "\nthinobj: generation complete\n")
	fmt.Fprintf(r.out, "   packages: %d\n", summary.PackagesProcessed)
	fmt.Fprintf(r.out, "   interfaces: %d\n", summary.InterfacesGenerated)
	if summary.Warnings > 0 {
		fmt.Fprintf(r.out, "   warnings: %d\n", summary.Warnings)
	}
	if r.verbose && summary.Duration > 0 {
		fmt.Fprintf(r.out, "   took: %s\n", summary.Duration.Round(time.Millisecond))
	}

	r.list("written", summary.GeneratedFiles)
	r.list("removed", summary.RemovedFiles)
	if r.verbose {
		r.list("unchanged", summary.UnchangedFiles)
	}
}

func (r *DiagnosticReporter) list(title string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n%s:\n", title)
	for _, f := range files {
		fmt.Fprintf(r.out, "  - %s\n", f)
	}
}

// GenerationSummary contains information about a generate run
type GenerationSummary struct {
	PackagesProcessed   int
	InterfacesGenerated int
	Warnings            int
	GeneratedFiles      []string
	UnchangedFiles      []string
	RemovedFiles        []string
	StaleFiles          []string
	Duration            time.Duration
}
