package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/toyz/thinobj/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	r := NewDiagnosticReporter(verbose)
	r.SetOutput(&out, &errOut)
	return r, &out, &errOut
}

func TestDiagnosticReporter_ReportTransformError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	loc := errors.SourceLocation{File: "shapes.go", Line: 12, Column: 3}
	reporter.ReportError(errors.MissingReceiver(loc, "Scale", "value"))

	output := errOut.String()
	assert.Contains(t, output, "thinobj: generation failed\n")
	assert.Contains(t, output, "shapes.go:12:3: Interface Shape [MissingReceiver]")
	assert.Contains(t, output, "Scale")
	assert.Contains(t, output, "hint: ")
	assert.Contains(t, output, "Run with --verbose")
}

func TestDiagnosticReporter_ReportMultipleErrors(t *testing.T) {
	reporter, _, errOut := newTestReporter(true)

	var multi *errors.MultipleErrors
	errors.AddToMultiple(&multi, errors.AsyncUnsupported(errors.SourceLocation{File: "a.go", Line: 4}, "Fetch"))
	errors.AddToMultiple(&multi, errors.WrapFileSystemError("write", "a_thin.go", fmt.Errorf("disk full")))
	reporter.ReportError(multi)

	output := errOut.String()
	assert.Contains(t, output, "generation failed with 2 errors")
	assert.Contains(t, output, "a.go:4: Interface Shape [AsyncUnsupported]")
	assert.Contains(t, output, "failed to write file 'a_thin.go'")
	assert.Contains(t, output, "Path: a_thin.go")
	assert.Contains(t, output, "Error chain:")
	assert.Contains(t, output, "disk full")
	assert.NotContains(t, output, "Run with --verbose")
}

func TestDiagnosticReporter_ReportPlainError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)
	reporter.ReportError(fmt.Errorf("something broke"))

	assert.Contains(t, errOut.String(), "Internal: something broke")
}

func TestDiagnosticReporter_ReportSuccess(t *testing.T) {
	reporter, out, _ := newTestReporter(true)
	reporter.ReportSuccess(GenerationSummary{
		PackagesProcessed:   2,
		InterfacesGenerated: 3,
		Warnings:            1,
		GeneratedFiles:      []string{"shapes/shapes_thin.go"},
		UnchangedFiles:      []string{"geo/geo_thin.go"},
		Duration:            1500 * time.Millisecond,
	})

	output := out.String()
	assert.Contains(t, output, "generation complete")
	assert.Contains(t, output, "packages: 2")
	assert.Contains(t, output, "interfaces: 3")
	assert.Contains(t, output, "warnings: 1")
	assert.Contains(t, output, "took: 1.5s")
	assert.Contains(t, output, "written:\n  - shapes/shapes_thin.go")
	assert.Contains(t, output, "unchanged:\n  - geo/geo_thin.go")
	assert.NotContains(t, output, "removed:")
}

func TestFormatContextKey(t *testing.T) {
	tests := map[string]string{
		"path":            "Path",
		"operation":       "Operation",
		"expected_option": "Expected Option",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatContextKey(in))
	}
}
