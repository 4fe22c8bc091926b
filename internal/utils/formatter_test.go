package utils

import (
	"strings"
	"testing"
)

func TestFormatSource_PrunesUnusedImports(t *testing.T) {
	src := "package shapes\n\nimport (\n\"io\"\n\"unsafe\"\n)\n\nvar _ = unsafe.Pointer(nil)\n"
	out, err := FormatSource("shapes_thin.go", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "\"io\"") {
		t.Errorf("unused import kept:\n%s", out)
	}
	if !strings.Contains(string(out), "\t\"unsafe\"") && !strings.Contains(string(out), "import \"unsafe\"") {
		t.Errorf("used import dropped:\n%s", out)
	}
}

func TestFormatSource_InvalidSyntax(t *testing.T) {
	src := []byte("package shapes\n\nfunc (\n")
	out, err := FormatSource("bad.go", src)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "invalid Go syntax") {
		t.Errorf("unexpected error %v", err)
	}
	if string(out) != string(src) {
		t.Error("expected the input back on failure")
	}
}
