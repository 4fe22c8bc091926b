package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testHeader = "// Code generated by thinobj. DO NOT EDIT."

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return root
}

func TestFileProcessor_Filters(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shapes.go":      "package shapes",
		"shapes_test.go": "package shapes",
		"shapes_thin.go": testHeader + "\npackage shapes",
		"README.md":      "# shapes",
	})
	fp := NewFileProcessor("_thin", testHeader)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var sources, companions []string
	for _, e := range entries {
		if fp.SourceFilter()(filepath.Join(root, e.Name()), e) {
			sources = append(sources, e.Name())
		}
		if fp.CompanionFilter()(filepath.Join(root, e.Name()), e) {
			companions = append(companions, e.Name())
		}
	}

	if !reflect.DeepEqual(sources, []string{"shapes.go"}) {
		t.Errorf("unexpected sources %v", sources)
	}
	if !reflect.DeepEqual(companions, []string{"shapes_thin.go"}) {
		t.Errorf("unexpected companions %v", companions)
	}
}

func TestFileProcessor_PackageDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/a.go":             "package a",
		"a/b/b.go":           "package b",
		"a/c/c_test.go":      "package c",
		"a/d/d_thin.go":      testHeader,
		"a/vendor/v/v.go":    "package v",
		"a/.hidden/h.go":     "package h",
		"a/_scratch/s.go":    "package s",
		"a/testdata/data.go": "package data",
	})
	fp := NewFileProcessor("_thin", testHeader)

	dirs, err := fp.PackageDirs([]string{filepath.Join(root, "a")}, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "a"), filepath.Join(root, "a", "b")}
	if !reflect.DeepEqual(dirs, want) {
		t.Errorf("expected %v, got %v", want, dirs)
	}

	dirs, err = fp.PackageDirs([]string{filepath.Join(root, "a")}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dirs, want[:1]) {
		t.Errorf("expected only the root, got %v", dirs)
	}

	if _, err := fp.PackageDirs([]string{filepath.Join(root, "missing")}, true); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestFileProcessor_CleanDirectories(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shapes.go":           "package shapes",
		"shapes_thin.go":      testHeader + "\npackage shapes\n",
		"handwritten_thin.go": "package shapes\n",
		"sub/sub_thin.go":     testHeader + "\npackage sub\n",
		"sub/sub.go":          "package sub",
	})
	fp := NewFileProcessor("_thin", testHeader)

	removed, err := fp.CleanDirectories([]string{root}, true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "shapes_thin.go"), filepath.Join(root, "sub", "sub_thin.go")}
	if !reflect.DeepEqual(removed, want) {
		t.Errorf("expected %v, got %v", want, removed)
	}

	for _, keep := range []string{"shapes.go", "handwritten_thin.go", "sub/sub.go"} {
		if _, err := os.Stat(filepath.Join(root, keep)); err != nil {
			t.Errorf("%s should survive cleaning: %v", keep, err)
		}
	}
}
