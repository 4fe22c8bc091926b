package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/thinobj/internal/generator"
	"github.com/toyz/thinobj/internal/utils"
)

func TestParsePatterns(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		args []string
		want []Pattern
	}{
		{nil, []Pattern{{Dir: wd}}},
		{[]string{"./..."}, []Pattern{{Dir: wd, Recursive: true}}},
		{[]string{"..."}, []Pattern{{Dir: wd, Recursive: true}}},
		{[]string{"internal/..."}, []Pattern{{Dir: filepath.Join(wd, "internal"), Recursive: true}}},
		{[]string{"internal", "/abs/dir"}, []Pattern{{Dir: filepath.Join(wd, "internal")}, {Dir: "/abs/dir"}}},
	}
	for _, tt := range tests {
		got, err := ParsePatterns(tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v", tt.args)
	}
}

func TestDirectoryScanner_ScanDirectories(t *testing.T) {
	root := t.TempDir()
	for name, content := range map[string]string{
		"a/a.go":             "package a",
		"a/b/b.go":           "package b",
		"a/b/b_thin.go":      generator.GeneratedHeader + "\npackage b",
		"a/gen/only_thin.go": generator.GeneratedHeader + "\npackage gen",
		"a/vendor/v/v.go":    "package v",
		"c/c.go":             "package c",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	scanner := NewDirectoryScanner(utils.NewFileProcessor(generator.DefaultSuffix, generator.GeneratedHeader))

	dirs, err := scanner.ScanDirectories([]string{filepath.Join(root, "a") + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "a", "b")}, dirs)

	dirs, err = scanner.ScanDirectories([]string{filepath.Join(root, "a"), filepath.Join(root, "c"), filepath.Join(root, "a")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "c")}, dirs)

	_, err = scanner.ScanDirectories([]string{filepath.Join(root, "missing")})
	assert.Error(t, err)
}

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	root := t.TempDir()
	for name, content := range map[string]string{
		"a/a.go":           "package a",
		"a/a_thin.go":      generator.GeneratedHeader + "\npackage a",
		"a/b/b_thin.go":    generator.GeneratedHeader + "\npackage b",
		"a/manual_thin.go": "package a",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	fp := utils.NewFileProcessor(generator.DefaultSuffix, generator.GeneratedHeader)

	// non recursive only touches the directory itself
	removed, err := NewCleaner(fp, nil).CleanGeneratedFiles([]string{filepath.Join(root, "a")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "a_thin.go")}, removed)
	assert.FileExists(t, filepath.Join(root, "a", "b", "b_thin.go"))

	removed, err = NewCleaner(fp, nil).CleanGeneratedFiles([]string{filepath.Join(root, "a") + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "b", "b_thin.go")}, removed)
	assert.FileExists(t, filepath.Join(root, "a", "manual_thin.go"))
}
