package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	dir := newModule(t, map[string]string{
		"shapes.go":          shapesSource,
		"nested/deep/geo.go": "package deep\n",
		"notes_thin.go":      "package geo\n\n// written by hand\n",
	})
	_, _, err := execute(t, "generate", "-q", dir)
	require.NoError(t, err)

	generated := filepath.Join(dir, "nested", "deep", "old_thin.go")
	require.NoError(t, os.WriteFile(generated, []byte("// Code generated by thinobj. DO NOT EDIT.\n\npackage deep\n"), 0o644))

	t.Run("non recursive", func(t *testing.T) {
		out, _, err := execute(t, "clean", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "removed 1 generated companions")
		assert.NoFileExists(t, filepath.Join(dir, "shapes_thin.go"))
		assert.FileExists(t, generated)
	})

	t.Run("recursive", func(t *testing.T) {
		_, _, err := execute(t, "clean", filepath.Join(dir, "..."))
		require.NoError(t, err)
		assert.NoFileExists(t, generated)
	})

	t.Run("nothing left", func(t *testing.T) {
		out, _, err := execute(t, "clean", filepath.Join(dir, "..."))
		require.NoError(t, err)
		assert.Contains(t, out, "no generated companions found")
	})

	for _, keep := range []string{"shapes.go", "notes_thin.go", "nested/deep/geo.go"} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(keep)))
	}
}

func TestCleanCustomSuffix(t *testing.T) {
	dir := newModule(t, map[string]string{"shapes.go": shapesSource})
	_, _, err := execute(t, "generate", "-q", "--suffix", "_gen", dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "shapes_gen.go"))

	_, _, err = execute(t, "clean", "-q", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "shapes_gen.go"))

	_, _, err = execute(t, "clean", "-q", "--suffix", "_gen", dir)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "shapes_gen.go"))
}
