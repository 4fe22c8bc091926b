package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesSource = `package geo

//thin::object
type Shape interface {
	Area() float64
}
`

const baseSource = `package geo

//thin::object(inheritance(possible_super_trait = true))
type Base interface {
	Name() string
}
`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs the root command in process
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// newModule writes a module example.com/geo holding files
func newModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/geo\n\ngo 1.25\n"), 0o644))
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)

	for _, want := range []string{"generate", "clean", "serve", "version", "--experimental-inheritance", "--module", "--suffix"} {
		assert.Contains(t, out, want)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "thinobj dev\n", out)
}

func TestGenerate(t *testing.T) {
	dir := newModule(t, map[string]string{"shapes.go": shapesSource})

	out, _, err := execute(t, "generate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "generation complete")
	assert.Contains(t, out, "interfaces: 1")

	content, err := os.ReadFile(filepath.Join(dir, "shapes_thin.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "// Code generated by thinobj. DO NOT EDIT."))
	assert.Contains(t, string(content), "type BoxedShape struct")
}

func TestGenerateRecursivePattern(t *testing.T) {
	dir := newModule(t, map[string]string{
		"shapes.go":     shapesSource,
		"sub/shapes.go": strings.Replace(shapesSource, "package geo", "package sub", 1),
	})

	_, _, err := execute(t, "generate", "--quiet", filepath.Join(dir, "..."))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "shapes_thin.go"))
	assert.FileExists(t, filepath.Join(dir, "sub", "shapes_thin.go"))
}

func TestGenerateFailureIsReported(t *testing.T) {
	dir := newModule(t, map[string]string{"base.go": baseSource})

	_, stderr, err := execute(t, "generate", dir)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "InheritanceNotEnabled")
	assert.NoFileExists(t, filepath.Join(dir, "base_thin.go"))

	_, _, err = execute(t, "generate", "--experimental-inheritance", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "base_thin.go"))
}

func TestGenerateCheck(t *testing.T) {
	dir := newModule(t, map[string]string{"shapes.go": shapesSource})

	_, _, err := execute(t, "generate", "--check", dir)
	require.ErrorIs(t, err, errReported)
	assert.NoFileExists(t, filepath.Join(dir, "shapes_thin.go"))

	_, _, err = execute(t, "generate", "-q", dir)
	require.NoError(t, err)
	_, _, err = execute(t, "generate", "--check", dir)
	assert.NoError(t, err)
}

func TestGenerateMissingDirectory(t *testing.T) {
	_, _, err := execute(t, "generate", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := newModule(t, map[string]string{"base.go": baseSource})
	config := filepath.Join(t.TempDir(), "thinobj.yaml")
	require.NoError(t, os.WriteFile(config, []byte("suffix: _gen\nexperimental_inheritance: true\n"), 0o644))

	_, _, err := execute(t, "generate", "--config", config, dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "base_gen.go"))
	assert.NoFileExists(t, filepath.Join(dir, "base_thin.go"))
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := newModule(t, map[string]string{"shapes.go": shapesSource})
	config := filepath.Join(t.TempDir(), "thinobj.yaml")
	require.NoError(t, os.WriteFile(config, []byte("suffix: _gen\n"), 0o644))

	_, _, err := execute(t, "generate", "--config", config, "--suffix", "_obj", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "shapes_obj.go"))
}

func TestEnvironment(t *testing.T) {
	dir := newModule(t, map[string]string{"shapes.go": shapesSource})
	t.Setenv("THINOBJ_SUFFIX", "_env")

	_, _, err := execute(t, "generate", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "shapes_env.go"))
}

func TestBrokenConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "thinobj.yaml")
	require.NoError(t, os.WriteFile(config, []byte("suffix: [\n"), 0o644))

	_, _, err := execute(t, "generate", "--config", config, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
