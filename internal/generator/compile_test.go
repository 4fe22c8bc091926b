package generator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"

	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/parser"
	"github.com/toyz/thinobj/internal/utils"
)

const scratchModule = "example.com/scratch"

const scratchSource = `package scratch

import "github.com/toyz/thinobj/pkg/thin"

//thin::object
type Greeter interface {
	Greet(name string) string
}

//thin::object
type Owned interface {
	thin.Static
	ID() int
}

type English struct{ n int }

func (English) Greet(name string) string { return "hello " + name }

type French struct{ n int }

func (French) Greet(name string) string { return "bonjour " + name }

type Token struct {
	thin.Markers
	id int
}

func (t Token) ID() int { return t.id }
`

const scratchTest = `package scratch

import (
	"reflect"
	"testing"

	"github.com/toyz/thinobj/pkg/thin"
)

func hasLifetime(typ reflect.Type) bool {
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == reflect.TypeFor[thin.Lifetime]() {
			return true
		}
	}
	return false
}

func TestDirectTable(t *testing.T) {
	b := NewBoxedGreeter(English{})
	defer b.Drop()
	if got := b.Greet("ann"); got != "hello ann" {
		t.Fatalf("Greet = %q", got)
	}
	if b.Vtable().Greet == nil || b.Vtable().Drop == nil {
		t.Fatal("table has empty slots")
	}
}

func TestLifetimeField(t *testing.T) {
	if !hasLifetime(reflect.TypeFor[BoxedGreeter]()) {
		t.Error("BoxedGreeter lacks the lifetime field")
	}
	if hasLifetime(reflect.TypeFor[BoxedOwned]()) {
		t.Error("BoxedOwned carries a lifetime field")
	}
	var _ thin.Static = (*BoxedOwned)(nil)
}

func TestSameShapeIdentity(t *testing.T) {
	a := NewBoxedGreeter(English{})
	defer a.Drop()
	b := NewBoxedGreeter(French{})
	defer b.Drop()
	c := NewBoxedGreeter(English{n: 1})
	defer c.Drop()

	if a.Vtable().Equal(b.Vtable()) {
		t.Error("tables of English and French compare equal")
	}
	if a.Vtable().Hash() == b.Vtable().Hash() {
		t.Error("tables of English and French hash alike")
	}
	if !a.Vtable().Equal(c.Vtable()) || a.Vtable().Hash() != c.Vtable().Hash() {
		t.Error("tables of one type differ")
	}
	if got := b.Greet("ann"); got != "bonjour ann" {
		t.Fatalf("Greet = %q", got)
	}
}
`

// scratchDir writes a module that depends on this repository through a
// replace directive and returns its directory
func scratchDir(t *testing.T) string {
	t.Helper()
	goMod, err := utils.NewGoModParser().FindGoModFile(".")
	require.NoError(t, err)
	root := filepath.Dir(goMod)

	dir := t.TempDir()
	mf := new(modfile.File)
	require.NoError(t, mf.AddModuleStmt(scratchModule))
	require.NoError(t, mf.AddGoStmt("1.25"))
	require.NoError(t, mf.AddRequire("github.com/toyz/thinobj", "v0.0.0"))
	require.NoError(t, mf.AddReplace("github.com/toyz/thinobj", "", root, ""))
	content, err := mf.Format()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), content, 0o644))

	if sum, err := os.ReadFile(filepath.Join(root, "go.sum")); err == nil {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.sum"), sum, 0o644))
	}
	return dir
}

func TestGeneratedCodeCompilesAndRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a scratch module")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not available")
	}

	dir := scratchDir(t)
	source := filepath.Join(dir, "scratch.go")
	require.NoError(t, os.WriteFile(source, []byte(scratchSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch_test.go"), []byte(scratchTest), 0o644))

	file, err := parser.NewParser().ParseSource(source, scratchSource)
	require.NoError(t, err)
	file.Path = source
	file.ImportPath = scratchModule
	pipeline := NewPipeline(Options{}, NewPackageResolver([]*models.SourceFile{file}, nil))
	out, err := NewFileGenerator(pipeline, "").GenerateFile(file)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NoError(t, os.WriteFile(out.Path, out.Content, 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(ctx, goBin, "test", "-count=1", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
}
