package generator

import (
	"go/ast"
	"go/importer"
	goparser "go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/toyz/thinobj/internal/models"
)

const geoSource = `package geo

// Point is a location
type Point struct{ X, Y float64 }

type Sync interface{ MarkSync() }

//thin::object(inheritance(possible_super_trait = true), trait_object(ShapeBox))
type Shape interface {
	Sync
	// Area of the shape
	Area() float64
	Center() Point
}
`

// fakeLoader type checks a single-file package written to a temp dir
func fakeLoader(t *testing.T, src string) (PackageLoader, *int) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "geo.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	calls := 0
	return func(_ string, importPath string) (*packages.Package, error) {
		calls++
		fset := token.NewFileSet()
		f, err := goparser.ParseFile(fset, path, src, goparser.ParseComments)
		if err != nil {
			return nil, err
		}
		conf := types.Config{Importer: importer.Default()}
		pkg, err := conf.Check(importPath, fset, []*ast.File{f}, nil)
		if err != nil {
			return nil, err
		}
		return &packages.Package{
			ID:      importPath,
			Name:    "geo",
			PkgPath: importPath,
			GoFiles: []string{path},
			Types:   pkg,
		}, nil
	}, &calls
}

func TestResolveRemoteSuper(t *testing.T) {
	loader, calls := fakeLoader(t, geoSource)
	file := parseFile(t, `
//thin::object(inheritance(extends(geo.Shape)))
type Circle interface {
	geo.Shape
	Radius() float64
}
`)
	file.Imports = append(file.Imports, models.Import{Path: "example.com/geo"})

	resolver := NewPackageResolver([]*models.SourceFile{file}, loader)
	ref := &models.SuperRef{Path: "geo.Shape", Qualifier: "geo", Name: "Shape", ImportPath: "example.com/geo"}
	require.NoError(t, resolver.ResolveSuper(file, ref))

	assert.True(t, ref.Resolved)
	assert.True(t, ref.Annotated)
	assert.True(t, ref.PossibleSuper)
	require.Len(t, ref.Methods, 2)
	assert.Equal(t, "Area", ref.Methods[0].Name)
	assert.Equal(t, []string{"// Area of the shape"}, ref.Methods[0].Doc)
	assert.Equal(t, "geo.Point", ref.Methods[1].Results[0].Type)
	require.Len(t, ref.Markers, 1)
	assert.Equal(t, "Sync", ref.Markers[0].Name)
	assert.Equal(t, "geo.ShapeBox", ref.HandleName())
	assert.Equal(t, "geo.ShapeBoxFromRaw", ref.FromRawName())
	assert.Contains(t, ref.Imports, models.Import{Name: "geo", Path: "example.com/geo"})

	// the package is loaded once
	other := &models.SuperRef{Path: "geo.Shape", Qualifier: "geo", Name: "Shape", ImportPath: "example.com/geo"}
	require.NoError(t, resolver.ResolveSuper(file, other))
	assert.Equal(t, 1, *calls)
}

func TestRemoteSuperThroughPipeline(t *testing.T) {
	loader, _ := fakeLoader(t, geoSource)
	file := parseFile(t, `
//thin::object(inheritance(extends(geo.Shape)))
type Circle interface {
	geo.Shape
	Radius() float64
}
`)
	file.Imports = append(file.Imports, models.Import{Path: "example.com/geo"})
	decl, _ := file.Lookup("Circle")

	p := NewPipeline(Options{ExperimentalInheritance: true}, NewPackageResolver([]*models.SourceFile{file}, loader))
	art, err := p.Transform(file, decl)
	require.NoError(t, err)

	assert.Contains(t, art.Vtable, "Super geo.ShapeVtable")
	assert.Contains(t, art.Repr, "Super: geo.NewShapeVtable[ThinT](")
	assert.Contains(t, art.Extension, "func (b *BoxedCircle) Center() geo.Point {\n\treturn geo.ThinShapeCenter(b)")
	assert.Contains(t, art.Extension, "func (b *BoxedCircle) AsShapeBox() *geo.ShapeBox")
	assert.Contains(t, art.Markers, "MarkSync")
	assert.Contains(t, art.Imports, models.Import{Path: "example.com/geo"})
	assert.Empty(t, art.Warnings)
}

func TestResolveSuperLoaderFailureIsWarning(t *testing.T) {
	file := parseFile(t, `
//thin::object(inheritance(extends(geo.Shape)))
type Circle interface {
	geo.Shape
}
`)
	file.Imports = append(file.Imports, models.Import{Path: "example.com/geo"})
	decl, _ := file.Lookup("Circle")

	failing := func(string, string) (*packages.Package, error) {
		return nil, os.ErrNotExist
	}
	p := NewPipeline(Options{ExperimentalInheritance: true}, NewPackageResolver(nil, failing))
	art, err := p.Transform(file, decl)
	require.NoError(t, err)
	require.NotEmpty(t, art.Warnings)
	assert.Contains(t, art.Warnings[0].Message, "could not resolve super interface geo.Shape")
	assert.NotContains(t, art.Handle, "var _ Circle")
}

func TestTypeQualifiers(t *testing.T) {
	tests := []struct {
		typ  string
		want []string
	}{
		{"int", nil},
		{"io.Reader", []string{"io"}},
		{"map[string]*geo.Point", []string{"geo"}},
		{"func(context.Context, ...int) (net.Conn, error)", []string{"context", "net"}},
		{"[]byte", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeQualifiers(tt.typ), tt.typ)
	}
}
