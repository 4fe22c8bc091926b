package generator

import (
	"fmt"
	"go/types"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/parser"
)

// SuperResolver fills in what is known about the interface an extension
// builds on. A super that cannot be found is left unresolved; an error is
// returned only when looking it up failed.
type SuperResolver interface {
	ResolveSuper(file *models.SourceFile, ref *models.SuperRef) error
}

// PackageLoader loads the package with the given import path as seen from dir
type PackageLoader func(dir, importPath string) (*packages.Package, error)

// LoadPackage loads type information for one package with go/packages
func LoadPackage(dir, importPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", importPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %s not found", importPath)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("failed to load package %s: %v", importPath, pkg.Errors[0])
	}
	return pkg, nil
}

// PackageResolver resolves supers declared in the package being generated
// from its syntax, and supers of other packages through a PackageLoader
type PackageResolver struct {
	files      []*models.SourceFile
	config     *ConfigResolver
	normalizer *Normalizer
	loader     PackageLoader

	mu     sync.Mutex
	remote map[string]*remotePackage
}

type remotePackage struct {
	types *types.Package
	files []*models.SourceFile
}

// NewPackageResolver creates a resolver for the package made of files.
// A nil loader uses LoadPackage.
func NewPackageResolver(files []*models.SourceFile, loader PackageLoader) *PackageResolver {
	if loader == nil {
		loader = LoadPackage
	}
	config := NewConfigResolver()
	return &PackageResolver{
		files:      files,
		config:     config,
		normalizer: NewNormalizer(config),
		loader:     loader,
		remote:     make(map[string]*remotePackage),
	}
}

// ResolveSuper implements SuperResolver
func (r *PackageResolver) ResolveSuper(file *models.SourceFile, ref *models.SuperRef) error {
	if ref.Qualifier == "" {
		decl, declFile := lookup(r.files, ref.Name)
		if decl == nil {
			return nil
		}
		return r.fromSyntax(declFile, decl, ref)
	}

	remote, err := r.load(file, ref.ImportPath)
	if err != nil {
		return err
	}
	decl, declFile := lookup(remote.files, ref.Name)
	if decl == nil {
		return nil
	}
	if err := r.fromSyntax(declFile, decl, ref); err != nil {
		return err
	}
	return requalify(remote.types, file, ref)
}

// fromSyntax reads the super's directive, markers and methods from its
// declaration
func (r *PackageResolver) fromSyntax(file *models.SourceFile, decl *models.InterfaceDecl, ref *models.SuperRef) error {
	var cfg models.Config
	if decl.Annotated() {
		c, err := r.config.Resolve(decl)
		if err != nil {
			return fmt.Errorf("super interface %s: %w", ref.Path, err)
		}
		cfg = c
		ref.Annotated = true
		ref.InlineVtable = cfg.InlineVtable
		ref.PossibleSuper = cfg.Inheritance != nil && cfg.Inheritance.PossibleSuperTrait
	}
	names := models.DeriveNames(decl.Name, cfg)
	ref.Names = &names

	methods, bounds, err := r.normalizer.Normalize(decl)
	if err != nil {
		return fmt.Errorf("super interface %s: %w", ref.Path, err)
	}
	pred := DefaultMarkerPredicate(file)
	if cfg.HasMarkerOverride() {
		pred = OverrideMarkerPredicate(file, cfg.MarkerTraits)
	}
	markers, lifetimes, _ := SplitBounds(file, bounds, pred)

	ref.Methods = methods
	ref.Markers = markers
	ref.Static = len(lifetimes) > 0
	ref.Imports = signatureImports(file, methods)
	ref.Resolved = true
	return nil
}

func (r *PackageResolver) load(file *models.SourceFile, importPath string) (*remotePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.remote[importPath]; ok {
		return p, nil
	}
	pkg, err := r.loader(filepath.Dir(file.Path), importPath)
	if err != nil {
		return nil, err
	}

	p := &remotePackage{types: pkg.Types}
	src := parser.NewParser()
	for _, name := range pkg.GoFiles {
		sf, err := src.ParseFile(name)
		if err != nil {
			return nil, err
		}
		sf.ImportPath = importPath
		p.files = append(p.files, sf)
	}
	r.remote[importPath] = p
	return p, nil
}

// requalify rewrites the super's method signatures from its package's
// point of view to the one of file
func requalify(pkg *types.Package, file *models.SourceFile, ref *models.SuperRef) error {
	if pkg == nil {
		return nil
	}
	obj := pkg.Scope().Lookup(ref.Name)
	if obj == nil {
		return fmt.Errorf("%s is not declared in %s", ref.Name, pkg.Path())
	}
	iface, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		return fmt.Errorf("%s is not an interface", ref.Path)
	}

	imports := make(map[string]models.Import)
	qualify := func(p *types.Package) string {
		switch {
		case p.Path() == file.ImportPath:
			return ""
		case p.Path() == ref.ImportPath:
			imports[p.Path()] = models.Import{Name: ref.Qualifier, Path: p.Path()}
			return ref.Qualifier
		}
		if imp, ok := findImport(file, p.Path()); ok {
			imports[p.Path()] = imp
			return imp.LocalName()
		}
		imports[p.Path()] = models.Import{Path: p.Path()}
		return p.Name()
	}

	for i, m := range ref.Methods {
		fn, _, _ := types.LookupFieldOrMethod(iface, false, pkg, m.Name)
		f, ok := fn.(*types.Func)
		if !ok {
			continue
		}
		sig := f.Type().(*types.Signature)
		args := m.Args()
		for j := 0; j < sig.Params().Len() && j < len(args); j++ {
			ref.Methods[i].Params[j+1].Type = types.TypeString(sig.Params().At(j).Type(), qualify)
		}
		for j := 0; j < sig.Results().Len() && j < len(m.Results); j++ {
			ref.Methods[i].Results[j].Type = types.TypeString(sig.Results().At(j).Type(), qualify)
		}
	}

	ref.Imports = ref.Imports[:0]
	for _, imp := range imports {
		ref.Imports = append(ref.Imports, imp)
	}
	sort.Slice(ref.Imports, func(i, j int) bool { return ref.Imports[i].Path < ref.Imports[j].Path })
	return nil
}

// signatureImports lists the imports of file the method signatures refer to
func signatureImports(file *models.SourceFile, methods []models.MethodDescriptor) []models.Import {
	var out []models.Import
	seen := make(map[string]bool)
	for _, m := range methods {
		params := append(append([]models.Param(nil), m.Args()...), m.Results...)
		for _, p := range params {
			for _, q := range typeQualifiers(p.Type) {
				if seen[q] {
					continue
				}
				seen[q] = true
				if imp, ok := file.ResolveQualifier(q); ok {
					out = append(out, imp)
				}
			}
		}
	}
	return out
}

// typeQualifiers extracts the package selectors of a type expression
func typeQualifiers(typ string) []string {
	var out []string
	isIdent := func(r byte) bool {
		return r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
	}
	for i := 0; i < len(typ); i++ {
		if typ[i] != '.' || i == 0 || !isIdent(typ[i-1]) || strings.HasPrefix(typ[i:], "...") {
			continue
		}
		start := i
		for start > 0 && isIdent(typ[start-1]) {
			start--
		}
		out = append(out, typ[start:i])
	}
	return out
}

func findImport(file *models.SourceFile, importPath string) (models.Import, bool) {
	for _, imp := range file.Imports {
		if imp.Path == importPath {
			return imp, true
		}
	}
	return models.Import{}, false
}

func lookup(files []*models.SourceFile, name string) (*models.InterfaceDecl, *models.SourceFile) {
	for _, f := range files {
		if d, ok := f.Lookup(name); ok {
			return d, f
		}
	}
	return nil, nil
}
