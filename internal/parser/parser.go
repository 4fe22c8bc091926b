package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/thinobj/internal/annotations"
	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
)

// Parser extracts interface declarations and their directives from Go source
type Parser struct {
	fileSet *token.FileSet
}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
	}
}

// FileSet returns the file set positions are recorded in
func (p *Parser) FileSet() *token.FileSet {
	return p.fileSet
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*models.SourceFile, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(errors.SyntaxErrorCode, "failed to parse source", err).
			WithLocation(errors.SourceLocation{File: filename})
	}
	return p.buildSourceFile(filename, file), nil
}

// ParseFile parses a single Go file from disk
func (p *Parser) ParseFile(path string) (*models.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, string(content))
}

// ParseDirectory parses every non-test Go file of a directory. Files for
// which skip returns true are ignored; the CLI uses it to leave generated
// companions out.
func (p *Parser) ParseDirectory(dir string, skip func(name string) bool) ([]*models.SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	var files []*models.SourceFile
	pkgName := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if skip != nil && skip(name) {
			continue
		}

		sf, err := p.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if pkgName != "" && sf.Package != pkgName {
			return nil, fmt.Errorf("multiple packages found in directory %s: %s and %s", dir, pkgName, sf.Package)
		}
		pkgName = sf.Package
		files = append(files, sf)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (p *Parser) buildSourceFile(filename string, file *ast.File) *models.SourceFile {
	sf := &models.SourceFile{
		Path:    filename,
		Package: file.Name.Name,
	}
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		i := models.Import{Path: path}
		if imp.Name != nil {
			i.Name = imp.Name.Name
		}
		sf.Imports = append(sf.Imports, i)
	}
	sf.Interfaces = p.ExtractInterfaces(file)
	return sf
}

// ExtractInterfaces collects every interface type declaration of the file,
// annotated or not
func (p *Parser) ExtractInterfaces(file *ast.File) []*models.InterfaceDecl {
	var decls []*models.InterfaceDecl

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}

			doc := typeSpec.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			decls = append(decls, p.buildInterface(typeSpec, ifaceType, doc))
		}
	}
	return decls
}

func (p *Parser) buildInterface(spec *ast.TypeSpec, iface *ast.InterfaceType, doc *ast.CommentGroup) *models.InterfaceDecl {
	d := &models.InterfaceDecl{
		Name:     spec.Name.Name,
		Exported: spec.Name.IsExported(),
		Pos:      p.location(spec.Name.Pos()),
	}
	d.Directive, d.DirectivePos, d.Doc = p.splitDoc(doc, annotations.ObjectDirective)

	if spec.TypeParams != nil {
		for _, field := range spec.TypeParams.List {
			for _, name := range field.Names {
				d.TypeParams = append(d.TypeParams, name.Name)
			}
		}
	}

	if iface.Methods != nil {
		for _, field := range iface.Methods.List {
			d.Items = append(d.Items, p.buildItem(field))
		}
	}
	return d
}

// splitDoc separates the first directive of the given kind from the plain
// documentation lines
func (p *Parser) splitDoc(doc *ast.CommentGroup, kind annotations.DirectiveKind) (string, errors.SourceLocation, []string) {
	if doc == nil {
		return "", errors.SourceLocation{}, nil
	}
	var (
		directive string
		loc       errors.SourceLocation
		lines     []string
	)
	for _, c := range doc.List {
		if annotations.HasKind(c.Text, kind) {
			if directive == "" {
				directive = c.Text
				loc = p.location(c.Slash)
			}
			continue
		}
		if annotations.IsDirective(c.Text) {
			continue
		}
		lines = append(lines, c.Text)
	}
	return directive, loc, lines
}

func (p *Parser) buildItem(field *ast.Field) models.RawItem {
	item := models.RawItem{
		Pos:  p.location(field.Pos()),
		Text: types.ExprString(field.Type),
	}

	if len(field.Names) > 0 {
		item.Kind = models.ItemMethod
		item.Name = field.Names[0].Name
		item.Pos = p.location(field.Names[0].Pos())
		item.Directive, item.DirectivePos, item.Doc = p.splitDoc(field.Doc, annotations.MethodDirective)
		if fn, ok := field.Type.(*ast.FuncType); ok {
			item.Params, item.Variadic = p.fieldList(fn.Params, "arg")
			item.Results, _ = p.fieldList(fn.Results, "")
			item.Qualifiers = qualifiers(fn)
		}
		return item
	}

	_, _, item.Doc = p.splitDoc(field.Doc, annotations.MethodDirective)

	switch t := field.Type.(type) {
	case *ast.Ident:
		item.Kind = models.ItemEmbedded
		item.Name = t.Name
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		switch {
		case !ok:
			item.Kind = models.ItemUnknown
		case pkg.Name == "C":
			item.Kind = models.ItemCgo
			item.Qualifier = "C"
			item.Name = t.Sel.Name
		default:
			item.Kind = models.ItemEmbedded
			item.Qualifier = pkg.Name
			item.Name = t.Sel.Name
		}
	case *ast.IndexExpr, *ast.IndexListExpr:
		item.Kind = models.ItemGenericEmbed
	case *ast.BadExpr:
		item.Kind = models.ItemUnknown
	default:
		// ~T, A | B and literal types all constrain the type set
		item.Kind = models.ItemTypeSet
	}
	return item
}

// fieldList flattens a parameter or result list. Unnamed entries get a
// generated name when prefix is set.
func (p *Parser) fieldList(list *ast.FieldList, prefix string) ([]models.Param, bool) {
	if list == nil {
		return nil, false
	}
	var (
		params   []models.Param
		variadic bool
	)
	for _, field := range list.List {
		typ := field.Type
		typeStr := types.ExprString(typ)
		if ell, ok := typ.(*ast.Ellipsis); ok {
			variadic = true
			typeStr = "[]" + types.ExprString(ell.Elt)
		}

		if len(field.Names) == 0 {
			name := ""
			if prefix != "" {
				name = fmt.Sprintf("%s%d", prefix, len(params))
			}
			params = append(params, models.Param{Name: name, Type: typeStr})
			continue
		}
		for _, n := range field.Names {
			name := n.Name
			if name == "_" && prefix != "" {
				name = fmt.Sprintf("%s%d", prefix, len(params))
			}
			params = append(params, models.Param{Name: name, Type: typeStr})
		}
	}
	return params, variadic
}

// qualifiers lists the package selectors a signature refers to
func qualifiers(fn *ast.FuncType) []string {
	seen := make(map[string]bool)
	var out []string
	ast.Inspect(fn, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}
		return false
	})
	sort.Strings(out)
	return out
}

func (p *Parser) location(pos token.Pos) errors.SourceLocation {
	return errors.LocationFromPosition(p.fileSet.Position(pos))
}
