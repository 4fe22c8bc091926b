package models

import (
	"path"
	"strconv"

	"github.com/toyz/thinobj/internal/errors"
)

// ItemKind classifies an element of an interface body
type ItemKind int

const (
	ItemMethod       ItemKind = iota // a method signature
	ItemEmbedded                     // an embedded interface, plain or qualified
	ItemTypeSet                      // a type set element such as ~int or A | B
	ItemGenericEmbed                 // an embedded generic instantiation
	ItemCgo                          // an element from the C pseudo-package
	ItemUnknown
)

func (k ItemKind) String() string {
	switch k {
	case ItemMethod:
		return "method"
	case ItemEmbedded:
		return "embedded interface"
	case ItemTypeSet:
		return "type set element"
	case ItemGenericEmbed:
		return "generic instantiation"
	case ItemCgo:
		return "cgo element"
	default:
		return "unknown element"
	}
}

// RawItem is one element of an interface body as found in the source
type RawItem struct {
	Kind      ItemKind
	Name      string // method name or embedded type name
	Qualifier string // package qualifier of an embedded type
	Text      string // the element rendered as source
	Pos       errors.SourceLocation
	Doc       []string

	// Method signature, receiver excluded
	Params   []Param
	Results  []Param
	Variadic bool
	// Package qualifiers referenced by the signature
	Qualifiers []string

	// //thin::method directive, if any
	Directive    string
	DirectivePos errors.SourceLocation
}

// Path renders an embedded element as a selector path
func (r RawItem) Path() string {
	if r.Qualifier == "" {
		return r.Name
	}
	return r.Qualifier + "." + r.Name
}

// InterfaceDecl is an interface type declaration
type InterfaceDecl struct {
	Name         string
	Exported     bool
	Pos          errors.SourceLocation
	Doc          []string
	TypeParams   []string
	Items        []RawItem
	Directive    string // //thin::object directive, empty when not annotated
	DirectivePos errors.SourceLocation
}

// Annotated reports whether the interface carries a //thin::object directive
func (d *InterfaceDecl) Annotated() bool {
	return d.Directive != ""
}

// Import is one import of a source file
type Import struct {
	Name string // explicit alias, empty when none
	Path string
}

// LocalName returns the identifier the import is referenced by
func (i Import) LocalName() string {
	if i.Name != "" {
		return i.Name
	}
	return path.Base(i.Path)
}

// Spec renders the import for an import block
func (i Import) Spec() string {
	if i.Name != "" && i.Name != path.Base(i.Path) {
		return i.Name + " " + strconv.Quote(i.Path)
	}
	return strconv.Quote(i.Path)
}

// SourceFile is a parsed Go file with its interface declarations
type SourceFile struct {
	Path       string
	Package    string
	ImportPath string // import path of the package, when known
	Imports    []Import
	Interfaces []*InterfaceDecl
}

// ResolveQualifier maps a package qualifier to its import
func (f *SourceFile) ResolveQualifier(qualifier string) (Import, bool) {
	for _, imp := range f.Imports {
		if imp.LocalName() == qualifier {
			return imp, true
		}
	}
	return Import{}, false
}

// Annotated returns the interfaces carrying a //thin::object directive
func (f *SourceFile) Annotated() []*InterfaceDecl {
	var out []*InterfaceDecl
	for _, d := range f.Interfaces {
		if d.Annotated() {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds an interface declared in the file
func (f *SourceFile) Lookup(name string) (*InterfaceDecl, bool) {
	for _, d := range f.Interfaces {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
