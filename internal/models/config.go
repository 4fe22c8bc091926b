package models

import (
	"strings"

	"github.com/toyz/thinobj/internal/errors"
)

// Visibility of a generated type
type Visibility int

const (
	VisibilityInherited Visibility = iota // same as the interface
	VisibilityPublic                      // exported identifier
	VisibilityPrivate                     // unexported identifier
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "pub"
	case VisibilityPrivate:
		return "priv"
	default:
		return "inherited"
	}
}

// Attribute is a decoration attached to a generated type, written @name(args)
type Attribute struct {
	Name string
	Args []string
	Pos  errors.SourceLocation
}

// String renders the attribute the way it was written
func (a Attribute) String() string {
	if len(a.Args) == 0 {
		return "@" + a.Name
	}
	return "@" + a.Name + "(" + strings.Join(a.Args, ", ") + ")"
}

// NameSpec customizes a generated type: decorations, visibility and name
type NameSpec struct {
	Attrs      []Attribute
	Visibility Visibility
	Name       string // empty keeps the default name
	Pos        errors.SourceLocation
}

// Customized reports whether a name was given
func (n NameSpec) Customized() bool {
	return n.Name != ""
}

// InheritanceConfig is the resolved inheritance(...) option
type InheritanceConfig struct {
	Extends            string // super interface path, e.g. Greeter or pkg.Greeter
	PossibleSuperTrait bool
	Pos                errors.SourceLocation
}

// Config is the resolved configuration of one annotated interface
type Config struct {
	Vtable       NameSpec
	TraitObject  NameSpec
	InlineVtable bool
	DropABI      string
	// MarkerTraits replaces the default marker table when non-nil
	MarkerTraits []MarkerTrait
	StoreLayout  bool
	Inheritance  *InheritanceConfig
	Pos          errors.SourceLocation
}

// HasMarkerOverride reports whether marker_traits(...) was given
func (c Config) HasMarkerOverride() bool {
	return c.MarkerTraits != nil
}

// ApplyVisibility adjusts the case of the first letter of name
func ApplyVisibility(name string, vis Visibility, inheritExported bool) string {
	if name == "" {
		return name
	}
	exported := inheritExported
	switch vis {
	case VisibilityPublic:
		exported = true
	case VisibilityPrivate:
		exported = false
	}
	if exported {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return strings.ToLower(name[:1]) + name[1:]
}
