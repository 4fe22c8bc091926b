package models

import (
	"fmt"

	"github.com/toyz/thinobj/internal/errors"
)

// Warning is a non-fatal diagnostic raised while transforming an interface
type Warning struct {
	Loc     errors.SourceLocation
	Message string
}

func (w Warning) String() string {
	if w.Loc.IsEmpty() {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Loc, w.Message)
}

// Artifacts holds the generated declarations of one interface, in
// emission order
type Artifacts struct {
	Interface string
	Vtable    string
	Repr      string
	Handle    string
	Extension string
	Markers   string
	SchemaID  string
	Imports   []Import
	Warnings  []Warning
}

// Fragments returns the non-empty declarations in file order
func (a *Artifacts) Fragments() []string {
	var out []string
	for _, f := range []string{a.Vtable, a.Repr, a.Handle, a.Markers, a.Extension} {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// GeneratedFile is a companion file produced for one source file
type GeneratedFile struct {
	SourcePath string
	Path       string
	Package    string
	Content    []byte
	Interfaces []string
	Warnings   []Warning
}
