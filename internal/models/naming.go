package models

import (
	"unicode"
	"unicode/utf8"
)

// Names are the identifiers generated for one interface
type Names struct {
	Interface string
	Exported  bool

	Vtable      string
	Handle      string
	Repr        string
	Tables      string
	ThunkPrefix string
	Builder     string
	Constructor string
	FromRaw     string

	// capability side, used by extensible interfaces and their extensions
	Capability    string
	VtableMethod  string
	Adapter       string
	BlanketPrefix string
	SuperOf       string
}

// Blanket returns the generic forwarding function of method
func (n Names) Blanket(method string) string {
	return n.BlanketPrefix + method
}

// DeriveNames computes the generated identifiers of iface under cfg
func DeriveNames(iface string, cfg Config) Names {
	exported := IsExported(iface)
	base := Capitalize(iface)

	vtable := iface + "Vtable"
	if cfg.Vtable.Customized() {
		vtable = cfg.Vtable.Name
	}
	handle := "Boxed" + base
	if cfg.TraitObject.Customized() {
		handle = cfg.TraitObject.Name
	}
	vtable = ApplyVisibility(vtable, cfg.Vtable.Visibility, exported)
	handle = ApplyVisibility(handle, cfg.TraitObject.Visibility, exported)

	return Names{
		Interface:     iface,
		Exported:      exported,
		Vtable:        vtable,
		Handle:        handle,
		Repr:          "thinRepr" + base,
		Tables:        "thin" + base + "Tables",
		ThunkPrefix:   "thin" + base + "Thunk",
		Builder:       ApplyVisibility("New"+base+"Vtable", VisibilityInherited, exported),
		Constructor:   ApplyVisibility("New"+Capitalize(handle), VisibilityInherited, IsExported(handle)),
		FromRaw:       handle + "FromRaw",
		Capability:    ApplyVisibility(CapabilityName(base), VisibilityInherited, exported),
		VtableMethod:  CapabilityVtableMethod(base),
		Adapter:       ApplyVisibility("Thin"+base+"Adapter", VisibilityInherited, exported),
		BlanketPrefix: ApplyVisibility("Thin"+base, VisibilityInherited, exported),
		SuperOf:       ApplyVisibility("Thin"+base+"Super", VisibilityInherited, exported),
	}
}

// IsExported reports whether name starts with an upper case letter
func IsExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// Capitalize upper cases the first letter of s
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
