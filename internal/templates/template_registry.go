package templates

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
		parsed:    make(map[string]*template.Template),
	}

	registry.registerVtableTemplates()
	registry.registerReprTemplates()
	registry.registerHandleTemplates()
	registry.registerInheritanceTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	text, exists := tr.templates[name]
	return text, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	text, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return text
}

// Names lists the registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// Render executes the named template with data
func (tr *TemplateRegistry) Render(name string, data interface{}) (string, error) {
	tmpl, err := tr.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (tr *TemplateRegistry) lookup(name string) (*template.Template, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tmpl, ok := tr.parsed[name]; ok {
		return tmpl, nil
	}
	text, ok := tr.templates[name]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}
	tmpl, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	tr.parsed[name] = tmpl
	return tmpl, nil
}

var funcMap = template.FuncMap{
	"join":    strings.Join,
	"sig":     signature,
	"prepend": prepend,
	"self": func(params string) string {
		return prepend("self unsafe.Pointer", params)
	},
}

// prepend puts head in front of a parameter list
func prepend(head, params string) string {
	if params == "" {
		return head
	}
	return head + ", " + params
}

// signature renders "(params) results" for a method or function literal
func signature(params, results string) string {
	if results == "" {
		return "(" + params + ")"
	}
	return "(" + params + ") " + results
}

// registerVtableTemplates registers the dispatch table templates
func (tr *TemplateRegistry) registerVtableTemplates() {
	tr.templates["vtable"] = `// {{.Name}} is the dispatch table of {{.Interface}}. Its field order is part
// of the binary layout and never changes between generator runs.
{{- range .Attrs}}
// {{.}}
{{- end}}
type {{.Name}} struct {
{{- if .Super}}
	// Super is the table of the extended interface. It comes first so a
	// pointer to this table is also a pointer to its Super.
	Super {{.Super}}
{{- end}}
{{- if .StoreLayout}}
	// Size and Align describe the concrete value.
	Size  uintptr
	Align uintptr
{{- end}}
{{- range .Slots}}
{{- range .Doc}}
	{{.}}
{{- end}}
{{- if eq .Receiver "mut"}}
	// {{.Name}} takes its receiver exclusively.
{{- end}}
{{- if .Lifetimes}}
	// Lifetimes: {{join .Lifetimes ", "}}
{{- end}}
	{{.Name}} {{.Type}}{{if .Tag}} {{.Tag}}{{end}}
{{- end}}
{{- if .Root}}
	// Drop releases the allocation and tears down the value.
	Drop func(self unsafe.Pointer){{if .DropTag}} {{.DropTag}}{{end}}
{{- end}}
}

// {{.Name}}SchemaID fingerprints the layout of {{.Name}}.
const {{.Name}}SchemaID = "{{.SchemaID}}"

// InvokeDrop runs the destructor of the root table.
func (v *{{.Name}}) InvokeDrop(self unsafe.Pointer) {
{{- if .Root}}
	v.Drop(self)
{{- else}}
	v.Super.InvokeDrop(self)
{{- end}}
}
{{- if not (.HasSlot "Equal")}}

// Equal reports whether both tables dispatch to the same functions.
func (v *{{.Name}}) Equal(o *{{.Name}}) bool {
	if v == nil || o == nil {
		return v == o
	}
{{- if .Super}}
	if !v.Super.Equal(&o.Super) {
		return false
	}
{{- end}}
{{- if .StoreLayout}}
	if v.Size != o.Size || v.Align != o.Align {
		return false
	}
{{- end}}
	return true{{range .Slots}} &&
		thin.SameFunc(v.{{.Name}}, o.{{.Name}}){{end}}{{if .Root}} &&
		thin.SameFunc(v.Drop, o.Drop){{end}}
}
{{- end}}
{{- if not (.HasSlot "Hash")}}

// Hash digests the function identities of the table.
func (v *{{.Name}}) Hash() uint64 {
	h := thin.NewHasher()
{{- if .Super}}
	h.Uint64(v.Super.Hash())
{{- end}}
{{- if .StoreLayout}}
	h.Uintptr(v.Size).Uintptr(v.Align)
{{- end}}
{{- range .Slots}}
	h.Func(v.{{.Name}})
{{- end}}
{{- if .Root}}
	h.Func(v.Drop)
{{- end}}
	return h.Sum()
}
{{- end}}
{{- if not (.HasSlot "String")}}

func (v *{{.Name}}) String() string {
	return thin.FormatTable("{{.Name}}",
{{- if .Super}}
		thin.Field{Name: "Super", Value: v.Super.String()},
{{- end}}
{{- if .StoreLayout}}
		thin.Field{Name: "Size", Value: v.Size},
		thin.Field{Name: "Align", Value: v.Align},
{{- end}}
{{- range .Slots}}
		thin.Field{Name: "{{.Name}}", Value: v.{{.Name}}},
{{- end}}
{{- if .Root}}
		thin.Field{Name: "Drop", Value: v.Drop},
{{- end}}
	)
}
{{- end}}
`
}

// registerReprTemplates registers the representation templates
func (tr *TemplateRegistry) registerReprTemplates() {
	tr.templates["repr"] = `// {{.Name}} pairs a {{.Interface}} implementation with its table. The table
// comes first so a handle reads it without knowing ThinT.
type {{.Name}}[ThinT {{.Interface}}] struct {
	vtable {{if not .Inline}}*{{end}}{{.Vtable}}
	value  ThinT
}

var {{.Tables}} thin.Tables[{{.Vtable}}]

func {{.Name}}Vtable[ThinT {{.Interface}}]() *{{.Vtable}} {
	return thin.TableFor[ThinT](&{{.Tables}}, func() {{.Vtable}} {
{{- if .Thunk}}
		return {{.Builder}}[ThinT]({{.Name}}Locate[ThinT], {{.Name}}Drop[ThinT])
{{- else}}
		return {{.Vtable}}{
{{- if not .Root}}
			Super: {{.SuperBuilder}}[ThinT]({{.Name}}Locate[ThinT], {{.Name}}Drop[ThinT]),
{{- end}}
{{- if .StoreLayout}}
			Size:  thin.SizeOf[ThinT](),
			Align: thin.AlignOf[ThinT](),
{{- end}}
{{- range .Slots}}
			{{.Name}}: func{{sig (self .Params) .Results}} {
				{{if .HasResults}}return {{end}}(*{{$.Name}}[ThinT])(self).value.{{.Name}}({{.Call}})
			},
{{- end}}
{{- if .Root}}
			Drop: {{.Name}}Drop[ThinT],
{{- end}}
		}
{{- end}}
	})
}

func {{.Name}}Create[ThinT {{.Interface}}](value ThinT) unsafe.Pointer {
	return thin.Box({{.Name}}[ThinT]{vtable: {{if .Inline}}*{{end}}{{.Name}}Vtable[ThinT](), value: value})
}

func {{.Name}}Drop[ThinT {{.Interface}}](self unsafe.Pointer) {
	repr := thin.Unbox[{{.Name}}[ThinT]](self)
	thin.DropValue(&repr.value)
}

func {{.Name}}Locate[ThinT {{.Interface}}](self unsafe.Pointer) *ThinT {
	return &(*{{.Name}}[ThinT])(self).value
}
`

	tr.templates["thunks"] = `
{{- range .Slots}}
func {{$.ThunkPrefix}}{{.Name}}[ThinT {{$.Interface}}](locate func(unsafe.Pointer) *ThinT) {{.Type}} {
	return func{{sig (self .Params) .Results}} {
		{{if .HasResults}}return {{end}}(*locate(self)).{{.Name}}({{.Call}})
	}
}
{{end}}
// {{.Builder}} builds a {{.Vtable}} for ThinT. locate maps the erased self
// pointer to the value and drop releases the allocation. Tables of
// interfaces extending {{.Interface}} embed the result.
func {{.Builder}}[ThinT {{.Interface}}](locate func(unsafe.Pointer) *ThinT, drop func(unsafe.Pointer)) {{.Vtable}} {
	return {{.Vtable}}{
{{- if not .Root}}
		Super: {{.SuperBuilder}}[ThinT](locate, drop),
{{- end}}
{{- if .StoreLayout}}
		Size:  thin.SizeOf[ThinT](),
		Align: thin.AlignOf[ThinT](),
{{- end}}
{{- range .Slots}}
		{{.Name}}: {{$.ThunkPrefix}}{{.Name}}[ThinT](locate),
{{- end}}
{{- if .Root}}
		Drop: drop,
{{- end}}
	}
}
`
}

// registerHandleTemplates registers the boxed handle templates
func (tr *TemplateRegistry) registerHandleTemplates() {
	tr.templates["handle"] = `// {{.Name}} owns a boxed {{.Interface}} through a single pointer. It must not be
// copied; move ownership with IntoRaw and {{.FromRaw}}.
{{- range .Attrs}}
// {{.}}
{{- end}}
type {{.Name}} struct {
	_ thin.NoCopy
{{- if .Lifetime}}
	_ thin.Lifetime
{{- end}}
	ptr unsafe.Pointer
}

// {{.Constructor}} boxes value and returns the handle owning it.
func {{.Constructor}}[ThinT {{.Interface}}](value ThinT) {{.Name}} {
	return {{.Name}}{ptr: {{.Repr}}Create(value)}
}

// {{.FromRaw}} takes ownership of ptr, which must come from IntoRaw and
// must not be owned by any other handle.
func {{.FromRaw}}(ptr unsafe.Pointer) {{.Name}} {
	if ptr == nil {
		panic("{{.FromRaw}}: nil pointer")
	}
	return {{.Name}}{ptr: ptr}
}

// AsRaw returns the erased pointer without giving up ownership.
func (b *{{.Name}}) AsRaw() unsafe.Pointer {
	return b.ptr
}

// IntoRaw gives up ownership and returns the erased pointer.
func (b *{{.Name}}) IntoRaw() unsafe.Pointer {
	ptr := b.ptr
	b.ptr = nil
	return ptr
}

// Vtable returns the dispatch table of the boxed value.
func (b *{{.Name}}) Vtable() *{{.Vtable}} {
{{- if .Inline}}
	return (*{{.Vtable}})(b.ptr)
{{- else}}
	return *(**{{.Vtable}})(b.ptr)
{{- end}}
}
{{- if .DataPtr}}

// DataPtr returns the pointer the table slots expect.
func (b *{{.Name}}) DataPtr() unsafe.Pointer {
	return b.ptr
}
{{- end}}
{{- range .Methods}}
{{range .Doc}}
{{.}}
{{- end}}
func (b *{{$.Name}}) {{.Name}}{{sig .Params .Results}} {
	{{if .HasResults}}return {{end}}{{.Call}}
}
{{- end}}

// Drop tears down the boxed value. Only the first call has an effect.
func (b *{{.Name}}) Drop() {
	if b.ptr == nil {
		return
	}
	vt := b.Vtable()
	ptr := b.ptr
	b.ptr = nil
	vt.InvokeDrop(ptr)
}
{{- if .Assert}}

var _ {{.Interface}} = (*{{.Name}})(nil)
{{- end}}
`

	tr.templates["markers"] = `
{{- range .Markers}}
// {{.Method}} marks {{$.Handle}} as {{.Path}}.
{{- if .Unsafe}}
//
// Unsafe marker: implementations vouch for it.
{{- end}}
func (b *{{$.Handle}}) {{.Method}}() {}
{{end}}
{{- if .UnsafeMarkers}}
// {{.UnsafeMarkers}} lists the markers implementations of the boxed
// interface vouch for.
var {{.UnsafeMarkers}} = []string{
{{- range .Markers}}{{if .Unsafe}}
	"{{.Path}}",
{{- end}}{{end}}
}
{{- end}}
`
}

// registerInheritanceTemplates registers the capability and extension templates
func (tr *TemplateRegistry) registerInheritanceTemplates() {
	tr.templates["capability"] = `// {{.Capability}} is implemented by anything that hands out a
// {{.Vtable}} and the pointer its slots expect.
type {{.Capability}} interface {
	DataPtr() unsafe.Pointer
	{{.VtableMethod}}() *{{.Vtable}}
}

// {{.VtableMethod}} returns the dispatch table of the boxed value.
func (b *{{.Handle}}) {{.VtableMethod}}() *{{.Vtable}} {
	return b.Vtable()
}
{{range .Funcs}}
// {{.Name}} calls {{.Method}} through the table of t.
func {{.Name}}[ThinT {{$.Capability}}]{{sig (prepend "t ThinT" .Params) .Results}} {
	{{if .HasResults}}return {{end}}t.{{$.VtableMethod}}().{{.Method}}({{.SlotCall}})
}
{{end}}
// {{.Adapter}} makes any {{.Capability}} usable as a {{.Interface}}.
type {{.Adapter}}[ThinT {{.Capability}}] struct {
	Impl ThinT
}
{{- if .SuperAccess}}

// DataPtr returns the pointer of the wrapped implementation.
func (a {{.Adapter}}[ThinT]) DataPtr() unsafe.Pointer {
	return a.Impl.DataPtr()
}

// {{.SuperAccess.VtableMethod}} returns the table embedded in the wrapped table.
func (a {{.Adapter}}[ThinT]) {{.SuperAccess.VtableMethod}}() *{{.SuperAccess.Vtable}} {
	return {{.SuperAccess.Accessor}}(a.Impl)
}
{{- end}}
{{- range .AdapterMethods}}

func (a {{$.Adapter}}[ThinT]) {{.Name}}{{sig .Params .Results}} {
	{{if .HasResults}}return {{end}}{{.Call}}
}
{{- end}}
{{- range .Markers}}

func (a {{$.Adapter}}[ThinT]) {{.Method}}() {}
{{- end}}

var _ {{.Capability}} = (*{{.Handle}})(nil)
`

	tr.templates["extension"] = `// {{.VtableMethod}} returns the {{.Super}} table at the start of the table.
func (b *{{.Handle}}) {{.VtableMethod}}() *{{.SuperVtable}} {
	return &b.Vtable().Super
}
{{- range .SuperMethods}}
{{range .Doc}}
{{.}}
{{- end}}
func (b *{{$.Handle}}) {{.Name}}{{sig .Params .Results}} {
	{{if .HasResults}}return {{end}}{{.Call}}
}
{{- end}}

// {{.AsSuper}} views the handle as a {{.SuperHandle}} without giving up
// ownership.
func (b *{{.Handle}}) {{.AsSuper}}() *{{.SuperHandle}} {
	return (*{{.SuperHandle}})(unsafe.Pointer(b))
}

// {{.IntoSuper}} moves ownership into a {{.SuperHandle}}.
func (b *{{.Handle}}) {{.IntoSuper}}() {{.SuperHandle}} {
	return {{.SuperFromRaw}}(b.IntoRaw())
}
{{- if .Blanket}}

// {{.SuperOf}} returns the {{.Super}} table embedded in the table of t.
func {{.SuperOf}}[ThinT {{.Capability}}](t ThinT) *{{.SuperVtable}} {
	return &t.{{.SelfAccessor}}().Super
}
{{- end}}
`
}

// DefaultTemplateRegistry is the shared template registry
var DefaultTemplateRegistry = NewTemplateRegistry()

// Render executes a template of the default registry
func Render(name string, data interface{}) (string, error) {
	return DefaultTemplateRegistry.Render(name, data)
}
