package templates

// SlotData describes one method slot of a dispatch table
type SlotData struct {
	Name       string
	Doc        []string
	Type       string // func(self unsafe.Pointer, ...) ...
	Tag        string
	Params     string // declaration list after the receiver
	Call       string // call list after the receiver
	Results    string
	HasResults bool
	Receiver   string // ref or mut
	Lifetimes  []string
	Unsafe     bool
	ABI        string
}

// VtableData feeds the "vtable" template
type VtableData struct {
	Name        string
	Interface   string
	Attrs       []string
	Super       string // super table type, empty for a root table
	StoreLayout bool
	Slots       []SlotData
	DropTag     string
	SchemaID    string
}

// Root reports whether the table owns the destructor slot
func (d VtableData) Root() bool {
	return d.Super == ""
}

// HasSlot reports whether a method slot is named name
func (d VtableData) HasSlot(name string) bool {
	for _, s := range d.Slots {
		if s.Name == name {
			return true
		}
	}
	return false
}

// ReprData feeds the "repr" and "thunks" templates
type ReprData struct {
	Name        string // thinRepr<I>
	Interface   string
	Vtable      string
	Tables      string // package-level table cache
	Inline      bool
	StoreLayout bool
	Slots       []SlotData

	// Thunk routing builds the table through the exported builder
	Thunk       bool
	Builder     string // New<I>Vtable
	ThunkPrefix string // thin<I>Thunk

	SuperVtable  string // qualified super table type
	SuperBuilder string // qualified New<S>Vtable
}

// Root reports whether the table owns the destructor slot
func (d ReprData) Root() bool {
	return d.SuperVtable == ""
}

// ForwardData is one method forwarded by a handle or an adapter
type ForwardData struct {
	Name       string
	Doc        []string
	Params     string
	Results    string
	HasResults bool
	Call       string // full call expression
	Unsafe     bool
}

// MarkerData is one marker method
type MarkerData struct {
	Method string
	Path   string
	Unsafe bool
}

// HandleData feeds the "handle" template
type HandleData struct {
	Name        string
	Interface   string
	Vtable      string
	Repr        string
	Constructor string
	FromRaw     string
	Attrs       []string
	Lifetime    bool
	Inline      bool
	DataPtr     bool // emit DataPtr for capability interfaces
	Methods     []ForwardData
	Assert      bool // the handle provably satisfies the interface
}

// MarkersData feeds the "markers" template
type MarkersData struct {
	Handle        string
	Markers       []MarkerData
	UnsafeMarkers string // name of the unsafe marker list, empty when none
}

// HasUnsafe reports whether any marker is unsafe
func (d MarkersData) HasUnsafe() bool {
	for _, m := range d.Markers {
		if m.Unsafe {
			return true
		}
	}
	return false
}

// CapabilityData feeds the "capability" template
type CapabilityData struct {
	Interface    string
	Handle       string
	Vtable       string
	Capability   string // ThinImplements<I>
	VtableMethod string // Vtable<I>
	Adapter      string // Thin<I>Adapter
	Funcs        []BlanketFuncData
	// Adapter methods: own methods, super methods and markers
	AdapterMethods []ForwardData
	Markers        []MarkerData
	SuperAccess    *SuperAccessData
}

// BlanketFuncData is one generic forwarding function over a capability
type BlanketFuncData struct {
	Name       string
	Method     string
	Params     string
	Results    string
	HasResults bool
	SlotCall   string
	Unsafe     bool
}

// SuperAccessData lets an adapter provide the super capability
type SuperAccessData struct {
	Capability   string
	VtableMethod string
	Vtable       string
	Accessor     string // Thin<I>Super
}

// ExtensionData feeds the "extension" template
type ExtensionData struct {
	Handle        string
	Interface     string
	Super         string // qualified super interface
	SuperVtable   string
	SuperHandle   string
	SuperFromRaw  string
	VtableMethod  string // Vtable<S>
	AsSuper       string // AsBoxed<S>
	IntoSuper     string // IntoBoxed<S>
	SuperMethods  []ForwardData
	// Blanket targets get a generic accessor to the embedded super table
	Blanket      bool
	Capability   string
	SelfAccessor string // Vtable<I>
	SuperOf      string // Thin<I>Super
}
