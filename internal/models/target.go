package models

// TargetMode decides which type the interface forwarding is emitted for.
// It is either SpecificHandle or BlanketCapability.
type TargetMode interface {
	// VtableAccessor is the handle method returning the dispatch table
	VtableAccessor() string
	// DataPtrAccessor is the handle method returning the erased value pointer
	DataPtrAccessor() string
	isTargetMode()
}

// SpecificHandle forwards through the concrete handle type
type SpecificHandle struct {
	HandleName string
}

func (SpecificHandle) VtableAccessor() string  { return "Vtable" }
func (SpecificHandle) DataPtrAccessor() string { return "AsRaw" }
func (SpecificHandle) isTargetMode()           {}

// BlanketCapability forwards through a capability interface any provider
// of a table and a data pointer can satisfy
type BlanketCapability struct {
	TraitName    string // e.g. ThinImplementsGreeter
	VtableMethod string // e.g. VtableGreeter
}

func (b BlanketCapability) VtableAccessor() string { return b.VtableMethod }
func (BlanketCapability) DataPtrAccessor() string  { return "DataPtr" }
func (BlanketCapability) isTargetMode()            {}

// CapabilityName returns the capability interface name for an interface
func CapabilityName(iface string) string {
	return "ThinImplements" + iface
}

// CapabilityVtableMethod returns the table accessor of the capability interface
func CapabilityVtableMethod(iface string) string {
	return "Vtable" + iface
}
