package models

// SuperRef describes the interface an extension builds on
type SuperRef struct {
	Path       string // as written in extends(...)
	Qualifier  string // package selector, empty for the same package
	Name       string // interface name
	ImportPath string // resolved import path for qualified supers

	// Resolved is set when the super interface's method set is known
	Resolved bool
	Methods  []MethodDescriptor
	Markers  []MarkerTrait
	// Imports needed by the method signatures
	Imports []Import
	// Annotated is set when the super carries a //thin::object directive;
	// InlineVtable and PossibleSuper are only meaningful then
	Annotated     bool
	InlineVtable  bool
	PossibleSuper bool
	// Static is set when the super embeds thin.Static
	Static        bool
	// Names of the super's generated identifiers, when resolved
	Names *Names
}

// Qualify prefixes a name declared next to the super interface
func (s *SuperRef) Qualify(name string) string {
	if s.Qualifier == "" {
		return name
	}
	return s.Qualifier + "." + name
}

// Local returns the super's generated names, unqualified. Unresolved
// supers are assumed to use the defaults.
func (s *SuperRef) Local() Names {
	if s.Names != nil {
		return *s.Names
	}
	return DeriveNames(s.Name, Config{})
}

// VtableName is the super's table type
func (s *SuperRef) VtableName() string {
	return s.Qualify(s.Local().Vtable)
}

// HandleName is the super's handle type
func (s *SuperRef) HandleName() string {
	return s.Qualify(s.Local().Handle)
}

// CapabilityName is the super's capability interface
func (s *SuperRef) CapabilityName() string {
	return s.Qualify(s.Local().Capability)
}

// VtableMethod is the super's capability table accessor
func (s *SuperRef) VtableMethod() string {
	return s.Local().VtableMethod
}

// BuilderName is the super's exported table builder
func (s *SuperRef) BuilderName() string {
	return s.Qualify(s.Local().Builder)
}

// FromRawName is the super handle's ownership constructor
func (s *SuperRef) FromRawName() string {
	return s.Qualify(s.Local().FromRaw)
}

// BlanketName is the super's generic forwarding function of method
func (s *SuperRef) BlanketName(method string) string {
	return s.Qualify(s.Local().Blanket(method))
}

// BuildContext is shared by every generation stage of one interface.
// Names and the method list are fixed after normalization; stages read
// methods through Methods, which hands out a copy.
type BuildContext struct {
	File      *SourceFile
	Interface *InterfaceDecl
	Config    Config

	InterfaceName string
	VtableName    string
	ReprName      string
	HandleName    string
	Exported      bool

	// Static is set when the interface, or its super, embeds thin.Static.
	// Only handles of other interfaces carry a Lifetime field.
	Static        bool
	NeedsLifetime bool
	Markers       []MarkerTrait
	Super         *SuperRef
	Target        TargetMode

	methods []MethodDescriptor
	frozen  bool
}

// SetMethods installs the normalized method list. It may be called once.
func (c *BuildContext) SetMethods(methods []MethodDescriptor) {
	if c.frozen {
		panic("models: method list of " + c.InterfaceName + " already fixed")
	}
	c.methods = append([]MethodDescriptor(nil), methods...)
	c.frozen = true
}

// Methods returns a copy of the normalized method list
func (c *BuildContext) Methods() []MethodDescriptor {
	out := make([]MethodDescriptor, len(c.methods))
	for i, m := range c.methods {
		out[i] = m.clone()
	}
	return out
}

// Extensible reports whether other interfaces may extend this one
func (c *BuildContext) Extensible() bool {
	return c.Config.Inheritance != nil && c.Config.Inheritance.PossibleSuperTrait
}

// Specific reports whether forwarding targets the concrete handle
func (c *BuildContext) Specific() bool {
	_, ok := c.Target.(SpecificHandle)
	return ok
}
