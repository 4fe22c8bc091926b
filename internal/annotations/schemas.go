package annotations

// Built-in directive schemas

// OptionSchema describes one option of a directive
type OptionSchema struct {
	Type        OptionType
	Description string
	Allowed     []string                // IdentOption values
	MinArgs     int                     // list options
	MaxArgs     int                     // list options, 0 means unbounded
	Nested      map[string]OptionSchema // NestedOption members
}

// DirectiveSchema describes every option a directive kind accepts
type DirectiveSchema struct {
	Kind        DirectiveKind
	Description string
	Options     map[string]OptionSchema
	Examples    []string
}

// ObjectDirectiveSchema defines the schema for //thin::object directives
var ObjectDirectiveSchema = DirectiveSchema{
	Kind:        ObjectDirective,
	Description: "Generates a dispatch table, a boxed representation and a pointer-sized handle for an interface",
	Options: map[string]OptionSchema{
		"vtable": {
			Type:        NameSpecOption,
			Description: "Decorations, visibility and name of the dispatch table type",
		},
		"trait_object": {
			Type:        NameSpecOption,
			Description: "Decorations, visibility and name of the handle type",
		},
		"inline_vtable": {
			Type:        BoolOption,
			Description: "Store the table by value inside every allocation instead of by pointer",
		},
		"drop_abi": {
			Type:        StringOption,
			Description: "Calling convention recorded on the destructor slot",
		},
		"marker_traits": {
			Type:        MarkerListOption,
			Description: "Replaces the default marker table; prefix unsafe markers with unsafe",
		},
		"store_layout": {
			Type:        BoolOption,
			Description: "Record size and alignment of the concrete value in the table",
		},
		"inheritance": {
			Type:        NestedOption,
			Description: "Single-level interface extension (experimental)",
			Nested: map[string]OptionSchema{
				"extends": {
					Type:        IdentListOption,
					MinArgs:     1,
					MaxArgs:     1,
					Description: "The interface this one extends",
				},
				"possible_super_trait": {
					Type:        BoolOption,
					Description: "Allow other interfaces to extend this one",
				},
			},
		},
	},
	Examples: []string{
		"//thin::object",
		"//thin::object(inline_vtable = true)",
		"//thin::object(vtable(@derive(Debug) pub GreeterTable), store_layout = true)",
		"//thin::object(marker_traits(unsafe Send, Unpin), drop_abi = \"C\")",
		"//thin::object(inheritance(possible_super_trait = true))",
		"//thin::object(inheritance(extends(Shape)))",
	},
}

// MethodDirectiveSchema defines the schema for //thin::method directives
var MethodDirectiveSchema = DirectiveSchema{
	Kind:        MethodDirective,
	Description: "Adjusts how one interface method is dispatched",
	Options: map[string]OptionSchema{
		"unsafe": {
			Type:        FlagOption,
			Description: "The method has preconditions the caller must uphold",
		},
		"abi": {
			Type:        StringOption,
			Description: "Calling convention recorded on the method's table slot",
		},
		"receiver": {
			Type:        IdentOption,
			Allowed:     []string{"ref", "mut", "value", "none"},
			Description: "How the method takes its receiver; only ref and mut can be dispatched",
		},
		"async": {
			Type:        FlagOption,
			Description: "The method is asynchronous; not supported",
		},
		"lifetimes": {
			Type:        IdentListOption,
			Description: "Lifetime quantifiers carried through to the table slot",
		},
		"where": {
			Type:        RejectedOption,
			Description: "Constraints on the method; not object-safe",
		},
		"generic": {
			Type:        RejectedOption,
			Description: "Type parameters of the method; not object-safe",
		},
		"const": {
			Type:        RejectedOption,
			Description: "Constant parameters of the method; not object-safe",
		},
	},
	Examples: []string{
		"//thin::method(unsafe)",
		"//thin::method(abi = \"C\")",
		"//thin::method(receiver = mut, lifetimes(a))",
	},
}

// KnownOptions lists the option names of a schema
func (s DirectiveSchema) KnownOptions() []string {
	return sortedKeys(s.Options)
}
