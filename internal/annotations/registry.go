package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// SchemaRegistry defines the interface for managing directive schemas
type SchemaRegistry interface {
	// Register a new directive kind with its schema
	Register(kind DirectiveKind, schema DirectiveSchema) error

	// GetSchema retrieves the schema for a directive kind
	GetSchema(kind DirectiveKind) (DirectiveSchema, error)

	// ListKinds returns all registered directive kinds
	ListKinds() []DirectiveKind
}

// registry is the concrete implementation of SchemaRegistry
type registry struct {
	mu      sync.RWMutex
	schemas map[DirectiveKind]DirectiveSchema
}

// NewRegistry creates an empty schema registry
func NewRegistry() SchemaRegistry {
	return &registry{
		schemas: make(map[DirectiveKind]DirectiveSchema),
	}
}

var (
	defaultRegistry     SchemaRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the global registry holding the built-in schemas
func DefaultRegistry() SchemaRegistry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		for _, s := range []DirectiveSchema{ObjectDirectiveSchema, MethodDirectiveSchema} {
			if err := r.Register(s.Kind, s); err != nil {
				panic(err)
			}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register adds a directive kind with its schema to the registry
func (r *registry) Register(kind DirectiveKind, schema DirectiveSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if schema.Kind != kind {
		return fmt.Errorf("schema kind %s does not match directive kind %s", schema.Kind, kind)
	}
	if _, exists := r.schemas[kind]; exists {
		return fmt.Errorf("directive kind %s is already registered", kind)
	}
	if err := validateOptions(schema.Options); err != nil {
		return fmt.Errorf("invalid schema for %s: %w", kind, err)
	}

	r.schemas[kind] = schema
	return nil
}

// GetSchema retrieves the schema for a directive kind
func (r *registry) GetSchema(kind DirectiveKind) (DirectiveSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[kind]
	if !exists {
		return DirectiveSchema{}, fmt.Errorf("directive kind %s is not registered", kind)
	}
	return schema, nil
}

// ListKinds returns all registered directive kinds
func (r *registry) ListKinds() []DirectiveKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]DirectiveKind, 0, len(r.schemas))
	for k := range r.schemas {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// validateOptions performs basic validation on schema options
func validateOptions(options map[string]OptionSchema) error {
	for name, spec := range options {
		if name == "" {
			return fmt.Errorf("option name cannot be empty")
		}
		if spec.Type < FlagOption || spec.Type > RejectedOption {
			return fmt.Errorf("invalid option type for %s: %d", name, spec.Type)
		}
		if spec.Type == IdentOption && len(spec.Allowed) == 0 {
			return fmt.Errorf("identifier option %s must list its allowed values", name)
		}
		if spec.Type == NestedOption {
			if len(spec.Nested) == 0 {
				return fmt.Errorf("nested option %s has no members", name)
			}
			if err := validateOptions(spec.Nested); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]OptionSchema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
