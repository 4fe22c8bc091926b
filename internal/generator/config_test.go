package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/thinobj/internal/models"
)

func resolveConfig(t *testing.T, directive string) models.Config {
	t.Helper()
	file := parseFile(t, "\n"+directive+"\ntype I interface {\n\tM()\n}\n")
	decl, ok := file.Lookup("I")
	require.True(t, ok)
	cfg, err := NewConfigResolver().Resolve(decl)
	require.NoError(t, err)
	return cfg
}

func TestResolveDefaults(t *testing.T) {
	cfg := resolveConfig(t, "//thin::object")
	assert.False(t, cfg.Vtable.Customized())
	assert.False(t, cfg.TraitObject.Customized())
	assert.False(t, cfg.InlineVtable)
	assert.False(t, cfg.StoreLayout)
	assert.Empty(t, cfg.DropABI)
	assert.False(t, cfg.HasMarkerOverride())
	assert.Nil(t, cfg.Inheritance)
}

func TestResolveOptions(t *testing.T) {
	cfg := resolveConfig(t, `//thin::object(vtable(@derive(Debug, Hash) priv Table), trait_object(pub Handle), inline_vtable = false, store_layout, drop_abi = "C", marker_traits(unsafe Send, thin.Unpin))`)

	assert.Equal(t, "Table", cfg.Vtable.Name)
	assert.Equal(t, models.VisibilityPrivate, cfg.Vtable.Visibility)
	require.Len(t, cfg.Vtable.Attrs, 1)
	assert.Equal(t, "derive", cfg.Vtable.Attrs[0].Name)
	assert.Equal(t, []string{"Debug", "Hash"}, cfg.Vtable.Attrs[0].Args)

	assert.Equal(t, "Handle", cfg.TraitObject.Name)
	assert.Equal(t, models.VisibilityPublic, cfg.TraitObject.Visibility)

	assert.False(t, cfg.InlineVtable)
	assert.True(t, cfg.StoreLayout)
	assert.Equal(t, "C", cfg.DropABI)
	assert.Equal(t, []models.MarkerTrait{
		{Path: "Send", Name: "Send", Unsafe: true},
		{Path: "thin.Unpin", Name: "Unpin"},
	}, cfg.MarkerTraits)
}

func TestResolveInheritance(t *testing.T) {
	cfg := resolveConfig(t, "//thin::object(inheritance(extends(geo.Shape), possible_super_trait))")
	require.NotNil(t, cfg.Inheritance)
	assert.Equal(t, "geo.Shape", cfg.Inheritance.Extends)
	assert.True(t, cfg.Inheritance.PossibleSuperTrait)
	assert.Equal(t, 12, cfg.Inheritance.Pos.Line)
}

func TestResolveEmptyMarkerOverride(t *testing.T) {
	cfg := resolveConfig(t, "//thin::object(marker_traits())")
	assert.True(t, cfg.HasMarkerOverride())
	assert.Empty(t, cfg.MarkerTraits)
}
