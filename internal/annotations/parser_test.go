package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/thinobj/internal/errors"
)

var testLoc = errors.SourceLocation{File: "greeter.go", Line: 12, Column: 1}

func TestParseDirectiveForms(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		kind    DirectiveKind
		options []string
	}{
		{"bare object", "//thin::object", ObjectDirective, nil},
		{"empty parens", "//thin::object()", ObjectDirective, nil},
		{"parenthesized", "//thin::object(inline_vtable = true, store_layout = false)", ObjectDirective, []string{"inline_vtable", "store_layout"}},
		{"unparenthesized", "//thin::object inline_vtable = true, drop_abi = \"C\"", ObjectDirective, []string{"inline_vtable", "drop_abi"}},
		{"trailing comma", "//thin::object(store_layout = true,)", ObjectDirective, []string{"store_layout"}},
		{"leading space", "  //thin::method(unsafe)", MethodDirective, []string{"unsafe"}},
		{"method list", "//thin::method(receiver = mut, lifetimes(a, b), abi = \"C\")", MethodDirective, []string{"receiver", "lifetimes", "abi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDirective(tt.comment, testLoc)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.DirectiveKind())

			var names []string
			for _, w := range d.Options {
				names = append(names, w.Name())
			}
			assert.Equal(t, tt.options, names)
		})
	}
}

func TestParseNestedStructure(t *testing.T) {
	d, err := ParseDirective(`//thin::object(vtable(@derive(Debug, Hash) pub GreeterTable), marker_traits(unsafe Send, thin.Unpin), inheritance(extends(shapes.Shape), possible_super_trait = true))`, testLoc)
	require.NoError(t, err)
	require.Len(t, d.Options, 3)

	vtable := d.Options[0]
	require.NotNil(t, vtable.Args())
	arg := vtable.Args().Args[0]
	require.Len(t, arg.Attrs(), 1)
	assert.Equal(t, "derive", arg.Attrs()[0].Name)
	assert.Equal(t, []string{"Debug", "Hash"}, arg.Attrs()[0].ArgStrings())
	words := arg.Words()
	require.Len(t, words, 2)
	assert.Equal(t, "pub", words[0].Name())
	assert.Equal(t, "GreeterTable", words[1].Name())

	markers := d.Options[1].Args().Args
	require.Len(t, markers, 2)
	assert.Equal(t, "unsafe", markers[0].Words()[0].Name())
	assert.Equal(t, "Send", markers[0].Words()[1].Name())
	assert.Equal(t, "thin.Unpin", markers[1].Words()[0].Name())

	inheritance := d.Options[2].Args().Args
	extends := inheritance[0].Words()[0]
	assert.Equal(t, "extends", extends.Name())
	assert.Equal(t, "shapes.Shape", extends.Args().Args[0].Words()[0].Name())
	possible := inheritance[1].Words()[0]
	b, ok := possible.Value().Bool()
	assert.True(t, ok)
	assert.True(t, b)
}

func TestParseFullImportPath(t *testing.T) {
	d, err := ParseDirective(`//thin::object(marker_traits(github.com/toyz/thinobj/pkg/thin.Send))`, testLoc)
	require.NoError(t, err)
	assert.Equal(t, "github.com/toyz/thinobj/pkg/thin.Send", d.Options[0].Args().Args[0].Words()[0].Name())
}

func TestParseStringValue(t *testing.T) {
	d, err := ParseDirective(`//thin::object(drop_abi = "system")`, testLoc)
	require.NoError(t, err)
	assert.Equal(t, "system", d.Options[0].Value().Text())
}

func TestParseWhereClauseTokens(t *testing.T) {
	d, err := ParseDirective(`//thin::method(where(T: Clone + Send))`, testLoc)
	require.NoError(t, err)
	assert.Equal(t, "where", d.Options[0].Name())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"not a comment", "thin::object"},
		{"unknown kind", "//thin::struct"},
		{"unbalanced", "//thin::object(inline_vtable = true"},
		{"missing value", "//thin::object(inline_vtable = )"},
		{"wrong prefix", "//thing::object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirective(tt.comment, testLoc)
			require.Error(t, err)
			assert.Equal(t, errors.SyntaxErrorCode, errors.CodeOf(err))
			assert.Equal(t, "greeter.go", errors.LocationOf(err).File)
		})
	}
}

func TestHasKind(t *testing.T) {
	assert.True(t, HasKind("//thin::object", ObjectDirective))
	assert.True(t, HasKind("//thin::object(inline_vtable = true)", ObjectDirective))
	assert.True(t, HasKind("//thin::object inline_vtable = true", ObjectDirective))
	assert.False(t, HasKind("//thin::objects", ObjectDirective))
	assert.False(t, HasKind("//thin::method", ObjectDirective))
	assert.True(t, IsDirective(" //thin::method"))
	assert.False(t, IsDirective("// thin::method"))
}
