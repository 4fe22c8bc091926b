package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/thinobj/internal/models"
)

func normalize(t *testing.T, body, name string) ([]models.MethodDescriptor, []Bound) {
	t.Helper()
	file := parseFile(t, body)
	decl, ok := file.Lookup(name)
	require.True(t, ok)
	methods, bounds, err := NewNormalizer(NewConfigResolver()).Normalize(decl)
	require.NoError(t, err)
	return methods, bounds
}

func TestNormalizeMethods(t *testing.T) {
	methods, bounds := normalize(t, `
type Store interface {
	thin.Send
	io.Closer

	//thin::method(unsafe, abi = "C", receiver = mut, lifetimes(a, b))
	Put(key string, vals ...[]byte) (int, error)
	Get(self string, t int, self_ bool) []byte
}
`, "Store")

	require.Len(t, methods, 2)
	put := methods[0]
	assert.Equal(t, "Put", put.Name)
	assert.True(t, put.Unsafe)
	assert.Equal(t, "C", put.ABI)
	assert.Equal(t, []string{"a", "b"}, put.Lifetimes)
	assert.True(t, put.Variadic)
	assert.Equal(t, models.Param{Receiver: true, Kind: models.ReceiverMut}, put.Receiver())
	assert.Equal(t, "key string, vals ...[]byte", put.ParamList())
	assert.Equal(t, "(int, error)", put.ResultList())

	get := methods[1]
	assert.Equal(t, models.ReceiverRef, get.Receiver().Kind)
	assert.Equal(t, "self1 string, t_ int, self_ bool", get.ParamList())

	assert.Equal(t, []Bound{
		{Qualifier: "thin", Name: "Send", Pos: bounds[0].Pos},
		{Qualifier: "io", Name: "Closer", Pos: bounds[1].Pos},
	}, bounds)
	assert.Equal(t, "io.Closer", bounds[1].Path())
}

func TestRenameParams(t *testing.T) {
	out := renameParams([]models.Param{
		{Name: "ptr", Type: "int"},
		{Name: "ptr_", Type: "int"},
		{Name: "value", Type: "int"},
	})
	assert.Equal(t, "ptr1", out[0].Name)
	assert.Equal(t, "ptr_", out[1].Name)
	assert.Equal(t, "value", out[2].Name)
}
