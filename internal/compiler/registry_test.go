package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBuiltinKinds(t *testing.T) {
	r := NewRegistry()
	r.Init(DefaultBindings())

	tests := []struct {
		id   string
		kind NodeKind
	}{
		{"Input", KindInput},
		{"ConstantNode", KindConstant},
		{"BinaryOperationNode", KindBinaryOp},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			kind, err := r.Lookup(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestLookupUnregisteredKind(t *testing.T) {
	r := NewRegistry()
	r.Init(DefaultBindings())

	_, err := r.Lookup("UnregisteredKind")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedNodeKind)

	var unsupported *UnsupportedNodeKindError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "UnregisteredKind", unsupported.KindID)
	assert.False(t, unsupported.NoRoutine)
}

func TestInitReplacesContents(t *testing.T) {
	r := NewRegistry()
	r.Init(DefaultBindings())

	custom := FirstBackendKind + 1
	r.Init([]KindBinding{
		{ID: "Source", Kind: KindInput},
		{ID: "Softmax", Kind: custom},
	})

	_, err := r.Lookup("Input")
	assert.ErrorIs(t, err, ErrUnsupportedNodeKind)

	kind, err := r.Lookup("Softmax")
	require.NoError(t, err)
	assert.Equal(t, custom, kind)

	assert.True(t, r.IsInputKind("Source"))
	assert.False(t, r.IsInputKind("Softmax"))
	assert.Equal(t, []KindBinding{{"Source", KindInput}, {"Softmax", custom}}, r.Bindings())
}

func TestNodeKindNames(t *testing.T) {
	assert.Equal(t, "binaryOp", KindBinaryOp.String())
	assert.Equal(t, "kind(7)", NodeKind(7).String())

	kind, ok := ParseNodeKind("constant")
	assert.True(t, ok)
	assert.Equal(t, KindConstant, kind)

	_, ok = ParseNodeKind("softmax")
	assert.False(t, ok)
}
