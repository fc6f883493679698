package lsp_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"graphc/internal/compiler"
	"graphc/internal/errors"
	"graphc/internal/lsp"
)

const validModel = `model adder
node a: Input -> double
node b: ConstantNode -> double { value = 1 }
node c: BinaryOperationNode(a, b) -> double
`

type published struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func recordingContext(out *[]published) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*out = append(*out, published{method: method, params: p})
		},
	}
}

func fileURI(t *testing.T, name string) (string, string) {
	t.Helper()
	path, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(path), path
}

func TestDiagnoseCleanDocument(t *testing.T) {
	diagnostics := lsp.Diagnose("adder.graph", validModel, nil)
	assert.NotNil(t, diagnostics)
	assert.Empty(t, diagnostics)
}

func TestDiagnoseUnknownKind(t *testing.T) {
	src := "node a: Input -> double\nnode s: Softmax(a) -> double\n"
	diagnostics := lsp.Diagnose("x.graph", src, nil)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, uint32(1), d.Range.Start.Line)
	assert.Equal(t, uint32(0), d.Range.Start.Character)
	assert.Equal(t, uint32(4), d.Range.End.Character)
	assert.Equal(t, errors.ErrorUnsupportedNodeKind, d.Code.Value)
	assert.Contains(t, d.Message, "Softmax")

	bindings := append(compiler.DefaultBindings(), compiler.KindBinding{ID: "Softmax", Kind: compiler.KindBinaryOp})
	diagnostics = lsp.Diagnose("x.graph", src, bindings)
	require.Len(t, diagnostics, 1, "Softmax lowers as a binary op and needs two inputs")
	assert.Equal(t, errors.ErrorUnsupportedOperator, diagnostics[0].Code.Value)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	handler := lsp.NewGraphHandler(nil)
	uri, path := fileURI(t, "bad.graph")

	var sent []published
	err := handler.TextDocumentDidOpen(recordingContext(&sent), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "graph", Version: 1, Text: "node a Input"},
	})
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	assert.Equal(t, uri, sent[0].params.URI)
	require.Len(t, sent[0].params.Diagnostics, 1)
	assert.Equal(t, errors.ErrorSyntax, sent[0].params.Diagnostics[0].Code.Value)

	text, ok := handler.Content(path)
	assert.True(t, ok)
	assert.Equal(t, "node a Input", text)
}

func TestDidChangeClearsDiagnostics(t *testing.T) {
	handler := lsp.NewGraphHandler(nil)
	uri, path := fileURI(t, "adder.graph")

	var sent []published
	err := handler.TextDocumentDidChange(recordingContext(&sent), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: validModel}},
	})
	require.NoError(t, err)

	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].params.Diagnostics)

	// an empty array, not null, is what clears the editor's markers
	encoded, err := json.Marshal(sent[0].params)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"diagnostics":[]`)

	err = handler.TextDocumentDidClose(recordingContext(&sent), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	_, ok := handler.Content(path)
	assert.False(t, ok)
}

func TestDidChangeWithoutFullText(t *testing.T) {
	handler := lsp.NewGraphHandler(nil)
	uri, _ := fileURI(t, "partial.graph")

	err := handler.TextDocumentDidChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{},
			Text:  "x",
		}},
	})
	assert.Error(t, err)
}

func TestInitializeAdvertisesFullSync(t *testing.T) {
	handler := lsp.NewGraphHandler(nil)
	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	opts, ok := init.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *opts.Change)
}
