package errors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphc/internal/compiler"
	"graphc/internal/emit"
	"graphc/internal/graph"
	"graphc/internal/graphtext"
)

func init() {
	color.NoColor = true
}

const source = `model adder
node a: Input -> int
node b: ConstantNode -> double
node c: BinaryOperationNode(a, b) -> double
`

func compileSource(t *testing.T, src string) error {
	t.Helper()
	m, err := graphtext.LoadSource("adder.graph", src)
	if err != nil {
		return err
	}
	_, err = emit.New(nil).Compile(m)
	return err
}

func TestErrorReporter(t *testing.T) {
	err := compileSource(t, source)
	require.Error(t, err)

	diag := FromError(err)
	assert.Equal(t, ErrorPortTypeMismatch, diag.Code)
	assert.Equal(t, 4, diag.Position.Line)

	formatted := NewErrorReporter("adder.graph", source).FormatError(diag)
	assert.Contains(t, formatted, "error["+ErrorPortTypeMismatch+"]")
	assert.Contains(t, formatted, "adder.graph:4:1")
	assert.Contains(t, formatted, "node c: BinaryOperationNode(a, b) -> double")
	assert.Contains(t, formatted, "^^^^")
	assert.Contains(t, formatted, "note: every input port must be double")
}

func TestFromErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		line int
	}{
		{"syntax", "node a Input", ErrorSyntax, 1},
		{"undefined", "node c: BinaryOperationNode(x, x) -> double", ErrorUndefinedNode, 1},
		{"bad port", "node a: Input -> double\nnode c: BinaryOperationNode(a.4, a) -> double", ErrorBadPortRef, 2},
		{"duplicate", "node a: Input -> double\nnode a: Input -> double", ErrorDuplicateNode, 2},
		{"unknown kind", "node a: Input -> double\nnode s: Softmax(a) -> double", ErrorUnsupportedNodeKind, 2},
		{"operator", "node a: Input -> double\nnode c: BinaryOperationNode(a, a) -> double { op = \"pow\" }", ErrorUnsupportedOperator, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileSource(t, tt.src)
			require.Error(t, err)

			diag := FromError(err)
			assert.Equal(t, tt.code, diag.Code)
			assert.Equal(t, tt.line, diag.Position.Line)
			assert.Equal(t, Error, diag.Level)
		})
	}
}

func TestUnknownKindHelp(t *testing.T) {
	n := &graph.Node{}
	diag := FromError(&compiler.UnsupportedNodeKindError{KindID: "Softmax", Node: n})
	assert.Contains(t, diag.HelpText, `register "Softmax"`)

	diag = FromError(&compiler.UnsupportedNodeKindError{KindID: "Input", Node: n, NoRoutine: true})
	assert.NotEmpty(t, diag.Notes)
}

func TestInternalError(t *testing.T) {
	diag := FromError(assert.AnError)
	assert.Equal(t, ErrorInternal, diag.Code)
	assert.Equal(t, "error["+ErrorInternal+"]: "+assert.AnError.Error(), diag.Error())

	formatted := NewErrorReporter("x.graph", "").FormatError(diag)
	assert.NotContains(t, formatted, "-->")
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Compilation", GetErrorCategory(ErrorPortTypeMismatch))
	assert.Equal(t, "Model Description", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Tooling", GetErrorCategory(ErrorInternal))
	assert.Equal(t, "Unknown error code", GetErrorDescription("G4242"))
}
