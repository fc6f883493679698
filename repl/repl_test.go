package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestIncrementalNodes(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	assert.True(t, s.Eval("node a: Input -> double"))
	assert.Contains(t, out.String(), "t0 = input[0];")

	out.Reset()
	s.Eval("node k: ConstantNode -> double { value = 2 }")
	assert.Contains(t, out.String(), "static const double g1 = 2;")

	out.Reset()
	s.Eval(`node c: BinaryOperationNode(a, k) -> double { op = "mul" }`)
	assert.Contains(t, out.String(), "t0 = a * k;")

	out.Reset()
	s.Eval(":model")
	assert.Contains(t, out.String(), "// 3 nodes, 1 inputs (1 values), 1 outputs (1 values)")
	assert.Contains(t, out.String(), "t0 = t0 * g1;")
}

func TestRejectedLinesAreDropped(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	s.Eval("node a: Input -> double")
	out.Reset()

	s.Eval("node s: Softmax(a) -> double")
	assert.Contains(t, out.String(), "error[G0001]")

	out.Reset()
	s.Eval("node b: Input")
	assert.Contains(t, out.String(), "error[G0100]")

	out.Reset()
	s.Eval(":model")
	assert.NotContains(t, out.String(), "error")
	assert.Contains(t, out.String(), "// 1 nodes")
}

func TestStartStopsOnQuitAndEOF(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("node a: Input -> int\n:quit\nnode b: Input -> int\n"), &out, nil)
	assert.Equal(t, 2, strings.Count(out.String(), PROMPT))

	out.Reset()
	Start(strings.NewReader(":help\n"), &out, nil)
	assert.Contains(t, out.String(), ":model")
	assert.Equal(t, 2, strings.Count(out.String(), PROMPT))
}

func TestReset(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, nil)

	s.Eval("node a: Input -> double")
	s.Eval(":reset")
	out.Reset()

	s.Eval("node a: Input -> double")
	assert.NotContains(t, out.String(), "error", "name is free again after reset")
}
