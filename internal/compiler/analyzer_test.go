package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScenarioAnalysis(t *testing.T) {
	m, a, b, c := newScenario()
	r := NewRegistry()
	r.Init(DefaultBindings())
	analyzer := NewAnalyzer(r)

	assert.Equal(t, []Node{a}, analyzer.CollectInputNodes(m))
	assert.Equal(t, []Node{c}, CollectOutputNodes(m))

	all := []Node{a, b, c}
	assert.Equal(t, 3, CountOutputs(all))
	assert.Equal(t, 2, CountInputs(all))
}

func TestOutputsAreExactlyTheLeaves(t *testing.T) {
	m, _, _, _ := newScenario()
	// dead end: consumes nothing and feeds nothing
	stray := &testNode{name: "stray", kind: "ConstantNode", outputs: ports("int")}
	m.nodes = append(m.nodes, stray)

	outputs := CollectOutputNodes(m)
	for _, n := range m.nodes {
		assert.Equal(t, len(n.dependents) == 0, contains(outputs, n), n.name)
	}
	assert.Contains(t, outputs, Node(stray))
}

func TestInputsFollowRegistry(t *testing.T) {
	m, a, _, _ := newScenario()
	feed := &testNode{name: "feed", kind: "Feed", outputs: ports("double")}
	m.nodes = append([]*testNode{feed}, m.nodes...)

	r := NewRegistry()
	r.Init(DefaultBindings())
	assert.Equal(t, []Node{a}, NewAnalyzer(r).CollectInputNodes(m))

	r.Init(append(DefaultBindings(), KindBinding{ID: "Feed", Kind: KindInput}))
	assert.Equal(t, []Node{feed, a}, NewAnalyzer(r).CollectInputNodes(m))
}

func TestCollectKeepsVisitOrder(t *testing.T) {
	m, a, b, c := newScenario()
	got := Collect(m, func(Node) bool { return true })
	assert.Equal(t, []Node{a, b, c}, got)

	assert.Empty(t, Collect(nil, func(Node) bool { return true }))
}

func TestNodeDataType(t *testing.T) {
	_, a, _, _ := newScenario()
	typ, ok := NodeDataType(a)
	assert.True(t, ok)
	assert.Equal(t, PortType("double"), typ)

	_, ok = NodeDataType(&testNode{kind: "Sink"})
	assert.False(t, ok)
}

func contains(nodes []Node, n Node) bool {
	for _, candidate := range nodes {
		if candidate == n {
			return true
		}
	}
	return false
}
