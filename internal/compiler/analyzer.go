package compiler

// Analyzer answers structural questions about a model. Input detection depends on the
// registry, everything else is purely structural.
type Analyzer struct {
	registry *Registry
}

// NewAnalyzer creates an analyzer that recognises input nodes through registry
func NewAnalyzer(registry *Registry) *Analyzer {
	return &Analyzer{registry: registry}
}

// Collect returns every node satisfying pred, in the model's visitation order
func Collect(m Model, pred func(Node) bool) []Node {
	var matches []Node
	if m == nil {
		return matches
	}
	m.Visit(func(n Node) {
		if pred(n) {
			matches = append(matches, n)
		}
	})
	return matches
}

// CollectInputNodes returns the nodes whose kind identifier is registered as an input kind
func (a *Analyzer) CollectInputNodes(m Model) []Node {
	return Collect(m, func(n Node) bool {
		return a.registry.IsInputKind(n.Kind())
	})
}

// CollectOutputNodes returns the leaf nodes of m. The model carries no output tags, so any
// dead-end node counts as an output.
func CollectOutputNodes(m Model) []Node {
	return Collect(m, IsLeaf)
}

// IsLeaf reports whether nothing consumes n
func IsLeaf(n Node) bool {
	return len(n.Dependents()) == 0
}

// CountInputs sums the input port counts of nodes
func CountInputs(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		count += len(n.InputPorts())
	}
	return count
}

// CountOutputs sums the output port counts of nodes
func CountOutputs(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		count += len(n.OutputPorts())
	}
	return count
}

// NodeDataType returns the type of n's first output port
func NodeDataType(n Node) (PortType, bool) {
	outputs := n.OutputPorts()
	if len(outputs) == 0 {
		return "", false
	}
	return outputs[0].Type(), true
}
