package compiler

// PortType identifies the data carried by a port. Values are only ever compared for equality.
type PortType string

// Port is a typed endpoint of a node
type Port interface {
	Type() PortType
}

// Node is one operation of the dataflow graph. The compiler only reads nodes; they are
// owned by the model that produced them.
type Node interface {
	// Kind returns the kind identifier resolved through the Registry
	Kind() string
	InputPorts() []Port
	OutputPorts() []Port
	// Dependents returns the nodes that directly consume this node's output
	Dependents() []Node
}

// Model is an immutable DAG of nodes. Visit must call fn for every node exactly once,
// and only after every node it depends on has been visited.
type Model interface {
	Visit(fn func(Node))
}

// Named is implemented by nodes that can report a human readable name for diagnostics
type Named interface {
	Name() string
}

func describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	if named, ok := n.(Named); ok && named.Name() != "" {
		return named.Name() + " (" + n.Kind() + ")"
	}
	return n.Kind()
}
