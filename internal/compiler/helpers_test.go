package compiler

type testPort struct {
	typ PortType
}

func (p testPort) Type() PortType { return p.typ }

type testNode struct {
	name       string
	kind       string
	inputs     []Port
	outputs    []Port
	dependents []Node
}

func (n *testNode) Name() string        { return n.name }
func (n *testNode) Kind() string        { return n.kind }
func (n *testNode) InputPorts() []Port  { return n.inputs }
func (n *testNode) OutputPorts() []Port { return n.outputs }
func (n *testNode) Dependents() []Node  { return n.dependents }

type testModel struct {
	nodes []*testNode
}

func (m *testModel) Visit(fn func(Node)) {
	for _, n := range m.nodes {
		fn(n)
	}
}

func ports(types ...PortType) []Port {
	out := make([]Port, len(types))
	for i, t := range types {
		out[i] = testPort{typ: t}
	}
	return out
}

// newScenario builds A (Input) and B (ConstantNode) feeding C (BinaryOperationNode)
func newScenario() (m *testModel, a, b, c *testNode) {
	a = &testNode{name: "a", kind: "Input", outputs: ports("double")}
	b = &testNode{name: "b", kind: "ConstantNode", outputs: ports("double")}
	c = &testNode{name: "c", kind: "BinaryOperationNode", inputs: ports("double", "double"), outputs: ports("double")}
	a.dependents = []Node{c}
	b.dependents = []Node{c}
	return &testModel{nodes: []*testNode{a, b, c}}, a, b, c
}

type recordingBackend struct {
	events    []string
	sessions  []*Session
	constants []PersistentVar
}

func (r *recordingBackend) BeginSession(s *Session) {
	r.events = append(r.events, "begin "+s.Name)
}

func (r *recordingBackend) EndSession(s *Session) {
	r.events = append(r.events, "end "+s.Name)
	r.sessions = append(r.sessions, s)
}

func (r *recordingBackend) EmitConstant(d *Driver, n Node, v PersistentVar) error {
	r.events = append(r.events, "constant "+n.Kind())
	r.constants = append(r.constants, v)
	return nil
}
