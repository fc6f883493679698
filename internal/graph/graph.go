// Package graph holds the in-memory dataflow model handed to the compiler.
package graph

import (
	"errors"
	"fmt"

	"graphc/internal/compiler"
)

var (
	ErrDuplicateNode  = errors.New("duplicate node")
	ErrForeignNode    = errors.New("source node belongs to another model")
	ErrPortOutOfRange = errors.New("port index out of range")
)

// Position locates a node declaration in its source file
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Port is a typed endpoint of a node
type Port struct {
	typ   compiler.PortType
	node  *Node
	index int
}

func (p *Port) Type() compiler.PortType {
	return p.typ
}

func (p *Port) Node() *Node {
	return p.node
}

func (p *Port) Index() int {
	return p.index
}

// Ref names one output port of a node
type Ref struct {
	Node *Node
	Port int
}

// Node is a vertex of a Model
type Node struct {
	id         int
	name       string
	kind       string
	inputs     []compiler.Port
	outputs    []compiler.Port
	sources    []Ref
	dependents []compiler.Node
	attrs      map[string]string
	pos        Position
}

func (n *Node) ID() int {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Kind() string {
	return n.kind
}

func (n *Node) InputPorts() []compiler.Port {
	return n.inputs
}

func (n *Node) OutputPorts() []compiler.Port {
	return n.outputs
}

func (n *Node) Dependents() []compiler.Node {
	return n.dependents
}

// Source returns the node and output port feeding input port i
func (n *Node) Source(i int) (compiler.Node, int, bool) {
	if i < 0 || i >= len(n.sources) {
		return nil, 0, false
	}
	ref := n.sources[i]
	return ref.Node, ref.Port, true
}

// Attr returns the raw text of an attribute
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

func (n *Node) Position() Position {
	return n.pos
}

func (n *Node) String() string {
	return fmt.Sprintf("%s: %s", n.name, n.kind)
}

// NodeSpec describes a node to add to a Model
type NodeSpec struct {
	Name    string
	Kind    string
	Inputs  []Ref
	Outputs []compiler.PortType
	Attrs   map[string]string
	Pos     Position
}

// Model is a DAG built by appending nodes. A node may only consume nodes added before it,
// so insertion order is always a valid dependency order.
type Model struct {
	name   string
	nodes  []*Node
	byName map[string]*Node
}

// New creates an empty model
func New(name string) *Model {
	return &Model{
		name:   name,
		byName: make(map[string]*Node),
	}
}

func (m *Model) Name() string {
	return m.name
}

// AddNode appends a node wired to already present nodes
func (m *Model) AddNode(spec NodeSpec) (*Node, error) {
	if _, exists := m.byName[spec.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, spec.Name)
	}

	n := &Node{
		id:    len(m.nodes),
		name:  spec.Name,
		kind:  spec.Kind,
		attrs: make(map[string]string, len(spec.Attrs)),
		pos:   spec.Pos,
	}
	for k, v := range spec.Attrs {
		n.attrs[k] = v
	}

	for i, ref := range spec.Inputs {
		if ref.Node == nil || m.byName[ref.Node.name] != ref.Node {
			return nil, fmt.Errorf("%w: input %d of %s", ErrForeignNode, i, spec.Name)
		}
		if ref.Port < 0 || ref.Port >= len(ref.Node.outputs) {
			return nil, fmt.Errorf("%w: %s.%d has %d outputs", ErrPortOutOfRange, ref.Node.name, ref.Port, len(ref.Node.outputs))
		}
		n.inputs = append(n.inputs, &Port{typ: ref.Node.outputs[ref.Port].Type(), node: n, index: i})
		n.sources = append(n.sources, ref)
	}

	for i, typ := range spec.Outputs {
		n.outputs = append(n.outputs, &Port{typ: typ, node: n, index: i})
	}

	// Dependents is a set: a node feeding several ports of n lists n once
	for _, ref := range spec.Inputs {
		if !hasDependent(ref.Node, n) {
			ref.Node.dependents = append(ref.Node.dependents, n)
		}
	}

	m.nodes = append(m.nodes, n)
	m.byName[n.name] = n
	return n, nil
}

func hasDependent(src, n *Node) bool {
	for _, d := range src.dependents {
		if d == compiler.Node(n) {
			return true
		}
	}
	return false
}

// Visit walks the nodes in insertion order
func (m *Model) Visit(fn func(compiler.Node)) {
	for _, n := range m.nodes {
		fn(n)
	}
}

func (m *Model) Nodes() []*Node {
	return m.nodes
}

func (m *Model) Lookup(name string) (*Node, bool) {
	n, ok := m.byName[name]
	return n, ok
}

func (m *Model) Len() int {
	return len(m.nodes)
}
