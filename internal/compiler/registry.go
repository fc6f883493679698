package compiler

import "fmt"

// NodeKind is the dispatch enumeration a node's kind identifier resolves to.
// Backends extend it with values starting at FirstBackendKind.
type NodeKind int

const (
	KindInput NodeKind = iota
	KindConstant
	KindBinaryOp

	// FirstBackendKind is the first value free for backend-defined kinds
	FirstBackendKind
)

var kindNames = map[NodeKind]string{
	KindInput:    "input",
	KindConstant: "constant",
	KindBinaryOp: "binaryOp",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseNodeKind maps a built-in kind name ("input", "constant", "binaryOp") back to its NodeKind
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return 0, false
}

// KindBinding pairs a node kind identifier with its dispatch kind
type KindBinding struct {
	ID   string
	Kind NodeKind
}

// DefaultBindings returns the built-in kind identifiers
func DefaultBindings() []KindBinding {
	return []KindBinding{
		{ID: "Input", Kind: KindInput},
		{ID: "ConstantNode", Kind: KindConstant},
		{ID: "BinaryOperationNode", Kind: KindBinaryOp},
	}
}

// Registry resolves node kind identifiers to NodeKind values. Identifiers are expected to be
// unique per operation; a later binding for the same identifier silently wins.
type Registry struct {
	kinds    map[string]NodeKind
	bindings []KindBinding
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]NodeKind),
	}
}

// Init replaces the registry contents with pairs, keeping their order
func (r *Registry) Init(pairs []KindBinding) {
	r.kinds = make(map[string]NodeKind, len(pairs))
	r.bindings = make([]KindBinding, 0, len(pairs))
	for _, p := range pairs {
		r.kinds[p.ID] = p.Kind
		r.bindings = append(r.bindings, p)
	}
}

// Lookup resolves a kind identifier
func (r *Registry) Lookup(id string) (NodeKind, error) {
	kind, ok := r.kinds[id]
	if !ok {
		return 0, &UnsupportedNodeKindError{KindID: id}
	}
	return kind, nil
}

// IsInputKind reports whether id is registered as an input kind
func (r *Registry) IsInputKind(id string) bool {
	kind, ok := r.kinds[id]
	return ok && kind == KindInput
}

// Bindings returns a copy of the registered pairs in registration order
func (r *Registry) Bindings() []KindBinding {
	out := make([]KindBinding, len(r.bindings))
	copy(out, r.bindings)
	return out
}
