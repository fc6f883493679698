// Package graphtext reads the textual model description format into a graph.Model.
package graphtext

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"graphc/internal/compiler"
	"graphc/internal/graph"
)

var (
	ErrUndefinedNode = errors.New("undefined node")
	ErrBadPortRef    = errors.New("bad port reference")
	ErrDuplicateNode = errors.New("duplicate node")
)

var parser = participle.MustBuild[File](
	participle.Lexer(GraphLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// SyntaxError is a parse failure at a source position
type SyntaxError struct {
	Pos     graph.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// LoadError is a reference that could not be resolved while building the model
type LoadError struct {
	Pos    graph.Position
	Length int
	Err    error
	Detail string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Err, e.Detail)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Parse parses src; filename is only used in positions
func Parse(filename, src string) (*File, error) {
	file, err := parser.ParseString(filename, src)
	if err != nil {
		var pe participle.Error
		if errors.As(err, &pe) {
			return nil, &SyntaxError{Pos: position(pe.Position()), Message: pe.Message()}
		}
		return nil, err
	}
	return file, nil
}

// ParseFile reads and parses the file at path
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// Load builds a model from a parsed file. Nodes may only reference nodes declared above them.
func Load(file *File) (*graph.Model, error) {
	m := graph.New(file.Name)
	for _, decl := range file.Nodes {
		if _, err := AddDecl(m, decl); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// LoadSource parses and loads src in one step
func LoadSource(filename, src string) (*graph.Model, error) {
	file, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	return Load(file)
}

// AddDecl appends one declaration to m
func AddDecl(m *graph.Model, decl *NodeDecl) (*graph.Node, error) {
	if _, exists := m.Lookup(decl.Name); exists {
		return nil, &LoadError{
			Pos:    position(decl.Pos),
			Length: len("node"),
			Err:    ErrDuplicateNode,
			Detail: fmt.Sprintf("%q is already declared", decl.Name),
		}
	}

	spec := graph.NodeSpec{
		Name:  decl.Name,
		Kind:  decl.Kind,
		Attrs: make(map[string]string, len(decl.Attrs)),
		Pos:   position(decl.Pos),
	}

	for _, ref := range decl.Inputs {
		src, ok := m.Lookup(ref.Node)
		if !ok {
			return nil, &LoadError{
				Pos:    position(ref.Pos),
				Length: len(ref.Node),
				Err:    ErrUndefinedNode,
				Detail: fmt.Sprintf("%q is not declared before %q", ref.Node, decl.Name),
			}
		}
		if ref.Index < 0 || ref.Index >= len(src.OutputPorts()) {
			return nil, &LoadError{
				Pos:    position(ref.Pos),
				Length: len(ref.Node),
				Err:    ErrBadPortRef,
				Detail: fmt.Sprintf("%s.%d: %q has %d output ports", ref.Node, ref.Index, ref.Node, len(src.OutputPorts())),
			}
		}
		spec.Inputs = append(spec.Inputs, graph.Ref{Node: src, Port: ref.Index})
	}

	for _, out := range decl.Outputs {
		spec.Outputs = append(spec.Outputs, compiler.PortType(out))
	}
	for _, attr := range decl.Attrs {
		spec.Attrs[attr.Key] = attr.Value.Text()
	}

	return m.AddNode(spec)
}

// ParseNode parses a single node declaration, as typed at the REPL
func ParseNode(filename, src string) (*NodeDecl, error) {
	file, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	if len(file.Nodes) != 1 {
		return nil, &SyntaxError{
			Pos:     position(file.Pos),
			Message: fmt.Sprintf("expected one node declaration, found %d", len(file.Nodes)),
		}
	}
	return file.Nodes[0], nil
}

func position(p lexer.Position) graph.Position {
	return graph.Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}
