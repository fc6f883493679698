// Package emit is a backend that lowers a model to a C function.
package emit

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"graphc/internal/compiler"
)

var log = commonlog.GetLogger("graphc.emit")

const defaultElemType = "double"

// Sourced is implemented by nodes that know which output port feeds each input port
type Sourced interface {
	Source(i int) (compiler.Node, int, bool)
}

// Attributed is implemented by nodes carrying attributes such as value or op
type Attributed interface {
	Attr(key string) (string, bool)
}

type value struct {
	name    string
	scratch bool
	v       compiler.ScratchVar
}

// Generator drives a compiler.Driver and renders each session as one C function
type Generator struct {
	driver *compiler.Driver

	globals writer
	body    writer
	code    string

	values     map[compiler.Node][]value
	uses       map[compiler.Node]int
	outputs    map[compiler.Node]bool
	nextInput  int
	globalSeen int
}

// New creates a generator whose driver registry holds bindings (the built-in ones when nil)
func New(bindings []compiler.KindBinding) *Generator {
	g := &Generator{}
	g.driver = compiler.NewDriver(g, bindings)
	g.driver.Register(compiler.KindInput, g.lowerInput)
	g.driver.Register(compiler.KindBinaryOp, g.lowerBinaryOp)
	return g
}

func (g *Generator) Driver() *compiler.Driver {
	return g.driver
}

// Compile lowers the whole model and returns the translation unit. Each call starts a new
// artifact, so constants of earlier compilations are dropped.
func (g *Generator) Compile(m compiler.Model) (string, error) {
	g.Reset()
	if err := g.driver.CompileModel(m); err != nil {
		return "", err
	}
	return g.code, nil
}

// CompileNode lowers a single node. Operands produced outside the session are referenced
// by node name. Constants accumulate across calls until Reset.
func (g *Generator) CompileNode(n compiler.Node) (string, error) {
	if err := g.driver.CompileNode(n); err != nil {
		return "", err
	}
	return g.code, nil
}

// Code returns the output of the last successful session
func (g *Generator) Code() string {
	return g.code
}

// Reset forgets emitted constants and restarts persistent numbering
func (g *Generator) Reset() {
	g.driver.Reset()
	g.globals.reset()
	g.globalSeen = 0
	g.code = ""
}

func (g *Generator) BeginSession(s *compiler.Session) {
	g.body.reset()
	g.body.indent = 1
	g.values = make(map[compiler.Node][]value)
	g.uses = make(map[compiler.Node]int)
	g.outputs = make(map[compiler.Node]bool, len(s.Outputs))
	g.nextInput = 0
	g.globalSeen = len(g.globals.String())

	for _, n := range s.Outputs {
		g.outputs[n] = true
	}
}

func (g *Generator) EndSession(s *compiler.Session) {
	if s.Err != nil {
		g.code = ""
		// drop constants emitted by the failed session
		globals := g.globals.String()[:g.globalSeen]
		g.globals.reset()
		g.globals.output.WriteString(globals)
		return
	}

	elem := elemType(s)
	var fn writer

	fn.writeLine("void %s(const %s* %s, %s* %s) {", s.Name, elem, g.driver.InputName(), elem, g.driver.OutputName())
	fn.indent++
	if s.ScratchSlots > 0 {
		names := make([]string, s.ScratchSlots)
		for i := range names {
			names[i] = scratchName(compiler.ScratchVar(i))
		}
		fn.writeLine("%s %s;", elem, strings.Join(names, ", "))
	}
	fn.output.WriteString(g.body.String())

	slot := 0
	for _, n := range s.Outputs {
		for port := range n.OutputPorts() {
			fn.writeLine("%s[%d] = %s;", g.driver.OutputName(), slot, g.operand(n, port))
			slot++
		}
	}
	fn.indent--
	fn.writeLine("}")

	var unit strings.Builder
	if globals := g.globals.String(); globals != "" {
		unit.WriteString(globals)
		unit.WriteString("\n")
	}
	unit.WriteString(fn.String())
	g.code = unit.String()
	log.Debugf("generated %s: %d scratch slots, %d outputs", s.Name, s.ScratchSlots, slot)
}

// EmitConstant declares a persistent constant for n
func (g *Generator) EmitConstant(d *compiler.Driver, n compiler.Node, v compiler.PersistentVar) error {
	typ, ok := compiler.NodeDataType(n)
	if !ok {
		typ = defaultElemType
	}
	if err := d.VerifyOutputType(n, typ); err != nil {
		return err
	}

	literal := "0"
	if attributed, ok := n.(Attributed); ok {
		if text, ok := attributed.Attr("value"); ok {
			literal = text
		}
	}

	name := fmt.Sprintf("g%d", v)
	g.globals.writeLine("static const %s %s = %s;", typ, name, literal)
	g.values[n] = []value{{name: name}}
	g.uses[n] = len(n.Dependents())
	return nil
}

func (g *Generator) lowerInput(d *compiler.Driver, n compiler.Node) error {
	vals := make([]value, 0, len(n.OutputPorts()))
	for range n.OutputPorts() {
		v := d.AllocScratch()
		g.body.writeLine("%s = %s[%d];", scratchName(v), d.InputName(), g.nextInput)
		g.nextInput++
		vals = append(vals, value{name: scratchName(v), scratch: true, v: v})
	}
	g.values[n] = vals
	g.uses[n] = len(n.Dependents())
	return nil
}

func (g *Generator) lowerBinaryOp(d *compiler.Driver, n compiler.Node) error {
	if len(n.InputPorts()) != 2 || len(n.OutputPorts()) != 1 {
		return &UnsupportedOpError{Node: n, Reason: fmt.Sprintf("binary operation needs 2 inputs and 1 output, has %d and %d", len(n.InputPorts()), len(n.OutputPorts()))}
	}

	typ, _ := compiler.NodeDataType(n)
	if err := d.VerifyInputType(n, typ); err != nil {
		return err
	}

	opName := "add"
	if attributed, ok := n.(Attributed); ok {
		if text, ok := attributed.Attr("op"); ok {
			opName = text
		}
	}
	symbol, ok := operators[opName]
	if !ok {
		return &UnsupportedOpError{Node: n, Op: opName}
	}

	sourced, ok := n.(Sourced)
	if !ok {
		return &UnsupportedOpError{Node: n, Reason: "node does not expose its operands"}
	}

	var operands [2]string
	var srcs []compiler.Node
	for i := range operands {
		src, port, ok := sourced.Source(i)
		if !ok {
			return &UnsupportedOpError{Node: n, Reason: fmt.Sprintf("input %d is not connected", i)}
		}
		operands[i] = g.operand(src, port)
		if !containsNode(srcs, src) {
			srcs = append(srcs, src)
		}
	}

	// release operands before allocating the result so the slot can be reused
	for _, src := range srcs {
		g.consume(d, src)
	}

	v := d.AllocScratch()
	g.body.writeLine("%s = %s %s %s;", scratchName(v), operands[0], symbol, operands[1])
	g.values[n] = []value{{name: scratchName(v), scratch: true, v: v}}
	g.uses[n] = len(n.Dependents())
	return nil
}

// consume records one use of src and frees its scratch slots after the last one
func (g *Generator) consume(d *compiler.Driver, src compiler.Node) {
	vals, ok := g.values[src]
	if !ok {
		return
	}
	g.uses[src]--
	if g.uses[src] > 0 || g.outputs[src] {
		return
	}
	for _, val := range vals {
		if val.scratch {
			d.FreeScratch(val.v)
		}
	}
}

func (g *Generator) operand(n compiler.Node, port int) string {
	if vals, ok := g.values[n]; ok && port < len(vals) {
		return vals[port].name
	}
	if named, ok := n.(compiler.Named); ok {
		if port == 0 {
			return named.Name()
		}
		return fmt.Sprintf("%s_%d", named.Name(), port)
	}
	return fmt.Sprintf("/* %s */ 0", n.Kind())
}

func elemType(s *compiler.Session) string {
	for _, set := range [][]compiler.Node{s.Inputs, s.Outputs} {
		for _, n := range set {
			if typ, ok := compiler.NodeDataType(n); ok {
				return string(typ)
			}
		}
	}
	return defaultElemType
}

func scratchName(v compiler.ScratchVar) string {
	return fmt.Sprintf("t%d", int(v))
}

func containsNode(nodes []compiler.Node, n compiler.Node) bool {
	for _, candidate := range nodes {
		if candidate == n {
			return true
		}
	}
	return false
}
