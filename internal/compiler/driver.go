package compiler

import (
	"errors"

	"github.com/tliron/commonlog"
)

const (
	// PredictFunctionName names the entry point of every compilation session
	PredictFunctionName = "Predict"

	DefaultInputName  = "input"
	DefaultOutputName = "output"
)

var log = commonlog.GetLogger("graphc.compiler")

// LoweringFunc turns one node into generated code during an open session
type LoweringFunc func(d *Driver, n Node) error

// Backend observes the session bracket to emit entry and exit code
type Backend interface {
	BeginSession(s *Session)
	EndSession(s *Session)
}

// Namer lets a backend override the parameter and result names of the entry point
type Namer interface {
	InputName() string
	OutputName() string
}

// ConstantEmitter receives constant nodes lowered by the built-in constant routine
type ConstantEmitter interface {
	EmitConstant(d *Driver, n Node, v PersistentVar) error
}

// Session describes the entry point being generated
type Session struct {
	Name        string
	Inputs      []Node
	Outputs     []Node
	InputCount  int
	OutputCount int

	// Set before EndSession
	ScratchSlots int
	Err          error
}

type nopBackend struct{}

func (nopBackend) BeginSession(*Session) {}
func (nopBackend) EndSession(*Session)   {}

// Driver runs compilation sessions over a model. A Driver is not safe for concurrent use;
// concurrent compilations need separate instances.
type Driver struct {
	registry *Registry
	analyzer *Analyzer
	alloc    *Allocator
	backend  Backend
	routines map[NodeKind]LoweringFunc

	session *Session
	inputs  []Node
	outputs []Node
}

// NewDriver creates a driver whose registry holds bindings, or the built-in bindings when
// bindings is nil. A nil backend observes nothing.
func NewDriver(backend Backend, bindings []KindBinding) *Driver {
	if backend == nil {
		backend = nopBackend{}
	}
	if bindings == nil {
		bindings = DefaultBindings()
	}

	registry := NewRegistry()
	registry.Init(bindings)

	d := &Driver{
		registry: registry,
		analyzer: NewAnalyzer(registry),
		alloc:    NewAllocator(),
		backend:  backend,
		routines: make(map[NodeKind]LoweringFunc),
	}
	d.routines[KindConstant] = lowerConstant
	return d
}

// Register installs the lowering routine for kind, replacing any previous one
func (d *Driver) Register(kind NodeKind, fn LoweringFunc) {
	d.routines[kind] = fn
}

func (d *Driver) Registry() *Registry {
	return d.registry
}

func (d *Driver) Analyzer() *Analyzer {
	return d.analyzer
}

// Inputs returns the input nodes resolved by the last CompileModel
func (d *Driver) Inputs() []Node {
	return d.inputs
}

// Outputs returns the output nodes resolved by the last CompileModel
func (d *Driver) Outputs() []Node {
	return d.outputs
}

// Session returns the open session, or nil
func (d *Driver) Session() *Session {
	return d.session
}

// CompileModel resolves the model's inputs and outputs, then lowers every node in
// dependency order inside a "Predict" session. Nodes of a registered kind with no routine
// are skipped. The session is closed whether or not lowering succeeds.
func (d *Driver) CompileModel(m Model) (err error) {
	d.inputs = d.analyzer.CollectInputNodes(m)
	d.outputs = CollectOutputNodes(m)

	d.beginSession(d.inputs, d.outputs)
	defer func() { d.endSession(err) }()

	for _, n := range Collect(m, func(Node) bool { return true }) {
		if err = d.lower(n, false); err != nil {
			return err
		}
	}
	return nil
}

// CompileNode lowers n alone inside its own session. Unlike CompileModel, a node whose kind
// has no lowering routine is an error.
func (d *Driver) CompileNode(n Node) (err error) {
	var inputs []Node
	if d.registry.IsInputKind(n.Kind()) {
		inputs = []Node{n}
	}

	d.beginSession(inputs, []Node{n})
	defer func() { d.endSession(err) }()

	return d.lower(n, true)
}

func (d *Driver) lower(n Node, strict bool) error {
	kind, err := d.registry.Lookup(n.Kind())
	if err != nil {
		var unsupported *UnsupportedNodeKindError
		if errors.As(err, &unsupported) {
			unsupported.Node = n
		}
		return err
	}

	fn, ok := d.routines[kind]
	if !ok {
		if strict {
			return &UnsupportedNodeKindError{KindID: n.Kind(), Node: n, NoRoutine: true}
		}
		log.Debugf("no lowering routine for %s, skipping", describe(n))
		return nil
	}

	log.Debugf("lowering %s as %s", describe(n), kind)
	return fn(d, n)
}

func (d *Driver) beginSession(inputs, outputs []Node) {
	if d.session != nil {
		panic(ErrSessionOpen)
	}

	d.alloc.resetScratch()
	d.session = &Session{
		Name:        PredictFunctionName,
		Inputs:      inputs,
		Outputs:     outputs,
		InputCount:  CountOutputs(inputs),
		OutputCount: CountOutputs(outputs),
	}
	log.Debugf("begin session %s: %d inputs, %d outputs", d.session.Name, len(inputs), len(outputs))
	d.backend.BeginSession(d.session)
}

func (d *Driver) endSession(err error) {
	s := d.session
	s.ScratchSlots = d.alloc.Slots()
	s.Err = err
	d.session = nil

	if err != nil {
		log.Debugf("end session %s: %s", s.Name, err)
	} else {
		log.Debugf("end session %s", s.Name)
	}
	d.backend.EndSession(s)
}

// InputName is the name of the generated function's parameter
func (d *Driver) InputName() string {
	if namer, ok := d.backend.(Namer); ok {
		return namer.InputName()
	}
	return DefaultInputName
}

// OutputName is the name of the generated function's result
func (d *Driver) OutputName() string {
	if namer, ok := d.backend.(Namer); ok {
		return namer.OutputName()
	}
	return DefaultOutputName
}

// VerifyInputType fails on the first input port of n whose type is not expected
func (d *Driver) VerifyInputType(n Node, expected PortType) error {
	return verifyPorts(n, n.InputPorts(), DirInput, expected)
}

// VerifyOutputType fails on the first output port of n whose type is not expected
func (d *Driver) VerifyOutputType(n Node, expected PortType) error {
	return verifyPorts(n, n.OutputPorts(), DirOutput, expected)
}

func verifyPorts(n Node, ports []Port, dir Direction, expected PortType) error {
	for i, p := range ports {
		if p.Type() != expected {
			return &PortTypeMismatchError{
				Node:      n,
				Direction: dir,
				Index:     i,
				Expected:  expected,
				Actual:    p.Type(),
			}
		}
	}
	return nil
}

// AllocScratch allocates a scratch variable for the open session
func (d *Driver) AllocScratch() ScratchVar {
	return d.alloc.AllocScratch()
}

// FreeScratch releases a scratch variable. Releasing twice panics.
func (d *Driver) FreeScratch(v ScratchVar) {
	d.alloc.FreeScratch(v)
}

// AllocPersistent allocates a persistent variable identifier
func (d *Driver) AllocPersistent() PersistentVar {
	return d.alloc.AllocPersistent()
}

// Allocator exposes the driver's allocator for inspection
func (d *Driver) Allocator() *Allocator {
	return d.alloc
}

// Reset clears the state of previous compilations. The registry and the routine table are kept.
func (d *Driver) Reset() {
	d.inputs = nil
	d.outputs = nil
	d.alloc.Reset()
}

func lowerConstant(d *Driver, n Node) error {
	v := d.AllocPersistent()
	if emitter, ok := d.backend.(ConstantEmitter); ok {
		return emitter.EmitConstant(d, n, v)
	}
	return nil
}
