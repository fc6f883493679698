package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedNodeKind is matched by every error raised for a node the compiler cannot lower
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")

	// ErrPortTypeMismatch is matched by every error raised by a port type verification
	ErrPortTypeMismatch = errors.New("port type mismatch")

	// ErrSessionOpen is the panic value raised when a Driver is re-entered while a session is open
	ErrSessionOpen = errors.New("compilation session already open")
)

// UnsupportedNodeKindError reports a kind identifier absent from the Registry, or a known
// kind with no lowering routine registered for it.
type UnsupportedNodeKindError struct {
	KindID    string
	Node      Node // nil when raised by a bare Registry lookup
	NoRoutine bool
}

func (e *UnsupportedNodeKindError) Error() string {
	subject := fmt.Sprintf("%q", e.KindID)
	if e.Node != nil {
		subject = fmt.Sprintf("%q on node %s", e.KindID, describe(e.Node))
	}
	if e.NoRoutine {
		return fmt.Sprintf("%s: no lowering routine for %s", ErrUnsupportedNodeKind, subject)
	}
	return fmt.Sprintf("%s: %s is not registered", ErrUnsupportedNodeKind, subject)
}

func (e *UnsupportedNodeKindError) Unwrap() error {
	return ErrUnsupportedNodeKind
}

// Direction tells which side of a node a port sits on
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

func (d Direction) String() string {
	if d == DirOutput {
		return "output"
	}
	return "input"
}

// PortTypeMismatchError reports the first port whose type differs from the verified one
type PortTypeMismatchError struct {
	Node      Node
	Direction Direction
	Index     int
	Expected  PortType
	Actual    PortType
}

func (e *PortTypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s port %d of node %s is %s, expected %s",
		ErrPortTypeMismatch, e.Direction, e.Index, describe(e.Node), e.Actual, e.Expected)
}

func (e *PortTypeMismatchError) Unwrap() error {
	return ErrPortTypeMismatch
}

// ScratchMisuseError is the panic value raised when a scratch handle is released twice
// or was never handed out. It signals a broken lowering routine, not a bad model.
type ScratchMisuseError struct {
	Var ScratchVar
}

func (e *ScratchMisuseError) Error() string {
	return fmt.Sprintf("scratch variable %d released but not live", int(e.Var))
}
