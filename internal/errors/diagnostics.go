package errors

import (
	stderrors "errors"
	"fmt"

	"graphc/internal/compiler"
	"graphc/internal/emit"
	"graphc/internal/graph"
	"graphc/internal/graphtext"
)

// DiagnosticBuilder provides a fluent interface for creating compiler errors
type DiagnosticBuilder struct {
	err CompilerError
}

// NewDiagnostic creates a new error builder
func NewDiagnostic(code, message string, pos graph.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp sets the help text
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}

type positioned interface {
	Position() graph.Position
}

// FromError converts an error returned by the loader, the compiler or the backend into a
// CompilerError. Errors without a known shape map to ErrorInternal.
func FromError(err error) CompilerError {
	var (
		syntax      *graphtext.SyntaxError
		load        *graphtext.LoadError
		op          *emit.UnsupportedOpError
		unsupported *compiler.UnsupportedNodeKindError
		mismatch    *compiler.PortTypeMismatchError
	)

	switch {
	case stderrors.As(err, &syntax):
		return NewDiagnostic(ErrorSyntax, syntax.Message, syntax.Pos).Build()

	case stderrors.As(err, &load):
		code := ErrorInternal
		switch {
		case stderrors.Is(load.Err, graphtext.ErrUndefinedNode):
			code = ErrorUndefinedNode
		case stderrors.Is(load.Err, graphtext.ErrBadPortRef):
			code = ErrorBadPortRef
		case stderrors.Is(load.Err, graphtext.ErrDuplicateNode):
			code = ErrorDuplicateNode
		}
		return NewDiagnostic(code, fmt.Sprintf("%s: %s", load.Err, load.Detail), load.Pos).
			WithLength(load.Length).
			WithHelp("nodes may only consume nodes declared above them").
			Build()

	case stderrors.As(err, &op):
		b := NewDiagnostic(ErrorUnsupportedOperator, op.Error(), nodePosition(op.Node)).WithLength(len("node"))
		if op.Op != "" {
			b = b.WithHelp("supported operators are add, sub, mul and div")
		}
		return b.Build()

	case stderrors.As(err, &unsupported):
		b := NewDiagnostic(ErrorUnsupportedNodeKind, unsupported.Error(), nodePosition(unsupported.Node)).WithLength(len("node"))
		if unsupported.NoRoutine {
			b = b.WithNote("the kind is registered but the backend does not lower it")
		} else {
			b = b.WithHelp(fmt.Sprintf("register %q in graphc.hcl with a kind block", unsupported.KindID))
		}
		return b.Build()

	case stderrors.As(err, &mismatch):
		return NewDiagnostic(ErrorPortTypeMismatch, mismatch.Error(), nodePosition(mismatch.Node)).
			WithLength(len("node")).
			WithNote(fmt.Sprintf("every %s port must be %s", mismatch.Direction, mismatch.Expected)).
			Build()
	}

	return CompilerError{
		Level:   Error,
		Code:    ErrorInternal,
		Message: err.Error(),
	}
}

func nodePosition(n compiler.Node) graph.Position {
	if p, ok := n.(positioned); ok {
		return p.Position()
	}
	return graph.Position{}
}
