package emit

import (
	"fmt"

	"graphc/internal/compiler"
)

var operators = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
}

// UnsupportedOpError reports a binary operation node the backend cannot lower.
// It matches compiler.ErrUnsupportedNodeKind.
type UnsupportedOpError struct {
	Node   compiler.Node
	Op     string
	Reason string
}

func (e *UnsupportedOpError) Error() string {
	name := e.Node.Kind()
	if named, ok := e.Node.(compiler.Named); ok {
		name = named.Name()
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: node %s: %s", compiler.ErrUnsupportedNodeKind, name, e.Reason)
	}
	return fmt.Sprintf("%s: node %s: unknown operator %q", compiler.ErrUnsupportedNodeKind, name, e.Op)
}

func (e *UnsupportedOpError) Unwrap() error {
	return compiler.ErrUnsupportedNodeKind
}
