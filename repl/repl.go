// Package repl compiles model nodes one at a time as they are typed.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"graphc/internal/compiler"
	"graphc/internal/emit"
	"graphc/internal/errors"
	"graphc/internal/graph"
	"graphc/internal/graphtext"
)

const PROMPT = ">> "

const sourceName = "repl"

const help = `enter a node declaration, e.g.
  node a: Input -> double
  node k: ConstantNode -> double { value = 2 }
  node c: BinaryOperationNode(a, k) -> double { op = "mul" }
commands:
  :model  compile every node entered so far
  :reset  forget all nodes
  :help   show this text
  :quit   leave
`

// Session holds the nodes accepted so far
type Session struct {
	out       io.Writer
	generator *emit.Generator
	accepted  []string
}

// NewSession creates a REPL session writing to out
func NewSession(out io.Writer, bindings []compiler.KindBinding) *Session {
	return &Session{
		out:       out,
		generator: emit.New(bindings),
	}
}

// Start reads lines from in until EOF or :quit
func Start(in io.Reader, out io.Writer, bindings []compiler.KindBinding) {
	s := NewSession(out, bindings)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		if !s.Eval(scanner.Text()) {
			return
		}
	}
}

// Eval handles one input line and reports whether the REPL should continue
func (s *Session) Eval(line string) bool {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":help":
		fmt.Fprint(s.out, help)
	case ":reset":
		s.accepted = nil
		s.generator.Reset()
		color.New(color.FgYellow).Fprintln(s.out, "model cleared")
	case ":model":
		s.compileModel()
	default:
		s.addNode(line)
	}
	return true
}

func (s *Session) addNode(line string) {
	source := s.source(line)

	m, err := graphtext.LoadSource(sourceName, source)
	if err != nil {
		s.report(source, err)
		return
	}
	if m.Len() != len(s.accepted)+1 {
		color.New(color.FgRed).Fprintln(s.out, "expected exactly one node declaration")
		return
	}

	node := m.Nodes()[m.Len()-1]
	code, err := s.generator.CompileNode(node)
	if err != nil {
		s.report(source, err)
		return
	}

	s.accepted = append(s.accepted, line)
	fmt.Fprint(s.out, code)
}

func (s *Session) compileModel() {
	source := s.source("")
	m, err := graphtext.LoadSource(sourceName, source)
	if err == nil {
		var code string
		if code, err = s.generator.Compile(m); err == nil {
			s.summary(m)
			fmt.Fprint(s.out, code)
			return
		}
	}
	s.report(source, err)
}

func (s *Session) summary(m *graph.Model) {
	d := s.generator.Driver()
	color.New(color.FgCyan).Fprintf(s.out, "// %d nodes, %d inputs (%d values), %d outputs (%d values)\n",
		m.Len(), len(d.Inputs()), compiler.CountOutputs(d.Inputs()), len(d.Outputs()), compiler.CountOutputs(d.Outputs()))
}

func (s *Session) source(extra string) string {
	lines := append([]string{}, s.accepted...)
	if extra != "" {
		lines = append(lines, extra)
	}
	return strings.Join(lines, "\n")
}

func (s *Session) report(source string, err error) {
	reporter := errors.NewErrorReporter(sourceName, source)
	fmt.Fprint(s.out, reporter.FormatError(errors.FromError(err)))
}
