package emit

import (
	"fmt"
	"strings"
)

// writer accumulates indented source lines
type writer struct {
	indent int
	output strings.Builder
}

func (w *writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.output.WriteString("    ")
	}
}

func (w *writer) writeLine(format string, args ...interface{}) {
	w.writeIndent()
	w.output.WriteString(fmt.Sprintf(format, args...))
	w.output.WriteString("\n")
}

func (w *writer) String() string {
	return w.output.String()
}

func (w *writer) reset() {
	w.indent = 0
	w.output.Reset()
}
