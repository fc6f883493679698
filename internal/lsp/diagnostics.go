package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"graphc/internal/compiler"
	"graphc/internal/emit"
	"graphc/internal/errors"
	"graphc/internal/graphtext"
)

// Diagnose parses, loads and compiles text and reports the first failure as a diagnostic.
// A clean document yields an empty, non-nil slice so stale diagnostics are cleared.
func Diagnose(path, text string, bindings []compiler.KindBinding) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	m, err := graphtext.LoadSource(path, text)
	if err == nil {
		_, err = emit.New(bindings).Compile(m)
	}
	if err != nil {
		diagnostics = append(diagnostics, ConvertError(errors.FromError(err)))
	}
	return diagnostics
}

// ConvertError transforms a compiler error into an LSP diagnostic
func ConvertError(err errors.CompilerError) protocol.Diagnostic {
	line := uint32(max(0, err.Position.Line-1))    // Convert to 0-based indexing
	start := uint32(max(0, err.Position.Column-1)) // Convert to 0-based indexing
	end := start + uint32(max(1, err.Length))

	var message string
	if err.HelpText != "" {
		message = err.Message + "\nhelp: " + err.HelpText
	} else {
		message = err.Message
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: err.Code},
		Source:   ptrString("graphc"),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
