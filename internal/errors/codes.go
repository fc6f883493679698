package errors

// Error codes for the graphc toolchain.
//
// Error code ranges:
// G0001-G0099: Compilation errors
// G0100-G0199: Model description errors
// G0900-G0999: Tooling errors

const (
	// G0001: Node kind not registered, or no lowering routine for it
	ErrorUnsupportedNodeKind = "G0001"

	// G0002: Port type differs from the type a lowering routine requires
	ErrorPortTypeMismatch = "G0002"

	// G0003: Operation not supported by the backend
	ErrorUnsupportedOperator = "G0003"

	// G0100: Syntax error in a model description
	ErrorSyntax = "G0100"

	// G0101: Reference to a node that is not declared above
	ErrorUndefinedNode = "G0101"

	// G0102: Reference to an output port the node does not have
	ErrorBadPortRef = "G0102"

	// G0103: Node declared twice
	ErrorDuplicateNode = "G0103"

	// G0900: Anything not produced by the compiler itself
	ErrorInternal = "G0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnsupportedNodeKind:
		return "Node kind is not registered or has no lowering routine"
	case ErrorPortTypeMismatch:
		return "Port type does not match the type required by the lowering routine"
	case ErrorUnsupportedOperator:
		return "Operation is not supported by the code generator"
	case ErrorSyntax:
		return "Model description could not be parsed"
	case ErrorUndefinedNode:
		return "Node is used before it is declared"
	case ErrorBadPortRef:
		return "Referenced output port does not exist"
	case ErrorDuplicateNode:
		return "Node name is declared more than once"
	case ErrorInternal:
		return "Internal or I/O error"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "G0001" && code < "G0100":
		return "Compilation"
	case code >= "G0100" && code < "G0200":
		return "Model Description"
	case code >= "G0900" && code < "G1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
