package graphtext

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var GraphLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},

	// Arrow must come before Number so "->" is not read as a sign
	{Name: "Arrow", Pattern: `->`},
	{Name: "Number", Pattern: `[-+]?\d+(\.\d*)?([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(){}:,.=]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
