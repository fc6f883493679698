package graphtext

import "github.com/alecthomas/participle/v2/lexer"

// File is one model description:
//
//	model adder
//	node a: Input -> double
//	node b: ConstantNode -> double { value = 3.5 }
//	node c: BinaryOperationNode(a, b.0) -> double { op = "add" }
type File struct {
	Pos   lexer.Position
	Name  string      `( "model" @Ident )?`
	Nodes []*NodeDecl `@@*`
}

type NodeDecl struct {
	Pos     lexer.Position
	Name    string     `"node" @Ident ":"`
	Kind    string     `@Ident`
	Inputs  []*PortRef `( "(" ( @@ ( "," @@ )* )? ")" )?`
	Outputs []string   `( "->" @Ident ( "," @Ident )* )?`
	Attrs   []*Attr    `( "{" @@* "}" )?`
}

type PortRef struct {
	Pos   lexer.Position
	Node  string `@Ident`
	Index int    `( "." @Number )?`
}

type Attr struct {
	Pos   lexer.Position
	Key   string `@Ident "="`
	Value *Value `@@`
}

type Value struct {
	Str    *string `  @String`
	Number *string `| @Number`
	Ident  *string `| @Ident`
}

// Text returns the attribute value as written, strings unquoted
func (v *Value) Text() string {
	switch {
	case v.Str != nil:
		return *v.Str
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	}
	return ""
}
