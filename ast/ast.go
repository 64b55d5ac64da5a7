// Package ast defines the Stylus syntax tree consumed by the converter.
//
// Trees are produced by an external parser and arrive as JSON (see Decode). The
// set of node types is closed: every concrete type implements Node through an
// unexported method so the renderer can switch over all of them exhaustively.
package ast

// Node is a single element of the syntax tree.
type Node interface {
	Kind() Kind
	Line() int
	node()
}

// Pos keeps the source line of a node.
type Pos struct {
	Lineno int
}

func (p Pos) Line() int { return p.Lineno }
func (Pos) node()       {}

type (
	// Root is the top of a parsed file.
	Root struct {
		Pos
		Nodes []Node
	}

	// Null is an absent value, e.g. an unbound identifier.
	Null struct {
		Pos
	}

	// Unknown keeps node kinds the decoder does not recognize.
	Unknown struct {
		Pos
		Type string
	}

	Import struct {
		Pos
		Path Node
		Once bool
	}

	Selector struct {
		Pos
		Segments []Node
		Optional bool
	}

	Group struct {
		Pos
		Nodes []Node
		Block *Block
	}

	Block struct {
		Pos
		Nodes []Node
		Scope bool
	}

	Property struct {
		Pos
		Segments []Node
		Expr     *Expression
	}

	// Ident is a name, optionally bound to a value. Binding to an Expression is a
	// variable declaration, binding to a Function is a callable declaration.
	Ident struct {
		Pos
		Name     string
		Val      Node
		Mixin    bool
		Property bool
		Rest     bool
	}

	Expression struct {
		Pos
		Nodes  []Node
		IsList bool
	}

	Call struct {
		Pos
		Name  string
		Args  *Arguments
		Block *Block
	}

	Arguments struct {
		Pos
		Nodes []Node
	}

	Params struct {
		Pos
		Nodes []Node
	}

	// If carries the else chain in Elses: either nested *If or a terminal *Block.
	If struct {
		Pos
		Cond    Node
		Block   *Block
		Elses   []Node
		Negate  bool
		Postfix bool
	}

	Each struct {
		Pos
		Val   string
		Key   string
		Expr  Node
		Block *Block
	}

	Function struct {
		Pos
		Name   string
		Params *Params
		Block  *Block
	}

	Return struct {
		Pos
		Expr Node
	}

	BinOp struct {
		Pos
		Op    string
		Left  Node
		Right Node
	}

	UnaryOp struct {
		Pos
		Op   string
		Expr Node
	}

	Ternary struct {
		Pos
		Cond      Node
		TrueExpr  Node
		FalseExpr Node
	}

	Unit struct {
		Pos
		Val  float64
		Type string
	}

	RGBA struct {
		Pos
		R, G, B float64
		A       float64
		Raw     string
		Name    string
	}

	Literal struct {
		Pos
		Val    string
		String bool
	}

	Boolean struct {
		Pos
		Val bool
	}

	String struct {
		Pos
		Val   string
		Quote string
	}

	// Object keeps its keys in source order.
	Object struct {
		Pos
		Keys []string
		Vals map[string]Node
	}

	Member struct {
		Pos
		Left  Node
		Right Node
	}

	Media struct {
		Pos
		Val   Node
		Block *Block
	}

	QueryList struct {
		Pos
		Nodes []Node
	}

	Query struct {
		Pos
		Nodes     []Node
		Type      Node
		Predicate string
	}

	Feature struct {
		Pos
		Segments []Node
		Expr     *Expression
	}

	Supports struct {
		Pos
		Condition Node
		Block     *Block
	}

	Keyframes struct {
		Pos
		Segments []Node
		Prefix   string
		Block    *Block
	}

	Namespace struct {
		Pos
		Val    Node
		Prefix string
	}

	Charset struct {
		Pos
		Val Node
	}

	Atrule struct {
		Pos
		Type     string
		Segments []Node
		Block    *Block
	}

	Extend struct {
		Pos
		Selectors []Node
	}

	Comment struct {
		Pos
		Str      string
		Suppress bool
		Inline   bool
	}
)

func (*Root) Kind() Kind       { return KindRoot }
func (*Null) Kind() Kind       { return KindNull }
func (*Unknown) Kind() Kind    { return KindUnknown }
func (*Import) Kind() Kind     { return KindImport }
func (*Selector) Kind() Kind   { return KindSelector }
func (*Group) Kind() Kind      { return KindGroup }
func (*Block) Kind() Kind      { return KindBlock }
func (*Property) Kind() Kind   { return KindProperty }
func (*Ident) Kind() Kind      { return KindIdent }
func (*Expression) Kind() Kind { return KindExpression }
func (*Call) Kind() Kind       { return KindCall }
func (*Arguments) Kind() Kind  { return KindArguments }
func (*Params) Kind() Kind     { return KindParams }
func (*If) Kind() Kind         { return KindIf }
func (*Each) Kind() Kind       { return KindEach }
func (*Function) Kind() Kind   { return KindFunction }
func (*Return) Kind() Kind     { return KindReturn }
func (*BinOp) Kind() Kind      { return KindBinOp }
func (*UnaryOp) Kind() Kind    { return KindUnaryOp }
func (*Ternary) Kind() Kind    { return KindTernary }
func (*Unit) Kind() Kind       { return KindUnit }
func (*RGBA) Kind() Kind       { return KindRGBA }
func (*Literal) Kind() Kind    { return KindLiteral }
func (*Boolean) Kind() Kind    { return KindBoolean }
func (*String) Kind() Kind     { return KindString }
func (*Object) Kind() Kind     { return KindObject }
func (*Member) Kind() Kind     { return KindMember }
func (*Media) Kind() Kind      { return KindMedia }
func (*QueryList) Kind() Kind  { return KindQueryList }
func (*Query) Kind() Kind      { return KindQuery }
func (*Feature) Kind() Kind    { return KindFeature }
func (*Supports) Kind() Kind   { return KindSupports }
func (*Keyframes) Kind() Kind  { return KindKeyframes }
func (*Namespace) Kind() Kind  { return KindNamespace }
func (*Charset) Kind() Kind    { return KindCharset }
func (*Atrule) Kind() Kind     { return KindAtrule }
func (*Extend) Kind() Kind     { return KindExtend }
func (*Comment) Kind() Kind    { return KindComment }

// IsNull reports whether n carries no value.
func IsNull(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*Null)
	return ok
}
