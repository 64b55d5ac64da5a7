package scss

import "styl2scss/ast"

// Small builders for hand made trees. Line 0 means "no line information".

func at(line int) ast.Pos { return ast.Pos{Lineno: line} }

func ref(name string, line int) *ast.Ident {
	return &ast.Ident{Pos: at(line), Name: name, Val: &ast.Null{}}
}

func decl(name string, line int, nodes ...ast.Node) *ast.Ident {
	return &ast.Ident{Pos: at(line), Name: name, Val: expr(line, nodes...)}
}

func px(v float64) *ast.Unit { return &ast.Unit{Val: v, Type: "px"} }

func num(v float64) *ast.Unit { return &ast.Unit{Val: v} }

func expr(line int, nodes ...ast.Node) *ast.Expression {
	return &ast.Expression{Pos: at(line), Nodes: nodes}
}

func block(line int, nodes ...ast.Node) *ast.Block {
	return &ast.Block{Pos: at(line), Nodes: nodes}
}

func prop(line int, name string, nodes ...ast.Node) *ast.Property {
	return &ast.Property{Pos: at(line), Segments: []ast.Node{ref(name, line)}, Expr: expr(line, nodes...)}
}

func rule(line int, selector string, body *ast.Block) *ast.Group {
	return &ast.Group{
		Pos:   at(line),
		Nodes: []ast.Node{&ast.Selector{Segments: []ast.Node{&ast.Literal{Pos: at(line), Val: selector}}}},
		Block: body,
	}
}

func call(line int, name string, args ...ast.Node) *ast.Call {
	return &ast.Call{Pos: at(line), Name: name, Args: &ast.Arguments{Nodes: args}}
}

func fn(line int, name string, params []string, body *ast.Block) *ast.Ident {
	p := &ast.Params{}
	for _, name := range params {
		p.Nodes = append(p.Nodes, ref(name, line))
	}
	return &ast.Ident{Pos: at(line), Name: name, Val: &ast.Function{Pos: at(line), Name: name, Params: p, Block: body}}
}

func root(nodes ...ast.Node) *ast.Root { return &ast.Root{Nodes: nodes} }

type fakeSymbols struct {
	constants map[string]Symbol
	mixins    map[string]Symbol
}

func (f fakeSymbols) Constant(name string) (Symbol, bool) {
	s, ok := f.constants[name]
	return s, ok
}

func (f fakeSymbols) Mixin(name string) (Symbol, bool) {
	s, ok := f.mixins[name]
	return s, ok
}
