package scss

import (
	"regexp"
	"strings"

	"styl2scss/ast"
)

func (r *renderer) renderIf(n *ast.If, keyword string) string {
	before := ""
	if keyword == "@if " {
		before = r.linesAndIndent(n.Line())
		r.advance(n.Line())
	}

	prevIfExpr, prevCond, prevNegate, prevNegated := r.inIfExpr, r.inCond, r.negate, r.negated
	r.inIfExpr, r.inCond, r.negate, r.negated = true, true, n.Negate, false
	cond := strings.TrimSpace(trimSemicolon(r.render(n.Cond), ""))
	if n.Negate && !r.negated {
		cond = "not (" + cond + ")"
	}
	r.inIfExpr, r.inCond, r.negate, r.negated = prevIfExpr, prevCond, prevNegate, prevNegated

	var sb strings.Builder
	sb.WriteString(before + keyword + cond + r.renderBlock(n.Block))
	for _, e := range n.Elses {
		r.lastLine++
		switch v := e.(type) {
		case *ast.If:
			sb.WriteString(r.renderIf(v, " @else if "))
		case *ast.Block:
			sb.WriteString(" @else" + r.renderBlock(v))
		}
	}
	return sb.String()
}

func (r *renderer) renderEach(n *ast.Each) string {
	before := r.lines(n.Line()) + r.indent()
	r.advance(n.Line())

	r.variables.add(n.Val)
	if n.Key != "" {
		r.variables.add(n.Key)
	}

	var head string
	if rng, ok := unwrap(n.Expr).(*ast.BinOp); ok && (rng.Op == ".." || rng.Op == "...") {
		r.binOpDepth++
		from, to := r.render(rng.Left), r.render(rng.Right)
		r.binOpDepth--
		bound := "through"
		if rng.Op == "..." {
			bound = "to"
		}
		head = "@for " + sigil(n.Val) + " from " + from + " " + bound + " " + to
	} else {
		var items []string
		var nodes []ast.Node
		if e, ok := n.Expr.(*ast.Expression); ok {
			nodes = e.Nodes
		} else if n.Expr != nil {
			nodes = []ast.Node{n.Expr}
		}
		r.binOpDepth++
		for _, c := range nodes {
			text := r.renderHeader(func() string { return r.render(c) })
			if _, ok := c.(*ast.Ident); ok {
				text = sigil(text)
			}
			items = append(items, text)
		}
		r.binOpDepth--
		vars := sigil(n.Val)
		if n.Key != "" {
			vars += ", " + sigil(n.Key)
		}
		head = "@each " + vars + " in " + strings.Join(items, ", ")
	}
	return before + head + r.renderBlock(n.Block)
}

var reDoubleSigil = regexp.MustCompile(`\$ +\$`)

// renderFunction emits a callable as @mixin or @function depending on the
// shape of its body.
func (r *renderer) renderFunction(n *ast.Function) string {
	before := r.lines(n.Line()) + r.indent()
	r.advance(n.Line())

	mixin := IsMixinBody(ast.Statements(n.Block), r.opts.GlobalMixins)
	if r.depth == 0 && !r.inFunction {
		if mixin {
			r.declared.Mixins = append(r.declared.Mixins, n.Name)
		} else {
			r.declared.Functions = append(r.declared.Functions, n.Name)
		}
	}

	prevFunction, prevReturn, prevParams := r.inFunction, r.returnSymbol, r.params
	defer func() { r.inFunction, r.returnSymbol, r.params = prevFunction, prevReturn, prevParams }()

	r.inFunction = true
	keyword := "@mixin "
	r.returnSymbol = ""
	if !mixin {
		keyword = "@function "
		r.returnSymbol = "@return "
	}

	r.params = r.params.clone()
	var params []ast.Node
	if n.Params != nil {
		params = n.Params.Nodes
	}
	for _, p := range params {
		if id, ok := p.(*ast.Ident); ok {
			r.params.add(id.Name)
		}
	}

	parts := make([]string, 0, len(params))
	r.argDepth++
	for _, p := range params {
		text := trimFirst(trimSemicolon(r.render(p), ""))
		if id, ok := p.(*ast.Ident); ok {
			r.variables.add(id.Name)
		}
		parts = append(parts, sigil(text))
	}
	r.argDepth--
	head := keyword + n.Name + "(" + reDoubleSigil.ReplaceAllString(strings.Join(parts, ", "), "$") + ")"

	return before + head + r.renderBlock(n.Block)
}

var reLineBreaks = regexp.MustCompile(`\n\s*`)

func (r *renderer) renderReturn(n *ast.Return) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	prev := r.returning
	r.returning = true
	text := r.render(n.Expr)
	r.returning = prev

	text = strings.TrimSuffix(strings.TrimSpace(reLineBreaks.ReplaceAllString(text, "")), ";")
	if r.returnSymbol != "" {
		return before + "@return " + text + ";"
	}
	return before + "@return $" + strings.ReplaceAll(text, "$", "") + ";"
}
