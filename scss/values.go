package scss

import (
	"fmt"
	"strings"

	"styl2scss/ast"
)

var operators = map[string]string{
	"&&": "and",
	"||": "or",
	"!":  "not",
}

func (r *renderer) renderIdent(n *ast.Ident) string {
	switch v := n.Val.(type) {
	case nil, *ast.Null:
		return r.renderReference(n)
	case *ast.Expression:
		return r.renderDeclaration(n, v)
	case *ast.Function:
		return r.renderFunction(v)
	default:
		r.identDepth++
		defer func() { r.identDepth-- }()
		r.variables.add(n.Name)
		return sigil(n.Name) + ": " + strings.TrimSuffix(r.render(v), ";") + ";"
	}
}

func (r *renderer) renderReference(n *ast.Ident) string {
	name := n.Name
	if sym, ok := r.constant(name); ok {
		return sym.Alias + "." + sigil(name)
	}
	if r.inExpression && (n.Property || r.inCall) {
		if v, ok := r.lookupProperty(name); ok {
			return v
		}
	}
	if r.selectorDepth > 0 && r.inExpression && r.binOpDepth == 0 {
		return "#{" + r.variable(name) + "}"
	}
	if n.Mixin {
		if name == "block" {
			return "@content;"
		}
		return "#{" + sigil(name) + "}"
	}
	text := r.variable(name)
	if n.Rest {
		text += "..."
	}
	return text
}

func (r *renderer) renderDeclaration(n *ast.Ident, val *ast.Expression) string {
	r.identDepth++
	defer func() { r.identDepth-- }()

	for _, c := range val.Nodes {
		if _, ok := c.(*ast.Object); ok {
			r.objects.add(n.Name)
			break
		}
	}

	line := val.Line()
	if line == 0 {
		line = n.Line()
	}
	before := r.linesAndIndent(line)
	r.advance(line)

	parts := make([]string, 0, len(val.Nodes))
	for _, c := range val.Nodes {
		parts = append(parts, r.render(c))
	}
	sep := " "
	if val.IsList {
		sep = ", "
	}
	r.variables.add(n.Name)
	if r.depth == 0 && !r.inFunction {
		r.declared.Variables = append(r.declared.Variables, n.Name)
	}
	return before + sigil(n.Name) + ": " + trimFnSemicolon(strings.Join(parts, sep)) + ";"
}

func (r *renderer) renderExpression(n *ast.Expression) string {
	if n == nil {
		return ""
	}

	prev := r.inExpression
	r.inExpression = true

	// leading breaks follow the first value child, not the expression itself
	subLine, nested := 0, true
	for _, c := range n.Nodes {
		if _, ok := c.(*ast.Expression); ok || c == nil {
			continue
		}
		nested = false
		if l := c.Line(); l > 0 && (subLine == 0 || l < subLine) {
			subLine = l
		}
	}

	var before, pad string
	if !nested && subLine > n.Line() {
		before = r.lines(subLine)
		r.advance(subLine)
		if subLine > r.lastPropertyLine {
			pad = spaces(r.lastPropertyLength)
		}
	} else {
		before = r.lines(n.Line())
		if hasCall(n.Nodes) && !r.inObject && !r.isCallMixin() {
			pad = spaces(r.lastPropertyLength)
		}
		r.advance(n.Line())
	}

	var sb strings.Builder
	var comments []string
	first := true
	for _, c := range n.Nodes {
		if cm, ok := c.(*ast.Comment); ok {
			comments = append(comments, r.renderComment(cm, false))
			continue
		}
		text := r.render(c)
		if n == r.itemsOf {
			r.items = append(r.items, strings.TrimSpace(trimFnSemicolon(text)))
		}
		switch {
		case first:
			sb.WriteString(text)
		case r.inProperty && hasNodes(c):
			sb.WriteString(", " + text)
		default:
			sb.WriteString(" " + text)
		}
		first = false
	}
	r.inExpression = prev

	result := sb.String()
	if r.inProperty && strings.Contains(result, ");") {
		result = trimFnSemicolon(result) + ";"
	}
	if len(comments) > 0 {
		result += ";" + strings.Join(comments, " ")
	}

	if r.inCall || r.binOpDepth > 0 {
		if r.callName == "url" {
			return strings.Join(strings.Fields(result), "")
		}
		return result
	}

	if r.returnSymbol == "" || r.inIfExpr || r.returning {
		switch {
		case before != "" && pad != "":
			return trimSemicolon(before+r.indent()+pad+trimFirst(result), ";")
		case before != "" && strings.HasPrefix(result, "\n"):
			return before + result[1:]
		case before != "" && result != "":
			return before + r.indent() + trimFirst(result)
		}
		return result
	}

	// last value statement of a function body
	symbol := ""
	if r.nodesIndex+1 == r.nodesLength {
		symbol = r.returnSymbol
	}
	out := before + r.indent() + symbol + trimFirst(result)
	if symbol != "" && !strings.HasSuffix(out, ";") {
		out += ";"
	}
	return out
}

func hasCall(nodes []ast.Node) bool {
	for _, n := range nodes {
		if _, ok := n.(*ast.Call); ok {
			return true
		}
	}
	return false
}

func (r *renderer) renderCall(n *ast.Call) string {
	before := r.lines(n.Line())
	r.advance(n.Line())

	name := n.Name
	include := n.Block != nil || r.selectorDepth > 0 || r.globalMixins.has(name) || r.isCallMixin()
	if sym, ok := r.mixin(name); ok {
		name = sym.Alias + "." + name
		include = include || sym.IsMixin
	}
	if include {
		if before == "" {
			before = "\n"
		}
		before += r.indent() + "@include "
	}

	prevCall, prevName := r.inCall, r.callName
	r.inCall, r.callName = true, n.Name
	var args string
	if n.Args != nil {
		args = strings.ReplaceAll(r.renderArguments(n.Args.Nodes), ";", "")
	}
	r.inCall, r.callName = prevCall, prevName
	r.inCallParams = false

	block := ""
	if n.Block != nil {
		block = r.renderBlock(n.Block)
	}
	return before + name + "(" + args + ")" + block + ";"
}

func (r *renderer) renderArguments(nodes []ast.Node) string {
	r.argDepth++
	defer func() { r.argDepth-- }()

	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text := r.render(n)
		if _, ok := n.(*ast.Call); ok {
			r.inCallParams = true
		}
		if r.globalVariables.has(text) || (r.inFunction && isIdentifier(text)) {
			text = sigil(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) renderBinOp(n *ast.BinOp) string {
	r.binOpDepth++
	defer func() { r.binOpDepth-- }()

	switch n.Op {
	case "%":
		if tmpl, ok := calcTemplate(n.Left); ok {
			return r.renderCalc(tmpl, n.Right)
		}
	case "[]":
		return "map-get(" + r.render(n.Left) + ", " + r.render(n.Right) + ")"
	case "is defined":
		return strings.TrimSpace(trimSemicolon(r.render(n.Left), "")) + " !default"
	}

	left := r.render(n.Left)
	right := r.render(n.Right)
	if _, ok := n.Right.(*ast.Expression); ok {
		right = "(" + right + ")"
	}
	return left + " " + r.operator(n.Op) + " " + right
}

func (r *renderer) operator(op string) string {
	if r.negate {
		switch op {
		case "==":
			r.negated = true
			return "!="
		case "!=":
			r.negated = true
			return "=="
		}
	}
	if mapped, ok := operators[op]; ok {
		return mapped
	}
	return op
}

// calcTemplate returns the format string of a "calc(...)" % values expression.
func calcTemplate(n ast.Node) (string, bool) {
	var val string
	switch v := unwrap(n).(type) {
	case *ast.String:
		val = v.Val
	case *ast.Literal:
		val = v.Val
	default:
		return "", false
	}
	if !strings.HasPrefix(val, "calc(") {
		return "", false
	}
	return val, true
}

func (r *renderer) renderCalc(tmpl string, values ast.Node) string {
	parts := strings.Split(tmpl, "%s")
	count := len(parts) - 1
	switch count {
	case 0:
		r.fail(fmt.Errorf("%w: no %%s placeholder in %q", ErrMalformedCalc, tmpl))
		return ""
	case 1:
		return parts[0] + "(" + r.render(values) + ")" + parts[1]
	}

	expr, ok := values.(*ast.Expression)
	if !ok {
		r.fail(fmt.Errorf("%w: %q needs %d values, got a single %s", ErrMalformedCalc, tmpl, count, kindOf(values)))
		return ""
	}
	if len(expr.Nodes) != count {
		r.fail(fmt.Errorf("%w: %q needs %d values, got %d", ErrMalformedCalc, tmpl, count, len(expr.Nodes)))
		return ""
	}

	var sb strings.Builder
	sb.WriteString(parts[0])
	for i, v := range expr.Nodes {
		sb.WriteString("(" + r.render(v) + ")")
		sb.WriteString(parts[i+1])
	}
	return sb.String()
}

func kindOf(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return n.Kind().String()
}

func (r *renderer) renderUnaryOp(n *ast.UnaryOp) string {
	r.binOpDepth++
	defer func() { r.binOpDepth-- }()

	op := n.Op
	if mapped, ok := operators[op]; ok {
		op = mapped
	}
	return op + "(" + r.render(n.Expr) + ")"
}

func (r *renderer) renderTernary(n *ast.Ternary) string {
	before := r.lines(n.Line())
	r.advance(n.Line())

	r.binOpDepth++
	defer func() { r.binOpDepth-- }()

	// "x ?= value" arrives as a ternary over an "is defined" test
	if b, ok := unwrap(n.Cond).(*ast.BinOp); ok && b.Op == "is defined" {
		return before + r.render(b)
	}
	cond := r.render(n.Cond)
	yes := r.render(n.TrueExpr)
	no := r.render(n.FalseExpr)
	return before + "if(" + cond + ", " + yes + ", " + no + ")"
}

func (r *renderer) renderObject(n *ast.Object) string {
	prev := r.inObject
	r.inObject = true
	r.depth++
	pad := r.indent()

	var sb strings.Builder
	for i, key := range n.Keys {
		val := strings.Replace(r.render(n.Vals[key]), ";", "", 1)
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("\n" + pad + r.quote + key + r.quote + ": " + strings.TrimSpace(val))
	}
	r.advance(n.Line() + len(n.Keys) + 1)

	r.depth--
	r.inObject = prev
	return "(" + sb.String() + "\n" + r.indent() + ")"
}

func (r *renderer) renderMember(n *ast.Member) string {
	right := r.render(n.Right)
	if id, ok := n.Right.(*ast.Ident); ok {
		right = id.Name
	}
	if name := rootName(n.Left); name != "" && r.objects.has(name) {
		return "map-get(" + r.render(n.Left) + ", " + r.quote + right + r.quote + ")"
	}
	return r.render(n.Left) + "." + right
}

// rootName follows the left side of nested members down to the base name.
func rootName(n ast.Node) string {
	for {
		switch v := n.(type) {
		case *ast.Member:
			n = v.Left
		case *ast.Ident:
			return v.Name
		default:
			return ""
		}
	}
}

func (r *renderer) renderLiteral(n *ast.Literal) string {
	return n.Val
}
