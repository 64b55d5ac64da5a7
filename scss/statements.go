package scss

import (
	"fmt"
	"regexp"
	"strings"

	"styl2scss/ast"
)

var reStylExt = regexp.MustCompile(`\.styl$`)

func (r *renderer) renderImport(n *ast.Import) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	var path, quote string
	switch v := n.Path.(type) {
	case *ast.Expression:
		for _, c := range v.Nodes {
			switch s := c.(type) {
			case *ast.String:
				path, quote = path+s.Val, s.Quote
			case *ast.Literal:
				path += s.Val
			default:
				path += r.render(c)
			}
		}
	case *ast.String:
		path, quote = v.Val, v.Quote
	default:
		path = r.render(v)
	}
	if quote == "" {
		quote = r.quote
	}
	return before + "@import " + quote + reStylExt.ReplaceAllString(path, ".scss") + quote + ";"
}

func (r *renderer) renderSelector(n *ast.Selector) string {
	r.selectorDepth++
	defer func() { r.selectorDepth-- }()

	before := ""
	if len(n.Segments) > 0 {
		if line := n.Segments[len(n.Segments)-1].Line(); line > 0 {
			before = r.lines(line)
			r.advance(line)
		}
	}
	return before + r.indent() + r.renderNodes(n.Segments)
}

func (r *renderer) renderGroup(n *ast.Group) string {
	before := r.lines(n.Line())
	r.advance(n.Line())

	var sb strings.Builder
	for i, sel := range n.Nodes {
		text := r.render(sel)
		switch {
		case i == 0:
			sb.WriteString(text)
		case strings.HasPrefix(text, "\n"):
			sb.WriteString("," + text)
		default:
			sb.WriteString(", " + trimFirst(text))
		}
	}

	text := sb.String()
	if r.inKeyframes && strings.ContainsAny(text, "-*+/$") {
		trimmed := trimFirst(text)
		text = text[:len(text)-len(trimmed)] + "#{" + trimmed + "}"
	}
	return before + text + r.renderBlock(n.Block)
}

// renderBlock renders braces around a statement list one level deeper.
func (r *renderer) renderBlock(n *ast.Block) string {
	r.depth++
	text := r.renderNodes(ast.Statements(n))

	result := text
	if r.inFunction && text != "" && !strings.Contains(text, "\n") && !strings.Contains(text, "@return") {
		// a body written on the declaration line
		r.lastLine++
		result = "\n" + r.indent() + r.returnSymbol + trimFirst(text)
	}
	r.depth--

	if strings.TrimSpace(result) == "" {
		return " {}"
	}
	if !strings.HasPrefix(result, "\n") {
		result = "\n" + spaces((r.depth+1)*2) + trimFirst(result)
	}
	return " {" + result + "\n" + r.indent() + "}"
}

func (r *renderer) renderProperty(n *ast.Property) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	prev := r.inProperty
	r.inProperty = true
	name := r.renderSegments(n.Segments)
	r.lastPropertyLine = n.Line()
	r.lastPropertyLength = len(name) + 2

	// a value bound inline ("width: w = 10px") becomes a local variable
	if n.Expr != nil && len(n.Expr.Nodes) == 1 {
		if id, ok := n.Expr.Nodes[0].(*ast.Ident); ok {
			if _, ok := id.Val.(*ast.Expression); ok {
				decl := trimFirst(r.render(n.Expr))
				r.inProperty = prev
				value := sigil(id.Name)
				r.pushProperty(name, value)
				return before + decl + before + name + ": " + value + ";"
			}
		}
	}

	value, items := r.renderValue(n.Expr)
	r.inProperty = prev
	r.pushProperty(name, value)

	if items != nil {
		for _, rewrite := range r.opts.Rewriters {
			if decls, ok := rewrite(name, items); ok {
				return r.renderDeclarations(before, decls)
			}
		}
	}
	return trimSemicolon(before+name+": "+value, ";")
}

// renderValue renders a property value. When rewriters are configured it
// also returns the rendered top level items of the value.
func (r *renderer) renderValue(n *ast.Expression) (string, []string) {
	if n == nil {
		return "", nil
	}
	if len(r.opts.Rewriters) == 0 {
		return r.renderExpression(n), nil
	}

	prevOf, prevItems := r.itemsOf, r.items
	r.itemsOf, r.items = n, make([]string, 0, len(n.Nodes))
	value := r.renderExpression(n)
	items := r.items
	r.itemsOf, r.items = prevOf, prevItems
	return value, items
}

// renderSegments renders a property name. Interpolated parts become #{...}.
func (r *renderer) renderSegments(segments []ast.Node) string {
	var sb strings.Builder
	for _, s := range segments {
		switch v := s.(type) {
		case *ast.Ident:
			if ast.IsNull(v.Val) {
				sb.WriteString(v.Name)
				continue
			}
		case *ast.Expression:
			sb.WriteString("#{" + strings.TrimSpace(r.render(v)) + "}")
			continue
		}
		sb.WriteString(r.render(s))
	}
	return sb.String()
}

func (r *renderer) renderDeclarations(before string, decls []Declaration) string {
	var sb strings.Builder
	for i, d := range decls {
		if i == 0 {
			sb.WriteString(before)
		} else {
			sb.WriteString("\n" + r.indent())
		}
		sb.WriteString(d.Name + ": " + d.Value + ";")
	}
	return sb.String()
}

func (r *renderer) renderMedia(n *ast.Media) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())
	query := r.renderHeader(func() string { return r.render(n.Val) })
	return before + "@media " + query + r.renderBlock(n.Block)
}

func (r *renderer) renderQueryList(n *ast.QueryList) string {
	parts := make([]string, 0, len(n.Nodes))
	for _, q := range n.Nodes {
		parts = append(parts, r.render(q))
	}
	return strings.Join(parts, ", ")
}

func (r *renderer) renderQuery(n *ast.Query) string {
	parts := make([]string, 0, len(n.Nodes)+1)
	if typ := strings.TrimSpace(r.render(n.Type)); typ != "" {
		parts = append(parts, typ)
	}
	for _, f := range n.Nodes {
		parts = append(parts, r.render(f))
	}
	text := strings.Join(parts, " and ")
	if n.Predicate != "" {
		text = n.Predicate + " " + text
	}
	return text
}

func (r *renderer) renderFeature(n *ast.Feature) string {
	name := r.renderNodes(n.Segments)
	if n.Expr == nil || len(n.Expr.Nodes) == 0 {
		return "(" + name + ")"
	}
	r.binOpDepth++
	value := r.renderExpression(n.Expr)
	r.binOpDepth--
	return "(" + name + ": " + strings.TrimSpace(trimFnSemicolon(value)) + ")"
}

func (r *renderer) renderSupports(n *ast.Supports) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())
	cond := r.renderHeader(func() string { return strings.TrimSpace(r.render(n.Condition)) })
	return before + "@supports " + cond + r.renderBlock(n.Block)
}

var keyframesPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-", ""}

func (r *renderer) renderKeyframes(n *ast.Keyframes) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	stmts := ast.Statements(n.Block)
	if len(stmts) > 0 {
		if _, ok := stmts[0].(*ast.Expression); ok {
			name := strings.TrimSpace(r.renderNodes(n.Segments))
			r.fail(fmt.Errorf("%w: @keyframes %s at line %d", ErrMalformedKeyframes, name, n.Line()))
			return ""
		}
	}

	prev := r.inKeyframes
	r.inKeyframes = true
	defer func() { r.inKeyframes = prev }()

	mixinStyle := false
	for _, s := range n.Segments {
		if _, ok := s.(*ast.Expression); ok {
			mixinStyle = true
			break
		}
	}

	name := strings.TrimSpace(r.renderNodes(n.Segments))
	if mixinStyle {
		name = "#{" + name + "}"
	}
	body := r.renderBlock(n.Block)

	if !r.opts.Autoprefixer {
		return before + keyframesKeyword(n.Prefix) + name + body
	}

	var sb strings.Builder
	for i, prefix := range keyframesPrefixes {
		if i == 0 {
			sb.WriteString(before)
		} else {
			sb.WriteString("\n" + r.indent())
		}
		sb.WriteString("@" + prefix + "keyframes " + name + body)
	}
	return sb.String()
}

// keyframesKeyword keeps an explicit vendor prefix written in the source.
func keyframesKeyword(prefix string) string {
	if prefix == "" || prefix == "official" {
		return "@keyframes "
	}
	return "@-" + strings.Trim(prefix, "-") + "-keyframes "
}

func (r *renderer) renderNamespace(n *ast.Namespace) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	prefix := ""
	if n.Prefix != "" {
		prefix = n.Prefix + " "
	}
	if s, ok := n.Val.(*ast.String); ok {
		return before + "@namespace " + prefix + s.Quote + s.Val + s.Quote + ";"
	}

	prev := r.inNamespace
	r.inNamespace = true
	text := strings.TrimSpace(r.render(n.Val))
	r.inNamespace = prev
	return before + "@namespace " + prefix + strings.TrimSuffix(text, ";") + ";"
}

func (r *renderer) renderCharset(n *ast.Charset) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	var value string
	switch v := n.Val.(type) {
	case *ast.String:
		value = v.Quote + v.Val + v.Quote
	case *ast.Literal:
		value = r.quote + v.Val + r.quote
	default:
		value = strings.TrimSpace(r.render(v))
	}
	return before + "@charset " + value + ";"
}

func (r *renderer) renderAtrule(n *ast.Atrule) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	text := "@" + n.Type
	if len(n.Segments) > 0 {
		text += " " + r.renderHeader(func() string { return strings.TrimSpace(r.renderNodes(n.Segments)) })
	}
	if n.Block == nil {
		return before + text + ";"
	}
	return before + text + r.renderBlock(n.Block)
}

func (r *renderer) renderExtend(n *ast.Extend) string {
	before := r.linesAndIndent(n.Line())
	r.advance(n.Line())

	parts := make([]string, 0, len(n.Selectors))
	for _, s := range n.Selectors {
		parts = append(parts, trimFirst(r.render(s)))
	}
	return before + "@extend " + strings.Join(parts, ", ") + ";"
}

func (r *renderer) renderComment(n *ast.Comment, inline bool) string {
	before := " "
	if !inline {
		before = r.linesAndIndent(n.Line())
	}
	r.advance(n.Line() + strings.Count(n.Str, "\n"))

	text := n.Str
	if !n.Suppress && strings.HasPrefix(text, "/*") && !strings.HasPrefix(text, "/*!") {
		text = "/*!" + text[2:]
	}
	return before + text
}
