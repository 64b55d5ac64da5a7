package scss

import (
	"strconv"
	"strings"
	"unicode"

	"styl2scss/ast"
)

type names map[string]struct{}

func newNames(list ...string) names {
	n := make(names, len(list))
	for _, s := range list {
		n.add(s)
	}
	return n
}

func (n names) add(name string) { n[name] = struct{}{} }

func (n names) has(name string) bool {
	_, ok := n[name]
	return ok
}

func (n names) clone() names {
	c := make(names, len(n))
	for k := range n {
		c[k] = struct{}{}
	}
	return c
}

// lines returns the line breaks needed to move output to the given source
// line. The cursor itself is moved by advance.
func (r *renderer) lines(line int) string {
	if line > r.lastLine {
		return strings.Repeat("\n", line-r.lastLine)
	}
	return ""
}

func (r *renderer) advance(line int) {
	if line > r.lastLine {
		r.lastLine = line
	}
}

func (r *renderer) indent() string {
	return spaces(r.depth * 2)
}

func (r *renderer) linesAndIndent(line int) string {
	return r.lines(line) + r.indent()
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func sigil(name string) string {
	return "$" + strings.TrimPrefix(name, "$")
}

// trimSemicolon removes every semicolon outside of quoted strings and appends
// suffix.
func trimSemicolon(s, suffix string) string {
	var sb strings.Builder
	sb.Grow(len(s) + len(suffix))
	var quote rune
	for _, c := range s {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			continue
		}
		sb.WriteRune(c)
	}
	sb.WriteString(suffix)
	return sb.String()
}

func trimFnSemicolon(s string) string {
	return strings.ReplaceAll(s, ");", ")")
}

func trimFirst(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func formatUnit(u *ast.Unit) string {
	return strconv.FormatFloat(u.Val, 'f', -1, 64) + u.Type
}

func formatRGBA(c *ast.RGBA) string {
	if c.Raw != "" {
		return strings.Join(strings.Fields(c.Raw), "")
	}
	if c.Name != "" {
		return c.Name
	}
	num := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	if c.A == 1 {
		return "rgb(" + num(c.R) + "," + num(c.G) + "," + num(c.B) + ")"
	}
	return "rgba(" + num(c.R) + "," + num(c.G) + "," + num(c.B) + "," + num(c.A) + ")"
}

// hasNodes reports whether n is a list node with at least one element.
func hasNodes(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Expression:
		return len(v.Nodes) > 0
	case *ast.Arguments:
		return len(v.Nodes) > 0
	case *ast.Params:
		return len(v.Nodes) > 0
	case *ast.Block:
		return len(v.Nodes) > 0
	case *ast.Group:
		return len(v.Nodes) > 0
	case *ast.QueryList:
		return len(v.Nodes) > 0
	case *ast.Query:
		return len(v.Nodes) > 0
	}
	return false
}

// unwrap returns the only element of a single element expression.
func unwrap(n ast.Node) ast.Node {
	if e, ok := n.(*ast.Expression); ok && len(e.Nodes) == 1 {
		return e.Nodes[0]
	}
	return n
}

func isIdentifier(s string) bool {
	if s == "" || s == "true" || s == "false" || s == "null" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || unicode.IsLetter(c):
		case i > 0 && (c == '-' || unicode.IsDigit(c)):
		case i == 0 && c == '-' && len(s) > 1:
		default:
			return false
		}
	}
	return true
}
