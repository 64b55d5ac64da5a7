// Package scss renders Stylus syntax trees as SCSS text.
//
// Rendering is a single recursive pass over the tree. All state lives in a
// renderer value created per call to Render, so independent files may be
// converted concurrently.
package scss

import (
	"fmt"
	"regexp"
	"strings"

	"styl2scss/ast"
)

type renderer struct {
	opts  Options
	quote string

	// output position
	lastLine int
	depth    int

	// enclosing constructs
	inCall       bool
	inCallParams bool
	inCond       bool
	inIfExpr     bool
	inObject     bool
	inFunction   bool
	inProperty   bool
	inNamespace  bool
	inKeyframes  bool
	inExpression bool
	returning    bool
	negate       bool
	negated      bool

	argDepth      int
	identDepth    int
	selectorDepth int
	binOpDepth    int
	headerDepth   int

	callName     string
	returnSymbol string
	nodesIndex   int
	nodesLength  int

	lastPropertyLine   int
	lastPropertyLength int
	properties         []binding

	// rendered items of the value handed to property rewriters
	itemsOf *ast.Expression
	items   []string

	variables       names
	params          names
	objects         names
	globalVariables names
	globalMixins    names

	uses     useTable
	declared Result
	err      error
	warnings []string
}

type binding struct {
	name  string
	value string
}

// Render converts a parsed file. The returned text starts with the collected
// @use lines and ends with a single newline.
func Render(root *ast.Root, opts Options) (*Result, error) {
	r := newRenderer(opts)

	var nodes []ast.Node
	if root != nil {
		nodes = root.Nodes
	}
	text := r.renderNodes(nodes)
	if r.err != nil {
		return nil, r.err
	}

	text = indentLines(text, opts.IndentVueStyleBlock)
	text = strings.ReplaceAll(text, ">>>", "/deep/")
	text = strings.TrimRight(text, "\n")

	res := r.declared
	res.Text = r.uses.header() + text + "\n"
	res.Uses = r.uses.list()
	res.Warnings = r.warnings
	return &res, nil
}

func newRenderer(opts Options) *renderer {
	r := &renderer{
		opts:            opts,
		quote:           opts.Quote,
		lastLine:        1,
		variables:       names{},
		params:          names{},
		objects:         names{},
		globalVariables: newNames(opts.GlobalVariables...),
		globalMixins:    newNames(opts.GlobalMixins...),
	}
	if r.quote == "" {
		r.quote = "'"
	}
	return r
}

func (r *renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *renderer) warnf(n ast.Node, format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf("line %d: ", n.Line())+fmt.Sprintf(format, args...))
}

func (r *renderer) render(n ast.Node) string {
	if r.err != nil {
		return ""
	}

	switch v := n.(type) {
	case nil, *ast.Null:
		return ""
	case *ast.Root:
		return r.renderNodes(v.Nodes)
	case *ast.Import:
		return r.renderImport(v)
	case *ast.Selector:
		return r.renderSelector(v)
	case *ast.Group:
		return r.renderGroup(v)
	case *ast.Block:
		return r.renderBlock(v)
	case *ast.Property:
		return r.renderProperty(v)
	case *ast.Ident:
		return r.renderIdent(v)
	case *ast.Expression:
		return r.renderExpression(v)
	case *ast.Call:
		return r.renderCall(v)
	case *ast.Arguments:
		return r.renderArguments(v.Nodes)
	case *ast.Params:
		return r.renderArguments(v.Nodes)
	case *ast.If:
		return r.renderIf(v, "@if ")
	case *ast.Each:
		return r.renderEach(v)
	case *ast.Function:
		return r.renderFunction(v)
	case *ast.Return:
		return r.renderReturn(v)
	case *ast.BinOp:
		return r.renderBinOp(v)
	case *ast.UnaryOp:
		return r.renderUnaryOp(v)
	case *ast.Ternary:
		return r.renderTernary(v)
	case *ast.Unit:
		return formatUnit(v)
	case *ast.RGBA:
		return formatRGBA(v)
	case *ast.Literal:
		return r.renderLiteral(v)
	case *ast.Boolean:
		if v.Val {
			return "true"
		}
		return "false"
	case *ast.String:
		return v.Quote + v.Val + v.Quote
	case *ast.Object:
		return r.renderObject(v)
	case *ast.Member:
		return r.renderMember(v)
	case *ast.Media:
		return r.renderMedia(v)
	case *ast.QueryList:
		return r.renderQueryList(v)
	case *ast.Query:
		return r.renderQuery(v)
	case *ast.Feature:
		return r.renderFeature(v)
	case *ast.Supports:
		return r.renderSupports(v)
	case *ast.Keyframes:
		return r.renderKeyframes(v)
	case *ast.Namespace:
		return r.renderNamespace(v)
	case *ast.Charset:
		return r.renderCharset(v)
	case *ast.Atrule:
		return r.renderAtrule(v)
	case *ast.Extend:
		return r.renderExtend(v)
	case *ast.Comment:
		return r.renderComment(v, false)
	case *ast.Unknown:
		r.warnf(v, "unsupported node %q skipped", v.Type)
		return ""
	default:
		r.warnf(n, "unsupported node %s skipped", n.Kind())
		return ""
	}
}

// renderNodes renders a statement list. A comment sharing a line with the
// previous statement stays on that line.
func (r *renderer) renderNodes(nodes []ast.Node) string {
	prevIndex, prevLength := r.nodesIndex, r.nodesLength
	defer func() { r.nodesIndex, r.nodesLength = prevIndex, prevLength }()

	r.nodesLength = len(nodes)
	var sb strings.Builder
	for i, n := range nodes {
		r.nodesIndex = i
		if c, ok := n.(*ast.Comment); ok {
			inline := i > 0 && c.Line() > 0 && nodes[i-1] != nil && nodes[i-1].Line() == c.Line()
			sb.WriteString(r.renderComment(c, inline))
			continue
		}
		sb.WriteString(r.render(n))
	}
	return sb.String()
}

var reNonBlankLine = regexp.MustCompile(`(?m)^(.*\S.*)$`)

func indentLines(text string, n int) string {
	if n <= 0 {
		return text
	}
	return reNonBlankLine.ReplaceAllString(text, spaces(n)+"$1")
}

// renderHeader renders the head of an at-rule or a loop, where calls are
// values and never statements.
func (r *renderer) renderHeader(render func() string) string {
	r.headerDepth++
	defer func() { r.headerDepth-- }()
	return trimFnSemicolon(render())
}

// isCallMixin reports whether a call at the current position is a statement
// and therefore has to be emitted as @include.
func (r *renderer) isCallMixin() bool {
	return !r.inProperty &&
		!r.inObject &&
		!r.inNamespace &&
		!r.inKeyframes &&
		!r.inCond &&
		!r.inCallParams &&
		!r.returning &&
		r.argDepth == 0 &&
		r.identDepth == 0 &&
		r.headerDepth == 0 &&
		r.returnSymbol == ""
}

func (r *renderer) pushProperty(name, value string) {
	r.properties = append(r.properties, binding{name: name, value: value})
}

// lookupProperty returns the value of the most recent declaration of name.
func (r *renderer) lookupProperty(name string) (string, bool) {
	for i := len(r.properties) - 1; i >= 0; i-- {
		if r.properties[i].name == name {
			return r.properties[i].value, true
		}
	}
	return "", false
}

// constant resolves name in the shared registry, recording the module use.
func (r *renderer) constant(name string) (Symbol, bool) {
	if r.opts.Symbols == nil {
		return Symbol{}, false
	}
	sym, ok := r.opts.Symbols.Constant(name)
	if !ok || sym.Module == r.opts.Module {
		return Symbol{}, false
	}
	r.uses.record(sym.Module, sym.Alias)
	return sym, true
}

func (r *renderer) mixin(name string) (Symbol, bool) {
	if r.opts.Symbols == nil {
		return Symbol{}, false
	}
	sym, ok := r.opts.Symbols.Mixin(name)
	if !ok || sym.Module == r.opts.Module {
		return Symbol{}, false
	}
	r.uses.record(sym.Module, sym.Alias)
	return sym, true
}

// variable returns name in variable form when it is known to be one.
func (r *renderer) variable(name string) string {
	if r.variables.has(name) || r.params.has(name) || r.globalVariables.has(name) {
		return sigil(name)
	}
	return name
}
