package scss

import (
	"slices"

	"styl2scss/ast"
)

// IsMixinBody reports whether a callable with the given body statements has to
// be declared as a mixin. Bodies that emit declarations, rules or at-rules, or
// that call other mixins, are mixins. Everything else is a function.
func IsMixinBody(stmts []ast.Node, globalMixins []string) bool {
	for _, s := range stmts {
		switch v := statement(s).(type) {
		case *ast.Property, *ast.Group, *ast.Atrule, *ast.Media, *ast.Supports, *ast.Keyframes, *ast.Extend:
			return true
		case *ast.Call, *ast.If:
			if IsMixinCall(v, globalMixins) {
				return true
			}
		}
	}
	return false
}

// IsMixinCall reports whether a statement invokes a mixin: a call with a
// content block or to a known global mixin, or a conditional with a mixin body
// in any branch.
func IsMixinCall(n ast.Node, globalMixins []string) bool {
	switch v := statement(n).(type) {
	case *ast.Call:
		return v.Block != nil || slices.Contains(globalMixins, v.Name)
	case *ast.If:
		if IsMixinBody(ast.Statements(v.Block), globalMixins) {
			return true
		}
		for _, e := range v.Elses {
			switch b := e.(type) {
			case *ast.If:
				if IsMixinCall(b, globalMixins) {
					return true
				}
			case *ast.Block:
				if IsMixinBody(b.Nodes, globalMixins) {
					return true
				}
			}
		}
	}
	return false
}

// MixinCalls returns the names of calls made in statement position anywhere
// below n that qualify as mixin calls, in order of first appearance.
func MixinCalls(n ast.Node, globalMixins []string) []string {
	var found []string
	ast.Walk(n, func(c ast.Node) bool {
		var stmts []ast.Node
		switch v := c.(type) {
		case *ast.Block:
			stmts = v.Nodes
		case *ast.Root:
			stmts = v.Nodes
		default:
			return true
		}
		for _, s := range stmts {
			call, ok := statement(s).(*ast.Call)
			if !ok || !IsMixinCall(call, globalMixins) || slices.Contains(found, call.Name) {
				continue
			}
			found = append(found, call.Name)
		}
		return true
	})
	return found
}

// statement unwraps an expression statement holding a single call.
func statement(n ast.Node) ast.Node {
	if e, ok := n.(*ast.Expression); ok && len(e.Nodes) == 1 {
		if c, ok := e.Nodes[0].(*ast.Call); ok {
			return c
		}
	}
	return n
}
