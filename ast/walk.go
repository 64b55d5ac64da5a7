package ast

// Children returns the direct child nodes of n in source order. Absent
// children are skipped, so the result is never nil for a non-nil node.
func Children(n Node) []Node {
	out := []Node{}
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if !isNilNode(c) {
				out = append(out, c)
			}
		}
	}

	switch v := n.(type) {
	case *Root:
		add(v.Nodes...)
	case *Import:
		add(v.Path)
	case *Selector:
		add(v.Segments...)
	case *Group:
		add(v.Nodes...)
		add(blockNode(v.Block))
	case *Block:
		add(v.Nodes...)
	case *Property:
		add(v.Segments...)
		add(exprNode(v.Expr))
	case *Ident:
		add(v.Val)
	case *Expression:
		add(v.Nodes...)
	case *Call:
		if v.Args != nil {
			add(v.Args)
		}
		add(blockNode(v.Block))
	case *Arguments:
		add(v.Nodes...)
	case *Params:
		add(v.Nodes...)
	case *If:
		add(v.Cond)
		add(blockNode(v.Block))
		add(v.Elses...)
	case *Each:
		add(v.Expr)
		add(blockNode(v.Block))
	case *Function:
		if v.Params != nil {
			add(v.Params)
		}
		add(blockNode(v.Block))
	case *Return:
		add(v.Expr)
	case *BinOp:
		add(v.Left, v.Right)
	case *UnaryOp:
		add(v.Expr)
	case *Ternary:
		add(v.Cond, v.TrueExpr, v.FalseExpr)
	case *Object:
		for _, k := range v.Keys {
			add(v.Vals[k])
		}
	case *Member:
		add(v.Left, v.Right)
	case *Media:
		add(v.Val)
		add(blockNode(v.Block))
	case *QueryList:
		add(v.Nodes...)
	case *Query:
		add(v.Type)
		add(v.Nodes...)
	case *Feature:
		add(v.Segments...)
		add(exprNode(v.Expr))
	case *Supports:
		add(v.Condition)
		add(blockNode(v.Block))
	case *Keyframes:
		add(v.Segments...)
		add(blockNode(v.Block))
	case *Namespace:
		add(v.Val)
	case *Charset:
		add(v.Val)
	case *Atrule:
		add(v.Segments...)
		add(blockNode(v.Block))
	case *Extend:
		add(v.Selectors...)
	}
	return out
}

// Statements returns the nodes of a block, empty for a nil block.
func Statements(b *Block) []Node {
	if b == nil {
		return []Node{}
	}
	return b.Nodes
}

// Walk visits n and its descendants depth first. Children of a node are
// skipped when fn returns false for it.
func Walk(n Node, fn func(Node) bool) {
	if isNilNode(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

func blockNode(b *Block) Node {
	if b == nil {
		return nil
	}
	return b
}

func exprNode(e *Expression) Node {
	if e == nil {
		return nil
	}
	return e
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Expression:
		return v == nil
	case *Arguments:
		return v == nil
	case *Params:
		return v == nil
	}
	return false
}
