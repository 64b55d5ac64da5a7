package ast

import (
	"strconv"

	"styl2scss/utils/debug"
)

// Dump returns a readable tree of n. It exists for debug reports and manual
// inspection.
func Dump(n Node) string {
	tw := debug.NewTreeWriter()
	dump(tw, 0, "", n)
	return tw.String()
}

func dump(tw *debug.TreeWriter, depth int, label string, n Node) {
	if isNilNode(n) {
		return
	}
	if label != "" {
		label += ": "
	}

	switch v := n.(type) {
	case *Ident:
		tw.Line(depth, "%s%s[%d] name=%q mixin=%t property=%t rest=%t", label, v.Kind(), v.Lineno, v.Name, v.Mixin, v.Property, v.Rest)
	case *Call:
		tw.Line(depth, "%s%s[%d] name=%q", label, v.Kind(), v.Lineno, v.Name)
	case *Function:
		tw.Line(depth, "%s%s[%d] name=%q", label, v.Kind(), v.Lineno, v.Name)
	case *BinOp:
		tw.Line(depth, "%s%s[%d] op=%q", label, v.Kind(), v.Lineno, v.Op)
	case *UnaryOp:
		tw.Line(depth, "%s%s[%d] op=%q", label, v.Kind(), v.Lineno, v.Op)
	case *Unit:
		tw.Line(depth, "%s%s[%d] %s%s", label, v.Kind(), v.Lineno, strconv.FormatFloat(v.Val, 'f', -1, 64), v.Type)
	case *Literal:
		tw.TextBlock(depth, label+v.Kind().String(), v.Val)
	case *String:
		tw.TextBlock(depth, label+v.Kind().String(), v.Quote+v.Val+v.Quote)
	case *Comment:
		tw.TextBlock(depth, label+v.Kind().String(), v.Str)
	case *If:
		tw.Line(depth, "%s%s[%d] negate=%t", label, v.Kind(), v.Lineno, v.Negate)
	case *Each:
		tw.Line(depth, "%s%s[%d] val=%q key=%q", label, v.Kind(), v.Lineno, v.Val, v.Key)
	case *Atrule:
		tw.Line(depth, "%s%s[%d] type=%q", label, v.Kind(), v.Lineno, v.Type)
	case *Object:
		tw.Line(depth, "%s%s[%d] keys=%d", label, v.Kind(), v.Lineno, len(v.Keys))
		for _, k := range v.Keys {
			dump(tw, depth+1, strconv.Quote(k), v.Vals[k])
		}
		return
	case *Unknown:
		tw.Line(depth, "%s%s[%d] type=%q", label, v.Kind(), v.Lineno, v.Type)
	default:
		tw.Line(depth, "%s%s[%d]", label, n.Kind(), n.Line())
	}

	for _, c := range Children(n) {
		dump(tw, depth+1, "", c)
	}
}
