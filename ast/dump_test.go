package ast

import "testing"

func TestDump(t *testing.T) {
	tree := &Root{Nodes: []Node{
		&Ident{Pos: Pos{1}, Name: "conf", Val: &Expression{Pos: Pos{1}, Nodes: []Node{
			&Object{Keys: []string{"gap"}, Vals: map[string]Node{"gap": &Unit{Val: 1.5, Type: "em"}}},
		}}},
		&Group{
			Pos:   Pos{3},
			Nodes: []Node{&Selector{Segments: []Node{&Literal{Val: ".a"}}}},
			Block: &Block{Nodes: []Node{
				&Property{
					Pos:      Pos{4},
					Segments: []Node{&Ident{Name: "content", Val: &Null{}}},
					Expr:     &Expression{Pos: Pos{4}, Nodes: []Node{&String{Val: "a\nb", Quote: "'"}}},
				},
				&Comment{Pos: Pos{5}, Str: "/* note */"},
			}},
		},
	}}

	want := "Root[0]\n" +
		"  Ident[1] name=\"conf\" mixin=false property=false rest=false\n" +
		"    Expression[1]\n" +
		"      Object[0] keys=1\n" +
		"        \"gap\": Unit[0] 1.5em\n" +
		"  Group[3]\n" +
		"    Selector[0]\n" +
		"      Literal: \".a\"\n" +
		"    Block[0]\n" +
		"      Property[4]\n" +
		"        Ident[0] name=\"content\" mixin=false property=false rest=false\n" +
		"          Null[0]\n" +
		"        Expression[4]\n" +
		"          String: \"'a\\nb'\"\n" +
		"      Comment: \"/* note */\"\n"
	if got := Dump(tree); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}

func TestDump_Nil(t *testing.T) {
	if got := Dump(nil); got != "" {
		t.Errorf("Dump(nil) = %q, want empty", got)
	}
}
