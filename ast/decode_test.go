package ast

import (
	"strings"
	"testing"
)

const sampleTree = `{
  "__type": "Root",
  "nodes": [
    {
      "__type": "Ident", "name": "x", "lineno": 1,
      "val": {"__type": "Expression", "lineno": 1, "nodes": [
        {"__type": "Unit", "val": 10, "type": "px", "lineno": 1}
      ]}
    },
    {
      "__type": "Group", "lineno": 3,
      "nodes": [{"__type": "Selector", "segments": [{"__type": "Literal", "val": ".a", "lineno": 3}]}],
      "block": {"__type": "Block", "lineno": 3, "nodes": [
        {"__type": "Property", "lineno": 4,
         "segments": [{"__type": "Ident", "name": "color", "val": {"__type": "Null"}}],
         "expr": {"__type": "Expression", "lineno": 4, "nodes": [
           {"__type": "RGBA", "r": 255, "g": 0, "b": 0, "a": 1, "raw": "#f00", "lineno": 4}
         ]}}
      ]}
    },
    {
      "__type": "Ident", "name": "map", "lineno": 6,
      "val": {"__type": "Expression", "lineno": 6, "nodes": [
        {"__type": "Object", "lineno": 6, "vals": {
          "zeta": {"__type": "Unit", "val": 1},
          "alpha": {"__type": "Unit", "val": 2},
          "mid": {"__type": "String", "val": "m", "quote": "'"}
        }}
      ]}
    },
    {"__type": "Frobnicate", "lineno": 9}
  ]
}`

func TestDecode_Sample(t *testing.T) {
	root, err := Decode([]byte(sampleTree))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(root.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(root.Nodes))
	}

	x, ok := root.Nodes[0].(*Ident)
	if !ok {
		t.Fatalf("node 0 = %T, want *Ident", root.Nodes[0])
	}
	expr, ok := x.Val.(*Expression)
	if !ok {
		t.Fatalf("x.Val = %T, want *Expression", x.Val)
	}
	unit, ok := expr.Nodes[0].(*Unit)
	if !ok || unit.Val != 10 || unit.Type != "px" {
		t.Errorf("unit = %#v, want 10px", expr.Nodes[0])
	}

	group, ok := root.Nodes[1].(*Group)
	if !ok {
		t.Fatalf("node 1 = %T, want *Group", root.Nodes[1])
	}
	if group.Block == nil || len(group.Block.Nodes) != 1 {
		t.Fatalf("group block = %#v", group.Block)
	}
	prop := group.Block.Nodes[0].(*Property)
	if prop.Line() != 4 {
		t.Errorf("property line = %d, want 4", prop.Line())
	}
	color := prop.Segments[0].(*Ident)
	if !IsNull(color.Val) {
		t.Errorf("color.Val = %#v, want Null", color.Val)
	}
	if rgba := prop.Expr.Nodes[0].(*RGBA); rgba.Raw != "#f00" || rgba.R != 255 {
		t.Errorf("rgba = %#v", rgba)
	}

	obj := root.Nodes[2].(*Ident).Val.(*Expression).Nodes[0].(*Object)
	if got := strings.Join(obj.Keys, ","); got != "zeta,alpha,mid" {
		t.Errorf("object keys = %q, want source order", got)
	}

	unknown, ok := root.Nodes[3].(*Unknown)
	if !ok || unknown.Type != "Frobnicate" || unknown.Line() != 9 {
		t.Errorf("node 3 = %#v, want Unknown Frobnicate", root.Nodes[3])
	}
}

func TestDecode_BareList(t *testing.T) {
	root, err := Decode([]byte(`[{"__type":"Comment","str":"/* hi */","suppress":true,"lineno":2}]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	c, ok := root.Nodes[0].(*Comment)
	if !ok || c.Str != "/* hi */" || !c.Suppress {
		t.Errorf("comment = %#v", root.Nodes[0])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"null", "null"},
		{"broken json", `{"__type": "Root", "nodes": [`},
		{"block of wrong kind", `{"__type": "Group", "block": {"__type": "Literal", "val": "x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.data)); err == nil {
				t.Error("Decode() expected error")
			}
		})
	}
}

func TestDecode_CallAndFunction(t *testing.T) {
	data := `{"__type":"Root","nodes":[
	  {"__type":"Function","name":"m","lineno":1,
	   "params":{"__type":"Params","nodes":[{"__type":"Ident","name":"a","val":{"__type":"Null"}}]},
	   "block":{"__type":"Block","nodes":[
	     {"__type":"Call","name":"foo","lineno":2,"args":{"__type":"Arguments","nodes":[]},
	      "block":{"__type":"Block","scope":true,"nodes":[]}}
	   ]}}
	]}`
	root, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	fn := root.Nodes[0].(*Function)
	if fn.Params == nil || len(fn.Params.Nodes) != 1 {
		t.Fatalf("params = %#v", fn.Params)
	}
	call := fn.Block.Nodes[0].(*Call)
	if call.Args == nil || call.Block == nil || !call.Block.Scope {
		t.Errorf("call = %#v", call)
	}
}

func TestParseKind(t *testing.T) {
	for k := KindUnknown; k <= KindComment; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("Nope"); err == nil {
		t.Error("ParseKind(Nope) expected error")
	}
}
