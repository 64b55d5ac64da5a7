package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// wire is the union of all fields the parser emits. Polymorphic fields ("val",
// "type", "prefix") are kept raw and interpreted per kind.
type wire struct {
	Type      string            `json:"__type"`
	Lineno    int               `json:"lineno"`
	Name      string            `json:"name"`
	Op        string            `json:"op"`
	Key       string            `json:"key"`
	Str       string            `json:"str"`
	Quote     string            `json:"quote"`
	Raw       string            `json:"raw"`
	Predicate string            `json:"predicate"`
	R         float64           `json:"r"`
	G         float64           `json:"g"`
	B         float64           `json:"b"`
	A         float64           `json:"a"`
	Val       json.RawMessage   `json:"val"`
	KindRaw   json.RawMessage   `json:"type"`
	Prefix    json.RawMessage   `json:"prefix"`
	Nodes     []json.RawMessage `json:"nodes"`
	Segments  []json.RawMessage `json:"segments"`
	Elses     []json.RawMessage `json:"elses"`
	Selectors []json.RawMessage `json:"selectors"`
	Block     json.RawMessage   `json:"block"`
	Expr      json.RawMessage   `json:"expr"`
	Args      json.RawMessage   `json:"args"`
	Params    json.RawMessage   `json:"params"`
	Cond      json.RawMessage   `json:"cond"`
	Left      json.RawMessage   `json:"left"`
	Right     json.RawMessage   `json:"right"`
	TrueExpr  json.RawMessage   `json:"trueExpr"`
	FalseExpr json.RawMessage   `json:"falseExpr"`
	Path      json.RawMessage   `json:"path"`
	Condition json.RawMessage   `json:"condition"`
	Vals      json.RawMessage   `json:"vals"`
	Mixin     bool              `json:"mixin"`
	Property  bool              `json:"property"`
	Rest      bool              `json:"rest"`
	Negate    bool              `json:"negate"`
	Postfix   bool              `json:"postfix"`
	Scope     bool              `json:"scope"`
	Suppress  bool              `json:"suppress"`
	Inline    bool              `json:"inline"`
	Once      bool              `json:"once"`
	Optional  bool              `json:"optional"`
	IsList    bool              `json:"isList"`
	IsString  bool              `json:"string"`
}

// Decode builds a tree from the JSON emitted by the parser. The top level value
// may be a Root node or a bare list of nodes.
func Decode(data []byte) (*Root, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty syntax tree")
	}
	if data[0] == '[' {
		nodes, err := decodeList(nil, data)
		if err != nil {
			return nil, err
		}
		return &Root{Nodes: nodes}, nil
	}
	n, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	switch v := n.(type) {
	case *Root:
		return v, nil
	case nil:
		return nil, errors.New("empty syntax tree")
	default:
		return &Root{Pos: Pos{v.Line()}, Nodes: []Node{v}}, nil
	}
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeList(items []json.RawMessage, raw json.RawMessage) ([]Node, error) {
	if raw != nil {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("unable to decode node list: %w", err)
		}
	}
	nodes := make([]Node, 0, len(items))
	for i, item := range items {
		n, err := decodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func decodeNode(raw json.RawMessage) (Node, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("unable to decode node: %w", err)
	}
	pos := Pos{w.Lineno}

	kind, err := ParseKind(w.Type)
	if err != nil {
		return &Unknown{Pos: pos, Type: w.Type}, nil
	}

	nodes, err := decodeList(w.Nodes, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	segments, err := decodeList(w.Segments, nil)
	if err != nil {
		return nil, fmt.Errorf("%s segments: %w", kind, err)
	}
	block, err := decodeBlock(w.Block)
	if err != nil {
		return nil, fmt.Errorf("%s block: %w", kind, err)
	}

	switch kind {
	case KindRoot:
		return &Root{Pos: pos, Nodes: nodes}, nil
	case KindNull:
		return &Null{Pos: pos}, nil
	case KindImport:
		path, err := decodeNode(w.Path)
		if err != nil {
			return nil, fmt.Errorf("import path: %w", err)
		}
		return &Import{Pos: pos, Path: path, Once: w.Once}, nil
	case KindSelector:
		return &Selector{Pos: pos, Segments: segments, Optional: w.Optional}, nil
	case KindGroup:
		return &Group{Pos: pos, Nodes: nodes, Block: block}, nil
	case KindBlock:
		return &Block{Pos: pos, Nodes: nodes, Scope: w.Scope}, nil
	case KindProperty:
		expr, err := decodeExpression(w.Expr)
		if err != nil {
			return nil, fmt.Errorf("property: %w", err)
		}
		return &Property{Pos: pos, Segments: segments, Expr: expr}, nil
	case KindIdent:
		val, err := decodeNode(w.Val)
		if err != nil {
			return nil, fmt.Errorf("ident %q: %w", w.Name, err)
		}
		return &Ident{Pos: pos, Name: w.Name, Val: val, Mixin: w.Mixin, Property: w.Property, Rest: w.Rest}, nil
	case KindExpression:
		return &Expression{Pos: pos, Nodes: nodes, IsList: w.IsList}, nil
	case KindCall:
		args, err := decodeNode(w.Args)
		if err != nil {
			return nil, fmt.Errorf("call %q: %w", w.Name, err)
		}
		return &Call{Pos: pos, Name: w.Name, Args: asArguments(args), Block: block}, nil
	case KindArguments:
		return &Arguments{Pos: pos, Nodes: nodes}, nil
	case KindParams:
		return &Params{Pos: pos, Nodes: nodes}, nil
	case KindIf:
		cond, err := decodeNode(w.Cond)
		if err != nil {
			return nil, fmt.Errorf("if condition: %w", err)
		}
		elses, err := decodeList(w.Elses, nil)
		if err != nil {
			return nil, fmt.Errorf("if elses: %w", err)
		}
		return &If{Pos: pos, Cond: cond, Block: block, Elses: elses, Negate: w.Negate, Postfix: w.Postfix}, nil
	case KindEach:
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, fmt.Errorf("each: %w", err)
		}
		return &Each{Pos: pos, Val: rawString(w.Val), Key: w.Key, Expr: expr, Block: block}, nil
	case KindFunction:
		params, err := decodeNode(w.Params)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", w.Name, err)
		}
		return &Function{Pos: pos, Name: w.Name, Params: asParams(params), Block: block}, nil
	case KindReturn:
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, fmt.Errorf("return: %w", err)
		}
		return &Return{Pos: pos, Expr: expr}, nil
	case KindBinOp:
		left, right, err := decodePair(w.Left, w.Right)
		if err != nil {
			return nil, fmt.Errorf("binop %q: %w", w.Op, err)
		}
		return &BinOp{Pos: pos, Op: w.Op, Left: left, Right: right}, nil
	case KindUnaryOp:
		expr, err := decodeNode(w.Expr)
		if err != nil {
			return nil, fmt.Errorf("unaryop %q: %w", w.Op, err)
		}
		return &UnaryOp{Pos: pos, Op: w.Op, Expr: expr}, nil
	case KindTernary:
		cond, err := decodeNode(w.Cond)
		if err != nil {
			return nil, fmt.Errorf("ternary: %w", err)
		}
		t, f, err := decodePair(w.TrueExpr, w.FalseExpr)
		if err != nil {
			return nil, fmt.Errorf("ternary: %w", err)
		}
		return &Ternary{Pos: pos, Cond: cond, TrueExpr: t, FalseExpr: f}, nil
	case KindUnit:
		var v float64
		if !isAbsent(w.Val) {
			if err := json.Unmarshal(w.Val, &v); err != nil {
				return nil, fmt.Errorf("unit value: %w", err)
			}
		}
		return &Unit{Pos: pos, Val: v, Type: rawString(w.KindRaw)}, nil
	case KindRGBA:
		return &RGBA{Pos: pos, R: w.R, G: w.G, B: w.B, A: w.A, Raw: w.Raw, Name: w.Name}, nil
	case KindLiteral:
		return &Literal{Pos: pos, Val: rawString(w.Val), String: w.IsString}, nil
	case KindBoolean:
		var v bool
		if !isAbsent(w.Val) {
			if err := json.Unmarshal(w.Val, &v); err != nil {
				return nil, fmt.Errorf("boolean value: %w", err)
			}
		}
		return &Boolean{Pos: pos, Val: v}, nil
	case KindString:
		return &String{Pos: pos, Val: rawString(w.Val), Quote: w.Quote}, nil
	case KindObject:
		keys, vals, err := decodeObject(w.Vals)
		if err != nil {
			return nil, fmt.Errorf("object: %w", err)
		}
		return &Object{Pos: pos, Keys: keys, Vals: vals}, nil
	case KindMember:
		left, right, err := decodePair(w.Left, w.Right)
		if err != nil {
			return nil, fmt.Errorf("member: %w", err)
		}
		return &Member{Pos: pos, Left: left, Right: right}, nil
	case KindMedia:
		val, err := decodeNode(w.Val)
		if err != nil {
			return nil, fmt.Errorf("media: %w", err)
		}
		return &Media{Pos: pos, Val: val, Block: block}, nil
	case KindQueryList:
		return &QueryList{Pos: pos, Nodes: nodes}, nil
	case KindQuery:
		typ, err := decodeLiteralOrNode(w.KindRaw)
		if err != nil {
			return nil, fmt.Errorf("query type: %w", err)
		}
		return &Query{Pos: pos, Nodes: nodes, Type: typ, Predicate: w.Predicate}, nil
	case KindFeature:
		expr, err := decodeExpression(w.Expr)
		if err != nil {
			return nil, fmt.Errorf("feature: %w", err)
		}
		return &Feature{Pos: pos, Segments: segments, Expr: expr}, nil
	case KindSupports:
		cond, err := decodeNode(w.Condition)
		if err != nil {
			return nil, fmt.Errorf("supports: %w", err)
		}
		return &Supports{Pos: pos, Condition: cond, Block: block}, nil
	case KindKeyframes:
		return &Keyframes{Pos: pos, Segments: segments, Prefix: rawString(w.Prefix), Block: block}, nil
	case KindNamespace:
		val, err := decodeLiteralOrNode(w.Val)
		if err != nil {
			return nil, fmt.Errorf("namespace: %w", err)
		}
		return &Namespace{Pos: pos, Val: val, Prefix: rawString(w.Prefix)}, nil
	case KindCharset:
		val, err := decodeLiteralOrNode(w.Val)
		if err != nil {
			return nil, fmt.Errorf("charset: %w", err)
		}
		return &Charset{Pos: pos, Val: val}, nil
	case KindAtrule:
		return &Atrule{Pos: pos, Type: rawString(w.KindRaw), Segments: segments, Block: block}, nil
	case KindExtend:
		selectors, err := decodeList(w.Selectors, nil)
		if err != nil {
			return nil, fmt.Errorf("extend: %w", err)
		}
		return &Extend{Pos: pos, Selectors: selectors}, nil
	case KindComment:
		return &Comment{Pos: pos, Str: w.Str, Suppress: w.Suppress, Inline: w.Inline}, nil
	}
	return &Unknown{Pos: pos, Type: w.Type}, nil
}

func decodePair(a, b json.RawMessage) (Node, Node, error) {
	left, err := decodeNode(a)
	if err != nil {
		return nil, nil, err
	}
	right, err := decodeNode(b)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func decodeBlock(raw json.RawMessage) (*Block, error) {
	n, err := decodeNode(raw)
	if err != nil || n == nil {
		return nil, err
	}
	b, ok := n.(*Block)
	if !ok {
		return nil, fmt.Errorf("expected Block, got %s", n.Kind())
	}
	return b, nil
}

// decodeExpression always yields an Expression, wrapping single values.
func decodeExpression(raw json.RawMessage) (*Expression, error) {
	n, err := decodeNode(raw)
	if err != nil || n == nil {
		return nil, err
	}
	if e, ok := n.(*Expression); ok {
		return e, nil
	}
	return &Expression{Pos: Pos{n.Line()}, Nodes: []Node{n}}, nil
}

// decodeLiteralOrNode accepts either a nested node or a plain JSON string.
func decodeLiteralOrNode(raw json.RawMessage) (Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		return &Literal{Val: rawString(raw)}, nil
	}
	return decodeNode(raw)
}

func asArguments(n Node) *Arguments {
	switch v := n.(type) {
	case *Arguments:
		return v
	case *Params:
		return &Arguments{Pos: v.Pos, Nodes: v.Nodes}
	case *Expression:
		return &Arguments{Pos: v.Pos, Nodes: v.Nodes}
	case nil:
		return &Arguments{}
	default:
		return &Arguments{Pos: Pos{v.Line()}, Nodes: []Node{v}}
	}
}

func asParams(n Node) *Params {
	switch v := n.(type) {
	case *Params:
		return v
	case *Arguments:
		return &Params{Pos: v.Pos, Nodes: v.Nodes}
	case nil:
		return &Params{}
	default:
		return &Params{Pos: Pos{v.Line()}, Nodes: []Node{v}}
	}
}

// rawString returns the text of a JSON scalar: strings unquoted, numbers and
// booleans verbatim, null as empty.
func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}

// decodeObject reads object members preserving key order.
func decodeObject(raw json.RawMessage) ([]string, map[string]Node, error) {
	vals := make(map[string]Node)
	if isAbsent(raw) {
		return nil, vals, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var item json.RawMessage
		if err := dec.Decode(&item); err != nil {
			return nil, nil, fmt.Errorf("object key %q: %w", key, err)
		}
		n, err := decodeNode(item)
		if err != nil {
			return nil, nil, fmt.Errorf("object key %q: %w", key, err)
		}
		if _, dup := vals[key]; !dup {
			keys = append(keys, key)
		}
		vals[key] = n
	}
	return keys, vals, nil
}
