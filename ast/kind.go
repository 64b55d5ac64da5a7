package ast

import "fmt"

// Kind discriminates node types. Names match the "__type" tag of the parser
// output.
type Kind int

const (
	KindUnknown Kind = iota
	KindRoot
	KindNull
	KindImport
	KindSelector
	KindGroup
	KindBlock
	KindProperty
	KindIdent
	KindExpression
	KindCall
	KindArguments
	KindParams
	KindIf
	KindEach
	KindFunction
	KindReturn
	KindBinOp
	KindUnaryOp
	KindTernary
	KindUnit
	KindRGBA
	KindLiteral
	KindBoolean
	KindString
	KindObject
	KindMember
	KindMedia
	KindQueryList
	KindQuery
	KindFeature
	KindSupports
	KindKeyframes
	KindNamespace
	KindCharset
	KindAtrule
	KindExtend
	KindComment
)

var kindNames = [...]string{
	KindUnknown:    "Unknown",
	KindRoot:       "Root",
	KindNull:       "Null",
	KindImport:     "Import",
	KindSelector:   "Selector",
	KindGroup:      "Group",
	KindBlock:      "Block",
	KindProperty:   "Property",
	KindIdent:      "Ident",
	KindExpression: "Expression",
	KindCall:       "Call",
	KindArguments:  "Arguments",
	KindParams:     "Params",
	KindIf:         "If",
	KindEach:       "Each",
	KindFunction:   "Function",
	KindReturn:     "Return",
	KindBinOp:      "BinOp",
	KindUnaryOp:    "UnaryOp",
	KindTernary:    "Ternary",
	KindUnit:       "Unit",
	KindRGBA:       "RGBA",
	KindLiteral:    "Literal",
	KindBoolean:    "Boolean",
	KindString:     "String",
	KindObject:     "Object",
	KindMember:     "Member",
	KindMedia:      "Media",
	KindQueryList:  "QueryList",
	KindQuery:      "Query",
	KindFeature:    "Feature",
	KindSupports:   "Supports",
	KindKeyframes:  "Keyframes",
	KindNamespace:  "Namespace",
	KindCharset:    "Charset",
	KindAtrule:     "Atrule",
	KindExtend:     "Extend",
	KindComment:    "Comment",
}

var kindValues = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a parser type tag to its Kind.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindValues[name]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("%s is not a valid node kind", name)
}
