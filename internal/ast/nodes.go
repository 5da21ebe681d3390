// Package ast defines a single tagged AST node shape shared by every
// construct this dialect parses, distinguished by a Class tag rather
// than one Go struct per construct. The parser and analyzer both
// dispatch on Class; Node itself carries every field any construct
// might need, left zero where unused.
package ast

import (
	"encoding/json"

	"github.com/th13vn/cc0/internal/symbols"
	"github.com/th13vn/cc0/internal/token"
	"github.com/th13vn/cc0/internal/types"
)

// Class tags the syntactic construct a Node represents.
type Class int

const (
	Invalid Class = iota
	Module
	FnImpl
	Decl
	DeclStruct
	Struct
	Union
	Code
	Branch
	Loop
	Iter
	Return
	Break
	BOP
	UOP
	TOP
	Index
	Call
	Literal
	Empty
)

var classNames = map[Class]string{
	Invalid:    "Invalid",
	Module:     "Module",
	FnImpl:     "FnImpl",
	Decl:       "Decl",
	DeclStruct: "DeclStruct",
	Struct:     "Struct",
	Union:      "Union",
	Code:       "Code",
	Branch:     "Branch",
	Loop:       "Loop",
	Iter:       "Iter",
	Return:     "Return",
	Break:      "Break",
	BOP:        "BOP",
	UOP:        "UOP",
	TOP:        "TOP",
	Index:      "Index",
	Call:       "Call",
	Literal:    "Literal",
	Empty:      "Empty",
}

func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "Unknown"
}

// LiteralClass distinguishes the kind of value a Literal node holds.
type LiteralClass int

const (
	LiteralNone LiteralClass = iota
	LiteralIdent
	LiteralInt
	LiteralBool
	LiteralString
	LiteralArray
)

// Node is the single concrete node shape used across all constructs.
// Children are linked via FirstChild/NextSibling (an ordered, owned
// list); L and R are distinguished slots for the two operands of
// binary/ternary constructs where positional meaning matters more
// than list order (left/condition, right/then, else).
type Node struct {
	Class Class

	FirstChild *Node
	NextSibling *Node
	lastChild   *Node

	L *Node // BOP/TOP left operand, Branch/Loop condition, Return value
	R *Node // BOP/TOP right operand, UOP operand, Branch then-branch

	Operator     string
	Literal      string
	LiteralClass LiteralClass

	Symbol *symbols.Symbol // weak: resolved declaration/use site, never owned
	DT     types.Type      // value-semantic: copied, never aliased

	Loc token.Position
}

// NewNode allocates a Node of the given class at the given location.
func NewNode(class Class, loc token.Position) *Node {
	return &Node{Class: class, Loc: loc}
}

// AddChild appends child to n's ordered child list.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		return n
	}
	if n.FirstChild == nil {
		n.FirstChild = child
	} else {
		n.lastChild.NextSibling = child
	}
	n.lastChild = child
	return n
}

// Children returns n's direct children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children of n.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// jsonNode mirrors Node's exported shape for JSON rendering without
// recursing through the unexported list bookkeeping fields.
type jsonNode struct {
	Class        string      `json:"class"`
	Children     []*jsonNode `json:"children,omitempty"`
	Operator     string      `json:"operator,omitempty"`
	Literal      string      `json:"literal,omitempty"`
	LiteralClass string      `json:"literalClass,omitempty"`
	Symbol       string      `json:"symbol,omitempty"`
	Type         string      `json:"type,omitempty"`
	Line         int         `json:"line"`
	Column       int         `json:"column"`
}

func toJSONNode(n *Node) *jsonNode {
	if n == nil {
		return nil
	}
	out := &jsonNode{
		Class:    n.Class.String(),
		Operator: n.Operator,
		Literal:  n.Literal,
		Line:     n.Loc.Line,
		Column:   n.Loc.Column,
	}
	if n.Symbol != nil {
		out.Symbol = n.Symbol.Name
	}
	if !types.IsInvalid(n.DT) || n.Class == Literal {
		out.Type = types.ToString(n.DT, "")
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}

// MarshalJSON renders n and its children as a plain tree, the same
// role solast-go's SourceUnit.MarshalJSON plays for its own AST.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}
