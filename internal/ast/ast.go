// Package ast defines the tree produced by the parser and consumed exactly
// once by lowering. Nodes form a sum type over a fixed variant set; each
// child is owned by its parent.
package ast

import "mica/internal/source"

// Node is the common interface of all AST variants.
type Node interface {
	node()
	Span() source.Span
}

// Op is a binary arithmetic operator.
type Op uint8

const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
	OpRem           // %
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	}
	return "?"
}

// Number is an integer literal.
type Number struct {
	Value int32
	S     source.Span
}

func (*Number) node()               {}
func (n *Number) Span() source.Span { return n.S }

// VarRead references a global by name.
type VarRead struct {
	Name string
	S    source.Span
}

func (*VarRead) node()               {}
func (n *VarRead) Span() source.Span { return n.S }

// VarDecl introduces a global with initial value 0.
type VarDecl struct {
	Name string
	S    source.Span
}

func (*VarDecl) node()               {}
func (n *VarDecl) Span() source.Span { return n.S }

// VarAssign stores a computed value into a named global.
type VarAssign struct {
	Name  string
	Value Node
	S     source.Span
}

func (*VarAssign) node()               {}
func (n *VarAssign) Span() source.Span { return n.S }

// Binary is an arithmetic expression over two operands.
type Binary struct {
	Op  Op
	LHS Node
	RHS Node
	S   source.Span
}

func (*Binary) node()               {}
func (n *Binary) Span() source.Span { return n.S }

// If is a conditional expression. Else is never nil: a missing surface else
// is normalized to Number(0) at construction time, see NewIf.
type If struct {
	Cond Node
	Then Node
	Else Node
	S    source.Span
}

func (*If) node()               {}
func (n *If) Span() source.Span { return n.S }

// NewIf builds an If node, synthesizing a zero literal when no else branch
// was written.
func NewIf(cond, then, els Node, sp source.Span) *If {
	if els == nil {
		els = &Number{Value: 0, S: sp}
	}
	return &If{Cond: cond, Then: then, Else: els, S: sp}
}

// While is the bounded loop construct. Its body is a statement sequence.
type While struct {
	Cond Node
	Body Node
	S    source.Span
}

func (*While) node()               {}
func (n *While) Span() source.Span { return n.S }

// StmtList is an ordered statement sequence backed by a plain slice, so
// appending needs no runtime type check.
type StmtList struct {
	Stmts []Node
	S     source.Span
}

func (*StmtList) node()               {}
func (n *StmtList) Span() source.Span { return n.S }
