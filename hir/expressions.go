// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package hir is the typed-body representation consumed by the checker: function bodies whose
// names have already been resolved to entities.
package hir

import (
	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/types"
)

// ID identifies an expression within one body. IDs are assigned by NewBody.
type ID uint32

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// ID of the expression within its body.
	ID() ID
	// Source location of the expression.
	Span() diag.Span
	// Move the expression to another source location.
	SetSpan(span diag.Span)

	node() *Node
}

// Node holds the data common to all expressions.
type Node struct {
	id ID
	At diag.Span
}

func (n *Node) ID() ID          { return n.id }
func (n *Node) Span() diag.Span { return n.At }
func (n *Node) node() *Node     { return n }

func (n *Node) SetSpan(span diag.Span) { n.At = span }

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Local)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Seq)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Field)(nil)
	_ Expr = (*MethodCall)(nil)
	_ Expr = (*Error)(nil)
)

// LitKind is the kind of a literal.
type LitKind uint8

const (
	IntLit LitKind = iota
	UintLit
	BoolLit
	StringLit
	UnitLit
)

// Literal value: `1`, `true`, `"s"`, `()`
type Literal struct {
	Node
	Kind LitKind
	// Syntax is printed when the literal is printed.
	Syntax string
}

// "Literal"
func (e *Literal) ExprName() string { return "Literal" }

// Use of a parameter or let-bound variable.
type Local struct {
	Node
	Name string
}

// "Local"
func (e *Local) ExprName() string { return "Local" }

// Let-binding: `let a = 1 in e`
type Let struct {
	Node
	Var   string
	Value Expr
	Body  Expr
}

// "Let"
func (e *Let) ExprName() string { return "Let" }

// Sequence: `{ a; b; c }`. The value of a sequence is the value of its last expression, or unit
// when the sequence is empty.
type Seq struct {
	Node
	Exprs []Expr
}

// "Seq"
func (e *Seq) ExprName() string { return "Seq" }

// Conditional: `if c { a } else { b }`. A missing else branch has type unit.
type If struct {
	Node
	Cond Expr
	Then Expr
	Else Expr
}

// "If"
func (e *If) ExprName() string { return "If" }

// Call of a function item: `f(x, y)`
type Call struct {
	Node
	Func types.Entity
	// Name is printed when the call is printed.
	Name string
	Args []Expr
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Field access: `x.name`
type Field struct {
	Node
	Owner Expr
	Name  string
}

// "Field"
func (e *Field) ExprName() string { return "Field" }

// Method call: `x.name(args)`. The receiver is passed as the first input of the method.
type MethodCall struct {
	Node
	Receiver Expr
	Name     string
	Args     []Expr
}

// "MethodCall"
func (e *MethodCall) ExprName() string { return "MethodCall" }

// An expression which failed to resolve. Errors for it have already been reported.
type Error struct {
	Node
	Message string
}

// "Error"
func (e *Error) ExprName() string { return "Error" }

// Body is the body of a function or method.
type Body struct {
	// Names of the parameters, in the order of the signature inputs.
	Params []string
	Root   Expr
	size   int
}

// NewBody numbers the expressions of root in pre-order and returns the body.
func NewBody(params []string, root Expr) *Body {
	var next ID
	WalkExpr(root, func(e Expr) {
		e.node().id = next
		next++
	})
	return &Body{Params: params, Root: root, size: int(next)}
}

// Len returns the number of expressions in the body.
func (b *Body) Len() int { return b.size }
