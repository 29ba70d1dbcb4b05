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

// Package construct provides terse constructors for declared types and body expressions.
package construct

import (
	"strconv"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/types"
)

// Types

// Declared named type: `Vec<T>`
func TNamed(t *types.DeclarationTables, e types.Entity, generics ...types.Ty[types.Declaration]) types.Ty[types.Declaration] {
	return types.NamedType[types.Declaration](t, e, types.NewGenerics(generics...))
}

// Declared lang item type: `int`, `bool`, etc
func TPrim(t *types.DeclarationTables, entities types.EntityInterner, item types.LangItem) types.Ty[types.Declaration] {
	return types.PrimitiveType[types.Declaration](t, entities, item)
}

// Reference to the i-th generic parameter in scope: `T`
func TBound(t *types.DeclarationTables, i int) types.Ty[types.Declaration] {
	return types.Ty[types.Declaration]{Perm: t.OwnPerm(), Repr: t.KnownRepr(types.Direct), Base: t.InternBoundVar(types.BoundVar(i))}
}

// Function signature: `(a, b) -> c`
func Sig(output types.Ty[types.Declaration], inputs ...types.Ty[types.Declaration]) types.Signature[types.Declaration] {
	return types.Signature[types.Declaration]{Inputs: inputs, Output: output}
}

// Expressions:

// Integer literal
func Int(v int) *hir.Literal {
	return &hir.Literal{Kind: hir.IntLit, Syntax: strconv.Itoa(v)}
}

// Unsigned integer literal
func Uint(v uint) *hir.Literal {
	return &hir.Literal{Kind: hir.UintLit, Syntax: strconv.FormatUint(uint64(v), 10) + "u"}
}

// Boolean literal
func Bool(v bool) *hir.Literal {
	return &hir.Literal{Kind: hir.BoolLit, Syntax: strconv.FormatBool(v)}
}

// String literal
func Str(s string) *hir.Literal {
	return &hir.Literal{Kind: hir.StringLit, Syntax: s}
}

// Unit literal: `()`
func Unit() *hir.Literal {
	return &hir.Literal{Kind: hir.UnitLit}
}

// Variable
func Local(name string) *hir.Local {
	return &hir.Local{Name: name}
}

// Let-binding: `let a = 1 in e`
func Let(varName string, value hir.Expr, body hir.Expr) *hir.Let {
	return &hir.Let{Var: varName, Value: value, Body: body}
}

// Sequence: `{ a; b }`
func Seq(exprs ...hir.Expr) *hir.Seq {
	return &hir.Seq{Exprs: exprs}
}

// Conditional without else-branch: `if c { a }`
func If(cond, then hir.Expr) *hir.If {
	return &hir.If{Cond: cond, Then: then}
}

// Conditional: `if c { a } else { b }`
func IfElse(cond, then, els hir.Expr) *hir.If {
	return &hir.If{Cond: cond, Then: then, Else: els}
}

// Application: `f(x)`
func Call(f types.Entity, name string, args ...hir.Expr) *hir.Call {
	return &hir.Call{Func: f, Name: name, Args: args}
}

// Field access: `x.a`
func Field(owner hir.Expr, name string) *hir.Field {
	return &hir.Field{Owner: owner, Name: name}
}

// Method call: `x.m(y)`
func Method(receiver hir.Expr, name string, args ...hir.Expr) *hir.MethodCall {
	return &hir.MethodCall{Receiver: receiver, Name: name, Args: args}
}

// Erroneous expression
func Error(message string) *hir.Error {
	return &hir.Error{Message: message}
}

// Place e at the given offsets of file.
func At[E hir.Expr](e E, file string, start, end int) E {
	e.SetSpan(diag.Span{File: file, Start: start, End: end})
	return e
}
