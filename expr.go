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

package tyck

import (
	"errors"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/query"
	"github.com/wdamron/tyck/types"
)

// check infers the type of e and records it.
func (c *checker) check(locals env, e hir.Expr) types.Ty[types.Inference] {
	if c.err == nil {
		if err := c.ctx.Err(); err != nil {
			c.fail(err)
		}
	}
	var ty types.Ty[types.Inference]
	if c.err != nil {
		ty = c.errorType()
	} else {
		ty = c.checkExpr(locals, e)
	}
	c.exprTypes[e.ID()] = ty
	c.exprSpans[e.ID()] = e.Span()
	return ty
}

func (c *checker) checkExpr(locals env, e hir.Expr) types.Ty[types.Inference] {
	switch e := e.(type) {
	case *hir.Literal:
		switch e.Kind {
		case hir.IntLit:
			return c.primitive(types.Int)
		case hir.UintLit:
			return c.primitive(types.Uint)
		case hir.BoolLit:
			return c.primitive(types.Boolean)
		case hir.StringLit:
			return c.primitive(types.String)
		}
		return c.primitive(types.Unit)

	case *hir.Local:
		if ty, ok := locals.Get(e.Name); ok {
			return ty
		}
		c.report(e.Span(), "cannot find value `%s` in this scope", e.Name)
		return c.errorType()

	case *hir.Let:
		value := c.check(locals, e.Value)
		return c.check(locals.Set(e.Var, value), e.Body)

	case *hir.Seq:
		ty := c.primitive(types.Unit)
		for _, sub := range e.Exprs {
			ty = c.check(locals, sub)
		}
		return ty

	case *hir.If:
		c.equate(e.Cond.Span(), c.primitive(types.Boolean), c.check(locals, e.Cond))
		then := c.check(locals, e.Then)
		if e.Else == nil {
			unit := c.primitive(types.Unit)
			c.equate(e.Then.Span(), unit, then)
			return unit
		}
		c.equate(e.Else.Span(), then, c.check(locals, e.Else))
		return then

	case *hir.Call:
		return c.checkCall(locals, e)

	case *hir.Field:
		owner := c.check(locals, e.Owner)
		return c.withBaseData(e.Span(), owner.Base, func(c *checker, data types.BaseData[types.Inference]) types.Ty[types.Inference] {
			return c.fieldType(e, data)
		})

	case *hir.MethodCall:
		return c.checkMethodCall(locals, e)

	case *hir.Error:
		return c.errorType()
	}
	panic("unknown expression type: " + e.ExprName())
}

// Arguments are always checked, even when the callee is in error, so that their types are recorded.
func (c *checker) checkArgs(locals env, args []hir.Expr) []types.Ty[types.Inference] {
	tys := make([]types.Ty[types.Inference], len(args))
	for i, arg := range args {
		tys[i] = c.check(locals, arg)
	}
	return tys
}

func (c *checker) equateArgs(at diag.Span, args []hir.Expr, found, expected []types.Ty[types.Inference]) {
	if len(found) != len(expected) {
		c.report(at, "expected %d arguments, found %d", len(expected), len(found))
	}
	for i := 0; i < len(found) && i < len(expected); i++ {
		c.equate(args[i].Span(), expected[i], found[i])
	}
}

func (c *checker) checkCall(locals env, e *hir.Call) types.Ty[types.Inference] {
	args := c.checkArgs(locals, e.Args)
	generics := c.inferenceVariablesFor(e.Func)
	sig, err := c.db.Signature(c.ctx, e.Func)
	if err != nil {
		c.queryFailed(err)
		return c.errorType()
	}
	inst := c.substituteSignature(sig, generics)
	c.equateArgs(e.Span(), e.Args, args, inst.Inputs)
	return inst.Output
}

func (c *checker) fieldType(e *hir.Field, owner types.BaseData[types.Inference]) types.Ty[types.Inference] {
	switch owner.Kind {
	case types.ErrorBase:
		return c.errorType()
	case types.PlaceholderBase:
		c.report(e.Span(), "no field `%s` on a generic type", e.Name)
		return c.errorType()
	}
	field, err := c.db.Member(c.ctx, owner.Entity, types.Field, e.Name)
	if err != nil {
		c.memberFailed(e.Span(), err, types.Field, owner, e.Name)
		return c.errorType()
	}
	declared, err := c.db.Ty(c.ctx, field)
	if err != nil {
		c.queryFailed(err)
		return c.errorType()
	}
	return c.substitute(declared, owner.Generics)
}

func (c *checker) checkMethodCall(locals env, e *hir.MethodCall) types.Ty[types.Inference] {
	receiver := c.check(locals, e.Receiver)
	args := c.checkArgs(locals, e.Args)
	return c.withBaseData(e.Span(), receiver.Base, func(c *checker, owner types.BaseData[types.Inference]) types.Ty[types.Inference] {
		switch owner.Kind {
		case types.ErrorBase:
			return c.errorType()
		case types.PlaceholderBase:
			c.report(e.Span(), "no method `%s` on a generic type", e.Name)
			return c.errorType()
		}
		method, err := c.db.Member(c.ctx, owner.Entity, types.Method, e.Name)
		if err != nil {
			c.memberFailed(e.Span(), err, types.Method, owner, e.Name)
			return c.errorType()
		}
		sig, err := c.db.Signature(c.ctx, method)
		if err != nil {
			c.queryFailed(err)
			return c.errorType()
		}

		// The leading generics of a method are those of its owner, taken from the receiver.
		generics := c.inferenceVariablesFor(method)
		for i, n := 0, owner.Generics.Len(); i < n && i < generics.Len(); i++ {
			c.equate(e.Receiver.Span(), generics.At(i), owner.Generics.At(i))
		}
		inst := c.substituteSignature(sig, generics)
		if len(inst.Inputs) == 0 {
			c.report(e.Span(), "`%s` is not a method", e.Name)
			return c.errorType()
		}
		c.equate(e.Receiver.Span(), inst.Inputs[0], receiver)
		c.equateArgs(e.Span(), e.Args, args, inst.Inputs[1:])
		return inst.Output
	})
}

func (c *checker) memberFailed(at diag.Span, err error, kind types.MemberKind, owner types.BaseData[types.Inference], name string) {
	if errors.Is(err, query.ErrNoMember) {
		c.report(at, "no %v `%s` on type %s", kind, name, types.EntityName(c.db, owner.Entity))
		return
	}
	c.queryFailed(err)
}
