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
	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/types"
	"github.com/wdamron/tyck/unify"
)

// equate requires expected and found to be the same type. Inference variables are bound or linked
// as needed; a mismatch is reported at the given location and checking continues.
func (c *checker) equate(at diag.Span, expected, found types.Ty[types.Inference]) {
	if c.err != nil || expected == found {
		return
	}
	if !c.equateBase(at, expected.Base, found.Base) {
		c.report(at, "mismatched types: expected %s, found %s", c.typeString(expected), c.typeString(found))
	}
}

// equateBase returns false if a and b are known to differ. Mismatches nested in generic arguments
// are reported here, against the enclosing types.
func (c *checker) equateBase(at diag.Span, a, b types.Base) bool {
	if a == b {
		return true
	}
	knownA, varA, okA := c.vars.ShallowResolve(a)
	knownB, varB, okB := c.vars.ShallowResolve(b)
	switch {
	case !okA && !okB:
		c.vars.Link(varA, varB)
		return true
	case !okA:
		c.bindVar(at, varA, knownB)
		return true
	case !okB:
		c.bindVar(at, varB, knownA)
		return true
	case knownA == knownB:
		return true
	}

	dataA, dataB := c.tables.LookupBase(knownA).Data, c.tables.LookupBase(knownB).Data
	switch {
	case dataA.Kind == types.ErrorBase:
		c.propagateError(at, dataB.Generics)
		return true
	case dataB.Kind == types.ErrorBase:
		c.propagateError(at, dataA.Generics)
		return true
	case dataA.Kind != dataB.Kind, dataA.Entity != dataB.Entity, dataA.Placeholder != dataB.Placeholder,
		dataA.Generics.Len() != dataB.Generics.Len():
		return false
	}
	ok := true
	for i, n := 0, dataA.Generics.Len(); i < n; i++ {
		ok = c.equateBase(at, dataA.Generics.At(i).Base, dataB.Generics.At(i).Base) && ok
	}
	return ok
}

// Equates every generic argument with the error type, so variables reachable only through an
// erroneous type are not reported as unresolved.
func (c *checker) propagateError(at diag.Span, generics types.Generics[types.Inference]) {
	errTy := c.errorType()
	generics.Range(func(_ int, g types.Ty[types.Inference]) bool {
		c.equateBase(at, errTy.Base, g.Base)
		return true
	})
}

func (c *checker) bindVar(at diag.Span, v unify.InferVar, known types.Base) {
	if c.occurs(v, known) {
		c.report(at, "recursive type: %v occurs in %s", v, c.typeString(types.Ty[types.Inference]{Perm: c.tables.OwnPerm(), Base: known}))
		known = c.errorType().Base
	}
	if err := c.vars.Bind(v, known); err != nil {
		invariant.Violated(invariant.BindConflict, "%v", err)
	}
}

// occurs returns true if v appears anywhere within base.
func (c *checker) occurs(v unify.InferVar, base types.Base) bool {
	known, other, ok := c.vars.ShallowResolve(base)
	if !ok {
		return other == c.vars.Find(v)
	}
	found := false
	c.tables.LookupBase(known).Data.Generics.Range(func(_ int, g types.Ty[types.Inference]) bool {
		found = c.occurs(v, g.Base)
		return !found
	})
	return found
}
