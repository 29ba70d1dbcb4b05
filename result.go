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
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/types"
	"github.com/wdamron/tyck/unify"
)

// Result is the outcome of checking one entity. Types are interned in Tables.
type Result struct {
	// Type of the body.
	Type types.Ty[types.FullInferred]
	// Type of every expression of the body.
	ExprTypes map[hir.ID]types.Ty[types.FullInferred]
	// Type errors, ordered by location.
	Diagnostics []diag.Diagnostic
	// Inference variables with operations still waiting on them, in creation order.
	Unresolved []unify.InferVar
	Tables     *types.FullInferredTables
	// The entity was already in error. Nothing was checked.
	Errored bool
}

// TypeString renders a type of the result.
func (r *Result) TypeString(entities types.EntityInterner, ty types.Ty[types.FullInferred]) string {
	return types.TypeString[types.FullInferred](r.Tables, entities, ty)
}

// BaseOnlyResult holds the base types of a Result, with permissions and representations erased.
type BaseOnlyResult struct {
	Type      types.Ty[types.BaseInferred]
	ExprTypes map[hir.ID]types.Ty[types.BaseInferred]
	Tables    *types.BaseInferredTables
}

// BaseOnly erases everything but the base types of r.
func (r *Result) BaseOnly() *BaseOnlyResult {
	out := &BaseOnlyResult{
		ExprTypes: make(map[hir.ID]types.Ty[types.BaseInferred], len(r.ExprTypes)),
		Tables:    types.NewBaseInferredTables(),
	}
	memo := make(map[types.Base]types.Base)
	out.Type = eraseToBase(r.Tables, out.Tables, memo, r.Type)
	for id, ty := range r.ExprTypes {
		out.ExprTypes[id] = eraseToBase(r.Tables, out.Tables, memo, ty)
	}
	return out
}

func eraseToBase(from *types.FullInferredTables, to *types.BaseInferredTables, memo map[types.Base]types.Base, ty types.Ty[types.FullInferred]) types.Ty[types.BaseInferred] {
	out := types.Ty[types.BaseInferred]{Perm: to.OwnPerm(), Repr: to.KnownRepr(types.Direct)}
	if base, ok := memo[ty.Base]; ok {
		out.Base = base
		return out
	}
	data := from.LookupBase(ty.Base).Data
	mapped := types.BaseData[types.BaseInferred]{Kind: data.Kind, Entity: data.Entity, Placeholder: data.Placeholder}
	data.Generics.Range(func(_ int, g types.Ty[types.FullInferred]) bool {
		mapped.Generics = mapped.Generics.Extend(eraseToBase(from, to, memo, g))
		return true
	})
	out.Base = to.InternBaseData(mapped)
	memo[ty.Base] = out.Base
	return out
}
