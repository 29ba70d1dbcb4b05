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
	"github.com/hashicorp/go-set/v3"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/ops"
	"github.com/wdamron/tyck/types"
	"github.com/wdamron/tyck/unify"
)

// resolver maps inference types to the fully inferred family. Variables which are still unbound
// become the error type and are reported once per variable.
type resolver struct {
	c          *checker
	full       *types.FullInferredTables
	memo       map[types.Base]types.Base
	reported   *set.Set[unify.InferVar]
	reportedAt *set.Set[diag.Span] // at most one unresolved diagnostic per location
}

func (r *resolver) resolve(at diag.Span, ty types.Ty[types.Inference]) types.Ty[types.FullInferred] {
	return types.Ty[types.FullInferred]{
		Perm: r.resolvePerm(ty.Perm),
		Repr: r.full.KnownRepr(types.Direct),
		Base: r.resolveBase(at, ty.Base),
	}
}

func (r *resolver) resolvePerm(p types.Perm) types.Perm {
	kind, _ := r.c.tables.LookupPerm(p)
	return r.full.InternPerm(kind)
}

func (r *resolver) resolveBase(at diag.Span, base types.Base) types.Base {
	if out, ok := r.memo[base]; ok {
		return out
	}
	var out types.Base
	known, v, ok := r.c.vars.ShallowResolve(base)
	if !ok {
		if r.reported.Insert(v) && r.reportedAt.Insert(at) && r.c.reportUnresolved {
			r.c.report(at, "cannot infer type: type annotations needed for %v", v)
		}
		out = r.full.InternBaseData(types.ErrorData[types.FullInferred]())
	} else {
		data := r.c.tables.LookupBase(known).Data
		switch data.Kind {
		case types.Named:
			args := lo.Map(data.Generics.Slice(), func(g types.Ty[types.Inference], _ int) types.Ty[types.FullInferred] {
				return r.resolve(at, g)
			})
			out = types.PropagateError[types.FullInferred](r.full, types.NamedData(data.Entity, types.NewGenerics(args...)))
		case types.PlaceholderBase:
			out = r.full.InternBaseData(types.PlaceholderData[types.FullInferred](data.Placeholder))
		default:
			out = r.full.InternBaseData(types.ErrorData[types.FullInferred]())
		}
	}
	r.memo[base] = out
	return out
}

func (c *checker) finish() *Result {
	pending := c.sched.Pending()
	r := &resolver{
		c:          c,
		full:       types.NewFullInferredTables(),
		memo:       make(map[types.Base]types.Base),
		reported:   set.New[unify.InferVar](len(pending)),
		reportedAt: set.New[diag.Span](len(pending)),
	}
	for _, b := range pending {
		c.logger.Debug("unresolved", "var", b.Var, "cause", b.Cause)
		r.reported.Insert(b.Var)
		if r.reportedAt.Insert(b.Cause) && c.reportUnresolved {
			c.report(b.Cause, "cannot infer type: type annotations needed for %v", b.Var)
		}
	}

	res := &Result{
		ExprTypes:  make(map[hir.ID]types.Ty[types.FullInferred], len(c.exprTypes)),
		Unresolved: lo.Map(pending, func(b ops.Blocked, _ int) unify.InferVar { return b.Var }),
		Tables:     r.full,
	}
	ids := lo.Keys(c.exprTypes)
	slices.Sort(ids)
	for _, id := range ids {
		res.ExprTypes[id] = r.resolve(c.exprSpans[id], c.exprTypes[id])
	}
	if len(ids) > 0 {
		res.Type = res.ExprTypes[ids[0]]
	} else {
		res.Type = types.ErrorType[types.FullInferred](r.full)
	}
	res.Diagnostics = c.diags.Sorted()
	c.logger.Debug("checked entity", "entity", types.EntityName(c.db, c.entity),
		"exprs", len(ids), "diagnostics", len(res.Diagnostics), "ops", c.sched.Executed())
	return res
}

func (c *checker) erroredResult() *Result {
	full := types.NewFullInferredTables()
	return &Result{
		Type:      types.ErrorType[types.FullInferred](full),
		ExprTypes: map[hir.ID]types.Ty[types.FullInferred]{},
		Tables:    full,
		Errored:   true,
	}
}
