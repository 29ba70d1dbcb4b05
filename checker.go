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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/ops"
	"github.com/wdamron/tyck/query"
	"github.com/wdamron/tyck/types"
	"github.com/wdamron/tyck/unify"
)

type env = *immutable.Map[string, types.Ty[types.Inference]]

// checker holds the state of one pass over one entity.
type checker struct {
	ctx    context.Context
	db     query.Database
	entity types.Entity
	logger *slog.Logger
	sink   diag.Sink

	reportUnresolved bool

	tables    *types.InferenceTables
	vars      *unify.Table[types.Base]
	sched     *ops.Scheduler[types.Base, *checker]
	universes *Universes

	exprTypes map[hir.ID]types.Ty[types.Inference]
	exprSpans map[hir.ID]diag.Span
	diags     diag.Collector

	// first fatal error; once set, the pass is abandoned
	err error
}

func newChecker(ctx context.Context, cx *Context, db query.Database, entity types.Entity) *checker {
	c := &checker{
		ctx:              ctx,
		db:               db,
		entity:           entity,
		logger:           cx.logger,
		reportUnresolved: cx.unresolved,
		tables:           types.NewInferenceTables(),
		universes:        NewUniverses(),
		exprTypes:        make(map[hir.ID]types.Ty[types.Inference]),
		exprSpans:        make(map[hir.ID]diag.Span),
	}
	c.sink, _ = query.DiagnosticSink(db)
	c.vars = unify.NewTable[types.Base](c.tables.InferVarOf, func(v unify.InferVar) {
		c.sched.Trigger(c, v)
	})
	c.sched = ops.New[types.Base, *checker](func(dep types.Base) (unify.InferVar, bool) {
		_, v, known := c.vars.ShallowResolve(dep)
		return v, !known
	})
	c.sched.SetLogger(cx.logger)
	return c
}

// fail abandons the pass. Only the first error is kept.
func (c *checker) fail(err error) {
	if c.err == nil {
		c.logger.Debug("abandon check", "entity", types.EntityName(c.db, c.entity), "error", err)
		c.err = err
	}
}

// queryFailed handles an error returned by the database. Entities in error are not reported
// again; anything else abandons the pass.
func (c *checker) queryFailed(err error) {
	if !errors.Is(err, query.ErrReported) {
		c.fail(err)
	}
}

// Record that an error occurred at the given location.
func (c *checker) report(at diag.Span, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.diags.Report(msg, at)
	if c.sink != nil {
		c.sink.Report(msg, at)
	}
}

func (c *checker) newVariable() types.Ty[types.Inference] {
	v := c.vars.NewVar()
	return types.Ty[types.Inference]{Perm: c.tables.OwnPerm(), Repr: c.tables.KnownRepr(types.Direct), Base: c.tables.InternInferVar(v)}
}

func (c *checker) primitive(item types.LangItem) types.Ty[types.Inference] {
	return types.PrimitiveType[types.Inference](c.tables, c.db, item)
}

func (c *checker) errorType() types.Ty[types.Inference] {
	return types.ErrorType[types.Inference](c.tables)
}

func (c *checker) typeString(ty types.Ty[types.Inference]) string {
	return types.Printer[types.Inference]{
		Tables:   c.tables,
		Entities: c.db,
		Resolve: func(v unify.InferVar) (types.Ty[types.Inference], bool) {
			base, ok := c.vars.Probe(v)
			return types.Ty[types.Inference]{Perm: ty.Perm, Repr: ty.Repr, Base: base}, ok
		},
	}.String(ty)
}

func (c *checker) checkEntity() {
	sig, err := c.db.Signature(c.ctx, c.entity)
	if err != nil {
		c.fail(err)
		return
	}
	body, err := c.db.Body(c.ctx, c.entity)
	if err != nil {
		c.fail(err)
		return
	}
	placeholders := c.placeholdersFor(c.entity)
	if c.err != nil {
		return
	}
	inst := c.substituteSignature(sig, placeholders)
	inputs, output := inst.Inputs, inst.Output

	root := body.Root
	if len(body.Params) != len(inputs) {
		c.report(root.Span(), "body has %d parameters but the signature has %d inputs", len(body.Params), len(inputs))
	}
	locals := immutable.NewMap[string, types.Ty[types.Inference]](immutable.NewHasher(""))
	for i, name := range body.Params {
		ty := c.errorType()
		if i < len(inputs) {
			ty = inputs[i]
		}
		locals = locals.Set(name, ty)
	}
	ty := c.check(locals, root)
	c.equate(root.Span(), output, ty)
}
