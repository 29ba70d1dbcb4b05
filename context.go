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
	"io"
	"log/slog"

	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/query"
	"github.com/wdamron/tyck/types"
)

// InvariantError is returned by CheckEntity when the engine detects a bug in itself or in the
// database it was given. It never describes a property of the checked program.
type InvariantError = invariant.Error

// Context is a reusable configuration for type checking.
//
// A context may be shared across goroutines once configured; every call to CheckEntity creates its
// own pass state. The database passed to CheckEntity must not be used concurrently.
type Context struct {
	logger     *slog.Logger
	unresolved bool
}

// Create a new type-checking context.
func NewContext() *Context {
	return &Context{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		unresolved: true,
	}
}

// SetLogger sets the logger used for debug tracing. By default nothing is logged.
func (cx *Context) SetLogger(logger *slog.Logger) {
	if logger != nil {
		cx.logger = logger
	}
}

// Inference variables which are still unknown once a body has been checked are reported as
// "cannot infer type" diagnostics. They are always listed in Result.Unresolved.
//
// By default, unresolved diagnostics are enabled.
func (cx *Context) EnableUnresolvedDiagnostics(enabled bool) { cx.unresolved = enabled }

// CheckEntity type-checks the body of a function or method.
//
// Type errors in the body do not fail the check: they are reported as diagnostics, and the
// offending expressions are given the error type. An entity whose errors were already reported
// yields a result with the error type and Errored set.
//
// The returned error is ctx.Err() if ctx is cancelled, a database failure, or an *InvariantError.
func (cx *Context) CheckEntity(ctx context.Context, db query.Database, entity types.Entity) (res *Result, err error) {
	defer invariant.Recover(&err)

	c := newChecker(ctx, cx, db, entity)
	cx.logger.Debug("check entity", "entity", types.EntityName(db, entity))
	c.checkEntity()
	if c.err != nil {
		if errors.Is(c.err, query.ErrReported) {
			return c.erroredResult(), nil
		}
		return nil, c.err
	}
	return c.finish(), nil
}
