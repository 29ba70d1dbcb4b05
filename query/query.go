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

// Package query defines the database through which the checker reads declarations.
//
// The database is owned by the caller. Its answers are expected to be memoized, so the checker asks
// freely and never caches results itself.
package query

import (
	"context"
	"errors"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/intern"
	"github.com/wdamron/tyck/types"
)

// ErrReported is returned for entities whose errors have already been reported. The checker treats
// such entities as having the error type and reports nothing further about them.
var ErrReported = errors.New("query: error already reported")

// Database answers the questions the checker asks about declarations.
//
// Every method which takes a context may return ctx.Err() once the context is cancelled.
type Database interface {
	intern.Interner[types.Entity, types.EntityData]

	// The tables in which declared types are interned.
	DeclarationTables() *types.DeclarationTables
	// The generic parameters declared by an item or member.
	GenericDeclarations(ctx context.Context, e types.Entity) (types.GenericDeclarations, error)
	// The declared signature of a function or method.
	Signature(ctx context.Context, e types.Entity) (types.Signature[types.Declaration], error)
	// The declared type of a struct (with its generics as bound variables) or a field.
	Ty(ctx context.Context, e types.Entity) (types.Ty[types.Declaration], error)
	// The member of owner with the given kind and name.
	Member(ctx context.Context, owner types.Entity, kind types.MemberKind, name string) (types.Entity, error)
	// The body of a function or method.
	Body(ctx context.Context, e types.Entity) (*hir.Body, error)
}

// ErrNoMember is returned by Member when the owner has no such member.
var ErrNoMember = errors.New("query: no such member")

// DiagnosticSink returns the sink of db, if db implements diag.Sink.
func DiagnosticSink(db Database) (diag.Sink, bool) {
	s, ok := db.(diag.Sink)
	return s, ok
}
