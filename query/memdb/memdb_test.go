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

package memdb

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tyck/construct"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/query"
	"github.com/wdamron/tyck/types"
)

const fixture = `
items:
  - name: Vec
    kind: struct
    generics: [T]
    fields:
      - {name: len, type: uint}
      - {name: first, type: T}
    methods:
      - {name: push, params: [T]}
      - name: map
        generics: [U]
        params: [U]
        output: Vec<U>
  - name: Pair
    kind: struct
    generics: [A, B]
    fields:
      - {name: left, type: A}
      - {name: inner, type: "Vec<Pair<B, A>>"}
  - name: make
    kind: function
    generics: [T]
    output: T
  - name: len
    kind: function
    params: [String]
    output: uint
`

func load(t *testing.T) *DB {
	t.Helper()
	db, err := Load(strings.NewReader(fixture))
	require.NoError(t, err)
	return db
}

func str(db *DB, ty types.Ty[types.Declaration], scope ...string) string {
	return types.Printer[types.Declaration]{Tables: db.DeclarationTables(), Entities: db, BoundNames: scope}.String(ty)
}

func TestLoadDeclarations(t *testing.T) {
	ctx := context.Background()
	db := load(t)

	vec := db.MustItem("Vec")
	ty, err := db.Ty(ctx, vec)
	require.NoError(t, err)
	assert.Equal(t, "Vec<T>", str(db, ty, "T"))

	push, err := db.Member(ctx, vec, types.Method, "push")
	require.NoError(t, err)
	sig, err := db.Signature(ctx, push)
	require.NoError(t, err)
	require.Len(t, sig.Inputs, 2)
	assert.Equal(t, ty, sig.Inputs[0], "receiver comes first")
	assert.Equal(t, "T", str(db, sig.Inputs[1], "T"))
	assert.Equal(t, "()", str(db, sig.Output))

	mapM, err := db.Member(ctx, vec, types.Method, "map")
	require.NoError(t, err)
	g, err := db.GenericDeclarations(ctx, mapM)
	require.NoError(t, err)
	require.NotNil(t, g.Parent)
	assert.Equal(t, vec, *g.Parent)
	assert.Equal(t, []string{"U"}, g.Names)
	sig, err = db.Signature(ctx, mapM)
	require.NoError(t, err)
	assert.Equal(t, "Vec<U>", str(db, sig.Output, "T", "U"))

	pair := db.MustItem("Pair")
	inner, err := db.Member(ctx, pair, types.Field, "inner")
	require.NoError(t, err)
	fty, err := db.Ty(ctx, inner)
	require.NoError(t, err)
	assert.Equal(t, "Vec<Pair<B, A>>", str(db, fty, "A", "B"))

	_, err = db.Member(ctx, vec, types.Field, "missing")
	assert.ErrorIs(t, err, query.ErrNoMember)

	mk := db.MustItem("make")
	g, err = db.GenericDeclarations(ctx, mk)
	require.NoError(t, err)
	assert.Nil(t, g.Parent)
	assert.Equal(t, []string{"T"}, g.Names)
}

func TestLoadRejectsInvalidDeclarations(t *testing.T) {
	for name, src := range map[string]string{
		"unknown field":     "items: [{name: A, kind: struct, bogus: 1}]",
		"unknown kind":      "items: [{name: A, kind: enum}]",
		"duplicate item":    "items: [{name: A, kind: struct}, {name: A, kind: function}]",
		"duplicate generic": "items: [{name: A, kind: struct, generics: [T, T]}]",
		"unknown type":      "items: [{name: f, kind: function, output: Nope}]",
		"arity":             "items: [{name: A, kind: struct, generics: [T]}, {name: f, kind: function, output: A}]",
		"trailing":          "items: [{name: f, kind: function, output: int>}]",
		"fields on fn":      "items: [{name: f, kind: function, fields: [{name: x, type: int}]}]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestQueries(t *testing.T) {
	db := load(t)
	mk := db.MustItem("make")
	body := hir.NewBody(nil, construct.Call(mk, "make"))
	db.SetBody(mk, body)

	got, err := db.Body(context.Background(), mk)
	require.NoError(t, err)
	assert.Same(t, body, got)
	assert.Positive(t, db.Queries())

	_, err = db.Body(context.Background(), db.MustItem("len"))
	assert.Error(t, err)

	intTy, err := db.Ty(context.Background(), db.Intern(types.LangItemData(types.Int)))
	require.NoError(t, err)
	assert.Equal(t, db.Prim(types.Int), intTy)

	db.Poison(mk)
	_, err = db.Signature(context.Background(), mk)
	assert.ErrorIs(t, err, query.ErrReported)

	_, err = db.Ty(context.Background(), db.Intern(types.ErrorEntityData("unresolved")))
	assert.ErrorIs(t, err, query.ErrReported)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.Signature(ctx, db.MustItem("len"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectsDiagnostics(t *testing.T) {
	db := New()
	sink, ok := query.DiagnosticSink(db)
	require.True(t, ok)
	sink.Report("mismatched types", hir.NewBody(nil, construct.At(construct.Int(1), "a", 1, 2)).Root.Span())
	require.Equal(t, 1, db.Len())
	assert.Equal(t, "a:1-2: mismatched types", db.Diagnostics[0].String())
}
