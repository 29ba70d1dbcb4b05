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

package tyck_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/tyck"
	. "github.com/wdamron/tyck/construct"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/query/memdb"
	"github.com/wdamron/tyck/types"
	"github.com/wdamron/tyck/unify"
)

const declarations = `
items:
  - name: Vec
    kind: struct
    generics: [T]
    fields:
      - {name: len, type: uint}
    methods:
      - {name: push, params: [T]}
      - {name: get, params: [uint], output: T}
      - name: map
        generics: [U]
        params: [U]
        output: Vec<U>
  - name: Point
    kind: struct
    fields:
      - {name: x, type: int}
  - {name: make, kind: function, generics: [T], output: T}
  - {name: new_vec, kind: function, generics: [T], output: Vec<T>}
  - {name: id, kind: function, generics: [T], params: [T], output: T}
  - {name: same, kind: function, generics: [T], params: [T, T], output: T}
  - {name: wrap, kind: function, generics: [T], params: [T], output: Vec<T>}
  - {name: take_point, kind: function, params: [Point]}
  - {name: take_ints, kind: function, params: ["Vec<int>"]}
`

func newDB(t testing.TB) *memdb.DB {
	t.Helper()
	db, err := memdb.Load(strings.NewReader(declarations))
	require.NoError(t, err)
	return db
}

// call builds a call of the named item.
func call(db *memdb.DB, name string, args ...hir.Expr) *hir.Call {
	return Call(db.MustItem(name), name, args...)
}

// fn declares a function with the given body and output type.
func fn(t testing.TB, db *memdb.DB, generics []string, params []string, inputs []string, output string, root hir.Expr) types.Entity {
	t.Helper()
	scope := generics
	sig := types.Signature[types.Declaration]{}
	for _, in := range inputs {
		ty, err := db.ParseType(in, scope)
		require.NoError(t, err)
		sig.Inputs = append(sig.Inputs, ty)
	}
	out, err := db.ParseType(output, scope)
	require.NoError(t, err)
	sig.Output = out
	e := db.Function(t.Name(), generics, sig)
	db.SetBody(e, hir.NewBody(params, root))
	return e
}

func span(start, end int) diag.Span { return diag.Span{File: "main", Start: start, End: end} }

func check(t *testing.T, db *memdb.DB, e types.Entity) *Result {
	t.Helper()
	res, err := NewContext().CheckEntity(context.Background(), db, e)
	require.NoError(t, err)
	return res
}

func messages(res *Result) []string {
	out := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		out[i] = d.Message
	}
	return out
}

func TestUnconstrainedGenericIsUnresolved(t *testing.T) {
	db := newDB(t)
	field := At(Field(Local("v"), "x"), "main", 20, 23)
	e := fn(t, db, nil, nil, nil, "()", Let("v", call(db, "make"), Seq(field, Unit())))

	res := check(t, db, e)
	require.NotEmpty(t, res.Unresolved)
	assert.Equal(t, []unify.InferVar{0}, res.Unresolved)
	want := []diag.Diagnostic{{Message: "cannot infer type: type annotations needed for ?0", Span: span(20, 23)}}
	if diff := pretty.Diff(want, res.Diagnostics); len(diff) > 0 {
		t.Fatalf("diagnostics: %v", diff)
	}
	assert.True(t, types.IsError[types.FullInferred](res.Tables, res.ExprTypes[field.ID()]))
	assert.Equal(t, "()", res.TypeString(db, res.Type))

	// every diagnostic also reaches the database
	assert.Equal(t, 1, db.Len())
}

func TestUnresolvedGenericArgumentCollapsesToError(t *testing.T) {
	db := newDB(t)
	vec := At(call(db, "new_vec"), "main", 4, 13)
	e := fn(t, db, nil, nil, nil, "()", Seq(vec, Unit()))

	res := check(t, db, e)
	assert.Equal(t, []string{"cannot infer type: type annotations needed for ?0"}, messages(res))
	assert.Equal(t, span(4, 13), res.Diagnostics[0].Span)
	assert.Equal(t, "{error}", res.TypeString(db, res.ExprTypes[vec.ID()]))
	assert.Equal(t, "()", res.TypeString(db, res.Type))
}

func TestUnresolvedDiagnosticsCanBeDisabled(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "()", Let("v", call(db, "make"), Seq(Field(Local("v"), "x"), Unit())))

	cx := NewContext()
	cx.EnableUnresolvedDiagnostics(false)
	res, err := cx.CheckEntity(context.Background(), db, e)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.Unresolved, 1)
}

func TestDeferredFieldAccessResumes(t *testing.T) {
	db := newDB(t)
	first := Field(Local("v"), "x")
	e := fn(t, db, nil, nil, nil, "int",
		Let("v", call(db, "make"), Seq(first, call(db, "take_point", Local("v")), Field(Local("v"), "x"))))

	res := check(t, db, e)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, "int", res.TypeString(db, res.ExprTypes[first.ID()]))
	assert.Equal(t, "int", res.TypeString(db, res.Type))
}

func TestMismatchedTypes(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "int", At(Bool(true), "main", 3, 7))

	res := check(t, db, e)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "main:3-7: mismatched types: expected int, found bool", res.Diagnostics[0].String())
	assert.Equal(t, "bool", res.TypeString(db, res.Type))
}

func TestNestedMismatchReportsEnclosingTypes(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "()", call(db, "take_ints", call(db, "wrap", Str("s"))))

	res := check(t, db, e)
	assert.Equal(t, []string{"mismatched types: expected Vec<int>, found Vec<String>"}, messages(res))
}

func TestRecursiveType(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "()",
		Let("v", call(db, "make"), Seq(call(db, "same", Local("v"), call(db, "wrap", Local("v"))), Unit())))

	res := check(t, db, e)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0].Message, "recursive type")
	assert.Empty(t, res.Unresolved)
}

func TestMethodCallsUseOwnerGenerics(t *testing.T) {
	db := newDB(t)
	mapped := Method(Local("v"), "map", Str("s"))
	e := fn(t, db, nil, nil, nil, "int",
		Let("v", call(db, "new_vec"), Seq(
			Method(Local("v"), "push", Int(1)),
			mapped,
			Method(Local("v"), "get", Uint(0)),
		)))

	res := check(t, db, e)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, "Vec<String>", res.TypeString(db, res.ExprTypes[mapped.ID()]))
	assert.Equal(t, "int", res.TypeString(db, res.Type))
}

func TestDeferredMethodCall(t *testing.T) {
	db := newDB(t)
	push := Method(Local("v"), "push", Int(1))
	e := fn(t, db, nil, nil, nil, "()",
		Let("v", call(db, "make"), Seq(push, call(db, "take_ints", Local("v")))))

	res := check(t, db, e)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, "()", res.TypeString(db, res.ExprTypes[push.ID()]))
}

func TestDeferredMethodArgumentMismatch(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "()",
		Let("v", call(db, "make"), Seq(
			Method(Local("v"), "push", At(Bool(true), "main", 10, 14)),
			call(db, "take_ints", Local("v")),
		)))

	res := check(t, db, e)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "main:10-14: mismatched types: expected int, found bool", res.Diagnostics[0].String())
}

func TestPlaceholdersAreRigid(t *testing.T) {
	db := newDB(t)
	ok := fn(t, db, []string{"T"}, []string{"x"}, []string{"T"}, "T", Local("x"))
	res := check(t, db, ok)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "!1_0", res.TypeString(db, res.Type))

	db2 := newDB(t)
	bad := fn(t, db2, []string{"T", "U"}, []string{"x"}, []string{"T"}, "U", Local("x"))
	res = check(t, db2, bad)
	assert.Equal(t, []string{"mismatched types: expected !1_1, found !1_0"}, messages(res))
}

func TestMissingMembers(t *testing.T) {
	db := newDB(t)
	origin := db.Function("origin", nil, types.Signature[types.Declaration]{Output: db.Named(db.MustItem("Point"))})
	e := fn(t, db, nil, nil, nil, "()", Seq(
		Field(Call(origin, "origin"), "y"),
		Method(Call(origin, "origin"), "norm"),
		Unit(),
	))

	res := check(t, db, e)
	assert.Equal(t, []string{"no field `y` on type Point", "no method `norm` on type Point"}, messages(res))
}

func TestControlFlowAndLocals(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, []string{"n"}, []string{"int"}, "int", Seq(
		If(Bool(true), Unit()),
		If(At(Int(1), "main", 1, 2), Unit()),
		At(Local("missing"), "main", 5, 12),
		IfElse(Bool(false), Local("n"), Int(2)),
	))

	res := check(t, db, e)
	assert.Equal(t, []string{
		"mismatched types: expected bool, found int",
		"cannot find value `missing` in this scope",
	}, messages(res))
	assert.Equal(t, "int", res.TypeString(db, res.Type))
}

func TestArgumentCount(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "int", call(db, "id", Int(1), Int(2)))
	res := check(t, db, e)
	assert.Equal(t, []string{"expected 1 arguments, found 2"}, messages(res))
	assert.Equal(t, "int", res.TypeString(db, res.Type))
}

func TestErrorTypesAbsorb(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "()",
		Let("v", call(db, "new_vec"), Seq(call(db, "same", Error("unresolved path"), Local("v")), Unit())))

	res := check(t, db, e)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Unresolved)
}

func TestErroneousEntities(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "int", Int(1))
	db.Poison(e)

	res := check(t, db, e)
	assert.True(t, res.Errored)
	assert.True(t, types.IsError[types.FullInferred](res.Tables, res.Type))
	assert.Empty(t, res.Diagnostics)

	// calls of an erroneous callee are not reported again
	db2 := newDB(t)
	db2.Poison(db2.MustItem("id"))
	arg := Int(1)
	caller := fn(t, db2, nil, nil, nil, "int", call(db2, "id", arg))
	res = check(t, db2, caller)
	assert.False(t, res.Errored)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "int", res.TypeString(db2, res.ExprTypes[arg.ID()]))
	assert.Equal(t, "{error}", res.TypeString(db2, res.Type))
}

func TestCancellation(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "int", Int(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := NewContext().CheckEntity(ctx, db, e)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestBaseOnly(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "Vec<int>", call(db, "wrap", Int(1)))

	res := check(t, db, e)
	base := res.BaseOnly()
	assert.Equal(t, types.Perm(types.Erased), base.Type.Perm)
	assert.Equal(t, "Vec<int>", types.TypeString[types.BaseInferred](base.Tables, db, base.Type))
	assert.Len(t, base.ExprTypes, len(res.ExprTypes))
}

func TestDebugLogging(t *testing.T) {
	db := newDB(t)
	e := fn(t, db, nil, nil, nil, "int",
		Let("v", call(db, "make"), Seq(Field(Local("v"), "x"), call(db, "take_point", Local("v")), Int(0))))

	var buf bytes.Buffer
	cx := NewContext()
	cx.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	res, err := cx.CheckEntity(context.Background(), db, e)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	out := buf.String()
	assert.Contains(t, out, "check entity")
	assert.Contains(t, out, "enqueue op")
	assert.Contains(t, out, "run op")
}

func TestInvariantViolationsAreReturned(t *testing.T) {
	db := newDB(t)
	// a signature which refers to a generic parameter the function does not declare
	sig := types.Signature[types.Declaration]{Output: db.Bound(3)}
	e := db.Function("broken", nil, sig)
	db.SetBody(e, hir.NewBody(nil, Int(1)))

	_, err := NewContext().CheckEntity(context.Background(), db, e)
	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "BOUND_VAR_RANGE")
}

func BenchmarkCheckEntity(b *testing.B) {
	db := newDB(b)
	e := fn(b, db, nil, nil, nil, "int",
		Let("v", call(db, "make"), Seq(
			Method(Local("v"), "push", Int(1)),
			Method(Local("v"), "map", Str("s")),
			call(db, "take_ints", Local("v")),
			Method(Local("v"), "get", Uint(0)),
		)))
	cx := NewContext()
	ctx := context.Background()

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		res, err := cx.CheckEntity(ctx, db, e)
		if err != nil || len(res.Diagnostics) > 0 {
			b.Fatal(err, res.Diagnostics)
		}
	}
}
