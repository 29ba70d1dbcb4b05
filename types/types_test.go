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

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/tyck/intern"
	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/unify"
)

func newEntities() *intern.Table[Entity, EntityData] { return intern.New[Entity, EntityData]() }

// Exercised once per family to check that the builders are family-generic.
func checkBuilders[F Family](t *testing.T, tables Interners[F]) {
	t.Helper()
	entities := newEntities()

	i1 := PrimitiveType(tables, entities, Int)
	i2 := PrimitiveType(tables, entities, Int)
	assert.Equal(t, i1, i2, tables.FamilyName())
	assert.NotEqual(t, i1, PrimitiveType(tables, entities, Boolean), tables.FamilyName())
	assert.Equal(t, tables.OwnPerm(), i1.Perm)
	assert.Equal(t, tables.KnownRepr(Direct), i1.Repr)

	vec := entities.Intern(ItemData(Struct, "Vec"))
	v1 := NamedType(tables, vec, NewGenerics(i1))
	v2 := NamedType(tables, vec, NewGenerics(i2))
	assert.Equal(t, v1, v2, "structurally equal generics intern to the same base")
	assert.NotEqual(t, v1, NamedType(tables, vec, NewGenerics(UnitType(tables, entities))))
	assert.NotEqual(t, v1, NamedType(tables, vec, Generics[F]{}))

	entry := tables.LookupBase(v1.Base)
	require.True(t, entry.IsKnown())
	assert.Equal(t, Named, entry.Data.Kind)
	assert.Equal(t, vec, entry.Data.Entity)
	assert.Equal(t, 1, entry.Data.Generics.Len())
	assert.Equal(t, i1, entry.Data.Generics.At(0))

	errTy := ErrorType(tables)
	assert.True(t, IsError(tables, errTy))
	assert.False(t, IsError(tables, v1))
	assert.Equal(t, errTy.Base, PropagateError(tables, NamedData(vec, NewGenerics(errTy))))
	assert.Equal(t, v1.Base, PropagateError(tables, NamedData(vec, NewGenerics(i1))))

	assert.Equal(t, "Vec<int>", TypeString(tables, entities, v1))
	assert.Equal(t, "{error}", TypeString(tables, entities, errTy))
}

func TestBuildersPerFamily(t *testing.T) {
	checkBuilders[Declaration](t, NewDeclarationTables())
	checkBuilders[BaseInferred](t, NewBaseInferredTables())
	checkBuilders[FullInferred](t, NewFullInferredTables())
	checkBuilders[Inference](t, NewInferenceTables())
}

func TestErasedDimensions(t *testing.T) {
	base := NewBaseInferredTables()
	assert.Equal(t, Perm(Erased), base.OwnPerm())
	assert.Equal(t, Repr(Erased), base.KnownRepr(Indirect))
	_, ok := base.LookupPerm(base.OwnPerm())
	assert.False(t, ok)

	full := NewFullInferredTables()
	assert.Equal(t, Perm(Own), full.OwnPerm())
	assert.Equal(t, Perm(Borrow), full.InternPerm(Borrow))
	kind, ok := full.LookupPerm(full.InternPerm(Share))
	require.True(t, ok)
	assert.Equal(t, Share, kind)

	decl := NewDeclarationTables()
	assert.Equal(t, Repr(Indirect), decl.KnownRepr(Indirect))
	assert.NotEqual(t, decl.KnownRepr(Direct), decl.KnownRepr(Indirect))
}

func TestDeclarationRejectsPlaceholders(t *testing.T) {
	decl := NewDeclarationTables()
	assert.False(t, decl.HasPlaceholders())

	var err error
	func() {
		defer invariant.Recover(&err)
		PlaceholderType[Declaration](decl, Placeholder{Universe: 1, Index: 0})
	}()
	var ie *invariant.Error
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, invariant.FamilyMismatch, ie.Code)

	inf := NewInferenceTables()
	p1 := PlaceholderType[Inference](inf, Placeholder{Universe: 1, Index: 0})
	p2 := PlaceholderType[Inference](inf, Placeholder{Universe: 2, Index: 0})
	p3 := PlaceholderType[Inference](inf, Placeholder{Universe: 1, Index: 1})
	assert.NotEqual(t, p1, p2)
	assert.NotEqual(t, p1, p3)
	assert.Equal(t, p1, PlaceholderType[Inference](inf, Placeholder{Universe: 1, Index: 0}))
	assert.Equal(t, "!1_0", TypeString[Inference](inf, newEntities(), p1))
}

func TestVariableBases(t *testing.T) {
	decl := NewDeclarationTables()
	b0 := decl.InternBoundVar(0)
	assert.Equal(t, b0, decl.InternBoundVar(0))
	assert.NotEqual(t, b0, decl.InternBoundVar(1))
	assert.Equal(t, BoundVarEntry, decl.LookupBase(b0).Kind)

	entities := newEntities()
	ty := Ty[Declaration]{Perm: decl.OwnPerm(), Repr: decl.KnownRepr(Direct), Base: decl.InternBoundVar(1)}
	assert.Equal(t, "^1", TypeString[Declaration](decl, entities, ty))
	assert.Equal(t, "U", Printer[Declaration]{Tables: decl, Entities: entities, BoundNames: []string{"T", "U"}}.String(ty))

	inf := NewInferenceTables()
	v := inf.InternInferVar(unify.InferVar(3))
	got, ok := inf.InferVarOf(v)
	require.True(t, ok)
	assert.Equal(t, unify.InferVar(3), got)
	_, ok = inf.InferVarOf(PrimitiveType[Inference](inf, entities, Int).Base)
	assert.False(t, ok)

	varTy := Ty[Inference]{Perm: inf.OwnPerm(), Base: v}
	assert.Equal(t, "?3", TypeString[Inference](inf, entities, varTy))
	intTy := PrimitiveType[Inference](inf, entities, Int)
	p := Printer[Inference]{Tables: inf, Entities: entities, Resolve: func(unify.InferVar) (Ty[Inference], bool) { return intTy, true }}
	assert.Equal(t, "int", p.String(varTy))
}

func TestPermissionPrefix(t *testing.T) {
	inf := NewInferenceTables()
	entities := newEntities()
	s := PrimitiveType[Inference](inf, entities, String)
	s.Perm = inf.InternPerm(Share)
	assert.Equal(t, "shared String", TypeString[Inference](inf, entities, s))
}

func TestGenericsPersistence(t *testing.T) {
	tables := NewInferenceTables()
	entities := newEntities()
	i := PrimitiveType[Inference](tables, entities, Int)
	b := PrimitiveType[Inference](tables, entities, Boolean)

	parent := NewGenerics(i)
	child := parent.Extend(b)
	assert.Equal(t, 1, parent.Len())
	assert.Equal(t, 2, child.Len())
	assert.Equal(t, []Ty[Inference]{i, b}, child.Slice())
	assert.True(t, parent.Equal(NewGenerics(i)))
	assert.False(t, parent.Equal(child))
	assert.Equal(t, 0, Generics[Inference]{}.Len())
	assert.Empty(t, Generics[Inference]{}.Slice())
}

func TestEntityNames(t *testing.T) {
	entities := newEntities()
	vec := entities.Intern(ItemData(Struct, "Vec"))
	push := entities.Intern(MemberData(vec, Method, "push"))
	assert.Equal(t, "Vec.push", EntityName(entities, push))
	assert.Equal(t, "()", EntityName(entities, entities.Intern(LangItemData(Unit))))
	assert.Equal(t, "{error}", EntityName(entities, entities.Intern(ErrorEntityData("unresolved"))))
}

func BenchmarkInternNamedType(b *testing.B) {
	tables := NewInferenceTables()
	entities := newEntities()
	vec := entities.Intern(ItemData(Struct, "Vec"))
	i := PrimitiveType[Inference](tables, entities, Int)
	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		NamedType[Inference](tables, vec, NewGenerics(i, i))
	}
}
