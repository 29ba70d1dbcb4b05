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
	"github.com/wdamron/tyck/intern"
	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/unify"
)

var (
	_ Interners[Declaration]  = (*DeclarationTables)(nil)
	_ Interners[BaseInferred] = (*BaseInferredTables)(nil)
	_ Interners[FullInferred] = (*FullInferredTables)(nil)
	_ Interners[Inference]    = (*InferenceTables)(nil)
)

// fnv-1a over 32-bit words
func mix(h, x uint32) uint32 { return (h ^ x) * 16777619 }

type entryHasher[F Family] struct{}

func (entryHasher[F]) Hash(e BaseEntry[F]) uint32 {
	h := uint32(2166136261)
	h = mix(h, uint32(e.Kind))
	h = mix(h, uint32(e.Var))
	h = mix(h, uint32(e.Bound))
	d := e.Data
	h = mix(h, uint32(d.Kind))
	h = mix(h, uint32(d.Entity))
	h = mix(h, uint32(d.Placeholder.Universe))
	h = mix(h, uint32(d.Placeholder.Index))
	h = mix(h, uint32(d.Generics.Len()))
	d.Generics.Range(func(_ int, t Ty[F]) bool {
		h = mix(mix(mix(h, uint32(t.Perm)), uint32(t.Repr)), uint32(t.Base))
		return true
	})
	return h
}

func (entryHasher[F]) Equal(a, b BaseEntry[F]) bool {
	return a.Kind == b.Kind && a.Var == b.Var && a.Bound == b.Bound && a.Data.Equal(b.Data)
}

func newBaseTable[F Family]() *intern.Table[Base, BaseEntry[F]] {
	return intern.NewWithHasher[Base, BaseEntry[F]](entryHasher[F]{})
}

// DeclarationTables intern types as declared. Permissions are interned, representations are kept
// as written and bases may be bound variables.
type DeclarationTables struct {
	perms *intern.Table[Perm, DeclaredPermKind]
	bases *intern.Table[Base, BaseEntry[Declaration]]
}

func NewDeclarationTables() *DeclarationTables {
	return &DeclarationTables{perms: intern.New[Perm, DeclaredPermKind](), bases: newBaseTable[Declaration]()}
}

func (t *DeclarationTables) FamilyName() string                 { return "declaration" }
func (t *DeclarationTables) OwnPerm() Perm                      { return t.perms.Intern(DeclaredOwn) }
func (t *DeclarationTables) KnownRepr(kind ReprKind) Repr       { return Repr(kind) }
func (t *DeclarationTables) LookupRepr(r Repr) (ReprKind, bool) { return ReprKind(r), true }
func (t *DeclarationTables) HasPlaceholders() bool              { return false }

func (t *DeclarationTables) InternBaseData(data BaseData[Declaration]) Base {
	if data.Kind == PlaceholderBase {
		invariant.Violated(invariant.FamilyMismatch, "declarations cannot contain placeholders")
	}
	return t.bases.Intern(Known(data))
}

// InternBoundVar interns a reference to a generic parameter.
func (t *DeclarationTables) InternBoundVar(bv BoundVar) Base {
	return t.bases.Intern(BaseEntry[Declaration]{Kind: BoundVarEntry, Bound: bv})
}

func (t *DeclarationTables) LookupBase(b Base) BaseEntry[Declaration] { return t.bases.Lookup(b) }

func (t *DeclarationTables) LookupPerm(p Perm) (PermKind, bool) {
	t.perms.Lookup(p) // only own may be declared
	return Own, true
}

// BaseInferredTables intern base-only inference results. Permissions and representations are erased.
type BaseInferredTables struct {
	bases *intern.Table[Base, BaseEntry[BaseInferred]]
}

func NewBaseInferredTables() *BaseInferredTables {
	return &BaseInferredTables{bases: newBaseTable[BaseInferred]()}
}

func (t *BaseInferredTables) FamilyName() string                        { return "base-inferred" }
func (t *BaseInferredTables) OwnPerm() Perm                             { return Erased }
func (t *BaseInferredTables) KnownRepr(ReprKind) Repr                   { return Erased }
func (t *BaseInferredTables) LookupPerm(Perm) (PermKind, bool)          { return Own, false }
func (t *BaseInferredTables) LookupRepr(Repr) (ReprKind, bool)          { return Direct, false }
func (t *BaseInferredTables) HasPlaceholders() bool                     { return true }
func (t *BaseInferredTables) LookupBase(b Base) BaseEntry[BaseInferred] { return t.bases.Lookup(b) }

func (t *BaseInferredTables) InternBaseData(data BaseData[BaseInferred]) Base {
	return t.bases.Intern(Known(data))
}

// FullInferredTables intern fully inferred types. Permissions are stored directly in the key and
// representations are erased.
type FullInferredTables struct {
	bases *intern.Table[Base, BaseEntry[FullInferred]]
}

func NewFullInferredTables() *FullInferredTables {
	return &FullInferredTables{bases: newBaseTable[FullInferred]()}
}

func (t *FullInferredTables) FamilyName() string                        { return "full-inferred" }
func (t *FullInferredTables) OwnPerm() Perm                             { return Perm(Own) }
func (t *FullInferredTables) KnownRepr(ReprKind) Repr                   { return Erased }
func (t *FullInferredTables) LookupPerm(p Perm) (PermKind, bool)        { return PermKind(p), true }
func (t *FullInferredTables) LookupRepr(Repr) (ReprKind, bool)          { return Direct, false }
func (t *FullInferredTables) HasPlaceholders() bool                     { return true }
func (t *FullInferredTables) LookupBase(b Base) BaseEntry[FullInferred] { return t.bases.Lookup(b) }

func (t *FullInferredTables) InternBaseData(data BaseData[FullInferred]) Base {
	return t.bases.Intern(Known(data))
}

// InternPerm returns the key for a permission.
func (t *FullInferredTables) InternPerm(kind PermKind) Perm { return Perm(kind) }

// InferenceTables intern types while a body is being checked. Bases may be inference variables.
type InferenceTables struct {
	perms *intern.Table[Perm, PermKind]
	bases *intern.Table[Base, BaseEntry[Inference]]
}

func NewInferenceTables() *InferenceTables {
	return &InferenceTables{perms: intern.New[Perm, PermKind](), bases: newBaseTable[Inference]()}
}

func (t *InferenceTables) FamilyName() string                     { return "inference" }
func (t *InferenceTables) OwnPerm() Perm                          { return t.perms.Intern(Own) }
func (t *InferenceTables) KnownRepr(ReprKind) Repr                { return Erased }
func (t *InferenceTables) LookupPerm(p Perm) (PermKind, bool)     { return t.perms.Lookup(p), true }
func (t *InferenceTables) LookupRepr(Repr) (ReprKind, bool)       { return Direct, false }
func (t *InferenceTables) HasPlaceholders() bool                  { return true }
func (t *InferenceTables) LookupBase(b Base) BaseEntry[Inference] { return t.bases.Lookup(b) }

func (t *InferenceTables) InternBaseData(data BaseData[Inference]) Base {
	return t.bases.Intern(Known(data))
}

// InternPerm returns the key for a permission.
func (t *InferenceTables) InternPerm(kind PermKind) Perm { return t.perms.Intern(kind) }

// InternInferVar interns a base which stands for an inference variable.
func (t *InferenceTables) InternInferVar(v unify.InferVar) Base {
	return t.bases.Intern(BaseEntry[Inference]{Kind: InferVarEntry, Var: v})
}

// InferVarOf reports the inference variable a base stands for, if any.
func (t *InferenceTables) InferVarOf(b Base) (unify.InferVar, bool) {
	e := t.bases.Lookup(b)
	return e.Var, e.Kind == InferVarEntry
}
