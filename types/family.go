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

// Package types defines the family-polymorphic representation of types.
//
// A type is a triple of small keys (permission, representation, base) whose meaning depends on the
// Family the type belongs to. Each family is a stage of compilation: declared signatures, base-only
// inference results, fully inferred results, and inference in progress. Code which builds types is
// written once against Interners[F] and instantiated for every family.
package types

import "github.com/wdamron/tyck/unify"

// Family is the closed set of type families.
type Family interface {
	Declaration | BaseInferred | FullInferred | Inference
}

// Declaration preserves what the user wrote. Bases may refer to bound variables of the generic
// declarations in scope; there are no placeholders and no inference variables.
type Declaration struct{}

// BaseInferred holds fully inferred base types. Permissions and representations are erased.
type BaseInferred struct{}

// FullInferred holds fully inferred types. Representations are erased.
type FullInferred struct{}

// Inference is the family used while a body is being checked. Bases may be inference variables.
type Inference struct{}

// Perm is a permission key. Its meaning depends on the family.
type Perm uint32

// Repr is a representation key. Its meaning depends on the family.
type Repr uint32

// Base is a base-type key. Its meaning depends on the family.
type Base uint32

// Erased is the value of a dimension which a family does not track.
const Erased = 0

// PermKind is a permission.
type PermKind uint8

const (
	Own PermKind = iota
	Share
	Borrow
)

func (p PermKind) String() string {
	switch p {
	case Own:
		return "own"
	case Share:
		return "shared"
	case Borrow:
		return "borrowed"
	}
	return "perm(?)"
}

// DeclaredPermKind is a permission written in a declaration. Only `own` may be declared.
type DeclaredPermKind uint8

const (
	DeclaredOwn DeclaredPermKind = iota
)

// ReprKind is an abstract representation.
type ReprKind uint8

const (
	Direct ReprKind = iota
	Indirect
)

// Interners are the intern tables of one family. Dimensions the family erases are constant.
type Interners[F Family] interface {
	// The family's name, for diagnostics.
	FamilyName() string
	// The permission meaning "exclusive/owning".
	OwnPerm() Perm
	// The family's value for an abstract representation.
	KnownRepr(kind ReprKind) Repr
	// Intern known base data.
	InternBaseData(data BaseData[F]) Base
	// Look up the data of a base.
	LookupBase(base Base) BaseEntry[F]
	// Look up a permission. ok is false if the family erases permissions.
	LookupPerm(perm Perm) (kind PermKind, ok bool)
	// Look up a representation. ok is false if the family erases representations.
	LookupRepr(repr Repr) (kind ReprKind, ok bool)
	// Whether bases of the family may be placeholders.
	HasPlaceholders() bool
}

// EntryKind distinguishes the variants of a BaseEntry.
type EntryKind uint8

const (
	// Known structural data.
	KnownEntry EntryKind = iota
	// An inference variable (Inference family only).
	InferVarEntry
	// A bound variable of the enclosing generic declarations (Declaration family only).
	BoundVarEntry
)

// BaseEntry is the interned data of a base: known structural data, or a variable the family allows.
type BaseEntry[F Family] struct {
	Kind  EntryKind
	Var   unify.InferVar
	Bound BoundVar
	Data  BaseData[F]
}

// Known wraps structural data in an entry.
func Known[F Family](data BaseData[F]) BaseEntry[F] {
	return BaseEntry[F]{Kind: KnownEntry, Data: data}
}

// IsKnown returns true if e holds structural data.
func (e BaseEntry[F]) IsKnown() bool { return e.Kind == KnownEntry }
