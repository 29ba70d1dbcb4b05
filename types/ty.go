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

// Ty is a type of family F. Types are compared by their keys: keys interned in the same tables are
// equal exactly when the interned data is equal.
type Ty[F Family] struct {
	Perm Perm
	Repr Repr
	Base Base
}

// BaseKind distinguishes the variants of BaseData.
type BaseKind uint8

const (
	// A named type: a struct, or a lang item such as int.
	Named BaseKind = iota
	// A rigid generic parameter.
	PlaceholderBase
	// The type of an erroneous expression. Errors unify with everything.
	ErrorBase
)

// BaseData is the structural data of a base type.
type BaseData[F Family] struct {
	Kind        BaseKind
	Entity      Entity
	Placeholder Placeholder
	Generics    Generics[F]
}

// NamedData creates the data of a named type.
func NamedData[F Family](e Entity, generics Generics[F]) BaseData[F] {
	return BaseData[F]{Kind: Named, Entity: e, Generics: generics}
}

// PlaceholderData creates the data of a placeholder.
func PlaceholderData[F Family](p Placeholder) BaseData[F] {
	return BaseData[F]{Kind: PlaceholderBase, Placeholder: p}
}

// ErrorData creates the data of the error type.
func ErrorData[F Family]() BaseData[F] { return BaseData[F]{Kind: ErrorBase} }

// Equal compares two base data structurally.
func (d BaseData[F]) Equal(o BaseData[F]) bool {
	return d.Kind == o.Kind && d.Entity == o.Entity && d.Placeholder == o.Placeholder && d.Generics.Equal(o.Generics)
}

// BoundVar is the index of a generic parameter within the (parent-extended) generic declarations
// of an item.
type BoundVar uint32

// Universe identifies a scope in which placeholders were introduced. Universes are created in
// increasing order while checking an entity.
type Universe uint32

// RootUniverse contains no placeholders.
const RootUniverse Universe = 0

// Placeholder is a rigid generic parameter: the parameter at Index of the item which introduced
// Universe.
type Placeholder struct {
	Universe Universe
	Index    BoundVar
}
