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

// NamedType creates an owned, directly represented type for entity e with the given generics.
func NamedType[F Family](t Interners[F], e Entity, generics Generics[F]) Ty[F] {
	return Ty[F]{Perm: t.OwnPerm(), Repr: t.KnownRepr(Direct), Base: t.InternBaseData(NamedData(e, generics))}
}

// PrimitiveType creates the type of a lang item.
func PrimitiveType[F Family](t Interners[F], entities EntityInterner, item LangItem) Ty[F] {
	return NamedType(t, entities.Intern(LangItemData(item)), Generics[F]{})
}

// UnitType creates the type of the empty tuple.
func UnitType[F Family](t Interners[F], entities EntityInterner) Ty[F] {
	return PrimitiveType(t, entities, Unit)
}

// PlaceholderType creates the type of a placeholder.
func PlaceholderType[F Family](t Interners[F], p Placeholder) Ty[F] {
	return Ty[F]{Perm: t.OwnPerm(), Repr: t.KnownRepr(Direct), Base: t.InternBaseData(PlaceholderData[F](p))}
}

// ErrorType creates the type given to erroneous expressions.
func ErrorType[F Family](t Interners[F]) Ty[F] {
	return Ty[F]{Perm: t.OwnPerm(), Repr: t.KnownRepr(Direct), Base: t.InternBaseData(ErrorData[F]())}
}

// IsError returns true if ty is the error type.
func IsError[F Family](t Interners[F], ty Ty[F]) bool {
	e := t.LookupBase(ty.Base)
	return e.IsKnown() && e.Data.Kind == ErrorBase
}

// PropagateError returns the error type if any generic argument of data is the error type.
// Otherwise data is interned as-is.
func PropagateError[F Family](t Interners[F], data BaseData[F]) Base {
	failed := false
	data.Generics.Range(func(_ int, g Ty[F]) bool {
		failed = IsError(t, g)
		return !failed
	})
	if failed {
		return t.InternBaseData(ErrorData[F]())
	}
	return t.InternBaseData(data)
}
