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
	"github.com/samber/lo"

	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/types"
)

// substitute maps a declared type into the inference family, replacing bound variables with the
// given generics.
func (c *checker) substitute(ty types.Ty[types.Declaration], generics types.Generics[types.Inference]) types.Ty[types.Inference] {
	decl := c.db.DeclarationTables()
	entry := decl.LookupBase(ty.Base)
	if entry.Kind == types.BoundVarEntry {
		if int(entry.Bound) >= generics.Len() {
			invariant.Violated(invariant.BoundVarRange, "bound variable %d out of range (%d generics)", entry.Bound, generics.Len())
		}
		return generics.At(int(entry.Bound))
	}
	switch entry.Data.Kind {
	case types.Named:
		args := lo.Map(entry.Data.Generics.Slice(), func(g types.Ty[types.Declaration], _ int) types.Ty[types.Inference] {
			return c.substitute(g, generics)
		})
		return types.NamedType[types.Inference](c.tables, entry.Data.Entity, types.NewGenerics(args...))
	case types.ErrorBase:
		return c.errorType()
	}
	invariant.Violated(invariant.FamilyMismatch, "unexpected %s base in a declared type", c.db.DeclarationTables().FamilyName())
	return c.errorType()
}

// substituteSignature maps a declared signature into the inference family.
func (c *checker) substituteSignature(sig types.Signature[types.Declaration], generics types.Generics[types.Inference]) types.Signature[types.Inference] {
	return types.Signature[types.Inference]{
		Inputs: lo.Map(sig.Inputs, func(t types.Ty[types.Declaration], _ int) types.Ty[types.Inference] {
			return c.substitute(t, generics)
		}),
		Output: c.substitute(sig.Output, generics),
	}
}
