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
	"github.com/wdamron/tyck/types"
)

// UniverseBinder records what introduced a universe.
type UniverseBinder struct {
	// The root universe has no binder item.
	Root bool
	// The item whose generic parameters the universe's placeholders stand for.
	Item types.Entity
}

// FromItem returns the binder for the generics of an item.
func FromItem(e types.Entity) UniverseBinder { return UniverseBinder{Item: e} }

// Universes allocates universes in strictly increasing order, starting after the root universe.
type Universes struct {
	binders []UniverseBinder
}

// NewUniverses creates an allocator holding only the root universe.
func NewUniverses() *Universes { return &Universes{binders: []UniverseBinder{{Root: true}}} }

// Fresh creates a universe which did not exist before. It can see names from all previously
// created universes.
func (u *Universes) Fresh(binder UniverseBinder) types.Universe {
	u.binders = append(u.binders, binder)
	return types.Universe(len(u.binders) - 1)
}

// Binder returns the binder of a universe.
func (u *Universes) Binder(universe types.Universe) UniverseBinder { return u.binders[universe] }

// Len returns the number of universes, including the root universe.
func (u *Universes) Len() int { return len(u.binders) }

// Placeholders for the generics of entity, extending the placeholders of its parent. Each
// declaring item gets its own universe.
func (c *checker) placeholdersFor(entity types.Entity) types.Generics[types.Inference] {
	decls, ok := c.genericDeclarations(entity)
	var generics types.Generics[types.Inference]
	if decls.Parent != nil {
		generics = c.placeholdersFor(*decls.Parent)
	}
	if !ok || len(decls.Names) == 0 {
		return generics
	}
	universe := c.universes.Fresh(FromItem(entity))
	params := make([]types.Ty[types.Inference], len(decls.Names))
	for i := range decls.Names {
		params[i] = types.PlaceholderType[types.Inference](c.tables, types.Placeholder{Universe: universe, Index: types.BoundVar(i)})
	}
	return generics.Extend(params...)
}

// Fresh inference variables for the generics of entity, extending those of its parent.
func (c *checker) inferenceVariablesFor(entity types.Entity) types.Generics[types.Inference] {
	decls, ok := c.genericDeclarations(entity)
	var generics types.Generics[types.Inference]
	if decls.Parent != nil {
		generics = c.inferenceVariablesFor(*decls.Parent)
	}
	if !ok || len(decls.Names) == 0 {
		return generics
	}
	params := make([]types.Ty[types.Inference], len(decls.Names))
	for i := range decls.Names {
		params[i] = c.newVariable()
	}
	return generics.Extend(params...)
}

// Entities in error have no generics.
func (c *checker) genericDeclarations(entity types.Entity) (types.GenericDeclarations, bool) {
	decls, err := c.db.GenericDeclarations(c.ctx, entity)
	if err != nil {
		c.queryFailed(err)
		return types.GenericDeclarations{}, false
	}
	return decls, true
}
