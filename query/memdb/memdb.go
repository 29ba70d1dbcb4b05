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

// Package memdb is an in-memory query.Database. Declarations are added through a builder API or
// loaded from YAML; bodies are attached programmatically.
package memdb

import (
	"context"
	"fmt"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/hir"
	"github.com/wdamron/tyck/intern"
	"github.com/wdamron/tyck/query"
	"github.com/wdamron/tyck/types"
)

type memberKey struct {
	owner types.Entity
	kind  types.MemberKind
	name  string
}

type decl struct {
	generics types.GenericDeclarations
	sig      *types.Signature[types.Declaration]
	ty       *types.Ty[types.Declaration]
	body     *hir.Body
	poisoned bool
}

// DB is an in-memory database. It records every diagnostic reported to it.
type DB struct {
	diag.Collector

	entities *intern.Table[types.Entity, types.EntityData]
	tables   *types.DeclarationTables
	decls    map[types.Entity]*decl
	members  map[memberKey]types.Entity
	items    map[string]types.Entity
	queries  int
}

var (
	_ query.Database = (*DB)(nil)
	_ diag.Sink      = (*DB)(nil)
)

// New creates an empty database.
func New() *DB {
	return &DB{
		entities: intern.New[types.Entity, types.EntityData](),
		tables:   types.NewDeclarationTables(),
		decls:    make(map[types.Entity]*decl),
		members:  make(map[memberKey]types.Entity),
		items:    make(map[string]types.Entity),
	}
}

func (db *DB) Intern(data types.EntityData) types.Entity   { return db.entities.Intern(data) }
func (db *DB) Lookup(e types.Entity) types.EntityData      { return db.entities.Lookup(e) }
func (db *DB) DeclarationTables() *types.DeclarationTables { return db.tables }

// Queries returns the number of queries answered so far.
func (db *DB) Queries() int { return db.queries }

// Item returns the top-level item with the given name.
func (db *DB) Item(name string) (types.Entity, bool) {
	e, ok := db.items[name]
	return e, ok
}

// MustItem is like Item but panics if there is no such item.
func (db *DB) MustItem(name string) types.Entity {
	e, ok := db.items[name]
	if !ok {
		panic("memdb: no item named " + name)
	}
	return e
}

// Prim returns the declared type of a lang item.
func (db *DB) Prim(item types.LangItem) types.Ty[types.Declaration] {
	return types.PrimitiveType[types.Declaration](db.tables, db, item)
}

// Bound returns the declared type referring to the i-th generic parameter in scope.
func (db *DB) Bound(i int) types.Ty[types.Declaration] {
	return types.Ty[types.Declaration]{Perm: db.tables.OwnPerm(), Repr: db.tables.KnownRepr(types.Direct), Base: db.tables.InternBoundVar(types.BoundVar(i))}
}

// Named returns a declared named type.
func (db *DB) Named(e types.Entity, generics ...types.Ty[types.Declaration]) types.Ty[types.Declaration] {
	return types.NamedType[types.Declaration](db.tables, e, types.NewGenerics(generics...))
}

func (db *DB) addItem(kind types.ItemKind, name string, generics []string) types.Entity {
	if _, ok := db.items[name]; ok {
		panic("memdb: duplicate item " + name)
	}
	e := db.entities.Intern(types.ItemData(kind, name))
	db.items[name] = e
	db.decls[e] = &decl{generics: types.GenericDeclarations{Names: generics}}
	return e
}

// Struct declares a struct with the given generic parameters. Its type is the struct applied to
// its own parameters.
func (db *DB) Struct(name string, generics ...string) types.Entity {
	e := db.addItem(types.Struct, name, generics)
	params := make([]types.Ty[types.Declaration], len(generics))
	for i := range generics {
		params[i] = db.Bound(i)
	}
	ty := db.Named(e, params...)
	db.decls[e].ty = &ty
	return e
}

// Function declares a function item.
func (db *DB) Function(name string, generics []string, sig types.Signature[types.Declaration]) types.Entity {
	e := db.addItem(types.Function, name, generics)
	db.decls[e].sig = &sig
	return e
}

func (db *DB) addMember(owner types.Entity, kind types.MemberKind, name string, generics []string) types.Entity {
	key := memberKey{owner, kind, name}
	if _, ok := db.members[key]; ok {
		panic(fmt.Sprintf("memdb: duplicate %v %s.%s", kind, types.EntityName(db, owner), name))
	}
	e := db.entities.Intern(types.MemberData(owner, kind, name))
	db.members[key] = e
	parent := owner
	db.decls[e] = &decl{generics: types.GenericDeclarations{Parent: &parent, Names: generics}}
	return e
}

// Field declares a field of owner. ty may refer to the generics of owner.
func (db *DB) Field(owner types.Entity, name string, ty types.Ty[types.Declaration]) types.Entity {
	e := db.addMember(owner, types.Field, name, nil)
	db.decls[e].ty = &ty
	return e
}

// Method declares a method of owner. The first input of sig is the receiver. Bound variables in sig
// index the generics of owner followed by generics.
func (db *DB) Method(owner types.Entity, name string, generics []string, sig types.Signature[types.Declaration]) types.Entity {
	e := db.addMember(owner, types.Method, name, generics)
	db.decls[e].sig = &sig
	return e
}

// SetBody attaches a body to a function or method.
func (db *DB) SetBody(e types.Entity, body *hir.Body) { db.decl(e).body = body }

// Poison marks e as erroneous: every query about it returns query.ErrReported.
func (db *DB) Poison(e types.Entity) { db.decl(e).poisoned = true }

func (db *DB) decl(e types.Entity) *decl {
	d, ok := db.decls[e]
	if !ok {
		panic("memdb: undeclared entity " + types.EntityName(db, e))
	}
	return d
}

func (db *DB) find(ctx context.Context, e types.Entity) (*decl, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.queries++
	if db.entities.Lookup(e).Kind == types.ErrorEntity {
		return nil, query.ErrReported
	}
	d, ok := db.decls[e]
	if !ok {
		return nil, nil
	}
	if d.poisoned {
		return nil, query.ErrReported
	}
	return d, nil
}

func (db *DB) GenericDeclarations(ctx context.Context, e types.Entity) (types.GenericDeclarations, error) {
	d, err := db.find(ctx, e)
	if err != nil || d == nil {
		return types.GenericDeclarations{}, err
	}
	return d.generics, nil
}

func (db *DB) Signature(ctx context.Context, e types.Entity) (types.Signature[types.Declaration], error) {
	d, err := db.find(ctx, e)
	if err != nil {
		return types.Signature[types.Declaration]{}, err
	}
	if d == nil || d.sig == nil {
		return types.Signature[types.Declaration]{}, fmt.Errorf("memdb: %s has no signature", types.EntityName(db, e))
	}
	return *d.sig, nil
}

func (db *DB) Ty(ctx context.Context, e types.Entity) (types.Ty[types.Declaration], error) {
	d, err := db.find(ctx, e)
	if err != nil {
		return types.Ty[types.Declaration]{}, err
	}
	if data := db.entities.Lookup(e); data.Kind == types.LangItemEntity {
		return db.Prim(data.LangItem), nil
	}
	if d == nil || d.ty == nil {
		return types.Ty[types.Declaration]{}, fmt.Errorf("memdb: %s has no type", types.EntityName(db, e))
	}
	return *d.ty, nil
}

func (db *DB) Member(ctx context.Context, owner types.Entity, kind types.MemberKind, name string) (types.Entity, error) {
	if _, err := db.find(ctx, owner); err != nil {
		return 0, err
	}
	e, ok := db.members[memberKey{owner, kind, name}]
	if !ok {
		return 0, query.ErrNoMember
	}
	return e, nil
}

func (db *DB) Body(ctx context.Context, e types.Entity) (*hir.Body, error) {
	d, err := db.find(ctx, e)
	if err != nil {
		return nil, err
	}
	if d == nil || d.body == nil {
		return nil, fmt.Errorf("memdb: %s has no body", types.EntityName(db, e))
	}
	return d.body, nil
}
