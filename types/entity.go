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

import "github.com/wdamron/tyck/intern"

// Entity is an interned handle for an item, member or lang item.
type Entity uint32

// EntityKind distinguishes the variants of EntityData.
type EntityKind uint8

const (
	LangItemEntity EntityKind = iota
	ItemEntity
	MemberEntity
	// An entity which could not be resolved. Errors for it have already been reported.
	ErrorEntity
)

// LangItem is a built-in entity.
type LangItem uint8

const (
	Boolean LangItem = iota
	Int
	Uint
	String
	// The empty tuple.
	Unit
	False
	True
)

var langItemNames = [...]string{
	Boolean: "bool",
	Int:     "int",
	Uint:    "uint",
	String:  "String",
	Unit:    "()",
	False:   "false",
	True:    "true",
}

func (l LangItem) String() string {
	if int(l) < len(langItemNames) {
		return langItemNames[l]
	}
	return "<lang item>"
}

// ItemKind is the kind of a top-level item.
type ItemKind uint8

const (
	Struct ItemKind = iota
	Function
)

// MemberKind is the kind of a member of an item.
type MemberKind uint8

const (
	Field MemberKind = iota
	Method
)

func (k MemberKind) String() string {
	if k == Method {
		return "method"
	}
	return "field"
}

// EntityData is the data interned for an Entity.
type EntityData struct {
	Kind       EntityKind
	LangItem   LangItem
	ItemKind   ItemKind
	MemberKind MemberKind
	// Owning item of a member.
	Owner Entity
	// Name of an item or member, or the message of an error entity.
	Name string
}

// LangItemData describes a lang item.
func LangItemData(item LangItem) EntityData {
	return EntityData{Kind: LangItemEntity, LangItem: item}
}

// ItemData describes a top-level item.
func ItemData(kind ItemKind, name string) EntityData {
	return EntityData{Kind: ItemEntity, ItemKind: kind, Name: name}
}

// MemberData describes a member of owner.
func MemberData(owner Entity, kind MemberKind, name string) EntityData {
	return EntityData{Kind: MemberEntity, MemberKind: kind, Owner: owner, Name: name}
}

// ErrorEntityData describes an unresolvable entity.
func ErrorEntityData(message string) EntityData {
	return EntityData{Kind: ErrorEntity, Name: message}
}

// EntityInterner is the capability to intern entities.
type EntityInterner = intern.Interner[Entity, EntityData]

// EntityName returns a display name for an entity.
func EntityName(db EntityInterner, e Entity) string {
	d := db.Lookup(e)
	switch d.Kind {
	case LangItemEntity:
		return d.LangItem.String()
	case MemberEntity:
		return EntityName(db, d.Owner) + "." + d.Name
	case ErrorEntity:
		return "{error}"
	}
	return d.Name
}

// GenericDeclarations are the generic parameters declared by an entity. The parameters of the
// parent item (if any) come first; bound variable i refers to the i-th parameter of the combined list.
type GenericDeclarations struct {
	Parent *Entity
	Names  []string
}

// Signature is the signature of a function or method. The receiver of a method is its first input.
type Signature[F Family] struct {
	Inputs []Ty[F]
	Output Ty[F]
}
