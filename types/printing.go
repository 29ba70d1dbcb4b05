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
	"strconv"
	"strings"
	"sync"

	"github.com/wdamron/tyck/unify"
)

// Resolver maps an inference variable to the type it is bound to, if it is known.
type Resolver[F Family] func(v unify.InferVar) (Ty[F], bool)

var builderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

// TypeString returns a string representation of a type for diagnostics.
func TypeString[F Family](t Interners[F], entities EntityInterner, ty Ty[F]) string {
	return Printer[F]{Tables: t, Entities: entities}.String(ty)
}

// Printer renders types of one family.
type Printer[F Family] struct {
	Tables   Interners[F]
	Entities EntityInterner
	// Optional. Known inference variables are printed as the type they are bound to.
	Resolve Resolver[F]
	// Optional names for bound variables, by index.
	BoundNames []string
}

// String returns a string representation of ty.
func (p Printer[F]) String(ty Ty[F]) string {
	sb := builderPool.Get().(*strings.Builder)
	p.write(sb, ty, 0)
	s := sb.String()
	sb.Reset()
	builderPool.Put(sb)
	return s
}

const maxPrintDepth = 64

func (p Printer[F]) write(sb *strings.Builder, ty Ty[F], depth int) {
	if depth > maxPrintDepth {
		sb.WriteString("...")
		return
	}
	if kind, ok := p.Tables.LookupPerm(ty.Perm); ok && kind != Own {
		sb.WriteString(kind.String())
		sb.WriteByte(' ')
	}
	e := p.Tables.LookupBase(ty.Base)
	switch e.Kind {
	case InferVarEntry:
		if p.Resolve != nil {
			if bound, ok := p.Resolve(e.Var); ok && bound.Base != ty.Base {
				p.write(sb, Ty[F]{Perm: ty.Perm, Repr: ty.Repr, Base: bound.Base}, depth+1)
				return
			}
		}
		sb.WriteString(e.Var.String())
		return
	case BoundVarEntry:
		if int(e.Bound) < len(p.BoundNames) {
			sb.WriteString(p.BoundNames[e.Bound])
			return
		}
		sb.WriteString("^")
		sb.WriteString(strconv.Itoa(int(e.Bound)))
		return
	}

	switch e.Data.Kind {
	case ErrorBase:
		sb.WriteString("{error}")
	case PlaceholderBase:
		sb.WriteString("!")
		sb.WriteString(strconv.Itoa(int(e.Data.Placeholder.Universe)))
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(int(e.Data.Placeholder.Index)))
	case Named:
		sb.WriteString(EntityName(p.Entities, e.Data.Entity))
		if e.Data.Generics.Len() == 0 {
			return
		}
		sb.WriteByte('<')
		e.Data.Generics.Range(func(i int, g Ty[F]) bool {
			if i > 0 {
				sb.WriteString(", ")
			}
			p.write(sb, g, depth+1)
			return true
		})
		sb.WriteByte('>')
	}
}
