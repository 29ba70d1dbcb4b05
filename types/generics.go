package types

import (
	"github.com/benbjohnson/immutable"
)

// Generics is an immutable list of generic arguments. Extending a list does not modify it, so a
// member's generics may share structure with the generics of its owning item.
type Generics[F Family] struct {
	l *immutable.List[Ty[F]]
}

// Create generics from the given types.
func NewGenerics[F Family](tys ...Ty[F]) Generics[F] {
	return Generics[F]{}.Extend(tys...)
}

// Get the number of generic arguments.
func (g Generics[F]) Len() int {
	if g.l == nil {
		return 0
	}
	return g.l.Len()
}

// Get the generic argument at index i.
func (g Generics[F]) At(i int) Ty[F] { return g.l.Get(i) }

// Extend returns generics with tys appended.
func (g Generics[F]) Extend(tys ...Ty[F]) Generics[F] {
	if len(tys) == 0 {
		return g
	}
	l := g.l
	if l == nil {
		l = immutable.NewList[Ty[F]]()
	}
	for _, t := range tys {
		l = l.Append(t)
	}
	return Generics[F]{l}
}

// Iterate over the generic arguments. If f returns false, iteration will be stopped.
func (g Generics[F]) Range(f func(int, Ty[F]) bool) {
	if g.l == nil {
		return
	}
	iter := g.l.Iterator()
	for !iter.Done() {
		i, t := iter.Next()
		if !f(i, t) {
			return
		}
	}
}

// Slice copies the generic arguments into a slice.
func (g Generics[F]) Slice() []Ty[F] {
	out := make([]Ty[F], 0, g.Len())
	g.Range(func(_ int, t Ty[F]) bool {
		out = append(out, t)
		return true
	})
	return out
}

// Equal compares two lists element-wise.
func (g Generics[F]) Equal(o Generics[F]) bool {
	n := g.Len()
	if n != o.Len() {
		return false
	}
	if n == 0 || g.l == o.l {
		return true
	}
	for i := 0; i < n; i++ {
		if g.At(i) != o.At(i) {
			return false
		}
	}
	return true
}
