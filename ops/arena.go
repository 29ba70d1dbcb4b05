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

package ops

// Index addresses a slot of an arena. An index goes stale when its entry is removed; stale indices
// never observe a later entry stored in the same slot.
type Index struct {
	slot uint32
	gen  uint32
}

type slot[T any] struct {
	gen      uint32
	occupied bool
	value    T
}

// arena stores values in versioned slots.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

func (a *arena[T]) Len() int { return a.live }

func (a *arena[T]) Insert(v T) Index {
	a.live++
	if n := len(a.free); n > 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[i]
		s.occupied, s.value = true, v
		return Index{slot: i, gen: s.gen}
	}
	a.slots = append(a.slots, slot[T]{occupied: true, value: v})
	return Index{slot: uint32(len(a.slots) - 1)}
}

func (a *arena[T]) Get(i Index) (T, bool) {
	if int(i.slot) >= len(a.slots) {
		var zero T
		return zero, false
	}
	s := a.slots[i.slot]
	if !s.occupied || s.gen != i.gen {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (a *arena[T]) Contains(i Index) bool {
	_, ok := a.Get(i)
	return ok
}

// Remove takes the value out of a slot. Removing a stale index is a no-op which returns false.
func (a *arena[T]) Remove(i Index) (T, bool) {
	v, ok := a.Get(i)
	if !ok {
		return v, false
	}
	s := &a.slots[i.slot]
	var zero T
	s.occupied, s.value = false, zero
	s.gen++
	a.free = append(a.free, i.slot)
	a.live--
	return v, true
}
