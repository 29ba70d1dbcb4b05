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

// Package intern provides deduplicating tables which map data to small, stable integer keys.
package intern

import (
	"hash/maphash"

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/tyck/internal/invariant"
)

// Key is a small integer handle produced by a Table.
type Key interface{ ~uint32 }

// Interner is the capability to intern and look up one key/data pair.
type Interner[K Key, D any] interface {
	Intern(data D) K
	Lookup(key K) D
}

var _ Interner[uint32, string] = (*Table[uint32, string])(nil)

// Table assigns keys to data in insertion order. Interning equal data twice returns the same key.
//
// A table has a single logical owner; it must not be mutated concurrently. Use Snapshot to share
// a read-only view.
type Table[K Key, D any] struct {
	index *immutable.Map[D, K]
	data  []D
}

// Create a table for comparable data.
func New[K Key, D comparable]() *Table[K, D] {
	return NewWithHasher[K, D](ComparableHasher[D]())
}

// Create a table which compares and hashes data with h. Use this for data containing lists.
func NewWithHasher[K Key, D any](h immutable.Hasher[D]) *Table[K, D] {
	return &Table[K, D]{index: immutable.NewMap[D, K](h)}
}

// Get the number of interned entries.
func (t *Table[K, D]) Len() int { return len(t.data) }

// Intern returns the key for data, assigning the next key if data has not been seen before.
func (t *Table[K, D]) Intern(data D) K {
	if k, ok := t.index.Get(data); ok {
		return k
	}
	k := K(len(t.data))
	if int(k) != len(t.data) {
		invariant.Violated(invariant.ForeignKey, "intern table overflow at %d entries", len(t.data))
	}
	t.data = append(t.data, data)
	t.index = t.index.Set(data, k)
	return k
}

// Find returns the key for data without interning it.
func (t *Table[K, D]) Find(data D) (K, bool) { return t.index.Get(data) }

// Lookup returns the data interned for key. Looking up a key which was not produced by this table panics.
func (t *Table[K, D]) Lookup(key K) D {
	if int(key) >= len(t.data) {
		invariant.Violated(invariant.ForeignKey, "invalid intern key %d (table has %d entries)", uint32(key), len(t.data))
	}
	return t.data[key]
}

// Snapshot returns a read-only view of the entries interned so far. Later interning in t is not
// visible through the snapshot.
func (t *Table[K, D]) Snapshot() Snapshot[K, D] {
	return Snapshot[K, D]{index: t.index, data: t.data[:len(t.data):len(t.data)]}
}

// Snapshot is a read-only view of a Table. A snapshot may be read from any goroutine.
type Snapshot[K Key, D any] struct {
	index *immutable.Map[D, K]
	data  []D
}

// Get the number of entries visible in the snapshot.
func (s Snapshot[K, D]) Len() int { return len(s.data) }

// Find returns the key for data, if data was interned before the snapshot was taken.
func (s Snapshot[K, D]) Find(data D) (K, bool) {
	if s.index == nil {
		var zero K
		return zero, false
	}
	return s.index.Get(data)
}

// Lookup returns the data for key. Keys outside the snapshot panic.
func (s Snapshot[K, D]) Lookup(key K) D {
	if int(key) >= len(s.data) {
		invariant.Violated(invariant.ForeignKey, "invalid intern key %d (snapshot has %d entries)", uint32(key), len(s.data))
	}
	return s.data[key]
}

type comparableHasher[D comparable] struct{ seed maphash.Seed }

// ComparableHasher hashes any comparable value with hash/maphash.
func ComparableHasher[D comparable]() immutable.Hasher[D] {
	return comparableHasher[D]{seed: maphash.MakeSeed()}
}

func (h comparableHasher[D]) Hash(v D) uint32 {
	x := maphash.Comparable(h.seed, v)
	return uint32(x ^ x>>32)
}

func (h comparableHasher[D]) Equal(a, b D) bool { return a == b }
