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

// Package unify implements a union-find table of inference variables.
//
// A variable starts unbound. It becomes bound either to a value or, by linking, to another
// variable. Binding is permanent: a bound variable is never unbound again.
package unify

import (
	"fmt"
	"strconv"

	"github.com/wdamron/tyck/internal/invariant"
)

// InferVar identifies one inference variable of a Table.
type InferVar uint32

func (v InferVar) String() string { return "?" + strconv.Itoa(int(v)) }

type entry[V comparable] struct {
	parent InferVar
	rank   uint32
	bound  bool
	value  V
}

// Table owns the inference variables of one checking pass.
//
// Values of type V are opaque to the table, except that the classifier reports whether a value
// denotes an inference variable. A table cannot be used concurrently.
type Table[V comparable] struct {
	entries  []entry[V]
	classify func(V) (InferVar, bool)
	notify   func(InferVar)
}

// Create a table. classify reports whether a value denotes an inference variable; notify (which may
// be nil) is called exactly once for each variable, when it stops being an unbound root.
func NewTable[V comparable](classify func(V) (InferVar, bool), notify func(InferVar)) *Table[V] {
	if classify == nil {
		classify = func(V) (InferVar, bool) { return 0, false }
	}
	return &Table[V]{classify: classify, notify: notify}
}

// Get the number of variables created in the table.
func (t *Table[V]) Len() int { return len(t.entries) }

// Create an unbound variable.
func (t *Table[V]) NewVar() InferVar {
	v := InferVar(len(t.entries))
	t.entries = append(t.entries, entry[V]{parent: v})
	return v
}

func (t *Table[V]) check(v InferVar) {
	if int(v) >= len(t.entries) {
		invariant.Violated(invariant.UnknownVar, "unknown inference variable %v", v)
	}
}

// Find returns the representative variable of v.
func (t *Table[V]) Find(v InferVar) InferVar {
	t.check(v)
	root := v
	for t.entries[root].parent != root {
		root = t.entries[root].parent
	}
	for v != root {
		next := t.entries[v].parent
		t.entries[v].parent = root
		v = next
	}
	return root
}

// IsKnown returns true if v (or the variable it is linked to) has been bound to a value.
func (t *Table[V]) IsKnown(v InferVar) bool {
	return t.entries[t.Find(v)].bound
}

// IsUnboundRoot returns true if v has neither been bound nor linked to another variable.
func (t *Table[V]) IsUnboundRoot(v InferVar) bool {
	t.check(v)
	e := t.entries[v]
	return e.parent == v && !e.bound
}

// Probe returns the value bound to v, if any.
func (t *Table[V]) Probe(v InferVar) (V, bool) {
	e := t.entries[t.Find(v)]
	return e.value, e.bound
}

// ShallowResolve follows variable bindings starting at value. If a concrete value is reached it
// is returned with ok == true. Otherwise the representative of the unbound variable is returned.
func (t *Table[V]) ShallowResolve(value V) (known V, unbound InferVar, ok bool) {
	for {
		v, isVar := t.classify(value)
		if !isVar {
			return value, 0, true
		}
		root := t.Find(v)
		e := t.entries[root]
		if !e.bound {
			var zero V
			return zero, root, false
		}
		value = e.value
	}
}

// Bind binds v to value.
//
// Binding an already-bound variable to an equal value does nothing; binding it to a different
// value returns a *ConflictError. Values denoting variables are resolved first: if value denotes
// an unbound variable, it is linked with v, or bound to the value of v when v is already bound.
func (t *Table[V]) Bind(v InferVar, value V) error {
	root := t.Find(v)
	e := &t.entries[root]
	resolved, other, known := t.ShallowResolve(value)
	if !known {
		switch {
		case other == root:
		case e.bound:
			t.entries[other].bound, t.entries[other].value = true, e.value
			t.fire(other)
		default:
			t.Link(root, other)
		}
		return nil
	}
	if e.bound {
		if e.value == resolved {
			return nil
		}
		return &ConflictError[V]{Var: root, Existing: e.value, Value: resolved}
	}
	e.bound, e.value = true, resolved
	t.fire(root)
	return nil
}

// Link unifies two unbound variables. The variable which stops being a representative is reported
// to the notifier. Link returns the new representative.
func (t *Table[V]) Link(a, b InferVar) InferVar {
	ra, rb := t.Find(a), t.Find(b)
	if ra == rb {
		return ra
	}
	if t.entries[ra].bound || t.entries[rb].bound {
		invariant.Violated(invariant.LinkBound, "cannot link %v and %v: variable already bound", a, b)
	}
	child, parent := ra, rb
	if t.entries[ra].rank > t.entries[rb].rank {
		child, parent = rb, ra
	}
	t.entries[child].parent = parent
	if t.entries[child].rank == t.entries[parent].rank {
		t.entries[parent].rank++
	}
	t.fire(child)
	return parent
}

func (t *Table[V]) fire(v InferVar) {
	if t.notify != nil {
		t.notify(v)
	}
}

// ConflictError is returned when a bound variable is bound again to a different value.
type ConflictError[V any] struct {
	Var      InferVar
	Existing V
	Value    V
}

func (e *ConflictError[V]) Error() string {
	return fmt.Sprintf("inference variable %v is bound to %v, cannot bind to %v", e.Var, e.Existing, e.Value)
}
