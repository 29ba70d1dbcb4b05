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

// Package ops schedules deferred operations: continuations which cannot run until some inference
// variables are known.
//
// An operation is stored once and referenced from the wait-list of every variable it waits on.
// When a variable becomes bound its wait-list is drained. An operation runs, at most once, when
// none of its dependencies resolves to an unbound variable any more; until then it is re-registered
// on whichever variables are still unbound. Suspension is cooperative: nothing blocks a goroutine.
package ops

import (
	"io"
	"log/slog"

	"github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"

	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/internal/invariant"
	"github.com/wdamron/tyck/unify"
)

// Resolver reports the unbound variable a dependency resolves to. ok is false once the
// dependency is known.
type Resolver[V any] func(dep V) (unbound unify.InferVar, ok bool)

type op[V, C any] struct {
	cause   diag.Span
	deps    []V
	waiting *set.Set[unify.InferVar]
	run     func(C)
}

// Scheduler stores deferred operations over dependencies of type V. Continuations receive a value
// of type C (typically the checker driving the pass). A scheduler cannot be used concurrently.
type Scheduler[V, C any] struct {
	resolve  Resolver[V]
	ops      arena[*op[V, C]]
	blocked  map[unify.InferVar][]Index
	queue    []unify.InferVar
	draining bool
	executed int
	logger   *slog.Logger
}

// Create a scheduler which checks dependencies with resolve.
func New[V, C any](resolve Resolver[V]) *Scheduler[V, C] {
	return &Scheduler[V, C]{
		resolve: resolve,
		blocked: make(map[unify.InferVar][]Index),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger used for debug tracing.
func (s *Scheduler[V, C]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Len returns the number of operations which have not run yet.
func (s *Scheduler[V, C]) Len() int { return s.ops.Len() }

// Executed returns the number of operations which have run.
func (s *Scheduler[V, C]) Executed() int { return s.executed }

func (s *Scheduler[V, C]) unresolved(deps []V) []unify.InferVar {
	var out []unify.InferVar
	seen := set.New[unify.InferVar](len(deps))
	for _, dep := range deps {
		if v, ok := s.resolve(dep); ok && seen.Insert(v) {
			out = append(out, v)
		}
	}
	return out
}

// Enqueue stores run until every dependency in deps is known. cause locates the operation for
// diagnostics. At least one dependency must be unresolved: an operation which could run right away
// should be run inline instead.
func (s *Scheduler[V, C]) Enqueue(cause diag.Span, deps []V, run func(C)) Index {
	pending := s.unresolved(deps)
	if len(pending) == 0 {
		invariant.Violated(invariant.NothingToWaitOn, "enqueued an operation at %v with no unresolved inference variables", cause)
	}
	o := &op[V, C]{cause: cause, deps: deps, waiting: set.New[unify.InferVar](len(pending)), run: run}
	idx := s.ops.Insert(o)
	for _, v := range pending {
		s.register(idx, o, v)
	}
	s.logger.Debug("enqueue op", "cause", cause, "waiting", pending)
	return idx
}

func (s *Scheduler[V, C]) register(idx Index, o *op[V, C], v unify.InferVar) {
	if o.waiting.Insert(v) {
		s.blocked[v] = append(s.blocked[v], idx)
	}
}

// Cancel removes an operation without running it. Cancelling an operation which already ran (or
// was already cancelled) does nothing.
func (s *Scheduler[V, C]) Cancel(idx Index) bool {
	_, ok := s.ops.Remove(idx)
	return ok
}

// Trigger must be called when v stops being an unbound variable. Operations blocked on v whose
// dependencies are now all known are run with c.
//
// Triggers raised while operations are running are queued and processed in order by the outermost
// call, so each operation runs after every binding that unblocked it.
func (s *Scheduler[V, C]) Trigger(c C, v unify.InferVar) {
	s.queue = append(s.queue, v)
	if s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()

	for len(s.queue) > 0 {
		v := s.queue[0]
		s.queue = s.queue[1:]
		blocked, ok := s.blocked[v]
		if !ok {
			continue
		}
		delete(s.blocked, v)
		s.logger.Debug("trigger", "var", v, "blocked", len(blocked))
		for _, idx := range blocked {
			o, ok := s.ops.Get(idx)
			if !ok {
				// already ran through another dependency
				continue
			}
			o.waiting.Remove(v)
			if pending := s.unresolved(o.deps); len(pending) > 0 {
				for _, p := range pending {
					s.register(idx, o, p)
				}
				continue
			}
			s.ops.Remove(idx)
			s.executed++
			s.logger.Debug("run op", "cause", o.cause)
			o.run(c)
		}
	}
}

// Unresolved returns every variable which still has an operation waiting on it.
func (s *Scheduler[V, C]) Unresolved() *set.Set[unify.InferVar] {
	out := set.New[unify.InferVar](len(s.blocked))
	for v, blocked := range s.blocked {
		for _, idx := range blocked {
			if s.ops.Contains(idx) {
				out.Insert(v)
				break
			}
		}
	}
	return out
}

// Blocked describes an unresolved variable and the operation waiting on it.
type Blocked struct {
	Var   unify.InferVar
	Cause diag.Span
}

// Pending returns, ordered by variable, each unresolved variable with the cause of the first
// operation waiting on it.
func (s *Scheduler[V, C]) Pending() []Blocked {
	vars := s.Unresolved().Slice()
	slices.Sort(vars)
	out := make([]Blocked, 0, len(vars))
	for _, v := range vars {
		for _, idx := range s.blocked[v] {
			if o, ok := s.ops.Get(idx); ok {
				out = append(out, Blocked{Var: v, Cause: o.cause})
				break
			}
		}
	}
	return out
}
