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

// Package invariant reports violated internal invariants. A violation is a bug in the engine, never
// a property of the program being checked, and terminates the current checking pass.
package invariant

import "fmt"

// Code categorizes invariant violations.
type Code string

const (
	// A key was looked up in a table which did not produce it.
	ForeignKey Code = "FOREIGN_KEY"
	// An inference variable was used with a table which did not create it.
	UnknownVar Code = "UNKNOWN_VAR"
	// Two variables were linked although one of them was already bound.
	LinkBound Code = "LINK_BOUND"
	// A deferred operation was enqueued although none of its dependencies was unresolved.
	NothingToWaitOn Code = "NOTHING_TO_WAIT_ON"
	// A value is not representable in the family it was interned into.
	FamilyMismatch Code = "FAMILY_MISMATCH"
	// A bound variable index is outside of the generics being substituted.
	BoundVarRange Code = "BOUND_VAR_RANGE"
	// A variable was bound to a second, different value outside of equate.
	BindConflict Code = "BIND_CONFLICT"
)

// Error describes a violated invariant.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Violated panics with an *Error.
func Violated(code Code, format string, args ...interface{}) {
	panic(&Error{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Recover converts a panic carrying an *Error into a returned error. Other panics are re-raised.
//
//	defer invariant.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*Error); ok {
		*err = e
		return
	}
	panic(r)
}
