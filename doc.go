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

// Package tyck provides incremental type checking for function bodies.
//
// Declarations are read through a query.Database. Each body is checked in one pass: generic
// parameters of the checked entity become placeholders in fresh universes, generics of callees
// become inference variables, and operations which need a type that is not yet known (such as a
// field access on a receiver of unknown type) are deferred until unification binds it.
//
// Type families:
//
//   - Declaration: types as written in signatures; bases may be bound variables
//   - Inference: types while a body is being checked; bases may be inference variables
//   - FullInferred: checked types, with permissions
//   - BaseInferred: checked base types only
//
// Errors in the checked program are reported as diagnostics and never abort a pass. A pass is
// abandoned only when the context is cancelled, the database fails, or an internal invariant is
// violated.
package tyck
