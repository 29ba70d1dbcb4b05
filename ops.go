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

package tyck

import (
	"github.com/wdamron/tyck/diag"
	"github.com/wdamron/tyck/types"
)

type baseOp func(c *checker, data types.BaseData[types.Inference]) types.Ty[types.Inference]

// withBaseData runs op with the data of base once it is known, and returns a type standing for
// the result. If base is already known, op runs immediately and its result is returned directly.
// Otherwise a fresh variable is returned and equated with the result when op eventually runs.
func (c *checker) withBaseData(at diag.Span, base types.Base, op baseOp) types.Ty[types.Inference] {
	if known, _, ok := c.vars.ShallowResolve(base); ok {
		return op(c, c.tables.LookupBase(known).Data)
	}
	result := c.newVariable()
	c.withBaseDataEquate(at, base, op, func(c *checker, value types.Ty[types.Inference]) {
		c.equate(at, result, value)
	})
	return result
}

// withBaseDataEquate checks again whether base is known. If so, op runs and its result is passed
// to equate; otherwise the check is deferred until base is bound.
func (c *checker) withBaseDataEquate(at diag.Span, base types.Base, op baseOp, equate func(*checker, types.Ty[types.Inference])) {
	if c.err != nil {
		return
	}
	if known, _, ok := c.vars.ShallowResolve(base); ok {
		equate(c, op(c, c.tables.LookupBase(known).Data))
		return
	}
	c.sched.Enqueue(at, []types.Base{base}, func(c *checker) {
		c.withBaseDataEquate(at, base, op, equate)
	})
}
