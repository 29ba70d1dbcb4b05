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

// Package diag defines source spans and the diagnostics reported while checking.
package diag

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Span is a half-open byte range within a file.
type Span struct {
	File       string
	Start, End int
}

// IsZero returns true for the span of synthesized code.
func (s Span) IsZero() bool { return s == Span{} }

func (s Span) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d-%d", s.File, s.Start, s.End)
}

// Diagnostic is a user-visible error.
type Diagnostic struct {
	Message string
	Span    Span
}

func (d Diagnostic) String() string { return d.Span.String() + ": " + d.Message }

// Sink accepts diagnostics without knowing how they are stored or displayed.
type Sink interface {
	Report(message string, span Span)
}

// Collector is a Sink which records diagnostics in order.
type Collector struct {
	Diagnostics []Diagnostic
}

var _ Sink = (*Collector)(nil)

func (c *Collector) Report(message string, span Span) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Message: message, Span: span})
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int { return len(c.Diagnostics) }

// Sorted returns the recorded diagnostics ordered by file and position.
func (c *Collector) Sorted() []Diagnostic {
	out := slices.Clone(c.Diagnostics)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		switch {
		case a.Span.File != b.Span.File:
			if a.Span.File < b.Span.File {
				return -1
			}
			return 1
		case a.Span.Start != b.Span.Start:
			return a.Span.Start - b.Span.Start
		}
		return a.Span.End - b.Span.End
	})
	return out
}
