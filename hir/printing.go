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

package hir

import (
	"strings"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func args(sb *strings.Builder, list []Expr) {
	sb.WriteByte('(')
	for i, arg := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		exprString(sb, false, arg)
	}
	sb.WriteByte(')')
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case *Literal:
		switch et.Kind {
		case StringLit:
			sb.WriteByte('"')
			sb.WriteString(et.Syntax)
			sb.WriteByte('"')
		case UnitLit:
			sb.WriteString("()")
		default:
			sb.WriteString(et.Syntax)
		}

	case *Local:
		sb.WriteString(et.Name)

	case *Error:
		sb.WriteString("{error}")

	case *Call:
		sb.WriteString(et.Name)
		args(sb, et.Args)

	case *Field:
		exprString(sb, true, et.Owner)
		sb.WriteByte('.')
		sb.WriteString(et.Name)

	case *MethodCall:
		exprString(sb, true, et.Receiver)
		sb.WriteByte('.')
		sb.WriteString(et.Name)
		args(sb, et.Args)

	case *Let:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		sb.WriteString(et.Var)
		sb.WriteString(" = ")
		exprString(sb, false, et.Value)
		sb.WriteString(" in ")
		exprString(sb, false, et.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *Seq:
		sb.WriteByte('{')
		for i, sub := range et.Exprs {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteByte(' ')
			exprString(sb, false, sub)
		}
		sb.WriteString(" }")

	case *If:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("if ")
		exprString(sb, false, et.Cond)
		sb.WriteString(" then ")
		exprString(sb, false, et.Then)
		if et.Else != nil {
			sb.WriteString(" else ")
			exprString(sb, false, et.Else)
		}
		if simple {
			sb.WriteByte(')')
		}
	}
}
