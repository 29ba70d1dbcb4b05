package hir

// WalkExpr calls f for e and each of its sub-expressions, in pre-order.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Literal, *Local, *Error:
		f(e)

	case *Let:
		f(e)
		WalkExpr(e.Value, f)
		WalkExpr(e.Body, f)

	case *Seq:
		f(e)
		for _, sub := range e.Exprs {
			WalkExpr(sub, f)
		}

	case *If:
		f(e)
		WalkExpr(e.Cond, f)
		WalkExpr(e.Then, f)
		if e.Else != nil {
			WalkExpr(e.Else, f)
		}

	case *Call:
		f(e)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case *Field:
		f(e)
		WalkExpr(e.Owner, f)

	case *MethodCall:
		f(e)
		WalkExpr(e.Receiver, f)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}
