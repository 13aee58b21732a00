package js

import (
	"recast/internal/emit"
	"recast/internal/model"
)

func (m *Map) stmt(ctx *emit.Context, s model.Stmt) error {
	m.comments(ctx, s)
	if err := ctx.Visit(s); err != nil {
		return err
	}
	nl(ctx)
	return nil
}

// stmts renders a statement list. A using declaration guards the rest of
// the list with try/finally.
func (m *Map) stmts(ctx *emit.Context, list []model.Stmt) error {
	for i, s := range list {
		if d, ok := s.(*model.LocalDecl); ok && d.Using {
			return m.usingDecl(ctx, d, list[i+1:])
		}
		if err := m.stmt(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) usingDecl(ctx *emit.Context, d *model.LocalDecl, rest []model.Stmt) error {
	if d.Await {
		return ctx.Unsupported(d, "await using")
	}
	m.comments(ctx, d)
	if err := m.localDecl(ctx, d, "const "); err != nil {
		return err
	}
	w(ctx, ";")
	nl(ctx)
	w(ctx, "try")
	begin(ctx)
	if err := m.stmts(ctx, rest); err != nil {
		return err
	}
	end(ctx)
	m.dispose(ctx, d.Vars)
	nl(ctx)
	return nil
}

// dispose writes the finally clause releasing vars in reverse order.
func (m *Map) dispose(ctx *emit.Context, vars []*model.Variable) {
	w(ctx, " finally")
	begin(ctx)
	for i := len(vars) - 1; i >= 0; i-- {
		w(ctx, ident(vars[i].Name)+"?.Dispose();")
		nl(ctx)
	}
	end(ctx)
}

func (m *Map) VisitBlock(ctx *emit.Context, n *model.Block) error {
	if len(n.Statements) == 0 {
		w(ctx, "{}")
		return nil
	}
	w(ctx, "{")
	nl(ctx)
	ctx.Buf.Open()
	if err := m.stmts(ctx, n.Statements); err != nil {
		return err
	}
	end(ctx)
	return nil
}

// embedded renders the body of a compound statement, always braced.
func (m *Map) embedded(ctx *emit.Context, s model.Stmt) error {
	if b, ok := s.(*model.Block); ok {
		w(ctx, " ")
		return ctx.Visit(b)
	}
	begin(ctx)
	if err := m.stmts(ctx, []model.Stmt{s}); err != nil {
		return err
	}
	end(ctx)
	return nil
}

func (m *Map) localDecl(ctx *emit.Context, n *model.LocalDecl, keyword string) error {
	w(ctx, keyword)
	return list(ctx, n.Vars)
}

func (m *Map) VisitLocalDecl(ctx *emit.Context, n *model.LocalDecl) error {
	if n.Type != nil && (n.Type.Ref || n.Type.Form == model.TypePointer) {
		return ctx.Unsupported(n, "ref or pointer local")
	}
	keyword := "let "
	if n.Modifiers.Has(model.FlagConst) {
		keyword = "const "
	}
	if err := m.localDecl(ctx, n, keyword); err != nil {
		return err
	}
	if p := ctx.Parent(); p == nil || p.Kind() != model.KindFor {
		w(ctx, ";")
	}
	return nil
}

func (m *Map) VisitExprStmt(ctx *emit.Context, n *model.ExprStmt) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	w(ctx, ";")
	return nil
}

func (m *Map) VisitReturn(ctx *emit.Context, n *model.Return) error {
	if n.Value == nil {
		w(ctx, "return;")
		return nil
	}
	w(ctx, "return ")
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	w(ctx, ";")
	return nil
}

func (m *Map) condition(ctx *emit.Context, keyword string, cond model.Expr) error {
	w(ctx, keyword+" (")
	if err := ctx.Visit(cond); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func (m *Map) VisitIf(ctx *emit.Context, n *model.If) error {
	if err := m.condition(ctx, "if", n.Cond); err != nil {
		return err
	}
	if err := m.embedded(ctx, n.Then); err != nil {
		return err
	}
	switch e := n.Else.(type) {
	case nil:
		return nil
	case *model.If:
		w(ctx, " else ")
		return ctx.Visit(e)
	default:
		w(ctx, " else")
		return m.embedded(ctx, e)
	}
}

func (m *Map) VisitWhile(ctx *emit.Context, n *model.While) error {
	if err := m.condition(ctx, "while", n.Cond); err != nil {
		return err
	}
	return m.embedded(ctx, n.Body)
}

func (m *Map) VisitDo(ctx *emit.Context, n *model.Do) error {
	w(ctx, "do")
	if err := m.embedded(ctx, n.Body); err != nil {
		return err
	}
	w(ctx, " ")
	if err := m.condition(ctx, "while", n.Cond); err != nil {
		return err
	}
	w(ctx, ";")
	return nil
}

func (m *Map) VisitFor(ctx *emit.Context, n *model.For) error {
	w(ctx, "for (")
	if n.Decl != nil {
		if err := ctx.Visit(n.Decl); err != nil {
			return err
		}
	} else if err := m.exprs(ctx, n.Init); err != nil {
		return err
	}
	w(ctx, ";")
	if n.Cond != nil {
		w(ctx, " ")
		if err := ctx.Visit(n.Cond); err != nil {
			return err
		}
	}
	w(ctx, ";")
	if len(n.Update) > 0 {
		w(ctx, " ")
		if err := m.exprs(ctx, n.Update); err != nil {
			return err
		}
	}
	w(ctx, ")")
	return m.embedded(ctx, n.Body)
}

func (m *Map) exprs(ctx *emit.Context, es []model.Expr) error {
	return emit.VisitAll(ctx, es, func() { w(ctx, ", ") })
}

func (m *Map) VisitForeach(ctx *emit.Context, n *model.Foreach) error {
	w(ctx, "for ")
	if n.Await {
		w(ctx, "await ")
	}
	w(ctx, "(const ")
	switch {
	case n.Var != nil:
		w(ctx, ident(n.Var.Name))
	case n.Target != nil:
		if err := m.destructure(ctx, n.Target); err != nil {
			return err
		}
	}
	w(ctx, " of ")
	if err := ctx.Visit(n.Collection); err != nil {
		return err
	}
	w(ctx, ")")
	return m.embedded(ctx, n.Body)
}

// destructure renders a deconstruction target as an array pattern.
func (m *Map) destructure(ctx *emit.Context, e model.Expr) error {
	switch e := e.(type) {
	case *model.DeclarationExpr:
		w(ctx, "[")
		for i, v := range e.Vars {
			if i > 0 {
				w(ctx, ", ")
			}
			if v.Name != "_" {
				w(ctx, ident(v.Name))
			}
		}
		w(ctx, "]")
		return nil
	case *model.Tuple:
		w(ctx, "[")
		for i, a := range e.Elements {
			if i > 0 {
				w(ctx, ", ")
			}
			if err := m.destructure(ctx, a.Value); err != nil {
				return err
			}
		}
		w(ctx, "]")
		return nil
	case *model.Identifier:
		if e.Name != "_" {
			w(ctx, ident(e.Name))
		}
		return nil
	}
	return ctx.Unsupported(e, "deconstruction target")
}

func (m *Map) VisitSwitch(ctx *emit.Context, n *model.Switch) error {
	if err := m.condition(ctx, "switch", n.Value); err != nil {
		return err
	}
	begin(ctx)
	for _, s := range n.Sections {
		if err := ctx.Visit(s); err != nil {
			return err
		}
	}
	end(ctx)
	return nil
}

func (m *Map) VisitSwitchSection(ctx *emit.Context, n *model.SwitchSection) error {
	for _, l := range n.Labels {
		value := l.Value
		if l.Pattern != nil {
			if l.Pattern.Form != model.PatConstant {
				return ctx.Unsupported(l.Pattern, "pattern case label")
			}
			value = l.Pattern.Value
		}
		switch {
		case l.When != nil:
			return ctx.Unsupported(l.When, "case guard")
		case l.Default:
			w(ctx, "default:")
		default:
			w(ctx, "case ")
			if err := ctx.Visit(value); err != nil {
				return err
			}
			w(ctx, ":")
		}
		nl(ctx)
	}
	ctx.Buf.Open()
	if err := m.stmts(ctx, n.Statements); err != nil {
		return err
	}
	ctx.Buf.Close()
	return nil
}

func (m *Map) VisitBreak(ctx *emit.Context, n *model.Break) error {
	w(ctx, "break;")
	return nil
}

func (m *Map) VisitContinue(ctx *emit.Context, n *model.Continue) error {
	w(ctx, "continue;")
	return nil
}

// caught is the binding of an exception whose catch clause names none.
const caught = "$e"

func catchName(c *model.CatchClause) string {
	if c.Name == "" {
		return caught
	}
	return ident(c.Name)
}

func (m *Map) VisitThrow(ctx *emit.Context, n *model.Throw) error {
	w(ctx, "throw ")
	if n.Value == nil {
		c, ok := ctx.Enclosing(model.KindCatchClause).(*model.CatchClause)
		if !ok {
			return ctx.Unsupported(n, "rethrow outside a catch clause")
		}
		w(ctx, catchName(c)+";")
		return nil
	}
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	w(ctx, ";")
	return nil
}

// catchAll reports clauses that catch every exception.
func catchAll(ctx *emit.Context, c *model.CatchClause) bool {
	if c.Type == nil {
		return true
	}
	if fqn := typeFullName(ctx, c.Type); fqn != "" {
		return fqn == exceptionType
	}
	return c.Type.Dotted() == "Exception" || c.Type.Dotted() == exceptionType
}

// VisitTry renders typed catch clauses as one JavaScript catch testing the
// exception with instanceof.
func (m *Map) VisitTry(ctx *emit.Context, n *model.Try) error {
	w(ctx, "try ")
	if err := ctx.Visit(n.Body); err != nil {
		return err
	}
	for _, c := range n.Catches {
		if c.Filter != nil {
			return ctx.Unsupported(c.Filter, "exception filter")
		}
	}
	switch {
	case len(n.Catches) == 1 && catchAll(ctx, n.Catches[0]):
		if err := ctx.Visit(n.Catches[0]); err != nil {
			return err
		}
	case len(n.Catches) > 0:
		if err := m.typedCatches(ctx, n.Catches); err != nil {
			return err
		}
	}
	if n.Finally != nil {
		w(ctx, " finally ")
		return ctx.Visit(n.Finally)
	}
	return nil
}

// VisitCatchClause renders a lone catch-all clause as a JavaScript catch,
// and otherwise the branch body of the instanceof chain.
func (m *Map) VisitCatchClause(ctx *emit.Context, n *model.CatchClause) error {
	if t, ok := ctx.Parent().(*model.Try); ok && len(t.Catches) == 1 && catchAll(ctx, n) {
		w(ctx, " catch ("+catchName(n)+") ")
		return ctx.Visit(n.Body)
	}
	if n.Name != "" {
		w(ctx, "const "+catchName(n)+" = "+caught+";")
		nl(ctx)
	}
	return m.stmts(ctx, n.Body.Statements)
}

func (m *Map) typedCatches(ctx *emit.Context, catches []*model.CatchClause) error {
	w(ctx, " catch ("+caught+")")
	begin(ctx)
	all := false
	for i, c := range catches {
		if i > 0 {
			w(ctx, " else ")
		}
		if catchAll(ctx, c) {
			all = true
			w(ctx, "{")
		} else {
			name, err := typeRefName(ctx, c.Type)
			if err != nil {
				return err
			}
			w(ctx, "if ("+caught+" instanceof "+name+") {")
		}
		nl(ctx)
		ctx.Buf.Open()
		if err := ctx.Visit(c); err != nil {
			return err
		}
		end(ctx)
		if all {
			break
		}
	}
	if !all {
		w(ctx, " else {")
		nl(ctx)
		ctx.Buf.Open()
		w(ctx, "throw "+caught+";")
		end(ctx)
	}
	end(ctx)
	return nil
}

// VisitUsingStmt renders a using statement as a block holding the
// resource and a try/finally that disposes it.
func (m *Map) VisitUsingStmt(ctx *emit.Context, n *model.UsingStmt) error {
	if n.Await {
		return ctx.Unsupported(n, "await using")
	}
	w(ctx, "{")
	nl(ctx)
	ctx.Buf.Open()
	vars := []*model.Variable{{Name: "$resource"}}
	if n.Decl != nil {
		vars = n.Decl.Vars
		if err := m.localDecl(ctx, n.Decl, "const "); err != nil {
			return err
		}
	} else {
		w(ctx, "const $resource = ")
		if err := ctx.Visit(n.Value); err != nil {
			return err
		}
	}
	w(ctx, ";")
	nl(ctx)
	w(ctx, "try")
	if err := m.embedded(ctx, n.Body); err != nil {
		return err
	}
	m.dispose(ctx, vars)
	end(ctx)
	return nil
}

// VisitLock renders the guarded body; JavaScript runs it on one thread.
func (m *Map) VisitLock(ctx *emit.Context, n *model.Lock) error {
	if b, ok := n.Body.(*model.Block); ok {
		return ctx.Visit(b)
	}
	return ctx.Visit(n.Body)
}

func (m *Map) VisitYield(ctx *emit.Context, n *model.Yield) error {
	if n.Break {
		w(ctx, "return;")
		return nil
	}
	w(ctx, "yield ")
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	w(ctx, ";")
	return nil
}

func (m *Map) VisitGoto(ctx *emit.Context, n *model.Goto) error {
	return ctx.Unsupported(n, "goto")
}

func (m *Map) VisitLabeled(ctx *emit.Context, n *model.Labeled) error {
	w(ctx, ident(n.Label)+":")
	nl(ctx)
	return ctx.Visit(n.Body)
}

func (m *Map) VisitEmpty(ctx *emit.Context, n *model.Empty) error {
	w(ctx, ";")
	return nil
}

func (m *Map) VisitCheckedStmt(ctx *emit.Context, n *model.CheckedStmt) error {
	return ctx.Visit(n.Body)
}

func (m *Map) VisitUnsafeStmt(ctx *emit.Context, n *model.UnsafeStmt) error {
	return ctx.Unsupported(n, "unsafe block")
}

func (m *Map) VisitFixed(ctx *emit.Context, n *model.Fixed) error {
	return ctx.Unsupported(n, "fixed statement")
}

// VisitLocalFunction renders a hoisted function declaration. Calls pass
// the enclosing this explicitly.
func (m *Map) VisitLocalFunction(ctx *emit.Context, n *model.LocalFunction) error {
	if n.Modifiers.Has(model.FlagAsync) {
		w(ctx, "async ")
	}
	w(ctx, "function")
	if generator(n.Body) {
		w(ctx, "*")
	}
	w(ctx, " "+ident(n.Name)+"(")
	if err := list(ctx, n.Params); err != nil {
		return err
	}
	w(ctx, ")")
	return m.funcBody(ctx, n.Body, n.Expression, returnsValue(n.Return))
}
