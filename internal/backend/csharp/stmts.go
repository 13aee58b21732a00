package csharp

import (
	"recast/internal/emit"
	"recast/internal/model"
)

// stmt writes one statement on its own line.
func (p *Printer) stmt(ctx *emit.Context, s model.Node) error {
	p.comments(ctx, s)
	if err := ctx.Visit(s); err != nil {
		return err
	}
	p.nl(ctx)
	return nil
}

func (p *Printer) stmts(ctx *emit.Context, list []model.Stmt) error {
	for _, s := range list {
		if err := p.stmt(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// embedded writes the body of a compound statement: a block after the
// header, anything else indented on the next line.
func (p *Printer) embedded(ctx *emit.Context, s model.Stmt) error {
	if b, ok := s.(*model.Block); ok {
		return ctx.Visit(b)
	}
	if p.style.Compact {
		return ctx.Visit(s)
	}
	ctx.Buf.NewLine()
	ctx.Buf.Open()
	err := p.stmt(ctx, s)
	ctx.Buf.Close()
	return err
}

// continuation separates a closing brace from a following else, while,
// catch or finally.
func (p *Printer) continuation(ctx *emit.Context, after model.Stmt) {
	if _, ok := after.(*model.Block); ok && p.style.Brace == BraceKR {
		ctx.Buf.Space()
		return
	}
	p.nl(ctx)
}

// header writes `keyword (` ... `)` around fn.
func (p *Printer) header(ctx *emit.Context, keyword string, fn func() error) error {
	tok(ctx, keyword)
	p.sp(ctx)
	tok(ctx, "(")
	if err := fn(); err != nil {
		return err
	}
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitBlock(ctx *emit.Context, n *model.Block) error {
	p.open(ctx)
	if err := p.stmts(ctx, n.Statements); err != nil {
		return err
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitLocalDecl(ctx *emit.Context, n *model.LocalDecl) error {
	if n.Await {
		p.keyword(ctx, "await")
	}
	if n.Using {
		tok(ctx, "using")
		ctx.Buf.Space()
	}
	p.modifiers(ctx, n.Modifiers)
	if err := ctx.Visit(n.Type); err != nil {
		return err
	}
	ctx.Buf.Space()
	if err := list(p, ctx, n.Vars); err != nil {
		return err
	}
	switch ctx.Parent().(type) {
	case *model.For, *model.UsingStmt, *model.Fixed:
	default:
		tok(ctx, ";")
	}
	return nil
}

func (p *Printer) VisitExprStmt(ctx *emit.Context, n *model.ExprStmt) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitReturn(ctx *emit.Context, n *model.Return) error {
	return p.jump(ctx, "return", n.Value)
}

func (p *Printer) VisitThrow(ctx *emit.Context, n *model.Throw) error {
	return p.jump(ctx, "throw", n.Value)
}

func (p *Printer) jump(ctx *emit.Context, keyword string, value model.Expr) error {
	tok(ctx, keyword)
	if value != nil {
		p.sp(ctx)
		if err := ctx.Visit(value); err != nil {
			return err
		}
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitIf(ctx *emit.Context, n *model.If) error {
	if err := p.header(ctx, "if", func() error { return ctx.Visit(n.Cond) }); err != nil {
		return err
	}
	if err := p.embedded(ctx, n.Then); err != nil {
		return err
	}
	if n.Else == nil {
		return nil
	}
	p.continuation(ctx, n.Then)
	tok(ctx, "else")
	if elif, ok := n.Else.(*model.If); ok {
		ctx.Buf.Space()
		return ctx.Visit(elif)
	}
	return p.embedded(ctx, n.Else)
}

func (p *Printer) VisitWhile(ctx *emit.Context, n *model.While) error {
	if err := p.header(ctx, "while", func() error { return ctx.Visit(n.Cond) }); err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) VisitDo(ctx *emit.Context, n *model.Do) error {
	tok(ctx, "do")
	if err := p.embedded(ctx, n.Body); err != nil {
		return err
	}
	p.continuation(ctx, n.Body)
	if err := p.header(ctx, "while", func() error { return ctx.Visit(n.Cond) }); err != nil {
		return err
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitFor(ctx *emit.Context, n *model.For) error {
	err := p.header(ctx, "for", func() error {
		if n.Decl != nil {
			if err := ctx.Visit(n.Decl); err != nil {
				return err
			}
		} else if err := p.exprs(ctx, n.Init); err != nil {
			return err
		}
		tok(ctx, ";")
		if n.Cond != nil {
			p.sp(ctx)
			if err := ctx.Visit(n.Cond); err != nil {
				return err
			}
		}
		tok(ctx, ";")
		if len(n.Update) > 0 {
			p.sp(ctx)
		}
		return p.exprs(ctx, n.Update)
	})
	if err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) exprs(ctx *emit.Context, xs []model.Expr) error {
	return list(p, ctx, xs)
}

func (p *Printer) VisitForeach(ctx *emit.Context, n *model.Foreach) error {
	if n.Await {
		p.keyword(ctx, "await")
	}
	err := p.header(ctx, "foreach", func() error {
		if n.Var != nil {
			if err := ctx.Visit(n.Type); err != nil {
				return err
			}
			ctx.Buf.Space()
			if err := ctx.Visit(n.Var); err != nil {
				return err
			}
		} else if err := ctx.Visit(n.Target); err != nil {
			return err
		}
		ctx.Buf.Space()
		tok(ctx, "in")
		ctx.Buf.Space()
		return ctx.Visit(n.Collection)
	})
	if err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) VisitSwitch(ctx *emit.Context, n *model.Switch) error {
	if err := p.header(ctx, "switch", func() error { return ctx.Visit(n.Value) }); err != nil {
		return err
	}
	p.open(ctx)
	for _, s := range n.Sections {
		p.comments(ctx, s)
		if err := ctx.Visit(s); err != nil {
			return err
		}
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitSwitchSection(ctx *emit.Context, n *model.SwitchSection) error {
	for _, l := range n.Labels {
		if err := p.label(ctx, l); err != nil {
			return err
		}
		p.nl(ctx)
	}
	ctx.Buf.Open()
	err := p.stmts(ctx, n.Statements)
	ctx.Buf.Close()
	return err
}

func (p *Printer) label(ctx *emit.Context, l model.SwitchLabel) error {
	if l.Default {
		tok(ctx, "default:")
		return nil
	}
	tok(ctx, "case")
	ctx.Buf.Space()
	var err error
	if l.Pattern != nil {
		err = ctx.Visit(l.Pattern)
	} else {
		err = ctx.Visit(l.Value)
	}
	if err != nil {
		return err
	}
	if err := p.when(ctx, l.When); err != nil {
		return err
	}
	tok(ctx, ":")
	return nil
}

func (p *Printer) when(ctx *emit.Context, cond model.Expr) error {
	if cond == nil {
		return nil
	}
	ctx.Buf.Space()
	tok(ctx, "when")
	ctx.Buf.Space()
	return ctx.Visit(cond)
}

func (p *Printer) VisitBreak(ctx *emit.Context, n *model.Break) error {
	tok(ctx, "break;")
	return nil
}

func (p *Printer) VisitContinue(ctx *emit.Context, n *model.Continue) error {
	tok(ctx, "continue;")
	return nil
}

func (p *Printer) VisitTry(ctx *emit.Context, n *model.Try) error {
	tok(ctx, "try")
	if err := ctx.Visit(n.Body); err != nil {
		return err
	}
	for _, c := range n.Catches {
		p.continuation(ctx, n.Body)
		if err := ctx.Visit(c); err != nil {
			return err
		}
	}
	if n.Finally != nil {
		p.continuation(ctx, n.Body)
		tok(ctx, "finally")
		return ctx.Visit(n.Finally)
	}
	return nil
}

func (p *Printer) VisitCatchClause(ctx *emit.Context, n *model.CatchClause) error {
	tok(ctx, "catch")
	if n.Type != nil {
		p.sp(ctx)
		tok(ctx, "(")
		p.typeBody(ctx, n.Type)
		if n.Name != "" {
			ctx.Buf.Space()
			tok(ctx, p.local(ctx, catchLocal(ctx, n), n.Name))
		}
		tok(ctx, ")")
	}
	if n.Filter != nil {
		ctx.Buf.Space()
		if err := p.header(ctx, "when", func() error { return ctx.Visit(n.Filter) }); err != nil {
			return err
		}
	}
	return ctx.Visit(n.Body)
}

func (p *Printer) VisitUsingStmt(ctx *emit.Context, n *model.UsingStmt) error {
	if n.Await {
		p.keyword(ctx, "await")
	}
	err := p.header(ctx, "using", func() error {
		if n.Decl != nil {
			return ctx.Visit(n.Decl)
		}
		return ctx.Visit(n.Value)
	})
	if err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) VisitLock(ctx *emit.Context, n *model.Lock) error {
	if err := p.header(ctx, "lock", func() error { return ctx.Visit(n.Value) }); err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) VisitYield(ctx *emit.Context, n *model.Yield) error {
	tok(ctx, "yield")
	ctx.Buf.Space()
	if n.Break {
		tok(ctx, "break;")
		return nil
	}
	return p.jump(ctx, "return", n.Value)
}

func (p *Printer) VisitGoto(ctx *emit.Context, n *model.Goto) error {
	tok(ctx, "goto")
	ctx.Buf.Space()
	switch {
	case n.Default:
		tok(ctx, "default")
	case n.Case != nil:
		tok(ctx, "case")
		ctx.Buf.Space()
		if err := ctx.Visit(n.Case); err != nil {
			return err
		}
	default:
		tok(ctx, n.Label)
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitLabeled(ctx *emit.Context, n *model.Labeled) error {
	tok(ctx, n.Label)
	tok(ctx, ":")
	p.nl(ctx)
	return ctx.Visit(n.Body)
}

func (p *Printer) VisitEmpty(ctx *emit.Context, n *model.Empty) error {
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitCheckedStmt(ctx *emit.Context, n *model.CheckedStmt) error {
	if n.Unchecked {
		tok(ctx, "unchecked")
	} else {
		tok(ctx, "checked")
	}
	return ctx.Visit(n.Body)
}

func (p *Printer) VisitUnsafeStmt(ctx *emit.Context, n *model.UnsafeStmt) error {
	tok(ctx, "unsafe")
	return ctx.Visit(n.Body)
}

func (p *Printer) VisitFixed(ctx *emit.Context, n *model.Fixed) error {
	if err := p.header(ctx, "fixed", func() error { return ctx.Visit(n.Decl) }); err != nil {
		return err
	}
	return p.embedded(ctx, n.Body)
}

func (p *Printer) VisitLocalFunction(ctx *emit.Context, n *model.LocalFunction) error {
	if err := p.inlineAttributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if err := ctx.Visit(n.Return); err != nil {
		return err
	}
	ctx.Buf.Space()
	tok(ctx, n.Name)
	if err := p.typeParams(ctx, n.TypeParams); err != nil {
		return err
	}
	if err := p.params(ctx, "(", n.Params, ")"); err != nil {
		return err
	}
	p.constraints(ctx, n.Constraints)
	return p.body(ctx, n.Body, n.Expression)
}
