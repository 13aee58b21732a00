package csharp

import (
	"strings"

	"recast/internal/emit"
	"recast/internal/model"
)

func (p *Printer) VisitIdentifier(ctx *emit.Context, n *model.Identifier) error {
	tok(ctx, p.reference(ctx, n.Target, n.Name))
	p.typeArgs(ctx, n.TypeArgs)
	return nil
}

func (p *Printer) VisitLiteral(ctx *emit.Context, n *model.Literal) error {
	tok(ctx, n.Raw)
	return nil
}

func (p *Printer) VisitInterpolatedString(ctx *emit.Context, n *model.InterpolatedString) error {
	if n.Verbatim {
		tok(ctx, `$@"`)
	} else {
		tok(ctx, `$"`)
	}
	for _, part := range n.Parts {
		if part.Hole == nil {
			ctx.Buf.AppendRaw(part.Text)
			continue
		}
		ctx.Buf.AppendRaw("{")
		if err := ctx.Visit(part.Hole); err != nil {
			return err
		}
		if part.Alignment != nil {
			tok(ctx, ",")
			if err := ctx.Visit(part.Alignment); err != nil {
				return err
			}
		}
		if part.Format != "" {
			ctx.Buf.AppendRaw(":" + part.Format)
		}
		ctx.Buf.AppendRaw("}")
	}
	ctx.Buf.AppendRaw(`"`)
	return nil
}

func (p *Printer) VisitThis(ctx *emit.Context, n *model.This) error {
	tok(ctx, "this")
	return nil
}

func (p *Printer) VisitBaseExpr(ctx *emit.Context, n *model.BaseExpr) error {
	tok(ctx, "base")
	return nil
}

func (p *Printer) VisitParen(ctx *emit.Context, n *model.Paren) error {
	tok(ctx, "(")
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitMemberAccess(ctx *emit.Context, n *model.MemberAccess) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	switch {
	case n.Pointer:
		tok(ctx, "->")
	case n.Conditional:
		tok(ctx, "?.")
	default:
		tok(ctx, ".")
	}
	tok(ctx, n.Name)
	p.typeArgs(ctx, n.TypeArgs)
	return nil
}

func (p *Printer) VisitElementAccess(ctx *emit.Context, n *model.ElementAccess) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	if n.Conditional {
		tok(ctx, "?")
	}
	tok(ctx, "[")
	if err := list(p, ctx, n.Args); err != nil {
		return err
	}
	tok(ctx, "]")
	return nil
}

func (p *Printer) VisitInvocation(ctx *emit.Context, n *model.Invocation) error {
	if err := ctx.Visit(n.Fn); err != nil {
		return err
	}
	tok(ctx, "(")
	if err := list(p, ctx, n.Args); err != nil {
		return err
	}
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitArgument(ctx *emit.Context, n *model.Argument) error {
	if n.Name != "" {
		tok(ctx, n.Name)
		if n.NameEquals {
			p.op(ctx, "=")
		} else {
			tok(ctx, ":")
			p.sp(ctx)
		}
	}
	if n.Modifier != "" {
		tok(ctx, n.Modifier)
		ctx.Buf.Space()
	}
	return ctx.Visit(n.Value)
}

func (p *Printer) VisitObjectCreation(ctx *emit.Context, n *model.ObjectCreation) error {
	tok(ctx, "new")
	if n.Type != nil {
		ctx.Buf.Space()
		p.typeBody(ctx, n.Type)
	}
	if n.HasArgs || n.Type == nil && !n.Anonymous {
		tok(ctx, "(")
		if err := list(p, ctx, n.Args); err != nil {
			return err
		}
		tok(ctx, ")")
	}
	if n.Init == nil {
		return nil
	}
	p.sp(ctx)
	if n.Anonymous {
		return p.anonymous(ctx, n.Init)
	}
	return ctx.Visit(n.Init)
}

// anonymous writes the members of an anonymous object. A renamed local
// used as a projection initializer keeps its member name explicitly.
func (p *Printer) anonymous(ctx *emit.Context, init *model.InitializerList) error {
	return p.braced(ctx, init.Elements, func(e model.Expr) error {
		if id, ok := e.(*model.Identifier); ok {
			if short := p.reference(ctx, id.Target, id.Name); short != id.Name {
				tok(ctx, id.Name)
				p.op(ctx, "=")
			}
		}
		return ctx.Visit(e)
	})
}

func (p *Printer) braced(ctx *emit.Context, elems []model.Expr, each func(model.Expr) error) error {
	tok(ctx, "{")
	if len(elems) == 0 {
		tok(ctx, "}")
		return nil
	}
	p.sp(ctx)
	for i, e := range elems {
		if i > 0 {
			p.comma(ctx)
		}
		if err := each(e); err != nil {
			return err
		}
	}
	p.sp(ctx)
	tok(ctx, "}")
	return nil
}

func (p *Printer) VisitInitializerList(ctx *emit.Context, n *model.InitializerList) error {
	return p.braced(ctx, n.Elements, func(e model.Expr) error { return ctx.Visit(e) })
}

func (p *Printer) VisitArrayCreation(ctx *emit.Context, n *model.ArrayCreation) error {
	if n.Stackalloc {
		tok(ctx, "stackalloc")
	} else {
		tok(ctx, "new")
	}
	if n.Implicit {
		tok(ctx, "["+strings.Repeat(",", max(n.Rank-1, 0))+"]")
	} else {
		ctx.Buf.Space()
		elem, ranks := arrayDims(n.Type)
		p.typeBody(ctx, elem)
		for i, r := range ranks {
			if i > 0 || len(n.Sizes) == 0 {
				tok(ctx, "["+strings.Repeat(",", r-1)+"]")
				continue
			}
			tok(ctx, "[")
			if err := list(p, ctx, n.Sizes); err != nil {
				return err
			}
			tok(ctx, "]")
		}
	}
	if n.Init != nil {
		p.sp(ctx)
		return ctx.Visit(n.Init)
	}
	return nil
}

func (p *Printer) VisitBinary(ctx *emit.Context, n *model.Binary) error {
	if n.Op == ".." {
		if err := ctx.Visit(n.L); err != nil {
			return err
		}
		tok(ctx, "..")
		return ctx.Visit(n.R)
	}
	if err := ctx.Visit(n.L); err != nil {
		return err
	}
	p.op(ctx, n.Op)
	return ctx.Visit(n.R)
}

func (p *Printer) VisitAssignment(ctx *emit.Context, n *model.Assignment) error {
	if err := ctx.Visit(n.L); err != nil {
		return err
	}
	p.op(ctx, n.Op)
	return ctx.Visit(n.R)
}

func (p *Printer) VisitUnary(ctx *emit.Context, n *model.Unary) error {
	if n.Postfix {
		if err := ctx.Visit(n.X); err != nil {
			return err
		}
		tok(ctx, n.Op)
		return nil
	}
	tok(ctx, n.Op)
	return ctx.Visit(n.X)
}

func (p *Printer) VisitConditional(ctx *emit.Context, n *model.Conditional) error {
	if err := ctx.Visit(n.Cond); err != nil {
		return err
	}
	p.op(ctx, "?")
	if err := ctx.Visit(n.Then); err != nil {
		return err
	}
	p.op(ctx, ":")
	return ctx.Visit(n.Else)
}

func (p *Printer) VisitCast(ctx *emit.Context, n *model.Cast) error {
	tok(ctx, "(")
	p.typeBody(ctx, n.Type)
	tok(ctx, ")")
	return ctx.Visit(n.X)
}

func (p *Printer) VisitTypeTest(ctx *emit.Context, n *model.TypeTest) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	ctx.Buf.Space()
	tok(ctx, n.Op)
	ctx.Buf.Space()
	p.typeBody(ctx, n.Type)
	return nil
}

func (p *Printer) VisitIsPattern(ctx *emit.Context, n *model.IsPattern) error {
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	ctx.Buf.Space()
	tok(ctx, "is")
	ctx.Buf.Space()
	return ctx.Visit(n.Pattern)
}

func (p *Printer) VisitPattern(ctx *emit.Context, n *model.Pattern) error {
	switch n.Form {
	case model.PatConstant:
		return ctx.Visit(n.Value)
	case model.PatDiscard:
		tok(ctx, "_")
	case model.PatType:
		p.typeBody(ctx, n.Type)
	case model.PatDeclaration:
		p.typeBody(ctx, n.Type)
		ctx.Buf.Space()
		tok(ctx, p.local(ctx, n.Symbol(), n.Name))
	case model.PatVar:
		tok(ctx, "var")
		ctx.Buf.Space()
		if n.HasPosition {
			return p.subpatterns(ctx, "(", n.Positional, ")")
		}
		tok(ctx, p.local(ctx, n.Symbol(), n.Name))
	case model.PatRelational:
		tok(ctx, n.Op)
		p.sp(ctx)
		return ctx.Visit(n.Value)
	case model.PatAnd, model.PatOr:
		if err := ctx.Visit(n.Left); err != nil {
			return err
		}
		ctx.Buf.Space()
		if n.Form == model.PatAnd {
			tok(ctx, "and")
		} else {
			tok(ctx, "or")
		}
		ctx.Buf.Space()
		return ctx.Visit(n.Right)
	case model.PatNot:
		tok(ctx, "not")
		ctx.Buf.Space()
		return ctx.Visit(n.Left)
	case model.PatParen:
		tok(ctx, "(")
		if err := ctx.Visit(n.Left); err != nil {
			return err
		}
		tok(ctx, ")")
	case model.PatRecursive:
		if n.Type != nil {
			p.typeBody(ctx, n.Type)
		}
		if n.HasPosition {
			if err := p.subpatterns(ctx, "(", n.Positional, ")"); err != nil {
				return err
			}
		}
		if n.HasProperties {
			if n.Type != nil || n.HasPosition {
				p.sp(ctx)
			}
			if err := p.subpatterns(ctx, "{", n.Properties, "}"); err != nil {
				return err
			}
		}
		p.designation(ctx, n)
	case model.PatList:
		if err := p.subpatterns(ctx, "[", n.Positional, "]"); err != nil {
			return err
		}
		p.designation(ctx, n)
	}
	return nil
}

func (p *Printer) designation(ctx *emit.Context, n *model.Pattern) {
	if n.Name != "" {
		ctx.Buf.Space()
		tok(ctx, p.local(ctx, n.Symbol(), n.Name))
	}
}

func (p *Printer) subpatterns(ctx *emit.Context, open string, subs []model.Subpattern, close string) error {
	tok(ctx, open)
	braces := open == "{" && len(subs) > 0
	if braces {
		p.sp(ctx)
	}
	for i, s := range subs {
		if i > 0 {
			p.comma(ctx)
		}
		if s.Name != "" {
			tok(ctx, s.Name)
			tok(ctx, ":")
			p.sp(ctx)
		}
		if err := ctx.Visit(s.Pattern); err != nil {
			return err
		}
	}
	if braces {
		p.sp(ctx)
	}
	tok(ctx, close)
	return nil
}

func (p *Printer) VisitTypeOperator(ctx *emit.Context, n *model.TypeOperator) error {
	tok(ctx, n.Op)
	tok(ctx, "(")
	p.typeBody(ctx, n.Type)
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitLambda(ctx *emit.Context, n *model.Lambda) error {
	if n.Static {
		tok(ctx, "static")
		ctx.Buf.Space()
	}
	if n.Async {
		tok(ctx, "async")
		ctx.Buf.Space()
	}
	if n.Delegate {
		tok(ctx, "delegate")
		if n.Parens {
			if err := p.params(ctx, "(", n.Params, ")"); err != nil {
				return err
			}
		}
		return ctx.Visit(n.Body)
	}
	if n.Return != nil {
		p.typeBody(ctx, n.Return)
		ctx.Buf.Space()
	}
	if n.Parens || len(n.Params) != 1 || n.Params[0].Type != nil {
		if err := p.params(ctx, "(", n.Params, ")"); err != nil {
			return err
		}
	} else if err := ctx.Visit(n.Params[0]); err != nil {
		return err
	}
	p.op(ctx, "=>")
	return ctx.Visit(n.Body)
}

func (p *Printer) VisitAwait(ctx *emit.Context, n *model.Await) error {
	tok(ctx, "await")
	ctx.Buf.Space()
	return ctx.Visit(n.X)
}

func (p *Printer) VisitThrowExpr(ctx *emit.Context, n *model.ThrowExpr) error {
	tok(ctx, "throw")
	ctx.Buf.Space()
	return ctx.Visit(n.X)
}

func (p *Printer) VisitTuple(ctx *emit.Context, n *model.Tuple) error {
	tok(ctx, "(")
	if err := list(p, ctx, n.Elements); err != nil {
		return err
	}
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitSwitchExpr(ctx *emit.Context, n *model.SwitchExpr) error {
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	ctx.Buf.Space()
	tok(ctx, "switch")
	p.open(ctx)
	for i, a := range n.Arms {
		if i > 0 {
			tok(ctx, ",")
			p.nl(ctx)
		}
		if err := ctx.Visit(a); err != nil {
			return err
		}
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitSwitchArm(ctx *emit.Context, n *model.SwitchArm) error {
	if err := ctx.Visit(n.Pattern); err != nil {
		return err
	}
	if err := p.when(ctx, n.When); err != nil {
		return err
	}
	p.op(ctx, "=>")
	return ctx.Visit(n.Value)
}

func (p *Printer) VisitCheckedExpr(ctx *emit.Context, n *model.CheckedExpr) error {
	if n.Unchecked {
		tok(ctx, "unchecked")
	} else {
		tok(ctx, "checked")
	}
	tok(ctx, "(")
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	tok(ctx, ")")
	return nil
}

func (p *Printer) VisitDeclarationExpr(ctx *emit.Context, n *model.DeclarationExpr) error {
	if n.Type != nil {
		p.typeBody(ctx, n.Type)
		if n.Parenthesized {
			p.sp(ctx)
		} else {
			ctx.Buf.Space()
		}
	}
	if n.Parenthesized {
		tok(ctx, "(")
		if err := list(p, ctx, n.Vars); err != nil {
			return err
		}
		tok(ctx, ")")
		return nil
	}
	return list(p, ctx, n.Vars)
}

func (p *Printer) VisitTypeExpr(ctx *emit.Context, n *model.TypeExpr) error {
	p.typeBody(ctx, n.Type)
	return nil
}
