package csharp

import (
	"strings"

	"recast/internal/emit"
	"recast/internal/model"
)

func (p *Printer) VisitTypeRef(ctx *emit.Context, n *model.TypeRef) error {
	if n.Ref {
		p.keyword(ctx, "ref")
		if n.Readonly {
			p.keyword(ctx, "readonly")
		}
		ctx.Buf.Space()
	}
	p.typeBody(ctx, n)
	return nil
}

func (p *Printer) typeBody(ctx *emit.Context, n *model.TypeRef) {
	switch n.Form {
	case model.TypePredefined:
		tok(ctx, n.Keyword)
	case model.TypeVar:
		tok(ctx, "var")
	case model.TypeArray:
		elem, ranks := arrayDims(n)
		p.typeBody(ctx, elem)
		for _, r := range ranks {
			tok(ctx, "["+strings.Repeat(",", r-1)+"]")
		}
	case model.TypePointer:
		p.typeBody(ctx, n.Elem)
		tok(ctx, "*")
	case model.TypeNullable:
		p.typeBody(ctx, n.Elem)
		tok(ctx, "?")
	case model.TypeTuple:
		tok(ctx, "(")
		for i, e := range n.Elems {
			if i > 0 {
				p.comma(ctx)
			}
			p.typeBody(ctx, e.Type)
			if e.Name != "" {
				ctx.Buf.Space()
				tok(ctx, e.Name)
			}
		}
		tok(ctx, ")")
	default:
		if n.Global {
			tok(ctx, "global::")
		}
		for i, s := range n.Segments {
			if i > 0 {
				tok(ctx, ".")
			}
			tok(ctx, s.Name)
			switch {
			case s.Unbound:
				tok(ctx, "<"+strings.Repeat(",", max(s.Arity-1, 0))+">")
			case len(s.Args) > 0:
				p.typeArgs(ctx, s.Args)
			}
		}
	}
}

func (p *Printer) typeArgs(ctx *emit.Context, args []*model.TypeRef) {
	if len(args) == 0 {
		return
	}
	tok(ctx, "<")
	for i, a := range args {
		if i > 0 {
			p.comma(ctx)
		}
		p.typeBody(ctx, a)
	}
	tok(ctx, ">")
}

// arrayDims splits an array type into its element type and its rank
// specifiers in source order. Jagged arrays nest with the last written
// specifier outermost.
func arrayDims(n *model.TypeRef) (*model.TypeRef, []int) {
	var ranks []int
	for n.Form == model.TypeArray && n.Elem != nil {
		ranks = append(ranks, max(n.Rank, 1))
		n = n.Elem
	}
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	return n, ranks
}

func (p *Printer) typeParams(ctx *emit.Context, params []*model.TypeParameter) error {
	if len(params) == 0 {
		return nil
	}
	tok(ctx, "<")
	if err := list(p, ctx, params); err != nil {
		return err
	}
	tok(ctx, ">")
	return nil
}

func (p *Printer) VisitTypeParameter(ctx *emit.Context, n *model.TypeParameter) error {
	if err := p.inlineAttributes(ctx, n.Attributes); err != nil {
		return err
	}
	if n.Variance != "" {
		tok(ctx, n.Variance)
		ctx.Buf.Space()
	}
	tok(ctx, n.Name)
	return nil
}

func (p *Printer) constraints(ctx *emit.Context, cs []model.Constraint) {
	for _, c := range cs {
		ctx.Buf.Space()
		tok(ctx, "where")
		ctx.Buf.Space()
		tok(ctx, c.Param)
		p.op(ctx, ":")
		first := true
		sep := func() {
			if !first {
				p.comma(ctx)
			}
			first = false
		}
		for _, s := range c.Special {
			if s != "new()" {
				sep()
				tok(ctx, s)
			}
		}
		for _, b := range c.Bounds {
			sep()
			p.typeBody(ctx, b)
		}
		for _, s := range c.Special {
			if s == "new()" {
				sep()
				tok(ctx, s)
			}
		}
	}
}
