package csharp

import (
	"recast/internal/emit"
	"recast/internal/model"
)

func (p *Printer) VisitScript(ctx *emit.Context, n *model.Script) error {
	for _, u := range n.GlobalUsings {
		if err := ctx.Visit(u); err != nil {
			return err
		}
		p.nl(ctx)
	}
	if len(n.GlobalUsings) > 0 {
		p.blank(ctx)
	}
	if err := ctx.Visit(n.Root); err != nil {
		return err
	}
	p.nl(ctx)
	return nil
}

func (p *Printer) VisitNamespace(ctx *emit.Context, n *model.Namespace) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	decls := ctx.Declarations(n)
	if n.IsRoot() {
		wrote, err := p.directives(ctx, decls)
		if err != nil {
			return err
		}
		if n.TopLevel != nil && len(n.TopLevel.Statements) > 0 {
			if wrote {
				p.blank(ctx)
			}
			renamerOf(ctx).reset()
			if err := p.stmts(ctx, n.TopLevel.Statements); err != nil {
				return err
			}
			wrote = true
		}
		if wrote && members.Len() > 0 {
			p.blank(ctx)
		}
		return p.members(ctx, members.All())
	}

	p.comments(ctx, n)
	tok(ctx, "namespace")
	ctx.Buf.Space()
	tok(ctx, n.Name)
	if n.FileScoped {
		tok(ctx, ";")
		p.blank(ctx)
	} else {
		p.open(ctx)
	}
	wrote, err := p.directives(ctx, decls)
	if err != nil {
		return err
	}
	if wrote && members.Len() > 0 {
		p.blank(ctx)
	}
	if err := p.members(ctx, members.All()); err != nil {
		return err
	}
	if !n.FileScoped {
		p.close(ctx)
	}
	return nil
}

// directives writes extern aliases, usings and assembly attributes of the
// given declarations of one namespace, dropping repeats.
func (p *Printer) directives(ctx *emit.Context, decls []model.Node) (bool, error) {
	seen := make(map[string]bool)
	wrote := false
	for _, d := range decls {
		ns, ok := d.(*model.Namespace)
		if !ok {
			continue
		}
		for _, e := range ns.Externs {
			if key := "extern " + e; !seen[key] {
				seen[key] = true
				tok(ctx, "extern alias")
				ctx.Buf.Space()
				tok(ctx, e)
				tok(ctx, ";")
				p.nl(ctx)
				wrote = true
			}
		}
	}
	for _, d := range decls {
		ns, ok := d.(*model.Namespace)
		if !ok {
			continue
		}
		for _, u := range ns.Usings {
			if key := usingKey(u); !seen[key] {
				seen[key] = true
				if err := ctx.Visit(u); err != nil {
					return wrote, err
				}
				p.nl(ctx)
				wrote = true
			}
		}
		for _, a := range ns.Attributes {
			if err := ctx.Visit(a); err != nil {
				return wrote, err
			}
			p.nl(ctx)
			wrote = true
		}
	}
	return wrote, nil
}

func usingKey(u *model.Using) string {
	key := u.Target.String()
	if u.Alias != "" {
		key = u.Alias + "=" + key
	}
	if u.Static {
		key = "static " + key
	}
	return key
}

func (p *Printer) VisitUsing(ctx *emit.Context, n *model.Using) error {
	if n.Global {
		p.keyword(ctx, "global")
	}
	tok(ctx, "using")
	ctx.Buf.Space()
	if n.Static {
		tok(ctx, "static")
		ctx.Buf.Space()
	}
	if n.Alias != "" {
		tok(ctx, n.Alias)
		p.op(ctx, "=")
	}
	if err := ctx.Visit(n.Target); err != nil {
		return err
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitAttribute(ctx *emit.Context, n *model.Attribute) error {
	tok(ctx, "[")
	if n.Target != "" {
		tok(ctx, n.Target)
		tok(ctx, ":")
		p.sp(ctx)
	}
	p.typeBody(ctx, n.Name)
	if len(n.Args) > 0 {
		tok(ctx, "(")
		if err := list(p, ctx, n.Args); err != nil {
			return err
		}
		tok(ctx, ")")
	}
	tok(ctx, "]")
	return nil
}

// attributes writes one attribute per line.
func (p *Printer) attributes(ctx *emit.Context, attrs []*model.Attribute) error {
	for _, a := range attrs {
		if err := ctx.Visit(a); err != nil {
			return err
		}
		p.nl(ctx)
	}
	return nil
}

func (p *Printer) inlineAttributes(ctx *emit.Context, attrs []*model.Attribute) error {
	for _, a := range attrs {
		if err := ctx.Visit(a); err != nil {
			return err
		}
		p.sp(ctx)
	}
	return nil
}

// members writes declarations one after another. Fields stay together;
// everything else is set apart by a blank line. Declarators written as one
// field declaration are joined again.
func (p *Printer) members(ctx *emit.Context, nodes []model.Node) error {
	var prev model.Node
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		_, field := n.(*model.Field)
		_, prevField := prev.(*model.Field)
		if prev != nil && !(field && prevField) {
			p.blank(ctx)
		}
		if f, ok := n.(*model.Field); ok {
			group := []*model.Field{f}
			for f.Group != 0 && i+1 < len(nodes) {
				next, ok := nodes[i+1].(*model.Field)
				if !ok || next.Group != f.Group {
					break
				}
				group = append(group, next)
				i++
			}
			if err := p.fields(ctx, group); err != nil {
				return err
			}
		} else {
			p.comments(ctx, n)
			if err := ctx.Visit(n); err != nil {
				return err
			}
		}
		p.nl(ctx)
		prev = n
	}
	return nil
}

// typeDecl writes a class, struct or interface with the members of all its
// partial declarations.
func (p *Printer) typeDecl(ctx *emit.Context, n model.Node, td *model.TypeDecl, keyword string) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	var (
		attrs       []*model.Attribute
		bases       []*model.TypeRef
		constraints []model.Constraint
		mods        model.Modifiers
		seen        = make(map[string]bool)
	)
	for _, d := range ctx.Declarations(n) {
		shape, ok := d.(interface{ Shape() *model.TypeDecl })
		if !ok {
			continue
		}
		other := shape.Shape()
		attrs = append(attrs, other.Attributes...)
		for _, b := range other.BaseTypes {
			if key := b.String(); !seen[key] {
				seen[key] = true
				bases = append(bases, b)
			}
		}
		if len(constraints) == 0 {
			constraints = other.Constraints
		}
		mods.Flags |= other.Modifiers.Flags
		if mods.Access == model.AccessDefault {
			mods.Access = other.Modifiers.Access
		}
	}
	if err := p.attributes(ctx, attrs); err != nil {
		return err
	}
	p.modifiers(ctx, mods)
	tok(ctx, keyword)
	ctx.Buf.Space()
	tok(ctx, td.Name)
	if err := p.typeParams(ctx, td.TypeParams); err != nil {
		return err
	}
	if len(bases) > 0 {
		p.op(ctx, ":")
		for i, b := range bases {
			if i > 0 {
				p.comma(ctx)
			}
			p.typeBody(ctx, b)
		}
	}
	p.constraints(ctx, constraints)
	p.open(ctx)
	if err := p.members(ctx, members.All()); err != nil {
		return err
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitClass(ctx *emit.Context, n *model.Class) error {
	return p.typeDecl(ctx, n, &n.TypeDecl, "class")
}

func (p *Printer) VisitStruct(ctx *emit.Context, n *model.Struct) error {
	if n.RefStruct {
		return p.typeDecl(ctx, n, &n.TypeDecl, "ref struct")
	}
	return p.typeDecl(ctx, n, &n.TypeDecl, "struct")
}

func (p *Printer) VisitInterface(ctx *emit.Context, n *model.Interface) error {
	return p.typeDecl(ctx, n, &n.TypeDecl, "interface")
}

func (p *Printer) VisitEnum(ctx *emit.Context, n *model.Enum) error {
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	tok(ctx, "enum")
	ctx.Buf.Space()
	tok(ctx, n.Name)
	if n.Underlying != nil {
		p.op(ctx, ":")
		p.typeBody(ctx, n.Underlying)
	}
	p.open(ctx)
	for i, m := range n.Members {
		if i > 0 {
			tok(ctx, ",")
			p.nl(ctx)
		}
		if err := ctx.Visit(m); err != nil {
			return err
		}
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitEnumMember(ctx *emit.Context, n *model.EnumMember) error {
	p.comments(ctx, n)
	if err := p.inlineAttributes(ctx, n.Attributes); err != nil {
		return err
	}
	tok(ctx, n.Name)
	if n.Value != nil {
		p.op(ctx, "=")
		return ctx.Visit(n.Value)
	}
	return nil
}

func (p *Printer) VisitDelegate(ctx *emit.Context, n *model.Delegate) error {
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	tok(ctx, "delegate")
	ctx.Buf.Space()
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
	tok(ctx, ";")
	return nil
}

func (p *Printer) VisitField(ctx *emit.Context, n *model.Field) error {
	return p.fields(ctx, []*model.Field{n})
}

// fields writes declarators sharing attributes, modifiers and type as one
// declaration.
func (p *Printer) fields(ctx *emit.Context, group []*model.Field) error {
	first := group[0]
	renamerOf(ctx).reset()
	for _, f := range group {
		p.comments(ctx, f)
	}
	if err := p.attributes(ctx, first.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, first.Modifiers)
	if err := ctx.Visit(first.Type); err != nil {
		return err
	}
	ctx.Buf.Space()
	for i, f := range group {
		if i > 0 {
			p.comma(ctx)
		}
		tok(ctx, f.Name)
		if f.Init != nil {
			p.op(ctx, "=")
			if err := ctx.Visit(f.Init); err != nil {
				return err
			}
		}
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) memberName(ctx *emit.Context, iface *model.TypeRef, name string) {
	if iface != nil {
		p.typeBody(ctx, iface)
		tok(ctx, ".")
	}
	tok(ctx, name)
}

func (p *Printer) VisitProperty(ctx *emit.Context, n *model.Property) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if err := ctx.Visit(n.Type); err != nil {
		return err
	}
	ctx.Buf.Space()
	p.memberName(ctx, n.ExplicitInterface, n.Name)
	if err := p.accessors(ctx, n.Accessors, n.Expression); err != nil {
		return err
	}
	if n.Init != nil {
		p.op(ctx, "=")
		if err := ctx.Visit(n.Init); err != nil {
			return err
		}
		tok(ctx, ";")
	}
	return nil
}

func (p *Printer) VisitIndexer(ctx *emit.Context, n *model.Indexer) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if err := ctx.Visit(n.Type); err != nil {
		return err
	}
	ctx.Buf.Space()
	p.memberName(ctx, n.ExplicitInterface, "this")
	if err := p.params(ctx, "[", n.Params, "]"); err != nil {
		return err
	}
	return p.accessors(ctx, n.Accessors, n.Expression)
}

// accessors writes an accessor list, or the expression body of a getter.
// Lists of bodiless accessors stay on one line.
func (p *Printer) accessors(ctx *emit.Context, list []*model.Accessor, expr model.Expr) error {
	if len(list) == 0 {
		if expr == nil {
			tok(ctx, ";")
			return nil
		}
		p.op(ctx, "=>")
		if err := ctx.Visit(expr); err != nil {
			return err
		}
		tok(ctx, ";")
		return nil
	}
	auto := true
	for _, a := range list {
		if a.Body != nil || a.Expression != nil || len(a.Trivia()) > 0 {
			auto = false
		}
	}
	if auto {
		p.sp(ctx)
		tok(ctx, "{")
		for _, a := range list {
			p.sp(ctx)
			if err := ctx.Visit(a); err != nil {
				return err
			}
		}
		p.sp(ctx)
		tok(ctx, "}")
		return nil
	}
	p.open(ctx)
	for _, a := range list {
		p.comments(ctx, a)
		if err := ctx.Visit(a); err != nil {
			return err
		}
		p.nl(ctx)
	}
	p.close(ctx)
	return nil
}

func (p *Printer) VisitAccessor(ctx *emit.Context, n *model.Accessor) error {
	if err := p.inlineAttributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	tok(ctx, n.Keyword)
	return p.body(ctx, n.Body, n.Expression)
}

// body writes a block body, an expression body or the `;` of an abstract
// or extern declaration.
func (p *Printer) body(ctx *emit.Context, block *model.Block, expr model.Expr) error {
	switch {
	case block != nil:
		return ctx.Visit(block)
	case expr != nil:
		p.op(ctx, "=>")
		if err := ctx.Visit(expr); err != nil {
			return err
		}
	}
	tok(ctx, ";")
	return nil
}

func (p *Printer) params(ctx *emit.Context, open string, params []*model.Parameter, close string) error {
	tok(ctx, open)
	if err := list(p, ctx, params); err != nil {
		return err
	}
	tok(ctx, close)
	return nil
}

func (p *Printer) VisitMethod(ctx *emit.Context, n *model.Method) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if err := ctx.Visit(n.Return); err != nil {
		return err
	}
	ctx.Buf.Space()
	p.memberName(ctx, n.ExplicitInterface, n.Name)
	if err := p.typeParams(ctx, n.TypeParams); err != nil {
		return err
	}
	if err := p.params(ctx, "(", n.Params, ")"); err != nil {
		return err
	}
	p.constraints(ctx, n.Constraints)
	return p.body(ctx, n.Body, n.Expression)
}

func (p *Printer) VisitConstructor(ctx *emit.Context, n *model.Constructor) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	tok(ctx, n.Name)
	if err := p.params(ctx, "(", n.Params, ")"); err != nil {
		return err
	}
	if init := n.Initializer; init != nil {
		p.op(ctx, ":")
		tok(ctx, init.Keyword)
		tok(ctx, "(")
		if err := list(p, ctx, init.Args); err != nil {
			return err
		}
		tok(ctx, ")")
	}
	return p.body(ctx, n.Body, n.Expression)
}

func (p *Printer) VisitDestructor(ctx *emit.Context, n *model.Destructor) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	tok(ctx, "~")
	tok(ctx, n.Name)
	tok(ctx, "()")
	return p.body(ctx, n.Body, n.Expression)
}

func (p *Printer) VisitOperator(ctx *emit.Context, n *model.Operator) error {
	renamerOf(ctx).reset()
	if err := p.attributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if n.IsConversion() {
		tok(ctx, "operator")
		ctx.Buf.Space()
		if err := ctx.Visit(n.Return); err != nil {
			return err
		}
	} else {
		if err := ctx.Visit(n.Return); err != nil {
			return err
		}
		ctx.Buf.Space()
		tok(ctx, "operator")
		p.sp(ctx)
		tok(ctx, n.Token)
	}
	if err := p.params(ctx, "(", n.Params, ")"); err != nil {
		return err
	}
	return p.body(ctx, n.Body, n.Expression)
}

func (p *Printer) VisitParameter(ctx *emit.Context, n *model.Parameter) error {
	if err := p.inlineAttributes(ctx, n.Attributes); err != nil {
		return err
	}
	p.modifiers(ctx, n.Modifiers)
	if n.Type != nil {
		if err := ctx.Visit(n.Type); err != nil {
			return err
		}
		ctx.Buf.Space()
	}
	name := n.Name
	if _, ok := ctx.Parent().(*model.Lambda); ok {
		name = p.local(ctx, n.Symbol(), n.Name)
	}
	tok(ctx, name)
	if n.Default != nil {
		p.op(ctx, "=")
		return ctx.Visit(n.Default)
	}
	return nil
}

func (p *Printer) VisitVariable(ctx *emit.Context, n *model.Variable) error {
	tok(ctx, p.local(ctx, n.Symbol(), n.Name))
	if n.Init != nil {
		p.op(ctx, "=")
		return ctx.Visit(n.Init)
	}
	return nil
}
