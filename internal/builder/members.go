package builder

import (
	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

// shape is the type-and-name head shared by methods, properties,
// delegates, operators and local functions.
type shape struct {
	ret      *model.TypeRef
	explicit *model.TypeRef
	name     string
	nameNode *sitter.Node
}

// signature locates the declared type and name of n, preferring grammar
// fields and falling back to child order.
func (b *builder) signature(n *sitter.Node) (shape, error) {
	var s shape
	typ := field(n, "returns", "type")
	name := field(n, "name")
	if typ == nil || name == nil {
		parts := namedExcept(n, decorations...)
		var rest []*sitter.Node
		for _, p := range parts {
			if p.Type() == "explicit_interface_specifier" || p.Type() == "type_parameter_list" {
				continue
			}
			rest = append(rest, p)
		}
		if typ == nil && len(rest) > 0 && isType(rest[0]) {
			typ = rest[0]
		}
		if name == nil {
			for _, p := range rest {
				if p.Type() == "identifier" && (typ == nil || before(typ, p)) {
					name = p
					break
				}
			}
		}
	}
	if typ != nil {
		t, err := b.typeRef(typ)
		if err != nil {
			return s, err
		}
		s.ret = t
	}
	if spec := childOf(n, "explicit_interface_specifier"); spec != nil {
		inner := named(spec)
		if len(inner) != 1 {
			return s, b.unhandled(spec)
		}
		t, err := b.typeRef(inner[0])
		if err != nil {
			return s, err
		}
		s.explicit = t
	}
	if name != nil {
		s.name = b.text(name)
		s.nameNode = name
	}
	return s, nil
}

// body returns the block or expression body of a function-like member.
func (b *builder) body(n *sitter.Node) (*model.Block, model.Expr, error) {
	if blk := field(n, "body"); blk != nil && blk.Type() == "block" {
		out, err := b.block(blk)
		return out, nil, err
	}
	for _, ch := range named(n) {
		switch ch.Type() {
		case "block":
			out, err := b.block(ch)
			return out, nil, err
		case "arrow_expression_clause":
			e, err := b.arrow(ch)
			return nil, e, err
		}
	}
	return nil, nil, nil
}

func (b *builder) arrow(n *sitter.Node) (model.Expr, error) {
	inner := named(n)
	if len(inner) != 1 {
		return nil, b.unhandled(n)
	}
	return b.expr(inner[0])
}

func (b *builder) fields(n *sitter.Node) ([]*model.Field, error) {
	leading := b.trivia()
	attrs, err := b.attributeLists(n)
	if err != nil {
		return nil, err
	}
	mods, err := b.modifiers(n, "event")
	if err != nil {
		return nil, err
	}
	if n.Type() == "event_field_declaration" {
		mods.Flags |= model.FlagEvent
	}
	decl := childOf(n, "variable_declaration")
	if decl == nil {
		return nil, b.missing(n, "a declaration")
	}
	typ, vars, err := b.variableDeclaration(decl)
	if err != nil {
		return nil, err
	}
	group := 0
	if len(vars) > 1 {
		b.groups++
		group = b.groups
	}
	out := make([]*model.Field, 0, len(vars))
	for i, v := range vars {
		f := &model.Field{
			Base:       v.Base,
			Attributes: attrs,
			Modifiers:  mods,
			Type:       typ,
			Name:       v.Name,
			Init:       v.Init,
			Group:      group,
		}
		if i == 0 {
			f.Pos = b.span(n)
			f.Leading = leading
		}
		out = append(out, f)
	}
	return out, nil
}

// variableDeclaration lowers `T a = x, b` into the type and its variables.
func (b *builder) variableDeclaration(n *sitter.Node) (*model.TypeRef, []*model.Variable, error) {
	typ := field(n, "type")
	if typ == nil {
		parts := named(n)
		if len(parts) == 0 || !isType(parts[0]) {
			return nil, nil, b.missing(n, "a type")
		}
		typ = parts[0]
	}
	t, err := b.typeRef(typ)
	if err != nil {
		return nil, nil, err
	}
	var vars []*model.Variable
	for _, d := range childrenOf(n, "variable_declarator") {
		v, err := b.declarator(d)
		if err != nil {
			return nil, nil, err
		}
		vars = append(vars, v)
	}
	if len(vars) == 0 {
		return nil, nil, b.missing(n, "a declarator")
	}
	return t, vars, nil
}

func (b *builder) declarator(n *sitter.Node) (*model.Variable, error) {
	v := &model.Variable{Base: b.base(n)}
	name := field(n, "name")
	parts := named(n)
	if name == nil {
		if len(parts) == 0 {
			return nil, b.missing(n, "a name")
		}
		name = parts[0]
	}
	if name.Type() != "identifier" {
		return nil, b.unhandled(name)
	}
	v.Name = b.text(name)
	for _, p := range parts {
		if p.StartByte() == name.StartByte() {
			continue
		}
		switch p.Type() {
		case "equals_value_clause":
			inner := named(p)
			if len(inner) != 1 {
				return nil, b.unhandled(p)
			}
			e, err := b.expr(inner[0])
			if err != nil {
				return nil, err
			}
			v.Init = e
		case "bracketed_argument_list":
			return nil, b.unhandled(p)
		default:
			e, err := b.expr(p)
			if err != nil {
				return nil, err
			}
			v.Init = e
		}
	}
	return v, nil
}

func (b *builder) property(n *sitter.Node) (*model.Property, error) {
	p := &model.Property{Base: b.base(n)}
	b.attach(p)
	var err error
	if p.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if p.Modifiers, err = b.modifiers(n, "event"); err != nil {
		return nil, err
	}
	if n.Type() == "event_declaration" {
		p.Modifiers.Flags |= model.FlagEvent
	}
	s, err := b.signature(n)
	if err != nil {
		return nil, err
	}
	if s.ret == nil || s.name == "" {
		return nil, b.missing(n, "a type and name")
	}
	p.Type, p.ExplicitInterface, p.Name = s.ret, s.explicit, s.name
	accessors := field(n, "accessors")
	if accessors == nil {
		accessors = childOf(n, "accessor_list")
	}
	if accessors != nil {
		if p.Accessors, err = b.accessors(accessors); err != nil {
			return nil, err
		}
	}
	if arrow := childOf(n, "arrow_expression_clause"); arrow != nil {
		if p.Expression, err = b.arrow(arrow); err != nil {
			return nil, err
		}
	}
	// initializer: `{ get; } = value;`
	for _, ch := range named(n) {
		if accessors == nil || !before(accessors, ch) {
			continue
		}
		switch ch.Type() {
		case "arrow_expression_clause", "comment":
			continue
		case "equals_value_clause":
			inner := named(ch)
			if len(inner) != 1 {
				return nil, b.unhandled(ch)
			}
			ch = inner[0]
		}
		if p.Init, err = b.expr(ch); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (b *builder) accessors(n *sitter.Node) ([]*model.Accessor, error) {
	var out []*model.Accessor
	for _, ch := range childrenOf(n, "accessor_declaration") {
		a := &model.Accessor{Base: b.base(ch)}
		var err error
		if a.Attributes, err = b.attributeLists(ch); err != nil {
			return nil, err
		}
		if a.Modifiers, err = b.modifiers(ch); err != nil {
			return nil, err
		}
		for _, tok := range all(ch) {
			if !tok.IsNamed() && oneOf(tok.Type(), "get", "set", "init", "add", "remove") {
				a.Keyword = tok.Type()
				break
			}
		}
		if a.Keyword == "" {
			if id := childOf(ch, "identifier"); id != nil {
				a.Keyword = b.text(id)
			}
		}
		if a.Keyword == "" {
			return nil, b.missing(ch, "an accessor keyword")
		}
		if a.Body, a.Expression, err = b.body(ch); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (b *builder) indexer(n *sitter.Node) (*model.Indexer, error) {
	ix := &model.Indexer{Base: b.base(n)}
	b.attach(ix)
	var err error
	if ix.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if ix.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	s, err := b.signature(n)
	if err != nil {
		return nil, err
	}
	if s.ret == nil {
		return nil, b.missing(n, "a type")
	}
	ix.Type, ix.ExplicitInterface = s.ret, s.explicit
	pl := field(n, "parameters")
	if pl == nil {
		pl = childOf(n, "bracketed_parameter_list")
	}
	if pl == nil {
		return nil, b.missing(n, "parameters")
	}
	if ix.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if acc := childOf(n, "accessor_list"); acc != nil {
		if ix.Accessors, err = b.accessors(acc); err != nil {
			return nil, err
		}
	}
	if arrow := childOf(n, "arrow_expression_clause"); arrow != nil {
		if ix.Expression, err = b.arrow(arrow); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

func (b *builder) method(n *sitter.Node) (*model.Method, error) {
	m := &model.Method{Base: b.base(n)}
	b.attach(m)
	var err error
	if m.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if m.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	s, err := b.signature(n)
	if err != nil {
		return nil, err
	}
	if s.ret == nil || s.name == "" {
		return nil, b.missing(n, "a return type and name")
	}
	m.Return, m.ExplicitInterface, m.Name = s.ret, s.explicit, s.name
	if tpl := field(n, "type_parameters"); tpl != nil || childOf(n, "type_parameter_list") != nil {
		if tpl == nil {
			tpl = childOf(n, "type_parameter_list")
		}
		if m.TypeParams, err = b.typeParams(tpl); err != nil {
			return nil, err
		}
	}
	pl := field(n, "parameters")
	if pl == nil {
		pl = childOf(n, "parameter_list")
	}
	if pl == nil {
		return nil, b.missing(n, "parameters")
	}
	if m.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if m.Constraints, err = b.constraints(n); err != nil {
		return nil, err
	}
	if m.Body, m.Expression, err = b.body(n); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *builder) constructor(n *sitter.Node) (*model.Constructor, error) {
	c := &model.Constructor{Base: b.base(n)}
	b.attach(c)
	var err error
	if c.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if c.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier")
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	c.Name = b.text(name)
	pl := field(n, "parameters")
	if pl == nil {
		pl = childOf(n, "parameter_list")
	}
	if pl == nil {
		return nil, b.missing(n, "parameters")
	}
	if c.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if init := childOf(n, "constructor_initializer"); init != nil {
		ci := &model.ConstructorInitializer{Span: b.span(init), Keyword: "base"}
		if hasToken(init, "this") {
			ci.Keyword = "this"
		}
		if args := childOf(init, "argument_list"); args != nil {
			if ci.Args, err = b.arguments(args); err != nil {
				return nil, err
			}
		}
		c.Initializer = ci
	}
	if c.Body, c.Expression, err = b.body(n); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *builder) destructor(n *sitter.Node) (*model.Destructor, error) {
	d := &model.Destructor{Base: b.base(n)}
	b.attach(d)
	var err error
	if d.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if d.Modifiers, err = b.modifiers(n, "extern"); err != nil {
		return nil, err
	}
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier")
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	d.Name = b.text(name)
	if d.Body, d.Expression, err = b.body(n); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *builder) operator(n *sitter.Node) (*model.Operator, error) {
	o := &model.Operator{Base: b.base(n)}
	b.attach(o)
	var err error
	if o.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if o.Modifiers, err = b.modifiers(n, "implicit", "explicit"); err != nil {
		return nil, err
	}
	typ := field(n, "type", "returns")
	if typ == nil {
		for _, p := range namedExcept(n, decorations...) {
			if isType(p) {
				typ = p
				break
			}
		}
	}
	if typ == nil {
		return nil, b.missing(n, "a type")
	}
	if o.Return, err = b.typeRef(typ); err != nil {
		return nil, err
	}
	if n.Type() == "operator_declaration" {
		if op := field(n, "operator"); op != nil {
			o.Token = b.text(op)
		} else if tok := tokenAfter(n, "operator"); tok != nil {
			o.Token = tok.Type()
			if o.Token == "checked" {
				if next := tokenAfter(n, "checked"); next != nil {
					o.Token = next.Type()
				}
			}
		}
		if o.Token == "" {
			return nil, b.missing(n, "an operator token")
		}
	}
	pl := field(n, "parameters")
	if pl == nil {
		pl = childOf(n, "parameter_list")
	}
	if pl == nil {
		return nil, b.missing(n, "parameters")
	}
	if o.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if o.Body, o.Expression, err = b.body(n); err != nil {
		return nil, err
	}
	return o, nil
}

var paramTokens = []string{"ref", "out", "in", "this", "params", "scoped", "readonly"}

// params lowers parameter_list, bracketed_parameter_list and the implicit
// parameter forms of lambdas. A params array is not wrapped in a parameter
// node: its attributes, the params token, the type and the name sit
// directly in the list.
func (b *builder) params(n *sitter.Node) ([]*model.Parameter, error) {
	var (
		out     []*model.Parameter
		pending *model.Parameter
	)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch == nil || isExtra(ch) {
			continue
		}
		if !ch.IsNamed() {
			if ch.Type() == "params" {
				if pending == nil {
					pending = &model.Parameter{Base: b.base(ch)}
				}
				pending.Modifiers.Flags |= model.FlagParams
			}
			continue
		}
		switch fieldName := n.FieldNameForChild(i); {
		case fieldName == "type" && pending != nil && pending.Modifiers.Has(model.FlagParams):
			t, err := b.typeRef(ch)
			if err != nil {
				return nil, err
			}
			pending.Type = t
		case fieldName == "name" && pending != nil && pending.Modifiers.Has(model.FlagParams):
			pending.Name = b.text(ch)
			pending.Pos = pending.Pos.Cover(b.span(ch))
			out = append(out, pending)
			pending = nil
		case ch.Type() == "attribute_list":
			if pending == nil {
				pending = &model.Parameter{Base: b.base(ch)}
			}
			attrs, err := b.attributeList(ch)
			if err != nil {
				return nil, err
			}
			pending.Attributes = append(pending.Attributes, attrs...)
		case ch.Type() == "parameter":
			if pending != nil {
				return nil, b.unhandled(ch)
			}
			p, err := b.param(ch)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		case ch.Type() == "identifier" || ch.Type() == "implicit_parameter":
			if pending != nil {
				return nil, b.unhandled(ch)
			}
			out = append(out, &model.Parameter{Base: b.base(ch), Name: b.text(ch)})
		default:
			return nil, b.unhandled(ch)
		}
	}
	if pending != nil {
		return nil, b.missing(n, "a parameter name")
	}
	return out, nil
}

func (b *builder) param(n *sitter.Node) (*model.Parameter, error) {
	p := &model.Parameter{Base: b.base(n)}
	var err error
	if p.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if p.Modifiers, err = b.modifiers(n, paramTokens...); err != nil {
		return nil, err
	}
	typ := field(n, "type")
	name := field(n, "name")
	parts := namedExcept(n, decorations...)
	switch {
	case name == nil && typ == nil:
		if len(parts) >= 2 && isType(parts[0]) && parts[1].Type() == "identifier" {
			typ, name = parts[0], parts[1]
		} else if len(parts) >= 1 && parts[0].Type() == "identifier" {
			name = parts[0]
		}
	case name == nil:
		for _, part := range parts {
			if part.Type() == "identifier" && before(typ, part) {
				name = part
				break
			}
		}
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	p.Name = b.text(name)
	if typ != nil {
		if p.Type, err = b.typeRef(typ); err != nil {
			return nil, err
		}
	}
	for _, part := range parts {
		if !before(name, part) {
			continue
		}
		if p.Default, err = b.expr(part); err != nil {
			return nil, err
		}
	}
	return p, nil
}
