package builder

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

// nsBuilder gathers the parts of a namespace before its members are
// partitioned.
type nsBuilder struct {
	ns      *model.Namespace
	members []model.Node
	top     []model.Stmt
}

func (b *builder) compilationUnit(n *sitter.Node) (*model.Script, error) {
	script := &model.Script{
		Base:    b.base(n),
		File:    b.file.ID,
		Path:    b.file.Path,
		Library: b.opts.Library,
	}
	root := &nsBuilder{ns: &model.Namespace{Base: b.base(n)}}
	current := root
	var fileScoped *nsBuilder

	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch == nil {
			continue
		}
		switch {
		case isComment(ch):
			b.comment(ch)
			continue
		case isPreproc(ch):
			continue
		}
		switch ch.Type() {
		case "using_directive":
			u, err := b.using(ch)
			if err != nil {
				return nil, err
			}
			if u.Global {
				script.GlobalUsings = append(script.GlobalUsings, u)
			} else {
				current.ns.Usings = append(current.ns.Usings, u)
			}
		case "extern_alias_directive":
			current.ns.Externs = append(current.ns.Externs, b.externAlias(ch))
			b.drop()
		case "global_attribute_list", "global_attribute":
			attrs, err := b.attributeList(ch)
			if err != nil {
				return nil, err
			}
			root.ns.Attributes = append(root.ns.Attributes, attrs...)
		case "attribute_list":
			attrs, err := b.attributeList(ch)
			if err != nil {
				return nil, err
			}
			root.ns.Attributes = append(root.ns.Attributes, attrs...)
		case "global_statement":
			inner := named(ch)
			if len(inner) != 1 {
				return nil, b.unhandled(ch)
			}
			st, err := b.stmt(inner[0])
			if err != nil {
				return nil, err
			}
			root.top = append(root.top, st)
		case "file_scoped_namespace_declaration":
			if fileScoped != nil {
				return nil, b.unhandled(ch)
			}
			nb, err := b.fileScopedNamespace(ch)
			if err != nil {
				return nil, err
			}
			fileScoped = nb
			current = nb
		default:
			members, err := b.member(ch)
			if err != nil {
				return nil, err
			}
			current.members = append(current.members, members...)
		}
	}
	b.drop()

	if fileScoped != nil {
		if err := fileScoped.finish(b); err != nil {
			return nil, err
		}
		root.members = append(root.members, fileScoped.ns)
	}
	if err := root.finish(b); err != nil {
		return nil, err
	}
	script.Root = root.ns
	return script, nil
}

func (nb *nsBuilder) finish(b *builder) error {
	members, err := model.PartitionMembers(nb.members)
	if err != nil {
		return b.wrapPartition(err, nb.ns)
	}
	nb.ns.Members = members
	if len(nb.top) > 0 {
		first, last := nb.top[0].Span(), nb.top[len(nb.top)-1].Span()
		nb.ns.TopLevel = &model.Block{Statements: nb.top}
		nb.ns.TopLevel.Pos = first.Cover(last)
	}
	return nil
}

func (b *builder) wrapPartition(err error, n model.Node) error {
	pos := b.file.LineColAt(n.Span().Start)
	return wrapUnhandled(err, b.file.Path, pos.Line, pos.Col)
}

func (b *builder) externAlias(n *sitter.Node) string {
	if id := childOf(n, "identifier"); id != nil {
		return b.text(id)
	}
	return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(b.text(n)), "extern alias"), ";")
}

// namespaceName normalises a dotted name node.
func (b *builder) namespaceName(n *sitter.Node) string {
	return strings.Join(strings.Fields(b.text(n)), "")
}

func (b *builder) namespace(n *sitter.Node) (*model.Namespace, error) {
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier", "qualified_name")
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	body := field(n, "body")
	if body == nil {
		body = childOf(n, "declaration_list")
	}
	if body == nil {
		return nil, b.missing(n, "a body")
	}
	nb := &nsBuilder{ns: &model.Namespace{Base: b.base(n), Name: b.namespaceName(name)}}
	b.attach(nb.ns)
	if err := b.namespaceBody(nb, body); err != nil {
		return nil, err
	}
	if err := nb.finish(b); err != nil {
		return nil, err
	}
	return nb.ns, nil
}

// fileScopedNamespace handles both grammar shapes: members nested under the
// declaration, or following it as siblings (added by the caller).
func (b *builder) fileScopedNamespace(n *sitter.Node) (*nsBuilder, error) {
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier", "qualified_name")
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	nb := &nsBuilder{ns: &model.Namespace{Base: b.base(n), Name: b.namespaceName(name), FileScoped: true}}
	b.attach(nb.ns)
	if err := b.namespaceBody(nb, n, name); err != nil {
		return nil, err
	}
	return nb, nil
}

// namespaceBody adds the directives and members found directly under n.
func (b *builder) namespaceBody(nb *nsBuilder, n *sitter.Node, skip ...*sitter.Node) error {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch == nil || containsNode(skip, ch) {
			continue
		}
		switch {
		case isComment(ch):
			b.comment(ch)
			continue
		case isPreproc(ch):
			continue
		}
		switch ch.Type() {
		case "using_directive":
			u, err := b.using(ch)
			if err != nil {
				return err
			}
			nb.ns.Usings = append(nb.ns.Usings, u)
		case "extern_alias_directive":
			nb.ns.Externs = append(nb.ns.Externs, b.externAlias(ch))
			b.drop()
		default:
			members, err := b.member(ch)
			if err != nil {
				return err
			}
			nb.members = append(nb.members, members...)
		}
	}
	b.drop()
	return nil
}

func containsNode(list []*sitter.Node, n *sitter.Node) bool {
	for _, x := range list {
		if x.StartByte() == n.StartByte() && x.EndByte() == n.EndByte() && x.Type() == n.Type() {
			return true
		}
	}
	return false
}

func (b *builder) using(n *sitter.Node) (*model.Using, error) {
	u := &model.Using{Base: b.base(n)}
	b.attach(u)
	parts := named(n)
	if len(parts) == 0 {
		return nil, b.missing(n, "a target")
	}
	var sawEquals bool
	for _, ch := range all(n) {
		if ch.IsNamed() {
			if ch.Type() == "name_equals" {
				if id := childOf(ch, "identifier"); id != nil {
					u.Alias = b.text(id)
				} else {
					u.Alias = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(b.text(ch)), "="))
				}
			}
			continue
		}
		switch ch.Type() {
		case "global":
			u.Global = true
		case "static":
			u.Static = true
		case "=":
			sawEquals = true
		}
	}
	if sawEquals && u.Alias == "" {
		alias := field(n, "name")
		if alias == nil {
			alias = parts[0]
		}
		u.Alias = b.text(alias)
	}
	target := parts[len(parts)-1]
	if target.Type() == "name_equals" {
		return nil, b.missing(n, "a target")
	}
	t, err := b.typeRef(target)
	if err != nil {
		return nil, err
	}
	u.Target = t
	return u, nil
}

func (b *builder) attributeLists(n *sitter.Node) ([]*model.Attribute, error) {
	var out []*model.Attribute
	for _, ch := range childrenOf(n, "attribute_list") {
		attrs, err := b.attributeList(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, attrs...)
	}
	return out, nil
}

func (b *builder) attributeList(n *sitter.Node) ([]*model.Attribute, error) {
	var target string
	if spec := childOf(n, "attribute_target_specifier"); spec != nil {
		target = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(b.text(spec)), ":"))
	} else if hasToken(n, "assembly") {
		target = "assembly"
	} else if hasToken(n, "module") {
		target = "module"
	}
	var out []*model.Attribute
	for _, ch := range childrenOf(n, "attribute") {
		a, err := b.attribute(ch)
		if err != nil {
			return nil, err
		}
		a.Target = target
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, b.missing(n, "an attribute")
	}
	b.drop()
	return out, nil
}

func (b *builder) attribute(n *sitter.Node) (*model.Attribute, error) {
	name := field(n, "name")
	if name == nil {
		parts := namedExcept(n, "attribute_argument_list")
		if len(parts) == 0 {
			return nil, b.missing(n, "a name")
		}
		name = parts[0]
	}
	t, err := b.typeRef(name)
	if err != nil {
		return nil, err
	}
	a := &model.Attribute{Base: b.base(n), Name: t}
	if list := childOf(n, "attribute_argument_list"); list != nil {
		for _, arg := range childrenOf(list, "attribute_argument") {
			ma, err := b.attributeArgument(arg)
			if err != nil {
				return nil, err
			}
			a.Args = append(a.Args, ma)
		}
	}
	return a, nil
}

func (b *builder) attributeArgument(n *sitter.Node) (*model.Argument, error) {
	arg := &model.Argument{Base: b.base(n)}
	parts := named(n)
	var valueNode *sitter.Node
	for _, p := range parts {
		switch p.Type() {
		case "name_equals":
			arg.Name = b.designatorName(p)
			arg.NameEquals = true
		case "name_colon":
			arg.Name = b.designatorName(p)
		default:
			valueNode = p
		}
	}
	switch {
	case arg.Name != "":
	case len(parts) == 1 && parts[0].Type() == "assignment_expression":
		// Name = value parses as an assignment to the property.
		left, right := field(parts[0], "left"), field(parts[0], "right")
		op := field(parts[0], "operator")
		if left == nil || right == nil || left.Type() != "identifier" || op == nil || op.Type() != "=" {
			return nil, b.unhandled(parts[0])
		}
		arg.Name = b.text(left)
		arg.NameEquals = true
		valueNode = right
	case len(parts) == 2 && (hasToken(n, "=") || hasToken(n, ":")):
		arg.Name = b.text(parts[0])
		arg.NameEquals = hasToken(n, "=")
		valueNode = parts[1]
	case len(parts) > 1:
		return nil, b.unhandled(n)
	}
	if valueNode == nil {
		return nil, b.missing(n, "a value")
	}
	v, err := b.expr(valueNode)
	if err != nil {
		return nil, err
	}
	arg.Value = v
	return arg, nil
}

// designatorName extracts the identifier of name_equals / name_colon.
func (b *builder) designatorName(n *sitter.Node) string {
	if id := childOf(n, "identifier"); id != nil {
		return b.text(id)
	}
	s := strings.TrimSpace(b.text(n))
	return strings.TrimSpace(strings.TrimRight(s, "=:"))
}

// modifiers collects modifier nodes and modifier tokens of n.
func (b *builder) modifiers(n *sitter.Node, tokens ...string) (model.Modifiers, error) {
	var m model.Modifiers
	for _, ch := range all(n) {
		if ch.IsNamed() {
			if oneOf(ch.Type(), "modifier", "parameter_modifier") {
				for _, word := range strings.Fields(b.text(ch)) {
					if !m.Add(word) {
						return m, b.unhandled(ch)
					}
				}
			}
			continue
		}
		if oneOf(ch.Type(), tokens...) {
			m.Add(ch.Type())
		}
	}
	return m, nil
}

// member lowers one member declaration. Fields may yield several nodes.
func (b *builder) member(n *sitter.Node) ([]model.Node, error) {
	var (
		node model.Node
		err  error
	)
	switch n.Type() {
	case "namespace_declaration":
		node, err = b.namespace(n)
	case "class_declaration":
		node, err = b.class(n)
	case "struct_declaration":
		node, err = b.structDecl(n)
	case "interface_declaration":
		node, err = b.iface(n)
	case "enum_declaration":
		node, err = b.enum(n)
	case "delegate_declaration":
		node, err = b.delegate(n)
	case "field_declaration", "event_field_declaration":
		fields, ferr := b.fields(n)
		if ferr != nil {
			return nil, ferr
		}
		out := make([]model.Node, len(fields))
		for i, f := range fields {
			out[i] = f
		}
		return out, nil
	case "property_declaration", "event_declaration":
		node, err = b.property(n)
	case "indexer_declaration":
		node, err = b.indexer(n)
	case "method_declaration":
		node, err = b.method(n)
	case "constructor_declaration":
		node, err = b.constructor(n)
	case "destructor_declaration":
		node, err = b.destructor(n)
	case "operator_declaration", "conversion_operator_declaration":
		node, err = b.operator(n)
	default:
		return nil, b.unhandled(n)
	}
	if err != nil {
		return nil, err
	}
	return []model.Node{node}, nil
}

// typeDecl fills the shape shared by classes, structs and interfaces.
func (b *builder) typeDecl(n *sitter.Node, d *model.TypeDecl) error {
	d.Base = b.base(n)
	d.Leading = b.trivia()
	var err error
	if d.Attributes, err = b.attributeLists(n); err != nil {
		return err
	}
	if d.Modifiers, err = b.modifiers(n); err != nil {
		return err
	}
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier")
	}
	if name == nil {
		return b.missing(n, "a name")
	}
	d.Name = b.text(name)
	var body *sitter.Node
	for _, ch := range named(n) {
		switch ch.Type() {
		case "type_parameter_list":
			if d.TypeParams, err = b.typeParams(ch); err != nil {
				return err
			}
		case "base_list":
			if d.BaseTypes, err = b.baseList(ch); err != nil {
				return err
			}
		case "type_parameter_constraints_clause":
			c, cerr := b.constraint(ch)
			if cerr != nil {
				return cerr
			}
			d.Constraints = append(d.Constraints, c)
		case "declaration_list":
			body = ch
		case "attribute_list", "modifier", "identifier":
		default:
			return b.unhandled(ch)
		}
	}
	if body == nil {
		return b.missing(n, "a body")
	}
	members, err := b.memberList(body)
	if err != nil {
		return err
	}
	partitioned, err := model.PartitionMembers(members)
	if err != nil {
		pos := b.file.LineColAt(n.StartByte())
		return wrapUnhandled(err, b.file.Path, pos.Line, pos.Col)
	}
	d.Members = partitioned
	return nil
}

// memberList lowers the members of a declaration_list with their trivia.
func (b *builder) memberList(list *sitter.Node) ([]model.Node, error) {
	var out []model.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		ch := list.NamedChild(i)
		if ch == nil {
			continue
		}
		switch {
		case isComment(ch):
			b.comment(ch)
			continue
		case isPreproc(ch):
			continue
		}
		members, err := b.member(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, members...)
	}
	b.drop()
	return out, nil
}

func (b *builder) class(n *sitter.Node) (*model.Class, error) {
	c := &model.Class{}
	if err := b.typeDecl(n, &c.TypeDecl); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *builder) structDecl(n *sitter.Node) (*model.Struct, error) {
	s := &model.Struct{RefStruct: hasToken(n, "ref")}
	if err := b.typeDecl(n, &s.TypeDecl); err != nil {
		return nil, err
	}
	if s.Modifiers.Has(model.FlagRef) {
		s.RefStruct = true
		s.Modifiers.Flags &^= model.FlagRef
	}
	return s, nil
}

func (b *builder) iface(n *sitter.Node) (*model.Interface, error) {
	i := &model.Interface{}
	if err := b.typeDecl(n, &i.TypeDecl); err != nil {
		return nil, err
	}
	return i, nil
}

func (b *builder) baseList(n *sitter.Node) ([]*model.TypeRef, error) {
	var out []*model.TypeRef
	for _, ch := range named(n) {
		if !isType(ch) {
			return nil, b.unhandled(ch)
		}
		t, err := b.typeRef(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (b *builder) typeParams(n *sitter.Node) ([]*model.TypeParameter, error) {
	var out []*model.TypeParameter
	for _, ch := range childrenOf(n, "type_parameter") {
		tp := &model.TypeParameter{Base: b.base(ch)}
		attrs, err := b.attributeLists(ch)
		if err != nil {
			return nil, err
		}
		tp.Attributes = attrs
		switch {
		case hasToken(ch, "in"):
			tp.Variance = "in"
		case hasToken(ch, "out"):
			tp.Variance = "out"
		}
		name := field(ch, "name")
		if name == nil {
			name = childOf(ch, "identifier")
		}
		if name == nil {
			return nil, b.missing(ch, "a name")
		}
		tp.Name = b.text(name)
		out = append(out, tp)
	}
	return out, nil
}

func (b *builder) constraint(n *sitter.Node) (model.Constraint, error) {
	c := model.Constraint{Span: b.span(n)}
	target := field(n, "target")
	if target == nil {
		target = childOf(n, "identifier")
	}
	if target == nil {
		return c, b.missing(n, "a type parameter")
	}
	c.Param = b.text(target)
	for _, ch := range childrenOf(n, "type_parameter_constraint", "constructor_constraint") {
		if ch.Type() == "constructor_constraint" {
			c.Special = append(c.Special, "new()")
			continue
		}
		inner := named(ch)
		switch {
		case len(inner) == 1 && inner[0].Type() == "constructor_constraint":
			c.Special = append(c.Special, "new()")
		case len(inner) == 1 && isType(inner[0]):
			t, err := b.typeRef(inner[0])
			if err != nil {
				return c, err
			}
			c.Bounds = append(c.Bounds, t)
		case len(inner) == 0:
			c.Special = append(c.Special, strings.Join(strings.Fields(b.text(ch)), ""))
		default:
			return c, b.unhandled(ch)
		}
	}
	return c, nil
}

func (b *builder) constraints(n *sitter.Node) ([]model.Constraint, error) {
	var out []model.Constraint
	for _, ch := range childrenOf(n, "type_parameter_constraints_clause") {
		c, err := b.constraint(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (b *builder) enum(n *sitter.Node) (*model.Enum, error) {
	e := &model.Enum{Base: b.base(n)}
	b.attach(e)
	var err error
	if e.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if e.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier")
	}
	if name == nil {
		return nil, b.missing(n, "a name")
	}
	e.Name = b.text(name)
	if bl := childOf(n, "base_list"); bl != nil {
		bases, err := b.baseList(bl)
		if err != nil {
			return nil, err
		}
		if len(bases) != 1 {
			return nil, b.unhandled(bl)
		}
		e.Underlying = bases[0]
	}
	body := childOf(n, "enum_member_declaration_list")
	if body == nil {
		return nil, b.missing(n, "a body")
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		ch := body.NamedChild(i)
		if ch == nil {
			continue
		}
		if isComment(ch) {
			b.comment(ch)
			continue
		}
		if isPreproc(ch) {
			continue
		}
		if ch.Type() != "enum_member_declaration" {
			return nil, b.unhandled(ch)
		}
		m, err := b.enumMember(ch)
		if err != nil {
			return nil, err
		}
		e.Members = append(e.Members, m)
	}
	b.drop()
	return e, nil
}

func (b *builder) enumMember(n *sitter.Node) (*model.EnumMember, error) {
	m := &model.EnumMember{Base: b.base(n)}
	b.attach(m)
	attrs, err := b.attributeLists(n)
	if err != nil {
		return nil, err
	}
	m.Attributes = attrs
	parts := namedExcept(n, "attribute_list")
	if len(parts) == 0 {
		return nil, b.missing(n, "a name")
	}
	m.Name = b.text(parts[0])
	value := field(n, "value")
	if value == nil && len(parts) > 1 {
		value = parts[1]
		if value.Type() == "equals_value_clause" {
			inner := named(value)
			if len(inner) != 1 {
				return nil, b.unhandled(value)
			}
			value = inner[0]
		}
	}
	if value != nil {
		if m.Value, err = b.expr(value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (b *builder) delegate(n *sitter.Node) (*model.Delegate, error) {
	d := &model.Delegate{Base: b.base(n)}
	b.attach(d)
	var err error
	if d.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if d.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	shape, err := b.signature(n)
	if err != nil {
		return nil, err
	}
	d.Return, d.Name = shape.ret, shape.name
	if tpl := childOf(n, "type_parameter_list"); tpl != nil {
		if d.TypeParams, err = b.typeParams(tpl); err != nil {
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
	if d.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if d.Constraints, err = b.constraints(n); err != nil {
		return nil, err
	}
	return d, nil
}
