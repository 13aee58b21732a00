package js

import (
	"strconv"
	"strings"

	"recast/internal/emit"
	"recast/internal/model"
	"recast/internal/symbols"
)

func (m *Map) VisitScript(ctx *emit.Context, n *model.Script) error {
	if ctx.Buf.Len() > 0 {
		ctx.Buf.BlankLine()
	}
	if err := ctx.Visit(n.Root); err != nil {
		return err
	}
	nl(ctx)
	return nil
}

// declareNamespace creates the objects of a namespace path that do not
// exist yet.
func (m *Map) declareNamespace(ctx *emit.Context, n model.Node) error {
	ns, ok := n.(*model.Namespace)
	if !ok || ns.IsRoot() {
		return nil
	}
	st := stateOf(ctx)
	path := scopePath(ctx)
	for _, part := range strings.Split(ns.Name, ".") {
		path = append(path, part)
		full := strings.Join(path, ".")
		if st.declared[full] {
			continue
		}
		st.declared[full] = true
		if len(path) == 1 {
			w(ctx, "var ")
		}
		w(ctx, full+" = "+full+" || {};")
		nl(ctx)
	}
	return nil
}

// declareEnum renders enums declared directly in a namespace. Enums nested
// in types render after their type.
func (m *Map) declareEnum(ctx *emit.Context, n model.Node) error {
	e, ok := n.(*model.Enum)
	if !ok || !inNamespace(ctx) {
		return nil
	}
	return m.enumObject(ctx, e)
}

func inNamespace(ctx *emit.Context) bool {
	owner := ctx.Enclosing(model.KindNamespace, model.KindClass, model.KindStruct, model.KindInterface)
	return owner == nil || owner.Kind() == model.KindNamespace
}

func (m *Map) VisitNamespace(ctx *emit.Context, n *model.Namespace) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	if !n.IsRoot() {
		m.comments(ctx, n)
	}
	wrote, err := m.declarations(ctx, members.SourceOrder(), false)
	if err != nil {
		return err
	}
	if n.IsRoot() && n.TopLevel != nil && len(n.TopLevel.Statements) > 0 {
		if wrote {
			ctx.Buf.BlankLine()
		}
		return m.stmts(ctx, n.TopLevel.Statements)
	}
	return nil
}

// renders reports whether the main pass writes anything for a member
// declaration of a namespace or type.
func renders(ctx *emit.Context, n model.Node, inType bool) bool {
	switch n.(type) {
	case *model.Interface, *model.Delegate:
		return false
	case *model.Enum:
		return inType
	}
	return ctx.IsPrimary(n)
}

// declarations renders type and namespace members with a blank line
// between them.
func (m *Map) declarations(ctx *emit.Context, nodes []model.Node, inType bool) (bool, error) {
	wrote := false
	for _, d := range nodes {
		if !renders(ctx, d, inType) {
			continue
		}
		if wrote || inType {
			ctx.Buf.BlankLine()
		}
		if err := ctx.Visit(d); err != nil {
			return wrote, err
		}
		wrote = true
	}
	return wrote, nil
}

func (m *Map) VisitUsing(ctx *emit.Context, n *model.Using) error { return nil }

func (m *Map) VisitAttribute(ctx *emit.Context, n *model.Attribute) error { return nil }

func (m *Map) VisitTypeParameter(ctx *emit.Context, n *model.TypeParameter) error { return nil }

func (m *Map) VisitInterface(ctx *emit.Context, n *model.Interface) error { return nil }

func (m *Map) VisitDelegate(ctx *emit.Context, n *model.Delegate) error { return nil }

func (m *Map) VisitClass(ctx *emit.Context, n *model.Class) error {
	return m.class(ctx, n, &n.TypeDecl)
}

// VisitStruct renders a struct as a class; copies on assignment are not
// kept.
func (m *Map) VisitStruct(ctx *emit.Context, n *model.Struct) error {
	if n.RefStruct {
		return ctx.Unsupported(n, "ref struct")
	}
	return m.class(ctx, n, &n.TypeDecl)
}

func (m *Map) class(ctx *emit.Context, n model.Node, d *model.TypeDecl) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	m.comments(ctx, n)
	name, nested := declName(ctx, d.Name)
	if nested {
		w(ctx, name+" = ")
	}
	w(ctx, "class "+d.Name)
	base, err := m.extends(ctx, n)
	if err != nil {
		return err
	}
	if base != "" {
		w(ctx, " extends "+base)
	}
	if members.Len() == 0 {
		w(ctx, " {}")
	} else {
		begin(ctx)
		if err := m.classBody(ctx, &members, base != ""); err != nil {
			return err
		}
		end(ctx)
	}
	if nested {
		w(ctx, ";")
	}
	nl(ctx)
	_, err = m.declarations(ctx, members.Types, true)
	return err
}

// extends returns the class the type derives from, or "" for none.
func (m *Map) extends(ctx *emit.Context, n model.Node) (string, error) {
	id := classBase(ctx, symbolOf(ctx, n))
	if !id.IsValid() || fullName(ctx, id) == objectType {
		return "", nil
	}
	return typeName(ctx, n, id)
}

// body tracks blank lines between class members.
type body struct {
	ctx       *emit.Context
	wrote     bool
	lastField bool
}

func (b *body) next(field bool) {
	switch {
	case !b.wrote:
	case field && b.lastField:
		nl(b.ctx)
	default:
		b.ctx.Buf.BlankLine()
	}
	b.wrote = true
	b.lastField = field
}

func (m *Map) classBody(ctx *emit.Context, members *model.Members, derived bool) error {
	b := &body{ctx: ctx}
	for _, group := range [][]*model.Field{members.StaticFields, members.Fields} {
		for _, f := range group {
			b.next(true)
			m.comments(ctx, f)
			if err := m.field(ctx, f.Modifiers.IsStatic(), f.Name, f.Type, f.Init); err != nil {
				return err
			}
		}
	}
	var accessors []*model.Property
	for _, group := range [][]*model.Property{members.StaticProperties, members.Properties} {
		for _, p := range group {
			if !autoProperty(p) {
				accessors = append(accessors, p)
				continue
			}
			if p.Modifiers.Has(model.FlagAbstract) {
				continue
			}
			b.next(true)
			m.comments(ctx, p)
			if err := m.field(ctx, p.Modifiers.IsStatic(), p.Name, p.Type, p.Init); err != nil {
				return err
			}
		}
	}
	if err := m.constructors(ctx, b, members.Constructors, derived); err != nil {
		return err
	}
	if members.Destructor != nil {
		return ctx.Unsupported(members.Destructor, "destructor")
	}
	if len(members.Indexers) > 0 {
		return ctx.Unsupported(members.Indexers[0], "indexer")
	}
	if len(members.Operators) > 0 {
		return ctx.Unsupported(members.Operators[0], "operator "+members.Operators[0].Token)
	}
	for _, p := range accessors {
		if err := m.property(ctx, b, p); err != nil {
			return err
		}
	}
	if err := checkOverloads(ctx, members.Methods); err != nil {
		return err
	}
	for _, fn := range members.Methods {
		if fn.Body == nil && fn.Expression == nil {
			continue
		}
		b.next(false)
		if err := ctx.Visit(fn); err != nil {
			return err
		}
	}
	return nil
}

// checkOverloads rejects methods that only differ by parameter types.
func checkOverloads(ctx *emit.Context, methods []*model.Method) error {
	seen := make(map[string]bool, len(methods))
	for _, fn := range methods {
		key := fn.Name + "/" + strconv.Itoa(arity(fn.Params))
		if seen[key] {
			return ctx.Unsupported(fn, "overloads of "+fn.Name+" with the same parameter count")
		}
		seen[key] = true
	}
	return nil
}

// arity counts parameters; -1 means a params array.
func arity(params []*model.Parameter) int {
	if len(params) > 0 && params[len(params)-1].Modifiers.Has(model.FlagParams) {
		return -1
	}
	return len(params)
}

func (m *Map) field(ctx *emit.Context, static bool, name string, typ *model.TypeRef, init model.Expr) error {
	if static {
		w(ctx, "static ")
	}
	w(ctx, strings.TrimPrefix(name, "@")+" = ")
	if init != nil {
		if err := ctx.Visit(init); err != nil {
			return err
		}
	} else {
		w(ctx, defaultValue(ctx, typ))
	}
	w(ctx, ";")
	return nil
}

func (m *Map) VisitField(ctx *emit.Context, n *model.Field) error {
	return m.field(ctx, n.Modifiers.IsStatic(), n.Name, n.Type, n.Init)
}

// autoProperty reports properties whose accessors have no bodies; they
// become plain fields.
func autoProperty(p *model.Property) bool {
	if p.Expression != nil || len(p.Accessors) == 0 {
		return false
	}
	for _, a := range p.Accessors {
		if a.Body != nil || a.Expression != nil {
			return false
		}
	}
	return true
}

func (m *Map) VisitProperty(ctx *emit.Context, n *model.Property) error {
	if autoProperty(n) {
		return m.field(ctx, n.Modifiers.IsStatic(), n.Name, n.Type, n.Init)
	}
	return m.property(ctx, &body{ctx: ctx}, n)
}

// property renders a getter and setter pair.
func (m *Map) property(ctx *emit.Context, b *body, p *model.Property) error {
	static := ""
	if p.Modifiers.IsStatic() {
		static = "static "
	}
	if p.Expression != nil {
		b.next(false)
		m.comments(ctx, p)
		w(ctx, static+"get "+p.Name+"()")
		return m.funcBody(ctx, nil, p.Expression, true)
	}
	for i, a := range p.Accessors {
		b.next(false)
		if i == 0 {
			m.comments(ctx, p)
		}
		switch a.Keyword {
		case "get":
			w(ctx, static+"get "+p.Name+"()")
		case "set", "init":
			w(ctx, static+"set "+p.Name+"(value)")
		default:
			return ctx.Unsupported(a, a.Keyword+" accessor")
		}
		if a.Body == nil && a.Expression == nil {
			return ctx.Unsupported(a, "accessor without body")
		}
		if err := m.funcBody(ctx, a.Body, a.Expression, a.Keyword == "get"); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) VisitAccessor(ctx *emit.Context, n *model.Accessor) error {
	return m.funcBody(ctx, n.Body, n.Expression, n.Keyword == "get")
}

func (m *Map) VisitIndexer(ctx *emit.Context, n *model.Indexer) error {
	return ctx.Unsupported(n, "indexer")
}

func (m *Map) VisitDestructor(ctx *emit.Context, n *model.Destructor) error {
	return ctx.Unsupported(n, "destructor")
}

func (m *Map) VisitOperator(ctx *emit.Context, n *model.Operator) error {
	return ctx.Unsupported(n, "operator "+n.Token)
}

// funcBody renders a block body, or an expression body as a block that
// returns the value when value is set.
func (m *Map) funcBody(ctx *emit.Context, b *model.Block, expr model.Expr, value bool) error {
	if b != nil {
		w(ctx, " ")
		return ctx.Visit(b)
	}
	begin(ctx)
	if expr == nil {
		// abstract and interface members have no body
		end(ctx)
		return nil
	}
	if value {
		w(ctx, "return ")
	}
	if err := ctx.Visit(expr); err != nil {
		return err
	}
	w(ctx, ";")
	end(ctx)
	return nil
}

func returnsValue(t *model.TypeRef) bool {
	return t != nil && !(t.Form == model.TypePredefined && t.Keyword == "void")
}

// generator reports bodies containing yield outside nested functions.
func generator(body *model.Block) bool {
	if body == nil {
		return false
	}
	found := false
	model.Inspect(body, func(n model.Node) bool {
		switch n.(type) {
		case *model.Lambda, *model.LocalFunction:
			return false
		case *model.Yield:
			found = true
		}
		return !found
	})
	return found
}

func (m *Map) VisitMethod(ctx *emit.Context, n *model.Method) error {
	m.comments(ctx, n)
	if n.Modifiers.IsStatic() {
		w(ctx, "static ")
	}
	if n.Modifiers.Has(model.FlagAsync) {
		w(ctx, "async ")
	}
	if generator(n.Body) {
		w(ctx, "*")
	}
	w(ctx, memberName(ctx, symbolOf(ctx, n), n.Name)+"(")
	if err := list(ctx, n.Params); err != nil {
		return err
	}
	w(ctx, ")")
	return m.funcBody(ctx, n.Body, n.Expression, returnsValue(n.Return))
}

func (m *Map) VisitParameter(ctx *emit.Context, n *model.Parameter) error {
	switch {
	case n.Modifiers.Has(model.FlagRef), n.Modifiers.Has(model.FlagOut):
		return ctx.Unsupported(n, "by-reference parameter "+n.Name)
	case n.Modifiers.Has(model.FlagParams):
		w(ctx, "...")
	}
	w(ctx, ident(n.Name))
	if n.Default != nil {
		w(ctx, " = ")
		return ctx.Visit(n.Default)
	}
	return nil
}

func (m *Map) VisitVariable(ctx *emit.Context, n *model.Variable) error {
	w(ctx, ident(n.Name))
	if n.Init != nil {
		w(ctx, " = ")
		return ctx.Visit(n.Init)
	}
	return nil
}

func (m *Map) VisitEnum(ctx *emit.Context, n *model.Enum) error {
	if inNamespace(ctx) {
		return nil
	}
	return m.enumObject(ctx, n)
}

func (m *Map) VisitEnumMember(ctx *emit.Context, n *model.EnumMember) error {
	w(ctx, n.Name)
	return nil
}

// enumObject renders an enum as a frozen object of numbers.
func (m *Map) enumObject(ctx *emit.Context, n *model.Enum) error {
	m.comments(ctx, n)
	name, nested := declName(ctx, n.Name)
	if nested {
		w(ctx, name+" = ")
	} else {
		w(ctx, "const "+name+" = ")
	}
	w(ctx, "Object.freeze({")
	nl(ctx)
	ctx.Buf.Open()
	known := make(map[symbols.SymbolID]int64, len(n.Members))
	next := int64(0)
	for i, mem := range n.Members {
		v := next
		if mem.Value != nil {
			var ok bool
			if v, ok = constValue(ctx, mem.Value, known); !ok {
				return ctx.Unsupported(mem.Value, "non-constant value of "+n.Name+"."+mem.Name)
			}
		}
		m.comments(ctx, mem)
		w(ctx, mem.Name+": "+strconv.FormatInt(v, 10))
		if i < len(n.Members)-1 {
			w(ctx, ",")
		}
		nl(ctx)
		known[symbolOf(ctx, mem)] = v
		next = v + 1
	}
	ctx.Buf.Close()
	w(ctx, "});")
	nl(ctx)
	return nil
}

// constValue folds an enum member value: integer literals, earlier
// members and arithmetic or bitwise operators over them.
func constValue(ctx *emit.Context, e model.Expr, known map[symbols.SymbolID]int64) (int64, bool) {
	switch e := e.(type) {
	case *model.Literal:
		if e.Lit != model.LitInt {
			return 0, false
		}
		v, err := strconv.ParseInt(number(e.Raw), 0, 64)
		return v, err == nil
	case *model.Paren:
		return constValue(ctx, e.X, known)
	case *model.CheckedExpr:
		return constValue(ctx, e.X, known)
	case *model.Cast:
		return constValue(ctx, e.X, known)
	case *model.Identifier:
		v, ok := known[resolve(ctx, e.Target)]
		return v, ok
	case *model.MemberAccess:
		v, ok := known[resolve(ctx, e.Target)]
		return v, ok
	case *model.Unary:
		x, ok := constValue(ctx, e.X, known)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case "-":
			return -x, true
		case "+":
			return x, true
		case "~":
			return ^x, true
		}
	case *model.Binary:
		l, ok := constValue(ctx, e.L, known)
		if !ok {
			return 0, false
		}
		r, ok := constValue(ctx, e.R, known)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		case "*":
			return l * r, true
		case "/":
			if r != 0 {
				return l / r, true
			}
		case "|":
			return l | r, true
		case "&":
			return l & r, true
		case "^":
			return l ^ r, true
		case "<<":
			return l << uint64(r&63), true
		case ">>":
			return l >> uint64(r&63), true
		}
	}
	return 0, false
}

func resolve(ctx *emit.Context, id symbols.SymbolID) symbols.SymbolID {
	if ctx.Table == nil {
		return id
	}
	return ctx.Table.Resolve(id)
}
