package symbols

import (
	"fmt"

	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/source"
)

// Bind runs phase 4. Every type reference is bound first, then the value
// types of declared symbols are derived, then identifiers and member
// accesses are bound. Unresolved references keep a zero target and are
// reported once per site.
func (t *Table) Bind() {
	for _, s := range t.scripts {
		b := newBinder(t, s.File)
		b.walk(s, b.typesEnter, nil)
	}
	t.valueTypes()
	for _, s := range t.scripts {
		b := newBinder(t, s.File)
		b.walk(s, b.exprEnter, b.exprLeave)
	}
}

type binder struct {
	t      *Table
	file   source.FileID
	scopes []SymbolID
	// calls maps invoked expressions to their argument count.
	calls map[model.Expr]int
	// owners maps object initializer member names to the created type.
	owners map[*model.Identifier]*model.TypeRef
	skip   map[model.Node]bool
}

func newBinder(t *Table, file source.FileID) *binder {
	return &binder{
		t:      t,
		file:   file,
		calls:  make(map[model.Expr]int),
		owners: make(map[*model.Identifier]*model.TypeRef),
		skip:   make(map[model.Node]bool),
	}
}

func (b *binder) scope() SymbolID {
	if len(b.scopes) == 0 {
		return NoSymbolID
	}
	return b.scopes[len(b.scopes)-1]
}

// walk visits n keeping the scope stack in step with declared symbols.
func (b *binder) walk(n model.Node, enter func(model.Node) bool, leave func(model.Node)) {
	model.Walk(n, func(n model.Node) bool {
		if b.skip[n] || !enter(n) {
			return false
		}
		if id := n.Symbol(); id.IsValid() {
			b.scopes = append(b.scopes, b.t.Resolve(id))
		}
		return true
	}, func(n model.Node) {
		if leave != nil {
			leave(n)
		}
		if n.Symbol().IsValid() {
			b.scopes = b.scopes[:len(b.scopes)-1]
		}
	})
}

func (b *binder) unresolved(span source.Span, format string, args ...any) {
	b.t.report(diag.SemaUnresolvedSymbol, diag.SevWarning, span, fmt.Sprintf(format, args...))
}

func (b *binder) typesEnter(n model.Node) bool {
	switch n := n.(type) {
	case *model.Using:
		b.usingArgs(n)
		return false
	case *model.Attribute:
		b.attribute(n)
	case *model.TypeRef:
		b.typeRef(n, b.scope())
	}
	return true
}

// usingArgs binds the type arguments inside a using target. The target
// itself was handled by Link.
func (b *binder) usingArgs(u *model.Using) {
	if u.Target == nil || !u.Symbol().IsValid() {
		return
	}
	owner := b.t.importOwner(b.t.Get(u.Symbol()).Parent)
	model.Inspect(u.Target, func(n model.Node) bool {
		if tr, ok := n.(*model.TypeRef); ok {
			b.typeRef(tr, owner)
		}
		return true
	})
}

func (b *binder) typeRef(tr *model.TypeRef, scope SymbolID) {
	if tr.Target.IsValid() || b.t.linked[tr] {
		return
	}
	var target SymbolID
	switch tr.Form {
	case model.TypePredefined:
		if fqn, ok := predefined[tr.Keyword]; ok {
			target = b.t.wellKnown(fqn)
		}
		if !target.IsValid() {
			return
		}
	case model.TypeNamed:
		target = b.t.resolveType(scope, tr)
		if !target.IsValid() {
			b.unresolved(tr.Span(), "type %s not found", tr)
			return
		}
	default:
		return
	}
	tr.Target = target
	b.t.use(target, tr, scope)
}

// attribute binds an attribute name, trying the Attribute suffix when the
// name as written is not found.
func (b *binder) attribute(a *model.Attribute) {
	if a.Name == nil || a.Name.Target.IsValid() {
		return
	}
	b.t.linked[a.Name] = true
	scope := b.scope()
	target := b.t.resolveType(scope, a.Name)
	if !target.IsValid() && a.Name.Form == model.TypeNamed && len(a.Name.Segments) > 0 {
		long := *a.Name
		long.Segments = append([]model.TypeSegment(nil), a.Name.Segments...)
		long.Segments[len(long.Segments)-1].Name += "Attribute"
		target = b.t.resolveType(scope, &long)
	}
	if !target.IsValid() {
		b.unresolved(a.Name.Span(), "attribute %s not found", a.Name)
		return
	}
	a.Name.Target = target
	b.t.use(target, a.Name, scope)
}

// valueTypes derives the type symbol of every declared value and the
// return type symbol of every callable.
func (t *Table) valueTypes() {
	for _, id := range t.Symbols.IDs() {
		sym := t.Get(id)
		if sym.Type != nil && !sym.ValueType.IsValid() {
			sym.ValueType = t.typeOf(sym.Type)
		}
	}
}

// typeOf returns the symbol a bound type reference denotes.
func (t *Table) typeOf(tr *model.TypeRef) SymbolID {
	if tr == nil {
		return NoSymbolID
	}
	switch tr.Form {
	case model.TypeNamed, model.TypePredefined:
		return t.Resolve(tr.Target)
	case model.TypeNullable:
		return t.typeOf(tr.Elem)
	case model.TypeArray:
		return t.wellKnown("System.Array")
	}
	return NoSymbolID
}

func (b *binder) exprEnter(n model.Node) bool {
	switch n := n.(type) {
	case *model.Using:
		return false
	case *model.Invocation:
		b.calls[n.Fn] = len(n.Args)
	case *model.ObjectCreation:
		b.initializer(n)
	case *model.Foreach:
		b.foreach(n)
	case *model.Identifier:
		b.identifier(n)
	}
	return true
}

func (b *binder) exprLeave(n model.Node) {
	switch n := n.(type) {
	case *model.MemberAccess:
		b.memberAccess(n)
	case *model.Variable:
		b.infer(n)
	}
}

// initializer routes `Name = value` entries of an object initializer to the
// members of the created type. Anonymous objects declare their names.
func (b *binder) initializer(n *model.ObjectCreation) {
	if n.Init == nil {
		return
	}
	for _, e := range n.Init.Elements {
		a, ok := e.(*model.Assignment)
		if !ok {
			continue
		}
		id, ok := a.L.(*model.Identifier)
		if !ok {
			continue
		}
		if n.Anonymous || n.Type == nil {
			b.skip[id] = true
			continue
		}
		b.owners[id] = n.Type
	}
}

// foreach binds the collection ahead of the body so an implicitly typed
// loop variable gets the element type.
func (b *binder) foreach(n *model.Foreach) {
	if n.Var == nil || n.Type == nil || n.Type.Form != model.TypeVar || n.Collection == nil {
		return
	}
	b.walk(n.Collection, b.exprEnter, b.exprLeave)
	b.skip[n.Collection] = true
	if sym := b.t.Sym(n.Var.Symbol()); sym != nil {
		sym.ValueType = b.elementType(n.Collection)
	}
}

func (b *binder) identifier(id *model.Identifier) {
	if owner, ok := b.owners[id]; ok {
		target := b.t.Resolve(owner.Target)
		if !target.IsValid() {
			return
		}
		q, ok := b.t.newQuery(b.file, id.Name, id.Span())
		if !ok {
			return
		}
		if hit := b.t.member(target, q); hit.IsValid() {
			id.Target = hit
			b.t.use(hit, id, b.scope())
		}
		return
	}
	q, ok := b.t.newQuery(b.file, id.Name, id.Span())
	q.arity = len(id.TypeArgs)
	if c, called := b.calls[id]; called {
		q.args = c
	}
	hit := NoSymbolID
	if ok {
		hit = b.t.lookup(b.scope(), q)
	}
	if !hit.IsValid() {
		if id.Name != "_" && id.Name != "nameof" {
			b.unresolved(id.Span(), "name %s not found", id.Name)
		}
		return
	}
	id.Target = hit
	b.t.use(hit, id, b.scope())
}

func (b *binder) memberAccess(n *model.MemberAccess) {
	recv, static := b.receiver(n.X)
	if !recv.IsValid() {
		return
	}
	q, ok := b.t.newQuery(b.file, n.Name, n.Span())
	q.arity = len(n.TypeArgs)
	if c, called := b.calls[n]; called {
		q.args = c
	}
	hit := NoSymbolID
	if ok {
		hit = b.t.member(recv, q)
	}
	if !hit.IsValid() {
		if static {
			b.unresolved(n.Span(), "%s has no member %s", b.t.FullName(recv), n.Name)
		}
		return
	}
	n.Target = hit
	b.t.use(hit, n, b.scope())
}

// infer gives an implicitly typed local the type of its initializer.
func (b *binder) infer(v *model.Variable) {
	sym := b.t.Sym(v.Symbol())
	if sym == nil || sym.Type == nil || sym.Type.Form != model.TypeVar || v.Init == nil {
		return
	}
	sym.ValueType = b.valueOf(v.Init)
}

// receiver returns the scope member lookups on e search. static reports
// that e names a namespace or type rather than a value.
func (b *binder) receiver(e model.Expr) (SymbolID, bool) {
	switch e := e.(type) {
	case *model.Identifier:
		return b.through(e.Target)
	case *model.MemberAccess:
		return b.through(e.Target)
	case *model.TypeExpr:
		return b.t.typeOf(e.Type), true
	case *model.This:
		return b.t.EnclosingType(b.scope()), false
	case *model.BaseExpr:
		self := b.t.Sym(b.t.EnclosingType(b.scope()))
		if self == nil {
			return NoSymbolID, false
		}
		for _, base := range self.Bases {
			if b.t.Sym(base).Kind == KindClass {
				return b.t.Resolve(base), false
			}
		}
		return b.t.Resolve(self.Root), false
	}
	return b.valueOf(e), false
}

func (b *binder) through(target SymbolID) (SymbolID, bool) {
	target = b.t.Resolve(target)
	sym := b.t.Get(target)
	switch {
	case sym == nil:
		return NoSymbolID, false
	case sym.Kind.IsContainer():
		return target, true
	case sym.Kind.IsValue():
		return b.t.Resolve(sym.ValueType), false
	}
	return NoSymbolID, false
}

// valueOf estimates the type symbol of an expression's value. Zero means
// unknown.
func (b *binder) valueOf(e model.Expr) SymbolID {
	t := b.t
	switch e := e.(type) {
	case *model.Identifier, *model.MemberAccess, *model.This, *model.BaseExpr:
		recv, static := b.receiver(e)
		if static {
			return NoSymbolID
		}
		return recv
	case *model.Literal:
		if fqn, ok := literalTypes[e.Lit]; ok {
			return t.wellKnown(fqn)
		}
	case *model.InterpolatedString:
		return t.wellKnown("System.String")
	case *model.Paren:
		return b.valueOf(e.X)
	case *model.CheckedExpr:
		return b.valueOf(e.X)
	case *model.Cast:
		return t.typeOf(e.Type)
	case *model.TypeTest:
		if e.Op == "as" {
			return t.typeOf(e.Type)
		}
		return t.wellKnown("System.Boolean")
	case *model.IsPattern:
		return t.wellKnown("System.Boolean")
	case *model.ObjectCreation:
		return t.typeOf(e.Type)
	case *model.ArrayCreation:
		return t.wellKnown("System.Array")
	case *model.Invocation:
		if sym := t.Sym(callee(e)); sym != nil && sym.Kind.IsCallable() {
			return t.Resolve(sym.ValueType)
		}
	case *model.ElementAccess:
		if tr := b.declaredType(e.X, 0); tr != nil && tr.Form == model.TypeArray {
			return t.typeOf(tr.Elem)
		}
		if recv := b.valueOf(e.X); recv.IsValid() {
			if q, ok := t.newQuery(b.file, "this[]", e.Span()); ok {
				if sym := t.Sym(t.member(recv, q)); sym != nil {
					return t.Resolve(sym.ValueType)
				}
			}
		}
	case *model.Conditional:
		if v := b.valueOf(e.Then); v.IsValid() {
			return v
		}
		return b.valueOf(e.Else)
	case *model.Binary:
		switch e.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return t.wellKnown("System.Boolean")
		}
		if l := b.valueOf(e.L); l.IsValid() {
			return l
		}
		if e.R != nil {
			return b.valueOf(e.R)
		}
	case *model.Unary:
		if e.Op == "!" {
			return t.wellKnown("System.Boolean")
		}
		return b.valueOf(e.X)
	case *model.Assignment:
		return b.valueOf(e.L)
	}
	return NoSymbolID
}

// declaredType returns the written type behind e, following implicitly
// typed locals to their initializers.
func (b *binder) declaredType(e model.Expr, depth int) *model.TypeRef {
	if depth > 8 {
		return nil
	}
	var target SymbolID
	switch e := e.(type) {
	case *model.Identifier:
		target = e.Target
	case *model.MemberAccess:
		target = e.Target
	case *model.Invocation:
		target = callee(e)
	case *model.ObjectCreation:
		return e.Type
	case *model.ArrayCreation:
		return e.Type
	case *model.Cast:
		return e.Type
	case *model.Paren:
		return b.declaredType(e.X, depth+1)
	default:
		return nil
	}
	sym := b.t.Sym(target)
	if sym == nil || sym.Type == nil {
		return nil
	}
	if sym.Type.Form == model.TypeVar {
		if v, ok := sym.Component.(*model.Variable); ok && v.Init != nil {
			return b.declaredType(v.Init, depth+1)
		}
		return nil
	}
	return sym.Type
}

// elementType estimates the element type of an enumerated collection:
// arrays yield their element, single-argument generics their argument and
// strings their characters.
func (b *binder) elementType(e model.Expr) SymbolID {
	t := b.t
	tr := b.declaredType(e, 0)
	if tr != nil {
		switch tr.Form {
		case model.TypeArray:
			return t.typeOf(tr.Elem)
		case model.TypeNamed:
			if last := tr.Last(); last != nil && len(last.Args) == 1 {
				return t.typeOf(last.Args[0])
			}
		}
	}
	if v := b.valueOf(e); v.IsValid() && v == t.wellKnown("System.String") {
		return t.wellKnown("System.Char")
	}
	return NoSymbolID
}

// callee returns the bound target of an invoked name.
func callee(inv *model.Invocation) SymbolID {
	switch fn := inv.Fn.(type) {
	case *model.Identifier:
		return fn.Target
	case *model.MemberAccess:
		return fn.Target
	}
	return NoSymbolID
}
