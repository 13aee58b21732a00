package js

import (
	"strings"

	"recast/internal/emit"
	"recast/internal/model"
	"recast/internal/symbols"
)

func (m *Map) VisitIdentifier(ctx *emit.Context, n *model.Identifier) error {
	s, err := m.nameRef(ctx, n, n.Target, n.Name)
	if err != nil {
		return err
	}
	w(ctx, s)
	return nil
}

// nameRef renders an unqualified reference. Members of types are
// qualified with this or their type.
func (m *Map) nameRef(ctx *emit.Context, at model.Node, target symbols.SymbolID, name string) (string, error) {
	sym := symOf(ctx, target)
	if sym == nil {
		return ident(name), nil
	}
	switch {
	case sym.Kind == symbols.KindNamespace:
		return fullName(ctx, target), nil
	case sym.Kind.IsType():
		return typeName(ctx, at, target)
	case library(ctx, sym):
		fqn := fullName(ctx, target)
		if s, ok := statics[fqn]; ok {
			return s, nil
		}
		if s, ok := members[fqn]; ok && !sym.IsStatic() {
			return "this" + access(s, false), nil
		}
		return "", ctx.Unsupported(at, "library member "+fqn)
	}
	switch sym.Kind {
	case symbols.KindField, symbols.KindProperty, symbols.KindMethod, symbols.KindEnumMember:
	default:
		return ident(name), nil
	}
	member := memberName(ctx, target, name)
	if !sym.IsStatic() && sym.Kind != symbols.KindEnumMember {
		return "this." + member, nil
	}
	owner, err := typeName(ctx, at, ctx.Table.Resolve(sym.Parent))
	if err != nil {
		return "", err
	}
	return owner + "." + member, nil
}

// access spells a member access by name or, for '[' names, by index.
func access(name string, conditional bool) string {
	switch {
	case strings.HasPrefix(name, "[") && conditional:
		return "?." + name
	case strings.HasPrefix(name, "["):
		return name
	case conditional:
		return "?." + name
	}
	return "." + name
}

func (m *Map) VisitMemberAccess(ctx *emit.Context, n *model.MemberAccess) error {
	if n.Pointer {
		return ctx.Unsupported(n, "pointer member access")
	}
	sym := symOf(ctx, n.Target)
	if sym != nil {
		switch {
		case sym.Kind == symbols.KindNamespace:
			w(ctx, fullName(ctx, n.Target))
			return nil
		case sym.Kind.IsType():
			s, err := typeName(ctx, n, n.Target)
			if err != nil {
				return err
			}
			w(ctx, s)
			return nil
		case library(ctx, sym):
			fqn := fullName(ctx, n.Target)
			if s, ok := statics[fqn]; ok {
				w(ctx, s)
				return nil
			}
			if s, ok := members[fqn]; ok {
				if err := wrapped(ctx, n.X); err != nil {
					return err
				}
				w(ctx, access(s, n.Conditional))
				return nil
			}
			if sym.IsStatic() {
				return ctx.Unsupported(n, "library member "+fqn)
			}
		}
	}
	if _, ok := n.X.(*model.BaseExpr); ok && sym != nil && (sym.Kind == symbols.KindField || sym.Kind == symbols.KindProperty) {
		// fields live on the instance, not on the base prototype
		w(ctx, "this")
	} else if err := wrapped(ctx, n.X); err != nil {
		return err
	}
	w(ctx, access(memberName(ctx, n.Target, n.Name), n.Conditional))
	return nil
}

func (m *Map) VisitLiteral(ctx *emit.Context, n *model.Literal) error {
	switch n.Lit {
	case model.LitInt, model.LitReal:
		w(ctx, number(n.Raw))
	case model.LitVerbatimString:
		w(ctx, quote(verbatim(n.Raw)))
	case model.LitRawString:
		w(ctx, quote(rawString(n.Raw)))
	case model.LitChar:
		w(ctx, char(n.Raw))
	case model.LitDefault:
		w(ctx, "null")
	default:
		w(ctx, n.Raw)
	}
	return nil
}

func (m *Map) VisitInterpolatedString(ctx *emit.Context, n *model.InterpolatedString) error {
	w(ctx, "`")
	for _, part := range n.Parts {
		if part.Hole == nil {
			ctx.Buf.AppendRaw(templateText(part.Text, n.Verbatim))
			continue
		}
		if part.Alignment != nil {
			return ctx.Unsupported(part.Alignment, "interpolation alignment")
		}
		if part.Format != "" {
			return ctx.Unsupported(part.Hole, "interpolation format "+part.Format)
		}
		ctx.Buf.AppendRaw("${")
		if err := ctx.Visit(part.Hole); err != nil {
			return err
		}
		ctx.Buf.AppendRaw("}")
	}
	ctx.Buf.AppendRaw("`")
	return nil
}

func (m *Map) VisitThis(ctx *emit.Context, n *model.This) error {
	w(ctx, "this")
	return nil
}

func (m *Map) VisitBaseExpr(ctx *emit.Context, n *model.BaseExpr) error {
	w(ctx, "super")
	return nil
}

func (m *Map) VisitParen(ctx *emit.Context, n *model.Paren) error {
	w(ctx, "(")
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func (m *Map) VisitElementAccess(ctx *emit.Context, n *model.ElementAccess) error {
	if len(n.Args) != 1 {
		return ctx.Unsupported(n, "multi-dimensional element access")
	}
	if n.X == nil {
		return ctx.Unsupported(n, "indexed member initializer")
	}
	if err := wrapped(ctx, n.X); err != nil {
		return err
	}
	if is(ctx, valueType(ctx, n.X), dictionaryType) {
		if n.Conditional {
			w(ctx, "?.get(")
		} else {
			w(ctx, ".get(")
		}
		if err := ctx.Visit(n.Args[0]); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	}
	if n.Conditional {
		w(ctx, "?.[")
	} else {
		w(ctx, "[")
	}
	if err := ctx.Visit(n.Args[0]); err != nil {
		return err
	}
	w(ctx, "]")
	return nil
}

func (m *Map) VisitInvocation(ctx *emit.Context, n *model.Invocation) error {
	target := callee(n)
	if sym := symOf(ctx, target); sym != nil {
		if fn, ok := calls[fullName(ctx, target)]; ok && library(ctx, sym) {
			var recv model.Expr
			if ma, ok := n.Fn.(*model.MemberAccess); ok && !sym.IsStatic() {
				recv = ma.X
			}
			return fn(m, ctx, n, recv)
		}
		if id, ok := n.Fn.(*model.Identifier); ok && sym.Kind == symbols.KindLocalFunction {
			w(ctx, ident(id.Name)+".call(this")
			if len(n.Args) > 0 {
				w(ctx, ", ")
			}
			if err := args(ctx, n.Args); err != nil {
				return err
			}
			w(ctx, ")")
			return nil
		}
	}
	if id, ok := n.Fn.(*model.Identifier); ok && id.Name == "nameof" && !id.Target.IsValid() {
		return m.nameof(ctx, n)
	}
	if err := ctx.Visit(n.Fn); err != nil {
		return err
	}
	w(ctx, "(")
	if err := args(ctx, n.Args); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func (m *Map) nameof(ctx *emit.Context, n *model.Invocation) error {
	if len(n.Args) != 1 {
		return ctx.Unsupported(n, "nameof arity")
	}
	switch x := n.Args[0].Value.(type) {
	case *model.Identifier:
		w(ctx, quote(x.Name))
	case *model.MemberAccess:
		w(ctx, quote(x.Name))
	case *model.TypeExpr:
		w(ctx, quote(x.Type.Last().Name))
	default:
		return ctx.Unsupported(n, "nameof operand")
	}
	return nil
}

func (m *Map) VisitArgument(ctx *emit.Context, n *model.Argument) error {
	switch n.Modifier {
	case "ref", "out":
		return ctx.Unsupported(n, n.Modifier+" argument")
	}
	return ctx.Visit(n.Value)
}

func (m *Map) VisitObjectCreation(ctx *emit.Context, n *model.ObjectCreation) error {
	if n.Anonymous {
		return m.objectLiteral(ctx, n.Init)
	}
	if n.Type == nil {
		return ctx.Unsupported(n, "target-typed new")
	}
	switch typeFullName(ctx, n.Type) {
	case listType:
		return m.newList(ctx, n)
	case hashSetType:
		return m.newCollection(ctx, n, "Set")
	case dictionaryType:
		return m.newMap(ctx, n)
	case objectType:
		w(ctx, "{}")
		return nil
	}
	name, err := typeRefName(ctx, n.Type)
	if err != nil {
		return err
	}
	if name == "Error" {
		w(ctx, "new Error(")
		if len(n.Args) > 0 {
			if err := ctx.Visit(n.Args[0]); err != nil {
				return err
			}
		}
		w(ctx, ")")
		return nil
	}
	if n.Init != nil {
		w(ctx, "Object.assign(")
	}
	w(ctx, "new "+name+"(")
	if err := args(ctx, n.Args); err != nil {
		return err
	}
	w(ctx, ")")
	if n.Init == nil {
		return nil
	}
	w(ctx, ", ")
	if err := m.objectLiteral(ctx, n.Init); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

// objectLiteral renders member initializers and anonymous object members
// as properties.
func (m *Map) objectLiteral(ctx *emit.Context, init *model.InitializerList) error {
	if init == nil || len(init.Elements) == 0 {
		w(ctx, "{}")
		return nil
	}
	w(ctx, "{ ")
	for i, e := range init.Elements {
		if i > 0 {
			w(ctx, ", ")
		}
		var name string
		value := e
		switch e := e.(type) {
		case *model.Assignment:
			id, ok := e.L.(*model.Identifier)
			if !ok || e.Op != "=" {
				return ctx.Unsupported(e, "initializer entry")
			}
			name, value = id.Name, e.R
		case *model.Identifier:
			name = e.Name
		case *model.MemberAccess:
			name = e.Name
		default:
			return ctx.Unsupported(e, "collection initializer")
		}
		if _, ok := value.(*model.InitializerList); ok {
			return ctx.Unsupported(value, "nested initializer")
		}
		w(ctx, strings.TrimPrefix(name, "@")+": ")
		if err := ctx.Visit(value); err != nil {
			return err
		}
	}
	w(ctx, " }")
	return nil
}

func (m *Map) newList(ctx *emit.Context, n *model.ObjectCreation) error {
	switch {
	case n.Init != nil:
		return ctx.Visit(n.Init)
	case len(n.Args) == 1 && !isIntegral(ctx, valueType(ctx, n.Args[0].Value)):
		w(ctx, "[...")
		if err := ctx.Visit(n.Args[0]); err != nil {
			return err
		}
		w(ctx, "]")
	default:
		w(ctx, "[]")
	}
	return nil
}

func (m *Map) newCollection(ctx *emit.Context, n *model.ObjectCreation, ctor string) error {
	w(ctx, "new "+ctor+"(")
	switch {
	case n.Init != nil:
		if err := ctx.Visit(n.Init); err != nil {
			return err
		}
	case len(n.Args) == 1 && !isIntegral(ctx, valueType(ctx, n.Args[0].Value)):
		if err := ctx.Visit(n.Args[0]); err != nil {
			return err
		}
	}
	w(ctx, ")")
	return nil
}

// newMap renders a dictionary; `{ k, v }` and `[k] = v` entries become
// pairs.
func (m *Map) newMap(ctx *emit.Context, n *model.ObjectCreation) error {
	if n.Init == nil {
		return m.newCollection(ctx, n, "Map")
	}
	w(ctx, "new Map([")
	for i, e := range n.Init.Elements {
		if i > 0 {
			w(ctx, ", ")
		}
		var k, v model.Expr
		switch e := e.(type) {
		case *model.InitializerList:
			if len(e.Elements) != 2 {
				return ctx.Unsupported(e, "dictionary entry")
			}
			k, v = e.Elements[0], e.Elements[1]
		case *model.Assignment:
			ea, ok := e.L.(*model.ElementAccess)
			if !ok || len(ea.Args) != 1 {
				return ctx.Unsupported(e, "dictionary entry")
			}
			k, v = ea.Args[0].Value, e.R
		default:
			return ctx.Unsupported(e, "dictionary entry")
		}
		w(ctx, "[")
		if err := ctx.Visit(k); err != nil {
			return err
		}
		w(ctx, ", ")
		if err := ctx.Visit(v); err != nil {
			return err
		}
		w(ctx, "]")
	}
	w(ctx, "])")
	return nil
}

func (m *Map) VisitArrayCreation(ctx *emit.Context, n *model.ArrayCreation) error {
	switch {
	case n.Stackalloc:
		return ctx.Unsupported(n, "stackalloc")
	case n.Rank > 1 || len(n.Sizes) > 1:
		return ctx.Unsupported(n, "multi-dimensional array")
	case n.Init != nil:
		return ctx.Visit(n.Init)
	case len(n.Sizes) == 1:
		w(ctx, "new Array(")
		if err := ctx.Visit(n.Sizes[0]); err != nil {
			return err
		}
		elem := n.Type
		if elem != nil && elem.Form == model.TypeArray {
			elem = elem.Elem
		}
		w(ctx, ").fill("+defaultValue(ctx, elem)+")")
		return nil
	}
	w(ctx, "[]")
	return nil
}

func (m *Map) VisitInitializerList(ctx *emit.Context, n *model.InitializerList) error {
	w(ctx, "[")
	if err := m.exprs(ctx, n.Elements); err != nil {
		return err
	}
	w(ctx, "]")
	return nil
}

func (m *Map) VisitBinary(ctx *emit.Context, n *model.Binary) error {
	op := n.Op
	switch op {
	case "==":
		op = "==="
	case "!=":
		op = "!=="
	case "..":
		return ctx.Unsupported(n, "range")
	case "/":
		if isIntegral(ctx, valueType(ctx, n.L)) && isIntegral(ctx, valueType(ctx, n.R)) {
			w(ctx, "Math.trunc(")
			if err := m.binary(ctx, n, op); err != nil {
				return err
			}
			w(ctx, ")")
			return nil
		}
	}
	return m.binary(ctx, n, op)
}

func (m *Map) binary(ctx *emit.Context, n *model.Binary, op string) error {
	if err := ctx.Visit(n.L); err != nil {
		return err
	}
	w(ctx, " "+op+" ")
	return ctx.Visit(n.R)
}

func (m *Map) VisitAssignment(ctx *emit.Context, n *model.Assignment) error {
	if ea, ok := n.L.(*model.ElementAccess); ok && n.Op == "=" && len(ea.Args) == 1 && is(ctx, valueType(ctx, ea.X), dictionaryType) {
		if err := wrapped(ctx, ea.X); err != nil {
			return err
		}
		w(ctx, ".set(")
		if err := ctx.Visit(ea.Args[0]); err != nil {
			return err
		}
		w(ctx, ", ")
		if err := ctx.Visit(n.R); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	}
	switch l := n.L.(type) {
	case *model.DeclarationExpr:
		w(ctx, "let ")
		if err := m.destructure(ctx, l); err != nil {
			return err
		}
	case *model.Tuple:
		if err := m.destructure(ctx, l); err != nil {
			return err
		}
	default:
		if err := ctx.Visit(n.L); err != nil {
			return err
		}
	}
	w(ctx, " "+n.Op+" ")
	return ctx.Visit(n.R)
}

func (m *Map) VisitUnary(ctx *emit.Context, n *model.Unary) error {
	if n.Postfix {
		if n.Op == "!" {
			return ctx.Visit(n.X)
		}
		if err := ctx.Visit(n.X); err != nil {
			return err
		}
		w(ctx, n.Op)
		return nil
	}
	switch n.Op {
	case "&", "*":
		return ctx.Unsupported(n, "pointer operator "+n.Op)
	case "^":
		return ctx.Unsupported(n, "index from end")
	}
	w(ctx, n.Op)
	if x, ok := n.X.(*model.Unary); ok && !x.Postfix && x.Op[0] == n.Op[len(n.Op)-1] {
		w(ctx, " ")
	}
	return ctx.Visit(n.X)
}

func (m *Map) VisitConditional(ctx *emit.Context, n *model.Conditional) error {
	if err := ctx.Visit(n.Cond); err != nil {
		return err
	}
	w(ctx, " ? ")
	if err := ctx.Visit(n.Then); err != nil {
		return err
	}
	w(ctx, " : ")
	return ctx.Visit(n.Else)
}

// VisitCast keeps the operand; numeric conversions to integral types
// truncate and char conversions go through char codes.
func (m *Map) VisitCast(ctx *emit.Context, n *model.Cast) error {
	to := typeFullName(ctx, n.Type)
	from := valueType(ctx, n.X)
	switch {
	case integralTypes[to] && is(ctx, from, charType):
		if err := wrapped(ctx, n.X); err != nil {
			return err
		}
		w(ctx, ".charCodeAt(0)")
		return nil
	case integralTypes[to] && !isIntegral(ctx, from) && !isEnum(ctx, from):
		w(ctx, "Math.trunc(")
		if err := ctx.Visit(n.X); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	case to == charType && isIntegral(ctx, from):
		w(ctx, "String.fromCharCode(")
		if err := ctx.Visit(n.X); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	}
	return ctx.Visit(n.X)
}

// typeTest writes a test of subject against a written type.
func (m *Map) typeTest(ctx *emit.Context, subject func() error, tr *model.TypeRef) error {
	kind := ""
	switch fqn := typeFullName(ctx, tr); {
	case fqn == stringType, fqn == charType:
		kind = "string"
	case fqn == boolType:
		kind = "boolean"
	case integralTypes[fqn], floatTypes[fqn]:
		kind = "number"
	case fqn == objectType:
		if err := subject(); err != nil {
			return err
		}
		w(ctx, " != null")
		return nil
	}
	if kind != "" {
		w(ctx, "typeof ")
		if err := subject(); err != nil {
			return err
		}
		w(ctx, ` === "`+kind+`"`)
		return nil
	}
	name, err := typeRefName(ctx, tr)
	if err != nil {
		return err
	}
	if err := subject(); err != nil {
		return err
	}
	w(ctx, " instanceof "+name)
	return nil
}

func (m *Map) VisitTypeTest(ctx *emit.Context, n *model.TypeTest) error {
	subject := func() error { return wrapped(ctx, n.X) }
	if n.Op == "is" {
		return m.typeTest(ctx, subject, n.Type)
	}
	w(ctx, "(")
	if err := m.typeTest(ctx, subject, n.Type); err != nil {
		return err
	}
	w(ctx, " ? ")
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	w(ctx, " : null)")
	return nil
}

func (m *Map) VisitIsPattern(ctx *emit.Context, n *model.IsPattern) error {
	return m.test(ctx, func() error { return wrapped(ctx, n.X) }, n.Pattern)
}

// test writes a boolean expression matching subject against p. Patterns
// that bind variables have no expression form.
func (m *Map) test(ctx *emit.Context, subject func() error, p *model.Pattern) error {
	binary := func(op string) error {
		w(ctx, "(")
		if err := m.test(ctx, subject, p.Left); err != nil {
			return err
		}
		w(ctx, " "+op+" ")
		if err := m.test(ctx, subject, p.Right); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	}
	switch p.Form {
	case model.PatConstant:
		if sym := symOf(ctx, refTarget(p.Value)); sym != nil && sym.Kind.IsType() {
			name, err := typeName(ctx, p, refTarget(p.Value))
			if err != nil {
				return err
			}
			if err := subject(); err != nil {
				return err
			}
			w(ctx, " instanceof "+name)
			return nil
		}
		if err := subject(); err != nil {
			return err
		}
		if lit, ok := p.Value.(*model.Literal); ok && lit.Lit == model.LitNull {
			w(ctx, " == null")
			return nil
		}
		w(ctx, " === ")
		return ctx.Visit(p.Value)
	case model.PatType:
		return m.typeTest(ctx, subject, p.Type)
	case model.PatRelational:
		if err := subject(); err != nil {
			return err
		}
		w(ctx, " "+p.Op+" ")
		return ctx.Visit(p.Value)
	case model.PatDiscard:
		w(ctx, "true")
		return nil
	case model.PatNot:
		w(ctx, "!(")
		if err := m.test(ctx, subject, p.Left); err != nil {
			return err
		}
		w(ctx, ")")
		return nil
	case model.PatAnd:
		return binary("&&")
	case model.PatOr:
		return binary("||")
	case model.PatParen:
		return m.test(ctx, subject, p.Left)
	case model.PatVar:
		if p.Name == "_" {
			w(ctx, "true")
			return nil
		}
	}
	return ctx.Unsupported(p, "declaration pattern")
}

func refTarget(e model.Expr) symbols.SymbolID {
	switch e := e.(type) {
	case *model.Identifier:
		return e.Target
	case *model.MemberAccess:
		return e.Target
	}
	return symbols.NoSymbolID
}

func (m *Map) VisitPattern(ctx *emit.Context, n *model.Pattern) error {
	return ctx.Unsupported(n, "pattern outside a test")
}

func (m *Map) VisitTypeOperator(ctx *emit.Context, n *model.TypeOperator) error {
	switch n.Op {
	case "typeof":
		name, err := typeRefName(ctx, n.Type)
		if err != nil {
			return err
		}
		w(ctx, name)
		return nil
	case "default":
		w(ctx, defaultValue(ctx, n.Type))
		return nil
	}
	return ctx.Unsupported(n, n.Op)
}

func (m *Map) VisitLambda(ctx *emit.Context, n *model.Lambda) error {
	if n.Async {
		w(ctx, "async ")
	}
	if len(n.Params) == 1 && n.Params[0].Default == nil && !n.Params[0].Modifiers.Has(model.FlagParams) {
		if err := ctx.Visit(n.Params[0]); err != nil {
			return err
		}
	} else {
		w(ctx, "(")
		if err := list(ctx, n.Params); err != nil {
			return err
		}
		w(ctx, ")")
	}
	w(ctx, " => ")
	switch body := n.Body.(type) {
	case *model.Block:
		return ctx.Visit(body)
	case *model.ObjectCreation:
		if body.Anonymous {
			w(ctx, "(")
			if err := ctx.Visit(body); err != nil {
				return err
			}
			w(ctx, ")")
			return nil
		}
	}
	return ctx.Visit(n.Body)
}

func (m *Map) VisitAwait(ctx *emit.Context, n *model.Await) error {
	w(ctx, "await ")
	return ctx.Visit(n.X)
}

// VisitThrowExpr renders a throw in expression position as an immediately
// invoked arrow function.
func (m *Map) VisitThrowExpr(ctx *emit.Context, n *model.ThrowExpr) error {
	w(ctx, "(() => { throw ")
	if err := ctx.Visit(n.X); err != nil {
		return err
	}
	w(ctx, "; })()")
	return nil
}

func (m *Map) VisitTuple(ctx *emit.Context, n *model.Tuple) error {
	w(ctx, "[")
	if err := args(ctx, n.Elements); err != nil {
		return err
	}
	w(ctx, "]")
	return nil
}

// switched is the parameter a switch expression binds its value to.
const switched = "$v"

// VisitSwitchExpr renders a chain of conditionals over the value, bound
// once by an arrow function. No matching arm throws.
func (m *Map) VisitSwitchExpr(ctx *emit.Context, n *model.SwitchExpr) error {
	w(ctx, "(("+switched+") => ")
	final := false
	for _, arm := range n.Arms {
		if catchAllArm(arm) {
			if err := ctx.Visit(arm.Value); err != nil {
				return err
			}
			final = true
			break
		}
		if err := ctx.Visit(arm); err != nil {
			return err
		}
	}
	if !final {
		w(ctx, `(() => { throw new Error("no switch arm matched"); })()`)
	}
	w(ctx, ")(")
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	w(ctx, ")")
	return nil
}

func catchAllArm(arm *model.SwitchArm) bool {
	if arm.When != nil || arm.Pattern == nil {
		return false
	}
	return arm.Pattern.Form == model.PatDiscard || (arm.Pattern.Form == model.PatVar && arm.Pattern.Name == "_")
}

// VisitSwitchArm writes `test ? value : ` inside a switch expression.
func (m *Map) VisitSwitchArm(ctx *emit.Context, n *model.SwitchArm) error {
	if _, ok := ctx.Parent().(*model.SwitchExpr); !ok {
		return ctx.Unsupported(n, "switch arm outside a switch expression")
	}
	subject := func() error {
		w(ctx, switched)
		return nil
	}
	if err := m.test(ctx, subject, n.Pattern); err != nil {
		return err
	}
	if n.When != nil {
		w(ctx, " && ")
		if err := wrapped(ctx, n.When); err != nil {
			return err
		}
	}
	w(ctx, " ? ")
	if err := ctx.Visit(n.Value); err != nil {
		return err
	}
	w(ctx, " : ")
	return nil
}

func (m *Map) VisitCheckedExpr(ctx *emit.Context, n *model.CheckedExpr) error {
	return ctx.Visit(n.X)
}

func (m *Map) VisitDeclarationExpr(ctx *emit.Context, n *model.DeclarationExpr) error {
	return ctx.Unsupported(n, "declaration expression")
}

func (m *Map) VisitTypeExpr(ctx *emit.Context, n *model.TypeExpr) error {
	name, err := typeRefName(ctx, n.Type)
	if err != nil {
		return err
	}
	w(ctx, name)
	return nil
}

func (m *Map) VisitTypeRef(ctx *emit.Context, n *model.TypeRef) error {
	name, err := typeRefName(ctx, n)
	if err != nil {
		return err
	}
	w(ctx, name)
	return nil
}
