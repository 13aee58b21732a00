package builder

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

func (b *builder) ebase(n *sitter.Node) model.ExprBase {
	return model.ExprBase{Base: b.base(n)}
}

var literalKinds = map[string]model.LiteralKind{
	"integer_literal":         model.LitInt,
	"real_literal":            model.LitReal,
	"string_literal":          model.LitString,
	"verbatim_string_literal": model.LitVerbatimString,
	"raw_string_literal":      model.LitRawString,
	"character_literal":       model.LitChar,
	"boolean_literal":         model.LitBool,
	"null_literal":            model.LitNull,
}

// expr lowers an expression node.
func (b *builder) expr(n *sitter.Node) (model.Expr, error) {
	if lit, ok := literalKinds[n.Type()]; ok {
		return &model.Literal{ExprBase: b.ebase(n), Lit: lit, Raw: b.text(n)}, nil
	}
	switch n.Type() {
	case "identifier", "discard":
		return &model.Identifier{ExprBase: b.ebase(n), Name: b.text(n)}, nil
	case "generic_name":
		seg, err := b.genericSegment(n)
		if err != nil {
			return nil, err
		}
		return &model.Identifier{ExprBase: b.ebase(n), Name: seg.Name, TypeArgs: seg.Args}, nil
	case "qualified_name":
		return b.qualifiedExpr(n)
	case "alias_qualified_name", "predefined_type", "nullable_type", "array_type", "pointer_type":
		t, err := b.typeRef(n)
		if err != nil {
			return nil, err
		}
		return &model.TypeExpr{ExprBase: b.ebase(n), Type: t}, nil
	case "this_expression", "this":
		return &model.This{ExprBase: b.ebase(n)}, nil
	case "base_expression", "base":
		return &model.BaseExpr{ExprBase: b.ebase(n)}, nil
	case "parenthesized_expression":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		x, err := b.expr(inner[0])
		if err != nil {
			return nil, err
		}
		return &model.Paren{ExprBase: b.ebase(n), X: x}, nil
	case "interpolated_string_expression":
		return b.interpolated(n)
	case "member_access_expression":
		return b.memberAccess(n)
	case "conditional_access_expression":
		return b.conditionalAccess(n)
	case "member_binding_expression":
		return b.memberBinding(n)
	case "element_binding_expression":
		return b.elementBinding(n)
	case "element_access_expression":
		return b.elementAccess(n)
	case "invocation_expression":
		return b.invocation(n)
	case "object_creation_expression", "implicit_object_creation_expression":
		return b.objectCreation(n)
	case "anonymous_object_creation_expression":
		return b.anonymousObject(n)
	case "array_creation_expression", "stack_alloc_array_creation_expression", "stackalloc_expression":
		return b.arrayCreation(n)
	case "implicit_array_creation_expression", "implicit_stack_alloc_array_creation_expression", "implicit_stackalloc_expression":
		return b.implicitArray(n)
	case "initializer_expression":
		return b.initializer(n)
	case "binary_expression", "as_expression", "is_expression":
		return b.binary(n)
	case "assignment_expression":
		return b.assignment(n)
	case "prefix_unary_expression", "postfix_unary_expression", "ref_expression":
		return b.unary(n)
	case "range_expression":
		return b.rangeExpr(n)
	case "conditional_expression":
		return b.conditional(n)
	case "cast_expression":
		return b.cast(n)
	case "is_pattern_expression":
		return b.isPattern(n)
	case "typeof_expression", "sizeof_expression", "default_expression":
		return b.typeOperator(n)
	case "lambda_expression", "anonymous_method_expression":
		return b.lambda(n)
	case "await_expression", "throw_expression":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		x, err := b.expr(inner[0])
		if err != nil {
			return nil, err
		}
		if n.Type() == "await_expression" {
			return &model.Await{ExprBase: b.ebase(n), X: x}, nil
		}
		return &model.ThrowExpr{ExprBase: b.ebase(n), X: x}, nil
	case "tuple_expression":
		return b.tuple(n)
	case "switch_expression":
		return b.switchExpr(n)
	case "checked_expression":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		x, err := b.expr(inner[0])
		if err != nil {
			return nil, err
		}
		return &model.CheckedExpr{ExprBase: b.ebase(n), Unchecked: hasToken(n, "unchecked"), X: x}, nil
	case "declaration_expression":
		return b.declarationExpr(n)
	}
	return nil, b.unhandled(n)
}

// qualifiedExpr turns a dotted name in expression position into a member
// access chain.
func (b *builder) qualifiedExpr(n *sitter.Node) (model.Expr, error) {
	qual := field(n, "qualifier")
	name := field(n, "name")
	if qual == nil || name == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		qual, name = parts[0], parts[1]
	}
	x, err := b.expr(qual)
	if err != nil {
		return nil, err
	}
	ma := &model.MemberAccess{ExprBase: b.ebase(n), X: x}
	if err := b.memberName(name, ma); err != nil {
		return nil, err
	}
	return ma, nil
}

func (b *builder) memberName(n *sitter.Node, ma *model.MemberAccess) error {
	switch n.Type() {
	case "identifier":
		ma.Name = b.text(n)
	case "generic_name":
		seg, err := b.genericSegment(n)
		if err != nil {
			return err
		}
		ma.Name, ma.TypeArgs = seg.Name, seg.Args
	default:
		return b.unhandled(n)
	}
	return nil
}

func (b *builder) memberAccess(n *sitter.Node) (model.Expr, error) {
	recv := field(n, "expression")
	name := field(n, "name")
	if recv == nil || name == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		recv, name = parts[0], parts[1]
	}
	x, err := b.expr(recv)
	if err != nil {
		return nil, err
	}
	ma := &model.MemberAccess{ExprBase: b.ebase(n), X: x, Pointer: hasToken(n, "->")}
	if err := b.memberName(name, ma); err != nil {
		return nil, err
	}
	return ma, nil
}

// conditionalAccess lowers `a?.b...`: the receiver is pushed for the
// binding expression at the head of the rest of the chain.
func (b *builder) conditionalAccess(n *sitter.Node) (model.Expr, error) {
	parts := named(n)
	if len(parts) != 2 {
		return nil, b.unhandled(n)
	}
	recv, err := b.expr(parts[0])
	if err != nil {
		return nil, err
	}
	b.receivers = append(b.receivers, recv)
	top := len(b.receivers) - 1
	rest, err := b.expr(parts[1])
	unbound := b.receivers[top] != nil
	b.receivers = b.receivers[:top]
	if err != nil {
		return nil, err
	}
	if unbound {
		return nil, b.missing(n, "a member binding")
	}
	return rest, nil
}

// receiver takes the pending ?. receiver; a chain owns exactly one binding.
func (b *builder) receiver(n *sitter.Node) (model.Expr, error) {
	top := len(b.receivers) - 1
	if top < 0 || b.receivers[top] == nil {
		return nil, b.unhandled(n)
	}
	x := b.receivers[top]
	b.receivers[top] = nil
	return x, nil
}

func (b *builder) memberBinding(n *sitter.Node) (model.Expr, error) {
	x, err := b.receiver(n)
	if err != nil {
		return nil, err
	}
	name := field(n, "name")
	if name == nil {
		parts := named(n)
		if len(parts) != 1 {
			return nil, b.unhandled(n)
		}
		name = parts[0]
	}
	ma := &model.MemberAccess{ExprBase: b.ebase(n), X: x, Conditional: true}
	ma.Pos = x.Span().Cover(b.span(n))
	if err := b.memberName(name, ma); err != nil {
		return nil, err
	}
	return ma, nil
}

// elementBinding lowers `?[i]` after a ?. receiver. Inside an object
// initializer there is no receiver: `[i] = v` indexes the new object, and
// the access keeps a nil X.
func (b *builder) elementBinding(n *sitter.Node) (model.Expr, error) {
	var (
		x   model.Expr
		err error
	)
	if top := len(b.receivers) - 1; top >= 0 && b.receivers[top] != nil {
		if x, err = b.receiver(n); err != nil {
			return nil, err
		}
	}
	// the arguments sit directly between the brackets
	var args []*model.Argument
	for _, ch := range named(n) {
		if ch.Type() == "bracketed_argument_list" {
			if args, err = b.arguments(ch); err != nil {
				return nil, err
			}
			continue
		}
		a, err := b.argument(ch)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if len(args) == 0 {
		return nil, b.missing(n, "arguments")
	}
	if x == nil {
		return &model.ElementAccess{ExprBase: b.ebase(n), Args: args}, nil
	}
	ea := &model.ElementAccess{ExprBase: b.ebase(n), X: x, Args: args, Conditional: true}
	ea.Pos = x.Span().Cover(b.span(n))
	return ea, nil
}

func (b *builder) elementAccess(n *sitter.Node) (model.Expr, error) {
	recv := field(n, "expression")
	list := field(n, "subscript")
	if recv == nil || list == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		recv, list = parts[0], parts[1]
	}
	x, err := b.expr(recv)
	if err != nil {
		return nil, err
	}
	args, err := b.arguments(list)
	if err != nil {
		return nil, err
	}
	return &model.ElementAccess{ExprBase: b.ebase(n), X: x, Args: args}, nil
}

func (b *builder) invocation(n *sitter.Node) (model.Expr, error) {
	fn := field(n, "function")
	list := field(n, "arguments")
	if fn == nil || list == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		fn, list = parts[0], parts[1]
	}
	f, err := b.expr(fn)
	if err != nil {
		return nil, err
	}
	args, err := b.arguments(list)
	if err != nil {
		return nil, err
	}
	return &model.Invocation{ExprBase: b.ebase(n), Fn: f, Args: args}, nil
}

// arguments lowers argument_list and bracketed_argument_list.
func (b *builder) arguments(n *sitter.Node) ([]*model.Argument, error) {
	if n.Type() != "argument_list" && n.Type() != "bracketed_argument_list" {
		return nil, b.unhandled(n)
	}
	var out []*model.Argument
	for _, ch := range named(n) {
		a, err := b.argument(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (b *builder) argument(n *sitter.Node) (*model.Argument, error) {
	if n.Type() != "argument" {
		v, err := b.expr(n)
		if err != nil {
			return nil, err
		}
		return &model.Argument{Base: b.base(n), Value: v}, nil
	}
	arg := &model.Argument{Base: b.base(n)}
	for _, tok := range []string{"ref", "out", "in"} {
		if hasToken(n, tok) {
			arg.Modifier = tok
		}
	}
	name := field(n, "name")
	if name != nil {
		arg.Name = b.text(name)
	}
	var valueNode *sitter.Node
	for _, p := range named(n) {
		switch {
		case name != nil && p.StartByte() == name.StartByte():
		case p.Type() == "name_colon":
			arg.Name = b.designatorName(p)
		case p.Type() == "name_equals":
			arg.Name = b.designatorName(p)
			arg.NameEquals = true
		default:
			if valueNode != nil {
				return nil, b.unhandled(n)
			}
			valueNode = p
		}
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

func (b *builder) objectCreation(n *sitter.Node) (model.Expr, error) {
	oc := &model.ObjectCreation{ExprBase: b.ebase(n)}
	for _, p := range named(n) {
		var err error
		switch p.Type() {
		case "argument_list":
			oc.HasArgs = true
			oc.Args, err = b.arguments(p)
		case "initializer_expression":
			oc.Init, err = b.initializer(p)
		default:
			if !isType(p) || oc.Type != nil {
				return nil, b.unhandled(p)
			}
			oc.Type, err = b.typeRef(p)
		}
		if err != nil {
			return nil, err
		}
	}
	if oc.Type == nil && !oc.HasArgs {
		return nil, b.missing(n, "a type or arguments")
	}
	return oc, nil
}

// anonymousObject lowers `new { A = x, y }`; named members become
// assignments in the initializer. A member name is the node directly
// followed by an '=' token.
func (b *builder) anonymousObject(n *sitter.Node) (model.Expr, error) {
	oc := &model.ObjectCreation{ExprBase: b.ebase(n), Anonymous: true}
	init := &model.InitializerList{ExprBase: b.ebase(n)}
	parts := all(n)
	var pendingName *sitter.Node
	for i, p := range parts {
		if !p.IsNamed() && !isSelfKeyword(p) {
			continue
		}
		if p.Type() == "name_equals" {
			pendingName = p
			continue
		}
		if p.Type() == "identifier" && i+1 < len(parts) && parts[i+1].Type() == "=" {
			pendingName = p
			continue
		}
		v, err := b.expr(p)
		if err != nil {
			return nil, err
		}
		if pendingName != nil {
			id := &model.Identifier{ExprBase: b.ebase(pendingName), Name: b.designatorName(pendingName)}
			as := &model.Assignment{ExprBase: b.ebase(pendingName), Op: "=", L: id, R: v}
			as.Pos = b.span(pendingName).Cover(v.Span())
			v = as
			pendingName = nil
		}
		init.Elements = append(init.Elements, v)
	}
	if pendingName != nil {
		return nil, b.missing(n, "a member value")
	}
	oc.Init = init
	return oc, nil
}

func (b *builder) arrayCreation(n *sitter.Node) (model.Expr, error) {
	ac := &model.ArrayCreation{ExprBase: b.ebase(n), Stackalloc: hasToken(n, "stackalloc")}
	for _, p := range named(n) {
		switch p.Type() {
		case "array_type":
			t, sizes, err := b.arrayType(p)
			if err != nil {
				return nil, err
			}
			ac.Type, ac.Sizes, ac.Rank = t, sizes, t.Rank
		case "initializer_expression":
			init, err := b.initializer(p)
			if err != nil {
				return nil, err
			}
			ac.Init = init
		default:
			return nil, b.unhandled(p)
		}
	}
	if ac.Type == nil {
		return nil, b.missing(n, "an array type")
	}
	return ac, nil
}

func (b *builder) implicitArray(n *sitter.Node) (model.Expr, error) {
	ac := &model.ArrayCreation{
		ExprBase:   b.ebase(n),
		Implicit:   true,
		Stackalloc: hasToken(n, "stackalloc"),
		Rank:       countToken(n, ",") + 1,
	}
	for _, p := range named(n) {
		if p.Type() != "initializer_expression" {
			return nil, b.unhandled(p)
		}
		init, err := b.initializer(p)
		if err != nil {
			return nil, err
		}
		ac.Init = init
	}
	if ac.Init == nil {
		return nil, b.missing(n, "an initializer")
	}
	return ac, nil
}

func (b *builder) initializer(n *sitter.Node) (*model.InitializerList, error) {
	if n.Type() != "initializer_expression" {
		return nil, b.unhandled(n)
	}
	init := &model.InitializerList{ExprBase: b.ebase(n)}
	for _, p := range named(n) {
		e, err := b.expr(p)
		if err != nil {
			return nil, err
		}
		init.Elements = append(init.Elements, e)
	}
	return init, nil
}

// operands returns left, operator text and right of a binary-shaped node.
func (b *builder) operands(n *sitter.Node, opKinds ...string) (l *sitter.Node, op string, r *sitter.Node, err error) {
	l = field(n, "left")
	r = field(n, "right")
	if o := field(n, "operator"); o != nil {
		op = b.text(o)
	}
	var parts []*sitter.Node
	for _, ch := range all(n) {
		switch {
		case ch.IsNamed() && oneOf(ch.Type(), opKinds...):
			if op == "" {
				op = b.text(ch)
			}
		case ch.IsNamed():
			parts = append(parts, ch)
		case op == "" && len(parts) == 1:
			op = ch.Type()
		}
	}
	if l == nil || r == nil {
		if len(parts) != 2 {
			return nil, "", nil, b.unhandled(n)
		}
		l, r = parts[0], parts[1]
	}
	if op == "" {
		return nil, "", nil, b.missing(n, "an operator")
	}
	return l, strings.TrimSpace(op), r, nil
}

func (b *builder) binary(n *sitter.Node) (model.Expr, error) {
	ln, op, rn, err := b.operands(n)
	if err != nil {
		return nil, err
	}
	l, err := b.expr(ln)
	if err != nil {
		return nil, err
	}
	if op == "is" || op == "as" {
		t, err := b.typeRef(rn)
		if err != nil {
			return nil, err
		}
		return &model.TypeTest{ExprBase: b.ebase(n), Op: op, X: l, Type: t}, nil
	}
	r, err := b.expr(rn)
	if err != nil {
		return nil, err
	}
	return &model.Binary{ExprBase: b.ebase(n), Op: op, L: l, R: r}, nil
}

func (b *builder) assignment(n *sitter.Node) (model.Expr, error) {
	ln, op, rn, err := b.operands(n, "assignment_operator")
	if err != nil {
		return nil, err
	}
	l, err := b.expr(ln)
	if err != nil {
		return nil, err
	}
	r, err := b.expr(rn)
	if err != nil {
		return nil, err
	}
	return &model.Assignment{ExprBase: b.ebase(n), Op: op, L: l, R: r}, nil
}

func (b *builder) unary(n *sitter.Node) (model.Expr, error) {
	u := &model.Unary{ExprBase: b.ebase(n), Postfix: n.Type() == "postfix_unary_expression"}
	var operand *sitter.Node
	for _, ch := range all(n) {
		switch {
		case ch.IsNamed() || isSelfKeyword(ch):
			if operand != nil {
				return nil, b.unhandled(n)
			}
			operand = ch
		case u.Op == "":
			u.Op = ch.Type()
		}
	}
	if operand == nil || u.Op == "" {
		return nil, b.missing(n, "an operand and operator")
	}
	x, err := b.expr(operand)
	if err != nil {
		return nil, err
	}
	u.X = x
	return u, nil
}

// rangeExpr lowers `a..b`, either side optional, as a binary "..".
func (b *builder) rangeExpr(n *sitter.Node) (model.Expr, error) {
	bin := &model.Binary{ExprBase: b.ebase(n), Op: ".."}
	seenDots := false
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			if ch.Type() == ".." {
				seenDots = true
			}
			continue
		}
		x, err := b.expr(ch)
		if err != nil {
			return nil, err
		}
		if seenDots {
			bin.R = x
		} else {
			bin.L = x
		}
	}
	return bin, nil
}

func (b *builder) conditional(n *sitter.Node) (model.Expr, error) {
	cond := field(n, "condition")
	then := field(n, "consequence")
	alt := field(n, "alternative")
	if cond == nil || then == nil || alt == nil {
		parts := named(n)
		if len(parts) != 3 {
			return nil, b.unhandled(n)
		}
		cond, then, alt = parts[0], parts[1], parts[2]
	}
	c := &model.Conditional{ExprBase: b.ebase(n)}
	var err error
	if c.Cond, err = b.expr(cond); err != nil {
		return nil, err
	}
	if c.Then, err = b.expr(then); err != nil {
		return nil, err
	}
	if c.Else, err = b.expr(alt); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *builder) cast(n *sitter.Node) (model.Expr, error) {
	typ := field(n, "type")
	val := field(n, "value")
	if typ == nil || val == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		typ, val = parts[0], parts[1]
	}
	t, err := b.typeRef(typ)
	if err != nil {
		return nil, err
	}
	x, err := b.expr(val)
	if err != nil {
		return nil, err
	}
	return &model.Cast{ExprBase: b.ebase(n), Type: t, X: x}, nil
}

func (b *builder) isPattern(n *sitter.Node) (model.Expr, error) {
	x := field(n, "expression")
	pat := field(n, "pattern")
	if x == nil || pat == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		x, pat = parts[0], parts[1]
	}
	left, err := b.expr(x)
	if err != nil {
		return nil, err
	}
	p, err := b.pattern(pat)
	if err != nil {
		return nil, err
	}
	return &model.IsPattern{ExprBase: b.ebase(n), X: left, Pattern: p}, nil
}

func (b *builder) typeOperator(n *sitter.Node) (model.Expr, error) {
	op := strings.TrimSuffix(n.Type(), "_expression")
	inner := named(n)
	if len(inner) == 0 && op == "default" {
		return &model.Literal{ExprBase: b.ebase(n), Lit: model.LitDefault, Raw: "default"}, nil
	}
	if len(inner) != 1 {
		return nil, b.unhandled(n)
	}
	t, err := b.typeRef(inner[0])
	if err != nil {
		return nil, err
	}
	return &model.TypeOperator{ExprBase: b.ebase(n), Op: op, Type: t}, nil
}

// lambda lowers lambdas and anonymous methods; everything before `=>` is
// the head.
func (b *builder) lambda(n *sitter.Node) (model.Expr, error) {
	lm := &model.Lambda{
		ExprBase: b.ebase(n),
		Async:    hasToken(n, "async"),
		Static:   hasToken(n, "static"),
		Delegate: n.Type() == "anonymous_method_expression",
	}
	var head []*sitter.Node
	var bodyNode *sitter.Node
	arrow := false
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			if ch.Type() == "=>" {
				arrow = true
			}
			continue
		}
		if oneOf(ch.Type(), "modifier", "attribute_list") {
			if ch.Type() == "modifier" && !lambdaModifier(lm, b.text(ch)) {
				return nil, b.unhandled(ch)
			}
			continue
		}
		if arrow || (lm.Delegate && ch.Type() == "block") {
			bodyNode = ch
			continue
		}
		head = append(head, ch)
	}
	if bodyNode == nil {
		return nil, b.missing(n, "a body")
	}
	for _, h := range head {
		var err error
		switch h.Type() {
		case "parameter_list", "implicit_parameter_list":
			lm.Parens = true
			lm.Params, err = b.params(h)
		case "identifier", "implicit_parameter":
			lm.Params = []*model.Parameter{{Base: b.base(h), Name: b.text(h)}}
		default:
			if !isType(h) || lm.Return != nil {
				return nil, b.unhandled(h)
			}
			lm.Return, err = b.typeRef(h)
		}
		if err != nil {
			return nil, err
		}
	}
	if bodyNode.Type() == "block" {
		blk, err := b.block(bodyNode)
		if err != nil {
			return nil, err
		}
		lm.Body = blk
		return lm, nil
	}
	x, err := b.expr(bodyNode)
	if err != nil {
		return nil, err
	}
	lm.Body = x
	return lm, nil
}

func lambdaModifier(lm *model.Lambda, word string) bool {
	switch word {
	case "async":
		lm.Async = true
	case "static":
		lm.Static = true
	default:
		return false
	}
	return true
}

func (b *builder) tuple(n *sitter.Node) (model.Expr, error) {
	t := &model.Tuple{ExprBase: b.ebase(n)}
	for _, ch := range named(n) {
		a, err := b.argument(ch)
		if err != nil {
			return nil, err
		}
		t.Elements = append(t.Elements, a)
	}
	if len(t.Elements) < 2 {
		return nil, b.unhandled(n)
	}
	return t, nil
}

func (b *builder) switchExpr(n *sitter.Node) (model.Expr, error) {
	sw := &model.SwitchExpr{ExprBase: b.ebase(n)}
	for _, ch := range named(n) {
		if ch.Type() == "switch_expression_arm" {
			arm, err := b.switchArm(ch)
			if err != nil {
				return nil, err
			}
			sw.Arms = append(sw.Arms, arm)
			continue
		}
		if sw.Value != nil {
			return nil, b.unhandled(ch)
		}
		v, err := b.expr(ch)
		if err != nil {
			return nil, err
		}
		sw.Value = v
	}
	if sw.Value == nil {
		return nil, b.missing(n, "a value")
	}
	return sw, nil
}

func (b *builder) switchArm(n *sitter.Node) (*model.SwitchArm, error) {
	arm := &model.SwitchArm{Base: b.base(n)}
	var parts []*sitter.Node
	for _, ch := range named(n) {
		if ch.Type() == "when_clause" {
			w, err := b.whenClause(ch)
			if err != nil {
				return nil, err
			}
			arm.When = w
			continue
		}
		parts = append(parts, ch)
	}
	if len(parts) != 2 {
		return nil, b.missing(n, "a pattern and value")
	}
	var err error
	if arm.Pattern, err = b.pattern(parts[0]); err != nil {
		return nil, err
	}
	if arm.Value, err = b.expr(parts[1]); err != nil {
		return nil, err
	}
	return arm, nil
}

// declarationExpr lowers `T x` and `var (a, b)` in argument and
// deconstruction positions.
func (b *builder) declarationExpr(n *sitter.Node) (model.Expr, error) {
	typ := field(n, "type")
	name := field(n, "name")
	if typ == nil || name == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.unhandled(n)
		}
		typ, name = parts[0], parts[1]
	}
	t, err := b.typeRef(typ)
	if err != nil {
		return nil, err
	}
	d := &model.DeclarationExpr{ExprBase: b.ebase(n), Type: t}
	if d.Vars, d.Parenthesized, err = b.designation(name); err != nil {
		return nil, err
	}
	return d, nil
}

// designation flattens a variable designation into its declared names.
func (b *builder) designation(n *sitter.Node) ([]*model.Variable, bool, error) {
	switch n.Type() {
	case "identifier", "discard":
		return []*model.Variable{{Base: b.base(n), Name: b.text(n)}}, false, nil
	case "parenthesized_variable_designation", "tuple_pattern":
		var vars []*model.Variable
		for _, ch := range named(n) {
			if !oneOf(ch.Type(), "identifier", "discard") {
				return nil, false, b.unhandled(ch)
			}
			vars = append(vars, &model.Variable{Base: b.base(ch), Name: b.text(ch)})
		}
		return vars, true, nil
	}
	return nil, false, b.unhandled(n)
}
