package builder

import (
	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

// block lowers a braced statement list. Comments inside the block become
// trivia of the statement that follows them.
func (b *builder) block(n *sitter.Node) (*model.Block, error) {
	if n.Type() != "block" {
		return nil, b.unhandled(n)
	}
	blk := &model.Block{StmtBase: model.StmtBase{Base: b.base(n)}}
	list, err := b.stmtList(n)
	if err != nil {
		return nil, err
	}
	blk.Statements = list
	return blk, nil
}

// stmtList lowers the named children of n as statements.
func (b *builder) stmtList(n *sitter.Node) ([]model.Stmt, error) {
	var out []model.Stmt
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
		st, err := b.stmt(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	b.drop()
	return out, nil
}

// stmt lowers one statement and hands it the pending comments.
func (b *builder) stmt(n *sitter.Node) (model.Stmt, error) {
	lead := b.trivia()
	st, err := b.statement(n)
	if err != nil {
		return nil, err
	}
	if len(lead) > 0 {
		st.SetTrivia(append(lead, st.Trivia()...))
	}
	return st, nil
}

func (b *builder) sbase(n *sitter.Node) model.StmtBase {
	return model.StmtBase{Base: b.base(n)}
}

func (b *builder) statement(n *sitter.Node) (model.Stmt, error) {
	switch n.Type() {
	case "block":
		return b.block(n)
	case "local_declaration_statement":
		if d := deconstruction(n); d != nil {
			return b.deconstruct(n, d)
		}
		return b.localDecl(n)
	case "expression_statement":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		x, err := b.expr(inner[0])
		if err != nil {
			return nil, err
		}
		return &model.ExprStmt{StmtBase: b.sbase(n), X: x}, nil
	case "return_statement":
		v, err := b.optExpr(n)
		if err != nil {
			return nil, err
		}
		return &model.Return{StmtBase: b.sbase(n), Value: v}, nil
	case "throw_statement":
		v, err := b.optExpr(n)
		if err != nil {
			return nil, err
		}
		return &model.Throw{StmtBase: b.sbase(n), Value: v}, nil
	case "break_statement":
		return &model.Break{StmtBase: b.sbase(n)}, nil
	case "continue_statement":
		return &model.Continue{StmtBase: b.sbase(n)}, nil
	case "empty_statement":
		return &model.Empty{StmtBase: b.sbase(n)}, nil
	case "if_statement":
		return b.ifStmt(n)
	case "while_statement":
		return b.whileStmt(n)
	case "do_statement":
		return b.doStmt(n)
	case "for_statement":
		return b.forStmt(n)
	case "for_each_statement", "foreach_statement":
		return b.foreachStmt(n)
	case "switch_statement":
		return b.switchStmt(n)
	case "try_statement":
		return b.tryStmt(n)
	case "using_statement":
		return b.usingStmt(n)
	case "lock_statement":
		x, body, err := b.headAndBody(n)
		if err != nil {
			return nil, err
		}
		return &model.Lock{StmtBase: b.sbase(n), Value: x, Body: body}, nil
	case "yield_statement":
		v, err := b.optExpr(n)
		if err != nil {
			return nil, err
		}
		return &model.Yield{StmtBase: b.sbase(n), Break: hasToken(n, "break"), Value: v}, nil
	case "goto_statement":
		return b.gotoStmt(n)
	case "labeled_statement":
		return b.labeled(n)
	case "checked_statement":
		blk, err := b.onlyBlock(n)
		if err != nil {
			return nil, err
		}
		return &model.CheckedStmt{StmtBase: b.sbase(n), Unchecked: hasToken(n, "unchecked"), Body: blk}, nil
	case "unsafe_statement":
		blk, err := b.onlyBlock(n)
		if err != nil {
			return nil, err
		}
		return &model.UnsafeStmt{StmtBase: b.sbase(n), Body: blk}, nil
	case "fixed_statement":
		decl := childOf(n, "variable_declaration")
		if decl == nil {
			return nil, b.missing(n, "a declaration")
		}
		typ, vars, err := b.variableDeclaration(decl)
		if err != nil {
			return nil, err
		}
		body, err := b.lastStmt(n)
		if err != nil {
			return nil, err
		}
		ld := &model.LocalDecl{StmtBase: b.sbase(decl), Type: typ, Vars: vars}
		return &model.Fixed{StmtBase: b.sbase(n), Decl: ld, Body: body}, nil
	case "local_function_statement":
		return b.localFunction(n)
	}
	return nil, b.unhandled(n)
}

// optExpr lowers the single optional expression child of n.
func (b *builder) optExpr(n *sitter.Node) (model.Expr, error) {
	inner := named(n)
	switch len(inner) {
	case 0:
		return nil, nil
	case 1:
		return b.expr(inner[0])
	}
	return nil, b.unhandled(n)
}

// onlyBlock returns the block child of checked and unsafe statements.
func (b *builder) onlyBlock(n *sitter.Node) (*model.Block, error) {
	blk := childOf(n, "block")
	if blk == nil {
		return nil, b.missing(n, "a block")
	}
	return b.block(blk)
}

// lastStmt lowers the embedded statement that closes a `kw (...) stmt`
// construct.
func (b *builder) lastStmt(n *sitter.Node) (model.Stmt, error) {
	if body := field(n, "body"); body != nil {
		return b.stmt(body)
	}
	var last *sitter.Node
	seenClose := false
	for _, ch := range all(n) {
		if !ch.IsNamed() && ch.Type() == ")" {
			seenClose = true
			continue
		}
		if seenClose && ch.IsNamed() {
			last = ch
		}
	}
	if last == nil {
		return nil, b.missing(n, "a body")
	}
	return b.stmt(last)
}

// parenthesized returns the named children between the first '(' and the
// matching direct ')'.
func parenthesized(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	open := false
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			switch ch.Type() {
			case "(":
				open = true
			case ")":
				return out
			}
			continue
		}
		if open {
			out = append(out, ch)
		}
	}
	return out
}

// headAndBody lowers `kw (expr) stmt`.
func (b *builder) headAndBody(n *sitter.Node) (model.Expr, model.Stmt, error) {
	head := parenthesized(n)
	if len(head) != 1 {
		return nil, nil, b.missing(n, "a parenthesized expression")
	}
	x, err := b.expr(head[0])
	if err != nil {
		return nil, nil, err
	}
	body, err := b.lastStmt(n)
	if err != nil {
		return nil, nil, err
	}
	return x, body, nil
}

func (b *builder) localDecl(n *sitter.Node) (*model.LocalDecl, error) {
	ld := &model.LocalDecl{StmtBase: b.sbase(n)}
	var err error
	if ld.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	ld.Using = hasToken(n, "using")
	ld.Await = hasToken(n, "await")
	decl := childOf(n, "variable_declaration")
	if decl == nil {
		return nil, b.missing(n, "a declaration")
	}
	if ld.Type, ld.Vars, err = b.variableDeclaration(decl); err != nil {
		return nil, err
	}
	return ld, nil
}

// deconstruction returns the declarator of `var (a, b) = x;`, which the
// grammar shapes as a local declaration whose only declarator starts with a
// tuple pattern.
func deconstruction(n *sitter.Node) *sitter.Node {
	decl := childOf(n, "variable_declaration")
	if decl == nil {
		return nil
	}
	ds := childrenOf(decl, "variable_declarator")
	if len(ds) != 1 {
		return nil
	}
	if parts := named(ds[0]); len(parts) == 2 && parts[0].Type() == "tuple_pattern" {
		return ds[0]
	}
	return nil
}

// deconstruct lowers `var (a, b) = x;` to the equivalent deconstructing
// assignment statement.
func (b *builder) deconstruct(n, declarator *sitter.Node) (model.Stmt, error) {
	decl := childOf(n, "variable_declaration")
	typ := field(decl, "type")
	if typ == nil {
		return nil, b.missing(decl, "a type")
	}
	t, err := b.typeRef(typ)
	if err != nil {
		return nil, err
	}
	parts := named(declarator)
	target := &model.DeclarationExpr{ExprBase: b.ebase(parts[0]), Type: t}
	if target.Vars, target.Parenthesized, err = b.designation(parts[0]); err != nil {
		return nil, err
	}
	target.Pos = b.span(typ).Cover(b.span(parts[0]))
	value, err := b.expr(parts[1])
	if err != nil {
		return nil, err
	}
	as := &model.Assignment{ExprBase: b.ebase(decl), Op: "=", L: target, R: value}
	return &model.ExprStmt{StmtBase: b.sbase(n), X: as}, nil
}

func (b *builder) ifStmt(n *sitter.Node) (*model.If, error) {
	st := &model.If{StmtBase: b.sbase(n)}
	cond := field(n, "condition")
	then := field(n, "consequence")
	alt := field(n, "alternative")
	if cond == nil || then == nil {
		parts := named(n)
		if len(parts) < 2 {
			return nil, b.missing(n, "a condition and body")
		}
		cond, then = parts[0], parts[1]
		if len(parts) > 2 {
			alt = parts[2]
		}
	}
	var err error
	if st.Cond, err = b.expr(cond); err != nil {
		return nil, err
	}
	if st.Then, err = b.stmt(then); err != nil {
		return nil, err
	}
	if alt != nil {
		if alt.Type() == "else_clause" {
			inner := named(alt)
			if len(inner) != 1 {
				return nil, b.unhandled(alt)
			}
			alt = inner[0]
		}
		if st.Else, err = b.stmt(alt); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (b *builder) whileStmt(n *sitter.Node) (*model.While, error) {
	x, body, err := b.headAndBody(n)
	if err != nil {
		return nil, err
	}
	return &model.While{StmtBase: b.sbase(n), Cond: x, Body: body}, nil
}

func (b *builder) doStmt(n *sitter.Node) (*model.Do, error) {
	body := field(n, "body")
	cond := field(n, "condition")
	if body == nil || cond == nil {
		parts := named(n)
		if len(parts) != 2 {
			return nil, b.missing(n, "a body and condition")
		}
		body, cond = parts[0], parts[1]
	}
	st := &model.Do{StmtBase: b.sbase(n)}
	var err error
	if st.Body, err = b.stmt(body); err != nil {
		return nil, err
	}
	if st.Cond, err = b.expr(cond); err != nil {
		return nil, err
	}
	return st, nil
}

// forStmt splits the header on its direct ';' tokens.
func (b *builder) forStmt(n *sitter.Node) (*model.For, error) {
	st := &model.For{StmtBase: b.sbase(n)}
	section := -1
	var bodyNode *sitter.Node
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			switch ch.Type() {
			case "(":
				if section < 0 {
					section = 0
				}
			case ";":
				section++
			case ")":
				section = 3
			}
			continue
		}
		var err error
		switch section {
		case 0:
			if ch.Type() == "variable_declaration" {
				typ, vars, derr := b.variableDeclaration(ch)
				if derr != nil {
					return nil, derr
				}
				st.Decl = &model.LocalDecl{StmtBase: b.sbase(ch), Type: typ, Vars: vars}
				continue
			}
			var x model.Expr
			if x, err = b.expr(ch); err == nil {
				st.Init = append(st.Init, x)
			}
		case 1:
			st.Cond, err = b.expr(ch)
		case 2:
			var x model.Expr
			if x, err = b.expr(ch); err == nil {
				st.Update = append(st.Update, x)
			}
		case 3:
			bodyNode = ch
		default:
			return nil, b.unhandled(ch)
		}
		if err != nil {
			return nil, err
		}
	}
	if bodyNode == nil {
		return nil, b.missing(n, "a body")
	}
	body, err := b.stmt(bodyNode)
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

// foreachStmt reads `foreach (T x in xs) body` and the deconstructing
// forms by position around the `in` token.
func (b *builder) foreachStmt(n *sitter.Node) (*model.Foreach, error) {
	st := &model.Foreach{StmtBase: b.sbase(n), Await: hasToken(n, "await")}
	var head, coll []*sitter.Node
	var bodyNode *sitter.Node
	phase := 0
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			switch ch.Type() {
			case "(":
				if phase == 0 {
					phase = 1
				}
			case "in":
				phase = 2
			case ")":
				if phase == 2 {
					phase = 3
				}
			}
			continue
		}
		switch phase {
		case 1:
			head = append(head, ch)
		case 2:
			coll = append(coll, ch)
		case 3:
			bodyNode = ch
		}
	}
	if len(coll) != 1 || bodyNode == nil || len(head) == 0 {
		return nil, b.missing(n, "a variable, collection and body")
	}
	switch {
	case len(head) == 2 && head[1].Type() == "identifier":
		typ, err := b.typeRef(head[0])
		if err != nil {
			return nil, err
		}
		st.Type = typ
		st.Var = &model.Variable{Base: b.base(head[1]), Name: b.text(head[1])}
	case len(head) == 2 && oneOf(head[1].Type(), "tuple_pattern", "parenthesized_variable_designation"):
		typ, err := b.typeRef(head[0])
		if err != nil {
			return nil, err
		}
		target := &model.DeclarationExpr{ExprBase: b.ebase(head[1]), Type: typ}
		if target.Vars, target.Parenthesized, err = b.designation(head[1]); err != nil {
			return nil, err
		}
		target.Pos = b.span(head[0]).Cover(b.span(head[1]))
		st.Target = target
	case len(head) == 1:
		target, err := b.expr(head[0])
		if err != nil {
			return nil, err
		}
		st.Target = target
	default:
		return nil, b.unhandled(n)
	}
	var err error
	if st.Collection, err = b.expr(coll[0]); err != nil {
		return nil, err
	}
	if st.Body, err = b.stmt(bodyNode); err != nil {
		return nil, err
	}
	return st, nil
}

func (b *builder) switchStmt(n *sitter.Node) (*model.Switch, error) {
	st := &model.Switch{StmtBase: b.sbase(n)}
	body := field(n, "body")
	if body == nil {
		body = childOf(n, "switch_body")
	}
	if body == nil {
		return nil, b.missing(n, "a body")
	}
	value := field(n, "value")
	if value == nil {
		if head := parenthesized(n); len(head) == 1 {
			value = head[0]
		} else if tup := childOf(n, "tuple_expression"); tup != nil {
			value = tup
		}
	}
	if value == nil {
		return nil, b.missing(n, "a value")
	}
	var err error
	if st.Value, err = b.expr(value); err != nil {
		return nil, err
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		ch := body.NamedChild(i)
		if ch == nil || isPreproc(ch) {
			continue
		}
		if isComment(ch) {
			b.comment(ch)
			continue
		}
		if ch.Type() != "switch_section" {
			return nil, b.unhandled(ch)
		}
		sec, err := b.switchSection(ch)
		if err != nil {
			return nil, err
		}
		// stacked labels parse as sections without statements
		if last := len(st.Sections) - 1; last >= 0 && len(st.Sections[last].Statements) == 0 {
			prev := st.Sections[last]
			sec.Labels = append(prev.Labels, sec.Labels...)
			sec.Leading = append(prev.Leading, sec.Leading...)
			sec.Pos = prev.Pos.Cover(sec.Pos)
			st.Sections[last] = sec
			continue
		}
		st.Sections = append(st.Sections, sec)
	}
	b.drop()
	return st, nil
}

// switchSection accepts labels as label nodes or as inline `case ... :`
// token runs.
func (b *builder) switchSection(n *sitter.Node) (*model.SwitchSection, error) {
	sec := &model.SwitchSection{Base: b.base(n)}
	sec.Leading = b.trivia()
	var label *model.SwitchLabel
	var labelParts []*sitter.Node
	flush := func() error {
		if label == nil {
			return nil
		}
		if err := b.fillLabel(label, n, labelParts); err != nil {
			return err
		}
		sec.Labels = append(sec.Labels, *label)
		label, labelParts = nil, nil
		return nil
	}
	count := int(n.ChildCount())
	for i := range count {
		ch := n.Child(i)
		if ch == nil || isPreproc(ch) {
			continue
		}
		if isComment(ch) {
			b.comment(ch)
			continue
		}
		if !ch.IsNamed() {
			switch ch.Type() {
			case "case":
				label = &model.SwitchLabel{}
			case "default":
				label = &model.SwitchLabel{Default: true}
			case ":":
				if err := flush(); err != nil {
					return nil, err
				}
			}
			continue
		}
		if label != nil {
			labelParts = append(labelParts, ch)
			continue
		}
		switch ch.Type() {
		case "case_switch_label", "case_pattern_switch_label":
			l := model.SwitchLabel{}
			if err := b.fillLabel(&l, ch, named(ch)); err != nil {
				return nil, err
			}
			sec.Labels = append(sec.Labels, l)
		case "default_switch_label":
			sec.Labels = append(sec.Labels, model.SwitchLabel{Default: true})
		default:
			st, err := b.stmt(ch)
			if err != nil {
				return nil, err
			}
			sec.Statements = append(sec.Statements, st)
		}
	}
	if label != nil {
		return nil, b.missing(n, "a label terminator")
	}
	b.drop()
	return sec, nil
}

func (b *builder) fillLabel(l *model.SwitchLabel, at *sitter.Node, parts []*sitter.Node) error {
	if l.Default {
		return nil
	}
	for _, p := range parts {
		if p.Type() == "when_clause" {
			w, err := b.whenClause(p)
			if err != nil {
				return err
			}
			l.When = w
			continue
		}
		if l.Value != nil || l.Pattern != nil {
			return b.unhandled(p)
		}
		if isPattern(p) {
			pat, err := b.pattern(p)
			if err != nil {
				return err
			}
			if pat.Form == model.PatConstant {
				l.Value = pat.Value
			} else {
				l.Pattern = pat
			}
			continue
		}
		v, err := b.expr(p)
		if err != nil {
			return err
		}
		l.Value = v
	}
	if l.Value == nil && l.Pattern == nil {
		return b.missing(at, "a case value")
	}
	return nil
}

func (b *builder) whenClause(n *sitter.Node) (model.Expr, error) {
	inner := named(n)
	if len(inner) != 1 {
		return nil, b.unhandled(n)
	}
	return b.expr(inner[0])
}

func (b *builder) tryStmt(n *sitter.Node) (*model.Try, error) {
	st := &model.Try{StmtBase: b.sbase(n)}
	for _, ch := range named(n) {
		switch ch.Type() {
		case "block":
			blk, err := b.block(ch)
			if err != nil {
				return nil, err
			}
			st.Body = blk
		case "catch_clause":
			c, err := b.catchClause(ch)
			if err != nil {
				return nil, err
			}
			st.Catches = append(st.Catches, c)
		case "finally_clause":
			blk, err := b.onlyBlock(ch)
			if err != nil {
				return nil, err
			}
			st.Finally = blk
		default:
			return nil, b.unhandled(ch)
		}
	}
	if st.Body == nil || (len(st.Catches) == 0 && st.Finally == nil) {
		return nil, b.missing(n, "a body and handler")
	}
	return st, nil
}

func (b *builder) catchClause(n *sitter.Node) (*model.CatchClause, error) {
	c := &model.CatchClause{Base: b.base(n)}
	for _, ch := range named(n) {
		switch ch.Type() {
		case "catch_declaration":
			parts := named(ch)
			if len(parts) == 0 {
				return nil, b.missing(ch, "a type")
			}
			t, err := b.typeRef(parts[0])
			if err != nil {
				return nil, err
			}
			c.Type = t
			if len(parts) > 1 {
				c.Name = b.text(parts[1])
			}
		case "catch_filter_clause":
			f, err := b.whenClause(ch)
			if err != nil {
				return nil, err
			}
			c.Filter = f
		case "block":
			blk, err := b.block(ch)
			if err != nil {
				return nil, err
			}
			c.Body = blk
		default:
			return nil, b.unhandled(ch)
		}
	}
	if c.Body == nil {
		return nil, b.missing(n, "a body")
	}
	return c, nil
}

func (b *builder) usingStmt(n *sitter.Node) (*model.UsingStmt, error) {
	st := &model.UsingStmt{StmtBase: b.sbase(n), Await: hasToken(n, "await")}
	head := parenthesized(n)
	if len(head) != 1 {
		return nil, b.missing(n, "a resource")
	}
	if head[0].Type() == "variable_declaration" {
		typ, vars, err := b.variableDeclaration(head[0])
		if err != nil {
			return nil, err
		}
		st.Decl = &model.LocalDecl{StmtBase: b.sbase(head[0]), Type: typ, Vars: vars}
	} else {
		v, err := b.expr(head[0])
		if err != nil {
			return nil, err
		}
		st.Value = v
	}
	body, err := b.lastStmt(n)
	if err != nil {
		return nil, err
	}
	st.Body = body
	return st, nil
}

func (b *builder) gotoStmt(n *sitter.Node) (*model.Goto, error) {
	st := &model.Goto{StmtBase: b.sbase(n), Default: hasToken(n, "default")}
	inner := named(n)
	switch {
	case st.Default:
	case hasToken(n, "case"):
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		v, err := b.expr(inner[0])
		if err != nil {
			return nil, err
		}
		st.Case = v
	case len(inner) == 1 && inner[0].Type() == "identifier":
		st.Label = b.text(inner[0])
	default:
		return nil, b.unhandled(n)
	}
	return st, nil
}

func (b *builder) labeled(n *sitter.Node) (*model.Labeled, error) {
	parts := named(n)
	if len(parts) != 2 || parts[0].Type() != "identifier" {
		return nil, b.unhandled(n)
	}
	body, err := b.stmt(parts[1])
	if err != nil {
		return nil, err
	}
	return &model.Labeled{StmtBase: b.sbase(n), Label: b.text(parts[0]), Body: body}, nil
}

func (b *builder) localFunction(n *sitter.Node) (*model.LocalFunction, error) {
	f := &model.LocalFunction{StmtBase: b.sbase(n)}
	var err error
	if f.Attributes, err = b.attributeLists(n); err != nil {
		return nil, err
	}
	if f.Modifiers, err = b.modifiers(n); err != nil {
		return nil, err
	}
	s, err := b.signature(n)
	if err != nil {
		return nil, err
	}
	if s.ret == nil || s.name == "" {
		return nil, b.missing(n, "a return type and name")
	}
	f.Return, f.Name = s.ret, s.name
	if tpl := childOf(n, "type_parameter_list"); tpl != nil {
		if f.TypeParams, err = b.typeParams(tpl); err != nil {
			return nil, err
		}
	}
	pl := childOf(n, "parameter_list")
	if pl == nil {
		return nil, b.missing(n, "parameters")
	}
	if f.Params, err = b.params(pl); err != nil {
		return nil, err
	}
	if f.Constraints, err = b.constraints(n); err != nil {
		return nil, err
	}
	if f.Body, f.Expression, err = b.body(n); err != nil {
		return nil, err
	}
	return f, nil
}
