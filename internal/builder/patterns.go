package builder

import (
	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

var patternKinds = []string{
	"constant_pattern", "declaration_pattern", "var_pattern", "discard",
	"recursive_pattern", "relational_pattern", "negated_pattern",
	"and_pattern", "or_pattern", "binary_pattern", "parenthesized_pattern",
	"type_pattern", "list_pattern",
}

func isPattern(n *sitter.Node) bool { return oneOf(n.Type(), patternKinds...) }

// pattern lowers a pattern node. Plain expressions in pattern position are
// constant patterns.
func (b *builder) pattern(n *sitter.Node) (*model.Pattern, error) {
	p := &model.Pattern{Base: b.base(n)}
	var err error
	switch n.Type() {
	case "constant_pattern":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		p.Form = model.PatConstant
		p.Value, err = b.expr(inner[0])
	case "discard":
		p.Form = model.PatDiscard
	case "type_pattern":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		p.Form = model.PatType
		p.Type, err = b.typeRef(inner[0])
	case "declaration_pattern":
		err = b.declarationPattern(n, p)
	case "var_pattern":
		err = b.varPattern(n, p)
	case "relational_pattern":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		for _, ch := range all(n) {
			if !ch.IsNamed() {
				p.Op = ch.Type()
				break
			}
		}
		p.Form = model.PatRelational
		p.Value, err = b.expr(inner[0])
	case "negated_pattern", "parenthesized_pattern":
		inner := named(n)
		if len(inner) != 1 {
			return nil, b.unhandled(n)
		}
		p.Form = model.PatNot
		if n.Type() == "parenthesized_pattern" {
			p.Form = model.PatParen
		}
		p.Left, err = b.pattern(inner[0])
	case "and_pattern", "or_pattern", "binary_pattern":
		err = b.binaryPattern(n, p)
	case "recursive_pattern":
		err = b.recursivePattern(n, p)
	case "list_pattern":
		err = b.listPattern(n, p)
	case "identifier":
		if b.text(n) == "_" {
			p.Form = model.PatDiscard
			break
		}
		p.Form = model.PatConstant
		p.Value, err = b.expr(n)
	default:
		p.Form = model.PatConstant
		p.Value, err = b.expr(n)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// declarationPattern handles `T x`. A `var` type turns it into a var
// pattern, including the deconstructing `var (a, b)`.
func (b *builder) declarationPattern(n *sitter.Node, p *model.Pattern) error {
	typ := field(n, "type")
	name := field(n, "name")
	if typ == nil || name == nil {
		parts := named(n)
		if len(parts) != 2 {
			return b.unhandled(n)
		}
		typ, name = parts[0], parts[1]
	}
	if typ.Type() == "implicit_type" {
		return b.varDesignation(name, p)
	}
	if !oneOf(name.Type(), "identifier", "discard") {
		return b.unhandled(name)
	}
	t, err := b.typeRef(typ)
	if err != nil {
		return err
	}
	p.Form, p.Type, p.Name = model.PatDeclaration, t, b.text(name)
	return nil
}

// varPattern handles the var_pattern node some grammar revisions emit.
func (b *builder) varPattern(n *sitter.Node, p *model.Pattern) error {
	inner := named(n)
	if len(inner) != 1 {
		return b.unhandled(n)
	}
	return b.varDesignation(inner[0], p)
}

func (b *builder) varDesignation(n *sitter.Node, p *model.Pattern) error {
	p.Form = model.PatVar
	vars, paren, err := b.designation(n)
	if err != nil {
		return err
	}
	if !paren {
		p.Name = vars[0].Name
		return nil
	}
	p.HasPosition = true
	for _, v := range vars {
		p.Positional = append(p.Positional, model.Subpattern{
			Pattern: &model.Pattern{Base: v.Base, Form: model.PatVar, Name: v.Name},
		})
	}
	return nil
}

func (b *builder) binaryPattern(n *sitter.Node, p *model.Pattern) error {
	l, op, r, err := b.operands(n)
	if err != nil {
		return err
	}
	switch op {
	case "and":
		p.Form = model.PatAnd
	case "or":
		p.Form = model.PatOr
	default:
		return b.unhandled(n)
	}
	if p.Left, err = b.pattern(l); err != nil {
		return err
	}
	p.Right, err = b.pattern(r)
	return err
}

func (b *builder) recursivePattern(n *sitter.Node, p *model.Pattern) error {
	p.Form = model.PatRecursive
	for _, ch := range named(n) {
		var err error
		switch {
		case ch.Type() == "positional_pattern_clause":
			p.HasPosition = true
			p.Positional, err = b.subpatterns(ch)
		case ch.Type() == "property_pattern_clause":
			p.HasProperties = true
			p.Properties, err = b.subpatterns(ch)
		case b.isNameField(n, ch) || (oneOf(ch.Type(), "identifier", "discard") && (p.HasPosition || p.HasProperties)):
			p.Name = b.text(ch)
		case isType(ch) && p.Type == nil && !p.HasPosition && !p.HasProperties:
			p.Type, err = b.typeRef(ch)
		default:
			return b.unhandled(ch)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// isNameField reports whether ch sits in the name field of n.
func (b *builder) isNameField(n, ch *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	return name != nil && name.StartByte() == ch.StartByte() && name.EndByte() == ch.EndByte()
}

// subpatterns lowers the clauses of a recursive pattern. A named subpattern
// is `member: pattern`, where member is an identifier or a member access.
func (b *builder) subpatterns(n *sitter.Node) ([]model.Subpattern, error) {
	var out []model.Subpattern
	for _, ch := range named(n) {
		if ch.Type() != "subpattern" {
			pat, err := b.pattern(ch)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Subpattern{Pattern: pat})
			continue
		}
		sp := model.Subpattern{}
		colon := hasToken(ch, ":")
		for _, part := range named(ch) {
			switch {
			case oneOf(part.Type(), "name_colon", "expression_colon"):
				inner := named(part)
				if len(inner) != 1 {
					return nil, b.unhandled(part)
				}
				sp.Name = b.text(inner[0])
			case colon && sp.Name == "" && sp.Pattern == nil:
				if !oneOf(part.Type(), "identifier", "member_access_expression") {
					return nil, b.unhandled(part)
				}
				sp.Name = b.text(part)
			case sp.Pattern != nil:
				return nil, b.unhandled(part)
			default:
				pat, err := b.pattern(part)
				if err != nil {
					return nil, err
				}
				sp.Pattern = pat
			}
		}
		if sp.Pattern == nil {
			return nil, b.missing(ch, "a pattern")
		}
		out = append(out, sp)
	}
	return out, nil
}

func (b *builder) listPattern(n *sitter.Node, p *model.Pattern) error {
	p.Form = model.PatList
	closed := false
	for _, ch := range all(n) {
		if !ch.IsNamed() {
			if ch.Type() == "]" {
				closed = true
			}
			continue
		}
		if closed {
			if !oneOf(ch.Type(), "identifier", "discard") {
				return b.unhandled(ch)
			}
			p.Name = b.text(ch)
			continue
		}
		pat, err := b.pattern(ch)
		if err != nil {
			return err
		}
		p.Positional = append(p.Positional, model.Subpattern{Pattern: pat})
	}
	return nil
}
