package builder

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

// typeRef lowers a type node.
func (b *builder) typeRef(n *sitter.Node) (*model.TypeRef, error) {
	t := &model.TypeRef{Base: b.base(n)}
	switch n.Type() {
	case "identifier":
		name := b.text(n)
		if name == "var" {
			t.Form = model.TypeVar
			return t, nil
		}
		t.Segments = []model.TypeSegment{{Span: b.span(n), Name: name}}
	case "generic_name":
		seg, err := b.genericSegment(n)
		if err != nil {
			return nil, err
		}
		t.Segments = []model.TypeSegment{seg}
	case "qualified_name", "alias_qualified_name":
		if err := b.qualified(n, t); err != nil {
			return nil, err
		}
	case "predefined_type":
		t.Form = model.TypePredefined
		t.Keyword = strings.TrimSpace(b.text(n))
	case "implicit_type":
		t.Form = model.TypeVar
	case "array_type":
		arr, _, err := b.arrayType(n)
		if err != nil {
			return nil, err
		}
		return arr, nil
	case "nullable_type", "pointer_type":
		inner, err := b.elemType(n)
		if err != nil {
			return nil, err
		}
		t.Form = model.TypeNullable
		if n.Type() == "pointer_type" {
			t.Form = model.TypePointer
		}
		t.Elem = inner
	case "tuple_type":
		t.Form = model.TypeTuple
		for _, el := range childrenOf(n, "tuple_element") {
			parts := named(el)
			typ := field(el, "type")
			if typ == nil && len(parts) > 0 {
				typ = parts[0]
			}
			if typ == nil {
				return nil, b.missing(el, "a type")
			}
			et, err := b.typeRef(typ)
			if err != nil {
				return nil, err
			}
			elem := model.TupleElem{Type: et}
			if name := field(el, "name"); name != nil {
				elem.Name = b.text(name)
			} else if len(parts) > 1 {
				elem.Name = b.text(parts[1])
			}
			t.Elems = append(t.Elems, elem)
		}
	case "ref_type", "scoped_type":
		inner, err := b.elemType(n)
		if err != nil {
			return nil, err
		}
		if n.Type() == "ref_type" {
			inner.Ref = true
			inner.Readonly = hasToken(n, "readonly")
		}
		inner.Pos = b.span(n)
		return inner, nil
	default:
		return nil, b.unhandled(n)
	}
	return t, nil
}

// elemType lowers the single wrapped type of nullable, pointer and ref
// types.
func (b *builder) elemType(n *sitter.Node) (*model.TypeRef, error) {
	inner := field(n, "type")
	if inner == nil {
		parts := named(n)
		if len(parts) != 1 {
			return nil, b.unhandled(n)
		}
		inner = parts[0]
	}
	return b.typeRef(inner)
}

// arrayType lowers an array type and returns the size expressions written
// in its rank specifier (used by array creation). Sizes always belong to the
// leftmost rank, which is the innermost array level.
func (b *builder) arrayType(n *sitter.Node) (*model.TypeRef, []model.Expr, error) {
	elemNode := field(n, "type")
	rank := field(n, "rank")
	if elemNode == nil || rank == nil {
		parts := named(n)
		for _, p := range parts {
			switch {
			case p.Type() == "array_rank_specifier":
				rank = p
			case elemNode == nil:
				elemNode = p
			}
		}
	}
	if elemNode == nil || rank == nil {
		return nil, nil, b.missing(n, "an element type and rank")
	}
	var (
		elem  *model.TypeRef
		sizes []model.Expr
		err   error
	)
	if elemNode.Type() == "array_type" {
		elem, sizes, err = b.arrayType(elemNode)
	} else {
		elem, err = b.typeRef(elemNode)
	}
	if err != nil {
		return nil, nil, err
	}
	outer := named(rank)
	if len(sizes) > 0 && len(outer) > 0 {
		return nil, nil, b.unhandled(rank)
	}
	for _, s := range outer {
		e, err := b.expr(s)
		if err != nil {
			return nil, nil, err
		}
		sizes = append(sizes, e)
	}
	return &model.TypeRef{
		Base: b.base(n),
		Form: model.TypeArray,
		Elem: elem,
		Rank: countToken(rank, ",") + 1,
	}, sizes, nil
}

func (b *builder) genericSegment(n *sitter.Node) (model.TypeSegment, error) {
	seg := model.TypeSegment{Span: b.span(n)}
	name := field(n, "name")
	if name == nil {
		name = childOf(n, "identifier")
	}
	if name == nil {
		return seg, b.missing(n, "a name")
	}
	seg.Name = b.text(name)
	args := childOf(n, "type_argument_list")
	if args == nil {
		return seg, b.missing(n, "type arguments")
	}
	parts := named(args)
	if len(parts) == 0 {
		seg.Unbound = true
		seg.Arity = countToken(args, ",") + 1
		return seg, nil
	}
	for _, p := range parts {
		a, err := b.typeRef(p)
		if err != nil {
			return seg, err
		}
		seg.Args = append(seg.Args, a)
	}
	return seg, nil
}

// qualified flattens qualified and alias-qualified names into t's segments.
func (b *builder) qualified(n *sitter.Node, t *model.TypeRef) error {
	switch n.Type() {
	case "identifier":
		t.Segments = append(t.Segments, model.TypeSegment{Span: b.span(n), Name: b.text(n)})
		return nil
	case "generic_name":
		seg, err := b.genericSegment(n)
		if err != nil {
			return err
		}
		t.Segments = append(t.Segments, seg)
		return nil
	case "alias_qualified_name":
		alias := field(n, "alias")
		name := field(n, "name")
		parts := named(n)
		if alias == nil && len(parts) == 2 {
			alias = parts[0]
		}
		if name == nil && len(parts) > 0 {
			name = parts[len(parts)-1]
		}
		if name == nil {
			return b.missing(n, "a name")
		}
		if alias == nil || b.text(alias) == "global" {
			t.Global = true
		} else {
			t.Segments = append(t.Segments, model.TypeSegment{Span: b.span(alias), Name: b.text(alias)})
		}
		return b.qualified(name, t)
	case "qualified_name":
		qual := field(n, "qualifier")
		name := field(n, "name")
		if qual == nil || name == nil {
			parts := named(n)
			if len(parts) != 2 {
				return b.unhandled(n)
			}
			qual, name = parts[0], parts[1]
		}
		if err := b.qualified(qual, t); err != nil {
			return err
		}
		return b.qualified(name, t)
	}
	return b.unhandled(n)
}
