package model

import (
	"strings"

	"recast/internal/source"
)

// TypeForm distinguishes the shapes a type reference can take.
type TypeForm uint8

const (
	TypeNamed TypeForm = iota
	TypePredefined
	TypeArray
	TypePointer
	TypeNullable
	TypeTuple
	TypeVar
)

// TypeSegment is one dotted component of a named type, with its generic
// arguments.
type TypeSegment struct {
	Span source.Span
	Name string
	Args []*TypeRef
	// Unbound marks an omitted argument list such as typeof(List<>); Arity
	// then holds the number of slots.
	Unbound bool
	Arity   int
}

// TupleElem is one element of a tuple type.
type TupleElem struct {
	Type *TypeRef
	Name string
}

// TypeRef names a used type. Target is filled by the resolver and stays
// NoSymbolID when the type cannot be resolved.
type TypeRef struct {
	Base
	Form     TypeForm
	Global   bool // global:: qualifier
	Segments []TypeSegment
	Keyword  string // predefined keyword, e.g. "int"
	Elem     *TypeRef
	Rank     int // array rank
	Elems    []TupleElem
	Ref      bool // ref return or ref local
	Readonly bool // ref readonly
	Target   SymbolID
}

func (*TypeRef) Kind() Kind { return KindTypeRef }

// NewNamed builds a named type from dotted parts without generic arguments.
func NewNamed(span source.Span, parts ...string) *TypeRef {
	t := &TypeRef{Base: Base{Pos: span}, Form: TypeNamed}
	for _, p := range parts {
		t.Segments = append(t.Segments, TypeSegment{Span: span, Name: p})
	}
	return t
}

// Names returns the dotted segment names of a named type.
func (t *TypeRef) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		out[i] = s.Name
	}
	return out
}

// Dotted returns the segment names joined by dots, without type arguments.
func (t *TypeRef) Dotted() string {
	return strings.Join(t.Names(), ".")
}

// Last returns the final segment, or nil for non-named types.
func (t *TypeRef) Last() *TypeSegment {
	if t == nil || len(t.Segments) == 0 {
		return nil
	}
	return &t.Segments[len(t.Segments)-1]
}

// Innermost strips array, pointer and nullable wrappers.
func (t *TypeRef) Innermost() *TypeRef {
	for t != nil && t.Elem != nil && (t.Form == TypeArray || t.Form == TypePointer || t.Form == TypeNullable) {
		t = t.Elem
	}
	return t
}

// String renders the type in C# syntax.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeRef) write(sb *strings.Builder) {
	if t.Ref {
		sb.WriteString("ref ")
		if t.Readonly {
			sb.WriteString("readonly ")
		}
	}
	switch t.Form {
	case TypePredefined:
		sb.WriteString(t.Keyword)
	case TypeVar:
		sb.WriteString("var")
	case TypeArray:
		t.Elem.write(sb)
		sb.WriteByte('[')
		for i := 1; i < t.Rank; i++ {
			sb.WriteByte(',')
		}
		sb.WriteByte(']')
	case TypePointer:
		t.Elem.write(sb)
		sb.WriteByte('*')
	case TypeNullable:
		t.Elem.write(sb)
		sb.WriteByte('?')
	case TypeTuple:
		sb.WriteByte('(')
		for i, e := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.Type.write(sb)
			if e.Name != "" {
				sb.WriteByte(' ')
				sb.WriteString(e.Name)
			}
		}
		sb.WriteByte(')')
	default:
		if t.Global {
			sb.WriteString("global::")
		}
		for i, s := range t.Segments {
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(s.Name)
			switch {
			case s.Unbound:
				sb.WriteByte('<')
				for j := 1; j < s.Arity; j++ {
					sb.WriteByte(',')
				}
				sb.WriteByte('>')
			case len(s.Args) > 0:
				sb.WriteByte('<')
				for j, a := range s.Args {
					if j > 0 {
						sb.WriteString(", ")
					}
					a.write(sb)
				}
				sb.WriteByte('>')
			}
		}
	}
}
