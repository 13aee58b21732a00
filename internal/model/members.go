package model

import (
	"github.com/cockroachdb/errors"
)

// Members holds the members of a namespace or type declaration, partitioned
// by category. Categories keep source order internally. The collections are
// filled once by PartitionMembers and not modified afterwards.
type Members struct {
	StaticFields     []*Field
	Fields           []*Field
	StaticProperties []*Property
	Properties       []*Property
	Constructors     []*Constructor
	Destructor       *Destructor
	Indexers         []*Indexer
	Methods          []*Method
	Operators        []*Operator
	// Types holds nested type declarations and, for namespaces, nested
	// namespaces.
	Types []Node
	// source order, kept for back ends that want it
	order []Node
}

// PartitionMembers sorts declarations into their categories. It fails on a
// node that cannot be a member, or on a second destructor.
func PartitionMembers(decls []Node) (Members, error) {
	var m Members
	m.order = make([]Node, 0, len(decls))
	for _, d := range decls {
		switch n := d.(type) {
		case *Field:
			if n.Modifiers.IsStatic() {
				m.StaticFields = append(m.StaticFields, n)
			} else {
				m.Fields = append(m.Fields, n)
			}
		case *Property:
			if n.Modifiers.Has(FlagStatic) {
				m.StaticProperties = append(m.StaticProperties, n)
			} else {
				m.Properties = append(m.Properties, n)
			}
		case *Constructor:
			m.Constructors = append(m.Constructors, n)
		case *Destructor:
			if m.Destructor != nil {
				return Members{}, errors.Newf("second destructor %s", n.Name)
			}
			m.Destructor = n
		case *Indexer:
			m.Indexers = append(m.Indexers, n)
		case *Method:
			m.Methods = append(m.Methods, n)
		case *Operator:
			m.Operators = append(m.Operators, n)
		case *Class, *Struct, *Interface, *Enum, *Delegate, *Namespace:
			m.Types = append(m.Types, n)
		default:
			return Members{}, errors.Newf("%s cannot be a member", d.Kind())
		}
		m.order = append(m.order, d)
	}
	return m, nil
}

// Len reports the number of members.
func (m *Members) Len() int { return len(m.order) }

// SourceOrder returns members as they were written. Do not modify the slice.
func (m *Members) SourceOrder() []Node { return m.order }

// All returns members in canonical category order: static fields, fields,
// static properties, properties, constructors, destructor, indexers,
// methods, operators, nested types.
func (m *Members) All() []Node {
	out := make([]Node, 0, len(m.order))
	for _, f := range m.StaticFields {
		out = append(out, f)
	}
	for _, f := range m.Fields {
		out = append(out, f)
	}
	for _, p := range m.StaticProperties {
		out = append(out, p)
	}
	for _, p := range m.Properties {
		out = append(out, p)
	}
	for _, c := range m.Constructors {
		out = append(out, c)
	}
	if m.Destructor != nil {
		out = append(out, m.Destructor)
	}
	for _, i := range m.Indexers {
		out = append(out, i)
	}
	for _, fn := range m.Methods {
		out = append(out, fn)
	}
	for _, o := range m.Operators {
		out = append(out, o)
	}
	out = append(out, m.Types...)
	return out
}

// MergeMembers joins the members of several declarations of one merged
// namespace or partial type. Each category keeps declaration order, then
// source order. A second destructor is an error, as in PartitionMembers.
func MergeMembers(parts ...*Members) (Members, error) {
	var all []Node
	for _, p := range parts {
		if p != nil {
			all = append(all, p.order...)
		}
	}
	return PartitionMembers(all)
}
