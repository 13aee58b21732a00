package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/source"
)

var zeroSpan source.Span

func TestModifiersCompoundAccess(t *testing.T) {
	var m Modifiers
	require.True(t, m.Add("protected"))
	require.True(t, m.Add("internal"))
	assert.Equal(t, AccessProtectedInternal, m.Access)

	var p Modifiers
	p.Add("private")
	p.Add("protected")
	assert.Equal(t, AccessPrivateProtected, p.Access)
	assert.Equal(t, "private protected", p.Access.String())

	assert.False(t, m.Add("banana"))
}

func TestModifiersCanonicalOrder(t *testing.T) {
	var m Modifiers
	for _, w := range []string{"override", "async", "public", "static"} {
		require.True(t, m.Add(w))
	}
	assert.Equal(t, "public static override async", m.String())
}

func TestPartitionMembers(t *testing.T) {
	static := &Field{Name: "count", Modifiers: Modifiers{Flags: FlagStatic}}
	constant := &Field{Name: "Max", Modifiers: Modifiers{Flags: FlagConst}}
	field := &Field{Name: "x"}
	method := &Method{Name: "Run"}
	ctor := &Constructor{Name: "C"}
	nested := &Class{TypeDecl: TypeDecl{Name: "Inner"}}
	prop := &Property{Name: "P"}

	m, err := PartitionMembers([]Node{method, field, static, nested, ctor, prop, constant})
	require.NoError(t, err)
	assert.Equal(t, []*Field{static, constant}, m.StaticFields)
	assert.Equal(t, []*Field{field}, m.Fields)
	assert.Equal(t, []*Method{method}, m.Methods)
	assert.Equal(t, []*Constructor{ctor}, m.Constructors)
	assert.Equal(t, []*Property{prop}, m.Properties)
	assert.Equal(t, []Node{nested}, m.Types)
	assert.Equal(t, 7, m.Len())

	all := m.All()
	require.Len(t, all, 7)
	assert.Same(t, static, all[0])
	assert.Same(t, nested, all[6])
	assert.Same(t, method, m.SourceOrder()[0])
}

func TestPartitionMembersRejectsStatements(t *testing.T) {
	_, err := PartitionMembers([]Node{&Return{}})
	require.Error(t, err)

	_, err = PartitionMembers([]Node{&Destructor{Name: "A"}, &Destructor{Name: "A"}})
	require.Error(t, err)
}

func TestTypeRefString(t *testing.T) {
	list := NewNamed(zeroSpan, "System", "Collections", "Generic", "List")
	list.Segments[3].Args = []*TypeRef{{Form: TypePredefined, Keyword: "int"}}
	assert.Equal(t, "System.Collections.Generic.List<int>", list.String())

	arr := &TypeRef{Form: TypeArray, Rank: 2, Elem: &TypeRef{Form: TypePredefined, Keyword: "string"}}
	assert.Equal(t, "string[,]", arr.String())

	nullable := &TypeRef{Form: TypeNullable, Elem: NewNamed(zeroSpan, "T")}
	assert.Equal(t, "T?", nullable.String())
	assert.Equal(t, "T", nullable.Innermost().Dotted())

	tuple := &TypeRef{Form: TypeTuple, Elems: []TupleElem{
		{Type: &TypeRef{Form: TypePredefined, Keyword: "int"}, Name: "a"},
		{Type: &TypeRef{Form: TypePredefined, Keyword: "bool"}},
	}}
	assert.Equal(t, "(int a, bool)", tuple.String())
}

func TestWalkVisitsInPreOrder(t *testing.T) {
	ret := &Return{Value: &Identifier{Name: "x"}}
	body := &Block{Statements: []Stmt{ret}}
	method := &Method{Name: "Get", Return: &TypeRef{Form: TypePredefined, Keyword: "int"}, Body: body}
	members, err := PartitionMembers([]Node{method})
	require.NoError(t, err)
	cls := &Class{TypeDecl: TypeDecl{Name: "C", Members: members}}

	var kinds []Kind
	var exits int
	Walk(cls, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	}, func(Node) { exits++ })

	assert.Equal(t, []Kind{KindClass, KindMethod, KindTypeRef, KindBlock, KindReturn, KindIdentifier}, kinds)
	assert.Equal(t, len(kinds), exits)
}

func TestChildrenSkipsNil(t *testing.T) {
	n := &If{Cond: &Literal{Lit: LitBool, Raw: "true"}, Then: &Empty{}}
	assert.Len(t, Children(n), 2)
	assert.Empty(t, Children(&Method{}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "type expression", KindTypeExpr.String())
	assert.Equal(t, "invalid", Kind(250).String())
	assert.True(t, KindEnum.IsTypeDecl())
	assert.False(t, KindBlock.IsDecl())
}

func TestMergeMembersKeepsDeclarationOrder(t *testing.T) {
	a, err := PartitionMembers([]Node{&Field{Name: "x"}, &Method{Name: "A"}})
	require.NoError(t, err)
	b, err := PartitionMembers([]Node{&Method{Name: "B"}, &Field{Name: "y"}})
	require.NoError(t, err)

	m, err := MergeMembers(&a, nil, &b)
	require.NoError(t, err)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, "x", m.Fields[0].Name)
	assert.Equal(t, "y", m.Fields[1].Name)
	require.Len(t, m.Methods, 2)
	assert.Equal(t, "A", m.Methods[0].Name)
	assert.Equal(t, 4, m.Len())

	d1, _ := PartitionMembers([]Node{&Destructor{Name: "P"}})
	d2, _ := PartitionMembers([]Node{&Destructor{Name: "P"}})
	_, err = MergeMembers(&d1, &d2)
	require.Error(t, err)
}
