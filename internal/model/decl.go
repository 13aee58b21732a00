package model

import "recast/internal/source"

// Script is one input file.
type Script struct {
	Base
	File    source.FileID
	Path    string
	Library bool
	// Usings declared with the global keyword; they apply project-wide.
	GlobalUsings []*Using
	Root         *Namespace
}

func (*Script) Kind() Kind { return KindScript }

// Namespace is a namespace block, a file-scoped namespace, or the anonymous
// root of a script (empty Name).
type Namespace struct {
	Base
	Name       string // dotted, "" for the script root
	FileScoped bool
	Externs    []string // extern alias names
	Usings     []*Using
	Attributes []*Attribute // assembly/module attributes, root only
	Members    Members
	// TopLevel holds top-level statements; only the script root has them.
	TopLevel *Block
}

func (*Namespace) Kind() Kind { return KindNamespace }

func (n *Namespace) DeclName() string { return n.Name }

// IsRoot reports whether n is the anonymous root of a script.
func (n *Namespace) IsRoot() bool { return n.Name == "" }

// Using is a using directive.
type Using struct {
	Base
	Global bool
	Static bool
	Alias  string
	Target *TypeRef
}

func (*Using) Kind() Kind { return KindUsing }

func (u *Using) DeclName() string { return u.Alias }

// Attribute is one attribute application.
type Attribute struct {
	Base
	Target string // assembly, return, field, ... or ""
	Name   *TypeRef
	Args   []*Argument
}

func (*Attribute) Kind() Kind { return KindAttribute }

// Constraint is one where clause.
type Constraint struct {
	Span  source.Span
	Param string
	// Special holds class, struct, unmanaged, notnull, default and new().
	Special []string
	Bounds  []*TypeRef
}

// TypeParameter declares a generic parameter.
type TypeParameter struct {
	Base
	Attributes []*Attribute
	Variance   string // "in", "out" or ""
	Name       string
}

func (*TypeParameter) Kind() Kind { return KindTypeParameter }

func (p *TypeParameter) DeclName() string { return p.Name }

// TypeDecl is the shared shape of classes, structs and interfaces.
type TypeDecl struct {
	Base
	Attributes  []*Attribute
	Modifiers   Modifiers
	Name        string
	TypeParams  []*TypeParameter
	BaseTypes   []*TypeRef
	Constraints []Constraint
	Members     Members
}

func (d *TypeDecl) DeclName() string { return d.Name }

// Shape exposes the shared declaration to code handling the three kinds alike.
func (d *TypeDecl) Shape() *TypeDecl { return d }

type Class struct{ TypeDecl }

func (*Class) Kind() Kind { return KindClass }

type Struct struct {
	TypeDecl
	RefStruct bool
}

func (*Struct) Kind() Kind { return KindStruct }

type Interface struct{ TypeDecl }

func (*Interface) Kind() Kind { return KindInterface }

// Enum declares an enumeration.
type Enum struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Name       string
	Underlying *TypeRef
	Members    []*EnumMember
}

func (*Enum) Kind() Kind { return KindEnum }

func (e *Enum) DeclName() string { return e.Name }

type EnumMember struct {
	Base
	Attributes []*Attribute
	Name       string
	Value      Expr
}

func (*EnumMember) Kind() Kind { return KindEnumMember }

func (m *EnumMember) DeclName() string { return m.Name }

// Delegate declares a delegate type.
type Delegate struct {
	Base
	Attributes  []*Attribute
	Modifiers   Modifiers
	Return      *TypeRef
	Name        string
	TypeParams  []*TypeParameter
	Params      []*Parameter
	Constraints []Constraint
}

func (*Delegate) Kind() Kind { return KindDelegate }

func (d *Delegate) DeclName() string { return d.Name }

// Field is one field declarator. `int a, b;` yields two fields sharing type
// and modifiers. Event fields carry FlagEvent.
type Field struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Type       *TypeRef
	Name       string
	Init       Expr
	// Group links declarators written in one declaration; 0 for a lone field.
	Group int
}

func (*Field) Kind() Kind { return KindField }

func (f *Field) DeclName() string { return f.Name }

// Accessor is a get/set/init/add/remove accessor.
type Accessor struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Keyword    string
	Body       *Block
	Expression Expr
}

func (*Accessor) Kind() Kind { return KindAccessor }

// Property is a property or an event declared with accessors (FlagEvent).
type Property struct {
	Base
	Attributes        []*Attribute
	Modifiers         Modifiers
	Type              *TypeRef
	ExplicitInterface *TypeRef
	Name              string
	Accessors         []*Accessor
	Expression        Expr // expression-bodied getter
	Init              Expr
}

func (*Property) Kind() Kind { return KindProperty }

func (p *Property) DeclName() string { return p.Name }

type Indexer struct {
	Base
	Attributes        []*Attribute
	Modifiers         Modifiers
	Type              *TypeRef
	ExplicitInterface *TypeRef
	Params            []*Parameter
	Accessors         []*Accessor
	Expression        Expr
}

func (*Indexer) Kind() Kind { return KindIndexer }

func (*Indexer) DeclName() string { return "this[]" }

type Method struct {
	Base
	Attributes        []*Attribute
	Modifiers         Modifiers
	Return            *TypeRef
	ExplicitInterface *TypeRef
	Name              string
	TypeParams        []*TypeParameter
	Params            []*Parameter
	Constraints       []Constraint
	Body              *Block
	Expression        Expr
}

func (*Method) Kind() Kind { return KindMethod }

func (m *Method) DeclName() string { return m.Name }

// ConstructorInitializer is the `: base(...)` or `: this(...)` clause.
type ConstructorInitializer struct {
	Span    source.Span
	Keyword string
	Args    []*Argument
}

type Constructor struct {
	Base
	Attributes  []*Attribute
	Modifiers   Modifiers
	Name        string
	Params      []*Parameter
	Initializer *ConstructorInitializer
	Body        *Block
	Expression  Expr
}

func (*Constructor) Kind() Kind { return KindConstructor }

func (c *Constructor) DeclName() string { return c.Name }

type Destructor struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Name       string
	Body       *Block
	Expression Expr
}

func (*Destructor) Kind() Kind { return KindDestructor }

func (d *Destructor) DeclName() string { return "~" + d.Name }

// Operator is an operator overload or a conversion operator (FlagImplicit or
// FlagExplicit, Token empty, Return names the target type).
type Operator struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Return     *TypeRef
	Token      string
	Params     []*Parameter
	Body       *Block
	Expression Expr
}

func (*Operator) Kind() Kind { return KindOperator }

func (o *Operator) IsConversion() bool {
	return o.Modifiers.Has(FlagImplicit) || o.Modifiers.Has(FlagExplicit)
}

func (o *Operator) DeclName() string {
	if o.IsConversion() {
		return "op_" + o.Return.String()
	}
	return "operator" + o.Token
}

// Parameter is a method, lambda, indexer or delegate parameter. Type is nil
// for implicitly typed lambda parameters.
type Parameter struct {
	Base
	Attributes []*Attribute
	Modifiers  Modifiers
	Type       *TypeRef
	Name       string
	Default    Expr
}

func (*Parameter) Kind() Kind { return KindParameter }

func (p *Parameter) DeclName() string { return p.Name }

// Variable is one declarator of a local declaration, a foreach variable or a
// designation inside a declaration expression.
type Variable struct {
	Base
	Name string
	Init Expr
}

func (*Variable) Kind() Kind { return KindVariable }

func (v *Variable) DeclName() string { return v.Name }
