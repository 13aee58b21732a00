package model

// Identifier is a simple name, optionally with generic arguments.
type Identifier struct {
	ExprBase
	Name     string
	TypeArgs []*TypeRef
	Target   SymbolID
}

func (*Identifier) Kind() Kind { return KindIdentifier }

// LiteralKind classifies literal tokens.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitReal
	LitString
	LitVerbatimString
	LitRawString
	LitChar
	LitBool
	LitNull
	LitDefault
)

// Literal keeps the token text as written.
type Literal struct {
	ExprBase
	Lit LiteralKind
	Raw string
}

func (*Literal) Kind() Kind { return KindLiteral }

// InterpolationPart is either literal text (Hole nil) or an interpolation
// hole with optional alignment and format.
type InterpolationPart struct {
	Text      string
	Hole      Expr
	Alignment Expr
	Format    string
}

type InterpolatedString struct {
	ExprBase
	Verbatim bool
	Parts    []InterpolationPart
}

func (*InterpolatedString) Kind() Kind { return KindInterpolatedString }

type This struct{ ExprBase }

func (*This) Kind() Kind { return KindThis }

type BaseExpr struct{ ExprBase }

func (*BaseExpr) Kind() Kind { return KindBaseExpr }

type Paren struct {
	ExprBase
	X Expr
}

func (*Paren) Kind() Kind { return KindParen }

// MemberAccess is `x.Name`, `x?.Name` (Conditional) or `p->Name` (Pointer).
// A conditional access whose receiver is implicit (inside a ?. chain) has a
// nil X only while building; finished trees always carry X.
type MemberAccess struct {
	ExprBase
	X           Expr
	Name        string
	TypeArgs    []*TypeRef
	Conditional bool
	Pointer     bool
	Target      SymbolID
}

func (*MemberAccess) Kind() Kind { return KindMemberAccess }

type ElementAccess struct {
	ExprBase
	X           Expr
	Args        []*Argument
	Conditional bool
}

func (*ElementAccess) Kind() Kind { return KindElementAccess }

type Invocation struct {
	ExprBase
	Fn   Expr
	Args []*Argument
}

func (*Invocation) Kind() Kind { return KindInvocation }

// Argument is one call, element access, attribute or tuple argument.
// Modifier is ref, out or in. NameEquals marks the attribute form `Name = v`
// as opposed to the named-argument form `name: v`.
type Argument struct {
	Base
	Name       string
	NameEquals bool
	Modifier   string
	Value      Expr
}

func (*Argument) Kind() Kind { return KindArgument }

// ObjectCreation is `new T(args) { init }`. Type is nil for target-typed
// `new()` and for anonymous objects.
type ObjectCreation struct {
	ExprBase
	Type      *TypeRef
	Args      []*Argument
	HasArgs   bool
	Init      *InitializerList
	Anonymous bool
}

func (*ObjectCreation) Kind() Kind { return KindObjectCreation }

// ArrayCreation is `new T[n]`, `new T[] {..}`, `new[] {..}` or stackalloc.
// Type is the array type (nil for implicitly typed arrays).
type ArrayCreation struct {
	ExprBase
	Type       *TypeRef
	Sizes      []Expr
	Init       *InitializerList
	Implicit   bool
	Rank       int
	Stackalloc bool
}

func (*ArrayCreation) Kind() Kind { return KindArrayCreation }

// InitializerList is a braced list of elements: array elements, collection
// elements, member assignments, or nested lists.
type InitializerList struct {
	ExprBase
	Elements []Expr
}

func (*InitializerList) Kind() Kind { return KindInitializerList }

// Binary covers arithmetic, logical, comparison, ?? and range (L or R may be
// nil for `..`).
type Binary struct {
	ExprBase
	Op string
	L  Expr
	R  Expr
}

func (*Binary) Kind() Kind { return KindBinary }

type Assignment struct {
	ExprBase
	Op string
	L  Expr
	R  Expr
}

func (*Assignment) Kind() Kind { return KindAssignment }

// Unary covers prefix (-x, !x, ++x, ^x, &x, *x, ref x) and postfix (x++,
// x--, x!) operators.
type Unary struct {
	ExprBase
	Op      string
	X       Expr
	Postfix bool
}

func (*Unary) Kind() Kind { return KindUnary }

type Conditional struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (*Conditional) Kind() Kind { return KindConditional }

type Cast struct {
	ExprBase
	Type *TypeRef
	X    Expr
}

func (*Cast) Kind() Kind { return KindCast }

// TypeTest is `x is T` or `x as T`.
type TypeTest struct {
	ExprBase
	Op   string
	X    Expr
	Type *TypeRef
}

func (*TypeTest) Kind() Kind { return KindTypeTest }

type IsPattern struct {
	ExprBase
	X       Expr
	Pattern *Pattern
}

func (*IsPattern) Kind() Kind { return KindIsPattern }

// PatternForm distinguishes the pattern shapes.
type PatternForm uint8

const (
	PatConstant PatternForm = iota
	PatDeclaration
	PatVar
	PatDiscard
	PatType
	PatRelational
	PatAnd
	PatOr
	PatNot
	PatParen
	PatRecursive
	PatList
)

// Subpattern is one `Name: pattern` entry of a property pattern, or a
// positional entry (Name empty).
type Subpattern struct {
	Name    string
	Pattern *Pattern
}

// Pattern is a C# pattern. Declaration and var patterns introduce Name.
type Pattern struct {
	Base
	Form          PatternForm
	Type          *TypeRef
	Name          string
	Value         Expr
	Op            string
	Left          *Pattern
	Right         *Pattern
	Positional    []Subpattern
	Properties    []Subpattern
	HasPosition   bool
	HasProperties bool
}

func (*Pattern) Kind() Kind { return KindPattern }

func (p *Pattern) DeclName() string { return p.Name }

// TypeOperator is typeof(T), sizeof(T) or default(T).
type TypeOperator struct {
	ExprBase
	Op   string
	Type *TypeRef
}

func (*TypeOperator) Kind() Kind { return KindTypeOperator }

// Lambda is a lambda expression or an anonymous method (Delegate set). Body
// is a *Block or an Expr.
type Lambda struct {
	ExprBase
	Async    bool
	Static   bool
	Delegate bool
	Parens   bool
	Return   *TypeRef
	Params   []*Parameter
	Body     Node
}

func (*Lambda) Kind() Kind { return KindLambda }

type Await struct {
	ExprBase
	X Expr
}

func (*Await) Kind() Kind { return KindAwait }

type ThrowExpr struct {
	ExprBase
	X Expr
}

func (*ThrowExpr) Kind() Kind { return KindThrowExpr }

type Tuple struct {
	ExprBase
	Elements []*Argument
}

func (*Tuple) Kind() Kind { return KindTuple }

type SwitchExpr struct {
	ExprBase
	Value Expr
	Arms  []*SwitchArm
}

func (*SwitchExpr) Kind() Kind { return KindSwitchExpr }

type SwitchArm struct {
	Base
	Pattern *Pattern
	When    Expr
	Value   Expr
}

func (*SwitchArm) Kind() Kind { return KindSwitchArm }

type CheckedExpr struct {
	ExprBase
	Unchecked bool
	X         Expr
}

func (*CheckedExpr) Kind() Kind { return KindCheckedExpr }

// DeclarationExpr is `out var x` or `var (a, b)`; Parenthesized marks the
// deconstruction form.
type DeclarationExpr struct {
	ExprBase
	Type          *TypeRef
	Vars          []*Variable
	Parenthesized bool
}

func (*DeclarationExpr) Kind() Kind { return KindDeclarationExpr }

// TypeExpr is a type used in expression position, e.g. the `int` in
// `int.Parse`.
type TypeExpr struct {
	ExprBase
	Type *TypeRef
}

func (*TypeExpr) Kind() Kind { return KindTypeExpr }
