package model

type Block struct {
	StmtBase
	Statements []Stmt
}

func (*Block) Kind() Kind { return KindBlock }

// LocalDecl declares one or more locals. Using marks `using var`; Await
// marks `await using var`.
type LocalDecl struct {
	StmtBase
	Modifiers Modifiers
	Using     bool
	Await     bool
	Type      *TypeRef
	Vars      []*Variable
}

func (*LocalDecl) Kind() Kind { return KindLocalDecl }

type ExprStmt struct {
	StmtBase
	X Expr
}

func (*ExprStmt) Kind() Kind { return KindExprStmt }

type Return struct {
	StmtBase
	Value Expr
}

func (*Return) Kind() Kind { return KindReturn }

type If struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) Kind() Kind { return KindIf }

type While struct {
	StmtBase
	Cond Expr
	Body Stmt
}

func (*While) Kind() Kind { return KindWhile }

type Do struct {
	StmtBase
	Body Stmt
	Cond Expr
}

func (*Do) Kind() Kind { return KindDo }

// For is a for loop. Either Decl or Init is set for the initializer part.
type For struct {
	StmtBase
	Decl   *LocalDecl
	Init   []Expr
	Cond   Expr
	Update []Expr
	Body   Stmt
}

func (*For) Kind() Kind { return KindFor }

// Foreach iterates a collection. The loop variable is Var; a deconstructing
// loop (`foreach (var (a, b) in xs)`) uses Target instead.
type Foreach struct {
	StmtBase
	Await      bool
	Type       *TypeRef
	Var        *Variable
	Target     Expr
	Collection Expr
	Body       Stmt
}

func (*Foreach) Kind() Kind { return KindForeach }

type Switch struct {
	StmtBase
	Value    Expr
	Sections []*SwitchSection
}

func (*Switch) Kind() Kind { return KindSwitch }

// SwitchLabel is `case value:`, `case pattern when cond:` or `default:`.
type SwitchLabel struct {
	Default bool
	Value   Expr
	Pattern *Pattern
	When    Expr
}

type SwitchSection struct {
	Base
	Labels     []SwitchLabel
	Statements []Stmt
}

func (*SwitchSection) Kind() Kind { return KindSwitchSection }

type Break struct{ StmtBase }

func (*Break) Kind() Kind { return KindBreak }

type Continue struct{ StmtBase }

func (*Continue) Kind() Kind { return KindContinue }

type Throw struct {
	StmtBase
	Value Expr
}

func (*Throw) Kind() Kind { return KindThrow }

type Try struct {
	StmtBase
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

func (*Try) Kind() Kind { return KindTry }

type CatchClause struct {
	Base
	Type   *TypeRef
	Name   string
	Filter Expr
	Body   *Block
}

func (*CatchClause) Kind() Kind { return KindCatchClause }

func (c *CatchClause) DeclName() string { return c.Name }

// UsingStmt is `using (resource) body`. Either Decl or Value is set.
type UsingStmt struct {
	StmtBase
	Await bool
	Decl  *LocalDecl
	Value Expr
	Body  Stmt
}

func (*UsingStmt) Kind() Kind { return KindUsingStmt }

type Lock struct {
	StmtBase
	Value Expr
	Body  Stmt
}

func (*Lock) Kind() Kind { return KindLock }

type Yield struct {
	StmtBase
	Break bool
	Value Expr
}

func (*Yield) Kind() Kind { return KindYield }

// Goto jumps to a label, a case label (Case set) or the default label.
type Goto struct {
	StmtBase
	Label   string
	Case    Expr
	Default bool
}

func (*Goto) Kind() Kind { return KindGoto }

type Labeled struct {
	StmtBase
	Label string
	Body  Stmt
}

func (*Labeled) Kind() Kind { return KindLabeled }

type Empty struct{ StmtBase }

func (*Empty) Kind() Kind { return KindEmpty }

type CheckedStmt struct {
	StmtBase
	Unchecked bool
	Body      *Block
}

func (*CheckedStmt) Kind() Kind { return KindCheckedStmt }

type UnsafeStmt struct {
	StmtBase
	Body *Block
}

func (*UnsafeStmt) Kind() Kind { return KindUnsafeStmt }

type Fixed struct {
	StmtBase
	Decl *LocalDecl
	Body Stmt
}

func (*Fixed) Kind() Kind { return KindFixed }

type LocalFunction struct {
	StmtBase
	Attributes  []*Attribute
	Modifiers   Modifiers
	Return      *TypeRef
	Name        string
	TypeParams  []*TypeParameter
	Params      []*Parameter
	Constraints []Constraint
	Body        *Block
	Expression  Expr
}

func (*LocalFunction) Kind() Kind { return KindLocalFunction }

func (f *LocalFunction) DeclName() string { return f.Name }
