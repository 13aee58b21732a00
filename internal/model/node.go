package model

import "recast/internal/source"

// Comment is a source comment attached as leading trivia.
type Comment struct {
	Span  source.Span
	Text  string
	Block bool
}

// Node is implemented by every model construct. The unexported marker keeps
// the set closed so type switches over it can be exhaustive.
type Node interface {
	Kind() Kind
	Span() source.Span
	Trivia() []Comment
	SetTrivia(c []Comment)
	Symbol() SymbolID
	SetSymbol(id SymbolID)
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Base carries the fields shared by every node.
type Base struct {
	Pos     source.Span
	Leading []Comment
	Decl    SymbolID
}

func (b *Base) Span() source.Span { return b.Pos }
func (b *Base) Trivia() []Comment { return b.Leading }
func (b *Base) SetTrivia(c []Comment) { b.Leading = c }
func (b *Base) Symbol() SymbolID { return b.Decl }
func (b *Base) SetSymbol(id SymbolID) { b.Decl = id }
func (b *Base) node() {}

// StmtBase is embedded by statements.
type StmtBase struct{ Base }

func (StmtBase) stmtNode() {}

// ExprBase is embedded by expressions.
type ExprBase struct{ Base }

func (ExprBase) exprNode() {}

// Named is implemented by declarations that introduce a name.
type Named interface {
	Node
	DeclName() string
}
