package model

// children collects non-nil child nodes.
type children []Node

func (c *children) expr(e Expr) {
	if e != nil {
		*c = append(*c, e)
	}
}

func (c *children) stmt(s Stmt) {
	if s != nil {
		*c = append(*c, s)
	}
}

func (c *children) node(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func add[T any, P interface {
	*T
	Node
}](c *children, p P) {
	if p != nil {
		*c = append(*c, p)
	}
}

func addAll[T any, P interface {
	*T
	Node
}](c *children, ps []P) {
	for _, p := range ps {
		add(c, p)
	}
}

func (c *children) exprs(es []Expr) {
	for _, e := range es {
		c.expr(e)
	}
}

func (c *children) stmts(ss []Stmt) {
	for _, s := range ss {
		c.stmt(s)
	}
}

func (c *children) constraints(cs []Constraint) {
	for i := range cs {
		addAll(c, cs[i].Bounds)
	}
}

func (c *children) pattern(p *Pattern) { add(c, p) }

// memberNodes returns members in source order.
func memberNodes(c *children, m *Members) {
	for _, n := range m.order {
		c.node(n)
	}
}

// Children returns the direct child nodes of n in source order. It is used
// by the resolver passes; back ends walk their children explicitly.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *Script:
		addAll(&c, n.GlobalUsings)
		add(&c, n.Root)
	case *Namespace:
		addAll(&c, n.Usings)
		addAll(&c, n.Attributes)
		memberNodes(&c, &n.Members)
		add(&c, n.TopLevel)
	case *Using:
		add(&c, n.Target)
	case *Attribute:
		add(&c, n.Name)
		addAll(&c, n.Args)
	case *Class:
		typeDeclChildren(&c, &n.TypeDecl)
	case *Struct:
		typeDeclChildren(&c, &n.TypeDecl)
	case *Interface:
		typeDeclChildren(&c, &n.TypeDecl)
	case *Enum:
		addAll(&c, n.Attributes)
		add(&c, n.Underlying)
		addAll(&c, n.Members)
	case *EnumMember:
		addAll(&c, n.Attributes)
		c.expr(n.Value)
	case *Delegate:
		addAll(&c, n.Attributes)
		addAll(&c, n.TypeParams)
		add(&c, n.Return)
		addAll(&c, n.Params)
		c.constraints(n.Constraints)
	case *TypeParameter:
		addAll(&c, n.Attributes)
	case *Field:
		addAll(&c, n.Attributes)
		add(&c, n.Type)
		c.expr(n.Init)
	case *Property:
		addAll(&c, n.Attributes)
		add(&c, n.Type)
		add(&c, n.ExplicitInterface)
		addAll(&c, n.Accessors)
		c.expr(n.Expression)
		c.expr(n.Init)
	case *Accessor:
		addAll(&c, n.Attributes)
		add(&c, n.Body)
		c.expr(n.Expression)
	case *Indexer:
		addAll(&c, n.Attributes)
		add(&c, n.Type)
		add(&c, n.ExplicitInterface)
		addAll(&c, n.Params)
		addAll(&c, n.Accessors)
		c.expr(n.Expression)
	case *Method:
		addAll(&c, n.Attributes)
		addAll(&c, n.TypeParams)
		add(&c, n.Return)
		add(&c, n.ExplicitInterface)
		addAll(&c, n.Params)
		c.constraints(n.Constraints)
		add(&c, n.Body)
		c.expr(n.Expression)
	case *Constructor:
		addAll(&c, n.Attributes)
		addAll(&c, n.Params)
		if n.Initializer != nil {
			addAll(&c, n.Initializer.Args)
		}
		add(&c, n.Body)
		c.expr(n.Expression)
	case *Destructor:
		addAll(&c, n.Attributes)
		add(&c, n.Body)
		c.expr(n.Expression)
	case *Operator:
		addAll(&c, n.Attributes)
		add(&c, n.Return)
		addAll(&c, n.Params)
		add(&c, n.Body)
		c.expr(n.Expression)
	case *Parameter:
		addAll(&c, n.Attributes)
		add(&c, n.Type)
		c.expr(n.Default)
	case *TypeRef:
		for i := range n.Segments {
			addAll(&c, n.Segments[i].Args)
		}
		add(&c, n.Elem)
		for i := range n.Elems {
			add(&c, n.Elems[i].Type)
		}
	case *Variable:
		c.expr(n.Init)
	case *Block:
		c.stmts(n.Statements)
	case *LocalDecl:
		add(&c, n.Type)
		addAll(&c, n.Vars)
	case *ExprStmt:
		c.expr(n.X)
	case *Return:
		c.expr(n.Value)
	case *If:
		c.expr(n.Cond)
		c.stmt(n.Then)
		c.stmt(n.Else)
	case *While:
		c.expr(n.Cond)
		c.stmt(n.Body)
	case *Do:
		c.stmt(n.Body)
		c.expr(n.Cond)
	case *For:
		add(&c, n.Decl)
		c.exprs(n.Init)
		c.expr(n.Cond)
		c.exprs(n.Update)
		c.stmt(n.Body)
	case *Foreach:
		add(&c, n.Type)
		add(&c, n.Var)
		c.expr(n.Target)
		c.expr(n.Collection)
		c.stmt(n.Body)
	case *Switch:
		c.expr(n.Value)
		addAll(&c, n.Sections)
	case *SwitchSection:
		for i := range n.Labels {
			c.expr(n.Labels[i].Value)
			c.pattern(n.Labels[i].Pattern)
			c.expr(n.Labels[i].When)
		}
		c.stmts(n.Statements)
	case *Break, *Continue, *Empty:
	case *Throw:
		c.expr(n.Value)
	case *Try:
		add(&c, n.Body)
		addAll(&c, n.Catches)
		add(&c, n.Finally)
	case *CatchClause:
		add(&c, n.Type)
		c.expr(n.Filter)
		add(&c, n.Body)
	case *UsingStmt:
		add(&c, n.Decl)
		c.expr(n.Value)
		c.stmt(n.Body)
	case *Lock:
		c.expr(n.Value)
		c.stmt(n.Body)
	case *Yield:
		c.expr(n.Value)
	case *Goto:
		c.expr(n.Case)
	case *Labeled:
		c.stmt(n.Body)
	case *CheckedStmt:
		add(&c, n.Body)
	case *UnsafeStmt:
		add(&c, n.Body)
	case *Fixed:
		add(&c, n.Decl)
		c.stmt(n.Body)
	case *LocalFunction:
		addAll(&c, n.Attributes)
		addAll(&c, n.TypeParams)
		add(&c, n.Return)
		addAll(&c, n.Params)
		c.constraints(n.Constraints)
		add(&c, n.Body)
		c.expr(n.Expression)

	case *Identifier:
		addAll(&c, n.TypeArgs)
	case *Literal, *This, *BaseExpr:
	case *InterpolatedString:
		for i := range n.Parts {
			c.expr(n.Parts[i].Hole)
			c.expr(n.Parts[i].Alignment)
		}
	case *Paren:
		c.expr(n.X)
	case *MemberAccess:
		c.expr(n.X)
		addAll(&c, n.TypeArgs)
	case *ElementAccess:
		c.expr(n.X)
		addAll(&c, n.Args)
	case *Invocation:
		c.expr(n.Fn)
		addAll(&c, n.Args)
	case *Argument:
		c.expr(n.Value)
	case *ObjectCreation:
		add(&c, n.Type)
		addAll(&c, n.Args)
		add(&c, n.Init)
	case *ArrayCreation:
		add(&c, n.Type)
		c.exprs(n.Sizes)
		add(&c, n.Init)
	case *InitializerList:
		c.exprs(n.Elements)
	case *Binary:
		c.expr(n.L)
		c.expr(n.R)
	case *Assignment:
		c.expr(n.L)
		c.expr(n.R)
	case *Unary:
		c.expr(n.X)
	case *Conditional:
		c.expr(n.Cond)
		c.expr(n.Then)
		c.expr(n.Else)
	case *Cast:
		add(&c, n.Type)
		c.expr(n.X)
	case *TypeTest:
		c.expr(n.X)
		add(&c, n.Type)
	case *IsPattern:
		c.expr(n.X)
		c.pattern(n.Pattern)
	case *Pattern:
		add(&c, n.Type)
		c.expr(n.Value)
		c.pattern(n.Left)
		c.pattern(n.Right)
		for i := range n.Positional {
			c.pattern(n.Positional[i].Pattern)
		}
		for i := range n.Properties {
			c.pattern(n.Properties[i].Pattern)
		}
	case *TypeOperator:
		add(&c, n.Type)
	case *Lambda:
		add(&c, n.Return)
		addAll(&c, n.Params)
		c.node(n.Body)
	case *Await:
		c.expr(n.X)
	case *ThrowExpr:
		c.expr(n.X)
	case *Tuple:
		addAll(&c, n.Elements)
	case *SwitchExpr:
		c.expr(n.Value)
		addAll(&c, n.Arms)
	case *SwitchArm:
		c.pattern(n.Pattern)
		c.expr(n.When)
		c.expr(n.Value)
	case *CheckedExpr:
		c.expr(n.X)
	case *DeclarationExpr:
		add(&c, n.Type)
		addAll(&c, n.Vars)
	case *TypeExpr:
		add(&c, n.Type)
	}
	return c
}

func typeDeclChildren(c *children, d *TypeDecl) {
	addAll(c, d.Attributes)
	addAll(c, d.TypeParams)
	addAll(c, d.BaseTypes)
	c.constraints(d.Constraints)
	memberNodes(c, &d.Members)
}

// Walk visits n and its descendants in pre-order. enter returning false
// skips the children of that node; exit, when non-nil, runs after them.
func Walk(n Node, enter func(Node) bool, exit func(Node)) {
	if n == nil {
		return
	}
	if !enter(n) {
		return
	}
	for _, ch := range Children(n) {
		Walk(ch, enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

// Inspect calls fn for n and every descendant in pre-order.
func Inspect(n Node, fn func(Node) bool) {
	Walk(n, fn, nil)
}
