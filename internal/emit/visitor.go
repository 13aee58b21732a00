package emit

import "recast/internal/model"

// Visitor has one operation per model node kind. Every operation renders
// its node, children included, into the context's Buffer.
type Visitor interface {
	// declarations
	VisitScript(ctx *Context, n *model.Script) error
	VisitNamespace(ctx *Context, n *model.Namespace) error
	VisitUsing(ctx *Context, n *model.Using) error
	VisitAttribute(ctx *Context, n *model.Attribute) error
	VisitClass(ctx *Context, n *model.Class) error
	VisitStruct(ctx *Context, n *model.Struct) error
	VisitInterface(ctx *Context, n *model.Interface) error
	VisitEnum(ctx *Context, n *model.Enum) error
	VisitEnumMember(ctx *Context, n *model.EnumMember) error
	VisitDelegate(ctx *Context, n *model.Delegate) error
	VisitTypeParameter(ctx *Context, n *model.TypeParameter) error
	VisitField(ctx *Context, n *model.Field) error
	VisitProperty(ctx *Context, n *model.Property) error
	VisitAccessor(ctx *Context, n *model.Accessor) error
	VisitIndexer(ctx *Context, n *model.Indexer) error
	VisitMethod(ctx *Context, n *model.Method) error
	VisitConstructor(ctx *Context, n *model.Constructor) error
	VisitDestructor(ctx *Context, n *model.Destructor) error
	VisitOperator(ctx *Context, n *model.Operator) error
	VisitParameter(ctx *Context, n *model.Parameter) error
	VisitTypeRef(ctx *Context, n *model.TypeRef) error
	VisitVariable(ctx *Context, n *model.Variable) error

	// statements
	VisitBlock(ctx *Context, n *model.Block) error
	VisitLocalDecl(ctx *Context, n *model.LocalDecl) error
	VisitExprStmt(ctx *Context, n *model.ExprStmt) error
	VisitReturn(ctx *Context, n *model.Return) error
	VisitIf(ctx *Context, n *model.If) error
	VisitWhile(ctx *Context, n *model.While) error
	VisitDo(ctx *Context, n *model.Do) error
	VisitFor(ctx *Context, n *model.For) error
	VisitForeach(ctx *Context, n *model.Foreach) error
	VisitSwitch(ctx *Context, n *model.Switch) error
	VisitSwitchSection(ctx *Context, n *model.SwitchSection) error
	VisitBreak(ctx *Context, n *model.Break) error
	VisitContinue(ctx *Context, n *model.Continue) error
	VisitThrow(ctx *Context, n *model.Throw) error
	VisitTry(ctx *Context, n *model.Try) error
	VisitCatchClause(ctx *Context, n *model.CatchClause) error
	VisitUsingStmt(ctx *Context, n *model.UsingStmt) error
	VisitLock(ctx *Context, n *model.Lock) error
	VisitYield(ctx *Context, n *model.Yield) error
	VisitGoto(ctx *Context, n *model.Goto) error
	VisitLabeled(ctx *Context, n *model.Labeled) error
	VisitEmpty(ctx *Context, n *model.Empty) error
	VisitCheckedStmt(ctx *Context, n *model.CheckedStmt) error
	VisitUnsafeStmt(ctx *Context, n *model.UnsafeStmt) error
	VisitFixed(ctx *Context, n *model.Fixed) error
	VisitLocalFunction(ctx *Context, n *model.LocalFunction) error

	// expressions
	VisitIdentifier(ctx *Context, n *model.Identifier) error
	VisitLiteral(ctx *Context, n *model.Literal) error
	VisitInterpolatedString(ctx *Context, n *model.InterpolatedString) error
	VisitThis(ctx *Context, n *model.This) error
	VisitBaseExpr(ctx *Context, n *model.BaseExpr) error
	VisitParen(ctx *Context, n *model.Paren) error
	VisitMemberAccess(ctx *Context, n *model.MemberAccess) error
	VisitElementAccess(ctx *Context, n *model.ElementAccess) error
	VisitInvocation(ctx *Context, n *model.Invocation) error
	VisitArgument(ctx *Context, n *model.Argument) error
	VisitObjectCreation(ctx *Context, n *model.ObjectCreation) error
	VisitArrayCreation(ctx *Context, n *model.ArrayCreation) error
	VisitInitializerList(ctx *Context, n *model.InitializerList) error
	VisitBinary(ctx *Context, n *model.Binary) error
	VisitAssignment(ctx *Context, n *model.Assignment) error
	VisitUnary(ctx *Context, n *model.Unary) error
	VisitConditional(ctx *Context, n *model.Conditional) error
	VisitCast(ctx *Context, n *model.Cast) error
	VisitTypeTest(ctx *Context, n *model.TypeTest) error
	VisitIsPattern(ctx *Context, n *model.IsPattern) error
	VisitPattern(ctx *Context, n *model.Pattern) error
	VisitTypeOperator(ctx *Context, n *model.TypeOperator) error
	VisitLambda(ctx *Context, n *model.Lambda) error
	VisitAwait(ctx *Context, n *model.Await) error
	VisitThrowExpr(ctx *Context, n *model.ThrowExpr) error
	VisitTuple(ctx *Context, n *model.Tuple) error
	VisitSwitchExpr(ctx *Context, n *model.SwitchExpr) error
	VisitSwitchArm(ctx *Context, n *model.SwitchArm) error
	VisitCheckedExpr(ctx *Context, n *model.CheckedExpr) error
	VisitDeclarationExpr(ctx *Context, n *model.DeclarationExpr) error
	VisitTypeExpr(ctx *Context, n *model.TypeExpr) error
}

// dispatch calls the operation of v that matches n.
func dispatch(v Visitor, ctx *Context, n model.Node) error {
	switch n := n.(type) {
	case *model.Script:
		return v.VisitScript(ctx, n)
	case *model.Namespace:
		return v.VisitNamespace(ctx, n)
	case *model.Using:
		return v.VisitUsing(ctx, n)
	case *model.Attribute:
		return v.VisitAttribute(ctx, n)
	case *model.Class:
		return v.VisitClass(ctx, n)
	case *model.Struct:
		return v.VisitStruct(ctx, n)
	case *model.Interface:
		return v.VisitInterface(ctx, n)
	case *model.Enum:
		return v.VisitEnum(ctx, n)
	case *model.EnumMember:
		return v.VisitEnumMember(ctx, n)
	case *model.Delegate:
		return v.VisitDelegate(ctx, n)
	case *model.TypeParameter:
		return v.VisitTypeParameter(ctx, n)
	case *model.Field:
		return v.VisitField(ctx, n)
	case *model.Property:
		return v.VisitProperty(ctx, n)
	case *model.Accessor:
		return v.VisitAccessor(ctx, n)
	case *model.Indexer:
		return v.VisitIndexer(ctx, n)
	case *model.Method:
		return v.VisitMethod(ctx, n)
	case *model.Constructor:
		return v.VisitConstructor(ctx, n)
	case *model.Destructor:
		return v.VisitDestructor(ctx, n)
	case *model.Operator:
		return v.VisitOperator(ctx, n)
	case *model.Parameter:
		return v.VisitParameter(ctx, n)
	case *model.TypeRef:
		return v.VisitTypeRef(ctx, n)
	case *model.Variable:
		return v.VisitVariable(ctx, n)

	case *model.Block:
		return v.VisitBlock(ctx, n)
	case *model.LocalDecl:
		return v.VisitLocalDecl(ctx, n)
	case *model.ExprStmt:
		return v.VisitExprStmt(ctx, n)
	case *model.Return:
		return v.VisitReturn(ctx, n)
	case *model.If:
		return v.VisitIf(ctx, n)
	case *model.While:
		return v.VisitWhile(ctx, n)
	case *model.Do:
		return v.VisitDo(ctx, n)
	case *model.For:
		return v.VisitFor(ctx, n)
	case *model.Foreach:
		return v.VisitForeach(ctx, n)
	case *model.Switch:
		return v.VisitSwitch(ctx, n)
	case *model.SwitchSection:
		return v.VisitSwitchSection(ctx, n)
	case *model.Break:
		return v.VisitBreak(ctx, n)
	case *model.Continue:
		return v.VisitContinue(ctx, n)
	case *model.Throw:
		return v.VisitThrow(ctx, n)
	case *model.Try:
		return v.VisitTry(ctx, n)
	case *model.CatchClause:
		return v.VisitCatchClause(ctx, n)
	case *model.UsingStmt:
		return v.VisitUsingStmt(ctx, n)
	case *model.Lock:
		return v.VisitLock(ctx, n)
	case *model.Yield:
		return v.VisitYield(ctx, n)
	case *model.Goto:
		return v.VisitGoto(ctx, n)
	case *model.Labeled:
		return v.VisitLabeled(ctx, n)
	case *model.Empty:
		return v.VisitEmpty(ctx, n)
	case *model.CheckedStmt:
		return v.VisitCheckedStmt(ctx, n)
	case *model.UnsafeStmt:
		return v.VisitUnsafeStmt(ctx, n)
	case *model.Fixed:
		return v.VisitFixed(ctx, n)
	case *model.LocalFunction:
		return v.VisitLocalFunction(ctx, n)

	case *model.Identifier:
		return v.VisitIdentifier(ctx, n)
	case *model.Literal:
		return v.VisitLiteral(ctx, n)
	case *model.InterpolatedString:
		return v.VisitInterpolatedString(ctx, n)
	case *model.This:
		return v.VisitThis(ctx, n)
	case *model.BaseExpr:
		return v.VisitBaseExpr(ctx, n)
	case *model.Paren:
		return v.VisitParen(ctx, n)
	case *model.MemberAccess:
		return v.VisitMemberAccess(ctx, n)
	case *model.ElementAccess:
		return v.VisitElementAccess(ctx, n)
	case *model.Invocation:
		return v.VisitInvocation(ctx, n)
	case *model.Argument:
		return v.VisitArgument(ctx, n)
	case *model.ObjectCreation:
		return v.VisitObjectCreation(ctx, n)
	case *model.ArrayCreation:
		return v.VisitArrayCreation(ctx, n)
	case *model.InitializerList:
		return v.VisitInitializerList(ctx, n)
	case *model.Binary:
		return v.VisitBinary(ctx, n)
	case *model.Assignment:
		return v.VisitAssignment(ctx, n)
	case *model.Unary:
		return v.VisitUnary(ctx, n)
	case *model.Conditional:
		return v.VisitConditional(ctx, n)
	case *model.Cast:
		return v.VisitCast(ctx, n)
	case *model.TypeTest:
		return v.VisitTypeTest(ctx, n)
	case *model.IsPattern:
		return v.VisitIsPattern(ctx, n)
	case *model.Pattern:
		return v.VisitPattern(ctx, n)
	case *model.TypeOperator:
		return v.VisitTypeOperator(ctx, n)
	case *model.Lambda:
		return v.VisitLambda(ctx, n)
	case *model.Await:
		return v.VisitAwait(ctx, n)
	case *model.ThrowExpr:
		return v.VisitThrowExpr(ctx, n)
	case *model.Tuple:
		return v.VisitTuple(ctx, n)
	case *model.SwitchExpr:
		return v.VisitSwitchExpr(ctx, n)
	case *model.SwitchArm:
		return v.VisitSwitchArm(ctx, n)
	case *model.CheckedExpr:
		return v.VisitCheckedExpr(ctx, n)
	case *model.DeclarationExpr:
		return v.VisitDeclarationExpr(ctx, n)
	case *model.TypeExpr:
		return v.VisitTypeExpr(ctx, n)
	}
	return ctx.errorAt(n, ErrUnhandledNode, "%T", n)
}
