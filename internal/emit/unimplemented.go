package emit

import "recast/internal/model"

// Unimplemented can be embedded in a map that is partial on purpose. Each
// of its operations fails with ErrNotImplemented.
type Unimplemented struct{}

func (Unimplemented) VisitScript(ctx *Context, n *model.Script) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitNamespace(ctx *Context, n *model.Namespace) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitUsing(ctx *Context, n *model.Using) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitAttribute(ctx *Context, n *model.Attribute) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitClass(ctx *Context, n *model.Class) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitStruct(ctx *Context, n *model.Struct) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitInterface(ctx *Context, n *model.Interface) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitEnum(ctx *Context, n *model.Enum) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitEnumMember(ctx *Context, n *model.EnumMember) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitDelegate(ctx *Context, n *model.Delegate) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTypeParameter(ctx *Context, n *model.TypeParameter) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitField(ctx *Context, n *model.Field) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitProperty(ctx *Context, n *model.Property) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitAccessor(ctx *Context, n *model.Accessor) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitIndexer(ctx *Context, n *model.Indexer) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitMethod(ctx *Context, n *model.Method) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitConstructor(ctx *Context, n *model.Constructor) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitDestructor(ctx *Context, n *model.Destructor) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitOperator(ctx *Context, n *model.Operator) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitParameter(ctx *Context, n *model.Parameter) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTypeRef(ctx *Context, n *model.TypeRef) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitVariable(ctx *Context, n *model.Variable) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitBlock(ctx *Context, n *model.Block) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLocalDecl(ctx *Context, n *model.LocalDecl) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitExprStmt(ctx *Context, n *model.ExprStmt) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitReturn(ctx *Context, n *model.Return) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitIf(ctx *Context, n *model.If) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitWhile(ctx *Context, n *model.While) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitDo(ctx *Context, n *model.Do) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitFor(ctx *Context, n *model.For) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitForeach(ctx *Context, n *model.Foreach) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitSwitch(ctx *Context, n *model.Switch) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitSwitchSection(ctx *Context, n *model.SwitchSection) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitBreak(ctx *Context, n *model.Break) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitContinue(ctx *Context, n *model.Continue) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitThrow(ctx *Context, n *model.Throw) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTry(ctx *Context, n *model.Try) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitCatchClause(ctx *Context, n *model.CatchClause) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitUsingStmt(ctx *Context, n *model.UsingStmt) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLock(ctx *Context, n *model.Lock) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitYield(ctx *Context, n *model.Yield) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitGoto(ctx *Context, n *model.Goto) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLabeled(ctx *Context, n *model.Labeled) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitEmpty(ctx *Context, n *model.Empty) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitCheckedStmt(ctx *Context, n *model.CheckedStmt) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitUnsafeStmt(ctx *Context, n *model.UnsafeStmt) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitFixed(ctx *Context, n *model.Fixed) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLocalFunction(ctx *Context, n *model.LocalFunction) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitIdentifier(ctx *Context, n *model.Identifier) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLiteral(ctx *Context, n *model.Literal) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitInterpolatedString(ctx *Context, n *model.InterpolatedString) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitThis(ctx *Context, n *model.This) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitBaseExpr(ctx *Context, n *model.BaseExpr) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitParen(ctx *Context, n *model.Paren) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitMemberAccess(ctx *Context, n *model.MemberAccess) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitElementAccess(ctx *Context, n *model.ElementAccess) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitInvocation(ctx *Context, n *model.Invocation) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitArgument(ctx *Context, n *model.Argument) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitObjectCreation(ctx *Context, n *model.ObjectCreation) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitArrayCreation(ctx *Context, n *model.ArrayCreation) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitInitializerList(ctx *Context, n *model.InitializerList) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitBinary(ctx *Context, n *model.Binary) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitAssignment(ctx *Context, n *model.Assignment) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitUnary(ctx *Context, n *model.Unary) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitConditional(ctx *Context, n *model.Conditional) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitCast(ctx *Context, n *model.Cast) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTypeTest(ctx *Context, n *model.TypeTest) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitIsPattern(ctx *Context, n *model.IsPattern) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitPattern(ctx *Context, n *model.Pattern) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTypeOperator(ctx *Context, n *model.TypeOperator) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitLambda(ctx *Context, n *model.Lambda) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitAwait(ctx *Context, n *model.Await) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitThrowExpr(ctx *Context, n *model.ThrowExpr) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTuple(ctx *Context, n *model.Tuple) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitSwitchExpr(ctx *Context, n *model.SwitchExpr) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitSwitchArm(ctx *Context, n *model.SwitchArm) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitCheckedExpr(ctx *Context, n *model.CheckedExpr) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitDeclarationExpr(ctx *Context, n *model.DeclarationExpr) error { return ctx.NotImplemented(n) }
func (Unimplemented) VisitTypeExpr(ctx *Context, n *model.TypeExpr) error { return ctx.NotImplemented(n) }
