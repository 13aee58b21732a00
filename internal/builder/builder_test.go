package builder

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/model"
	"recast/internal/parse"
	"recast/internal/source"
	preludeembed "recast/runtime"
)

func build(t *testing.T, src string) (*model.Script, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cs", []byte(src)))
	tree, err := parse.Parse(context.Background(), file)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return Build(tree, file, Options{})
}

func mustBuild(t *testing.T, src string) *model.Script {
	t.Helper()
	script, err := build(t, src)
	require.NoError(t, err)
	return script
}

func onlyNamespace(t *testing.T, s *model.Script) *model.Namespace {
	t.Helper()
	require.Len(t, s.Root.Members.Types, 1)
	ns, ok := s.Root.Members.Types[0].(*model.Namespace)
	require.True(t, ok)
	return ns
}

func onlyClass(t *testing.T, ns *model.Namespace) *model.Class {
	t.Helper()
	require.Len(t, ns.Members.Types, 1)
	c, ok := ns.Members.Types[0].(*model.Class)
	require.True(t, ok)
	return c
}

func methodBody(t *testing.T, body string) []model.Stmt {
	t.Helper()
	s := mustBuild(t, "class C { void M() { "+body+" } }")
	require.Len(t, s.Root.Members.Types, 1)
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Members.Methods, 1)
	require.NotNil(t, c.Members.Methods[0].Body)
	return c.Members.Methods[0].Body.Statements
}

func TestBuildNamespaceAndClass(t *testing.T) {
	s := mustBuild(t, `
using System;
using IO = System.IO;

namespace A.B {
    public class X : Base, IThing {
        private int y;
        public static int Count;
        public string Name { get; set; }
        public X() { }
        public void Run(int n) { }
    }
}`)
	require.Len(t, s.Root.Usings, 2)
	assert.Equal(t, "System", s.Root.Usings[0].Target.Dotted())
	assert.Equal(t, "IO", s.Root.Usings[1].Alias)
	assert.Equal(t, "System.IO", s.Root.Usings[1].Target.Dotted())

	ns := onlyNamespace(t, s)
	assert.Equal(t, "A.B", ns.Name)
	c := onlyClass(t, ns)
	assert.Equal(t, "X", c.Name)
	assert.Equal(t, model.AccessPublic, c.Modifiers.Access)
	require.Len(t, c.BaseTypes, 2)
	assert.Equal(t, "Base", c.BaseTypes[0].String())
	assert.Equal(t, "IThing", c.BaseTypes[1].String())

	m := c.Members
	require.Len(t, m.Fields, 1)
	assert.Equal(t, "y", m.Fields[0].Name)
	require.Len(t, m.StaticFields, 1)
	assert.Equal(t, "Count", m.StaticFields[0].Name)
	require.Len(t, m.Properties, 1)
	assert.Len(t, m.Properties[0].Accessors, 2)
	require.Len(t, m.Constructors, 1)
	require.Len(t, m.Methods, 1)
	run := m.Methods[0]
	assert.Equal(t, "Run", run.Name)
	assert.Equal(t, "void", run.Return.String())
	require.Len(t, run.Params, 1)
	assert.Equal(t, "n", run.Params[0].Name)
	assert.Equal(t, "int", run.Params[0].Type.String())
}

func TestBuildSplitsFieldDeclarators(t *testing.T) {
	s := mustBuild(t, "class C { int a = 1, b; }")
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Members.Fields, 2)
	a, b := c.Members.Fields[0], c.Members.Fields[1]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "b", b.Name)
	assert.NotNil(t, a.Init)
	assert.Nil(t, b.Init)
	assert.NotZero(t, a.Group)
	assert.Equal(t, a.Group, b.Group)
	assert.Same(t, a.Type, b.Type)
}

func TestBuildCommentsBecomeTrivia(t *testing.T) {
	s := mustBuild(t, `
class C {
    // first
    int a;
    /* second */
    void M() {
        // inside
        return;
    }
}`)
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Members.Fields, 1)
	require.Len(t, c.Members.Fields[0].Leading, 1)
	assert.Equal(t, "// first", c.Members.Fields[0].Leading[0].Text)

	m := c.Members.Methods[0]
	require.Len(t, m.Leading, 1)
	assert.True(t, m.Leading[0].Block)
	require.Len(t, m.Body.Statements, 1)
	ret := m.Body.Statements[0]
	require.Len(t, ret.Trivia(), 1)
	assert.Equal(t, "// inside", ret.Trivia()[0].Text)
}

func TestBuildDropComments(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cs", []byte("class C { // x\n int a; }")))
	tree, err := parse.Parse(context.Background(), file)
	require.NoError(t, err)
	defer tree.Close()
	s, err := Build(tree, file, Options{DropComments: true})
	require.NoError(t, err)
	c := s.Root.Members.Types[0].(*model.Class)
	assert.Empty(t, c.Members.Fields[0].Leading)
}

func TestBuildSyntaxErrorIsUnhandled(t *testing.T) {
	_, err := build(t, "class C { void M( { }")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnhandledConstruct))
	assert.Contains(t, err.Error(), "test.cs:")
}

func TestBuildStatements(t *testing.T) {
	stmts := methodBody(t, `
int x = 0;
if (x > 1) x++; else x--;
while (x < 10) { x += 2; }
for (int i = 0; i < 3; i++) { }
foreach (var item in items) { }
switch (x) { case 1: break; default: return; }
try { } catch (Exception e) { } finally { }
`)
	require.Len(t, stmts, 7)
	ld, ok := stmts[0].(*model.LocalDecl)
	require.True(t, ok)
	assert.Equal(t, "int", ld.Type.String())
	require.Len(t, ld.Vars, 1)
	assert.Equal(t, "x", ld.Vars[0].Name)

	ifs, ok := stmts[1].(*model.If)
	require.True(t, ok)
	assert.NotNil(t, ifs.Else)
	bin, ok := ifs.Cond.(*model.Binary)
	require.True(t, ok)
	assert.Equal(t, ">", bin.Op)

	_, ok = stmts[2].(*model.While)
	assert.True(t, ok)

	f, ok := stmts[3].(*model.For)
	require.True(t, ok)
	require.NotNil(t, f.Decl)
	assert.NotNil(t, f.Cond)
	assert.Len(t, f.Update, 1)

	fe, ok := stmts[4].(*model.Foreach)
	require.True(t, ok)
	assert.Equal(t, model.TypeVar, fe.Type.Form)
	require.NotNil(t, fe.Var)
	assert.Equal(t, "item", fe.Var.Name)

	sw, ok := stmts[5].(*model.Switch)
	require.True(t, ok)
	require.Len(t, sw.Sections, 2)
	require.Len(t, sw.Sections[0].Labels, 1)
	assert.NotNil(t, sw.Sections[0].Labels[0].Value)
	assert.True(t, sw.Sections[1].Labels[0].Default)

	tr, ok := stmts[6].(*model.Try)
	require.True(t, ok)
	require.Len(t, tr.Catches, 1)
	assert.Equal(t, "e", tr.Catches[0].Name)
	assert.Equal(t, "Exception", tr.Catches[0].Type.String())
	assert.NotNil(t, tr.Finally)
}

func exprOf(t *testing.T, src string) model.Expr {
	t.Helper()
	stmts := methodBody(t, src+";")
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*model.ExprStmt)
	require.True(t, ok, "got %T", stmts[0])
	return es.X
}

func TestBuildInvocationAndMemberAccess(t *testing.T) {
	call, ok := exprOf(t, `Console.WriteLine("hi", 2)`).(*model.Invocation)
	require.True(t, ok)
	ma, ok := call.Fn.(*model.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "WriteLine", ma.Name)
	id, ok := ma.X.(*model.Identifier)
	require.True(t, ok)
	assert.Equal(t, "Console", id.Name)
	require.Len(t, call.Args, 2)
	lit, ok := call.Args[0].Value.(*model.Literal)
	require.True(t, ok)
	assert.Equal(t, model.LitString, lit.Lit)
	assert.Equal(t, `"hi"`, lit.Raw)
}

func TestBuildConditionalAccess(t *testing.T) {
	as, ok := exprOf(t, `x = a?.b`).(*model.Assignment)
	require.True(t, ok)
	ma, ok := as.R.(*model.MemberAccess)
	require.True(t, ok, "got %T", as.R)
	assert.True(t, ma.Conditional)
	assert.Equal(t, "b", ma.Name)
	recv, ok := ma.X.(*model.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", recv.Name)
}

func TestBuildLambdaAndObjectCreation(t *testing.T) {
	as, ok := exprOf(t, `f = (x, y) => x + y`).(*model.Assignment)
	require.True(t, ok)
	assert.Equal(t, "=", as.Op)
	lm, ok := as.R.(*model.Lambda)
	require.True(t, ok)
	require.Len(t, lm.Params, 2)
	assert.Equal(t, "y", lm.Params[1].Name)
	_, ok = lm.Body.(*model.Binary)
	assert.True(t, ok)

	as, ok = exprOf(t, `p = new Point(1, 2) { Z = 3 }`).(*model.Assignment)
	require.True(t, ok)
	oc, ok := as.R.(*model.ObjectCreation)
	require.True(t, ok)
	assert.Equal(t, "Point", oc.Type.String())
	assert.Len(t, oc.Args, 2)
	require.NotNil(t, oc.Init)
	assert.Len(t, oc.Init.Elements, 1)
}

func TestBuildInterpolatedString(t *testing.T) {
	as, ok := exprOf(t, `s = $"a{x,4:F2}b{y}"`).(*model.Assignment)
	require.True(t, ok)
	is, ok := as.R.(*model.InterpolatedString)
	require.True(t, ok)
	require.Len(t, is.Parts, 4)
	assert.Equal(t, "a", is.Parts[0].Text)
	assert.NotNil(t, is.Parts[1].Hole)
	assert.NotNil(t, is.Parts[1].Alignment)
	assert.Equal(t, "F2", is.Parts[1].Format)
	assert.Equal(t, "b", is.Parts[2].Text)
	assert.Nil(t, is.Parts[3].Alignment)
}

func TestBuildArrayCreationSizes(t *testing.T) {
	as, ok := exprOf(t, `a = new int[3]`).(*model.Assignment)
	require.True(t, ok)
	ac, ok := as.R.(*model.ArrayCreation)
	require.True(t, ok)
	require.Len(t, ac.Sizes, 1)
	assert.Equal(t, "int[]", ac.Type.String())
}

func TestBuildEnumAndGenerics(t *testing.T) {
	s := mustBuild(t, `
enum Color : byte { Red = 1, Green }
class Box<T> where T : class, new() {
    List<Dictionary<string, T>> items;
}`)
	require.Len(t, s.Root.Members.Types, 2)
	e, ok := s.Root.Members.Types[0].(*model.Enum)
	require.True(t, ok)
	assert.Equal(t, "byte", e.Underlying.String())
	require.Len(t, e.Members, 2)
	assert.NotNil(t, e.Members[0].Value)
	assert.Nil(t, e.Members[1].Value)

	box := s.Root.Members.Types[1].(*model.Class)
	require.Len(t, box.TypeParams, 1)
	assert.Equal(t, "T", box.TypeParams[0].Name)
	require.Len(t, box.Constraints, 1)
	assert.Equal(t, "T", box.Constraints[0].Param)
	require.Len(t, box.Members.Fields, 1)
	assert.Equal(t, "List<Dictionary<string, T>>", box.Members.Fields[0].Type.String())
}

func TestBuildTopLevelStatements(t *testing.T) {
	s := mustBuild(t, `
using System;
Console.WriteLine(1);
int x = 2;
`)
	require.NotNil(t, s.Root.TopLevel)
	assert.Len(t, s.Root.TopLevel.Statements, 2)
}

func TestBuildFileScopedNamespace(t *testing.T) {
	s := mustBuild(t, `
namespace A.B;
class X { }
class Y { }
`)
	ns := onlyNamespace(t, s)
	assert.True(t, ns.FileScoped)
	assert.Equal(t, "A.B", ns.Name)
	assert.Len(t, ns.Members.Types, 2)
}

func TestBuildPatterns(t *testing.T) {
	stmts := methodBody(t, `
if (o is Point { X: 0 } p) { }
var r = n switch { < 0 => -1, 0 => 0, _ => 1 };
`)
	require.Len(t, stmts, 2)
	ifs := stmts[0].(*model.If)
	ip, ok := ifs.Cond.(*model.IsPattern)
	require.True(t, ok)
	assert.Equal(t, model.PatRecursive, ip.Pattern.Form)
	assert.Equal(t, "p", ip.Pattern.Name)
	require.Len(t, ip.Pattern.Properties, 1)
	assert.Equal(t, "X", ip.Pattern.Properties[0].Name)

	ld := stmts[1].(*model.LocalDecl)
	sw, ok := ld.Vars[0].Init.(*model.SwitchExpr)
	require.True(t, ok)
	require.Len(t, sw.Arms, 3)
	assert.Equal(t, model.PatRelational, sw.Arms[0].Pattern.Form)
	assert.Equal(t, "<", sw.Arms[0].Pattern.Op)
	assert.Equal(t, model.PatConstant, sw.Arms[1].Pattern.Form)
	assert.Equal(t, model.PatDiscard, sw.Arms[2].Pattern.Form)
}

func TestBuildPreludeFiles(t *testing.T) {
	files, err := preludeembed.Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		t.Run(f.Name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual(f.Name, f.Content))
			tree, err := parse.Parse(context.Background(), file)
			require.NoError(t, err)
			defer tree.Close()
			s, err := Build(tree, file, Options{})
			require.NoError(t, err)
			assert.NotEmpty(t, s.Root.Members.Types)
		})
	}
}

func TestBuildParamsArray(t *testing.T) {
	s := mustBuild(t, "class C { void M(int a, [X] params int[] xs) { } void N(params object[] values) { } }")
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Members.Methods, 2)

	ps := c.Members.Methods[0].Params
	require.Len(t, ps, 2)
	assert.Equal(t, "a", ps[0].Name)
	assert.False(t, ps[0].Modifiers.Has(model.FlagParams))
	assert.Equal(t, "xs", ps[1].Name)
	assert.True(t, ps[1].Modifiers.Has(model.FlagParams))
	assert.Equal(t, "int[]", ps[1].Type.String())
	require.Len(t, ps[1].Attributes, 1)

	ps = c.Members.Methods[1].Params
	require.Len(t, ps, 1)
	assert.Equal(t, "values", ps[0].Name)
	assert.True(t, ps[0].Modifiers.Has(model.FlagParams))
	assert.Equal(t, "object[]", ps[0].Type.String())
}

func TestBuildParameterModifiersAndDefaults(t *testing.T) {
	s := mustBuild(t, "static class C { static void M(this string s, ref int r, int d = 4) { } }")
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Members.Methods, 1)
	ps := c.Members.Methods[0].Params
	require.Len(t, ps, 3)
	assert.True(t, ps[0].Modifiers.Has(model.FlagThis))
	assert.True(t, ps[1].Modifiers.Has(model.FlagRef))
	require.NotNil(t, ps[2].Default)
	lit, ok := ps[2].Default.(*model.Literal)
	require.True(t, ok)
	assert.Equal(t, "4", lit.Raw)
}

func TestBuildAttributeArguments(t *testing.T) {
	s := mustBuild(t, `[A(1, N = "x", n: 2)] class C { }`)
	c := s.Root.Members.Types[0].(*model.Class)
	require.Len(t, c.Attributes, 1)
	args := c.Attributes[0].Args
	require.Len(t, args, 3)
	assert.Empty(t, args[0].Name)
	assert.Equal(t, "N", args[1].Name)
	assert.True(t, args[1].NameEquals)
	assert.Equal(t, "n", args[2].Name)
	assert.False(t, args[2].NameEquals)
}

func TestBuildPropertySubpatternKeepsMemberName(t *testing.T) {
	as, ok := exprOf(t, `b = o is string { Length: > 2 } s`).(*model.Assignment)
	require.True(t, ok)
	ip, ok := as.R.(*model.IsPattern)
	require.True(t, ok)
	p := ip.Pattern
	assert.Equal(t, model.PatRecursive, p.Form)
	assert.Equal(t, "string", p.Type.String())
	assert.Equal(t, "s", p.Name)
	require.Len(t, p.Properties, 1)
	assert.Equal(t, "Length", p.Properties[0].Name)
	assert.Equal(t, model.PatRelational, p.Properties[0].Pattern.Form)

	as, ok = exprOf(t, `b = o is { A.B: 1, C: var c }`).(*model.Assignment)
	require.True(t, ok)
	props := as.R.(*model.IsPattern).Pattern.Properties
	require.Len(t, props, 2)
	assert.Equal(t, "A.B", props[0].Name)
	assert.Equal(t, "C", props[1].Name)
	assert.Equal(t, model.PatVar, props[1].Pattern.Form)
	assert.Equal(t, "c", props[1].Pattern.Name)
}

func TestBuildThisAndBaseOperands(t *testing.T) {
	stmts := methodBody(t, "F(this); var q = this; base.M(); return this;")
	require.Len(t, stmts, 4)
	call := stmts[0].(*model.ExprStmt).X.(*model.Invocation)
	require.Len(t, call.Args, 1)
	assert.IsType(t, &model.This{}, call.Args[0].Value)
	assert.IsType(t, &model.This{}, stmts[1].(*model.LocalDecl).Vars[0].Init)
	ma := stmts[2].(*model.ExprStmt).X.(*model.Invocation).Fn.(*model.MemberAccess)
	assert.IsType(t, &model.BaseExpr{}, ma.X)
	assert.IsType(t, &model.This{}, stmts[3].(*model.Return).Value)
}

func TestBuildNamedArgumentsAndElementBinding(t *testing.T) {
	call, ok := exprOf(t, `F(a, b: 1, out var d)`).(*model.Invocation)
	require.True(t, ok)
	require.Len(t, call.Args, 3)
	assert.Equal(t, "b", call.Args[1].Name)
	assert.Equal(t, "out", call.Args[2].Modifier)

	as, ok := exprOf(t, `y = a?[0]`).(*model.Assignment)
	require.True(t, ok)
	ea, ok := as.R.(*model.ElementAccess)
	require.True(t, ok, "got %T", as.R)
	assert.True(t, ea.Conditional)
	require.Len(t, ea.Args, 1)

	as, ok = exprOf(t, `d = new D { E = 2, [0] = 3 }`).(*model.Assignment)
	require.True(t, ok)
	oc := as.R.(*model.ObjectCreation)
	require.Len(t, oc.Init.Elements, 2)
	idx := oc.Init.Elements[1].(*model.Assignment).L.(*model.ElementAccess)
	assert.Nil(t, idx.X)
	assert.False(t, idx.Conditional)
}

func TestBuildAnonymousObjectMembers(t *testing.T) {
	as, ok := exprOf(t, `a = new { Size = 1, x }`).(*model.Assignment)
	require.True(t, ok)
	oc, ok := as.R.(*model.ObjectCreation)
	require.True(t, ok)
	assert.True(t, oc.Anonymous)
	require.Len(t, oc.Init.Elements, 2)
	named, ok := oc.Init.Elements[0].(*model.Assignment)
	require.True(t, ok)
	assert.Equal(t, "Size", named.L.(*model.Identifier).Name)
	assert.IsType(t, &model.Identifier{}, oc.Init.Elements[1])
}

func TestBuildDeconstruction(t *testing.T) {
	stmts := methodBody(t, "var (t, u) = q; foreach (var (k, v) in m) { }")
	require.Len(t, stmts, 2)
	as, ok := stmts[0].(*model.ExprStmt).X.(*model.Assignment)
	require.True(t, ok)
	de, ok := as.L.(*model.DeclarationExpr)
	require.True(t, ok)
	assert.True(t, de.Parenthesized)
	require.Len(t, de.Vars, 2)
	assert.Equal(t, "u", de.Vars[1].Name)

	fe := stmts[1].(*model.Foreach)
	assert.Nil(t, fe.Var)
	target, ok := fe.Target.(*model.DeclarationExpr)
	require.True(t, ok)
	assert.Equal(t, model.TypeVar, target.Type.Form)
	require.Len(t, target.Vars, 2)
	assert.Equal(t, "k", target.Vars[0].Name)
}

func TestBuildStackedSwitchLabels(t *testing.T) {
	stmts := methodBody(t, "switch (x) { case 1: case > 5 and < 9: f(); break; case string s when s.Length > 0: break; default: break; }")
	require.Len(t, stmts, 1)
	sw := stmts[0].(*model.Switch)
	require.Len(t, sw.Sections, 3)
	require.Len(t, sw.Sections[0].Labels, 2)
	assert.NotNil(t, sw.Sections[0].Labels[0].Value)
	require.NotNil(t, sw.Sections[0].Labels[1].Pattern)
	assert.Equal(t, model.PatAnd, sw.Sections[0].Labels[1].Pattern.Form)
	assert.Len(t, sw.Sections[0].Statements, 2)
	l := sw.Sections[1].Labels[0]
	require.NotNil(t, l.Pattern)
	assert.Equal(t, model.PatDeclaration, l.Pattern.Form)
	assert.NotNil(t, l.When)
	assert.True(t, sw.Sections[2].Labels[0].Default)
}
