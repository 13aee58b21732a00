package symbols_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/builder"
	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/parse"
	"recast/internal/source"
	"recast/internal/symbols"
	"recast/internal/testkit"
)

const prelude = `
namespace System {
    public class Object {
        public virtual string ToString() { return null; }
    }
    public class String { public int Length; }
    public struct Int32 { public static int Parse(string s) { return 0; } }
    public struct Char { }
    public struct Boolean { }
    public class Array { public int Length; }
    public static class Console {
        public static void WriteLine(object value) { }
        public static void WriteLine(string format, object arg) { }
    }
}
`

type fixture struct {
	files   *source.FileSet
	bag     *diag.Bag
	table   *symbols.Table
	scripts []*model.Script
}

func declare(t *testing.T, srcs ...string) *fixture {
	t.Helper()
	f := &fixture{files: source.NewFileSet(), bag: diag.NewBag(100)}
	f.table = symbols.NewTable(symbols.Options{Reporter: diag.BagReporter{Bag: f.bag}}, nil)
	for i, src := range srcs {
		file := f.files.Get(f.files.AddVirtual(fmt.Sprintf("f%d.cs", i), []byte(src)))
		tree, err := parse.Parse(context.Background(), file)
		require.NoError(t, err)
		t.Cleanup(tree.Close)
		script, err := builder.Build(tree, file, builder.Options{})
		require.NoError(t, err)
		f.scripts = append(f.scripts, script)
	}
	f.table.Declare(f.scripts)
	return f
}

func resolve(t *testing.T, srcs ...string) *fixture {
	t.Helper()
	f := declare(t, srcs...)
	f.table.Merge()
	f.table.Link()
	f.table.Bind()
	require.NoError(t, testkit.CheckForest(f.table))
	for _, s := range f.scripts {
		require.NoError(t, testkit.CheckDecls(f.table, s))
	}
	return f
}

func (f *fixture) codes() []diag.Code {
	var out []diag.Code
	for _, d := range f.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func (f *fixture) count(code diag.Code) int {
	n := 0
	for _, c := range f.codes() {
		if c == code {
			n++
		}
	}
	return n
}

func (f *fixture) lookup(t *testing.T, fqn string) *symbols.Symbol {
	t.Helper()
	id := f.table.Lookup(fqn)
	require.True(t, id.IsValid(), "symbol %s", fqn)
	return f.table.Sym(id)
}

// find returns the first node of type T in s accepted by ok.
func find[T model.Node](t *testing.T, s *model.Script, ok func(T) bool) T {
	t.Helper()
	var hit T
	found := false
	model.Inspect(s, func(n model.Node) bool {
		if found {
			return false
		}
		if v, is := n.(T); is && ok(v) {
			hit, found = v, true
		}
		return !found
	})
	require.True(t, found, "node not found")
	return hit
}

func member(name string) func(*model.MemberAccess) bool {
	return func(m *model.MemberAccess) bool { return m.Name == name }
}

func ident(name string) func(*model.Identifier) bool {
	return func(id *model.Identifier) bool { return id.Name == name }
}

func TestMergeNamespacesAndPartialTypes(t *testing.T) {
	f := resolve(t,
		`namespace A { partial class P { int x; } }`,
		`namespace A { partial class P { int y; } class Q { } }`)

	ns := f.lookup(t, "A")
	assert.Len(t, ns.Decls, 2)
	p := f.lookup(t, "A.P")
	assert.Len(t, p.Decls, 2)
	assert.True(t, f.table.Lookup("A.Q").IsValid())

	var names []string
	for _, c := range p.Children {
		names = append(names, f.table.Name(c))
	}
	assert.Equal(t, []string{"x", "y"}, names)
	assert.Zero(t, f.count(diag.SemaDuplicateSymbol))
}

func TestMergeIsIdempotent(t *testing.T) {
	f := resolve(t, `namespace N { partial class P { } }`, `namespace N { partial class P { } }`)
	var before bytes.Buffer
	require.NoError(t, f.table.Snapshot(nil).WriteJSON(&before))
	f.table.Merge()
	var after bytes.Buffer
	require.NoError(t, f.table.Snapshot(nil).WriteJSON(&after))
	assert.Equal(t, before.String(), after.String())
}

func TestDuplicateTypesAreNotMerged(t *testing.T) {
	f := resolve(t, `class D { } class D { }`)
	assert.Equal(t, 1, f.count(diag.SemaDuplicateSymbol))
	n := 0
	for _, id := range f.table.Symbols.IDs() {
		if sym := f.table.Get(id); sym.Kind == symbols.KindClass && !sym.MergedInto.IsValid() {
			n++
		}
	}
	assert.Equal(t, 2, n)
}

func TestPartialNeedsMatchingKind(t *testing.T) {
	f := resolve(t, `partial class K { } partial struct K { }`)
	assert.Equal(t, 1, f.count(diag.SemaDuplicateSymbol))
}

func TestImportsAndAliasesResolveMembers(t *testing.T) {
	f := resolve(t, prelude, `
using System;
using C = System.Console;

class P {
    void M() {
        C.WriteLine(1);
        Console.WriteLine("{0}", 2);
    }
}`)
	require.Empty(t, f.codes())
	script := f.scripts[1]

	alias := f.table.Sym(script.Root.Usings[1].Symbol())
	assert.Equal(t, symbols.KindAlias, alias.Kind)
	assert.Equal(t, "System.Console", f.table.FullName(alias.AliasTarget))

	calls := 0
	model.Inspect(script, func(n model.Node) bool {
		if m, ok := n.(*model.MemberAccess); ok && m.Name == "WriteLine" {
			require.True(t, m.Target.IsValid())
			assert.Equal(t, "System.Console.WriteLine", f.table.FullName(m.Target))
			calls++
		}
		return true
	})
	assert.Equal(t, 2, calls)

	// the two-argument call prefers the two-parameter overload
	second := find(t, script, func(inv *model.Invocation) bool { return len(inv.Args) == 2 })
	target := f.table.Sym(second.Fn.(*model.MemberAccess).Target)
	assert.Equal(t, 2, target.Params)
}

func TestUnresolvedImportReportsOnce(t *testing.T) {
	f := resolve(t, prelude, `
using Nope.Missing;
class X { void M() { int a = 1; a = a + 1; } }`)
	require.True(t, f.table.RootType().IsValid())
	assert.Equal(t, []diag.Code{diag.SemaUnresolvedImport}, f.codes())
}

func TestAliasCycleIsReported(t *testing.T) {
	f := resolve(t, `
using A = B;
using B = A;
class X { }`)
	assert.Equal(t, 1, f.count(diag.SemaAliasCycle))
	assert.Zero(t, f.count(diag.SemaUnresolvedImport))
	for _, u := range f.scripts[0].Root.Usings {
		assert.False(t, f.table.Sym(u.Symbol()).AliasTarget.IsValid())
	}
}

func TestAliasChainIsBounded(t *testing.T) {
	f := resolve(t, prelude, `
using C1 = System.Console;
using C2 = C1;
using C3 = C2;
class X { }`)
	usings := f.scripts[1].Root.Usings
	require.Len(t, usings, 3)
	assert.Equal(t, "System.Console", f.table.FullName(f.table.Sym(usings[1].Symbol()).AliasTarget))
	assert.False(t, f.table.Sym(usings[2].Symbol()).AliasTarget.IsValid())
	assert.Equal(t, 1, f.count(diag.SemaAliasDepthExceeded))
}

func TestRootTypeIsForwardedNotCopied(t *testing.T) {
	f := resolve(t, prelude, `
class A { }
class B : A { string Describe() { return ToString(); } }
struct S { }`)
	root := f.table.RootType()
	require.True(t, root.IsValid())
	childrenBefore := len(f.table.Sym(root).Children)

	assert.Equal(t, root, f.lookup(t, "A").Root)
	assert.Equal(t, root, f.lookup(t, "S").Root)
	assert.False(t, f.lookup(t, "B").Root.IsValid())
	assert.False(t, f.table.Sym(root).Root.IsValid())
	assert.Len(t, f.table.Sym(root).Children, childrenBefore)

	call := find(t, f.scripts[1], ident("ToString"))
	assert.Equal(t, "System.Object.ToString", f.table.FullName(call.Target))
}

func TestMissingRootTypeWarns(t *testing.T) {
	f := resolve(t, `class A { }`, `class B { }`)
	require.Equal(t, 1, f.count(diag.SemaMissingRootType))
	assert.False(t, f.bag.HasErrors())

	var d diag.Diagnostic
	for _, it := range f.bag.Items() {
		if it.Code == diag.SemaMissingRootType {
			d = it
		}
	}
	assert.False(t, d.Primary.HasFile())
	assert.True(t, strings.HasPrefix(d.Format(f.files), "<project>: "))
	assert.NotContains(t, d.Format(f.files), "f0.cs")
}

func TestInheritanceCycleIsBroken(t *testing.T) {
	f := resolve(t, `class A : B { } class B : A { }`)
	assert.Equal(t, 1, f.count(diag.SemaInheritanceCycle))
	a, b := f.lookup(t, "A"), f.lookup(t, "B")
	assert.Equal(t, 1, len(a.Bases)+len(b.Bases))
}

func TestBindLocalsParametersAndMembers(t *testing.T) {
	f := resolve(t, prelude, `
class Point { public int X; public int Y; }
class P {
    int count;
    void M(int n) {
        var p = new Point();
        p.X = n + count;
        foreach (var q in new Point[2]) { q.Y = 1; }
    }
}`)
	s := f.scripts[1]

	n := find(t, s, ident("n"))
	assert.Equal(t, symbols.KindParameter, f.table.Sym(n.Target).Kind)
	count := find(t, s, ident("count"))
	assert.Equal(t, "P.count", f.table.FullName(count.Target))

	x := find(t, s, member("X"))
	assert.Equal(t, "Point.X", f.table.FullName(x.Target))
	y := find(t, s, member("Y"))
	assert.Equal(t, "Point.Y", f.table.FullName(y.Target))

	field := f.lookup(t, "Point")
	for _, c := range field.Children {
		if f.table.Name(c) == "X" {
			require.Len(t, f.table.Sym(c).Usages, 1)
			assert.Equal(t, x, f.table.Sym(c).Usages[0].Node)
		}
	}
}

func TestTypeReferencesBindThroughTypeParameters(t *testing.T) {
	f := resolve(t, prelude, `
class Box<T> {
    T item;
    T Get<U>(U other) { return item; }
}`)
	s := f.scripts[1]
	box := f.lookup(t, "Box")
	assert.Equal(t, 1, box.Arity)

	fieldType := find(t, s, func(fd *model.Field) bool { return fd.Name == "item" }).Type
	assert.Equal(t, symbols.KindTypeParam, f.table.Sym(fieldType.Target).Kind)
	param := find(t, s, func(p *model.Parameter) bool { return p.Name == "other" })
	assert.Equal(t, "U", f.table.Name(param.Type.Target))
}

func TestPredefinedKeywordsResolveToPrelude(t *testing.T) {
	f := resolve(t, prelude, `class X { int M() { return int.Parse("1"); } }`)
	parse := find(t, f.scripts[1], member("Parse"))
	assert.Equal(t, "System.Int32.Parse", f.table.FullName(parse.Target))
	method := find(t, f.scripts[1], func(m *model.Method) bool { return m.Name == "M" })
	assert.Equal(t, "System.Int32", f.table.FullName(method.Return.Target))
}

func TestUnresolvedReferenceStaysZero(t *testing.T) {
	f := resolve(t, prelude, `
using System;
class C { object f; void M() { missing(); Console.Nope(); f.Nope(); } }`)
	id := find(t, f.scripts[1], ident("missing"))
	assert.False(t, id.Target.IsValid())

	var msgs []string
	for _, d := range f.bag.Items() {
		if d.Code == diag.SemaUnresolvedSymbol {
			msgs = append(msgs, d.Message)
		}
	}
	// a type receiver reports its missing member, a value receiver does not
	assert.ElementsMatch(t, []string{"name missing not found", "System.Console has no member Nope"}, msgs)

	var nopes []*model.MemberAccess
	model.Inspect(f.scripts[1], func(n model.Node) bool {
		if m, ok := n.(*model.MemberAccess); ok && m.Name == "Nope" {
			nopes = append(nopes, m)
		}
		return true
	})
	require.Len(t, nopes, 2)
	for _, m := range nopes {
		assert.False(t, m.Target.IsValid())
	}
}

func TestObjectInitializerBindsMembers(t *testing.T) {
	f := resolve(t, prelude, `
class Opts { public int Size; }
class C { object M() { return new Opts { Size = 3 }; } object N() { return new { Size = 1 }; } }`)
	var bound []symbols.SymbolID
	model.Inspect(f.scripts[1], func(n model.Node) bool {
		if id, ok := n.(*model.Identifier); ok && id.Name == "Size" {
			bound = append(bound, id.Target)
		}
		return true
	})
	require.Len(t, bound, 2)
	assert.Equal(t, "Opts.Size", f.table.FullName(bound[0]))
	assert.False(t, bound[1].IsValid())
	assert.Zero(t, f.count(diag.SemaUnresolvedSymbol))
}

func TestSnapshotEncodings(t *testing.T) {
	f := resolve(t, prelude, `using System; namespace N { class P { void M() { Console.WriteLine(1); } } }`)
	snap := f.table.Snapshot(f.files)

	var js bytes.Buffer
	require.NoError(t, snap.WriteJSON(&js))
	var decoded symbols.Snapshot
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, len(snap.Symbols), len(decoded.Symbols))

	var mp bytes.Buffer
	require.NoError(t, snap.WriteMsgpack(&mp))
	back, err := symbols.ReadMsgpack(&mp)
	require.NoError(t, err)
	assert.Equal(t, snap.Roots, back.Roots)
	require.Len(t, back.Symbols, len(snap.Symbols))

	wl := f.table.Lookup("System.Console")
	rec := back.Record(wl)
	require.NotNil(t, rec)
	assert.Equal(t, "System.Console", rec.FullName)
	require.NotEmpty(t, rec.Usages)
	assert.Contains(t, rec.Usages[0].Position, "f1.cs:")

	var tree bytes.Buffer
	require.NoError(t, snap.WriteTree(&tree))
	assert.Contains(t, tree.String(), "  class P")
	assert.Contains(t, tree.String(), "namespace N")
}

func TestGlobalUsingsApplyToEveryFile(t *testing.T) {
	f := resolve(t, prelude,
		`global using System;`,
		`class Z { void M() { Console.WriteLine(1); } }`)
	call := find(t, f.scripts[2], member("WriteLine"))
	assert.True(t, call.Target.IsValid())
	assert.Empty(t, f.codes())
}
