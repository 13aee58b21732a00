package restyle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/backend/csharp"
	"recast/internal/backend/restyle"
	"recast/internal/emit"
	"recast/internal/testkit"
)

func render(t *testing.T, opts restyle.Options, srcs ...string) []string {
	t.Helper()
	f := testkit.Resolve(t, srcs...)
	m := restyle.New(opts)
	out := make([]string, len(f.Scripts))
	for i, s := range f.Scripts {
		text, err := emit.Render(emit.NewContext(m, f.Table, f.Files, s))
		require.NoError(t, err)
		out[i] = text
	}
	return out
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestRoundTripShape(t *testing.T) {
	out := render(t, restyle.Options{},
		`namespace N { class C { int x; int Get() { return x; } } }`)
	assert.Equal(t, lines(
		"namespace N",
		"{",
		"    class C",
		"    {",
		"        int x;",
		"",
		"        int Get()",
		"        {",
		"            return x;",
		"        }",
		"    }",
		"}",
	), out[0])
}

func TestBraceStyleKR(t *testing.T) {
	out := render(t, restyle.Options{Brace: csharp.BraceKR, Indent: "  "},
		`class C { void M(bool a) { if (a) { M(false); } else { return; } } }`)
	assert.Equal(t, lines(
		"class C {",
		"  void M(bool a) {",
		"    if (a) {",
		"      M(false);",
		"    } else {",
		"      return;",
		"    }",
		"  }",
		"}",
	), out[0])
}

func TestMembersAreGroupedByCategory(t *testing.T) {
	out := render(t, restyle.Options{}, lines(
		"class C {",
		"    void M() {}",
		"    public int a, b;",
		"    static int s = 1;",
		"    C() {}",
		"}",
	))
	assert.Equal(t, lines(
		"class C",
		"{",
		"    static int s = 1;",
		"    public int a, b;",
		"",
		"    C()",
		"    {",
		"    }",
		"",
		"    void M()",
		"    {",
		"    }",
		"}",
	), out[0])
}

func TestCommentsAreKeptUnlessDropped(t *testing.T) {
	src := lines(
		"class C {",
		"    // counter",
		"    int n;",
		"}",
	)
	kept := render(t, restyle.Options{}, src)
	assert.Contains(t, kept[0], "    // counter\n    int n;\n")

	dropped := render(t, restyle.Options{DropComments: true}, src)
	assert.NotContains(t, dropped[0], "counter")
}

func TestPartialClassRendersAtFirstDeclaration(t *testing.T) {
	out := render(t, restyle.Options{},
		`namespace N { partial class P : IA { int a; } }`,
		`namespace N { partial class P : IB { int b; } }`,
	)
	assert.Contains(t, out[0], "partial class P : IA, IB")
	assert.Contains(t, out[0], "int a;\n        int b;")
	assert.Empty(t, out[1])
}

func TestStatementsAndExpressions(t *testing.T) {
	out := render(t, restyle.Options{}, lines(
		"using System;",
		"class C {",
		"    int M(int[] xs, object o) {",
		"        var total = 0;",
		"        foreach (var x in xs) total += x;",
		"        for (int i = 0; i < xs.Length; i++) { total -= i; }",
		"        var s = $\"total {total,5:N0}\";",
		"        Func<int, int> f = y => y * 2;",
		"        if (o is string { Length: > 2 } str) return str.Length;",
		"        return total switch { 0 => 1, _ => f(total) };",
		"    }",
		"}",
	))
	text := out[0]
	for _, want := range []string{
		"using System;\n\nclass C\n",
		"        var total = 0;\n",
		"        foreach (var x in xs)\n            total += x;\n",
		"        for (int i = 0; i < xs.Length; i++)\n        {\n            total -= i;\n        }\n",
		"        var s = $\"total {total,5:N0}\";\n",
		"        Func<int, int> f = y => y * 2;\n",
		"        if (o is string { Length: > 2 } str)\n            return str.Length;\n",
		"        return total switch\n        {\n            0 => 1,\n            _ => f(total)\n        };\n",
	} {
		assert.Contains(t, text, want)
	}
}

func TestTopLevelStatementsComeFirst(t *testing.T) {
	out := render(t, restyle.Options{}, lines(
		"using System;",
		"Console.WriteLine(1);",
		"class C {}",
	))
	assert.Equal(t, lines(
		"using System;",
		"",
		"Console.WriteLine(1);",
		"",
		"class C",
		"{",
		"}",
	), out[0])
}
