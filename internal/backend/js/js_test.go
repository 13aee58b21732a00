package js_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/backend/js"
	"recast/internal/emit"
	"recast/internal/testkit"
	preludeembed "recast/runtime"
)

func prelude(t *testing.T) []string {
	t.Helper()
	files, err := preludeembed.Files()
	require.NoError(t, err)
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = string(f.Content)
	}
	return out
}

func convert(t *testing.T, srcs ...string) ([]string, error) {
	t.Helper()
	f := testkit.ResolveWith(t, prelude(t), srcs...)
	m := js.New(js.Options{})
	var out []string
	for _, s := range f.Sources() {
		text, err := emit.Render(emit.NewContext(m, f.Table, f.Files, s))
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func render(t *testing.T, srcs ...string) []string {
	t.Helper()
	out, err := convert(t, srcs...)
	require.NoError(t, err)
	return out
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func TestNamespaceClassShape(t *testing.T) {
	out := render(t, lines(
		"using System;",
		"namespace App",
		"{",
		"    class Counter",
		"    {",
		"        int count;",
		"        static int total = 0;",
		"        public void Add(int n) { count += n; total += n; Console.WriteLine(count); }",
		"    }",
		"}",
	))
	assert.Equal(t, lines(
		"var App = App || {};",
		"",
		"App.Counter = class Counter {",
		"    static total = 0;",
		"    count = 0;",
		"",
		"    Add(n) {",
		"        this.count += n;",
		"        Counter.total += n;",
		"        console.log(this.count);",
		"    }",
		"};",
	), out[0])
}

func TestMergedNamespaceRendersAtFirstSite(t *testing.T) {
	out := render(t,
		`namespace N.M { class A { } }`,
		`namespace N.M { class B : A { } }`)
	assert.Equal(t, lines(
		"var N = N || {};",
		"N.M = N.M || {};",
		"",
		"N.M.A = class A {};",
		"",
		"N.M.B = class B extends N.M.A {};",
	), out[0])
	assert.Empty(t, out[1])
}

func TestEnumsBecomeFrozenObjects(t *testing.T) {
	out := render(t, lines(
		"enum Color { Red, Green = 5, Blue }",
		"class P",
		"{",
		"    static bool Warm(Color c) => c == Color.Red;",
		"}",
	))
	assert.Equal(t, lines(
		"const Color = Object.freeze({",
		"    Red: 0,",
		"    Green: 5,",
		"    Blue: 6",
		"});",
		"",
		"class P {",
		"    static Warm(c) {",
		"        return c === Color.Red;",
		"    }",
		"}",
	), out[0])
}

func TestBodilessAndExpressionBodiedMethods(t *testing.T) {
	out := render(t, lines(
		"interface IShape",
		"{",
		"    double Area();",
		"}",
		"abstract class Shape : IShape",
		"{",
		"    public abstract double Area();",
		"    public double Twice() => Area() * 2;",
		"}",
	))
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "class Shape")
	assert.Contains(t, out[0], "Twice() {")
	assert.Contains(t, out[0], "Area() * 2;")
	assert.NotContains(t, out[0], "return ;")
	assert.NotContains(t, out[0], "*Twice")
}

func TestSwitchExpressionAndInterpolation(t *testing.T) {
	out := render(t, lines(
		"enum Color { Red, Green }",
		"class P",
		"{",
		`    static string Name(Color c) => c switch { Color.Red => "red", _ => $"other {c}" };`,
		"}",
	))
	assert.Contains(t, out[0], "return (($v) => $v === Color.Red ? \"red\" : `other ${c}`)(c);")
}

func TestInheritanceAndBaseCall(t *testing.T) {
	out := render(t, lines(
		"class Animal",
		"{",
		"    protected string name;",
		"    public Animal(string name) { this.name = name; }",
		`    public virtual string Speak() => "...";`,
		"}",
		"class Dog : Animal",
		"{",
		"    public Dog(string name) : base(name) { }",
		`    public override string Speak() => name + " says woof";`,
		"}",
	))
	assert.Equal(t, lines(
		"class Animal {",
		"    name = null;",
		"",
		"    constructor(name) {",
		"        this.name = name;",
		"    }",
		"",
		"    Speak() {",
		`        return "...";`,
		"    }",
		"}",
		"",
		"class Dog extends Animal {",
		"    constructor(name) {",
		"        super(name);",
		"    }",
		"",
		"    Speak() {",
		`        return this.name + " says woof";`,
		"    }",
		"}",
	), out[0])
}

func TestOverloadsAreRenamedByArity(t *testing.T) {
	out := render(t, lines(
		"class V",
		"{",
		"    int x;",
		"    int y;",
		"    public V() : this(0, 0) { }",
		"    public V(int x, int y) { this.x = x; this.y = y; }",
		"    public int Sum() => x + y;",
		"    public int Sum(int k) => Sum() * k;",
		"}",
	))
	assert.Equal(t, lines(
		"class V {",
		"    x = 0;",
		"    y = 0;",
		"",
		"    constructor(...args) {",
		"        switch (args.length) {",
		"            case 0:",
		"                this.$init0(...args);",
		"                break;",
		"            case 2:",
		"                this.$init2(...args);",
		"                break;",
		"        }",
		"    }",
		"",
		"    $init0() {",
		"        this.$init2(0, 0);",
		"    }",
		"",
		"    $init2(x, y) {",
		"        this.x = x;",
		"        this.y = y;",
		"    }",
		"",
		"    Sum$0() {",
		"        return this.x + this.y;",
		"    }",
		"",
		"    Sum$1(k) {",
		"        return this.Sum$0() * k;",
		"    }",
		"}",
	), out[0])
}

func TestCollectionsMapToBuiltins(t *testing.T) {
	out := render(t, lines(
		"using System.Collections.Generic;",
		"class C",
		"{",
		"    int Tally(List<int> xs)",
		"    {",
		"        var seen = new Dictionary<int, int>();",
		"        foreach (var x in xs)",
		"        {",
		"            if (seen.ContainsKey(x)) { seen[x] = seen[x] + 1; } else { seen.Add(x, 1); }",
		"        }",
		"        return seen.Count;",
		"    }",
		"}",
	))
	assert.Equal(t, lines(
		"class C {",
		"    Tally(xs) {",
		"        let seen = new Map();",
		"        for (const x of xs) {",
		"            if (seen.has(x)) {",
		"                seen.set(x, seen.get(x) + 1);",
		"            } else {",
		"                seen.set(x, 1);",
		"            }",
		"        }",
		"        return seen.size;",
		"    }",
		"}",
	), out[0])
}

func TestTypedCatchesBecomeInstanceofChain(t *testing.T) {
	out := render(t, lines(
		"using System;",
		"class T",
		"{",
		"    void Run()",
		"    {",
		"        try { Work(); }",
		"        catch (ArgumentException e) { Console.WriteLine(e.Message); }",
		"        catch (Exception) { throw; }",
		"    }",
		`    void Work() { throw new InvalidOperationException("bad"); }`,
		"}",
	))
	assert.Equal(t, lines(
		"class T {",
		"    Run() {",
		"        try {",
		"            this.Work();",
		"        } catch ($e) {",
		"            if ($e instanceof Error) {",
		"                const e = $e;",
		"                console.log(e.message);",
		"            } else {",
		"                throw $e;",
		"            }",
		"        }",
		"    }",
		"",
		"    Work() {",
		`        throw new Error("bad");`,
		"    }",
		"}",
	), out[0])
}

func TestIntegerArithmeticIsTruncated(t *testing.T) {
	out := render(t, lines(
		"class D",
		"{",
		"    int Half(int a) => a / 2;",
		"    double Avg(int a, int b) => (a + b) / 2.0;",
		"    int Trunc(double d) => (int)d;",
		"}",
	))
	assert.Contains(t, out[0], "return Math.trunc(a / 2);")
	assert.Contains(t, out[0], "return (a + b) / 2.0;")
	assert.Contains(t, out[0], "return Math.trunc(d);")
}

func TestUnsupportedConstructs(t *testing.T) {
	for name, src := range map[string]string{
		"goto":      `class G { void M() { goto end; end: return; } }`,
		"ref param": `class G { void M(ref int x) { x = 1; } }`,
		"indexer":   `class G { int this[int i] => i; }`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := convert(t, src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, emit.ErrUnsupported), "got %v", err)
			assert.Contains(t, err.Error(), "js:")
		})
	}
}

func TestReservedWordsAreEscaped(t *testing.T) {
	out := render(t, `class C { int M(int function) { int let = function; return let; } }`)
	assert.Contains(t, out[0], "M(function_) {")
	assert.Contains(t, out[0], "let let_ = function_;")
}
