package minify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/backend/minify"
	"recast/internal/emit"
	"recast/internal/testkit"
)

func render(t *testing.T, opts minify.Options, src string) string {
	t.Helper()
	f := testkit.Resolve(t, src)
	out, err := emit.Render(emit.NewContext(minify.New(opts), f.Table, f.Files, f.Scripts[0]))
	require.NoError(t, err)
	return out
}

const adder = `
// adds
class C {
    int Add(int a, int b) {
        int sum = a + b;
        return sum;
    }
}
`

func TestMinifyDropsLayoutAndComments(t *testing.T) {
	assert.Equal(t, "class C{int Add(int a,int b){int sum=a+b;return sum;}}", render(t, minify.Options{}, adder))
}

func TestMinifyKeepsTokensApart(t *testing.T) {
	out := render(t, minify.Options{}, `class C { int M(int a, int b) { return a - -b + +a; } }`)
	assert.Contains(t, out, "return a- -b+ +a;")
}

func TestRenameLocalsAvoidsExistingNames(t *testing.T) {
	out := render(t, minify.Options{RenameLocals: true}, adder)
	assert.Equal(t, "class C{int Add(int a,int b){int c=a+b;return c;}}", out)
}

func TestRenameLambdaParameters(t *testing.T) {
	out := render(t, minify.Options{RenameLocals: true},
		`class C { System.Func<int, int> F() { return value => value + 1; } }`)
	assert.Contains(t, out, "return a=>a+1;")
}

func TestRenamedNamesRestartPerMember(t *testing.T) {
	out := render(t, minify.Options{RenameLocals: true},
		`class C { void M() { int first = 1; int second = first; } void N() { int third = 3; } }`)
	assert.Equal(t, "class C{void M(){int a=1;int b=a;}void N(){int a=3;}}", out)
}
