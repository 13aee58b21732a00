package project_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/backend/csharp"
	"recast/internal/backend/js"
	"recast/internal/backend/restyle"
	"recast/internal/builder"
	"recast/internal/emit"
	"recast/internal/model"
	"recast/internal/pipeline"
	"recast/internal/project"
	"recast/internal/source"
)

func fileSet(srcs ...string) *source.FileSet {
	fs := source.NewFileSet()
	for i, src := range srcs {
		fs.AddVirtual("f"+string(rune('1'+i))+".cs", []byte(src))
	}
	return fs
}

func restyler() emit.ConversionMap {
	return restyle.New(restyle.Options{Brace: csharp.BraceAllman})
}

var opts = project.Options{Prelude: true, Jobs: 2}

func TestJoinMergesNamespaceAcrossFiles(t *testing.T) {
	res, err := project.Process(context.Background(), fileSet(
		`namespace N { class A { int x; } }`,
		`namespace N { class B { int y; } }`,
	), restyler(), opts)
	require.NoError(t, err)

	out, err := res.Join()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "namespace N"))
	first, ns, a, b, second := strings.Index(out, "// f1.cs"), strings.Index(out, "namespace N"),
		strings.Index(out, "class A"), strings.Index(out, "class B"), strings.Index(out, "// f2.cs")
	assert.True(t, first < ns && ns < a && a < b && b < second, out)
	assert.True(t, strings.HasSuffix(out, "// f2.cs\n"), out)
}

func TestJoinIsDeterministic(t *testing.T) {
	srcs := []string{
		`namespace N { class A { int x; int Get() { return x; } } }`,
		`namespace N { class B : A { } }`,
		`namespace M { using N; class C { B b; } }`,
	}
	var outs []string
	for range 3 {
		res, err := project.Process(context.Background(), fileSet(srcs...), restyler(), project.Options{Prelude: true, Jobs: 3})
		require.NoError(t, err)
		out, err := res.Join()
		require.NoError(t, err)
		outs = append(outs, out)
	}
	assert.Equal(t, outs[0], outs[1])
	assert.Equal(t, outs[0], outs[2])
}

func TestBuildFailureExcludesFile(t *testing.T) {
	fs := fileSet(`class Good { }`, `class { oops`)
	res, err := project.Process(context.Background(), fs, restyler(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, builder.ErrUnhandledConstruct), "got %v", err)
	require.NotNil(t, res)

	bad, _ := fs.GetByPath("f2.cs")
	assert.Error(t, res.Failed(bad.ID))
	_, ok := res.Output(bad.ID)
	assert.False(t, ok)
	assert.NotEmpty(t, res.Diagnostics())

	out, err := res.Join()
	require.NoError(t, err)
	assert.Contains(t, out, "class Good")
	assert.NotContains(t, out, "f2.cs")
}

func TestRenderFailureExcludesFile(t *testing.T) {
	fs := fileSet(`class A { }`, `class G { void M() { goto end; end: return; } }`)
	res, err := project.Process(context.Background(), fs, js.New(js.Options{}), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, emit.ErrUnsupported), "got %v", err)

	bad, _ := fs.GetByPath("f2.cs")
	_, ok := res.OrderKey(bad.ID)
	assert.False(t, ok)
	out, err := res.Join()
	require.NoError(t, err)
	assert.Contains(t, out, "class A")
}

// explosive panics while rendering the class named Boom.
type explosive struct{ *csharp.Printer }

func (e explosive) VisitClass(ctx *emit.Context, n *model.Class) error {
	if n.Name == "Boom" {
		panic("boom")
	}
	return e.Printer.VisitClass(ctx, n)
}

func TestRenderPanicExcludesOnlyThatFile(t *testing.T) {
	fs := fileSet(`class A { }`, `class Boom { }`)
	res, err := project.Process(context.Background(), fs, explosive{restyle.New(restyle.Options{})}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	bad, _ := fs.GetByPath("f2.cs")
	assert.Error(t, res.Failed(bad.ID))
	out, err := res.Join()
	require.NoError(t, err)
	assert.Contains(t, out, "class A")
	assert.NotContains(t, out, "Boom")
}

func TestSetOrderReordersJoin(t *testing.T) {
	fs := fileSet(`class A { }`, `class B { }`)
	resolved, err := project.Resolve(context.Background(), fs, opts)
	require.NoError(t, err)
	res, err := project.Render(context.Background(), resolved, restyler(), opts)
	require.NoError(t, err)

	a, _ := fs.GetByPath("f1.cs")
	b, _ := fs.GetByPath("f2.cs")
	key, ok := res.OrderKey(a.ID)
	require.True(t, ok)
	assert.Equal(t, 0, key)

	_, err = res.Join()
	assert.True(t, errors.Is(err, project.ErrNotFinalized))

	require.NoError(t, res.SetOrder(a.ID, 5))
	res.Finalize()
	assert.Equal(t, []source.FileID{b.ID, a.ID}, res.Order())
	out, err := res.Join()
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "class B"), strings.Index(out, "class A"))

	assert.True(t, errors.Is(res.SetOrder(a.ID, 0), project.ErrFinalized))
}

func TestJoinRejectsMismatchedKeys(t *testing.T) {
	fs := fileSet(`class A { }`)
	resolved, err := project.Resolve(context.Background(), fs, opts)
	require.NoError(t, err)
	res := project.NewResult(resolved, restyler())
	a, _ := fs.GetByPath("f1.cs")
	require.NoError(t, res.SetOrder(a.ID, 0))
	res.Finalize()

	_, err = res.Join()
	require.Error(t, err)
	assert.True(t, errors.Is(err, project.ErrOrderMismatch))
	assert.Contains(t, err.Error(), "f1.cs")
}

func TestGlobalUsingsApplyToEveryFile(t *testing.T) {
	fs := fileSet(`class C { void M() { Console.WriteLine(1); } }`)
	o := opts
	o.GlobalUsings = []string{"System"}
	res, err := project.Process(context.Background(), fs, js.New(js.Options{}), o)
	require.NoError(t, err)
	c, _ := fs.GetByPath("f1.cs")
	out, ok := res.Output(c.ID)
	require.True(t, ok)
	assert.Contains(t, out, "console.log(1);")
}

func TestPreludeIsLoadedOnce(t *testing.T) {
	fs := fileSet(`class A { }`)
	_, err := project.Resolve(context.Background(), fs, opts)
	require.NoError(t, err)
	n := fs.Len()
	_, err = project.Resolve(context.Background(), fs, opts)
	require.NoError(t, err)
	assert.Equal(t, n, fs.Len())
}

func TestGlobalUsingsAreAddedOnce(t *testing.T) {
	fs := fileSet(`class C { void M() { Console.WriteLine(1); } }`)
	o := opts
	o.GlobalUsings = []string{"System"}
	_, err := project.Resolve(context.Background(), fs, o)
	require.NoError(t, err)
	n := fs.Len()

	res, err := project.Resolve(context.Background(), fs, o)
	require.NoError(t, err)
	assert.Equal(t, n, fs.Len())
	assert.False(t, res.Bag.HasErrors())

	o.GlobalUsings = []string{"System.Text"}
	_, err = project.Resolve(context.Background(), fs, o)
	require.Error(t, err)
	assert.Equal(t, n, fs.Len())
}

func TestProgressEvents(t *testing.T) {
	var rec pipeline.Recorder
	o := opts
	o.Sink = &rec
	_, err := project.Process(context.Background(), fileSet(`class A { }`), restyler(), o)
	require.NoError(t, err)

	var rendered, resolved bool
	for _, evt := range rec.Events() {
		if evt.File == "f1.cs" && evt.Stage == pipeline.StageRender && evt.Status == pipeline.StatusDone {
			rendered = true
		}
		if evt.File == "" && evt.Stage == pipeline.StageResolve && evt.Status == pipeline.StatusDone {
			resolved = true
		}
	}
	assert.True(t, rendered)
	assert.True(t, resolved)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := project.Process(ctx, fileSet(`class A { }`), restyler(), opts)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestInputsDigest(t *testing.T) {
	a := project.InputsDigest(fileSet(`class A { }`), "restyle")
	b := project.InputsDigest(fileSet(`class A { }`), "restyle")
	c := project.InputsDigest(fileSet(`class A { }`), "js")
	d := project.InputsDigest(fileSet(`class B { }`), "restyle")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}
