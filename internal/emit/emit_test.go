package emit_test

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/emit"
	"recast/internal/layout"
	"recast/internal/model"
	"recast/internal/testkit"
)

// outline lists declarations one per line and leaves bodies out.
type outline struct {
	emit.Unimplemented
	hooks   emit.Hooks
	parents []string
}

func (*outline) Name() string { return "outline" }
func (*outline) Layout() layout.Options { return layout.Options{} }
func (o *outline) Hooks() emit.Hooks { return o.hooks }
func (*outline) Separator(ctx *emit.Context, id string) error {
	ctx.Buf.Append("// " + id)
	ctx.Buf.NewLine()
	return nil
}

func (*outline) VisitScript(ctx *emit.Context, n *model.Script) error {
	return ctx.Visit(n.Root)
}

func (o *outline) VisitNamespace(ctx *emit.Context, n *model.Namespace) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	if !n.IsRoot() {
		ctx.Buf.Append("namespace " + n.Name)
		ctx.Buf.NewLine()
		ctx.Buf.Open()
		defer ctx.Buf.Close()
	}
	return emit.VisitAll(ctx, members.SourceOrder(), nil)
}

func (o *outline) VisitClass(ctx *emit.Context, n *model.Class) error {
	if !ctx.IsPrimary(n) {
		return nil
	}
	members, err := ctx.Members(n)
	if err != nil {
		return err
	}
	ctx.Buf.Append("class " + n.Name)
	ctx.Buf.NewLine()
	ctx.Buf.Open()
	defer ctx.Buf.Close()
	return emit.VisitAll(ctx, members.All(), nil)
}

func (o *outline) VisitMethod(ctx *emit.Context, n *model.Method) error {
	if p, ok := ctx.Parent().(model.Named); ok {
		o.parents = append(o.parents, p.DeclName())
	}
	ctx.Buf.Append("method " + n.Name)
	ctx.Buf.NewLine()
	return nil
}

func (o *outline) VisitField(ctx *emit.Context, n *model.Field) error {
	ctx.Buf.Append("field " + n.Name)
	ctx.Buf.NewLine()
	return nil
}

func render(t *testing.T, m emit.ConversionMap, f *testkit.Fixture, i int) string {
	t.Helper()
	out, err := emit.Render(emit.NewContext(m, f.Table, f.Files, f.Scripts[i]))
	require.NoError(t, err)
	return out
}

func TestRenderMergedDeclarationsAtFirstSite(t *testing.T) {
	f := testkit.Resolve(t,
		`namespace N { partial class P { void A() {} } }`,
		`namespace N { partial class P { int x; void B() {} } class Q {} }`,
	)
	m := &outline{}

	want := strings.Join([]string{
		"namespace N",
		"    class P",
		"        field x",
		"        method A",
		"        method B",
		"    class Q",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, m, f, 0))
	assert.Empty(t, render(t, m, f, 1))
	assert.Equal(t, []string{"P", "P"}, m.parents)
}

func TestDeclarationsFollowDottedNamespaces(t *testing.T) {
	f := testkit.Resolve(t,
		`namespace A.B { class X {} }`,
		`namespace A { class Y {} }`,
	)
	m := &outline{}
	assert.Equal(t, "namespace A.B\n    class X\n", render(t, m, f, 0))
	assert.Equal(t, "namespace A\n    class Y\n", render(t, m, f, 1))
}

func TestMissingOperationIsNotImplemented(t *testing.T) {
	f := testkit.Resolve(t, "struct S {}\n")
	_, err := emit.Render(emit.NewContext(&outline{}, f.Table, f.Files, f.Scripts[0]))
	require.Error(t, err)
	assert.True(t, errors.Is(err, emit.ErrNotImplemented))
	assert.Contains(t, err.Error(), "outline")
	assert.Contains(t, err.Error(), "f0.cs:1:1")
}

func TestHooksRunInPreOrderAroundRender(t *testing.T) {
	f := testkit.Resolve(t,
		`namespace N { class C { int f; void M() {} } }`,
		`namespace N { class D {} }`,
	)
	var events []string
	record := func(tag string) emit.HookFunc {
		return func(ctx *emit.Context, n model.Node) error {
			name := ""
			if named, ok := n.(model.Named); ok {
				name = named.DeclName()
			}
			events = append(events, tag+" "+n.Kind().String()+" "+name)
			return nil
		}
	}
	m := &outline{hooks: emit.Hooks{
		Pre: map[model.Kind]emit.HookFunc{
			model.KindNamespace: record("pre"),
			model.KindClass:     record("pre"),
		},
		Post: map[model.Kind]emit.HookFunc{
			model.KindMethod: record("post"),
			model.KindField:  record("post"),
		},
	}}
	render(t, m, f, 0)
	assert.Equal(t, []string{
		"pre namespace N",
		"pre class C",
		"pre class D",
		"post field f",
		"post method M",
	}, events)

	events = nil
	render(t, m, f, 1)
	assert.Empty(t, events)
}

func TestVisitSkipsNilNodes(t *testing.T) {
	ctx := emit.NewContext(&outline{}, nil, nil, nil)
	var block *model.Block
	require.NoError(t, ctx.Visit(nil))
	require.NoError(t, ctx.Visit(block))
	assert.Nil(t, ctx.Current())
}

func TestSeparatorText(t *testing.T) {
	text, err := emit.SeparatorText(&outline{}, "a/b.cs")
	require.NoError(t, err)
	assert.Equal(t, "// a/b.cs\n", text)
}

func TestUnsupportedWrapsSentinel(t *testing.T) {
	f := testkit.Resolve(t, "class C {}\n")
	ctx := emit.NewContext(&outline{}, f.Table, f.Files, f.Scripts[0])
	err := ctx.Unsupported(f.Scripts[0].Root, "goto")
	assert.True(t, errors.Is(err, emit.ErrUnsupported))
	assert.False(t, errors.Is(err, emit.ErrNotImplemented))
}
