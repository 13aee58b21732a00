package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/diag"
	"recast/internal/source"
)

func parseSnippet(t *testing.T, src string) *Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	tree, err := Parse(context.Background(), fs.Get(id))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestParseValid(t *testing.T) {
	tree := parseSnippet(t, "namespace A { class X { int y; } }")
	require.NotNil(t, tree.Root())
	assert.Equal(t, "compilation_unit", tree.Root().Type())
	assert.False(t, tree.HasErrors())
	assert.Empty(t, tree.Issues())
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	tree := parseSnippet(t, "class X { void M( { }")
	require.True(t, tree.HasErrors())
	issues := tree.Issues()
	require.NotEmpty(t, issues)

	bag := diag.NewBag(0)
	n := tree.Report(diag.BagReporter{Bag: bag})
	assert.Equal(t, len(issues), n)
	assert.True(t, bag.HasErrors())
}

func TestTextAndSpan(t *testing.T) {
	tree := parseSnippet(t, "class Hello {}")
	cls := tree.Root().NamedChild(0)
	require.NotNil(t, cls)
	assert.Equal(t, "class Hello {}", tree.Text(cls))
	assert.Equal(t, uint32(0), tree.Span(cls).Start)
}

func TestCloseTwice(t *testing.T) {
	tree := parseSnippet(t, "class A {}")
	tree.Close()
	tree.Close()
	assert.Nil(t, tree.Root())
}

func TestParseNilFile(t *testing.T) {
	_, err := Parse(context.Background(), nil)
	require.Error(t, err)
}
