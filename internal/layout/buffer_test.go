package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentIsAppliedLazily(t *testing.T) {
	b := New(Options{})
	b.Open()
	b.Append("{")
	b.NewLine()
	b.Append("x")
	b.Close()
	b.Append("}")

	assert.Equal(t, "    {\n    x}", b.String())
	assert.Equal(t, 0, b.Depth())
}

func TestCloseBeforeNewLineDropsIndent(t *testing.T) {
	b := New(Options{Indent: "\t"})
	b.Append("class A {")
	b.Open()
	b.NewLine()
	b.Append("int x;")
	b.Close()
	b.NewLine()
	b.Append("}")
	assert.Equal(t, "class A {\n\tint x;\n}", b.String())
}

func TestNewLineIsIdempotent(t *testing.T) {
	b := New(Options{})
	b.NewLine()
	assert.Empty(t, b.String())

	b.Append("a")
	b.NewLine()
	b.NewLine()
	b.NewLine()
	b.Append("b")
	assert.Equal(t, "a\nb", b.String())
}

func TestBlankLineNeverStacks(t *testing.T) {
	b := New(Options{})
	b.BlankLine()
	assert.Empty(t, b.String())

	b.Append("a")
	b.BlankLine()
	b.BlankLine()
	b.NewLine()
	b.Append("b")
	assert.Equal(t, "a\n\nb", b.String())
}

func TestNewWord(t *testing.T) {
	b := New(Options{})
	b.NewWord("")
	b.Append("int")
	b.NewWord("")
	b.Append("x")
	b.NewWord("")
	b.NewWord("")
	b.Append("=")
	assert.Equal(t, "int x =", b.String())

	b.Reset()
	b.Append("f(")
	b.NewWord("(")
	b.Append("a")
	assert.Equal(t, "f(a", b.String())
	assert.Equal(t, ClassWord, b.Last())
}

func TestNewWordAtLineStartWritesNothing(t *testing.T) {
	b := New(Options{})
	b.Open()
	b.Append("a")
	b.NewLine()
	b.NewWord("")
	b.Append("b")
	assert.Equal(t, "    a\n    b", b.String())
}

func TestContinueFlushesIndentOnce(t *testing.T) {
	b := New(Options{Indent: "  "})
	b.Open()
	b.Open()
	b.Continue()
	b.Continue()
	assert.Equal(t, "    ", b.String())
	assert.False(t, b.AtLineStart())
	b.Append("x")
	assert.Equal(t, "    x", b.String())
}

func TestCompactIgnoresIndentation(t *testing.T) {
	b := New(Options{Compact: true})
	b.Open()
	b.Append("a")
	b.NewLine()
	b.Append("b")
	assert.Equal(t, "a\nb", b.String())
	assert.Equal(t, 0, b.Depth())
}

func TestEmbeddedNewlinesAreCopied(t *testing.T) {
	b := New(Options{})
	b.Open()
	b.Append("/* a\n b */")
	assert.Equal(t, "    /* a\n b */", b.String())
	b.Append("\n")
	require.True(t, b.AtLineStart())
	b.Append("c")
	assert.Equal(t, "    /* a\n b */\n    c", b.String())
}

func TestResetStartsOver(t *testing.T) {
	b := New(Options{})
	b.Open()
	b.Append("x")
	b.Reset()
	assert.Zero(t, b.Len())
	assert.Equal(t, ClassNone, b.Last())
	b.Append("y")
	assert.Equal(t, "y", b.String())
}

func TestClassify(t *testing.T) {
	cases := map[byte]CharClass{
		'a': ClassWord, 'Z': ClassWord, '7': ClassWord, '_': ClassWord,
		' ': ClassSpace, '\t': ClassSpace, '\n': ClassNewline,
		'{': ClassPunct, '.': ClassPunct, '"': ClassPunct,
	}
	for in, want := range cases {
		assert.Equal(t, want, Classify(in), "byte %q", in)
	}
}

func TestAppendRawKeepsTokenNewlines(t *testing.T) {
	b := New(Options{})
	b.Open()
	b.Append("s = ")
	b.AppendRaw("@\"a\n")
	b.AppendRaw("b\"")
	b.Append(";")
	assert.Equal(t, "    s = @\"a\nb\";", b.String())
}
