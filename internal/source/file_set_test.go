package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetPreservesInsertionOrder(t *testing.T) {
	fs := NewFileSet()
	b := fs.AddVirtual("b.cs", []byte("class B {}"))
	a := fs.AddVirtual("a.cs", []byte("class A {}"))

	require.Equal(t, 2, fs.Len())
	assert.Equal(t, FileID(0), b)
	assert.Equal(t, FileID(1), a)
	assert.Equal(t, "b.cs", fs.Files()[0].Path)
	assert.Equal(t, "a.cs", fs.Files()[1].Path)
}

func TestFileSetLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.cs")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFclass X {\r\n}\r\n"), 0o600))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	f := fs.Get(id)
	require.NotNil(t, f)
	assert.Equal(t, "class X {\n}\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedCRLF)
}

func TestFileSetLoadMissingFile(t *testing.T) {
	_, err := NewFileSet().Load(filepath.Join(t.TempDir(), "missing.cs"))
	require.Error(t, err)
}

func TestResolveLineColumn(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.cs", []byte("ab\ncd\n\nef"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	assert.Equal(t, LineCol{Line: 1, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 1, Col: 2}, end)

	start, _ = fs.Resolve(Span{File: id, Start: 4, End: 5})
	assert.Equal(t, LineCol{Line: 2, Col: 2}, start)

	start, _ = fs.Resolve(Span{File: id, Start: 7, End: 8})
	assert.Equal(t, LineCol{Line: 4, Col: 1}, start)

	assert.Equal(t, "p.cs:2:2", fs.Position(Span{File: id, Start: 4, End: 5}))
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("p.cs", []byte("first\nsecond\nthird")))

	assert.Equal(t, "first", f.GetLine(1))
	assert.Equal(t, "second", f.GetLine(2))
	assert.Equal(t, "third", f.GetLine(3))
	assert.Equal(t, "", f.GetLine(4))
	assert.Equal(t, "", f.GetLine(0))
}

func TestLibraryFlag(t *testing.T) {
	fs := NewFileSet()
	lib := fs.Get(fs.AddLibrary("<prelude>", []byte("namespace System {}")))
	user := fs.Get(fs.AddVirtual("u.cs", nil))
	assert.True(t, lib.IsLibrary())
	assert.False(t, user.IsLibrary())
}

func TestProjectSpanHasNoPosition(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.cs", []byte("class A {}"))

	sp := ProjectSpan()
	assert.False(t, sp.HasFile())
	assert.True(t, Span{}.HasFile())
	assert.Nil(t, fs.Get(sp.File))
	assert.Equal(t, "<project>", fs.Position(sp))
	assert.Equal(t, "<project>", sp.String())
	assert.Equal(t, "a.cs:1:1", fs.Position(Span{}))
}
