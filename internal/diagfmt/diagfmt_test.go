package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/diag"
	"recast/internal/source"
)

func sample() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class A {\n    int x = y;\n}\n"))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.SemaUnresolvedSymbol, source.Span{File: id, Start: 22, End: 23}, "y not found").
		WithNote(source.Span{File: id, Start: 0, End: 5}, "in class A")
	bag.Add(d)
	return bag, fs
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	bag, fs := sample()
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	assert.Equal(t, strings.Join([]string{
		"a.cs:2:13: ERROR SEM3005: y not found",
		"2 |     int x = y;",
		"  | " + strings.Repeat(" ", 12) + "^",
		"",
	}, "\n"), buf.String())
}

func TestPrettyNotesAndContext(t *testing.T) {
	bag, fs := sample()
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, Context: 1}))
	out := buf.String()
	assert.Contains(t, out, "1 | class A {")
	assert.Contains(t, out, "note: a.cs:1:1: in class A")
}

func TestPrettyWithoutPositionSkipsExcerpt(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("b.cs", []byte("class { }\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.ProjFileExcluded, source.Span{File: id}, "excluded"))
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	assert.Equal(t, "b.cs:1:1: ERROR PRJ5001: excluded\n", buf.String())
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.cs", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: id}, "one"))
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: id}, "two"))
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	assert.Contains(t, buf.String(), "1 more diagnostics")
}

func TestJSON(t *testing.T) {
	bag, fs := sample()
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	d := out.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SEM3005", d.Code)
	assert.Equal(t, "a.cs", d.Location.File)
	assert.Equal(t, uint32(2), d.Location.StartLine)
	assert.Equal(t, uint32(13), d.Location.StartCol)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "in class A", d.Notes[0].Message)
}

func TestJSONMax(t *testing.T) {
	bag, fs := sample()
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: 0}, "again"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	assert.Equal(t, 1, out.Count)
	assert.Empty(t, out.Diagnostics[0].Notes)
	assert.Zero(t, out.Diagnostics[0].Location.StartLine)
}

func TestProjectDiagnosticHasNoLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("a.cs", []byte("class A { }\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.SemaMissingRootType, source.ProjectSpan(), "root type missing"))

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, bag, fs, PrettyOpts{}))
	assert.True(t, strings.HasPrefix(buf.String(), "<project>: WARNING "))
	assert.NotContains(t, buf.String(), "a.cs")

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, LocationJSON{File: "<project>"}, out.Diagnostics[0].Location)
}
