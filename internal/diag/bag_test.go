package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	b := NewBag(2)
	require.True(t, b.Add(NewError(SemaUnresolvedImport, source.Span{}, "a")))
	require.True(t, b.Add(NewError(SemaUnresolvedImport, source.Span{}, "b")))
	assert.False(t, b.Add(NewError(SemaUnresolvedImport, source.Span{}, "c")))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Dropped())
}

func TestBagUnbounded(t *testing.T) {
	b := NewBag(0)
	for range 100 {
		b.Add(New(SevInfo, SemaInfo, source.Span{}, "x"))
	}
	assert.Equal(t, 100, b.Len())
	assert.False(t, b.HasWarnings())
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, SemaUnresolvedSymbol, source.Span{File: 1, Start: 4, End: 5}, "late"))
	b.Add(New(SevError, SemaDuplicateSymbol, source.Span{File: 0, Start: 9, End: 10}, "dup"))
	b.Add(New(SevError, SemaDuplicateSymbol, source.Span{File: 0, Start: 9, End: 10}, "dup"))
	b.Add(New(SevInfo, SemaInfo, source.Span{File: 0, Start: 1, End: 2}, "first"))

	b.Sort()
	b.Dedup()
	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Message)
	assert.Equal(t, "dup", items[1].Message)
	assert.Equal(t, "late", items[2].Message)
	assert.True(t, b.HasErrors())
}

func TestDiagnosticFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("using Nope;\nclass X {}\n"))
	d := NewError(SemaUnresolvedImport, source.Span{File: id, Start: 18, End: 19}, "cannot resolve import Nope")
	assert.Equal(t, "a.cs:2:7: ERROR SEM3003: cannot resolve import Nope", d.Format(fs))
	assert.Contains(t, d.String(), "SEM3003")
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{File: 0, Start: 1, End: 3}
	ReportError(r, SemaUnresolvedImport, sp, "missing").Emit()
	ReportError(r, SemaUnresolvedImport, sp, "missing").Emit()
	ReportWarning(r, SemaUnresolvedImport, sp, "missing").Emit()
	assert.Equal(t, 2, b.Len())
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportInfo(BagReporter{Bag: b}, SemaInfo, source.Span{}, "hello").WithNote(source.Span{}, "note")
	rb.Emit()
	rb.Emit()
	require.Equal(t, 1, b.Len())
	assert.Len(t, b.Items()[0].Notes, 1)
}

func TestCodeIDs(t *testing.T) {
	assert.Equal(t, "PAR1001", ParseSyntaxError.ID())
	assert.Equal(t, "BLD2001", BuildUnhandledConstruct.ID())
	assert.Equal(t, "SEM3002", SemaDuplicateSymbol.ID())
	assert.Equal(t, "RND4001", RenderNotImplemented.ID())
	assert.Equal(t, "PRJ5002", ProjOrderMismatch.ID())
	assert.Equal(t, "Unknown error", Code(9999).Title())
}
