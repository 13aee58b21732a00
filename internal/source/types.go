package source

import "math"

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFile marks spans that belong to the whole project rather than a file.
const NoFile FileID = math.MaxUint32

const (
	// FileVirtual indicates the file was added from memory (test, stdin, generated).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileLibrary marks declaration-only inputs (the prelude) that are resolved
	// but never rendered.
	FileLibrary
)

// File captures metadata and content for a single input.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// IsLibrary reports whether the file only contributes declarations.
func (f *File) IsLibrary() bool { return f != nil && f.Flags&FileLibrary != 0 }

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineColAt converts a byte offset into a 1-based line and column.
func (f *File) LineColAt(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}
