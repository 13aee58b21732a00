package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
)

// FileSet is the ordered collection of inputs for one run. Insertion order is
// the default output ordering.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 8),
		index: make(map[string]FileID),
	}
}

// Add stores content under path, computes the line index and hash, and
// returns a new FileID. Adding the same path twice yields two files; lookups
// by path return the latest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	next, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(next)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM, normalises CRLF and adds it.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", path)
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// AddLibrary adds a declaration-only file that is resolved but never rendered.
func (fileSet *FileSet) AddLibrary(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual|FileLibrary)
}

// Get returns the file for id, or nil when id is out of range.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetByPath returns the latest file registered under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len reports the number of files.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// Files returns the files in insertion order. The slice must not be modified.
func (fileSet *FileSet) Files() []File { return fileSet.files }

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Position formats the start of span as path:line:col.
func (fileSet *FileSet) Position(span Span) string {
	if !span.HasFile() {
		return projectLocation
	}
	f := fileSet.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fileSet.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
}

// GetLine returns line lineNum (1-based) without its trailing newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- bounded in Add
	if int(lineNum) <= len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
