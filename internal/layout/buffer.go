package layout

import "strings"

// CharClass classifies the last character written to a Buffer.
type CharClass uint8

const (
	// ClassNone means nothing has been written yet.
	ClassNone CharClass = iota
	ClassNewline
	ClassSpace
	// ClassWord is a letter, digit, underscore or non-ASCII rune.
	ClassWord
	ClassPunct
)

func (c CharClass) String() string {
	switch c {
	case ClassNewline:
		return "newline"
	case ClassSpace:
		return "space"
	case ClassWord:
		return "word"
	case ClassPunct:
		return "punct"
	}
	return "none"
}

// Classify returns the class of b.
func Classify(b byte) CharClass {
	switch {
	case b == '\n':
		return ClassNewline
	case b == ' ' || b == '\t' || b == '\r':
		return ClassSpace
	case b == '_' || b >= 0x80,
		b >= 'a' && b <= 'z',
		b >= 'A' && b <= 'Z',
		b >= '0' && b <= '9':
		return ClassWord
	}
	return ClassPunct
}

// DefaultIndent is four spaces.
const DefaultIndent = "    "

// Options configure a Buffer.
type Options struct {
	// Indent is written once per depth level at the start of a line. An
	// empty Indent disables indentation; use Compact for that.
	Indent string
	// Compact buffers ignore Open and Close.
	Compact bool
}

// Buffer is an indentation-aware, append-only text sink.
type Buffer struct {
	opts  Options
	buf   []byte
	depth int
	// pending is set at the start of a line until its indentation is
	// written.
	pending bool
	last    CharClass
}

// New returns an empty buffer. A zero Options indents with DefaultIndent.
func New(opts Options) *Buffer {
	if opts.Indent == "" && !opts.Compact {
		opts.Indent = DefaultIndent
	}
	return &Buffer{opts: opts, buf: make([]byte, 0, 1024), pending: true}
}

// Options returns the buffer configuration.
func (b *Buffer) Options() Options { return b.opts }

// Append writes s. Pending indentation is flushed first unless s starts
// with a newline. Newlines inside s are copied as they are; the line after
// the last one starts unindented until the next Append.
func (b *Buffer) Append(s string) {
	if s == "" {
		return
	}
	if s[0] != '\n' {
		b.Continue()
	}
	b.buf = append(b.buf, s...)
	b.last = Classify(s[len(s)-1])
	b.pending = b.last == ClassNewline
}

// AppendRaw writes s as a single token. Newlines inside s belong to the
// token, so the text after it is never indented.
func (b *Buffer) AppendRaw(s string) {
	if s == "" {
		return
	}
	b.Continue()
	b.buf = append(b.buf, s...)
	b.last = Classify(s[len(s)-1])
	b.pending = false
}

// AppendByte writes one byte.
func (b *Buffer) AppendByte(c byte) {
	b.Append(string(c))
}

// Continue writes the indentation of the current line if it is still
// pending.
func (b *Buffer) Continue() {
	if !b.pending {
		return
	}
	b.pending = false
	if b.opts.Compact || b.depth == 0 || b.opts.Indent == "" {
		return
	}
	for range b.depth {
		b.buf = append(b.buf, b.opts.Indent...)
	}
	b.last = ClassSpace
}

// NewLine ends the current line. It does nothing at the start of a line, so
// repeated calls never produce blank lines.
func (b *Buffer) NewLine() {
	if len(b.buf) == 0 || b.last == ClassNewline {
		b.pending = true
		return
	}
	if b.lineIsBlank() {
		// only indentation was written; drop it
		b.trimLineTail()
		if b.last == ClassNewline || len(b.buf) == 0 {
			b.pending = true
			return
		}
	}
	b.buf = append(b.buf, '\n')
	b.last = ClassNewline
	b.pending = true
}

// BlankLine ends the current line and leaves exactly one empty line after
// it. At the start of the buffer it does nothing.
func (b *Buffer) BlankLine() {
	b.NewLine()
	if len(b.buf) == 0 || strings.HasSuffix(string(b.buf[max(0, len(b.buf)-2):]), "\n\n") {
		return
	}
	b.buf = append(b.buf, '\n')
	b.last = ClassNewline
	b.pending = true
}

// NewWord separates what follows from what was written with one space,
// unless the buffer is empty, ends in whitespace, or ends in one of the
// bytes of separators.
func (b *Buffer) NewWord(separators string) {
	if len(b.buf) == 0 || b.pending {
		return
	}
	switch b.last {
	case ClassNewline, ClassSpace, ClassNone:
		return
	}
	if separators != "" && strings.IndexByte(separators, b.buf[len(b.buf)-1]) >= 0 {
		return
	}
	b.buf = append(b.buf, ' ')
	b.last = ClassSpace
}

// Space is NewWord without separators.
func (b *Buffer) Space() { b.NewWord("") }

// Open increases the indentation depth by one level.
func (b *Buffer) Open() {
	if !b.opts.Compact {
		b.depth++
	}
}

// Close decreases the indentation depth by one level. Closing at depth
// zero is ignored.
func (b *Buffer) Close() {
	if b.depth > 0 {
		b.depth--
	}
}

// Depth reports the current indentation depth.
func (b *Buffer) Depth() int { return b.depth }

// Last reports the class of the last written character.
func (b *Buffer) Last() CharClass { return b.last }

// LastByte returns the last written byte, or 0.
func (b *Buffer) LastByte() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

// AtLineStart reports whether nothing but indentation follows the last
// newline.
func (b *Buffer) AtLineStart() bool { return b.pending || len(b.buf) == 0 }

// Len reports the number of bytes written.
func (b *Buffer) Len() int { return len(b.buf) }

func (b *Buffer) String() string { return string(b.buf) }

// Bytes returns the written bytes. The slice is only valid until the next
// write.
func (b *Buffer) Bytes() []byte { return b.buf }

// Reset clears the buffer for an unrelated output file.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.depth = 0
	b.pending = true
	b.last = ClassNone
}

func (b *Buffer) lineIsBlank() bool {
	for i := len(b.buf) - 1; i >= 0; i-- {
		switch b.buf[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}

func (b *Buffer) trimLineTail() {
	i := len(b.buf)
	for i > 0 && (b.buf[i-1] == ' ' || b.buf[i-1] == '\t') {
		i--
	}
	b.buf = b.buf[:i]
	if i == 0 {
		b.last = ClassNone
		return
	}
	b.last = Classify(b.buf[i-1])
}
