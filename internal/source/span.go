package source

import (
	"fmt"
)

const projectLocation = "<project>"

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// ProjectSpan returns the span of a project-level diagnostic.
func ProjectSpan() Span { return Span{File: NoFile} }

// HasFile reports whether s points into a source file.
func (s Span) HasFile() bool { return s.File != NoFile }

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	if !s.HasFile() {
		return projectLocation
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. Spans from
// different files are not combined.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}
