// Package layout provides Buffer, the append-only text sink every back end
// renders into.
//
// A Buffer tracks the indentation depth and the class of the last written
// character. Indentation is lazy: Open and Close only move the depth, and
// the indent string is written in front of the next piece of content that
// starts a line. NewLine and NewWord never stack whitespace, so callers may
// request a boundary without checking what came before.
//
// One Buffer belongs to one file render. Nothing in it is shared, which is
// what lets independent files render concurrently.
package layout
