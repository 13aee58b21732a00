// Package restyle re-renders C# with canonical layout: one declaration per
// line, members grouped by category, configurable indentation and brace
// placement. Comments are kept.
package restyle

import (
	"recast/internal/backend/csharp"
	"recast/internal/layout"
)

// Name is the back-end name.
const Name = "restyle"

type Options struct {
	// Indent defaults to four spaces.
	Indent string
	Brace  csharp.BraceStyle
	// DropComments removes leading comments.
	DropComments bool
}

// New returns the restyle map.
func New(opts Options) *csharp.Printer {
	if opts.Indent == "" {
		opts.Indent = layout.DefaultIndent
	}
	return csharp.New(Name, csharp.Style{
		Indent:   opts.Indent,
		Brace:    opts.Brace,
		Comments: !opts.DropComments,
	})
}
