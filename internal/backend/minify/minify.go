// Package minify renders C# with no comments and no optional whitespace.
// With RenameLocals, locals, catch variables, pattern designations and
// lambda parameters get the shortest names that cannot clash with any
// other name of the project.
package minify

import "recast/internal/backend/csharp"

// Name is the back-end name.
const Name = "minify"

type Options struct {
	RenameLocals bool
}

// New returns the minify map.
func New(opts Options) *csharp.Printer {
	return csharp.New(Name, csharp.Style{
		Compact:      true,
		RenameLocals: opts.RenameLocals,
	})
}
