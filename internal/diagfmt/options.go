package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown before the primary line.
	Context   int
	ShowNotes bool
	// Max stops after that many diagnostics; 0 prints all.
	Max int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	// Max truncates the output, not the bag.
	Max int
}
