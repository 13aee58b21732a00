// Package emit defines the code-generation contract shared by every back
// end.
//
// A back end is a ConversionMap: a Visitor with one method per model node
// kind plus a name, a source separator and optional declaration hooks.
// Visitor is a plain Go interface, so a map that forgets an operation does
// not compile. Maps that are partial on purpose embed Unimplemented, whose
// methods fail with ErrNotImplemented the first time the construct shows
// up in input.
//
// There is no generic tree walker: each operation renders its own children
// through Context.Visit. The Context is created per file render and carries
// everything an operation may need (the layout Buffer, the symbol table,
// the ancestor stack and a back-end state slot), so independent files can
// render concurrently.
//
// Namespaces and partial types that were merged across files render once,
// at their first declaration, with the members of every declaration. See
// Context.IsPrimary and Context.Members.
package emit
