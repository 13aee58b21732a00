package model

// SymbolID identifies a symbol in the resolution forest. The forest itself
// lives in internal/symbols; the id is declared here so model nodes can hold
// resolver-filled back-references without an import cycle.
type SymbolID uint32

const (
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID SymbolID = 0
)

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
