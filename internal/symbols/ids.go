package symbols

import "recast/internal/model"

// SymbolID identifies a symbol inside the table arena. Model nodes carry the
// same type as their declaring-symbol back-reference.
type SymbolID = model.SymbolID

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID = model.NoSymbolID
