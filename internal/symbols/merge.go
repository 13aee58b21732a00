package symbols

import (
	"fmt"

	"recast/internal/diag"
	"recast/internal/model"
)

// Merge runs phase 2: namespaces sharing a fully qualified name collapse
// into the first-seen declaration, and so do partial types of the same kind
// and arity. Other same-named types are reported as duplicates and kept
// apart. Running Merge twice changes nothing.
func (t *Table) Merge() {
	// Allocation order is pre-order, so a parent is settled before any of
	// its children is considered.
	for _, id := range t.Symbols.IDs() {
		sym := t.Get(id)
		if sym.MergedInto.IsValid() {
			continue
		}
		if sym.Kind != KindNamespace && !sym.Kind.IsContainer() {
			continue
		}
		other := t.earlierSibling(id)
		if !other.IsValid() {
			continue
		}
		if t.mergeable(other, id) {
			t.merge(other, id)
			continue
		}
		t.report(diag.SemaDuplicateSymbol, diag.SevError, sym.Component.Span(),
			fmt.Sprintf("%s %q is already declared", sym.Kind, t.Strings.MustLookup(sym.Name)))
	}
}

// earlierSibling finds an unmerged symbol of the same name and category
// allocated before id under the same (resolved) parent.
func (t *Table) earlierSibling(id SymbolID) SymbolID {
	sym := t.Get(id)
	var candidates []SymbolID
	if parent := t.Resolve(sym.Parent); parent.IsValid() {
		candidates = t.Get(parent).NameIndex[sym.Name]
	} else {
		candidates = t.roots
	}
	for _, c := range candidates {
		c = t.Resolve(c)
		if c >= id {
			continue
		}
		cs := t.Get(c)
		if cs.Name != sym.Name || cs.MergedInto.IsValid() {
			continue
		}
		if sym.Kind == KindNamespace {
			if cs.Kind == KindNamespace {
				return c
			}
			continue
		}
		if cs.Kind.IsContainer() && cs.Kind != KindNamespace && cs.Arity == sym.Arity {
			return c
		}
	}
	return NoSymbolID
}

func (t *Table) mergeable(into, from SymbolID) bool {
	a, b := t.Get(into), t.Get(from)
	if a.Kind == KindNamespace {
		return true
	}
	return a.Kind == b.Kind && a.Modifiers.Has(model.FlagPartial) && b.Modifiers.Has(model.FlagPartial)
}

// merge moves the declarations and children of from into the survivor.
func (t *Table) merge(into, from SymbolID) {
	dst, src := t.Get(into), t.Get(from)
	dst.Decls = append(dst.Decls, src.Decls...)
	dst.Modifiers.Flags |= src.Modifiers.Flags
	if dst.Modifiers.Access == model.AccessDefault {
		dst.Modifiers.Access = src.Modifiers.Access
	}
	children := src.Children
	src.Children = nil
	src.NameIndex = nil
	src.MergedInto = into
	for _, c := range children {
		t.link(into, c)
	}
}
