package testkit

import (
	"fmt"

	"recast/internal/model"
	"recast/internal/symbols"
)

// CheckForest runs the structural invariants of a symbol table:
// 1) every child lists its parent, and parents list every surviving child
// 2) following parents never loops
// 3) merged symbols keep no children and forward to a surviving symbol
// 4) name indexes only hold children of their owner
func CheckForest(t *symbols.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	for _, id := range t.Symbols.IDs() {
		sym := t.Get(id)
		if sym.MergedInto.IsValid() {
			if len(sym.Children) != 0 {
				return fmt.Errorf("merged symbol %d still has %d children", id, len(sym.Children))
			}
			if t.Get(t.Resolve(id)).MergedInto.IsValid() {
				return fmt.Errorf("symbol %d forwards to a merged symbol", id)
			}
			continue
		}
		for _, c := range sym.Children {
			child := t.Get(c)
			if child == nil {
				return fmt.Errorf("symbol %d lists missing child %d", id, c)
			}
			if child.Parent != id {
				return fmt.Errorf("child %d of %d names parent %d", c, id, child.Parent)
			}
		}
		for name, ids := range sym.NameIndex {
			for _, c := range ids {
				if !contains(sym.Children, c) {
					return fmt.Errorf("name index of %d holds %d (%s) which is not a child", id, c, t.Strings.MustLookup(name))
				}
			}
		}
		if p := sym.Parent; p.IsValid() {
			parent := t.Get(p)
			if parent == nil || parent.MergedInto.IsValid() {
				return fmt.Errorf("symbol %d hangs under merged or missing parent %d", id, p)
			}
			if !contains(parent.Children, id) {
				return fmt.Errorf("parent %d does not list child %d", p, id)
			}
		}
		if err := checkAncestry(t, id); err != nil {
			return err
		}
	}
	return nil
}

func checkAncestry(t *symbols.Table, id symbols.SymbolID) error {
	seen := make(map[symbols.SymbolID]bool)
	for cur := id; cur.IsValid(); cur = t.Get(cur).Parent {
		if seen[cur] {
			return fmt.Errorf("parent chain of %d loops at %d", id, cur)
		}
		seen[cur] = true
	}
	return nil
}

// CheckDecls verifies every declaring node of script points back at a
// symbol that lists it.
func CheckDecls(t *symbols.Table, script *model.Script) error {
	var err error
	model.Inspect(script, func(n model.Node) bool {
		if err != nil {
			return false
		}
		id := n.Symbol()
		if !id.IsValid() {
			return true
		}
		sym := t.Get(id)
		if sym == nil {
			err = fmt.Errorf("%s at %v names missing symbol %d", n.Kind(), n.Span(), id)
			return false
		}
		for _, d := range sym.Decls {
			if d == n {
				return true
			}
		}
		err = fmt.Errorf("%s at %v is not a declaration of symbol %d", n.Kind(), n.Span(), id)
		return false
	})
	return err
}

func contains(list []symbols.SymbolID, id symbols.SymbolID) bool {
	for _, x := range list {
		if x == id {
			return true
		}
	}
	return false
}
