package symbols

import (
	"fmt"

	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/source"
)

type aliasState struct {
	active bool
	done   bool
	target SymbolID
	hops   int
}

// Link runs phase 3. It loads namespace and static imports, resolves alias
// targets, resolves base-type lists, breaks inheritance cycles and points
// every class and struct without a class base at the universal root type.
func (t *Table) Link() {
	ids := t.Symbols.IDs()
	for _, id := range ids {
		if t.Get(id).Kind == KindImport {
			t.linkImport(id)
		}
	}
	for _, id := range ids {
		if t.Get(id).Kind == KindAlias {
			t.aliasTarget(id)
		}
	}
	for _, id := range ids {
		sym := t.Get(id)
		if sym.MergedInto.IsValid() {
			continue
		}
		switch sym.Kind {
		case KindClass, KindStruct, KindInterface:
			t.linkBases(id)
		}
	}
	t.breakCycles(ids)
	t.linkRoot(ids)
}

// importOwner is the lookup start for directives of an import scope.
func (t *Table) importOwner(scope SymbolID) SymbolID {
	if owner := t.Resolve(t.Get(scope).Parent); owner.IsValid() {
		return owner
	}
	return t.Global()
}

func (t *Table) linkImport(id SymbolID) {
	sym := t.Get(id)
	u, ok := sym.Component.(*model.Using)
	if !ok || u.Target == nil {
		return
	}
	t.linked[u.Target] = true
	target := t.resolveSegments(t.importOwner(sym.Parent), u.Target, NoSymbolID)
	if !target.IsValid() {
		t.report(diag.SemaUnresolvedImport, diag.SevWarning, u.Span(),
			fmt.Sprintf("using %s: namespace or type not found", u.Target))
		return
	}
	kind := t.Get(target).Kind
	if !u.Static && kind != KindNamespace {
		t.report(diag.SemaUnresolvedImport, diag.SevWarning, u.Span(),
			fmt.Sprintf("using %s: %s is a %s, not a namespace", u.Target, t.FullName(target), kind))
		return
	}
	sym = t.Get(id)
	sym.Loaded = []SymbolID{target}
	scope := t.Get(sym.Parent)
	scope.Loaded = append(scope.Loaded, target)
	u.Target.Target = target
	t.use(target, u.Target, sym.Parent)
}

// aliasTarget resolves an alias once and memoises the result. Chains of
// aliases count one hop per edge; a chain longer than MaxAliasHops, or one
// that returns to an alias being resolved, is reported and left unresolved.
func (t *Table) aliasTarget(id SymbolID) (SymbolID, int) {
	st := t.aliases[id]
	if st == nil {
		st = &aliasState{}
		t.aliases[id] = st
	}
	sym := t.Get(id)
	u, _ := sym.Component.(*model.Using)
	switch {
	case st.done:
		t.noteHops(st.hops)
		return st.target, st.hops
	case st.active:
		t.walk.broken = true
		t.report(diag.SemaAliasCycle, diag.SevError, u.Span(),
			fmt.Sprintf("alias %s refers back to itself", t.Strings.MustLookup(sym.Name)))
		return NoSymbolID, 0
	}
	st.active = true
	outer := t.walk
	t.walk = aliasWalk{}
	t.linked[u.Target] = true
	target := t.resolveSegments(t.importOwner(sym.Parent), u.Target, id)
	hops, broken := 1+t.walk.hops, t.walk.broken
	if target.IsValid() && hops > t.opts.MaxAliasHops {
		t.report(diag.SemaAliasDepthExceeded, diag.SevWarning, u.Span(),
			fmt.Sprintf("alias %s needs %d alias hops, limit is %d", t.Strings.MustLookup(sym.Name), hops, t.opts.MaxAliasHops))
		target = NoSymbolID
		broken = true
	}
	if !target.IsValid() && !broken {
		t.report(diag.SemaUnresolvedImport, diag.SevWarning, u.Span(),
			fmt.Sprintf("using %s = %s: namespace or type not found", t.Strings.MustLookup(sym.Name), u.Target))
	}
	t.walk = outer
	t.walk.broken = t.walk.broken || broken
	t.noteHops(hops)

	*st = aliasState{done: true, target: target, hops: hops}
	sym = t.Get(id)
	sym.AliasTarget = target
	if target.IsValid() {
		sym.Loaded = []SymbolID{target}
		u.Target.Target = target
		t.use(target, u.Target, sym.Parent)
	}
	return target, hops
}

// aliasWalk carries what nested alias resolutions saw back to the alias
// that triggered them.
type aliasWalk struct {
	hops   int
	broken bool
}

func (t *Table) noteHops(h int) {
	if h > t.walk.hops {
		t.walk.hops = h
	}
}

// linkBases resolves the base list of every declaration of a type. Names
// are looked up from the enclosing scope; the type's own type parameters
// are visible, its members are not.
func (t *Table) linkBases(id SymbolID) {
	for _, decl := range t.Get(id).Decls {
		shaped, ok := decl.(interface{ Shape() *model.TypeDecl })
		if !ok {
			continue
		}
		for _, tr := range shaped.Shape().BaseTypes {
			t.linked[tr] = true
			target := t.resolveBase(id, tr)
			if !target.IsValid() {
				t.report(diag.SemaUnresolvedBase, diag.SevWarning, tr.Span(),
					fmt.Sprintf("base type %s of %s not found", tr, t.FullName(id)))
				continue
			}
			tr.Target = target
			t.use(target, tr, id)
			sym := t.Get(id)
			if target != id && !containsID(sym.Bases, target) {
				sym.Bases = append(sym.Bases, target)
			}
		}
	}
}

func (t *Table) resolveBase(id SymbolID, tr *model.TypeRef) SymbolID {
	if tr.Form == model.TypeNamed && len(tr.Segments) == 1 && !tr.Global {
		if name, ok := t.Strings.Find(tr.Segments[0].Name); ok {
			for _, c := range t.childrenNamed(id, name) {
				if t.Get(c).Kind == KindTypeParam {
					return c
				}
			}
		}
	}
	return t.resolveType(t.Get(id).Parent, tr)
}

// breakCycles removes the base edge closing each inheritance cycle.
func (t *Table) breakCycles(ids []SymbolID) {
	const (
		white = iota
		grey
		black
	)
	color := make(map[SymbolID]int)
	var visit func(id SymbolID)
	visit = func(id SymbolID) {
		color[id] = grey
		sym := t.Get(id)
		kept := sym.Bases[:0]
		for _, b := range sym.Bases {
			b = t.Resolve(b)
			switch color[b] {
			case grey:
				t.report(diag.SemaInheritanceCycle, diag.SevError, sym.Component.Span(),
					fmt.Sprintf("%s inherits from itself through %s", t.FullName(id), t.FullName(b)))
				continue
			case white:
				visit(b)
			}
			kept = append(kept, b)
		}
		t.Get(id).Bases = kept
		color[id] = black
	}
	for _, id := range ids {
		if sym := t.Get(id); len(sym.Bases) > 0 && !sym.MergedInto.IsValid() && color[id] == white {
			visit(id)
		}
	}
}

// linkRoot forwards classes and structs without a class base to the root
// type. The root itself is left untouched.
func (t *Table) linkRoot(ids []SymbolID) {
	t.rootType = t.Lookup(t.opts.RootType)
	needed := false
	for _, id := range ids {
		sym := t.Get(id)
		if sym.MergedInto.IsValid() || (sym.Kind != KindClass && sym.Kind != KindStruct) || id == t.rootType {
			continue
		}
		needed = true
		if !t.rootType.IsValid() || t.hasClassBase(sym) {
			continue
		}
		sym.Root = t.rootType
	}
	if needed && !t.rootType.IsValid() {
		t.report(diag.SemaMissingRootType, diag.SevWarning, source.ProjectSpan(),
			fmt.Sprintf("root type %s not found; inherited members of it are unknown", t.opts.RootType))
	}
}

func (t *Table) hasClassBase(sym *Symbol) bool {
	for _, b := range sym.Bases {
		if t.Sym(b).Kind == KindClass {
			return true
		}
	}
	return false
}

// use records a reference site on target.
func (t *Table) use(target SymbolID, at model.Node, scope SymbolID) {
	sym := t.Sym(target)
	if sym == nil || at == nil {
		return
	}
	sym.Usages = append(sym.Usages, Usage{File: at.Span().File, Span: at.Span(), Node: at, Scope: scope})
}
