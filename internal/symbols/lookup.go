package symbols

import (
	"fmt"

	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/source"
)

// query describes one name lookup.
type query struct {
	file source.FileID
	name source.StringID
	// arity is the written generic argument count, -1 when unknown.
	arity int
	// args is the argument count of an enclosing invocation, -1 when the
	// name is not called.
	args int
	// types restricts hits to namespaces and types.
	types bool
	span  source.Span
	// exclude is never returned; alias targets use it to skip themselves.
	exclude SymbolID
}

func (t *Table) newQuery(file source.FileID, name string, span source.Span) (query, bool) {
	id, ok := t.Strings.Find(name)
	return query{file: file, name: id, arity: -1, args: -1, span: span}, ok
}

func (q query) accepts(t *Table, id SymbolID) bool {
	if id == q.exclude {
		return false
	}
	k := t.Get(id).Kind
	if q.types {
		return k == KindNamespace || k.IsType()
	}
	return k != KindImportScope && k != KindImport
}

// score ranks a candidate; higher is better, ties keep the first seen.
func (q query) score(t *Table, id SymbolID) int {
	sym := t.Get(id)
	s := 0
	switch {
	case q.arity >= 0 && sym.Arity == q.arity:
		s += 4
	case q.arity < 0 && sym.Arity == 0:
		s += 4
	}
	if q.args >= 0 && sym.Kind.IsCallable() {
		s++
		if sym.Params == q.args || sym.Params < 0 {
			s += 2
		}
	}
	return s
}

func (t *Table) best(candidates []SymbolID, q query) SymbolID {
	hit, top := NoSymbolID, -1
	for _, c := range candidates {
		if !q.accepts(t, c) {
			continue
		}
		if s := q.score(t, c); s > top {
			hit, top = c, s
		}
	}
	return hit
}

// lookup resolves q from scope outwards. At every level it checks the
// scope's own children, then inherited scopes, then the import scopes the
// same file declared there. Global usings come last.
func (t *Table) lookup(scope SymbolID, q query) SymbolID {
	if q.name == source.NoStringID {
		return NoSymbolID
	}
	for s := t.Resolve(scope); s.IsValid(); s = t.Resolve(t.Get(s).Parent) {
		if hit := t.member(s, q); hit.IsValid() {
			return hit
		}
		if hit, found := t.imported(s, q); found {
			return hit
		}
	}
	for _, scope := range t.globalImports {
		if hit, found := t.fromImports(scope, q); found {
			return hit
		}
	}
	return NoSymbolID
}

// member finds q among the children of s and, for types, among the members
// of its bases and the universal root.
func (t *Table) member(s SymbolID, q query) SymbolID {
	return t.memberVisited(t.Resolve(s), q, make(map[SymbolID]bool))
}

func (t *Table) memberVisited(s SymbolID, q query, visited map[SymbolID]bool) SymbolID {
	if !s.IsValid() || visited[s] {
		return NoSymbolID
	}
	visited[s] = true
	sym := t.Get(s)
	if hit := t.best(t.childrenNamed(s, q.name), q); hit.IsValid() {
		if len(visited) == 1 || t.Get(hit).Kind != KindTypeParam {
			return hit
		}
	}
	if !sym.Kind.IsType() {
		return NoSymbolID
	}
	for _, b := range sym.Bases {
		if hit := t.memberVisited(t.Resolve(b), q, visited); hit.IsValid() {
			return hit
		}
	}
	return t.memberVisited(t.Resolve(sym.Root), q, visited)
}

// imported checks the import scopes declared directly under s by q's file.
func (t *Table) imported(s SymbolID, q query) (SymbolID, bool) {
	for _, c := range t.Get(s).Children {
		cs := t.Get(c)
		if cs.Kind != KindImportScope || cs.File != q.file {
			continue
		}
		if hit, found := t.fromImports(c, q); found {
			return hit, true
		}
	}
	return NoSymbolID, false
}

// fromImports searches one import scope: aliases first, then the types of
// imported namespaces, then members of statically imported types. found
// reports a name match even when the hit itself is unresolved.
func (t *Table) fromImports(scope SymbolID, q query) (SymbolID, bool) {
	for _, a := range t.childrenNamed(scope, q.name) {
		if a == q.exclude || t.Get(a).Kind != KindAlias {
			continue
		}
		target, _ := t.aliasTarget(a)
		return target, true
	}
	var hits []SymbolID
	for _, c := range t.Get(scope).Children {
		imp := t.Get(c)
		if imp.Kind != KindImport || len(imp.Loaded) == 0 {
			continue
		}
		target := t.Resolve(imp.Loaded[0])
		if imp.Static {
			if hit := t.member(target, q); hit.IsValid() && !containsID(hits, hit) {
				hits = append(hits, hit)
			}
			continue
		}
		for _, h := range t.childrenNamed(target, q.name) {
			if t.Get(h).Kind.IsType() && q.accepts(t, h) && !containsID(hits, h) {
				hits = append(hits, h)
			}
		}
	}
	switch len(hits) {
	case 0:
		return NoSymbolID, false
	case 1:
		return hits[0], true
	}
	hit := t.best(hits, q)
	t.report(diag.SemaAmbiguousReference, diag.SevWarning, q.span,
		fmt.Sprintf("%q is ambiguous between %s and %s", t.Strings.MustLookup(q.name), t.FullName(hits[0]), t.FullName(hits[1])))
	return hit, true
}

// resolveType resolves a named type reference from scope. Type arguments
// narrow each segment by arity.
func (t *Table) resolveType(scope SymbolID, tr *model.TypeRef) SymbolID {
	return t.resolveSegments(scope, tr, NoSymbolID)
}

func (t *Table) resolveSegments(scope SymbolID, tr *model.TypeRef, exclude SymbolID) SymbolID {
	if tr == nil || tr.Form != model.TypeNamed || len(tr.Segments) == 0 {
		return NoSymbolID
	}
	cur := NoSymbolID
	for i := range tr.Segments {
		seg := &tr.Segments[i]
		q, ok := t.newQuery(tr.Span().File, seg.Name, seg.Span)
		if !ok {
			return NoSymbolID
		}
		q.types = true
		q.exclude = exclude
		q.arity = len(seg.Args)
		if seg.Unbound {
			q.arity = seg.Arity
		}
		switch {
		case i > 0:
			cur = t.member(cur, q)
		case tr.Global:
			cur = t.member(t.Global(), q)
		default:
			cur = t.lookup(scope, q)
		}
		if !cur.IsValid() {
			return NoSymbolID
		}
	}
	return cur
}
