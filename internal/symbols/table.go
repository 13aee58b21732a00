package symbols

import (
	"strings"

	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/source"
)

// DefaultRootType is the universal base of classes and structs.
const DefaultRootType = "System.Object"

// DefaultMaxAliasHops bounds alias-to-alias chains during lookup.
const DefaultMaxAliasHops = 2

// Options configure a Table.
type Options struct {
	// RootType is the fully qualified name of the universal root type.
	RootType string
	// MaxAliasHops caps alias edges followed by one lookup.
	MaxAliasHops int
	Reporter     diag.Reporter
}

// Table is the symbol forest of one project. Phases run in order:
// Declare, Merge, Link, Bind.
type Table struct {
	Symbols *Symbols
	Strings *source.Interner

	opts     Options
	reporter diag.Reporter
	scripts  []*model.Script
	// roots are the per-script global namespaces and global import scopes
	roots         []SymbolID
	globalImports []SymbolID
	rootType      SymbolID
	aliases       map[SymbolID]*aliasState
	walk          aliasWalk
	known         map[string]SymbolID
	// linked holds type references Link already tried, so Bind leaves them
	linked map[*model.TypeRef]bool
	// reported keeps resolution diagnostics to one per site
	reported map[reportKey]bool
}

type reportKey struct {
	code diag.Code
	span source.Span
}

// NewTable builds an empty table. If strings is nil a fresh interner is
// allocated.
func NewTable(opts Options, strings *source.Interner) *Table {
	if opts.RootType == "" {
		opts.RootType = DefaultRootType
	}
	if opts.MaxAliasHops <= 0 {
		opts.MaxAliasHops = DefaultMaxAliasHops
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Table{
		Symbols:  NewSymbols(0),
		Strings:  strings,
		opts:     opts,
		reporter: reporter,
		aliases:  make(map[SymbolID]*aliasState),
		linked:   make(map[*model.TypeRef]bool),
		known:    make(map[string]SymbolID),
		reported: make(map[reportKey]bool),
	}
}

// Options returns the effective options.
func (t *Table) Options() Options { return t.opts }

// Get returns the symbol for id without following merges.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Resolve follows merge forwarding to the surviving symbol.
func (t *Table) Resolve(id SymbolID) SymbolID {
	for i := 0; id.IsValid() && i < t.Symbols.Len(); i++ {
		sym := t.Symbols.Get(id)
		if sym == nil || !sym.MergedInto.IsValid() {
			return id
		}
		id = sym.MergedInto
	}
	return id
}

// Sym returns the surviving symbol for id.
func (t *Table) Sym(id SymbolID) *Symbol { return t.Symbols.Get(t.Resolve(id)) }

// Name returns the symbol name text.
func (t *Table) Name(id SymbolID) string {
	sym := t.Sym(id)
	if sym == nil {
		return ""
	}
	return t.Strings.MustLookup(sym.Name)
}

// Roots lists the forest roots in first-seen order.
func (t *Table) Roots() []SymbolID {
	out := make([]SymbolID, 0, len(t.roots))
	for _, id := range t.roots {
		if sym := t.Get(id); sym != nil && !sym.MergedInto.IsValid() {
			out = append(out, id)
		}
	}
	return out
}

// Global returns the surviving global namespace, if any script was declared.
func (t *Table) Global() SymbolID {
	for _, id := range t.roots {
		if sym := t.Get(id); sym != nil && sym.Kind == KindNamespace {
			return t.Resolve(id)
		}
	}
	return NoSymbolID
}

// RootType returns the universal root symbol found by Link.
func (t *Table) RootType() SymbolID { return t.rootType }

// FullName renders the dotted name of id through its accessible ancestors.
func (t *Table) FullName(id SymbolID) string {
	var parts []string
	for id = t.Resolve(id); id.IsValid(); {
		sym := t.Get(id)
		if sym == nil {
			break
		}
		if sym.Name != source.NoStringID {
			parts = append(parts, t.Strings.MustLookup(sym.Name))
		}
		id = t.Resolve(sym.Parent)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Lookup finds a namespace or type by dotted fully qualified name.
func (t *Table) Lookup(fqn string) SymbolID {
	cur := t.Global()
	if !cur.IsValid() || fqn == "" {
		return NoSymbolID
	}
	for _, part := range strings.Split(fqn, ".") {
		name, ok := t.Strings.Find(part)
		if !ok {
			return NoSymbolID
		}
		next := NoSymbolID
		for _, id := range t.childrenNamed(cur, name) {
			if k := t.Get(id).Kind; k.IsContainer() {
				next = id
				break
			}
		}
		if !next.IsValid() {
			return NoSymbolID
		}
		cur = next
	}
	return cur
}

// childrenNamed returns the accessible children of id called name, merges
// followed.
func (t *Table) childrenNamed(id SymbolID, name source.StringID) []SymbolID {
	sym := t.Sym(id)
	if sym == nil {
		return nil
	}
	var out []SymbolID
	for _, c := range sym.NameIndex[name] {
		c = t.Resolve(c)
		if cs := t.Get(c); cs != nil && cs.Accessible && !containsID(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// newSymbol allocates sym under parent and indexes it by name.
func (t *Table) newSymbol(sym Symbol, parent SymbolID) SymbolID {
	sym.Parent = parent
	if sym.Component != nil && len(sym.Decls) == 0 {
		sym.Decls = []model.Node{sym.Component}
	}
	id := t.Symbols.New(&sym)
	if parent.IsValid() {
		t.link(parent, id)
	} else {
		t.roots = append(t.roots, id)
	}
	return id
}

// link appends child to parent's children and name index.
func (t *Table) link(parent, child SymbolID) {
	p := t.Get(parent)
	c := t.Get(child)
	if p == nil || c == nil {
		return
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	if c.Name != source.NoStringID {
		if p.NameIndex == nil {
			p.NameIndex = make(map[source.StringID][]SymbolID)
		}
		p.NameIndex[c.Name] = append(p.NameIndex[c.Name], child)
	}
}

// SymbolOf returns the surviving symbol declared by n.
func (t *Table) SymbolOf(n model.Node) SymbolID {
	if n == nil {
		return NoSymbolID
	}
	return t.Resolve(n.Symbol())
}

// EnclosingType returns the nearest type symbol containing id, id included.
func (t *Table) EnclosingType(id SymbolID) SymbolID {
	for id = t.Resolve(id); id.IsValid(); id = t.Resolve(t.Get(id).Parent) {
		if k := t.Get(id).Kind; k.IsType() && k != KindTypeParam {
			return id
		}
	}
	return NoSymbolID
}

// report emits a resolution diagnostic once per code and site.
func (t *Table) report(code diag.Code, sev diag.Severity, span source.Span, msg string) {
	key := reportKey{code: code, span: span}
	if t.reported[key] {
		return
	}
	t.reported[key] = true
	t.reporter.Report(code, sev, span, msg, nil)
}

func containsID(list []SymbolID, id SymbolID) bool {
	for _, x := range list {
		if x == id {
			return true
		}
	}
	return false
}
