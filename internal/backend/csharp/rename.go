package csharp

import (
	"recast/internal/emit"
	"recast/internal/model"
	"recast/internal/symbols"
)

// keywords holds reserved and contextual C# keywords; a generated name is
// never one of them.
var keywords = map[string]bool{}

func init() {
	for _, w := range []string{
		"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char",
		"checked", "class", "const", "continue", "decimal", "default", "delegate", "do",
		"double", "else", "enum", "event", "explicit", "extern", "false", "finally",
		"fixed", "float", "for", "foreach", "goto", "if", "implicit", "in", "int",
		"interface", "internal", "is", "lock", "long", "namespace", "new", "null",
		"object", "operator", "out", "override", "params", "private", "protected",
		"public", "readonly", "ref", "return", "sbyte", "sealed", "short", "sizeof",
		"stackalloc", "static", "string", "struct", "switch", "this", "throw", "true",
		"try", "typeof", "uint", "ulong", "unchecked", "unsafe", "ushort", "using",
		"virtual", "void", "volatile", "while",
		"add", "and", "alias", "ascending", "args", "async", "await", "by", "descending",
		"dynamic", "equals", "file", "from", "get", "global", "group", "init", "into",
		"join", "let", "managed", "nameof", "nint", "not", "notnull", "nuint", "on",
		"or", "orderby", "partial", "record", "remove", "required", "scoped", "select",
		"set", "unmanaged", "value", "var", "when", "where", "with", "yield",
	} {
		keywords[w] = true
	}
}

// IsKeyword reports whether s is a C# keyword.
func IsKeyword(s string) bool { return keywords[s] }

// renamer hands out short names to locals and lambda parameters. Names are
// unique within one member and never spell a keyword, an identifier of the
// file or any name the symbol table knows.
type renamer struct {
	table *symbols.Table
	taken map[string]bool
	names map[symbols.SymbolID]string
	next  int
}

func newRenamer(ctx *emit.Context) *renamer {
	r := &renamer{
		table: ctx.Table,
		taken: make(map[string]bool),
		names: make(map[symbols.SymbolID]string),
	}
	model.Inspect(ctx.Script, func(n model.Node) bool {
		switch n := n.(type) {
		case *model.Identifier:
			r.taken[n.Name] = true
		case *model.MemberAccess:
			r.taken[n.Name] = true
		case model.Named:
			r.taken[n.DeclName()] = true
		}
		return true
	})
	return r
}

func renamerOf(ctx *emit.Context) *renamer {
	r, _ := ctx.State.(*renamer)
	return r
}

// reset starts numbering again for the next member.
func (r *renamer) reset() {
	if r != nil {
		r.next = 0
	}
}

// ShortName returns the i-th name of the sequence a, b, ..., z, aa, ab, ...
func ShortName(i int) string {
	var buf []byte
	for i++; i > 0; i = (i - 1) / 26 {
		buf = append([]byte{byte('a' + (i-1)%26)}, buf...)
	}
	return string(buf)
}

func (r *renamer) free(name string) bool {
	if keywords[name] || r.taken[name] {
		return false
	}
	_, known := r.table.Strings.Find(name)
	return !known
}

// declare assigns a short name to the symbol id and returns it.
func (r *renamer) declare(id symbols.SymbolID) string {
	id = r.table.Resolve(id)
	if name, ok := r.names[id]; ok {
		return name
	}
	for {
		name := ShortName(r.next)
		r.next++
		if r.free(name) {
			r.names[id] = name
			return name
		}
	}
}

func (r *renamer) lookup(id symbols.SymbolID) (string, bool) {
	if r == nil || !id.IsValid() {
		return "", false
	}
	name, ok := r.names[r.table.Resolve(id)]
	return name, ok
}

// local returns the name to print where the local or parameter id is
// declared.
func (p *Printer) local(ctx *emit.Context, id symbols.SymbolID, name string) string {
	r := renamerOf(ctx)
	if r == nil || !id.IsValid() || name == "_" {
		return name
	}
	sym := r.table.Sym(id)
	if sym == nil || sym.Kind != symbols.KindLocal && sym.Kind != symbols.KindParameter {
		return name
	}
	return r.declare(id)
}

// reference returns the name to print for a use bound to target.
func (p *Printer) reference(ctx *emit.Context, target symbols.SymbolID, name string) string {
	if n, ok := renamerOf(ctx).lookup(target); ok {
		return n
	}
	return name
}

// catchLocal finds the local symbol a catch clause declares.
func catchLocal(ctx *emit.Context, c *model.CatchClause) symbols.SymbolID {
	if ctx.Table == nil || c.Name == "" {
		return symbols.NoSymbolID
	}
	scope := ctx.Table.Sym(c.Symbol())
	key, ok := ctx.Table.Strings.Find(c.Name)
	if scope == nil || !ok {
		return symbols.NoSymbolID
	}
	for _, id := range scope.NameIndex[key] {
		if s := ctx.Table.Get(id); s != nil && s.Kind == symbols.KindLocal {
			return id
		}
	}
	return symbols.NoSymbolID
}
