package symbols

import "recast/internal/model"

// predefined maps C# keyword types to the declarations they alias.
var predefined = map[string]string{
	"object":  "System.Object",
	"string":  "System.String",
	"bool":    "System.Boolean",
	"char":    "System.Char",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"nint":    "System.IntPtr",
	"nuint":   "System.UIntPtr",
	"float":   "System.Single",
	"double":  "System.Double",
	"decimal": "System.Decimal",
	"void":    "System.Void",
}

// PredefinedName returns the fully qualified name a keyword type aliases.
func PredefinedName(keyword string) (string, bool) {
	name, ok := predefined[keyword]
	return name, ok
}

// literalTypes names the type of each literal kind, when it has one.
var literalTypes = map[model.LiteralKind]string{
	model.LitInt:            "System.Int32",
	model.LitReal:           "System.Double",
	model.LitString:         "System.String",
	model.LitVerbatimString: "System.String",
	model.LitRawString:      "System.String",
	model.LitChar:           "System.Char",
	model.LitBool:           "System.Boolean",
}

// wellKnown resolves and caches a fully qualified name.
func (t *Table) wellKnown(fqn string) SymbolID {
	if id, ok := t.known[fqn]; ok {
		return id
	}
	id := t.Lookup(fqn)
	t.known[fqn] = id
	return id
}
