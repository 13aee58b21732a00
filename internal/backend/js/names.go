package js

import (
	"fmt"
	"strings"

	"recast/internal/emit"
	"recast/internal/model"
	"recast/internal/source"
	"recast/internal/symbols"
)

// libraryTypes maps library types to the JavaScript constructors standing
// in for them.
var libraryTypes = map[string]string{
	"System.Object":                         "Object",
	"System.String":                         "String",
	"System.Char":                           "String",
	"System.Boolean":                        "Boolean",
	"System.Array":                          "Array",
	"System.Exception":                      "Error",
	"System.Math":                           "Math",
	"System.Collections.Generic.List":       "Array",
	"System.Collections.Generic.Dictionary": "Map",
	"System.Collections.Generic.HashSet":    "Set",
	"System.Threading.Tasks.Task":           "Promise",
}

const (
	exceptionType  = "System.Exception"
	listType       = "System.Collections.Generic.List"
	dictionaryType = "System.Collections.Generic.Dictionary"
	hashSetType    = "System.Collections.Generic.HashSet"
	stringType     = "System.String"
	charType       = "System.Char"
	boolType       = "System.Boolean"
	objectType     = "System.Object"
)

var integralTypes = map[string]bool{
	"System.Byte": true, "System.SByte": true, "System.Int16": true, "System.UInt16": true,
	"System.Int32": true, "System.UInt32": true, "System.Int64": true, "System.UInt64": true,
	"System.IntPtr": true, "System.UIntPtr": true,
}

var floatTypes = map[string]bool{
	"System.Single": true, "System.Double": true, "System.Decimal": true,
}

func symOf(ctx *emit.Context, id symbols.SymbolID) *symbols.Symbol {
	if ctx.Table == nil || !id.IsValid() {
		return nil
	}
	return ctx.Table.Sym(id)
}

// symbolOf returns the surviving symbol declared by n.
func symbolOf(ctx *emit.Context, n model.Node) symbols.SymbolID {
	if ctx.Table == nil {
		return symbols.NoSymbolID
	}
	return ctx.Table.SymbolOf(n)
}

func fullName(ctx *emit.Context, id symbols.SymbolID) string {
	if ctx.Table == nil {
		return ""
	}
	return ctx.Table.FullName(id)
}

// library reports symbols declared by declaration-only inputs.
func library(ctx *emit.Context, sym *symbols.Symbol) bool {
	if sym == nil || ctx.Files == nil {
		return false
	}
	return ctx.Files.Get(sym.File).IsLibrary()
}

// classBase returns the class a type derives from, if any.
func classBase(ctx *emit.Context, id symbols.SymbolID) symbols.SymbolID {
	sym := symOf(ctx, id)
	if sym == nil {
		return symbols.NoSymbolID
	}
	for _, b := range sym.Bases {
		if bs := symOf(ctx, b); bs != nil && bs.Kind == symbols.KindClass {
			return ctx.Table.Resolve(b)
		}
	}
	return symbols.NoSymbolID
}

// derives reports whether id is fqn or a class derived from it.
func derives(ctx *emit.Context, id symbols.SymbolID, fqn string) bool {
	for range 64 {
		if !id.IsValid() {
			return false
		}
		if fullName(ctx, id) == fqn {
			return true
		}
		id = classBase(ctx, id)
	}
	return false
}

// typeName renders a reference to the type id. Inside its own class body a
// type is named by its class binding.
func typeName(ctx *emit.Context, at model.Node, id symbols.SymbolID) (string, error) {
	sym := symOf(ctx, id)
	if sym == nil {
		return "", ctx.Unsupported(at, "unresolved type")
	}
	fqn := ctx.Table.FullName(id)
	switch {
	case sym.Kind == symbols.KindTypeParam:
		return "", ctx.Unsupported(at, "type parameter "+fqn)
	case library(ctx, sym):
		if name, ok := libraryTypes[fqn]; ok {
			return name, nil
		}
		if derives(ctx, id, exceptionType) {
			return "Error", nil
		}
		if integralTypes[fqn] || floatTypes[fqn] {
			return "Number", nil
		}
		return "", ctx.Unsupported(at, "library type "+fqn)
	}
	if self := ctx.Enclosing(model.KindClass, model.KindStruct); self != nil && symbolOf(ctx, self) == ctx.Table.Resolve(id) {
		return ctx.Table.Name(id), nil
	}
	return fqn, nil
}

// typeRefName renders a written type as a constructor expression.
func typeRefName(ctx *emit.Context, tr *model.TypeRef) (string, error) {
	if tr == nil {
		return "", ctx.Unsupported(ctx.Current(), "missing type")
	}
	switch tr.Form {
	case model.TypeNullable:
		return typeRefName(ctx, tr.Elem)
	case model.TypeArray:
		return "Array", nil
	case model.TypeNamed, model.TypePredefined:
		if ctx.Table != nil && tr.Target.IsValid() {
			return typeName(ctx, tr, tr.Target)
		}
		if tr.Form == model.TypePredefined {
			fqn, _ := symbols.PredefinedName(tr.Keyword)
			if name, ok := libraryTypes[fqn]; ok {
				return name, nil
			}
			if integralTypes[fqn] || floatTypes[fqn] {
				return "Number", nil
			}
			return "", ctx.Unsupported(tr, "type "+tr.Keyword)
		}
		return tr.Dotted(), nil
	}
	return "", ctx.Unsupported(tr, "type "+tr.String())
}

// typeFullName returns the fully qualified name of a written type, or "".
func typeFullName(ctx *emit.Context, tr *model.TypeRef) string {
	if tr == nil {
		return ""
	}
	switch tr.Form {
	case model.TypeNullable:
		return typeFullName(ctx, tr.Elem)
	case model.TypeNamed, model.TypePredefined:
		if ctx.Table != nil && tr.Target.IsValid() {
			return ctx.Table.FullName(tr.Target)
		}
		if tr.Form == model.TypePredefined {
			fqn, _ := symbols.PredefinedName(tr.Keyword)
			return fqn
		}
	}
	return ""
}

// scopePath returns the names of the namespaces and types enclosing the
// current node.
func scopePath(ctx *emit.Context) []string {
	var parts []string
	for _, a := range ctx.Ancestors() {
		switch a := a.(type) {
		case *model.Namespace:
			if !a.IsRoot() {
				parts = append(parts, strings.Split(a.Name, ".")...)
			}
		case *model.Class:
			parts = append(parts, a.Name)
		case *model.Struct:
			parts = append(parts, a.Name)
		case *model.Interface:
			parts = append(parts, a.Name)
		}
	}
	return parts
}

// declName returns the expression a declaration called name is stored
// under, and whether it is a property of an enclosing object rather than a
// top-level binding.
func declName(ctx *emit.Context, name string) (string, bool) {
	path := scopePath(ctx)
	if len(path) == 0 {
		return name, false
	}
	return strings.Join(append(path, name), "."), true
}

// memberName spells a reference to a member of a user type. Overloaded
// methods carry their parameter count.
func memberName(ctx *emit.Context, id symbols.SymbolID, written string) string {
	written = strings.TrimPrefix(written, "@")
	sym := symOf(ctx, id)
	if sym == nil || sym.Kind != symbols.KindMethod || library(ctx, sym) {
		return written
	}
	if !overloaded(ctx, ctx.Table.Resolve(sym.Parent), sym.Name) {
		return written
	}
	if sym.Params < 0 {
		return written + "$n"
	}
	return fmt.Sprintf("%s$%d", written, sym.Params)
}

// overloaded reports whether a type or one of its user base classes
// declares more than one method called name.
func overloaded(ctx *emit.Context, owner symbols.SymbolID, name source.StringID) bool {
	arities := make(map[int]bool)
	for cur := owner; cur.IsValid(); cur = classBase(ctx, cur) {
		sym := symOf(ctx, cur)
		if sym == nil || library(ctx, sym) {
			break
		}
		for _, c := range sym.NameIndex[name] {
			if cs := symOf(ctx, c); cs != nil && cs.Kind == symbols.KindMethod {
				arities[cs.Params] = true
			}
		}
	}
	return len(arities) > 1
}

// valueType estimates the type symbol of an expression. Zero means
// unknown.
func valueType(ctx *emit.Context, e model.Expr) symbols.SymbolID {
	if ctx.Table == nil {
		return symbols.NoSymbolID
	}
	t := ctx.Table
	value := func(id symbols.SymbolID) symbols.SymbolID {
		if sym := symOf(ctx, id); sym != nil && (sym.Kind.IsValue() || sym.Kind.IsCallable()) {
			return t.Resolve(sym.ValueType)
		}
		return symbols.NoSymbolID
	}
	switch e := e.(type) {
	case *model.Identifier:
		return value(e.Target)
	case *model.MemberAccess:
		return value(e.Target)
	case *model.Invocation:
		return value(callee(e))
	case *model.Paren:
		return valueType(ctx, e.X)
	case *model.CheckedExpr:
		return valueType(ctx, e.X)
	case *model.Cast:
		return t.Resolve(e.Type.Target)
	case *model.ObjectCreation:
		if e.Type != nil {
			return t.Resolve(e.Type.Target)
		}
	case *model.Literal:
		switch e.Lit {
		case model.LitInt:
			return t.Lookup("System.Int32")
		case model.LitReal:
			return t.Lookup("System.Double")
		case model.LitChar:
			return t.Lookup(charType)
		case model.LitString, model.LitVerbatimString, model.LitRawString:
			return t.Lookup(stringType)
		}
	case *model.InterpolatedString:
		return t.Lookup(stringType)
	case *model.Unary:
		if e.Op == "-" || e.Op == "+" || e.Op == "~" || e.Op == "++" || e.Op == "--" {
			return valueType(ctx, e.X)
		}
	case *model.Binary:
		switch e.Op {
		case "+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>":
			l, r := valueType(ctx, e.L), valueType(ctx, e.R)
			if isIntegral(ctx, l) && isIntegral(ctx, r) {
				return l
			}
			if isFloat(ctx, l) {
				return l
			}
			if isFloat(ctx, r) {
				return r
			}
		}
	}
	return symbols.NoSymbolID
}

func isIntegral(ctx *emit.Context, id symbols.SymbolID) bool {
	return id.IsValid() && integralTypes[fullName(ctx, id)]
}

func isFloat(ctx *emit.Context, id symbols.SymbolID) bool {
	return id.IsValid() && floatTypes[fullName(ctx, id)]
}

func isEnum(ctx *emit.Context, id symbols.SymbolID) bool {
	sym := symOf(ctx, id)
	return sym != nil && sym.Kind == symbols.KindEnum
}

// is reports whether id is the library type fqn.
func is(ctx *emit.Context, id symbols.SymbolID, fqn string) bool {
	return id.IsValid() && fullName(ctx, id) == fqn
}

// defaultValue renders the zero value of a declared type.
func defaultValue(ctx *emit.Context, tr *model.TypeRef) string {
	if tr == nil {
		return "null"
	}
	switch tr.Form {
	case model.TypeNamed, model.TypePredefined:
	default:
		return "null"
	}
	if ctx.Table != nil && isEnum(ctx, tr.Target) {
		return "0"
	}
	switch fqn := typeFullName(ctx, tr); {
	case integralTypes[fqn], floatTypes[fqn]:
		return "0"
	case fqn == boolType:
		return "false"
	case fqn == charType:
		return `"\0"`
	}
	return "null"
}

// callee returns the bound target of an invoked name.
func callee(inv *model.Invocation) symbols.SymbolID {
	switch fn := inv.Fn.(type) {
	case *model.Identifier:
		return fn.Target
	case *model.MemberAccess:
		return fn.Target
	}
	return symbols.NoSymbolID
}
