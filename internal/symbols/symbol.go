package symbols

import (
	"recast/internal/model"
	"recast/internal/source"
)

// Kind classifies symbols.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindInterface
	KindEnum
	KindEnumMember
	KindDelegate
	KindTypeParam
	KindField
	KindProperty
	KindIndexer
	KindMethod
	KindConstructor
	KindDestructor
	KindOperator
	KindParameter
	KindLocal
	KindLocalFunction
	// KindScope is an anonymous scope: blocks, scoped statements, lambdas,
	// catch clauses, switch sections and accessors.
	KindScope
	// KindImportScope collects the using directives of one declaration.
	KindImportScope
	KindImport
	KindAlias
)

var kindNames = [...]string{
	KindInvalid:       "invalid",
	KindNamespace:     "namespace",
	KindClass:         "class",
	KindStruct:        "struct",
	KindInterface:     "interface",
	KindEnum:          "enum",
	KindEnumMember:    "enum member",
	KindDelegate:      "delegate",
	KindTypeParam:     "type parameter",
	KindField:         "field",
	KindProperty:      "property",
	KindIndexer:       "indexer",
	KindMethod:        "method",
	KindConstructor:   "constructor",
	KindDestructor:    "destructor",
	KindOperator:      "operator",
	KindParameter:     "parameter",
	KindLocal:         "local",
	KindLocalFunction: "local function",
	KindScope:         "scope",
	KindImportScope:   "import scope",
	KindImport:        "import",
	KindAlias:         "alias",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsType reports kinds that declare a type.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum, KindDelegate, KindTypeParam:
		return true
	}
	return false
}

// IsContainer reports kinds whose children can be reached by dotted names.
func (k Kind) IsContainer() bool {
	return k == KindNamespace || (k.IsType() && k != KindTypeParam)
}

// IsValue reports kinds whose uses denote a value of a declared type.
func (k Kind) IsValue() bool {
	switch k {
	case KindField, KindProperty, KindIndexer, KindParameter, KindLocal, KindEnumMember:
		return true
	}
	return false
}

// IsCallable reports kinds that can be invoked.
func (k Kind) IsCallable() bool {
	return k == KindMethod || k == KindLocalFunction || k == KindConstructor || k == KindDelegate
}

// Usage records one reference site bound to a symbol.
type Usage struct {
	File source.FileID
	Span source.Span
	Node model.Node
	// Scope is the innermost scope symbol enclosing the reference.
	Scope SymbolID
}

// Symbol is one node of the symbol forest.
type Symbol struct {
	Name      source.StringID
	Kind      Kind
	Parent    SymbolID
	Component model.Node
	// Decls lists every declaring node in first-seen order; more than one
	// only for merged namespaces and partial types.
	Decls     []model.Node
	Children  []SymbolID
	NameIndex map[source.StringID][]SymbolID
	Usages    []Usage
	// Loaded holds what an import or import scope brings into scope.
	Loaded      []SymbolID
	AliasTarget SymbolID
	// Accessible symbols are found by name lookup in their parent.
	Accessible bool
	File       source.FileID
	Bases      []SymbolID
	// Root forwards lookups to the universal root type for classes and
	// structs without a class base.
	Root       SymbolID
	MergedInto SymbolID
	Modifiers  model.Modifiers
	// Static marks `using static` imports.
	Static bool
	// Global marks import scopes of global usings.
	Global bool
	// Arity is the type parameter count of types and generic methods.
	Arity int
	// Params is the parameter count of callables, -1 when variadic.
	Params int
	// Type is the declared type of values, or the return type of callables.
	Type      *model.TypeRef
	ValueType SymbolID
}

// IsStatic reports static or const members.
func (s *Symbol) IsStatic() bool { return s.Modifiers.IsStatic() }
