package symbols

import (
	"strings"

	"recast/internal/model"
	"recast/internal/source"
)

// Declare runs phase 1: one symbol per name-introducing or scope-opening
// node of every script. Global usings of all scripts are declared first,
// each script's set under its own root import scope.
func (t *Table) Declare(scripts []*model.Script) {
	t.scripts = append(t.scripts, scripts...)
	for _, s := range scripts {
		if len(s.GlobalUsings) == 0 {
			continue
		}
		scope := t.newSymbol(Symbol{Kind: KindImportScope, File: s.File, Global: true, Component: s}, NoSymbolID)
		t.globalImports = append(t.globalImports, scope)
		for _, u := range s.GlobalUsings {
			t.declareUsing(u, scope, s.File)
		}
	}
	for _, s := range scripts {
		d := &declarer{t: t, file: s.File}
		d.namespace(s.Root, NoSymbolID)
	}
}

// Scripts returns the declared scripts in declaration order.
func (t *Table) Scripts() []*model.Script { return t.scripts }

func (t *Table) declareUsing(u *model.Using, scope SymbolID, file source.FileID) {
	sym := Symbol{Component: u, File: file, Static: u.Static}
	if u.Alias != "" {
		sym.Kind = KindAlias
		sym.Name = t.Strings.Intern(u.Alias)
		sym.Accessible = true
	} else {
		sym.Kind = KindImport
	}
	u.SetSymbol(t.newSymbol(sym, scope))
}

type declarer struct {
	t    *Table
	file source.FileID
}

func (d *declarer) intern(s string) source.StringID { return d.t.Strings.Intern(s) }

func (d *declarer) declare(n model.Node, parent SymbolID, sym Symbol) SymbolID {
	sym.Component = n
	sym.File = d.file
	id := d.t.newSymbol(sym, parent)
	if n != nil {
		n.SetSymbol(id)
	}
	return id
}

func (d *declarer) scope(n model.Node, parent SymbolID) SymbolID {
	return d.declare(n, parent, Symbol{Kind: KindScope})
}

func (d *declarer) named(n model.Node, parent SymbolID, kind Kind, name string, mods model.Modifiers) SymbolID {
	return d.declare(n, parent, Symbol{
		Kind:       kind,
		Name:       d.intern(name),
		Accessible: true,
		Modifiers:  mods,
	})
}

func (d *declarer) children(n model.Node, parent SymbolID) {
	for _, ch := range model.Children(n) {
		d.node(ch, parent)
	}
}

// namespace declares ns; a dotted name opens one namespace symbol per part,
// the node owning the innermost.
func (d *declarer) namespace(ns *model.Namespace, parent SymbolID) {
	var id SymbolID
	if ns.IsRoot() {
		id = d.declare(ns, NoSymbolID, Symbol{Kind: KindNamespace, Accessible: true})
	} else {
		parts := strings.Split(ns.Name, ".")
		for i, part := range parts {
			sym := Symbol{Kind: KindNamespace, Name: d.intern(part), Accessible: true, Component: ns, File: d.file}
			if i == len(parts)-1 {
				id = d.declare(ns, parent, sym)
				break
			}
			parent = d.t.newSymbol(sym, parent)
		}
	}
	if len(ns.Usings) > 0 {
		imports := d.t.newSymbol(Symbol{Kind: KindImportScope, File: d.file, Component: ns}, id)
		for _, u := range ns.Usings {
			d.t.declareUsing(u, imports, d.file)
		}
	}
	for _, ch := range model.Children(ns) {
		if _, ok := ch.(*model.Using); ok {
			continue
		}
		d.node(ch, id)
	}
}

func (d *declarer) typeDecl(n model.Node, td *model.TypeDecl, kind Kind, parent SymbolID) {
	id := d.declare(n, parent, Symbol{
		Kind:       kind,
		Name:       d.intern(td.Name),
		Accessible: true,
		Modifiers:  td.Modifiers,
		Arity:      len(td.TypeParams),
	})
	d.children(n, id)
}

func (d *declarer) callable(n model.Node, parent SymbolID, sym Symbol, params []*model.Parameter) SymbolID {
	sym.Params = len(params)
	for _, p := range params {
		if p.Modifiers.Has(model.FlagParams) {
			sym.Params = -1
		}
	}
	id := d.declare(n, parent, sym)
	d.children(n, id)
	return id
}

// node declares the symbol n introduces, if any, and descends.
func (d *declarer) node(n model.Node, parent SymbolID) {
	switch n := n.(type) {
	case *model.Namespace:
		d.namespace(n, parent)
	case *model.Class:
		d.typeDecl(n, &n.TypeDecl, KindClass, parent)
	case *model.Struct:
		d.typeDecl(n, &n.TypeDecl, KindStruct, parent)
	case *model.Interface:
		d.typeDecl(n, &n.TypeDecl, KindInterface, parent)
	case *model.Enum:
		id := d.named(n, parent, KindEnum, n.Name, n.Modifiers)
		d.children(n, id)
	case *model.EnumMember:
		mods := model.Modifiers{Access: model.AccessPublic, Flags: model.FlagConst}
		id := d.named(n, parent, KindEnumMember, n.Name, mods)
		d.t.Get(id).ValueType = parent
		d.children(n, parent)
	case *model.Delegate:
		d.callable(n, parent, Symbol{
			Kind:       KindDelegate,
			Name:       d.intern(n.Name),
			Accessible: true,
			Modifiers:  n.Modifiers,
			Arity:      len(n.TypeParams),
			Type:       n.Return,
		}, n.Params)
	case *model.TypeParameter:
		d.named(n, parent, KindTypeParam, n.Name, model.Modifiers{})
		d.children(n, parent)
	case *model.Field:
		id := d.named(n, parent, KindField, n.Name, n.Modifiers)
		d.t.Get(id).Type = n.Type
		d.children(n, id)
	case *model.Property:
		id := d.named(n, parent, KindProperty, n.Name, n.Modifiers)
		d.t.Get(id).Type = n.Type
		d.members(n, id, n.Type)
	case *model.Indexer:
		id := d.declare(n, parent, Symbol{Kind: KindIndexer, Name: d.intern(n.DeclName()), Modifiers: n.Modifiers, Type: n.Type})
		d.t.Get(id).Params = len(n.Params)
		d.members(n, id, n.Type)
	case *model.Method:
		d.callable(n, parent, Symbol{
			Kind:       KindMethod,
			Name:       d.intern(n.Name),
			Accessible: n.ExplicitInterface == nil,
			Modifiers:  n.Modifiers,
			Arity:      len(n.TypeParams),
			Type:       n.Return,
		}, n.Params)
	case *model.Constructor:
		d.callable(n, parent, Symbol{Kind: KindConstructor, Name: d.intern(n.Name), Modifiers: n.Modifiers}, n.Params)
	case *model.Destructor:
		d.callable(n, parent, Symbol{Kind: KindDestructor, Name: d.intern(n.DeclName()), Modifiers: n.Modifiers}, nil)
	case *model.Operator:
		d.callable(n, parent, Symbol{Kind: KindOperator, Name: d.intern(n.DeclName()), Modifiers: n.Modifiers, Type: n.Return}, n.Params)
	case *model.LocalFunction:
		d.callable(n, parent, Symbol{
			Kind:       KindLocalFunction,
			Name:       d.intern(n.Name),
			Accessible: true,
			Modifiers:  n.Modifiers,
			Arity:      len(n.TypeParams),
			Type:       n.Return,
		}, n.Params)
	case *model.Parameter:
		id := d.named(n, parent, KindParameter, n.Name, n.Modifiers)
		d.t.Get(id).Type = n.Type
		d.children(n, parent)
	case *model.LocalDecl:
		d.locals(n, parent)
	case *model.Variable:
		d.variable(n, parent, nil)
	case *model.DeclarationExpr:
		for _, v := range n.Vars {
			d.variable(v, parent, n.Type)
		}
	case *model.Foreach:
		id := d.scope(n, parent)
		for _, ch := range model.Children(n) {
			if v, ok := ch.(*model.Variable); ok && v == n.Var {
				d.variable(v, id, n.Type)
				continue
			}
			d.node(ch, id)
		}
	case *model.CatchClause:
		id := d.scope(n, parent)
		if n.Name != "" {
			d.t.newSymbol(Symbol{
				Kind:       KindLocal,
				Name:       d.intern(n.Name),
				Accessible: true,
				File:       d.file,
				Component:  n,
				Type:       n.Type,
			}, id)
		}
		d.children(n, id)
	case *model.Pattern:
		if n.Name != "" && n.Name != "_" {
			id := d.named(n, parent, KindLocal, n.Name, model.Modifiers{})
			d.t.Get(id).Type = n.Type
		}
		d.children(n, parent)
	case *model.Block, *model.For, *model.UsingStmt, *model.Fixed, *model.SwitchSection, *model.Lambda:
		d.children(n, d.scope(n, parent))
	default:
		d.children(n, parent)
	}
}

// members declares accessors of a property or indexer. Mutating accessors
// get the implicit `value` parameter.
func (d *declarer) members(n model.Node, owner SymbolID, typ *model.TypeRef) {
	for _, ch := range model.Children(n) {
		acc, ok := ch.(*model.Accessor)
		if !ok {
			d.node(ch, owner)
			continue
		}
		scope := d.scope(acc, owner)
		switch acc.Keyword {
		case "set", "init", "add", "remove":
			d.t.newSymbol(Symbol{
				Kind:       KindParameter,
				Name:       d.intern("value"),
				Accessible: true,
				File:       d.file,
				Type:       typ,
			}, scope)
		}
		d.children(acc, scope)
	}
}

func (d *declarer) locals(n *model.LocalDecl, parent SymbolID) {
	for _, ch := range model.Children(n) {
		if v, ok := ch.(*model.Variable); ok {
			d.variable(v, parent, n.Type)
			continue
		}
		d.node(ch, parent)
	}
}

func (d *declarer) variable(v *model.Variable, parent SymbolID, typ *model.TypeRef) {
	if v.Name != "_" {
		id := d.named(v, parent, KindLocal, v.Name, model.Modifiers{})
		d.t.Get(id).Type = typ
	}
	d.children(v, parent)
}
