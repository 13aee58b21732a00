package emit

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"

	"recast/internal/diag"
	"recast/internal/layout"
	"recast/internal/model"
	"recast/internal/source"
	"recast/internal/symbols"
)

// Context is the state of one file render. It is not safe for concurrent
// use; concurrent renders each get their own.
type Context struct {
	Buf    *layout.Buffer
	Map    ConversionMap
	Table  *symbols.Table
	Script *model.Script
	Files  *source.FileSet
	// Reporter receives informational notes from operations. Never nil.
	Reporter diag.Reporter
	// State belongs to the map; Starter implementations usually set it.
	State any

	stack []model.Node
}

// NewContext prepares a render of script with m. table and files may be
// nil for scripts rendered without resolution.
func NewContext(m ConversionMap, table *symbols.Table, files *source.FileSet, script *model.Script) *Context {
	return &Context{
		Buf:      layout.New(m.Layout()),
		Map:      m,
		Table:    table,
		Script:   script,
		Files:    files,
		Reporter: diag.NopReporter{},
	}
}

// Visit renders n with the map. Nil nodes render nothing.
func (c *Context) Visit(n model.Node) error {
	if isNil(n) {
		return nil
	}
	c.stack = append(c.stack, n)
	err := dispatch(c.Map, c, n)
	c.stack = c.stack[:len(c.stack)-1]
	return err
}

// VisitAll renders nodes in order, calling sep between consecutive ones.
func VisitAll[T model.Node](c *Context, nodes []T, sep func()) error {
	for i, n := range nodes {
		if i > 0 && sep != nil {
			sep()
		}
		if err := c.Visit(n); err != nil {
			return err
		}
	}
	return nil
}

func isNil(n model.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Current returns the node being rendered.
func (c *Context) Current() model.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Parent returns the node whose operation is rendering the current one.
func (c *Context) Parent() model.Node {
	if len(c.stack) < 2 {
		return nil
	}
	return c.stack[len(c.stack)-2]
}

// Ancestors returns the rendering stack, outermost first, current node
// excluded. Do not modify the slice.
func (c *Context) Ancestors() []model.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[:len(c.stack)-1]
}

// Enclosing returns the innermost ancestor of one of the given kinds.
func (c *Context) Enclosing(kinds ...model.Kind) model.Node {
	for i := len(c.stack) - 2; i >= 0; i-- {
		k := c.stack[i].Kind()
		for _, want := range kinds {
			if k == want {
				return c.stack[i]
			}
		}
	}
	return nil
}

// Position formats the start of n for messages.
func (c *Context) Position(n model.Node) string {
	if n == nil {
		return "-"
	}
	if c.Files != nil {
		return c.Files.Position(n.Span())
	}
	return n.Span().String()
}

func (c *Context) errorAt(n model.Node, sentinel error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	return errors.Wrapf(sentinel, "%s: %s at %s", c.mapName(), what, c.Position(n))
}

func (c *Context) mapName() string {
	if c.Map == nil {
		return "emit"
	}
	return c.Map.Name()
}

// NotImplemented returns the error of a map with no operation for n.
func (c *Context) NotImplemented(n model.Node) error {
	return c.errorAt(n, ErrNotImplemented, "%s", n.Kind())
}

// Unsupported returns the error of a map that cannot express what, found
// at n, in its target language.
func (c *Context) Unsupported(n model.Node, what string) error {
	return c.errorAt(n, ErrUnsupported, "%s", what)
}

// Note reports an informational render diagnostic at n.
func (c *Context) Note(n model.Node, msg string) {
	diag.ReportInfo(c.Reporter, diag.RenderInfo, n.Span(), msg).Emit()
}

// Sym returns the surviving symbol declared or referenced by n, or nil.
func (c *Context) Sym(n model.Node) *symbols.Symbol {
	if c.Table == nil || isNil(n) || !n.Symbol().IsValid() {
		return nil
	}
	return c.Table.Sym(n.Symbol())
}

// merged returns the resolved symbol of a namespace or type declaration
// when it joins more than one declaration.
func (c *Context) merged(n model.Node) (symbols.SymbolID, *symbols.Symbol, bool) {
	if c.Table == nil || isNil(n) || !n.Symbol().IsValid() {
		return symbols.NoSymbolID, nil, false
	}
	if ns, ok := n.(*model.Namespace); ok && ns.IsRoot() {
		return symbols.NoSymbolID, nil, false
	}
	id := c.Table.Resolve(n.Symbol())
	sym := c.Table.Get(id)
	if sym == nil || len(sym.Decls) < 2 {
		return symbols.NoSymbolID, nil, false
	}
	return id, sym, true
}

// Declarations returns every declaration merged with n in first-seen
// order, n included. Unmerged nodes and script roots yield just n.
func (c *Context) Declarations(n model.Node) []model.Node {
	id, sym, ok := c.merged(n)
	if !ok {
		return []model.Node{n}
	}
	out := make([]model.Node, 0, len(sym.Decls))
	for _, d := range sym.Decls {
		// dotted namespace names give their outer parts the same node
		if c.Table.Resolve(d.Symbol()) == id {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return []model.Node{n}
	}
	return out
}

// IsPrimary reports whether n is the declaration a merged namespace or
// partial type renders at. Other declarations render nothing.
func (c *Context) IsPrimary(n model.Node) bool {
	return c.Declarations(n)[0] == n
}

// Members returns the members of a namespace or type declaration; for a
// merged one, the members of every declaration in first-seen order.
func (c *Context) Members(n model.Node) (model.Members, error) {
	decls := c.Declarations(n)
	parts := make([]*model.Members, 0, len(decls))
	for _, d := range decls {
		if m := ownMembers(d); m != nil {
			parts = append(parts, m)
		}
	}
	m, err := model.MergeMembers(parts...)
	if err != nil {
		return model.Members{}, c.errorAt(n, err, "merging members")
	}
	return m, nil
}

func ownMembers(n model.Node) *model.Members {
	switch n := n.(type) {
	case *model.Namespace:
		return &n.Members
	case *model.Class:
		return &n.Members
	case *model.Struct:
		return &n.Members
	case *model.Interface:
		return &n.Members
	}
	return nil
}
