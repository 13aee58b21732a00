// Package js renders the model as JavaScript: ES2022 classes, with
// namespaces as nested objects and enums as frozen objects. C# constructs
// that have no JavaScript rendering fail with emit.ErrUnsupported.
package js

import (
	"strings"

	"recast/internal/emit"
	"recast/internal/layout"
	"recast/internal/model"
)

// Name registers the back end.
const Name = "js"

// Options configure the JavaScript back end.
type Options struct {
	Indent       string
	DropComments bool
}

// Map is the JavaScript conversion map.
type Map struct {
	opts Options
}

// New returns a JavaScript map.
func New(opts Options) *Map {
	if opts.Indent == "" {
		opts.Indent = layout.DefaultIndent
	}
	return &Map{opts: opts}
}

var (
	_ emit.ConversionMap = (*Map)(nil)
	_ emit.Starter       = (*Map)(nil)
)

func (m *Map) Name() string { return Name }

func (m *Map) Layout() layout.Options { return layout.Options{Indent: m.opts.Indent} }

func (m *Map) Separator(ctx *emit.Context, sourceID string) error {
	ctx.Buf.Append("// " + sourceID)
	ctx.Buf.NewLine()
	return nil
}

// Hooks declares namespace objects and namespace-level enums ahead of the
// classes that use them.
func (m *Map) Hooks() emit.Hooks {
	return emit.Hooks{Pre: map[model.Kind]emit.HookFunc{
		model.KindNamespace: m.declareNamespace,
		model.KindEnum:      m.declareEnum,
	}}
}

// state is the per-render scratch of the map.
type state struct {
	// declared holds namespace paths whose objects exist
	declared map[string]bool
}

func (m *Map) Start(ctx *emit.Context) error {
	ctx.State = &state{declared: make(map[string]bool)}
	return nil
}

func stateOf(ctx *emit.Context) *state {
	if s, ok := ctx.State.(*state); ok {
		return s
	}
	s := &state{declared: make(map[string]bool)}
	ctx.State = s
	return s
}

func w(ctx *emit.Context, s string) { ctx.Buf.Append(s) }

func nl(ctx *emit.Context) { ctx.Buf.NewLine() }

// begin ends a header with ` {` and indents the body.
func begin(ctx *emit.Context) {
	ctx.Buf.Space()
	w(ctx, "{")
	nl(ctx)
	ctx.Buf.Open()
}

// end closes a body; the line stays open after the brace.
func end(ctx *emit.Context) {
	ctx.Buf.Close()
	nl(ctx)
	w(ctx, "}")
}

func (m *Map) comments(ctx *emit.Context, n model.Node) {
	if m.opts.DropComments {
		return
	}
	for _, c := range n.Trivia() {
		w(ctx, c.Text)
		nl(ctx)
	}
}

// reserved lists JavaScript words that are valid C# identifiers.
var reserved = map[string]bool{
	"arguments": true, "await": true, "delete": true, "eval": true,
	"export": true, "function": true, "import": true, "instanceof": true,
	"let": true, "super": true, "typeof": true, "undefined": true,
	"var": true, "with": true, "yield": true, "debugger": true,
	"extends": true, "NaN": true, "Infinity": true,
}

// ident spells a local name so it is a valid JavaScript binding.
func ident(name string) string {
	name = strings.TrimPrefix(name, "@")
	if reserved[name] {
		return name + "_"
	}
	return name
}

// list renders nodes separated by commas.
func list[T model.Node](ctx *emit.Context, nodes []T) error {
	return emit.VisitAll(ctx, nodes, func() { w(ctx, ", ") })
}
