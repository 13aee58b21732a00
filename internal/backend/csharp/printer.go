// Package csharp renders the model back to C#. The restyle and minify back
// ends are both a Printer with a different Style.
package csharp

import (
	"strings"

	"recast/internal/emit"
	"recast/internal/layout"
	"recast/internal/model"
)

// BraceStyle places opening braces.
type BraceStyle uint8

const (
	// BraceAllman puts an opening brace on its own line.
	BraceAllman BraceStyle = iota
	// BraceKR keeps an opening brace on the line of its header.
	BraceKR
)

// ParseBraceStyle accepts "allman" and "kr". Empty means allman.
func ParseBraceStyle(s string) (BraceStyle, bool) {
	switch strings.ToLower(s) {
	case "", "allman":
		return BraceAllman, true
	case "kr", "k&r":
		return BraceKR, true
	}
	return BraceAllman, false
}

func (b BraceStyle) String() string {
	if b == BraceKR {
		return "kr"
	}
	return "allman"
}

// Style configures a Printer.
type Style struct {
	Indent string
	Brace  BraceStyle
	// Compact drops every optional space and newline.
	Compact bool
	// Comments keeps leading comments.
	Comments bool
	// RenameLocals shortens locals and lambda parameters. It needs a
	// resolved symbol table.
	RenameLocals bool
}

// Printer is a ConversionMap producing C#.
type Printer struct {
	name  string
	style Style
}

// New returns a printer registered under name.
func New(name string, style Style) *Printer {
	return &Printer{name: name, style: style}
}

var _ emit.ConversionMap = (*Printer)(nil)

func (p *Printer) Name() string { return p.name }

// Style returns the printer configuration.
func (p *Printer) Style() Style { return p.style }

func (p *Printer) Layout() layout.Options {
	return layout.Options{Indent: p.style.Indent, Compact: p.style.Compact}
}

func (p *Printer) Hooks() emit.Hooks { return emit.Hooks{} }

func (p *Printer) Separator(ctx *emit.Context, sourceID string) error {
	if p.style.Compact {
		ctx.Buf.Append("/*" + strings.ReplaceAll(sourceID, "*/", "* /") + "*/")
		return nil
	}
	ctx.Buf.Append("// " + sourceID)
	ctx.Buf.NewLine()
	return nil
}

// Start prepares the renaming state.
func (p *Printer) Start(ctx *emit.Context) error {
	if p.style.RenameLocals && ctx.Table != nil {
		ctx.State = newRenamer(ctx)
	}
	return nil
}

// joins lists two-character sequences that would lex as a different token
// if written without a space.
var joins = map[string]bool{
	"++": true, "--": true, "+=": true, "-=": true, "&&": true, "||": true,
	"//": true, "/*": true, "*/": true, "??": true, "?.": true, "->": true,
	"!=": true, "==": true, "=>": true, "<=": true, "<<": true, "..": true,
}

// needsSpace reports whether s must be separated from a buffer ending in
// last.
func needsSpace(last byte, s string) bool {
	if last == 0 || s == "" {
		return false
	}
	first := s[0]
	if layout.Classify(last) == layout.ClassWord && (layout.Classify(first) == layout.ClassWord || first == '@') {
		return true
	}
	return joins[string([]byte{last, first})]
}

// tok writes one token, separating it from the previous one only when the
// two would otherwise merge.
func tok(ctx *emit.Context, s string) {
	if !ctx.Buf.AtLineStart() && needsSpace(ctx.Buf.LastByte(), s) {
		ctx.Buf.Append(" ")
	}
	ctx.Buf.AppendRaw(s)
}

// sp writes an optional space.
func (p *Printer) sp(ctx *emit.Context) {
	if !p.style.Compact {
		ctx.Buf.Space()
	}
}

// nl ends the line.
func (p *Printer) nl(ctx *emit.Context) {
	if !p.style.Compact {
		ctx.Buf.NewLine()
	}
}

func (p *Printer) blank(ctx *emit.Context) {
	if !p.style.Compact {
		ctx.Buf.BlankLine()
	}
}

// op writes a binary operator with optional spaces around it.
func (p *Printer) op(ctx *emit.Context, s string) {
	p.sp(ctx)
	tok(ctx, s)
	p.sp(ctx)
}

func (p *Printer) comma(ctx *emit.Context) {
	tok(ctx, ",")
	p.sp(ctx)
}

// open starts a braced body after a header.
func (p *Printer) open(ctx *emit.Context) {
	switch {
	case p.style.Compact:
	case p.style.Brace == BraceKR:
		ctx.Buf.Space()
	default:
		ctx.Buf.NewLine()
	}
	tok(ctx, "{")
	p.nl(ctx)
	ctx.Buf.Open()
}

// close ends a braced body; the line stays open after the brace.
func (p *Printer) close(ctx *emit.Context) {
	ctx.Buf.Close()
	p.nl(ctx)
	tok(ctx, "}")
}

// emptyBody writes `{ }` for a body without content.
func (p *Printer) emptyBody(ctx *emit.Context) {
	p.open(ctx)
	p.close(ctx)
}

func (p *Printer) comments(ctx *emit.Context, n model.Node) {
	if !p.style.Comments {
		return
	}
	for _, c := range n.Trivia() {
		ctx.Buf.Append(c.Text)
		ctx.Buf.NewLine()
	}
}

// list renders nodes separated by commas.
func list[T model.Node](p *Printer, ctx *emit.Context, nodes []T) error {
	return emit.VisitAll(ctx, nodes, func() { p.comma(ctx) })
}

// keyword writes a word followed by an optional space.
func (p *Printer) keyword(ctx *emit.Context, w string) {
	tok(ctx, w)
	p.sp(ctx)
}

func (p *Printer) modifiers(ctx *emit.Context, m model.Modifiers) {
	for _, w := range m.Words() {
		tok(ctx, w)
		ctx.Buf.Space()
	}
}
