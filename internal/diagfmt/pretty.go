package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"recast/internal/diag"
	"recast/internal/source"
)

type palette struct {
	err, warn, info, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes each diagnostic of bag as
//
//	path:line:col: SEVERITY CODE: message
//
// followed by the source line with the span underlined and, optionally,
// its notes. Call bag.Sort first for position order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, d := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: %s %s\n",
			p.loc.Sprint(fs.Position(d.Primary)),
			p.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
			d.Message)
		excerpt(&b, p, fs, d.Primary, opts.Context)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&b, "  %s %s: %s\n", p.info.Sprint("note:"), fs.Position(n.Span), n.Msg)
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		_, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", dropped)
		return err
	}
	return nil
}

// excerpt writes the lines of sp with a caret underline below the first.
func excerpt(b *strings.Builder, p palette, fs *source.FileSet, sp source.Span, context int) {
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 || sp.Start == 0 && sp.End == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	width := len(fmt.Sprint(start.Line))
	first := start.Line
	if context > 0 && uint32(context) < first {
		first -= uint32(context)
	} else if context > 0 {
		first = 1
	}
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(b, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), f.GetLine(ln))
	}
	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	n := 1
	if end.Line == start.Line && end.Col > start.Col {
		n = runewidth.StringWidth(line[col:min(len(line), int(end.Col)-1)])
	}
	var pad strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	underline := "^" + strings.Repeat("~", max(0, n-1))
	fmt.Fprintf(b, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), pad.String(), p.caret.Sprint(underline))
}
