package builder

import (
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
)

// interpolated lowers `$"..."` and `$@"..."`. Text parts keep their source
// spelling, escapes included. Raw interpolated strings are not supported.
func (b *builder) interpolated(n *sitter.Node) (model.Expr, error) {
	raw := b.text(n)
	i := 0
	for i < len(raw) && (raw[i] == '$' || raw[i] == '@') {
		i++
	}
	prefix := raw[:i]
	quotes := 0
	for i < len(raw) && raw[i] == '"' {
		i++
		quotes++
	}
	if quotes != 1 || strings.Count(prefix, "$") != 1 || !strings.HasSuffix(raw, `"`) || len(raw) < i+1 {
		return nil, b.unhandled(n)
	}
	s := &model.InterpolatedString{ExprBase: b.ebase(n), Verbatim: strings.Contains(prefix, "@")}
	src := b.tree.Source
	skip, err := safecast.Conv[uint32](i)
	if err != nil {
		return nil, err
	}
	cursor := n.StartByte() + skip
	end := n.EndByte() - 1
	for _, ch := range named(n) {
		if ch.Type() != "interpolation" {
			continue
		}
		if ch.StartByte() > cursor {
			s.Parts = append(s.Parts, model.InterpolationPart{Text: string(src[cursor:ch.StartByte()])})
		}
		part, err := b.hole(ch)
		if err != nil {
			return nil, err
		}
		s.Parts = append(s.Parts, part)
		cursor = ch.EndByte()
	}
	if end > cursor {
		s.Parts = append(s.Parts, model.InterpolationPart{Text: string(src[cursor:end])})
	}
	return s, nil
}

func (b *builder) hole(n *sitter.Node) (model.InterpolationPart, error) {
	var part model.InterpolationPart
	for _, ch := range named(n) {
		switch ch.Type() {
		case "interpolation_alignment_clause":
			inner := named(ch)
			if len(inner) != 1 {
				return part, b.unhandled(ch)
			}
			a, err := b.expr(inner[0])
			if err != nil {
				return part, err
			}
			part.Alignment = a
		case "interpolation_format_clause":
			// the format text runs up to the closing brace
			end := ch.EndByte()
			if last := n.Child(int(n.ChildCount()) - 1); last != nil && last.StartByte() > end {
				end = last.StartByte()
			}
			part.Format = strings.TrimPrefix(string(b.tree.Source[ch.StartByte():end]), ":")
		case "interpolation_brace":
		default:
			if part.Hole != nil {
				return part, b.unhandled(ch)
			}
			x, err := b.expr(ch)
			if err != nil {
				return part, err
			}
			part.Hole = x
		}
	}
	if part.Hole == nil {
		return part, b.missing(n, "an expression")
	}
	return part, nil
}
