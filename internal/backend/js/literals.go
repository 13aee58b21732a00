package js

import (
	"fmt"
	"strings"
)

// number drops C# digit separators and type suffixes.
func number(raw string) string {
	s := strings.ReplaceAll(raw, "_", "")
	lower := strings.ToLower(s)
	suffixes := "uUlLfFdDmM"
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		suffixes = "uUlL"
	}
	return strings.TrimRight(s, suffixes)
}

// quote spells s as a double-quoted JavaScript string.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x2028 || r == 0x2029 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// verbatim returns the text of an @"..." literal.
func verbatim(raw string) string {
	s := strings.TrimPrefix(raw, "@")
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}

// rawString returns the text of a """...""" literal. Multi-line literals
// lose their first and last lines and the indentation of the closing
// delimiter.
func rawString(raw string) string {
	n := 0
	for n < len(raw) && raw[n] == '"' {
		n++
	}
	if len(raw) < 2*n {
		return ""
	}
	s := raw[n : len(raw)-n]
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	indent := lines[len(lines)-1]
	lines = lines[1 : len(lines)-1]
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, indent)
	}
	return strings.Join(lines, "\n")
}

// char spells a character literal as a one-character string.
func char(raw string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "'"), "'")
	switch inner {
	case `\'`:
		inner = "'"
	case `"`:
		inner = `\"`
	}
	return `"` + inner + `"`
}

var (
	braces   = strings.NewReplacer("{{", "{", "}}", "}")
	template = strings.NewReplacer("`", "\\`", "${", "\\${")
)

// templateText converts the literal text of an interpolated string to
// template literal text.
func templateText(text string, isVerbatim bool) string {
	if isVerbatim {
		text = strings.ReplaceAll(text, `""`, `"`)
		text = strings.ReplaceAll(text, `\`, `\\`)
	}
	return template.Replace(braces.Replace(text))
}
