package builder

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func isComment(n *sitter.Node) bool { return n.Type() == "comment" }

func isPreproc(n *sitter.Node) bool {
	t := n.Type()
	return strings.HasPrefix(t, "preproc") || t == "preprocessor_call" ||
		t == "shebang_directive" || t == "nullable_directive"
}

func isExtra(n *sitter.Node) bool { return isComment(n) || isPreproc(n) }

// all returns every child, named or not, except extras.
func all(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		ch := n.Child(i)
		if ch == nil || isExtra(ch) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// named returns the named children except extras. The this and base
// keywords are anonymous in the grammar but stand for expressions, so they
// count as named.
func named(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		ch := n.Child(i)
		if ch == nil || isExtra(ch) {
			continue
		}
		if ch.IsNamed() || isSelfKeyword(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func isSelfKeyword(n *sitter.Node) bool {
	return !n.IsNamed() && (n.Type() == "this" || n.Type() == "base")
}

// namedExcept returns named children whose kind is not in skip.
func namedExcept(n *sitter.Node, skip ...string) []*sitter.Node {
	var out []*sitter.Node
	for _, ch := range named(n) {
		if !oneOf(ch.Type(), skip...) {
			out = append(out, ch)
		}
	}
	return out
}

// field returns the first present field among names.
func field(n *sitter.Node, names ...string) *sitter.Node {
	for _, name := range names {
		if ch := n.ChildByFieldName(name); ch != nil && !isExtra(ch) {
			return ch
		}
	}
	return nil
}

// childOf returns the first named child of one of the kinds.
func childOf(n *sitter.Node, kinds ...string) *sitter.Node {
	for _, ch := range named(n) {
		if oneOf(ch.Type(), kinds...) {
			return ch
		}
	}
	return nil
}

// childrenOf returns the named children of one of the kinds.
func childrenOf(n *sitter.Node, kinds ...string) []*sitter.Node {
	var out []*sitter.Node
	for _, ch := range named(n) {
		if oneOf(ch.Type(), kinds...) {
			out = append(out, ch)
		}
	}
	return out
}

// hasToken reports whether n has a direct anonymous child spelled tok.
func hasToken(n *sitter.Node, tok string) bool {
	for _, ch := range all(n) {
		if !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}
	return false
}

// countToken counts direct anonymous children spelled tok.
func countToken(n *sitter.Node, tok string) int {
	c := 0
	for _, ch := range all(n) {
		if !ch.IsNamed() && ch.Type() == tok {
			c++
		}
	}
	return c
}

// tokenAfter returns the first anonymous token following the token after.
func tokenAfter(n *sitter.Node, after string) *sitter.Node {
	seen := false
	for _, ch := range all(n) {
		if seen && !ch.IsNamed() {
			return ch
		}
		if !ch.IsNamed() && ch.Type() == after {
			seen = true
		}
	}
	return nil
}

// before reports whether a ends before b starts.
func before(a, b *sitter.Node) bool { return a.EndByte() <= b.StartByte() }

func oneOf(s string, set ...string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// declaration decorations that precede the shape of a member
var decorations = []string{"attribute_list", "modifier", "parameter_modifier"}

// typeKinds are the node kinds that denote a type.
var typeKinds = []string{
	"identifier", "generic_name", "qualified_name", "alias_qualified_name",
	"predefined_type", "implicit_type", "array_type", "nullable_type",
	"pointer_type", "tuple_type", "ref_type", "scoped_type", "function_pointer_type",
}

func isType(n *sitter.Node) bool { return oneOf(n.Type(), typeKinds...) }
