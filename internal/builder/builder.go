// Package builder lowers a tree-sitter C# syntax tree into a model.Script.
//
// Build is a pure function over one file. Any syntax shape it does not know
// becomes ErrUnhandledConstruct rather than being dropped.
package builder

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"

	"recast/internal/model"
	"recast/internal/parse"
	"recast/internal/source"
)

// ErrUnhandledConstruct is wrapped by every structural build failure.
var ErrUnhandledConstruct = errors.New("unhandled construct")

// Options tune the lowering.
type Options struct {
	// DropComments skips comment trivia entirely.
	DropComments bool
	// Library marks the script as declaration-only (see model.Script).
	Library bool
}

type builder struct {
	tree    *parse.Tree
	file    *source.File
	opts    Options
	pending []model.Comment
	groups  int
	// receivers of enclosing ?. chains
	receivers []model.Expr
}

// Build lowers tree into a Script. Syntax errors in the tree fail the build.
func Build(tree *parse.Tree, file *source.File, opts Options) (*model.Script, error) {
	if tree == nil || tree.Root() == nil || file == nil {
		return nil, errors.New("build: nil tree or file")
	}
	b := &builder{tree: tree, file: file, opts: opts}
	root := tree.Root()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return nil, b.unhandled(bad)
		}
	}
	if root.Type() != "compilation_unit" {
		return nil, b.unhandled(root)
	}
	return b.compilationUnit(root)
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch != nil && (ch.HasError() || ch.IsMissing()) {
			if bad := firstError(ch); bad != nil {
				return bad
			}
		}
	}
	return nil
}

// unhandled builds the structural failure for n.
func (b *builder) unhandled(n *sitter.Node) error {
	kind := n.Type()
	switch {
	case n.IsMissing():
		kind = "missing " + kind
	case n.IsError():
		kind = "syntax error"
	}
	pos := b.file.LineColAt(n.StartByte())
	return errors.Wrapf(ErrUnhandledConstruct, "%s %s at %s:%d:%d",
		kind, quote(b.text(n)), b.file.Path, pos.Line, pos.Col)
}

// missing reports a construct lacking a part the model needs.
func (b *builder) missing(n *sitter.Node, part string) error {
	pos := b.file.LineColAt(n.StartByte())
	return errors.Wrapf(ErrUnhandledConstruct, "%s without %s at %s:%d:%d",
		n.Type(), part, b.file.Path, pos.Line, pos.Col)
}

// wrapUnhandled marks err as a structural failure at the given position.
func wrapUnhandled(err error, path string, line, col uint32) error {
	return errors.Wrapf(errors.Mark(err, ErrUnhandledConstruct), "at %s:%d:%d", path, line, col)
}

func quote(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return fmt.Sprintf("%q", s)
}

func (b *builder) span(n *sitter.Node) source.Span { return b.tree.Span(n) }

func (b *builder) text(n *sitter.Node) string { return b.tree.Text(n) }

func (b *builder) base(n *sitter.Node) model.Base {
	return model.Base{Pos: b.span(n)}
}

// comment records a comment node as pending trivia.
func (b *builder) comment(n *sitter.Node) {
	if b.opts.DropComments {
		return
	}
	text := strings.TrimRight(b.text(n), " \t\r\n")
	b.pending = append(b.pending, model.Comment{
		Span:  b.span(n),
		Text:  text,
		Block: strings.HasPrefix(text, "/*"),
	})
}

// attach hands pending trivia to n.
func (b *builder) attach(n model.Node) {
	if len(b.pending) == 0 || n == nil {
		return
	}
	n.SetTrivia(append(n.Trivia(), b.trivia()...))
}

// trivia takes the pending comments.
func (b *builder) trivia() []model.Comment {
	out := b.pending
	b.pending = nil
	return out
}

// drop discards comments that did not precede a node in their list.
func (b *builder) drop() { b.pending = nil }
