// Package parse adapts the tree-sitter C# grammar to recast. It turns source
// text into a concrete syntax tree and reports syntax problems; lowering the
// tree into the model is internal/builder's job.
package parse

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"recast/internal/diag"
	"recast/internal/source"
)

// maxIssues bounds the syntax issues collected for one file.
const maxIssues = 50

// Tree is a parsed file. Close releases the underlying C tree.
type Tree struct {
	File   source.FileID
	Source []byte
	tree   *sitter.Tree
}

// Root returns the compilation_unit node.
func (t *Tree) Root() *sitter.Node {
	if t == nil || t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

// Close frees the tree. It is safe to call more than once.
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// HasErrors reports whether the tree contains ERROR or MISSING nodes.
func (t *Tree) HasErrors() bool {
	root := t.Root()
	return root != nil && root.HasError()
}

// Issue is one syntax problem found in the tree.
type Issue struct {
	Span    source.Span
	Missing bool
	Message string
}

// Parse parses file with a fresh parser, so concurrent calls on different
// files are safe. Trees with syntax errors are returned without error.
func Parse(ctx context.Context, file *source.File) (*Tree, error) {
	if file == nil {
		return nil, errors.New("parse: nil file")
	}
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", file.Path)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, errors.Newf("parse %s: empty tree", file.Path)
	}
	return &Tree{File: file.ID, Source: file.Content, tree: tree}, nil
}

// Issues collects ERROR and MISSING nodes in document order.
func (t *Tree) Issues() []Issue {
	root := t.Root()
	if root == nil || !root.HasError() {
		return nil
	}
	var out []Issue
	t.collect(root, &out, 0)
	return out
}

func (t *Tree) collect(n *sitter.Node, out *[]Issue, depth int) {
	if depth > 1000 || len(*out) >= maxIssues {
		return
	}
	switch {
	case n.IsMissing():
		*out = append(*out, Issue{
			Span:    t.Span(n),
			Missing: true,
			Message: fmt.Sprintf("missing %s", n.Type()),
		})
		return
	case n.IsError():
		*out = append(*out, Issue{
			Span:    t.Span(n),
			Message: fmt.Sprintf("unexpected %s", snippet(t.Text(n))),
		})
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil {
			t.collect(ch, out, depth+1)
		}
	}
}

// Report emits every issue as a diagnostic.
func (t *Tree) Report(r diag.Reporter) int {
	issues := t.Issues()
	for _, is := range issues {
		code := diag.ParseSyntaxError
		if is.Missing {
			code = diag.ParseMissingNode
		}
		diag.ReportError(r, code, is.Span, is.Message).Emit()
	}
	return len(issues)
}

// Span converts a node's byte range into a source span.
func (t *Tree) Span(n *sitter.Node) source.Span {
	start, end := n.StartByte(), n.EndByte()
	if limit := uint32(len(t.Source)); end > limit { // #nosec G115 -- file size checked by source.FileSet
		end = limit
	}
	if start > end {
		start = end
	}
	return source.Span{File: t.File, Start: start, End: end}
}

// Text returns the source text covered by n.
func (t *Tree) Text(n *sitter.Node) string {
	sp := t.Span(n)
	return string(t.Source[sp.Start:sp.End])
}

func snippet(s string) string {
	const limit = 40
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	if s == "" {
		return "token"
	}
	return fmt.Sprintf("%q", s)
}
