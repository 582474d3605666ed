// Package pytree wraps tree-sitter parsing of Python sources and exposes the
// small node vocabulary the migration linters need: call expressions, dotted
// invocation names, argument lists, string literals and span-accurate edits.
//
// The package never evaluates the analyzed code. Trees are parsed once per
// invocation and owned by their caller; nothing here is shared across calls.
package pytree

import (
	"context"
	"fmt"
	"iter"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"sparkmig/internal/advice"
)

// Tree is a parsed Python source file. It owns the underlying tree-sitter
// tree together with the source bytes node text is resolved against.
type Tree struct {
	src  []byte
	tree *sitter.Tree
}

// Parse parses Python source into a Tree.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse python source: %w", err)
	}
	return &Tree{src: src, tree: tree}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Root returns the module node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Source returns the source bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}

// Text returns the source text of a node.
func (t *Tree) Text(n *sitter.Node) string {
	return string(t.src[n.StartByte():n.EndByte()])
}

// Calls yields every call expression in document order, outermost first.
// The sequence is one-shot; stopping early has no side effects.
func (t *Tree) Calls() iter.Seq[*CallSite] {
	return func(yield func(*CallSite) bool) {
		var walk func(n *sitter.Node) bool
		walk = func(n *sitter.Node) bool {
			if n.Type() == "call" {
				if !yield(&CallSite{node: n, src: t.src}) {
					return false
				}
			}
			for i := 0; i < int(n.ChildCount()); i++ {
				if c := n.Child(i); c != nil {
					if !walk(c) {
						return false
					}
				}
			}
			return true
		}
		walk(t.Root())
	}
}

// Span converts a node's tree-sitter extent into an advisory span:
// 0-based lines and byte columns, end exclusive.
func Span(n *sitter.Node) advice.Span {
	return advice.Span{
		StartLine: int(n.StartPoint().Row),
		StartCol:  int(n.StartPoint().Column),
		EndLine:   int(n.EndPoint().Row),
		EndCol:    int(n.EndPoint().Column),
	}
}
