package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sparkmig/internal/advice"
)

// CallSite is a read-only view over a call expression node. It does not own
// the underlying tree and stays valid only as long as the tree does.
type CallSite struct {
	node *sitter.Node
	src  []byte
}

// NewCallSite wraps a call node. Returns nil if n is not a call expression.
func NewCallSite(n *sitter.Node, src []byte) *CallSite {
	if n == nil || n.Type() != "call" {
		return nil
	}
	return &CallSite{node: n, src: src}
}

// Node returns the underlying call node.
func (c *CallSite) Node() *sitter.Node {
	return c.node
}

// Span returns the call's source extent.
func (c *CallSite) Span() advice.Span {
	return Span(c.node)
}

// FullName resolves the call's dotted invocation path.
func (c *CallSite) FullName() ([]string, bool) {
	return FullName(c.node, c.src)
}

// Positional returns the i-th positional argument expression, or nil.
// Keyword arguments do not count as positions.
func (c *CallSite) Positional(i int) *sitter.Node {
	args := c.node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	pos := 0
	for j := 0; j < int(args.NamedChildCount()); j++ {
		child := args.NamedChild(j)
		switch child.Type() {
		case "comment", "keyword_argument":
			continue
		}
		if pos == i {
			return child
		}
		pos++
	}
	return nil
}

// Keyword returns the value expression of the named keyword argument, or nil.
func (c *CallSite) Keyword(name string) *sitter.Node {
	args := c.node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for j := 0; j < int(args.NamedChildCount()); j++ {
		child := args.NamedChild(j)
		if child.Type() != "keyword_argument" {
			continue
		}
		key := child.ChildByFieldName("name")
		if key == nil {
			continue
		}
		if string(c.src[key.StartByte():key.EndByte()]) == name {
			return child.ChildByFieldName("value")
		}
	}
	return nil
}

// Arg resolves an argument slot. The keyword form wins over the positional
// one when both are present; this precedence is deliberate and relied upon
// by the matcher catalog.
func (c *CallSite) Arg(pos int, keyword string) *sitter.Node {
	if keyword != "" {
		if n := c.Keyword(keyword); n != nil {
			return n
		}
	}
	if pos < 0 {
		return nil
	}
	return c.Positional(pos)
}

// LiteralString extracts the value of a plain string constant argument.
// Returns ok=false for nil nodes and anything non-literal.
func (c *CallSite) LiteralString(n *sitter.Node) (string, bool) {
	return StringLiteral(n, c.src)
}

// ArgCount returns the total number of arguments, positional and keyword.
func (c *CallSite) ArgCount() int {
	args := c.node.ChildByFieldName("arguments")
	if args == nil {
		return 0
	}
	n := 0
	for j := 0; j < int(args.NamedChildCount()); j++ {
		if args.NamedChild(j).Type() != "comment" {
			n++
		}
	}
	return n
}
