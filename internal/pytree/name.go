package pytree

import sitter "github.com/smacker/go-tree-sitter"

// FullName resolves the dotted invocation path of a call expression.
//
// The callee is unwrapped recursively: a bare identifier contributes one
// segment, an attribute access appends its attribute name to the resolved
// receiver, and a call in receiver position is resolved through its own
// callee so the invocation parentheses drop out (a().b() resolves to a.b).
// Any other receiver shape (subscript, literal, operator, ...) makes the
// whole path unresolvable and FullName reports ok=false. A non-call node is
// unresolvable, not an error.
func FullName(n *sitter.Node, src []byte) ([]string, bool) {
	if n == nil || n.Type() != "call" {
		return nil, false
	}
	return resolveCallee(n.ChildByFieldName("function"), src)
}

func resolveCallee(n *sitter.Node, src []byte) ([]string, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Type() {
	case "identifier":
		return []string{string(src[n.StartByte():n.EndByte()])}, true
	case "attribute":
		base, ok := resolveCallee(n.ChildByFieldName("object"), src)
		if !ok {
			return nil, false
		}
		attr := n.ChildByFieldName("attribute")
		if attr == nil {
			return nil, false
		}
		return append(base, string(src[attr.StartByte():attr.EndByte()])), true
	case "call":
		return resolveCallee(n.ChildByFieldName("function"), src)
	case "parenthesized_expression":
		if n.NamedChildCount() != 1 {
			return nil, false
		}
		return resolveCallee(n.NamedChild(0), src)
	default:
		return nil, false
	}
}

// HasSuffix reports whether the resolved path ends with the given segments.
func HasSuffix(path, suffix []string) bool {
	if len(suffix) > len(path) {
		return false
	}
	off := len(path) - len(suffix)
	for i, s := range suffix {
		if path[off+i] != s {
			return false
		}
	}
	return true
}
