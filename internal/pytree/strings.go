package pytree

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// StringLiteral extracts the runtime value of a plain string constant.
//
// Only static literals qualify: f-strings, byte strings, concatenations and
// any expression that is not a string node report ok=false, which the
// matchers treat as "slot absent". Escape sequences are decoded to the value
// the interpreter would see, except in raw strings, where the backslash is
// part of the value.
func StringLiteral(n *sitter.Node, src []byte) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}

	raw := false
	var b strings.Builder
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string_start":
			prefix := strings.ToLower(string(src[child.StartByte():child.EndByte()]))
			if strings.ContainsAny(prefix, "fb") {
				return "", false
			}
			raw = strings.Contains(prefix, "r")
		case "string_content":
			b.Write(src[child.StartByte():child.EndByte()])
		case "escape_sequence":
			seq := src[child.StartByte():child.EndByte()]
			if raw {
				b.Write(seq)
			} else {
				b.WriteString(decodeEscape(seq))
			}
		case "interpolation":
			return "", false
		case "string_end":
			// done
		}
	}
	return b.String(), true
}

// decodeEscape decodes one escape sequence to its runtime value. Sequences
// the interpreter leaves alone (unknown escapes) keep their backslash.
func decodeEscape(seq []byte) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return string(seq)
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'a':
		return "\a"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '\\':
		return `\`
	case '\'':
		return "'"
	case '"':
		return `"`
	case '\n':
		return "" // line continuation
	case 'x', 'u', 'U':
		if v, err := strconv.ParseUint(string(seq[2:]), 16, 32); err == nil && v <= 0x10FFFF {
			return string(rune(v))
		}
	default:
		if seq[1] >= '0' && seq[1] <= '7' {
			if v, err := strconv.ParseUint(string(seq[1:]), 8, 32); err == nil && v <= 0x10FFFF {
				return string(rune(v))
			}
		}
	}
	return string(seq)
}

// Quote renders a value as a single-quoted Python string literal whose
// runtime value equals the input: quoting metachars and control characters
// are re-escaped. Rewritten literals always come out in this form regardless
// of how the original was quoted.
func Quote(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}
