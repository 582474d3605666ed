// Package sqlscan extracts table references from literal SQL text.
//
// This is not a SQL parser. It performs a single linear scan for FROM and
// JOIN clause keywords and captures the dotted identifier that follows each
// one, with byte offsets back into the scanned text so callers can rewrite
// references in place. Subqueries, aliases and anything not introduced by
// FROM/JOIN are out of scope.
package sqlscan

import "strings"

// TableRef is one table reference found in SQL text. Offset and Length
// locate the reference's exact bytes within the scanned string.
type TableRef struct {
	Name   string
	Offset int
	Length int
}

var clauseKeywords = []string{"FROM", "JOIN"}

// TableRefs scans SQL text and returns every table reference introduced by a
// FROM or JOIN clause, in source order. Keyword matching is case-insensitive
// and bounded by identifier characters, so "performed" never matches FROM.
func TableRefs(sql string) []TableRef {
	var refs []TableRef
	// ASCII-only fold: a full Unicode uppercase can change byte length and
	// drift the offsets the rewriter splices with.
	upper := upperASCII(sql)

	for _, kw := range clauseKeywords {
		idx := 0
		for {
			pos := strings.Index(upper[idx:], kw)
			if pos < 0 {
				break
			}
			abs := idx + pos
			idx = abs + len(kw)
			if !isWordBoundary(upper, abs, len(kw)) {
				continue
			}
			if ref, ok := captureRef(sql, abs+len(kw)); ok {
				refs = append(refs, ref)
			}
		}
	}

	sortByOffset(refs)
	return refs
}

// captureRef skips whitespace after a clause keyword and captures the
// maximal run of identifier characters and dots.
func captureRef(sql string, pos int) (TableRef, bool) {
	for pos < len(sql) && isSpace(sql[pos]) {
		pos++
	}
	end := pos
	for end < len(sql) && isIdentChar(sql[end]) {
		end++
	}
	if end == pos {
		return TableRef{}, false
	}
	return TableRef{Name: sql[pos:end], Offset: pos, Length: end - pos}, true
}

func isWordBoundary(upper string, pos, n int) bool {
	if pos > 0 && isIdentChar(upper[pos-1]) {
		return false
	}
	if end := pos + n; end < len(upper) && isIdentChar(upper[end]) {
		return false
	}
	return true
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '.' || c == '$'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func sortByOffset(refs []TableRef) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && refs[j].Offset < refs[j-1].Offset; j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}
