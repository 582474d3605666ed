package pytree

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Editor accumulates span replacements against one source buffer and splices
// them into a new buffer. Untouched bytes pass through unchanged, so a run
// with no edits reproduces the input exactly.
//
// Edits must not overlap; overlapping edits indicate a matcher bug and the
// later one is dropped.
type Editor struct {
	src   []byte
	edits []edit
}

type edit struct {
	start, end uint32
	text       string
}

// NewEditor creates an editor over src. The buffer is not copied; callers
// hand over ownership for the duration of the edit session.
func NewEditor(src []byte) *Editor {
	return &Editor{src: src}
}

// Replace queues a raw replacement of the node's byte span.
func (e *Editor) Replace(n *sitter.Node, text string) {
	e.edits = append(e.edits, edit{start: n.StartByte(), end: n.EndByte(), text: text})
}

// ReplaceStringLiteral queues a replacement of an entire string literal node,
// quotes included, with a freshly quoted value.
func (e *Editor) ReplaceStringLiteral(n *sitter.Node, value string) {
	e.Replace(n, Quote(value))
}

// Dirty reports whether any edit has been queued.
func (e *Editor) Dirty() bool {
	return len(e.edits) > 0
}

// Result applies all queued edits and returns the rewritten source.
func (e *Editor) Result() []byte {
	if len(e.edits) == 0 {
		return e.src
	}

	edits := make([]edit, len(e.edits))
	copy(edits, e.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	out := make([]byte, 0, len(e.src))
	var cursor uint32
	for _, ed := range edits {
		if ed.start < cursor {
			continue // overlap, drop
		}
		out = append(out, e.src[cursor:ed.start]...)
		out = append(out, ed.text...)
		cursor = ed.end
	}
	out = append(out, e.src[cursor:]...)
	return out
}
