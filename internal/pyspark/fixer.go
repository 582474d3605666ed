package pyspark

import (
	"context"
	"strings"

	"sparkmig/internal/pytree"
	"sparkmig/internal/sqlscan"
)

// Apply re-runs the matching pipeline and rewrites every resolvable table
// reference, returning the new source text. Filesystem findings are
// informational only and never rewritten. When nothing resolves, the input
// comes back byte-for-byte unchanged.
//
// Rewritten string literals come out single-quoted regardless of their
// original quoting; untouched source is preserved exactly.
func (a *Analyzer) Apply(ctx context.Context, src []byte) ([]byte, error) {
	tree, err := pytree.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	editor := pytree.NewEditor(src)
	for cs := range tree.Calls() {
		m, ok := a.catalog.Match(cs)
		if !ok {
			continue
		}
		switch m.Kind {
		case DirectTableName:
			value, node, ok := slotArg(cs, m.Slots[0])
			if !ok {
				continue
			}
			if dst, ok := a.index.Resolve(value, a.session); ok {
				editor.ReplaceStringLiteral(node, dst)
			}

		case EmbeddedSQLTableNames:
			value, node, ok := slotArg(cs, m.Slots[0])
			if !ok {
				continue
			}
			if rewritten, changed := a.rewriteSQL(value); changed {
				editor.ReplaceStringLiteral(node, rewritten)
			}
		}
	}
	return editor.Result(), nil
}

// rewriteSQL replaces each resolvable FROM/JOIN reference inside SQL text,
// left to right. Splicing through a builder keeps later offsets valid as
// earlier replacements change the length.
func (a *Analyzer) rewriteSQL(sql string) (string, bool) {
	var b strings.Builder
	last := 0
	changed := false
	for _, ref := range sqlscan.TableRefs(sql) {
		dst, ok := a.index.Resolve(ref.Name, a.session)
		if !ok {
			continue
		}
		b.WriteString(sql[last:ref.Offset])
		b.WriteString(dst)
		last = ref.Offset + ref.Length
		changed = true
	}
	if !changed {
		return sql, false
	}
	b.WriteString(sql[last:])
	return b.String(), true
}
