package pyspark

import (
	"context"
	"iter"

	"sparkmig/internal/advice"
	"sparkmig/internal/migrations"
	"sparkmig/internal/pytree"
	"sparkmig/internal/sqlscan"
)

// Analyzer drives call sites through the matcher catalog and the migration
// index. One Analyzer serves both the read-only lint pass and the rewriting
// apply pass; it holds no per-invocation state, so concurrent invocations
// on independent sources are safe.
type Analyzer struct {
	catalog *Catalog
	index   *migrations.Index
	session migrations.SessionState
	schemes map[string]bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog replaces the builtin matcher catalog, typically one extended
// from RULES.toml declarations.
func WithCatalog(c *Catalog) Option {
	return func(a *Analyzer) { a.catalog = c }
}

// WithExtraSchemes registers additional deprecated URI schemes.
func WithExtraSchemes(schemes []string) Option {
	return func(a *Analyzer) {
		for _, s := range schemes {
			a.schemes[lowerASCII(s)] = true
		}
	}
}

// NewAnalyzer creates an analyzer over a migration index and session state.
func NewAnalyzer(index *migrations.Index, session migrations.SessionState, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog: NewCatalog(),
		index:   index,
		session: session,
		schemes: make(map[string]bool, len(deprecatedSchemes)),
	}
	for _, s := range deprecatedSchemes {
		a.schemes[s] = true
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Lint parses source and returns all advisories in document order.
func (a *Analyzer) Lint(ctx context.Context, src []byte) ([]advice.Advisory, error) {
	tree, err := pytree.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var advisories []advice.Advisory
	for adv := range a.LintTree(tree) {
		advisories = append(advisories, adv)
	}
	return advisories, nil
}

// LintTree yields advisories lazily, in document order, one advisory per
// finding. The sequence is one-shot; consumers may stop early with no
// cleanup obligation. The tree is only borrowed, never mutated.
func (a *Analyzer) LintTree(tree *pytree.Tree) iter.Seq[advice.Advisory] {
	return func(yield func(advice.Advisory) bool) {
		for cs := range tree.Calls() {
			m, ok := a.catalog.Match(cs)
			if !ok {
				continue
			}
			if !a.lintMatch(m, cs, yield) {
				return
			}
		}
	}
}

func (a *Analyzer) lintMatch(m *Matcher, cs *pytree.CallSite, yield func(advice.Advisory) bool) bool {
	switch m.Kind {
	case FilesystemPath:
		// Multi-path operations report only the first deprecated slot;
		// evaluation stops there by design.
		for _, slot := range m.Slots {
			value, _, ok := slotArg(cs, slot)
			if !ok {
				continue
			}
			scheme := pathScheme(value)
			if scheme != "" && a.schemes[scheme] {
				return yield(advice.DeprecatedPath(value, cs.Span()))
			}
			if scheme == "" && m.DBFSDefault {
				return yield(advice.DefaultDBFSPath(value, cs.Span()))
			}
		}

	case DirectTableName:
		value, _, ok := slotArg(cs, m.Slots[0])
		if !ok {
			return true
		}
		if dst, ok := a.index.Resolve(value, a.session); ok {
			return yield(advice.MigratedTable(value, dst, cs.Span()))
		}

	case EmbeddedSQLTableNames:
		value, _, ok := slotArg(cs, m.Slots[0])
		if !ok {
			return true
		}
		// Every resolved reference gets its own advisory, all sharing the
		// span of the enclosing call: a literal's inner text has no
		// position of its own in the host coordinate system.
		for _, ref := range sqlscan.TableRefs(value) {
			dst, ok := a.index.Resolve(ref.Name, a.session)
			if !ok {
				continue
			}
			if !yield(advice.MigratedTable(ref.Name, dst, cs.Span())) {
				return false
			}
		}
	}
	return true
}
