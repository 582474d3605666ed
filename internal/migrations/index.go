package migrations

import "sort"

// Status records one migrated table: the old two-part hive name and the
// three-part target it moved to.
type Status struct {
	SrcSchema  string `json:"srcSchema" yaml:"srcSchema"`
	SrcTable   string `json:"srcTable" yaml:"srcTable"`
	DstCatalog string `json:"dstCatalog" yaml:"dstCatalog"`
	DstSchema  string `json:"dstSchema" yaml:"dstSchema"`
	DstTable   string `json:"dstTable" yaml:"dstTable"`
}

// Dst returns the fully qualified migration target.
func (s Status) Dst() string {
	return s.DstCatalog + "." + s.DstSchema + "." + s.DstTable
}

// Src returns the two-part source name.
func (s Status) Src() string {
	return s.SrcSchema + "." + s.SrcTable
}

// Index is the in-memory migration lookup index. It is immutable after
// construction and safe for concurrent readers.
type Index struct {
	byKey map[string]Status
}

// NewIndex builds an index from status entries. Later duplicates win.
func NewIndex(statuses []Status) *Index {
	byKey := make(map[string]Status, len(statuses))
	for _, s := range statuses {
		byKey[s.SrcSchema+"\x00"+s.SrcTable] = s
	}
	return &Index{byKey: byKey}
}

// Lookup finds the migration entry for a schema.table pair.
func (ix *Index) Lookup(schema, table string) (Status, bool) {
	s, ok := ix.byKey[schema+"\x00"+table]
	return s, ok
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// Statuses returns all entries ordered by source name.
func (ix *Index) Statuses() []Status {
	statuses := make([]Status, 0, len(ix.byKey))
	for _, s := range ix.byKey {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Src() < statuses[j].Src() })
	return statuses
}

// Resolve decides whether a dotted table reference needs migration and
// returns the fully qualified target name when it does.
//
// One-part names are never resolved: without a trustworthy default schema
// there is no safe lookup key (session is accepted for a future
// qualification step). Three-part names already have target shape and are
// left alone, which makes rewriting idempotent. Two-part names are looked
// up; a miss means the reference is out of migration scope, not an error.
func (ix *Index) Resolve(name string, session SessionState) (string, bool) {
	_ = session

	identity, ok := ParseIdentity(name)
	if !ok || identity.Parts() != 2 {
		return "", false
	}
	status, ok := ix.Lookup(identity.Schema, identity.Table)
	if !ok {
		return "", false
	}
	return status.Dst(), true
}
