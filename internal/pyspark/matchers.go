// Package pyspark analyzes call sites of the Spark dataframe/SQL/dbutils API
// family and flags or rewrites usages deprecated under a catalog migration:
// two-part table names with a known migration target, and direct or implicit
// filesystem access.
package pyspark

import (
	sitter "github.com/smacker/go-tree-sitter"

	"sparkmig/internal/pytree"
)

// Kind classifies what a matcher's argument slots carry.
type Kind int

const (
	// FilesystemPath marks slots holding storage paths or URIs.
	FilesystemPath Kind = iota
	// DirectTableName marks a slot holding a dotted table name.
	DirectTableName
	// EmbeddedSQLTableNames marks a slot holding literal SQL text whose
	// FROM/JOIN references are inspected individually.
	EmbeddedSQLTableNames
)

// Slot addresses one argument to inspect: by position, by keyword name, or
// both. When both forms are present on a call the keyword wins; this
// precedence is deliberate and stable.
type Slot struct {
	Pos     int
	Keyword string
}

// Matcher is one declarative call-site rule. Matchers are immutable and
// defined once in the builtin table below; they carry no per-call state.
type Matcher struct {
	// Name is the final segment of the resolved invocation path.
	Name string

	// Prefix, when non-nil, must appear immediately before Name in the
	// resolved path. Used by the managed filesystem handle operations,
	// which only count when invoked through their conventional namespace.
	Prefix []string

	Kind  Kind
	Slots []Slot

	// MinArgs/MaxArgs bound the call's total argument count.
	MinArgs int
	MaxArgs int

	// DBFSDefault marks filesystem matchers whose schemeless paths silently
	// resolve to deprecated default storage.
	DBFSDefault bool

	// KeyValue, when set, requires the literal at position KeyPos to equal
	// it (e.g. option("path", ...) only counts when the key is "path").
	KeyPos   int
	KeyValue string
}

// matches checks name, prefix, argument-count and key constraints against a
// resolved call site. Slot extraction happens later; a matcher can match a
// call whose slots then turn out non-literal.
func (m *Matcher) matches(cs *pytree.CallSite, path []string) bool {
	if len(path) == 0 || path[len(path)-1] != m.Name {
		return false
	}
	if m.Prefix != nil && !pytree.HasSuffix(path[:len(path)-1], m.Prefix) {
		return false
	}
	if argc := cs.ArgCount(); argc < m.MinArgs || argc > m.MaxArgs {
		return false
	}
	if m.KeyValue != "" {
		key, ok := cs.LiteralString(cs.Positional(m.KeyPos))
		if !ok || key != m.KeyValue {
			return false
		}
	}
	return true
}

// Catalog is a registry of call-site matchers keyed by target name.
type Catalog struct {
	byName map[string][]Matcher
}

// NewCatalog returns a catalog holding the builtin matcher table.
func NewCatalog() *Catalog {
	c := &Catalog{byName: make(map[string][]Matcher, len(builtinMatchers))}
	for _, m := range builtinMatchers {
		c.Add(m)
	}
	return c
}

// Add registers an additional matcher. Later additions are consulted after
// the builtins for the same name.
func (c *Catalog) Add(m Matcher) {
	c.byName[m.Name] = append(c.byName[m.Name], m)
}

// Match finds the first matcher applying to a call site. Calls whose
// receiver chain is not statically resolvable never match.
func (c *Catalog) Match(cs *pytree.CallSite) (*Matcher, bool) {
	path, ok := cs.FullName()
	if !ok || len(path) == 0 {
		return nil, false
	}
	for i := range c.byName[path[len(path)-1]] {
		m := &c.byName[path[len(path)-1]][i]
		if m.matches(cs, path) {
			return m, true
		}
	}
	return nil, false
}

var dbutilsFS = []string{"dbutils", "fs"}

// builtinMatchers is the static call-site rule table. The managed filesystem
// handle operations require the dbutils.fs receiver; reader/writer format
// methods, RDD-style load/save methods and SQL execution match on name alone
// because they are invoked on many different receiver objects.
var builtinMatchers = []Matcher{
	// Managed filesystem handle operations.
	{Name: "ls", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 1},
	{Name: "cp", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}, {Pos: 1}}, MinArgs: 2, MaxArgs: 3},
	{Name: "rm", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "mv", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}, {Pos: 1}}, MinArgs: 2, MaxArgs: 3},
	{Name: "head", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "put", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 2, MaxArgs: 3},
	{Name: "mkdirs", Prefix: dbutilsFS, Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 1},

	// Reader/writer format methods.
	{Name: "text", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "paths"}}, MinArgs: 1, MaxArgs: 3},
	{Name: "csv", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "json", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "orc", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "parquet", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "load", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000, DBFSDefault: true},
	{Name: "save", Kind: FilesystemPath, Slots: []Slot{{Pos: 0, Keyword: "path"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "option", Kind: FilesystemPath, Slots: []Slot{{Pos: 1, Keyword: "value"}}, MinArgs: 2, MaxArgs: 2, KeyPos: 0, KeyValue: "path"},

	// RDD-style load/save methods.
	{Name: "addFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 3},
	{Name: "binaryFiles", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "binaryRecords", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "dump_profiles", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 1},
	{Name: "hadoopFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 8},
	{Name: "newAPIHadoopFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 8},
	{Name: "pickleFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 3},
	{Name: "saveAsHadoopFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 8},
	{Name: "saveAsNewAPIHadoopFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 8},
	{Name: "saveAsPickleFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "saveAsSequenceFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "saveAsTextFile", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 2},
	{Name: "load_from_path", Kind: FilesystemPath, Slots: []Slot{{Pos: 0}}, MinArgs: 1, MaxArgs: 1},

	// Catalog and reader/writer table operations.
	{Name: "cacheTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 2},
	{Name: "createTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "createExternalTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "getTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "isCached", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "listColumns", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 2},
	{Name: "tableExists", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 2},
	{Name: "recoverPartitions", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "refreshTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "uncacheTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "register", Kind: DirectTableName, Slots: []Slot{{Pos: 1, Keyword: "name"}}, MinArgs: 2, MaxArgs: 3},
	{Name: "table", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1},
	{Name: "insertInto", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "tableName"}}, MinArgs: 1, MaxArgs: 1000},
	{Name: "saveAsTable", Kind: DirectTableName, Slots: []Slot{{Pos: 0, Keyword: "name"}}, MinArgs: 1, MaxArgs: 1000},

	// SQL execution.
	{Name: "sql", Kind: EmbeddedSQLTableNames, Slots: []Slot{{Pos: 0, Keyword: "sqlQuery"}}, MinArgs: 1, MaxArgs: 1000},
}

// slotArg resolves one slot against a call site and extracts its literal
// string value. A missing or non-literal argument yields ok=false, which
// callers treat as "not flagged", never as an error.
func slotArg(cs *pytree.CallSite, slot Slot) (string, *sitter.Node, bool) {
	arg := cs.Arg(slot.Pos, slot.Keyword)
	if arg == nil {
		return "", nil, false
	}
	value, ok := cs.LiteralString(arg)
	if !ok {
		return "", nil, false
	}
	return value, arg, true
}
