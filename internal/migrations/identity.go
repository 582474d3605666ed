// Package migrations holds the table migration index: which hive-style
// schema.table names moved where, and the resolution rules deciding whether
// a reference found in source needs rewriting.
package migrations

import "strings"

// TableIdentity is a dotted table name of one, two or three parts.
type TableIdentity struct {
	Catalog string
	Schema  string
	Table   string
}

// ParseIdentity splits a dotted name into a TableIdentity.
// Names with zero or more than three parts, or with empty segments,
// are rejected.
func ParseIdentity(name string) (TableIdentity, bool) {
	parts := strings.Split(name, ".")
	for _, p := range parts {
		if p == "" {
			return TableIdentity{}, false
		}
	}
	switch len(parts) {
	case 1:
		return TableIdentity{Table: parts[0]}, true
	case 2:
		return TableIdentity{Schema: parts[0], Table: parts[1]}, true
	case 3:
		return TableIdentity{Catalog: parts[0], Schema: parts[1], Table: parts[2]}, true
	default:
		return TableIdentity{}, false
	}
}

// Parts returns how many name parts the identity carries.
func (ti TableIdentity) Parts() int {
	switch {
	case ti.Catalog != "":
		return 3
	case ti.Schema != "":
		return 2
	default:
		return 1
	}
}

func (ti TableIdentity) String() string {
	switch ti.Parts() {
	case 3:
		return ti.Catalog + "." + ti.Schema + "." + ti.Table
	case 2:
		return ti.Schema + "." + ti.Table
	default:
		return ti.Table
	}
}

// SessionState carries the caller's default catalog and schema. It is kept
// on the resolution path for a future one-part qualification step; current
// resolution never consults it.
type SessionState struct {
	Catalog string
	Schema  string
}
