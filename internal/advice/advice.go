// Package advice defines the findings emitted by the migration linters.
// Codes and message templates are part of the external contract; consumers
// match on Code, so new kinds are added, never renamed.
package advice

import "fmt"

// Code identifies the kind of a finding.
type Code string

const (
	// DirectFilesystemAccess flags a path argument carrying a deprecated URI scheme.
	DirectFilesystemAccess Code = "direct-filesystem-access"
	// ImplicitDBFSUsage flags a schemeless path that silently resolves to
	// deprecated default storage.
	ImplicitDBFSUsage Code = "implicit-dbfs-usage"
	// TableMigratedToUC flags a table reference whose migration target is known.
	TableMigratedToUC Code = "table-migrated-to-uc"
)

// Span locates a finding in source. Lines and columns are 0-based,
// end-exclusive, matching the parser's coordinate system. Columns count bytes.
type Span struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Advisory is a single immutable finding. Its span is always taken verbatim
// from the call node that triggered it.
type Advisory struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Span    Span   `json:"span"`
}

// DeprecatedPath builds the direct filesystem access advisory for a path.
func DeprecatedPath(path string, span Span) Advisory {
	return Advisory{
		Code:    DirectFilesystemAccess,
		Message: "The use of direct filesystem references is deprecated: " + path,
		Span:    span,
	}
}

// DefaultDBFSPath builds the implicit default storage advisory for a path.
func DefaultDBFSPath(path string, span Span) Advisory {
	return Advisory{
		Code:    ImplicitDBFSUsage,
		Message: "The use of default dbfs: references is deprecated: " + path,
		Span:    span,
	}
}

// MigratedTable builds the table migration advisory for an old/new name pair.
func MigratedTable(old, new string, span Span) Advisory {
	return Advisory{
		Code:    TableMigratedToUC,
		Message: fmt.Sprintf("Table %s is migrated to %s in Unity Catalog", old, new),
		Span:    span,
	}
}
