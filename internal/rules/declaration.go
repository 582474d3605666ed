// Package rules loads per-repo matcher catalog extensions from RULES.toml.
// Teams use it to teach sparkmig about in-house wrappers over the Spark API
// without patching the builtin matcher table.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"sparkmig/internal/pyspark"
)

// DeclarationFile is the default filename for rule declarations.
const DeclarationFile = "RULES.toml"

// RulesFile is the root structure of RULES.toml.
type RulesFile struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Schemes lists extra deprecated URI schemes
	Schemes []string `toml:"schemes,omitempty"`

	// Filesystem declares extra filesystem-path matchers
	Filesystem []FilesystemRule `toml:"filesystem"`

	// Tables declares extra direct-table-name matchers
	Tables []TableRule `toml:"table"`
}

// FilesystemRule declares one filesystem-path matcher.
type FilesystemRule struct {
	// Name is the method name to match
	Name string `toml:"name"`

	// Prefix is a dotted receiver chain required before the name (optional)
	Prefix string `toml:"prefix,omitempty"`

	// PathArgs are the positional indexes of path arguments
	PathArgs []int `toml:"path_args"`

	// DBFSDefault marks schemeless paths as implicit default storage
	DBFSDefault bool `toml:"dbfs_default,omitempty"`

	// MinArgs/MaxArgs bound the argument count (defaults: len(PathArgs), 1000)
	MinArgs int `toml:"min_args,omitempty"`
	MaxArgs int `toml:"max_args,omitempty"`
}

// TableRule declares one direct-table-name matcher.
type TableRule struct {
	// Name is the method name to match
	Name string `toml:"name"`

	// TableArg is the positional index of the table name argument
	TableArg int `toml:"table_arg"`

	// Keyword is the keyword form of the same argument (optional)
	Keyword string `toml:"keyword,omitempty"`

	// MinArgs/MaxArgs bound the argument count (defaults: TableArg+1, 1000)
	MinArgs int `toml:"min_args,omitempty"`
	MaxArgs int `toml:"max_args,omitempty"`
}

// Parse parses RULES.toml content.
func Parse(data []byte) (*RulesFile, error) {
	var rf RulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if rf.Version < 1 {
		rf.Version = 1
	}
	for i, fs := range rf.Filesystem {
		if fs.Name == "" {
			return nil, fmt.Errorf("filesystem rule %d: missing required 'name' field", i)
		}
		if len(fs.PathArgs) == 0 {
			return nil, fmt.Errorf("filesystem rule %q: missing required 'path_args' field", fs.Name)
		}
	}
	for i, tr := range rf.Tables {
		if tr.Name == "" {
			return nil, fmt.Errorf("table rule %d: missing required 'name' field", i)
		}
		if tr.TableArg < 0 {
			return nil, fmt.Errorf("table rule %q: 'table_arg' must not be negative", tr.Name)
		}
	}
	return &rf, nil
}

// Load reads RULES.toml from repoRoot if it exists. A missing file is not
// an error; it returns nil.
func Load(repoRoot string) (*RulesFile, error) {
	path := filepath.Join(repoRoot, DeclarationFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

// ExtendCatalog registers all declared rules on a matcher catalog.
func (rf *RulesFile) ExtendCatalog(c *pyspark.Catalog) {
	for _, fs := range rf.Filesystem {
		slots := make([]pyspark.Slot, 0, len(fs.PathArgs))
		for _, pos := range fs.PathArgs {
			slots = append(slots, pyspark.Slot{Pos: pos})
		}
		minArgs := fs.MinArgs
		if minArgs == 0 {
			minArgs = len(fs.PathArgs)
		}
		maxArgs := fs.MaxArgs
		if maxArgs == 0 {
			maxArgs = 1000
		}
		var prefix []string
		if fs.Prefix != "" {
			prefix = strings.Split(fs.Prefix, ".")
		}
		c.Add(pyspark.Matcher{
			Name:        fs.Name,
			Prefix:      prefix,
			Kind:        pyspark.FilesystemPath,
			Slots:       slots,
			MinArgs:     minArgs,
			MaxArgs:     maxArgs,
			DBFSDefault: fs.DBFSDefault,
		})
	}
	for _, tr := range rf.Tables {
		minArgs := tr.MinArgs
		if minArgs == 0 {
			minArgs = tr.TableArg + 1
		}
		maxArgs := tr.MaxArgs
		if maxArgs == 0 {
			maxArgs = 1000
		}
		c.Add(pyspark.Matcher{
			Name:    tr.Name,
			Kind:    pyspark.DirectTableName,
			Slots:   []pyspark.Slot{{Pos: tr.TableArg, Keyword: tr.Keyword}},
			MinArgs: minArgs,
			MaxArgs: maxArgs,
		})
	}
}
