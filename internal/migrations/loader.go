package migrations

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MappingFile is the YAML document format accepted by `sparkmig index import`.
//
//	entries:
//	  - src: old.things
//	    dst: brand.new.stuff
type MappingFile struct {
	Entries []MappingEntry `yaml:"entries"`
}

// MappingEntry maps one two-part source name to a three-part target.
type MappingEntry struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

// LoadMappingFile reads and validates a YAML mapping file.
func LoadMappingFile(path string) ([]Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	return ParseMapping(data)
}

// ParseMapping parses mapping YAML into status entries.
func ParseMapping(data []byte) ([]Status, error) {
	var doc MappingFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}

	statuses := make([]Status, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		src, ok := ParseIdentity(e.Src)
		if !ok || src.Parts() != 2 {
			return nil, fmt.Errorf("entry %d: src %q must be a schema.table name", i, e.Src)
		}
		dst, ok := ParseIdentity(e.Dst)
		if !ok || dst.Parts() != 3 {
			return nil, fmt.Errorf("entry %d: dst %q must be a catalog.schema.table name", i, e.Dst)
		}
		statuses = append(statuses, Status{
			SrcSchema:  src.Schema,
			SrcTable:   src.Table,
			DstCatalog: dst.Catalog,
			DstSchema:  dst.Schema,
			DstTable:   dst.Table,
		})
	}
	return statuses, nil
}
