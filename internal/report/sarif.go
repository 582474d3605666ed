package report

import (
	"encoding/json"
	"fmt"
	"io"

	"sparkmig/internal/advice"
)

// SARIF 2.1.0 schema types
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html

// SARIFReport is the top-level SARIF document.
type SARIFReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver describes the primary analysis component.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SARIFRule `json:"rules,omitempty"`
}

// SARIFRule describes a rule that detected an issue.
type SARIFRule struct {
	ID                   string                  `json:"id"`
	ShortDescription     *SARIFMessage           `json:"shortDescription,omitempty"`
	DefaultConfiguration *SARIFRuleConfiguration `json:"defaultConfiguration,omitempty"`
}

// SARIFRuleConfiguration describes the default configuration for a rule.
type SARIFRuleConfiguration struct {
	Level string `json:"level,omitempty"` // error, warning, note, none
}

// SARIFResult represents a single finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level,omitempty"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFMessage contains text in various formats.
type SARIFMessage struct {
	Text string `json:"text,omitempty"`
}

// SARIFLocation describes where a result was found.
type SARIFLocation struct {
	PhysicalLocation *SARIFPhysicalLocation `json:"physicalLocation,omitempty"`
}

// SARIFPhysicalLocation identifies a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation *SARIFArtifactLocation `json:"artifactLocation,omitempty"`
	Region           *SARIFRegion           `json:"region,omitempty"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI string `json:"uri,omitempty"`
}

// SARIFRegion identifies a region within a file, 1-based inclusive.
type SARIFRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

var sarifRules = []SARIFRule{
	{
		ID:                   string(advice.DirectFilesystemAccess),
		ShortDescription:     &SARIFMessage{Text: "Direct filesystem reference bypasses the managed catalog"},
		DefaultConfiguration: &SARIFRuleConfiguration{Level: "warning"},
	},
	{
		ID:                   string(advice.ImplicitDBFSUsage),
		ShortDescription:     &SARIFMessage{Text: "Schemeless path resolves to deprecated default storage"},
		DefaultConfiguration: &SARIFRuleConfiguration{Level: "warning"},
	},
	{
		ID:                   string(advice.TableMigratedToUC),
		ShortDescription:     &SARIFMessage{Text: "Table reference has a known Unity Catalog migration target"},
		DefaultConfiguration: &SARIFRuleConfiguration{Level: "warning"},
	},
}

func (r *Report) renderSARIF(w io.Writer) error {
	ruleIndex := make(map[string]int, len(sarifRules))
	for i, rule := range sarifRules {
		ruleIndex[rule.ID] = i
	}

	results := make([]SARIFResult, 0, len(r.Findings))
	for _, f := range r.Findings {
		results = append(results, SARIFResult{
			RuleID:    string(f.Code),
			RuleIndex: ruleIndex[string(f.Code)],
			Level:     "warning",
			Message:   SARIFMessage{Text: f.Message},
			Locations: []SARIFLocation{{
				PhysicalLocation: &SARIFPhysicalLocation{
					ArtifactLocation: &SARIFArtifactLocation{URI: f.Path},
					Region: &SARIFRegion{
						StartLine:   f.Span.StartLine + 1,
						StartColumn: f.Span.StartCol + 1,
						EndLine:     f.Span.EndLine + 1,
						EndColumn:   f.Span.EndCol + 1,
					},
				},
			}},
		})
	}

	doc := SARIFReport{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SARIFRun{{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:    r.Tool,
				Version: r.Version,
				Rules:   sarifRules,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}
