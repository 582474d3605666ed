// Package report collects findings across files and renders them for
// consumers: human text, JSON, SARIF 2.1.0 and SCIP index exports.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"sparkmig/internal/advice"
)

// Finding is one advisory attributed to a file.
type Finding struct {
	Path string `json:"path"`
	advice.Advisory
}

// Report is the envelope for one lint or fix run.
type Report struct {
	RunID      string    `json:"runId"`
	Tool       string    `json:"tool"`
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
	Files      int       `json:"files"`
	Findings   []Finding `json:"findings"`

	started time.Time
}

// New creates an empty report for a run of the given tool version.
func New(version string) *Report {
	now := time.Now().UTC()
	return &Report{
		RunID:     uuid.NewString(),
		Tool:      "sparkmig",
		Version:   version,
		StartedAt: now,
		started:   now,
	}
}

// AddFile records one scanned file and its advisories.
func (r *Report) AddFile(path string, advisories []advice.Advisory) {
	r.Files++
	for _, adv := range advisories {
		r.Findings = append(r.Findings, Finding{Path: path, Advisory: adv})
	}
}

// Finish stamps the duration and orders findings by file and position.
func (r *Report) Finish() {
	r.DurationMs = time.Since(r.started).Milliseconds()
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		return a.Span.StartCol < b.Span.StartCol
	})
}

// Format selects a report output format.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
	FormatSCIP  Format = "scip"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHuman, FormatJSON, FormatSARIF, FormatSCIP:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use: human, json, sarif, scip)", s)
	}
}

// Render writes the report to w in the given format.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.renderJSON(w)
	case FormatSARIF:
		return r.renderSARIF(w)
	case FormatSCIP:
		return r.renderSCIP(w)
	default:
		return r.renderHuman(w)
	}
}
