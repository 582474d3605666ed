package report

import (
	"fmt"
	"io"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// renderSCIP serializes the findings as a SCIP index: one document per file,
// one occurrence per finding with an attached diagnostic. Code hosts and
// editors that ingest SCIP can then surface migration findings inline.
func (r *Report) renderSCIP(w io.Writer) error {
	byPath := make(map[string][]*scippb.Occurrence)
	var order []string
	for _, f := range r.Findings {
		if _, seen := byPath[f.Path]; !seen {
			order = append(order, f.Path)
		}
		byPath[f.Path] = append(byPath[f.Path], &scippb.Occurrence{
			Range: []int32{
				int32(f.Span.StartLine), int32(f.Span.StartCol),
				int32(f.Span.EndLine), int32(f.Span.EndCol),
			},
			Diagnostics: []*scippb.Diagnostic{{
				Severity: scippb.Severity_Warning,
				Code:     string(f.Code),
				Message:  f.Message,
			}},
		})
	}

	index := &scippb.Index{
		Metadata: &scippb.Metadata{
			Version: scippb.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scippb.ToolInfo{
				Name:    r.Tool,
				Version: r.Version,
			},
			TextDocumentEncoding: scippb.TextEncoding_UTF8,
		},
	}
	for _, path := range order {
		index.Documents = append(index.Documents, &scippb.Document{
			Language:     "python",
			RelativePath: path,
			Occurrences:  byPath[path],
		})
	}

	data, err := proto.Marshal(index)
	if err != nil {
		return fmt.Errorf("marshal SCIP index: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write SCIP index: %w", err)
	}
	return nil
}
