package report

import (
	"encoding/json"
	"fmt"
	"io"
)

func (r *Report) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func (r *Report) renderHuman(w io.Writer) error {
	for _, f := range r.Findings {
		// Columns are printed 1-based for editors; spans are stored 0-based.
		if _, err := fmt.Fprintf(w, "%s:%d:%d: [%s] %s\n",
			f.Path, f.Span.StartLine+1, f.Span.StartCol+1, f.Code, f.Message); err != nil {
			return err
		}
	}
	if len(r.Findings) == 0 {
		_, err := fmt.Fprintf(w, "No deprecated references found in %d file(s)\n", r.Files)
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d finding(s) in %d file(s)\n", len(r.Findings), r.Files)
	return err
}
