package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteFile renders the report to a file. Paths ending in .gz are
// gzip-compressed transparently, which matters for SCIP/SARIF exports of
// large monorepos shipped to CI artifact storage.
func (r *Report) WriteFile(path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if err := r.Render(zw, format); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("flush compressed report: %w", err)
		}
		return nil
	}

	return r.Render(f, format)
}
