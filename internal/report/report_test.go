package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"sparkmig/internal/advice"
)

func sampleReport() *Report {
	r := New("0.9.0")
	r.AddFile("jobs/etl.py", []advice.Advisory{
		advice.MigratedTable("old.things", "brand.new.stuff", advice.Span{StartLine: 4, StartCol: 0, EndLine: 4, EndCol: 25}),
		advice.DeprecatedPath("s3a://bucket/in", advice.Span{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 30}),
	})
	r.AddFile("jobs/clean.py", nil)
	r.Finish()
	return r
}

func TestFinishOrdersFindings(t *testing.T) {
	r := sampleReport()
	if r.Files != 2 {
		t.Errorf("Files = %d, want 2", r.Files)
	}
	if len(r.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(r.Findings))
	}
	// Same path, so line order decides.
	if r.Findings[0].Span.StartLine != 1 || r.Findings[1].Span.StartLine != 4 {
		t.Errorf("findings out of order: %v", r.Findings)
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"human", "json", "sarif", "scip"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestRenderHuman(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Render(&buf, FormatHuman); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := buf.String()
	// 1-based display coordinates.
	if !strings.Contains(out, "jobs/etl.py:2:1: [direct-filesystem-access]") {
		t.Errorf("missing finding line in output:\n%s", out)
	}
	if !strings.Contains(out, "2 finding(s) in 2 file(s)") {
		t.Errorf("missing summary in output:\n%s", out)
	}
}

func TestRenderHumanEmpty(t *testing.T) {
	r := New("0.9.0")
	r.AddFile("jobs/clean.py", nil)
	r.Finish()

	var buf bytes.Buffer
	if err := r.Render(&buf, FormatHuman); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No deprecated references found") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Render(&buf, FormatJSON); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Tool != "sparkmig" || decoded.Version != "0.9.0" {
		t.Errorf("envelope = %s/%s, want sparkmig/0.9.0", decoded.Tool, decoded.Version)
	}
	if len(decoded.Findings) != 2 {
		t.Errorf("got %d findings, want 2", len(decoded.Findings))
	}
	if decoded.RunID == "" {
		t.Error("runId missing")
	}
}

func TestRenderSARIF(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Render(&buf, FormatSARIF); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var doc SARIFReport
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid SARIF JSON: %v", err)
	}
	if doc.Version != "2.1.0" {
		t.Errorf("version = %q, want 2.1.0", doc.Version)
	}
	if len(doc.Runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(doc.Runs))
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "sparkmig" {
		t.Errorf("driver = %q, want sparkmig", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 3 {
		t.Errorf("got %d rules, want 3", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(run.Results))
	}
	region := run.Results[0].Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 1 {
		t.Errorf("region = %+v, want 1-based 2:1", region)
	}
}

func TestRenderSCIP(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Render(&buf, FormatSCIP); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("SCIP output is empty")
	}
}

func TestWriteFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json.gz")
	if err := sampleReport().WriteFile(path, FormatJSON); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("output is not gzip: %v", err)
	}
	var decoded Report
	if err := json.NewDecoder(zr).Decode(&decoded); err != nil {
		t.Fatalf("decompressed output is not the report: %v", err)
	}
	if len(decoded.Findings) != 2 {
		t.Errorf("got %d findings, want 2", len(decoded.Findings))
	}
}
