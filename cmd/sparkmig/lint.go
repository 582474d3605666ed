package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sparkmig/internal/advice"
	"sparkmig/internal/cache"
	"sparkmig/internal/report"
	"sparkmig/internal/version"
)

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Analyze Python sources and report deprecated usages",
	Long: `Lint parses each Python source, walks its call sites and reports direct
filesystem access, implicit dbfs usage and two-part table names already
migrated to Unity Catalog. Paths may be files or directories; directories
are walked recursively for *.py files. Without paths the current directory
is scanned.

Exits with status 1 when any advisory is produced.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	total, err := lintRun(cmd, args)
	if err != nil {
		return err
	}
	if total > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(1)
	}
	return nil
}

// lintRun does the whole run and releases the engine before returning, so
// the findings exit path above cannot leave the cache database open.
func lintRun(cmd *cobra.Command, args []string) (int, error) {
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return 0, err
	}

	eng, err := newEngine()
	if err != nil {
		return 0, err
	}
	defer eng.close()

	files, err := discoverFiles(args, eng.cfg.Scan.Exclude)
	if err != nil {
		return 0, err
	}
	eng.logger.Debug("Discovered sources", "count", len(files))

	rep := report.New(version.Version)
	total := 0
	for _, path := range files {
		advisories, err := eng.lintFile(cmd.Context(), path)
		if err != nil {
			return 0, fmt.Errorf("lint %s: %w", path, err)
		}
		rep.AddFile(path, advisories)
		total += len(advisories)
	}
	rep.Finish()

	if outputFlag != "" {
		if err := rep.WriteFile(outputFlag, format); err != nil {
			return 0, err
		}
		eng.logger.Info("Report written", "path", outputFlag, "findings", total)
	} else if err := rep.Render(cmd.OutOrStdout(), format); err != nil {
		return 0, err
	}
	return total, nil
}

// lintFile analyzes one source file, consulting the advisory cache when it
// is available. Cache entries are keyed on the content hash and the index
// fingerprint, so re-importing a mapping invalidates them.
func (e *engine) lintFile(ctx context.Context, path string) ([]advice.Advisory, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var contentHash string
	if e.cache != nil {
		contentHash = cache.ContentHash(src)
		if advisories, ok := e.cache.Get(path, contentHash, e.indexHash); ok {
			e.logger.Debug("Advisory cache hit", "path", path)
			return advisories, nil
		}
	}

	advisories, err := e.analyzer.Lint(ctx, src)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Put(path, contentHash, e.indexHash, advisories); err != nil {
			e.logger.Warn("Advisory cache write failed", "path", path, "error", err)
		}
	}
	return advisories, nil
}
