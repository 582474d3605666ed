package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fixWriteFlag bool

var fixCmd = &cobra.Command{
	Use:   "fix [path...]",
	Short: "Rewrite migrated table names to their Unity Catalog targets",
	Long: `Fix rewrites two-part table name literals with a known migration target to
the full three-part Unity Catalog name, both in direct call arguments and
inside embedded SQL strings. Filesystem advisories are reported by lint but
never rewritten; sources without applicable fixes are left byte-identical.

Without --write the changed files are listed and nothing is modified.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVarP(&fixWriteFlag, "write", "w", false,
		"Write fixes back to the source files")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	if eng.index.Len() == 0 {
		eng.logger.Warn("Migration index is empty, nothing to rewrite")
	}

	files, err := discoverFiles(args, eng.cfg.Scan.Exclude)
	if err != nil {
		return err
	}

	changed := 0
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fixed, err := eng.analyzer.Apply(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("fix %s: %w", path, err)
		}
		if bytes.Equal(src, fixed) {
			continue
		}
		changed++
		if !fixWriteFlag {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
			return err
		}
		eng.logger.Info("Rewrote source", "path", path)
	}

	if !fixWriteFlag && changed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) would change; re-run with --write to apply\n", changed)
	}
	if fixWriteFlag {
		eng.logger.Info("Fix complete", "files", len(files), "changed", changed)
	}
	return nil
}
