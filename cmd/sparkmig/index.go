package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sparkmig/internal/config"
	"sparkmig/internal/migrations"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the migration index database",
}

var indexImportCmd = &cobra.Command{
	Use:   "import <mapping.yaml>",
	Short: "Import a YAML migration mapping into the index database",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexImport,
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known table migrations",
	Args:  cobra.NoArgs,
	RunE:  runIndexList,
}

var indexRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded mapping imports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runIndexRuns,
}

func init() {
	indexCmd.AddCommand(indexImportCmd, indexListCmd, indexRunsCmd)
	rootCmd.AddCommand(indexCmd)
}

func openIndexStore() (*migrations.Store, *slog.Logger, error) {
	cfg, err := config.Load(repoRootFlag)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg.Logging.Format, cfg.Logging.Level)

	path := indexDBFlag
	if path == "" {
		path = cfg.IndexPath
	}
	store, err := migrations.OpenStore(path, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, logger, nil
}

func runIndexImport(cmd *cobra.Command, args []string) error {
	statuses, err := migrations.LoadMappingFile(args[0])
	if err != nil {
		return err
	}

	store, logger, err := openIndexStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runID := uuid.NewString()
	if err := store.Import(statuses, runID, args[0]); err != nil {
		return err
	}
	logger.Info("Imported migration mapping",
		"source", args[0], "entries", len(statuses), "run_id", runID)
	return nil
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	store, _, err := openIndexStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ix, err := store.LoadIndex()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTARGET")
	for _, s := range ix.Statuses() {
		fmt.Fprintf(w, "%s\t%s\n", s.Src(), s.Dst())
	}
	return w.Flush()
}

func runIndexRuns(cmd *cobra.Command, _ []string) error {
	store, _, err := openIndexStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSOURCE\tENTRIES\tIMPORTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.RunID, r.Source, r.EntryCount, r.ImportedAt)
	}
	return w.Flush()
}
