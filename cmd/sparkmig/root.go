package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"sparkmig/internal/logging"
	"sparkmig/internal/version"
)

var (
	repoRootFlag  string
	formatFlag    string
	outputFlag    string
	mappingFlag   string
	indexDBFlag   string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sparkmig",
	Short: "sparkmig - catalog migration linter for PySpark sources",
	Long: `sparkmig statically analyzes Python sources using the Spark dataframe/SQL/dbutils
API family and flags or rewrites usages deprecated under a Unity Catalog style
migration: two-part table names with a known migration target, and direct or
implicit filesystem access. It never executes the analyzed code.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("sparkmig version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&repoRootFlag, "repo-root", "C", ".",
		"Repository root holding .sparkmig/ and RULES.toml")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Report format: human, json, sarif, scip")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "",
		"Write the report to this file instead of stdout (.gz compresses)")
	rootCmd.PersistentFlags().StringVar(&mappingFlag, "mapping", "",
		"YAML migration mapping file (bypasses the index database)")
	rootCmd.PersistentFlags().StringVar(&indexDBFlag, "index-db", "",
		"Migration index database path (default: <repo-root>/.sparkmig/index.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human, json")
}

// newLogger builds the CLI logger from flags with config fallbacks.
func newLogger(cfgFormat, cfgLevel string) *slog.Logger {
	format := cfgFormat
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfgLevel
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewCLI(logging.Format(format), logging.LevelFromString(level))
}
