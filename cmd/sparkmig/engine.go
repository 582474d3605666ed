package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"sparkmig/internal/cache"
	"sparkmig/internal/config"
	"sparkmig/internal/migrations"
	"sparkmig/internal/pyspark"
	"sparkmig/internal/rules"
)

// engine bundles everything a lint or fix run needs: configuration, the
// loaded migration index, the analyzer and the optional advisory cache.
type engine struct {
	cfg       *config.Config
	logger    *slog.Logger
	index     *migrations.Index
	analyzer  *pyspark.Analyzer
	cache     *cache.Cache
	indexHash string
}

func newEngine() (*engine, error) {
	cfg, err := config.Load(repoRootFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.Logging.Format, cfg.Logging.Level)

	index, err := loadIndex(cfg, logger)
	if err != nil {
		return nil, err
	}

	ruleFile, err := rules.Load(repoRootFlag)
	if err != nil {
		return nil, err
	}
	catalog := pyspark.NewCatalog()
	opts := []pyspark.Option{pyspark.WithCatalog(catalog)}
	if ruleFile != nil {
		ruleFile.ExtendCatalog(catalog)
		opts = append(opts, pyspark.WithExtraSchemes(ruleFile.Schemes))
		logger.Debug("Loaded rule declarations",
			"filesystem", len(ruleFile.Filesystem), "tables", len(ruleFile.Tables))
	}

	session := migrations.SessionState{
		Catalog: cfg.Session.DefaultCatalog,
		Schema:  cfg.Session.DefaultSchema,
	}

	e := &engine{
		cfg:       cfg,
		logger:    logger,
		index:     index,
		analyzer:  pyspark.NewAnalyzer(index, session, opts...),
		indexHash: cache.IndexFingerprint(index),
	}

	if cfg.Cache.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err == nil {
			if c, err := cache.Open(cfg.Cache.Path, logger); err == nil {
				e.cache = c
			} else {
				logger.Warn("Advisory cache unavailable", "error", err)
			}
		}
	}
	return e, nil
}

func (e *engine) close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// loadIndex builds the migration index: an explicit mapping file wins, then
// the index database, then an empty index (which yields no table findings).
func loadIndex(cfg *config.Config, logger *slog.Logger) (*migrations.Index, error) {
	mapping := mappingFlag
	if mapping == "" {
		mapping = cfg.Mapping
	}
	if mapping != "" {
		statuses, err := migrations.LoadMappingFile(mapping)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded migration mapping", "path", mapping, "entries", len(statuses))
		return migrations.NewIndex(statuses), nil
	}

	dbPath := indexDBFlag
	if dbPath == "" {
		dbPath = cfg.IndexPath
	}
	if _, err := os.Stat(dbPath); err != nil {
		logger.Debug("No migration index database, using empty index", "path", dbPath)
		return migrations.NewIndex(nil), nil
	}

	store, err := migrations.OpenStore(dbPath, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.LoadIndex()
}

// discoverFiles expands the command arguments into Python source paths.
// Arguments naming files are taken as-is; directories are walked with the
// configured exclusions applied to directory basenames.
func discoverFiles(args []string, exclude []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if slices.Contains(exclude, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".py") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
