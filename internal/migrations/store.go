package migrations

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists the migration index in a SQLite database so lint runs do
// not re-read the mapping source every time.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// OpenStore opens or creates the index database at the given path.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Store{conn: conn, logger: logger, path: path}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Conn exposes the underlying connection for sibling stores sharing the
// same database file.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS migration_status (
		src_schema  TEXT NOT NULL,
		src_table   TEXT NOT NULL,
		dst_catalog TEXT NOT NULL,
		dst_schema  TEXT NOT NULL,
		dst_table   TEXT NOT NULL,
		run_id      TEXT NOT NULL,
		imported_at TEXT NOT NULL,
		PRIMARY KEY (src_schema, src_table)
	);

	CREATE TABLE IF NOT EXISTS import_runs (
		run_id      TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		entry_count INTEGER NOT NULL,
		imported_at TEXT NOT NULL
	);`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("initialize index schema: %w", err)
	}
	return nil
}

// Import upserts status entries under one import run. Existing entries for
// the same source name are replaced.
func (s *Store) Import(statuses []Status, runID, source string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, st := range statuses {
		_, err := tx.Exec(`
			INSERT INTO migration_status
				(src_schema, src_table, dst_catalog, dst_schema, dst_table, run_id, imported_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (src_schema, src_table) DO UPDATE SET
				dst_catalog = excluded.dst_catalog,
				dst_schema  = excluded.dst_schema,
				dst_table   = excluded.dst_table,
				run_id      = excluded.run_id,
				imported_at = excluded.imported_at`,
			st.SrcSchema, st.SrcTable, st.DstCatalog, st.DstSchema, st.DstTable, runID, now)
		if err != nil {
			return fmt.Errorf("import %s.%s: %w", st.SrcSchema, st.SrcTable, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO import_runs (run_id, source, entry_count, imported_at)
		VALUES (?, ?, ?, ?)`,
		runID, source, len(statuses), now); err != nil {
		return fmt.Errorf("record import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	s.logger.Info("Imported migration entries", "count", len(statuses), "runId", runID)
	return nil
}

// LoadIndex reads all entries into an in-memory index.
func (s *Store) LoadIndex() (*Index, error) {
	rows, err := s.conn.Query(`
		SELECT src_schema, src_table, dst_catalog, dst_schema, dst_table
		FROM migration_status`)
	if err != nil {
		return nil, fmt.Errorf("load migration index: %w", err)
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st.SrcSchema, &st.SrcTable, &st.DstCatalog, &st.DstSchema, &st.DstTable); err != nil {
			return nil, fmt.Errorf("scan migration entry: %w", err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read migration entries: %w", err)
	}
	return NewIndex(statuses), nil
}

// ImportRun describes one recorded import.
type ImportRun struct {
	RunID      string
	Source     string
	EntryCount int
	ImportedAt string
}

// Runs lists recorded import runs, newest first.
func (s *Store) Runs() ([]ImportRun, error) {
	rows, err := s.conn.Query(`
		SELECT run_id, source, entry_count, imported_at
		FROM import_runs ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.RunID, &r.Source, &r.EntryCount, &r.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
