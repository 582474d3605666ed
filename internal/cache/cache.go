// Package cache stores per-file lint results keyed by content hash and the
// migration index fingerprint, so repeat runs over an unchanged repo skip
// reparsing. Entries become unreachable as soon as the file or the index
// changes; stale rows are cleaned up opportunistically on writes.
package cache

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"sparkmig/internal/advice"
	"sparkmig/internal/migrations"
)

// Cache is a sqlite-backed advisory cache.
type Cache struct {
	conn   *sql.DB
	logger *slog.Logger
}

// Open opens or creates the cache database at path.
func Open(path string, logger *slog.Logger) (*Cache, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS advisory_cache (
			path            TEXT NOT NULL,
			content_hash    TEXT NOT NULL,
			index_hash      TEXT NOT NULL,
			advisories_json TEXT NOT NULL,
			PRIMARY KEY (path, content_hash, index_hash)
		)`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}
	return &Cache{conn: conn, logger: logger}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// ContentHash returns the blake2b-256 hash of file contents.
func ContentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IndexFingerprint hashes the migration index contents. Any entry change
// invalidates all cached results.
func IndexFingerprint(ix *migrations.Index) string {
	h, _ := blake2b.New256(nil)
	for _, s := range ix.Statuses() {
		h.Write([]byte(s.Src()))
		h.Write([]byte{0})
		h.Write([]byte(s.Dst()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached advisories for a file state, if present.
// The bool result distinguishes "cached empty result" from "not cached".
func (c *Cache) Get(path, contentHash, indexHash string) ([]advice.Advisory, bool) {
	var payload string
	err := c.conn.QueryRow(`
		SELECT advisories_json FROM advisory_cache
		WHERE path = ? AND content_hash = ? AND index_hash = ?`,
		path, contentHash, indexHash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Advisory cache lookup failed", "path", path, "error", err)
		return nil, false
	}

	var advisories []advice.Advisory
	if err := json.Unmarshal([]byte(payload), &advisories); err != nil {
		c.logger.Warn("Dropping corrupt advisory cache entry", "path", path, "error", err)
		return nil, false
	}
	return advisories, true
}

// Put stores advisories for a file state, evicting rows for older states of
// the same path.
func (c *Cache) Put(path, contentHash, indexHash string, advisories []advice.Advisory) error {
	payload, err := json.Marshal(advisories)
	if err != nil {
		return fmt.Errorf("encode advisories: %w", err)
	}

	if _, err := c.conn.Exec(`
		DELETE FROM advisory_cache
		WHERE path = ? AND (content_hash != ? OR index_hash != ?)`,
		path, contentHash, indexHash); err != nil {
		return fmt.Errorf("evict stale cache rows: %w", err)
	}
	if _, err := c.conn.Exec(`
		INSERT OR REPLACE INTO advisory_cache (path, content_hash, index_hash, advisories_json)
		VALUES (?, ?, ?, ?)`,
		path, contentHash, indexHash, string(payload)); err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}
