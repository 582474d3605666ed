package cache

import (
	"path/filepath"
	"testing"

	"sparkmig/internal/advice"
	"sparkmig/internal/logging"
	"sparkmig/internal/migrations"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"), logging.NewDiscard())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheRoundtrip(t *testing.T) {
	c := openTestCache(t)

	advisories := []advice.Advisory{
		advice.DeprecatedPath("s3a://bucket/path", advice.Span{StartLine: 2, EndLine: 2, EndCol: 30}),
	}
	content := ContentHash([]byte("dbutils.fs.ls('s3a://bucket/path')"))

	if _, ok := c.Get("jobs/etl.py", content, "ix1"); ok {
		t.Fatal("unexpected hit before Put")
	}
	if err := c.Put("jobs/etl.py", content, "ix1", advisories); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok := c.Get("jobs/etl.py", content, "ix1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0] != advisories[0] {
		t.Errorf("Get() = %v, want %v", got, advisories)
	}
}

func TestCacheEmptyResultIsHit(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("jobs/clean.py", "h1", "ix1", nil); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, ok := c.Get("jobs/clean.py", "h1", "ix1")
	if !ok {
		t.Fatal("cached empty result should be a hit")
	}
	if len(got) != 0 {
		t.Errorf("Get() = %v, want empty", got)
	}
}

func TestCacheMissOnChangedState(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("jobs/etl.py", "h1", "ix1", nil); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, ok := c.Get("jobs/etl.py", "h2", "ix1"); ok {
		t.Error("changed content hash should miss")
	}
	if _, ok := c.Get("jobs/etl.py", "h1", "ix2"); ok {
		t.Error("changed index hash should miss")
	}
}

func TestCachePutEvictsOldStates(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("jobs/etl.py", "h1", "ix1", nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("jobs/etl.py", "h2", "ix1", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("jobs/etl.py", "h1", "ix1"); ok {
		t.Error("older file state should be evicted")
	}
	if _, ok := c.Get("jobs/etl.py", "h2", "ix1"); !ok {
		t.Error("current file state should remain")
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("one"))
	b := ContentHash([]byte("two"))
	if a == b {
		t.Error("distinct contents must hash differently")
	}
	if a != ContentHash([]byte("one")) {
		t.Error("hash must be deterministic")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestIndexFingerprint(t *testing.T) {
	base := migrations.NewIndex([]migrations.Status{
		{SrcSchema: "old", SrcTable: "things", DstCatalog: "brand", DstSchema: "new", DstTable: "stuff"},
	})
	same := migrations.NewIndex([]migrations.Status{
		{SrcSchema: "old", SrcTable: "things", DstCatalog: "brand", DstSchema: "new", DstTable: "stuff"},
	})
	changed := migrations.NewIndex([]migrations.Status{
		{SrcSchema: "old", SrcTable: "things", DstCatalog: "other", DstSchema: "new", DstTable: "stuff"},
	})

	if IndexFingerprint(base) != IndexFingerprint(same) {
		t.Error("equal indexes must fingerprint equally")
	}
	if IndexFingerprint(base) == IndexFingerprint(changed) {
		t.Error("changed target must change the fingerprint")
	}
	if IndexFingerprint(base) == IndexFingerprint(migrations.NewIndex(nil)) {
		t.Error("empty index must fingerprint differently")
	}
}
