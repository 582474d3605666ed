package migrations

import (
	"path/filepath"
	"testing"

	"sparkmig/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "index.db"), logging.NewDiscard())
	if err != nil {
		t.Fatalf("OpenStore() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreImportAndLoad(t *testing.T) {
	store := openTestStore(t)

	statuses := []Status{
		{SrcSchema: "old", SrcTable: "things", DstCatalog: "brand", DstSchema: "new", DstTable: "stuff"},
		{SrcSchema: "other", SrcTable: "matters", DstCatalog: "some", DstSchema: "certain", DstTable: "issues"},
	}
	if err := store.Import(statuses, "run-1", "mapping.yaml"); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	ix, err := store.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ix.Len())
	}
	dst, ok := ix.Resolve("old.things", SessionState{})
	if !ok || dst != "brand.new.stuff" {
		t.Errorf("Resolve(old.things) = %q, %v; want brand.new.stuff, true", dst, ok)
	}
}

func TestStoreImportUpserts(t *testing.T) {
	store := openTestStore(t)

	first := []Status{{SrcSchema: "old", SrcTable: "things", DstCatalog: "brand", DstSchema: "new", DstTable: "stuff"}}
	if err := store.Import(first, "run-1", "first.yaml"); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	second := []Status{{SrcSchema: "old", SrcTable: "things", DstCatalog: "moved", DstSchema: "again", DstTable: "stuff"}}
	if err := store.Import(second, "run-2", "second.yaml"); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	ix, err := store.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after upsert", ix.Len())
	}
	dst, _ := ix.Resolve("old.things", SessionState{})
	if dst != "moved.again.stuff" {
		t.Errorf("Resolve() = %q, want moved.again.stuff", dst)
	}

	runs, err := store.Runs()
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for _, r := range runs {
		if r.EntryCount != 1 {
			t.Errorf("run %s entry count = %d, want 1", r.RunID, r.EntryCount)
		}
	}
}

func TestStoreEmptyIndex(t *testing.T) {
	store := openTestStore(t)

	ix, err := store.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
	if _, ok := ix.Resolve("old.things", SessionState{}); ok {
		t.Error("empty index should resolve nothing")
	}
}
