package sqlscan

import "testing"

func TestTableRefs(t *testing.T) {
	testCases := []struct {
		name string
		sql  string
		want []string
	}{
		{"simple from", "SELECT * FROM old.things", []string{"old.things"}},
		{"lowercase keywords", "select * from old.things", []string{"old.things"}},
		{"mixed case", "Select * From Old.Things", []string{"Old.Things"}},
		{"join", "SELECT * FROM a.b JOIN c.d ON a.b.id = c.d.id", []string{"a.b", "c.d"}},
		{"multiple joins in order", "SELECT * FROM t1 JOIN t2 ON x JOIN t3 ON y", []string{"t1", "t2", "t3"}},
		{"three part name", "SELECT * FROM cat.schema.tbl", []string{"cat.schema.tbl"}},
		{"keyword prefix of identifier", "SELECT fromage FROM x", []string{"x"}},
		{"keyword inside identifier", "SELECT * FROM x_join_y", []string{"x_join_y"}},
		{"subquery yields nothing", "SELECT * FROM (SELECT 1)", nil},
		{"no tables", "SELECT 1", nil},
		{"newline separated", "SELECT *\nFROM\n  old.things", []string{"old.things"}},
		{"trailing semicolon excluded", "SELECT * FROM old.things;", []string{"old.things"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			refs := TableRefs(tc.sql)
			if len(refs) != len(tc.want) {
				t.Fatalf("TableRefs() = %v, want names %v", refs, tc.want)
			}
			for i, ref := range refs {
				if ref.Name != tc.want[i] {
					t.Errorf("ref %d = %q, want %q", i, ref.Name, tc.want[i])
				}
			}
		})
	}
}

func TestTableRefOffsets(t *testing.T) {
	sql := "SELECT * FROM old.things JOIN other.matters ON 1=1"
	refs := TableRefs(sql)
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	for i, ref := range refs {
		if got := sql[ref.Offset : ref.Offset+ref.Length]; got != ref.Name {
			t.Errorf("ref %d offsets select %q, want %q", i, got, ref.Name)
		}
	}
	if refs[0].Offset >= refs[1].Offset {
		t.Error("refs not sorted by offset")
	}
}

func TestTableRefOffsetsWithNonASCII(t *testing.T) {
	// U+017F uppercases to a shorter byte sequence; offsets must still
	// index into the original text.
	sql := "SELECT ſum, x FROM old.things"
	refs := TableRefs(sql)
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1: %v", len(refs), refs)
	}
	if refs[0].Name != "old.things" {
		t.Errorf("name = %q, want old.things", refs[0].Name)
	}
	if got := sql[refs[0].Offset : refs[0].Offset+refs[0].Length]; got != "old.things" {
		t.Errorf("offsets select %q, want old.things", got)
	}
}

func TestTableRefsSubqueryInJoin(t *testing.T) {
	// Only the outer reference is a plain identifier.
	refs := TableRefs("SELECT * FROM a.b JOIN (SELECT 1) s ON 1=1")
	if len(refs) != 1 || refs[0].Name != "a.b" {
		t.Errorf("TableRefs() = %v, want just a.b", refs)
	}
}
