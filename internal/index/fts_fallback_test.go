//go:build !sqlite_fts5

package index

import "testing"

func TestSearch_LikeWildcardsAreLiteral(t *testing.T) {
	db := testDB(t)
	rows := []SnippetRow{
		{ID: 1, Tag: "snake", Code: "a_b := 1", Checksum: "1"},
		{ID: 2, Tag: "plain", Code: "axb := 1", Checksum: "2"},
		{ID: 3, Tag: "percent", Code: "fmt.Printf(\"100%\")", Checksum: "3"},
		{ID: 4, Tag: "hundred", Code: "x := 1000", Checksum: "4"},
		{ID: 5, Tag: "path", Code: `C:\tmp`, Checksum: "5"},
	}
	for _, r := range rows {
		if err := db.UpsertSnippet(r); err != nil {
			t.Fatalf("UpsertSnippet(%d): %v", r.ID, err)
		}
	}

	cases := []struct {
		query string
		want  []uint32
	}{
		{"a_b", []uint32{1}},
		{"100%", []uint32{3}},
		{`:\t`, []uint32{5}},
	}
	for _, tc := range cases {
		got, err := db.Search(tc.query, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", tc.query, err)
		}
		var ids []uint32
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		if len(ids) != len(tc.want) || ids[0] != tc.want[0] {
			t.Errorf("Search(%q) ids = %v, want %v", tc.query, ids, tc.want)
		}
	}
}
