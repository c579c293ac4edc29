package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/starford/codevault/internal/apperr"
	"github.com/starford/codevault/internal/models"
)

type fixedConfirm struct {
	answer  bool
	prompts []string
}

func (f *fixedConfirm) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

func str(s string) *string { return &s }

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "codevault.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func seed(t *testing.T, s *Store, ids ...uint32) []models.Snippet {
	t.Helper()
	var out []models.Snippet
	for _, id := range ids {
		out = append(out, models.Snippet{
			ID:        id,
			Tag:       "tag-" + string(rune('a'+id%26)),
			Code:      "code\n",
			Language:  str("Go"),
			Timestamp: "2024-01-02 15:04:05.000000000 +00:00",
		})
	}
	if err := s.ReplaceAll(out); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	return out
}

func TestLoad_MissingStore(t *testing.T) {
	s := tempStore(t)
	_, err := s.Load()
	if !errors.Is(err, apperr.ErrStoreMissing) {
		t.Fatalf("err = %v, want store missing", err)
	}
}

func TestLoad_CorruptStore(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load()
	if !errors.Is(err, apperr.ErrStoreUnreadable) {
		t.Fatalf("err = %v, want store unreadable", err)
	}
	if s.NextID() != 1 {
		t.Error("NextID on an unreadable store should be 1")
	}
}

func TestLoad_NullIsUnreadable(t *testing.T) {
	s := tempStore(t)
	_ = os.WriteFile(s.Path(), []byte("null"), 0o644)
	if _, err := s.Load(); !errors.Is(err, apperr.ErrStoreUnreadable) {
		t.Fatalf("err = %v, want store unreadable", err)
	}
}

func TestAppendThenLoad(t *testing.T) {
	s := tempStore(t)
	before := seed(t, s, 1, 2, 5)

	added := models.Snippet{ID: 6, Tag: "new", Code: "x := <-ch && y", Timestamp: "now"}
	if err := s.Append(added); err != nil {
		t.Fatalf("Append: %v", err)
	}
	after, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := append(before, added)
	if !reflect.DeepEqual(after, want) {
		t.Errorf("after append:\n got %+v\nwant %+v", after, want)
	}
}

func TestAppend_CreatesMissingStore(t *testing.T) {
	s := tempStore(t)
	if err := s.Append(models.Snippet{ID: 1, Tag: "first"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := s.Load()
	if err != nil || len(got) != 1 {
		t.Fatalf("Load = %v, %v", got, err)
	}
}

func TestAppend_RefusesCorruptStore(t *testing.T) {
	s := tempStore(t)
	_ = os.WriteFile(s.Path(), []byte("[{"), 0o644)
	if err := s.Append(models.Snippet{ID: 1, Tag: "x"}); !errors.Is(err, apperr.ErrStoreUnreadable) {
		t.Fatalf("err = %v, want store unreadable", err)
	}
}

func TestPersistedFormat(t *testing.T) {
	s := tempStore(t)
	if err := s.ReplaceAll([]models.Snippet{{ID: 3, Tag: "html", Code: "<b>&</b>", Timestamp: "t"}}); err != nil {
		t.Fatal(err)
	}
	raw, err := s.Raw()
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{"[\n  {\n", `"id": 3`, `"description": null`, `"language": null`, `"code": "<b>&</b>"`} {
		if !strings.Contains(text, want) {
			t.Errorf("persisted form missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, `"id"`) > strings.Index(text, `"tag"`) {
		t.Error("id should be the first field of a record")
	}
}

func TestDeleteByIDs(t *testing.T) {
	s := tempStore(t)
	seed(t, s, 1, 2, 3, 4)
	c := &fixedConfirm{answer: true}

	n, err := s.DeleteByIDs([]uint32{2, 4}, c)
	if err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
	got, _ := s.Load()
	if !reflect.DeepEqual(models.IDs(got), []uint32{1, 3}) {
		t.Errorf("remaining = %v", models.IDs(got))
	}
	if len(c.prompts) != 1 || !strings.Contains(c.prompts[0], "snippets 2, 4") {
		t.Errorf("prompts = %q", c.prompts)
	}
}

func TestDeleteByIDs_AllOrNothing(t *testing.T) {
	s := tempStore(t)
	seed(t, s, 1, 2, 3)
	before, _ := s.Raw()
	c := &fixedConfirm{answer: true}

	_, err := s.DeleteByIDs([]uint32{3, 99}, c)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || !reflect.DeepEqual(ae.IDs, []uint32{99}) {
		t.Errorf("error should name only 99: %+v", ae)
	}
	after, _ := s.Raw()
	if !bytes.Equal(before, after) {
		t.Error("store changed despite missing ID")
	}
	if len(c.prompts) != 0 {
		t.Error("confirmation must not be requested when validation fails")
	}
}

func TestDeleteByIDs_ReportsAllMissing(t *testing.T) {
	s := tempStore(t)
	seed(t, s, 1)
	_, err := s.DeleteByIDs([]uint32{7, 1, 8}, nil)
	var ae *apperr.Error
	if !errors.As(err, &ae) || !reflect.DeepEqual(ae.IDs, []uint32{7, 8}) {
		t.Fatalf("err = %v, want missing [7 8]", err)
	}
}

func TestDeleteByIDs_Declined(t *testing.T) {
	s := tempStore(t)
	seed(t, s, 1, 2)
	before, _ := s.Raw()

	_, err := s.DeleteByIDs([]uint32{1}, &fixedConfirm{answer: false})
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("err = %v, want cancelled", err)
	}
	after, _ := s.Raw()
	if !bytes.Equal(before, after) {
		t.Error("store changed after declined confirmation")
	}
}

func TestDeleteByIDs_MissingStore(t *testing.T) {
	s := tempStore(t)
	if _, err := s.DeleteByIDs([]uint32{1}, nil); !errors.Is(err, apperr.ErrStoreMissing) {
		t.Fatalf("err = %v, want store missing", err)
	}
}

func TestNextID(t *testing.T) {
	cases := []struct {
		name string
		ids  []uint32
		want uint32
	}{
		{"empty", nil, 1},
		{"single", []uint32{1}, 2},
		{"gap is not refilled", []uint32{1, 9, 3}, 10},
		{"unordered", []uint32{5, 2}, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var coll []models.Snippet
			for _, id := range tc.ids {
				coll = append(coll, models.Snippet{ID: id})
			}
			got := NextID(coll)
			if got != tc.want {
				t.Errorf("NextID = %d, want %d", got, tc.want)
			}
			for _, id := range tc.ids {
				if got <= id {
					t.Errorf("NextID %d not greater than existing %d", got, id)
				}
			}
		})
	}
}

func TestStoreNextID_MissingStore(t *testing.T) {
	s := tempStore(t)
	if got := s.NextID(); got != 1 {
		t.Errorf("NextID = %d, want 1", got)
	}
	seed(t, s, 4, 2)
	if got := s.NextID(); got != 5 {
		t.Errorf("NextID = %d, want 5", got)
	}
}
