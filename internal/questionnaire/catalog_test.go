package questionnaire

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	want := []string{"nicknames", "relationships", "previousGifts", "dislikes", "complaints", "quirks", "budget", "limitations"}
	got := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("ids: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("id[%d]: want=%q got=%q", i, want[i], got[i])
		}
	}

	for _, id := range []string{"quirks", "limitations"} {
		q, ok := c.Lookup(id)
		if !ok || q.Required {
			t.Fatalf("%s: expected optional question", id)
		}
	}
	if n := len(c.RequiredIDs()); n != 6 {
		t.Fatalf("required: want=6 got=%d", n)
	}

	q, _ := c.Lookup("previousGifts")
	for _, label := range []string{"Books", "Coffee"} {
		if _, ok := q.CanonicalLabel(label); !ok {
			t.Fatalf("previousGifts: missing option %q", label)
		}
	}
}

func TestCanonicalLabel(t *testing.T) {
	q := Question{ID: "x", Title: "x", Options: []Option{{Label: "Books"}, {Label: "Coffee"}}}
	got, ok := q.CanonicalLabel("  bOoKs ")
	if !ok || got != "Books" {
		t.Fatalf("CanonicalLabel: want=%q got=%q ok=%v", "Books", got, ok)
	}
	if _, ok := q.CanonicalLabel("tea"); ok {
		t.Fatalf("CanonicalLabel: unexpected match for tea")
	}
	if _, ok := q.CanonicalLabel(""); ok {
		t.Fatalf("CanonicalLabel: unexpected match for empty fragment")
	}
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	cases := map[string][]Question{
		"empty":        nil,
		"missing id":   {{Title: "t"}},
		"duplicate id": {{ID: "a", Title: "t"}, {ID: "a", Title: "u"}},
		"no title":     {{ID: "a"}},
		"dup option":   {{ID: "a", Title: "t", Options: []Option{{Label: "X"}, {Label: "x"}}}},
		"comma option": {{ID: "a", Title: "t", Options: []Option{{Label: "X, Y"}}}},
	}
	for name, qs := range cases {
		if _, err := New(qs); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.yaml")
	doc := "questions:\n  - id: a\n    title: first\n    required: true\n    options:\n      - {label: One}\n  - id: b\n    title: second\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 || c.IndexOf("b") != 1 || c.IndexOf("zzz") != -1 {
		t.Fatalf("Load: unexpected catalog %v", c.IDs())
	}
	if _, ok := c.At(2); ok {
		t.Fatalf("At(2): expected out of range")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("Load missing: expected error")
	}
	def, err := Load("")
	if err != nil || def.Len() != 8 {
		t.Fatalf("Load default: err=%v", err)
	}
}
