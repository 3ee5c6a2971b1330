package wizard

import (
	"reflect"
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

func TestToggleTwiceRestoresSelection(t *testing.T) {
	cat := questionnaire.Default()
	for _, q := range cat.Questions() {
		starts := [][]string{{}, {q.Options[0].Label}}
		for _, start := range starts {
			for _, o := range q.Options {
				once, ok := toggleSelection(q, start, o.Label)
				if !ok {
					t.Fatalf("%s: toggle %q rejected", q.ID, o.Label)
				}
				twice, _ := toggleSelection(q, once, o.Label)
				if !reflect.DeepEqual(twice, start) && !(len(twice) == 0 && len(start) == 0) {
					t.Fatalf("%s/%s: want=%v got=%v", q.ID, o.Label, start, twice)
				}
			}
		}
	}
}

func TestToggleSelectionCaseInsensitive(t *testing.T) {
	q, _ := questionnaire.Default().Lookup("previousGifts")

	sel, _ := toggleSelection(q, nil, "books")
	if !reflect.DeepEqual(sel, []string{"Books"}) {
		t.Fatalf("toggle books: want=%v got=%v", []string{"Books"}, sel)
	}
	sel, _ = toggleSelection(q, sel, "BOOKS")
	if len(sel) != 0 {
		t.Fatalf("toggle BOOKS: want empty got=%v", sel)
	}

	if _, ok := toggleSelection(q, nil, "Spaceship"); ok {
		t.Fatalf("toggle unknown label: expected rejection")
	}
}

func TestSelectionFromText(t *testing.T) {
	q, _ := questionnaire.Default().Lookup("previousGifts")

	got := selectionFromText(q, "coffee, books, coffee")
	want := []string{"Coffee", "Books"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("coffee, books, coffee: want=%v got=%v", want, got)
	}

	got = selectionFromText(q, " , handmade card ,JEWELRY,")
	want = []string{"Jewelry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mixed: want=%v got=%v", want, got)
	}

	if got := selectionFromText(q, "   "); len(got) != 0 {
		t.Fatalf("blank: want empty got=%v", got)
	}
}

func TestSelectionFromTextIdempotent(t *testing.T) {
	q, _ := questionnaire.Default().Lookup("previousGifts")
	inputs := []string{"", "books", "Books, books, tea", "coffee, , Flowers, flowers, my mixtape"}
	for _, in := range inputs {
		first := selectionFromText(q, in)
		second := selectionFromText(q, in)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%q: want=%v got=%v", in, first, second)
		}
	}
}
