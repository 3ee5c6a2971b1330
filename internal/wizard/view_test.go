package wizard

import (
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

func TestProjectQuestion(t *testing.T) {
	cat := questionnaire.Default()
	s := apply(t, cat, NewState(), Start(), ToggleChip("", "bro"))
	v := Project(cat, s)

	if v.Phase != PhaseQuestionnaire || v.Question == nil {
		t.Fatalf("view: expected a question")
	}
	q := v.Question
	if q.ID != "nicknames" || q.Number != 1 || q.Total != 8 || !q.Required {
		t.Fatalf("question view: got=%+v", q)
	}
	if v.Progress != 12 {
		t.Fatalf("progress: want=12 got=%d", v.Progress)
	}
	selected := 0
	for _, c := range q.Chips {
		if c.Selected {
			selected++
			if c.Label != "Bro" || !c.Focused {
				t.Fatalf("chip: want Bro focused got=%+v", c)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("selected chips: want=1 got=%d", selected)
	}
	if v.Nav.CanPrev || !v.Nav.CanNext || v.Nav.CanSubmit || v.Nav.ShowSubmit {
		t.Fatalf("nav: got=%+v", v.Nav)
	}
}

func TestProjectResults(t *testing.T) {
	cat := questionnaire.Default()
	s := NewState()
	s.Phase = PhaseResults
	s.Gifts = []domain.GiftIdea{
		{Title: "Album", AmazonLink: "https://shop/album"},
		{Title: "Mug", ImageSearchTerms: "coffee mug set"},
	}
	s = apply(t, cat, s, Reveal(0))

	v := Project(cat, s)
	if v.Question != nil || len(v.Cards) != 2 || v.Progress != 100 {
		t.Fatalf("results view: got=%+v", v)
	}
	if !v.Cards[0].Revealed || v.Cards[1].Revealed || v.AllRevealed {
		t.Fatalf("revealed flags: got=%+v", v.Cards)
	}
	if v.Cards[0].ShopURL != "https://shop/album" {
		t.Fatalf("shop url: got=%q", v.Cards[0].ShopURL)
	}
	if v.Cards[1].ImageURL != "https://source.unsplash.com/300x200/?coffee,mug" {
		t.Fatalf("image url: got=%q", v.Cards[1].ImageURL)
	}
}
