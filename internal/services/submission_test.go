package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

func TestBuildGiftRequestMapsFields(t *testing.T) {
	req := BuildGiftRequest(map[string]string{
		"nicknames":     "buddy",
		"relationships": "best friend",
		"previousGifts": "Books",
		"dislikes":      "spiders",
		"complaints":    "traffic",
		"quirks":        "always late",
		"budget":        "$50",
	})
	cases := map[string]string{
		gift.FieldCallThem:          "buddy",
		gift.FieldRelationship:      "best friend",
		gift.FieldPreviousGifts:     "Books",
		gift.FieldHate:              "spiders",
		gift.FieldComplaints:        "traffic",
		gift.FieldComplainAboutThem: "always late",
		gift.FieldBudget:            "$50",
		gift.FieldLimitations:       "",
	}
	if len(req) != len(cases) {
		t.Fatalf("field count: want=%d got=%d", len(cases), len(req))
	}
	for field, want := range cases {
		got, ok := req[field]
		if !ok {
			t.Fatalf("field %s missing", field)
		}
		if got != want {
			t.Fatalf("field %s: want=%q got=%q", field, want, got)
		}
	}
}

func TestRequiredFieldsFollowCatalog(t *testing.T) {
	got := RequiredFields(questionnaire.Default())
	want := []string{
		gift.FieldCallThem, gift.FieldRelationship, gift.FieldPreviousGifts,
		gift.FieldHate, gift.FieldComplaints, gift.FieldBudget,
	}
	if len(got) != len(want) {
		t.Fatalf("required fields: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("required field %d: want=%q got=%q", i, want[i], got[i])
		}
	}
}

func TestSubmitReturnsGeneratedIdeas(t *testing.T) {
	gen := &fakeGenerator{gen: &domain.Generation{
		GiftIdeas: []domain.GiftIdea{{Title: "Tea Set", Description: "Loose leaf"}},
		ResultID:  "r-1",
	}}
	a := NewSubmissionAdapter(testLogger(t), gen, true)

	out, err := a.Submit(context.Background(), questionnaire.SampleAnswers())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Fallback {
		t.Fatalf("Submit: expected fallback=false")
	}
	if len(out.Gifts) != 1 || out.Gifts[0].Title != "Tea Set" {
		t.Fatalf("Submit gifts: got %+v", out.Gifts)
	}
	if out.ResultID != "r-1" {
		t.Fatalf("result id: want=%q got=%q", "r-1", out.ResultID)
	}
	if gen.last.Get(gift.FieldCallThem) != "buddy" {
		t.Fatalf("request call_them: want=%q got=%q", "buddy", gen.last.Get(gift.FieldCallThem))
	}
}

func TestSubmitFallsBackOnFailure(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"network error", &fakeGenerator{err: errors.New("dial tcp: connection refused")}},
		{"empty response", &fakeGenerator{gen: &domain.Generation{}}},
		{"nil response", &fakeGenerator{}},
		{"untitled idea", &fakeGenerator{gen: &domain.Generation{GiftIdeas: []domain.GiftIdea{{Description: "x"}}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewSubmissionAdapter(testLogger(t), tc.gen, true)
			out, err := a.Submit(context.Background(), questionnaire.SampleAnswers())
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if !out.Fallback {
				t.Fatalf("expected fallback=true")
			}
			if len(out.Gifts) != 3 {
				t.Fatalf("fallback gifts: want=3 got=%d", len(out.Gifts))
			}
			if out.Gifts[0].Title != "personalized photo album" {
				t.Fatalf("first fallback: want=%q got=%q", "personalized photo album", out.Gifts[0].Title)
			}
		})
	}
}

func TestSubmitWithoutFallbackPropagatesError(t *testing.T) {
	boom := errors.New("upstream down")
	a := NewSubmissionAdapter(testLogger(t), &fakeGenerator{err: boom}, false)

	if _, err := a.Submit(context.Background(), questionnaire.SampleAnswers()); !errors.Is(err, boom) {
		t.Fatalf("Submit: want=%v got=%v", boom, err)
	}
	ev := a.Complete(context.Background(), questionnaire.SampleAnswers())
	if ev.Type != wizard.EventSubmitFailed {
		t.Fatalf("Complete: want=%s got=%s", wizard.EventSubmitFailed, ev.Type)
	}
}

func TestFallbackGiftsAreFreshCopies(t *testing.T) {
	a := FallbackGifts()
	a[0].Title = "changed"
	b := FallbackGifts()
	if b[0].Title != "personalized photo album" {
		t.Fatalf("fallback mutated: got %q", b[0].Title)
	}
}

// A failing backend still lands the wizard on results with the sample gifts.
func TestWizardSubmissionFallbackScenario(t *testing.T) {
	cat := questionnaire.Default()
	store := wizard.NewStore(cat, testLogger(t))
	a := NewSubmissionAdapter(testLogger(t), &fakeGenerator{err: errors.New("timeout")}, true)

	mustDispatch := func(e wizard.Event) wizard.State {
		t.Helper()
		s, err := store.Dispatch(e)
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", e.Type, err)
		}
		return s
	}

	mustDispatch(wizard.Start())
	answers := questionnaire.SampleAnswers()
	for i, q := range cat.Questions() {
		mustDispatch(wizard.TextInput(q.ID, answers[q.ID]))
		if i < cat.Len()-1 {
			mustDispatch(wizard.Next())
		}
	}
	s := mustDispatch(wizard.Submit())
	if s.Phase != wizard.PhaseLoading {
		t.Fatalf("submit: want=%s got=%s notice=%q", wizard.PhaseLoading, s.Phase, s.Notice)
	}

	s = mustDispatch(a.Complete(context.Background(), s.Answers))
	if s.Phase != wizard.PhaseResults {
		t.Fatalf("complete: want=%s got=%s", wizard.PhaseResults, s.Phase)
	}
	if !s.UsedFallback {
		t.Fatalf("expected UsedFallback")
	}
	if len(s.Gifts) != 3 {
		t.Fatalf("gifts: want=3 got=%d", len(s.Gifts))
	}
	v := store.View()
	if len(v.Cards) != 3 {
		t.Fatalf("cards: want=3 got=%d", len(v.Cards))
	}
}
