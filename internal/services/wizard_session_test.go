package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

func newSessionService(t *testing.T, gen GiftGenerator, fallback bool) WizardSessionService {
	t.Helper()
	log := testLogger(t)
	adapter := NewSubmissionAdapter(log, gen, fallback)
	return NewWizardSessionService(log, questionnaire.Default(), NewMemorySessionStore(), adapter, time.Hour)
}

func driveToSubmit(t *testing.T, svc WizardSessionService, id string) *WizardSession {
	t.Helper()
	ctx := context.Background()
	cat := questionnaire.Default()
	answers := questionnaire.SampleAnswers()

	apply := func(e wizard.Event) *WizardSession {
		t.Helper()
		ws, err := svc.Apply(ctx, id, e)
		if err != nil {
			t.Fatalf("Apply(%s): %v", e.Type, err)
		}
		return ws
	}
	apply(wizard.Start())
	for i, q := range cat.Questions() {
		apply(wizard.TextInput(q.ID, answers[q.ID]))
		if i < cat.Len()-1 {
			apply(wizard.Next())
		}
	}
	return apply(wizard.Submit())
}

func TestWizardSessionSubmitRunsGenerator(t *testing.T) {
	gen := &fakeGenerator{gen: &domain.Generation{
		GiftIdeas: []domain.GiftIdea{{Title: "Tea Set", Description: "Loose leaf"}},
		ResultID:  "r-9",
	}}
	svc := newSessionService(t, gen, true)
	ctx := context.Background()

	ws, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ws.State.Phase != wizard.PhaseLanding {
		t.Fatalf("new session: want=%s got=%s", wizard.PhaseLanding, ws.State.Phase)
	}

	ws = driveToSubmit(t, svc, ws.ID)
	if ws.State.Phase != wizard.PhaseResults {
		t.Fatalf("after submit: want=%s got=%s", wizard.PhaseResults, ws.State.Phase)
	}
	if ws.State.ResultID != "r-9" || ws.State.UsedFallback {
		t.Fatalf("outcome: result=%q fallback=%v", ws.State.ResultID, ws.State.UsedFallback)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls: want=1 got=%d", gen.calls)
	}

	again, err := svc.Get(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(again.View.Cards) != 1 {
		t.Fatalf("stored view cards: want=1 got=%d", len(again.View.Cards))
	}
}

func TestWizardSessionFailureWithoutFallback(t *testing.T) {
	svc := newSessionService(t, &fakeGenerator{err: errors.New("boom")}, false)
	ws, _ := svc.Create(context.Background())
	ws = driveToSubmit(t, svc, ws.ID)
	if ws.State.Phase != wizard.PhaseError {
		t.Fatalf("want=%s got=%s", wizard.PhaseError, ws.State.Phase)
	}

	ws, err := svc.Apply(context.Background(), ws.ID, wizard.Retry())
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if ws.State.Phase != wizard.PhaseQuestionnaire || ws.State.Index != 0 || len(ws.State.Answers) != 0 {
		t.Fatalf("retry: got phase=%s index=%d answers=%d", ws.State.Phase, ws.State.Index, len(ws.State.Answers))
	}
}

func TestWizardSessionRejectsBadEvents(t *testing.T) {
	svc := newSessionService(t, &fakeGenerator{}, true)
	ctx := context.Background()
	ws, _ := svc.Create(ctx)

	cases := []wizard.Event{
		wizard.SubmitSucceeded(nil, false, ""),
		wizard.SubmitFailed(errors.New("x")),
		{Type: "teleport"},
	}
	for _, e := range cases {
		_, err := svc.Apply(ctx, ws.ID, e)
		if got := apierr.As(err).Code; got != apierr.CodeInvalidEvent {
			t.Fatalf("Apply(%s): want=%s got=%s", e.Type, apierr.CodeInvalidEvent, got)
		}
	}
}

func TestWizardSessionNotFound(t *testing.T) {
	svc := newSessionService(t, &fakeGenerator{}, true)
	ctx := context.Background()
	if _, err := svc.Get(ctx, "missing"); apierr.As(err).Code != apierr.CodeSessionNotFound {
		t.Fatalf("Get: want SESSION_NOT_FOUND got %v", err)
	}
	if _, err := svc.Apply(ctx, "missing", wizard.Start()); apierr.As(err).Code != apierr.CodeSessionNotFound {
		t.Fatalf("Apply: want SESSION_NOT_FOUND got %v", err)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	m := NewMemorySessionStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	ctx := context.Background()

	if err := m.Put(ctx, "a", wizard.NewState(), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := m.Put(ctx, "b", wizard.NewState(), time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := m.Get(ctx, "a"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	m.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := m.Get(ctx, "a"); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("Get after expiry: want ErrNotFound got %v", err)
	}
	if n := m.Sweep(); n != 0 {
		t.Fatalf("sweep: want=0 got=%d", n)
	}
	m.now = func() time.Time { return base.Add(2 * time.Hour) }
	if n := m.Sweep(); n != 1 {
		t.Fatalf("sweep: want=1 got=%d", n)
	}
}

func TestWizardSessionUnknownIDsAllocateNoLocks(t *testing.T) {
	svc := newSessionService(t, &fakeGenerator{}, true).(*wizardSessionService)
	ctx := context.Background()

	stripes := map[*sync.Mutex]bool{}
	for i := range svc.locks {
		stripes[&svc.locks[i]] = true
	}
	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("missing-%d", i)
		if _, err := svc.Apply(ctx, id, wizard.Start()); apierr.As(err).Code != apierr.CodeSessionNotFound {
			t.Fatalf("Apply(%s): want SESSION_NOT_FOUND got %v", id, err)
		}
		if !stripes[svc.lock(id)] {
			t.Fatalf("lock for %s is outside the fixed stripe set", id)
		}
	}
	if svc.lock("abc") != svc.lock("abc") {
		t.Fatalf("same id must map to the same lock")
	}
}

type rejectedOutcomeAdapter struct{ SubmissionAdapter }

func (rejectedOutcomeAdapter) Complete(ctx context.Context, answers map[string]string) wizard.Event {
	return wizard.Event{Type: "teleport"}
}

func TestWizardSessionRejectedOutcomeLeavesSessionUnsubmitted(t *testing.T) {
	log := testLogger(t)
	cat := questionnaire.Default()
	svc := NewWizardSessionService(log, cat, NewMemorySessionStore(), rejectedOutcomeAdapter{}, time.Hour)
	ctx := context.Background()

	ws, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	answers := questionnaire.SampleAnswers()
	events := []wizard.Event{wizard.Start()}
	for i, q := range cat.Questions() {
		events = append(events, wizard.TextInput(q.ID, answers[q.ID]))
		if i < cat.Len()-1 {
			events = append(events, wizard.Next())
		}
	}
	for _, e := range events {
		if _, err := svc.Apply(ctx, ws.ID, e); err != nil {
			t.Fatalf("Apply(%s): %v", e.Type, err)
		}
	}

	if _, err := svc.Apply(ctx, ws.ID, wizard.Submit()); !errors.Is(err, wizard.ErrUnknownEvent) {
		t.Fatalf("submit: want=%v got=%v", wizard.ErrUnknownEvent, err)
	}
	got, err := svc.Get(ctx, ws.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State.Phase != wizard.PhaseQuestionnaire {
		t.Fatalf("phase: want=%s got=%s", wizard.PhaseQuestionnaire, got.State.Phase)
	}
}
