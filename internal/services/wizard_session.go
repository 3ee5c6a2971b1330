package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

const DefaultSessionTTL = 120 * time.Minute

// sessionLockStripes bounds the per-session locks: ids hash onto a fixed set
// of mutexes, so unknown or expired ids never allocate one.
const sessionLockStripes = 64

// WizardSessionStore persists wizard states between requests. Get returns an
// error wrapping apierr.ErrNotFound for unknown or expired ids.
type WizardSessionStore interface {
	Get(ctx context.Context, id string) (wizard.State, error)
	Put(ctx context.Context, id string, st wizard.State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type WizardSession struct {
	ID    string       `json:"session_id"`
	State wizard.State `json:"state"`
	View  wizard.View  `json:"view"`
}

type WizardSessionService interface {
	Create(ctx context.Context) (*WizardSession, error)
	Get(ctx context.Context, id string) (*WizardSession, error)
	// Apply dispatches one client event. When the event starts a submission,
	// the adapter runs before Apply returns and its outcome is applied too.
	Apply(ctx context.Context, id string, e wizard.Event) (*WizardSession, error)
	Delete(ctx context.Context, id string) error
}

type wizardSessionService struct {
	log     *logger.Logger
	cat     *questionnaire.Catalog
	store   WizardSessionStore
	adapter SubmissionAdapter
	ttl     time.Duration

	locks [sessionLockStripes]sync.Mutex
}

func NewWizardSessionService(log *logger.Logger, cat *questionnaire.Catalog, store WizardSessionStore, adapter SubmissionAdapter, ttl time.Duration) WizardSessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &wizardSessionService{
		log:     log.With("service", "WizardSessionService"),
		cat:     cat,
		store:   store,
		adapter: adapter,
		ttl:     ttl,
	}
}

func (s *wizardSessionService) Create(ctx context.Context) (*WizardSession, error) {
	id := uuid.New().String()
	st := wizard.NewState()
	if err := s.store.Put(ctx, id, st, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.log.Debug("wizard session created", "session_id", id)
	return s.session(id, st), nil
}

func (s *wizardSessionService) Get(ctx context.Context, id string) (*WizardSession, error) {
	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.session(id, st), nil
}

func (s *wizardSessionService) Apply(ctx context.Context, id string, e wizard.Event) (*WizardSession, error) {
	if e.Internal() {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidEvent,
			fmt.Errorf("event %q cannot be sent by clients", e.Type))
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ws := wizard.NewStoreFrom(s.cat, st, s.log)
	before := st.Phase
	next, err := ws.Dispatch(e)
	if err != nil {
		if errors.Is(err, wizard.ErrUnknownEvent) {
			return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidEvent, err)
		}
		return nil, err
	}
	observability.Current().IncWizardEvent(string(e.Type))

	if before != wizard.PhaseLoading && next.Phase == wizard.PhaseLoading {
		outcome := wizard.SubmitFailed(errors.New("submission unavailable"))
		if s.adapter != nil {
			outcome = s.adapter.Complete(ctx, next.Answers)
		}
		settled, err := ws.Dispatch(outcome)
		if err != nil {
			s.log.Error("wizard submission outcome rejected", "session_id", id, "event", string(outcome.Type), "error", err)
			return nil, fmt.Errorf("settle submission: %w", err)
		}
		next = settled
		s.log.Info("wizard submission settled", "session_id", id, "phase", string(next.Phase), "fallback", next.UsedFallback)
	}

	if err := s.store.Put(ctx, id, next, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s.session(id, next), nil
}

func (s *wizardSessionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *wizardSessionService) load(ctx context.Context, id string) (wizard.State, error) {
	if strings.TrimSpace(id) == "" {
		return wizard.State{}, sessionNotFound()
	}
	st, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apierr.ErrNotFound) {
			return wizard.State{}, sessionNotFound()
		}
		return wizard.State{}, fmt.Errorf("load session: %w", err)
	}
	return st, nil
}

func (s *wizardSessionService) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockStripes]
}

func (s *wizardSessionService) session(id string, st wizard.State) *WizardSession {
	return &WizardSession{ID: id, State: st, View: wizard.Project(s.cat, st)}
}

func sessionNotFound() error {
	return apierr.New(http.StatusNotFound, apierr.CodeSessionNotFound, errors.New("Session not found or expired"))
}

// MemorySessionStore keeps sessions in process memory. Expired entries are
// dropped on access.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state     wizard.State
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (wizard.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return wizard.State{}, fmt.Errorf("session %s: %w", id, apierr.ErrNotFound)
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return wizard.State{}, fmt.Errorf("session %s: %w", id, apierr.ErrNotFound)
	}
	return e.state.Clone(), nil
}

func (m *MemorySessionStore) Put(ctx context.Context, id string, st wizard.State, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}
	m.entries[id] = memoryEntry{state: st.Clone(), expiresAt: exp}
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Sweep drops every expired entry and reports how many were removed.
func (m *MemorySessionStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}
