package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeAI struct {
	mu         sync.Mutex
	content    string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeAI) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.content, f.err
}

func (f *fakeAI) Ping(ctx context.Context) (string, error) { return "Hello!", f.err }
func (f *fakeAI) Model() string                            { return "fake-model" }

type fakeImages struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeImages) Search(ctx context.Context, query string, count int) []domain.GiftImage {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	out := make([]domain.GiftImage, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, domain.GiftImage{URL: "https://img.test/" + query, Source: gift.SourcePexels})
	}
	return out
}

func (f *fakeImages) ShoppingLinks(query string) domain.ShoppingLinks {
	return gift.ShoppingLinksFor(query)
}

type fakeResults struct {
	mu    sync.Mutex
	saved []domain.GiftRequest
	err   error
}

func (f *fakeResults) Save(ctx context.Context, req domain.GiftRequest, ideas []domain.GiftIdea, fallback bool) (*domain.GiftResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, req)
	return &domain.GiftResult{ID: uuid.MustParse("6f1c2a4e-8f43-4a52-9a55-0d6f1c7b9e21")}, nil
}

func (f *fakeResults) Get(ctx context.Context, id string) (*domain.GiftResult, []domain.GiftIdea, error) {
	return nil, nil, errors.New("not implemented")
}

func (f *fakeResults) PurgeExpired(ctx context.Context) (int64, error) { return 0, nil }

type fakeGenerator struct {
	gen   *domain.Generation
	err   error
	calls int
	last  domain.GiftRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GiftRequest) (*domain.Generation, error) {
	f.calls++
	f.last = req
	return f.gen, f.err
}
