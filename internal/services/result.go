package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/giftwizard-backend/internal/data/repos"
	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const DefaultResultTTL = 168 * time.Hour

var errResultNotFound = errors.New("Result not found or expired")

type ResultService interface {
	Save(ctx context.Context, req domain.GiftRequest, ideas []domain.GiftIdea, fallback bool) (*domain.GiftResult, error)
	// Get returns RESULT_NOT_FOUND for unknown, malformed or expired ids.
	Get(ctx context.Context, id string) (*domain.GiftResult, []domain.GiftIdea, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type resultService struct {
	db         *gorm.DB
	log        *logger.Logger
	resultRepo repos.GiftResultRepo
	ttl        time.Duration
	now        func() time.Time
}

func NewResultService(db *gorm.DB, log *logger.Logger, resultRepo repos.GiftResultRepo, ttl time.Duration) ResultService {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &resultService{
		db:         db,
		log:        log.With("service", "ResultService"),
		resultRepo: resultRepo,
		ttl:        ttl,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *resultService) Save(ctx context.Context, req domain.GiftRequest, ideas []domain.GiftIdea, fallback bool) (*domain.GiftResult, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if ideas == nil {
		ideas = []domain.GiftIdea{}
	}
	ideasJSON, err := json.Marshal(ideas)
	if err != nil {
		return nil, fmt.Errorf("marshal gift ideas: %w", err)
	}
	now := s.now()
	row := &domain.GiftResult{
		ID:        uuid.New(),
		Request:   datatypes.JSON(reqJSON),
		GiftIdeas: datatypes.JSON(ideasJSON),
		Fallback:  fallback,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	saved, err := s.resultRepo.Create(ctx, nil, row)
	if err != nil {
		return nil, fmt.Errorf("create gift result: %w", err)
	}
	return saved, nil
}

func (s *resultService) Get(ctx context.Context, id string) (*domain.GiftResult, []domain.GiftIdea, error) {
	notFound := apierr.New(http.StatusNotFound, apierr.CodeResultNotFound, errResultNotFound)

	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, notFound
	}
	row, err := s.resultRepo.GetByID(ctx, nil, rid)
	if err != nil {
		return nil, nil, fmt.Errorf("load gift result: %w", err)
	}
	if row == nil || row.Expired(s.now()) {
		return nil, nil, notFound
	}
	var ideas []domain.GiftIdea
	if len(row.GiftIdeas) > 0 {
		if err := json.Unmarshal(row.GiftIdeas, &ideas); err != nil {
			return nil, nil, fmt.Errorf("decode gift ideas: %w", err)
		}
	}
	return row, ideas, nil
}

func (s *resultService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.resultRepo.DeleteExpired(ctx, nil, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired results: %w", err)
	}
	observability.Current().AddPurged(n)
	if n > 0 {
		s.log.Info("purged expired gift results", "rows", n)
	}
	return n, nil
}
