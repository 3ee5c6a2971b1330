package gift

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type GiftResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, result *types.GiftResult) (*types.GiftResult, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GiftResult, error)
	DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error)
}

type giftResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGiftResultRepo(db *gorm.DB, baseLog *logger.Logger) GiftResultRepo {
	repoLog := baseLog.With("repo", "GiftResultRepo")
	return &giftResultRepo{db: db, log: repoLog}
}

func (r *giftResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.GiftResult) (*types.GiftResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if result == nil {
		return nil, errors.New("nil gift result")
	}
	if err := transaction.WithContext(ctx).Create(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns nil without error when no row matches.
func (r *giftResultRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GiftResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.GiftResult
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&result).Error; err != nil {
		return nil, err
	}
	if result.ID == uuid.Nil {
		return nil, nil
	}
	return &result, nil
}

func (r *giftResultRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&types.GiftResult{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
