package gift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GiftResult is a stored, shareable set of suggestions.
type GiftResult struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Request   datatypes.JSON `gorm:"column:request" json:"request"`
	GiftIdeas datatypes.JSON `gorm:"column:gift_ideas" json:"gift_ideas"`
	Fallback  bool           `gorm:"not null;default:false;column:fallback" json:"fallback"`
	CreatedAt time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	ExpiresAt time.Time      `gorm:"not null;index;column:expires_at" json:"expires_at"`
}

func (GiftResult) TableName() string { return "gift_result" }

func (r *GiftResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (r *GiftResult) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
