package repos

import (
	"github.com/yungbote/giftwizard-backend/internal/data/repos/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type GiftResultRepo = gift.GiftResultRepo

func NewGiftResultRepo(db *gorm.DB, baseLog *logger.Logger) GiftResultRepo {
	return gift.NewGiftResultRepo(db, baseLog)
}
