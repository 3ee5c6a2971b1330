package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/giftwizard-backend/internal/data/repos"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type Repos struct {
	GiftResult repos.GiftResultRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		GiftResult: repos.NewGiftResultRepo(db, log),
	}
}
