package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

// SQLiteService backs single-node and development deployments.
type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(logg *logger.Logger, path string) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")
	if strings.TrimSpace(path) == "" {
		path = "giftwizard.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog()})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	serviceLog.Info("opened sqlite", "path", path)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }
