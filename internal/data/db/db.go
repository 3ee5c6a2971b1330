package db

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type Config struct {
	// Driver is "postgres" or "sqlite". Empty picks postgres when a host is
	// configured, sqlite otherwise.
	Driver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	SQLitePath string
}

// Open connects to the configured database and migrates the schema.
func Open(logg *logger.Logger, cfg Config) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)
	switch resolveDriver(cfg) {
	case "postgres":
		var svc *PostgresService
		svc, err = NewPostgresService(logg, cfg)
		if svc != nil {
			conn = svc.DB()
		}
	default:
		var svc *SQLiteService
		svc, err = NewSQLiteService(logg, cfg.SQLitePath)
		if svc != nil {
			conn = svc.DB()
		}
	}
	if err != nil {
		return nil, err
	}
	if err := AutoMigrateAll(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func resolveDriver(cfg Config) string {
	d := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if d == "postgres" || d == "sqlite" {
		return d
	}
	if strings.TrimSpace(cfg.PostgresHost) != "" {
		return "postgres"
	}
	return "sqlite"
}

func gormLog() gormLogger.Interface {
	return gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
