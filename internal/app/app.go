package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/yungbote/giftwizard-backend/internal/data/db"
	"github.com/yungbote/giftwizard-backend/internal/http"
	"github.com/yungbote/giftwizard-backend/internal/http/handlers"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services

	scheduler    *cron.Cron
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	LoadDotEnv(log)

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if logMode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.OtelService,
		Environment: cfg.Environment,
		Version:     handlers.ServiceVersion,
	})
	var metrics *observability.Metrics
	if cfg.MetricsEnabled || observability.Enabled() {
		metrics = observability.Init(log)
	}

	theDB, err := db.Open(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, clientset, reposet)
	if err != nil {
		clientset.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, cfg)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	scheduler, err := wireJobs(log, cfg, serviceset, middleware)
	if err != nil {
		clientset.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Clients:      clientset,
		Repos:        reposet,
		Services:     serviceset,
		scheduler:    scheduler,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background maintenance.
func (a *App) Start() {
	if a == nil || a.scheduler == nil {
		return
	}
	a.scheduler.Start()
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting gift wizard server", "address", a.Cfg.Address(), "openai_configured", a.Services.Generation.Configured())
	srv := &http.Server{Engine: a.Router}
	return srv.Run(ctx, a.Cfg.Address())
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
