package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/giftwizard-backend/internal/http"
	httpH "github.com/yungbote/giftwizard-backend/internal/http/handlers"
	httpMW "github.com/yungbote/giftwizard-backend/internal/http/middleware"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type Middleware struct {
	GenerateLimiter *httpMW.RateLimiter
}

type Handlers struct {
	Health      *httpH.HealthHandler
	Gift        *httpH.GiftHandler
	Image       *httpH.ImageHandler
	Question    *httpH.QuestionHandler
	Result      *httpH.ResultHandler
	Wizard      *httpH.WizardHandler
	Placeholder *httpH.PlaceholderHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(services.Generation),
		Gift:        httpH.NewGiftHandler(log, services.Generation),
		Image:       httpH.NewImageHandler(services.Images),
		Question:    httpH.NewQuestionHandler(services.Catalog),
		Result:      httpH.NewResultHandler(services.Results, services.Export),
		Wizard:      httpH.NewWizardHandler(services.Sessions),
		Placeholder: httpH.NewPlaceholderHandler(services.Placeholder),
	}
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		GenerateLimiter: httpMW.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	otelService := ""
	if observability.TracingEnabled() {
		otelService = cfg.OtelService
	}
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		CORSOrigins:        cfg.CORSOrigins,
		GenerateLimiter:    middleware.GenerateLimiter,
		OtelService:        otelService,
		HealthHandler:      handlers.Health,
		GiftHandler:        handlers.Gift,
		ImageHandler:       handlers.Image,
		QuestionHandler:    handlers.Question,
		ResultHandler:      handlers.Result,
		WizardHandler:      handlers.Wizard,
		PlaceholderHandler: handlers.Placeholder,
	})
}
