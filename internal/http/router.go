package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/giftwizard-backend/internal/http/handlers"
	httpMW "github.com/yungbote/giftwizard-backend/internal/http/middleware"
	"github.com/yungbote/giftwizard-backend/internal/http/response"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	// GenerateLimiter throttles /generate_gifts per client IP. Nil disables it.
	GenerateLimiter *httpMW.RateLimiter
	OtelService     string

	HealthHandler      *httpH.HealthHandler
	GiftHandler        *httpH.GiftHandler
	ImageHandler       *httpH.ImageHandler
	QuestionHandler    *httpH.QuestionHandler
	ResultHandler      *httpH.ResultHandler
	WizardHandler      *httpH.WizardHandler
	PlaceholderHandler *httpH.PlaceholderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if cfg.OtelService != "" {
		r.Use(otelgin.Middleware(cfg.OtelService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, http.StatusNotFound, apierr.CodeNotFound, errors.New("Endpoint not found"))
	})
	r.NoMethod(func(c *gin.Context) {
		response.RespondError(c, http.StatusMethodNotAllowed, apierr.CodeMethodNotAllowed, errors.New("Method not allowed"))
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/test_openai", cfg.HealthHandler.TestOpenAI)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Generation
	if cfg.GiftHandler != nil {
		handlers := []gin.HandlerFunc{}
		if cfg.GenerateLimiter != nil {
			handlers = append(handlers, cfg.GenerateLimiter.Middleware())
		}
		handlers = append(handlers, cfg.GiftHandler.GenerateGifts)
		r.POST("/generate_gifts", handlers...)
	}

	if cfg.PlaceholderHandler != nil {
		r.GET("/placeholder/:size/:color", cfg.PlaceholderHandler.Render)
		r.GET("/placeholder/:size/:color/:fg", cfg.PlaceholderHandler.Render)
	}

	api := r.Group("/api")
	{
		if cfg.QuestionHandler != nil {
			api.GET("/questions", cfg.QuestionHandler.List)
		}
		if cfg.ImageHandler != nil {
			api.GET("/images", cfg.ImageHandler.Search)
		}

		// Stored results
		if cfg.ResultHandler != nil {
			api.GET("/results/:id", cfg.ResultHandler.Get)
			api.GET("/results/:id/export.xlsx", cfg.ResultHandler.Export)
		}

		// Wizard sessions
		if cfg.WizardHandler != nil {
			api.POST("/wizard/sessions", cfg.WizardHandler.Create)
			api.GET("/wizard/sessions/:id", cfg.WizardHandler.Get)
			api.DELETE("/wizard/sessions/:id", cfg.WizardHandler.Delete)
			api.POST("/wizard/sessions/:id/events", cfg.WizardHandler.Apply)
		}
	}

	return r
}
