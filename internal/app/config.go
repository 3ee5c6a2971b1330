package app

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/giftwizard-backend/internal/data/db"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/envutil"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

type Config struct {
	Host          string
	Port          int
	Environment   string
	ProductionURL string
	CORSOrigins   []string

	DB db.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL        time.Duration
	ResultTTL         time.Duration
	ResultPurgeCron   string
	FallbackEnabled   bool
	ImagesPerIdea     int
	QuestionsFile     string
	PlaceholderBase   string
	PlaceholderFont   string
	PexelsAPIKey      string
	ImageScrapeURL    string
	ImageScrapeSelect string

	RateLimitPerMinute int
	RateLimitBurst     int

	MetricsEnabled bool
	OtelService    string
}

// LoadDotEnv loads .env from the working directory when present. Variables
// already set in the environment win.
func LoadDotEnv(log *logger.Logger) {
	if err := godotenv.Load(); err == nil && log != nil {
		log.Info("Loaded .env file")
	}
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Host:          envutil.String("HOST", "0.0.0.0", log),
		Port:          envutil.Int("PORT", 5000, log),
		Environment:   envutil.String("APP_ENV", "development", log),
		ProductionURL: envutil.String("PRODUCTION_URL", "", log),
		CORSOrigins:   envutil.List("CORS_ORIGINS", nil, log),

		DB: db.Config{
			Driver:           envutil.String("DATABASE_DRIVER", "", log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "giftwizard", log),
			SQLitePath:       envutil.String("SQLITE_PATH", "giftwizard.db", log),
		},

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),

		SessionTTL:        envutil.Duration("SESSION_TTL_MINUTES", 120, time.Minute, log),
		ResultTTL:         envutil.Duration("RESULT_TTL_HOURS", 168, time.Hour, log),
		ResultPurgeCron:   envutil.String("RESULT_PURGE_CRON", "@hourly", log),
		FallbackEnabled:   envutil.Bool("SUBMISSION_FALLBACK_ENABLED", true, log),
		ImagesPerIdea:     envutil.Int("IMAGES_PER_IDEA", 1, log),
		QuestionsFile:     envutil.String("QUESTIONS_FILE", "", log),
		PlaceholderBase:   envutil.String("PLACEHOLDER_BASE_URL", "", log),
		PlaceholderFont:   envutil.String("PLACEHOLDER_FONT", "", log),
		PexelsAPIKey:      envutil.String("PEXELS_API_KEY", "", log),
		ImageScrapeURL:    envutil.String("IMAGE_SCRAPE_URL", "", log),
		ImageScrapeSelect: envutil.String("IMAGE_SCRAPE_SELECTOR", "img", log),

		RateLimitPerMinute: envutil.Int("RATE_LIMIT_PER_MINUTE", 10, log),
		RateLimitBurst:     envutil.Int("RATE_LIMIT_BURST", 5, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		OtelService:    envutil.String("OTEL_SERVICE_NAME", "giftwizard", log),
	}
	// The deployed front end is always allowed.
	if u := strings.TrimRight(strings.TrimSpace(cfg.ProductionURL), "/"); u != "" {
		cfg.CORSOrigins = append(cfg.CORSOrigins, u)
	}
	return cfg
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PlaceholderBaseURL is where generated image links point for placeholders:
// PLACEHOLDER_BASE_URL when set, else this server's own placeholder route on
// PRODUCTION_URL, else on the local listen address.
func (c Config) PlaceholderBaseURL() string {
	if base := strings.TrimRight(strings.TrimSpace(c.PlaceholderBase), "/"); base != "" {
		return base
	}
	if u := strings.TrimRight(strings.TrimSpace(c.ProductionURL), "/"); u != "" {
		return u + gift.PlaceholderRoute
	}
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port)) + gift.PlaceholderRoute
}
