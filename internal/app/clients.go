package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/clients/imagesearch"
	"github.com/yungbote/giftwizard-backend/internal/clients/redis"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/platform/openai"
)

type Clients struct {
	// OpenAI is nil when OPENAI_API_KEY is missing; /health then reports
	// openai_configured=false and generation fails with a 500.
	OpenAI         openai.Client
	ImageProviders []imagesearch.Provider
	// SessionStore is nil when REDIS_ADDR is unset.
	SessionStore *redis.SessionStore
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients

	ai, err := openai.NewClient(log, openai.ConfigFromEnv(log))
	switch {
	case err == nil:
		out.OpenAI = ai
	case errors.Is(err, openai.ErrNotConfigured):
		log.Warn("OPENAI_API_KEY not set; gift generation disabled")
	default:
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	if strings.TrimSpace(cfg.PexelsAPIKey) != "" {
		p, err := imagesearch.NewPexels(log, imagesearch.PexelsConfig{APIKey: cfg.PexelsAPIKey})
		if err != nil {
			return Clients{}, fmt.Errorf("init pexels client: %w", err)
		}
		out.ImageProviders = append(out.ImageProviders, p)
	}
	if strings.TrimSpace(cfg.ImageScrapeURL) != "" {
		p, err := imagesearch.NewScraper(log, imagesearch.ScrapeConfig{URL: cfg.ImageScrapeURL, Selector: cfg.ImageScrapeSelect})
		if err != nil {
			return Clients{}, fmt.Errorf("init image scraper: %w", err)
		}
		out.ImageProviders = append(out.ImageProviders, p)
	}

	if strings.TrimSpace(cfg.RedisAddr) != "" {
		store, err := redis.NewSessionStore(log, redis.SessionStoreConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session store: %w", err)
		}
		out.SessionStore = store
	}
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SessionStore != nil {
		_ = c.SessionStore.Close()
	}
}
