package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const (
	limiterCleanupSpec = "@every 10m"
	sessionSweepSpec   = "@every 5m"
	purgeTimeout       = 2 * time.Minute
)

type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, kv ...interface{}) { l.log.Debug(msg, kv...) }

func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.log.Error(msg, append(kv, "error", err)...)
}

// wireJobs registers the periodic maintenance work. The scheduler is not
// started here.
func wireJobs(log *logger.Logger, cfg Config, services Services, middleware Middleware) (*cron.Cron, error) {
	log = log.With("component", "Scheduler")
	c := cron.New(cron.WithLogger(cronLogger{log: log}), cron.WithChain(cron.Recover(cronLogger{log: log})))

	if spec := strings.TrimSpace(cfg.ResultPurgeCron); spec != "" && services.Results != nil {
		_, err := c.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
			defer cancel()
			n, err := services.Results.PurgeExpired(ctx)
			if err != nil {
				log.Warn("result purge failed", "error", err)
				return
			}
			if n > 0 {
				log.Info("purged expired gift results", "rows", n)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule result purge %q: %w", spec, err)
		}
	}

	if middleware.GenerateLimiter != nil {
		if _, err := c.AddFunc(limiterCleanupSpec, func() {
			if n := middleware.GenerateLimiter.Cleanup(); n > 0 {
				log.Debug("dropped idle rate limiters", "count", n)
			}
		}); err != nil {
			return nil, fmt.Errorf("schedule limiter cleanup: %w", err)
		}
	}

	if services.MemorySessions != nil {
		if _, err := c.AddFunc(sessionSweepSpec, func() {
			if n := services.MemorySessions.Sweep(); n > 0 {
				log.Debug("swept expired wizard sessions", "count", n)
			}
		}); err != nil {
			return nil, fmt.Errorf("schedule session sweep: %w", err)
		}
	}
	return c, nil
}
