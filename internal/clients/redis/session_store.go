package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

const defaultKeyPrefix = "giftwizard:session:"

type SessionStoreConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// SessionStore keeps wizard states as JSON under an expiring key.
type SessionStore struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
}

func NewSessionStore(log *logger.Logger, cfg SessionStoreConfig) (*SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewSessionStoreWithClient(log, rdb, cfg.KeyPrefix), nil
}

func NewSessionStoreWithClient(log *logger.Logger, rdb goredis.UniversalClient, prefix string) *SessionStore {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	return &SessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: prefix,
	}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

func (s *SessionStore) Get(ctx context.Context, id string) (wizard.State, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return wizard.State{}, fmt.Errorf("session %s: %w", id, apierr.ErrNotFound)
	}
	if err != nil {
		return wizard.State{}, fmt.Errorf("redis get: %w", err)
	}
	var st wizard.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return wizard.State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return normalize(st), nil
}

func (s *SessionStore) Put(ctx context.Context, id string, st wizard.State, ttl time.Duration) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

// normalize restores the empty maps that JSON drops.
func normalize(st wizard.State) wizard.State {
	if st.Answers == nil {
		st.Answers = map[string]string{}
	}
	if st.Selections == nil {
		st.Selections = map[string][]string{}
	}
	if st.SyncPending == nil {
		st.SyncPending = map[string]bool{}
	}
	return st
}
