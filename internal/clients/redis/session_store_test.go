package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()
	store := NewSessionStoreWithClient(logger.Nop(), rdb, "giftwizard-test:")
	ctx := context.Background()

	id := uuid.NewString()
	st := wizard.NewState()
	st.Phase = wizard.PhaseQuestionnaire
	st.Answers["nicknames"] = "Buddy"
	st.Selections["nicknames"] = []string{"Buddy"}

	if err := store.Put(ctx, id, st, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Phase != wizard.PhaseQuestionnaire || got.Answers["nicknames"] != "Buddy" || got.ChipFocus != -1 {
		t.Fatalf("Get: unexpected state %+v", got)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, id); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("Get after delete: want=%v got=%v", apierr.ErrNotFound, err)
	}
}
