package gift

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/giftwizard-backend/internal/data/repos/testutil"
	types "github.com/yungbote/giftwizard-backend/internal/domain"
)

func TestGiftResultRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewGiftResultRepo(db, testutil.Logger(t))

	in := &types.GiftResult{
		Request:   datatypes.JSON([]byte(`{"budget":"$50"}`)),
		GiftIdeas: datatypes.JSON([]byte(`[]`)),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	created, err := repo.Create(ctx, tx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("Create: expected id to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("Create: expected created_at to be assigned")
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetByID: want=%s got=%v", created.ID, got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil, got %v", missing.ID)
	}
}

func TestGiftResultRepoDeleteExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	now := time.Now().UTC()

	repo := NewGiftResultRepo(db, testutil.Logger(t))

	stale := testutil.SeedGiftResult(t, ctx, tx, now.Add(-time.Minute))
	fresh := testutil.SeedGiftResult(t, ctx, tx, now.Add(time.Hour))

	n, err := repo.DeleteExpired(ctx, tx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("DeleteExpired: want=1 got=%d", n)
	}
	if got, _ := repo.GetByID(ctx, tx, stale.ID); got != nil {
		t.Fatalf("expected stale row to be deleted")
	}
	if got, _ := repo.GetByID(ctx, tx, fresh.ID); got == nil {
		t.Fatalf("expected fresh row to remain")
	}
}
