package imagesearch

import (
	"context"

	"github.com/yungbote/giftwizard-backend/internal/domain"
)

// Provider returns up to count images for query. An empty result with a nil
// error means the provider had nothing.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]domain.GiftImage, error)
}
