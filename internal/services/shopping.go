package services

import (
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
)

// ImageLookup is the /api/images response body.
type ImageLookup struct {
	Success       bool                 `json:"success"`
	Query         string               `json:"query"`
	Images        []domain.GiftImage   `json:"images"`
	Count         int                  `json:"count"`
	AmazonLink    string               `json:"amazon_link"`
	ShoppingLinks domain.ShoppingLinks `json:"shopping_links"`
	Requested     int                  `json:"requested_count"`
}

// NewImageLookup assembles the lookup response for query.
func NewImageLookup(query string, requested int, images []domain.GiftImage) ImageLookup {
	q := strings.TrimSpace(query)
	if images == nil {
		images = []domain.GiftImage{}
	}
	links := gift.ShoppingLinksFor(q)
	return ImageLookup{
		Success:       true,
		Query:         q,
		Images:        images,
		Count:         len(images),
		AmazonLink:    links.Amazon,
		ShoppingLinks: links,
		Requested:     requested,
	}
}
