package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/clients/imagesearch"
	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const (
	MinImageCount = 1
	MaxImageCount = 10
)

var genericImageWords = map[string]struct{}{
	"gift": {}, "present": {}, "item": {}, "thing": {}, "stuff": {},
	"for": {}, "the": {}, "a": {}, "an": {},
}

var placeholderColors = []string{"FF6600", "FF8533", "FFA366"}

// ImageSearchService finds product images for a gift idea. Search never fails:
// when every provider comes back empty it returns placeholders keyed by the
// query text.
type ImageSearchService interface {
	Search(ctx context.Context, query string, count int) []domain.GiftImage
	ShoppingLinks(query string) domain.ShoppingLinks
}

type imageSearchService struct {
	log             *logger.Logger
	providers       []imagesearch.Provider
	placeholderBase string
}

func NewImageSearchService(log *logger.Logger, placeholderBase string, providers ...imagesearch.Provider) ImageSearchService {
	base := strings.TrimRight(strings.TrimSpace(placeholderBase), "/")
	if base == "" {
		base = gift.PlaceholderRoute
	}
	ps := make([]imagesearch.Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return &imageSearchService{
		log:             log.With("service", "ImageSearchService"),
		providers:       ps,
		placeholderBase: base,
	}
}

func (s *imageSearchService) Search(ctx context.Context, query string, count int) []domain.GiftImage {
	query = strings.TrimSpace(query)
	if count < MinImageCount {
		count = MinImageCount
	}
	if count > MaxImageCount {
		count = MaxImageCount
	}
	ctx, end := observability.StartSpan(ctx, "images.search")
	defer end()

	variations := productKeywords(query)
	best := query
	if len(variations) > 0 {
		best = variations[0]
	}

	images := make([]domain.GiftImage, 0, count)
	if best != "" {
		for _, p := range s.providers {
			remaining := count - len(images)
			if remaining <= 0 {
				break
			}
			found, err := p.Search(ctx, best, remaining)
			if err != nil {
				s.log.Warn("image provider failed", "provider", p.Name(), "query", best, "error", err)
				observability.Current().IncImageLookup(p.Name(), "error")
				continue
			}
			if len(found) > remaining {
				found = found[:remaining]
			}
			outcome := "hit"
			if len(found) == 0 {
				outcome = "miss"
			}
			observability.Current().IncImageLookup(p.Name(), outcome)
			images = append(images, found...)
		}
		if remaining := count - len(images); remaining > 0 {
			images = append(images, keywordImages(variations, remaining)...)
		}
	}

	if len(images) == 0 {
		observability.Current().IncImageLookup("placeholder", "fallback")
		return s.placeholders(query, count)
	}
	s.log.Debug("image search complete", "query", query, "requested", count, "found", len(images))
	return images
}

func (s *imageSearchService) ShoppingLinks(query string) domain.ShoppingLinks {
	return gift.ShoppingLinksFor(strings.TrimSpace(query))
}

// productKeywords drops generic words and returns the search variations in
// preference order: the cleaned query, "<q> product", "<q> buy", first word.
// A query made only of generic words yields none.
func productKeywords(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	product := make([]string, 0, len(words))
	for _, w := range words {
		if _, generic := genericImageWords[w]; generic {
			continue
		}
		product = append(product, w)
	}
	// Nothing product-like left: no variations, so Search falls through to
	// placeholders keyed by the original query.
	if len(product) == 0 {
		return nil
	}
	base := strings.Join(product, " ")
	return []string{base, base + " product", base + " buy", product[0]}
}

func keywordImages(variations []string, count int) []domain.GiftImage {
	n := count
	if len(variations) < n {
		n = len(variations)
	}
	out := make([]domain.GiftImage, 0, n)
	for i := 0; i < n; i++ {
		v := escapePathQuery(variations[i])
		out = append(out, domain.GiftImage{
			URL:       fmt.Sprintf("https://source.unsplash.com/400x400/?%s&sig=%d", v, i),
			Title:     fmt.Sprintf("%s - Image %d", variations[i], i+1),
			Width:     400,
			Height:    400,
			Thumbnail: fmt.Sprintf("https://source.unsplash.com/200x200/?%s&sig=%d", v, i),
			Source:    gift.SourceUnsplash,
		})
	}
	return out
}

func (s *imageSearchService) placeholders(query string, count int) []domain.GiftImage {
	label := query
	if label == "" {
		label = "Gift"
	}
	out := make([]domain.GiftImage, 0, count)
	for i := 0; i < count; i++ {
		color := placeholderColors[i%len(placeholderColors)]
		out = append(out, domain.GiftImage{
			URL:       gift.PlaceholderURL(s.placeholderBase, "400x400", color, "FFFFFF", label),
			Title:     fmt.Sprintf("%s - Placeholder %d", label, i+1),
			Width:     400,
			Height:    400,
			Thumbnail: gift.PlaceholderURL(s.placeholderBase, "200x200", color, "FFFFFF", label),
			Source:    gift.SourcePlaceholder,
		})
	}
	return out
}

func escapePathQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
