package imagesearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/httpx"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const queryPlaceholder = "{query}"

type ScrapeConfig struct {
	// URL is a search page. "{query}" is replaced by the escaped query;
	// without it the query is sent as the q parameter.
	URL       string
	Selector  string
	UserAgent string
	Timeout   time.Duration
}

type scrapeClient struct {
	log        *logger.Logger
	cfg        ScrapeConfig
	httpClient *http.Client
}

func NewScraper(log *logger.Logger, cfg ScrapeConfig) (Provider, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("missing IMAGE_SCRAPE_URL")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid IMAGE_SCRAPE_URL: %w", err)
	}
	if strings.TrimSpace(cfg.Selector) == "" {
		cfg.Selector = "img"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "giftwizard/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &scrapeClient{
		log:        log.With("client", "ImageScraper"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *scrapeClient) Name() string { return "scrape" }

func (c *scrapeClient) searchURL(query string) string {
	if strings.Contains(c.cfg.URL, queryPlaceholder) {
		return strings.ReplaceAll(c.cfg.URL, queryPlaceholder, url.QueryEscape(query))
	}
	sep := "?"
	if strings.Contains(c.cfg.URL, "?") {
		sep = "&"
	}
	return c.cfg.URL + sep + "q=" + url.QueryEscape(query)
}

func (c *scrapeClient) Search(ctx context.Context, query string, count int) ([]domain.GiftImage, error) {
	if count <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	pageURL := c.searchURL(query)
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpx.StatusError{Service: "scrape", StatusCode: resp.StatusCode, Body: string(body)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape parse: %w", err)
	}
	images := extractImages(doc, base, c.cfg.Selector, query, count)
	c.log.Debug("scrape search", "query", query, "found", len(images))
	return images, nil
}

// extractImages collects absolute, non-inline image URLs, skipping duplicates.
func extractImages(doc *goquery.Document, base *url.URL, selector, query string, count int) []domain.GiftImage {
	var out []domain.GiftImage
	seen := map[string]bool{}
	doc.Find(selector).EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := imageSource(img)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		abs := resolve(base, src)
		if abs == "" || seen[abs] {
			return true
		}
		seen[abs] = true
		title := strings.TrimSpace(img.AttrOr("alt", ""))
		if title == "" {
			title = fmt.Sprintf("%s - Image %d", query, len(out)+1)
		}
		out = append(out, domain.GiftImage{
			URL:       abs,
			Title:     title,
			Width:     400,
			Height:    400,
			Thumbnail: abs,
			Source:    gift.SourceScrape,
		})
		return len(out) < count
	})
	return out
}

func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"data-src", "src"} {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	ru, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ru)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}
