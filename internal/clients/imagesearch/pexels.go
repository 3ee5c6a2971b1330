package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/platform/httpx"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const (
	pexelsDefaultBaseURL = "https://api.pexels.com"
	pexelsMaxPerQuery    = 3
)

type PexelsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type pexelsClient struct {
	log        *logger.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewPexels(log *logger.Logger, cfg PexelsConfig) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing PEXELS_API_KEY")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = pexelsDefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &pexelsClient{
		log:        log.With("client", "PexelsClient"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *pexelsClient) Name() string { return "pexels" }

type pexelsSearchResponse struct {
	Photos []struct {
		ID     int64  `json:"id"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Alt    string `json:"alt"`
		Src    struct {
			Original string `json:"original"`
			Medium   string `json:"medium"`
			Small    string `json:"small"`
			Tiny     string `json:"tiny"`
		} `json:"src"`
	} `json:"photos"`
}

// Search asks Pexels for square photos. At most three are requested per query.
func (c *pexelsClient) Search(ctx context.Context, query string, count int) ([]domain.GiftImage, error) {
	if count > pexelsMaxPerQuery {
		count = pexelsMaxPerQuery
	}
	if count <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(count))
	q.Set("orientation", "square")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpx.StatusError{Service: "pexels", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out pexelsSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pexels decode: %w", err)
	}

	images := make([]domain.GiftImage, 0, len(out.Photos))
	for i, p := range out.Photos {
		if len(images) == count {
			break
		}
		src := firstNonEmpty(p.Src.Medium, p.Src.Original)
		if src == "" {
			continue
		}
		title := strings.TrimSpace(p.Alt)
		if title == "" {
			title = fmt.Sprintf("%s - Product %d", query, i+1)
		}
		images = append(images, domain.GiftImage{
			URL:       src,
			Title:     title,
			Width:     400,
			Height:    400,
			Thumbnail: firstNonEmpty(p.Src.Small, p.Src.Tiny, src),
			Source:    gift.SourcePexels,
		})
	}
	c.log.Debug("pexels search", "query", query, "found", len(images))
	return images, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
