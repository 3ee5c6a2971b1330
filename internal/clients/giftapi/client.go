package giftapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/platform/httpx"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

const DefaultBaseURL = "http://localhost:5000"

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client talks to a running gift wizard server. It satisfies
// services.GiftGenerator so the terminal wizard can submit remotely.
type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	retry      httpx.RetryPolicy
}

func New(log *logger.Logger, cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{
		log:        log.With("client", "GiftAPIClient"),
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}
	c.retry = httpx.RetryPolicy{
		MaxRetries:  cfg.MaxRetries,
		BaseBackoff: 500 * time.Millisecond,
		MaxBackoff:  5 * time.Second,
		OnRetry: func(attempt int, sleep time.Duration, err error) {
			c.log.Warn("gift api retry", "attempt", attempt, "sleep", sleep.String(), "error", err)
		},
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type envelope struct {
	Success   *bool             `json:"success"`
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	GiftIdeas []domain.GiftIdea `json:"gift_ideas"`
	ResultID  string            `json:"result_id"`
	Timestamp string            `json:"timestamp"`
}

// APIError is a well-formed error envelope returned by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gift api %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) HTTPStatusCode() int { return e.StatusCode }

// Generate posts the request body to /generate_gifts. A non-2xx status, an
// explicit success=false or a missing gift_ideas list is an error.
func (c *Client) Generate(ctx context.Context, req domain.GiftRequest) (*domain.Generation, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	err = httpx.Do(ctx, c.retry, func(ctx context.Context) (*http.Response, error) {
		return c.doJSON(ctx, http.MethodPost, "/generate_gifts", body, &env)
	})
	if err != nil {
		return nil, err
	}
	if env.Success != nil && !*env.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Code: env.Code, Message: env.Error}
	}
	if env.GiftIdeas == nil {
		return nil, errors.New("gift api: response has no gift_ideas")
	}

	gen := &domain.Generation{GiftIdeas: env.GiftIdeas, ResultID: env.ResultID, Timestamp: time.Now().UTC()}
	if ts, err := time.Parse(time.RFC3339Nano, env.Timestamp); err == nil {
		gen.Timestamp = ts
	}
	return gen, nil
}

type imageLookup struct {
	Images []domain.GiftImage `json:"images"`
}

// Images calls /api/images for a query.
func (c *Client) Images(ctx context.Context, query string, count int) ([]domain.GiftImage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))

	var out imageLookup
	err := httpx.Do(ctx, c.retry, func(ctx context.Context) (*http.Response, error) {
		return c.doJSON(ctx, http.MethodGet, "/api/images?"+q.Encode(), nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return out.Images, nil
}

// Questions fetches the server's catalog so both ends agree on question ids.
func (c *Client) Questions(ctx context.Context) (*questionnaire.Catalog, error) {
	var out struct {
		Questions []questionnaire.Question `json:"questions"`
	}
	err := httpx.Do(ctx, c.retry, func(ctx context.Context) (*http.Response, error) {
		return c.doJSON(ctx, http.MethodGet, "/api/questions", nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return questionnaire.New(out.Questions)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return resp, &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Error}
		}
		return resp, &httpx.StatusError{Service: "giftapi", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp, fmt.Errorf("giftapi decode %s: %w", path, err)
	}
	return resp, nil
}
