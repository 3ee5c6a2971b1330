package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/envutil"
	"github.com/yungbote/giftwizard-backend/internal/platform/httpx"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

var ErrNotConfigured = errors.New("openai: OPENAI_API_KEY not configured")

// Client is the slice of the chat completions API the backend uses.
type Client interface {
	// GenerateJSON sends system+user messages in JSON mode and returns the
	// raw message content.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
	// Ping sends a tiny completion to verify credentials and connectivity.
	Ping(ctx context.Context) (string, error)
	Model() string
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	PingModel   string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

func ConfigFromEnv(log *logger.Logger) Config {
	temp := 0.7
	if v := strings.TrimSpace(envutil.String("OPENAI_TEMPERATURE", "", log)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			temp = f
		}
	}
	return Config{
		APIKey:      strings.TrimSpace(envutil.String("OPENAI_API_KEY", "", log)),
		BaseURL:     envutil.String("OPENAI_BASE_URL", "https://api.openai.com", log),
		Model:       envutil.String("OPENAI_MODEL", "gpt-4o-mini", log),
		PingModel:   envutil.String("OPENAI_PING_MODEL", "gpt-3.5-turbo", log),
		MaxTokens:   envutil.Int("OPENAI_MAX_TOKENS", 1500, log),
		Temperature: temp,
		Timeout:     envutil.Duration("OPENAI_TIMEOUT_SECONDS", 25, time.Second, log),
		MaxRetries:  envutil.Int("OPENAI_MAX_RETRIES", 2, log),
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.PingModel == "" {
		cfg.PingModel = cfg.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1500
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &client{
		log:        log.With("service", "OpenAIClient"),
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *client) Model() string { return c.cfg.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *client) GenerateJSON(ctx context.Context, system, user string) (string, error) {
	temp := c.cfg.Temperature
	req := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:      c.cfg.MaxTokens,
		Temperature:    &temp,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	return c.complete(ctx, req)
}

func (c *client) Ping(ctx context.Context) (string, error) {
	req := chatRequest{
		Model:     c.cfg.PingModel,
		Messages:  []chatMessage{{Role: "user", Content: "Say hello"}},
		MaxTokens: 10,
	}
	return c.complete(ctx, req)
}

func (c *client) complete(ctx context.Context, req chatRequest) (string, error) {
	start := time.Now()
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "/v1/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: response has no choices")
	}
	content := resp.Choices[0].Message.Content
	c.log.Debug("OpenAI completion received",
		"model", req.Model,
		"chars", len(content),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	observability.Current().ObserveLLMRequest(req.Model, "200", time.Since(start), resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return content, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpx.StatusError{Service: "openai", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, method, path string, body any, out any) error {
	start := time.Now()
	model := ""
	if r, ok := body.(chatRequest); ok {
		model = r.Model
	}

	var raw []byte
	policy := httpx.RetryPolicy{
		MaxRetries:  c.cfg.MaxRetries,
		BaseBackoff: time.Second,
		MaxBackoff:  10 * time.Second,
		OnRetry: func(attempt int, sleep time.Duration, err error) {
			c.log.Warn("OpenAI request retrying",
				"path", path,
				"attempt", attempt,
				"max_retries", c.cfg.MaxRetries,
				"sleep", sleep.String(),
				"error", err.Error(),
			)
		},
	}
	err := httpx.Do(ctx, policy, func(ctx context.Context) (*http.Response, error) {
		resp, b, err := c.doOnce(ctx, method, path, body)
		raw = b
		return resp, err
	})
	if err != nil {
		observability.Current().ObserveLLMRequest(model, statusOf(err), time.Since(start), 0, 0)
		return err
	}
	if out == nil {
		return nil
	}
	if uErr := json.Unmarshal(raw, out); uErr != nil {
		return fmt.Errorf("openai decode error: %w", uErr)
	}
	return nil
}

func statusOf(err error) string {
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		return strconv.Itoa(sc.HTTPStatusCode())
	}
	return "error"
}
