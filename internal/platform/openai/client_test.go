package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/giftwizard-backend/internal/platform/httpx"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

func testClient(t *testing.T, url string, retries int) Client {
	t.Helper()
	c, err := NewClient(logger.Nop(), Config{
		APIKey:     "sk-test",
		BaseURL:    url,
		Model:      "gpt-4o-mini",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateJSONSendsJSONMode(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path: want=%q got=%q", "/v1/chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("auth: got=%q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"gift_ideas\":[]}"}}]}`))
	}))
	defer srv.Close()

	out, err := testClient(t, srv.URL, 0).GenerateJSON(context.Background(), "sys", "usr")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out != `{"gift_ideas":[]}` {
		t.Fatalf("content: got=%q", out)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format: got=%+v", got.ResponseFormat)
	}
	if got.MaxTokens != 1500 || got.Temperature == nil || len(got.Messages) != 2 || got.Messages[0].Role != "system" {
		t.Fatalf("request: got=%+v", got)
	}
}

func TestRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer srv.Close()

	out, err := testClient(t, srv.URL, 1).Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if out != "hello" || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("Ping: out=%q calls=%d", out, calls)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 3).Ping(context.Background())
	var se *httpx.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("Ping: want 401 StatusError got=%v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("NewClient: want=%v got=%v", ErrNotConfigured, err)
	}
}
