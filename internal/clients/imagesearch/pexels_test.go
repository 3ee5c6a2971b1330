package imagesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

func TestPexelsSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "px-key" {
			t.Errorf("auth: want=%q got=%q", "px-key", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "3" {
			t.Errorf("per_page: want=%q got=%q", "3", got)
		}
		if got := r.URL.Query().Get("query"); got != "coffee mug" {
			t.Errorf("query: want=%q got=%q", "coffee mug", got)
		}
		_, _ = w.Write([]byte(`{"photos":[
			{"id":1,"alt":"Blue mug","src":{"medium":"https://px/1-m.jpg","small":"https://px/1-s.jpg"}},
			{"id":2,"alt":"","src":{"original":"https://px/2.jpg"}},
			{"id":3,"alt":"no src","src":{}}
		]}`))
	}))
	defer srv.Close()

	p, err := NewPexels(logger.Nop(), PexelsConfig{APIKey: "px-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewPexels: %v", err)
	}
	images, err := p.Search(context.Background(), "coffee mug", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("images: want=2 got=%d", len(images))
	}
	if images[0].URL != "https://px/1-m.jpg" || images[0].Thumbnail != "https://px/1-s.jpg" || images[0].Title != "Blue mug" {
		t.Fatalf("image[0]: got=%+v", images[0])
	}
	if images[1].Title != "coffee mug - Product 2" || images[1].Source != "Pexels" {
		t.Fatalf("image[1]: got=%+v", images[1])
	}
}

func TestPexelsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, _ := NewPexels(logger.Nop(), PexelsConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Search(context.Background(), "x", 1); err == nil {
		t.Fatalf("Search: expected error on 429")
	}
}

func TestNewPexelsRequiresKey(t *testing.T) {
	if _, err := NewPexels(logger.Nop(), PexelsConfig{}); err == nil {
		t.Fatalf("NewPexels: expected error without key")
	}
}
