package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
)

type fakeProvider struct {
	name   string
	images []domain.GiftImage
	err    error
	query  string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Search(ctx context.Context, query string, count int) ([]domain.GiftImage, error) {
	p.query = query
	if p.err != nil {
		return nil, p.err
	}
	return p.images, nil
}

func TestProductKeywords(t *testing.T) {
	got := productKeywords("Chocolate Gift Box for the Boss")
	want := []string{"chocolate box boss", "chocolate box boss product", "chocolate box boss buy", "chocolate"}
	if len(got) != len(want) {
		t.Fatalf("variations: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("variation %d: want=%q got=%q", i, want[i], got[i])
		}
	}
}

func TestSearchFillsFromKeywordImages(t *testing.T) {
	p := &fakeProvider{name: "pexels", images: []domain.GiftImage{
		{URL: "https://p/1", Source: gift.SourcePexels},
		{URL: "https://p/2", Source: gift.SourcePexels},
	}}
	svc := NewImageSearchService(testLogger(t), "", p)

	imgs := svc.Search(context.Background(), "Coffee Gift Set", 4)
	if p.query != "coffee set" {
		t.Fatalf("provider query: want=%q got=%q", "coffee set", p.query)
	}
	if len(imgs) != 4 {
		t.Fatalf("images: want=4 got=%d", len(imgs))
	}
	if imgs[0].Source != gift.SourcePexels || imgs[2].Source != gift.SourceUnsplash {
		t.Fatalf("sources: got %s, %s", imgs[0].Source, imgs[2].Source)
	}
	if !strings.HasPrefix(imgs[2].URL, "https://source.unsplash.com/400x400/?coffee%20set") {
		t.Fatalf("keyword url: got %q", imgs[2].URL)
	}
	if imgs[3].Title != "coffee set product - Image 2" {
		t.Fatalf("keyword title: got %q", imgs[3].Title)
	}
}

func TestSearchSkipsFailingProviders(t *testing.T) {
	bad := &fakeProvider{name: "pexels", err: errors.New("401")}
	good := &fakeProvider{name: "scrape", images: []domain.GiftImage{{URL: "https://s/1", Source: gift.SourceScrape}}}
	svc := NewImageSearchService(testLogger(t), "", bad, nil, good)

	imgs := svc.Search(context.Background(), "headphones", 1)
	if len(imgs) != 1 || imgs[0].Source != gift.SourceScrape {
		t.Fatalf("expected scrape image, got %+v", imgs)
	}
}

func TestSearchKeywordCountLimitedByVariations(t *testing.T) {
	svc := NewImageSearchService(testLogger(t), "")
	imgs := svc.Search(context.Background(), "candles", 10)
	if len(imgs) != 4 {
		t.Fatalf("images: want=4 got=%d", len(imgs))
	}
}

func TestSearchPlaceholdersForEmptyQuery(t *testing.T) {
	svc := NewImageSearchService(testLogger(t), "http://localhost:5000/placeholder/")
	imgs := svc.Search(context.Background(), "   ", 4)
	if len(imgs) != 4 {
		t.Fatalf("images: want=4 got=%d", len(imgs))
	}
	want := []string{"FF6600", "FF8533", "FFA366", "FF6600"}
	for i, img := range imgs {
		if img.Source != gift.SourcePlaceholder {
			t.Fatalf("image %d source: got %s", i, img.Source)
		}
		wantURL := "http://localhost:5000/placeholder/400x400/" + want[i] + "/FFFFFF?text=Gift"
		if img.URL != wantURL {
			t.Fatalf("image %d url: want=%q got=%q", i, wantURL, img.URL)
		}
	}
	if imgs[1].Title != "Gift - Placeholder 2" {
		t.Fatalf("title: got %q", imgs[1].Title)
	}
}

func TestSearchGenericOnlyQueryUsesPlaceholders(t *testing.T) {
	if v := productKeywords("The Gift for a"); v != nil {
		t.Fatalf("variations: want none got=%v", v)
	}
	p := &fakeProvider{name: "pexels", images: []domain.GiftImage{{URL: "https://p/1"}}}
	svc := NewImageSearchService(testLogger(t), "", p)

	imgs := svc.Search(context.Background(), "the gift", 3)
	if p.query != "" {
		t.Fatalf("provider should not be called, got query %q", p.query)
	}
	if len(imgs) != 3 {
		t.Fatalf("images: want=3 got=%d", len(imgs))
	}
	for i, img := range imgs {
		if img.Source != gift.SourcePlaceholder {
			t.Fatalf("image %d source: want=%s got=%s", i, gift.SourcePlaceholder, img.Source)
		}
	}
	want := "/placeholder/400x400/FF8533/FFFFFF?text=the%20gift"
	if imgs[1].URL != want {
		t.Fatalf("placeholder url: want=%q got=%q", want, imgs[1].URL)
	}
}

func TestSearchClampsCount(t *testing.T) {
	svc := NewImageSearchService(testLogger(t), "")
	if n := len(svc.Search(context.Background(), "", 0)); n != MinImageCount {
		t.Fatalf("count 0: want=%d got=%d", MinImageCount, n)
	}
	if n := len(svc.Search(context.Background(), "", 50)); n != MaxImageCount {
		t.Fatalf("count 50: want=%d got=%d", MaxImageCount, n)
	}
}

func TestNewImageLookup(t *testing.T) {
	l := NewImageLookup(" tea set ", 3, nil)
	if l.Query != "tea set" || l.Count != 0 || l.Images == nil {
		t.Fatalf("lookup: got %+v", l)
	}
	if l.ShoppingLinks.Flipkart != "https://www.flipkart.com/search?q=tea%20set" {
		t.Fatalf("flipkart: got %q", l.ShoppingLinks.Flipkart)
	}
	if l.AmazonLink != l.ShoppingLinks.Amazon {
		t.Fatalf("amazon link mismatch")
	}
}
