package gift

import (
	"strings"
	"testing"
	"time"
)

func TestCardImageURL(t *testing.T) {
	withImage := GiftIdea{Title: "Mug", Images: []GiftImage{{URL: "https://img/1.jpg"}}}
	if got := withImage.CardImageURL(); got != "https://img/1.jpg" {
		t.Fatalf("images[0]: want=%q got=%q", "https://img/1.jpg", got)
	}

	withTerms := GiftIdea{Title: "Mug", ImageSearchTerms: "Ceramic, Coffee mug!"}
	want := "https://source.unsplash.com/300x200/?ceramic,coffee"
	if got := withTerms.CardImageURL(); got != want {
		t.Fatalf("terms: want=%q got=%q", want, got)
	}

	bare := GiftIdea{Title: "Tea Set"}
	want = "/placeholder/300x200/e2e8f0/4a5568?text=Tea%20Set"
	if got := bare.CardImageURL(); got != want {
		t.Fatalf("placeholder: want=%q got=%q", want, got)
	}
	want = "https://gifts.example/placeholder/300x200/e2e8f0/4a5568?text=Tea%20Set"
	if got := bare.CardImageURLFrom("https://gifts.example/placeholder/"); got != want {
		t.Fatalf("placeholder with base: want=%q got=%q", want, got)
	}
	if got := (GiftIdea{}).CardImageURL(); !strings.HasSuffix(got, "text=Gift") {
		t.Fatalf("untitled placeholder: got=%q", got)
	}
}

func TestPlaceholderURL(t *testing.T) {
	got := PlaceholderURL("", "400x400", "FF6600", "FFFFFF", "tea & cake")
	want := "/placeholder/400x400/FF6600/FFFFFF?text=tea%20%26%20cake"
	if got != want {
		t.Fatalf("PlaceholderURL: want=%q got=%q", want, got)
	}
}

func TestShopURL(t *testing.T) {
	if got := (GiftIdea{AmazonLink: "https://a/x"}).ShopURL(); got != "https://a/x" {
		t.Fatalf("amazon_link: got=%q", got)
	}
	want := "https://www.amazon.in/s?k=noise%20cancelling"
	if got := (GiftIdea{Title: "t", AmazonSearchQuery: "noise cancelling"}).ShopURL(); got != want {
		t.Fatalf("query: want=%q got=%q", want, got)
	}
	want = "https://www.amazon.in/s?k=Photo%20Album"
	if got := (GiftIdea{Title: "Photo Album"}).ShopURL(); got != want {
		t.Fatalf("title: want=%q got=%q", want, got)
	}
}

func TestShoppingLinks(t *testing.T) {
	links := ShoppingLinksFor("coffee mug")
	want := "https://www.amazon.in/s?k=coffee%20mug&tag=rubysgifts-21&linkCode=ur2&camp=3638&creative=24630"
	if links.Amazon != want {
		t.Fatalf("amazon: want=%q got=%q", want, links.Amazon)
	}
	if links.Flipkart != "https://www.flipkart.com/search?q=coffee%20mug" {
		t.Fatalf("flipkart: got=%q", links.Flipkart)
	}
	if links.Myntra != "https://www.myntra.com/coffee%20mug" {
		t.Fatalf("myntra: got=%q", links.Myntra)
	}
	if links.Ajio != "https://www.ajio.com/search/?text=coffee%20mug" {
		t.Fatalf("ajio: got=%q", links.Ajio)
	}
}

func TestResultExpired(t *testing.T) {
	now := time.Now()
	r := GiftResult{ExpiresAt: now.Add(time.Hour)}
	if r.Expired(now) {
		t.Fatalf("Expired: expected false before expiry")
	}
	if !r.Expired(now.Add(2 * time.Hour)) {
		t.Fatalf("Expired: expected true after expiry")
	}
}
