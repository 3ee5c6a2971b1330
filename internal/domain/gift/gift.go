package gift

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	AmazonAffiliateTag = "rubysgifts-21"

	SourcePexels      = "Pexels"
	SourceUnsplash    = "Unsplash"
	SourceScrape      = "Scrape"
	SourcePlaceholder = "Placeholder"

	// PlaceholderRoute is where the server renders placeholder PNGs. Used as
	// a base on its own it resolves against the origin that served the page.
	PlaceholderRoute = "/placeholder"
)

// GiftIdea is one suggestion returned by the generation endpoint.
type GiftIdea struct {
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Starter           string      `json:"starter,omitempty"`
	Reaction          string      `json:"reaction,omitempty"`
	ImageSearchTerms  string      `json:"image_search_terms,omitempty"`
	AmazonSearchQuery string      `json:"amazon_search_query,omitempty"`
	AmazonLink        string      `json:"amazon_link,omitempty"`
	PriceRange        string      `json:"price_range,omitempty"`
	Images            []GiftImage `json:"images,omitempty"`
}

type GiftImage struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
}

type ShoppingLinks struct {
	Amazon   string `json:"amazon"`
	Flipkart string `json:"flipkart"`
	Myntra   string `json:"myntra"`
	Ajio     string `json:"ajio"`
}

// encodeComponent matches javascript's encodeURIComponent for the characters
// that show up in search queries.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func AmazonAffiliateLink(query string) string {
	return "https://www.amazon.in/s?k=" + encodeComponent(query) +
		"&tag=" + AmazonAffiliateTag + "&linkCode=ur2&camp=3638&creative=24630"
}

func AmazonSearchURL(query string) string {
	return "https://www.amazon.in/s?k=" + encodeComponent(query)
}

func ShoppingLinksFor(query string) ShoppingLinks {
	q := encodeComponent(query)
	return ShoppingLinks{
		Amazon:   AmazonAffiliateLink(query),
		Flipkart: "https://www.flipkart.com/search?q=" + q,
		Myntra:   "https://www.myntra.com/" + q,
		Ajio:     "https://www.ajio.com/search/?text=" + q,
	}
}

var nonKeyword = regexp.MustCompile(`[^a-z0-9\s]`)

// KeywordImageURL builds a keyword image URL from the first two cleaned words of
// terms. It returns "" when no usable word remains.
func KeywordImageURL(terms string) string {
	clean := strings.TrimSpace(nonKeyword.ReplaceAllString(strings.ToLower(terms), ""))
	words := strings.Fields(clean)
	if len(words) == 0 {
		return ""
	}
	if len(words) > 2 {
		words = words[:2]
	}
	return "https://source.unsplash.com/300x200/?" + strings.Join(words, ",")
}

// PlaceholderURL points at the placeholder route under base, e.g.
// <base>/400x400/FF6600/FFFFFF?text=Tea%20Set. An empty base means PlaceholderRoute.
func PlaceholderURL(base, size, bg, fg, text string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = PlaceholderRoute
	}
	return base + "/" + size + "/" + bg + "/" + fg + "?text=" + encodeComponent(text)
}

func TitlePlaceholderURL(base, title string) string {
	if strings.TrimSpace(title) == "" {
		title = "Gift"
	}
	return PlaceholderURL(base, "300x200", "e2e8f0", "4a5568", title)
}

// CardImageURL picks the image shown on a reveal card, falling back to the
// same-origin placeholder route.
func (g GiftIdea) CardImageURL() string {
	return g.CardImageURLFrom("")
}

// CardImageURLFrom is CardImageURL with placeholders rendered under base.
func (g GiftIdea) CardImageURLFrom(base string) string {
	for _, img := range g.Images {
		if strings.TrimSpace(img.URL) != "" {
			return img.URL
		}
	}
	if u := KeywordImageURL(g.ImageSearchTerms); u != "" {
		return u
	}
	return TitlePlaceholderURL(base, g.Title)
}

// ShopURL is the amazon link, or a search for the query (or title) without one.
func (g GiftIdea) ShopURL() string {
	if strings.TrimSpace(g.AmazonLink) != "" {
		return g.AmazonLink
	}
	q := strings.TrimSpace(g.AmazonSearchQuery)
	if q == "" {
		q = g.Title
	}
	return AmazonSearchURL(q)
}
