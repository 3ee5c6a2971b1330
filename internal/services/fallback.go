package services

import "github.com/yungbote/giftwizard-backend/internal/domain"

// FallbackGifts returns the fixed suggestions shown when generation is
// unavailable. Each call returns a fresh slice.
func FallbackGifts() []domain.GiftIdea {
	return []domain.GiftIdea{
		{
			Title:             "personalized photo album",
			Description:       "A custom photo book filled with your favorite memories together. Perfect for someone who appreciates sentimental gifts and personal touches.",
			Starter:           `You could say: "I made this photo album of our favorite memories together."`,
			Reaction:          "They might smile and flip through it immediately, pointing out their favorite photos.",
			ImageSearchTerms:  "photo album personalized custom",
			AmazonSearchQuery: "personalized photo album custom book",
			PriceRange:        "₹800-2,500",
		},
		{
			Title:             "premium coffee subscription",
			Description:       "Monthly delivery of specialty coffee beans from around the world. Great for coffee lovers who enjoy trying new flavors.",
			Starter:           `You could mention: "I got you a coffee subscription so you can try beans from different countries."`,
			Reaction:          "They might get excited about trying new flavors and ask which countries are included.",
			ImageSearchTerms:  "coffee beans subscription premium",
			AmazonSearchQuery: "coffee subscription premium beans delivery",
			PriceRange:        "₹1,500-4,000/month",
		},
		{
			Title:             "wireless noise-canceling headphones",
			Description:       "High-quality headphones perfect for music lovers or anyone who needs to focus in noisy environments.",
			Starter:           `You could say: "These headphones should help you focus better when things get noisy."`,
			Reaction:          "They might immediately want to test them out and ask about the noise-canceling features.",
			ImageSearchTerms:  "wireless headphones noise canceling",
			AmazonSearchQuery: "wireless noise canceling headphones",
			PriceRange:        "₹5,000-15,000",
		},
	}
}
