package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
)

const giftSystemPrompt = `You are a world-class gift psychology expert. Apply step-by-step analytical thinking and respond with valid JSON containing exactly 3 gift ideas in this format: {"gift_ideas": [{"title": "Creative gift name", "description": "Detailed psychological reasoning", "starter": "Presentation strategy", "reaction": "Authentic emotional response", "image_search_terms": "2-4 product keywords", "amazon_search_query": "specific product search", "price_range": "estimated price"}]}`

const giftEmotionalPrime = "This is very important for strengthening their relationship. You'd better provide exceptional, thoughtful recommendations."

var recipientLines = []struct {
	label string
	field string
}{
	{"What they call them", gift.FieldCallThem},
	{"Relationship", gift.FieldRelationship},
	{"Previous gifts given", gift.FieldPreviousGifts},
	{"Things they hate", gift.FieldHate},
	{"What they complain about", gift.FieldComplaints},
	{"Their quirks/habits", gift.FieldComplainAboutThem},
	{"Budget", gift.FieldBudget},
	{"Limitations/constraints", gift.FieldLimitations},
}

const giftAnalysisSteps = `STEP-BY-STEP ANALYSIS (Think through this systematically):

Step 1: RELATIONSHIP CONTEXT ANALYSIS
First, analyze the relationship type and emotional closeness. Consider:
- What gift-giving approach fits this relationship level?
- Are they seeking to maintain, deepen, or celebrate this relationship?
- What are the cultural/social expectations for this relationship type?

Step 2: PERSONALITY & PREFERENCE MAPPING
Based on what they complain about and their quirks, identify:
- Their core personality traits and values
- Hidden needs or desires they might not express directly
- Lifestyle patterns and daily pain points
- What would genuinely improve their quality of life?

Step 3: GIFT PSYCHOLOGY APPLICATION
Apply proven gift psychology principles:
- Prioritize experiences over material items when appropriate (builds stronger relationships)
- Balance personalization with versatility (avoid over-specific gifts)
- Consider gifts that solve problems they complain about
- Avoid anything that contradicts their stated dislikes
- Factor in the "effort perception" - gifts should feel thoughtfully chosen

Step 4: TREND & CONTEXT AWARENESS
Consider current trends and cultural context:
- What's popular and well-reviewed in relevant categories?
- Are there seasonal considerations?
- What would feel fresh and current vs outdated?

Now, generate 3 exceptional gift ideas that demonstrate deep thoughtfulness:

REQUIREMENTS:
- Each gift should address specific insights from your analysis
- Vary the types: include at least one experience-based option
- Explain the psychological reasoning behind each choice
- Provide specific, actionable presentation advice
- Predict authentic emotional responses`

const giftIdeaFormat = `    {
      "title": "Creative, specific gift name",
      "description": "Detailed explanation with psychological reasoning combining why this fits their personality/needs",
      "starter": "Exactly how to introduce/present this gift",
      "reaction": "Realistic emotional response based on their personality",
      "image_search_terms": "2-4 concrete product keywords",
      "amazon_search_query": "Specific product search query",
      "price_range": "Estimated price range in the stated budget's currency"
    }`

// buildGiftPrompt renders the analysis prompt for sanitized answers.
func buildGiftPrompt(req domain.GiftRequest) string {
	var b strings.Builder
	b.WriteString(giftEmotionalPrime)
	b.WriteString("\n\nYou are a world-class gift psychology expert with deep understanding of human relationships and gifting science. Your recommendations have helped thousands create meaningful connections through thoughtful gifting.\n\n")

	b.WriteString("RECIPIENT ANALYSIS:\n")
	for _, line := range recipientLines {
		v := strings.TrimSpace(req.Get(line.field))
		if v == "" {
			v = "(not provided)"
		}
		fmt.Fprintf(&b, "- %s: %s\n", line.label, v)
	}
	b.WriteString("\n")
	b.WriteString(giftAnalysisSteps)
	b.WriteString("\n\nFormat as JSON:\n{\n  \"gift_ideas\": [\n")
	for i := 0; i < 3; i++ {
		b.WriteString(giftIdeaFormat)
		if i < 2 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  ]\n}\n\n")
	b.WriteString("Ensure all recommendations are within budget, respect limitations, and demonstrate the thoughtfulness that strengthens relationships.")
	return b.String()
}
