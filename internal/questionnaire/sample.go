package questionnaire

// SampleAnswers is a filled-in questionnaire used by the CLI "submit --sample"
// shortcut and by tests.
func SampleAnswers() map[string]string {
	return map[string]string{
		"nicknames":     "buddy",
		"relationships": "best friend",
		"previousGifts": "books, coffee mug, funny t-shirt",
		"dislikes":      "loud noises, spicy food, horror movies",
		"complaints":    "traffic, work stress, bad weather",
		"quirks":        "always running late, too many meetings",
		"budget":        "₹500-1500",
		"limitations":   "no allergies, eco-friendly preferred",
	}
}
